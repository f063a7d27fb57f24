package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vitalvas/routedoc/swagger"
)

const shutdownTimeout = 5 * time.Second

var serveRunner = runServe

// ServeOptions configures the documentation server.
type ServeOptions struct {
	*Options

	Addr     string
	BasePath string

	// Metrics exposes Prometheus metrics at /metrics.
	Metrics bool
}

func newServeCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the Swagger document and Swagger UI over HTTP",
		Long: "Serve the generated document as JSON and YAML together with a Swagger UI page. " +
			"The document is generated on the first request.",
		Example: strings.TrimSpace(`  routedoc serve --routes routes.yaml --addr :8080 --base /docs`),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}

			addr, err := cmd.Flags().GetString("addr")
			if err != nil {
				return err
			}
			base, err := cmd.Flags().GetString("base")
			if err != nil {
				return err
			}
			metrics, err := cmd.Flags().GetBool("metrics")
			if err != nil {
				return err
			}

			return serveRunner(cmd.Context(), &ServeOptions{
				Options:  opts,
				Addr:     strings.TrimSpace(addr),
				BasePath: strings.TrimSpace(base),
				Metrics:  metrics,
			}, log)
		},
	}

	flags := cmd.Flags()
	addGenerationFlags(flags)
	flags.String("addr", ":8080", "Address to listen on")
	flags.String("base", "/docs", "Path the documentation is mounted under")
	flags.Bool("metrics", false, "Expose Prometheus metrics at /metrics")

	return cmd
}

// newServeHandler returns the documentation endpoints for opts, and the
// metrics endpoint when enabled.
func newServeHandler(ctx context.Context, opts *ServeOptions, log logrus.FieldLogger) http.Handler {
	var metrics *swagger.Metrics
	reg := prometheus.NewRegistry()
	if opts.Metrics {
		metrics = swagger.NewMetrics(reg)
	}

	build := func() (*swagger.Document, error) {
		doc, err := buildDocument(ctx, opts.Options, log)
		if err != nil {
			log.WithError(err).Error("failed to build swagger document")
		}
		if metrics != nil {
			metrics.ObserveBuild(err)
		}
		return doc, err
	}

	middleware := []func(http.Handler) http.Handler{
		swagger.RequestIDMiddleware(swagger.RequestIDConfig{TrustIncoming: true}),
		swagger.RecoveryMiddleware(log),
	}
	if metrics != nil {
		middleware = append(middleware, metrics.Middleware)
	}

	docs := swagger.NewHandler(build, &swagger.HandlerConfig{
		BasePath:   opts.BasePath,
		Middleware: middleware,
	})
	if metrics == nil {
		return docs
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/", docs)
	return mux
}

func runServe(ctx context.Context, opts *ServeOptions, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           newServeHandler(ctx, opts, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", opts.Addr).Infof("serving documentation under %s", opts.BasePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
