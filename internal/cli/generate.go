package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vitalvas/routedoc/swagger"
)

var generateRunner = runGenerate

func newGenerateCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the Swagger document of a route manifest",
		Long: "Generate a Swagger 2.0 document from a route manifest. " +
			"The document is written to stdout unless --out is given.",
		Example: strings.TrimSpace(`  routedoc generate --routes routes.yaml --format yaml
  routedoc --config routedoc.yaml generate -r routes.yaml --models ./app/... --out swagger.json`),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}

			out, err := cmd.Flags().GetString("out")
			if err != nil {
				return err
			}
			return generateRunner(cmd.Context(), opts, log, outputTarget(cmd, strings.TrimSpace(out)))
		},
	}

	flags := cmd.Flags()
	addGenerationFlags(flags)
	flags.StringP("format", "f", "json", "Output format (json|yaml)")
	flags.StringP("out", "o", "", "Output file (default: stdout)")

	return cmd
}

// target opens the destination of a generated document.
type target func() (io.WriteCloser, error)

func outputTarget(cmd *cobra.Command, path string) target {
	if path == "" || path == "-" {
		return func() (io.WriteCloser, error) {
			return nopCloser{cmd.OutOrStdout()}, nil
		}
	}
	return func() (io.WriteCloser, error) {
		return os.Create(path)
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func runGenerate(ctx context.Context, opts *Options, log logrus.FieldLogger, open target) error {
	doc, err := buildDocument(ctx, opts, log)
	if err != nil {
		return err
	}

	data, err := swagger.Marshal(doc, opts.Format)
	if err != nil {
		return err
	}

	w, err := open()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"paths":  doc.Paths.Len(),
		"format": opts.Format,
	}).Debug("document written")
	return nil
}
