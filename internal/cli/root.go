// Package cli implements the routedoc command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	formatters "github.com/fabienm/go-logrus-formatters"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Execute runs the routedoc CLI until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	log := logrus.New()

	cmd := &cobra.Command{
		Use:   "routedoc",
		Short: "Generate Swagger 2.0 documents from route tables",
		Long: "routedoc documents the routes of an HTTP application as a Swagger 2.0 " +
			"document, using handler doc comments, validation rules and model declarations.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(cmd, log)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.SetFlagErrorFunc(flagError)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")
	cmd.PersistentFlags().String("log-format", "text", "Log format (text|gelf)")

	for _, sub := range []*cobra.Command{newGenerateCmd(log), newServeCmd(log)} {
		sub.SetFlagErrorFunc(flagError)
		cmd.AddCommand(sub)
	}

	return cmd
}

// flagError turns cobra flag errors into usage errors that include the
// command's help text.
func flagError(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}

func setupLogger(cmd *cobra.Command, log *logrus.Logger) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}

	format, err := cmd.Flags().GetString("log-format")
	if err != nil {
		return err
	}

	var formatter logrus.Formatter
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		formatter = &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		}
	case "gelf":
		hostname, _ := os.Hostname()
		formatter = formatters.NewGelf(hostname)
	default:
		return newUsageError(fmt.Sprintf("unsupported --log-format %q (allowed: text, gelf)", format))
	}

	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(formatter)

	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return nil
}
