package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vitalvas/routedoc/config"
	"github.com/vitalvas/routedoc/generator"
	"github.com/vitalvas/routedoc/routes"
	"github.com/vitalvas/routedoc/source"
	"github.com/vitalvas/routedoc/swagger"
)

// Options captures the inputs of a generation run after merging defaults
// and command line flags.
type Options struct {
	ConfigPath string
	Routes     string
	Models     []string
	Dir        string
	Filter     *string
	Preset     string
	Format     swagger.Format
	Lenient    bool
	SingleBody bool
	Verbose    bool
}

func defaultOptions() Options {
	return Options{
		Dir:    ".",
		Format: swagger.FormatJSON,
	}
}

func addGenerationFlags(flags *pflag.FlagSet) {
	flags.StringP("routes", "r", "", "Route manifest path (YAML)")
	flags.StringSlice("models", nil, "Go package patterns to read model and handler doc comments from")
	flags.String("dir", "", "Directory package patterns are resolved in (default: current directory)")
	flags.String("filter", "", "Only document routes whose URI starts with this prefix")
	flags.String("preset", "", "Configuration preset to apply")
	flags.Bool("lenient", false, "Skip model properties of unmapped types instead of failing")
	flags.Bool("single-body", false, "Document request bodies as a single object parameter")
}

func resolveOptions(cmd *cobra.Command) (*Options, error) {
	opts := defaultOptions()
	flags := cmd.Flags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	opts.ConfigPath = strings.TrimSpace(configPath)

	if err := applyFlagOverrides(flags, &opts); err != nil {
		return nil, err
	}

	if opts.Routes == "" {
		return nil, newUsageError(cmd.CommandPath() + ": --routes is required")
	}
	return &opts, nil
}

func applyFlagOverrides(flags *pflag.FlagSet, opts *Options) error {
	if flags.Changed("routes") {
		value, err := flags.GetString("routes")
		if err != nil {
			return err
		}
		opts.Routes = strings.TrimSpace(value)
	}
	if flags.Changed("models") {
		value, err := flags.GetStringSlice("models")
		if err != nil {
			return err
		}
		opts.Models = sanitizeList(value)
	}
	if flags.Changed("dir") {
		value, err := flags.GetString("dir")
		if err != nil {
			return err
		}
		if value = strings.TrimSpace(value); value != "" {
			opts.Dir = value
		}
	}
	if flags.Changed("filter") {
		value, err := flags.GetString("filter")
		if err != nil {
			return err
		}
		opts.Filter = &value
	}
	if flags.Changed("preset") {
		value, err := flags.GetString("preset")
		if err != nil {
			return err
		}
		opts.Preset = strings.TrimSpace(value)
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		value, err := flags.GetString("format")
		if err != nil {
			return err
		}
		format, err := swagger.ParseFormat(value)
		if err != nil {
			return newUsageError(fmt.Sprintf("unsupported --format %q (allowed: json, yaml)", value))
		}
		opts.Format = format
	}
	if flags.Changed("lenient") {
		value, err := flags.GetBool("lenient")
		if err != nil {
			return err
		}
		opts.Lenient = value
	}
	if flags.Changed("single-body") {
		value, err := flags.GetBool("single-body")
		if err != nil {
			return err
		}
		opts.SingleBody = value
	}
	if flags.Changed("verbose") {
		value, err := flags.GetBool("verbose")
		if err != nil {
			return err
		}
		opts.Verbose = value
	}
	return nil
}

func sanitizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// buildDocument runs the whole pipeline: configuration, route manifest,
// optional source index, generation.
func buildDocument(ctx context.Context, opts *Options, log logrus.FieldLogger) (*swagger.Document, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	descs, err := routes.LoadManifest(opts.Routes)
	if err != nil {
		return nil, err
	}
	log.WithField("routes", len(descs)).Debugf("loaded route manifest %s", opts.Routes)

	genOpts := []generator.Option{generator.WithLogger(log)}
	if opts.Filter != nil {
		genOpts = append(genOpts, generator.WithRouteFilter(*opts.Filter))
	}
	if opts.Preset != "" {
		genOpts = append(genOpts, generator.WithPreset(opts.Preset))
	}
	if opts.Lenient {
		genOpts = append(genOpts, generator.WithLenientModels())
	}
	if opts.SingleBody {
		genOpts = append(genOpts, generator.WithSingleBody())
	}

	if len(opts.Models) > 0 {
		idx, err := source.Load(ctx, opts.Dir, opts.Models...)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{
			"types": len(idx.Types()),
			"funcs": len(idx.Funcs()),
		}).Debug("indexed source packages")
		genOpts = append(genOpts, generator.WithModels(idx), generator.WithComments(idx))
	}

	return generator.New(cfg, genOpts...).Generate(descs)
}
