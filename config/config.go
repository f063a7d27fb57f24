// Package config holds the generator configuration and loads it from YAML.
//
// Values may reference environment variables (${APP_NAME}); they are
// expanded before the file is decoded. Keys left out of the file keep the
// values from Default.
package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPreset is the preset selected when none is configured.
const DefaultPreset = "default"

// Config is the generator configuration.
type Config struct {
	Title          string            `yaml:"title"`
	Description    string            `yaml:"description"`
	AppVersion     string            `yaml:"appVersion" validate:"required"`
	Host           string            `yaml:"host"`
	BasePath       string            `yaml:"basePath" validate:"required,startswith=/"`
	Schemes        []string          `yaml:"schemes" validate:"dive,oneof=http https ws wss"`
	Consumes       []string          `yaml:"consumes" validate:"dive,required"`
	Produces       []string          `yaml:"produces" validate:"dive,required"`
	IgnoredMethods []string          `yaml:"ignoredMethods" validate:"dive,oneof=get head post put patch delete options"`
	ParseDocBlock  bool              `yaml:"parseDocBlock"`
	BaseResponses  Responses         `yaml:"baseResponses" validate:"dive,keys,required,endkeys"`
	ModResponses   Responses         `yaml:"modResponses" validate:"dive,keys,required,endkeys"`
	GuessTag       bool              `yaml:"guess_tag"`
	ModelNamespace string            `yaml:"model_namespace"`
	Preset         string            `yaml:"preset" validate:"required"`
	Presets        map[string]Preset `yaml:"presets"`
	RouteFilter    string            `yaml:"routeFilter"`
}

// Preset is a named set of generation overrides.
type Preset struct {
	IgnoredControllers []string `yaml:"ignored_controllers"`
}

// Response is a configured default response.
type Response struct {
	Description string `yaml:"description"`
}

// Responses maps status codes to default responses.
type Responses map[string]Response

// Codes returns the status codes in ascending order. Numeric codes sort
// numerically and come before non-numeric keys such as "default".
func (r Responses) Codes() []string {
	codes := make([]string, 0, len(r))
	for code := range r {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		a, errA := strconv.Atoi(codes[i])
		b, errB := strconv.Atoi(codes[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return codes[i] < codes[j]
	})
	return codes
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		AppVersion:     "1.0.0",
		BasePath:       "/",
		IgnoredMethods: []string{"head"},
		ParseDocBlock:  true,
		BaseResponses:  Responses{"200": {Description: "OK"}},
		ModResponses:   Responses{"201": {Description: "OK"}},
		Preset:         DefaultPreset,
		Presets:        map[string]Preset{DefaultPreset: {}},
	}
}

// IgnoredControllers returns the handler names ignored by the named preset.
func (c *Config) IgnoredControllers(preset string) ([]string, bool) {
	p, ok := c.Presets[preset]
	if !ok {
		return nil, preset == DefaultPreset
	}
	return p.IgnoredControllers, true
}

// Validate checks the configuration. Errors satisfy errors.IsNotValid.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return errors.NewNotValid(err, "invalid config: "+strings.Join(msgs, ", "))
		}
		return errors.NewNotValid(err, "invalid config")
	}

	if _, ok := c.IgnoredControllers(c.Preset); !ok {
		return errors.NotValidf("preset %q", c.Preset)
	}
	return nil
}

// Parse decodes YAML configuration on top of Default and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	// Maps given in the file replace the defaults instead of merging.
	cfg.BaseResponses, cfg.ModResponses, cfg.Presets = nil, nil, nil

	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, errors.NewNotValid(err, "parse config")
	}

	def := Default()
	if cfg.BaseResponses == nil {
		cfg.BaseResponses = def.BaseResponses
	}
	if cfg.ModResponses == nil {
		cfg.ModResponses = def.ModResponses
	}
	if cfg.Presets == nil {
		cfg.Presets = def.Presets
	}
	for i, m := range cfg.IgnoredMethods {
		cfg.IgnoredMethods[i] = strings.ToLower(strings.TrimSpace(m))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "read config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Annotatef(err, "load config %s", path)
	}
	return cfg, nil
}
