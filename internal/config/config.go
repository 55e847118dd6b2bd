// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all crmclean configuration.
type Config struct {
	Input  Input  `yaml:"input"`
	Output Output `yaml:"output"`
	Log    Log    `yaml:"log"`
}

// Input holds source file settings.
type Input struct {
	Path string `yaml:"path" validate:"required"`
}

// Output holds export settings.
type Output struct {
	Path      string `yaml:"path" validate:"required"`
	Format    string `yaml:"format" validate:"oneof=csv tsv json"` // "csv" | "tsv" | "json"
	Overwrite bool   `yaml:"overwrite"`                            // Replace an existing output file
}

// Log holds diagnostic logging settings.
type Log struct {
	Env   string `yaml:"env" validate:"oneof=development production"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Input: Input{
			Path: "contacts_raw.txt",
		},
		Output: Output{
			Path:      "contact_clean.csv",
			Format:    "csv",
			Overwrite: true,
		},
		Log: Log{
			Env:   "development",
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML keys so errors match the config file.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("config: %w", err)
	}

	fe := verrs[0]
	// Namespace is "Config.output.format"; drop the type name.
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("config: %s cannot be empty", field)
	case "oneof":
		return fmt.Errorf("config: %s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("config: %s failed %q", field, fe.Tag())
	}
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CRMCLEAN_INPUT, CRMCLEAN_OUTPUT, CRMCLEAN_FORMAT,
// CRMCLEAN_OVERWRITE, CRMCLEAN_LOG_LEVEL, CRMCLEAN_LOG_ENV.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("CRMCLEAN_INPUT"); v != "" {
		c.Input.Path = v
	}
	if v := os.Getenv("CRMCLEAN_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("CRMCLEAN_FORMAT"); v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v := os.Getenv("CRMCLEAN_OVERWRITE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid CRMCLEAN_OVERWRITE %q: %w", v, err)
		}
		c.Output.Overwrite = b
	}
	if v := os.Getenv("CRMCLEAN_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("CRMCLEAN_LOG_ENV"); v != "" {
		c.Log.Env = strings.ToLower(v)
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Input  *rawInput  `yaml:"input"`
	Output *rawOutput `yaml:"output"`
	Log    *rawLog    `yaml:"log"`
}

type rawInput struct {
	Path *string `yaml:"path"`
}

type rawOutput struct {
	Path      *string `yaml:"path"`
	Format    *string `yaml:"format"`
	Overwrite *bool   `yaml:"overwrite"`
}

type rawLog struct {
	Env   *string `yaml:"env"`
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Input != nil {
		if layer.Input.Path != nil {
			c.Input.Path = *layer.Input.Path
		}
	}
	if layer.Output != nil {
		if layer.Output.Path != nil {
			c.Output.Path = *layer.Output.Path
		}
		if layer.Output.Format != nil {
			c.Output.Format = *layer.Output.Format
		}
		if layer.Output.Overwrite != nil {
			c.Output.Overwrite = *layer.Output.Overwrite
		}
	}
	if layer.Log != nil {
		if layer.Log.Env != nil {
			c.Log.Env = *layer.Log.Env
		}
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
	}
}
