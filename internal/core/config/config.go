// Package config handles configuration loading and validation for fastcuid.
package config

import (
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/hay-kot/fastcuid/pkg/cuid2"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the application configuration.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Batch     BatchConfig     `yaml:"batch"`
	Output    OutputConfig    `yaml:"output"`
}

// GeneratorConfig configures the identifier generator.
type GeneratorConfig struct {
	// RandomBytes is the number of fresh random bytes mixed into each identifier.
	RandomBytes int `yaml:"random_bytes"`
	// Salt is mixed into the process fingerprint.
	Salt string `yaml:"salt"`
	// EagerInit initializes the generator at startup instead of on first use.
	EagerInit bool `yaml:"eager_init"`
}

// BatchConfig configures bulk generation.
type BatchConfig struct {
	Workers  int `yaml:"workers"`
	MaxCount int `yaml:"max_count"`
}

// OutputConfig configures how identifiers are written.
type OutputConfig struct {
	Format   string `yaml:"format"`   // text or json
	Template string `yaml:"template"` // optional per-identifier template
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Generator: GeneratorConfig{
			RandomBytes: cuid2.DefaultRandomBytes,
			EagerInit:   true,
		},
		Batch: BatchConfig{
			Workers:  4,
			MaxCount: 1_000_000,
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults. Keys missing
// from the file keep their default; keys that are present are taken as
// written, so an explicit zero is validated rather than replaced.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder
	return c.validateFields(errs).ToError()
}

func (c *Config) validateFields(errs criterio.FieldErrorsBuilder) criterio.FieldErrorsBuilder {
	if n := c.Generator.RandomBytes; n < cuid2.MinRandomBytes || n > cuid2.MaxRandomBytes {
		errs = errs.Append("generator.random_bytes",
			fmt.Errorf("must be between %d and %d, got %d", cuid2.MinRandomBytes, cuid2.MaxRandomBytes, n))
	}

	if c.Batch.Workers < 1 {
		errs = errs.Append("batch.workers", fmt.Errorf("must be at least 1"))
	}

	if c.Batch.MaxCount < 1 {
		errs = errs.Append("batch.max_count", fmt.Errorf("must be at least 1"))
	}

	if !IsValidFormat(c.Output.Format) {
		errs = errs.Append("output.format", fmt.Errorf("unknown format %q (want %s or %s)", c.Output.Format, FormatText, FormatJSON))
	}

	return errs
}

// GeneratorOptions converts the generator section into cuid2 options.
func (c *Config) GeneratorOptions() []cuid2.Option {
	opts := []cuid2.Option{cuid2.WithRandomBytes(c.Generator.RandomBytes)}
	if c.Generator.Salt != "" {
		opts = append(opts, cuid2.WithSalt([]byte(c.Generator.Salt)))
	}
	return opts
}

// IsValidFormat reports whether format is a supported output format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatText, FormatJSON:
		return true
	default:
		return false
	}
}
