package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/fastcuid/internal/batch"
	"github.com/hay-kot/fastcuid/internal/core/config"
	"github.com/hay-kot/fastcuid/pkg/cuid2"
	"github.com/rs/zerolog/log"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Generator is the process-wide identifier generator
	Generator *cuid2.Generator

	// Batch generates identifiers across worker goroutines
	Batch *batch.Service
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fastcuid", "config.yaml")
}

// NewGenerator builds the process generator from cfg. When eager
// initialization is enabled and fails, the error is logged and the generator
// is still returned: it retries on first use, and commands such as doctor
// can report the failure themselves.
func NewGenerator(cfg *config.Config, opts ...cuid2.Option) *cuid2.Generator {
	gen := cuid2.New(append(cfg.GeneratorOptions(), opts...)...)
	if !cfg.Generator.EagerInit {
		return gen
	}

	if err := gen.Initialize(); err != nil {
		log.Warn().Err(err).Msg("eager generator initialization failed, deferring to first use")
		return gen
	}

	log.Debug().Msg("generator initialized")
	return gen
}

// NewBatchService creates a batch service backed by gen.
func NewBatchService(gen *cuid2.Generator, workers int) *batch.Service {
	return batch.New(gen, workers, log.With().Str("component", "batch").Logger())
}
