// Package config holds the runtime configuration for the suspension logger.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the capture configuration. Values come from ACSUSP_* environment
// variables with the defaults below; CLI flags override both.
type Config struct {
	// SampleRateHz is the polling frequency. Rates between 10 and 60 Hz
	// are sensible; the producer updates much faster than either.
	SampleRateHz float64 `env:"ACSUSP_SAMPLE_HZ" envDefault:"10"`

	// OutputDir receives one JSON session file per run.
	OutputDir string `env:"ACSUSP_OUTPUT_DIR" envDefault:"data"`

	// FlushEvery is the auto-flush threshold in samples.
	FlushEvery int `env:"ACSUSP_FLUSH_EVERY" envDefault:"100"`

	// RegionName is the producer's shared-memory mapping name.
	RegionName string `env:"ACSUSP_SHM_NAME" envDefault:"Local\\acpmf_physics"`

	// StaleLimit is how many consecutive unchanged packet ids are tolerated
	// before a read reports the producer as idle.
	StaleLimit int `env:"ACSUSP_STALE_LIMIT" envDefault:"3"`

	// DBFile is the sqlite session catalog path; empty disables the catalog.
	DBFile string `env:"ACSUSP_DB_FILE" envDefault:"sessions.db"`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the capture loop cannot run with.
func (c *Config) Validate() error {
	if c.SampleRateHz <= 0 {
		return fmt.Errorf("config: sample rate must be positive, got %g", c.SampleRateHz)
	}
	if c.FlushEvery <= 0 {
		return fmt.Errorf("config: flush threshold must be positive, got %d", c.FlushEvery)
	}
	if c.StaleLimit <= 0 {
		return fmt.Errorf("config: stale limit must be positive, got %d", c.StaleLimit)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("config: output directory is required")
	}
	if c.RegionName == "" {
		return fmt.Errorf("config: shared-memory region name is required")
	}
	return nil
}
