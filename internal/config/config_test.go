package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 10.0, cfg.SampleRateHz)
	require.Equal(t, "data", cfg.OutputDir)
	require.Equal(t, 100, cfg.FlushEvery)
	require.Equal(t, `Local\acpmf_physics`, cfg.RegionName)
	require.Equal(t, 3, cfg.StaleLimit)
	require.Equal(t, "sessions.db", cfg.DBFile)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ACSUSP_SAMPLE_HZ", "60")
	t.Setenv("ACSUSP_OUTPUT_DIR", "/var/lib/suspension")
	t.Setenv("ACSUSP_FLUSH_EVERY", "500")
	t.Setenv("ACSUSP_STALE_LIMIT", "10")
	t.Setenv("ACSUSP_DB_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 60.0, cfg.SampleRateHz)
	require.Equal(t, "/var/lib/suspension", cfg.OutputDir)
	require.Equal(t, 500, cfg.FlushEvery)
	require.Equal(t, 10, cfg.StaleLimit)
	require.Empty(t, cfg.DBFile, "empty db file disables the catalog")
	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("ACSUSP_SAMPLE_HZ", "fast")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			SampleRateHz: 10,
			OutputDir:    "data",
			FlushEvery:   100,
			RegionName:   `Local\acpmf_physics`,
			StaleLimit:   3,
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rate", func(c *Config) { c.SampleRateHz = 0 }},
		{"negative rate", func(c *Config) { c.SampleRateHz = -5 }},
		{"zero flush threshold", func(c *Config) { c.FlushEvery = 0 }},
		{"zero stale limit", func(c *Config) { c.StaleLimit = 0 }},
		{"missing output dir", func(c *Config) { c.OutputDir = "" }},
		{"missing region name", func(c *Config) { c.RegionName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
