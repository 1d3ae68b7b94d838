package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/cubedist/internal/dtype"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.MaxDim)
	assert.Equal(t, 3, cfg.MaxPower)
	assert.Equal(t, 1000000, cfg.Samples)
	assert.False(t, cfg.Normalize)
	assert.Equal(t, 1000000, cfg.BatchBudget)
	assert.Equal(t, "double", cfg.Precision)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("CUBEDIST_MAX_DIM", "7")
	t.Setenv("CUBEDIST_PRECISION", "single")
	t.Setenv("CUBEDIST_NORMALIZE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MaxDim)
	assert.Equal(t, "single", cfg.Precision)
	assert.True(t, cfg.Normalize)
}

func TestValidateConfig(t *testing.T) {
	valid := Config{
		MaxDim:      100,
		MaxPower:    3,
		Samples:     1000000,
		BatchBudget: 1000000,
		Precision:   "double",
	}
	require.NoError(t, ValidateConfig(&valid))

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero max dim", func(c *Config) { c.MaxDim = 0 }, ErrInvalidMaxDim},
		{"negative max power", func(c *Config) { c.MaxPower = -1 }, ErrInvalidMaxPower},
		{"zero samples", func(c *Config) { c.Samples = 0 }, ErrInvalidSamples},
		{"zero batch budget", func(c *Config) { c.BatchBudget = 0 }, ErrInvalidBatchBudget},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.ErrorIs(t, ValidateConfig(&cfg), tc.wantErr)
		})
	}
}

func TestPrecisionGateRejectsUnknownValue(t *testing.T) {
	// The precision check runs before any sampler is constructed; the error
	// must name the offending value.
	_, err := dtype.Parse("float128")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "float128")
}
