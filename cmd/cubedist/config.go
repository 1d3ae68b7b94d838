package main

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all run parameters. Struct defaults are overridden by
// CUBEDIST_* environment variables, which are in turn overridden by command
// line flags.
type Config struct {
	MaxDim      int    `envconfig:"MAX_DIM" default:"100"`
	MaxPower    int    `envconfig:"MAX_POWER" default:"3"`
	Samples     int    `envconfig:"SAMPLES" default:"1000000"`
	Normalize   bool   `envconfig:"NORMALIZE" default:"false"`
	BatchBudget int    `envconfig:"BATCH_BUDGET" default:"1000000"`
	Precision   string `envconfig:"PRECISION" default:"double"`
	Seed        int64  `envconfig:"SEED" default:"0"`
	Workers     int    `envconfig:"WORKERS" default:"0"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"console"`
}

// Config validation errors
var (
	ErrInvalidMaxDim      = errors.New("max dimension must be positive")
	ErrInvalidMaxPower    = errors.New("max power must be positive")
	ErrInvalidSamples     = errors.New("sample count must be positive")
	ErrInvalidBatchBudget = errors.New("batch budget must be positive")
)

// LoadConfig resolves struct defaults and environment overrides. A local
// .env file is loaded first if present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("cubedist", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidateConfig validates the configuration and returns an error if invalid.
// Precision is validated separately by dtype.Parse, before any sampling.
func ValidateConfig(cfg *Config) error {
	if cfg.MaxDim <= 0 {
		return ErrInvalidMaxDim
	}
	if cfg.MaxPower <= 0 {
		return ErrInvalidMaxPower
	}
	if cfg.Samples <= 0 {
		return ErrInvalidSamples
	}
	if cfg.BatchBudget <= 0 {
		return ErrInvalidBatchBudget
	}
	return nil
}
