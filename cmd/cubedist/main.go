// Command cubedist estimates, by Monte Carlo sampling, the average p-norm
// distance between two uniformly random points in a unit hypercube, for
// every dimension up to -d and every norm power up to -p, and prints the
// resulting table as CSV on stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/23skdu/cubedist/internal/dtype"
	"github.com/23skdu/cubedist/internal/experiment"
	"github.com/23skdu/cubedist/internal/logging"
	"github.com/23skdu/cubedist/internal/sampler"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cubedist:", err)
		os.Exit(1)
	}

	flag.IntVar(&cfg.MaxDim, "d", cfg.MaxDim, "Maximum hypercube dimensions")
	flag.IntVar(&cfg.MaxPower, "p", cfg.MaxPower, "Maximum power of the p-norm")
	flag.IntVar(&cfg.Samples, "r", cfg.Samples, "Number of Monte Carlo samples for each entry")
	flag.BoolVar(&cfg.Normalize, "n", cfg.Normalize, "Normalize to the longest diagonal")
	flag.IntVar(&cfg.BatchBudget, "b", cfg.BatchBudget, "Maximum number of parallel values computed in each batch")
	flag.StringVar(&cfg.Precision, "f", cfg.Precision, "Floating point precision: half, single or double")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 seeds from the clock)")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Sampling workers per batch (0 uses all CPUs)")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Address to serve Prometheus metrics on (empty disables)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json or console")
	flag.Parse()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "cubedist:", err)
		os.Exit(1)
	}

	if err := ValidateConfig(&cfg); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	prec, err := dtype.Parse(cfg.Precision)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	if cfg.MetricsAddr != "" {
		go func() {
			logger.Info().Str("address", cfg.MetricsAddr).Msg("starting metrics server")
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Error().Err(err).Msg("metrics server failed")
			}
		}()
	}

	s := sampler.New(prec, cfg.Seed, sampler.WithWorkers(cfg.Workers))
	runner := experiment.NewRunner(prec, s, logger)

	logger.Info().
		Int("max_dim", cfg.MaxDim).
		Int("max_power", cfg.MaxPower).
		Int("samples", cfg.Samples).
		Str("precision", prec.String()).
		Msg("starting run")

	means, err := runner.Run(context.Background(), experiment.Params{
		MaxDim:      cfg.MaxDim,
		MaxPower:    cfg.MaxPower,
		Samples:     cfg.Samples,
		BatchBudget: cfg.BatchBudget,
		Normalize:   cfg.Normalize,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}

	if err := experiment.WriteCSV(os.Stdout, means); err != nil {
		logger.Fatal().Err(err).Msg("failed to write results")
	}
}
