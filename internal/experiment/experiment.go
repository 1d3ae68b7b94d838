// Package experiment drives a full run: batches are issued sequentially to
// stay under the batch memory budget, sums are accumulated in the run
// precision, then converted to means and optionally normalized to the
// longest diagonal.
package experiment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/23skdu/cubedist/internal/dtype"
	"github.com/23skdu/cubedist/internal/sampler"
)

// Params describes one run.
type Params struct {
	MaxDim      int
	MaxPower    int
	Samples     int
	BatchBudget int
	Normalize   bool
}

// MaxBatchSamples returns the per-batch sample ceiling implied by the batch
// budget: budget / maxDim / maxPower, never less than one. The budget bounds
// the number of parallel values a batch materializes, so smaller budgets
// trade more sequential batches for lower peak memory without changing the
// result beyond summation-order rounding.
func (p Params) MaxBatchSamples() int {
	n := p.BatchBudget / p.MaxDim / p.MaxPower
	if n < 1 {
		n = 1
	}
	return n
}

// Runner accumulates sampler batches into a means table.
type Runner struct {
	ops dtype.Ops
	s   *sampler.Sampler
	log zerolog.Logger
}

// NewRunner builds a Runner. The precision must match the one the sampler
// was built with; all accumulation arithmetic runs at that width.
func NewRunner(prec dtype.Precision, s *sampler.Sampler, log zerolog.Logger) *Runner {
	return &Runner{
		ops: prec.Ops(),
		s:   s,
		log: log,
	}
}

// Run executes the batch loop and returns the finalized means table.
func (r *Runner) Run(ctx context.Context, p Params) (*sampler.Table, error) {
	maxBatch := p.MaxBatchSamples()
	acc := sampler.NewTable(p.MaxDim, p.MaxPower)

	done := 0
	batches := 0
	for done < p.Samples {
		n := p.Samples - done
		if n > maxBatch {
			n = maxBatch
		}
		t, err := r.s.SampleBatch(ctx, n, p.MaxDim, p.MaxPower)
		if err != nil {
			return nil, fmt.Errorf("sample batch: %w", err)
		}
		for d := 0; d < p.MaxDim; d++ {
			for k := 0; k < p.MaxPower; k++ {
				acc.Set(d, k, r.ops.Add(acc.At(d, k), t.At(d, k)))
			}
		}
		done += n
		batches++
		r.log.Debug().
			Int("batch_samples", n).
			Int("samples_done", done).
			Msg("batch complete")
	}

	// Sums to means. The divisor is narrowed to the run precision first, so
	// half precision saturates here for large sample counts exactly as a
	// native fp16 pipeline would.
	total := float64(p.Samples)
	for d := 0; d < p.MaxDim; d++ {
		for k := 0; k < p.MaxPower; k++ {
			acc.Set(d, k, r.ops.Div(acc.At(d, k), total))
		}
	}

	if p.Normalize {
		r.normalize(acc)
	}

	r.log.Info().
		Int("batches", batches).
		Int("samples", done).
		Msg("run complete")
	return acc, nil
}

// normalize divides row d, column k by (d+1)^(1/(k+1)), the L(k+1) length of
// the unit hypercube's longest diagonal in dimension d+1, so every entry
// lands in a constant range regardless of dimension.
func (r *Runner) normalize(t *sampler.Table) {
	for k := 0; k < t.Powers; k++ {
		invp := r.ops.Div(1, float64(k+1))
		for d := 0; d < t.Dims; d++ {
			diag := r.ops.Pow(float64(d+1), invp)
			t.Set(d, k, r.ops.Div(t.At(d, k), diag))
		}
	}
}
