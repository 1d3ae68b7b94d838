// Package sampler draws batches of uniform random point pairs in the unit
// hypercube and accumulates p-norm distance sums for every prefix dimension
// and every integer power at once.
//
// The kernel fixes the arithmetic order: per-coordinate absolute difference,
// integer powers by repeated multiplication, an inclusive running sum along
// the dimension axis, then the 1/p root. Changing that order changes the
// floating point rounding, so it is part of the contract.
package sampler

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/23skdu/cubedist/internal/dtype"
	"github.com/23skdu/cubedist/internal/metrics"
)

// seedStep spaces per-worker RNG streams. Odd so consecutive stream seeds
// never collide.
const seedStep = 0x2545F4914F6CDD1D

// Sampler draws sample batches at a fixed precision. Batches issued from one
// Sampler draw fresh, independent streams; two Samplers built with the same
// seed replay identical streams.
type Sampler struct {
	ops     dtype.Ops
	workers int
	seed    int64
	streams int64
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithWorkers sets the number of goroutines a batch fans out over. Values
// below one select one worker per CPU.
func WithWorkers(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New returns a Sampler for the given precision. A zero seed is replaced
// with a clock-derived one, matching the usual run-to-run nondeterminism;
// pass a fixed seed for reproducible output.
func New(prec dtype.Precision, seed int64, opts ...Option) *Sampler {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Sampler{
		ops:     prec.Ops(),
		workers: runtime.GOMAXPROCS(0),
		seed:    seed,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SampleBatch draws nSamples point pairs and returns a maxDim x maxPower
// table where cell (d, k) is the sum over the batch of the L(k+1)-norm
// distance restricted to the first d+1 coordinates.
//
// The batch is split across workers; each worker owns a private RNG stream
// and a private partial table, and partials are reduced in worker order so
// a fixed (seed, workers) pair is bit-for-bit repeatable. The only error is
// context cancellation.
func (s *Sampler) SampleBatch(ctx context.Context, nSamples, maxDim, maxPower int) (*Table, error) {
	start := time.Now()

	// Materialize the 1/p exponents once, in the run precision.
	invPow := make([]float64, maxPower)
	for k := range invPow {
		invPow[k] = s.ops.Div(1, float64(k+1))
	}

	workers := s.workers
	if workers > nSamples {
		workers = nSamples
	}
	if workers < 1 {
		workers = 1
	}

	parts := make([][]float64, workers)
	g, gctx := errgroup.WithContext(ctx)
	base, rem := nSamples/workers, nSamples%workers
	for i := 0; i < workers; i++ {
		n := base
		if i < rem {
			n++
		}
		rng := rand.New(rand.NewSource(s.nextStreamSeed()))
		out := make([]float64, maxDim*maxPower)
		parts[i] = out
		g.Go(func() error {
			return s.sampleInto(gctx, rng, n, maxDim, maxPower, invPow, out)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := NewTable(maxDim, maxPower)
	for _, part := range parts {
		for i, v := range part {
			t.cells[i] = s.ops.Add(t.cells[i], v)
		}
	}

	metrics.SamplesDrawnTotal.Add(float64(nSamples))
	metrics.BatchesCompletedTotal.Inc()
	metrics.BatchDurationSeconds.Observe(time.Since(start).Seconds())
	return t, nil
}

func (s *Sampler) nextStreamSeed() int64 {
	s.streams++
	return s.seed + s.streams*seedStep
}

// sampleInto runs the kernel for n samples, accumulating norm sums into out
// (row-major dim x power). run[k] carries the inclusive cumulative sum of
// (k+1)-th power coordinate differences for the current sample.
func (s *Sampler) sampleInto(ctx context.Context, rng *rand.Rand, n, maxDim, maxPower int, invPow, out []float64) error {
	o := s.ops
	run := make([]float64, maxPower)
	for i := 0; i < n; i++ {
		if i&0x3ff == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for k := range run {
			run[k] = 0
		}
		for d := 0; d < maxDim; d++ {
			diff := o.Abs(o.Sub(o.Uniform(rng), o.Uniform(rng)))
			pw := diff
			for k := 0; k < maxPower; k++ {
				if k > 0 {
					// Repeated multiplication, not a generic power
					// function: the cumulative product fixes rounding.
					pw = o.Mul(pw, diff)
				}
				run[k] = o.Add(run[k], pw)
				idx := d*maxPower + k
				out[idx] = o.Add(out[idx], o.Pow(run[k], invPow[k]))
			}
		}
	}
	return nil
}
