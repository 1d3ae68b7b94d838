package dtype

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/chewxy/math32"
)

// Precision selects the floating point width used for every random draw and
// every arithmetic step of a run. A run never mixes precisions.
type Precision int

const (
	Half Precision = iota
	Single
	Double
)

// Parse maps a precision name to a Precision. The names match the -f flag
// values: half, single, double.
func Parse(s string) (Precision, error) {
	switch s {
	case "half":
		return Half, nil
	case "single":
		return Single, nil
	case "double":
		return Double, nil
	default:
		return 0, fmt.Errorf("invalid precision %q: must be half, single, or double", s)
	}
}

func (p Precision) String() string {
	switch p {
	case Half:
		return "half"
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return "unknown"
	}
}

// Ops is the arithmetic dispatch table for one precision. Values travel
// between packages as float64 carriers; every operation narrows its operands
// to the target width, computes, and rounds the result back to that width,
// so a carrier never holds a value its precision cannot represent. Half is
// emulated as IEEE binary16 with round-to-nearest after each operation,
// which reproduces the saturation behavior of native fp16 hardware.
type Ops struct {
	Uniform func(rng *rand.Rand) float64
	Add     func(a, b float64) float64
	Sub     func(a, b float64) float64
	Mul     func(a, b float64) float64
	Div     func(a, b float64) float64
	Pow     func(a, b float64) float64
	Abs     func(a float64) float64
}

// Ops returns the dispatch table for p. Selection happens once per run, so
// the hot loops pay no per-element switch.
func (p Precision) Ops() Ops {
	switch p {
	case Half:
		return halfOps()
	case Single:
		return singleOps()
	default:
		return doubleOps()
	}
}

func doubleOps() Ops {
	return Ops{
		Uniform: func(rng *rand.Rand) float64 { return rng.Float64() },
		Add:     func(a, b float64) float64 { return a + b },
		Sub:     func(a, b float64) float64 { return a - b },
		Mul:     func(a, b float64) float64 { return a * b },
		Div:     func(a, b float64) float64 { return a / b },
		Pow:     math.Pow,
		Abs:     math.Abs,
	}
}

func singleOps() Ops {
	return Ops{
		Uniform: func(rng *rand.Rand) float64 { return float64(rng.Float32()) },
		Add:     func(a, b float64) float64 { return float64(float32(a) + float32(b)) },
		Sub:     func(a, b float64) float64 { return float64(float32(a) - float32(b)) },
		Mul:     func(a, b float64) float64 { return float64(float32(a) * float32(b)) },
		Div:     func(a, b float64) float64 { return float64(float32(a) / float32(b)) },
		Pow:     func(a, b float64) float64 { return float64(math32.Pow(float32(a), float32(b))) },
		Abs:     math.Abs,
	}
}

func halfOps() Ops {
	// h narrows an operand to binary16, r rounds a float32 result back to
	// binary16. Sums and products of two binary16 values are exact in
	// float32, so the final rounding is the correctly rounded fp16 result.
	h := func(x float64) float32 { return float16.New(float32(x)).Float32() }
	r := func(x float32) float64 { return float64(float16.New(x).Float32()) }
	return Ops{
		Uniform: func(rng *rand.Rand) float64 { return r(rng.Float32()) },
		Add:     func(a, b float64) float64 { return r(h(a) + h(b)) },
		Sub:     func(a, b float64) float64 { return r(h(a) - h(b)) },
		Mul:     func(a, b float64) float64 { return r(h(a) * h(b)) },
		Div:     func(a, b float64) float64 { return r(h(a) / h(b)) },
		Pow:     func(a, b float64) float64 { return r(math32.Pow(h(a), h(b))) },
		Abs:     math.Abs,
	}
}
