package sampler

// Table holds one value per (dimension, power) pair. Row d (zero-indexed)
// covers hypercube dimension d+1; column k covers norm power k+1. Cells are
// float64 carriers but only ever hold values representable in the run
// precision that produced them.
type Table struct {
	Dims   int
	Powers int
	cells  []float64
}

// NewTable returns a zeroed dims x powers table.
func NewTable(dims, powers int) *Table {
	return &Table{
		Dims:   dims,
		Powers: powers,
		cells:  make([]float64, dims*powers),
	}
}

// At returns the cell for zero-indexed dimension d and power k.
func (t *Table) At(d, k int) float64 {
	return t.cells[d*t.Powers+k]
}

// Set stores v in the cell for zero-indexed dimension d and power k.
func (t *Table) Set(d, k int, v float64) {
	t.cells[d*t.Powers+k] = v
}
