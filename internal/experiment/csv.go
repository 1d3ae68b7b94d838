package experiment

import (
	"bufio"
	"fmt"
	"io"

	"github.com/23skdu/cubedist/internal/sampler"
)

// WriteCSV renders the means table as comma separated rows: a header line
// `DIM\Power, 1, ..., P`, then one line per dimension with the 1-indexed
// dimension followed by one value per power, each with six decimal places.
func WriteCSV(w io.Writer, t *sampler.Table) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(`DIM\Power`); err != nil {
		return err
	}
	for k := 1; k <= t.Powers; k++ {
		if _, err := fmt.Fprintf(bw, ", %d", k); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	for d := 0; d < t.Dims; d++ {
		if _, err := fmt.Fprintf(bw, "%d", d+1); err != nil {
			return err
		}
		for k := 0; k < t.Powers; k++ {
			if _, err := fmt.Fprintf(bw, ", %.6f", t.At(d, k)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
