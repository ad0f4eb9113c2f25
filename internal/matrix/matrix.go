// Package matrix holds the rectangular row tables fed to the clustering engines.
package matrix

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidInput is returned for inputs no clustering run can be built from.
var ErrInvalidInput = errors.New("invalid input")

// Matrix is an ordered list of equal length rows, one row per entity to cluster.
// Rows are never modified by the engines.
type Matrix [][]float64

// Validate reports an ErrInvalidInput when m is empty, has zero width or is ragged.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("%w: empty matrix", ErrInvalidInput)
	}
	width := len(m[0])
	if width == 0 {
		return fmt.Errorf("%w: rows have no columns", ErrInvalidInput)
	}
	for i, row := range m {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidInput, i, len(row), width)
		}
	}
	return nil
}

// Cols returns the row width, 0 for an empty matrix.
func (m Matrix) Cols() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Bounds returns the per column minimum and maximum. m must be valid.
func (m Matrix) Bounds() (mins, maxs []float64) {
	mins = make([]float64, m.Cols())
	maxs = make([]float64, m.Cols())
	col := make([]float64, len(m))
	for j := range mins {
		for i, row := range m {
			col[i] = row[j]
		}
		mins[j] = floats.Min(col)
		maxs[j] = floats.Max(col)
	}
	return mins, maxs
}

// Transpose swaps rows and columns, so columns can be clustered by their values across rows.
func (m Matrix) Transpose() (Matrix, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	d := mat.NewDense(len(m), m.Cols(), nil)
	for i, row := range m {
		d.SetRow(i, row)
	}
	t := mat.DenseCopyOf(d.T())
	r, _ := t.Dims()
	out := make(Matrix, r)
	for i := range out {
		out[i] = mat.Row(nil, i, t)
	}
	return out, nil
}
