package kmeans

import (
	"fmt"

	"github.com/mawngo/pcluster/internal/matrix"
)

// SweepPoint is the outcome of one k in a Sweep.
type SweepPoint struct {
	K             int
	TotalDistance float64
	Iter          int
	Converged     bool
}

// Sweep fits data once for every k in [from, to) with the options of t,
// showing how the total distance falls as clusters are added.
func (t Trainer) Sweep(data matrix.Matrix, from, to int) ([]SweepPoint, error) {
	if from < 1 || to <= from {
		return nil, fmt.Errorf("%w: empty k range [%d, %d)", matrix.ErrInvalidInput, from, to)
	}

	points := make([]SweepPoint, 0, to-from)
	for k := from; k < to; k++ {
		t.k = k
		m, err := t.Fit(data)
		if err != nil {
			return nil, fmt.Errorf("k=%d: %w", k, err)
		}
		points = append(points, SweepPoint{
			K:             k,
			TotalDistance: m.TotalDistance(),
			Iter:          m.Iter(),
			Converged:     m.Converged(),
		})
	}
	return points, nil
}
