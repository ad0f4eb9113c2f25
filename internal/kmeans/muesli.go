package kmeans

import (
	"fmt"

	"github.com/mawngo/pcluster/internal/distance"
	"github.com/mawngo/pcluster/internal/matrix"
	"github.com/muesli/clusters"
	mkmeans "github.com/muesli/kmeans"
)

// observation remembers the row an observation was built from.
type observation struct {
	coords clusters.Coordinates
	row    int
}

func (o observation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o observation) Distance(p clusters.Coordinates) float64 {
	return o.coords.Distance(p)
}

// Partition clusters data with the k-means++ implementation of github.com/muesli/kmeans,
// stopping once fewer than delta of the rows change cluster in an iteration.
// It always measures squared euclidean distance; the returned Model uses the same
// measure for Predict and TotalDistance.
func Partition(data matrix.Matrix, k int, delta float64) (*Model, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if k < 1 || k > len(data) {
		return nil, fmt.Errorf("%w: cannot make %d clusters from %d rows", matrix.ErrInvalidInput, k, len(data))
	}
	km, err := mkmeans.NewWithOptions(delta, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", matrix.ErrInvalidInput, err)
	}

	dataset := make(clusters.Observations, len(data))
	for i, row := range data {
		dataset[i] = observation{coords: row, row: i}
	}
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, err
	}

	model := Model{
		data:       data,
		k:          k,
		distanceFn: distance.EuclideanDistanceSquared,
		centroids:  make(matrix.Matrix, k),
		groups:     make([][]int, k),
		mapping:    make([]int, len(data)),
		converged:  true,
	}
	for i, c := range cc {
		model.centroids[i] = c.Center
	}
	// the library may hand one observation to several clusters while
	// refilling empty ones, so membership is taken from the final centers
	for _, o := range dataset {
		n := cc.Nearest(o)
		r := o.(observation).row
		model.mapping[r] = n
		model.groups[n] = append(model.groups[n], r)
		model.total += o.Distance(model.centroids[n])
	}
	return &model, nil
}
