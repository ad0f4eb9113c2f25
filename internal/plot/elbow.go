// Package plot renders k sweep results as PNG charts.
package plot

import (
	"fmt"
	"io"

	"github.com/mawngo/pcluster/internal/kmeans"
	"github.com/mawngo/pcluster/internal/matrix"
	"github.com/wcharczuk/go-chart/v2"
)

// Elbow draws total distance against k, the bend of the line hints at a good k.
func Elbow(w io.Writer, points []kmeans.SweepPoint) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: need at least 2 sweep points, got %d", matrix.ErrInvalidInput, len(points))
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.K)
		ys[i] = p.TotalDistance
	}

	graph := chart.Chart{
		Title: "Total distance by cluster count",
		XAxis: chart.XAxis{Name: "k"},
		YAxis: chart.YAxis{Name: "total distance"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "total distance",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return graph.Render(chart.PNG, w)
}
