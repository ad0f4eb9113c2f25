package distance

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Func represents a function for measuring dissimilarity between n-dimensional vectors.
// Both vectors must have the same length. Engines minimize the returned value.
type Func func([]float64, []float64) float64

var (
	// EuclideanDistance is one of the common distance measurement.
	EuclideanDistance Func = func(a, b []float64) float64 {
		return floats.Distance(a, b, 2)
	}

	// EuclideanDistanceSquared is one of the common distance measurement.
	EuclideanDistanceSquared Func = func(a, b []float64) float64 {
		var (
			s, t float64
		)

		for i := range a {
			t = a[i] - b[i]
			s += t * t
		}

		return s
	}

	// EuclideanSimilarity maps the euclidean distance into (0, 1], 1 meaning identical vectors.
	// Used as a distance it is largest for the closest vectors.
	EuclideanSimilarity Func = func(a, b []float64) float64 {
		return 1 / (1 + floats.Distance(a, b, 2))
	}

	// Manhattan is the sum of absolute component differences.
	Manhattan Func = func(a, b []float64) float64 {
		return floats.Distance(a, b, 1)
	}

	// Pearson returns 1 minus the correlation coefficient of a and b.
	// When either vector is constant the correlation is undefined and 0 is returned.
	Pearson Func = func(a, b []float64) float64 {
		if constant(a) || constant(b) {
			return 0
		}
		r := stat.Correlation(a, b, nil)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return 0
		}
		return 1 - r
	}

	// Tanimoto treats every nonzero component as set membership and returns
	// 1 - |A∩B| / |A∪B|. Two vectors without any nonzero component are
	// completely dissimilar (1.0).
	Tanimoto Func = func(a, b []float64) float64 {
		var c1, c2, shared int
		for i := range a {
			if a[i] != 0 {
				c1++
			}
			if b[i] != 0 {
				c2++
			}
			if a[i] != 0 && b[i] != 0 {
				shared++
			}
		}
		union := c1 + c2 - shared
		if union == 0 {
			return 1
		}
		return 1 - float64(shared)/float64(union)
	}

	// Cosine returns 1 minus the cosine of the angle between a and b.
	// A zero vector has no direction, so it is completely dissimilar (1.0) to anything.
	Cosine Func = func(a, b []float64) float64 {
		na, nb := floats.Norm(a, 2), floats.Norm(b, 2)
		if na == 0 || nb == 0 {
			return 1
		}
		return 1 - floats.Dot(a, b)/(na*nb)
	}
)

func constant(v []float64) bool {
	return floats.Min(v) == floats.Max(v)
}

var byName = map[string]Func{
	"pearson":              Pearson,
	"euclidean":            EuclideanDistance,
	"euclidean-squared":    EuclideanDistanceSquared,
	"euclidean-similarity": EuclideanSimilarity,
	"manhattan":            Manhattan,
	"tanimoto":             Tanimoto,
	"cosine":               Cosine,
}

// Lookup returns the strategy registered under name.
func Lookup(name string) (Func, error) {
	fn, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown distance %q, expected one of %v", name, Names())
	}
	return fn, nil
}

// Names lists the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
