package kmeans

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/mawngo/pcluster/internal/distance"
	"github.com/mawngo/pcluster/internal/matrix"
	"gonum.org/v1/gonum/floats"
)

// Rand is the source of initial centroid positions, *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 {
	return rand.Float64()
}

// ProgressFunc receives the number of finished iterations.
type ProgressFunc func(iter int)

type Trainer struct {
	k             int
	maxIterations int
	distanceFn    distance.Func
	concurrency   int
	rand          Rand
	progress      ProgressFunc
}

type TrainerOption func(*Trainer)

type Model struct {
	distanceFn distance.Func
	k          int
	data       matrix.Matrix
	centroids  matrix.Matrix
	groups     [][]int
	mapping    []int
	iter       int
	converged  bool
	total      float64
}

// NewTrainer create new Trainer for k clusters measured with fn.
func NewTrainer(k int, fn distance.Func, options ...TrainerOption) Trainer {
	t := Trainer{
		k:             k,
		maxIterations: 100,
		distanceFn:    fn,
		concurrency:   1,
		rand:          globalRand{},
	}
	for i := range options {
		options[i](&t)
	}
	return t
}

func WithMaxIterations(i int) TrainerOption {
	return func(t *Trainer) {
		t.maxIterations = i
	}
}

// WithConcurrency searches the nearest centroids of rows with up to n goroutines.
func WithConcurrency(n int) TrainerOption {
	return func(t *Trainer) {
		t.concurrency = max(1, n)
	}
}

// WithRand draws initial centroids from r instead of the global source.
func WithRand(r Rand) TrainerOption {
	return func(t *Trainer) {
		t.rand = r
	}
}

// WithProgress calls fn after every iteration.
func WithProgress(fn ProgressFunc) TrainerOption {
	return func(t *Trainer) {
		t.progress = fn
	}
}

// Fit create and train the *Model.
// Centroids start at random positions inside the per column bounds of data.
// Every iteration moves each row to its nearest centroid, stops when the groups
// did not change, then moves each centroid to the mean of its rows.
// A centroid that gets no rows stays where it is.
func (t Trainer) Fit(data matrix.Matrix) (*Model, error) {
	if t.distanceFn == nil {
		return nil, fmt.Errorf("%w: no distance function", matrix.ErrInvalidInput)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if t.k < 1 || t.k > len(data) {
		return nil, fmt.Errorf("%w: cannot make %d clusters from %d rows", matrix.ErrInvalidInput, t.k, len(data))
	}
	if t.maxIterations < 1 {
		return nil, fmt.Errorf("%w: max iterations must be positive, got %d", matrix.ErrInvalidInput, t.maxIterations)
	}

	model := Model{data: data, k: t.k, distanceFn: t.distanceFn}
	model.initializeMean(t.rand)
	model.mapping = make([]int, len(data))

	var last [][]int
	for iter := 0; iter < t.maxIterations; iter++ {
		t.assign(&model)
		groups := make([][]int, t.k)
		for i, n := range model.mapping {
			groups[n] = append(groups[n], i)
		}
		model.groups = groups
		model.iter = iter + 1
		if t.progress != nil {
			t.progress(model.iter)
		}

		if sameGroups(groups, last) {
			model.converged = true
			break
		}
		last = groups
		model.recenter()
	}

	for i, members := range model.groups {
		for _, r := range members {
			model.total += t.distanceFn(model.centroids[i], data[r])
		}
	}
	return &model, nil
}

// sameGroups compares memberships including order; rows are grouped in ascending
// order, so equal lists mean the same partition.
func sameGroups(a, b [][]int) bool {
	if a == nil || b == nil || len(a) != len(b) {
		return false
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (t Trainer) assign(m *Model) {
	workers := min(t.concurrency, len(m.data))
	if workers <= 1 {
		for i := range m.data {
			m.mapping[i] = m.Predict(m.data[i])
		}
		return
	}

	ch := make(chan int, workers)
	for num := range workers {
		go func() {
			defer func() {
				ch <- num
			}()
			for i := num; i < len(m.data); i += workers {
				m.mapping[i] = m.Predict(m.data[i])
			}
		}()
	}
	for range workers {
		<-ch
	}
}

func (m *Model) initializeMean(r Rand) {
	mins, maxs := m.data.Bounds()
	m.centroids = make(matrix.Matrix, m.k)
	for i := range m.centroids {
		c := make([]float64, len(mins))
		for j := range c {
			c[j] = r.Float64()*(maxs[j]-mins[j]) + mins[j]
		}
		m.centroids[i] = c
	}
}

func (m *Model) recenter() {
	for i, members := range m.groups {
		if len(members) == 0 {
			continue
		}
		c := m.centroids[i]
		clear(c)
		for _, r := range members {
			floats.Add(c, m.data[r])
		}
		floats.Scale(1/float64(len(members)), c)
	}
}

// Predict returns number of cluster to which the observation would be assigned.
// Ties go to the lowest cluster number.
func (m *Model) Predict(p []float64) int {
	l := 0
	n := m.distanceFn(m.centroids[0], p)
	for i := 1; i < m.k; i++ {
		if d := m.distanceFn(m.centroids[i], p); d < n {
			n = d
			l = i
		}
	}
	return l
}

// Guesses returns mapping from data point indices to cluster numbers.
func (m *Model) Guesses() []int {
	return m.mapping
}

// Groups returns the ascending row indices of every cluster, empty clusters included.
func (m *Model) Groups() [][]int {
	return m.groups
}

// Cluster returns cluster at position i.
func (m *Model) Cluster(i int) []float64 {
	return m.centroids[i]
}

func (m *Model) Centroids() matrix.Matrix {
	return m.centroids
}

// TotalDistance sums the distance of every row to its cluster centroid.
func (m *Model) TotalDistance() float64 {
	return m.total
}

// Iter returns model number of iterations.
func (m *Model) Iter() int {
	return m.iter
}

// Converged reports whether training stopped because the groups stopped changing.
func (m *Model) Converged() bool {
	return m.converged
}

func (m *Model) K() int {
	return m.k
}
