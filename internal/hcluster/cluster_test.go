package hcluster

import (
	"math"
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/mawngo/pcluster/internal/distance"
	"github.com/mawngo/pcluster/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMatrix(r *rand.Rand, rows, cols int) matrix.Matrix {
	m := make(matrix.Matrix, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = r.Float64() * 100
		}
	}
	return m
}

func TestFitShape(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for n := 1; n <= 12; n++ {
		root, err := NewTrainer(distance.EuclideanDistance).Fit(randomMatrix(r, n, 3))
		require.NoError(t, err)

		leaves := map[int]int{}
		merged := map[int]int{}
		root.Walk(func(node *Node, _ int) {
			if node.IsLeaf() {
				leaves[node.ID]++
				return
			}
			merged[node.ID]++
			require.NotNil(t, node.Left)
			require.NotNil(t, node.Right)
			for _, child := range []*Node{node.Left, node.Right} {
				if !child.IsLeaf() {
					assert.Greater(t, child.ID, node.ID, "children are merged before their parent")
				}
			}
		})

		require.Len(t, leaves, n)
		for id := 0; id < n; id++ {
			assert.Equal(t, 1, leaves[id], "leaf %d", id)
		}
		require.Len(t, merged, n-1)
		for id := -1; id >= -(n - 1); id-- {
			assert.Equal(t, 1, merged[id], "merged node %d", id)
		}
	}
}

func TestFitSingleRow(t *testing.T) {
	root, err := NewTrainer(distance.Pearson).Fit(matrix.Matrix{{4, 2}})
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Equal(t, 0, root.ID)
	assert.Equal(t, []float64{4, 2}, root.Vector)
	assert.Zero(t, root.Distance)
}

func TestFitInvalid(t *testing.T) {
	tests := []struct {
		name string
		fn   distance.Func
		data matrix.Matrix
	}{
		{"empty", distance.Pearson, matrix.Matrix{}},
		{"ragged", distance.Pearson, matrix.Matrix{{1, 2}, {1}}},
		{"no distance", nil, matrix.Matrix{{1, 2}, {3, 4}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := NewTrainer(tt.fn).Fit(tt.data)
			assert.ErrorIs(t, err, matrix.ErrInvalidInput)
			assert.Nil(t, root)
		})
	}
}

func TestFitIdenticalRowsMergeFirst(t *testing.T) {
	data := matrix.Matrix{{1, 1}, {1, 1}, {5, 5}}

	tests := []struct {
		name string
		fn   distance.Func
		top  float64
	}{
		{"euclidean", distance.EuclideanDistance, math.Sqrt(32)},
		{"manhattan", distance.Manhattan, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := NewTrainer(tt.fn).Fit(data)
			require.NoError(t, err)

			assert.Equal(t, -2, root.ID)
			assert.InDelta(t, tt.top, root.Distance, 1e-12)
			assert.Equal(t, 2, root.Left.ID)

			first := root.Right
			assert.Equal(t, -1, first.ID)
			assert.Zero(t, first.Distance)
			assert.Equal(t, 0, first.Left.ID)
			assert.Equal(t, 1, first.Right.ID)
			assert.Equal(t, []float64{1, 1}, first.Vector)
			assert.Equal(t, []float64{3, 3}, root.Vector)
		})
	}
}

func TestFitSimilarityIsMinimized(t *testing.T) {
	root, err := NewTrainer(distance.EuclideanSimilarity).Fit(matrix.Matrix{{1, 1}, {1, 1}, {5, 5}})
	require.NoError(t, err)

	first := root.Right
	assert.Equal(t, -1, first.ID)
	assert.Equal(t, []int{0, 2}, first.Leaves())
	assert.InDelta(t, 1/(1+math.Sqrt(32)), first.Distance, 1e-12)
	assert.Equal(t, 1, root.Left.ID)
}

func TestFitTiesKeepInputOrder(t *testing.T) {
	root, err := NewTrainer(distance.EuclideanDistance).Fit(matrix.Matrix{{1}, {1}, {1}, {1}})
	require.NoError(t, err)

	assert.Equal(t, -3, root.ID)
	assert.Equal(t, -1, root.Left.ID)
	assert.Equal(t, -2, root.Right.ID)
	assert.Equal(t, []int{0, 1, 2, 3}, root.Leaves())
}

func TestFitMemoizesDistances(t *testing.T) {
	var calls atomic.Int64
	counting := func(a, b []float64) float64 {
		calls.Add(1)
		return distance.EuclideanDistance(a, b)
	}

	n := 6
	_, err := NewTrainer(counting).Fit(randomMatrix(rand.New(rand.NewSource(3)), n, 2))
	require.NoError(t, err)
	// every leaf pair once, then each merged node against the nodes left beside it
	assert.EqualValues(t, (n-1)*(n-1), calls.Load())
}

func TestFitDeterministic(t *testing.T) {
	data := randomMatrix(rand.New(rand.NewSource(11)), 25, 4)
	sequential, err := NewTrainer(distance.Pearson).Fit(data)
	require.NoError(t, err)

	again, err := NewTrainer(distance.Pearson).Fit(data)
	require.NoError(t, err)
	assert.Equal(t, sequential, again)

	parallel, err := NewTrainer(distance.Pearson, WithConcurrency(4)).Fit(data)
	require.NoError(t, err)
	assert.Equal(t, sequential, parallel)
}

func TestFitProgress(t *testing.T) {
	var got []int
	trainer := NewTrainer(distance.Manhattan, WithProgress(2, func(done, total int) {
		assert.Equal(t, 5, total)
		got = append(got, done)
	}))
	_, err := trainer.Fit(randomMatrix(rand.New(rand.NewSource(5)), 6, 2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 5}, got)
}
