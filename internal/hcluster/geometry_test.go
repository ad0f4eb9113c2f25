package hcluster

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/mawngo/pcluster/internal/distance"
	"github.com/mawngo/pcluster/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightAndDepth(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 2, 5, 17} {
		root, err := NewTrainer(distance.EuclideanDistance).Fit(randomMatrix(r, n, 3))
		require.NoError(t, err)

		assert.Equal(t, n, root.Height())
		assert.GreaterOrEqual(t, root.Depth(), 0.0)
		root.Walk(func(node *Node, _ int) {
			if node.IsLeaf() {
				assert.Zero(t, node.Depth())
				return
			}
			assert.GreaterOrEqual(t, node.Depth(), node.Left.Depth())
			assert.GreaterOrEqual(t, node.Depth(), node.Right.Depth())
		})
	}
}

func TestDepthSumsDistances(t *testing.T) {
	leaf := func(id int) *Node { return newLeaf(id, []float64{0}) }
	inner := newMerged(-1, leaf(0), leaf(1), 2)
	root := newMerged(-2, inner, leaf(2), 3)

	assert.Equal(t, 5.0, root.Depth())
	assert.Equal(t, 3, root.Height())
	assert.Equal(t, 2, inner.Height())
}

func TestLayout(t *testing.T) {
	root, err := NewTrainer(distance.EuclideanDistance).Fit(matrix.Matrix{{0}, {3}})
	require.NoError(t, err)

	d := Layout(root, LayoutOptions{})
	assert.Equal(t, 1200.0, d.Width)
	assert.Equal(t, 40.0, d.Height)
	assert.InDelta(t, 350, d.Scale, 1e-9)
	require.Len(t, d.Segments, 4)
	assert.Equal(t, Segment{Point{0, 20}, Point{10, 20}}, d.Segments[0])
	assert.Equal(t, Segment{Point{10, 10}, Point{10, 30}}, d.Segments[1])
	assert.InDelta(t, 1060, d.Segments[2].To.X, 1e-9)
	assert.Equal(t, 10.0, d.Segments[2].To.Y)
	assert.InDelta(t, 1060, d.Segments[3].To.X, 1e-9)
	assert.Equal(t, 30.0, d.Segments[3].To.Y)

	require.Len(t, d.Anchors, 2)
	assert.Equal(t, 0, d.Anchors[0].ID)
	assert.Equal(t, 10.0, d.Anchors[0].Y)
	assert.Equal(t, 1, d.Anchors[1].ID)
	assert.Equal(t, 30.0, d.Anchors[1].Y)
}

func TestLayoutFlatTree(t *testing.T) {
	root, err := NewTrainer(distance.EuclideanDistance).Fit(matrix.Matrix{{1, 1}})
	require.NoError(t, err)

	d := Layout(root, LayoutOptions{Width: 600, RowHeight: 10})
	assert.Zero(t, d.Scale)
	assert.Equal(t, 10.0, d.Height)
	assert.Equal(t, []Anchor{{Point: Point{10, 5}, ID: 0}}, d.Anchors)
}

func TestLayoutAnchorsEveryLeaf(t *testing.T) {
	root, err := NewTrainer(distance.Manhattan).Fit(randomMatrix(rand.New(rand.NewSource(9)), 9, 2))
	require.NoError(t, err)

	d := Layout(root, LayoutOptions{})
	require.Len(t, d.Anchors, 9)
	for i, a := range d.Anchors {
		assert.Equal(t, root.Leaves()[i], a.ID)
		assert.GreaterOrEqual(t, a.X, 10.0)
		assert.LessOrEqual(t, a.X, d.Width-150+10+1e-9)
		assert.InDelta(t, 20*float64(i)+10, a.Y, 1e-9)
	}
}

func TestFprint(t *testing.T) {
	root, err := NewTrainer(distance.EuclideanDistance).Fit(matrix.Matrix{{1, 1}, {1, 1}, {5, 5}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, root, []string{"a", "b", "c"}))
	assert.Equal(t, "-\n  c\n  -\n    a\n    b\n", buf.String())

	buf.Reset()
	require.NoError(t, Fprint(&buf, root, nil))
	assert.Equal(t, "-\n  2\n  -\n    0\n    1\n", buf.String())

	err = Fprint(&buf, root, []string{"a"})
	assert.ErrorIs(t, err, matrix.ErrInvalidInput)
}

func TestCheckLabels(t *testing.T) {
	root, err := NewTrainer(distance.Tanimoto).Fit(matrix.Matrix{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)

	assert.NoError(t, CheckLabels(root, []string{"x", "y", "z"}))
	assert.ErrorIs(t, CheckLabels(root, []string{"x", "y"}), matrix.ErrInvalidInput)
}
