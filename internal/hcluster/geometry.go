package hcluster

import (
	"fmt"

	"github.com/mawngo/pcluster/internal/matrix"
)

// Height returns the number of leaves under n, a leaf counting as 1.
// Dendrograms give every leaf one row, so this is the drawing height in rows.
func (n *Node) Height() int {
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Height() + n.Right.Height()
}

// Depth returns the largest sum of merge distances on a path from n down to a leaf.
// Leaves have depth 0.
func (n *Node) Depth() float64 {
	if n.IsLeaf() {
		return 0
	}
	return max(n.Left.Depth(), n.Right.Depth()) + n.Distance
}

// CheckLabels makes sure every leaf id under root indexes labels.
func CheckLabels(root *Node, labels []string) error {
	var err error
	root.Walk(func(node *Node, _ int) {
		if err == nil && node.IsLeaf() && (node.ID < 0 || node.ID >= len(labels)) {
			err = fmt.Errorf("%w: leaf %d has no label among %d", matrix.ErrInvalidInput, node.ID, len(labels))
		}
	})
	return err
}

type Point struct {
	X, Y float64
}

type Segment struct {
	From, To Point
}

// Anchor is where the label of leaf ID goes.
type Anchor struct {
	Point
	ID int
}

type LayoutOptions struct {
	// Width of the whole drawing, 1200 when unset.
	Width float64
	// RowHeight given to each leaf, 20 when unset.
	RowHeight float64
	// Margin kept right of the deepest leaf for labels, 150 when unset.
	Margin float64
}

// Drawing is the renderer independent geometry of a dendrogram.
type Drawing struct {
	Width    float64
	Height   float64
	Scale    float64
	Segments []Segment
	Anchors  []Anchor
}

// Layout places root on a canvas of opts.Width by Height()*opts.RowHeight.
// The root sits at x=10, centred vertically, and a merge at distance d spans
// d*Scale to the right, where Scale fits Depth() into the width minus the margin.
func Layout(root *Node, opts LayoutOptions) Drawing {
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.RowHeight <= 0 {
		opts.RowHeight = 20
	}
	if opts.Margin <= 0 {
		opts.Margin = 150
	}

	d := Drawing{
		Width:  opts.Width,
		Height: float64(root.Height()) * opts.RowHeight,
	}
	if depth := root.Depth(); depth > 0 {
		d.Scale = (opts.Width - opts.Margin) / depth
	}

	y := d.Height / 2
	d.Segments = append(d.Segments, Segment{Point{0, y}, Point{10, y}})
	d.place(root, Point{10, y}, opts.RowHeight)
	return d
}

func (d *Drawing) place(n *Node, at Point, rowHeight float64) {
	if n.IsLeaf() {
		d.Anchors = append(d.Anchors, Anchor{Point: at, ID: n.ID})
		return
	}
	h1 := float64(n.Left.Height()) * rowHeight
	h2 := float64(n.Right.Height()) * rowHeight
	top := at.Y - (h1+h2)/2
	bottom := at.Y + (h1+h2)/2
	x := at.X + n.Distance*d.Scale

	l := Point{at.X, top + h1/2}
	r := Point{at.X, bottom - h2/2}
	d.Segments = append(d.Segments,
		Segment{l, r},
		Segment{l, Point{x, l.Y}},
		Segment{r, Point{x, r.Y}},
	)
	d.place(n.Left, Point{x, l.Y}, rowHeight)
	d.place(n.Right, Point{x, r.Y}, rowHeight)
}
