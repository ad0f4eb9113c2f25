package hcluster

import "gonum.org/v1/gonum/floats"

// Node is one node of the merge tree.
// Leaves carry the row index as ID, the row as Vector and no children.
// Merged nodes carry a negative ID, the average of their children's vectors,
// the distance at which the children were merged and exactly two children.
// Nodes must not be modified once returned by Fit.
type Node struct {
	Vector   []float64
	ID       int
	Distance float64
	Left     *Node
	Right    *Node
}

func newLeaf(id int, row []float64) *Node {
	return &Node{Vector: row, ID: id}
}

func newMerged(id int, left, right *Node, d float64) *Node {
	v := make([]float64, len(left.Vector))
	floats.AddTo(v, left.Vector, right.Vector)
	floats.Scale(0.5, v)
	return &Node{Vector: v, ID: id, Distance: d, Left: left, Right: right}
}

// IsLeaf reports whether n stands for an input row.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Walk visits n and its descendants depth first, left before right.
// level is 0 for n.
func (n *Node) Walk(fn func(node *Node, level int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), level int) {
	fn(n, level)
	if n.IsLeaf() {
		return
	}
	n.Left.walk(fn, level+1)
	n.Right.walk(fn, level+1)
}

// Leaves returns the row indices under n in left to right order.
func (n *Node) Leaves() []int {
	var ids []int
	n.Walk(func(node *Node, _ int) {
		if node.IsLeaf() {
			ids = append(ids, node.ID)
		}
	})
	return ids
}
