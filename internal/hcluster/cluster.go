// Package hcluster builds agglomerative merge trees by repeatedly joining the
// closest pair of clusters until a single root remains.
package hcluster

import (
	"fmt"

	"github.com/mawngo/pcluster/internal/distance"
	"github.com/mawngo/pcluster/internal/matrix"
)

// ProgressFunc receives the number of merges done out of total.
type ProgressFunc func(done, total int)

type Trainer struct {
	distanceFn    distance.Func
	concurrency   int
	progress      ProgressFunc
	progressEvery int
}

type TrainerOption func(*Trainer)

// pair keys the distance memo by node ids, which stay stable while the work list shrinks.
type pair struct {
	a, b int
}

// NewTrainer create new Trainer measuring clusters with fn.
func NewTrainer(fn distance.Func, options ...TrainerOption) Trainer {
	t := Trainer{
		distanceFn:  fn,
		concurrency: 1,
	}
	for i := range options {
		options[i](&t)
	}
	return t
}

// WithConcurrency computes new pairwise distances with up to n goroutines.
// The resulting tree does not depend on n.
func WithConcurrency(n int) TrainerOption {
	return func(t *Trainer) {
		t.concurrency = max(1, n)
	}
}

// WithProgress calls fn after every n-th merge and after the last one.
func WithProgress(n int, fn ProgressFunc) TrainerOption {
	return func(t *Trainer) {
		t.progress = fn
		t.progressEvery = max(1, n)
	}
}

// Fit clusters the rows of data and returns the root of the merge tree.
// The tree has one leaf per row, with the row index as id, and one merged node
// per join with ids -1, -2, ... in merge order.
func (t Trainer) Fit(data matrix.Matrix) (*Node, error) {
	if t.distanceFn == nil {
		return nil, fmt.Errorf("%w: no distance function", matrix.ErrInvalidInput)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	clust := make([]*Node, len(data))
	for i, row := range data {
		clust[i] = newLeaf(i, row)
	}

	memo := make(map[pair]float64, len(data)*len(data)/2)
	total := len(data) - 1
	nextID := -1
	for done := 1; len(clust) > 1; done++ {
		t.fill(clust, memo)

		lo, hi := 0, 1
		closest := memo[pair{clust[0].ID, clust[1].ID}]
		for i := range clust {
			for j := i + 1; j < len(clust); j++ {
				if d := memo[pair{clust[i].ID, clust[j].ID}]; d < closest {
					closest = d
					lo, hi = i, j
				}
			}
		}

		left, right := clust[lo], clust[hi]
		merged := newMerged(nextID, left, right, closest)
		nextID--

		kept := clust[:0]
		for _, c := range clust {
			if c == left || c == right {
				continue
			}
			kept = append(kept, c)
			forget(memo, c.ID, left.ID, right.ID)
		}
		delete(memo, pair{left.ID, right.ID})
		clust = append(kept, merged)

		if t.progress != nil && (done%t.progressEvery == 0 || done == total) {
			t.progress(done, total)
		}
	}
	return clust[0], nil
}

// fill computes the distance of every pair in clust that is not memoized yet.
func (t Trainer) fill(clust []*Node, memo map[pair]float64) {
	var missing [][2]*Node
	for i := range clust {
		for j := i + 1; j < len(clust); j++ {
			if _, ok := memo[pair{clust[i].ID, clust[j].ID}]; !ok {
				missing = append(missing, [2]*Node{clust[i], clust[j]})
			}
		}
	}

	result := make([]float64, len(missing))
	workers := min(t.concurrency, len(missing))
	if workers <= 1 {
		for i, p := range missing {
			result[i] = t.distanceFn(p[0].Vector, p[1].Vector)
		}
	} else {
		ch := make(chan int, workers)
		for num := range workers {
			go func() {
				defer func() {
					ch <- num
				}()
				for i := num; i < len(missing); i += workers {
					result[i] = t.distanceFn(missing[i][0].Vector, missing[i][1].Vector)
				}
			}()
		}
		for range workers {
			<-ch
		}
	}

	for i, p := range missing {
		memo[pair{p[0].ID, p[1].ID}] = result[i]
	}
}

// forget drops memo entries between id and merged away nodes, they are never looked up again.
func forget(memo map[pair]float64, id int, gone ...int) {
	for _, g := range gone {
		delete(memo, pair{id, g})
		delete(memo, pair{g, id})
	}
}
