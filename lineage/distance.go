// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lineage

import (
	"fmt"
	"io"

	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/weights"
)

// A Model converts the mutations of a branch
// into a branch weight.
type Model struct {
	// Mutation weights.
	// If nil,
	// the weight of a branch is its number of mutations,
	// or its length,
	// if the branch length is defined.
	Weights *weights.Mutations

	// If defined,
	// warnings are written here.
	Log io.Writer

	warned map[int]bool
}

// Edge returns the weight of the branch
// that ends in node n.
//
// Without a weight table,
// the weight is the branch length
// (if the node has a branch length)
// or the number of mutations.
// With a weight table,
// the weight is the sum of the weights of each mutation,
// and mutations absent from the table
// do not contribute.
//
// Negative weights are invalid
// and are set to 0.
//
// A nil model is a model without weights.
func (m *Model) Edge(t *mattree.Tree, n int) float64 {
	var w float64
	switch {
	case m != nil && m.Weights != nil:
		id := t.ID(n)
		for _, e := range t.Mutations(n) {
			w += m.Weights.Weight(e, id)
		}
	case t.HasLength(n):
		w = t.Length(n)
	default:
		w = float64(len(t.Mutations(n)))
	}

	if w < 0 {
		m.warn(t, n, w)
		return 0
	}
	return w
}

func (m *Model) warn(t *mattree.Tree, n int, w float64) {
	if m == nil || m.Log == nil {
		return
	}
	if m.warned == nil {
		m.warned = make(map[int]bool)
	}
	if m.warned[n] {
		return
	}
	m.warned[n] = true
	fmt.Fprintf(m.Log, "WARNING: node %q: negative branch weight %.6f: set to 0\n", t.ID(n), w)
}

// DistancesFromRoot returns the weighted distance
// from the node root
// (that can be any node of the tree)
// to each one of its descendants.
func DistancesFromRoot(t *mattree.Tree, root int, m *Model) (map[int]float64, error) {
	dist := map[int]float64{root: 0}
	stack := []int{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		d := dist[n]
		for _, c := range t.Children(n) {
			if _, ok := dist[c]; ok {
				return nil, fmt.Errorf("node %q: visited twice: %w", t.ID(c), mattree.ErrCycle)
			}
			dist[c] = d + m.Edge(t, c)
			stack = append(stack, c)
		}
	}
	return dist, nil
}
