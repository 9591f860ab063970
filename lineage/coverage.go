// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lineage

import (
	"slices"

	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/weights"
)

// Coverage is the accumulated value
// of the leaves covered by a node.
type Coverage struct {
	// Sum is the total weighted path length
	// from the node
	// (including its own branch)
	// to each covered leaf.
	Sum float64

	// Count is the total weight
	// of the covered leaves.
	Count float64
}

// A NodeSet is a set of nodes
// indexed by its position in the tree arena.
type NodeSet []bool

// NewNodeSet returns an empty node set
// for the given tree.
func NewNodeSet(t *mattree.Tree) NodeSet {
	return make(NodeSet, t.Len())
}

// Has returns true if the node is in the set.
func (s NodeSet) Has(n int) bool {
	return n < len(s) && s[n]
}

// Add adds a node to the set.
func (s NodeSet) Add(n int) {
	s[n] = true
}

// SumAndCount calculates the coverage of each node
// in nodes.
// Nodes must be ordered so every child
// is processed before its parent
// (e.g., a reversed breadth-first list).
//
// Leaves in the excluded set,
// or with weight 0 in the sample table,
// are not covered.
// Nodes without covered leaves
// are absent from the returned map.
// It also returns the number of leaves
// in the nodes list.
func SumAndCount(t *mattree.Tree, nodes []int, excluded NodeSet, m *Model, samples weights.Samples) (map[int]Coverage, int) {
	cov := make(map[int]Coverage, len(nodes))
	var leaves int
	for _, n := range nodes {
		if t.IsLeaf(n) {
			leaves++
			if excluded.Has(n) {
				continue
			}
			w := samples.Weight(t.ID(n))
			if w <= 0 {
				continue
			}
			cov[n] = Coverage{
				Sum:   m.Edge(t, n),
				Count: w,
			}
			continue
		}

		var c Coverage
		var found bool
		for _, d := range t.Children(n) {
			dc, ok := cov[d]
			if !ok {
				continue
			}
			found = true
			c.Sum += dc.Sum
			c.Count += dc.Count
		}
		if !found {
			continue
		}
		// the branch of the node is in the path
		// to each one of the covered leaves
		c.Sum += m.Edge(t, n) * c.Count
		cov[n] = c
	}
	return cov, leaves
}

// BottomUp returns the nodes of the subtree rooted at n
// in an order in which each child
// precedes its parent.
func BottomUp(t *mattree.Tree, n int) []int {
	ls := t.BreadthFirst(n)
	slices.Reverse(ls)
	return ls
}
