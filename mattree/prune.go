// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mattree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/js-arias/autolin/mutation"
)

// ErrNoLeaves is returned when all leaves
// of a tree are removed.
var ErrNoLeaves = errors.New("all leaves removed")

// WithReversions returns the leaves
// that descend from a branch
// with at least threshold reversions
// (including the branches of the leaves).
// Leaves are sorted by index.
func (t *Tree) WithReversions(threshold int) []int {
	if threshold < 1 {
		threshold = 1
	}
	var ls []int
	in := make(map[int]bool)
	for _, n := range t.BreadthFirst(t.Root()) {
		if t.Reversions(n) < threshold {
			continue
		}
		for _, l := range t.Leaves(n) {
			if in[l] {
				continue
			}
			in[l] = true
			ls = append(ls, l)
		}
	}
	slices.Sort(ls)
	return ls
}

// Prune returns a copy of the tree
// without the indicated leaves.
//
// Internal nodes without remaining leaves are removed.
// Internal nodes with a single remaining child
// are collapsed into its child,
// so the mutations of the collapsed branch
// precede the mutations of the child,
// branch lengths are added,
// and the annotations of the collapsed node
// take the first slots of the child.
// The root is never collapsed.
func (t *Tree) Prune(leaves []int) (*Tree, error) {
	rm := make(map[int]bool, len(leaves))
	for _, n := range leaves {
		if n < 0 || n >= len(t.nodes) {
			return nil, fmt.Errorf("node %d: %w", n, ErrNotFound)
		}
		if !t.IsLeaf(n) {
			return nil, fmt.Errorf("node %q: not a leaf", t.ID(n))
		}
		rm[n] = true
	}

	// remaining leaves of each node
	kept := make([]int, len(t.nodes))
	nodes := t.BreadthFirst(t.Root())
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if t.IsLeaf(n) {
			if !rm[n] {
				kept[n] = 1
			}
			continue
		}
		for _, c := range t.nodes[n].children {
			kept[n] += kept[c]
		}
	}
	if kept[t.Root()] == 0 {
		return nil, fmt.Errorf("tree %q: %w", t.name, ErrNoLeaves)
	}

	root := t.nodes[t.Root()]
	nt := New(t.name, root.id)
	nr := nt.nodes[nt.Root()]
	nr.muts = slices.Clone(root.muts)
	nr.length, nr.hasLen = root.length, root.hasLen
	nr.ann = root.ann
	nt.lengths = root.hasLen

	type branch struct {
		src, dst int
	}
	queue := []branch{{src: t.Root(), dst: nt.Root()}}
	for i := 0; i < len(queue); i++ {
		b := queue[i]
		for _, c := range t.nodes[b.src].children {
			if kept[c] == 0 {
				continue
			}

			var muts []mutation.Event
			var length float64
			var hasLen bool
			var ann []string
			for {
				nd := t.nodes[c]
				muts = append(muts, nd.muts...)
				length += nd.length
				hasLen = hasLen || nd.hasLen
				for _, a := range nd.ann {
					if a != "" {
						ann = append(ann, a)
					}
				}

				next, count := -1, 0
				for _, cc := range nd.children {
					if kept[cc] > 0 {
						next = cc
						count++
					}
				}
				if count != 1 {
					break
				}
				c = next
			}

			n, err := nt.Add(t.nodes[c].id, nt.nodes[b.dst].id, muts...)
			if err != nil {
				return nil, fmt.Errorf("tree %q: %v", t.name, err)
			}
			nd := nt.nodes[n]
			if hasLen {
				nd.length, nd.hasLen = length, true
				nt.lengths = true
			}
			copy(nd.ann[:], ann)
			queue = append(queue, branch{src: c, dst: n})
		}
	}
	return nt, nil
}
