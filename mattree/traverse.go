// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mattree

import "github.com/js-arias/autolin/mutation"

// BreadthFirst returns the nodes of the subtree
// rooted at n
// in breadth-first order
// (n is the first element).
//
// Reversing the returned slice
// gives an order in which every child
// precedes its parent.
func (t *Tree) BreadthFirst(n int) []int {
	ls := []int{n}
	for i := 0; i < len(ls); i++ {
		ls = append(ls, t.nodes[ls[i]].children...)
	}
	return ls
}

// Leaves returns the leaves of the subtree
// rooted at n.
func (t *Tree) Leaves(n int) []int {
	var leaves []int
	stack := []int{n}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		children := t.nodes[c].children
		if len(children) == 0 {
			leaves = append(leaves, c)
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return leaves
}

// RootPath returns the path from n to the root,
// n included.
func (t *Tree) RootPath(n int) []int {
	var path []int
	for ; n >= 0; n = t.nodes[n].parent {
		path = append(path, n)
	}
	return path
}

// IsAncestor returns true if a is an ancestor of n,
// or if both are the same node.
func (t *Tree) IsAncestor(a, n int) bool {
	for ; n >= 0; n = t.nodes[n].parent {
		if n == a {
			return true
		}
	}
	return false
}

// Parsimony returns the number of mutations
// in the subtree rooted at n,
// including the branch of n.
func (t *Tree) Parsimony(n int) int {
	var sum int
	for _, c := range t.BreadthFirst(n) {
		sum += len(t.nodes[c].muts)
	}
	return sum
}

// Haplotype returns the mutations
// accumulated from stop
// (the branch of stop is excluded)
// to n,
// in root-ward order.
// If stop is not an ancestor of n,
// it returns all mutations up to the root.
func (t *Tree) Haplotype(n, stop int) []mutation.Event {
	var muts []mutation.Event
	for ; n >= 0 && n != stop; n = t.nodes[n].parent {
		muts = append(muts, t.nodes[n].muts...)
	}
	return muts
}

// Reversions returns the number of mutations
// in the branch of n
// that revert the closest ancestral mutation
// in the same locus.
func (t *Tree) Reversions(n int) int {
	var rev int
	for _, m := range t.nodes[n].muts {
		if anc, ok := t.previous(n, m); ok && mutation.Opposite(anc, m) {
			rev++
		}
	}
	return rev
}

// Previous returns the closest mutation
// in the same locus of m
// in an ancestor of n.
func (t *Tree) previous(n int, m mutation.Event) (mutation.Event, bool) {
	for a := t.nodes[n].parent; a >= 0; a = t.nodes[a].parent {
		muts := t.nodes[a].muts
		for i := len(muts) - 1; i >= 0; i-- {
			if mutation.SameLocus(muts[i], m) {
				return muts[i], true
			}
		}
	}
	return mutation.Event{}, false
}
