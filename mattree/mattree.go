// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mattree implements a mutation-annotated tree,
// i.e., a rooted phylogenetic tree
// in which each branch stores the mutations
// accumulated on it,
// and each node can store up to two lineage labels.
//
// Nodes are stored in an arena,
// and identified by its position in the arena.
// All traversals are iterative,
// so deep trees are not limited by the stack size.
package mattree

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/js-arias/autolin/mutation"
)

// Errors returned by tree operations.
var (
	ErrCycle    = errors.New("node not connected to root")
	ErrNotFound = errors.New("node not found")
	ErrSlots    = errors.New("too many annotations")
)

// Slots is the number of annotations
// that can be stored in a node.
const Slots = 2

// A Tree is a rooted mutation-annotated tree.
type Tree struct {
	name    string
	nodes   []*node
	ids     map[string]int
	lengths bool
}

type node struct {
	id       string
	parent   int
	children []int

	muts   []mutation.Event
	length float64
	hasLen bool

	ann [Slots]string
}

// New creates a new tree
// with the given root ID.
func New(name, root string) *Tree {
	root = strings.TrimSpace(root)
	t := &Tree{
		name: name,
		ids:  map[string]int{root: 0},
	}
	t.nodes = append(t.nodes, &node{
		id:     root,
		parent: -1,
	})
	return t
}

// Add adds a new node as a child of the indicated parent
// and returns the index of the new node.
func (t *Tree) Add(id, parent string, muts ...mutation.Event) (int, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return -1, errors.New("empty node ID")
	}
	if _, dup := t.ids[id]; dup {
		return -1, fmt.Errorf("node %q: already in tree", id)
	}
	p, ok := t.ids[strings.TrimSpace(parent)]
	if !ok {
		return -1, fmt.Errorf("parent %q: %w", parent, ErrNotFound)
	}

	n := len(t.nodes)
	t.nodes = append(t.nodes, &node{
		id:     id,
		parent: p,
		muts:   slices.Clone(muts),
	})
	t.ids[id] = n
	t.nodes[p].children = append(t.nodes[p].children, n)
	return n, nil
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.name
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Root returns the index of the root node.
func (t *Tree) Root() int {
	return 0
}

// IsRoot returns true if the node is the root.
func (t *Tree) IsRoot(n int) bool {
	return n == 0
}

// ID returns the identifier of a node.
func (t *Tree) ID(n int) string {
	return t.nodes[n].id
}

// Node returns the index of the node
// with the given ID.
//
// If the ID is not found,
// the ID is searched in its taxon name form
// (see TaxonName),
// so samples of trees imported from time-calibrated trees
// can be found using the name of the source file.
func (t *Tree) Node(id string) (int, bool) {
	if n, ok := t.ids[id]; ok {
		return n, true
	}
	n, ok := t.ids[TaxonName(id)]
	return n, ok
}

// Parent returns the parent of a node.
// The parent of the root is -1.
func (t *Tree) Parent(n int) int {
	return t.nodes[n].parent
}

// Children returns the children of a node.
func (t *Tree) Children(n int) []int {
	return t.nodes[n].children
}

// IsLeaf returns true if the node
// does not have descendants.
func (t *Tree) IsLeaf(n int) bool {
	return len(t.nodes[n].children) == 0
}

// Mutations returns the mutations
// on the branch that ends in the node.
func (t *Tree) Mutations(n int) []mutation.Event {
	return t.nodes[n].muts
}

// SetMutations sets the mutations of the branch
// that ends in the node.
func (t *Tree) SetMutations(n int, muts []mutation.Event) {
	t.nodes[n].muts = slices.Clone(muts)
}

// Length returns the branch length of a node.
// It is only meaningful if the node has a branch length.
func (t *Tree) Length(n int) float64 {
	return t.nodes[n].length
}

// HasLength returns true
// if the branch length of the node is defined.
func (t *Tree) HasLength(n int) bool {
	return t.nodes[n].hasLen
}

// SetLength sets the branch length of a node.
func (t *Tree) SetLength(n int, l float64) {
	t.nodes[n].length = l
	t.nodes[n].hasLen = true
	t.lengths = true
}

// HasLengths returns true
// if a branch length is defined
// in any node of the tree.
func (t *Tree) HasLengths() bool {
	return t.lengths
}
