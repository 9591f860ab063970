// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package weights implements weight tables
// for mutations and samples
// used to score lineage proposals.
package weights

import (
	"errors"

	"github.com/js-arias/autolin/mutation"
)

// ErrEmpty is returned when a weight file
// does not have any entry.
var ErrEmpty = errors.New("empty weight table")

// A key is the allele in a locus,
// optionally restricted to a node.
type key struct {
	loc  int
	alt  string
	node string
}

// Mutations is a table of mutation weights.
//
// A weight can be defined for an allele in a locus,
// or for an allele in a locus
// restricted to the branch of a particular node.
type Mutations struct {
	w map[key]float64
}

// NewMutations returns an empty mutation weight table.
func NewMutations() *Mutations {
	return &Mutations{
		w: make(map[key]float64),
	}
}

// Set sets the weight of a mutation.
// If node is not empty,
// the weight will be only valid
// for the branch of that node.
func (m *Mutations) Set(e mutation.Event, node string, w float64) {
	m.w[key{loc: e.Loc, alt: e.Alt, node: node}] = w
}

// Weight returns the weight of a mutation
// in the branch of the indicated node.
//
// It is the maximum of the global weight
// and the node specific weight of the mutation.
// Undefined weights are 0.
func (m *Mutations) Weight(e mutation.Event, node string) float64 {
	w := m.w[key{loc: e.Loc, alt: e.Alt}]
	if node == "" {
		return w
	}
	if nw, ok := m.w[key{loc: e.Loc, alt: e.Alt, node: node}]; ok && nw > w {
		return nw
	}
	return w
}

// Len returns the number of entries
// in the table.
func (m *Mutations) Len() int {
	return len(m.w)
}

// Rename returns a copy of the table
// in which the node of each node specific weight
// is renamed using the given function.
// If two nodes share the new name,
// the largest weight is kept.
func (m *Mutations) Rename(name func(string) string) *Mutations {
	nm := NewMutations()
	for k, w := range m.w {
		if k.node != "" {
			k.node = name(k.node)
		}
		if old, ok := nm.w[k]; ok && old > w {
			continue
		}
		nm.w[k] = w
	}
	return nm
}

// Samples is a table of sample weights.
//
// A nil table means that no table was defined,
// and then all samples have weight 1.
// In a defined table,
// samples absent from the table have weight 0.
type Samples map[string]float64

// Weight returns the weight of a sample.
func (s Samples) Weight(id string) float64 {
	if s == nil {
		return 1
	}
	return s[id]
}

// Rename returns a copy of the table
// in which each sample is renamed
// using the given function.
// If two samples share the new name,
// the largest weight is kept.
func (s Samples) Rename(name func(string) string) Samples {
	if s == nil {
		return nil
	}
	ns := make(Samples, len(s))
	for id, w := range s {
		id = name(id)
		if old, ok := ns[id]; ok && old > w {
			continue
		}
		ns[id] = w
	}
	return ns
}
