// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lineage

import (
	"cmp"
	"slices"

	"github.com/js-arias/autolin/mattree"
)

// A Lineage is a named clade,
// defined by a node of the tree.
type Lineage struct {
	Name string
	Node int
}

// OuterAnnotations returns the outermost lineages
// of a set of annotations,
// i.e., the lineages that are not an ancestor
// of any other lineage.
//
// If a node defines more than one lineage,
// only the first one is returned,
// using the order of the annotation slots of the tree.
// Lineages are sorted by node.
func OuterAnnotations(t *mattree.Tree, ann map[string]int) []Lineage {
	byNode := nodeNames(t, ann)

	skip := make(map[string]bool)
	outer := make(map[int]bool, len(byNode))
	for _, l := range sortLineages(ann) {
		if skip[l.Name] {
			continue
		}
		outer[l.Node] = true
		for _, a := range t.RootPath(l.Node)[1:] {
			names, ok := byNode[a]
			if !ok {
				continue
			}
			delete(outer, a)
			for _, n := range names {
				skip[n] = true
			}
		}
	}

	ls := make([]Lineage, 0, len(outer))
	for n := range outer {
		ls = append(ls, Lineage{Name: byNode[n][0], Node: n})
	}
	slices.SortFunc(ls, func(a, b Lineage) int {
		return cmp.Compare(a.Node, b.Node)
	})
	return ls
}

// NodeNames returns the names of the lineages
// defined on each node.
// Names are sorted by annotation slot,
// and then alphabetically.
func nodeNames(t *mattree.Tree, ann map[string]int) map[int][]string {
	byNode := make(map[int][]string)
	for name, n := range ann {
		byNode[n] = append(byNode[n], name)
	}
	for n, names := range byNode {
		slots := t.Annotations(n)
		slices.SortFunc(names, func(a, b string) int {
			sa, sb := slotOf(slots, a), slotOf(slots, b)
			if sa != sb {
				return cmp.Compare(sa, sb)
			}
			return cmp.Compare(a, b)
		})
	}
	return byNode
}

func slotOf(slots [mattree.Slots]string, name string) int {
	for i, s := range slots {
		if s == name {
			return i
		}
	}
	return mattree.Slots
}

// SortLineages returns the lineages in a map
// sorted by node and name.
func sortLineages(ann map[string]int) []Lineage {
	ls := make([]Lineage, 0, len(ann))
	for name, n := range ann {
		ls = append(ls, Lineage{Name: name, Node: n})
	}
	slices.SortFunc(ls, func(a, b Lineage) int {
		if c := cmp.Compare(a.Node, b.Node); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return ls
}
