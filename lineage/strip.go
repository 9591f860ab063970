// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lineage

import (
	"strings"

	"github.com/js-arias/autolin/mattree"
)

// AutoPrefix is the prefix of lineage names
// produced by automatic annotation tools.
const AutoPrefix = "auto."

// Strip collapses the annotations of each node of the tree
// into a single slot.
//
// The second slot is preferred,
// unless it is an automatic name
// and the first slot has a name.
// If the second slot is empty,
// names in the first slot that start with a digit
// are removed.
// It returns the number of removed names.
func Strip(t *mattree.Tree) (int, error) {
	ann := make(map[int][]string)
	var removed int
	for _, n := range t.BreadthFirst(t.Root()) {
		slots := t.Annotations(n)
		first, second := slots[0], slots[1]

		var keep string
		switch {
		case second != "":
			keep = second
			if strings.HasPrefix(second, AutoPrefix) && first != "" {
				keep = first
			}
			if first != "" {
				removed++
			}
		case first != "" && first[0] >= '0' && first[0] <= '9':
			removed++
		default:
			keep = first
		}
		if keep == "" {
			continue
		}
		ann[n] = []string{keep}
	}

	if err := t.SetAnnotations(ann); err != nil {
		return 0, err
	}
	return removed, nil
}

// Annotated returns the lineages annotated in the tree,
// in breadth-first order.
// For each node,
// the name in the first slot is returned last,
// so it is preferred by Labels.
func Annotated(t *mattree.Tree) []Lineage {
	var ls []Lineage
	for _, n := range t.BreadthFirst(t.Root()) {
		slots := t.Annotations(n)
		for i := len(slots) - 1; i >= 0; i-- {
			if slots[i] == "" {
				continue
			}
			ls = append(ls, Lineage{Name: slots[i], Node: n})
		}
	}
	return ls
}
