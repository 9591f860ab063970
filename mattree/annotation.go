// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mattree

import (
	"fmt"
	"strings"
)

// Annotations returns the annotation slots of a node.
// Empty slots are empty strings.
func (t *Tree) Annotations(n int) [Slots]string {
	return t.nodes[n].ann
}

// IsAnnotated returns true if the node
// has at least one annotation.
func (t *Tree) IsAnnotated(n int) bool {
	for _, a := range t.nodes[n].ann {
		if a != "" {
			return true
		}
	}
	return false
}

// AnnotationMap returns a map of each annotation
// to the node that defines it.
// If an annotation is repeated,
// the node closest to the root,
// in breadth-first order,
// is used.
func (t *Tree) AnnotationMap() map[string]int {
	m := make(map[string]int)
	for _, n := range t.BreadthFirst(t.Root()) {
		for _, a := range t.nodes[n].ann {
			if a == "" {
				continue
			}
			if _, ok := m[a]; ok {
				continue
			}
			m[a] = n
		}
	}
	return m
}

// SetAnnotations replaces all the annotations of the tree
// with the given map of nodes to labels.
// Nodes not in the map will be without annotations.
func (t *Tree) SetAnnotations(ann map[int][]string) error {
	for n, ls := range ann {
		if n < 0 || n >= len(t.nodes) {
			return fmt.Errorf("node %d: %w", n, ErrNotFound)
		}
		if len(ls) > Slots {
			return fmt.Errorf("node %q: %d labels: %w", t.nodes[n].id, len(ls), ErrSlots)
		}
	}

	t.ClearAnnotations()
	for n, ls := range ann {
		for i, a := range ls {
			t.nodes[n].ann[i] = strings.TrimSpace(a)
		}
	}
	return nil
}

// ClearAnnotations removes all annotations
// of the tree.
func (t *Tree) ClearAnnotations() {
	for _, nd := range t.nodes {
		nd.ann = [Slots]string{}
	}
}
