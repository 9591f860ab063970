// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lineage

import "github.com/js-arias/autolin/mattree"

// Apply writes the lineages of the result
// into the annotation slots of the tree.
//
// Lineages already defined in the tree
// keep their slots,
// and proposals are added in the remaining slots.
// It returns the names of the proposals
// that were not written
// because the slots of its node were already used.
func (r *Result) Apply() ([]string, error) {
	t := r.tree
	ann := make(map[int][]string)
	for _, n := range t.BreadthFirst(t.Root()) {
		for _, a := range t.Annotations(n) {
			if a == "" || !r.original[a] {
				continue
			}
			ann[n] = append(ann[n], a)
		}
	}

	var dropped []string
	for _, p := range r.Proposals {
		n := r.Annotations[p.Name]
		if len(ann[n]) >= mattree.Slots {
			dropped = append(dropped, p.Name)
			continue
		}
		ann[n] = append(ann[n], p.Name)
	}

	if err := t.SetAnnotations(ann); err != nil {
		return nil, err
	}
	return dropped, nil
}

// Labels returns the lineage assigned to each leaf of the tree.
//
// A leaf is assigned to the most specific lineage
// that includes it.
// If two lineages are defined on the same node,
// the last one in the list is used.
// Leaves outside any lineage are not assigned.
func Labels(t *mattree.Tree, ls []Lineage) map[string]string {
	byNode := make(map[int]string, len(ls))
	for _, l := range ls {
		byNode[l.Node] = l.Name
	}

	lab := make([]string, t.Len())
	labels := make(map[string]string)
	for _, n := range t.BreadthFirst(t.Root()) {
		if name, ok := byNode[n]; ok {
			lab[n] = name
		} else if !t.IsRoot(n) {
			lab[n] = lab[t.Parent(n)]
		}
		if t.IsLeaf(n) && lab[n] != "" {
			labels[t.ID(n)] = lab[n]
		}
	}
	return labels
}
