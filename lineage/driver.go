// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lineage

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/js-arias/autolin/alias"
	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/weights"
)

// DefaultRoot is the name used for the root of the tree
// when the tree has no annotations.
const DefaultRoot = "L"

// ErrNoLineage is returned when a requested lineage
// is not defined in the tree.
var ErrNoLineage = errors.New("lineage not found")

// Param are the parameters
// used to propose new sublineages.
type Param struct {
	// Threshold for the candidate nodes.
	Threshold

	// Floor is the score that must be exceeded
	// by a proposal.
	Floor float64

	// Cutoff is the proportion of the leaves
	// of a parent lineage
	// that once covered by its sublineages
	// stops the search for new sublineages.
	// Values outside (0, 1] are taken as 1.
	Cutoff float64

	// Levels is the number of levels of the hierarchy
	// searched for new sublineages.
	// If 0,
	// the search continues until no new sublineage is found.
	Levels int

	// Branch weight model.
	Model *Model

	// Samples is the weight of the leaves.
	// If nil,
	// all leaves have weight 1.
	Samples weights.Samples

	// If set,
	// only sublineages of the given lineage
	// are proposed.
	Lineage string

	// Name used for the root of the tree
	// when the tree has no annotations.
	// If empty,
	// DefaultRoot will be used.
	Root string

	// Aliases is the alias table
	// used to compress long names.
	// If nil,
	// a new table with default depth is used.
	Aliases *alias.Table

	// If defined,
	// progress messages are written here.
	Log io.Writer
}

// A Proposal is a proposed sublineage.
type Proposal struct {
	// Name of the parent lineage
	// and ID of its defining node.
	Parent     string
	ParentNode string

	// Name of the proposed lineage
	// and ID of its defining node.
	Name string
	Node string

	// Score of the proposal.
	Score float64

	// Number of leaves of the proposal
	// that were not covered by previous proposals
	// of the same parent.
	Size int

	// Level in the hierarchy
	// in which the proposal was made
	// (the first level is 1).
	Level int
}

// Result is the result of a proposal search.
type Result struct {
	// Proposals in the order they were made.
	Proposals []Proposal

	// Annotations is the map of lineage names
	// to nodes,
	// including the lineages defined in the tree
	// and the proposed lineages.
	Annotations map[string]int

	// Aliases is the alias table
	// updated with the proposed names.
	Aliases *alias.Table

	tree     *mattree.Tree
	original map[string]bool
}

// IsOriginal returns true if the lineage
// was defined in the tree before the proposal search.
func (r *Result) IsOriginal(name string) bool {
	return r.original[name]
}

// Lineages returns all lineages of the result,
// first the lineages defined in the tree
// (sorted by node)
// and then the proposals,
// in the order they were made.
func (r *Result) Lineages() []Lineage {
	orig := make(map[string]int, len(r.original))
	for name := range r.original {
		orig[name] = r.Annotations[name]
	}
	ls := sortLineages(orig)
	for _, p := range r.Proposals {
		ls = append(ls, Lineage{Name: p.Name, Node: r.Annotations[p.Name]})
	}
	return ls
}

// Propose searches for new sublineages
// of the lineages annotated on the tree.
//
// If the tree has no annotations,
// the root of the tree is used as the parent lineage.
// Otherwise the parents of the first level
// are the outermost annotated lineages.
// The proposals of a level
// are the parents of the next level.
//
// The tree is not modified.
func Propose(t *mattree.Tree, p Param) (*Result, error) {
	if p.Cutoff <= 0 || p.Cutoff > 1 {
		p.Cutoff = 1
	}
	if p.Root == "" {
		p.Root = DefaultRoot
	}
	if p.Aliases == nil {
		p.Aliases = alias.New(alias.DefaultDepth)
	}

	// weight tables use the names of the source files
	nodeName := func(id string) string {
		if n, ok := t.Node(id); ok {
			return t.ID(n)
		}
		return id
	}
	p.Samples = p.Samples.Rename(nodeName)
	if p.Model != nil && p.Model.Weights != nil {
		m := *p.Model
		m.Weights = m.Weights.Rename(nodeName)
		p.Model = &m
	}

	ann := t.AnnotationMap()
	res := &Result{
		Annotations: maps.Clone(ann),
		Aliases:     p.Aliases,
		tree:        t,
		original:    make(map[string]bool, len(ann)),
	}
	for name := range ann {
		res.original[name] = true
	}

	parents, err := firstParents(t, ann, p)
	if err != nil {
		return nil, err
	}

	pr := newProposer(t, p)
	for name := range ann {
		p.Aliases.Reserve(name)
		pr.use(name)
	}
	if len(ann) == 0 {
		p.Aliases.Reserve(p.Root)
		pr.use(p.Root)
	}

	for level := 1; ; level++ {
		var next []Lineage
		for _, pl := range parents {
			props, err := pr.serial(pl, level)
			if err != nil {
				return nil, err
			}
			for _, np := range props {
				n, _ := t.Node(np.Node)
				res.Proposals = append(res.Proposals, np)
				res.Annotations[np.Name] = n
				next = append(next, Lineage{Name: np.Name, Node: n})
			}
		}
		if p.Log != nil {
			fmt.Fprintf(p.Log, "level %d: %d proposals\n", level, len(next))
		}
		if len(next) == 0 {
			break
		}
		if p.Levels > 0 && level >= p.Levels {
			break
		}
		parents = next
	}
	return res, nil
}

func firstParents(t *mattree.Tree, ann map[string]int, p Param) ([]Lineage, error) {
	if len(ann) == 0 {
		if p.Lineage != "" && p.Lineage != p.Root {
			return nil, fmt.Errorf("%w: %q", ErrNoLineage, p.Lineage)
		}
		return []Lineage{{Name: p.Root, Node: t.Root()}}, nil
	}

	parents := OuterAnnotations(t, ann)
	if p.Lineage == "" {
		return parents, nil
	}

	only, ok := ann[p.Lineage]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoLineage, p.Lineage)
	}
	parents = slices.DeleteFunc(parents, func(l Lineage) bool {
		return !t.IsAncestor(only, l.Node)
	})
	return parents, nil
}

// A proposer keeps the state
// shared between the serial searches
// of a proposal search.
type proposer struct {
	t *mattree.Tree
	p Param

	// leaves without sample weight
	excluded NodeSet

	// nodes that can not be proposed
	banned NodeSet

	// lineage names already in use
	used map[string]bool
}

func newProposer(t *mattree.Tree, p Param) *proposer {
	pr := &proposer{
		t:        t,
		p:        p,
		excluded: NewNodeSet(t),
		banned:   NewNodeSet(t),
		used:     make(map[string]bool),
	}
	if p.Samples != nil {
		for _, n := range t.Leaves(t.Root()) {
			if p.Samples.Weight(t.ID(n)) <= 0 {
				pr.excluded.Add(n)
			}
		}
	}
	return pr
}

func (pr *proposer) use(name string) {
	pr.used[name] = true
	pr.used[pr.p.Aliases.Expand(name)] = true
}

// Serial proposes the sublineages of a parent lineage.
// After each proposal,
// the leaves of the proposed lineage are excluded
// and the search is repeated,
// until no candidate has a score above the floor,
// or the covered leaves reach the cutoff.
func (pr *proposer) serial(parent Lineage, level int) ([]Proposal, error) {
	t := pr.t
	nodes := t.BreadthFirst(parent.Node)
	bottom := slices.Clone(nodes)
	slices.Reverse(bottom)

	dist, err := DistancesFromRoot(t, parent.Node, pr.p.Model)
	if err != nil {
		return nil, fmt.Errorf("lineage %q: %w", parent.Name, err)
	}

	excluded := slices.Clone(pr.excluded)
	var total int
	for _, n := range nodes {
		if t.IsLeaf(n) && !excluded.Has(n) {
			total++
		}
	}
	if total == 0 {
		return nil, nil
	}

	var props []Proposal
	var covered, serial int
	for {
		cov, _ := SumAndCount(t, bottom, excluded, pr.p.Model, pr.p.Samples)
		score, best := EvaluateLineage(t, parent.Node, nodes, cov, dist, pr.p.Threshold, pr.banned)
		if best < 0 || score <= pr.p.Floor {
			break
		}

		var name string
		name, serial = pr.nextName(parent.Name, serial)
		for _, a := range t.RootPath(best) {
			pr.banned.Add(a)
		}

		var size int
		for _, l := range t.Leaves(best) {
			if excluded.Has(l) {
				continue
			}
			excluded.Add(l)
			size++
		}
		covered += size

		props = append(props, Proposal{
			Parent:     parent.Name,
			ParentNode: t.ID(parent.Node),
			Name:       name,
			Node:       t.ID(best),
			Score:      score,
			Size:       size,
			Level:      level,
		})

		if float64(covered) >= pr.p.Cutoff*float64(total) {
			break
		}
	}
	return props, nil
}

// NextName returns the name of the next sublineage
// of the parent,
// skipping any name already in use.
// It returns the name and the serial number used.
func (pr *proposer) nextName(parent string, serial int) (string, int) {
	for {
		serial++
		full := parent + "." + strconv.Itoa(serial)
		if pr.used[full] || pr.used[pr.p.Aliases.Peek(full)] || pr.used[pr.p.Aliases.Expand(full)] {
			continue
		}
		name := pr.p.Aliases.Compress(full)
		pr.use(name)
		pr.used[full] = true
		return name, serial
	}
}
