// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package report implements summaries
// of proposed lineages.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/mutation"
	"gonum.org/v1/gonum/stat"
)

// A Row is the description of a proposed lineage
// in relation to its parent lineage.
type Row struct {
	lineage.Proposal

	// Number of leaves of the parent
	// and the proposed lineage.
	ParentSize int
	SubSize    int

	// Number of mutations in the subtree
	// of the parent and the proposed lineage.
	ParentParsimony int
	SubParsimony    int

	// Mutations in the path
	// from the parent to the proposed lineage.
	Mutations []mutation.Event
}

// Percent returns the percentage of the parent leaves
// included in the proposed lineage.
func (r Row) Percent() float64 {
	if r.ParentSize == 0 {
		return 0
	}
	return float64(r.SubSize) / float64(r.ParentSize) * 100
}

// ParsimonyPercent returns the percentage
// of the mutations of the parent subtree
// found in the subtree of the proposed lineage.
func (r Row) ParsimonyPercent() float64 {
	if r.ParentParsimony == 0 {
		return 0
	}
	return float64(r.SubParsimony) / float64(r.ParentParsimony) * 100
}

// LogScore returns the base 10 logarithm of the score.
func (r Row) LogScore() float64 {
	return math.Log10(r.Score)
}

// Build returns the report rows
// of a set of proposals.
func Build(t *mattree.Tree, ps []lineage.Proposal) ([]Row, error) {
	rows := make([]Row, 0, len(ps))
	for _, p := range ps {
		pn, ok := t.Node(p.ParentNode)
		if !ok {
			return nil, fmt.Errorf("proposal %q: parent node %q: %w", p.Name, p.ParentNode, mattree.ErrNotFound)
		}
		sn, ok := t.Node(p.Node)
		if !ok {
			return nil, fmt.Errorf("proposal %q: node %q: %w", p.Name, p.Node, mattree.ErrNotFound)
		}
		if !t.IsAncestor(pn, sn) {
			return nil, fmt.Errorf("proposal %q: node %q is not a descendant of %q", p.Name, p.Node, p.ParentNode)
		}

		rows = append(rows, Row{
			Proposal:        p,
			ParentSize:      len(t.Leaves(pn)),
			SubSize:         len(t.Leaves(sn)),
			ParentParsimony: t.Parsimony(pn),
			SubParsimony:    t.Parsimony(sn),
			Mutations:       t.Haplotype(sn, pn),
		})
	}
	return rows, nil
}

var header = []string{
	"parent",
	"parent_nid",
	"proposed_sublineage",
	"proposed_sublineage_nid",
	"level",
	"parent_size",
	"sublineage_size",
	"percent",
	"parent_parsimony",
	"sublineage_parsimony",
	"parsimony_percent",
	"log10_score",
	"mutations",
}

// TSV writes the report rows as a TSV file.
func TSV(w io.Writer, rows []Row) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, r := range rows {
		row := []string{
			r.Parent,
			r.ParentNode,
			r.Name,
			r.Node,
			strconv.Itoa(r.Level),
			strconv.Itoa(r.ParentSize),
			strconv.Itoa(r.SubSize),
			strconv.FormatFloat(r.Percent(), 'f', 3, 64),
			strconv.Itoa(r.ParentParsimony),
			strconv.Itoa(r.SubParsimony),
			strconv.FormatFloat(r.ParsimonyPercent(), 'f', 3, 64),
			strconv.FormatFloat(r.LogScore(), 'f', 3, 64),
			mutation.Join(r.Mutations, ","),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// Stats is a summary of a distribution of values.
type Stats struct {
	Mean float64
	Q05  float64
	Q50  float64
	Q95  float64
}

// Summary is a summary of a set of proposals.
type Summary struct {
	N     int
	Score Stats
	Size  Stats
}

// Summarize returns the summary
// of the score and size of a set of report rows.
func Summarize(rows []Row) Summary {
	if len(rows) == 0 {
		return Summary{}
	}

	scores := make([]float64, 0, len(rows))
	sizes := make([]float64, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, r.Score)
		sizes = append(sizes, float64(r.Size))
	}
	return Summary{
		N:     len(rows),
		Score: summarize(scores),
		Size:  summarize(sizes),
	}
}

func summarize(x []float64) Stats {
	slices.Sort(x)
	return Stats{
		Mean: stat.Mean(x, nil),
		Q05:  stat.Quantile(0.05, stat.Empirical, x, nil),
		Q50:  stat.Quantile(0.5, stat.Empirical, x, nil),
		Q95:  stat.Quantile(0.95, stat.Empirical, x, nil),
	}
}
