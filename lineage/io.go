// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package lineage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

var proposalHeader = []string{
	"parent",
	"parent_nid",
	"proposed_sublineage",
	"proposed_sublineage_nid",
	"proposed_sublineage_score",
	"proposed_sublineage_size",
	"level",
}

// WriteProposals writes a list of proposals
// as a TSV file.
func WriteProposals(w io.Writer, ps []Proposal) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(proposalHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, p := range ps {
		row := []string{
			p.Parent,
			p.ParentNode,
			p.Name,
			p.Node,
			strconv.FormatFloat(p.Score, 'f', 6, 64),
			strconv.Itoa(p.Size),
			strconv.Itoa(p.Level),
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

// ReadProposals reads a list of proposals
// from a TSV file.
//
// The TSV must contain the following fields:
//
//   - parent, the name of the parent lineage
//   - parent_nid, the node of the parent lineage
//   - proposed_sublineage, the name of the proposal
//   - proposed_sublineage_nid, the node of the proposal
//   - proposed_sublineage_score, the score of the proposal
//   - proposed_sublineage_size, the number of leaves of the proposal
//
// Optionally it can contain the field level.
//
// Here is an example file:
//
//	parent	parent_nid	proposed_sublineage	proposed_sublineage_nid	proposed_sublineage_score	proposed_sublineage_size	level
//	L	node_1	L.1	node_5	40.000000	50	1
//	L	node_1	L.2	node_9	31.250000	30	1
func ReadProposals(r io.Reader) ([]Proposal, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range proposalHeader[:len(proposalHeader)-1] {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var ps []Proposal
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		p := Proposal{
			Parent:     strings.TrimSpace(row[fields["parent"]]),
			ParentNode: strings.TrimSpace(row[fields["parent_nid"]]),
			Name:       strings.TrimSpace(row[fields["proposed_sublineage"]]),
			Node:       strings.TrimSpace(row[fields["proposed_sublineage_nid"]]),
			Level:      1,
		}
		if p.Name == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty name", ln, "proposed_sublineage")
		}

		f := "proposed_sublineage_score"
		p.Score, err = strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		f = "proposed_sublineage_size"
		p.Size, err = strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		f = "level"
		if i, ok := fields[f]; ok {
			p.Level, err = strconv.Atoi(strings.TrimSpace(row[i]))
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
			}
		}
		ps = append(ps, p)
	}
	return ps, nil
}

var labelHeader = []string{
	"sample",
	"lineage",
}

// WriteLabels writes the lineage of each sample
// as a TSV file.
// Samples are sorted by name.
func WriteLabels(w io.Writer, labels map[string]string) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(labelHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	samples := make([]string, 0, len(labels))
	for s := range labels {
		samples = append(samples, s)
	}
	slices.Sort(samples)
	for _, s := range samples {
		if err := tab.Write([]string{s, labels[s]}); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
