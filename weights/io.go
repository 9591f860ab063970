// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package weights

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/autolin/mutation"
)

// ReadMutations reads a mutation weight table.
//
// The file is a whitespace-delimited file without header
// with the following columns:
//
//   - a mutation string
//   - the weight of the mutation
//   - optionally, a node ID, to restrict the weight
//     to the branch of that node
//
// Lines starting with '#' are ignored.
// Here is an example file:
//
//	# spike escape weights
//	A23403G	2.5
//	G22813T	10
//	C241T	0.5	node_12
//
// If the file does not have any weight,
// it returns ErrEmpty.
func ReadMutations(r io.Reader) (*Mutations, error) {
	m := NewMutations()

	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		fs := strings.Fields(line)
		if len(fs) < 2 {
			return nil, fmt.Errorf("on line %d: got %d fields, want 2", ln, len(fs))
		}

		e, err := mutation.Parse(fs[0])
		if err != nil {
			return nil, fmt.Errorf("on line %d: %w", ln, err)
		}
		w, err := strconv.ParseFloat(fs[1], 64)
		if err != nil {
			return nil, fmt.Errorf("on line %d: weight %q: %v", ln, fs[1], err)
		}
		var node string
		if len(fs) > 2 {
			node = fs[2]
		}
		m.Set(e, node, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if m.Len() == 0 {
		return nil, ErrEmpty
	}
	return m, nil
}

// TSV writes a mutation weight table.
// As the reference allele is not stored,
// mutations are written without it.
func (m *Mutations) TSV(w io.Writer) error {
	keys := make([]key, 0, len(m.w))
	for k := range m.w {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b key) int {
		if a.loc != b.loc {
			return a.loc - b.loc
		}
		if c := strings.Compare(a.alt, b.alt); c != 0 {
			return c
		}
		return strings.Compare(a.node, b.node)
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# mutation weights\n")
	for _, k := range keys {
		e := mutation.Event{Loc: k.loc, Alt: k.alt}
		wv := strconv.FormatFloat(m.w[k], 'f', -1, 64)
		if k.node != "" {
			fmt.Fprintf(bw, "%s\t%s\t%s\n", e, wv, k.node)
			continue
		}
		fmt.Fprintf(bw, "%s\t%s\n", e, wv)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// ReadSamples reads a sample weight table
// from a TSV file without header.
//
// The first column is the sample ID,
// and the second column its weight.
// Weights must be non-negative.
//
// Here is an example file:
//
//	# sample weights
//	USA/CA-1234/2022	1.5
//	England/MILK-9E05B3/2022	0.25
func ReadSamples(r io.Reader) (Samples, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	s := make(Samples)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("on row %d: got %d fields, want 2", ln, len(row))
		}

		id := strings.TrimSpace(row[0])
		if id == "" {
			continue
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: sample %q: %v", ln, id, err)
		}
		if w < 0 {
			return nil, fmt.Errorf("on row %d: sample %q: negative weight %.6f", ln, id, w)
		}
		s[id] = w
	}
	if len(s) == 0 {
		return nil, ErrEmpty
	}
	return s, nil
}
