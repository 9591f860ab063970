// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mattree

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/autolin/mutation"
)

// ReadMutations reads the mutations of the branches
// of the tree from a TSV file.
//
// The TSV must contain the following fields:
//
//   - node, the ID of the node
//   - mutations, a comma separated list of mutations
//     on the branch of the node
//
// Mutations of nodes in the file replace
// the mutations already defined in the tree.
//
// Here is an example file:
//
//	# branch mutations
//	node	mutations
//	node_1	C241T,A23403G
//	seq_A	G28881A
func (t *Tree) ReadMutations(r io.Reader) error {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range []string{"node", "mutations"} {
		if _, ok := fields[h]; !ok {
			return fmt.Errorf("expecting field %q", h)
		}
	}

	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "node"
		id := strings.TrimSpace(row[fields[f]])
		if id == "" {
			continue
		}
		n, ok := t.Node(id)
		if !ok {
			return fmt.Errorf("on row %d: node %q: %w", ln, id, ErrNotFound)
		}

		f = "mutations"
		muts, err := mutation.ParseList(row[fields[f]])
		if err != nil {
			return fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		t.SetMutations(n, muts)
	}
	return nil
}
