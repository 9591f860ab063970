// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mattree

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/autolin/mutation"
)

var header = []string{
	"node",
	"parent",
	"length",
	"mutations",
	"annotation1",
	"annotation2",
}

type row struct {
	ln     int
	id     string
	parent string
	length string
	muts   []mutation.Event
	ann    [Slots]string
}

// ReadTSV reads a tree from a TSV file.
//
// The TSV must contain the following fields:
//
//   - node, the ID of the node
//   - parent, the ID of the parent node
//     (empty for the root)
//
// Optionally it can contain the fields:
//
//   - length, the branch length of the node
//   - mutations, a comma separated list of mutations
//     on the branch of the node
//   - annotation1 and annotation2,
//     the lineage labels defined on the node
//
// Rows can be in any order,
// but there must be a single root,
// and all nodes must be connected to it.
//
// Here is an example file:
//
//	# mutation-annotated tree
//	node	parent	mutations	annotation1	annotation2
//	root
//	node_1	root	C241T,A23403G	B.1
//	seq_A	node_1	G28881A
//	seq_B	node_1
//	seq_C	root	T3037C
func ReadTSV(r io.Reader, name string) (*Tree, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range header[:2] {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	get := func(fs []string, f string) string {
		i, ok := fields[f]
		if !ok || i >= len(fs) {
			return ""
		}
		return strings.TrimSpace(fs[i])
	}

	var root *row
	rows := make(map[string]*row)
	children := make(map[string][]string)
	var order []string
	for {
		fs, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		nr := &row{
			ln:     ln,
			id:     get(fs, "node"),
			parent: get(fs, "parent"),
			length: get(fs, "length"),
		}
		if nr.id == "" {
			continue
		}
		if _, dup := rows[nr.id]; dup {
			return nil, fmt.Errorf("on row %d: node %q: repeated node", ln, nr.id)
		}
		nr.muts, err = mutation.ParseList(get(fs, "mutations"))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "mutations", err)
		}
		nr.ann[0] = get(fs, "annotation1")
		nr.ann[1] = get(fs, "annotation2")

		rows[nr.id] = nr
		order = append(order, nr.id)
		if nr.parent == "" {
			if root != nil {
				return nil, fmt.Errorf("on row %d: node %q: multiple roots (previous %q)", ln, nr.id, root.id)
			}
			root = nr
			continue
		}
		children[nr.parent] = append(children[nr.parent], nr.id)
	}
	if root == nil {
		return nil, errors.New("root node not found")
	}

	t := New(name, root.id)
	if err := t.setRow(0, root); err != nil {
		return nil, err
	}
	queue := []string{root.id}
	for i := 0; i < len(queue); i++ {
		for _, c := range children[queue[i]] {
			cr := rows[c]
			n, err := t.Add(cr.id, cr.parent)
			if err != nil {
				return nil, fmt.Errorf("on row %d: %v", cr.ln, err)
			}
			if err := t.setRow(n, cr); err != nil {
				return nil, err
			}
			queue = append(queue, c)
		}
	}

	if t.Len() < len(rows) {
		for _, id := range order {
			if _, ok := t.ids[id]; !ok {
				cr := rows[id]
				return nil, fmt.Errorf("on row %d: node %q: parent %q: %w", cr.ln, cr.id, cr.parent, ErrCycle)
			}
		}
	}
	return t, nil
}

func (t *Tree) setRow(n int, r *row) error {
	nd := t.nodes[n]
	nd.muts = r.muts
	nd.ann = r.ann
	if r.length == "" {
		return nil
	}
	l, err := strconv.ParseFloat(r.length, 64)
	if err != nil {
		return fmt.Errorf("on row %d: field %q: %v", r.ln, "length", err)
	}
	t.SetLength(n, l)
	return nil
}

// TSV writes a tree as a TSV file.
//
// Nodes are written in breadth-first order.
func (t *Tree) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	head := header
	if !t.lengths {
		head = []string{header[0], header[1], header[3], header[4], header[5]}
	}
	if err := tab.Write(head); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, n := range t.BreadthFirst(t.Root()) {
		nd := t.nodes[n]
		parent := ""
		if nd.parent >= 0 {
			parent = t.nodes[nd.parent].id
		}
		rec := []string{
			nd.id,
			parent,
		}
		if t.lengths {
			var l string
			if nd.hasLen {
				l = strconv.FormatFloat(nd.length, 'f', -1, 64)
			}
			rec = append(rec, l)
		}
		rec = append(rec,
			mutation.Join(nd.muts, ","),
			nd.ann[0],
			nd.ann[1],
		)
		if err := tab.Write(rec); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
