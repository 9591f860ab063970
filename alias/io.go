// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package alias

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var header = []string{
	"alias",
	"lineage",
}

// ReadTSV reads an alias table from a TSV file.
//
// The TSV must contain the following fields:
//
//   - alias, the compressed name
//   - lineage, the expanded name
//
// Here is an example file:
//
//	# lineage aliases
//	alias	lineage
//	BA.1	B.1.1.529.1
//	BA.2	B.1.1.529.2
func ReadTSV(r io.Reader, depth int) (*Table, error) {
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
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	t := New(depth)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "alias"
		short := strings.TrimSpace(row[fields[f]])
		if short == "" {
			continue
		}
		f = "lineage"
		full := strings.TrimSpace(row[fields[f]])
		if full == "" {
			return nil, fmt.Errorf("on row %d: alias %q: empty lineage", ln, short)
		}
		if prev, ok := t.Lookup(short); ok && prev != full {
			return nil, fmt.Errorf("on row %d: alias %q: defined as %q and %q", ln, short, prev, full)
		}
		t.Add(short, full)
	}
	return t, nil
}

// TSV writes an alias table as a TSV file.
func (t *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, a := range t.Aliases() {
		row := []string{
			a,
			t.names[a],
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
