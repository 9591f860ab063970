// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package weights

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/mutation"
)

// A Region is an inclusive interval
// of loci in a chromosome.
type Region struct {
	Chrom string
	Start int
	End   int
}

// Contains returns true if the mutation
// is inside the region.
// If either the region or the mutation
// do not define a chromosome,
// only the locus is checked.
func (r Region) Contains(e mutation.Event) bool {
	if r.Chrom != "" && e.Chrom != "" && r.Chrom != e.Chrom {
		return false
	}
	return e.Loc >= r.Start && e.Loc <= r.End
}

// ReadBED reads a list of regions
// from a BED-like file,
// i.e., a tab-delimited file without header
// with the chromosome, start, and end
// of each region.
//
// Here is an example file
// (the spike gene of SARS-CoV-2):
//
//	# spike
//	NC_045512v2	21563	25384
func ReadBED(r io.Reader) ([]Region, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	var rs []Region
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("on row %d: got %d fields, want 3", ln, len(row))
		}

		start, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: start: %v", ln, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: end: %v", ln, err)
		}
		if end < start {
			return nil, fmt.Errorf("on row %d: end %d before start %d", ln, end, start)
		}
		rs = append(rs, Region{
			Chrom: strings.TrimSpace(row[0]),
			Start: start,
			End:   end,
		})
	}
	if len(rs) == 0 {
		return nil, ErrEmpty
	}
	return rs, nil
}

// FromRegions returns a mutation weight table
// in which all the mutations of the tree
// that are inside any of the regions
// have weight 1.
//
// As undefined mutations have weight 0,
// mutations outside the regions are ignored.
func FromRegions(t *mattree.Tree, rs []Region) *Mutations {
	m := NewMutations()
	for n := 0; n < t.Len(); n++ {
		for _, e := range t.Mutations(n) {
			for _, r := range rs {
				if r.Contains(e) {
					m.Set(e, "", 1)
					break
				}
			}
		}
	}
	return m
}
