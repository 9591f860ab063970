// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mattree

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/js-arias/timetree"
)

// MillionYears is the unit used for branch lengths
// of trees imported from time-calibrated trees.
const MillionYears = 1_000_000

// FromTimeTree creates a new tree
// from a time-calibrated tree.
//
// Terminals are identified by its taxon name
// (as stored by timetree, see TaxonName),
// and internal nodes by "node_" followed by the node ID
// in the source tree.
// Branch lengths are set in million years.
// The resulting tree does not have mutations.
func FromTimeTree(tt *timetree.Tree) (*Tree, error) {
	root := tt.Root()
	t := New(tt.Name(), nodeID(tt, root))
	t.SetLength(t.Root(), 0)

	queue := []int{root}
	for i := 0; i < len(queue); i++ {
		p := queue[i]
		pID := nodeID(tt, p)
		for _, c := range tt.Children(p) {
			n, err := t.Add(nodeID(tt, c), pID)
			if err != nil {
				return nil, fmt.Errorf("tree %q: %v", tt.Name(), err)
			}
			l := float64(tt.Age(p)-tt.Age(c)) / MillionYears
			t.SetLength(n, l)
			queue = append(queue, c)
		}
	}
	return t, nil
}

func nodeID(tt *timetree.Tree, n int) string {
	if tt.IsTerm(n) {
		if tax := tt.Taxon(n); tax != "" {
			return tax
		}
	}
	return "node_" + strconv.Itoa(n)
}

// TaxonName returns a name in the form
// used by timetree for taxon names:
// underscores are read as spaces,
// blanks are collapsed,
// and only the first letter is capitalized.
// For example "hCoV_19_a" is "Hcov 19 a".
func TaxonName(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[n:]
}
