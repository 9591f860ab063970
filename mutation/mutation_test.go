// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mutation_test

import (
	"errors"
	"testing"

	"github.com/js-arias/autolin/mutation"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in   string
		want mutation.Event
	}{
		"full":      {"A23403G", mutation.Event{Loc: 23403, Ref: "A", Alt: "G"}},
		"no ref":    {"23403G", mutation.Event{Loc: 23403, Alt: "G"}},
		"chrom":     {"NC_045512v2:C241T", mutation.Event{Chrom: "NC_045512v2", Loc: 241, Ref: "C", Alt: "T"}},
		"amino":     {"S:D614G", mutation.Event{Chrom: "S", Loc: 614, Ref: "D", Alt: "G"}},
		"deletion":  {"G22-", mutation.Event{Loc: 22, Ref: "G", Alt: "-"}},
		"spaces":    {"  T1C ", mutation.Event{Loc: 1, Ref: "T", Alt: "C"}},
		"stop gain": {"Q27*", mutation.Event{Loc: 27, Ref: "Q", Alt: "*"}},
	}

	for name, test := range tests {
		e, err := mutation.Parse(test.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if e != test.want {
			t.Errorf("%s: got %+v, want %+v", name, e, test.want)
		}
	}
}

func TestParseError(t *testing.T) {
	for _, s := range []string{"", "G", "A12", "AB", "A1x2G", "A12G5", "chr:"} {
		if _, err := mutation.Parse(s); !errors.Is(err, mutation.ErrSyntax) {
			t.Errorf("%q: got error %v, want %v", s, err, mutation.ErrSyntax)
		}
	}
}

func TestString(t *testing.T) {
	for _, s := range []string{"A23403G", "23403G", "NC_045512v2:C241T"} {
		e, err := mutation.Parse(s)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", s, err)
		}
		if got := e.String(); got != s {
			t.Errorf("string: got %q, want %q", got, s)
		}
	}
}

func TestParseList(t *testing.T) {
	ls, err := mutation.ParseList("A1G, C2T,,G3A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ls) != 3 {
		t.Fatalf("list: got %d events, want %d", len(ls), 3)
	}
	if got := mutation.Join(ls, ","); got != "A1G,C2T,G3A" {
		t.Errorf("join: got %q, want %q", got, "A1G,C2T,G3A")
	}

	if ls, err := mutation.ParseList(" "); err != nil || len(ls) != 0 {
		t.Errorf("empty list: got %v (error %v)", ls, err)
	}
	if _, err := mutation.ParseList("A1G,bad"); err == nil {
		t.Errorf("bad list: expecting error")
	}
}

func TestOpposite(t *testing.T) {
	a, _ := mutation.Parse("A100G")
	b, _ := mutation.Parse("G100A")
	c, _ := mutation.Parse("G101A")
	d, _ := mutation.Parse("100A")
	e, _ := mutation.Parse("chr2:G100A")

	if !mutation.Opposite(a, b) {
		t.Errorf("opposite %v %v: got false, want true", a, b)
	}
	if mutation.Opposite(a, c) {
		t.Errorf("opposite %v %v: got true, want false", a, c)
	}
	if mutation.Opposite(a, d) {
		t.Errorf("opposite %v %v: got true, want false", a, d)
	}
	if mutation.Opposite(a, e) {
		t.Errorf("opposite %v %v: got true, want false", a, e)
	}
	if mutation.Opposite(a, a) {
		t.Errorf("opposite %v %v: got true, want false", a, a)
	}
}
