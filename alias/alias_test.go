// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package alias_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/js-arias/autolin/alias"
)

func TestIncrement(t *testing.T) {
	tests := map[string]string{
		"A":   "B",
		"H":   "J",
		"N":   "P",
		"W":   "Y",
		"Z":   "AA",
		"AZ":  "BA",
		"BC":  "BD",
		"ZZ":  "AAA",
		"AAZ": "ABA",
		"AZZ": "BAA",
		"XB":  "XC",
	}
	for in, want := range tests {
		if got := alias.Increment(in); got != want {
			t.Errorf("increment %q: got %q, want %q", in, got, want)
		}
	}
}

func TestName(t *testing.T) {
	tab := alias.New(alias.DefaultDepth)

	tests := []struct {
		parent string
		serial int
		want   string
	}{
		{"A", 1, "A.1"},
		{"A.1.1", 3, "A.1.1.3"},
		{"A.1.1.1", 28, "B.28"},
		{"A.1.1.1", 29, "B.29"},
		{"A.1.1.2", 5, "C.5"},
		{"Z.1.1.1", 53, "AA.53"},
		{"BZ.1.1.1", 51, "CA.51"},
		{"20G.1.1.1", 2, "20G.1.1.1.2"},
		{"auto.1.1.1", 2, "auto.1.1.1.2"},
		{"b.1.1.1", 1, "b.1.1.1.1"},
		{"Ba.1.1.1", 1, "Ba.1.1.1.1"},
	}
	for _, test := range tests {
		if got := tab.Name(test.parent, test.serial); got != test.want {
			t.Errorf("name %s.%d: got %q, want %q", test.parent, test.serial, got, test.want)
		}
	}

	if got := tab.Expand("B.28"); got != "A.1.1.1.28" {
		t.Errorf("expand: got %q, want %q", got, "A.1.1.1.28")
	}
	if got := tab.Expand("B.28.4"); got != "A.1.1.1.28.4" {
		t.Errorf("expand: got %q, want %q", got, "A.1.1.1.28.4")
	}
	if got := tab.Expand("C.5"); got != "A.1.1.2.5" {
		t.Errorf("expand: got %q, want %q", got, "A.1.1.2.5")
	}
	if _, ok := tab.Lookup("20G.1.1.1.2"); ok {
		t.Errorf("non letter names should not be stored")
	}
	if tab.Len() != 5 {
		t.Errorf("aliases: got %d, want %d", tab.Len(), 5)
	}
}

func TestReserve(t *testing.T) {
	tab := alias.New(alias.DefaultDepth)
	tab.Reserve("B.1", "C", "20A.1", "auto.1")

	if got := tab.Name("A.1.1.1", 1); got != "D.1" {
		t.Errorf("name: got %q, want %q", got, "D.1")
	}
}

func TestPeek(t *testing.T) {
	tab := alias.New(2)
	if got := tab.Peek("A.1.2"); got != "B.2" {
		t.Errorf("peek: got %q, want %q", got, "B.2")
	}
	if tab.Len() != 0 {
		t.Errorf("peek should not modify the table")
	}
	if got := tab.Compress("A.1.2"); got != "B.2" {
		t.Errorf("compress: got %q, want %q", got, "B.2")
	}
}

func TestRoundTrip(t *testing.T) {
	tab := alias.New(3)
	names := []string{
		"A.1.2.3",
		"A.1.2.4",
		"A.1.3.1",
		"D.2.2.2",
		"Q.7.7.7.7.7",
		"A.1",
	}
	for _, n := range names {
		short := tab.Compress(n)
		if got := tab.Expand(short); got != n {
			t.Errorf("round trip %q: compressed %q, expanded %q", n, short, got)
		}
	}

	// nested compression
	short := tab.Compress("A.1.2.3")
	deep := tab.Compress(short + ".1.1")
	if got := tab.Expand(deep); got != "A.1.2.3.1.1" {
		t.Errorf("nested: %q expanded as %q, want %q", deep, got, "A.1.2.3.1.1")
	}
}

func TestTSV(t *testing.T) {
	tab := alias.New(alias.DefaultDepth)
	tab.Name("B.1.1.529", 1)
	tab.Name("B.1.1.529", 2)
	tab.Name("B.1.617", 2)

	var w bytes.Buffer
	if err := tab.TSV(&w); err != nil {
		t.Fatalf("unable to write table: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	nt, err := alias.ReadTSV(strings.NewReader(w.String()), alias.DefaultDepth)
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	if nt.Len() != 2 {
		t.Fatalf("aliases: got %d, want %d", nt.Len(), 2)
	}
	if got := nt.Expand("C.2"); got != "B.1.1.529.2" {
		t.Errorf("expand: got %q, want %q", got, "B.1.1.529.2")
	}

	// the code is kept for the same prefix
	if got := nt.Name("B.1.1.529", 3); got != "C.3" {
		t.Errorf("name: got %q, want %q", got, "C.3")
	}
	// and new prefixes get a new code
	if got := nt.Name("B.1.1.7", 1); got != "D.1" {
		t.Errorf("name: got %q, want %q", got, "D.1")
	}

	bad := "alias\tlineage\nC.1\tB.1.1.529.1\nC.1\tB.1.1.7.1\n"
	if _, err := alias.ReadTSV(strings.NewReader(bad), alias.DefaultDepth); err == nil {
		t.Errorf("conflicting aliases: expecting error")
	}
}
