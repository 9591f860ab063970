// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package report_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/mutation"
	"github.com/js-arias/autolin/report"
)

const treeFile = `node	parent	mutations
root
n1	root	C241T,A23403G
s1	n1	G28881A
s2	n1
n2	n1	T3037C
s3	n2
s4	n2	C100T
s5	root	T5C
`

func readTree(t testing.TB) *mattree.Tree {
	t.Helper()

	tr, err := mattree.ReadTSV(strings.NewReader(treeFile), "test")
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	return tr
}

var proposals = []lineage.Proposal{
	{Parent: "L", ParentNode: "root", Name: "L.1", Node: "n1", Score: 100, Size: 4, Level: 1},
	{Parent: "L.1", ParentNode: "n1", Name: "L.1.1", Node: "n2", Score: 10, Size: 2, Level: 2},
}

func TestBuild(t *testing.T) {
	tr := readTree(t)
	rows, err := report.Build(tr, proposals)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows: got %d, want %d", len(rows), 2)
	}

	r := rows[0]
	if r.ParentSize != 5 || r.SubSize != 4 {
		t.Errorf("row %q: sizes: got %d/%d, want %d/%d", r.Name, r.SubSize, r.ParentSize, 4, 5)
	}
	if r.Percent() != 80 {
		t.Errorf("row %q: percent: got %.3f, want %.3f", r.Name, r.Percent(), 80.0)
	}
	if r.ParentParsimony != 6 || r.SubParsimony != 5 {
		t.Errorf("row %q: parsimony: got %d/%d, want %d/%d", r.Name, r.SubParsimony, r.ParentParsimony, 5, 6)
	}
	if math.Abs(r.LogScore()-2) > 1e-9 {
		t.Errorf("row %q: log score: got %.3f, want %.3f", r.Name, r.LogScore(), 2.0)
	}
	if m := mutation.Join(r.Mutations, ","); m != "C241T,A23403G" {
		t.Errorf("row %q: mutations: got %q, want %q", r.Name, m, "C241T,A23403G")
	}

	r = rows[1]
	if m := mutation.Join(r.Mutations, ","); m != "T3037C" {
		t.Errorf("row %q: mutations: got %q, want %q", r.Name, m, "T3037C")
	}
	if r.ParsimonyPercent() != 40 {
		t.Errorf("row %q: parsimony percent: got %.3f, want %.3f", r.Name, r.ParsimonyPercent(), 40.0)
	}

	var w bytes.Buffer
	if err := report.TSV(&w, rows); err != nil {
		t.Fatalf("write report: %v", err)
	}
	if !strings.Contains(w.String(), "L.1.1\tn2\t2\t4\t2\t50.000\t5\t2\t40.000\t1.000\tT3037C\r\n") {
		t.Errorf("report output: unexpected row for %q:\n%s", "L.1.1", w.String())
	}
}

func TestBuildErrors(t *testing.T) {
	tr := readTree(t)

	bad := []lineage.Proposal{{Parent: "L", ParentNode: "root", Name: "L.1", Node: "n9"}}
	if _, err := report.Build(tr, bad); !errors.Is(err, mattree.ErrNotFound) {
		t.Errorf("unknown node: got error %v, want %v", err, mattree.ErrNotFound)
	}

	bad = []lineage.Proposal{{Parent: "L.1", ParentNode: "n1", Name: "L.1.1", Node: "s5"}}
	if _, err := report.Build(tr, bad); err == nil {
		t.Errorf("node outside parent: expecting error")
	}
}

func TestSummarize(t *testing.T) {
	rows := make([]report.Row, 0, 20)
	for i := 1; i <= 20; i++ {
		rows = append(rows, report.Row{
			Proposal: lineage.Proposal{Score: float64(i), Size: i * 10},
		})
	}

	s := report.Summarize(rows)
	if s.N != 20 {
		t.Errorf("summary: n: got %d, want %d", s.N, 20)
	}
	if math.Abs(s.Score.Mean-10.5) > 1e-9 {
		t.Errorf("summary: score mean: got %.3f, want %.3f", s.Score.Mean, 10.5)
	}
	if s.Score.Q05 != 1 || s.Score.Q50 != 10 || s.Score.Q95 != 19 {
		t.Errorf("summary: score quantiles: got %v", s.Score)
	}
	if s.Size.Q50 != 100 {
		t.Errorf("summary: size median: got %.3f, want %.3f", s.Size.Q50, 100.0)
	}

	if s := report.Summarize(nil); s.N != 0 {
		t.Errorf("empty summary: n: got %d, want %d", s.N, 0)
	}
}

func TestPlot(t *testing.T) {
	tr := readTree(t)
	rows, err := report.Build(tr, proposals)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	name := filepath.Join(t.TempDir(), "scores.png")
	if err := report.Plot(rows, name); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if st, err := os.Stat(name); err != nil || st.Size() == 0 {
		t.Errorf("plot: file %q not written", name)
	}
}
