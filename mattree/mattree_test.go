// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mattree_test

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/mutation"
	"github.com/js-arias/timetree"
)

const treeFile = `# test tree
node	parent	mutations	annotation1	annotation2
seq_A	node_1	G28881A
root
node_1	root	C241T,A23403G	B.1
seq_B	node_1
node_2	root	T3037C
seq_C	node_2	C3037T
seq_D	node_2		B.2	auto.1
`

func readTree(t testing.TB) *mattree.Tree {
	t.Helper()

	tr, err := mattree.ReadTSV(strings.NewReader(treeFile), "test")
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	return tr
}

func TestReadTSV(t *testing.T) {
	tr := readTree(t)
	testTree(t, "read", tr)
}

func TestTSV(t *testing.T) {
	tr := readTree(t)

	var w bytes.Buffer
	if err := tr.TSV(&w); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	nt, err := mattree.ReadTSV(strings.NewReader(w.String()), "test")
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	testTree(t, "tsv", nt)
}

func testTree(t testing.TB, name string, tr *mattree.Tree) {
	t.Helper()

	if tr.Len() != 7 {
		t.Fatalf("%s: nodes: got %d, want %d", name, tr.Len(), 7)
	}
	if id := tr.ID(tr.Root()); id != "root" {
		t.Errorf("%s: root: got %q, want %q", name, id, "root")
	}

	leaves := ids(tr, tr.Leaves(tr.Root()))
	if want := []string{"seq_A", "seq_B", "seq_C", "seq_D"}; !reflect.DeepEqual(leaves, want) {
		t.Errorf("%s: leaves: got %v, want %v", name, leaves, want)
	}

	n1, ok := tr.Node("node_1")
	if !ok {
		t.Fatalf("%s: node %q not found", name, "node_1")
	}
	if got := mutation.Join(tr.Mutations(n1), ","); got != "C241T,A23403G" {
		t.Errorf("%s: mutations: got %q, want %q", name, got, "C241T,A23403G")
	}
	if a := tr.Annotations(n1); a != [mattree.Slots]string{"B.1", ""} {
		t.Errorf("%s: annotations: got %v", name, a)
	}

	sd, _ := tr.Node("seq_D")
	path := ids(tr, tr.RootPath(sd))
	if want := []string{"seq_D", "node_2", "root"}; !reflect.DeepEqual(path, want) {
		t.Errorf("%s: root path: got %v, want %v", name, path, want)
	}

	am := tr.AnnotationMap()
	want := map[string]string{"B.1": "node_1", "B.2": "seq_D", "auto.1": "seq_D"}
	if len(am) != len(want) {
		t.Errorf("%s: annotations: got %d, want %d", name, len(am), len(want))
	}
	for a, id := range want {
		if n, ok := am[a]; !ok || tr.ID(n) != id {
			t.Errorf("%s: annotation %q: got node %d, want %q", name, a, n, id)
		}
	}
}

func ids(tr *mattree.Tree, ns []int) []string {
	ls := make([]string, 0, len(ns))
	for _, n := range ns {
		ls = append(ls, tr.ID(n))
	}
	return ls
}

func TestReadTSVErrors(t *testing.T) {
	tests := map[string]string{
		"no root":      "node\tparent\na\tb\nb\ta\n",
		"two roots":    "node\tparent\na\t\nb\t\n",
		"cycle":        "node\tparent\nr\t\na\tr\nb\tc\nc\tb\n",
		"dangling":     "node\tparent\nr\t\na\tx\n",
		"repeated":     "node\tparent\nr\t\na\tr\na\tr\n",
		"bad mutation": "node\tparent\tmutations\nr\t\na\tr\tA1\n",
		"bad length":   "node\tparent\tlength\nr\t\t0\na\tr\tx\n",
		"no header":    "id\tparent\nr\t\n",
	}
	for name, in := range tests {
		if _, err := mattree.ReadTSV(strings.NewReader(in), name); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}

	_, err := mattree.ReadTSV(strings.NewReader(tests["cycle"]), "cycle")
	if !errors.Is(err, mattree.ErrCycle) {
		t.Errorf("cycle: got error %v, want %v", err, mattree.ErrCycle)
	}
}

func TestLengths(t *testing.T) {
	in := "node\tparent\tlength\nr\t\t0\na\tr\t0.5\nb\tr\t-1\n"
	tr, err := mattree.ReadTSV(strings.NewReader(in), "lengths")
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	if !tr.HasLengths() {
		t.Fatalf("tree without lengths")
	}
	a, _ := tr.Node("a")
	if l := tr.Length(a); l != 0.5 {
		t.Errorf("length: got %.3f, want %.3f", l, 0.5)
	}

	var w bytes.Buffer
	if err := tr.TSV(&w); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	if !strings.Contains(w.String(), "length") {
		t.Errorf("output without length field:\n%s", w.String())
	}
}

func TestTraversal(t *testing.T) {
	tr := readTree(t)

	bfs := ids(tr, tr.BreadthFirst(tr.Root()))
	want := []string{"root", "node_1", "node_2", "seq_A", "seq_B", "seq_C", "seq_D"}
	if !reflect.DeepEqual(bfs, want) {
		t.Errorf("breadth first: got %v, want %v", bfs, want)
	}

	n2, _ := tr.Node("node_2")
	sub := ids(tr, tr.BreadthFirst(n2))
	if want := []string{"node_2", "seq_C", "seq_D"}; !reflect.DeepEqual(sub, want) {
		t.Errorf("subtree: got %v, want %v", sub, want)
	}

	sa, _ := tr.Node("seq_A")
	if !tr.IsAncestor(tr.Root(), sa) {
		t.Errorf("root should be ancestor of %q", "seq_A")
	}
	if tr.IsAncestor(n2, sa) {
		t.Errorf("%q should not be ancestor of %q", "node_2", "seq_A")
	}
}

func TestDeepTree(t *testing.T) {
	// a caterpillar deep enough to break
	// recursive traversals
	const depth = 200_000
	tr := mattree.New("deep", "n0")
	prev := "n0"
	for i := 1; i <= depth; i++ {
		id := "n" + strconv.Itoa(i)
		if _, err := tr.Add(id, prev); err != nil {
			t.Fatalf("unable to add node: %v", err)
		}
		if _, err := tr.Add("leaf"+strconv.Itoa(i), prev); err != nil {
			t.Fatalf("unable to add node: %v", err)
		}
		prev = id
	}

	if got := len(tr.Leaves(tr.Root())); got != depth+1 {
		t.Errorf("leaves: got %d, want %d", got, depth+1)
	}
	last, _ := tr.Node(prev)
	if got := len(tr.RootPath(last)); got != depth+1 {
		t.Errorf("path: got %d, want %d", got, depth+1)
	}
}

func TestDerived(t *testing.T) {
	tr := readTree(t)

	if p := tr.Parsimony(tr.Root()); p != 5 {
		t.Errorf("parsimony: got %d, want %d", p, 5)
	}

	sc, _ := tr.Node("seq_C")
	if r := tr.Reversions(sc); r != 1 {
		t.Errorf("reversions: got %d, want %d", r, 1)
	}
	sa, _ := tr.Node("seq_A")
	if r := tr.Reversions(sa); r != 0 {
		t.Errorf("reversions: got %d, want %d", r, 0)
	}

	hap := mutation.Join(tr.Haplotype(sa, tr.Root()), ",")
	if hap != "G28881A,C241T,A23403G" {
		t.Errorf("haplotype: got %q", hap)
	}
	n1, _ := tr.Node("node_1")
	if hap := mutation.Join(tr.Haplotype(sa, n1), ","); hap != "G28881A" {
		t.Errorf("haplotype: got %q, want %q", hap, "G28881A")
	}
}

func TestSetAnnotations(t *testing.T) {
	tr := readTree(t)
	sa, _ := tr.Node("seq_A")

	if err := tr.SetAnnotations(map[int][]string{sa: {"a", "b", "c"}}); !errors.Is(err, mattree.ErrSlots) {
		t.Errorf("set annotations: got error %v, want %v", err, mattree.ErrSlots)
	}
	// a failed replacement keeps the old annotations
	if len(tr.AnnotationMap()) != 3 {
		t.Errorf("annotations changed after error")
	}

	if err := tr.SetAnnotations(map[int][]string{sa: {"X.1"}}); err != nil {
		t.Fatalf("set annotations: %v", err)
	}
	am := tr.AnnotationMap()
	if len(am) != 1 || am["X.1"] != sa {
		t.Errorf("annotations: got %v", am)
	}
	if !tr.IsAnnotated(sa) {
		t.Errorf("node %q should be annotated", "seq_A")
	}

	tr.ClearAnnotations()
	if len(tr.AnnotationMap()) != 0 {
		t.Errorf("annotations after clear: got %v", tr.AnnotationMap())
	}
}

func TestReadMutations(t *testing.T) {
	tr := readTree(t)

	in := "# branch mutations\nnode\tmutations\nseq_B\tT100C,G200A\nnode_1\tC241T\n"
	if err := tr.ReadMutations(strings.NewReader(in)); err != nil {
		t.Fatalf("read mutations: %v", err)
	}
	sb, _ := tr.Node("seq_B")
	if got := mutation.Join(tr.Mutations(sb), ","); got != "T100C,G200A" {
		t.Errorf("mutations %q: got %q, want %q", "seq_B", got, "T100C,G200A")
	}
	n1, _ := tr.Node("node_1")
	if got := mutation.Join(tr.Mutations(n1), ","); got != "C241T" {
		t.Errorf("mutations %q: got %q, want %q", "node_1", got, "C241T")
	}

	in = "node\tmutations\nseq_Z\tT100C\n"
	if err := tr.ReadMutations(strings.NewReader(in)); !errors.Is(err, mattree.ErrNotFound) {
		t.Errorf("unknown node: got error %v, want %v", err, mattree.ErrNotFound)
	}
}

func TestFromTimeTree(t *testing.T) {
	c, err := timetree.Newick(strings.NewReader("((hCoV_19_a:10,hCoV_19_b:10):5,seq_c:15);"), "newick", 0)
	if err != nil {
		t.Fatalf("unable to read newick tree: %v", err)
	}
	tt := c.Tree("newick")
	if tt == nil {
		t.Fatalf("tree %q not found", "newick")
	}

	tr, err := mattree.FromTimeTree(tt)
	if err != nil {
		t.Fatalf("unable to convert tree: %v", err)
	}
	if !tr.HasLengths() {
		t.Errorf("tree should have branch lengths")
	}
	leaves := ids(tr, tr.Leaves(tr.Root()))
	slices.Sort(leaves)
	if want := []string{"Hcov 19 a", "Hcov 19 b", "Seq c"}; !reflect.DeepEqual(leaves, want) {
		t.Errorf("leaves: got %v, want %v", leaves, want)
	}

	// nodes are found with the names of the source file
	want := map[string]float64{
		"hCoV_19_a": 10,
		"hCoV_19_b": 10,
		"seq_c":     15,
		"Seq c":     15,
	}
	for id, w := range want {
		n, ok := tr.Node(id)
		if !ok {
			t.Fatalf("node %q not found", id)
		}
		if l := tr.Length(n); math.Abs(l-w) > 1e-6 {
			t.Errorf("node %q: length: got %.6f, want %.6f", id, l, w)
		}
	}

	in := "node\tmutations\nhCoV_19_a\tC241T\nseq_c\tT3037C,G28881A\n"
	if err := tr.ReadMutations(strings.NewReader(in)); err != nil {
		t.Fatalf("read mutations: %v", err)
	}
	a, _ := tr.Node("Hcov 19 a")
	if got := mutation.Join(tr.Mutations(a), ","); got != "C241T" {
		t.Errorf("mutations %q: got %q, want %q", "hCoV_19_a", got, "C241T")
	}
}

func TestTaxonName(t *testing.T) {
	tests := map[string]string{
		"hCoV_19_a":      "Hcov 19 a",
		"  seq   c ":     "Seq c",
		"Homo_sapiens":   "Homo sapiens",
		"":               "",
		"node_1":         "Node 1",
		"ÉCOLI_strain_2": "Écoli strain 2",
	}
	for in, want := range tests {
		if got := mattree.TaxonName(in); got != want {
			t.Errorf("taxon name %q: got %q, want %q", in, got, want)
		}
	}
}

func TestPartialLengths(t *testing.T) {
	in := "node\tparent\tlength\tmutations\nr\t\t\t\nn1\tr\t\tC1T,C2T,C3T\nl2\tn1\t0.5\t\n"
	tr, err := mattree.ReadTSV(strings.NewReader(in), "partial")
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	if !tr.HasLengths() {
		t.Fatalf("tree without lengths")
	}
	n1, _ := tr.Node("n1")
	if tr.HasLength(n1) {
		t.Errorf("node %q: unexpected branch length", "n1")
	}
	l2, _ := tr.Node("l2")
	if !tr.HasLength(l2) {
		t.Errorf("node %q: expecting branch length", "l2")
	}

	var w bytes.Buffer
	if err := tr.TSV(&w); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	nt, err := mattree.ReadTSV(strings.NewReader(w.String()), "partial")
	if err != nil {
		t.Fatalf("unable to read tree: %v\n%s", err, w.String())
	}
	n1, _ = nt.Node("n1")
	l2, _ = nt.Node("l2")
	if nt.HasLength(n1) || !nt.HasLength(l2) {
		t.Errorf("branch lengths not preserved:\n%s", w.String())
	}
}

const revTree = `node	parent	mutations	annotation1	annotation2
root
n1	root	C241T	B.1
n2	n1	T241C
a	n2	G1A
b	n2
c	n1	A5G
d	root	T10C
`

func TestPrune(t *testing.T) {
	tr, err := mattree.ReadTSV(strings.NewReader(revTree), "reversions")
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}

	rev := ids(tr, tr.WithReversions(1))
	if want := []string{"a", "b"}; !reflect.DeepEqual(rev, want) {
		t.Errorf("leaves with reversions: got %v, want %v", rev, want)
	}
	if rev := tr.WithReversions(2); len(rev) != 0 {
		t.Errorf("leaves with 2 reversions: got %v, want none", ids(tr, rev))
	}

	nt, err := tr.Prune(tr.WithReversions(1))
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if nt.Len() != 3 {
		t.Errorf("nodes: got %d, want %d", nt.Len(), 3)
	}
	leaves := ids(nt, nt.Leaves(nt.Root()))
	slices.Sort(leaves)
	if want := []string{"c", "d"}; !reflect.DeepEqual(leaves, want) {
		t.Errorf("leaves: got %v, want %v", leaves, want)
	}

	// n1 is collapsed into c
	if _, ok := nt.Node("n1"); ok {
		t.Errorf("node %q: should be collapsed", "n1")
	}
	c, _ := nt.Node("c")
	if got := mutation.Join(nt.Mutations(c), ","); got != "C241T,A5G" {
		t.Errorf("mutations %q: got %q, want %q", "c", got, "C241T,A5G")
	}
	if ann := nt.AnnotationMap(); ann["B.1"] != c {
		t.Errorf("annotation %q: got node %d, want %d", "B.1", ann["B.1"], c)
	}

	// the source tree is not modified
	if tr.Len() != 7 {
		t.Errorf("source tree nodes: got %d, want %d", tr.Len(), 7)
	}

	if _, err := tr.Prune(tr.Leaves(tr.Root())); !errors.Is(err, mattree.ErrNoLeaves) {
		t.Errorf("prune all: got error %v, want %v", err, mattree.ErrNoLeaves)
	}
	n1, _ := tr.Node("n1")
	if _, err := tr.Prune([]int{n1}); err == nil {
		t.Errorf("prune internal node: expecting error")
	}
}
