// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of autolin project files.
//
// An autolin project is a tab-delimited file (TSV)
// used to store the different data files
// required by autolin commands.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// File for the lineage alias table.
	Aliases Dataset = "aliases"

	// File for the mutation weights.
	MutWeights Dataset = "mutweights"

	// File for the last set of proposed lineages.
	Proposals Dataset = "proposals"

	// File for the sample weights.
	SampleWeights Dataset = "sampleweights"

	// SQLite database used to store
	// proposals and sample labels.
	Store Dataset = "store"

	// File for the mutation-annotated tree.
	Tree Dataset = "tree"
)

// ErrUnknownSet is returned when a project file
// has an invalid dataset keyword.
var ErrUnknownSet = errors.New("unknown dataset")

var datasets = []Dataset{
	Aliases,
	MutWeights,
	Proposals,
	SampleWeights,
	Store,
	Tree,
}

// Valid returns true if the dataset
// is a valid dataset keyword.
func (d Dataset) Valid() bool {
	return slices.Contains(datasets, d)
}

// A Project represents a collection of paths
// for particular datasets.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		name:  "",
		paths: make(map[Dataset]string),
	}
}

// Read reads a project file.
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	p.name = name
	return p, nil
}

// ReadTSV reads a project from a TSV file.
//
// The TSV must contain the following fields:
//
//   - dataset, for the kind of file
//   - path, for the path of the file
//
// Rows without a path are ignored.
// A dataset can only be defined once.
//
// Here is an example file:
//
//	# autolin project files
//	dataset	path
//	tree	tree.tab
//	mutweights	mut-weights.txt
//	sampleweights	sample-weights.tab
//	aliases	aliases.tab
func ReadTSV(r io.Reader) (*Project, error) {
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
	for _, h := range []string{"dataset", "path"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		path := strings.TrimSpace(row[fields["path"]])
		if path == "" {
			continue
		}
		set := Dataset(strings.ToLower(strings.TrimSpace(row[fields["dataset"]])))
		if !set.Valid() {
			return nil, fmt.Errorf("on row %d: %w: %q", ln, ErrUnknownSet, set)
		}
		if prev, dup := p.paths[set]; dup {
			return nil, fmt.Errorf("on row %d: dataset %q: already defined as %q", ln, set, prev)
		}
		p.paths[set] = path
	}
	return p, nil
}

// Add adds a filepath of a dataset to a given project.
// It returns the previous value
// for the dataset.
// An empty path removes the dataset.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	if path == "" {
		delete(p.paths, set)
		return prev
	}
	p.paths[set] = path
	return prev
}

// Path returns the path of the given dataset.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Sets returns the datasets defined on a project,
// sorted by keyword.
func (p *Project) Sets() []Dataset {
	sets := make([]Dataset, 0, len(p.paths))
	for s := range p.paths {
		sets = append(sets, s)
	}
	slices.Sort(sets)
	return sets
}

// Name returns the project file name.
func (p *Project) Name() string {
	return p.name
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write writes a project into its file.
func (p *Project) Write() (err error) {
	if p.name == "" {
		return errors.New("undefined project file name")
	}
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# autolin project files\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := p.TSV(bw); err != nil {
		return fmt.Errorf("while writing to %q: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", p.name, err)
	}
	return nil
}

// TSV writes a project as a TSV file.
func (p *Project) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"dataset", "path"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, s := range p.Sets() {
		if err := tab.Write([]string{string(s), p.paths[s]}); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
