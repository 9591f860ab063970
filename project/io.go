// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/js-arias/autolin/alias"
	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/weights"
)

// Tree reads the mutation-annotated tree
// as defined in a project.
func (p *Project) Tree() (*mattree.Tree, error) {
	name := p.Path(Tree)
	if name == "" {
		return nil, fmt.Errorf("tree not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := mattree.ReadTSV(f, name)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

// WriteTree writes a tree into the tree file
// defined in the project.
func (p *Project) WriteTree(t *mattree.Tree) (err error) {
	name := p.Path(Tree)
	if name == "" {
		return fmt.Errorf("tree not defined in project %q", p.name)
	}

	f, err := os.Create(name)
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
	fmt.Fprintf(bw, "# mutation-annotated tree\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := t.TSV(bw); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

// MutWeights reads the mutation weights
// as defined in a project.
// If the weights are not defined,
// it returns nil.
func (p *Project) MutWeights() (*weights.Mutations, error) {
	name := p.Path(MutWeights)
	if name == "" {
		return nil, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	w, err := weights.ReadMutations(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return w, nil
}

// SampleWeights reads the sample weights
// as defined in a project.
// If the weights are not defined,
// it returns nil.
func (p *Project) SampleWeights() (weights.Samples, error) {
	name := p.Path(SampleWeights)
	if name == "" {
		return nil, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := weights.ReadSamples(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return s, nil
}

// Aliases reads the alias table
// as defined in a project.
// If the table is not defined,
// it returns an empty table.
func (p *Project) Aliases(depth int) (*alias.Table, error) {
	name := p.Path(Aliases)
	if name == "" {
		return alias.New(depth), nil
	}

	f, err := os.Open(name)
	if os.IsNotExist(err) {
		return alias.New(depth), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := alias.ReadTSV(f, depth)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

// WriteAliases writes an alias table
// into the file defined in the project.
func (p *Project) WriteAliases(t *alias.Table) (err error) {
	name := p.Path(Aliases)
	if name == "" {
		return fmt.Errorf("aliases not defined in project %q", p.name)
	}

	f, err := os.Create(name)
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
	fmt.Fprintf(bw, "# lineage aliases\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := t.TSV(bw); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
