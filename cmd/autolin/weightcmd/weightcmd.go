// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package weightcmd implements a command to build
// a mutation weight file from a set of genomic regions.
package weightcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/autolin/project"
	"github.com/js-arias/autolin/weights"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `weights [-f|--file <weight-file>]
	<project-file> [<bed-file>]`,
	Short: "build mutation weights from genomic regions",
	Long: `
Command weights reads a set of genomic regions from a BED file, and builds a
mutation weight file in which the mutations of the project tree inside any of
the regions have weight 1. As mutations not in the weight file have weight 0,
only mutations in the regions (for example, the spike gene) will be used to
propose lineages. If no mutation of the tree is inside the regions, the
command fails, and the project is left unchanged.

The first argument of the command is the name of the project file.

The second argument is a BED file: a tab-delimited file without header, with
the chromosome, the start, and the end of each region (positions are
inclusive). If no file is given, the regions will be read from the standard
input.

By default the weights will be stored in the mutation weight file currently
defined for the project. If the project does not have a mutation weight file,
a new one will be created with the name 'mut-weights.txt'. A different file
name can be defined using the flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var weightFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&weightFile, "file", "", "")
	c.Flags().StringVar(&weightFile, "f", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Tree()
	if err != nil {
		return err
	}

	fn := ""
	if len(args) > 1 && args[1] != "-" {
		fn = args[1]
	}
	rs, err := readBED(c.Stdin(), fn)
	if err != nil {
		return err
	}

	w := weights.FromRegions(t, rs)
	if w.Len() == 0 {
		return fmt.Errorf("tree %q: no mutation inside the regions: %w", t.Name(), weights.ErrEmpty)
	}

	if weightFile == "" {
		weightFile = p.Path(project.MutWeights)
		if weightFile == "" {
			weightFile = "mut-weights.txt"
		}
	}
	if err := writeWeights(w); err != nil {
		return err
	}
	p.Add(project.MutWeights, weightFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func readBED(r io.Reader, name string) ([]weights.Region, error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	rs, err := weights.ReadBED(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return rs, nil
}

func writeWeights(w *weights.Mutations) (err error) {
	f, err := os.Create(weightFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := w.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", weightFile, err)
	}
	return nil
}
