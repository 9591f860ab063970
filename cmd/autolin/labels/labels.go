// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package labels implements a command to print
// the lineage of each sample in the tree of an autolin project.
package labels

import (
	"fmt"
	"os"

	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "labels [-o|--output <file>] <project-file>",
	Short: "print the lineage of each sample",
	Long: `
Command labels reads the tree of an autolin project and prints the lineage of
each sample (a leaf of the tree), as defined by the annotations of the tree.
A sample is assigned to the most specific lineage that includes it. Samples
outside any annotated lineage are not printed.

The argument of the command is the name of the project file.

The output is a tab-delimited table with the fields 'sample' and 'lineage'.
By default it is printed in the standard output. Use the flag --output, or
-o, to write the table into a file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) (err error) {
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
	labels := lineage.Labels(t, lineage.Annotated(t))

	if output == "" {
		return lineage.WriteLabels(c.Stdout(), labels)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()
	if err := lineage.WriteLabels(f, labels); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}
