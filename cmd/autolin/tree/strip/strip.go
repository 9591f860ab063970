// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package strip implements a command to collapse
// the annotations of a tree into a single slot.
package strip

import (
	"fmt"

	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "strip <project-file>",
	Short: "collapse tree annotations into a single slot",
	Long: `
Command strip reads the tree of an autolin project and collapses the two
annotation slots of each node into a single slot.

The second slot is preferred, unless it is an automatic name (a name starting
with 'auto.') and the first slot has a name. If the second slot is empty,
names in the first slot that start with a digit (e.g., '20A') are removed.

The argument of the command is the name of the project file. The tree file of
the project will be updated.
	`,
	Run: run,
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

	removed, err := lineage.Strip(t)
	if err != nil {
		return err
	}
	if err := p.WriteTree(t); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%d annotations removed\n", removed)
	return nil
}
