// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package remove implements a command
// to remove samples from the tree of an autolin project
// that descend from branches with reversions.
package remove

import (
	"fmt"

	"github.com/js-arias/autolin/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "remove [--threshold <number>] <project-file>",
	Short: "remove samples under branches with reversions",
	Long: `
Command remove reads the tree of an autolin project and removes all samples
(leaves of the tree) that descend from a branch with too many reversions. A
reversion is a mutation that reverts the closest ancestral mutation in the
same locus (e.g., C241T and then T241C). Many reversions in a branch usually
indicate sequencing or placement errors.

The argument of the command is the name of the project file. The tree file of
the project will be updated.

By default, a branch with 2 or more reversions is removed. Use the flag
--threshold to set a different number of reversions.

Internal nodes without samples are removed, and internal nodes with a single
descendant are merged with its descendant.

The name of the removed samples will be printed on the screen.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var threshold int

func setFlags(c *command.Command) {
	c.Flags().IntVar(&threshold, "threshold", 2, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if threshold < 1 {
		return c.UsageError("flag --threshold must be greater than 0")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Tree()
	if err != nil {
		return err
	}

	rm := t.WithReversions(threshold)
	if len(rm) == 0 {
		return nil
	}
	nt, err := t.Prune(rm)
	if err != nil {
		return err
	}
	if err := p.WriteTree(nt); err != nil {
		return err
	}

	for _, n := range rm {
		fmt.Fprintf(c.Stdout(), "%s\n", t.ID(n))
	}
	fmt.Fprintf(c.Stderr(), "%d samples removed\n", len(rm))
	return nil
}
