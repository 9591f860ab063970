// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package info implements a command to print
// general information about the tree of an autolin project.
package info

import (
	"fmt"

	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "info [--lineages] <project-file>",
	Short: "print information about a tree",
	Long: `
Command info reads the tree of an autolin project and prints the number of
nodes, leaves, mutations (the parsimony score of the tree), and annotated
lineages.

The argument of the command is the name of the project file.

If the flag --lineages is set, it will print the list of annotated lineages,
with its node and the number of leaves.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var lineages bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&lineages, "lineages", false, "")
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

	ls := lineage.Annotated(t)
	fmt.Fprintf(c.Stdout(), "tree: %s\n", t.Name())
	fmt.Fprintf(c.Stdout(), "nodes: %d\n", t.Len())
	fmt.Fprintf(c.Stdout(), "leaves: %d\n", len(t.Leaves(t.Root())))
	fmt.Fprintf(c.Stdout(), "mutations: %d\n", t.Parsimony(t.Root()))
	fmt.Fprintf(c.Stdout(), "branch lengths: %v\n", t.HasLengths())
	fmt.Fprintf(c.Stdout(), "annotations: %d\n", len(ls))

	if !lineages {
		return nil
	}
	fmt.Fprintf(c.Stdout(), "\nlineage\tnode\tleaves\n")
	for _, l := range ls {
		fmt.Fprintf(c.Stdout(), "%s\t%s\t%d\n", l.Name, t.ID(l.Node), len(t.Leaves(l.Node)))
	}
	return nil
}
