// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reversions implements a command to print
// the reversions on the branches of a tree.
package reversions

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/js-arias/autolin/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "reversions [--all] <project-file>",
	Short: "print reversions on tree branches",
	Long: `
Command reversions reads the tree of an autolin project and prints, for each
node, the number of leaves, the number of mutations in the branch of the node,
and the number of reversions. A reversion is a mutation that reverts the
closest ancestral mutation in the same locus (e.g., C241T and then T241C).

The argument of the command is the name of the project file.

By default only nodes with reversions are printed. Use the flag --all to
print all internal nodes.

The output is a tab-delimited table printed in the standard output.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var allNodes bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&allNodes, "all", false, "")
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

	tab := csv.NewWriter(c.Stdout())
	tab.Comma = '\t'
	tab.UseCRLF = true
	if err := tab.Write([]string{"node", "leaves", "mutations", "reversions"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, n := range t.BreadthFirst(t.Root()) {
		rev := t.Reversions(n)
		if rev == 0 && (!allNodes || t.IsLeaf(n)) {
			continue
		}
		row := []string{
			t.ID(n),
			strconv.Itoa(len(t.Leaves(n))),
			strconv.Itoa(len(t.Mutations(n))),
			strconv.Itoa(rev),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
