// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package aliascmd implements a command to expand
// or compress lineage names.
package aliascmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/js-arias/autolin/alias"
	"github.com/js-arias/autolin/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `alias [--compress] [--depth <number>] [--list]
	<project-file> [<name>...]`,
	Short: "expand or compress lineage names",
	Long: `
Command alias reads the alias table of an autolin project and prints the
expanded form of the given lineage names (e.g., 'C.1' as 'B.1.1.529.1').

The first argument of the command is the name of the project file. The
following arguments are the lineage names. If no name is given, the names
will be read from the standard input, one per line.

If the flag --compress is set, the names will be compressed, using the
compression depth set with --depth (default 4). The alias table of the
project is not modified.

If the flag --list is set, all aliases of the table will be printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var compress bool
var list bool
var depth int

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&compress, "compress", false, "")
	c.Flags().BoolVar(&list, "list", false, "")
	c.Flags().IntVar(&depth, "depth", alias.DefaultDepth, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	tab, err := p.Aliases(depth)
	if err != nil {
		return err
	}

	if list {
		return tab.TSV(c.Stdout())
	}

	names := args[1:]
	if len(names) == 0 {
		sc := bufio.NewScanner(c.Stdin())
		for sc.Scan() {
			n := strings.TrimSpace(sc.Text())
			if n == "" || n[0] == '#' {
				continue
			}
			names = append(names, n)
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("while reading names: %v", err)
		}
	}

	for _, n := range names {
		v := tab.Expand(n)
		if compress {
			v = tab.Compress(v)
		}
		fmt.Fprintf(c.Stdout(), "%s\t%s\n", n, v)
	}
	return nil
}
