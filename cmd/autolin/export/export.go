// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export implements a command to store
// proposals, sample labels, and aliases
// into an SQLite database.
package export

import (
	"context"
	"fmt"
	"os"

	"github.com/js-arias/autolin/alias"
	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/project"
	"github.com/js-arias/autolin/store"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `export [--db <database-file>] [--depth <number>]
	<project-file>`,
	Short: "export lineages into an SQLite database",
	Long: `
Command export reads the proposals, the tree, and the alias table of an
autolin project, and stores them in an SQLite database. The database has the
tables 'proposals', with the last set of proposed lineages, 'labels', with the
lineage of each sample as defined by the tree annotations, and 'aliases',
with the aliases of compressed lineage names. Previous content of the tables
is replaced.

The argument of the command is the name of the project file.

By default the database defined in the project is used. If the project does
not have a database, a new one will be created with the name 'lineages.db'.
A different database can be defined using the flag --db.

The flag --depth sets the compression depth of the alias table (default 4).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var dbFile string
var depth int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&dbFile, "db", "", "")
	c.Flags().IntVar(&depth, "depth", alias.DefaultDepth, "")
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
	aliases, err := p.Aliases(depth)
	if err != nil {
		return err
	}
	ps, err := readProposals(p)
	if err != nil {
		return err
	}

	if dbFile == "" {
		dbFile = p.Path(project.Store)
		if dbFile == "" {
			dbFile = "lineages.db"
		}
	}
	db, err := store.Open(dbFile)
	if err != nil {
		return err
	}
	defer func() {
		e := db.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	ctx := context.Background()
	if err := db.SetProposals(ctx, ps); err != nil {
		return err
	}
	labels := lineage.Labels(t, lineage.Annotated(t))
	if err := db.SetLabels(ctx, labels); err != nil {
		return err
	}
	if err := db.SetAliases(ctx, aliases); err != nil {
		return err
	}

	p.Add(project.Store, dbFile)
	if err := p.Write(); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%d proposals, %d labels, %d aliases exported\n", len(ps), len(labels), aliases.Len())
	return nil
}

func readProposals(p *project.Project) ([]lineage.Proposal, error) {
	name := p.Path(project.Proposals)
	if name == "" {
		return nil, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ps, err := lineage.ReadProposals(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return ps, nil
}
