// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reportcmd implements a command to report
// the properties of a set of proposed lineages.
package reportcmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/project"
	"github.com/js-arias/autolin/report"
	"github.com/js-arias/autolin/store"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `report [--proposals <file>] [--db] [--plot <image-file>]
	<project-file>`,
	Short: "report the properties of proposed lineages",
	Long: `
Command report reads a set of proposed lineages and the tree of an autolin
project, and prints, for each proposal, the size (number of leaves) of the
parent and the proposed lineage, the percentage of the parent included in the
proposal, the number of mutations in the subtree of the parent and the
proposal, the percentage of those mutations in the proposal, the base 10
logarithm of the score, and the mutations that separate the proposal from its
parent.

The argument of the command is the name of the project file.

By default the proposals are read from the proposals file of the project. Use
the flag --proposals to read the proposals from a different file, or the flag
--db to read the proposals from the database of the project (see 'autolin
export').

The report is printed in the standard output as a tab-delimited table. A
summary of the scores and sizes (mean and 5%, 50%, and 95% quantiles) is
printed in the standard error.

If the flag --plot is defined, a plot of the size and score of each proposal
will be saved with the given name. The format of the image is defined by the
file extension (e.g., '.png', '.svg').
	`,
	SetFlags: setFlags,
	Run:      run,
}

var propFile string
var plotFile string
var fromDB bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&propFile, "proposals", "", "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
	c.Flags().BoolVar(&fromDB, "db", false, "")
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

	var ps []lineage.Proposal
	if fromDB {
		ps, err = readDB(p)
	} else {
		ps, err = readProposals(p)
	}
	if err != nil {
		return err
	}

	rows, err := report.Build(t, ps)
	if err != nil {
		return err
	}
	if err := report.TSV(c.Stdout(), rows); err != nil {
		return err
	}

	s := report.Summarize(rows)
	fmt.Fprintf(c.Stderr(), "proposals: %d\n", s.N)
	fmt.Fprintf(c.Stderr(), "score: mean %.3f [5%%: %.3f, 50%%: %.3f, 95%%: %.3f]\n", s.Score.Mean, s.Score.Q05, s.Score.Q50, s.Score.Q95)
	fmt.Fprintf(c.Stderr(), "size: mean %.3f [5%%: %.3f, 50%%: %.3f, 95%%: %.3f]\n", s.Size.Mean, s.Size.Q05, s.Size.Q50, s.Size.Q95)

	if plotFile != "" && len(rows) > 0 {
		if err := report.Plot(rows, plotFile); err != nil {
			return err
		}
	}
	return nil
}

func readProposals(p *project.Project) ([]lineage.Proposal, error) {
	name := propFile
	if name == "" {
		name = p.Path(project.Proposals)
	}
	if name == "" {
		return nil, errors.New("proposals file not defined")
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

func readDB(p *project.Project) ([]lineage.Proposal, error) {
	name := p.Path(project.Store)
	if name == "" {
		return nil, errors.New("database not defined in project")
	}
	db, err := store.Open(name)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.Proposals(context.Background())
}
