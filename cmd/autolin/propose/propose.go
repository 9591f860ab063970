// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package propose implements a command to propose
// new lineages on the tree of an autolin project.
package propose

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/js-arias/autolin/lineage"
	"github.com/js-arias/autolin/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `propose [--minsamples <value>] [--distinction <value>]
	[--floor <value>] [--cutoff <value>] [--levels <number>]
	[--lineage <name>] [--clear] [--depth <number>] [--root <name>]
	[--dry] [-o|--output <file>] [--labels <file>]
	<project-file>`,
	Short: "propose new lineages",
	Long: `
Command propose reads the tree of an autolin project and searches for new
sublineages of the lineages annotated in the tree.

The argument of the command is the name of the project file.

For each parent lineage, the descendant nodes of the parent are evaluated.
The score of a node is

	size * distinction / (mean + distinction)

in which size is the number (or total weight) of the leaves of the node,
distinction is the weighted distance between the parent and the node, and
mean is the mean weighted distance from the node to its leaves. The node
with the best score is proposed as a new sublineage, its leaves are
excluded, and the search is repeated until no node has a score above the
floor, or the proposed sublineages cover a given proportion of the leaves of
the parent.

If the tree has no annotations, the root of the tree will be used as the
parent lineage, with the name 'L'. Use the flag --root to set a different
name. Otherwise, the outermost annotated lineages are used as parents (i.e.,
lineages that do not include any other annotated lineage). The flag
--lineage restricts the search to the indicated lineage. The flag --clear
removes all annotations of the tree before the search.

By default, only a single level of sublineages is searched. Use the flag
--levels to set the number of levels; with 0, the search continues until no
sublineage is found.

The following flags define the thresholds of the search:

	--minsamples  the size that must be exceeded by a proposal.
	              Default 10.
	--distinction the minimum distance between the parent and the
	              proposal. Default 1.
	--floor       the score that must be exceeded by a proposal.
	              Default 0.
	--cutoff      the proportion of the leaves of the parent that, once
	              covered, stops the search. Default 0.95.

If the project has mutation weights (see 'autolin help weight-files'), the
weight of a branch is the sum of the weights of its mutations. If the project
has sample weights, the size of a node is the sum of the weights of its
leaves, and samples without weight are ignored.

Names of proposed lineages are the name of the parent followed by a serial
number. When a name has more levels than the depth set with --depth (default
4), the name is compressed using an alias (e.g., 'B.1.1.529.1' becomes
'C.1'). Aliases are stored in the alias file of the project (by default
'aliases.tab').

The proposals are printed in the standard output as a tab-delimited table.
Use the flag --output, or -o, to write the proposals into a file (the file
will be stored in the project). The flag --labels sets a file to write the
lineage of each sample.

By default, the proposals are written as annotations in the tree file of the
project. Use the flag --dry to leave the tree and the alias file unchanged.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var minSamples float64
var minDistinction float64
var floor float64
var cutoff float64
var levels int
var depth int
var lineageName string
var rootName string
var clearAnn bool
var dry bool
var output string
var labelsFile string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&minSamples, "minsamples", 10, "")
	c.Flags().Float64Var(&minDistinction, "distinction", 1, "")
	c.Flags().Float64Var(&floor, "floor", 0, "")
	c.Flags().Float64Var(&cutoff, "cutoff", 0.95, "")
	c.Flags().IntVar(&levels, "levels", 1, "")
	c.Flags().IntVar(&depth, "depth", 4, "")
	c.Flags().StringVar(&lineageName, "lineage", "", "")
	c.Flags().StringVar(&rootName, "root", lineage.DefaultRoot, "")
	c.Flags().BoolVar(&clearAnn, "clear", false, "")
	c.Flags().BoolVar(&dry, "dry", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&labelsFile, "labels", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if cutoff <= 0 || cutoff > 1 {
		return c.UsageError("flag --cutoff must be in the range (0, 1]")
	}
	if levels < 0 {
		return c.UsageError("flag --levels must be non-negative")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	t, err := p.Tree()
	if err != nil {
		return err
	}
	mw, err := p.MutWeights()
	if err != nil {
		return err
	}
	sw, err := p.SampleWeights()
	if err != nil {
		return err
	}
	aliases, err := p.Aliases(depth)
	if err != nil {
		return err
	}

	if clearAnn {
		t.ClearAnnotations()
	}

	param := lineage.Param{
		Threshold: lineage.Threshold{
			Size:        minSamples,
			Distinction: minDistinction,
		},
		Floor:   floor,
		Cutoff:  cutoff,
		Levels:  levels,
		Model:   &lineage.Model{Weights: mw, Log: c.Stderr()},
		Samples: sw,
		Lineage: lineageName,
		Root:    rootName,
		Aliases: aliases,
		Log:     c.Stderr(),
	}
	res, err := lineage.Propose(t, param)
	if err != nil {
		return err
	}

	if err := writeProposals(c.Stdout(), res.Proposals); err != nil {
		return err
	}
	if labelsFile != "" {
		if err := writeLabels(lineage.Labels(t, res.Lineages())); err != nil {
			return err
		}
	}

	if output != "" {
		p.Add(project.Proposals, output)
	}
	if !dry {
		dropped, err := res.Apply()
		if err != nil {
			return err
		}
		for _, d := range dropped {
			fmt.Fprintf(c.Stderr(), "WARNING: lineage %q: node without free annotation slots\n", d)
		}
		if err := p.WriteTree(t); err != nil {
			return err
		}

		if aliases.Len() > 0 {
			if p.Path(project.Aliases) == "" {
				p.Add(project.Aliases, "aliases.tab")
			}
			if err := p.WriteAliases(aliases); err != nil {
				return err
			}
		}
	}

	if err := p.Write(); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "%d lineages proposed\n", len(res.Proposals))
	return nil
}

func writeProposals(w io.Writer, ps []lineage.Proposal) (err error) {
	if output == "" {
		return lineage.WriteProposals(w, ps)
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

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# proposed lineages\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := lineage.WriteProposals(bw, ps); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}

func writeLabels(labels map[string]string) (err error) {
	f, err := os.Create(labelsFile)
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
		return fmt.Errorf("while writing to %q: %v", labelsFile, err)
	}
	return nil
}
