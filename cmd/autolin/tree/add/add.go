// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add a mutation-annotated tree
// to an autolin project.
package add

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/autolin/mattree"
	"github.com/js-arias/autolin/project"
	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>]
	[--timetree] [--newick <name>] [--age <value>] [--tree <name>]
	[--mutations <file>]
	<project-file> [<tree-file>]`,
	Short: "add a mutation-annotated tree to an autolin project",
	Long: `
Command add reads a tree from a tree file, and sets it as the tree of an
autolin project. If the project already has a tree, it will be replaced.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

The second argument is the tree file. If no file is given, the tree will be
read from the standard input.

By default, the input is expected to be a tab-delimited tree file, as
described in 'autolin help trees'. To import a time-calibrated tree, use the
flag --timetree, for a tab-delimited file of time-calibrated trees, or the
flag --newick with a name for the tree, for a tree in parenthetical format.
In time-calibrated trees, branch lengths are used as branch weights. In
newick files, it is expected that branch lengths were given in million years;
by default, the age of the root will be calculated from the largest branch
length between any terminal and the root. To set a different root age, use
the flag --age, with a value in million years. If the time-calibrated tree
file has more than one tree, the first tree will be used, unless the flag
--tree is used to set the name of the tree to be imported.

The flag --mutations sets a tab-delimited file with the mutations of each
branch. The file must have the fields 'node' and 'mutations'. In imported
time-calibrated trees, terminals are identified by its taxon name, and
internal nodes as 'node_' followed by the node number.

By default the tree will be stored in the tree file currently defined for the
project. If the project does not have a tree file, a new one will be created
with the name 'tree.tab'. A different tree file name can be defined using the
flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var newickName string
var treeName string
var mutFile string
var timeTree bool
var rootAge float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&newickName, "newick", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&mutFile, "mutations", "", "")
	c.Flags().BoolVar(&timeTree, "timetree", false, "")
	c.Flags().Float64Var(&rootAge, "age", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	fn := ""
	if len(args) > 1 && args[1] != "-" {
		fn = args[1]
	}

	var t *mattree.Tree
	switch {
	case newickName != "":
		tc, err := readNewick(c.Stdin(), fn, newickName)
		if err != nil {
			return err
		}
		t, err = fromCollection(tc)
		if err != nil {
			return err
		}
	case timeTree:
		tc, err := readTimeTree(c.Stdin(), fn)
		if err != nil {
			return err
		}
		t, err = fromCollection(tc)
		if err != nil {
			return err
		}
	default:
		t, err = readTree(c.Stdin(), fn)
		if err != nil {
			return err
		}
	}

	if mutFile != "" {
		if err := readMutations(t, mutFile); err != nil {
			return err
		}
	}

	if treeFile == "" {
		treeFile = p.Path(project.Tree)
		if treeFile == "" {
			treeFile = "tree.tab"
		}
	}
	p.Add(project.Tree, treeFile)
	if err := p.WriteTree(t); err != nil {
		return err
	}
	if err := p.Write(); err != nil {
		return err
	}

	fmt.Fprintf(c.Stderr(), "tree %q: %d nodes, %d leaves\n", t.Name(), t.Len(), len(t.Leaves(t.Root())))
	return nil
}

func openProject(name string) (*project.Project, error) {
	p, err := project.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := project.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func readTree(r io.Reader, name string) (*mattree.Tree, error) {
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

	t, err := mattree.ReadTSV(r, name)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

func readTimeTree(r io.Reader, name string) (*timetree.Collection, error) {
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

	c, err := timetree.ReadTSV(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

func readNewick(r io.Reader, newickFile, name string) (*timetree.Collection, error) {
	if newickFile != "" {
		f, err := os.Open(newickFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		newickFile = "stdin"
	}

	c, err := timetree.Newick(r, name, int64(rootAge*mattree.MillionYears))
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", newickFile, err)
	}
	return c, nil
}

func fromCollection(tc *timetree.Collection) (*mattree.Tree, error) {
	names := tc.Names()
	if len(names) == 0 {
		return nil, errors.New("no tree found")
	}
	name := names[0]
	if treeName != "" {
		name = treeName
	}
	tt := tc.Tree(name)
	if tt == nil {
		return nil, fmt.Errorf("tree %q not found", name)
	}
	return mattree.FromTimeTree(tt)
}

func readMutations(t *mattree.Tree, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := t.ReadMutations(f); err != nil {
		return fmt.Errorf("while reading file %q: %v", name, err)
	}
	return nil
}
