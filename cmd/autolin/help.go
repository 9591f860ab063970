// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(projectsGuide)
	app.Add(treeFilesGuide)
	app.Add(weightFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Autolin requires several files to propose lineages. To reduce the burden of
keeping track of many files, a single project file is used to hold the
reference of all files required in the analysis. This guide explains the
structure of the file, but most of the time, the best and most secure way to
edit or view this file is by using autolin commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# autolin project files
	dataset	path
	tree	tree.tab
	mutweights	mut-weights.txt
	sampleweights	sample-weights.tab
	aliases	aliases.tab

The valid file types are:

- Mutation-annotated tree. Defined by the dataset keyword "tree". This file
  contains the tree, the mutations on each branch, and the lineage
  annotations, in the form of a tab-delimited file. The recommended way to
  add a tree is by using the command 'autolin tree add'.
- Mutation weights. Defined by the dataset keyword "mutweights". This file
  contains the weight of each mutation. The command 'autolin weights' builds
  this file from a set of genomic regions.
- Sample weights. Defined by the dataset keyword "sampleweights". This file
  contains the weight of each sample (a leaf of the tree). Samples absent
  from this file are ignored.
- Lineage aliases. Defined by the dataset keyword "aliases". This file
  contains the aliases used to compress long lineage names. It is updated by
  the command 'autolin propose'.
- Proposals. Defined by the dataset keyword "proposals". This file contains
  the last set of proposed lineages.
- Database. Defined by the dataset keyword "store". An SQLite database
  updated by the command 'autolin export'.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "trees",
	Short: "about tree files",
	Long: `
A tree file is a tab-delimited file with the following fields:

	- node         the ID of the node
	- parent       the ID of the parent node (empty for the root)
	- length       optional, the length of the branch
	- mutations    optional, a comma separated list of mutations
	- annotation1  optional, a lineage name defined on the node
	- annotation2  optional, a second lineage name defined on the node

Rows can be in any order, but the tree must have a single root, and all nodes
must be connected to it.

Here is an example file:

	# mutation-annotated tree
	node	parent	mutations	annotation1	annotation2
	root
	node_1	root	C241T,A23403G	B.1
	seq_A	node_1	G28881A
	seq_B	node_1
	seq_C	root	T3037C

Mutations are written as the reference allele, the position, and the
alternative allele (e.g., "A23403G"). The reference allele can be omitted,
and a chromosome can be given before a colon (e.g., "NC_045512:A23403G").

By default the weight of a branch is its number of mutations. If the tree has
branch lengths, for example, if it was imported from a time calibrated tree,
the branch length is used.
	`,
}

var weightFilesGuide = &command.Command{
	Usage: "weight-files",
	Short: "about weight files",
	Long: `
A mutation weight file is a whitespace-delimited file without header. The
first column is a mutation, the second column its weight, and an optional
third column, the node in which the weight is applied. Lines starting with
'#' are ignored.

Here is an example file:

	# mutation weights
	A23403G	2
	C241T	0.5
	C241T	1.5	node_1

If a mutation has a weight for all nodes and a weight for a particular node,
the largest weight is used. Mutations not in the file have weight 0.

A sample weight file is a tab-delimited file without header. The first column
is the sample ID, and the second column its weight.

Here is an example file:

	# sample weights
	seq_A	1.5
	seq_B	0.25

Samples not in the file, or with weight 0, are ignored.
	`,
}
