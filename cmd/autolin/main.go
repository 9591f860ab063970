// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Autolin is a tool for the automatic proposal
// of lineages on mutation-annotated trees.
package main

import (
	"github.com/js-arias/autolin/cmd/autolin/aliascmd"
	"github.com/js-arias/autolin/cmd/autolin/export"
	"github.com/js-arias/autolin/cmd/autolin/labels"
	"github.com/js-arias/autolin/cmd/autolin/propose"
	"github.com/js-arias/autolin/cmd/autolin/reportcmd"
	"github.com/js-arias/autolin/cmd/autolin/tree"
	"github.com/js-arias/autolin/cmd/autolin/weightcmd"
	"github.com/js-arias/command"
)

var app = &command.Command{
	Usage: "autolin <command> [<argument>...]",
	Short: "a tool for automatic lineage proposal",
}

func init() {
	app.Add(aliascmd.Command)
	app.Add(export.Command)
	app.Add(labels.Command)
	app.Add(propose.Command)
	app.Add(reportcmd.Command)
	app.Add(tree.Command)
	app.Add(weightcmd.Command)
}

func main() {
	app.Main()
}
