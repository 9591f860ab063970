// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree is a metapackage for commands
// that dealt with mutation-annotated trees.
package tree

import (
	"github.com/js-arias/autolin/cmd/autolin/tree/add"
	"github.com/js-arias/autolin/cmd/autolin/tree/info"
	"github.com/js-arias/autolin/cmd/autolin/tree/remove"
	"github.com/js-arias/autolin/cmd/autolin/tree/reversions"
	"github.com/js-arias/autolin/cmd/autolin/tree/strip"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "tree <command> [<argument>...]",
	Short: "commands for mutation-annotated trees",
}

func init() {
	Command.Add(add.Command)
	Command.Add(info.Command)
	Command.Add(remove.Command)
	Command.Add(reversions.Command)
	Command.Add(strip.Command)
}
