// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree is a metapackage for commands
// that deal with gctree input trees.
package tree

import (
	"github.com/js-arias/command"
	"github.com/js-arias/gctree/cmd/gctree/tree/add"
	"github.com/js-arias/gctree/cmd/gctree/tree/collapse"
	"github.com/js-arias/gctree/cmd/gctree/tree/list"
	"github.com/js-arias/gctree/cmd/gctree/tree/render"
)

var Command = &command.Command{
	Usage: "tree <command> [<argument>...]",
	Short: "commands for input trees",
}

func init() {
	Command.Add(add.Command)
	Command.Add(collapse.Command)
	Command.Add(list.Command)
	Command.Add(render.Command)
}
