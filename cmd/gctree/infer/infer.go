// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package infer is a metapackage for commands
// that fit and rank the branching-process forest.
package infer

import (
	"github.com/js-arias/command"
	"github.com/js-arias/gctree/cmd/gctree/infer/fit"
	"github.com/js-arias/gctree/cmd/gctree/infer/rank"
	"github.com/js-arias/gctree/cmd/gctree/infer/summary"
)

var Command = &command.Command{
	Usage: "infer <command> [<argument>...]",
	Short: "commands for the branching-process forest",
}

func init() {
	Command.Add(fit.Command)
	Command.Add(rank.Command)
	Command.Add(summary.Command)
}
