// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// GCTree infers B-cell receptor lineage histories under a
// Galton-Watson branching-process model.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/gctree/cmd/gctree/compare"
	"github.com/js-arias/gctree/cmd/gctree/infer"
	"github.com/js-arias/gctree/cmd/gctree/lbi"
	"github.com/js-arias/gctree/cmd/gctree/prj"
	"github.com/js-arias/gctree/cmd/gctree/simulate"
	"github.com/js-arias/gctree/cmd/gctree/support"
	"github.com/js-arias/gctree/cmd/gctree/tree"
)

var app = &command.Command{
	Usage: "gctree <command> [<argument>...]",
	Short: "infer B-cell receptor lineage histories",
}

func init() {
	app.Add(prj.Command)
	app.Add(tree.Command)
	app.Add(infer.Command)
	app.Add(simulate.Command)
	app.Add(support.Command)
	app.Add(compare.Command)
	app.Add(lbi.Command)
}

func main() {
	app.Main()
}
