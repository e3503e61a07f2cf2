// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of trees in a gctree project.
package list

import (
	"fmt"
	"sort"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/gcproj"
	"github.com/js-arias/gctree/gwtree"
)

var Command = &command.Command{
	Usage: "list <project-file>",
	Short: "print a list of the trees in a project",
	Long: `
Command list reads the trees from a gctree project and prints, for each tree,
its name, node count, observed taxon count, and total abundance.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := gcproj.Read(args[0])
	if err != nil {
		return err
	}

	tf := p.Path(gcproj.Trees)
	if tf == "" {
		return nil
	}

	raw, err := p.Trees()
	if err != nil {
		return err
	}

	names := make([]string, 0, len(raw))
	for n := range raw {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, tn := range names {
		t := gwtree.New(raw[tn])
		total := 0
		for _, id := range t.Nodes() {
			total += t.Node(id).Abundance()
		}
		fmt.Fprintf(c.Stdout(), "%s\tnodes=%d\ttaxa=%d\tabundance=%d\n", tn, len(t.Nodes()), len(t.ObservedNames()), total)
	}
	return nil
}
