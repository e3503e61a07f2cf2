// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package render implements a command to draw
// project trees as SVG files.
package render

import (
	"fmt"
	"os"
	"sort"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/gcproj"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/isotype"
	"github.com/js-arias/gctree/svgtree"
)

var Command = &command.Command{
	Usage: `render [--tree <tree>]
	[-o|--output <out-prefix>] <project-file>`,
	Short: "draw project trees as SVG files",
	Long: `
Command render reads a gctree project and draws its collapsed trees into
SVG-encoded files, one per tree, colored by dominant isotype.

The argument of the command is the name of the project file.

By default, all trees in the project will be drawn. If the flag --tree is
set, only the indicated tree will be rendered.

By default, the names of the trees will be used as the output file names
(with an ".svg" suffix). Use the flag -o, or --output, to define a prefix for
the resulting files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
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
		return c.UsageError(fmt.Sprintf("trees not defined in project %q", args[0]))
	}
	raw, err := p.Trees()
	if err != nil {
		return err
	}

	order := isotype.DefaultOrder

	names := make([]string, 0, len(raw))
	for n := range raw {
		if treeName != "" && n != treeName {
			continue
		}
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return c.UsageError(fmt.Sprintf("tree %q not found in project %q", treeName, args[0]))
	}

	for _, tn := range names {
		t := gwtree.New(raw[tn])
		if _, err := gwtree.Collapse(t, gwtree.CollapseOptions{}); err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
		if err := writeSVG(t, order, tn); err != nil {
			return err
		}
	}
	return nil
}

func writeSVG(t *gwtree.Tree, order isotype.Order, name string) (err error) {
	out := outPrefix + name + ".svg"
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := svgtree.Render(t, order, f); err != nil {
		return fmt.Errorf("while writing to %q: %v", out, err)
	}
	return nil
}
