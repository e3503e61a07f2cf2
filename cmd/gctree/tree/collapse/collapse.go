// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package collapse implements a command to normalize
// the trees of a gctree project (spec §4.4).
package collapse

import (
	"fmt"
	"os"
	"sort"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/gcio"
	"github.com/js-arias/gctree/gcproj"
	"github.com/js-arias/gctree/gwtree"
)

var Command = &command.Command{
	Usage: `collapse [--allow-repeats]
	[-o|--output <tree-file>] <project-file>`,
	Short: "collapse trees into the canonical normal form",
	Long: `
Command collapse reads the trees of a gctree project, applies the tree-collapse
normalizer (spec §4.4) to each of them, and writes the result back, replacing
the project's tree file unless -o, or --output, gives a different path.

By default, a tree with two observed nodes sharing the same genotype sequence
is rejected. Use --allow-repeats to merge them into a single node instead,
recording a warning.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var allowRepeats bool
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&allowRepeats, "allow-repeats", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
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

	names := make([]string, 0, len(raw))
	for n := range raw {
		names = append(names, n)
	}
	sort.Strings(names)

	opts := gwtree.CollapseOptions{AllowRepeats: allowRepeats}
	collapsed := make(map[string]*gwtree.Tree, len(raw))
	for _, tn := range names {
		t := gwtree.New(raw[tn])
		warnings, err := gwtree.Collapse(t, opts)
		for _, w := range warnings {
			fmt.Fprintf(c.Stderr(), "tree %q: %v\n", tn, w)
		}
		if err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
		collapsed[tn] = t
	}

	if output == "" {
		output = tf
	}
	if err := writeTrees(collapsed); err != nil {
		return err
	}
	if output != tf {
		p.Add(gcproj.Trees, output)
		if err := p.Write(); err != nil {
			return err
		}
	}

	return nil
}

func writeTrees(trees map[string]*gwtree.Tree) (err error) {
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

	if err := gcio.WriteRawTrees(f, trees); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}
