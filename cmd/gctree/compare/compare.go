// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package compare implements a command to compare two trees
// (spec §4.10).
package compare

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/cmpare"
	"github.com/js-arias/gctree/gcio"
	"github.com/js-arias/gctree/gwtree"
)

var Command = &command.Command{
	Usage: `compare [--a <name>] [--b <name>]
	<tree-file-a> <tree-file-b>`,
	Short: "compare two trees",
	Long: `
Command compare reads two trees, each from a gctree tree file (see "gctree
tree-files"), and prints their identity, MRCA-distance, and Robinson-Foulds
comparison (spec §4.10).

If a tree file contains more than one tree, use --a or --b to select which one
by name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var nameA string
var nameB string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&nameA, "a", "", "")
	c.Flags().StringVar(&nameB, "b", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting two tree files")
	}

	a, err := readOne(args[0], nameA)
	if err != nil {
		return err
	}
	b, err := readOne(args[1], nameB)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "identical\t%v\n", cmpare.Identity(a, b))

	mrca, err := cmpare.MRCADistance(a, b)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "mrca_distance\t%.6f\n", mrca)

	fmt.Fprintf(c.Stdout(), "robinson_foulds\t%d\n", cmpare.RobinsonFoulds(a, b))
	return nil
}

func readOne(name, want string) (*gwtree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := gcio.ReadRawTrees(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}

	var rn gwtree.RawNode
	if want != "" {
		r, ok := raw[want]
		if !ok {
			return nil, fmt.Errorf("tree %q not found in %q", want, name)
		}
		rn = r
	} else {
		if len(raw) != 1 {
			return nil, fmt.Errorf("expecting a single tree in %q, found %d", name, len(raw))
		}
		for _, r := range raw {
			rn = r
		}
	}

	t := gwtree.New(rn)
	if _, err := gwtree.Collapse(t, gwtree.CollapseOptions{}); err != nil {
		return nil, fmt.Errorf("tree in %q: %v", name, err)
	}
	return t, nil
}
