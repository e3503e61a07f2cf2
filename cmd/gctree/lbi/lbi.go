// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lbi implements a command to compute the local branching
// index and ratio of a tree (Neher 2014, spec §4.9).
package lbi

import (
	"fmt"
	"os"
	"sort"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/gcio"
	"github.com/js-arias/gctree/gwtree"
	corelbi "github.com/js-arias/gctree/lbi"
)

var Command = &command.Command{
	Usage: `lbi [--tau <value>] [--tau0 <value>]
	[--root-finite] [--tree <name>] <tree-file>`,
	Short: "compute the local branching index and ratio",
	Long: `
Command lbi reads a tree from a gctree tree file (see "gctree tree-files")
and prints, for every node, its local branching index and ratio (Neher 2014,
spec §4.9).

If the tree file contains more than one tree, use --tree to select which one
by name.

The flag --tau sets the decay constant (default 1); --tau0 sets the
zero-length pseudo-branch used at an observed node's own position (default
equal to --tau). By default the root's upward message is treated as if
attached by an infinite branch; use --root-finite to treat it as zero
instead.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tau float64
var tau0 float64
var rootFinite bool
var treeName string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&tau, "tau", 1, "")
	c.Flags().Float64Var(&tau0, "tau0", 0, "")
	c.Flags().BoolVar(&rootFinite, "root-finite", false, "")
	c.Flags().StringVar(&treeName, "tree", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting a tree file")
	}

	t, err := readTree(args[0])
	if err != nil {
		return err
	}

	t0 := tau0
	if t0 == 0 {
		t0 = tau
	}
	root := corelbi.RootInfinite
	if rootFinite {
		root = corelbi.RootFinite
	}

	stats := corelbi.Compute(t, tau, t0, root)

	ids := t.Nodes()
	sort.Ints(ids)

	fmt.Fprintf(c.Stdout(), "node\tlbi\tlbr\n")
	for _, id := range ids {
		s := stats[id]
		fmt.Fprintf(c.Stdout(), "%d\t%.6f\t%.6f\n", id, s.LBI, s.LBR)
	}
	return nil
}

func readTree(name string) (*gwtree.Tree, error) {
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
	if treeName != "" {
		r, ok := raw[treeName]
		if !ok {
			return nil, fmt.Errorf("tree %q not found in %q", treeName, name)
		}
		rn = r
	} else {
		if len(raw) != 1 {
			return nil, fmt.Errorf("expecting a single tree in %q, found %d; use --tree", name, len(raw))
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
