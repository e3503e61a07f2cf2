// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package support implements a command to compute bootstrap
// bipartition support over a reference tree (spec §4.9).
package support

import (
	"fmt"
	"os"
	"sort"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/gcio"
	"github.com/js-arias/gctree/gwtree"
	coresupport "github.com/js-arias/gctree/support"
)

var Command = &command.Command{
	Usage: `support [--compat] [--tree <name>]
	<tree-file> <bootstrap-file>`,
	Short: "compute bootstrap support for a reference tree",
	Long: `
Command support reads a reference tree and a collection of bootstrap trees,
both in the gctree tree-file format (see "gctree tree-files"), and prints, for
each node of the reference tree, the fraction of bootstrap trees supporting
its induced bipartition (spec §4.9).

The first argument is the reference tree file; if it contains more than one
tree, --tree selects which one by name. The second argument is the bootstrap
tree file, whose trees are all compared against the reference.

By default, support counts exact bipartition matches. With --compat, it
instead counts bootstrap trees that do not contradict the reference node's
bipartition (a weaker, "compatibility" notion of support).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var compat bool
var treeName string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&compat, "compat", false, "")
	c.Flags().StringVar(&treeName, "tree", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting reference tree file and bootstrap tree file")
	}

	ref, err := readReference(args[0])
	if err != nil {
		return err
	}

	boot, err := readCollapsed(args[1])
	if err != nil {
		return err
	}

	var values coresupport.Values
	if compat {
		values, err = coresupport.Compatibility(ref, boot, nil)
	} else {
		values, err = coresupport.Count(ref, boot, nil)
	}
	if err != nil {
		return err
	}

	ids := make([]int, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	fmt.Fprintf(c.Stdout(), "node\tsupport\n")
	for _, id := range ids {
		fmt.Fprintf(c.Stdout(), "%d\t%.6f\n", id, values[id]/float64(len(boot)))
	}
	return nil
}

func readReference(name string) (*gwtree.Tree, error) {
	trees, err := readCollapsedMap(name)
	if err != nil {
		return nil, err
	}
	if treeName != "" {
		t, ok := trees[treeName]
		if !ok {
			return nil, fmt.Errorf("tree %q not found in %q", treeName, name)
		}
		return t, nil
	}
	if len(trees) != 1 {
		return nil, fmt.Errorf("expecting a single reference tree in %q, found %d; use --tree", name, len(trees))
	}
	for _, t := range trees {
		return t, nil
	}
	return nil, nil
}

func readCollapsed(name string) ([]*gwtree.Tree, error) {
	trees, err := readCollapsedMap(name)
	if err != nil {
		return nil, err
	}
	out := make([]*gwtree.Tree, 0, len(trees))
	for _, t := range trees {
		out = append(out, t)
	}
	return out, nil
}

func readCollapsedMap(name string) (map[string]*gwtree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := gcio.ReadRawTrees(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}

	out := make(map[string]*gwtree.Tree, len(raw))
	for tn, rn := range raw {
		t := gwtree.New(rn)
		if _, err := gwtree.Collapse(t, gwtree.CollapseOptions{}); err != nil {
			return nil, fmt.Errorf("tree %q: %v", tn, err)
		}
		out[tn] = t
	}
	return out, nil
}
