// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package simulate implements a command to simulate a genealogy
// under the Galton-Watson branching process (spec §4.5).
package simulate

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/gcio"
	"github.com/js-arias/gctree/gwtree"
)

var Command = &command.Command{
	Usage: `simulate --p <value> --q <value>
	[--root <sequence>] [--seed <value>]
	[-o|--output <tree-file>] [<tree-name>]`,
	Short: "simulate a genealogy under the branching process",
	Long: `
Command simulate draws a genealogy from the Galton-Watson branching process of
spec §4.5: at each node, simulate_genotype is drawn to produce clonal leaves
and mutant clades, and each mutant clade's sequence is a single random
point-mutation away from its parent.

The flags --p and --q give the branching and mutation probabilities; both are
required.

By default, the root sequence is a run of 20 "A" bases. Use --root to set a
different starting sequence.

By default, the result is written, under the tree name "sim" (or the name
given as the single optional argument), to standard output in the gctree
tree-file format (see "gctree tree-files"). Use -o, or --output, to write to
a file instead.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pFlag float64
var qFlag float64
var rootSeq string
var seed int64
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&pFlag, "p", 0, "")
	c.Flags().Float64Var(&qFlag, "q", 0, "")
	c.Flags().StringVar(&rootSeq, "root", "AAAAAAAAAAAAAAAAAAAA", "")
	c.Flags().Int64Var(&seed, "seed", 1, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

var bases = []byte("ACGT")

func run(c *command.Command, args []string) error {
	name := "sim"
	if len(args) > 0 {
		name = args[0]
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	opts := gwtree.SimulateOptions{
		P:            pFlag,
		Q:            qFlag,
		RootSequence: rootSeq,
		Mutate:       pointMutate,
		NamePrefix:   name + "_",
	}

	t, warnings, err := gwtree.Simulate(opts, rng)
	for _, w := range warnings {
		fmt.Fprintf(c.Stderr(), "WARNING: %v\n", w)
	}
	if err != nil {
		return err
	}
	if _, err := gwtree.Collapse(t, gwtree.CollapseOptions{}); err != nil {
		return err
	}

	w := c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	trees := map[string]*gwtree.Tree{name: t}
	if err := gcio.WriteRawTrees(w, trees); err != nil {
		return err
	}
	return nil
}

// pointMutate flips a single, uniformly chosen position of parent to
// a different base, the simplest mutation model that produces a
// single-nucleotide neighbor of the parent sequence.
func pointMutate(parent string, rng *rand.Rand) string {
	if len(parent) == 0 {
		return parent
	}
	pos := rng.IntN(len(parent))
	cur := parent[pos]
	var next byte
	for {
		next = bases[rng.IntN(len(bases))]
		if next != cur {
			break
		}
	}
	out := []byte(parent)
	out[pos] = next
	return string(out)
}
