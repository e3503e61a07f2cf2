// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gwtree_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/gwtree"
)

func TestSimulateGenotypeSubcritical(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		c, m, warn := gwtree.SimulateGenotype(0.3, 0.4, rng)
		if warn != nil {
			t.Fatalf("unexpected warning at p=0.3: %v", warn)
		}
		if c < 0 || m < 0 {
			t.Fatalf("got negative (c, m) = (%d, %d)", c, m)
		}
	}
}

func TestSimulateGenotypeSupercriticalWarns(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	_, _, warn := gwtree.SimulateGenotype(0.6, 0.4, rng)
	if !errors.Is(warn, gcerr.ErrNumericWarning) {
		t.Errorf("got %v, want ErrNumericWarning", warn)
	}
}

func TestSimulateProducesValidTree(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	mutate := func(parent string, rng *rand.Rand) string {
		bases := []byte("ACGT")
		seq := []byte(parent)
		pos := rng.IntN(len(seq))
		seq[pos] = bases[rng.IntN(len(bases))]
		return string(seq)
	}
	tr, _, err := gwtree.Simulate(gwtree.SimulateOptions{
		P: 0.3, Q: 0.4,
		RootSequence: "AAAAAAAAAA",
		Mutate:       mutate,
		NamePrefix:   "seq",
	}, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Root() < 0 {
		t.Fatal("simulated tree has no root")
	}
	if len(tr.Nodes()) == 0 {
		t.Fatal("simulated tree has no nodes")
	}
}
