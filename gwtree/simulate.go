// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gwtree

import (
	"fmt"
	"math/rand/v2"

	"github.com/js-arias/gctree/gcerr"
)

// SimulateGenotype draws a single (c, m) pair from the Galton-Watson
// branching process (spec §4.5): a BFS over would-be offspring of one
// genotype, where at each step, with probability p the node branches
// into two children, each independently mutant with probability q.
// Clonal (non-mutant) descendants that do not branch further are the
// clonal leaves counted into c; mutant clades are not recursed into
// here, only counted into m.
//
// p should be below 0.5 for the process to terminate almost surely; a
// p at or above 0.5 is accepted but reported as a NumericWarning,
// since there is no termination guarantee.
func SimulateGenotype(p, q float64, rng *rand.Rand) (c, m int, warn error) {
	if p >= 0.5 {
		warn = fmt.Errorf("gwtree: %w: simulation with p = %v is supercritical, no termination guarantee", gcerr.ErrNumericWarning, p)
	}

	c, m = 0, 0
	queue := 1
	for queue > 0 {
		queue--
		if rng.Float64() >= p {
			c++
			continue
		}
		for i := 0; i < 2; i++ {
			if rng.Float64() < q {
				m++
			} else {
				queue++
			}
		}
	}
	return c, m, warn
}

// simNode is a minimal in-memory tree used to stage a simulated
// genealogy before it is handed to New as a RawNode.
type simNode struct {
	seq       string
	abundance int
	name      string
	isotype   map[string]int
	children  []RawNode
}

func (n *simNode) Sequence() string          { return n.seq }
func (n *simNode) Abundance() int            { return n.abundance }
func (n *simNode) Name() string              { return n.name }
func (n *simNode) Isotype() map[string]int   { return n.isotype }
func (n *simNode) Children() []RawNode       { return n.children }

// SimulateOptions configures Simulate.
type SimulateOptions struct {
	// P, Q are the branching and mutation probabilities.
	P, Q float64
	// RootSequence seeds the simulated genealogy.
	RootSequence string
	// Mutate produces a new sequence for a mutant clade, given the
	// parent's sequence and a random source; callers outside this
	// module's core (sequence-level mutation models) supply this.
	Mutate func(parent string, rng *rand.Rand) string
	// NamePrefix names generated leaves "<prefix><counter>".
	NamePrefix string
}

// Simulate recursively constructs a simulated tree (spec §4.5):
// simulate_genotype is drawn at the root, c clonal leaves are attached
// directly (abundance 1, distance 0, to be collapsed into the root),
// and each of the m mutant clades recurses with a freshly mutated
// sequence at edge distance 1.
func Simulate(opts SimulateOptions, rng *rand.Rand) (*Tree, []error, error) {
	var warnings []error
	counter := 0
	root, w, err := simulateNode(opts, opts.RootSequence, rng, &counter)
	if w != nil {
		warnings = append(warnings, w)
	}
	if err != nil {
		return nil, warnings, err
	}
	return New(root), warnings, nil
}

func simulateNode(opts SimulateOptions, seq string, rng *rand.Rand, counter *int) (*simNode, error, error) {
	c, m, warn := SimulateGenotype(opts.P, opts.Q, rng)

	n := &simNode{
		seq:       seq,
		abundance: 1,
		isotype:   make(map[string]int),
	}
	*counter++
	n.name = fmt.Sprintf("%s%d", opts.NamePrefix, *counter)

	for i := 0; i < c; i++ {
		*counter++
		n.children = append(n.children, &simNode{
			seq:       seq,
			abundance: 1,
			name:      fmt.Sprintf("%s%d", opts.NamePrefix, *counter),
			isotype:   make(map[string]int),
		})
	}

	for i := 0; i < m; i++ {
		childSeq := seq
		if opts.Mutate != nil {
			childSeq = opts.Mutate(seq, rng)
		}
		child, _, err := simulateNode(opts, childSeq, rng, counter)
		if err != nil {
			return nil, warn, err
		}
		n.children = append(n.children, child)
	}

	return n, warn, nil
}
