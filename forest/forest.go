// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package forest orchestrates the branching-process core end to end: it
// builds a history DAG from a collection of input trees (spec §4.6),
// fits (p, q) by maximum likelihood over the whole collection (spec
// §4.3, §5), ranks and trims the DAG by a combination of weight
// algebras (spec §4.8), and keeps the "expected invariants" record
// every sampled history is checked against (spec §9).
package forest

import (
	"fmt"
	"sort"

	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/seqdist"
)

// A Forest bundles the input trees with the history DAG built from
// them and the invariants the first input tree establishes.
type Forest struct {
	Trees      []*gwtree.Tree
	DAG        *dag.DAG
	Invariants Invariants
}

// Invariants is the opaque "expected invariants" record of spec §9:
// set once, from the first input tree, and checked against every
// tree later sampled from the DAG.
type Invariants struct {
	RootName       string
	RootSequence   string
	TotalAbundance int
	Parsimony      int
	LeafNames      []string // sorted
}

// New builds a Forest from a set of collapsed, equal-parsimony trees
// (spec §4.6).
func New(trees []*gwtree.Tree, opts dag.Options) (*Forest, []error, error) {
	d, warnings, err := dag.New(trees, opts)
	if err != nil {
		return nil, warnings, err
	}
	return &Forest{
		Trees:      trees,
		DAG:        d,
		Invariants: computeInvariants(trees[0]),
	}, warnings, nil
}

func computeInvariants(t *gwtree.Tree) Invariants {
	root := t.Node(t.Root())
	rootName := ""
	if names := root.Names(); len(names) > 0 {
		rootName = names[0]
	}

	total := 0
	for _, id := range t.Nodes() {
		if n := t.Node(id); n.Abundance() > 0 {
			total += n.Abundance()
		}
	}

	leaves := make([]string, 0)
	for name := range t.ObservedNames() {
		leaves = append(leaves, name)
	}
	sort.Strings(leaves)

	return Invariants{
		RootName:       rootName,
		RootSequence:   root.Sequence(),
		TotalAbundance: total,
		Parsimony:      hammingWeight(t),
		LeafNames:      leaves,
	}
}

// hammingWeight is the sum of every non-root node's Hamming distance
// to its parent — the same computation dag.New uses to validate its
// input trees share one parsimony weight class.
func hammingWeight(t *gwtree.Tree) int {
	total := 0
	for _, id := range t.Nodes() {
		if t.IsRoot(id) {
			continue
		}
		total += t.Node(id).Distance()
	}
	return total
}

// Validate checks t against f's recorded invariants (spec §7's
// InvariantViolation case: "validation mismatch between a sampled DAG
// tree and the stored parent invariants"). It is the canonical check
// applied to every tree sampled from f.DAG.
func (f *Forest) Validate(t *gwtree.Tree) error {
	got := computeInvariants(t)
	exp := f.Invariants

	if got.RootName != exp.RootName {
		return fmt.Errorf("forest: %w: root name %q, want %q", gcerr.ErrInvariantViolation, got.RootName, exp.RootName)
	}
	if !sequencesCompatible(got.RootSequence, exp.RootSequence) {
		return fmt.Errorf("forest: %w: root sequence %q, want one compatible with %q", gcerr.ErrInvariantViolation, got.RootSequence, exp.RootSequence)
	}
	if got.TotalAbundance != exp.TotalAbundance {
		return fmt.Errorf("forest: %w: total abundance %d, want %d", gcerr.ErrInvariantViolation, got.TotalAbundance, exp.TotalAbundance)
	}
	if got.Parsimony != exp.Parsimony {
		return fmt.Errorf("forest: %w: parsimony weight %d, want %d", gcerr.ErrInvariantViolation, got.Parsimony, exp.Parsimony)
	}
	if len(got.LeafNames) != len(exp.LeafNames) {
		return fmt.Errorf("forest: %w: %d observed leaf names, want %d", gcerr.ErrInvariantViolation, len(got.LeafNames), len(exp.LeafNames))
	}
	for i, name := range got.LeafNames {
		if name != exp.LeafNames[i] {
			return fmt.Errorf("forest: %w: observed leaf name set differs (got %q at position %d, want %q)", gcerr.ErrInvariantViolation, name, i, exp.LeafNames[i])
		}
	}
	return nil
}

// sequencesCompatible reports whether a and b could be the same
// underlying genotype: equal length, with every position sharing at
// least one concrete base under IUPAC ambiguity (seqdist.Compatible).
// This is the ambiguity-aware analog of string equality the root-
// sequence invariant check needs, since a sampled tree's root may
// carry an ambiguity code the recorded invariant resolved differently.
func sequencesCompatible(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if !seqdist.Compatible(a[i], b[i]) {
			return false
		}
	}
	return true
}
