// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package support implements bootstrap bipartition support (spec
// §4.9's second bullet): for each non-root node of a reference tree,
// the observed-taxa bipartition it induces, and how many bootstrap
// trees share (or do not contradict) that bipartition. Grounded on
// gotree's booster package, which represents a branch's induced split
// as a bitset over the full taxon set and compares splits by testing
// bit membership (Brehelin/Gascuel/Martin 2008); this package keeps
// the bitset-over-taxa idea but drops booster's transfer-distance
// machinery, which the spec does not ask for.
package support

import (
	"sort"

	"github.com/js-arias/gctree/gwtree"
)

// Bipartition is the unordered pair of taxon sets induced by one edge
// of a tree: the taxa below the edge, and everything else. Because the
// pair is unordered, two bipartitions compare equal regardless of
// which side each one calls "below".
type Bipartition struct {
	universe []string // full observed-taxon set, sorted
	below    map[string]bool
}

// NewUniverse returns the sorted, de-duplicated taxon set used to
// canonicalize every Bipartition drawn against it. All trees being
// compared (reference and bootstrap) must share the same universe.
func NewUniverse(taxa []string) []string {
	seen := make(map[string]bool, len(taxa))
	for _, n := range taxa {
		seen[n] = true
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Induce builds the Bipartition that a node induces within a tree: the
// observed taxa at or below the node versus the rest of the universe.
func Induce(t *gwtree.Tree, node int, universe []string) Bipartition {
	below := make(map[string]bool)
	collectObserved(t, node, below)
	return Bipartition{universe: universe, below: below}
}

func collectObserved(t *gwtree.Tree, id int, out map[string]bool) {
	n := t.Node(id)
	if n.Abundance() > 0 || id == t.Root() {
		for _, name := range n.Names() {
			out[name] = true
		}
	}
	for _, c := range t.Children(id) {
		collectObserved(t, c, out)
	}
}

// key returns a canonical string for the bipartition: the
// lexicographically smaller of {below, its complement}, so that two
// Bipartitions induced from opposite sides of the same split compare
// equal as unordered pairs of sets.
func (b Bipartition) key() string {
	var in, out []string
	for _, n := range b.universe {
		if b.below[n] {
			in = append(in, n)
		} else {
			out = append(out, n)
		}
	}
	a, c := joinSorted(in), joinSorted(out)
	if a <= c {
		return a
	}
	return c
}

// Equal reports whether two bipartitions are the same unordered split
// of the same universe.
func (b Bipartition) Equal(o Bipartition) bool {
	return b.key() == o.key()
}

// compatible reports whether b and o could coexist on the same tree:
// true when one side of b is a subset of one side of o, or disjoint
// from it (the standard compatibility test for unrooted splits).
func (b Bipartition) compatible(o Bipartition) bool {
	bIn, bOut := b.sides()
	oIn, oOut := o.sides()
	return isSubsetOrDisjoint(bIn, oIn) || isSubsetOrDisjoint(bIn, oOut) ||
		isSubsetOrDisjoint(bOut, oIn) || isSubsetOrDisjoint(bOut, oOut)
}

func (b Bipartition) sides() (in, out map[string]bool) {
	in = make(map[string]bool)
	out = make(map[string]bool)
	for _, n := range b.universe {
		if b.below[n] {
			in[n] = true
		} else {
			out[n] = true
		}
	}
	return in, out
}

func isSubsetOrDisjoint(a, b map[string]bool) bool {
	subset, disjoint := true, true
	for n := range a {
		if b[n] {
			disjoint = false
		} else {
			subset = false
		}
	}
	return subset || disjoint
}

func joinSorted(names []string) string {
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += "\x00"
		}
		out += n
	}
	return out
}
