// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cmpare

import (
	"sort"

	"github.com/js-arias/gctree/gwtree"
)

// RobinsonFoulds returns the Robinson-Foulds distance between a and b:
// the number of non-trivial bipartitions of sequence labels present in
// one tree's unrooted topology but not the other, after adding an
// explicit observed-leaf child under every positive-abundance node
// (spec §4.10). Adding that child is not performed as a literal tree
// mutation: a positive-abundance node already contributes its own
// sequence to its own induced split (see splitsOf), which is the same
// bipartition the explicit child would induce.
func RobinsonFoulds(a, b *gwtree.Tree) int {
	sa := splitsOf(a)
	sb := splitsOf(b)
	return symmetricDifference(sa, sb)
}

// splitsOf returns the set of non-trivial bipartition keys induced by
// every non-root node of t, labeling each observed taxon by its
// sequence rather than its name (sequences, not names, are the labels
// RF compares, per spec §4.10).
func splitsOf(t *gwtree.Tree) map[string]bool {
	universe := sequenceUniverse(t)
	out := make(map[string]bool)
	for _, id := range t.Nodes() {
		if t.IsRoot(id) {
			continue
		}
		below := make(map[string]bool)
		collectSequences(t, id, below)
		if len(below) < 2 || len(universe)-len(below) < 2 {
			continue // trivial split: singleton or co-singleton side
		}
		out[splitKey(universe, below)] = true
	}
	return out
}

func collectSequences(t *gwtree.Tree, id int, out map[string]bool) {
	n := t.Node(id)
	if n.Abundance() > 0 || t.IsRoot(id) {
		out[n.Sequence()] = true
	}
	for _, c := range t.Children(id) {
		collectSequences(t, c, out)
	}
}

func sequenceUniverse(t *gwtree.Tree) []string {
	seen := make(map[string]bool)
	for _, id := range t.Nodes() {
		n := t.Node(id)
		if n.Abundance() > 0 || t.IsRoot(id) {
			seen[n.Sequence()] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	return out
}

// splitKey canonicalizes a bipartition the same way support.Bipartition
// does: the lexicographically smaller of the two joined, sorted sides.
func splitKey(universe []string, below map[string]bool) string {
	var in, out []string
	for _, s := range universe {
		if below[s] {
			in = append(in, s)
		} else {
			out = append(out, s)
		}
	}
	a, b := joinSorted(in), joinSorted(out)
	if a <= b {
		return a
	}
	return b
}

func joinSorted(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	out := ""
	for i, s := range sorted {
		if i > 0 {
			out += "\x00"
		}
		out += s
	}
	return out
}

func symmetricDifference(a, b map[string]bool) int {
	count := 0
	for k := range a {
		if !b[k] {
			count++
		}
	}
	for k := range b {
		if !a[k] {
			count++
		}
	}
	return count
}
