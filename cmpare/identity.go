// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cmpare implements the three tree-comparison modes of spec
// §4.10: identity, MRCA distance, and Robinson-Foulds. Grounded on
// other_examples soniakeys-bio's phylo.go (its PhyloList.PathLen/
// Distance common-ancestor walk, and CharacterTable's bitset-over-node
// view of a tree's internal splits), adapted from a graph.FromList path
// representation to gwtree's parent-ID map.
package cmpare

import (
	"fmt"
	"sort"

	"github.com/js-arias/gctree/gwtree"
)

// Identity reports whether a and b contain the exact same multiset of
// (sequence, abundance, parent sequence) triples (spec §4.10). The
// root's "parent sequence" is the empty string, so a root triple from
// one tree can never match a non-root triple from another even if
// their sequences coincide.
func Identity(a, b *gwtree.Tree) bool {
	return sameKeys(triplesOf(a), triplesOf(b))
}

func triplesOf(t *gwtree.Tree) []string {
	ids := t.Nodes()
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		n := t.Node(id)
		parentSeq := ""
		if !t.IsRoot(id) {
			parentSeq = t.Node(t.Parent(id)).Sequence()
		}
		keys = append(keys, fmt.Sprintf("%s\x00%d\x00%s", n.Sequence(), n.Abundance(), parentSeq))
	}
	sort.Strings(keys)
	return keys
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
