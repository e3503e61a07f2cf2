// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package support

import (
	"fmt"

	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/gwtree"
)

// Values holds, for every non-root node of a reference tree, its
// bootstrap support value.
type Values map[int]float64

// Count tallies, for each non-root node of ref, the total weight of
// bootstrap trees whose node set contains an identical bipartition
// (spec §4.9). weights may be nil, in which case every bootstrap tree
// counts for 1; otherwise weights must have the same length as boot.
func Count(ref *gwtree.Tree, boot []*gwtree.Tree, weights []float64) (Values, error) {
	return tally(ref, boot, weights, func(b Bipartition, bootSplits []Bipartition) bool {
		for _, o := range bootSplits {
			if b.Equal(o) {
				return true
			}
		}
		return false
	})
}

// Compatibility tallies, for each non-root node of ref, the total
// weight of bootstrap trees that do not exhibit any bipartition
// contradicting the node's induced split (spec §4.9's "compatibility"
// variant). A bootstrap tree that does not test the split at all
// (e.g. it is missing some of the reference's taxa) still counts, so
// long as none of its splits actively contradicts it.
func Compatibility(ref *gwtree.Tree, boot []*gwtree.Tree, weights []float64) (Values, error) {
	return tally(ref, boot, weights, func(b Bipartition, bootSplits []Bipartition) bool {
		for _, o := range bootSplits {
			if !b.compatible(o) {
				return false
			}
		}
		return true
	})
}

// tally runs the shared bipartition-matching loop behind Count and
// Compatibility: for every bootstrap tree, its non-root splits are
// computed once against the reference's taxon universe, then matched
// against every reference node's split with the supplied predicate.
func tally(ref *gwtree.Tree, boot []*gwtree.Tree, weights []float64, match func(Bipartition, []Bipartition) bool) (Values, error) {
	if weights != nil && len(weights) != len(boot) {
		return nil, fmt.Errorf("support: %w: %d weights for %d bootstrap trees", gcerr.ErrInvalidInput, len(weights), len(boot))
	}

	universe := NewUniverse(observedTaxa(ref))

	refNodes := ref.Nodes()
	refSplits := make(map[int]Bipartition, len(refNodes))
	for _, id := range refNodes {
		if ref.IsRoot(id) {
			continue
		}
		refSplits[id] = Induce(ref, id, universe)
	}

	out := make(Values, len(refSplits))
	for id := range refSplits {
		out[id] = 0
	}

	for i, bt := range boot {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		var splits []Bipartition
		for _, id := range bt.Nodes() {
			if bt.IsRoot(id) {
				continue
			}
			splits = append(splits, Induce(bt, id, universe))
		}
		for id, b := range refSplits {
			if match(b, splits) {
				out[id] += w
			}
		}
	}
	return out, nil
}

func observedTaxa(t *gwtree.Tree) []string {
	names := t.ObservedNames()
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	return out
}
