// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mutability

import (
	"math"
	"sort"

	"github.com/js-arias/gctree/dag"
)

// Penalty builds the context-sensitive mutability weight algebra
// (spec §4.7.4): edge weight is the summed log-probability penalty of
// every substitution an edge implies, each scored by table's rate for
// the ancestral k-mer context and sub's target distribution for the
// realized base. splits gives the 0-based positions, if any, at which
// concatenated chains meet; a context window is never allowed to
// cross a split, the same way it is never allowed to run past either
// end of the sequence.
func Penalty(table *Table, sub *Substitution, splits []int) dag.Algebra[float64] {
	k := table.K()
	bounds := chainBounds(splits)

	return dag.Algebra[float64]{
		Start: func() float64 { return 0 },
		EdgeWeight: func(ctx dag.EdgeContext) (float64, error) {
			if ctx.IsRoot {
				return 0, nil
			}
			p := ctx.ParentLabel.Sequence
			c := ctx.ChildLabel.Sequence
			if len(p) != len(c) {
				return 0, nil
			}

			var penalty float64
			for i := 0; i < len(p); i++ {
				if p[i] == c[i] {
					continue
				}
				context, ok := contextAt(p, i, k, bounds)
				if !ok {
					continue
				}
				rate, ok := table.Rate(context)
				if !ok || rate <= 0 {
					continue
				}
				prob, ok := sub.Target(context, c[i])
				if !ok || prob <= 0 {
					continue
				}
				penalty += -math.Log(rate * prob)
			}
			return penalty, nil
		},
		Accum:   func(acc, w float64) float64 { return acc + w },
		Compare: func(a, b float64) int { return compareFloat(a, b) },
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// chainBounds turns a set of split positions into the sorted list of
// half-open [start, end) chain segments they define over a sequence of
// unknown length; callers clamp end to the actual sequence length.
func chainBounds(splits []int) []int {
	bounds := make([]int, 0, len(splits)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, splits...)
	sort.Ints(bounds[1:])
	return bounds
}

// contextAt returns the length-k context centered on position pos of
// seq, clamped to the chain segment pos belongs to (per bounds, the
// split boundaries). ok is false if fewer than k/2 flanking bases are
// available on either side within the segment.
func contextAt(seq string, pos, k int, bounds []int) (string, bool) {
	if k <= 0 {
		return "", false
	}
	half := k / 2

	start, end := 0, len(seq)
	for i, b := range bounds {
		if pos >= b {
			start = b
			if i+1 < len(bounds) {
				end = bounds[i+1]
			}
		}
	}

	lo := pos - half
	hi := lo + k
	if lo < start || hi > end {
		return "", false
	}
	return seq[lo:hi], true
}
