// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package isotype

import "github.com/js-arias/gctree/dag"

// Parsimony builds the isotype-parsimony weight algebra (spec
// §4.7.3): edge weight is 1 when the parent's and child's dominant
// (highest-abundance) observed isotypes have different ranks under
// order and 0 otherwise, aggregated by sum. The direction of a switch
// is not checked: a switch against order counts 1, the same as a
// switch along it. Only edges between two nodes with observed
// isotypes contribute. Unobserved endpoints contribute zero here; their
// ancestral isotype is instead resolved by Resolve for reporting and
// rendering.
func Parsimony(order Order) dag.Algebra[int] {
	return dag.Algebra[int]{
		Start: func() int { return 0 },
		EdgeWeight: func(ctx dag.EdgeContext) (int, error) {
			if ctx.IsRoot {
				return 0, nil
			}
			pr, pok := dominantRank(ctx.ParentAttrs.Isotype, order)
			cr, cok := dominantRank(ctx.ChildAttrs.Isotype, order)
			if !pok || !cok {
				return 0, nil
			}
			if pr == cr {
				return 0, nil
			}
			return 1, nil
		},
		Accum:   func(acc, w int) int { return acc + w },
		Compare: func(a, b int) int { return a - b },
	}
}

// dominantRank returns the rank of the most-abundant isotype in
// isotypes, resolving ties toward the most naive (lowest-rank) option.
// ok is false if isotypes carries no entry known to order.
func dominantRank(isotypes map[string]int, order Order) (rank int, ok bool) {
	best := -1
	bestAbundance := -1
	for name, abundance := range isotypes {
		r, known := order.Rank(name)
		if !known {
			continue
		}
		if abundance > bestAbundance || (abundance == bestAbundance && r < best) {
			best = r
			bestAbundance = abundance
			ok = true
		}
	}
	return best, ok
}
