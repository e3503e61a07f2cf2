// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package weightalg

import (
	"fmt"

	gctree_cm "github.com/js-arias/gctree/cm"
	"github.com/js-arias/gctree/dag"
)

// CMCounter returns the CM-counter weight algebra of spec §4.7.1:
// edge weight is the contribution of the child node to the CM
// summary, the pair (abundance, m) where m is the child's number of
// distinct child-clade labels, minus one if the child has a
// leaf-adjacency self-clade. A leaf-adjacent node (one that shares its
// parent's sequence) contributes the empty multiset instead, since its
// genotype is already counted by its parent. Accumulation is multiset
// union; this algebra has no natural Compare (it is meant for
// WeightCount only, not trimming).
func CMCounter() dag.Algebra[gctree_cm.Multiset] {
	return dag.Algebra[gctree_cm.Multiset]{
		Start: func() gctree_cm.Multiset { return nil },
		EdgeWeight: func(ctx dag.EdgeContext) (gctree_cm.Multiset, error) {
			if ctx.SelfLabelChild && !ctx.IsRoot {
				return nil, nil
			}
			c, m := ctx.ChildLabel.Abundance, ctx.ChildNumClades
			if ctx.ChildHasSelfClade {
				m--
			}
			if ctx.IsRoot {
				c, m = gctree_cm.RootPseudocount(c, m)
			}
			return gctree_cm.Multiset{{Pair: gctree_cm.Pair{C: c, M: m}, N: 1}}, nil
		},
		Accum: func(a, b gctree_cm.Multiset) gctree_cm.Multiset {
			return gctree_cm.Union(a, b)
		},
	}
}

// CMKey is a WeightCount grouping key for CMCounter's Multiset weight:
// its sorted, canonical string form.
func CMKey(ms gctree_cm.Multiset) string {
	s := ms.Sorted()
	out := ""
	for _, c := range s {
		out += fmt.Sprintf("(%d,%d)x%d;", c.C, c.M, c.N)
	}
	return out
}
