// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package weightalg

import (
	"github.com/js-arias/gctree/cm"
	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/llkernel"
)

// LogLikelihood returns the log-likelihood weight algebra of spec
// §4.7.2: edge weight is ll_genotype(c, m, p, q) under the CM-counter
// collapse rule, with the root pseudocount applied to the DAG's own
// root contribution (DAG.RootContext) when it would otherwise be an
// unobserved unifurcation (c=0, m=1). Accumulation is sum, carried in
// a StableSum so that tied totals compare equal regardless of
// summation order (spec §4.7.2).
//
// Compare orders by DESCENDING likelihood: a higher log-likelihood is
// the "better" (optimal) weight for this algebra.
func LogLikelihood(p, q float64) dag.Algebra[StableSum] {
	ca := llkernel.NewCache()

	return dag.Algebra[StableSum]{
		Start: NewStableSum,
		EdgeWeight: func(ctx dag.EdgeContext) (StableSum, error) {
			if ctx.SelfLabelChild && !ctx.IsRoot {
				return NewStableSum(), nil
			}
			c, m := ctx.ChildLabel.Abundance, ctx.ChildNumClades
			if ctx.ChildHasSelfClade {
				m--
			}
			if ctx.IsRoot {
				c, m = cm.RootPseudocount(c, m)
			}
			ll, _, err := ca.Eval(c, m, p, q)
			if err != nil {
				return StableSum{}, err
			}
			return FloatSum(ll), nil
		},
		Accum:   func(a, b StableSum) StableSum { return a.Add(b) },
		Compare: func(a, b StableSum) int { return b.Cmp(a) },
	}
}
