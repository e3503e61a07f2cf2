// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package weightalg

import "github.com/js-arias/gctree/dag"

// AlleleCount returns the allele-count weight algebra of spec §4.7.5:
// edge weight is 1 if parent and child labels differ, 0 otherwise;
// accumulation is sum. Compare orders ascending: fewer distinct
// alleles along a history is the "optimal" weight for this algebra.
func AlleleCount() dag.Algebra[int] {
	return dag.Algebra[int]{
		Start: func() int { return 0 },
		EdgeWeight: func(ctx dag.EdgeContext) (int, error) {
			if ctx.IsRoot {
				return 0, nil
			}
			if ctx.ParentLabel != ctx.ChildLabel {
				return 1, nil
			}
			return 0, nil
		},
		Accum:   func(a, b int) int { return a + b },
		Compare: func(a, b int) int { return a - b },
	}
}
