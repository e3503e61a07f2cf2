// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package isotype

import (
	"fmt"

	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/gwtree"
)

// infeasible is the sentinel cost for a state excluded by an
// observation or by the switching-order constraint.
const infeasible = 1 << 30

// Resolve assigns an isotype rank to every node of t, minimizing the
// total number of switches while keeping ranks non-decreasing along
// every edge (spec §4.7.3). Leaves and internal nodes with an observed
// isotype map are constrained to their observed ranks, the parsimony-
// minimizing one chosen when more than one is observed; unobserved
// nodes are free. A warning is reported for a node whose observations
// cannot be reconciled with its ancestors under the order (the
// observed tree violates the switching order there); its rank is then
// set to the best reachable approximation rather than left unset.
func Resolve(t *gwtree.Tree, order Order) (map[int]int, []error, error) {
	k := order.Len()
	if k == 0 {
		return nil, nil, fmt.Errorf("isotype: %w: empty isotype order", gcerr.ErrInvalidInput)
	}

	cost := make(map[int][]int)
	var post func(id int)
	post = func(id int) {
		for _, c := range t.Children(id) {
			post(c)
		}
		base := nodeBaseCost(t.Node(id).Isotype(), order)
		for _, c := range t.Children(id) {
			cc := cost[c]
			for s := 0; s < k; s++ {
				best := infeasible
				for sp := s; sp < k; sp++ {
					v := cc[sp]
					if sp != s {
						v++
					}
					if v < best {
						best = v
					}
				}
				base[s] += best
			}
		}
		cost[id] = base
	}
	post(t.Root())

	resolved := make(map[int]int, len(cost))
	var warnings []error
	var assign func(id, lo int)
	assign = func(id, lo int) {
		cc := cost[id]
		state, best := lo, infeasible
		for s := lo; s < k; s++ {
			if cc[s] < best {
				best, state = cc[s], s
			}
		}
		if best >= infeasible {
			warnings = append(warnings, fmt.Errorf("isotype: %w: node %d cannot reconcile observed isotype with switching order", gcerr.ErrNumericWarning, id))
		}
		resolved[id] = state
		for _, c := range t.Children(id) {
			assign(c, state)
		}
	}
	assign(t.Root(), 0)

	return resolved, warnings, nil
}

// nodeBaseCost returns, for one node, the cost of each isotype state
// before its children are folded in: 0 for states consistent with an
// observation, infeasible for states an observation excludes, and 0
// everywhere for an unobserved node.
func nodeBaseCost(observed map[string]int, order Order) []int {
	k := order.Len()
	base := make([]int, k)
	if len(observed) == 0 {
		return base
	}
	allowed := make([]bool, k)
	any := false
	for name := range observed {
		if r, ok := order.Rank(name); ok {
			allowed[r] = true
			any = true
		}
	}
	if !any {
		return base
	}
	for s := 0; s < k; s++ {
		if !allowed[s] {
			base[s] = infeasible
		}
	}
	return base
}
