// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mle_test

import (
	"math"
	"testing"

	"github.com/js-arias/gctree/cm"
	"github.com/js-arias/gctree/llkernel"
	"github.com/js-arias/gctree/mle"
)

// treeObjective wraps a single collapsed tree's CM summary as an
// mle.Objective.
type treeObjective struct {
	ms cm.Multiset
}

func (o treeObjective) NegLogLike(p, q float64) (float64, [2]float64, error) {
	ca := llkernel.NewCache()
	ll, grad, err := ca.Tree(o.ms, p, q)
	if err != nil {
		return 0, [2]float64{}, err
	}
	return -ll, [2]float64{-grad[0], -grad[1]}, nil
}

// Scenario S5 (spec §8): a tree whose CM summary's MLE is analytically
// tractable enough to sanity-check against a direct grid search.
func TestFitMatchesGridSearch(t *testing.T) {
	ms := cm.Multiset{
		{Pair: cm.Pair{C: 0, M: 2}, N: 3},
		{Pair: cm.Pair{C: 1, M: 0}, N: 5},
	}
	obj := treeObjective{ms: ms}

	res, warnings, err := mle.Fit(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, w := range warnings {
		t.Logf("warning: %v", w)
	}

	if res.P <= 0 || res.P >= 1 || res.Q <= 0 || res.Q >= 1 {
		t.Fatalf("fitted (p, q) = (%v, %v) outside (0, 1)", res.P, res.Q)
	}

	ca := llkernel.NewCache()
	bestLL, _, err := ca.Tree(ms, res.P, res.Q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	best := -math.MaxFloat64
	for _, gp := range []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9} {
		for _, gq := range []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9} {
			gca := llkernel.NewCache()
			ll, _, err := gca.Tree(ms, gp, gq)
			if err != nil {
				continue
			}
			if ll > best {
				best = ll
			}
		}
	}

	if bestLL < best-1e-2 {
		t.Errorf("fitted ll = %v worse than grid-search ll = %v by more than tolerance", bestLL, best)
	}
}

func TestFitGradientCheckReported(t *testing.T) {
	ms := cm.Multiset{
		{Pair: cm.Pair{C: 1, M: 0}, N: 1},
	}
	obj := treeObjective{ms: ms}
	res, _, err := mle.Fit(obj)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.GradientCheck < 0 {
		t.Errorf("gradient check = %v, want >= 0", res.GradientCheck)
	}
}
