// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package forest

import (
	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/weightalg"
)

// Range is an achievable [min, max] interval for one metric.
type Range struct {
	Min, Max float64
}

// Summary reports, for each of the four weight-algebra metrics, the
// achievable range of every other metric when that one metric alone is
// optimized (spec §4.8's forest summary block). The outer map key is
// the metric held optimal; the inner map gives the other three
// metrics' ranges within that optimal set.
func (f *Forest) Summary(p, q float64, aux AuxConfig) (map[string]map[string]Range, []error, error) {
	var warnings []error

	llAlg := weightalg.LogLikelihood(p, q)
	isoAlg := aux.isotypeAlgebra()
	mutAlg := aux.mutabilityAlgebra()
	alleleAlg := weightalg.AlleleCount()
	joint := weightalg.Product4(llAlg, isoAlg, mutAlg, alleleAlg)

	type metric struct {
		name    string
		extract func(weightTuple) float64
		best    func(a, b weightTuple) int // direction in which this metric is optimized alone
	}
	extractLL := func(w weightTuple) float64 { return w.A.Float64() }
	extractIso := func(w weightTuple) float64 { return float64(w.B) }
	extractMut := func(w weightTuple) float64 { return w.C }
	extractAlleles := func(w weightTuple) float64 { return float64(w.D) }

	ascending := func(extract func(weightTuple) float64) func(a, b weightTuple) int {
		return func(a, b weightTuple) int { return compareFloat(extract(a), extract(b)) }
	}
	descending := func(extract func(weightTuple) float64) func(a, b weightTuple) int {
		return func(a, b weightTuple) int { return compareFloat(extract(b), extract(a)) }
	}

	metrics := []metric{
		{"log_likelihood", extractLL, descending(extractLL)}, // higher ll is better
		{"isotype", extractIso, ascending(extractIso)},
		{"mutability", extractMut, ascending(extractMut)},
		{"alleles", extractAlleles, ascending(extractAlleles)},
	}

	withCompare := func(cmp func(a, b weightTuple) int) dag.Algebra[weightTuple] {
		return dag.Algebra[weightTuple]{Start: joint.Start, EdgeWeight: joint.EdgeWeight, Accum: joint.Accum, Compare: cmp}
	}

	out := make(map[string]map[string]Range, len(metrics))
	for _, m := range metrics {
		trimmed := dag.TrimOptimalWeight(f.DAG, withCompare(m.best))

		ranges := make(map[string]Range, len(metrics)-1)
		for _, other := range metrics {
			if other.name == m.name {
				continue
			}
			minW, err := dag.Optimum(trimmed, withCompare(ascending(other.extract)))
			if err != nil {
				return nil, warnings, err
			}
			maxW, err := dag.Optimum(trimmed, withCompare(descending(other.extract)))
			if err != nil {
				return nil, warnings, err
			}
			ranges[other.name] = Range{Min: other.extract(minW), Max: other.extract(maxW)}
		}
		out[m.name] = ranges
	}
	return out, warnings, nil
}
