// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package forest

import (
	"fmt"

	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/isotype"
	"github.com/js-arias/gctree/mutability"
	"github.com/js-arias/gctree/weightalg"
)

// A weightTuple is the joint weight scored by FilterTrees: the
// log-likelihood, isotype parsimony, mutability parsimony, and allele
// count of one history (spec §4.8).
type weightTuple = weightalg.Tuple4[weightalg.StableSum, int, float64, int]

// Metrics is a weight tuple with its fields named for reporting.
type Metrics struct {
	LogLikelihood float64
	Isotype       int
	Mutability    float64
	Alleles       int
}

func metricsOf(w weightTuple) Metrics {
	return Metrics{
		LogLikelihood: w.A.Float64(),
		Isotype:       w.B,
		Mutability:    w.C,
		Alleles:       w.D,
	}
}

// RankCoeffs are the ranking coefficients of spec §4.8:
// score = -ll + Isotype*iso + Mutability*mut + Alleles*alleles.
// A nil *RankCoeffs falls back to lexicographic ranking by
// (-ll, iso, mut, alleles).
type RankCoeffs struct {
	Isotype    float64
	Mutability float64
	Alleles    float64
}

// AuxConfig configures the auxiliary (non-likelihood) metrics of
// FilterTrees. A nil Order or Table/Substitution disables the
// corresponding metric (its weight is a placeholder zero, following
// the ignore_isotype / missing-mutability-file behavior of the source
// tool this ranking is modeled on).
type AuxConfig struct {
	Order           isotype.Order
	MutabilityTable *mutability.Table
	Substitution    *mutability.Substitution
	ChainSplits     []int
}

func (c AuxConfig) isotypeAlgebra() dag.Algebra[int] {
	if len(c.Order) == 0 {
		return placeholderIntAlgebra()
	}
	return isotype.Parsimony(c.Order)
}

func (c AuxConfig) mutabilityAlgebra() dag.Algebra[float64] {
	if c.MutabilityTable == nil || c.Substitution == nil {
		return placeholderFloatAlgebra()
	}
	return mutability.Penalty(c.MutabilityTable, c.Substitution, c.ChainSplits)
}

func placeholderIntAlgebra() dag.Algebra[int] {
	return dag.Algebra[int]{
		Start:      func() int { return 0 },
		EdgeWeight: func(dag.EdgeContext) (int, error) { return 0, nil },
		Accum:      func(a, b int) int { return a + b },
		Compare:    func(a, b int) int { return a - b },
	}
}

func placeholderFloatAlgebra() dag.Algebra[float64] {
	return dag.Algebra[float64]{
		Start:      func() float64 { return 0 },
		EdgeWeight: func(dag.EdgeContext) (float64, error) { return 0, nil },
		Accum:      func(a, b float64) float64 { return a + b },
		Compare:    func(a, b float64) int { return compareFloat(a, b) },
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

// scoreOf is the coefficient-weighted score of spec §4.8:
// score = -ll + Isotype*iso + Mutability*mut + Alleles*alleles.
func scoreOf(w weightTuple, coeffs RankCoeffs) float64 {
	ll := w.A.Float64()
	return -ll + coeffs.Isotype*float64(w.B) + coeffs.Mutability*w.C + coeffs.Alleles*float64(w.D)
}

// compareLex is the lexicographic fallback of spec §4.8,
// (-ll, iso, mut, alleles): a true field-by-field comparison, each
// field breaking ties left by the one before it, rather than a scaled
// sum that a large low-priority difference could swamp a genuine but
// small log-likelihood difference with. ll is compared directly via
// StableSum.Cmp (negated, since the tuple orders by -ll) to keep the
// same 9-digit-rounded tie-stability weightalg.LogLikelihood's own
// Compare already relies on.
func compareLex(a, b weightTuple) int {
	if c := -a.A.Cmp(b.A); c != 0 {
		return c
	}
	if a.B != b.B {
		if a.B < b.B {
			return -1
		}
		return 1
	}
	if c := compareFloat(a.C, b.C); c != 0 {
		return c
	}
	if a.D != b.D {
		if a.D < b.D {
			return -1
		}
		return 1
	}
	return 0
}

// FilterTrees ranks the histories of f.DAG by spec §4.8's score and
// trims to exactly those achieving the minimum. (p, q) are the fitted
// branching parameters; coeffs is nil for lexicographic ranking.
// Returns the trimmed DAG and the (shared) optimal weight tuple.
func (f *Forest) FilterTrees(p, q float64, aux AuxConfig, coeffs *RankCoeffs) (*dag.DAG, Metrics, []error, error) {
	var warnings []error

	llAlg := weightalg.LogLikelihood(p, q)
	isoAlg := aux.isotypeAlgebra()
	mutAlg := aux.mutabilityAlgebra()
	alleleAlg := weightalg.AlleleCount()

	joint := weightalg.Product4(llAlg, isoAlg, mutAlg, alleleAlg)
	scored := dag.Algebra[weightTuple]{
		Start:      joint.Start,
		EdgeWeight: joint.EdgeWeight,
		Accum:      joint.Accum,
		Compare: func(a, b weightTuple) int {
			if coeffs != nil {
				return compareFloat(scoreOf(a, *coeffs), scoreOf(b, *coeffs))
			}
			return compareLex(a, b)
		},
	}

	trimmed := dag.TrimOptimalWeight(f.DAG, scored)

	key := func(w weightTuple) string {
		if coeffs != nil {
			return fmt.Sprintf("%.9f", scoreOf(w, *coeffs))
		}
		return fmt.Sprintf("%s|%d|%.9f|%d", w.A.Rounded(9), w.B, w.C, w.D)
	}
	counts := dag.WeightCount(trimmed, scored, key)
	if len(counts) != 1 {
		return nil, Metrics{}, warnings, fmt.Errorf("forest: %w: trimming left %d distinct scores, want 1", gcerr.ErrInvariantViolation, len(counts))
	}

	var best Metrics
	for _, e := range counts {
		best = metricsOf(e.Weight)
	}
	return trimmed, best, warnings, nil
}
