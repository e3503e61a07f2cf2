// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package weightalg implements the weight algebras of spec §4.7: the
// CM-counter, log-likelihood, and allele-count algebras consumed by
// the history DAG's weight_count, optimal_weight_annotate, and
// trim_optimal_weight operations. Isotype parsimony and mutability
// penalty live in their own packages (isotype, mutability) since each
// needs a domain table the others don't.
package weightalg

import "math/big"

// A StableSum is a high-precision running sum: spec §4.7.2 requires
// that the log-likelihood accumulator be order-independent for tied
// comparisons, which a plain float64 sum is not (floating-point
// addition is not associative). No example repo in this module's
// corpus ships a decimal library (shopspring/decimal or similar), so
// this uses the standard library's arbitrary-precision math/big.Float
// instead of adding a dependency nothing in the corpus reaches for.
type StableSum struct {
	sum *big.Float
}

// NewStableSum returns a zero-valued StableSum.
func NewStableSum() StableSum {
	return StableSum{sum: new(big.Float).SetPrec(200)}
}

// Add returns a + b.
func (a StableSum) Add(b StableSum) StableSum {
	out := NewStableSum()
	x := a.sum
	if x == nil {
		x = new(big.Float).SetPrec(200)
	}
	y := b.sum
	if y == nil {
		y = new(big.Float).SetPrec(200)
	}
	out.sum.Add(x, y)
	return out
}

// AddFloat returns a + v.
func (a StableSum) AddFloat(v float64) StableSum {
	return a.Add(FloatSum(v))
}

// FloatSum wraps a plain float64 as a StableSum.
func FloatSum(v float64) StableSum {
	s := NewStableSum()
	s.sum.SetFloat64(v)
	return s
}

// Float64 returns a's value as a float64, rounded to the nearest
// representable value: the "observable" comparison value of spec
// §4.7.2.
func (a StableSum) Float64() float64 {
	if a.sum == nil {
		return 0
	}
	v, _ := a.sum.Float64()
	return v
}

// Rounded returns a's value rounded to the given number of decimal
// digits, as a comparison key that ties regardless of summation order.
func (a StableSum) Rounded(digits int) string {
	if a.sum == nil {
		a.sum = new(big.Float).SetPrec(200)
	}
	return a.sum.Text('f', digits)
}

// Cmp orders a against b numerically: negative if a < b, 0 if equal,
// positive if a > b. Both are first rounded to 9 decimal digits so
// that summation-order floating noise does not produce spurious
// orderings among values a caller intends to be tied.
func (a StableSum) Cmp(b StableSum) int {
	ra := new(big.Float).SetPrec(200)
	ra.Parse(a.Rounded(9), 10)
	rb := new(big.Float).SetPrec(200)
	rb.Parse(b.Rounded(9), 10)
	return ra.Cmp(rb)
}
