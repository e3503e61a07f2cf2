// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package llkernel implements the branching-process likelihood kernel
// ("spaceship distribution"): the log-probability, and its gradient
// with respect to (p, q), that a subtree rooted at a node has c clonal
// leaves and m mutant child-clades.
//
// The kernel is memoized on (c, m) for a fixed (p, q). Switching (p, q)
// invalidates the whole cache. The recurrence is naturally recursive,
// but recursion depth would scale with tree size, so the cache is
// filled by explicit iteration over a two-dimensional table instead
// (see Cache.grow), following the max-subtraction logsumexp idiom the
// rest of this module's teacher uses for its own per-node dynamic
// programs.
package llkernel

import (
	"fmt"
	"math"

	"github.com/js-arias/gctree/cm"
	"github.com/js-arias/gctree/gcerr"
)

// A Grad is a gradient with respect to (p, q).
type Grad [2]float64

type entry struct {
	ll   float64
	grad Grad
}

// A Cache holds the (p, q)-keyed memoization table for ll_genotype. A
// Cache is not safe for concurrent use; callers that parallelize
// per-tree likelihood evaluation across workers must use one Cache per
// worker, never a single Cache protected by a mutex around reads —
// only growth needs serialization, and per-worker caches sidestep that
// entirely.
type Cache struct {
	p, q float64
	set  bool

	maxC, maxM int
	hasMax     bool

	table map[cm.Pair]entry
}

// NewCache returns an empty likelihood cache.
func NewCache() *Cache {
	return &Cache{table: make(map[cm.Pair]entry)}
}

// Eval returns the log-likelihood and gradient of observing c clonal
// leaves and m mutant child-clades at a node, given branching
// probability p and mutation probability q.
//
// Eval fails with gcerr.ErrZeroLikelihood if (c, m) is (0, 0) or
// (0, 1), and with gcerr.ErrInvalidInput if c or m is negative, or if p
// or q is outside the open unit interval.
func (ca *Cache) Eval(c, m int, p, q float64) (float64, Grad, error) {
	if c < 0 || m < 0 {
		return 0, Grad{}, fmt.Errorf("llkernel: %w: negative (c, m) = (%d, %d)", gcerr.ErrInvalidInput, c, m)
	}
	if p <= 0 || p >= 1 || q <= 0 || q >= 1 {
		return 0, Grad{}, fmt.Errorf("llkernel: %w: p, q must be in (0, 1): p = %v, q = %v", gcerr.ErrInvalidInput, p, q)
	}
	if isZeroLikelihood(c, m) {
		return 0, Grad{}, fmt.Errorf("llkernel: %w: (c, m) = (%d, %d)", gcerr.ErrZeroLikelihood, c, m)
	}

	if !ca.set || ca.p != p || ca.q != q {
		ca.table = make(map[cm.Pair]entry)
		ca.p, ca.q = p, q
		ca.set = true
		ca.maxC, ca.maxM = 0, 0
		ca.hasMax = false
	}

	if !ca.hasMax || c > ca.maxC || m > ca.maxM {
		cachedC, cachedM := ca.maxC, ca.maxM
		ca.maxC, ca.maxM = c, m
		ca.hasMax = true
		ca.grow(cachedC, cachedM, c, m)
	}

	e, ok := ca.table[cm.Pair{C: c, M: m}]
	if !ok {
		return 0, Grad{}, fmt.Errorf("llkernel: internal error: cell (%d, %d) was not filled", c, m)
	}
	return e.ll, e.grad, nil
}

func isZeroLikelihood(c, m int) bool {
	return (c == 0 && m == 0) || (c == 0 && m == 1)
}

// grow fills every cell needed to answer a request for (c, m), given
// that every cell with coordinates at most (cachedC, cachedM) may
// already be present. It fills the three rectangles that extend an
// existing square block into a larger one:
//
//	| 1 3
//	| X 2
//
// where X is the already-built block, 1 extends along m for the
// columns already built, 2 extends along c for the rows already
// built, and 3 fills the new corner. Each rectangle is swept in an
// order (outer loop over the axis shared with the already-built block,
// inner loop ascending) that guarantees every cell's dependencies —
// (c, m-1) for the asymmetric term, and every (cx, mx) / (c-cx, m-mx)
// pair for the symmetric terms — are filled before the cell itself.
func (ca *Cache) grow(cachedC, cachedM, c, m int) {
	for cx := 0; cx <= cachedC; cx++ {
		for mx := cachedM; mx <= m; mx++ {
			ca.fill(cx, mx)
		}
	}
	for mx := 0; mx <= cachedM; mx++ {
		for cx := cachedC; cx <= c; cx++ {
			ca.fill(cx, mx)
		}
	}
	for mx := cachedM + 1; mx <= m; mx++ {
		for cx := cachedC + 1; cx <= c; cx++ {
			ca.fill(cx, mx)
		}
	}
}

// fill computes and stores cell (c, m) if it is not already present
// and is not a zero-likelihood event.
func (ca *Cache) fill(c, m int) {
	if isZeroLikelihood(c, m) {
		return
	}
	if _, ok := ca.table[cm.Pair{C: c, M: m}]; ok {
		return
	}

	p, q := ca.p, ca.q

	if c == 1 && m == 0 {
		ca.table[cm.Pair{C: c, M: m}] = entry{
			ll:   math.Log(1 - p),
			grad: Grad{-1 / (1 - p), 0},
		}
		return
	}
	if c == 0 && m == 2 {
		ca.table[cm.Pair{C: c, M: m}] = entry{
			ll:   math.Log(p) + 2*math.Log(q),
			grad: Grad{1 / p, 2 / q},
		}
		return
	}

	var terms []float64
	var termGrads []Grad

	if m >= 1 {
		nb := ca.table[cm.Pair{C: c, M: m - 1}]
		terms = append(terms, math.Log(2)+math.Log(p)+math.Log(q)+math.Log(1-q)+nb.ll)
		termGrads = append(termGrads, Grad{
			1/p + nb.grad[0],
			1/q - 1/(1-q) + nb.grad[1],
		})
	}

	for cx := 0; cx <= c; cx++ {
		for mx := 0; mx <= m; mx++ {
			if !(cx > 0 || mx > 1) {
				continue
			}
			ocx, omx := c-cx, m-mx
			if !(ocx > 0 || omx > 1) {
				continue
			}
			left := ca.table[cm.Pair{C: cx, M: mx}]
			right := ca.table[cm.Pair{C: ocx, M: omx}]
			logg := math.Log(p) + 2*math.Log(1-q) + left.ll + right.ll
			terms = append(terms, logg)
			termGrads = append(termGrads, Grad{
				1/p + left.grad[0] + right.grad[0],
				-2/(1-q) + left.grad[1] + right.grad[1],
			})
		}
	}

	ll, weights := logSumExpSoftmax(terms)
	var grad Grad
	for i, w := range weights {
		grad[0] += w * termGrads[i][0]
		grad[1] += w * termGrads[i][1]
	}
	ca.table[cm.Pair{C: c, M: m}] = entry{ll: ll, grad: grad}
}

// logSumExpSoftmax returns log(sum(exp(x))) computed with a
// max-subtraction for numerical stability, together with the softmax
// weights over x — the same idiom used by this module's teacher for
// its own per-node likelihood aggregation.
func logSumExpSoftmax(x []float64) (float64, []float64) {
	max := -math.MaxFloat64
	for _, v := range x {
		if v > max {
			max = v
		}
	}
	var sum float64
	exp := make([]float64, len(x))
	for i, v := range x {
		e := math.Exp(v - max)
		exp[i] = e
		sum += e
	}
	logSum := math.Log(sum) + max
	weights := make([]float64, len(x))
	for i, e := range exp {
		weights[i] = e / sum
	}
	return logSum, weights
}

// Tree returns the log-likelihood and gradient of an entire collapsed
// tree's CM summary, Σ n·ℓ(c, m, p, q) over the multiset.
func (ca *Cache) Tree(ms cm.Multiset, p, q float64) (float64, Grad, error) {
	var ll float64
	var grad Grad
	for _, count := range ms {
		c, m := count.C, count.M
		cll, cgrad, err := ca.Eval(c, m, p, q)
		if err != nil {
			return 0, Grad{}, err
		}
		n := float64(count.N)
		ll += n * cll
		grad[0] += n * cgrad[0]
		grad[1] += n * cgrad[1]
	}
	return ll, grad, nil
}
