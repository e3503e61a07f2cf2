// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mle implements the bounded maximum-likelihood driver of spec
// §4.3: a quasi-Newton optimizer over the box [ε, 1−ε]² with analytic
// gradient, a finite-difference gradient check, and a fixed initial
// guess of (0.5, 0.5).
package mle

import (
	"fmt"
	"math"

	"github.com/js-arias/gctree/gcerr"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// Epsilon bounds the box [ε, 1-ε]² that (p, q) is constrained to.
const Epsilon = 1e-6

// gradientCheckTolerance is the maximum allowed discrepancy between
// the analytic and finite-difference gradients before a warning is
// raised (spec §4.3).
const gradientCheckTolerance = 1e-3

// An Objective evaluates the negative log-likelihood (and its
// gradient) of a dataset at a given (p, q). Implementations wrap
// llkernel.Cache.Tree, or a sum of such calls across a forest.
type Objective interface {
	// NegLogLike returns -ll and -∇ll at (p, q).
	NegLogLike(p, q float64) (float64, [2]float64, error)
}

// Result is the outcome of a Fit call.
type Result struct {
	P, Q float64

	// GradientCheck is the max-norm discrepancy between the
	// analytic and finite-difference gradients at the optimum.
	GradientCheck float64
}

// Fit runs the bounded quasi-Newton search and returns the fitted
// (p, q), together with any warnings: a failed optimizer status, or a
// gradient check exceeding gradientCheckTolerance, are both
// gcerr.ErrNumericWarning, not hard failures.
func Fit(obj Objective) (Result, []error, error) {
	var warnings []error

	// Reparameterize (p, q) in (0, 1) via a sigmoid of unconstrained
	// (x, y), so the unconstrained optimizer never needs native box
	// support. Squeeze the open interval slightly so fitted values
	// always land strictly inside [ε, 1-ε].
	toUnit := func(x float64) float64 {
		u := 1 / (1 + math.Exp(-x))
		return Epsilon + u*(1-2*Epsilon)
	}
	toUnitGrad := func(x float64) float64 {
		u := 1 / (1 + math.Exp(-x))
		return u * (1 - u) * (1 - 2*Epsilon)
	}

	fn := func(z []float64) float64 {
		p, q := toUnit(z[0]), toUnit(z[1])
		nll, _, err := obj.NegLogLike(p, q)
		if err != nil {
			return math.Inf(1)
		}
		return nll
	}
	grad := func(g, z []float64) {
		p, q := toUnit(z[0]), toUnit(z[1])
		_, ngrad, err := obj.NegLogLike(p, q)
		if err != nil {
			g[0], g[1] = 0, 0
			return
		}
		g[0] = ngrad[0] * toUnitGrad(z[0])
		g[1] = ngrad[1] * toUnitGrad(z[1])
	}

	problem := optimize.Problem{Func: fn, Grad: grad}

	z0 := []float64{0, 0} // sigmoid(0) = 0.5
	res, err := optimize.Minimize(problem, z0, nil, &optimize.LBFGS{})
	if err != nil {
		return Result{}, warnings, fmt.Errorf("mle: %w: optimizer error: %v", gcerr.ErrInvalidInput, err)
	}
	if res.Status != optimize.Success && res.Status != optimize.FunctionConvergence && res.Status != optimize.GradientThreshold {
		warnings = append(warnings, fmt.Errorf("mle: %w: optimizer status %v", gcerr.ErrNumericWarning, res.Status))
	}

	p, q := toUnit(res.X[0]), toUnit(res.X[1])

	analyticGrad := make([]float64, 2)
	grad(analyticGrad, res.X)

	fdGrad := fd.Gradient(nil, fn, res.X, &fd.Settings{Formula: fd.Central})

	maxDiff := 0.0
	for i := range analyticGrad {
		d := math.Abs(analyticGrad[i] - fdGrad[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	if maxDiff > gradientCheckTolerance {
		warnings = append(warnings, fmt.Errorf("mle: %w: gradient check %v exceeds tolerance %v", gcerr.ErrNumericWarning, maxDiff, gradientCheckTolerance))
	}

	return Result{P: p, Q: q, GradientCheck: maxDiff}, warnings, nil
}
