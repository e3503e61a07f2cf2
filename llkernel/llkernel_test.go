// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package llkernel_test

import (
	"errors"
	"math"
	"testing"

	"github.com/js-arias/gctree/cm"
	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/llkernel"
)

const tol = 1e-9

func TestBaseCases(t *testing.T) {
	p, q := 0.4, 0.3
	ca := llkernel.NewCache()

	ll, grad, err := ca.Eval(1, 0, p, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLL := math.Log(1 - p)
	if math.Abs(ll-wantLL) > tol {
		t.Errorf("ll(1,0) = %v, want %v", ll, wantLL)
	}
	wantGrad := [2]float64{-1 / (1 - p), 0}
	if math.Abs(grad[0]-wantGrad[0]) > tol || math.Abs(grad[1]-wantGrad[1]) > tol {
		t.Errorf("grad(1,0) = %v, want %v", grad, wantGrad)
	}

	ll, grad, err = ca.Eval(0, 2, p, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLL = math.Log(p) + 2*math.Log(q)
	if math.Abs(ll-wantLL) > tol {
		t.Errorf("ll(0,2) = %v, want %v", ll, wantLL)
	}
	wantGrad = [2]float64{1 / p, 2 / q}
	if math.Abs(grad[0]-wantGrad[0]) > tol || math.Abs(grad[1]-wantGrad[1]) > tol {
		t.Errorf("grad(0,2) = %v, want %v", grad, wantGrad)
	}
}

func TestZeroLikelihoodInvariance(t *testing.T) {
	ca := llkernel.NewCache()
	for _, p := range [][2]int{{0, 0}, {0, 1}} {
		_, _, err := ca.Eval(p[0], p[1], 0.4, 0.3)
		if !errors.Is(err, gcerr.ErrZeroLikelihood) {
			t.Errorf("Eval(%d,%d): got %v, want ErrZeroLikelihood", p[0], p[1], err)
		}
	}
}

func TestGradientCorrectness(t *testing.T) {
	const h = 1e-5
	ps := []float64{0.3, 0.5, 0.7}
	qs := []float64{0.2, 0.4, 0.6}

	for _, p := range ps {
		for _, q := range qs {
			ca := llkernel.NewCache()
			for c := 0; c <= 8; c++ {
				for m := 0; m <= 8; m++ {
					if c == 0 && (m == 0 || m == 1) {
						continue
					}
					_, grad, err := ca.Eval(c, m, p, q)
					if err != nil {
						t.Fatalf("Eval(%d,%d,%v,%v): %v", c, m, p, q, err)
					}

					fp := finiteDiffP(c, m, p, q, h)
					fq := finiteDiffQ(c, m, p, q, h)
					if math.Abs(grad[0]-fp) > 1e-4 {
						t.Errorf("c=%d m=%d p=%v q=%v: dp = %v, want %v", c, m, p, q, grad[0], fp)
					}
					if math.Abs(grad[1]-fq) > 1e-4 {
						t.Errorf("c=%d m=%d p=%v q=%v: dq = %v, want %v", c, m, p, q, grad[1], fq)
					}
				}
			}
		}
	}
}

func finiteDiffP(c, m int, p, q, h float64) float64 {
	ca := llkernel.NewCache()
	l1, _, _ := ca.Eval(c, m, p+h, q)
	ca2 := llkernel.NewCache()
	l2, _, _ := ca2.Eval(c, m, p-h, q)
	return (l1 - l2) / (2 * h)
}

func finiteDiffQ(c, m int, p, q, h float64) float64 {
	ca := llkernel.NewCache()
	l1, _, _ := ca.Eval(c, m, p, q+h)
	ca2 := llkernel.NewCache()
	l2, _, _ := ca2.Eval(c, m, p, q-h)
	return (l1 - l2) / (2 * h)
}

func TestCacheSafety(t *testing.T) {
	ca := llkernel.NewCache()
	l1, g1, err := ca.Eval(5, 4, 0.3, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = l1
	_ = g1

	l2, g2, err := ca.Eval(5, 4, 0.6, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fresh := llkernel.NewCache()
	wantLL, wantGrad, err := fresh.Eval(5, 4, 0.6, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(l2-wantLL) > tol {
		t.Errorf("after param switch: ll = %v, want %v", l2, wantLL)
	}
	if math.Abs(g2[0]-wantGrad[0]) > tol || math.Abs(g2[1]-wantGrad[1]) > tol {
		t.Errorf("after param switch: grad = %v, want %v", g2, wantGrad)
	}
}

func TestMonotoneFill(t *testing.T) {
	p, q := 0.4, 0.35

	incremental := llkernel.NewCache()
	access := [][2]int{{1, 0}, {0, 2}, {3, 1}, {2, 4}, {1, 5}, {6, 2}}
	for _, a := range access {
		if _, _, err := incremental.Eval(a[0], a[1], p, q); err != nil {
			t.Fatalf("incremental Eval(%d,%d): %v", a[0], a[1], err)
		}
	}

	maxC, maxM := 0, 0
	for _, a := range access {
		if a[0] > maxC {
			maxC = a[0]
		}
		if a[1] > maxM {
			maxM = a[1]
		}
	}

	fresh := llkernel.NewCache()
	for c := 0; c <= maxC; c++ {
		for m := 0; m <= maxM; m++ {
			if c == 0 && (m == 0 || m == 1) {
				continue
			}
			wantLL, wantGrad, err := fresh.Eval(c, m, p, q)
			if err != nil {
				t.Fatalf("fresh Eval(%d,%d): %v", c, m, err)
			}
			gotLL, gotGrad, err := incremental.Eval(c, m, p, q)
			if err != nil {
				t.Fatalf("incremental Eval(%d,%d): %v", c, m, err)
			}
			if math.Abs(gotLL-wantLL) > tol {
				t.Errorf("(%d,%d): ll = %v, want %v", c, m, gotLL, wantLL)
			}
			if math.Abs(gotGrad[0]-wantGrad[0]) > tol || math.Abs(gotGrad[1]-wantGrad[1]) > tol {
				t.Errorf("(%d,%d): grad = %v, want %v", c, m, gotGrad, wantGrad)
			}
		}
	}
}

// S2: root with two mutant children, each a single-abundance leaf with
// distinct sequences.
func TestScenarioS2(t *testing.T) {
	p, q := 0.4, 0.3
	ca := llkernel.NewCache()
	ms := cm.Multiset{
		{Pair: cm.Pair{C: 0, M: 2}, N: 1},
		{Pair: cm.Pair{C: 1, M: 0}, N: 2},
	}
	ll, _, err := ca.Tree(ms, p, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := math.Log(p) + 2*math.Log(q) + 2*math.Log(1-p)
	if math.Abs(ll-want) > tol {
		t.Errorf("ll = %v, want %v", ll, want)
	}
}

func TestInvalidParams(t *testing.T) {
	ca := llkernel.NewCache()
	if _, _, err := ca.Eval(1, 0, 0, 0.5); !errors.Is(err, gcerr.ErrInvalidInput) {
		t.Errorf("p=0: got %v, want ErrInvalidInput", err)
	}
	if _, _, err := ca.Eval(1, 0, 0.5, 1); !errors.Is(err, gcerr.ErrInvalidInput) {
		t.Errorf("q=1: got %v, want ErrInvalidInput", err)
	}
	if _, _, err := ca.Eval(-1, 0, 0.5, 0.5); !errors.Is(err, gcerr.ErrInvalidInput) {
		t.Errorf("c=-1: got %v, want ErrInvalidInput", err)
	}
}
