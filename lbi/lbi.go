// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lbi implements the local branching index and ratio (Neher
// 2014, spec §4.9): a two-pass message-passing computation over a
// collapsed tree, grounded on the teacher's own down-pass-then-up-pass
// traversal shape (pruning.fullDownPass followed by a synthesized
// up-pass).
package lbi

import (
	"math"

	"github.com/js-arias/gctree/gwtree"
)

// RootConvention picks the value LB_up takes at the root, which has no
// real parent edge of its own.
type RootConvention int

const (
	// RootInfinite treats the root as if attached by an infinite
	// branch: LB_up(root) = tau.
	RootInfinite RootConvention = iota

	// RootFinite treats the root as having no upward contribution:
	// LB_up(root) = 0.
	RootFinite
)

// Stats is a node's local branching index and ratio.
type Stats struct {
	LBI float64
	LBR float64
}

// Compute returns the LBI/LBR of every node in t, for decay constant
// tau and zero-length pseudo-branch tau0 (spec §4.9). LBR at the root
// is always NaN: the root's LB_up is a convention, not a measured
// upward message, so its ratio is not meaningful.
func Compute(t *gwtree.Tree, tau, tau0 float64, root RootConvention) map[int]Stats {
	kernel := func(d float64) float64 { return tau * (1 - math.Exp(-d/tau)) }
	prop := func(d float64) float64 { return math.Exp(-d / tau) }

	// downChild[c] is the message c sends to its parent; downTotal[n]
	// folds in every child's message plus n's own pseudo-branch term
	// (abundance(n) * kernel(tau0)), and is what n itself sends
	// onward once its own parent edge is applied.
	downChild := make(map[int]float64)
	downTotal := make(map[int]float64)

	var post func(id int)
	post = func(id int) {
		for _, c := range t.Children(id) {
			post(c)
		}
		n := t.Node(id)
		total := float64(n.Abundance()) * kernel(tau0)
		for _, c := range t.Children(id) {
			cd := float64(t.Node(c).Distance())
			msg := kernel(cd) + prop(cd)*downTotal[c]
			downChild[c] = msg
			total += msg
		}
		downTotal[id] = total
	}
	post(t.Root())

	up := make(map[int]float64)
	var pre func(id int)
	pre = func(id int) {
		for _, c := range t.Children(id) {
			cd := float64(t.Node(c).Distance())
			siblings := downTotal[id] - downChild[c]
			up[c] = kernel(cd) + prop(cd)*(up[id]+siblings)
			pre(c)
		}
	}
	switch root {
	case RootInfinite:
		up[t.Root()] = tau
	default:
		up[t.Root()] = 0
	}
	pre(t.Root())

	out := make(map[int]Stats, len(downTotal))
	for _, id := range t.Nodes() {
		lbi := downTotal[id] + up[id]
		lbr := downTotal[id] / up[id]
		if t.IsRoot(id) {
			lbr = math.NaN()
		}
		out[id] = Stats{LBI: lbi, LBR: lbr}
	}
	return out
}
