// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cm implements the (c, m) summary of a collapsed tree: the
// sufficient statistic for the branching-process likelihood.
package cm

import (
	"cmp"
	"slices"
)

// A Pair is a (c, m) observation: c clonal leaves and m mutant child
// clades at a single node.
type Pair struct {
	C int
	M int
}

// A Count is a (c, m) pair together with the number of nodes across a
// tree (or a history) that produced it.
type Count struct {
	Pair
	N int
}

// A Multiset is the (c, m) summary of a collapsed tree: every distinct
// pair observed, together with its multiplicity.
type Multiset []Count

// RootPseudocount applies the pseudocount rule of an unobserved
// unifurcating root: a root (c, m) = (0, 1) is replaced by (1, 1), so
// that it is never treated as a zero-likelihood event. Every caller
// that needs the root pseudocount rule — tree collapse and the
// log-likelihood weight algebra alike — must call this helper, so the
// rule is defined in exactly one place.
func RootPseudocount(c, m int) (int, int) {
	if c == 0 && m == 1 {
		return 1, 1
	}
	return c, m
}

// Add records an observation of pair p in a multiset, merging it into
// an existing entry if present.
func (ms Multiset) Add(p Pair) Multiset {
	for i, c := range ms {
		if c.Pair == p {
			ms[i].N++
			return ms
		}
	}
	return append(ms, Count{Pair: p, N: 1})
}

// Union merges two multisets, summing multiplicities of shared pairs.
func Union(a, b Multiset) Multiset {
	out := make(Multiset, len(a))
	copy(out, a)
	for _, c := range b {
		for i := 0; i < c.N; i++ {
			out = out.Add(c.Pair)
		}
	}
	return out
}

// Sorted returns a copy of ms ordered by ascending C, then ascending M,
// for canonical comparison and reporting.
func (ms Multiset) Sorted() Multiset {
	out := slices.Clone(ms)
	slices.SortFunc(out, func(a, b Count) int {
		if d := cmp.Compare(a.C, b.C); d != 0 {
			return d
		}
		return cmp.Compare(a.M, b.M)
	})
	return out
}

// Equal reports whether two multisets contain the same pairs with the
// same multiplicities, regardless of order.
func Equal(a, b Multiset) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := a.Sorted(), b.Sorted()
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
