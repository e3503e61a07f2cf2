// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cmpare

import (
	"fmt"
	"sort"

	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/gwtree"
)

// MRCADistance returns the mean normalized Hamming distance between
// the MRCA sequences of a and b, taken over every pair of observed
// taxa shared by both trees (spec §4.10). A pair normalizes its
// Hamming distance by the MRCA sequence length.
func MRCADistance(a, b *gwtree.Tree) (float64, error) {
	taxa := sharedTaxa(a, b)
	if len(taxa) < 2 {
		return 0, fmt.Errorf("cmpare: %w: fewer than two shared taxa", gcerr.ErrInvalidInput)
	}

	ancA := ancestorsOf(a)
	ancB := ancestorsOf(b)

	var sum float64
	var n int
	for i := 0; i < len(taxa); i++ {
		for j := i + 1; j < len(taxa); j++ {
			sa, err := mrcaSequence(a, ancA, taxa[i], taxa[j])
			if err != nil {
				return 0, err
			}
			sb, err := mrcaSequence(b, ancB, taxa[i], taxa[j])
			if err != nil {
				return 0, err
			}
			d, err := normalizedHamming(sa, sb)
			if err != nil {
				return 0, err
			}
			sum += d
			n++
		}
	}
	return sum / float64(n), nil
}

// sharedTaxa returns the sorted intersection of a and b's observed
// names.
func sharedTaxa(a, b *gwtree.Tree) []string {
	bNames := b.ObservedNames()
	var out []string
	for name := range a.ObservedNames() {
		if bNames[name] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ancestorsOf maps every node's name to the ID chain from the node to
// the root (inclusive), used to walk up to the MRCA of two names.
func ancestorsOf(t *gwtree.Tree) map[string][]int {
	out := make(map[string][]int)
	for _, id := range t.Nodes() {
		n := t.Node(id)
		if n.Abundance() <= 0 && !t.IsRoot(id) {
			continue
		}
		var chain []int
		for cur := id; cur != -1; cur = t.Parent(cur) {
			chain = append(chain, cur)
			if t.IsRoot(cur) {
				break
			}
		}
		for _, name := range n.Names() {
			out[name] = chain
		}
	}
	return out
}

func mrcaSequence(t *gwtree.Tree, anc map[string][]int, x, y string) (string, error) {
	cx, ok := anc[x]
	if !ok {
		return "", fmt.Errorf("cmpare: %w: taxon %q not found", gcerr.ErrInvalidInput, x)
	}
	cy, ok := anc[y]
	if !ok {
		return "", fmt.Errorf("cmpare: %w: taxon %q not found", gcerr.ErrInvalidInput, y)
	}
	inY := make(map[int]bool, len(cy))
	for _, id := range cy {
		inY[id] = true
	}
	for _, id := range cx {
		if inY[id] {
			return t.Node(id).Sequence(), nil
		}
	}
	return "", fmt.Errorf("cmpare: %w: no common ancestor for %q and %q", gcerr.ErrInvariantViolation, x, y)
}

func normalizedHamming(a, b string) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("cmpare: %w: sequence length mismatch (%d vs %d)", gcerr.ErrInvalidInput, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, nil
	}
	var d int
	for i := range a {
		if a[i] != b[i] {
			d++
		}
	}
	return float64(d) / float64(len(a)), nil
}
