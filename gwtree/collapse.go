// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gwtree

import (
	"fmt"
	"sort"

	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/seqdist"
)

// CollapseOptions controls the behavior of Collapse.
type CollapseOptions struct {
	// AllowRepeats, if true, downgrades a repeated-sequence
	// invariant violation (spec §4.4 step 7) to a warning instead
	// of a hard failure.
	AllowRepeats bool
}

// Collapse normalizes t in place following spec §4.4:
//
//  1. root distance is fixed at 0;
//  2. unobserved internal unifurcations are deleted;
//  3. every non-root node's distance is recomputed as the Hamming
//     distance to its parent's sequence;
//  4. the pre-collapse observed-name set is recorded;
//  5. every zero-length edge is contracted into its parent;
//  6. the post-collapse observed-name set is checked against stored
//     before set;
//  7. repeated sequences among positive-abundance nodes are rejected
//     (or warned about, under AllowRepeats);
//  8. children are canonically ordered and abundance-0 nodes are
//     renamed so that equal sequences get equal names;
//  9. nothing further: callers extract the CM summary separately
//     (see package cm).
//
// Collapse returns any non-fatal warnings collected along the way.
func Collapse(t *Tree, opts CollapseOptions) ([]error, error) {
	var warnings []error

	t.nodes[t.root].dist = 0

	deleteUnobservedUnifurcations(t, t.root)

	if err := recomputeDistances(t, t.root, ""); err != nil {
		return warnings, err
	}

	before := t.ObservedNames()

	mergeZeroLengthEdges(t, t.root)

	after := t.ObservedNames()
	if !sameNameSet(before, after) {
		return warnings, fmt.Errorf("gwtree: %w: observed names changed by collapse: %s", gcerr.ErrInvariantViolation, symmetricDifference(before, after))
	}

	if w, err := checkRepeatedSequences(t, opts.AllowRepeats); err != nil {
		return warnings, err
	} else if w != nil {
		warnings = append(warnings, w)
	}

	canonicalize(t, t.root)

	if err := t.sanityCheckNoPlaceholder(); err != nil {
		return warnings, err
	}

	return warnings, nil
}

// deleteUnobservedUnifurcations removes internal nodes with abundance
// 0 and exactly one child, splicing the child directly under the
// grandparent.
func deleteUnobservedUnifurcations(t *Tree, id int) {
	for _, c := range append([]int(nil), t.Children(id)...) {
		deleteUnobservedUnifurcations(t, c)
	}

	if t.IsRoot(id) {
		return
	}
	n := t.nodes[id]
	if n.abundance != 0 || len(n.children) != 1 {
		return
	}

	parent := t.nodes[n.parent]
	child := n.children[0]
	t.nodes[child].parent = n.parent

	for i, cid := range parent.children {
		if cid == id {
			parent.children[i] = child
			break
		}
	}
	delete(t.nodes, id)
}

func recomputeDistances(t *Tree, id int, parentSeq string) error {
	n := t.nodes[id]
	if !t.IsRoot(id) {
		d, err := seqdist.HammingDistance(n.seq, parentSeq)
		if err != nil {
			return fmt.Errorf("gwtree: node %d: %w", id, err)
		}
		n.dist = d
	}
	for _, c := range n.children {
		if err := recomputeDistances(t, c, n.seq); err != nil {
			return err
		}
	}
	return nil
}

// mergeZeroLengthEdges performs the post-order contraction of every
// zero-length edge, merging a child into its parent as defined by
// spec §3: abundance merges by max, isotype maps merge key-wise by
// max, and names unite into a set when both sides correspond to
// observed genotypes.
func mergeZeroLengthEdges(t *Tree, id int) {
	for _, c := range t.Children(id) {
		mergeZeroLengthEdges(t, c)
	}

	queue := append([]int(nil), t.nodes[id].children...)
	var kept []int
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if t.nodes[c].dist != 0 {
			kept = append(kept, c)
			continue
		}
		grandchildren := mergeInto(t, id, c)
		queue = append(grandchildren, queue...)
	}
	t.nodes[id].children = kept
}

// mergeInto merges child into parent and returns the child's former
// children, now reparented onto parent.
func mergeInto(t *Tree, parentID, childID int) []int {
	parent := t.nodes[parentID]
	child := t.nodes[childID]

	parentObserved := parent.abundance > 0
	childObserved := child.abundance > 0

	if child.abundance > parent.abundance {
		parent.abundance = child.abundance
	}
	for k, v := range child.isotype {
		if v > parent.isotype[k] {
			parent.isotype[k] = v
		}
	}

	switch {
	case parentObserved && childObserved:
		for name := range child.names {
			parent.names[name] = true
		}
	case childObserved && !parentObserved:
		parent.names = make(map[string]bool, len(child.names))
		for name := range child.names {
			parent.names[name] = true
		}
	}

	grandchildren := append([]int(nil), child.children...)
	for _, g := range grandchildren {
		t.nodes[g].parent = parentID
	}
	delete(t.nodes, childID)
	return grandchildren
}

func checkRepeatedSequences(t *Tree, allow bool) (error, error) {
	bySeq := make(map[string][]int)
	for id, n := range t.nodes {
		if n.abundance <= 0 {
			continue
		}
		bySeq[n.seq] = append(bySeq[n.seq], id)
	}
	var offenders []string
	for seq, ids := range bySeq {
		if len(ids) > 1 {
			offenders = append(offenders, fmt.Sprintf("%q (nodes %v)", seq, ids))
		}
	}
	if len(offenders) == 0 {
		return nil, nil
	}
	sort.Strings(offenders)
	msg := fmt.Errorf("gwtree: %w: repeated sequence with positive abundance: %v", gcerr.ErrInvariantViolation, offenders)
	if allow {
		return fmt.Errorf("gwtree: %w: %v", gcerr.ErrNumericWarning, msg), nil
	}
	return nil, msg
}

// canonicalize computes each node's partition, sorts children by
// (ascending partition, ascending sequence), and renames abundance-0
// non-root nodes so that equal sequences share equal names.
func canonicalize(t *Tree, root int) {
	computePartitions(t, root)
	sortChildren(t, root)
	renameUnobserved(t, root)
}

func computePartitions(t *Tree, id int) int {
	n := t.nodes[id]
	total := n.abundance
	for _, c := range n.children {
		total += computePartitions(t, c)
	}
	n.partition = total
	return total
}

func sortChildren(t *Tree, id int) {
	n := t.nodes[id]
	sort.Slice(n.children, func(i, j int) bool {
		a, b := t.nodes[n.children[i]], t.nodes[n.children[j]]
		if a.partition != b.partition {
			return a.partition < b.partition
		}
		return a.seq < b.seq
	})
	for _, c := range n.children {
		sortChildren(t, c)
	}
}

func renameUnobserved(t *Tree, root int) {
	canon := make(map[string]string)
	counter := 0
	var walk func(id int)
	walk = func(id int) {
		n := t.nodes[id]
		if n.abundance == 0 && id != root {
			name, ok := canon[n.seq]
			if !ok {
				name = fmt.Sprintf("unnamed_seq_%d", counter)
				counter++
				canon[n.seq] = name
			}
			n.names = map[string]bool{name: true}
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
}

func sameNameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func symmetricDifference(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	for k := range b {
		if !a[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
