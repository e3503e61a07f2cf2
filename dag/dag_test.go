// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dag_test

import (
	"testing"

	"github.com/js-arias/gctree/cm"
	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/llkernel"
	"github.com/js-arias/gctree/weightalg"
)

type fakeNode struct {
	seq       string
	abundance int
	name      string
	isotype   map[string]int
	children  []*fakeNode
}

func (n *fakeNode) Sequence() string        { return n.seq }
func (n *fakeNode) Abundance() int          { return n.abundance }
func (n *fakeNode) Name() string            { return n.name }
func (n *fakeNode) Isotype() map[string]int { return n.isotype }
func (n *fakeNode) Children() []gwtree.RawNode {
	out := make([]gwtree.RawNode, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// a single small, already-collapsed tree: root with two mutant leaves.
func buildTree(t *testing.T) *gwtree.Tree {
	t.Helper()
	raw := &fakeNode{
		seq: "AAAA", name: "naive",
		children: []*fakeNode{
			{seq: "AAAT", name: "leaf1", abundance: 2},
			{seq: "AATT", name: "leaf2", abundance: 1},
		},
	}
	tr := gwtree.New(raw)
	if _, err := gwtree.Collapse(tr, gwtree.CollapseOptions{}); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	return tr
}

// Open Question consistency check (spec §9/S6): the CM summary
// produced by the DAG's CM-counter algebra (root contribution via
// DAG.RootContext + cm.RootPseudocount) must match gwtree.Tree's own
// CMSummary for a DAG built from a single tree.
func TestCMCounterMatchesTreeSummary(t *testing.T) {
	tr := buildTree(t)
	d, _, err := dag.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("dag.New: %v", err)
	}

	want := tr.CMSummary()

	alg := weightalg.CMCounter()
	counts := dag.WeightCount(d, alg, weightalg.CMKey)
	if len(counts) != 1 {
		t.Fatalf("got %d distinct CM summaries, want 1 (single input tree)", len(counts))
	}
	for _, e := range counts {
		if e.N != 1 {
			t.Errorf("history count = %d, want 1", e.N)
		}
		if !cm.Equal(e.Weight, want) {
			t.Errorf("DAG CM summary = %v, want %v", e.Weight, want)
		}
	}
}

func TestLogLikelihoodOptimumMatchesTreeLL(t *testing.T) {
	tr := buildTree(t)
	d, _, err := dag.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("dag.New: %v", err)
	}

	p, q := 0.4, 0.3
	alg := weightalg.LogLikelihood(p, q)
	total, err := dag.Optimum(d, alg)
	if err != nil {
		t.Fatalf("dag.Optimum: %v", err)
	}

	ms := tr.CMSummary()
	ca := llkernel.NewCache()
	wantLL, _, err := ca.Tree(ms, p, q)
	if err != nil {
		t.Fatalf("llkernel.Tree: %v", err)
	}

	if got := total.Float64(); got < wantLL-1e-6 || got > wantLL+1e-6 {
		t.Errorf("DAG log-likelihood = %v, want %v", got, wantLL)
	}
}

func TestAlleleCountSumsLabelChanges(t *testing.T) {
	tr := buildTree(t)
	d, _, err := dag.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("dag.New: %v", err)
	}
	alg := weightalg.AlleleCount()
	total, err := dag.Optimum(d, alg)
	if err != nil {
		t.Fatalf("dag.Optimum: %v", err)
	}
	if total <= 0 {
		t.Errorf("allele count = %d, want > 0 (root has two distinct-sequence children)", total)
	}
}

func TestTrimOptimalWeightNarrowsToOptimum(t *testing.T) {
	tr := buildTree(t)
	d, _, err := dag.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("dag.New: %v", err)
	}
	alg := weightalg.AlleleCount()
	trimmed := dag.TrimOptimalWeight(d, alg)

	totalBefore, _ := dag.Optimum(d, alg)
	totalAfter, _ := dag.Optimum(trimmed, alg)
	if totalAfter != totalBefore {
		t.Errorf("trim changed optimum: %d -> %d", totalBefore, totalAfter)
	}
}
