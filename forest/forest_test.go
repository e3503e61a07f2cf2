// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package forest_test

import (
	"math"
	"testing"

	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/forest"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/llkernel"
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

func TestNewAndValidate(t *testing.T) {
	tr := buildTree(t)
	f, _, err := forest.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("forest.New: %v", err)
	}
	if f.Invariants.TotalAbundance != 3 {
		t.Errorf("TotalAbundance = %d, want 3", f.Invariants.TotalAbundance)
	}
	if err := f.Validate(tr); err != nil {
		t.Errorf("Validate(self) = %v, want nil", err)
	}
}

func TestValidateRejectsAbundanceMismatch(t *testing.T) {
	tr := buildTree(t)
	f, _, err := forest.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("forest.New: %v", err)
	}

	raw := &fakeNode{
		seq: "AAAA", name: "naive",
		children: []*fakeNode{
			{seq: "AAAT", name: "leaf1", abundance: 5},
		},
	}
	other := gwtree.New(raw)
	if _, err := gwtree.Collapse(other, gwtree.CollapseOptions{}); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	if err := f.Validate(other); err == nil {
		t.Errorf("Validate(mismatched tree) = nil, want an error")
	}
}

func TestLogLikeAllMatchesSingleTree(t *testing.T) {
	tr := buildTree(t)
	f, _, err := forest.New([]*gwtree.Tree{tr, tr}, dag.Options{})
	if err != nil {
		t.Fatalf("forest.New: %v", err)
	}
	total, err := f.LogLikeAll(0.4, 0.3)
	if err != nil {
		t.Fatalf("LogLikeAll: %v", err)
	}
	if total >= 0 {
		t.Errorf("LogLikeAll = %v, want a negative log-likelihood", total)
	}
	single, _, err := llkernel.NewCache().Tree(tr.CMSummary(), 0.4, 0.3)
	if err != nil {
		t.Fatalf("single-tree likelihood: %v", err)
	}
	if math.Abs(total-2*single) > 1e-9 {
		t.Errorf("LogLikeAll over two copies = %v, want %v", total, 2*single)
	}
}

func TestFilterTreesTrimsToSingleScore(t *testing.T) {
	tr := buildTree(t)
	f, _, err := forest.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("forest.New: %v", err)
	}
	trimmed, best, _, err := f.FilterTrees(0.4, 0.3, forest.AuxConfig{}, nil)
	if err != nil {
		t.Fatalf("FilterTrees: %v", err)
	}
	if trimmed == nil {
		t.Fatalf("FilterTrees returned a nil DAG")
	}
	if best.LogLikelihood >= 0 {
		t.Errorf("best.LogLikelihood = %v, want negative", best.LogLikelihood)
	}
}

func TestSummaryReportsRangesForEveryMetric(t *testing.T) {
	tr := buildTree(t)
	f, _, err := forest.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("forest.New: %v", err)
	}
	summary, _, err := f.Summary(0.4, 0.3, forest.AuxConfig{})
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	for _, name := range []string{"log_likelihood", "isotype", "mutability", "alleles"} {
		if _, ok := summary[name]; !ok {
			t.Errorf("Summary missing entry for %q", name)
		}
	}
}
