// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package isotype_test

import (
	"testing"

	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/isotype"
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

func TestDefaultOrderRank(t *testing.T) {
	r, ok := isotype.DefaultOrder.Rank("IgG1")
	if !ok || r != 2 {
		t.Errorf("Rank(IgG1) = %d, %v, want 2, true", r, ok)
	}
	if _, ok := isotype.DefaultOrder.Rank("IgZZZ"); ok {
		t.Errorf("Rank(IgZZZ) unexpectedly found")
	}
}

func TestColorCycles(t *testing.T) {
	if isotype.Color(0) != isotype.Palette[0] {
		t.Errorf("Color(0) = %q, want %q", isotype.Color(0), isotype.Palette[0])
	}
	if got := isotype.Color(len(isotype.Palette)); got != isotype.Palette[0] {
		t.Errorf("Color wrap = %q, want %q", got, isotype.Palette[0])
	}
}

func TestParsimonyCountsSwitches(t *testing.T) {
	raw := &fakeNode{
		seq: "AAAA", name: "naive", isotype: map[string]int{"IgM": 1},
		children: []*fakeNode{
			{seq: "AAAT", name: "a", abundance: 1, isotype: map[string]int{"IgM": 1}},
			{seq: "AATT", name: "b", abundance: 1, isotype: map[string]int{"IgG1": 1}},
		},
	}
	tr := gwtree.New(raw)
	if _, err := gwtree.Collapse(tr, gwtree.CollapseOptions{}); err != nil {
		t.Fatalf("collapse: %v", err)
	}

	d, _, err := dag.New([]*gwtree.Tree{tr}, dag.Options{})
	if err != nil {
		t.Fatalf("dag.New: %v", err)
	}
	alg := isotype.Parsimony(isotype.DefaultOrder)
	total, err := dag.Optimum(d, alg)
	if err != nil {
		t.Fatalf("dag.Optimum: %v", err)
	}
	if total != 1 {
		t.Errorf("isotype parsimony = %d, want 1 (one IgM->IgG1 switch)", total)
	}
}

func TestResolveAssignsUnobservedAncestor(t *testing.T) {
	raw := &fakeNode{
		seq: "AAAA", name: "naive",
		children: []*fakeNode{
			{
				seq: "AAAT", name: "mid",
				children: []*fakeNode{
					{seq: "AATT", name: "leaf", abundance: 1, isotype: map[string]int{"IgG1": 1}},
				},
			},
		},
	}
	tr := gwtree.New(raw)
	if _, err := gwtree.Collapse(tr, gwtree.CollapseOptions{}); err != nil {
		t.Fatalf("collapse: %v", err)
	}

	resolved, warnings, err := isotype.Resolve(tr, isotype.DefaultOrder)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	for _, id := range tr.Nodes() {
		if _, ok := resolved[id]; !ok {
			t.Errorf("node %d missing resolved rank", id)
		}
	}
}

func TestResolveWarnsOnOrderViolation(t *testing.T) {
	raw := &fakeNode{
		seq: "AAAA", name: "naive", abundance: 1, isotype: map[string]int{"IgG1": 1},
		children: []*fakeNode{
			{seq: "AAAT", name: "leaf", abundance: 1, isotype: map[string]int{"IgM": 1}},
		},
	}
	tr := gwtree.New(raw)
	if _, err := gwtree.Collapse(tr, gwtree.CollapseOptions{}); err != nil {
		t.Fatalf("collapse: %v", err)
	}

	_, warnings, err := isotype.Resolve(tr, isotype.DefaultOrder)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(warnings) == 0 {
		t.Errorf("want a warning for IgG1 -> IgM (order violation), got none")
	}
}
