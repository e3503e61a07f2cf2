// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package mutability_test

import (
	"strings"
	"testing"

	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/mutability"
)

const tableTSV = `context	mutability
AAAAA	1.0
AAAAT	2.0
`

const subTSV = `context	to	probability
AAAAA	T	0.5
AAAAT	T	0.5
`

func TestReadTableAndSubstitution(t *testing.T) {
	tab, err := mutability.ReadTable(strings.NewReader(tableTSV))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tab.K() != 5 {
		t.Errorf("K = %d, want 5", tab.K())
	}
	if r, ok := tab.Rate("aaaaa"); !ok || r != 1.0 {
		t.Errorf("Rate(aaaaa) = %v, %v, want 1.0, true", r, ok)
	}

	sub, err := mutability.ReadSubstitution(strings.NewReader(subTSV))
	if err != nil {
		t.Fatalf("ReadSubstitution: %v", err)
	}
	if p, ok := sub.Target("AAAAA", 'T'); !ok || p != 0.5 {
		t.Errorf("Target(AAAAA,T) = %v, %v, want 0.5, true", p, ok)
	}
}

type fakeNode struct {
	seq       string
	abundance int
	name      string
	children  []*fakeNode
}

func (n *fakeNode) Sequence() string        { return n.seq }
func (n *fakeNode) Abundance() int          { return n.abundance }
func (n *fakeNode) Name() string            { return n.name }
func (n *fakeNode) Isotype() map[string]int { return nil }
func (n *fakeNode) Children() []gwtree.RawNode {
	out := make([]gwtree.RawNode, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func TestPenaltyPositiveForSubstitution(t *testing.T) {
	tab, err := mutability.ReadTable(strings.NewReader(tableTSV))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	sub, err := mutability.ReadSubstitution(strings.NewReader(subTSV))
	if err != nil {
		t.Fatalf("ReadSubstitution: %v", err)
	}

	raw := &fakeNode{
		seq: "CCAAAAACC", name: "naive",
		children: []*fakeNode{
			{seq: "CCAATAACC", name: "leaf", abundance: 1},
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

	alg := mutability.Penalty(tab, sub, nil)
	total, err := dag.Optimum(d, alg)
	if err != nil {
		t.Fatalf("dag.Optimum: %v", err)
	}
	if total <= 0 {
		t.Errorf("penalty = %v, want > 0 (one substitution in context)", total)
	}
}

func TestPenaltyZeroWithNoContextMatch(t *testing.T) {
	tab, err := mutability.ReadTable(strings.NewReader(tableTSV))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	sub, err := mutability.ReadSubstitution(strings.NewReader(subTSV))
	if err != nil {
		t.Fatalf("ReadSubstitution: %v", err)
	}

	raw := &fakeNode{
		seq: "GGGGGGGGG", name: "naive",
		children: []*fakeNode{
			{seq: "GGGGGTGGG", name: "leaf", abundance: 1},
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

	alg := mutability.Penalty(tab, sub, nil)
	total, err := dag.Optimum(d, alg)
	if err != nil {
		t.Fatalf("dag.Optimum: %v", err)
	}
	if total != 0 {
		t.Errorf("penalty = %v, want 0 (context unknown to table/substitution)", total)
	}
}
