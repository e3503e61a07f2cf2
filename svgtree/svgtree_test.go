// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package svgtree_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/isotype"
	"github.com/js-arias/gctree/svgtree"
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
			{seq: "AAAT", name: "a", abundance: 1, isotype: map[string]int{"IgG1": 2}},
			{seq: "AATT", name: "b", abundance: 1, isotype: map[string]int{"IgM": 1}},
		},
	}
	tr := gwtree.New(raw)
	if _, err := gwtree.Collapse(tr, gwtree.CollapseOptions{}); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	return tr
}

func TestRenderProducesSVG(t *testing.T) {
	tr := buildTree(t)
	var buf bytes.Buffer
	if err := svgtree.Render(tr, isotype.DefaultOrder, &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Errorf("Render output missing <svg tag: %q", out)
	}
	if !strings.Contains(out, "<circle") {
		t.Errorf("Render output missing node circles: %q", out)
	}
}
