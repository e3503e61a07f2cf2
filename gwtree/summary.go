// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gwtree

import "github.com/js-arias/gctree/cm"

// CMSummary walks a collapsed tree and returns its (c, m) multiset
// (spec §3): for every node, c = abundance and m = number of children,
// with the root's own pair going through cm.RootPseudocount before
// being added to the multiset.
func (t *Tree) CMSummary() cm.Multiset {
	var ms cm.Multiset
	t.walkSummary(t.root, &ms)
	return ms
}

func (t *Tree) walkSummary(id int, ms *cm.Multiset) {
	n := t.nodes[id]
	c, m := n.abundance, len(n.children)

	if id == t.root {
		c, m = cm.RootPseudocount(c, m)
	}
	*ms = ms.Add(cm.Pair{C: c, M: m})

	for _, cid := range n.children {
		t.walkSummary(cid, ms)
	}
}
