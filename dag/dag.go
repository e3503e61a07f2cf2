// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dag implements the history DAG (spec §3, §4.6-4.7): an
// implicit DAG whose histories — maximal subgraphs realizing exactly
// one edge per child-clade at every node — correspond one-to-one to
// candidate collapsed trees. Many trees sharing subclades share DAG
// nodes and edges, giving storage sub-exponential in the number of
// histories.
package dag

import "sort"

// A Label identifies a DAG node's genotype: its sequence and observed
// abundance. Two tree nodes with the same label are the same DAG node.
type Label struct {
	Sequence  string
	Abundance int
}

// Attrs carries the non-label annotations merged onto a DAG node: the
// names observed for it, its isotype abundance map, and the IDs of the
// original tree nodes it was built from.
type Attrs struct {
	Names       map[string]bool
	Isotype     map[string]int
	OriginalIDs map[int]bool
}

func newAttrs() Attrs {
	return Attrs{
		Names:       make(map[string]bool),
		Isotype:     make(map[string]int),
		OriginalIDs: make(map[int]bool),
	}
}

func (a Attrs) merge(b Attrs) {
	for n := range b.Names {
		a.Names[n] = true
	}
	for k, v := range b.Isotype {
		if v > a.Isotype[k] {
			a.Isotype[k] = v
		}
	}
	for id := range b.OriginalIDs {
		a.OriginalIDs[id] = true
	}
}

// A clade groups the alternative child nodes that realize the same
// partition of observed leaf taxa under a DAG node. Histories choose
// exactly one option per clade.
type clade struct {
	leaves  string // canonical, sorted, NUL-joined leaf-name key
	options []int  // DAG node IDs, deduplicated
}

func (c *clade) addOption(id int) {
	for _, o := range c.options {
		if o == id {
			return
		}
	}
	c.options = append(c.options, id)
}

// A node is a DAG node: a label, its merged attributes, and the
// clades of its children.
type node struct {
	id      int
	label   Label
	attrs   Attrs
	leaves  string // this node's own leaf-set key, as a child of its parent
	clades  []*clade
	isRoot  bool
	isLeaf  bool // true if this node has no clades (a DAG leaf)
}

func (n *node) clade(leafKey string) *clade {
	for _, c := range n.clades {
		if c.leaves == leafKey {
			return c
		}
	}
	c := &clade{leaves: leafKey}
	n.clades = append(n.clades, c)
	return c
}

// A DAG is a history DAG built from a set of equal-parsimony collapsed
// trees sharing a root label.
type DAG struct {
	nodes   map[int]*node
	byKey   map[string]int // Label + leaf-set key -> node ID
	root    int
	rootSet bool
	nextID  int

	// ParsimonyWeight is the Hamming parsimony weight shared by
	// every input tree (spec §4.6 step 7 validates this).
	ParsimonyWeight int
}

func newDAG() *DAG {
	return &DAG{
		nodes: make(map[int]*node),
		byKey: make(map[string]int),
	}
}

// Root returns the DAG's root node ID.
func (d *DAG) Root() int { return d.root }

// Label returns the label of a DAG node.
func (d *DAG) Label(id int) Label { return d.nodes[id].label }

// Attrs returns a copy of a DAG node's attributes.
func (d *DAG) Attrs(id int) Attrs {
	n := d.nodes[id]
	out := newAttrs()
	out.merge(n.attrs)
	return out
}

// IsLeaf reports whether a DAG node has no clades of its own (it is a
// sink: every history ends there).
func (d *DAG) IsLeaf(id int) bool { return d.nodes[id].isLeaf }

// Nodes returns the IDs of every node in the DAG, in no particular
// order.
func (d *DAG) Nodes() []int {
	ids := make([]int, 0, len(d.nodes))
	for id := range d.nodes {
		ids = append(ids, id)
	}
	return ids
}

// Clades returns, for a node, one leaf-set key per clade together with
// the node IDs that can realize it.
func (d *DAG) Clades(id int) map[string][]int {
	n := d.nodes[id]
	out := make(map[string][]int, len(n.clades))
	for _, c := range n.clades {
		opts := make([]int, len(c.options))
		copy(opts, c.options)
		out[c.leaves] = opts
	}
	return out
}

func leafKey(leaves map[string]bool) string {
	names := make([]string, 0, len(leaves))
	for n := range leaves {
		names = append(names, n)
	}
	sort.Strings(names)
	key := ""
	for i, n := range names {
		if i > 0 {
			key += "\x00"
		}
		key += n
	}
	return key
}
