// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package gwtree implements the collapsed-tree entity of the
// branching-process model: construction from a raw input tree, the
// collapse normalizer of spec §4.4, and Galton–Watson simulation.
//
// A Tree keeps its nodes in an int-keyed map, the same shape
// pruning.Tree uses for its own phylogenies: a node's identity is a
// small integer, parent/child relations live in the tree, not as
// pointers walked off the node itself.
package gwtree

import (
	"fmt"

	"github.com/js-arias/gctree/gcerr"
)

// PlaceholderName is the default name assigned to a node that has no
// observed identifier of its own. A Tree must never let this value
// leak into a finalized (collapsed) tree: Collapse replaces it with a
// canonical, sequence-keyed name before returning.
const PlaceholderName = "unnamed_seq"

// A RawNode is an externally supplied tree node, as produced by the
// parsimony program driver (out of scope for this module, per spec §6).
// Raw is a Tree; New walks it recursively, by the Children method.
type RawNode interface {
	Sequence() string
	Abundance() int
	Name() string
	Isotype() map[string]int
	Children() []RawNode
}

// A Node is a node in a collapsed tree.
type Node struct {
	id        int
	seq       string
	abundance int
	names     map[string]bool
	isotype   map[string]int
	dist      int // Hamming distance to the parent's sequence
	partition int

	parent   int // -1 for the root
	children []int
}

// ID returns the node's identifier within its tree.
func (n *Node) ID() int { return n.id }

// Sequence returns the node's sequence.
func (n *Node) Sequence() string { return n.seq }

// Abundance returns the node's abundance.
func (n *Node) Abundance() int { return n.abundance }

// Distance returns the Hamming distance to the parent's sequence. The
// root's distance is always 0.
func (n *Node) Distance() int { return n.dist }

// Names returns the sorted set of names merged into this node.
func (n *Node) Names() []string { return sortedKeys(n.names) }

// Isotype returns the node's isotype abundance map.
func (n *Node) Isotype() map[string]int {
	out := make(map[string]int, len(n.isotype))
	for k, v := range n.isotype {
		out[k] = v
	}
	return out
}

// Partition is abundance(n) + Σ partition(child): the canonical
// ladderization key used to order children (spec §3).
func (n *Node) Partition() int { return n.partition }

// A Tree is a collapsed-tree entity: a node map plus a root ID.
type Tree struct {
	nodes  map[int]*Node
	root   int
	nextID int
}

// New builds a Tree by copying an externally supplied raw tree.
// Root distance is set to 0; every other node's distance is left
// uncomputed until Collapse recomputes it from sequences (spec
// §4.4 step 3).
func New(raw RawNode) *Tree {
	t := &Tree{nodes: make(map[int]*Node)}
	t.root = t.copyNode(raw, -1)
	t.nodes[t.root].dist = 0
	return t
}

func (t *Tree) copyNode(raw RawNode, parent int) int {
	id := t.nextID
	t.nextID++

	n := &Node{
		id:        id,
		seq:       raw.Sequence(),
		abundance: raw.Abundance(),
		names:     make(map[string]bool),
		isotype:   make(map[string]int),
		parent:    parent,
	}
	if name := raw.Name(); name != "" {
		n.names[name] = true
	}
	for k, v := range raw.Isotype() {
		n.isotype[k] = v
	}
	t.nodes[id] = n

	for _, rc := range raw.Children() {
		cid := t.copyNode(rc, id)
		n.children = append(n.children, cid)
	}
	return id
}

// Root returns the root node's ID.
func (t *Tree) Root() int { return t.root }

// Node returns the node with the given ID, or nil if it does not exist.
func (t *Tree) Node(id int) *Node { return t.nodes[id] }

// Nodes returns the IDs of every node in the tree, in no particular
// order.
func (t *Tree) Nodes() []int {
	ids := make([]int, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	return ids
}

// Children returns the IDs of a node's children, in tree order.
func (t *Tree) Children(id int) []int {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return n.children
}

// Parent returns the ID of a node's parent, or -1 for the root.
func (t *Tree) Parent(id int) int {
	n, ok := t.nodes[id]
	if !ok {
		return -1
	}
	return n.parent
}

// IsRoot reports whether id is the tree's root.
func (t *Tree) IsRoot(id int) bool { return id == t.root }

// IsTerm reports whether id is a leaf (has no children).
func (t *Tree) IsTerm(id int) bool {
	n, ok := t.nodes[id]
	return ok && len(n.children) == 0
}

// ObservedNames returns the set of names attached to an observed node
// (abundance > 0), plus the root's own names regardless of its
// abundance (spec §4.4 step 4).
func (t *Tree) ObservedNames() map[string]bool {
	out := make(map[string]bool)
	for id, n := range t.nodes {
		if n.abundance > 0 || id == t.root {
			for name := range n.names {
				out[name] = true
			}
		}
	}
	return out
}

// sanityCheckNoPlaceholder returns an error if any node still carries
// the raw PlaceholderName after canonicalization.
func (t *Tree) sanityCheckNoPlaceholder() error {
	for id, n := range t.nodes {
		if n.names[PlaceholderName] {
			return fmt.Errorf("gwtree: %w: placeholder name leaked into node %d (sequence %q)", gcerr.ErrInvariantViolation, id, n.seq)
		}
	}
	return nil
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	// simple insertion sort: name sets are small (merged duplicates)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
