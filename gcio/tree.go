// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gcio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/gctree/gwtree"
)

// rawNode is a gwtree.RawNode built from a tree TSV row.
type rawNode struct {
	seq       string
	abundance int
	name      string
	isotype   map[string]int
	children  []*rawNode
}

func (n *rawNode) Sequence() string        { return n.seq }
func (n *rawNode) Abundance() int          { return n.abundance }
func (n *rawNode) Name() string            { return n.name }
func (n *rawNode) Isotype() map[string]int { return n.isotype }
func (n *rawNode) Children() []gwtree.RawNode {
	out := make([]gwtree.RawNode, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// ReadRawTrees reads a collection of input trees from a tab-delimited
// file (spec §6's "input trees"), one row per node, mirroring the
// teacher's own tree-file shape (tree/node/parent/age/taxon) with
// sequence, abundance, and isotype columns in place of calibrated age.
//
// The TSV file must contain the following fields:
//
//   - tree, the name of the tree a row belongs to
//   - node, the ID of the node (unique within its tree)
//   - parent, the ID of the parent node (-1 for the root)
//   - sequence, the node's genotype sequence
//   - abundance, the node's observed clone count
//   - name, the node's identifier (may be empty for unobserved nodes)
//   - isotype, an optional "isotype:count,isotype:count,..." list
//
// Here is an example file:
//
//	# gctree input trees
//	tree	node	parent	sequence	abundance	name	isotype
//	clone1	0	-1	AAAA	0
//	clone1	1	0	AAAT	1	seq1	IgM:1
func ReadRawTrees(r io.Reader) (map[string]gwtree.RawNode, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("gcio: while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range []string{"tree", "node", "parent", "sequence", "abundance"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("gcio: expecting field %q", h)
		}
	}
	_, hasName := fields["name"]
	_, hasIsotype := fields["isotype"]

	type pending struct {
		node   *rawNode
		parent int
	}
	byTree := make(map[string]map[int]*pending)

	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("gcio: on row %d: %v", ln, err)
		}

		treeName := row[fields["tree"]]
		if treeName == "" {
			continue
		}
		nodeID, err := strconv.Atoi(row[fields["node"]])
		if err != nil {
			return nil, fmt.Errorf("gcio: on row %d: invalid node ID: %v", ln, err)
		}
		parentID, err := strconv.Atoi(row[fields["parent"]])
		if err != nil {
			return nil, fmt.Errorf("gcio: on row %d: invalid parent ID: %v", ln, err)
		}
		abundance, err := strconv.Atoi(row[fields["abundance"]])
		if err != nil {
			return nil, fmt.Errorf("gcio: on row %d: invalid abundance: %v", ln, err)
		}

		n := &rawNode{
			seq:       row[fields["sequence"]],
			abundance: abundance,
		}
		if hasName {
			n.name = row[fields["name"]]
		}
		if hasIsotype {
			iso, err := parseIsotype(row[fields["isotype"]])
			if err != nil {
				return nil, fmt.Errorf("gcio: on row %d: %v", ln, err)
			}
			n.isotype = iso
		}

		nodes, ok := byTree[treeName]
		if !ok {
			nodes = make(map[int]*pending)
			byTree[treeName] = nodes
		}
		nodes[nodeID] = &pending{node: n, parent: parentID}
	}

	out := make(map[string]gwtree.RawNode, len(byTree))
	for treeName, nodes := range byTree {
		var root *rawNode
		for id, p := range nodes {
			if p.parent == -1 {
				root = p.node
				continue
			}
			parent, ok := nodes[p.parent]
			if !ok {
				return nil, fmt.Errorf("gcio: tree %q: node %d references unknown parent %d", treeName, id, p.parent)
			}
			parent.node.children = append(parent.node.children, p.node)
		}
		if root == nil {
			return nil, fmt.Errorf("gcio: tree %q: no root node found", treeName)
		}
		out[treeName] = root
	}
	return out, nil
}

// WriteRawTrees writes a collection of trees, keyed by name, in the
// same tab-delimited shape ReadRawTrees reads (spec §6's "input
// trees"). A node's name field holds the first of its merged observed
// names, if any; isotype is written as "isotype:count,...", sorted by
// isotype name for a stable, diffable output.
func WriteRawTrees(w io.Writer, trees map[string]*gwtree.Tree) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"tree", "node", "parent", "sequence", "abundance", "name", "isotype"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("gcio: while writing header: %v", err)
	}

	names := make([]string, 0, len(trees))
	for n := range trees {
		names = append(names, n)
	}
	sortStrings(names)

	for _, tn := range names {
		t := trees[tn]
		ids := t.Nodes()
		sortInts(ids)
		for _, id := range ids {
			n := t.Node(id)
			parent := t.Parent(id)
			name := ""
			if ns := n.Names(); len(ns) > 0 {
				name = ns[0]
			}
			row := []string{
				tn,
				strconv.Itoa(id),
				strconv.Itoa(parent),
				n.Sequence(),
				strconv.Itoa(n.Abundance()),
				name,
				isotypeString(n.Isotype()),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("gcio: while writing tree %q node %d: %v", tn, id, err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("gcio: while writing data: %v", err)
	}
	return nil
}

func isotypeString(iso map[string]int) string {
	if len(iso) == 0 {
		return ""
	}
	keys := make([]string, 0, len(iso))
	for k := range iso {
		keys = append(keys, k)
	}
	sortStrings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%s:%d", k, iso[k])
	}
	return sb.String()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func parseIsotype(s string) (map[string]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	out := make(map[string]int)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("malformed isotype entry %q", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("malformed isotype count in %q: %v", part, err)
		}
		out[strings.TrimSpace(kv[0])] = n
	}
	return out, nil
}
