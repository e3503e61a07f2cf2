// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/seqdist"
)

// AmbiguityGuard is the default threshold on the implicit count of
// histories times per-node sequence resolutions above which New falls
// back to per-tree disambiguation instead of DAG-wide disambiguation
// (spec §4.6 step 4).
const AmbiguityGuard = 5_000_000

// Options configures New.
type Options struct {
	// Resolve disambiguates an ambiguous sequence into its possible
	// concrete resolutions. A nil Resolve skips disambiguation
	// entirely (every input sequence is assumed unambiguous).
	Resolve func(seq string) []string

	// AmbiguityGuard overrides AmbiguityGuard; zero uses the
	// default.
	AmbiguityGuard int
}

// New builds a history DAG from a set of collapsed, equal-parsimony
// trees sharing a root sequence (spec §4.6).
func New(trees []*gwtree.Tree, opts Options) (*DAG, []error, error) {
	if len(trees) == 0 {
		return nil, nil, fmt.Errorf("dag: %w: empty tree list", gcerr.ErrInvalidInput)
	}
	guard := opts.AmbiguityGuard
	if guard == 0 {
		guard = AmbiguityGuard
	}

	var warnings []error

	weights := make(map[int]bool)
	for _, t := range trees {
		weights[hammingWeight(t)] = true
	}
	if len(weights) > 1 {
		return nil, warnings, fmt.Errorf("dag: %w: input trees have %d distinct parsimony weights, want 1", gcerr.ErrInvariantViolation, len(weights))
	}

	resolve := opts.Resolve

	// Step 2: leaves are always disambiguated by an arbitrary pick
	// (the first IUPAC resolution), independent of the guard below;
	// leaf sequences are never expanded into multiple DAG options.
	leafAmbiguous := false
	if resolve != nil {
		for _, t := range trees {
			for _, id := range t.Nodes() {
				if t.IsTerm(id) && len(resolve(t.Node(id).Sequence())) > 1 {
					leafAmbiguous = true
				}
			}
		}
	}
	if leafAmbiguous {
		warnings = append(warnings, fmt.Errorf("dag: %w: leaf disambiguation choice is arbitrary", gcerr.ErrNumericWarning))
	}

	// Step 4: internal-node ambiguity is the one that actually
	// multiplies out into extra histories, so the guard is estimated
	// from internal (non-leaf) node resolutions only. Below the
	// guard, every resolution of every ambiguous internal node is
	// kept as an alternative DAG label (fullExpand); above it, New
	// falls back to the same arbitrary-first-resolution pick used
	// for leaves.
	fullExpand := false
	if resolve != nil {
		estimate := len(trees)
		maxRes := 1
		for _, t := range trees {
			for _, id := range t.Nodes() {
				if t.IsTerm(id) {
					continue
				}
				if r := len(resolve(t.Node(id).Sequence())); r > maxRes {
					maxRes = r
				}
			}
		}
		estimate *= maxRes
		if estimate > guard {
			warnings = append(warnings, fmt.Errorf("dag: %w: ambiguity estimate %d exceeds guard %d, falling back to per-tree disambiguation", gcerr.ErrCapacityWarning, estimate, guard))
		} else {
			fullExpand = true
		}
	}

	d := newDAG()
	for _, t := range trees {
		d.mergeTree(t, resolve, fullExpand)
	}

	// Step 5: recombine the merged trees into a genuine history DAG
	// (every edge compatible with the clade structure and adjacent
	// labels), then trim to the Hamming-parsimony optimum.
	d.addCompatibleEdges()
	d = TrimOptimalWeight(d, hammingParsimonyAlgebra())

	// Step 6.
	if err := d.enforceLeafAdjacency(); err != nil {
		return nil, warnings, err
	}

	d.ParsimonyWeight = hammingWeight(trees[0])

	return d, warnings, nil
}

func hammingWeight(t *gwtree.Tree) int {
	total := 0
	for _, id := range t.Nodes() {
		if t.IsRoot(id) {
			continue
		}
		total += t.Node(id).Distance()
	}
	return total
}

// hammingParsimonyAlgebra is the weight algebra New uses internally to
// trim the edge-compatibility-expanded DAG down to the Hamming-
// parsimony-optimal histories (spec §4.6 step 5), before any of the
// weightalg package's algebras ever see it. An edge between labels of
// mismatched length is not a valid mutation step; EdgeWeight reports
// an error for it, which OptimalWeightAnnotate and TrimOptimalWeight
// already treat as "not a candidate" — so the same pass that trims to
// the parsimony optimum also enforces label-length compatibility.
func hammingParsimonyAlgebra() Algebra[int] {
	return Algebra[int]{
		Start: func() int { return 0 },
		EdgeWeight: func(ctx EdgeContext) (int, error) {
			if ctx.IsRoot {
				return 0, nil
			}
			return seqdist.HammingDistance(ctx.ParentLabel.Sequence, ctx.ChildLabel.Sequence)
		},
		Accum: func(acc, w int) int { return acc + w },
		Compare: func(a, b int) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		},
	}
}

// addCompatibleEdges implements spec §4.6 step 5's "add every edge
// compatible with the clade structure": every node sharing a clade's
// leaf-set is added as an additional option for that clade, regardless
// of which input tree it came from. This is the recombination step
// that turns the union of the merged trees into a real history DAG
// instead of a trie of the literal inputs — without it, no history can
// combine a subtree from one input tree with a sibling subtree from
// another.
//
// A candidate is only added when its own leaf span is strictly
// smaller than the clade owner's: leaf spans strictly shrink along any
// edge already in the DAG, so this guarantees the expansion can never
// introduce a cycle. The degenerate case of two equal-span
// unifurcating nodes is left to the leaf-adjacency pass instead.
func (d *DAG) addCompatibleEdges() {
	byLeaves := make(map[string][]int, len(d.nodes))
	for id, n := range d.nodes {
		byLeaves[n.leaves] = append(byLeaves[n.leaves], id)
	}
	for _, n := range d.nodes {
		for _, c := range n.clades {
			if leafCount(c.leaves) >= leafCount(n.leaves) {
				continue
			}
			for _, cand := range byLeaves[c.leaves] {
				if cand == n.id {
					continue
				}
				c.addOption(cand)
			}
		}
	}
}

func leafCount(key string) int {
	if key == "" {
		return 0
	}
	return strings.Count(key, "\x00") + 1
}

// subtreeLeaves returns the set of observed leaf names under id,
// including id's own names if it has positive abundance.
func subtreeLeaves(t *gwtree.Tree, id int) map[string]bool {
	out := make(map[string]bool)
	var walk func(int)
	walk = func(id int) {
		n := t.Node(id)
		if n.Abundance() > 0 {
			for _, name := range n.Names() {
				out[name] = true
			}
		}
		for _, c := range t.Children(id) {
			walk(c)
		}
	}
	walk(id)
	return out
}

// leafResolution describes how a leaf participates in the DAG after
// spec §4.6 step 2's per-tree leaf disambiguation: its resolved
// sequence, its (possibly summed) abundance, the names attached to it,
// or, if it was folded into a sibling leaf sharing the same resolved
// sequence, that it contributes nothing of its own.
type leafResolution struct {
	seq        string
	abundance  int
	names      []string
	suppressed bool
}

// resolveLeaves disambiguates every leaf of t (arbitrarily, the first
// IUPAC resolution — the choice is arbitrary and reported as a warning
// by the caller) and then merges sibling leaves — leaves sharing both
// a parent and a resolved sequence — summing their abundance and
// preferring, as the representative, whichever one is named after the
// tree's own root.
func resolveLeaves(t *gwtree.Tree, resolve func(string) []string) map[int]*leafResolution {
	out := make(map[int]*leafResolution)
	if resolve == nil {
		return out
	}

	rootName := ""
	if ns := t.Node(t.Root()).Names(); len(ns) > 0 {
		rootName = ns[0]
	}

	type group struct {
		parent int
		seq    string
	}
	groups := make(map[group][]int)
	for _, id := range t.Nodes() {
		if !t.IsTerm(id) {
			continue
		}
		seq := t.Node(id).Sequence()
		if rs := resolve(seq); len(rs) > 0 {
			seq = rs[0]
		}
		g := group{parent: t.Parent(id), seq: seq}
		groups[g] = append(groups[g], id)
	}

	for g, ids := range groups {
		total := 0
		names := make(map[string]bool)
		for _, id := range ids {
			nd := t.Node(id)
			total += nd.Abundance()
			for _, nm := range nd.Names() {
				names[nm] = true
			}
		}
		rep := ids[0]
		if rootName != "" {
			for _, id := range ids {
				for _, nm := range t.Node(id).Names() {
					if nm == rootName {
						rep = id
					}
				}
			}
		}
		nameList := make([]string, 0, len(names))
		for nm := range names {
			nameList = append(nameList, nm)
		}
		sort.Strings(nameList)
		for _, id := range ids {
			if id == rep {
				out[id] = &leafResolution{seq: g.seq, abundance: total, names: nameList}
			} else {
				out[id] = &leafResolution{suppressed: true}
			}
		}
	}
	return out
}

// mergeTree walks t and folds every node into d, keyed by (leaf-set,
// label). resolve, when non-nil, disambiguates sequences before they
// are merged: leaves always through resolveLeaves' arbitrary pick and
// dedup (spec §4.6 step 2); internal nodes through every resolution
// when fullExpand is true (spec §4.6 step 4's DAG-wide expansion), or
// through the same arbitrary first-resolution pick otherwise (step
// 4's per-tree fallback).
func (d *DAG) mergeTree(t *gwtree.Tree, resolve func(string) []string, fullExpand bool) {
	// Root pseudo-leaf (spec §4.6 step 1): ensures the observed root
	// genotype survives collapse and is representable as a leaf.
	rootNode := t.Node(t.Root())
	pseudoLeafName := "__root_pseudo_leaf__"

	leaves := resolveLeaves(t, resolve)

	var walk func(id int) []int // returns the DAG node IDs realizing id
	walk = func(id int) []int {
		n := t.Node(id)
		children := t.Children(id)
		isLeaf := len(children) == 0

		var seqs []string
		abundance := n.Abundance()
		names := n.Names()

		switch {
		case isLeaf && resolve != nil:
			lr := leaves[id]
			if lr.suppressed {
				return nil
			}
			seqs = []string{lr.seq}
			abundance = lr.abundance
			names = lr.names
		case !isLeaf && resolve != nil:
			opts := resolve(n.Sequence())
			switch {
			case len(opts) == 0:
				seqs = []string{n.Sequence()}
			case fullExpand:
				seqs = opts
			default:
				seqs = []string{opts[0]}
			}
		default:
			seqs = []string{n.Sequence()}
		}

		leafSpan := leafKey(subtreeLeaves(t, id))

		type childClade struct {
			leaves string
			ids    []int
		}
		var childClades []childClade
		for _, c := range children {
			cids := walk(c)
			if len(cids) == 0 {
				continue
			}
			childClades = append(childClades, childClade{leaves: leafKey(subtreeLeaves(t, c)), ids: cids})
		}

		ids := make([]int, 0, len(seqs))
		for _, seq := range seqs {
			key := fmt.Sprintf("%s|%s|%d", leafSpan, seq, abundance)
			did, ok := d.byKey[key]
			if !ok {
				did = d.nextID
				d.nextID++
				dn := &node{
					id:     did,
					label:  Label{Sequence: seq, Abundance: abundance},
					attrs:  newAttrs(),
					leaves: leafSpan,
				}
				d.nodes[did] = dn
				d.byKey[key] = did
			}
			dn := d.nodes[did]
			for _, name := range names {
				dn.attrs.Names[name] = true
			}
			for k, v := range n.Isotype() {
				if v > dn.attrs.Isotype[k] {
					dn.attrs.Isotype[k] = v
				}
			}
			dn.attrs.OriginalIDs[id] = true

			if t.IsRoot(id) {
				// Attach the root pseudo-leaf as an extra, singleton
				// clade realized by a fresh leaf node carrying the
				// root's own label.
				plKey := fmt.Sprintf("%s|%s|%d|pseudo", pseudoLeafName, rootNode.Sequence(), rootNode.Abundance())
				plID, ok := d.byKey[plKey]
				if !ok {
					plID = d.nextID
					d.nextID++
					pl := &node{
						id:     plID,
						label:  Label{Sequence: rootNode.Sequence(), Abundance: rootNode.Abundance()},
						attrs:  newAttrs(),
						leaves: leafKey(map[string]bool{pseudoLeafName: true}),
						isLeaf: true,
					}
					pl.attrs.Names[pseudoLeafName] = true
					d.nodes[plID] = pl
					d.byKey[plKey] = plID
				}
				cl := dn.clade(d.nodes[plID].leaves)
				cl.addOption(plID)
			}

			dn.isLeaf = len(childClades) == 0
			for _, cc := range childClades {
				cl := dn.clade(cc.leaves)
				for _, cid := range cc.ids {
					cl.addOption(cid)
				}
			}
			ids = append(ids, did)
		}
		return ids
	}

	rids := walk(t.Root())
	if !d.rootSet && len(rids) > 0 {
		d.root = rids[0]
		d.rootSet = true
	}
}

// enforceLeafAdjacency implements spec §4.6 step 6 and the leaf-
// adjacency DAG invariant: every internal node with positive abundance
// must have a leaf child sharing its own sequence. Nodes missing one
// get a synthetic zero-distance leaf child added, generalizing the
// root pseudo-leaf of step 1 to every observed internal node.
func (d *DAG) enforceLeafAdjacency() error {
	for id, n := range d.nodes {
		if n.label.Abundance <= 0 || n.isLeaf {
			continue
		}
		hasMatchingLeaf := false
		for _, c := range n.clades {
			for _, opt := range c.options {
				on := d.nodes[opt]
				if on.isLeaf && on.label.Sequence == n.label.Sequence {
					hasMatchingLeaf = true
				}
			}
		}
		if hasMatchingLeaf {
			continue
		}
		plID := d.nextID
		d.nextID++
		plName := fmt.Sprintf("__leaf_adjacent_%d__", id)
		pl := &node{
			id:     plID,
			label:  n.label,
			attrs:  newAttrs(),
			leaves: leafKey(map[string]bool{plName: true}),
			isLeaf: true,
		}
		pl.attrs.Names[plName] = true
		d.nodes[plID] = pl
		cl := n.clade(pl.leaves)
		cl.addOption(plID)
	}
	return nil
}

// ResolveIUPAC is a convenience Options.Resolve implementation built
// on seqdist.Resolve: each ambiguous position is expanded
// independently, and the cartesian product of per-position
// resolutions is returned.
func ResolveIUPAC(seq string) []string {
	out := []string{""}
	for _, ch := range seq {
		opts := seqdist.Resolve(byte(ch))
		next := make([]string, 0, len(out)*len(opts))
		for _, prefix := range out {
			for _, o := range opts {
				next = append(next, prefix+string(o))
			}
		}
		out = next
	}
	return out
}
