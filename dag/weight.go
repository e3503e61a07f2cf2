// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package dag

import (
	"runtime"
	"sync"
)

// An EdgeContext is everything a weight algebra's edge-weight function
// needs to score one DAG edge (spec §4.7).
type EdgeContext struct {
	ParentLabel, ChildLabel Label
	ParentAttrs, ChildAttrs Attrs

	// SelfLabelChild is true if the child shares the parent's
	// sequence: a leaf-adjacency edge, contributing the empty CM
	// multiset under the CM-counter algebra (spec §4.7.1).
	SelfLabelChild bool

	// ChildNumClades is the number of distinct child-clade labels at
	// the child node itself: the "m" of the CM-counter algebra
	// before leaf-adjacency collapse.
	ChildNumClades int

	// ChildHasSelfClade is true if one of the child's own clades is
	// realized only by leaf-adjacent options sharing the child's
	// sequence: the "minus one" of the CM-counter algebra's m.
	ChildHasSelfClade bool

	// IsRoot is true only for the synthetic context returned by
	// DAG.RootContext, describing the DAG's own root rather than a
	// real edge.
	IsRoot bool
}

func selfClade(d *DAG, n *node) bool {
	for _, c := range n.clades {
		allSelf := len(c.options) > 0
		for _, opt := range c.options {
			if d.nodes[opt].label.Sequence != n.label.Sequence {
				allSelf = false
				break
			}
		}
		if allSelf {
			return true
		}
	}
	return false
}

func edgeContext(d *DAG, n, child *node) EdgeContext {
	return EdgeContext{
		ParentLabel: n.label, ChildLabel: child.label,
		ParentAttrs: n.attrs, ChildAttrs: child.attrs,
		SelfLabelChild:    child.label.Sequence == n.label.Sequence,
		ChildNumClades:    len(child.clades),
		ChildHasSelfClade: selfClade(d, child),
	}
}

// An Algebra is the (start, edge_weight, accum) triple of spec §4.7: a
// weight-algebra instance over weight type W. Compare orders two
// weights for optimal-weight annotation and trimming: Compare(a, b) < 0
// means a is strictly better than b. Algebras used only for
// WeightCount may leave Compare nil.
type Algebra[W any] struct {
	Start      func() W
	EdgeWeight func(EdgeContext) (W, error)
	Accum      func(acc, w W) W
	Compare    func(a, b W) int
}

// RootContext returns a synthetic EdgeContext describing the DAG's
// root node as if it were a child of an implicit, unlabeled ancestor.
// Every non-root node's own (label, clade-count) contribution is
// picked up by its parent's EdgeWeight call; the root has no parent
// edge, so algebras that need the root's own contribution (e.g.
// weightalg.LogLikelihood's root-pseudocount term) evaluate
// EdgeWeight(d.RootContext()) once, explicitly.
func (d *DAG) RootContext() EdgeContext {
	root := d.nodes[d.root]
	return EdgeContext{
		ChildLabel:        root.label,
		ChildAttrs:        root.attrs,
		ChildNumClades:    len(root.clades),
		ChildHasSelfClade: selfClade(d, root),
		IsRoot:            true,
	}
}

// Optimum returns the optimal whole-DAG weight: the root's own
// contribution combined with the optimal weight of its subtree.
func Optimum[W any](d *DAG, alg Algebra[W]) (W, error) {
	annotated := OptimalWeightAnnotate(d, alg)
	rw, err := alg.EdgeWeight(d.RootContext())
	if err != nil {
		return rw, err
	}
	return alg.Accum(rw, annotated[d.root]), nil
}

// WeightCount returns the multiset of weights over every history in d,
// each paired with the number of histories producing it (spec
// §4.7 weight_count). Weights are grouped by a caller-supplied key
// function, since W may not be comparable. The root's own contribution
// (see RootContext) is folded into every entry.
func WeightCount[W any](d *DAG, alg Algebra[W], key func(W) string) map[string]struct {
	Weight W
	N      int
} {
	memo := make(map[int]map[string]struct {
		Weight W
		N      int
	})
	var eval func(id int) map[string]struct {
		Weight W
		N      int
	}
	eval = func(id int) map[string]struct {
		Weight W
		N      int
	} {
		if m, ok := memo[id]; ok {
			return m
		}
		n := d.nodes[id]
		acc := map[string]struct {
			Weight W
			N      int
		}{"": {Weight: alg.Start(), N: 1}}

		for _, c := range n.clades {
			next := make(map[string]struct {
				Weight W
				N      int
			})
			for _, opt := range c.options {
				child := d.nodes[opt]
				ctx := edgeContext(d, n, child)
				ew, err := alg.EdgeWeight(ctx)
				if err != nil {
					continue
				}
				sub := eval(opt)
				for _, cur := range acc {
					for _, s := range sub {
						w := alg.Accum(cur.Weight, alg.Accum(ew, s.Weight))
						k := key(w)
						e := next[k]
						e.Weight = w
						e.N += cur.N * s.N
						next[k] = e
					}
				}
			}
			acc = next
		}
		memo[id] = acc
		return acc
	}

	sub := eval(d.root)
	rw, err := alg.EdgeWeight(d.RootContext())
	if err != nil {
		rw = alg.Start()
	}
	out := make(map[string]struct {
		Weight W
		N      int
	}, len(sub))
	for _, e := range sub {
		w := alg.Accum(rw, e.Weight)
		k := key(w)
		cur := out[k]
		cur.Weight = w
		cur.N += e.N
		out[k] = cur
	}
	return out
}

// OptimalWeightAnnotate computes, for every DAG node, the optimal
// (per alg.Compare) weight of the subtree rooted there (spec §4.7
// optimal_weight_annotate). It is evaluated bottom-up, level by level,
// with a bounded goroutine pool fanning out the independent nodes of
// each level — the same channel/WaitGroup idiom used elsewhere in this
// module's worker pools.
func OptimalWeightAnnotate[W any](d *DAG, alg Algebra[W]) map[int]W {
	levels := topoLevels(d)

	annotated := make(map[int]W, len(d.nodes))
	var mu sync.Mutex

	cpu := runtime.NumCPU()
	for _, level := range levels {
		jobs := make(chan int, len(level))
		var wg sync.WaitGroup
		for w := 0; w < cpu; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for id := range jobs {
					w := optimalAt(d, alg, id, annotated, &mu)
					mu.Lock()
					annotated[id] = w
					mu.Unlock()
				}
			}()
		}
		for _, id := range level {
			jobs <- id
		}
		close(jobs)
		wg.Wait()
	}

	return annotated
}

func optimalAt[W any](d *DAG, alg Algebra[W], id int, annotated map[int]W, mu *sync.Mutex) W {
	n := d.nodes[id]
	acc := alg.Start()
	for _, c := range n.clades {
		var best W
		haveBest := false
		for _, opt := range c.options {
			child := d.nodes[opt]
			ctx := edgeContext(d, n, child)
			ew, err := alg.EdgeWeight(ctx)
			if err != nil {
				continue
			}
			mu.Lock()
			sub := annotated[opt]
			mu.Unlock()
			cand := alg.Accum(ew, sub)
			if !haveBest || alg.Compare(cand, best) < 0 {
				best = cand
				haveBest = true
			}
		}
		if haveBest {
			acc = alg.Accum(acc, best)
		}
	}
	return acc
}

// TrimOptimalWeight returns a copy of d restricted to exactly those
// histories achieving the optimal weight (spec §4.7
// trim_optimal_weight): every clade's option list is narrowed to the
// child (or children, in case of ties) realizing the clade's own
// optimum.
func TrimOptimalWeight[W any](d *DAG, alg Algebra[W]) *DAG {
	annotated := OptimalWeightAnnotate(d, alg)

	out := &DAG{
		nodes:           make(map[int]*node, len(d.nodes)),
		byKey:           d.byKey,
		root:            d.root,
		nextID:          d.nextID,
		ParsimonyWeight: d.ParsimonyWeight,
	}
	for id, n := range d.nodes {
		cp := &node{id: n.id, label: n.label, attrs: n.attrs, leaves: n.leaves, isLeaf: n.isLeaf}
		for _, c := range n.clades {
			var bestOpts []int
			var best W
			haveBest := false
			for _, opt := range c.options {
				child := d.nodes[opt]
				ctx := edgeContext(d, n, child)
				ew, err := alg.EdgeWeight(ctx)
				if err != nil {
					continue
				}
				cand := alg.Accum(ew, annotated[opt])
				switch {
				case !haveBest || alg.Compare(cand, best) < 0:
					best = cand
					bestOpts = []int{opt}
					haveBest = true
				case alg.Compare(cand, best) == 0:
					bestOpts = append(bestOpts, opt)
				}
			}
			cp.clades = append(cp.clades, &clade{leaves: c.leaves, options: bestOpts})
		}
		out.nodes[id] = cp
	}
	return out
}

// topoLevels groups every reachable node by its longest distance to a
// leaf: level 0 is leaves, level k contains nodes whose children are
// all in levels < k. Nodes within a level are mutually independent and
// can be evaluated concurrently.
func topoLevels(d *DAG) [][]int {
	height := make(map[int]int)
	var compute func(id int) int
	compute = func(id int) int {
		if h, ok := height[id]; ok {
			return h
		}
		n := d.nodes[id]
		h := 0
		for _, c := range n.clades {
			for _, opt := range c.options {
				ch := compute(opt) + 1
				if ch > h {
					h = ch
				}
			}
		}
		height[id] = h
		return h
	}

	maxH := 0
	for id := range d.nodes {
		if h := compute(id); h > maxH {
			maxH = h
		}
	}

	levels := make([][]int, maxH+1)
	for id, h := range height {
		levels[h] = append(levels[h], id)
	}
	return levels
}
