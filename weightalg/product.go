// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package weightalg

import "github.com/js-arias/gctree/dag"

// A Tuple2 is the joint weight of two composed algebras (spec §4.7:
// "all algebras are composable by tuple").
type Tuple2[A, B any] struct {
	A A
	B B
}

// A Tuple3 is the joint weight of three composed algebras.
type Tuple3[A, B, C any] struct {
	A A
	B B
	C C
}

// Product2 composes two weight algebras into one over their joint
// weight type. The accumulator and Start operate componentwise;
// Compare is left nil (component algebras generally disagree on
// optimization direction — e.g. log-likelihood is maximized while
// parsimony-style algebras are minimized — so a caller combining
// components into forest's ranking score does so explicitly, per spec
// §4.8, rather than through a single generic Compare).
func Product2[A, B any](a dag.Algebra[A], b dag.Algebra[B]) dag.Algebra[Tuple2[A, B]] {
	return dag.Algebra[Tuple2[A, B]]{
		Start: func() Tuple2[A, B] {
			return Tuple2[A, B]{A: a.Start(), B: b.Start()}
		},
		EdgeWeight: func(ctx dag.EdgeContext) (Tuple2[A, B], error) {
			aw, err := a.EdgeWeight(ctx)
			if err != nil {
				return Tuple2[A, B]{}, err
			}
			bw, err := b.EdgeWeight(ctx)
			if err != nil {
				return Tuple2[A, B]{}, err
			}
			return Tuple2[A, B]{A: aw, B: bw}, nil
		},
		Accum: func(x, y Tuple2[A, B]) Tuple2[A, B] {
			return Tuple2[A, B]{A: a.Accum(x.A, y.A), B: b.Accum(x.B, y.B)}
		},
	}
}

// Product3 composes three weight algebras into one over their joint
// weight type.
func Product3[A, B, C any](a dag.Algebra[A], b dag.Algebra[B], c dag.Algebra[C]) dag.Algebra[Tuple3[A, B, C]] {
	return dag.Algebra[Tuple3[A, B, C]]{
		Start: func() Tuple3[A, B, C] {
			return Tuple3[A, B, C]{A: a.Start(), B: b.Start(), C: c.Start()}
		},
		EdgeWeight: func(ctx dag.EdgeContext) (Tuple3[A, B, C], error) {
			aw, err := a.EdgeWeight(ctx)
			if err != nil {
				return Tuple3[A, B, C]{}, err
			}
			bw, err := b.EdgeWeight(ctx)
			if err != nil {
				return Tuple3[A, B, C]{}, err
			}
			cw, err := c.EdgeWeight(ctx)
			if err != nil {
				return Tuple3[A, B, C]{}, err
			}
			return Tuple3[A, B, C]{A: aw, B: bw, C: cw}, nil
		},
		Accum: func(x, y Tuple3[A, B, C]) Tuple3[A, B, C] {
			return Tuple3[A, B, C]{
				A: a.Accum(x.A, y.A),
				B: b.Accum(x.B, y.B),
				C: c.Accum(x.C, y.C),
			}
		},
	}
}

// A Tuple4 is the joint weight of four composed algebras — the shape
// forest's ranking (spec §4.8) needs to jointly trim on log-likelihood,
// isotype parsimony, mutability parsimony, and allele count at once.
type Tuple4[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// Product4 composes four weight algebras into one over their joint
// weight type. As with Product2/Product3, Compare is left nil: the
// caller supplies its own ranking-specific Compare over the resulting
// Tuple4 (spec §4.8's score combines the components with caller-given
// sign and coefficients, not a fixed direction).
func Product4[A, B, C, D any](a dag.Algebra[A], b dag.Algebra[B], c dag.Algebra[C], d dag.Algebra[D]) dag.Algebra[Tuple4[A, B, C, D]] {
	return dag.Algebra[Tuple4[A, B, C, D]]{
		Start: func() Tuple4[A, B, C, D] {
			return Tuple4[A, B, C, D]{A: a.Start(), B: b.Start(), C: c.Start(), D: d.Start()}
		},
		EdgeWeight: func(ctx dag.EdgeContext) (Tuple4[A, B, C, D], error) {
			aw, err := a.EdgeWeight(ctx)
			if err != nil {
				return Tuple4[A, B, C, D]{}, err
			}
			bw, err := b.EdgeWeight(ctx)
			if err != nil {
				return Tuple4[A, B, C, D]{}, err
			}
			cw, err := c.EdgeWeight(ctx)
			if err != nil {
				return Tuple4[A, B, C, D]{}, err
			}
			dw, err := d.EdgeWeight(ctx)
			if err != nil {
				return Tuple4[A, B, C, D]{}, err
			}
			return Tuple4[A, B, C, D]{A: aw, B: bw, C: cw, D: dw}, nil
		},
		Accum: func(x, y Tuple4[A, B, C, D]) Tuple4[A, B, C, D] {
			return Tuple4[A, B, C, D]{
				A: a.Accum(x.A, y.A),
				B: b.Accum(x.B, y.B),
				C: c.Accum(x.C, y.C),
				D: d.Accum(x.D, y.D),
			}
		},
	}
}
