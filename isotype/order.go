// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package isotype implements isotype-switching parsimony (spec
// §4.7.3): an edge weight that counts the isotype transitions implied
// by a history, plus a reconciliation pass that assigns isotypes to
// unobserved ancestral nodes.
package isotype

// An Order is a total order on isotype names, most naive first. Rank
// returns a name's position; two names compare by rank, not by
// string value.
type Order []string

// DefaultOrder is the order used when a run does not supply its own:
// IgM, IgG3, IgG1, IgA1, IgG2, IgG4, IgE, IgA2.
var DefaultOrder = Order{
	"IgM", "IgG3", "IgG1", "IgA1", "IgG2", "IgG4", "IgE", "IgA2",
}

// Rank returns name's position in the order and whether it was
// found.
func (o Order) Rank(name string) (int, bool) {
	for i, n := range o {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Len is the number of isotypes in the order.
func (o Order) Len() int { return len(o) }
