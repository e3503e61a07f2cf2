// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mutability implements the context-sensitive mutability
// weight algebra (spec §4.7.4): an edge weight that penalizes a
// history by the log-probability of the k-mer substitutions its edges
// imply, given an external per-context mutability rate and a
// per-context substitution target distribution.
package mutability

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/gctree/gcerr"
)

// A Table is a per-context mutability rate model: for every observed
// k-mer context, the relative rate at which its central position
// mutates.
type Table struct {
	k    int
	rate map[string]float64
}

// K returns the context length (k-mer size) of the table.
func (t *Table) K() int { return t.k }

// Rate returns the mutability rate of a context, and whether the
// context was present in the table.
func (t *Table) Rate(context string) (float64, bool) {
	r, ok := t.rate[strings.ToUpper(context)]
	return r, ok
}

// ReadTable reads a mutability table from a TSV stream with fields
// "context" and "mutability". Every context must have the same
// length; that length becomes the table's K.
//
// Here is an example file:
//
//	context	mutability
//	AAAAA	0.411
//	AAAAC	0.885
//	AAAAG	1.219
func ReadTable(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("mutability: while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range []string{"context", "mutability"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("mutability: %w: expecting field %q", gcerr.ErrInvalidInput, h)
		}
	}

	t := &Table{rate: make(map[string]float64)}
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("mutability: on row %d: %v", ln, err)
		}

		ctx := strings.ToUpper(strings.TrimSpace(row[fields["context"]]))
		if ctx == "" {
			continue
		}
		if t.k == 0 {
			t.k = len(ctx)
		}
		if len(ctx) != t.k {
			return nil, fmt.Errorf("mutability: %w: row %d: context %q has length %d, want %d", gcerr.ErrInvalidInput, ln, ctx, len(ctx), t.k)
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(row[fields["mutability"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("mutability: on row %d: %v", ln, err)
		}
		t.rate[ctx] = rate
	}
	if t.k == 0 {
		return nil, fmt.Errorf("mutability: %w: empty mutability table", gcerr.ErrInvalidInput)
	}
	return t, nil
}
