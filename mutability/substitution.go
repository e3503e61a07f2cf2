// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

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

// A Substitution is a per-context target distribution: given that the
// central base of a context mutates, the probability it mutates to
// each of the other three bases.
type Substitution struct {
	k      int
	target map[string]map[byte]float64
}

// K returns the context length of the substitution model.
func (s *Substitution) K() int { return s.k }

// Target returns the probability that context's central base mutates
// to to, and whether the context was present in the model.
func (s *Substitution) Target(context string, to byte) (float64, bool) {
	m, ok := s.target[strings.ToUpper(context)]
	if !ok {
		return 0, false
	}
	p, ok := m[to]
	return p, ok
}

// ReadSubstitution reads a substitution model from a TSV stream with
// fields "context", "to", and "probability".
//
// Here is an example file:
//
//	context	to	probability
//	AAAAA	C	0.22
//	AAAAA	G	0.61
//	AAAAA	T	0.17
func ReadSubstitution(r io.Reader) (*Substitution, error) {
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
	for _, h := range []string{"context", "to", "probability"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("mutability: %w: expecting field %q", gcerr.ErrInvalidInput, h)
		}
	}

	s := &Substitution{target: make(map[string]map[byte]float64)}
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
		if s.k == 0 {
			s.k = len(ctx)
		}
		if len(ctx) != s.k {
			return nil, fmt.Errorf("mutability: %w: row %d: context %q has length %d, want %d", gcerr.ErrInvalidInput, ln, ctx, len(ctx), s.k)
		}

		to := strings.ToUpper(strings.TrimSpace(row[fields["to"]]))
		if len(to) != 1 {
			return nil, fmt.Errorf("mutability: %w: row %d: %q is not a single base", gcerr.ErrInvalidInput, ln, to)
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(row[fields["probability"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("mutability: on row %d: %v", ln, err)
		}

		m, ok := s.target[ctx]
		if !ok {
			m = make(map[byte]float64)
			s.target[ctx] = m
		}
		m[to[0]] = p
	}
	if s.k == 0 {
		return nil, fmt.Errorf("mutability: %w: empty substitution model", gcerr.ErrInvalidInput)
	}
	return s, nil
}
