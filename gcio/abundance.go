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
)

// ReadAbundance reads a sequence-to-abundance map from a TSV file
// (spec §6's "sequence-to-abundance map"), used to stamp leaf
// abundances in history DAG construction.
//
// The TSV file must contain the following fields:
//
//   - sequence, the genotype sequence
//   - abundance, the non-negative integer count of observed clones
//
// Here is an example file:
//
//	sequence	abundance
//	AATCGG...	3
//	AATCGA...	1
func ReadAbundance(r io.Reader) (map[string]int, error) {
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
	for _, h := range []string{"sequence", "abundance"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("gcio: expecting field %q", h)
		}
	}

	out := make(map[string]int)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("gcio: on row %d: %v", ln, err)
		}

		seq := row[fields["sequence"]]
		if seq == "" {
			continue
		}
		n, err := strconv.Atoi(row[fields["abundance"]])
		if err != nil {
			return nil, fmt.Errorf("gcio: on row %d: invalid abundance: %v", ln, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("gcio: on row %d: negative abundance %d", ln, n)
		}
		out[seq] = n
	}
	return out, nil
}

// ReadIsotype reads a per-taxon isotype abundance map from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - taxon, the observed node's name
//   - isotype, the isotype name (e.g. IgM, IgG1)
//   - abundance, the non-negative integer count for that isotype
//
// Here is an example file:
//
//	taxon	isotype	abundance
//	seq1	IgM	2
//	seq1	IgG1	1
func ReadIsotype(r io.Reader) (map[string]map[string]int, error) {
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
	for _, h := range []string{"taxon", "isotype", "abundance"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("gcio: expecting field %q", h)
		}
	}

	out := make(map[string]map[string]int)
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("gcio: on row %d: %v", ln, err)
		}

		taxon := row[fields["taxon"]]
		if taxon == "" {
			continue
		}
		iso := row[fields["isotype"]]
		n, err := strconv.Atoi(row[fields["abundance"]])
		if err != nil {
			return nil, fmt.Errorf("gcio: on row %d: invalid abundance: %v", ln, err)
		}
		m, ok := out[taxon]
		if !ok {
			m = make(map[string]int)
			out[taxon] = m
		}
		m[iso] = n
	}
	return out, nil
}
