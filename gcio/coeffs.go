// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gcio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/gctree/forest"
)

// ReadRankCoeffs reads the forest-ranking coefficients of spec §4.8
// from a single-row TSV file.
//
// The TSV file must contain the following fields:
//
//   - isotype, the coefficient weighting isotype parsimony
//   - mutability, the coefficient weighting mutability parsimony
//   - alleles, the coefficient weighting allele count
//
// Here is an example file:
//
//	isotype	mutability	alleles
//	1.0	0.1	0.01
func ReadRankCoeffs(r io.Reader) (forest.RankCoeffs, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return forest.RankCoeffs{}, fmt.Errorf("gcio: while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range []string{"isotype", "mutability", "alleles"} {
		if _, ok := fields[h]; !ok {
			return forest.RankCoeffs{}, fmt.Errorf("gcio: expecting field %q", h)
		}
	}

	row, err := tab.Read()
	if err != nil {
		return forest.RankCoeffs{}, fmt.Errorf("gcio: while reading coefficient row: %v", err)
	}

	parse := func(name string) (float64, error) {
		v, err := strconv.ParseFloat(row[fields[name]], 64)
		if err != nil {
			return 0, fmt.Errorf("gcio: invalid %s coefficient: %v", name, err)
		}
		return v, nil
	}

	iso, err := parse("isotype")
	if err != nil {
		return forest.RankCoeffs{}, err
	}
	mut, err := parse("mutability")
	if err != nil {
		return forest.RankCoeffs{}, err
	}
	al, err := parse("alleles")
	if err != nil {
		return forest.RankCoeffs{}, err
	}

	return forest.RankCoeffs{Isotype: iso, Mutability: mut, Alleles: al}, nil
}
