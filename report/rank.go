// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package report implements the plain-text ranking and DAG-summary
// reports of spec §6, plus an optional range plot. Grounded on
// project/io.go and trait/io.go's TSV-writer idiom
// (csv.NewWriter, tab.UseCRLF = true).
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/gctree/forest"
)

// RankRow is one history's ranking record (spec §6's per-tree
// ranking report): index, alleles, log-likelihood, isotype parsimony,
// mutability parsimony, and an optional score when ranking
// coefficients were given.
type RankRow struct {
	Index   int
	Metrics forest.Metrics
	Score   *float64
}

// WriteRank writes rows as a tab-separated ranking report.
func WriteRank(w io.Writer, rows []RankRow) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"index", "alleles", "log_likelihood", "isotype", "mutability"}
	hasScore := false
	for _, r := range rows {
		if r.Score != nil {
			hasScore = true
			break
		}
	}
	if hasScore {
		header = append(header, "score")
	}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("report: while writing header: %v", err)
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Index),
			strconv.Itoa(r.Metrics.Alleles),
			strconv.FormatFloat(r.Metrics.LogLikelihood, 'g', -1, 64),
			strconv.Itoa(r.Metrics.Isotype),
			strconv.FormatFloat(r.Metrics.Mutability, 'g', -1, 64),
		}
		if hasScore {
			s := ""
			if r.Score != nil {
				s = strconv.FormatFloat(*r.Score, 'g', -1, 64)
			}
			row = append(row, s)
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("report: while writing row %d: %v", r.Index, err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("report: while writing data: %v", err)
	}
	return nil
}
