// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package report_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/gctree/forest"
	"github.com/js-arias/gctree/report"
)

func TestWriteRankWithoutScore(t *testing.T) {
	rows := []report.RankRow{
		{Index: 0, Metrics: forest.Metrics{LogLikelihood: -1.2, Isotype: 1, Mutability: 0.5, Alleles: 3}},
	}
	var buf bytes.Buffer
	if err := report.WriteRank(&buf, rows); err != nil {
		t.Fatalf("WriteRank: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "score") {
		t.Errorf("WriteRank without scores produced a score column: %q", out)
	}
	if !strings.Contains(out, "alleles") {
		t.Errorf("WriteRank missing alleles column: %q", out)
	}
}

func TestWriteRankWithScore(t *testing.T) {
	score := -0.8
	rows := []report.RankRow{
		{Index: 0, Metrics: forest.Metrics{LogLikelihood: -1.2}, Score: &score},
	}
	var buf bytes.Buffer
	if err := report.WriteRank(&buf, rows); err != nil {
		t.Fatalf("WriteRank: %v", err)
	}
	if !strings.Contains(buf.String(), "score") {
		t.Errorf("WriteRank with scores missing score column: %q", buf.String())
	}
}

func TestWriteSummary(t *testing.T) {
	summary := map[string]map[string]forest.Range{
		"log_likelihood": {
			"isotype": {Min: 0, Max: 2},
		},
	}
	var buf bytes.Buffer
	if err := report.WriteSummary(&buf, summary); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if !strings.Contains(buf.String(), "log_likelihood") {
		t.Errorf("WriteSummary missing optimized metric name: %q", buf.String())
	}
}

func TestPlotRanges(t *testing.T) {
	summary := map[string]map[string]forest.Range{
		"log_likelihood": {
			"isotype":    {Min: 0, Max: 2},
			"mutability": {Min: 0.1, Max: 1.4},
		},
	}
	path := filepath.Join(t.TempDir(), "ranges.png")
	if err := report.PlotRanges(summary, "log_likelihood", path); err != nil {
		t.Fatalf("PlotRanges: %v", err)
	}
}
