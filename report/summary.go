// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/js-arias/gctree/forest"
)

// WriteSummary writes a DAG summary block (spec §4.8): for every
// metric optimized alone, the achievable range of every other metric.
func WriteSummary(w io.Writer, summary map[string]map[string]forest.Range) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"optimized", "metric", "min", "max"}); err != nil {
		return fmt.Errorf("report: while writing header: %v", err)
	}

	optimized := make([]string, 0, len(summary))
	for k := range summary {
		optimized = append(optimized, k)
	}
	sort.Strings(optimized)

	for _, opt := range optimized {
		ranges := summary[opt]
		metrics := make([]string, 0, len(ranges))
		for k := range ranges {
			metrics = append(metrics, k)
		}
		sort.Strings(metrics)
		for _, m := range metrics {
			r := ranges[m]
			row := []string{
				opt,
				m,
				strconv.FormatFloat(r.Min, 'g', -1, 64),
				strconv.FormatFloat(r.Max, 'g', -1, 64),
			}
			if err := tab.Write(row); err != nil {
				return fmt.Errorf("report: while writing row: %v", err)
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("report: while writing data: %v", err)
	}
	return nil
}
