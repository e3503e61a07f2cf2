// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package summary implements a command to print the achievable
// metric ranges of a gctree project's history DAG (spec §4.8).
package summary

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/forest"
	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/gcproj"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/isotype"
	"github.com/js-arias/gctree/report"
)

var Command = &command.Command{
	Usage: `summary [--p <value>] [--q <value>]
	[--plot <optimized-metric>] <project-file>`,
	Short: "print the achievable ranges of the forest's metrics",
	Long: `
Command summary reads the trees of a gctree project and, for each of the four
weight-algebra metrics (log-likelihood, isotype parsimony, mutability
parsimony, allele count), prints the achievable range of the other three
metrics when that one alone is optimized (spec §4.8).

The argument of the command is the name of the project file.

By default, fitted p and q are used for the log-likelihood algebra. Use --p
and --q to override the fitted values.

If --plot is given the name of one of the four metrics, a PNG bar chart of
the other metrics' achievable ranges, when that metric is optimized, is
written to "<project-file>-<metric>-ranges.png".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pFlag float64
var qFlag float64
var plotMetric string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&pFlag, "p", 0, "")
	c.Flags().Float64Var(&qFlag, "q", 0, "")
	c.Flags().StringVar(&plotMetric, "plot", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := gcproj.Read(args[0])
	if err != nil {
		return err
	}

	trees, err := loadCollapsedTrees(p)
	if err != nil {
		return err
	}

	f, warnings, err := forest.New(trees, dag.Options{Resolve: dag.ResolveIUPAC})
	for _, w := range warnings {
		fmt.Fprintf(c.Stderr(), "WARNING: %v\n", w)
	}
	if err != nil {
		return err
	}

	fp, fq := pFlag, qFlag
	if fp == 0 && fq == 0 {
		res, fitWarnings, err := f.Fit()
		for _, w := range fitWarnings {
			fmt.Fprintf(c.Stderr(), "WARNING: %v\n", w)
		}
		if err != nil {
			return err
		}
		fp, fq = res.P, res.Q
	}

	aux := forest.AuxConfig{}
	if p.Path(gcproj.Isotypes) != "" {
		aux.Order = isotype.DefaultOrder
	}
	if p.Path(gcproj.Mutability) != "" && p.Path(gcproj.Substitution) != "" {
		aux.MutabilityTable, err = p.MutabilityTable()
		if err != nil {
			return err
		}
		aux.Substitution, err = p.SubstitutionTable()
		if err != nil {
			return err
		}
	}

	out, sumWarnings, err := f.Summary(fp, fq, aux)
	for _, w := range sumWarnings {
		fmt.Fprintf(c.Stderr(), "WARNING: %v\n", w)
	}
	if err != nil {
		return err
	}

	if err := report.WriteSummary(c.Stdout(), out); err != nil {
		return err
	}

	if plotMetric != "" {
		path := fmt.Sprintf("%s-%s-ranges.png", args[0], plotMetric)
		if err := report.PlotRanges(out, plotMetric, path); err != nil {
			return err
		}
	}

	return nil
}

func loadCollapsedTrees(p *gcproj.Project) ([]*gwtree.Tree, error) {
	if p.Path(gcproj.Trees) == "" {
		return nil, fmt.Errorf("%w: trees not defined in project", gcerr.ErrInvalidInput)
	}
	raw, err := p.Trees()
	if err != nil {
		return nil, err
	}

	trees := make([]*gwtree.Tree, 0, len(raw))
	for tn, rn := range raw {
		t := gwtree.New(rn)
		if _, err := gwtree.Collapse(t, gwtree.CollapseOptions{}); err != nil {
			return nil, fmt.Errorf("tree %q: %v", tn, err)
		}
		trees = append(trees, t)
	}
	return trees, nil
}
