// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rank implements a command to trim the history DAG of
// a gctree project to its best-ranked histories (spec §4.8).
package rank

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
	Usage: `rank [--p <value>] [--q <value>]
	[--ignore-isotype] <project-file>`,
	Short: "rank and trim the history DAG to its best histories",
	Long: `
Command rank reads the trees of a gctree project, fits (or takes, if given)
the branching-process parameters, and trims the project's history DAG to the
subset of histories that jointly optimize spec §4.8's weight algebras:
log-likelihood, isotype parsimony, mutability parsimony, and allele count.

The argument of the command is the name of the project file. If the project
defines a ranking-coefficients file, it is used to linearly combine the four
metrics into a single score; otherwise histories are ranked lexicographically.

By default, fitted (or given) p and q are used for the log-likelihood
algebra. Use --p and --q to override the fitted values.

The isotype parsimony metric is skipped, contributing a placeholder weight of
zero, unless the project defines an isotype observation file. Use
--ignore-isotype to skip it even when one is defined.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var pFlag float64
var qFlag float64
var ignoreIsotype bool

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&pFlag, "p", 0, "")
	c.Flags().Float64Var(&qFlag, "q", 0, "")
	c.Flags().BoolVar(&ignoreIsotype, "ignore-isotype", false, "")
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
	if !ignoreIsotype && p.Path(gcproj.Isotypes) != "" {
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

	var coeffs *forest.RankCoeffs
	if p.Path(gcproj.Coefficients) != "" {
		coeffs, err = p.Coefficients()
		if err != nil {
			return err
		}
	}

	trimmed, best, rankWarnings, err := f.FilterTrees(fp, fq, aux, coeffs)
	for _, w := range rankWarnings {
		fmt.Fprintf(c.Stderr(), "WARNING: %v\n", w)
	}
	if err != nil {
		return err
	}

	rows := []report.RankRow{{Index: 0, Metrics: best}}
	if err := report.WriteRank(c.Stdout(), rows); err != nil {
		return err
	}

	fmt.Fprintf(c.Stderr(), "optimal histories: %d\n", dag.CountHistories(trimmed))
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
