// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fit implements a command to fit the branching-process
// parameters (p, q) by maximum likelihood (spec §4.3, §5).
package fit

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/dag"
	"github.com/js-arias/gctree/forest"
	"github.com/js-arias/gctree/gcerr"
	"github.com/js-arias/gctree/gcproj"
	"github.com/js-arias/gctree/gwtree"
)

var Command = &command.Command{
	Usage: "fit <project-file>",
	Short: "fit the branching-process parameters by maximum likelihood",
	Long: `
Command fit reads the trees of a gctree project and fits the Galton-Watson
branching and mutation probabilities (p, q) that jointly maximize the
log-likelihood of the whole collection (spec §4.3, §5).

The argument of the command is the name of the project file.
	`,
	Run: run,
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

	f, warnings, err := newForest(trees)
	for _, w := range warnings {
		fmt.Fprintf(c.Stderr(), "WARNING: %v\n", w)
	}
	if err != nil {
		return err
	}

	res, fitWarnings, err := f.Fit()
	for _, w := range fitWarnings {
		fmt.Fprintf(c.Stderr(), "WARNING: %v\n", w)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "p\t%.9f\n", res.P)
	fmt.Fprintf(c.Stdout(), "q\t%.9f\n", res.Q)
	fmt.Fprintf(c.Stdout(), "gradient_check\t%.9f\n", res.GradientCheck)

	ll, err := f.LogLikeAll(res.P, res.Q)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "log_likelihood\t%.9f\n", ll)

	return nil
}

func newForest(trees []*gwtree.Tree) (*forest.Forest, []error, error) {
	return forest.New(trees, dag.Options{Resolve: dag.ResolveIUPAC})
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
