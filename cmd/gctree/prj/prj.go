// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/gcproj"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a gctree project and prints the information of the different
project elements into the standard output.

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

	if p.Path(gcproj.Sequences) != "" {
		seqs, err := p.Sequences()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "Sequences:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", p.Path(gcproj.Sequences))
		fmt.Fprintf(c.Stdout(), "\tgenotypes: %d\n\n", len(seqs))
	}

	if p.Path(gcproj.Abundance) != "" {
		ab, err := p.Abundance()
		if err != nil {
			return err
		}
		total := 0
		for _, v := range ab {
			total += v
		}
		fmt.Fprintf(c.Stdout(), "Abundance:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", p.Path(gcproj.Abundance))
		fmt.Fprintf(c.Stdout(), "\tgenotypes: %d\n", len(ab))
		fmt.Fprintf(c.Stdout(), "\ttotal abundance: %d\n\n", total)
	}

	if p.Path(gcproj.Trees) != "" {
		trees, err := p.Trees()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "Trees:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", p.Path(gcproj.Trees))
		fmt.Fprintf(c.Stdout(), "\ttrees: %d\n\n", len(trees))
	}

	if p.Path(gcproj.Isotypes) != "" {
		iso, err := p.Isotypes()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "Isotypes:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", p.Path(gcproj.Isotypes))
		fmt.Fprintf(c.Stdout(), "\ttaxa: %d\n\n", len(iso))
	}

	if p.Path(gcproj.Mutability) != "" {
		fmt.Fprintf(c.Stdout(), "Mutability table:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n\n", p.Path(gcproj.Mutability))
	}

	if p.Path(gcproj.Substitution) != "" {
		fmt.Fprintf(c.Stdout(), "Substitution table:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n\n", p.Path(gcproj.Substitution))
	}

	return nil
}
