// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add input trees
// to a gctree project.
package add

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/gctree/gcio"
	"github.com/js-arias/gctree/gcproj"
	"github.com/js-arias/gctree/gwtree"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>]
	<project-file> [<tree-file>...]`,
	Short: "add input trees to a gctree project",
	Long: `
Command add reads one or more trees from one or more tree files, and adds the
trees to a gctree project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more tree files can be given as arguments. If no file is given the
trees will be read from the standard input. See "gctree tree-files" for the
expected file format.

By default the trees will be stored in the tree file currently defined for the
project. If the project does not have a tree file, a new one will be created
with the name 'trees.tab'. A different tree file name can be defined using the
flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	pFile := args[0]
	p, err := openProject(pFile)
	if err != nil {
		return err
	}

	trees := make(map[string]gwtree.RawNode)
	if tf := p.Path(gcproj.Trees); tf != "" {
		trees, err = p.Trees()
		if err != nil {
			return err
		}
	}

	args = args[1:]
	if len(args) == 0 {
		args = append(args, "-")
	}
	for _, a := range args {
		read, err := readTreeFile(c, a)
		if err != nil {
			return err
		}
		for tn, raw := range read {
			if _, ok := trees[tn]; ok {
				return fmt.Errorf("when adding trees from %q: tree %q already defined", a, tn)
			}
			trees[tn] = raw
		}
	}

	if treeFile == "" {
		treeFile = p.Path(gcproj.Trees)
		if treeFile == "" {
			treeFile = "trees.tab"
		}
	}

	if err := writeTrees(trees); err != nil {
		return err
	}
	p.Add(gcproj.Trees, treeFile)
	if err := p.Write(); err != nil {
		return err
	}

	return nil
}

func openProject(name string) (*gcproj.Project, error) {
	p, err := gcproj.Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := gcproj.New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

func readTreeFile(c *command.Command, name string) (map[string]gwtree.RawNode, error) {
	r := c.Stdin()
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	trees, err := gcio.ReadRawTrees(r)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return trees, nil
}

func writeTrees(trees map[string]gwtree.RawNode) (err error) {
	built := make(map[string]*gwtree.Tree, len(trees))
	for tn, raw := range trees {
		built[tn] = gwtree.New(raw)
	}

	f, err := os.Create(treeFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := gcio.WriteRawTrees(f, built); err != nil {
		return fmt.Errorf("while writing to %q: %v", treeFile, err)
	}
	return nil
}
