// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package gcproj implements reading and writing of gctree project
// files: directly adapted from the teacher's own project package
// (project/project.go, project/io.go), same TSV shape and accessor
// set, with Dataset constants renamed to the file kinds a gctree
// analysis bundles (sequences, abundance, trees, isotypes,
// mutability, substitution, ranking coefficients).
package gcproj

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// Dataset is a keyword identifying the kind of a file bundled in a
// project.
type Dataset string

// Valid dataset kinds.
const (
	// Sequences is the FASTA file of observed genotype sequences.
	Sequences Dataset = "sequences"

	// Abundance is the TSV sequence-to-abundance map.
	Abundance Dataset = "abundance"

	// Trees is the TSV file of input trees.
	Trees Dataset = "trees"

	// Isotypes is the TSV file of per-taxon isotype observations.
	Isotypes Dataset = "isotypes"

	// Mutability is the per-context mutability-rate table.
	Mutability Dataset = "mutability"

	// Substitution is the per-context substitution-target table.
	Substitution Dataset = "substitution"

	// Coefficients is the forest-ranking coefficients file.
	Coefficients Dataset = "coefficients"
)

// A Project represents a collection of paths for particular datasets.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{paths: make(map[Dataset]string)}
}

var header = []string{"dataset", "path"}

// Read reads a project file from a TSV file.
//
// The TSV must contain the following fields:
//
//   - dataset, for the kind of file
//   - path, for the path of the file
//
// Here is an example file:
//
//	# gctree project
//	dataset	path
//	sequences	seqs.fasta
//	abundance	abundance.tab
//	trees	trees.tab
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	p := New()
	p.name = name
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		set := Dataset(row[fields["dataset"]])
		path := row[fields["path"]]
		p.paths[set] = path
	}
	return p, nil
}

// Add adds a filepath of a dataset to a project, returning the
// previous value for the dataset.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	if path == "" {
		delete(p.paths, set)
		return prev
	}
	p.paths[set] = path
	return prev
}

// Path returns the path of the given dataset.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Sets returns the datasets defined on a project, sorted by name.
func (p *Project) Sets() []Dataset {
	var sets []Dataset
	for s := range p.paths {
		sets = append(sets, s)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i] < sets[j] })
	return sets
}

// SetName sets the project file name.
func (p *Project) SetName(name string) { p.name = name }

// Write writes a project into a file.
func (p *Project) Write() (err error) {
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# gctree project\n")
	fmt.Fprintf(bw, "# data saved on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", p.name, err)
	}

	for _, s := range p.Sets() {
		row := []string{string(s), p.paths[s]}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", p.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}
