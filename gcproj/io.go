// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gcproj

import (
	"fmt"
	"os"

	"github.com/js-arias/gctree/forest"
	"github.com/js-arias/gctree/gcio"
	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/mutability"
)

// Sequences returns the FASTA sequence set from a project.
func (p *Project) Sequences() (map[string]string, error) {
	name := p.Path(Sequences)
	if name == "" {
		return nil, fmt.Errorf("sequences not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seqs, err := gcio.ReadFASTA(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return seqs, nil
}

// Abundance returns the sequence-to-abundance map from a project.
func (p *Project) Abundance() (map[string]int, error) {
	name := p.Path(Abundance)
	if name == "" {
		return nil, fmt.Errorf("abundance not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ab, err := gcio.ReadAbundance(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return ab, nil
}

// Trees returns the input tree collection from a project.
func (p *Project) Trees() (map[string]gwtree.RawNode, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	trees, err := gcio.ReadRawTrees(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return trees, nil
}

// Isotypes returns the per-taxon isotype observations from a project.
func (p *Project) Isotypes() (map[string]map[string]int, error) {
	name := p.Path(Isotypes)
	if name == "" {
		return nil, fmt.Errorf("isotypes not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	iso, err := gcio.ReadIsotype(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return iso, nil
}

// MutabilityTable returns the context-sensitive mutability table from
// a project.
func (p *Project) MutabilityTable() (*mutability.Table, error) {
	name := p.Path(Mutability)
	if name == "" {
		return nil, fmt.Errorf("mutability table not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tab, err := mutability.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return tab, nil
}

// SubstitutionTable returns the context-sensitive substitution table
// from a project.
func (p *Project) SubstitutionTable() (*mutability.Substitution, error) {
	name := p.Path(Substitution)
	if name == "" {
		return nil, fmt.Errorf("substitution table not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sub, err := mutability.ReadSubstitution(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return sub, nil
}

// Coefficients returns the forest-ranking coefficients from a project.
func (p *Project) Coefficients() (*forest.RankCoeffs, error) {
	name := p.Path(Coefficients)
	if name == "" {
		return nil, fmt.Errorf("ranking coefficients not defined in project %q", p.name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	coeffs, err := gcio.ReadRankCoeffs(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return &coeffs, nil
}
