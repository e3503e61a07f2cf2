// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gcproj_test

import (
	"path/filepath"
	"testing"

	"github.com/js-arias/gctree/gcproj"
)

func TestAddPathSets(t *testing.T) {
	p := gcproj.New()
	p.Add(gcproj.Sequences, "seqs.fasta")
	p.Add(gcproj.Trees, "trees.tab")

	if p.Path(gcproj.Sequences) != "seqs.fasta" {
		t.Errorf("Path(Sequences) = %q, want %q", p.Path(gcproj.Sequences), "seqs.fasta")
	}
	sets := p.Sets()
	if len(sets) != 2 {
		t.Fatalf("Sets() = %v, want 2 entries", sets)
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "project.tab")

	p := gcproj.New()
	p.SetName(name)
	p.Add(gcproj.Sequences, "seqs.fasta")
	p.Add(gcproj.Abundance, "abundance.tab")
	if err := p.Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := gcproj.Read(name)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Path(gcproj.Sequences) != "seqs.fasta" {
		t.Errorf("Path(Sequences) = %q, want %q", got.Path(gcproj.Sequences), "seqs.fasta")
	}
	if got.Path(gcproj.Abundance) != "abundance.tab" {
		t.Errorf("Path(Abundance) = %q, want %q", got.Path(gcproj.Abundance), "abundance.tab")
	}
}

func TestReadMissingFile(t *testing.T) {
	if _, err := gcproj.Read(filepath.Join(t.TempDir(), "missing.tab")); err == nil {
		t.Errorf("Read(missing) = nil error, want an error")
	}
}
