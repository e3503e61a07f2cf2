// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gcio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/js-arias/gctree/gcio"
	"github.com/js-arias/gctree/gwtree"
)

func TestReadFASTA(t *testing.T) {
	data := ">seq1 some description\nAATT\nCGGC\n>seq2\nAATC\n"
	seqs, err := gcio.ReadFASTA(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadFASTA: %v", err)
	}
	if seqs["seq1"] != "AATTCGGC" {
		t.Errorf("seq1 = %q, want %q", seqs["seq1"], "AATTCGGC")
	}
	if seqs["seq2"] != "AATC" {
		t.Errorf("seq2 = %q, want %q", seqs["seq2"], "AATC")
	}
}

func TestReadAbundance(t *testing.T) {
	data := "sequence\tabundance\nAATT\t3\nCGGC\t1\n"
	abund, err := gcio.ReadAbundance(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadAbundance: %v", err)
	}
	if abund["AATT"] != 3 {
		t.Errorf("AATT = %d, want 3", abund["AATT"])
	}
}

func TestReadAbundanceRejectsNegative(t *testing.T) {
	data := "sequence\tabundance\nAATT\t-1\n"
	if _, err := gcio.ReadAbundance(strings.NewReader(data)); err == nil {
		t.Errorf("ReadAbundance with negative count = nil error, want an error")
	}
}

func TestReadIsotype(t *testing.T) {
	data := "taxon\tisotype\tabundance\nseq1\tIgM\t2\nseq1\tIgG1\t1\n"
	iso, err := gcio.ReadIsotype(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadIsotype: %v", err)
	}
	if iso["seq1"]["IgM"] != 2 || iso["seq1"]["IgG1"] != 1 {
		t.Errorf("seq1 isotypes = %v, want IgM:2, IgG1:1", iso["seq1"])
	}
}

func TestReadRawTrees(t *testing.T) {
	data := "tree\tnode\tparent\tsequence\tabundance\tname\tisotype\n" +
		"clone1\t0\t-1\tAAAA\t0\t\t\n" +
		"clone1\t1\t0\tAAAT\t1\tseq1\tIgM:1\n"
	trees, err := gcio.ReadRawTrees(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRawTrees: %v", err)
	}
	root, ok := trees["clone1"]
	if !ok {
		t.Fatalf("missing tree %q", "clone1")
	}
	if root.Sequence() != "AAAA" {
		t.Errorf("root sequence = %q, want %q", root.Sequence(), "AAAA")
	}
	children := root.Children()
	if len(children) != 1 {
		t.Fatalf("root children = %d, want 1", len(children))
	}
	if children[0].Name() != "seq1" {
		t.Errorf("child name = %q, want %q", children[0].Name(), "seq1")
	}
	if children[0].Isotype()["IgM"] != 1 {
		t.Errorf("child isotype IgM = %d, want 1", children[0].Isotype()["IgM"])
	}
}

func TestReadRawTreesRejectsUnknownParent(t *testing.T) {
	data := "tree\tnode\tparent\tsequence\tabundance\n" +
		"clone1\t1\t5\tAAAT\t1\n"
	if _, err := gcio.ReadRawTrees(strings.NewReader(data)); err == nil {
		t.Errorf("ReadRawTrees with unknown parent = nil error, want an error")
	}
}

func TestReadRankCoeffs(t *testing.T) {
	data := "isotype\tmutability\talleles\n1.0\t0.1\t0.01\n"
	coeffs, err := gcio.ReadRankCoeffs(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRankCoeffs: %v", err)
	}
	if coeffs.Isotype != 1.0 || coeffs.Mutability != 0.1 || coeffs.Alleles != 0.01 {
		t.Errorf("coeffs = %+v, want {1.0 0.1 0.01}", coeffs)
	}
}

func TestReadRankCoeffsRejectsMissingField(t *testing.T) {
	data := "isotype\tmutability\n1.0\t0.1\n"
	if _, err := gcio.ReadRankCoeffs(strings.NewReader(data)); err == nil {
		t.Errorf("ReadRankCoeffs without alleles field = nil error, want an error")
	}
}

func TestWriteRawTreesRoundTrip(t *testing.T) {
	data := "tree\tnode\tparent\tsequence\tabundance\tname\tisotype\n" +
		"clone1\t0\t-1\tAAAA\t0\t\t\n" +
		"clone1\t1\t0\tAAAT\t1\tseq1\tIgM:1\n"
	raw, err := gcio.ReadRawTrees(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRawTrees: %v", err)
	}

	trees := make(map[string]*gwtree.Tree, len(raw))
	for tn, rn := range raw {
		trees[tn] = gwtree.New(rn)
	}

	var buf bytes.Buffer
	if err := gcio.WriteRawTrees(&buf, trees); err != nil {
		t.Fatalf("WriteRawTrees: %v", err)
	}

	back, err := gcio.ReadRawTrees(&buf)
	if err != nil {
		t.Fatalf("ReadRawTrees of written output: %v", err)
	}
	root, ok := back["clone1"]
	if !ok {
		t.Fatalf("round trip lost tree %q", "clone1")
	}
	if root.Sequence() != "AAAA" {
		t.Errorf("round-tripped root sequence = %q, want %q", root.Sequence(), "AAAA")
	}
	children := root.Children()
	if len(children) != 1 {
		t.Fatalf("round-tripped root children = %d, want 1", len(children))
	}
	if children[0].Name() != "seq1" {
		t.Errorf("round-tripped child name = %q, want %q", children[0].Name(), "seq1")
	}
	if children[0].Abundance() != 1 {
		t.Errorf("round-tripped child abundance = %d, want 1", children[0].Abundance())
	}
	if children[0].Isotype()["IgM"] != 1 {
		t.Errorf("round-tripped child isotype IgM = %d, want 1", children[0].Isotype()["IgM"])
	}
}
