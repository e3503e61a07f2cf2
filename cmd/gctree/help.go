// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(projectsGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
GCTree requires several files to read and process a lineage dataset. To reduce
the burden of keeping track of many files, a single project file is used to
hold the reference of all files required in an analysis.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# gctree project
	dataset	path
	sequences	seqs.fasta
	abundance	abundance.tab
	trees	trees.tab
	isotypes	isotypes.tab

Valid dataset keywords are:

	- sequences     a FASTA file of observed genotype sequences
	- abundance     a TSV sequence-to-abundance map
	- trees         a TSV file of input trees (see "gctree tree-files")
	- isotypes      a TSV file of per-taxon isotype observations
	- mutability    a context-sensitive mutability-rate table
	- substitution  a context-sensitive substitution-target table
	- coefficients  ranking coefficients for "gctree infer rank"
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In GCTree, input trees are genotype genealogies stored in a tab-delimited
file. Using a tab-delimited file, instead of a traditional newick file, makes
it easier for gctree commands, as well as third-party applications, to carry
the per-node genotype, abundance, and isotype data the branching-process
likelihood needs.

A GCTree tree file is a tab-delimited file with the following columns:

	-tree       for the name of the tree
	-node       for the ID of the node
	-parent     for the ID of the parent node (-1 is used for the root)
	-sequence   the node's genotype sequence
	-abundance  the node's observed clone count
	-name       the node's identifier (optional, empty for unobserved nodes)
	-isotype    an optional "isotype:count,isotype:count,..." list

Here is an example file:

	# gctree input trees
	tree	node	parent	sequence	abundance	name	isotype
	clone1	0	-1	AAAA	0
	clone1	1	0	AAAT	1	seq1	IgM:1
	clone1	2	0	AATT	1	seq2	IgG1:1

Trees read from this format are not assumed to be collapsed or of equal
parsimony; use "gctree tree collapse" to normalize them before building a
history DAG.
	`,
}
