// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package gcio

import "github.com/js-arias/gctree/gwtree"

// ParsimonyRunner is the driver boundary for an external maximum-
// parsimony program (e.g. dnapars) that turns a set of sequences into
// candidate trees. Invoking the external program is out of scope for
// the core (spec §6: the file decoder, and by extension any external
// tool invocation, is out of scope); gcio only defines the contract a
// caller-supplied driver must satisfy so the rest of the module can
// consume its output the same way it consumes any other RawNode
// source.
type ParsimonyRunner interface {
	// Run invokes the external program over the given sequences,
	// keyed by name, and returns one raw tree per equally-parsimonious
	// topology it reports.
	Run(seqs map[string]string) ([]gwtree.RawNode, error)
}
