// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package seqdist implements Hamming distance and IUPAC
// ambiguity-code resolution over fixed-length DNA sequences.
package seqdist

import "fmt"

// resolution maps each IUPAC ambiguity code to the set of unambiguous
// bases it represents.
var resolution = map[byte][]byte{
	'A': {'A'},
	'C': {'C'},
	'G': {'G'},
	'T': {'T'},
	'R': {'A', 'G'},
	'Y': {'C', 'T'},
	'S': {'G', 'C'},
	'W': {'A', 'T'},
	'K': {'G', 'T'},
	'M': {'A', 'C'},
	'B': {'C', 'G', 'T'},
	'D': {'A', 'G', 'T'},
	'H': {'A', 'C', 'T'},
	'V': {'A', 'C', 'G'},
	'N': {'A', 'C', 'G', 'T'},
}

// Resolve returns the unambiguous bases a IUPAC code represents. It
// returns nil if code is not a recognized IUPAC nucleotide code.
func Resolve(code byte) []byte {
	r, ok := resolution[upper(code)]
	if !ok {
		return nil
	}
	return r
}

// Compatible reports whether two IUPAC codes share at least one
// unambiguous base, i.e. whether the two positions could be explained
// by the same underlying nucleotide.
func Compatible(a, b byte) bool {
	ra := Resolve(a)
	rb := Resolve(b)
	if ra == nil || rb == nil {
		return false
	}
	for _, x := range ra {
		for _, y := range rb {
			if x == y {
				return true
			}
		}
	}
	return false
}

// Ambiguous reports whether a sequence contains any IUPAC code other
// than A, C, G, or T.
func Ambiguous(seq string) bool {
	for i := 0; i < len(seq); i++ {
		switch upper(seq[i]) {
		case 'A', 'C', 'G', 'T':
			continue
		}
		return true
	}
	return false
}

// HammingDistance returns the number of positions at which two
// sequences of equal length differ. Positions are considered different
// if their IUPAC codes are not compatible.
func HammingDistance(a, b string) (int, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("seqdist: sequences of different length: %d != %d", len(a), len(b))
	}
	d := 0
	for i := 0; i < len(a); i++ {
		if !Compatible(a[i], b[i]) {
			d++
		}
	}
	return d, nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
