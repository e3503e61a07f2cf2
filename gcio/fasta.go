// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package gcio implements the file-boundary decoders the core
// explicitly leaves out of scope (spec §6: "the file decoder is out
// of scope"): FASTA sequences, per-sequence abundance and isotype
// TSVs, a tab-delimited tree format mirroring the teacher's own
// calibrated-tree files, and the driver boundary for an external
// parsimony program. Grounded on trait/io.go and project/io.go's
// encoding/csv idiom (tab-delimited, '#'-comment, header-field lookup
// by lowercased name).
package gcio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ReadFASTA reads a FASTA file into a name-to-sequence map. Headers
// are normalized to Unicode NFC before the identifier (the text up to
// the first whitespace) is taken as the sequence name, so that
// equivalent but differently-encoded headers produced by different
// upstream tools compare equal.
func ReadFASTA(r io.Reader) (map[string]string, error) {
	out := make(map[string]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var name string
	var seq strings.Builder
	flush := func() {
		if name != "" {
			out[name] = seq.String()
		}
		seq.Reset()
	}
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			header := norm.NFC.String(line[1:])
			fields := strings.Fields(header)
			if len(fields) == 0 {
				return nil, fmt.Errorf("gcio: empty FASTA header")
			}
			name = fields[0]
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("gcio: sequence data before any header")
		}
		seq.WriteString(strings.ToUpper(line))
	}
	flush()
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gcio: while reading FASTA: %v", err)
	}
	return out, nil
}
