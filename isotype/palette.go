// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package isotype

// Palette is the 12-color palette used to render isotype-annotated
// trees, cycling for orders longer than its length.
var Palette = []string{
	"#a6cee3",
	"#1f78b4",
	"#b2df8a",
	"#33a02c",
	"#fb9a99",
	"#e31a1c",
	"#fdbf6f",
	"#ff7f00",
	"#cab2d6",
	"#6a3d9a",
	"#ffff99",
	"#b15928",
}

// Color returns the palette color for a given isotype rank, cycling
// through Palette if rank exceeds its length.
func Color(rank int) string {
	if rank < 0 {
		rank = 0
	}
	return Palette[rank%len(Palette)]
}
