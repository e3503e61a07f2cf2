// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package svgtree renders a collapsed tree as an SVG diagram (spec
// §6's report surface). Grounded on
// cmd/phygeo/tree/draw/svg.go's layout pass (x from cumulative
// distance-to-root, y from a leaf counter with internal nodes centered
// between their descendants' min/max y) and its node/label drawing
// shape (a horizontal branch line, a labeled circle at each node), but
// drawn with github.com/ajstarks/svgo instead of a raw xml.Encoder:
// the teacher pulls svgo in only indirectly (through gonum/plot's SVG
// canvas), and this package promotes it to a direct, exercised
// dependency rather than hand-rolling SVG elements with encoding/xml.
package svgtree

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/js-arias/gctree/gwtree"
	"github.com/js-arias/gctree/isotype"
)

const (
	xStep      = 20
	yStep      = 24
	leftMargin = 20
	nodeRadius = 7
)

type laidOut struct {
	x, y       int
	topY, botY int
}

// Render draws t as an SVG document into w. Each node is colored by
// its dominant observed isotype under order (isotype.Color(rank)); a
// node with no observed isotype is filled white.
func Render(t *gwtree.Tree, order isotype.Order, w io.Writer) error {
	layout := make(map[int]*laidOut, len(t.Nodes()))
	maxX, maxNameLen := 0, 0
	yCounter := 0

	var prepare func(id int) int
	prepare = func(id int) int {
		n := t.Node(id)
		x := leftMargin
		if !t.IsRoot(id) {
			parentX := layout[t.Parent(id)].x
			x = parentX + xStep
		}
		if x > maxX {
			maxX = x
		}
		for _, name := range n.Names() {
			if len(name) > maxNameLen {
				maxNameLen = len(name)
			}
		}

		l := &laidOut{x: x}
		layout[id] = l

		children := t.Children(id)
		if len(children) == 0 {
			l.y = yCounter * yStep
			yCounter++
			return l.y
		}
		top, bot := -1, -1
		for _, c := range children {
			cy := prepare(c)
			if top == -1 || cy < top {
				top = cy
			}
			if cy > bot {
				bot = cy
			}
		}
		l.topY, l.botY = top, bot
		l.y = top + (bot-top)/2
		return l.y
	}
	prepare(t.Root())

	height := yCounter*yStep + 2*yStep
	width := maxX + maxNameLen*7 + 2*leftMargin

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Gstyle("stroke:black;stroke-width:2;stroke-linecap:round;font-family:Verdana;font-size:10")

	var draw func(id int)
	draw = func(id int) {
		l := layout[id]
		x1 := l.x - xStep
		if !t.IsRoot(id) {
			x1 = layout[t.Parent(id)].x
		}
		canvas.Line(x1, l.y, l.x, l.y)

		children := t.Children(id)
		if len(children) > 0 {
			canvas.Line(l.x, l.topY, l.x, l.botY)
		}
		for _, c := range children {
			draw(c)
		}
	}
	draw(t.Root())

	var label func(id int)
	label = func(id int) {
		l := layout[id]
		n := t.Node(id)

		fill := "white"
		if rank, ok := dominantRank(n.Isotype(), order); ok {
			fill = isotype.Color(rank)
		}
		canvas.Circle(l.x, l.y, nodeRadius, "fill:"+fill+";stroke:black;stroke-width:1")

		if names := n.Names(); len(names) > 0 && len(t.Children(id)) == 0 {
			canvas.Text(l.x+10, l.y+5, names[0], "stroke-width:0;font-style:italic")
		}
		for _, c := range t.Children(id) {
			label(c)
		}
	}
	label(t.Root())

	canvas.Gend()
	canvas.End()
	return nil
}

func dominantRank(obs map[string]int, order isotype.Order) (int, bool) {
	best, bestCount, found := -1, -1, false
	for name, count := range obs {
		rank, ok := order.Rank(name)
		if !ok {
			continue
		}
		if count > bestCount || (count == bestCount && rank < best) {
			best, bestCount, found = rank, count, true
		}
	}
	return best, found
}
