// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package report

import (
	"image/color"
	"sort"

	"github.com/js-arias/gctree/forest"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// rangeBars is a plot.Plotter/plot.DataRanger drawing one vertical
// [min, max] bar per metric, in the shape of
// cmd/phygeo/diff/speed/plot.go's speedTimePlot (a custom Plotter
// filling a polygon between a max and min series per x position),
// adapted from a time axis to a categorical metric axis.
type rangeBars struct {
	names  []string
	ranges map[string]forest.Range
	style  draw.LineStyle
}

func (b *rangeBars) DataRange() (xMin, xMax, yMin, yMax float64) {
	xMin, xMax = -0.5, float64(len(b.names))-0.5
	first := true
	for _, r := range b.ranges {
		if first || r.Min < yMin {
			yMin = r.Min
		}
		if first || r.Max > yMax {
			yMax = r.Max
		}
		first = false
	}
	return xMin, xMax, yMin, yMax
}

func (b *rangeBars) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	const halfWidth = 0.3

	for i, name := range b.names {
		r := b.ranges[name]
		x := float64(i)
		pts := []vg.Point{
			{X: trX(x - halfWidth), Y: trY(r.Min)},
			{X: trX(x + halfWidth), Y: trY(r.Min)},
			{X: trX(x + halfWidth), Y: trY(r.Max)},
			{X: trX(x - halfWidth), Y: trY(r.Max)},
		}
		c.FillPolygon(color.RGBA{127, 188, 165, 255}, pts)
	}

	c.SetLineStyle(b.style)
}

// PlotRanges renders, for the given optimized metric, the achievable
// ranges of the other metrics as a PNG bar chart at path.
func PlotRanges(summary map[string]map[string]forest.Range, optimized, path string) error {
	ranges := summary[optimized]
	names := make([]string, 0, len(ranges))
	for k := range ranges {
		names = append(names, k)
	}
	sort.Strings(names)

	p := plot.New()
	p.Title.Text = "achievable ranges when " + optimized + " is optimized"
	p.Y.Label.Text = "value"

	p.NominalX(names...)

	bars := &rangeBars{names: names, ranges: ranges}
	p.Add(bars)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return err
	}
	return nil
}
