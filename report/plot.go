// Copyright © 2026 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"math"
	"slices"

	"github.com/js-arias/blind"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot saves a plot of the size and log10 score
// of each proposal,
// using a color for each level of the hierarchy.
// The format of the image is defined by the file extension.
func Plot(rows []Row, name string) error {
	byLevel := make(map[int]plotter.XYs)
	var levels []int
	for _, r := range rows {
		if r.Score <= 0 {
			continue
		}
		if _, ok := byLevel[r.Level]; !ok {
			levels = append(levels, r.Level)
		}
		byLevel[r.Level] = append(byLevel[r.Level], plotter.XY{
			X: math.Log10(float64(r.Size) + 1),
			Y: r.LogScore(),
		})
	}
	if len(levels) == 0 {
		return fmt.Errorf("plot %q: no proposals with a positive score", name)
	}
	slices.Sort(levels)

	p := plot.New()
	p.Title.Text = "Proposed lineages"
	p.X.Label.Text = "log10 size"
	p.Y.Label.Text = "log10 score"

	for i, lv := range levels {
		s, err := plotter.NewScatter(byLevel[lv])
		if err != nil {
			return fmt.Errorf("plot %q: level %d: %v", name, lv, err)
		}
		v := 0.5
		if len(levels) > 1 {
			v = float64(i) / float64(len(levels)-1)
		}
		s.GlyphStyle.Color = blind.Sequential(blind.Iridescent, v)
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("level %d", lv), s)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
