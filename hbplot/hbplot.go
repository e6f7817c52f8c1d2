/*
 * hbplot.go, part of hbocc.
 *
 * Copyright 2024 The hbocc Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package hbplot draws bar charts of hydrogen-bond occupancies.
package hbplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/hbocc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// MaxBars is the largest number of bars drawn in one chart. Rows beyond it
// (the least occupied, as rows come sorted) are left out.
var MaxBars = 40

func basicBarPlot(title, xlabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = "Occupancy (%)"
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = draw.XRight
	//Constant axes
	p.Y.Min = 0
	p.Y.Max = 100
	p.Add(plotter.NewGrid())
	return p
}

// barPlot draws a bar for each value, with the given labels, and saves the plot
// in plotname. The format is given by the extension of plotname.
func barPlot(values []float64, labels []string, title, xlabel, plotname string) error {
	if len(values) == 0 {
		return fmt.Errorf("hbplot: no data to plot in %s", plotname)
	}
	if len(values) > MaxBars {
		values = values[:MaxBars]
		labels = labels[:MaxBars]
	}
	p := basicBarPlot(title, xlabel)
	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(12))
	if err != nil {
		return fmt.Errorf("hbplot: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 40, G: 90, B: 200, A: 255}
	p.Add(bars)
	p.NominalX(labels...)
	width := vg.Length(len(values)) * vg.Points(18)
	if width < 4*vg.Inch {
		width = 4 * vg.Inch
	}
	if err := p.Save(width, 4*vg.Inch, plotname); err != nil {
		return fmt.Errorf("hbplot: saving %s: %w", plotname, err)
	}
	return nil
}

// ResidueBars saves in plotname a bar chart with the occupancy of each residue in rows.
func ResidueBars(rows []hbocc.ResidueRow, title, plotname string) error {
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = fmt.Sprintf("%s%d", hbocc.Capitalize(r.ProteinResName), r.ProteinResID)
	}
	return barPlot(hbocc.ResidueOccupancies(rows), labels, title, "Residue", plotname)
}

// PairBars saves in plotname a bar chart with the occupancy of each atom pair in rows.
func PairBars(rows []hbocc.PairRow, title, plotname string) error {
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = PairLabel(r)
	}
	return barPlot(hbocc.PairOccupancies(rows), labels, title, "Atom pair", plotname)
}

// PairLabel returns a short name for the pair in r, e.g. "Asp12:OD1-O2".
func PairLabel(r hbocc.PairRow) string {
	return fmt.Sprintf("%s%d:%s-%s", hbocc.Capitalize(r.ProteinResName), r.ProteinResID, r.ProteinAtom, r.LigandAtom)
}
