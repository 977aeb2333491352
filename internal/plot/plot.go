// Package plot renders check plots for the pipeline stages: merged
// floor outlines, foundation pads, combined structural plans, and
// weighted tessellations. The output format follows the file extension
// (png, svg, pdf).
package plot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/plan"
	"github.com/stralab/goltd/internal/tributary"
)

var (
	outlineFill  = color.RGBA{R: 176, G: 196, B: 222, A: 180} // light steel blue
	padFill      = color.RGBA{R: 135, G: 206, B: 235, A: 150} // sky blue
	cellEdge     = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	columnColor  = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	wallColor    = color.RGBA{R: 34, G: 139, B: 34, A: 255}
	footingColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	zonePalette  = []color.RGBA{
		{R: 31, G: 119, B: 180, A: 60},
		{R: 255, G: 127, B: 14, A: 60},
		{R: 44, G: 160, B: 44, A: 60},
		{R: 214, G: 39, B: 40, A: 60},
		{R: 148, G: 103, B: 189, A: 60},
	}
)

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	return p
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	switch ext := filepath.Ext(path); ext {
	case ".png", ".svg", ".pdf":
		return p.Save(7*vg.Inch, 7*vg.Inch, path)
	default:
		return fmt.Errorf("unsupported plot format: %s", ext)
	}
}

func ringXYs(r geometry.Ring) plotter.XYs {
	xys := make(plotter.XYs, 0, len(r)+1)
	for _, pt := range r {
		xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
	}
	if len(r) > 0 {
		xys = append(xys, plotter.XY{X: r[0].X, Y: r[0].Y})
	}
	return xys
}

func addRing(p *plot.Plot, r geometry.Ring, fill color.Color, edge color.Color) error {
	poly, err := plotter.NewPolygon(ringXYs(r))
	if err != nil {
		return err
	}
	poly.Color = fill
	poly.LineStyle.Color = edge
	poly.LineStyle.Width = vg.Points(1)
	p.Add(poly)
	return nil
}

func addScatter(p *plot.Plot, pts []geometry.Point, c color.Color, radius vg.Length) error {
	if len(pts) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = radius
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)
	return nil
}

// SaveOutline renders one merged floor outline.
func SaveOutline(outline geometry.Ring, title, path string) error {
	p := newPlot(title)
	if err := addRing(p, outline, outlineFill, cellEdge); err != nil {
		return err
	}
	return save(p, path)
}

// SavePads renders foundation pad outlines with their recorded footing
// centroids.
func SavePads(pads []geometry.Ring, centroids []geometry.Point, title, path string) error {
	p := newPlot(title)
	for _, pad := range pads {
		if err := addRing(p, pad, padFill, cellEdge); err != nil {
			return err
		}
	}
	if err := addScatter(p, centroids, columnColor, vg.Points(3)); err != nil {
		return err
	}
	return save(p, path)
}

// SaveFloorPlan renders a combined structural plan: boundary, columns,
// wall sample points, and foundations.
func SaveFloorPlan(fp *plan.FloorPlan, title, path string) error {
	p := newPlot(title)
	if err := addRing(p, fp.Boundary, outlineFill, cellEdge); err != nil {
		return err
	}
	if err := addScatter(p, fp.Columns, columnColor, vg.Points(2.5)); err != nil {
		return err
	}
	if err := addScatter(p, fp.Walls, wallColor, vg.Points(1.5)); err != nil {
		return err
	}
	return addScatterAndSave(p, fp.Foundations, path)
}

func addScatterAndSave(p *plot.Plot, pts []geometry.Point, path string) error {
	if err := addScatter(p, pts, footingColor, vg.Points(2.5)); err != nil {
		return err
	}
	return save(p, path)
}

// SaveTessellation renders one weighted tessellation pass: load zones
// shaded, clipped cells outlined, sites marked, and column cells
// labelled with their raw area.
func SaveTessellation(boundary geometry.Ring, zones []tributary.Zone, results []tributary.Result, title, path string) error {
	p := newPlot(title)
	for i, z := range zones {
		fill := zonePalette[i%len(zonePalette)]
		if err := addRing(p, z.Outline, fill, color.RGBA{R: 255, G: 255, B: 255, A: 255}); err != nil {
			return err
		}
	}

	line, err := plotter.NewLine(ringXYs(boundary))
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = cellEdge
	p.Add(line)

	var labels plotter.XYLabels
	for _, res := range results {
		for _, ring := range res.Cell {
			cell, err := plotter.NewLine(ringXYs(ring))
			if err != nil {
				return err
			}
			cell.LineStyle.Width = vg.Points(0.8)
			cell.LineStyle.Color = cellEdge
			p.Add(cell)
		}
		if err := addScatter(p, []geometry.Point{res.Site}, roleColor(res.Role), vg.Points(2)); err != nil {
			return err
		}
		if res.Role == plan.RoleColumn {
			labels.XYs = append(labels.XYs, plotter.XY{X: res.Site.X + 0.1, Y: res.Site.Y + 0.1})
			labels.Labels = append(labels.Labels, fmt.Sprintf("A=%.2f", res.RawArea))
		}
	}
	if len(labels.XYs) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		p.Add(l)
	}
	return save(p, path)
}

func roleColor(role plan.Role) color.Color {
	switch role {
	case plan.RoleWall:
		return wallColor
	case plan.RoleFoundation:
		return footingColor
	default:
		return columnColor
	}
}
