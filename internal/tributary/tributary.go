// Package tributary computes zone-weighted tributary areas: each
// support point's Voronoi cell is clipped to the floor boundary and its
// area is weighted by the unit loads of the load zones it overlaps.
package tributary

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/ctessum/geom"
	"gonum.org/v1/gonum/floats"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/plan"
	"github.com/stralab/goltd/internal/voronoi"
)

// Zone is a load zone: a polygonal region carrying a unit load.
type Zone struct {
	Outline geometry.Ring
	// Weight is the unit load in kN/m².
	Weight float64
}

// Zones builds the zone list for one load pass. Regions with fewer
// than 3 vertices are dropped. A region's weight comes from its
// explicit unit load if present, then from the unit-load table keyed by
// region type, then from the pass default.
func Zones(regions []plan.LoadRegion, unitLoads map[string]float64, passDefault float64) []Zone {
	zones := make([]Zone, 0, len(regions))
	for _, reg := range regions {
		if len(reg.Vertices) < 3 {
			continue
		}
		w := passDefault
		if v, ok := unitLoads[reg.RegionType]; ok {
			w = v
		}
		if reg.UnitLoad != nil {
			w = *reg.UnitLoad
		}
		zones = append(zones, Zone{Outline: reg.Vertices, Weight: w})
	}
	return zones
}

// Result is the tributary contribution of one support point for one
// load pass.
type Result struct {
	Site geometry.Point
	Role plan.Role
	// Cell is the Voronoi region clipped to the floor boundary; a clip
	// may split into several rings.
	Cell []geometry.Ring
	// RawArea is the clipped cell area in m².
	RawArea float64
	// WeightedArea sums overlap area × zone weight over all zones (kN
	// at unit-load weights).
	WeightedArea float64
}

// Engine runs weighted tessellation passes over a floor.
type Engine struct {
	// ClampOverlap caps each cell's weighted area at raw area × maximum
	// zone weight. Off by default: overlapping zones are summed, which
	// models compound loading.
	ClampOverlap bool

	Logger *log.Logger
}

// NewEngine returns an Engine with the given overlap policy.
func NewEngine(clampOverlap bool, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{ClampOverlap: clampOverlap, Logger: logger}
}

// Compute runs one load pass: tessellate the support points, clip each
// cell to the floor boundary, and weight the clipped areas by the
// zones. Results come back in site order; a site whose clipped cell is
// empty contributes no result. Degenerate inputs (no sites, no zones,
// no boundary, or a site set that cannot be tessellated) yield nil.
func (e *Engine) Compute(boundary geometry.Ring, points []plan.SupportPoint, zones []Zone) []Result {
	if len(boundary) < 3 || len(points) == 0 || len(zones) == 0 {
		return nil
	}

	cells := e.cells(boundary, points)
	if cells == nil {
		e.Logger.Warn("degenerate site set, skipping tessellation", "sites", len(points))
		return nil
	}

	bpoly := boundary.Polygonal()
	zpolys := make([]geom.Polygon, len(zones))
	weights := make([]float64, len(zones))
	for i, z := range zones {
		zpolys[i] = z.Outline.Polygonal()
		weights[i] = z.Weight
	}
	maxWeight := floats.Max(weights)

	out := make([]Result, 0, len(cells))
	rawAreas := make([]float64, 0, len(cells))
	for _, cell := range cells {
		clip := cell.Ring.Polygonal().Intersection(bpoly)
		if clip == nil {
			continue
		}
		raw := clip.Area()
		if raw <= 0 {
			continue
		}
		weighted := 0.0
		for i := range zones {
			isect := clip.Intersection(zpolys[i])
			if isect == nil {
				continue
			}
			if overlap := isect.Area(); overlap > 0 {
				weighted += overlap * weights[i]
			}
		}
		if e.ClampOverlap {
			weighted = math.Min(weighted, raw*maxWeight)
		}
		out = append(out, Result{
			Site:         points[cell.Index].Point,
			Role:         points[cell.Index].Role,
			Cell:         geometry.RingsFromGeom(clip),
			RawArea:      raw,
			WeightedArea: weighted,
		})
		rawAreas = append(rawAreas, raw)
	}
	e.Logger.Debug("tessellated floor",
		"sites", len(points), "cells", len(out),
		"boundary_area", boundary.Area(), "cell_area", floats.Sum(rawAreas))
	return out
}

// cells produces one bounded cell per site. One or two sites cannot
// feed the Voronoi construction, so they degrade explicitly: a single
// site claims the whole boundary, two sites split it along their
// perpendicular bisector.
func (e *Engine) cells(boundary geometry.Ring, points []plan.SupportPoint) []voronoi.Cell {
	sites := make([]geometry.Point, len(points))
	for i, p := range points {
		sites[i] = p.Point
	}
	switch len(geometry.DistinctPoints(sites)) {
	case 1:
		return []voronoi.Cell{{Index: 0, Site: sites[0], Ring: boundary}}
	case 2:
		return bisectorCells(boundary, sites)
	default:
		return voronoi.Build(sites)
	}
}

// bisectorCells covers the two-site case: each site gets a half-plane
// rectangle on its side of the perpendicular bisector, large enough to
// contain the boundary.
func bisectorCells(boundary geometry.Ring, sites []geometry.Point) []voronoi.Cell {
	a, b := sites[0], sites[1]
	for i := 1; i < len(sites); i++ {
		if sites[i] != a {
			b = sites[i]
			break
		}
	}
	min, max := boundary.Bounds()
	reach := 2 * (math.Hypot(max.X-min.X, max.Y-min.Y) + a.DistanceTo(b))

	// Duplicate sites get no cell, matching the Voronoi construction.
	seen := make(map[geometry.Point]bool, 2)
	cells := make([]voronoi.Cell, 0, 2)
	for i, s := range sites {
		if seen[s] {
			continue
		}
		seen[s] = true
		other := b
		if s == b {
			other = a
		}
		cells = append(cells, voronoi.Cell{Index: i, Site: s, Ring: halfPlane(s, other, reach)})
	}
	return cells
}

// halfPlane builds a rectangle covering the side of the perpendicular
// bisector of keep→other that contains keep.
func halfPlane(keep, other geometry.Point, reach float64) geometry.Ring {
	nx, ny := other.X-keep.X, other.Y-keep.Y
	n := math.Hypot(nx, ny)
	if n == 0 {
		return nil
	}
	nx, ny = nx/n, ny/n // toward other; keep's side is -n
	dx, dy := -ny, nx   // along the bisector
	mx, my := (keep.X+other.X)/2, (keep.Y+other.Y)/2
	return geometry.Ring{
		{X: mx + dx*reach, Y: my + dy*reach},
		{X: mx - dx*reach, Y: my - dy*reach},
		{X: mx - dx*reach - nx*reach, Y: my - dy*reach - ny*reach},
		{X: mx + dx*reach - nx*reach, Y: my + dy*reach - ny*reach},
	}
}

// TotalRawArea sums the clipped cell areas of a pass. When the sites
// cover the floor this matches the boundary area within numerical
// tolerance.
func TotalRawArea(results []Result) float64 {
	areas := make([]float64, len(results))
	for i, r := range results {
		areas[i] = r.RawArea
	}
	return floats.Sum(areas)
}
