// Package boundary reconstructs clean floor and foundation outlines
// from the fragmented, possibly duplicated line segments exported per
// level from the BIM model.
package boundary

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/ctessum/geom"

	"github.com/stralab/goltd/internal/config"
	"github.com/stralab/goltd/internal/geometry"
)

// Reconstructor turns segment soups into merged outline rings.
type Reconstructor struct {
	// Policy selects which merged fragments survive: keep-largest for
	// floor outlines, keep-all for foundation pads.
	Policy string

	Logger *log.Logger
}

// New creates a Reconstructor with the given fragment selection policy.
func New(policy string, logger *log.Logger) *Reconstructor {
	if logger == nil {
		logger = log.Default()
	}
	return &Reconstructor{Policy: policy, Logger: logger}
}

// Reconstruct deduplicates the segments, extracts closed rings from the
// arrangement, falls back to the convex hull of the endpoints when
// nothing closes, merges overlapping or touching rings, and applies the
// fragment selection policy. The result is ordered by area, largest
// first; nil means no usable geometry.
func (r *Reconstructor) Reconstruct(segs []geometry.Segment) []geometry.Ring {
	segs = geometry.DedupSegments(segs)
	rings := Polygonize(segs)
	if len(rings) == 0 {
		hull := r.hullFallback(segs)
		if hull == nil {
			return nil
		}
		rings = []geometry.Ring{hull}
	}

	merged := geometry.OuterRings(unionAll(rings))
	sort.Slice(merged, func(i, j int) bool { return merged[i].Area() > merged[j].Area() })

	if r.Policy == config.KeepAll || len(merged) <= 1 {
		return merged
	}
	for _, dropped := range merged[1:] {
		r.Logger.Warn("dropping disjoint boundary fragment",
			"area", dropped.Area(), "kept_area", merged[0].Area())
	}
	return merged[:1]
}

// hullFallback approximates an outline as the convex hull of all
// segment endpoints. This is a heuristic for open segment sets, not a
// physically accurate boundary, and is logged as such.
func (r *Reconstructor) hullFallback(segs []geometry.Segment) geometry.Ring {
	pts := make([]geometry.Point, 0, 2*len(segs))
	for _, s := range segs {
		pts = append(pts, s.A, s.B)
	}
	pts = geometry.DistinctPoints(pts)
	if len(pts) < 3 {
		return nil
	}
	hull := geometry.ConvexHull(pts)
	if hull == nil || hull.Area() == 0 {
		return nil
	}
	r.Logger.Warn("no closed boundary found, falling back to convex hull",
		"segments", len(segs), "points", len(pts), "hull_area", hull.Area())
	return hull
}

// unionAll merges all rings into one combined area, dissolving shared
// edges and overlaps.
func unionAll(rings []geometry.Ring) []geometry.Ring {
	var acc geom.Polygonal
	for _, ring := range rings {
		p := ring.Polygonal()
		if acc == nil {
			acc = p
			continue
		}
		if u := acc.Union(p); u != nil {
			acc = u
		}
	}
	if acc == nil {
		return nil
	}
	return geometry.RingsFromGeom(acc)
}

// PadFilter bounds the foundation polygons that count as footings.
// Areas in m².
type PadFilter struct {
	// MaxArea drops polygons too large to be pads (slab artifacts).
	MaxArea float64
	// FootingMin and FootingMax bound the pad sizes whose centroid is
	// recorded as a support point.
	FootingMin float64
	FootingMax float64
}

// Pads reconstructs foundation pad outlines and picks footing
// centroids. Every merged polygon is kept individually (keep-all);
// polygons above f.MaxArea are treated as noise and dropped; a centroid
// is recorded only for pads whose area lies strictly inside the footing
// band.
func (r *Reconstructor) Pads(segs []geometry.Segment, f PadFilter) (pads []geometry.Ring, centroids []geometry.Point) {
	prev := r.Policy
	r.Policy = config.KeepAll
	rings := r.Reconstruct(segs)
	r.Policy = prev

	for _, ring := range rings {
		area := ring.Area()
		if area > f.MaxArea {
			r.Logger.Debug("skipping oversized foundation polygon", "area", area, "max", f.MaxArea)
			continue
		}
		pads = append(pads, ring)
		if area > f.FootingMin && area < f.FootingMax {
			centroids = append(centroids, ring.Centroid())
		}
	}
	return pads, centroids
}
