package geometry

import (
	"math"
	"sort"

	"github.com/ctessum/geom"
)

// Point represents a 2D coordinate in meters
type Point struct {
	X float64 `json:"X"`
	Y float64 `json:"Y"`
}

// DistanceTo returns the Euclidean distance to q in meters
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Segment is a straight line between two points.
// Segments are undirected for merge and deduplication purposes:
// a segment and its reverse are the same segment.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Canonical returns the segment with its endpoints in a deterministic
// order so that a segment and its reverse compare equal.
func (s Segment) Canonical() Segment {
	if s.B.X < s.A.X || (s.B.X == s.A.X && s.B.Y < s.A.Y) {
		return Segment{A: s.B, B: s.A}
	}
	return s
}

// Length returns the segment length in meters
func (s Segment) Length() float64 {
	return s.A.DistanceTo(s.B)
}

// DedupSegments removes zero-length segments and duplicates (ignoring
// direction). The result is sorted canonically so that downstream
// processing is deterministic regardless of input order.
func DedupSegments(segs []Segment) []Segment {
	seen := make(map[Segment]struct{}, len(segs))
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.A == s.B {
			continue
		}
		c := s.Canonical()
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.A.X != b.A.X {
			return a.A.X < b.A.X
		}
		if a.A.Y != b.A.Y {
			return a.A.Y < b.A.Y
		}
		if a.B.X != b.B.X {
			return a.B.X < b.B.X
		}
		return a.B.Y < b.B.Y
	})
	return out
}

// DistinctPoints returns the unique points of pts, preserving first-seen order.
func DistinctPoints(pts []Point) []Point {
	seen := make(map[Point]struct{}, len(pts))
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// SamplePoints returns n evenly spaced points along the segment from a
// to b, endpoints included. Wall centerlines are represented this way
// because the tessellation requires point sites.
func SamplePoints(a, b Point, n int) []Point {
	if n < 2 {
		return []Point{a}
	}
	out := make([]Point, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		out[i] = Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
	}
	return out
}

// Ring is an ordered closed sequence of vertices. The closing edge from
// the last vertex back to the first is implicit; the first vertex is not
// repeated at the end.
type Ring []Point

// SignedArea computes the signed area using the shoelace formula.
// Counter-clockwise rings have positive area.
func (r Ring) SignedArea() float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += r[i].X*r[j].Y - r[j].X*r[i].Y
	}
	return sum / 2
}

// Area returns the absolute enclosed area in m²
func (r Ring) Area() float64 {
	return math.Abs(r.SignedArea())
}

// Centroid computes the area centroid using the shoelace formula.
// Degenerate rings fall back to the vertex mean.
func (r Ring) Centroid() Point {
	n := len(r)
	if n == 0 {
		return Point{}
	}
	var signed, sumX, sumY float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := r[i].X*r[j].Y - r[j].X*r[i].Y
		signed += cross
		sumX += (r[i].X + r[j].X) * cross
		sumY += (r[i].Y + r[j].Y) * cross
	}
	signed /= 2
	if signed == 0 {
		var mx, my float64
		for _, p := range r {
			mx += p.X
			my += p.Y
		}
		return Point{X: mx / float64(n), Y: my / float64(n)}
	}
	return Point{X: sumX / (6 * signed), Y: sumY / (6 * signed)}
}

// Bounds returns the axis-aligned bounding box of the ring
func (r Ring) Bounds() (min, max Point) {
	if len(r) == 0 {
		return Point{}, Point{}
	}
	min, max = r[0], r[0]
	for _, p := range r {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}

// Contains reports whether p lies inside the ring using ray casting.
// Points exactly on the boundary are not guaranteed either way.
func (r Ring) Contains(p Point) bool {
	n := len(r)
	inside := false
	for i := 0; i < n; i++ {
		a, b := r[i], r[(i+1)%n]
		if (a.Y <= p.Y && b.Y > p.Y) || (b.Y <= p.Y && a.Y > p.Y) {
			t := (p.Y - a.Y) / (b.Y - a.Y)
			if a.X+t*(b.X-a.X) > p.X {
				inside = !inside
			}
		}
	}
	return inside
}

// Segments returns the ring's edges, including the implicit closing edge.
func (r Ring) Segments() []Segment {
	n := len(r)
	if n < 2 {
		return nil
	}
	out := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Segment{A: r[i], B: r[(i+1)%n]})
	}
	return out
}

// Polygonal converts the ring to a ctessum/geom polygon for boolean operations
func (r Ring) Polygonal() geom.Polygon {
	ring := make([]geom.Point, len(r))
	for i, p := range r {
		ring[i] = geom.Point{X: p.X, Y: p.Y}
	}
	return geom.Polygon{ring}
}

// RingsFromGeom converts a polygonal boolean-operation result back
// into rings, dropping duplicated closing vertices and degenerate
// rings. Union and Intersection return the Polygonal interface;
// anything that is not a concrete polygon yields no rings.
func RingsFromGeom(pg geom.Polygonal) []Ring {
	p, ok := pg.(geom.Polygon)
	if !ok {
		return nil
	}
	out := make([]Ring, 0, len(p))
	for _, ring := range p {
		r := make(Ring, 0, len(ring))
		for _, pt := range ring {
			r = append(r, Point{X: pt.X, Y: pt.Y})
		}
		if len(r) > 1 && r[0] == r[len(r)-1] {
			r = r[:len(r)-1]
		}
		if len(r) >= 3 && r.Area() > 0 {
			out = append(out, r)
		}
	}
	return out
}

// OuterRings filters a ring set down to the rings not contained inside a
// larger ring. Holes of a merged polygon are removed; disjoint outlines
// are kept.
func OuterRings(rings []Ring) []Ring {
	out := make([]Ring, 0, len(rings))
	for i, r := range rings {
		inner := false
		for j, o := range rings {
			if i == j {
				continue
			}
			if o.Area() > r.Area() && o.Contains(r.Centroid()) {
				inner = true
				break
			}
		}
		if !inner {
			out = append(out, r)
		}
	}
	return out
}

// Largest returns the ring with the greatest enclosed area, or nil for
// an empty set.
func Largest(rings []Ring) Ring {
	var best Ring
	bestArea := 0.0
	for _, r := range rings {
		if a := r.Area(); best == nil || a > bestArea {
			best, bestArea = r, a
		}
	}
	return best
}

// SortAroundCentroid orders points by angle about their mean point so
// that a convex vertex set forms a non-self-intersecting ring.
func SortAroundCentroid(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))
	out := make([]Point, len(pts))
	copy(out, pts)
	sort.Slice(out, func(i, j int) bool {
		return math.Atan2(out[i].Y-cy, out[i].X-cx) < math.Atan2(out[j].Y-cy, out[j].X-cx)
	})
	return out
}
