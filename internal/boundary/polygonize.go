package boundary

import (
	"math"
	"sort"

	"github.com/stralab/goltd/internal/geometry"
)

// areaEps discards walk cycles whose enclosed area is numerically zero
// (pure dangles and back-and-forth spurs).
const areaEps = 1e-9

// dedge is a directed edge of the arrangement.
type dedge struct{ from, to geometry.Point }

// Polygonize treats the segment set as a planar arrangement and
// extracts every bounded face as a ring. Segments are assumed to be
// noded at shared endpoints (BIM boundary exports meet endpoint to
// endpoint). Dangling segments and open chains contribute no face.
//
// The walk visits each directed edge once; at every vertex it takes the
// clockwise-next neighbor relative to the arrival direction, which
// traces bounded faces counter-clockwise and the single unbounded face
// clockwise. Keeping only positive signed areas drops the unbounded
// face.
func Polygonize(segs []geometry.Segment) []geometry.Ring {
	segs = geometry.DedupSegments(segs)
	if len(segs) < 3 {
		return nil
	}

	// Vertex adjacency, each neighbor list sorted by angle.
	adj := make(map[geometry.Point][]geometry.Point)
	for _, s := range segs {
		adj[s.A] = append(adj[s.A], s.B)
		adj[s.B] = append(adj[s.B], s.A)
	}
	for v, nbrs := range adj {
		v := v
		sort.Slice(nbrs, func(i, j int) bool {
			return angle(v, nbrs[i]) < angle(v, nbrs[j])
		})
		adj[v] = nbrs
	}

	visited := make(map[dedge]bool, 2*len(segs))
	var rings []geometry.Ring
	for _, s := range segs {
		for _, start := range []dedge{{s.A, s.B}, {s.B, s.A}} {
			ring := walkFace(start, adj, visited)
			if len(ring) >= 3 && ring.SignedArea() > areaEps {
				rings = append(rings, ring)
			}
		}
	}
	return rings
}

// walkFace traces one face starting with the given directed edge. It
// returns nil if the edge was already consumed by an earlier walk, or
// if the walk runs into an edge of another face (malformed input).
func walkFace(start dedge, adj map[geometry.Point][]geometry.Point, visited map[dedge]bool) geometry.Ring {
	var ring geometry.Ring
	e := start
	for {
		if visited[e] {
			return nil
		}
		visited[e] = true
		ring = append(ring, e.from)
		e = dedge{e.to, clockwiseNext(e.to, e.from, adj[e.to])}
		if e == start {
			return ring
		}
	}
}

// clockwiseNext picks, among the neighbors of v, the one whose angle is
// the next one clockwise from the direction back to prev.
func clockwiseNext(v, prev geometry.Point, nbrs []geometry.Point) geometry.Point {
	if len(nbrs) == 1 {
		return nbrs[0] // dead end: turn back
	}
	in := angle(v, prev)
	var best geometry.Point
	bestAngle := math.Inf(-1)
	found := false
	for _, w := range nbrs {
		if a := angle(v, w); a < in && a > bestAngle {
			best, bestAngle, found = w, a, true
		}
	}
	if found {
		return best
	}
	// Wrap around: take the largest angle overall.
	for _, w := range nbrs {
		if a := angle(v, w); a > bestAngle {
			best, bestAngle = w, a
		}
	}
	return best
}

func angle(from, to geometry.Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}
