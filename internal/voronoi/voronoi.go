// Package voronoi builds bounded Voronoi tessellations. The standard
// diagram is obtained as the dual of a Delaunay triangulation; regions
// that would extend to infinity are closed off by extending their open
// ridges far enough to cover any later clip region.
package voronoi

import (
	"math"

	"github.com/fogleman/delaunay"

	"github.com/stralab/goltd/internal/geometry"
)

// Cell is one bounded Voronoi region.
type Cell struct {
	// Index is the position of the site in the input slice.
	Index int
	Site  geometry.Point
	// Ring holds the cell vertices ordered by angle about their mean,
	// so the cell is a well-formed polygon.
	Ring geometry.Ring
}

// Build computes a bounded Voronoi cell for each site. Sites whose
// native region is unbounded get synthetic far vertices: each open
// ridge is extended in the direction away from the site centroid by
// twice the point set's bounding-box span, which guarantees the cell
// covers any clip region containing the sites.
//
// Fewer than 3 distinct sites, or a site set the triangulation rejects
// (all collinear), yields nil. Tributary splitting is undefined there;
// callers decide how to degrade.
func Build(sites []geometry.Point) []Cell {
	if len(geometry.DistinctPoints(sites)) < 3 {
		return nil
	}

	pts := make([]delaunay.Point, len(sites))
	for i, s := range sites {
		pts[i] = delaunay.Point{X: s.X, Y: s.Y}
	}
	tri, err := delaunay.Triangulate(pts)
	if err != nil || len(tri.Triangles) == 0 {
		return nil
	}

	// One Voronoi vertex per Delaunay triangle.
	nt := len(tri.Triangles) / 3
	centers := make([]geometry.Point, nt)
	for t := 0; t < nt; t++ {
		a := sites[tri.Triangles[3*t]]
		b := sites[tri.Triangles[3*t+1]]
		c := sites[tri.Triangles[3*t+2]]
		centers[t] = circumcenter(a, b, c)
	}

	center := mean(sites)
	radius := 2 * span(sites)

	// Collect each site's cell vertices from its ridges. Every
	// triangulation edge is dual to a Voronoi ridge between the two
	// sites it joins; hull edges are dual to open ridges.
	verts := make([][]geometry.Point, len(sites))
	add := func(site int, p geometry.Point) {
		verts[site] = append(verts[site], p)
	}
	for e := 0; e < len(tri.Triangles); e++ {
		o := tri.Halfedges[e]
		if o >= 0 && o < e {
			continue // ridge already handled from the twin edge
		}
		p1 := tri.Triangles[e]
		p2 := tri.Triangles[nextHalfedge(e)]
		c1 := centers[e/3]
		if o >= 0 {
			c2 := centers[o/3]
			add(p1, c1)
			add(p1, c2)
			add(p2, c1)
			add(p2, c2)
			continue
		}
		far := extendRidge(c1, sites[p1], sites[p2], center, radius)
		add(p1, c1)
		add(p1, far)
		add(p2, c1)
		add(p2, far)
	}

	cells := make([]Cell, 0, len(sites))
	for i := range sites {
		vs := geometry.DistinctPoints(verts[i])
		if len(vs) < 3 {
			continue
		}
		cells = append(cells, Cell{
			Index: i,
			Site:  sites[i],
			Ring:  geometry.Ring(geometry.SortAroundCentroid(vs)),
		})
	}
	return cells
}

// extendRidge produces the far vertex closing an open ridge between
// sites s1 and s2. The ridge runs along the perpendicular of s1→s2;
// the sign of the perpendicular is chosen so the extension points away
// from the site centroid.
func extendRidge(from, s1, s2, center geometry.Point, radius float64) geometry.Point {
	tx, ty := s2.X-s1.X, s2.Y-s1.Y
	n := math.Hypot(tx, ty)
	if n == 0 {
		return from
	}
	nx, ny := -ty/n, tx/n
	mx, my := (s1.X+s2.X)/2, (s1.Y+s2.Y)/2
	dot := (mx-center.X)*nx + (my-center.Y)*ny
	if dot == 0 {
		return from
	}
	if dot < 0 {
		nx, ny = -nx, -ny
	}
	return geometry.Point{X: from.X + nx*radius, Y: from.Y + ny*radius}
}

// nextHalfedge steps to the next half-edge of the same triangle.
func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

func circumcenter(a, b, c geometry.Point) geometry.Point {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if d == 0 {
		return mean([]geometry.Point{a, b, c})
	}
	a2 := a.X*a.X + a.Y*a.Y
	b2 := b.X*b.X + b.Y*b.Y
	c2 := c.X*c.X + c.Y*c.Y
	return geometry.Point{
		X: (a2*(b.Y-c.Y) + b2*(c.Y-a.Y) + c2*(a.Y-b.Y)) / d,
		Y: (a2*(c.X-b.X) + b2*(a.X-c.X) + c2*(b.X-a.X)) / d,
	}
}

func mean(pts []geometry.Point) geometry.Point {
	var x, y float64
	for _, p := range pts {
		x += p.X
		y += p.Y
	}
	n := float64(len(pts))
	return geometry.Point{X: x / n, Y: y / n}
}

// span returns the larger side of the point set's bounding box.
func span(pts []geometry.Point) float64 {
	min, max := geometry.Ring(pts).Bounds()
	return math.Max(max.X-min.X, max.Y-min.Y)
}
