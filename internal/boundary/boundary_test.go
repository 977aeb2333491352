package boundary

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/config"
	"github.com/stralab/goltd/internal/geometry"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func square(x, y, side float64) []geometry.Segment {
	return geometry.Ring{
		{X: x, Y: y},
		{X: x + side, Y: y},
		{X: x + side, Y: y + side},
		{X: x, Y: y + side},
	}.Segments()
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestPolygonizeSquare(t *testing.T) {
	rings := Polygonize(square(0, 0, 1))
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	if got := rings[0].Area(); !almostEqual(got, 1, 1e-9) {
		t.Errorf("area = %v, want 1", got)
	}
	if rings[0].SignedArea() <= 0 {
		t.Errorf("bounded face should wind counter-clockwise")
	}
}

func TestPolygonizeTwoFaces(t *testing.T) {
	// Two unit squares sharing the edge x=1: three bounded faces would be
	// wrong, the shared edge belongs to both.
	segs := append(square(0, 0, 1), square(1, 0, 1)...)
	rings := Polygonize(segs)
	if len(rings) != 2 {
		t.Fatalf("got %d rings, want 2", len(rings))
	}
	total := rings[0].Area() + rings[1].Area()
	if !almostEqual(total, 2, 1e-9) {
		t.Errorf("total area = %v, want 2", total)
	}
}

func TestPolygonizeOpenChain(t *testing.T) {
	segs := []geometry.Segment{
		{A: geometry.Point{X: 0, Y: 0}, B: geometry.Point{X: 1, Y: 0}},
		{A: geometry.Point{X: 1, Y: 0}, B: geometry.Point{X: 1, Y: 1}},
		{A: geometry.Point{X: 1, Y: 1}, B: geometry.Point{X: 2, Y: 1}},
	}
	if rings := Polygonize(segs); rings != nil {
		t.Errorf("open chain produced rings: %v", rings)
	}
}

func TestReconstructKeepLargest(t *testing.T) {
	segs := append(square(0, 0, 10), square(20, 0, 2)...)
	rec := New(config.KeepLargest, quietLogger())
	rings := rec.Reconstruct(segs)
	if len(rings) != 1 {
		t.Fatalf("keep-largest kept %d rings, want 1", len(rings))
	}
	if got := rings[0].Area(); !almostEqual(got, 100, 1e-9) {
		t.Errorf("kept area = %v, want 100", got)
	}
}

func TestReconstructKeepAll(t *testing.T) {
	segs := append(square(0, 0, 10), square(20, 0, 2)...)
	rec := New(config.KeepAll, quietLogger())
	rings := rec.Reconstruct(segs)
	if len(rings) != 2 {
		t.Fatalf("keep-all kept %d rings, want 2", len(rings))
	}
	// Largest first.
	if rings[0].Area() < rings[1].Area() {
		t.Errorf("rings not ordered by area: %v then %v", rings[0].Area(), rings[1].Area())
	}
}

func TestReconstructDuplicatesAndReverses(t *testing.T) {
	segs := square(0, 0, 1)
	noisy := make([]geometry.Segment, 0, 2*len(segs))
	for _, s := range segs {
		noisy = append(noisy, s, geometry.Segment{A: s.B, B: s.A})
	}
	rec := New(config.KeepLargest, quietLogger())
	rings := rec.Reconstruct(noisy)
	if len(rings) != 1 || !almostEqual(rings[0].Area(), 1, 1e-9) {
		t.Fatalf("duplicated input should still yield the unit square, got %v", rings)
	}
}

func TestReconstructIdempotent(t *testing.T) {
	rec := New(config.KeepLargest, quietLogger())
	first := rec.Reconstruct(square(0, 0, 5))
	if len(first) != 1 {
		t.Fatalf("first pass yielded %d rings", len(first))
	}
	second := rec.Reconstruct(first[0].Segments())
	if len(second) != 1 {
		t.Fatalf("second pass yielded %d rings", len(second))
	}
	if !almostEqual(first[0].Area(), second[0].Area(), 1e-9) {
		t.Errorf("reconstruction not idempotent: %v then %v", first[0].Area(), second[0].Area())
	}
}

func TestReconstructHullFallback(t *testing.T) {
	// No closed loop: an L of two segments. The hull of the three
	// endpoints is a triangle of area 0.5.
	segs := []geometry.Segment{
		{A: geometry.Point{X: 0, Y: 0}, B: geometry.Point{X: 1, Y: 0}},
		{A: geometry.Point{X: 1, Y: 0}, B: geometry.Point{X: 1, Y: 1}},
	}
	rec := New(config.KeepLargest, quietLogger())
	rings := rec.Reconstruct(segs)
	if len(rings) != 1 {
		t.Fatalf("hull fallback yielded %d rings, want 1", len(rings))
	}
	if got := rings[0].Area(); !almostEqual(got, 0.5, 1e-9) {
		t.Errorf("hull area = %v, want 0.5", got)
	}
}

func TestReconstructNothingUsable(t *testing.T) {
	rec := New(config.KeepLargest, quietLogger())
	if got := rec.Reconstruct(nil); got != nil {
		t.Errorf("empty input should yield nil, got %v", got)
	}
	collinear := []geometry.Segment{
		{A: geometry.Point{X: 0, Y: 0}, B: geometry.Point{X: 1, Y: 0}},
		{A: geometry.Point{X: 1, Y: 0}, B: geometry.Point{X: 2, Y: 0}},
	}
	if got := rec.Reconstruct(collinear); got != nil {
		t.Errorf("collinear input should yield nil, got %v", got)
	}
}

func TestPads(t *testing.T) {
	// Three pads: one inside the footing band, one below it, one above
	// the max pad area.
	segs := square(0, 0, 1)                   // area 1: pad + centroid
	segs = append(segs, square(5, 0, 0.5)...) // area 0.25: pad, no centroid
	segs = append(segs, square(10, 0, 6)...)  // area 36: dropped entirely

	rec := New(config.KeepAll, quietLogger())
	pads, centroids := rec.Pads(segs, PadFilter{MaxArea: 20, FootingMin: 0.5, FootingMax: 5.5})

	if len(pads) != 2 {
		t.Fatalf("got %d pads, want 2", len(pads))
	}
	if len(centroids) != 1 {
		t.Fatalf("got %d centroids, want 1", len(centroids))
	}
	if !almostEqual(centroids[0].X, 0.5, 1e-9) || !almostEqual(centroids[0].Y, 0.5, 1e-9) {
		t.Errorf("centroid = %v, want (0.5, 0.5)", centroids[0])
	}
}

func TestPadsPolicyRestored(t *testing.T) {
	rec := New(config.KeepLargest, quietLogger())
	rec.Pads(square(0, 0, 1), PadFilter{MaxArea: 20, FootingMin: 0.5, FootingMax: 5.5})
	if rec.Policy != config.KeepLargest {
		t.Errorf("Pads changed the reconstructor policy to %q", rec.Policy)
	}
}
