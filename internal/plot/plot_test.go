package plot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/plan"
	"github.com/stralab/goltd/internal/tributary"
)

func unitSquare() geometry.Ring {
	return geometry.Ring{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
}

func TestSaveOutline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plots", "outline.png")
	if err := SaveOutline(unitSquare(), "Floor Boundary 00 Lvl", path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "outline.bmp")
	err := SaveOutline(unitSquare(), "t", path)
	if err == nil || !strings.Contains(err.Error(), "unsupported plot format") {
		t.Errorf("want unsupported-format error, got %v", err)
	}
}

func TestSaveFloorPlan(t *testing.T) {
	fp := &plan.FloorPlan{
		Boundary:    unitSquare(),
		Columns:     []geometry.Point{{X: 0.25, Y: 0.25}},
		Walls:       []geometry.Point{{X: 0.5, Y: 0.5}},
		Foundations: []geometry.Point{{X: 0.75, Y: 0.75}},
	}
	path := filepath.Join(t.TempDir(), "plan.svg")
	if err := SaveFloorPlan(fp, "Structural Plan", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestSaveTessellation(t *testing.T) {
	zones := []tributary.Zone{{Outline: unitSquare(), Weight: 1.0}}
	results := []tributary.Result{{
		Site:         geometry.Point{X: 0.5, Y: 0.5},
		Role:         plan.RoleColumn,
		Cell:         []geometry.Ring{unitSquare()},
		RawArea:      1,
		WeightedArea: 1,
	}}
	path := filepath.Join(t.TempDir(), "tess.png")
	if err := SaveTessellation(unitSquare(), zones, results, "Tributary Areas", path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}
