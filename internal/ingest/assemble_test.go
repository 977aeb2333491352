package ingest

import (
	"testing"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/plan"
)

func TestAssemble(t *testing.T) {
	outlines := map[string]geometry.Ring{
		"01": {{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		"02": {{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
	}
	columns := []ColumnRecord{
		{ID: 1, Top: geometry.Point{X: 2, Y: 2}, BaseLevel: "00 Lvl", TopLevel: "02 Lvl"},
		{ID: 2, Top: geometry.Point{X: 8, Y: 8}, BaseLevel: "01 Lvl", TopLevel: "02 Lvl"},
	}
	walls := []WallRecord{
		{ID: 3, Start: geometry.Point{X: 0, Y: 5}, End: geometry.Point{X: 4, Y: 5},
			BaseLevel: "00 Lvl", TopLevel: "01"},
	}
	foundations := []plan.FoundationPoint{
		{Level: "01", X: 5, Y: 5},
	}

	plans := Assemble(outlines, columns, walls, foundations, 5, quietLogger())
	if len(plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(plans))
	}

	p1 := plans["01"]
	// Column 1 spans 01 and 02; column 2 only 02.
	if len(p1.Columns) != 1 || p1.Columns[0] != (geometry.Point{X: 2, Y: 2}) {
		t.Errorf("01 columns = %v", p1.Columns)
	}
	if len(p1.Walls) != 5 {
		t.Fatalf("01 has %d wall samples, want 5", len(p1.Walls))
	}
	if p1.Walls[0] != (geometry.Point{X: 0, Y: 5}) || p1.Walls[4] != (geometry.Point{X: 4, Y: 5}) {
		t.Errorf("wall samples should include the endpoints: %v", p1.Walls)
	}
	if p1.Walls[2] != (geometry.Point{X: 2, Y: 5}) {
		t.Errorf("middle wall sample = %v, want (2, 5)", p1.Walls[2])
	}
	if len(p1.Foundations) != 1 {
		t.Errorf("01 foundations = %v", p1.Foundations)
	}

	p2 := plans["02"]
	if len(p2.Columns) != 2 {
		t.Errorf("02 columns = %v", p2.Columns)
	}
	if len(p2.Walls) != 0 {
		t.Errorf("wall topping out at 01 leaked onto 02: %v", p2.Walls)
	}
}

func TestAssembleSkipsLevelsWithoutOutline(t *testing.T) {
	outlines := map[string]geometry.Ring{
		"00": {{X: 0, Y: 0}, {X: 1, Y: 0}}, // degenerate
	}
	plans := Assemble(outlines, nil, nil, nil, 5, quietLogger())
	if len(plans) != 0 {
		t.Errorf("degenerate outline should be skipped, got %v", plans)
	}
}

func TestElementLevels(t *testing.T) {
	if got := elementLevels("00 Lvl", "02 Lvl", false); len(got) != 2 || got[0] != "01" || got[1] != "02" {
		t.Errorf("elementLevels(00, 02) = %v", got)
	}

	roof := elementLevels("00 Lvl", "RF Roof", false)
	if len(roof) == 0 || roof[len(roof)-1] != "RF" {
		t.Errorf("roof-topping element should carry an RF entry, got %d levels", len(roof))
	}

	basement := elementLevels("LB Lvl", "00 Lvl", true)
	if len(basement) != 2 || basement[0] != "00" || basement[1] != "LB" {
		t.Errorf("elementLevels(LB, 00, basement) = %v", basement)
	}

	if got := elementLevels("Mezz", "02 Lvl", false); got != nil {
		t.Errorf("unresolvable base level should yield nil, got %v", got)
	}
}
