package pipeline

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/config"
	"github.com/stralab/goltd/internal/ltderr"
	"github.com/stralab/goltd/internal/plan"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// writeProject lays out a minimal working folder: one 10×10 floor on
// level 01 with two columns, full-floor permanent and imposed load
// zones, and empty wall and foundation exports.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"column_data.csv": "Column ID,Top X (m),Top Y (m),Base Level,Top Level\n" +
			"1,2,2,00 Lvl,01 Lvl\n" +
			"2,8,2,00 Lvl,01 Lvl\n",
		"wall_data.csv": "Wall ID,Start X (m),Start Y (m),End X (m),End Y (m),Unconnected Height (mm),Base Level,Top Level\n",
		"floor_data.csv": "Level,Boundary Lines (m)\n" +
			"\"01 Lvl\",\"(0, 0)-(10, 0); (10, 0)-(10, 10)\"\n" +
			"\"01 Lvl\",\"(10, 10)-(0, 10); (0, 10)-(0, 0)\"\n",
		"foundation_data.csv": "Level,Boundary Lines (m)\n",
		"filled_region_boundaries_filtered.csv": "FilledRegion_ID,FilledRegionType,View_Name,Loop_Index,X (m),Y (m)\n" +
			"10,Floor Load G1,01 - Permanent Loading,0,0,0\n" +
			"10,Floor Load G1,01 - Permanent Loading,0,10,0\n" +
			"10,Floor Load G1,01 - Permanent Loading,0,10,10\n" +
			"10,Floor Load G1,01 - Permanent Loading,0,0,10\n" +
			"11,Floor Load Q1,01 - Imposed Loading,0,0,0\n" +
			"11,Floor Load Q1,01 - Imposed Loading,0,10,0\n" +
			"11,Floor Load Q1,01 - Imposed Loading,0,10,10\n" +
			"11,Floor Load Q1,01 - Imposed Loading,0,0,10\n",
	}
	if err := os.MkdirAll(filepath.Join(dir, "Revit_Data"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, "Revit_Data", name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRunEndToEnd(t *testing.T) {
	dir := writeProject(t)
	p := New(dir, config.Default(), false, quietLogger())

	var sb strings.Builder
	if err := p.Run(&sb); err != nil {
		t.Fatal(err)
	}

	// The tributary results carry one floor with two sites, each claiming
	// half the floor per pass.
	var results plan.Results
	if err := plan.ReadJSON(p.Paths.ResultsJSON(), &results); err != nil {
		t.Fatal(err)
	}
	fr, ok := results["01"]
	if !ok {
		t.Fatalf("results missing level 01: %v", results)
	}
	if len(fr.Cells) != 4 {
		t.Fatalf("got %d cell records, want 2 sites × 2 passes", len(fr.Cells))
	}
	for i, c := range fr.Cells {
		if !almostEqual(c.Area, 50, 1e-6) {
			t.Errorf("cell %d area = %v, want 50", i, c.Area)
		}
	}
	// Permanent pass at the default 1.0, imposed at 0.8.
	if !almostEqual(fr.Cells[0].WeightedArea, 50, 1e-6) {
		t.Errorf("permanent weighted area = %v, want 50", fr.Cells[0].WeightedArea)
	}
	if !almostEqual(fr.Cells[2].WeightedArea, 40, 1e-6) {
		t.Errorf("imposed weighted area = %v, want 40", fr.Cells[2].WeightedArea)
	}

	out := sb.String()
	if !strings.Contains(out, "C001") || !strings.Contains(out, "C002") {
		t.Errorf("summary table missing column groups:\n%s", out)
	}
	if !strings.Contains(out, "90.000") {
		t.Errorf("summary table missing the 90 kN SLS total:\n%s", out)
	}

	if _, err := os.Stat(p.Paths.SummaryXLSX()); err != nil {
		t.Errorf("workbook not written: %v", err)
	}
	if _, err := os.Stat(p.Paths.FloorPlanJSON()); err != nil {
		t.Errorf("floor plan JSON not written: %v", err)
	}
}

func TestStepsRequirePredecessors(t *testing.T) {
	dir := t.TempDir()
	p := New(dir, config.Default(), false, quietLogger())

	if err := p.Combine(); !ltderr.HasCode(err, ltderr.CodeConfig) {
		t.Errorf("combine without inputs should be a CONFIG error, got %v", err)
	}
	if err := p.Tributary(); !ltderr.HasCode(err, ltderr.CodeConfig) {
		t.Errorf("tributary without inputs should be a CONFIG error, got %v", err)
	}
	if err := p.Summary(io.Discard); !ltderr.HasCode(err, ltderr.CodeConfig) {
		t.Errorf("summary without inputs should be a CONFIG error, got %v", err)
	}
}

func TestCleanStepsWriteJSON(t *testing.T) {
	dir := writeProject(t)
	p := New(dir, config.Default(), false, quietLogger())

	if err := p.CleanColumns(); err != nil {
		t.Fatal(err)
	}
	if err := p.CleanWalls(); err != nil {
		t.Fatal(err)
	}
	if err := p.CleanRegions(); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{p.Paths.ColumnsJSON(), p.Paths.WallsJSON(), p.Paths.RegionsJSON()} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output %s: %v", path, err)
		}
	}
}
