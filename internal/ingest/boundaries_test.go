package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/ltderr"
)

func TestParseBoundaryLines(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  int
	}{
		{"two segments semicolon", "(0, 0)-(1, 0); (1, 0)-(1, 1)", 2},
		{"pipe separator", "(0,0)-(1,0) | (1,0)-(1,1)", 2},
		{"negative and decimal", "(-1.5, 0.25)-(2.75, -3)", 1},
		{"single pair chunk dropped", "(0, 0); (1, 0)-(1, 1)", 1},
		{"three pairs in a chunk dropped", "(0,0)-(1,0)-(2,0)", 0},
		{"zero length dropped", "(1, 1)-(1, 1)", 0},
		{"reverse duplicate removed", "(0,0)-(1,0); (1,0)-(0,0)", 1},
		{"empty", "", 0},
		{"garbage", "no coordinates here", 0},
	}
	for _, tt := range tests {
		if got := ParseBoundaryLines(tt.field); len(got) != tt.want {
			t.Errorf("%s: got %d segments, want %d: %v", tt.name, len(got), tt.want, got)
		}
	}
}

func TestParseBoundaryLinesValues(t *testing.T) {
	segs := ParseBoundaryLines("(0.5, -1)-(2, 3.25)")
	if len(segs) != 1 {
		t.Fatalf("got %d segments, want 1", len(segs))
	}
	want := geometry.Segment{
		A: geometry.Point{X: 0.5, Y: -1},
		B: geometry.Point{X: 2, Y: 3.25},
	}.Canonical()
	if segs[0] != want {
		t.Errorf("segment = %v, want %v", segs[0], want)
	}
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadBoundaryCSV(t *testing.T) {
	csv := "Level,Boundary Lines (m)\n" +
		"\"00 Lvl\",\"(0, 0)-(10, 0); (10, 0)-(10, 10)\"\n" +
		"\"00 Lvl\",\"(10, 10)-(0, 10); (0, 10)-(0, 0)\"\n" +
		"\"01 Lvl\",\"(0, 0)-(5, 0)\"\n" +
		"\"02 Lvl\",\"\"\n"
	path := writeCSV(t, "floor_data.csv", csv)

	groups, skipped, err := ReadBoundaryCSV(path, quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1 (the empty row)", skipped)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// Sorted by label.
	if groups[0].Group != "00" || groups[1].Group != "01" {
		t.Errorf("group labels = %q, %q", groups[0].Group, groups[1].Group)
	}
	if len(groups[0].Segments) != 4 {
		t.Errorf("group 00 has %d segments, want 4", len(groups[0].Segments))
	}
}

func TestReadBoundaryCSVMissingColumn(t *testing.T) {
	path := writeCSV(t, "floor_data.csv", "Level,Something Else\n\"00\",x\n")
	_, _, err := ReadBoundaryCSV(path, quietLogger())
	if err == nil {
		t.Fatal("missing column should be an error")
	}
	if !ltderr.HasCode(err, ltderr.CodeConfig) {
		t.Errorf("error should carry the CONFIG code, got %v", err)
	}
}

func TestReadBoundaryCSVMissingFile(t *testing.T) {
	_, _, err := ReadBoundaryCSV(filepath.Join(t.TempDir(), "absent.csv"), quietLogger())
	if !ltderr.HasCode(err, ltderr.CodeConfig) {
		t.Errorf("missing file should be a CONFIG error, got %v", err)
	}
}
