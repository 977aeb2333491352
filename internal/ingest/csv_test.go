package ingest

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/ltderr"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestReadTable(t *testing.T) {
	path := writeCSV(t, "data.csv", " A , B \n1,2\n3\n")
	tab, err := readTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := tab.require("A", "B"); err != nil {
		t.Errorf("trimmed headers should resolve: %v", err)
	}
	if err := tab.require("C"); !ltderr.HasCode(err, ltderr.CodeConfig) {
		t.Errorf("missing column should be a CONFIG error, got %v", err)
	}
	if got := tab.cell(tab.rows[0], "B"); got != "2" {
		t.Errorf("cell = %q, want 2", got)
	}
	// Ragged row: missing cells read as empty.
	if got := tab.cell(tab.rows[1], "B"); got != "" {
		t.Errorf("short row cell = %q, want empty", got)
	}
}

func TestReadTableEmpty(t *testing.T) {
	path := writeCSV(t, "empty.csv", "")
	if _, err := readTable(path); !ltderr.HasCode(err, ltderr.CodeConfig) {
		t.Errorf("empty file should be a CONFIG error, got %v", err)
	}
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.23456, 1.235},
		{-1.23449, -1.234},
		{2, 2},
	}
	for _, tt := range tests {
		if got := round3(tt.in); got != tt.want {
			t.Errorf("round3(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
