// Package ingest reads the raw CSV exports produced by the BIM model
// into typed records. Malformed rows are skipped and counted; missing
// files or columns are fatal configuration errors.
package ingest

import (
	"encoding/csv"
	"math"
	"os"
	"strings"

	"github.com/stralab/goltd/internal/ltderr"
)

// table is a parsed CSV file with header-based column access.
type table struct {
	path   string
	header map[string]int
	rows   [][]string
}

// readTable loads a CSV file. Header names are whitespace-trimmed.
func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ltderr.Wrap(ltderr.CodeConfig, err, "CSV file not found: %s", path)
		}
		return nil, ltderr.Wrap(ltderr.CodeIO, err, "opening %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // exports are ragged at times; validate per cell instead
	records, err := r.ReadAll()
	if err != nil {
		return nil, ltderr.Wrap(ltderr.CodeIO, err, "reading %s", path)
	}
	if len(records) == 0 {
		return nil, ltderr.New(ltderr.CodeConfig, "empty CSV file: %s", path)
	}

	header := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	return &table{path: path, header: header, rows: records[1:]}, nil
}

// require fails with a configuration error unless every named column
// exists.
func (t *table) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.header[name]; !ok {
			return ltderr.New(ltderr.CodeConfig, "column %q not found in %s", name, t.path)
		}
	}
	return nil
}

// cell returns the named column of a row, or "" when the row is too
// short.
func (t *table) cell(row []string, name string) string {
	i, ok := t.header[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// round3 rounds coordinates to millimeter precision, the precision of
// the source export.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
