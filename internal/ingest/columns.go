package ingest

import (
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/ltderr"
)

// ColumnRecord is one structural column from the column export. The
// top-of-column location stands for the whole shaft.
type ColumnRecord struct {
	ID        int            `json:"ID"`
	Top       geometry.Point `json:"Top"`
	BaseLevel string         `json:"BaseLevel"`
	TopLevel  string         `json:"TopLevel"`
}

// ColumnFile is the cleaned column JSON document.
type ColumnFile struct {
	Columns []ColumnRecord `json:"Columns"`
}

// ReadColumnCSV parses the column export. Rows with unparseable fields
// are skipped; the skip count is returned alongside the records.
func ReadColumnCSV(path string, logger *log.Logger) ([]ColumnRecord, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}
	if err := t.require("Column ID", "Top X (m)", "Top Y (m)", "Base Level", "Top Level"); err != nil {
		return nil, 0, err
	}

	var records []ColumnRecord
	skipped := 0
	for _, row := range t.rows {
		rec, err := parseColumnRow(t, row)
		if err != nil {
			if ltderr.IsFatal(err) {
				return nil, skipped, err
			}
			skipped++
			logger.Debug("skipping column row", "err", err)
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		logger.Warn("skipped malformed column rows", "count", skipped)
	}
	return records, skipped, nil
}

func parseColumnRow(t *table, row []string) (ColumnRecord, error) {
	id, err1 := strconv.Atoi(t.cell(row, "Column ID"))
	x, err2 := strconv.ParseFloat(t.cell(row, "Top X (m)"), 64)
	y, err3 := strconv.ParseFloat(t.cell(row, "Top Y (m)"), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return ColumnRecord{}, ltderr.New(ltderr.CodeMalformedRow, "unparseable column row %v in %s", row, t.path)
	}
	return ColumnRecord{
		ID:        id,
		Top:       geometry.Point{X: round3(x), Y: round3(y)},
		BaseLevel: t.cell(row, "Base Level"),
		TopLevel:  t.cell(row, "Top Level"),
	}, nil
}
