package ingest

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/ltderr"
)

// WallRecord is one wall from the wall export, reduced to its top
// centerline.
type WallRecord struct {
	ID        int            `json:"ID"`
	Start     geometry.Point `json:"Start Top"`
	End       geometry.Point `json:"End Top"`
	BaseLevel string         `json:"BaseLevel"`
	TopLevel  string         `json:"TopLevel"`
	HeightMM  float64        `json:"Height_mm"`
}

// WallFile is the cleaned wall JSON document.
type WallFile struct {
	Walls []WallRecord `json:"Walls"`
}

// WallOptions tunes the wall reader.
type WallOptions struct {
	// MinHeightMM drops walls shorter than this unconnected height:
	// parapets and upstands carry no storey load.
	MinHeightMM float64
	// TopLevelPrefix is a field label some exports prepend to the top
	// level name ("Wall Top Level: 03"); it is stripped before use.
	TopLevelPrefix string
}

// ReadWallCSV parses the wall export, skipping short walls and
// malformed rows. The skip count covers malformed rows only.
func ReadWallCSV(path string, opts WallOptions, logger *log.Logger) ([]WallRecord, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}
	if err := t.require("Wall ID", "Start X (m)", "Start Y (m)", "End X (m)", "End Y (m)",
		"Unconnected Height (mm)", "Base Level", "Top Level"); err != nil {
		return nil, 0, err
	}

	var records []WallRecord
	skipped := 0
	for _, row := range t.rows {
		rec, err := parseWallRow(t, row, opts)
		if err != nil {
			if ltderr.IsFatal(err) {
				return nil, skipped, err
			}
			skipped++
			logger.Debug("skipping wall row", "err", err)
			continue
		}
		if rec.HeightMM < opts.MinHeightMM {
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		logger.Warn("skipped malformed wall rows", "count", skipped)
	}
	return records, skipped, nil
}

func parseWallRow(t *table, row []string, opts WallOptions) (WallRecord, error) {
	height, err0 := strconv.ParseFloat(t.cell(row, "Unconnected Height (mm)"), 64)
	id, err1 := strconv.Atoi(t.cell(row, "Wall ID"))
	sx, err2 := strconv.ParseFloat(t.cell(row, "Start X (m)"), 64)
	sy, err3 := strconv.ParseFloat(t.cell(row, "Start Y (m)"), 64)
	ex, err4 := strconv.ParseFloat(t.cell(row, "End X (m)"), 64)
	ey, err5 := strconv.ParseFloat(t.cell(row, "End Y (m)"), 64)
	if err0 != nil || err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		return WallRecord{}, ltderr.New(ltderr.CodeMalformedRow, "unparseable wall row %v in %s", row, t.path)
	}
	top := strings.TrimSpace(strings.TrimPrefix(t.cell(row, "Top Level"), opts.TopLevelPrefix))
	return WallRecord{
		ID:        id,
		Start:     geometry.Point{X: round3(sx), Y: round3(sy)},
		End:       geometry.Point{X: round3(ex), Y: round3(ey)},
		BaseLevel: t.cell(row, "Base Level"),
		TopLevel:  strings.ToUpper(top),
		HeightMM:  height,
	}, nil
}
