package ingest

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/ltderr"
	"github.com/stralab/goltd/internal/plan"
)

// regionKey identifies one polygon loop of one filled region on one
// load view. The type code is part of the key: two loops sharing an ID
// and loop index but drawn with different region types stay separate.
type regionKey struct {
	level      string
	loadType   string
	regionID   int
	regionType string
	loopIndex  int
}

// regionRow is one parsed vertex row of the filled-region export.
type regionRow struct {
	key regionKey
	pt  geometry.Point
}

func parseRegionRow(t *table, row []string) (regionRow, error) {
	id, err1 := strconv.Atoi(t.cell(row, "FilledRegion_ID"))
	loop, err2 := strconv.Atoi(t.cell(row, "Loop_Index"))
	x, err3 := strconv.ParseFloat(t.cell(row, "X (m)"), 64)
	y, err4 := strconv.ParseFloat(t.cell(row, "Y (m)"), 64)
	regionType := t.cell(row, "FilledRegionType")
	viewName := t.cell(row, "View_Name")
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || regionType == "" {
		return regionRow{}, ltderr.New(ltderr.CodeMalformedRow, "unparseable region row %v in %s", row, t.path)
	}
	if len(regionType) > 3 {
		regionType = regionType[len(regionType)-3:]
	}
	regionType = strings.TrimSpace(regionType)

	loadType := "Other"
	switch {
	case strings.Contains(viewName, "Permanent"):
		loadType = plan.PassPermanent
	case strings.Contains(viewName, "Imposed"):
		loadType = plan.PassImposed
	}
	level := NormalizeLoadLevel(strings.SplitN(viewName, "-", 2)[0])

	return regionRow{
		key: regionKey{level: level, loadType: loadType, regionID: id, regionType: regionType, loopIndex: loop},
		pt:  geometry.Point{X: x, Y: y},
	}, nil
}

// ReadRegionCSV parses the filled-region export into a load set. Each
// row is one vertex; vertices are accumulated per region loop in row
// order. The load category comes from the view name, the level from
// the view name's prefix, and the region type code from the last three
// characters of the filled-region type ("Floor Load G1" → "G1").
func ReadRegionCSV(path string, logger *log.Logger) (plan.LoadSet, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}
	if err := t.require("FilledRegion_ID", "FilledRegionType", "View_Name",
		"Loop_Index", "X (m)", "Y (m)"); err != nil {
		return nil, 0, err
	}

	regions := make(map[regionKey]*plan.LoadRegion)
	var order []regionKey
	skipped := 0
	for _, row := range t.rows {
		rr, err := parseRegionRow(t, row)
		if err != nil {
			if ltderr.IsFatal(err) {
				return nil, skipped, err
			}
			skipped++
			logger.Debug("skipping region row", "err", err)
			continue
		}
		reg, ok := regions[rr.key]
		if !ok {
			reg = &plan.LoadRegion{RegionID: rr.key.regionID, RegionType: rr.key.regionType, LoopIndex: rr.key.loopIndex}
			regions[rr.key] = reg
			order = append(order, rr.key)
		}
		reg.Vertices = append(reg.Vertices, rr.pt)
	}
	if skipped > 0 {
		logger.Warn("skipped malformed region rows", "count", skipped)
	}

	// Deterministic region order within each level and pass.
	sort.SliceStable(order, func(i, j int) bool {
		a, b := order[i], order[j]
		if a.regionID != b.regionID {
			return a.regionID < b.regionID
		}
		if a.regionType != b.regionType {
			return a.regionType < b.regionType
		}
		return a.loopIndex < b.loopIndex
	})

	set := make(plan.LoadSet)
	for _, key := range order {
		byPass, ok := set[key.level]
		if !ok {
			byPass = map[string][]plan.LoadRegion{
				plan.PassPermanent: nil,
				plan.PassImposed:   nil,
			}
			set[key.level] = byPass
		}
		byPass[key.loadType] = append(byPass[key.loadType], *regions[key])
	}
	return set, skipped, nil
}
