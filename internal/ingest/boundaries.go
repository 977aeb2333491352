package ingest

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/geometry"
)

// coordRe matches one "(x, y)" coordinate pair.
var coordRe = regexp.MustCompile(`\(\s*([-+]?\d*\.?\d+)\s*,\s*([-+]?\d*\.?\d+)\s*\)`)

// chunkRe splits a boundary-lines field into per-segment chunks.
var chunkRe = regexp.MustCompile(`[;|]`)

// ParseBoundaryLines extracts line segments from a
// "(x1, y1)-(x2, y2); (x3, y3)-(x4, y4)" style field. Chunks that do
// not contain exactly two coordinate pairs and zero-length segments are
// dropped; the result is deduplicated ignoring direction.
func ParseBoundaryLines(s string) []geometry.Segment {
	var segs []geometry.Segment
	for _, chunk := range chunkRe.Split(s, -1) {
		pairs := coordRe.FindAllStringSubmatch(chunk, -1)
		if len(pairs) != 2 {
			continue
		}
		x1, err1 := strconv.ParseFloat(pairs[0][1], 64)
		y1, err2 := strconv.ParseFloat(pairs[0][2], 64)
		x2, err3 := strconv.ParseFloat(pairs[1][1], 64)
		y2, err4 := strconv.ParseFloat(pairs[1][2], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		segs = append(segs, geometry.Segment{
			A: geometry.Point{X: x1, Y: y1},
			B: geometry.Point{X: x2, Y: y2},
		})
	}
	return geometry.DedupSegments(segs)
}

// LevelSegments is the boundary geometry of one level group.
type LevelSegments struct {
	Group    string
	Segments []geometry.Segment
}

// ReadBoundaryCSV parses a geometry export carrying a "Level" and a
// "Boundary Lines (m)" column, grouping the parsed segments by level
// prefix. Groups come back sorted by label. Rows with no parseable
// segments are counted as skipped.
func ReadBoundaryCSV(path string, logger *log.Logger) ([]LevelSegments, int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, 0, err
	}
	if err := t.require("Level", "Boundary Lines (m)"); err != nil {
		return nil, 0, err
	}

	byGroup := make(map[string][]geometry.Segment)
	skipped := 0
	for _, row := range t.rows {
		segs := ParseBoundaryLines(t.cell(row, "Boundary Lines (m)"))
		if len(segs) == 0 {
			skipped++
			logger.Debug("skipping row with no parseable boundary lines",
				"level", t.cell(row, "Level"))
			continue
		}
		group := Prefix(t.cell(row, "Level"))
		byGroup[group] = append(byGroup[group], segs...)
	}
	if skipped > 0 {
		logger.Warn("skipped rows with no parseable boundary lines", "count", skipped)
	}

	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	out := make([]LevelSegments, 0, len(groups))
	for _, g := range groups {
		out = append(out, LevelSegments{Group: g, Segments: geometry.DedupSegments(byGroup[g])})
	}
	return out, skipped, nil
}
