package ingest

import (
	"strings"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/plan"
)

// Assemble combines reconstructed floor outlines with the cleaned
// column, wall, and foundation records into one FloorPlan per storey.
// Columns and walls are attached to every storey they span (from just
// above their base level to their top level), plus a roof entry for
// elements topping out at an "RF" level and a lowest-basement entry for
// walls based at an "LB" level. Wall centerlines are replaced by evenly
// spaced sample points. Levels without a reconstructed outline are
// skipped.
func Assemble(outlines map[string]geometry.Ring, columns []ColumnRecord, walls []WallRecord,
	foundations []plan.FoundationPoint, wallSamples int, logger *log.Logger) map[string]*plan.FloorPlan {

	columnsByLevel := make(map[string][]geometry.Point)
	for _, col := range columns {
		for _, level := range elementLevels(col.BaseLevel, col.TopLevel, false) {
			columnsByLevel[level] = append(columnsByLevel[level], col.Top)
		}
	}

	wallsByLevel := make(map[string][]WallRecord)
	for _, w := range walls {
		for _, level := range elementLevels(w.BaseLevel, w.TopLevel, true) {
			wallsByLevel[level] = append(wallsByLevel[level], w)
		}
	}

	foundationsByLevel := make(map[string][]geometry.Point)
	for _, f := range foundations {
		if f.Level == "" {
			continue
		}
		foundationsByLevel[f.Level] = append(foundationsByLevel[f.Level], geometry.Point{X: f.X, Y: f.Y})
	}

	plans := make(map[string]*plan.FloorPlan, len(outlines))
	for level, outline := range outlines {
		if len(outline) < 3 {
			logger.Warn("skipping level without a usable outline", "level", level)
			continue
		}
		fp := &plan.FloorPlan{
			Boundary:    outline,
			Columns:     columnsByLevel[level],
			Foundations: foundationsByLevel[level],
		}
		for _, w := range wallsByLevel[level] {
			for _, p := range geometry.SamplePoints(w.Start, w.End, wallSamples) {
				fp.Walls = append(fp.Walls, geometry.Point{X: round3(p.X), Y: round3(p.Y)})
			}
		}
		plans[level] = fp
	}
	return plans
}

// elementLevels lists the storey labels an element belongs to.
// withBasement additionally attaches elements based at an "LB" level to
// the "LB" storey (walls reach the lowest basement; columns there are
// carried by foundations instead).
func elementLevels(baseLevel, topLevel string, withBasement bool) []string {
	base, okBase := Ordinal(baseLevel)
	top, okTop := Ordinal(topLevel)
	if !okBase || !okTop {
		return nil
	}
	var levels []string
	for _, n := range StoreySpan(base, top) {
		levels = append(levels, StoreyKey(n))
	}
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(topLevel)), "RF") {
		levels = append(levels, "RF")
	}
	if withBasement && strings.HasPrefix(strings.ToUpper(strings.TrimSpace(baseLevel)), "LB") {
		levels = append(levels, "LB")
	}
	return levels
}
