// Package pipeline wires the processing steps of the load take-down
// run. Each step reads its inputs from the working folder, writes its
// outputs back, and can run on its own; Run chains them in dependency
// order.
package pipeline

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/stralab/goltd/internal/boundary"
	"github.com/stralab/goltd/internal/config"
	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/ingest"
	"github.com/stralab/goltd/internal/ltderr"
	"github.com/stralab/goltd/internal/plan"
	"github.com/stralab/goltd/internal/plot"
	"github.com/stralab/goltd/internal/report"
	"github.com/stralab/goltd/internal/takedown"
	"github.com/stralab/goltd/internal/tributary"
)

// Pipeline carries the run configuration shared by all steps.
type Pipeline struct {
	Cfg    *config.Config
	Paths  plan.Paths
	Logger *log.Logger
	// Plots enables check-plot rendering alongside the JSON outputs.
	Plots bool
}

// New builds a Pipeline over a working folder.
func New(dir string, cfg *config.Config, plots bool, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{Cfg: cfg, Paths: plan.NewPaths(dir), Logger: logger, Plots: plots}
}

// CleanColumns reads the raw column export and writes the cleaned
// column JSON.
func (p *Pipeline) CleanColumns() error {
	records, skipped, err := ingest.ReadColumnCSV(p.Paths.ColumnCSV(), p.Logger)
	if err != nil {
		return err
	}
	p.Logger.Info("cleaned columns", "kept", len(records), "skipped", skipped)
	return plan.WriteJSON(p.Paths.ColumnsJSON(), ingest.ColumnFile{Columns: records})
}

// CleanWalls reads the raw wall export, drops short walls, and writes
// the cleaned wall JSON.
func (p *Pipeline) CleanWalls() error {
	opts := ingest.WallOptions{
		MinHeightMM:    p.Cfg.MinWallHeightMM,
		TopLevelPrefix: p.Cfg.WallTopLevelPrefix,
	}
	records, skipped, err := ingest.ReadWallCSV(p.Paths.WallCSV(), opts, p.Logger)
	if err != nil {
		return err
	}
	p.Logger.Info("cleaned walls", "kept", len(records), "skipped", skipped)
	return plan.WriteJSON(p.Paths.WallsJSON(), ingest.WallFile{Walls: records})
}

// CleanRegions reads the filled-region export and writes the load set
// grouped by level and load pass.
func (p *Pipeline) CleanRegions() error {
	set, skipped, err := ingest.ReadRegionCSV(p.Paths.RegionCSV(), p.Logger)
	if err != nil {
		return err
	}
	p.Logger.Info("cleaned load regions", "levels", len(set), "skipped", skipped)
	return plan.WriteJSON(p.Paths.RegionsJSON(), set)
}

// Floors reconstructs one merged outline per level group from the
// floor export and writes the outline JSON. Groups without usable
// geometry are skipped with a warning.
func (p *Pipeline) Floors() error {
	groups, _, err := ingest.ReadBoundaryCSV(p.Paths.FloorCSV(), p.Logger)
	if err != nil {
		return err
	}
	rec := boundary.New(p.Cfg.SelectionPolicy, p.Logger)

	outlines := make(map[string]geometry.Ring, len(groups))
	for _, g := range groups {
		rings := rec.Reconstruct(g.Segments)
		if len(rings) == 0 {
			p.Logger.Warn("no boundary reconstructed for level group", "level", g.Group)
			continue
		}
		outlines[g.Group] = rings[0]
		p.Logger.Info("reconstructed floor outline",
			"level", g.Group, "area", rings[0].Area())

		if p.Plots {
			path := fmt.Sprintf("%s/floor_%s.png", p.Paths.FloorPlotDir(), g.Group)
			if err := plot.SaveOutline(rings[0], "Floor Boundary "+g.Group+" Lvl", path); err != nil {
				return ltderr.Wrap(ltderr.CodeIO, err, "plotting floor outline %s", g.Group)
			}
		}
	}
	if len(outlines) == 0 {
		return ltderr.New(ltderr.CodeDegenerateGeometry, "no floor outlines could be reconstructed from %s", p.Paths.FloorCSV())
	}
	return plan.WriteJSON(p.Paths.FloorOutlinesJSON(), outlines)
}

// Foundations reconstructs foundation pads per level group and writes
// the footing centroid JSON.
func (p *Pipeline) Foundations() error {
	groups, _, err := ingest.ReadBoundaryCSV(p.Paths.FoundationCSV(), p.Logger)
	if err != nil {
		return err
	}
	rec := boundary.New(config.KeepAll, p.Logger)
	filter := boundary.PadFilter{
		MaxArea:    p.Cfg.MaxPadArea,
		FootingMin: p.Cfg.FootingMinArea,
		FootingMax: p.Cfg.FootingMaxArea,
	}

	var points []plan.FoundationPoint
	for _, g := range groups {
		pads, centroids := rec.Pads(g.Segments, filter)
		p.Logger.Info("reconstructed foundation pads",
			"level", g.Group, "pads", len(pads), "footings", len(centroids))
		for _, c := range centroids {
			points = append(points, plan.FoundationPoint{Level: g.Group, X: c.X, Y: c.Y})
		}
		if p.Plots {
			path := fmt.Sprintf("%s/foundation_%s.png", p.Paths.FoundationPlotDir(), g.Group)
			if err := plot.SavePads(pads, centroids, "Foundation Pads "+g.Group, path); err != nil {
				return ltderr.Wrap(ltderr.CodeIO, err, "plotting foundation pads %s", g.Group)
			}
		}
	}
	return plan.WriteJSON(p.Paths.FoundationPointsJSON(), points)
}

// Combine merges the cleaned outlines, columns, walls, and foundation
// points into one structural plan per storey and writes the plan JSON.
func (p *Pipeline) Combine() error {
	var outlines map[string]geometry.Ring
	if err := plan.ReadJSON(p.Paths.FloorOutlinesJSON(), &outlines); err != nil {
		return err
	}
	var columns ingest.ColumnFile
	if err := plan.ReadJSON(p.Paths.ColumnsJSON(), &columns); err != nil {
		return err
	}
	var walls ingest.WallFile
	if err := plan.ReadJSON(p.Paths.WallsJSON(), &walls); err != nil {
		return err
	}
	var foundations []plan.FoundationPoint
	if err := plan.ReadJSON(p.Paths.FoundationPointsJSON(), &foundations); err != nil {
		return err
	}

	plans := ingest.Assemble(outlines, columns.Columns, walls.Walls, foundations,
		p.Cfg.WallSamples, p.Logger)
	if len(plans) == 0 {
		return ltderr.New(ltderr.CodeDegenerateGeometry, "no floor plans could be assembled")
	}

	if p.Plots {
		for _, level := range sortedKeys(plans) {
			path := fmt.Sprintf("%s/floor_plan_%s.png", p.Paths.CombinedPlotDir(), level)
			if err := plot.SaveFloorPlan(plans[level], "Structural Plan "+level+" Lvl", path); err != nil {
				return ltderr.Wrap(ltderr.CodeIO, err, "plotting floor plan %s", level)
			}
		}
	}
	return plan.WriteJSON(p.Paths.FloorPlanJSON(), plans)
}

// Tributary runs the weighted tessellation over every assembled floor,
// one pass per load category, and writes the results JSON. Cell
// records are stored in pass-then-site order, which the summary step
// relies on for pairing.
func (p *Pipeline) Tributary() error {
	var plans map[string]*plan.FloorPlan
	if err := plan.ReadJSON(p.Paths.FloorPlanJSON(), &plans); err != nil {
		return err
	}
	var loads plan.LoadSet
	if err := plan.ReadJSON(p.Paths.RegionsJSON(), &loads); err != nil {
		return err
	}

	engine := tributary.NewEngine(p.Cfg.ZoneOverlap == config.OverlapClamp, p.Logger)
	passes := []struct {
		name        string
		defaultLoad float64
	}{
		{plan.PassPermanent, p.Cfg.DefaultPermanentLoad},
		{plan.PassImposed, p.Cfg.DefaultImposedLoad},
	}

	results := make(plan.Results, len(plans))
	for _, level := range sortedKeys(plans) {
		fp := plans[level]
		sites := fp.Sites()
		fr := &plan.FloorResult{Boundary: fp.Boundary}

		for _, pass := range passes {
			regions := loads[plan.LoadKey(level)][pass.name]
			zones := tributary.Zones(regions, p.Cfg.UnitLoads, pass.defaultLoad)
			if len(zones) == 0 {
				p.Logger.Debug("no load zones for pass", "level", level, "pass", pass.name)
				continue
			}
			res := engine.Compute(fp.Boundary, sites, zones)
			for _, r := range res {
				fr.Cells = append(fr.Cells, plan.CellRecord{
					X:            r.Site.X,
					Y:            r.Site.Y,
					Area:         r.RawArea,
					WeightedArea: r.WeightedArea,
					Type:         r.Role,
				})
			}
			p.Logger.Info("tessellated floor pass",
				"level", level, "pass", pass.name,
				"cells", len(res), "tributary_area", tributary.TotalRawArea(res))

			if p.Plots && len(res) > 0 {
				path := fmt.Sprintf("%s/ltd_%s_%s.png", p.Paths.TributaryPlotDir(), level, passSlug(pass.name))
				title := fmt.Sprintf("Tributary Areas %s Lvl (%s)", level, pass.name)
				if err := plot.SaveTessellation(fp.Boundary, zones, res, title, path); err != nil {
					return ltderr.Wrap(ltderr.CodeIO, err, "plotting tessellation %s %s", level, pass.name)
				}
			}
		}
		if len(fr.Cells) > 0 {
			results[level] = fr
		}
	}
	if len(results) == 0 {
		return ltderr.New(ltderr.CodeDegenerateGeometry, "no tributary results produced")
	}
	return plan.WriteJSON(p.Paths.ResultsJSON(), results)
}

// Summary chains the tributary results into vertical column groups,
// prints the take-down table, and writes the xlsx workbook.
func (p *Pipeline) Summary(w io.Writer) error {
	var results plan.Results
	if err := plan.ReadJSON(p.Paths.ResultsJSON(), &results); err != nil {
		return err
	}

	floors := make([]string, 0, len(results))
	byFloor := make(map[string][]takedown.Entry, len(results))
	for level, fr := range results {
		floors = append(floors, level)
		for _, c := range fr.Cells {
			byFloor[level] = append(byFloor[level], takedown.Entry{
				Point:        geometry.Point{X: c.X, Y: c.Y},
				Area:         c.Area,
				WeightedArea: c.WeightedArea,
				Role:         c.Type,
			})
		}
	}
	sort.Strings(floors)

	agg := takedown.NewAggregator(p.Cfg.MatchRadius, p.Logger)
	groups := agg.Group(floors, byFloor)
	rows := takedown.Summarize(groups)
	p.Logger.Info("grouped vertical elements", "groups", len(groups), "rows", len(rows))

	if err := report.WriteTable(w, rows); err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "writing summary table")
	}
	return report.WriteWorkbook(p.Paths.SummaryXLSX(), rows)
}

// Run executes every step in dependency order.
func (p *Pipeline) Run(w io.Writer) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"columns", p.CleanColumns},
		{"walls", p.CleanWalls},
		{"regions", p.CleanRegions},
		{"floors", p.Floors},
		{"foundations", p.Foundations},
		{"combine", p.Combine},
		{"tributary", p.Tributary},
		{"summary", func() error { return p.Summary(w) }},
	}
	for _, step := range steps {
		p.Logger.Info("running step", "step", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("step %s: %w", step.name, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func passSlug(pass string) string {
	if pass == plan.PassImposed {
		return "imposed"
	}
	return "permanent"
}
