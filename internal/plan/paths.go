package plan

import "path/filepath"

// Paths resolves every file the pipeline reads or writes inside a
// working folder exported from the BIM model.
type Paths struct {
	Dir string
}

// NewPaths returns path helpers rooted at dir.
func NewPaths(dir string) Paths {
	return Paths{Dir: dir}
}

// Raw CSV exports.
func (p Paths) ColumnCSV() string     { return filepath.Join(p.Dir, "Revit_Data", "column_data.csv") }
func (p Paths) WallCSV() string       { return filepath.Join(p.Dir, "Revit_Data", "wall_data.csv") }
func (p Paths) FloorCSV() string      { return filepath.Join(p.Dir, "Revit_Data", "floor_data.csv") }
func (p Paths) FoundationCSV() string { return filepath.Join(p.Dir, "Revit_Data", "foundation_data.csv") }
func (p Paths) RegionCSV() string {
	return filepath.Join(p.Dir, "Revit_Data", "filled_region_boundaries_filtered.csv")
}

// Cleaned intermediate files.
func (p Paths) ColumnsJSON() string { return filepath.Join(p.Dir, "columns_cleaned.json") }
func (p Paths) WallsJSON() string   { return filepath.Join(p.Dir, "wall_cleaned.json") }
func (p Paths) RegionsJSON() string { return filepath.Join(p.Dir, "area_loads_cleaned.json") }
func (p Paths) FloorOutlinesJSON() string {
	return filepath.Join(p.Dir, "floor_plots_cleaned_data", "cleaned_floor_boundaries.json")
}
func (p Paths) FoundationPointsJSON() string {
	return filepath.Join(p.Dir, "foundation_plots_cleaned_data", "foundation_points.json")
}
func (p Paths) FloorPlanJSON() string {
	return filepath.Join(p.Dir, "visual_structural_plots", "floor_plot_data.json")
}
func (p Paths) ResultsJSON() string {
	return filepath.Join(p.Dir, "LTD_plots_data", "LTD_results.json")
}

// Plot output locations.
func (p Paths) FloorPlotDir() string      { return filepath.Join(p.Dir, "floor_plots_cleaned_data") }
func (p Paths) FoundationPlotDir() string { return filepath.Join(p.Dir, "foundation_plots_cleaned_data") }
func (p Paths) CombinedPlotDir() string   { return filepath.Join(p.Dir, "visual_structural_plots") }
func (p Paths) TributaryPlotDir() string  { return filepath.Join(p.Dir, "LTD_plots_data") }

// Final report.
func (p Paths) SummaryXLSX() string { return filepath.Join(p.Dir, "column_load_summary.xlsx") }
