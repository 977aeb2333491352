// Package plan defines the in-memory floor model exchanged between the
// pipeline stages, and the JSON files used to hand results from one
// command to the next.
package plan

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/ltderr"
)

// Role tags a support point with the kind of vertical element it
// represents.
type Role string

const (
	RoleColumn     Role = "Column"
	RoleWall       Role = "Wall"
	RoleFoundation Role = "Foundation"
)

// SupportPoint is a tessellation site: a location plus the role of the
// element it stands for.
type SupportPoint struct {
	Point geometry.Point
	Role  Role
}

// FloorPlan is the combined structural geometry for one storey.
type FloorPlan struct {
	Boundary    geometry.Ring    `json:"floor_boundary"`
	Columns     []geometry.Point `json:"columns"`
	Walls       []geometry.Point `json:"walls"` // sampled wall centerline points
	Foundations []geometry.Point `json:"foundations"`
}

// Sites returns all support points in tessellation order: columns
// first, then wall samples, then foundations. This order defines the
// result indexing downstream.
func (f *FloorPlan) Sites() []SupportPoint {
	out := make([]SupportPoint, 0, len(f.Columns)+len(f.Walls)+len(f.Foundations))
	for _, p := range f.Columns {
		out = append(out, SupportPoint{Point: p, Role: RoleColumn})
	}
	for _, p := range f.Walls {
		out = append(out, SupportPoint{Point: p, Role: RoleWall})
	}
	for _, p := range f.Foundations {
		out = append(out, SupportPoint{Point: p, Role: RoleFoundation})
	}
	return out
}

// CellRecord is the tributary result for one support point in one load
// pass. Areas are m²; the weighted area doubles as the SLS load (kN)
// because zone weights are unit loads (kN/m²).
type CellRecord struct {
	X            float64 `json:"X"`
	Y            float64 `json:"Y"`
	Area         float64 `json:"Area"`
	WeightedArea float64 `json:"WeightedArea"`
	Type         Role    `json:"Type"`
}

// FloorResult collects all cell records computed for one storey, in
// pass-then-site order (all permanent-pass records, then all
// imposed-pass records).
type FloorResult struct {
	Boundary geometry.Ring `json:"floor_boundary"`
	Cells    []CellRecord  `json:"columns"`
}

// Results holds tributary output for every processed storey, keyed by
// level label.
type Results map[string]*FloorResult

// LoadRegion is one load-zone polygon from the filled-region export.
type LoadRegion struct {
	RegionID   int           `json:"RegionID"`
	RegionType string        `json:"RegionType"`
	LoopIndex  int           `json:"LoopIndex"`
	Vertices   geometry.Ring `json:"Vertices"`
	UnitLoad   *float64      `json:"UnitLoad,omitempty"`
}

// Load pass names. A floor carrying zones of both categories is
// tessellated twice, once per pass, over the same site set.
const (
	PassPermanent = "Permanent Loading"
	PassImposed   = "Imposed Loading"
)

// LoadSet maps level key → load pass → regions.
type LoadSet map[string]map[string][]LoadRegion

// LoadKey converts a floor level label to the level key used by the
// load-region export ("00" → "00 Lvl").
func LoadKey(level string) string {
	return level + " Lvl"
}

// FoundationPoint is a recorded footing centroid.
type FoundationPoint struct {
	Level string  `json:"Level"`
	X     float64 `json:"X"`
	Y     float64 `json:"Y"`
}

// WriteJSON writes v to path as indented JSON, creating parent
// directories as needed.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "creating output directory for %s", path)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "encoding %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "writing %s", path)
	}
	return nil
}

// ReadJSON reads path into v. A missing file is a configuration error:
// it means a prerequisite pipeline step has not been run.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ltderr.Wrap(ltderr.CodeConfig, err, "required input not found: %s (run the producing step first)", path)
		}
		return ltderr.Wrap(ltderr.CodeIO, err, "reading %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return ltderr.Wrap(ltderr.CodeIO, err, "decoding %s", path)
	}
	return nil
}
