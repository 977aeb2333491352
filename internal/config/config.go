// Package config holds the run configuration for the load take-down
// pipeline. Values are read from an optional TOML file layered over the
// built-in defaults.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/stralab/goltd/internal/ltderr"
)

// Selection policies for merged boundary fragments.
const (
	KeepLargest = "keep-largest"
	KeepAll     = "keep-all"
)

// Zone overlap policies. Overlapping load zones on the same floor and
// pass are summed by default; "clamp" caps a cell's weighted area at
// raw area × maximum zone weight.
const (
	OverlapSum   = "sum"
	OverlapClamp = "clamp"
)

// Config is the full run configuration.
type Config struct {
	// MatchRadius is the maximum horizontal distance (m) between a
	// support point and a column group's last recorded position for the
	// point to join the group.
	MatchRadius float64 `toml:"match_radius"`

	// SelectionPolicy controls whether floor reconstruction keeps only
	// the largest merged outline or all disjoint fragments.
	SelectionPolicy string `toml:"selection_policy"`

	// ZoneOverlap controls how overlapping load zones accumulate.
	ZoneOverlap string `toml:"zone_overlap"`

	// MaxPadArea (m²) filters out foundation polygons too large to be
	// footings (slab artifacts).
	MaxPadArea float64 `toml:"max_pad_area"`

	// FootingMinArea and FootingMaxArea (m²) bound the pad sizes that
	// contribute a support centroid.
	FootingMinArea float64 `toml:"footing_min_area"`
	FootingMaxArea float64 `toml:"footing_max_area"`

	// MinWallHeightMM (mm) filters out short walls during ingestion.
	MinWallHeightMM float64 `toml:"min_wall_height_mm"`

	// WallTopLevelPrefix is stripped from wall top-level names before
	// matching (some exports prefix them with a field label).
	WallTopLevelPrefix string `toml:"wall_top_level_prefix"`

	// WallSamples is the number of evenly spaced tessellation sites per
	// wall centerline segment.
	WallSamples int `toml:"wall_samples"`

	// Default unit loads (kN/m²) applied to zones without an explicit
	// override, per load category.
	DefaultPermanentLoad float64 `toml:"default_permanent_load"`
	DefaultImposedLoad   float64 `toml:"default_imposed_load"`

	// UnitLoads maps a region type code (e.g. "G1", "Q2") to its unit
	// load (kN/m²).
	UnitLoads map[string]float64 `toml:"unit_loads"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MatchRadius:          0.5,
		SelectionPolicy:      KeepLargest,
		ZoneOverlap:          OverlapSum,
		MaxPadArea:           20.0,
		FootingMinArea:       0.5,
		FootingMaxArea:       5.5,
		MinWallHeightMM:      1800,
		WallSamples:          5,
		DefaultPermanentLoad: 1.0,
		DefaultImposedLoad:   0.8,
		UnitLoads:            map[string]float64{},
	}
}

// Load reads a TOML config file layered over the defaults. An empty
// path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, ltderr.Wrap(ltderr.CodeConfig, err, "config file not found: %s", path)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, ltderr.Wrap(ltderr.CodeConfig, err, "invalid config file: %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks policy names and numeric bounds.
func (c *Config) Validate() error {
	if c.MatchRadius <= 0 {
		return ltderr.New(ltderr.CodeConfig, "match_radius must be positive, got %g", c.MatchRadius)
	}
	switch c.SelectionPolicy {
	case KeepLargest, KeepAll:
	default:
		return ltderr.New(ltderr.CodeConfig, "selection_policy must be %q or %q, got %q", KeepLargest, KeepAll, c.SelectionPolicy)
	}
	switch c.ZoneOverlap {
	case OverlapSum, OverlapClamp:
	default:
		return ltderr.New(ltderr.CodeConfig, "zone_overlap must be %q or %q, got %q", OverlapSum, OverlapClamp, c.ZoneOverlap)
	}
	if c.FootingMinArea >= c.FootingMaxArea {
		return ltderr.New(ltderr.CodeConfig, "footing_min_area (%g) must be below footing_max_area (%g)", c.FootingMinArea, c.FootingMaxArea)
	}
	if c.WallSamples < 2 {
		return ltderr.New(ltderr.CodeConfig, "wall_samples must be at least 2, got %d", c.WallSamples)
	}
	return nil
}
