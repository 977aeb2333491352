// Package takedown chains support points across floors into vertical
// column groups and accumulates permanent and imposed loads down the
// building.
package takedown

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats"

	"github.com/stralab/goltd/internal/geometry"
	"github.com/stralab/goltd/internal/plan"
)

// LevelRank returns the vertical ordering key of a floor label: an
// "RF"-prefixed label (roof) sorts highest, an "LB"-prefixed label
// (lowest basement) sorts lowest, numeric labels sort by value, and
// anything else sorts as zero.
func LevelRank(level string) int {
	u := strings.ToUpper(strings.TrimSpace(level))
	switch {
	case strings.HasPrefix(u, "RF"):
		return 999
	case strings.HasPrefix(u, "LB"):
		return -1
	}
	if n, err := strconv.Atoi(strings.TrimSpace(level)); err == nil {
		return n
	}
	return 0
}

// SortTopDown orders floor labels topmost first. The sort is stable so
// labels of equal rank keep their incoming order.
func SortTopDown(levels []string) []string {
	out := make([]string, len(levels))
	copy(out, levels)
	sort.SliceStable(out, func(i, j int) bool {
		return LevelRank(out[i]) > LevelRank(out[j])
	})
	return out
}

// Entry is one tributary record fed to the aggregator. Each floor
// contributes two entries per support point, one per load pass, in
// pass-then-site order.
type Entry struct {
	Floor        string
	Point        geometry.Point
	Area         float64
	WeightedArea float64
	Role         plan.Role
}

// Group is an ordered chain of entries belonging to the same physical
// vertical element.
type Group struct {
	ID      string
	Entries []Entry
}

// last returns the group's reference position: the position of the most
// recently appended entry. The reference drifts floor by floor, so
// lateral column offsets must stay under the match radius cumulatively.
func (g *Group) last() geometry.Point {
	return g.Entries[len(g.Entries)-1].Point
}

// Aggregator groups support points across floors by proximity.
type Aggregator struct {
	// MatchRadius is the maximum distance (m) to a group's last
	// position for a point to join that group.
	MatchRadius float64

	Logger *log.Logger
}

// NewAggregator returns an Aggregator with the given match radius.
func NewAggregator(matchRadius float64, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{MatchRadius: matchRadius, Logger: logger}
}

// state is the fold accumulator: the open group list plus the next
// group number.
type state struct {
	groups []Group
	next   int
}

// Group folds the floors, topmost first, into column groups. Matching
// is first-match-wins: the first open group whose last position lies
// within the match radius takes the entry, and the appended entry
// becomes the group's new reference position. Column-role points chain
// across floors; wall samples and foundations only ever match groups of
// their own role on their own floor, so they stay attached to the floor
// they belong to.
func (a *Aggregator) Group(floors []string, byFloor map[string][]Entry) []Group {
	st := state{next: 1}
	for _, floor := range SortTopDown(floors) {
		for _, e := range byFloor[floor] {
			e.Floor = floor
			st = a.step(st, e)
		}
	}
	return st.groups
}

// step is one fold transition: append the entry to the first matching
// group, or open a new group seeded at the entry.
func (a *Aggregator) step(st state, e Entry) state {
	for i := range st.groups {
		g := &st.groups[i]
		seed := g.Entries[0]
		if seed.Role != e.Role {
			continue
		}
		if e.Role != plan.RoleColumn && seed.Floor != e.Floor {
			continue
		}
		if e.Point.DistanceTo(g.last()) <= a.MatchRadius {
			g.Entries = append(g.Entries, e)
			return st
		}
	}
	st.groups = append(st.groups, Group{
		ID:      fmt.Sprintf("C%03d", st.next),
		Entries: []Entry{e},
	})
	st.next++
	return st
}

// Row is one line of the load take-down summary: a group's loads on
// one floor. Running totals are populated only on the group's first
// row, mirroring the report layout.
type Row struct {
	ColumnID string
	// X, Y is the group's seed position (its topmost recorded point).
	X, Y  float64
	Floor string
	Role  plan.Role
	// Area is the raw tributary area (m²) on this floor.
	Area float64
	// Permanent and Imposed are this floor's loads (kN); the Has flags
	// report whether the corresponding pass produced a value.
	Permanent    float64
	HasPermanent bool
	Imposed      float64
	HasImposed   bool
	// Group totals, present only when HasTotals is set (first row).
	TotalPermanent float64
	TotalImposed   float64
	TotalSLS       float64
	HasTotals      bool
}

// Summarize expands the groups into report rows. Each group's weighted
// areas are paired two at a time in floor order, permanent before
// imposed, and the pairs are attributed to the group's floors in
// first-appearance order.
func Summarize(groups []Group) []Row {
	var rows []Row
	for _, g := range groups {
		weighted := make([]float64, len(g.Entries))
		for i, e := range g.Entries {
			weighted[i] = e.WeightedArea
		}
		totalSLS := floats.Sum(weighted)

		var pairs [][]float64
		for i := 0; i < len(weighted); i += 2 {
			end := i + 2
			if end > len(weighted) {
				end = len(weighted)
			}
			pairs = append(pairs, weighted[i:end])
		}
		var permanents, imposeds []float64
		for _, p := range pairs {
			permanents = append(permanents, p[0])
			if len(p) > 1 {
				imposeds = append(imposeds, p[1])
			}
		}
		totalPermanent := floats.Sum(permanents)
		totalImposed := floats.Sum(imposeds)

		seed := g.Entries[0]
		for i, floor := range uniqueFloors(g.Entries) {
			row := Row{
				ColumnID: g.ID,
				X:        seed.Point.X,
				Y:        seed.Point.Y,
				Floor:    floor,
			}
			for _, e := range g.Entries {
				if e.Floor == floor {
					row.Area = e.Area
					row.Role = e.Role
					break
				}
			}
			if i < len(pairs) {
				row.Permanent, row.HasPermanent = pairs[i][0], true
				if len(pairs[i]) > 1 {
					row.Imposed, row.HasImposed = pairs[i][1], true
				}
			}
			if i == 0 {
				row.TotalPermanent = totalPermanent
				row.TotalImposed = totalImposed
				row.TotalSLS = totalSLS
				row.HasTotals = true
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func uniqueFloors(entries []Entry) []string {
	seen := make(map[string]bool, len(entries))
	var out []string
	for _, e := range entries {
		if !seen[e.Floor] {
			seen[e.Floor] = true
			out = append(out, e.Floor)
		}
	}
	return out
}
