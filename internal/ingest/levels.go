package ingest

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var prefixRe = regexp.MustCompile(`^([A-Za-z0-9]{1,2})`)

// Prefix extracts the short level group from a full level name:
// "00 Lvl" → "00", "B1 Basement" → "B1", "RF Roof" → "RF". Names with
// no leading alphanumerics map to "Unknown".
func Prefix(level string) string {
	level = strings.TrimSpace(level)
	if level == "" {
		return "Unknown"
	}
	if m := prefixRe.FindStringSubmatch(level); m != nil {
		return m[1]
	}
	if len(level) > 2 {
		return level[:2]
	}
	return level
}

// Ordinal converts a level name to a storey number: "RF" is the roof
// (999), "LB" the lowest basement (-1), "B<n>" basement n (-n), and
// numeric prefixes their value. The second return is false for names
// that fit none of these.
func Ordinal(level string) (int, bool) {
	u := strings.TrimSpace(level)
	if len(u) > 2 {
		u = u[:2]
	}
	u = strings.ToUpper(u)
	switch {
	case strings.HasPrefix(u, "RF"):
		return 999, true
	case strings.HasPrefix(u, "LB"):
		return -1, true
	case strings.HasPrefix(u, "B"):
		n, err := strconv.Atoi(u[1:])
		if err != nil {
			return 0, false
		}
		return -n, true
	}
	n, err := strconv.Atoi(u)
	if err != nil {
		return 0, false
	}
	return n, true
}

// StoreyKey formats a storey number as a level label: 3 → "03",
// -2 → "B2".
func StoreyKey(n int) string {
	if n < 0 {
		return fmt.Sprintf("B%d", -n)
	}
	return fmt.Sprintf("%02d", n)
}

// StoreySpan lists the storeys an element spans given its base and top
// ordinals: every storey from just above the base up to and including
// the top (order-normalized first).
func StoreySpan(base, top int) []int {
	low, high := base+1, top
	if low > high {
		low, high = high, low
	}
	out := make([]int, 0, high-low+1)
	for n := low; n <= high; n++ {
		out = append(out, n)
	}
	return out
}

// NormalizeLoadLevel maps a raw load-view level name to a load-set key:
// every "LB"-prefixed basement collapses to "LB Lvl"; other names get a
// " Lvl" suffix if missing.
func NormalizeLoadLevel(raw string) string {
	level := strings.TrimSpace(raw)
	if strings.HasPrefix(level, "LB") {
		return "LB Lvl"
	}
	if !strings.Contains(level, "Lvl") {
		level += " Lvl"
	}
	return level
}
