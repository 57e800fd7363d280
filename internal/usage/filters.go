package usage

import (
	"fmt"
	"slices"
	"strings"
)

// TimeRange is the selected reporting window.
type TimeRange int

const (
	// Range24h covers the last 24 hourly steps.
	Range24h TimeRange = iota
	// Range7d covers 7 days of hourly steps.
	Range7d
	// Range30d covers 30 days of hourly steps.
	Range30d
)

// String returns the query-parameter form of the range.
func (t TimeRange) String() string {
	switch t {
	case Range24h:
		return "24h"
	case Range7d:
		return "7d"
	case Range30d:
		return "30d"
	default:
		return "unknown"
	}
}

// Label returns a human readable name.
func (t TimeRange) Label() string {
	switch t {
	case Range24h:
		return "Last 24 hours"
	case Range7d:
		return "Last 7 days"
	case Range30d:
		return "Last 30 days"
	default:
		return "Unknown"
	}
}

// Steps returns the number of hourly steps in the range.
func (t TimeRange) Steps() int {
	switch t {
	case Range7d:
		return 7 * 24
	case Range30d:
		return 30 * 24
	default:
		return 24
	}
}

// Next cycles to the next time range.
func (t TimeRange) Next() TimeRange {
	return (t + 1) % 3
}

// ParseTimeRange parses "24h", "7d" or "30d".
func ParseTimeRange(s string) (TimeRange, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "24h", "":
		return Range24h, nil
	case "7d":
		return Range7d, nil
	case "30d":
		return Range30d, nil
	default:
		return Range24h, fmt.Errorf("unknown time range %q", s)
	}
}

// Legend is a service series and whether it is shown.
type Legend struct {
	Name   string
	Active bool
}

// LegendSet is an ordered set of service legends. Order follows the
// profile's service order and drives stacking and export order.
type LegendSet []Legend

// NewLegendSet returns a set with every name active.
func NewLegendSet(names ...string) LegendSet {
	set := make(LegendSet, 0, len(names))
	for _, n := range names {
		set = append(set, Legend{Name: n, Active: true})
	}
	return set
}

// Clone returns an independent copy.
func (l LegendSet) Clone() LegendSet {
	return slices.Clone(l)
}

// IsActive reports whether name is present and active.
func (l LegendSet) IsActive(name string) bool {
	for _, lg := range l {
		if lg.Name == name {
			return lg.Active
		}
	}
	return false
}

// Toggle returns a copy with the named legend flipped. Unknown names
// leave the set unchanged.
func (l LegendSet) Toggle(name string) LegendSet {
	out := l.Clone()
	for i := range out {
		if out[i].Name == name {
			out[i].Active = !out[i].Active
		}
	}
	return out
}

// ActiveNames returns the active legend names in order.
func (l LegendSet) ActiveNames() []string {
	var names []string
	for _, lg := range l {
		if lg.Active {
			names = append(names, lg.Name)
		}
	}
	return names
}

// Names returns all legend names in order.
func (l LegendSet) Names() []string {
	names := make([]string, len(l))
	for i, lg := range l {
		names[i] = lg.Name
	}
	return names
}

// TokenToggles controls the token chart.
type TokenToggles struct {
	In  bool
	Out bool
	// Avg divides token counts by the active legends' calls per step.
	Avg bool
}

// DefaultTokenToggles shows both series as totals.
func DefaultTokenToggles() TokenToggles {
	return TokenToggles{In: true, Out: true}
}

// Filters is the user-controlled view state.
type Filters struct {
	Range     TimeRange
	Dimension Dimension
	Legends   LegendSet
	Tokens    TokenToggles
}

// DefaultFilters returns the reset state for the given services.
func DefaultFilters(services ...string) Filters {
	return Filters{
		Range:     Range24h,
		Dimension: DimDepartment,
		Legends:   NewLegendSet(services...),
		Tokens:    DefaultTokenToggles(),
	}
}

// Clone returns a copy that shares no slices with f.
func (f Filters) Clone() Filters {
	f.Legends = f.Legends.Clone()
	return f
}
