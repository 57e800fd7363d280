package usage

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimension selects which breakdown table is shown and exported.
type Dimension int

const (
	// DimDepartment breaks usage down by department.
	DimDepartment Dimension = iota
	// DimService breaks usage down by service/model.
	DimService
	// DimRoute breaks usage down by API route.
	DimRoute
	// DimKey breaks usage down by API key.
	DimKey
)

// Dimensions lists every dimension in display order.
var Dimensions = []Dimension{DimDepartment, DimService, DimRoute, DimKey}

// Key returns the query-parameter form ("dept", "service", "route", "key").
func (d Dimension) Key() string {
	switch d {
	case DimService:
		return "service"
	case DimRoute:
		return "route"
	case DimKey:
		return "key"
	default:
		return "dept"
	}
}

// Title returns the heading of the dimension's first column.
func (d Dimension) Title() string {
	switch d {
	case DimService:
		return "Service/Model"
	case DimRoute:
		return "Route"
	case DimKey:
		return "Key"
	default:
		return "Department"
	}
}

func (d Dimension) String() string { return d.Key() }

// Next cycles to the next dimension.
func (d Dimension) Next() Dimension {
	return (d + 1) % Dimension(len(Dimensions))
}

// ParseDimension parses a dimension key.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if strings.EqualFold(s, d.Key()) {
			return d, nil
		}
	}
	return DimDepartment, fmt.Errorf("unknown dimension %q", s)
}

// Header returns the column headings for the dimension.
func (d Dimension) Header() []string {
	switch d {
	case DimService:
		return []string{"Service/Model", "Calls", "p95", "Error%", "Tokens", "Sensitivity"}
	case DimRoute:
		return []string{"Route", "Calls", "p95", "Throttles", "Policy breaches"}
	case DimKey:
		return []string{"Key", "Dept", "Scope", "Calls", "Last used"}
	default:
		return []string{"Department", "Calls", "p95", "Error%", "Tokens", "Est. cost", "Quota used"}
	}
}

// BreakdownRow is one typed row of a breakdown table.
type BreakdownRow interface {
	Cells() []string
	dimension() Dimension
}

// DeptRow is a per-department breakdown row.
type DeptRow struct {
	Department string
	Calls      int
	P95        int
	ErrPct     float64
	Tokens     string
	Cost       float64
	QuotaUsed  int
}

// Cells renders the row for display and export.
func (r DeptRow) Cells() []string {
	return []string{
		r.Department,
		FormatCount(float64(r.Calls)),
		strconv.Itoa(r.P95),
		FormatPct(r.ErrPct, 1),
		r.Tokens,
		FormatMoney(r.Cost),
		strconv.Itoa(r.QuotaUsed) + "%",
	}
}

func (DeptRow) dimension() Dimension { return DimDepartment }

// ServiceRow is a per-service breakdown row.
type ServiceRow struct {
	Service     string
	Calls       int
	P95         int
	ErrPct      float64
	TokensIn    int
	TokensOut   int
	Sensitivity string
}

// Cells renders the row for display and export.
func (r ServiceRow) Cells() []string {
	return []string{
		r.Service,
		FormatCount(float64(r.Calls)),
		strconv.Itoa(r.P95),
		FormatPct(r.ErrPct, 1),
		FormatTokenPair(r.TokensIn, r.TokensOut),
		r.Sensitivity,
	}
}

func (ServiceRow) dimension() Dimension { return DimService }

// RouteRow is a per-route breakdown row.
type RouteRow struct {
	Route     string
	Calls     int
	P95       int
	Throttles int
	Breaches  int
}

// Cells renders the row for display and export.
func (r RouteRow) Cells() []string {
	return []string{
		r.Route,
		FormatCount(float64(r.Calls)),
		strconv.Itoa(r.P95),
		strconv.Itoa(r.Throttles),
		strconv.Itoa(r.Breaches),
	}
}

func (RouteRow) dimension() Dimension { return DimRoute }

// KeyRow is a per-API-key breakdown row.
type KeyRow struct {
	Key        string
	Department string
	Scope      string
	Calls      int
	LastUsed   string
}

// Cells renders the row for display and export.
func (r KeyRow) Cells() []string {
	return []string{
		r.Key,
		r.Department,
		r.Scope,
		FormatCount(float64(r.Calls)),
		r.LastUsed,
	}
}

func (KeyRow) dimension() Dimension { return DimKey }

// Breakdowns holds all four breakdown tables, computed together.
type Breakdowns struct {
	Dept    []DeptRow
	Service []ServiceRow
	Route   []RouteRow
	Key     []KeyRow
}

// Rows returns the typed rows for a dimension.
func (b Breakdowns) Rows(d Dimension) []BreakdownRow {
	var rows []BreakdownRow
	switch d {
	case DimService:
		for _, r := range b.Service {
			rows = append(rows, r)
		}
	case DimRoute:
		for _, r := range b.Route {
			rows = append(rows, r)
		}
	case DimKey:
		for _, r := range b.Key {
			rows = append(rows, r)
		}
	default:
		for _, r := range b.Dept {
			rows = append(rows, r)
		}
	}
	return rows
}

// Table is a rendered breakdown: header plus string cells.
type Table struct {
	Dimension Dimension
	Header    []string
	Rows      [][]string
}

// Table renders the breakdown for d from its typed rows.
func (b Breakdowns) Table(d Dimension) Table {
	t := Table{Dimension: d, Header: d.Header()}
	for _, r := range b.Rows(d) {
		t.Rows = append(t.Rows, r.Cells())
	}
	return t
}
