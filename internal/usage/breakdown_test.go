package usage

import (
	"reflect"
	"testing"
)

func TestDimension_KeyAndTitle(t *testing.T) {
	tests := []struct {
		d     Dimension
		key   string
		title string
		cols  int
	}{
		{DimDepartment, "dept", "Department", 7},
		{DimService, "service", "Service/Model", 6},
		{DimRoute, "route", "Route", 5},
		{DimKey, "key", "Key", 5},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if tt.d.Key() != tt.key {
				t.Errorf("Key() = %q, want %q", tt.d.Key(), tt.key)
			}
			if tt.d.Title() != tt.title {
				t.Errorf("Title() = %q, want %q", tt.d.Title(), tt.title)
			}
			if h := tt.d.Header(); len(h) != tt.cols || h[0] != tt.title {
				t.Errorf("Header() = %v", h)
			}
			parsed, err := ParseDimension(tt.key)
			if err != nil || parsed != tt.d {
				t.Errorf("ParseDimension(%q) = %v, %v", tt.key, parsed, err)
			}
		})
	}
	if _, err := ParseDimension("region"); err == nil {
		t.Error("expected error for unknown dimension")
	}
	if DimKey.Next() != DimDepartment {
		t.Error("Next() should wrap around")
	}
}

func TestBreakdowns_TableShape(t *testing.T) {
	snap := Generate(Range24h, defaultLegends(), DefaultSeed, nil)
	for _, d := range Dimensions {
		table := snap.Breakdowns.Table(d)
		if table.Dimension != d {
			t.Errorf("%s: table dimension %v", d, table.Dimension)
		}
		for i, row := range table.Rows {
			if len(row) != len(table.Header) {
				t.Errorf("%s row %d has %d cells, header has %d", d, i, len(row), len(table.Header))
			}
		}
	}
	if n := len(snap.Breakdowns.Table(DimDepartment).Rows); n != 5 {
		t.Errorf("dept rows = %d, want 5", n)
	}
	if n := len(snap.Breakdowns.Table(DimKey).Rows); n != 3 {
		t.Errorf("key rows = %d, want 3", n)
	}
}

func TestDeptRow_Cells(t *testing.T) {
	row := DeptRow{Department: "IRCC", Calls: 20020, P95: 1700, ErrPct: 1.2, Tokens: "42M / 30M", Cost: 5.8377, QuotaUsed: 73}
	want := []string{"IRCC", "20,020", "1700", "1.2%", "42M / 30M", "$5.84", "73%"}
	if got := row.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cells() = %v, want %v", got, want)
	}
}

func TestServiceRow_Cells(t *testing.T) {
	row := ServiceRow{Service: "Cohere Command A", Calls: 332, P95: 1720, ErrPct: 1.3, TokensIn: 54754, TokensOut: 42719, Sensitivity: "Unclassified/PBMM"}
	want := []string{"Cohere Command A", "332", "1720", "1.3%", "54,754 / 42,719", "Unclassified/PBMM"}
	if got := row.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cells() = %v, want %v", got, want)
	}
}

func TestKeyRow_Cells(t *testing.T) {
	row := KeyRow{Key: "IRCC-prod-A…", Department: "IRCC", Scope: "canchat:chat", Calls: 7428, LastUsed: "2025-09-25 09:41"}
	want := []string{"IRCC-prod-A…", "IRCC", "canchat:chat", "7,428", "2025-09-25 09:41"}
	if got := row.Cells(); !reflect.DeepEqual(got, want) {
		t.Errorf("Cells() = %v, want %v", got, want)
	}
}
