package breakdown

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/aimkt-usage-tui/internal/app"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

func newTestModel(t *testing.T) (*Model, *app.State) {
	t.Helper()
	state := app.NewState(usage.DefaultSeed, nil, usage.Range24h, usage.AlertThresholds{})
	m := New(state)
	m.SetSize(140, 40)
	return m, state
}

func TestNew_DepartmentTable(t *testing.T) {
	m, state := newTestModel(t)

	want := state.Snapshot().Breakdowns.Table(usage.DimDepartment)
	if got := len(m.table.Rows()); got != len(want.Rows) {
		t.Fatalf("rows = %d, want %d", got, len(want.Rows))
	}
	if cols := m.table.Columns(); len(cols) != len(want.Header) || cols[0].Title != "Department" {
		t.Errorf("columns = %+v", cols)
	}
	if row := m.SelectedRow(); len(row) == 0 || row[0] != "IRCC" {
		t.Errorf("selected row = %v, want IRCC first", row)
	}
}

func TestModel_DimensionChange(t *testing.T) {
	m, state := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.table.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", m.table.Cursor())
	}

	tests := []struct {
		dim   usage.Dimension
		first string
	}{
		{usage.DimService, "Service/Model"},
		{usage.DimRoute, "Route"},
		{usage.DimKey, "Key"},
		{usage.DimDepartment, "Department"},
	}
	for _, tt := range tests {
		state.CycleDimension()
		m.Update(app.FiltersChangedMsg{Filters: state.Filters()})

		if m.dimension != tt.dim {
			t.Errorf("dimension = %v, want %v", m.dimension, tt.dim)
		}
		if cols := m.table.Columns(); cols[0].Title != tt.first {
			t.Errorf("%v: first column = %q, want %q", tt.dim, cols[0].Title, tt.first)
		}
		if m.table.Cursor() != 0 {
			t.Errorf("%v: cursor should reset on dimension change", tt.dim)
		}
		if len(m.table.Rows()) != len(state.Snapshot().Breakdowns.Rows(tt.dim)) {
			t.Errorf("%v: row count mismatch", tt.dim)
		}
	}
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t)

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Breakdown by Department", "IRCC", "Safety signals", "PII detected",
		"Prompt length", "200–500", "Retrieval quality", "RAG hit rate", "63%", "48%",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestColumnsFor(t *testing.T) {
	tbl := usage.Table{
		Header: []string{"A", "Long header"},
		Rows:   [][]string{{"wide cell value", "x"}},
	}

	cols := columnsFor(tbl, 0)
	if cols[0].Width != len("wide cell value")+1 || cols[1].Width != len("Long header")+1 {
		t.Errorf("natural widths = %+v", cols)
	}

	cols = columnsFor(tbl, 20)
	for _, c := range cols {
		if c.Width > 10 {
			t.Errorf("column %q width %d exceeds budget", c.Title, c.Width)
		}
	}
}
