package reliability

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/aimkt-usage-tui/internal/app"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

func newTestModel(t *testing.T, a usage.AlertThresholds) (*Model, *app.State) {
	t.Helper()
	state := app.NewState(usage.DefaultSeed, nil, usage.Range24h, a)
	m := New(state)
	m.SetSize(140, 200)
	return m, state
}

func TestModel_View(t *testing.T) {
	m, state := newTestModel(t, usage.AlertThresholds{})
	snap := state.Snapshot()

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Reliability", "Top error classes", "Failures", "retries", "throttles",
		"Timeouts", "Size limit", "Spend by provider/route", "Total", "Quota by department", "IRCC",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
	for _, e := range snap.Errors.Top {
		if !strings.Contains(view, e.Route) {
			t.Errorf("View missing error route %q", e.Route)
		}
	}
}

func TestModel_SpendBudget(t *testing.T) {
	m, state := newTestModel(t, usage.AlertThresholds{Spend: 0.01})
	if state.Breaches().Spend != usage.StatusWarn {
		t.Fatal("tiny budget should breach")
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "WARN") || !strings.Contains(view, "budget $0.01") {
		t.Error("spend breach should show a WARN pill next to the budget")
	}
}

func TestModel_SnapshotUpdate(t *testing.T) {
	m, state := newTestModel(t, usage.AlertThresholds{})

	snap := state.CycleRange()
	m.Update(app.SnapshotUpdatedMsg{Snapshot: snap})
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Last 7 days") {
		t.Error("view should follow the regenerated snapshot")
	}
}

func TestModel_Scroll(t *testing.T) {
	m, _ := newTestModel(t, usage.AlertThresholds{})
	m.SetSize(140, 10)

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.viewport.YOffset != 1 {
		t.Errorf("YOffset = %d, want 1", m.viewport.YOffset)
	}
}
