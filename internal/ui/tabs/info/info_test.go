package info

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/aimkt-usage-tui/internal/app"
	"github.com/j-veylop/aimkt-usage-tui/internal/config"
	"github.com/j-veylop/aimkt-usage-tui/internal/models"
	"github.com/j-veylop/aimkt-usage-tui/internal/services"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

func newTestModel(t *testing.T) (*Model, *app.State) {
	t.Helper()
	state := app.NewState(usage.DefaultSeed, nil, usage.Range24h, usage.AlertThresholds{})
	m := New(state, &config.Config{ProfilePath: "/tmp/profile.yaml", Seed: 42, DevicePixelRatio: 2}, nil)
	m.SetSize(120, 200)
	return m, state
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and flattens batches, skipping blink and spinner ticks.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			if c != nil {
				out = append(out, c())
			}
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

func findSave(msgs []tea.Msg) (app.SaveAlertsMsg, bool) {
	for _, msg := range msgs {
		if s, ok := msg.(app.SaveAlertsMsg); ok {
			return s, true
		}
	}
	return app.SaveAlertsMsg{}, false
}

func TestModel_View(t *testing.T) {
	m, _ := newTestModel(t)

	view := ansi.Strip(m.View())
	for _, want := range []string{
		"Alert thresholds", "Error rate", "> 2.00%", "WARN", "p95 latency", "> 1500 ms",
		"Configuration", "/tmp/profile.yaml", "Export log", "No exports yet",
		"History is not persisted", "About aimkt-usage", "2 in profile",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_NilConfig(t *testing.T) {
	state := app.NewState(usage.DefaultSeed, nil, usage.Range24h, usage.AlertThresholds{})
	m := New(state, nil, nil)
	m.SetSize(80, 100)

	if m.Init() != nil {
		t.Error("Init without services should not load history")
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Configuration not loaded") {
		t.Error("expected placeholder for missing config")
	}
}

func TestModel_EditAlerts(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(app.EditAlertsMsg{})
	if !m.Capturing() {
		t.Fatal("editor should capture input")
	}
	if got := m.inputs[fieldErrRate].Value(); got != "2" {
		t.Errorf("error rate input = %q, want 2", got)
	}

	// Replace the error rate, clear p95, leave spend.
	m.inputs[fieldErrRate].SetValue("")
	m.Update(keyRunes("3.5"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.inputs[fieldP95].SetValue("")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.focused != fieldSpend {
		t.Fatalf("enter should advance to the last field, focused = %d", m.focused)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	save, ok := findSave(collect(cmd))
	if !ok {
		t.Fatal("expected SaveAlertsMsg")
	}
	want := usage.AlertThresholds{ErrRate: 3.5, P95: 0, Spend: 500}
	if save.Alerts != want {
		t.Errorf("Alerts = %+v, want %+v", save.Alerts, want)
	}
	if m.Capturing() || !m.activity.Active() {
		t.Error("editor should close and show saving state")
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Saving thresholds") {
		t.Error("saving state should show the spinner")
	}

	m.Update(app.AlertsSavedMsg{Alerts: want})
	if m.activity.Active() {
		t.Error("AlertsSavedMsg should clear saving state")
	}
}

func TestModel_EditCancel(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(app.EditAlertsMsg{})
	if view := ansi.Strip(m.View()); !strings.Contains(view, "Edit alert thresholds") {
		t.Error("editor should render")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() || cmd != nil {
		t.Error("esc should close the editor without saving")
	}
}

func TestModel_EditNonPositive(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(app.EditAlertsMsg{})
	m.inputs[fieldErrRate].SetValue("-1")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	save, ok := findSave(collect(cmd))
	if !ok {
		t.Fatal("ctrl+s should save from any field")
	}
	if save.Alerts.ErrRate != 0 {
		t.Errorf("non-positive input should be sent as zero, got %v", save.Alerts.ErrRate)
	}
}

func TestModel_ExportLog(t *testing.T) {
	m, state := newTestModel(t)

	state.SetExports([]models.ExportRecord{
		{CreatedAt: time.Now(), Kind: "json", Target: "/tmp/kpis.json", OK: true},
		{CreatedAt: time.Now(), Kind: "csv", Target: "/tmp/tables.csv", Error: "disk full"},
	})
	view := ansi.Strip(m.View())
	for _, want := range []string{"kpis.json", "disk full"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}

func TestModel_History(t *testing.T) {
	dir := t.TempDir()
	mgr, err := services.NewManager(&config.Config{
		DatabasePath:    filepath.Join(dir, "usage.db"),
		ProfilePath:     filepath.Join(dir, "profile.yaml"),
		ProfileDebounce: 10 * time.Millisecond,
		HistoryLimit:    5,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	defer mgr.Close()

	state := app.NewState(usage.DefaultSeed, mgr.Profile(), usage.Range24h, usage.AlertThresholds{})
	if err := mgr.RecordGeneration(state.Snapshot(), "startup"); err != nil {
		t.Fatalf("RecordGeneration: %v", err)
	}

	m := New(state, nil, mgr)
	m.SetSize(120, 200)
	msgs := collect(m.Init())
	if len(msgs) != 1 {
		t.Fatalf("expected history message, got %v", msgs)
	}
	m.Update(msgs[0])

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "startup") || !strings.Contains(view, "830") {
		t.Errorf("history should list the startup generation:\n%s", view)
	}

	m.Update(generationsLoadedMsg{err: errors.New("db closed")})
	if !strings.Contains(ansi.Strip(m.View()), "db closed") {
		t.Error("history errors should be shown")
	}
}
