// Package info provides the info tab: configuration, the alert
// threshold editor, the export log and recent regenerations.
package info

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/aimkt-usage-tui/internal/app"
	"github.com/j-veylop/aimkt-usage-tui/internal/config"
	"github.com/j-veylop/aimkt-usage-tui/internal/models"
	"github.com/j-veylop/aimkt-usage-tui/internal/services"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/components"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

const historyLimit = 8

// alertField identifies the focused editor field.
type alertField int

const (
	fieldErrRate alertField = iota
	fieldP95
	fieldSpend
	fieldCount
)

type keyMap struct {
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
	Next    key.Binding
	Prev    key.Binding
	Save    key.Binding
	Cancel  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload history"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// generationsLoadedMsg carries the regeneration history.
type generationsLoadedMsg struct {
	err     error
	records []models.GenerationRecord
}

// Model represents the info tab state.
type Model struct {
	state    *app.State
	config   *config.Config
	services *services.Manager
	keys     keyMap
	viewport viewport.Model
	activity components.Activity
	inputs   []textinput.Model
	history  []models.GenerationRecord
	histErr  error
	width    int
	height   int
	focused  alertField
	editing  bool
}

// New creates a new info model. cfg and svc may be nil.
func New(state *app.State, cfg *config.Config, svc *services.Manager) *Model {
	placeholders := []string{"error rate %", "p95 ms", "spend $"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 12
		in.Width = 14
		in.Validate = validateNumber
		inputs[i] = in
	}

	return &Model{
		state:    state,
		config:   cfg,
		services: svc,
		keys:     defaultKeyMap(),
		viewport: viewport.New(0, 0),
		activity: components.NewActivity(),
		inputs:   inputs,
	}
}

// validateNumber accepts partial decimal input.
func validateNumber(s string) error {
	if s == "" || s == "." {
		return nil
	}
	_, err := strconv.ParseFloat(s, 64)
	return err
}

// Init initializes the info tab.
func (m *Model) Init() tea.Cmd {
	return m.loadHistoryCmd()
}

func (m *Model) loadHistoryCmd() tea.Cmd {
	if m.services == nil {
		return nil
	}
	svc := m.services
	return func() tea.Msg {
		recs, err := svc.RecentGenerations(historyLimit)
		return generationsLoadedMsg{records: recs, err: err}
	}
}

// Capturing reports whether the alert editor owns the keyboard.
func (m *Model) Capturing() bool {
	return m.editing
}

// Editing reports whether the alert editor is open.
func (m *Model) Editing() bool {
	return m.editing
}

// Update handles messages for the info tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.EditAlertsMsg:
		return m, m.openEditor()

	case app.AlertsSavedMsg:
		m.activity = m.activity.Stop()

	case app.SnapshotUpdatedMsg:
		return m, m.loadHistoryCmd()

	case generationsLoadedMsg:
		m.history, m.histErr = msg.records, msg.err

	case tea.KeyMsg:
		if m.editing {
			return m, m.updateEditor(msg)
		}
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.loadHistoryCmd()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.activity, cmd = m.activity.Update(msg)
	return m, cmd
}

func (m *Model) openEditor() tea.Cmd {
	a := m.state.Alerts()
	values := []float64{a.ErrRate, a.P95, a.Spend}
	for i := range m.inputs {
		m.inputs[i].SetValue(usage.FormatNumber(values[i]))
		m.inputs[i].CursorEnd()
	}
	m.editing = true
	m.focused = fieldErrRate
	m.updateFocus()
	return textinput.Blink
}

func (m *Model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeEditor()
		return nil

	case key.Matches(msg, m.keys.Next):
		m.focused = (m.focused + 1) % fieldCount
		m.updateFocus()
		return textinput.Blink

	case key.Matches(msg, m.keys.Prev):
		m.focused = (m.focused - 1 + fieldCount) % fieldCount
		m.updateFocus()
		return textinput.Blink

	case key.Matches(msg, m.keys.Save):
		if msg.String() == "enter" && m.focused < fieldCount-1 {
			m.focused++
			m.updateFocus()
			return textinput.Blink
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return cmd
}

// submit sends the edited thresholds. Blank or non-positive fields are
// sent as zero so the previous value is kept.
func (m *Model) submit() tea.Cmd {
	parse := func(f alertField) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(m.inputs[f].Value()), 64)
		if err != nil || v <= 0 {
			return 0
		}
		return v
	}
	a := usage.AlertThresholds{
		ErrRate: parse(fieldErrRate),
		P95:     parse(fieldP95),
		Spend:   parse(fieldSpend),
	}

	m.closeEditor()
	var tick tea.Cmd
	m.activity, tick = m.activity.Start("Saving thresholds...")
	return tea.Batch(
		func() tea.Msg { return app.SaveAlertsMsg{Alerts: a} },
		tick,
	)
}

func (m *Model) closeEditor() {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *Model) updateFocus() {
	for i := range m.inputs {
		if alertField(i) == m.focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

// SetSize sets the available size for the info tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = max(width-4, 0)
	m.viewport.Height = max(height-2, 0)
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	if m.editing {
		return []key.Binding{m.keys.Next, m.keys.Save, m.keys.Cancel}
	}
	return []key.Binding{m.keys.Refresh, m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Refresh, m.keys.Up, m.keys.Down},
		{m.keys.Next, m.keys.Prev, m.keys.Save, m.keys.Cancel},
	}
}
