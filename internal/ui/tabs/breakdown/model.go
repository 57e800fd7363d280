// Package breakdown provides the breakdown tab: the per-dimension usage
// table plus safety and retrieval quality signals.
package breakdown

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/aimkt-usage-tui/internal/app"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

type keyMap struct {
	Up   key.Binding
	Down key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next row"),
		),
	}
}

// Model represents the breakdown tab state.
type Model struct {
	state     *app.State
	table     table.Model
	keys      keyMap
	dimension usage.Dimension
	width     int
	height    int
}

// New creates a new breakdown model.
func New(state *app.State) *Model {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Subtle).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Primary)
	s.Selected = s.Selected.
		Foreground(styles.TextPrimary).
		Background(styles.BgAccent).
		Bold(true)
	t.SetStyles(s)

	m := &Model{
		state: state,
		table: t,
		keys:  defaultKeyMap(),
	}
	m.updateTableData()
	return m
}

// Init initializes the breakdown tab.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the breakdown tab.
func (m *Model) Update(msg tea.Msg) (app.Tab, tea.Cmd) {
	switch msg := msg.(type) {
	case app.SnapshotUpdatedMsg, app.FiltersChangedMsg:
		m.updateTableData()

	case tea.KeyMsg:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateTableData rebuilds columns and rows for the current dimension.
func (m *Model) updateTableData() {
	snap := m.state.Snapshot()
	if snap == nil {
		return
	}
	dim := m.state.Filters().Dimension
	data := snap.Breakdowns.Table(dim)

	rows := make([]table.Row, len(data.Rows))
	for i, r := range data.Rows {
		rows[i] = table.Row(r)
	}

	// Clear rows first: the old rows may have more cells than the new columns.
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(data, m.width))
	m.table.SetRows(rows)
	if dim != m.dimension {
		m.table.SetCursor(0)
		m.dimension = dim
	}
}

// columnsFor sizes each column to its widest cell, capped so the table
// fits width.
func columnsFor(t usage.Table, width int) []table.Column {
	cols := make([]table.Column, len(t.Header))
	for i, h := range t.Header {
		w := lipgloss.Width(h)
		for _, r := range t.Rows {
			if i < len(r) {
				w = max(w, lipgloss.Width(r[i]))
			}
		}
		cols[i] = table.Column{Title: h, Width: w + 1}
	}

	if width <= 0 || len(cols) == 0 {
		return cols
	}
	budget := width / len(cols)
	for i := range cols {
		cols[i].Width = min(cols[i].Width, max(budget, 8))
	}
	return cols
}

// SelectedRow returns the cells of the highlighted row.
func (m *Model) SelectedRow() []string {
	return m.table.SelectedRow()
}

// SetSize sets the available size for the breakdown tab.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(min(height-16, 12), 4))
	m.updateTableData()
}

// ShortHelp returns the key bindings for the short help view.
func (m *Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Up, m.keys.Down}
}

// FullHelp returns the key bindings for the full help view.
func (m *Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{{m.keys.Up, m.keys.Down}}
}
