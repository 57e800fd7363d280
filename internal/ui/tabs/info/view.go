package info

import (
	"fmt"
	"runtime"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/aimkt-usage-tui/internal/ui/components"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
	"github.com/j-veylop/aimkt-usage-tui/internal/version"
)

// View renders the info tab.
func (m *Model) View() string {
	sections := []string{
		m.renderTitle(),
		m.renderAlertsCard(),
		m.renderConfigCard(),
		m.renderExportsCard(),
		m.renderHistoryCard(),
		m.renderAboutCard(),
	}

	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderTitle() string {
	title := styles.TitleStyle.Render("Info")
	subtitle := styles.HelpStyle.Render("Configuration, alert thresholds and activity")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func (m *Model) cardWidth() int {
	return min(max(m.width-8, 50), 100)
}

func (m *Model) card(title string, rows ...string) string {
	content := append([]string{styles.CardTitleStyle.Render(title)}, rows...)
	return styles.CardStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

func (m *Model) renderAlertsCard() string {
	if m.editing {
		return m.renderAlertEditor()
	}

	a := m.state.Alerts()
	b := m.state.Breaches()
	values := map[string]string{
		"Error rate":  "> " + usage.FormatPct(a.ErrRate, 2),
		"p95 latency": "> " + usage.FormatNumber(a.P95) + " ms",
		"Spend":       "> " + usage.FormatMoney(a.Spend),
		"Quota":       "> " + strconv.Itoa(usage.QuotaWarnPct) + "%",
	}

	rows := make([]string, 0, 6)
	for _, c := range b.Checks() {
		rows = append(rows, fmt.Sprintf("%s %s", components.StatusPill(c.Status), m.renderConfigRow(c.Name, values[c.Name])))
	}
	rows = append(rows, "")
	if m.activity.Active() {
		rows = append(rows, m.activity.View())
	} else {
		rows = append(rows, styles.HelpStyle.Render("Press 's' to edit thresholds"))
	}
	return m.card("Alert thresholds", rows...)
}

func (m *Model) renderAlertEditor() string {
	labels := []string{"Error rate (%)", "p95 latency (ms)", "Spend ($)"}
	rows := make([]string, 0, len(labels)+2)
	for i, in := range m.inputs {
		label := styles.BlurredStyle.Render("  " + labels[i])
		border := styles.BlurredBorderStyle
		if alertField(i) == m.focused {
			label = styles.FocusedStyle.Render("> " + labels[i])
			border = styles.FocusedBorderStyle
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center,
			lipgloss.NewStyle().Width(20).Render(label), border.Width(18).Render(in.View())))
	}
	rows = append(rows, "",
		styles.HelpStyle.Render("Tab: next field | Enter: save | Esc: cancel | blank keeps current"))
	return styles.ModalContentStyle.Width(m.cardWidth()).Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{styles.CardTitleStyle.Render("Edit alert thresholds")}, rows...)...))
}

func (m *Model) renderConfigCard() string {
	if m.config == nil {
		return m.card("Configuration", styles.HelpStyle.Render("Configuration not loaded"))
	}
	c := m.config
	notify := "off"
	if c.DesktopNotifications {
		notify = "on"
	}
	return m.card("Configuration",
		m.renderConfigRow("Profile", c.ProfilePath),
		m.renderConfigRow("Database", c.DatabasePath),
		m.renderConfigRow("Export dir", c.ExportDir),
		m.renderConfigRow("Seed", strconv.FormatInt(c.Seed, 10)),
		m.renderConfigRow("Default range", c.DefaultRange.Label()),
		m.renderConfigRow("Pixel ratio", usage.FormatNumber(c.DevicePixelRatio)),
		m.renderConfigRow("Notifications", notify),
	)
}

func (m *Model) renderConfigRow(label, value string) string {
	labelStyle := lipgloss.NewStyle().Width(16).Foreground(styles.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	return labelStyle.Render(label+":") + " " + valueStyle.Render(value)
}

func (m *Model) renderExportsCard() string {
	recs := m.state.Exports()
	if len(recs) == 0 {
		return m.card("Export log", styles.HelpStyle.Render("No exports yet (e/x/y/p)"))
	}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{r.CreatedAt.Local().Format("15:04:05"), r.Kind, r.Target, r.Status()}
	}
	table := components.RenderTable([]string{"Time", "Kind", "Target", "Status"}, rows, 0,
		func(row int) bool { return !recs[row].OK })
	return m.card("Export log", table)
}

func (m *Model) renderHistoryCard() string {
	switch {
	case m.histErr != nil:
		return m.card("Recent regenerations", styles.ErrorTextStyle.Render(m.histErr.Error()))
	case m.services == nil:
		return m.card("Recent regenerations", styles.HelpStyle.Render("History is not persisted"))
	case len(m.history) == 0:
		return m.card("Recent regenerations", styles.HelpStyle.Render("No regenerations recorded"))
	}

	rows := make([][]string, len(m.history))
	for i, g := range m.history {
		rows[i] = []string{
			g.CreatedAt.Local().Format("15:04:05"),
			g.Trigger,
			g.TimeRange,
			usage.FormatCount(float64(g.Calls)),
			usage.FormatPct(g.ErrRate, 2),
			usage.FormatMoney(g.Spend),
		}
	}
	return m.card("Recent regenerations",
		components.RenderTable([]string{"Time", "Trigger", "Range", "Calls", "Err%", "Spend"}, rows, 0, nil))
}

func (m *Model) renderAboutCard() string {
	return m.card("About "+version.AppName,
		m.renderConfigRow("Version", version.GetVersion()),
		m.renderConfigRow("Git Commit", version.GetCommit()),
		m.renderConfigRow("Build Date", version.GetDate()),
		m.renderConfigRow("Go Version", runtime.Version()),
		m.renderConfigRow("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)),
		m.renderConfigRow("Services", fmt.Sprintf("%d in profile", len(m.state.Profile().Services))),
	)
}
