package reliability

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/aimkt-usage-tui/internal/charts"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/components"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// View renders the reliability tab.
func (m *Model) View() string {
	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderContent() string {
	snap := m.state.Snapshot()
	if snap == nil {
		return styles.HelpStyle.Render("No data generated yet")
	}

	title := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Reliability"),
		styles.HelpStyle.Render(fmt.Sprintf("%s · error rate %s",
			snap.Range.Label(), usage.FormatPct(snap.KPIs.ErrRate, 2))),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.card("Top error classes", m.renderErrors(snap)),
		m.card("Failures", m.renderFailures(snap)),
		m.card("Timeouts vs size limit", components.RenderBarChart(
			charts.TimeoutsVsSize(snap), []string{"Timeouts", "Size limit"}, m.contentWidth()-8)),
		m.card("Spend by provider/route", m.renderSpend(snap)),
		m.card("Quota by department", components.RenderQuotaRows(snap.Quotas, m.contentWidth()-8)),
	)
}

func (m *Model) renderErrors(snap *usage.Snapshot) string {
	rows := make([][]string, len(snap.Errors.Top))
	for i, e := range snap.Errors.Top {
		rows[i] = []string{e.Route, usage.FormatPct(e.Pct, 1), e.Sample}
	}
	return components.RenderTable([]string{"Route", "Share", "Sample"}, rows, 0, nil)
}

func (m *Model) renderFailures(snap *usage.Snapshot) string {
	spark := components.RenderColoredSparkline(snap.Failures, m.contentWidth()-8)
	summary := fmt.Sprintf("%s failures · %s retries · %s throttles",
		usage.FormatCount(snap.Failures.Sum()),
		humanize.Comma(int64(snap.Errors.Retries)),
		humanize.Comma(int64(snap.Errors.Throttles)))
	return lipgloss.JoinVertical(lipgloss.Left, spark, styles.HelpStyle.Render(summary))
}

func (m *Model) renderSpend(snap *usage.Snapshot) string {
	rows := make([][]string, 0, len(snap.Spend)+1)
	var total float64
	for _, r := range snap.Spend {
		rows = append(rows, []string{
			r.Label(),
			humanize.Comma(int64(r.Calls)),
			usage.FormatTokenPair(r.TokensIn, r.TokensOut),
			usage.FormatMoney(r.Cost),
		})
		total += r.Cost
	}
	rows = append(rows, []string{"Total", "", "", usage.FormatMoney(total)})

	overBudget := total > m.state.Alerts().Spend
	table := components.RenderTable([]string{"Provider/Route", "Calls", "Tokens in/out", "Cost"}, rows, 0,
		func(row int) bool { return overBudget && row == len(rows)-1 })

	budget := "budget " + usage.FormatMoney(m.state.Alerts().Spend)
	return lipgloss.JoinVertical(lipgloss.Left, table,
		components.StatusPill(m.state.Breaches().Spend)+" "+styles.HelpStyle.Render(budget))
}

func (m *Model) card(title, body string) string {
	content := lipgloss.JoinVertical(lipgloss.Left, styles.CardTitleStyle.Render(title), body)
	return styles.CardStyle.Width(m.contentWidth()).Render(content)
}

func (m *Model) contentWidth() int {
	return max(m.width-8, 40)
}
