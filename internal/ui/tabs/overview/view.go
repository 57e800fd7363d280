package overview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/aimkt-usage-tui/internal/charts"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/components"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

const chartHeight = 6

// View renders the overview tab.
func (m *Model) View() string {
	return styles.DocStyle.Render(m.viewport.View())
}

func (m *Model) renderContent() string {
	snap := m.state.Snapshot()
	if snap == nil {
		return styles.HelpStyle.Render("No data generated yet")
	}
	f := m.state.Filters()

	sections := []string{
		m.renderTitle(snap),
		components.RenderKPIStrip(components.KPICards(snap.KPIs, m.state.Breaches()), m.contentWidth()),
		m.renderRequests(snap, f),
		m.card("Latency", components.RenderMultiLineChart(
			[][]float64{snap.P50, snap.P95}, []int{2, 1},
			m.chartWidth(), chartHeight, "p50 / p95 (ms)")),
		m.card("Requests per second", components.RenderLineChart(
			snap.RPS, m.chartWidth(), chartHeight, fmt.Sprintf("peak %.1f rps", snap.KPIs.RPSPeak))),
		m.renderTokens(snap, f),
		m.card("Weekly pattern", components.RenderHeatmap(snap.Heatmap)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTitle(snap *usage.Snapshot) string {
	title := styles.TitleStyle.Render("Overview")
	subtitle := styles.HelpStyle.Render(fmt.Sprintf("%s · %d steps · seed %d · generated %s",
		snap.Range.Label(), snap.Steps, snap.Seed, m.state.GeneratedAt().Format("15:04:05")))
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

// renderRequests plots the cumulative band tops of the active services so
// the top line is the total request volume.
func (m *Model) renderRequests(snap *usage.Snapshot, f usage.Filters) string {
	legend := components.RenderLegend(components.LegendItems(f.Legends))

	active := charts.ActiveRequests(snap, f.Legends)
	if len(active) == 0 {
		return m.card("Requests", legend+"\n\n"+styles.HelpStyle.Render("No services selected"))
	}

	bands := charts.Stack(active, snap.Steps)
	series := make([][]float64, len(bands))
	colors := make([]int, len(bands))
	names := f.Legends.Names()
	for i, b := range bands {
		series[i] = b
		for j, n := range names {
			if n == active[i].Name {
				colors[i] = j
			}
		}
	}

	chart := components.RenderMultiLineChart(series, colors, m.chartWidth(), chartHeight,
		fmt.Sprintf("stacked requests · %s total", usage.FormatCount(snap.ActiveCalls(f.Legends).Sum())))
	return m.card("Requests", legend+"\n"+chart)
}

func (m *Model) renderTokens(snap *usage.Snapshot, f usage.Filters) string {
	in, out := charts.TokenSeries(snap, f)

	var series [][]float64
	var colors []int
	if f.Tokens.In {
		series = append(series, in)
		colors = append(colors, 0)
	}
	if f.Tokens.Out {
		series = append(series, out)
		colors = append(colors, 1)
	}
	if len(series) == 0 {
		return m.card("Tokens", styles.HelpStyle.Render("Token series hidden (i/o to show)"))
	}

	legend := components.RenderLegend([]components.LegendItem{
		{Label: "in", Color: styles.SeriesColor(0), Active: f.Tokens.In},
		{Label: "out", Color: styles.SeriesColor(1), Active: f.Tokens.Out},
	})
	chart := components.RenderMultiLineChart(series, colors, m.chartWidth(), chartHeight, charts.TokenLabel(f.Tokens))
	return m.card("Tokens", legend+"\n"+chart)
}

func (m *Model) card(title, body string) string {
	content := lipgloss.JoinVertical(lipgloss.Left, styles.CardTitleStyle.Render(title), body)
	return styles.CardStyle.Width(m.contentWidth()).Render(content)
}

func (m *Model) contentWidth() int {
	return max(m.width-8, 40)
}

func (m *Model) chartWidth() int {
	return max(m.contentWidth()-16, 20)
}
