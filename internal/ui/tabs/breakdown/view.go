package breakdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/aimkt-usage-tui/internal/charts"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/components"
	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// View renders the breakdown tab.
func (m *Model) View() string {
	snap := m.state.Snapshot()
	if snap == nil {
		return styles.DocStyle.Render(styles.HelpStyle.Render("No data generated yet"))
	}
	dim := m.state.Filters().Dimension

	title := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Breakdown by "+dim.Title()),
		styles.HelpStyle.Render(fmt.Sprintf("%s · %d rows · d to change dimension",
			snap.Range.Label(), len(m.table.Rows()))),
	)

	half := max((m.width-12)/2, 30)
	signals := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Safety signals", m.renderCounts(snap.Safety, half-6), half),
		m.card("Prompt length", components.RenderBarChart(
			charts.PromptCounts(snap), bucketLabels(snap.PromptLengths), half-6), half),
	)

	return styles.DocStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.table.View(),
		"",
		signals,
		m.card("Retrieval quality", m.renderQuality(snap.KPIs), max(m.width-8, 40)),
	))
}

func (m *Model) renderCounts(counts []usage.CategoryCount, width int) string {
	values := make([]float64, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = c.Label
	}
	if len(values) == 0 {
		return styles.HelpStyle.Render("No signals")
	}
	return components.RenderBarChart(values, labels, width)
}

func bucketLabels(buckets []usage.CategoryCount) []string {
	labels := make([]string, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
	}
	return labels
}

func (m *Model) renderQuality(k usage.KPISet) string {
	line := func(label string, frac float64) string {
		const width = 30
		filled := min(max(int(frac*width+0.5), 0), width)
		bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("█", filled)) +
			lipgloss.NewStyle().Foreground(styles.BgLight).Render(strings.Repeat("░", width-filled))
		return fmt.Sprintf("%-18s %s %s", label, bar, usage.FormatPct(frac*100, 0))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		line("RAG hit rate", k.RAGHit),
		line("Citation coverage", k.CiteCoverage),
	)
}

func (m *Model) card(title, body string, width int) string {
	content := lipgloss.JoinVertical(lipgloss.Left, styles.CardTitleStyle.Render(title), body)
	return styles.CardStyle.Width(width).Render(content)
}
