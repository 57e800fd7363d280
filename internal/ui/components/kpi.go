package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// KPI is one headline card.
type KPI struct {
	Label  string
	Value  string
	Note   string
	Status usage.Status
	// Alerted marks cards backed by an alert check; only those get a pill.
	Alerted bool
}

// KPICards builds the headline cards for a KPI set, flagging the checks
// in b that are not OK.
func KPICards(k usage.KPISet, b usage.Breaches) []KPI {
	delta := fmt.Sprintf("%+.1f%% vs prev", k.CallsDelta)
	return []KPI{
		{Label: "Calls", Value: usage.FormatCount(float64(k.Calls)), Note: delta},
		{Label: "Active keys", Value: humanize.Comma(int64(k.ActiveKeys))},
		{Label: "Latency p50/p95", Value: fmt.Sprintf("%d / %d ms", k.LatencyP50, k.LatencyP95),
			Status: b.P95, Alerted: true},
		{Label: "Error rate", Value: usage.FormatPct(k.ErrRate, 2), Status: b.ErrRate, Alerted: true},
		{Label: "Tokens in/out", Value: usage.FormatTokenPair(k.TokensIn, k.TokensOut)},
		{Label: "Spend", Value: usage.FormatMoney(k.Spend), Status: b.Spend, Alerted: true},
		{Label: "Quota max", Value: usage.FormatPct(k.QuotaMaxPct, 0), Status: b.Quota, Alerted: true},
		{Label: "RPS peak", Value: fmt.Sprintf("%.1f", k.RPSPeak)},
	}
}

// StatusPill renders a compact OK/WARN/BAD badge.
func StatusPill(s usage.Status) string {
	return styles.GetStatusStyle(s).Render(strings.ToUpper(s.String()))
}

// RenderKPICard renders a single card of the given outer width.
func RenderKPICard(k KPI, width int) string {
	title := styles.KPILabelStyle.Render(k.Label)
	if k.Alerted {
		title += " " + StatusPill(k.Status)
	}
	lines := []string{title, styles.KPIValueStyle.Render(k.Value)}
	if k.Note != "" {
		lines = append(lines, styles.HelpStyle.Render(k.Note))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.StatusColor(k.Status)).
		Padding(0, 1).
		Width(max(width-2, 10)).
		Render(strings.Join(lines, "\n"))
}

// RenderKPIStrip lays the cards out in rows that fit width.
func RenderKPIStrip(cards []KPI, width int) string {
	const cardWidth = 26
	perRow := max(width/cardWidth, 1)

	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rendered := make([]string, 0, end-i)
		for _, c := range cards[i:end] {
			rendered = append(rendered, RenderKPICard(c, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
