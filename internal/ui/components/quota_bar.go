package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// QuotaBar renders a department's quota usage as a progress bar.
type QuotaBar struct {
	progress progress.Model
}

// NewQuotaBar creates a quota bar that runs from green to red.
func NewQuotaBar() QuotaBar {
	return QuotaBar{
		progress: progress.New(
			progress.WithScaledGradient("#51cf66", "#ff6b6b"),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
	}
}

// View renders the bar with a label and colored percentage.
func (q QuotaBar) View(percent float64, label string, width int) string {
	q.progress.Width = max(width-24, 10)
	bar := q.progress.ViewAs(min(max(percent, 0), 100) / 100)

	pct := styles.GetQuotaStyle(percent).Width(6).Align(lipgloss.Right).
		Render(fmt.Sprintf("%.0f%%", percent))
	labelStr := styles.ProgressLabelStyle.Width(14).Render(label)

	return lipgloss.JoinHorizontal(lipgloss.Center, labelStr, bar, " ", pct)
}

// RenderQuotaRows stacks one bar per department. Rows above the
// warning level get a marker.
func RenderQuotaRows(rows []usage.QuotaRow, width int) string {
	if len(rows) == 0 {
		return noData()
	}
	q := NewQuotaBar()
	lines := make([]string, len(rows))
	for i, r := range rows {
		line := q.View(float64(r.Used), r.Department, width)
		if r.High() {
			line += " " + styles.StatusWarnStyle.Render("HIGH")
		}
		lines[i] = line
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
