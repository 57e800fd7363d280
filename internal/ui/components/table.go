package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
)

// RenderTable draws a bordered table. highlight, when non-nil, picks
// rows to render in the warning color.
func RenderTable(headers []string, rows [][]string, width int, highlight func(row int) bool) string {
	if len(rows) == 0 {
		return noData()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.Subtle)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.TableCellStyle.Bold(true).Foreground(styles.Primary)
			case highlight != nil && highlight(row):
				return styles.TableCellStyle.Foreground(styles.Warning)
			default:
				return styles.TableCellStyle
			}
		})
	if width > 0 {
		t = t.Width(width)
	}
	return t.Render()
}
