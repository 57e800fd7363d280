// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// seriesAnsi mirrors styles.SeriesPalette for asciigraph output.
var seriesAnsi = []asciigraph.AnsiColor{
	asciigraph.DodgerBlue,
	asciigraph.DarkOrange,
	asciigraph.Green,
	asciigraph.Magenta,
	asciigraph.Yellow,
}

// noData is shown in place of an empty chart.
func noData() string {
	return styles.HelpStyle.Render("No data available")
}

func clampSize(width, height int) (int, int) {
	return max(width, 20), max(height, 3)
}

// RenderLineChart creates a single-series ASCII line chart.
func RenderLineChart(data []float64, width, height int, caption string) string {
	if len(data) == 0 {
		return noData()
	}
	width, height = clampSize(width, height)

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// RenderMultiLineChart plots several series on a shared axis. Series are
// colored by their index in the palette, so callers pass the palette
// index of each series in colors.
func RenderMultiLineChart(series [][]float64, colors []int, width, height int, caption string) string {
	maxLen := 0
	for _, s := range series {
		maxLen = max(maxLen, len(s))
	}
	if maxLen == 0 {
		return noData()
	}
	width, height = clampSize(width, height)

	// asciigraph needs equal lengths; pad shorter series with zeros.
	data := make([][]float64, len(series))
	ansi := make([]asciigraph.AnsiColor, len(series))
	for i, s := range series {
		data[i] = make([]float64, maxLen)
		copy(data[i], s)
		idx := i
		if i < len(colors) {
			idx = colors[i]
		}
		ansi[i] = seriesAnsi[idx%len(seriesAnsi)]
	}

	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(ansi...),
	)
}

// RenderBarChart creates a simple horizontal bar chart.
func RenderBarChart(values []float64, labels []string, width int) string {
	if len(values) == 0 {
		return ""
	}

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	maxLabelLen := 0
	for _, l := range labels {
		maxLabelLen = max(maxLabelLen, lipgloss.Width(l))
	}

	barWidth := max(width-maxLabelLen-10, 10)

	lines := make([]string, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		padded := strings.Repeat(" ", maxLabelLen-lipgloss.Width(label)) + label

		barLen := max(int((v/maxVal)*float64(barWidth)), 0)
		bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("█", barLen))

		lines = append(lines, padded+" │"+bar+" "+usage.FormatNumber(v))
	}

	return strings.Join(lines, "\n")
}

// HeatmapBlocks are Unicode block characters for heatmaps (low to high intensity).
var HeatmapBlocks = []rune{' ', '░', '▒', '▓', '█'}

var heatmapDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// RenderHeatmap draws the 7×24 request grid, one row per weekday with
// intensity scaled to the busiest cell.
func RenderHeatmap(grid usage.HeatmapGrid) string {
	maxVal := grid.Max()
	if maxVal == 0 {
		maxVal = 1
	}

	var b strings.Builder
	b.WriteString("    00    06    12    18   23\n")
	for d, row := range grid {
		b.WriteString(heatmapDays[d])
		b.WriteString(" ")
		for _, v := range row {
			level := min(int((v/maxVal)*float64(len(HeatmapBlocks)-1)+0.5), len(HeatmapBlocks)-1)
			level = max(level, 0)
			b.WriteString(heatmapStyle(level).Render(string(HeatmapBlocks[level])))
		}
		if d < len(grid)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func heatmapStyle(level int) lipgloss.Style {
	switch level {
	case 0, 1:
		return lipgloss.NewStyle().Foreground(styles.Subtle)
	case 2:
		return lipgloss.NewStyle().Foreground(styles.Success)
	case 3:
		return lipgloss.NewStyle().Foreground(styles.Warning)
	default:
		return lipgloss.NewStyle().Foreground(styles.Error)
	}
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sample picks width evenly spaced points from values, each scaled to
// [0,1] against the series maximum.
func sample(values []float64, width int) []float64 {
	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	step := max(float64(len(values))/float64(width), 1)
	var out []float64
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		out = append(out, values[int(float64(i)*step)]/maxVal)
	}
	return out
}

func sparkRune(scaled float64) rune {
	idx := min(max(int(scaled*float64(len(sparkChars)-1)), 0), len(sparkChars)-1)
	return sparkChars[idx]
}

// RenderSparkline creates a compact inline sparkline chart.
func RenderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range sample(values, width) {
		b.WriteRune(sparkRune(v))
	}
	return b.String()
}

// RenderColoredSparkline creates a sparkline where higher points run hotter.
func RenderColoredSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	var b strings.Builder
	for _, v := range sample(values, width) {
		b.WriteString(styles.GetQuotaStyle(v * 100).Render(string(sparkRune(v))))
	}
	return b.String()
}

// LegendItem represents a single legend entry.
type LegendItem struct {
	Label  string
	Color  lipgloss.Color
	Active bool
}

// LegendItems maps a legend set to display entries in palette order.
func LegendItems(legends usage.LegendSet) []LegendItem {
	items := make([]LegendItem, len(legends))
	for i, l := range legends {
		items[i] = LegendItem{Label: l.Name, Color: styles.SeriesColor(i), Active: l.Active}
	}
	return items
}

// RenderLegend creates a chart legend. Inactive entries are dimmed.
func RenderLegend(items []LegendItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		box := lipgloss.NewStyle().Foreground(item.Color).Render("■")
		label := item.Label
		if !item.Active {
			box = lipgloss.NewStyle().Foreground(styles.Subtle).Render("□")
			label = styles.BlurredStyle.Render(label)
		}
		parts = append(parts, fmt.Sprintf("%s %s", box, label))
	}
	return strings.Join(parts, "  ")
}
