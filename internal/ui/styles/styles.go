// Package styles defines the visual styling for the application.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// Color definitions for the usage dashboard theme.
var (
	// Primary colors
	Primary = lipgloss.Color("205") // Pink
	Subtle  = lipgloss.Color("240") // Gray

	// SeriesPalette colors chart series in legend order.
	SeriesPalette = []lipgloss.Color{
		lipgloss.Color("39"),  // Blue
		lipgloss.Color("208"), // Orange
		lipgloss.Color("42"),  // Green
		lipgloss.Color("170"), // Magenta
		lipgloss.Color("220"), // Yellow
	}

	// Status colors
	Success = lipgloss.Color("42")  // Green
	Error   = lipgloss.Color("196") // Red
	Warning = lipgloss.Color("220") // Yellow
	Info    = lipgloss.Color("39")  // Blue

	// Background colors
	BgDark   = lipgloss.Color("235")
	BgLight  = lipgloss.Color("237")
	BgAccent = lipgloss.Color("236")

	// Text colors
	TextPrimary   = lipgloss.Color("252")
	TextSecondary = lipgloss.Color("245")
	TextMuted     = lipgloss.Color("240")

	// ToastStyle for floating notifications.
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1).
			MarginBottom(1)
)

// TitleStyle is used for main headings.
var TitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// DocStyle provides consistent document margins.
var DocStyle = lipgloss.NewStyle().
	Margin(1, 2).
	Padding(0, 1)

// CardStyle creates a bordered card container.
var CardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(1, 2).
	MarginBottom(1)

// CardTitleStyle styles card headers.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(Primary).
	MarginBottom(1)

// FocusedStyle is used for focused input elements.
var FocusedStyle = lipgloss.NewStyle().
	Foreground(Primary).
	Bold(true)

// BlurredStyle is used for unfocused input elements.
var BlurredStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// FocusedBorderStyle creates a focused border.
var FocusedBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Primary).
	Padding(0, 1)

// BlurredBorderStyle creates an unfocused border.
var BlurredBorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Subtle).
	Padding(0, 1)

// ProgressLabelStyle styles progress bar labels.
var ProgressLabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary).
	Width(20)

// HelpStyle is the base style for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(TextMuted)

// HelpPanelStyle creates the help overlay panel.
var HelpPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 3).
	Background(BgDark)

// TableCellStyle styles table cells.
var TableCellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// StatusOKStyle styles passing alert checks.
var StatusOKStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("229")).
	Background(Success).
	Padding(0, 1)

// StatusWarnStyle styles soft breaches.
var StatusWarnStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("235")).
	Background(Warning).
	Bold(true).
	Padding(0, 1)

// StatusBadStyle styles hard breaches.
var StatusBadStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("229")).
	Background(Error).
	Bold(true).
	Padding(0, 1)

// KPIValueStyle styles the headline number of a KPI card.
var KPIValueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary)

// KPILabelStyle styles the caption of a KPI card.
var KPILabelStyle = lipgloss.NewStyle().
	Foreground(TextSecondary)

// QuotaOKStyle for quota usage at or below 60%.
var QuotaOKStyle = lipgloss.NewStyle().
	Foreground(Success)

// QuotaMediumStyle for quota usage between 60% and 80%.
var QuotaMediumStyle = lipgloss.NewStyle().
	Foreground(Warning)

// QuotaHighStyle for quota usage above 80%.
var QuotaHighStyle = lipgloss.NewStyle().
	Foreground(Error).
	Bold(true)

// ErrorTextStyle for error messages.
var ErrorTextStyle = lipgloss.NewStyle().
	Foreground(Error)

// ModalContentStyle styles modal content.
var ModalContentStyle = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(Primary).
	Padding(1, 2).
	Background(BgDark)

// GetQuotaStyle returns the style for a quota usage percentage.
func GetQuotaStyle(used float64) lipgloss.Style {
	switch {
	case used > 80:
		return QuotaHighStyle
	case used > 60:
		return QuotaMediumStyle
	default:
		return QuotaOKStyle
	}
}

// GetStatusStyle returns the pill style for an alert status.
func GetStatusStyle(s usage.Status) lipgloss.Style {
	switch s {
	case usage.StatusBad:
		return StatusBadStyle
	case usage.StatusWarn:
		return StatusWarnStyle
	default:
		return StatusOKStyle
	}
}

// StatusColor returns the border color for an alert status. OK maps to
// the neutral border.
func StatusColor(s usage.Status) lipgloss.Color {
	switch s {
	case usage.StatusBad:
		return Error
	case usage.StatusWarn:
		return Warning
	default:
		return Subtle
	}
}

// SeriesColor returns the palette color for the i-th chart series.
func SeriesColor(i int) lipgloss.Color {
	return SeriesPalette[i%len(SeriesPalette)]
}
