package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/aimkt-usage-tui/internal/ui/styles"
)

// Activity is a labelled spinner shown while a background task such as
// saving thresholds or exporting is in flight. An idle Activity renders
// nothing and drops spinner ticks, so a stale tick cannot restart it.
type Activity struct {
	spinner spinner.Model
	label   string
	active  bool
}

// NewActivity returns an idle activity indicator.
func NewActivity() Activity {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Primary)
	return Activity{spinner: s}
}

// Start marks the activity as running under label and returns the first tick.
func (a Activity) Start(label string) (Activity, tea.Cmd) {
	a.label = label
	a.active = true
	return a, a.spinner.Tick
}

// Stop marks the activity as finished.
func (a Activity) Stop() Activity {
	a.active = false
	return a
}

// Active reports whether the activity is running.
func (a Activity) Active() bool { return a.active }

// Label returns the label of the current or last run.
func (a Activity) Label() string { return a.label }

// Update advances the spinner while the activity is running.
func (a Activity) Update(msg tea.Msg) (Activity, tea.Cmd) {
	if !a.active {
		return a, nil
	}
	if _, ok := msg.(spinner.TickMsg); !ok {
		return a, nil
	}
	var cmd tea.Cmd
	a.spinner, cmd = a.spinner.Update(msg)
	return a, cmd
}

// View renders the spinner and label, or nothing when idle.
func (a Activity) View() string {
	if !a.active {
		return ""
	}
	return a.spinner.View() + " " + lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(a.label)
}
