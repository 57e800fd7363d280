package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/aimkt-usage-tui/internal/charts"
	"github.com/j-veylop/aimkt-usage-tui/internal/export"
	"github.com/j-veylop/aimkt-usage-tui/internal/logger"
	"github.com/j-veylop/aimkt-usage-tui/internal/services"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second

	exportLogLimit = 10
)

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

func snapshotUpdatedCmd(snap *usage.Snapshot, reason string) tea.Cmd {
	return func() tea.Msg {
		return SnapshotUpdatedMsg{Snapshot: snap, Reason: reason}
	}
}

func filtersChangedCmd(f usage.Filters) tea.Cmd {
	return func() tea.Msg {
		return FiltersChangedMsg{Filters: f}
	}
}

// recordGenerationCmd logs the snapshot and checks it against thresholds.
// Breaches come back through the service subscription.
func recordGenerationCmd(mgr *services.Manager, snap *usage.Snapshot, reason string, alerts usage.AlertThresholds) tea.Cmd {
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		mgr.ObserveSnapshot(snap, alerts)
		if err := mgr.RecordGeneration(snap, reason); err != nil {
			logger.Error("failed to record generation", "error", err)
		}
		return nil
	}
}

func recordExport(mgr *services.Manager, kind export.Kind, target string, err error) {
	if mgr == nil {
		return
	}
	if logErr := mgr.RecordExport(string(kind), target, err); logErr != nil {
		logger.Error("failed to record export", "kind", kind, "error", logErr)
	}
}

func exportJSONCmd(mgr *services.Manager, dir string, k usage.KPISet) tea.Cmd {
	return func() tea.Msg {
		data, err := export.KPIsJSON(k)
		var path string
		if err == nil {
			path, err = export.SaveFile(dir, export.KPIsFileName, data)
		}
		recordExport(mgr, export.KindJSON, path, err)
		return fileExportResult(export.KindJSON, path, err)
	}
}

func exportCSVCmd(mgr *services.Manager, dir string, snap *usage.Snapshot, dim usage.Dimension) tea.Cmd {
	return func() tea.Msg {
		path, err := export.SaveFile(dir, export.TablesFileName, []byte(export.TablesCSV(snap, dim)))
		recordExport(mgr, export.KindCSV, path, err)
		return fileExportResult(export.KindCSV, path, err)
	}
}

func fileExportResult(kind export.Kind, path string, err error) ExportResultMsg {
	if err != nil {
		return ExportResultMsg{Kind: kind, Error: err, Message: fmt.Sprintf("Export failed: %v", err)}
	}
	return ExportResultMsg{Kind: kind, Paths: []string{path}, Message: "Saved " + path}
}

func copyCommandCmd(mgr *services.Manager, cb export.Clipboard, f usage.Filters) tea.Cmd {
	return func() tea.Msg {
		cmd := export.Command(f)
		msg, err := export.CopyCommand(cb, cmd)
		recordExport(mgr, export.KindCommand, "clipboard", err)
		return ExportResultMsg{Kind: export.KindCommand, Message: msg, Error: err}
	}
}

func saveChartsCmd(mgr *services.Manager, dir string, snap *usage.Snapshot, f usage.Filters, dpr float64) tea.Cmd {
	return func() tea.Msg {
		paths, err := charts.RenderPNGs(dir, snap, f, dpr)
		recordExport(mgr, export.KindCharts, dir, err)
		if err != nil {
			return ExportResultMsg{Kind: export.KindCharts, Paths: paths, Error: err,
				Message: fmt.Sprintf("Chart export failed: %v", err)}
		}
		return ExportResultMsg{Kind: export.KindCharts, Paths: paths,
			Message: fmt.Sprintf("Saved %d charts to %s", len(paths), dir)}
	}
}

func loadExportsCmd(mgr *services.Manager) tea.Cmd {
	if mgr == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := mgr.RecentExports(exportLogLimit)
		if err != nil {
			return ErrorMsg{Error: err, Context: "export log"}
		}
		return ExportsLoadedMsg{Records: recs}
	}
}

func saveAlertsCmd(mgr *services.Manager, a usage.AlertThresholds) tea.Cmd {
	return func() tea.Msg {
		var err error
		if mgr != nil {
			err = mgr.SaveAlerts(a)
		}
		return AlertsSavedMsg{Alerts: a, Error: err}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

func notifyCmd(t NotificationType, message string, d time.Duration) tea.Cmd {
	return func() tea.Msg {
		return AddNotificationMsg{Type: t, Message: message, Duration: d}
	}
}

// notifySuccessCmd returns a command that adds a success notification.
func notifySuccessCmd(message string) tea.Cmd {
	return notifyCmd(NotificationSuccess, message, DefaultNotificationDuration)
}

// notifyErrorCmd returns a command that adds an error notification.
func notifyErrorCmd(message string) tea.Cmd {
	return notifyCmd(NotificationError, message, LongNotificationDuration)
}

// notifyWarningCmd returns a command that adds a warning notification.
func notifyWarningCmd(message string) tea.Cmd {
	return notifyCmd(NotificationWarning, message, DefaultNotificationDuration)
}

// notifyInfoCmd returns a command that adds an info notification.
func notifyInfoCmd(message string) tea.Cmd {
	return notifyCmd(NotificationInfo, message, QuickNotificationDuration)
}
