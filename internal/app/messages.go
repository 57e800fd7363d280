package app

import (
	"time"

	"github.com/j-veylop/aimkt-usage-tui/internal/export"
	"github.com/j-veylop/aimkt-usage-tui/internal/models"
	"github.com/j-veylop/aimkt-usage-tui/internal/services"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// SnapshotUpdatedMsg is sent after the snapshot was regenerated.
type SnapshotUpdatedMsg struct {
	Snapshot *usage.Snapshot
	Reason   string
}

// FiltersChangedMsg is sent when view-only filters changed without
// regenerating (dimension, token toggles).
type FiltersChangedMsg struct {
	Filters usage.Filters
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// ClearExpiredNotificationsMsg triggers clearing of expired notifications.
type ClearExpiredNotificationsMsg struct{}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// ExportResultMsg contains the result of an export action.
type ExportResultMsg struct {
	Error   error
	Kind    export.Kind
	Message string
	Paths   []string
}

// ExportsLoadedMsg carries the recent export log.
type ExportsLoadedMsg struct {
	Records []models.ExportRecord
}

// SaveAlertsMsg asks the app to merge and persist alert thresholds.
type SaveAlertsMsg struct {
	Alerts usage.AlertThresholds
}

// AlertsSavedMsg reports the persisted thresholds.
type AlertsSavedMsg struct {
	Error  error
	Alerts usage.AlertThresholds
}

// ErrorMsg represents a general error.
type ErrorMsg struct {
	Error   error
	Context string
}

// TabSwitchMsg requests switching to a specific tab.
type TabSwitchMsg struct {
	Tab TabID
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// EditAlertsMsg asks the info tab to focus the alert threshold editor.
type EditAlertsMsg struct{}
