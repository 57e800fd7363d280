// Package app provides the main Bubble Tea application model and state management.
package app

import (
	"sync"
	"time"

	"github.com/j-veylop/aimkt-usage-tui/internal/models"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// NotificationType defines the type of notification.
type NotificationType int

const (
	// NotificationSuccess represents a success notification.
	NotificationSuccess NotificationType = iota
	// NotificationError represents an error notification.
	NotificationError
	// NotificationWarning represents a warning notification.
	NotificationWarning
	// NotificationInfo represents an informational notification.
	NotificationInfo
	// NotificationLoading represents a loading notification with spinner.
	NotificationLoading
)

const (
	// LoadingNotificationID is the fixed ID for loading notifications.
	LoadingNotificationID = "__loading__"

	maxNotifications = 10
)

// String returns the string representation of a NotificationType.
func (n NotificationType) String() string {
	switch n {
	case NotificationSuccess:
		return "success"
	case NotificationError:
		return "error"
	case NotificationWarning:
		return "warning"
	case NotificationInfo:
		return "info"
	case NotificationLoading:
		return "loading"
	default:
		return "unknown"
	}
}

// Notification represents a user-facing notification message.
type Notification struct {
	CreatedAt time.Time
	ID        string
	Message   string
	Type      NotificationType
	Duration  time.Duration
}

// IsExpired returns true if the notification has expired.
func (n *Notification) IsExpired() bool {
	if n.Duration <= 0 {
		return false
	}
	return time.Since(n.CreatedAt) > n.Duration
}

// State is the shared dashboard state. The snapshot is replaced as a whole
// on every regeneration and is never modified after it is published.
type State struct {
	mu sync.RWMutex

	seed     int64
	profile  *usage.Profile
	snapshot *usage.Snapshot
	filters  usage.Filters
	alerts   usage.AlertThresholds

	generatedAt time.Time
	generations int

	exports []models.ExportRecord

	notifications   []Notification
	notificationSeq int
}

// NewState creates the state and generates the first snapshot.
func NewState(seed int64, profile *usage.Profile, r usage.TimeRange, alerts usage.AlertThresholds) *State {
	if profile == nil {
		profile = usage.DefaultProfile()
	}
	filters := usage.DefaultFilters(profile.ServiceNames()...)
	filters.Range = r

	s := &State{
		seed:          seed,
		profile:       profile,
		filters:       filters,
		alerts:        usage.DefaultAlertThresholds().Merge(alerts),
		notifications: make([]Notification, 0),
	}
	s.regenerateLocked()
	return s
}

func (s *State) regenerateLocked() *usage.Snapshot {
	s.snapshot = usage.Generate(s.filters.Range, s.filters.Legends, s.seed, s.profile)
	s.generatedAt = time.Now()
	s.generations++
	return s.snapshot
}

// Snapshot returns the current snapshot. Callers must not modify it.
func (s *State) Snapshot() *usage.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Filters returns a copy of the current filters.
func (s *State) Filters() usage.Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.Clone()
}

// Profile returns the profile used for generation.
func (s *State) Profile() *usage.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Seed returns the generator seed.
func (s *State) Seed() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seed
}

// GeneratedAt returns when the current snapshot was produced.
func (s *State) GeneratedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generatedAt
}

// Generations returns how many snapshots were generated.
func (s *State) Generations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generations
}

// Regenerate replaces the snapshot using the current filters.
func (s *State) Regenerate() *usage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.regenerateLocked()
}

// ApplyFilters stores f and regenerates. Legends unknown to the profile
// are dropped and missing ones are added as active.
func (s *State) ApplyFilters(f usage.Filters) *usage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	f = f.Clone()
	f.Legends = alignLegends(f.Legends, s.profile.ServiceNames())
	s.filters = f
	return s.regenerateLocked()
}

// CycleRange advances to the next time range and regenerates.
func (s *State) CycleRange() *usage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Range = s.filters.Range.Next()
	return s.regenerateLocked()
}

// ToggleLegend flips one legend and regenerates.
func (s *State) ToggleLegend(name string) *usage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Legends = s.filters.Legends.Toggle(name)
	return s.regenerateLocked()
}

// CycleDimension selects the next breakdown dimension. The snapshot
// already holds every dimension, so nothing is regenerated.
func (s *State) CycleDimension() usage.Dimension {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Dimension = s.filters.Dimension.Next()
	return s.filters.Dimension
}

// SetTokenToggles replaces the token chart toggles.
func (s *State) SetTokenToggles(t usage.TokenToggles) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Tokens = t
}

// Reset restores the default filters and regenerates. Alert thresholds
// are kept.
func (s *State) Reset() *usage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = usage.DefaultFilters(s.profile.ServiceNames()...)
	return s.regenerateLocked()
}

// SetProfile swaps the profile and regenerates. Legend flags are kept for
// services present in both profiles.
func (s *State) SetProfile(p *usage.Profile) *usage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	s.filters.Legends = alignLegends(s.filters.Legends, p.ServiceNames())
	return s.regenerateLocked()
}

func alignLegends(current usage.LegendSet, names []string) usage.LegendSet {
	out := usage.NewLegendSet(names...)
	for i := range out {
		for _, l := range current {
			if l.Name == out[i].Name {
				out[i].Active = l.Active
			}
		}
	}
	return out
}

// Alerts returns the alert thresholds.
func (s *State) Alerts() usage.AlertThresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts
}

// SetAlerts merges in into the thresholds. Non-positive fields keep their
// previous value.
func (s *State) SetAlerts(in usage.AlertThresholds) usage.AlertThresholds {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = s.alerts.Merge(in)
	return s.alerts
}

// Breaches evaluates the thresholds against the current KPIs.
func (s *State) Breaches() usage.Breaches {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alerts.Evaluate(s.snapshot.KPIs)
}

// SetExports stores the recent export log.
func (s *State) SetExports(recs []models.ExportRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports = recs
}

// Exports returns a copy of the recent export log.
func (s *State) Exports() []models.ExportRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ExportRecord, len(s.exports))
	copy(out, s.exports)
	return out
}

// AddNotification adds a new notification and returns its ID.
func (s *State) AddNotification(notifType NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notificationSeq++
	id := time.Now().Format("20060102150405") + "-" + string(rune('A'+s.notificationSeq%26))

	s.notifications = append(s.notifications, Notification{
		ID:        id,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
		Duration:  duration,
	})

	if len(s.notifications) > maxNotifications {
		s.notifications = s.notifications[len(s.notifications)-maxNotifications:]
	}

	return id
}

// RemoveNotification removes a notification by ID.
func (s *State) RemoveNotification(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return
		}
	}
}

// ClearExpiredNotifications removes all expired notifications.
func (s *State) ClearExpiredNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	s.notifications = active
}

// GetNotifications returns a copy of all active notifications.
func (s *State) GetNotifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		if !n.IsExpired() {
			active = append(active, n)
		}
	}
	return active
}

// ClearAllNotifications removes all notifications.
func (s *State) ClearAllNotifications() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = make([]Notification, 0)
}

// SetLoadingNotification sets a loading notification message.
func (s *State) SetLoadingNotification(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notifications {
		if n.ID == LoadingNotificationID {
			s.notifications[i].Message = message
			return
		}
	}

	s.notifications = append(s.notifications, Notification{
		ID:        LoadingNotificationID,
		Type:      NotificationLoading,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// ClearLoadingNotification removes the loading notification.
func (s *State) ClearLoadingNotification() {
	s.RemoveNotification(LoadingNotificationID)
}
