// Package services provides service orchestration for the TUI.
package services

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/aimkt-usage-tui/internal/config"
	"github.com/j-veylop/aimkt-usage-tui/internal/db"
	"github.com/j-veylop/aimkt-usage-tui/internal/logger"
	"github.com/j-veylop/aimkt-usage-tui/internal/models"
	"github.com/j-veylop/aimkt-usage-tui/internal/services/alerts"
	"github.com/j-veylop/aimkt-usage-tui/internal/services/profile"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

type (
	// ProfileChangedEvent is emitted when the profile file was reloaded.
	ProfileChangedEvent struct {
		Profile *usage.Profile
	}

	// AlertBreachedEvent is emitted when thresholds become breached.
	AlertBreachedEvent struct {
		Breaches []alerts.Breach
	}

	// ErrorEvent is emitted when an error occurs in any service.
	ErrorEvent struct {
		Service string
		Error   error
	}
)

// ServiceEvent is the interface implemented by all service events.
type ServiceEvent interface {
	isServiceEvent()
}

func (ProfileChangedEvent) isServiceEvent() {}
func (AlertBreachedEvent) isServiceEvent()  {}
func (ErrorEvent) isServiceEvent()          {}

// Manager orchestrates services and event routing.
type Manager struct {
	mu          sync.RWMutex
	cfg         *config.Config
	profile     *profile.Service
	notifier    *alerts.Notifier
	database    *db.DB
	stopChan    chan struct{}
	subscribers []chan ServiceEvent
	closeOnce   sync.Once
	pruned      atomic.Int64
}

// NewManager creates a new service manager.
func NewManager(cfg *config.Config) (*Manager, error) {
	m := &Manager{
		cfg:      cfg,
		stopChan: make(chan struct{}),
		notifier: alerts.New(cfg.DesktopNotifications),
	}

	var err error
	m.database, err = db.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Info("database opened", "path", m.database.Path())

	m.profile, err = profile.New(cfg.ProfilePath, cfg.ProfileDebounce)
	if err != nil {
		_ = m.database.Close()
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	go m.routeEvents()

	return m, nil
}

func (m *Manager) routeEvents() {
	for {
		select {
		case event := <-m.profile.Events():
			m.handleProfileEvent(event)
		case <-m.stopChan:
			return
		}
	}
}

func (m *Manager) handleProfileEvent(event profile.Event) {
	switch event.Type {
	case profile.EventChanged:
		m.notifier.Reset()
		m.broadcast(ProfileChangedEvent{Profile: event.Profile})
	case profile.EventError:
		m.broadcast(ErrorEvent{Service: "profile", Error: event.Error})
	}
}

// broadcast sends an event to all subscribers.
func (m *Manager) broadcast(event ServiceEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, sub := range m.subscribers {
		select {
		case sub <- event:
		default:
			// Subscriber channel full, skip
		}
	}
}

// Subscribe creates a channel for receiving service events.
// Returns a tea.Cmd that can be used in Bubble Tea's Init or Update.
func (m *Manager) Subscribe() (chan ServiceEvent, tea.Cmd) {
	ch := make(chan ServiceEvent, 50)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch, WaitForEvent(ch)
}

// WaitForEvent returns a tea.Cmd that waits for the next event on ch.
// A closed channel yields a nil message.
func WaitForEvent(ch <-chan ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ev
	}
}

// Unsubscribe removes a subscriber channel.
func (m *Manager) Unsubscribe(ch chan ServiceEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, sub := range m.subscribers {
		if sub == ch {
			m.subscribers = append(m.subscribers[:i], m.subscribers[i+1:]...)
			close(ch)
			break
		}
	}
}

// Profile returns the active generator profile.
func (m *Manager) Profile() *usage.Profile {
	return m.profile.Current()
}

// ProfilePath returns the watched profile path.
func (m *Manager) ProfilePath() string {
	return m.profile.Path()
}

// Alerts returns the saved thresholds, or the configured ones when
// nothing has been saved.
func (m *Manager) Alerts() usage.AlertThresholds {
	a, ok, err := m.database.LoadAlerts()
	if err != nil {
		logger.Error("failed to load alerts", "error", err)
	}
	if !ok {
		return m.cfg.Alerts
	}
	return a
}

// SaveAlerts persists thresholds.
func (m *Manager) SaveAlerts(a usage.AlertThresholds) error {
	return m.database.SaveAlerts(a)
}

// ObserveSnapshot checks the snapshot against thresholds and broadcasts
// newly breached checks.
func (m *Manager) ObserveSnapshot(snap *usage.Snapshot, a usage.AlertThresholds) []alerts.Breach {
	breaches := m.notifier.Observe(snap.KPIs, a)
	if len(breaches) > 0 {
		m.broadcast(AlertBreachedEvent{Breaches: breaches})
	}
	return breaches
}

// RecordGeneration logs a snapshot and trims the log to the configured
// history limit.
func (m *Manager) RecordGeneration(snap *usage.Snapshot, reason string) error {
	if _, err := m.database.InsertGeneration(snap, reason); err != nil {
		return err
	}
	if m.cfg.HistoryLimit > 0 {
		n, err := m.database.PruneGenerations(m.cfg.HistoryLimit)
		if err != nil {
			return err
		}
		m.pruned.Add(n)
	}
	return nil
}

// RecordExport logs the outcome of an export action.
func (m *Manager) RecordExport(kind, target string, exportErr error) error {
	rec := &models.ExportRecord{Kind: kind, Target: target, OK: exportErr == nil}
	if exportErr != nil {
		rec.Error = exportErr.Error()
	}
	return m.database.InsertExport(rec)
}

// RecentExports returns the newest export log entries.
func (m *Manager) RecentExports(limit int) ([]models.ExportRecord, error) {
	return m.database.RecentExports(limit)
}

// RecentGenerations returns the newest generation log entries.
func (m *Manager) RecentGenerations(limit int) ([]models.GenerationRecord, error) {
	return m.database.RecentGenerations(limit)
}

// Config returns the loaded configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// Database returns the database instance for direct access.
func (m *Manager) Database() *db.DB {
	return m.database
}

// Close closes the manager and all its services.
func (m *Manager) Close() error {
	var errs []error
	m.closeOnce.Do(func() {
		close(m.stopChan)

		m.mu.Lock()
		for _, sub := range m.subscribers {
			close(sub)
		}
		m.subscribers = nil
		m.mu.Unlock()

		if err := m.profile.Close(); err != nil {
			errs = append(errs, err)
		}
		if m.pruned.Load() > 0 {
			if err := m.database.Vacuum(); err != nil {
				logger.Warn("vacuum failed", "error", err)
			}
		}
		if err := m.database.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
