// Package profile loads the generator profile from YAML and reloads it when
// the file changes on disk.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/j-veylop/aimkt-usage-tui/internal/logger"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// EventType defines the type of profile event.
type EventType int

const (
	EventLoaded EventType = iota
	EventChanged
	EventError
)

// Event represents a profile service event.
type Event struct {
	Profile *usage.Profile
	Error   error
	Type    EventType
}

// DefaultDebounce is used when New is given a non-positive debounce.
const DefaultDebounce = 250 * time.Millisecond

// Service holds the current profile and watches its file.
type Service struct {
	mu            sync.RWMutex
	profile       *usage.Profile
	filePath      string
	watcher       *fsnotify.Watcher
	eventChan     chan Event
	stopChan      chan struct{}
	stopOnce      sync.Once
	debounce      time.Duration
	debounceTimer *time.Timer
}

// New loads the profile at filePath and starts watching it. An empty path
// yields the built-in profile without a watcher. A missing file is created
// from the built-in profile so it can be edited in place.
func New(filePath string, debounce time.Duration) (*Service, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	s := &Service{
		profile:   usage.DefaultProfile(),
		filePath:  filePath,
		eventChan: make(chan Event, 16),
		stopChan:  make(chan struct{}),
		debounce:  debounce,
	}

	if filePath == "" {
		s.sendEvent(Event{Type: EventLoaded, Profile: s.profile})
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}

	p, err := usage.LoadProfile(filePath)
	switch {
	case err == nil:
		s.profile = p
	case errors.Is(err, os.ErrNotExist):
		if err := s.writeDefault(); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start profile watcher: %w", err)
	}

	s.sendEvent(Event{Type: EventLoaded, Profile: s.profile})
	return s, nil
}

func (s *Service) writeDefault() error {
	data, err := s.profile.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode default profile: %w", err)
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return nil
}

// Events returns the event channel.
func (s *Service) Events() <-chan Event {
	return s.eventChan
}

// Current returns the active profile. Callers must not modify it.
func (s *Service) Current() *usage.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Path returns the watched file path, or "" for the built-in profile.
func (s *Service) Path() string {
	return s.filePath
}

// Reload re-reads the profile file. On error the previous profile stays
// active.
func (s *Service) Reload() (*usage.Profile, error) {
	if s.filePath == "" {
		return s.Current(), nil
	}
	p, err := usage.LoadProfile(s.filePath)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
	return p, nil
}

func (s *Service) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go s.watchLoop()
	return nil
}

func (s *Service) watchLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(s.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			s.mu.Lock()
			if s.debounceTimer != nil {
				s.debounceTimer.Stop()
			}
			s.debounceTimer = time.AfterFunc(s.debounce, s.handleFileChange)
			s.mu.Unlock()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.sendEvent(Event{Type: EventError, Error: err})

		case <-s.stopChan:
			return
		}
	}
}

func (s *Service) handleFileChange() {
	select {
	case <-s.stopChan:
		return
	default:
	}

	p, err := s.Reload()
	if err != nil {
		logger.Warn("profile reload failed", "path", s.filePath, "error", err)
		s.sendEvent(Event{Type: EventError, Error: err})
		return
	}
	logger.Info("profile reloaded", "path", s.filePath, "services", len(p.Services))
	s.sendEvent(Event{Type: EventChanged, Profile: p})
}

// sendEvent drops the oldest queued event when the channel is full.
func (s *Service) sendEvent(event Event) {
	select {
	case s.eventChan <- event:
	default:
		select {
		case <-s.eventChan:
		default:
		}
		select {
		case s.eventChan <- event:
		default:
		}
	}
}

// Close stops the watcher.
func (s *Service) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopChan)

		s.mu.Lock()
		if s.debounceTimer != nil {
			s.debounceTimer.Stop()
		}
		s.mu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}
