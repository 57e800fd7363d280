package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/j-veylop/aimkt-usage-tui/internal/config"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

func newTestManager(t *testing.T) (*Manager, *config.Config) {
	t.Helper()

	tmpDir := t.TempDir()
	cfg := &config.Config{
		DatabasePath:    filepath.Join(tmpDir, "test.db"),
		ProfilePath:     filepath.Join(tmpDir, "profile.yaml"),
		ExportDir:       filepath.Join(tmpDir, "exports"),
		Alerts:          usage.DefaultAlertThresholds(),
		ProfileDebounce: 10 * time.Millisecond,
		HistoryLimit:    3,
	}

	mgr, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	return mgr, cfg
}

func waitFor(t *testing.T, ch <-chan ServiceEvent, match func(ServiceEvent) bool) ServiceEvent {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				t.Fatal("channel closed")
			}
			if match(e) {
				return e
			}
		case <-deadline:
			t.Fatal("timeout waiting for event")
			return nil
		}
	}
}

func TestNewManager(t *testing.T) {
	mgr, cfg := newTestManager(t)

	if mgr.Database() == nil {
		t.Error("Database should be initialized")
	}
	if mgr.Profile() == nil {
		t.Error("Profile should be loaded")
	}
	if mgr.ProfilePath() != cfg.ProfilePath {
		t.Errorf("ProfilePath() = %q, want %q", mgr.ProfilePath(), cfg.ProfilePath)
	}
	if mgr.Config() != cfg {
		t.Error("Config() should return the loaded config")
	}
}

func TestNewManager_BadProfile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.yaml")
	if err := os.WriteFile(path, []byte("services: []\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{
		DatabasePath: filepath.Join(tmpDir, "test.db"),
		ProfilePath:  path,
	}
	if _, err := NewManager(cfg); err == nil {
		t.Fatal("NewManager should fail with an invalid profile")
	}
}

func TestManager_Subscription(t *testing.T) {
	mgr, _ := newTestManager(t)

	ch, cmd := mgr.Subscribe()
	if ch == nil {
		t.Fatal("Subscribe returned nil channel")
	}
	if cmd == nil {
		t.Error("Subscribe returned nil command")
	}

	mgr.Unsubscribe(ch)

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Unsubscribe should close the channel")
	}
}

func TestManager_Broadcast(t *testing.T) {
	mgr, _ := newTestManager(t)

	ch, _ := mgr.Subscribe()
	event := ErrorEvent{Service: "test", Error: errors.New("boom")}
	mgr.broadcast(event)

	got := waitFor(t, ch, func(ServiceEvent) bool { return true })
	if e, ok := got.(ErrorEvent); !ok || e.Service != "test" {
		t.Errorf("got %#v, want %#v", got, event)
	}
}

func TestManager_ProfileReload(t *testing.T) {
	mgr, cfg := newTestManager(t)
	ch, _ := mgr.Subscribe()

	if err := os.WriteFile(cfg.ProfilePath, []byte("fixed:\n  active_keys: 41\n"), 0600); err != nil {
		t.Fatal(err)
	}

	waitFor(t, ch, func(e ServiceEvent) bool {
		pc, ok := e.(ProfileChangedEvent)
		return ok && pc.Profile.Fixed.ActiveKeys == 41
	})
	if mgr.Profile().Fixed.ActiveKeys != 41 {
		t.Error("Profile() not updated")
	}
}

func TestManager_Alerts(t *testing.T) {
	mgr, cfg := newTestManager(t)

	cfg.Alerts = usage.AlertThresholds{ErrRate: 4, P95: 2000, Spend: 100}
	if got := mgr.Alerts(); got != cfg.Alerts {
		t.Errorf("Alerts() = %+v, want configured %+v", got, cfg.Alerts)
	}

	saved := usage.AlertThresholds{ErrRate: 1.5, P95: 1200, Spend: 50}
	if err := mgr.SaveAlerts(saved); err != nil {
		t.Fatalf("SaveAlerts failed: %v", err)
	}
	if got := mgr.Alerts(); got != saved {
		t.Errorf("Alerts() = %+v, want saved %+v", got, saved)
	}
}

func TestManager_ObserveSnapshot(t *testing.T) {
	mgr, _ := newTestManager(t)
	ch, _ := mgr.Subscribe()

	snap := usage.Generate(usage.Range24h, nil, usage.DefaultSeed, usage.DefaultProfile())
	loose := usage.AlertThresholds{ErrRate: 50, P95: 5000, Spend: 5000}

	if got := mgr.ObserveSnapshot(snap, loose); len(got) != 0 {
		t.Fatalf("first observation returned %d breaches", len(got))
	}
	got := mgr.ObserveSnapshot(snap, usage.DefaultAlertThresholds())
	if len(got) != 1 || got[0].Name != "Error rate" {
		t.Fatalf("breaches = %+v, want error rate", got)
	}

	waitFor(t, ch, func(e ServiceEvent) bool {
		_, ok := e.(AlertBreachedEvent)
		return ok
	})
}

func TestManager_RecordGeneration(t *testing.T) {
	mgr, cfg := newTestManager(t)
	snap := usage.Generate(usage.Range24h, nil, usage.DefaultSeed, usage.DefaultProfile())

	for i := 0; i < cfg.HistoryLimit+2; i++ {
		if err := mgr.RecordGeneration(snap, "test"); err != nil {
			t.Fatalf("RecordGeneration failed: %v", err)
		}
	}

	recs, err := mgr.RecentGenerations(10)
	if err != nil {
		t.Fatalf("RecentGenerations failed: %v", err)
	}
	if len(recs) != cfg.HistoryLimit {
		t.Errorf("kept %d generations, want %d", len(recs), cfg.HistoryLimit)
	}
	if recs[0].Calls != snap.KPIs.Calls {
		t.Errorf("Calls = %d, want %d", recs[0].Calls, snap.KPIs.Calls)
	}
}

func TestManager_RecordExport(t *testing.T) {
	mgr, _ := newTestManager(t)

	if err := mgr.RecordExport("json", "/tmp/kpis.json", nil); err != nil {
		t.Fatalf("RecordExport failed: %v", err)
	}
	if err := mgr.RecordExport("command", "clipboard", errors.New("no clipboard")); err != nil {
		t.Fatalf("RecordExport failed: %v", err)
	}

	recs, err := mgr.RecentExports(10)
	if err != nil {
		t.Fatalf("RecentExports failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d exports, want 2", len(recs))
	}

	var failed int
	for _, r := range recs {
		if !r.OK {
			failed++
			if r.Status() != "no clipboard" {
				t.Errorf("Status() = %q", r.Status())
			}
		}
	}
	if failed != 1 {
		t.Errorf("failed exports = %d, want 1", failed)
	}
}

func TestWaitForEvent(t *testing.T) {
	ch := make(chan ServiceEvent, 1)
	ch <- ErrorEvent{}

	if msg := WaitForEvent(ch)(); msg == nil {
		t.Error("WaitForEvent cmd returned nil msg")
	}

	close(ch)
	if msg := WaitForEvent(ch)(); msg != nil {
		t.Errorf("closed channel yielded %v", msg)
	}
}

func TestManager_CloseTwice(t *testing.T) {
	mgr, _ := newTestManager(t)
	ch, _ := mgr.Subscribe()

	if err := mgr.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, ok := <-ch; ok {
		t.Error("subscriber channel should be closed")
	}
	if err := mgr.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
