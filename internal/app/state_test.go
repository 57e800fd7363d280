package app

import (
	"testing"
	"time"

	"github.com/j-veylop/aimkt-usage-tui/internal/models"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

func newTestState() *State {
	return NewState(usage.DefaultSeed, nil, usage.Range24h, usage.DefaultAlertThresholds())
}

func TestNewState(t *testing.T) {
	s := newTestState()

	snap := s.Snapshot()
	if snap == nil {
		t.Fatal("NewState should generate a snapshot")
	}
	if snap.KPIs.Calls != 830 {
		t.Errorf("Calls = %d, want 830", snap.KPIs.Calls)
	}
	if s.Generations() != 1 {
		t.Errorf("Generations = %d, want 1", s.Generations())
	}
	if s.GeneratedAt().IsZero() {
		t.Error("GeneratedAt should be set")
	}

	f := s.Filters()
	if f.Range != usage.Range24h || f.Dimension != usage.DimDepartment {
		t.Errorf("unexpected default filters %+v", f)
	}
	if got := f.Legends.ActiveNames(); len(got) != 2 {
		t.Errorf("active legends = %v, want both services", got)
	}
}

func TestNewState_RangeFromConfig(t *testing.T) {
	s := NewState(usage.DefaultSeed, nil, usage.Range7d, usage.AlertThresholds{})
	if s.Snapshot().KPIs.Calls != 58881 {
		t.Errorf("Calls = %d, want 58881", s.Snapshot().KPIs.Calls)
	}
	if s.Alerts() != usage.DefaultAlertThresholds() {
		t.Errorf("zero thresholds should fall back to defaults, got %+v", s.Alerts())
	}
}

func TestState_CycleRange(t *testing.T) {
	s := newTestState()
	before := s.Snapshot()

	after := s.CycleRange()
	if after == before {
		t.Fatal("CycleRange should replace the snapshot")
	}
	if after.Range != usage.Range7d {
		t.Errorf("Range = %v, want 7d", after.Range)
	}
	if before.Range != usage.Range24h {
		t.Error("previous snapshot was modified")
	}

	s.CycleRange()
	if got := s.CycleRange().Range; got != usage.Range24h {
		t.Errorf("Range after full cycle = %v, want 24h", got)
	}
}

func TestState_ToggleLegend(t *testing.T) {
	s := newTestState()
	kpis := s.Snapshot().KPIs

	snap := s.ToggleLegend("Cohere")
	if s.Filters().Legends.IsActive("Cohere") {
		t.Error("Cohere should be inactive")
	}
	if snap.KPIs != kpis {
		t.Error("legend state must not change generated KPIs")
	}
	if s.Generations() != 2 {
		t.Errorf("Generations = %d, want 2", s.Generations())
	}
}

func TestState_ViewOnlyChanges(t *testing.T) {
	s := newTestState()
	snap := s.Snapshot()

	if d := s.CycleDimension(); d != usage.DimService {
		t.Errorf("CycleDimension = %v, want service", d)
	}
	s.SetTokenToggles(usage.TokenToggles{Avg: true})

	if s.Snapshot() != snap {
		t.Error("dimension and token changes must not regenerate")
	}
	if !s.Filters().Tokens.Avg {
		t.Error("token toggles not stored")
	}
}

func TestState_Reset(t *testing.T) {
	s := newTestState()
	s.CycleRange()
	s.CycleDimension()
	s.ToggleLegend("CANChat")
	s.SetTokenToggles(usage.TokenToggles{})
	s.SetAlerts(usage.AlertThresholds{ErrRate: 9})

	snap := s.Reset()
	f := s.Filters()
	if snap.Range != usage.Range24h || f.Dimension != usage.DimDepartment {
		t.Errorf("Reset filters = %+v", f)
	}
	if !f.Legends.IsActive("CANChat") || f.Tokens != usage.DefaultTokenToggles() {
		t.Errorf("Reset legends/tokens = %+v", f)
	}
	if s.Alerts().ErrRate != 9 {
		t.Error("Reset must keep alert thresholds")
	}
}

func TestState_ApplyFilters(t *testing.T) {
	s := newTestState()

	f := usage.DefaultFilters("CANChat", "Unknown")
	f.Range = usage.Range30d
	f.Legends = f.Legends.Toggle("CANChat")

	snap := s.ApplyFilters(f)
	if snap.KPIs.Calls != 252559 {
		t.Errorf("Calls = %d, want 252559", snap.KPIs.Calls)
	}

	got := s.Filters().Legends
	if len(got) != 2 || got.IsActive("CANChat") || !got.IsActive("Cohere") {
		t.Errorf("legends = %+v", got)
	}

	// The caller's value must not alias state.
	f.Legends[0].Active = true
	if s.Filters().Legends.IsActive("CANChat") {
		t.Error("ApplyFilters kept a reference to the caller's legends")
	}
}

func TestState_SetProfile(t *testing.T) {
	s := newTestState()
	s.ToggleLegend("Cohere")

	p := usage.DefaultProfile()
	p.Services = p.Services[1:]
	snap := s.SetProfile(p)

	if s.Profile() != p {
		t.Error("profile not stored")
	}
	legends := s.Filters().Legends
	if len(legends) != 1 || legends[0].Name != "Cohere" || legends[0].Active {
		t.Errorf("legends = %+v, want inactive Cohere only", legends)
	}
	if len(snap.Requests) != 1 {
		t.Errorf("requests series = %d, want 1", len(snap.Requests))
	}
}

func TestState_Alerts(t *testing.T) {
	s := newTestState()

	b := s.Breaches()
	if b.ErrRate != usage.StatusWarn || b.P95 != usage.StatusOK {
		t.Errorf("default breaches = %+v", b)
	}

	got := s.SetAlerts(usage.AlertThresholds{ErrRate: 5, P95: -1})
	if got.ErrRate != 5 || got.P95 != 1500 {
		t.Errorf("SetAlerts = %+v", got)
	}
	if s.Breaches().Any() {
		t.Error("no check should be breached after raising the error threshold")
	}
}

func TestState_Exports(t *testing.T) {
	s := newTestState()
	recs := []models.ExportRecord{{ID: "a", Kind: "json", OK: true}}
	s.SetExports(recs)

	got := s.Exports()
	got[0].ID = "changed"
	if s.Exports()[0].ID != "a" {
		t.Error("Exports should return a copy")
	}
}

func TestState_Notifications(t *testing.T) {
	s := newTestState()

	id := s.AddNotification(NotificationSuccess, "Test", time.Minute)
	if len(s.GetNotifications()) != 1 {
		t.Fatal("expected 1 notification")
	}

	s.RemoveNotification(id)
	if len(s.GetNotifications()) != 0 {
		t.Error("expected 0 notifications")
	}

	s.AddNotification(NotificationInfo, "expired", time.Nanosecond)
	time.Sleep(time.Millisecond)
	s.ClearExpiredNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("expired notification should be cleared")
	}

	for i := 0; i < maxNotifications+5; i++ {
		s.AddNotification(NotificationInfo, "n", time.Minute)
	}
	if got := len(s.GetNotifications()); got != maxNotifications {
		t.Errorf("notifications = %d, want %d", got, maxNotifications)
	}

	s.ClearAllNotifications()
	if len(s.GetNotifications()) != 0 {
		t.Error("ClearAllNotifications failed")
	}
}

func TestState_LoadingNotification(t *testing.T) {
	s := newTestState()

	s.SetLoadingNotification("Rendering")
	s.SetLoadingNotification("Still rendering")
	n := s.GetNotifications()
	if len(n) != 1 || n[0].Message != "Still rendering" || n[0].Type != NotificationLoading {
		t.Fatalf("notifications = %+v", n)
	}

	s.ClearLoadingNotification()
	if len(s.GetNotifications()) != 0 {
		t.Error("loading notification not cleared")
	}
}

func TestNotificationType_String(t *testing.T) {
	tests := []struct {
		n    NotificationType
		want string
	}{
		{NotificationSuccess, "success"},
		{NotificationError, "error"},
		{NotificationWarning, "warning"},
		{NotificationInfo, "info"},
		{NotificationLoading, "loading"},
		{NotificationType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
