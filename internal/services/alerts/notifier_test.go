package alerts

import (
	"errors"
	"strings"
	"testing"

	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

type recorder struct {
	titles []string
	bodies []string
	err    error
}

func (r *recorder) notify(title, body string) error {
	r.titles = append(r.titles, title)
	r.bodies = append(r.bodies, body)
	return r.err
}

var calm = usage.KPISet{ErrRate: 1, LatencyP95: 1200, Spend: 10, QuotaMaxPct: 50}

func TestObserve_FirstCallRecordsOnly(t *testing.T) {
	rec := &recorder{}
	n := NewWithFunc(true, rec.notify)

	hot := calm
	hot.ErrRate = 5
	if got := n.Observe(hot, usage.DefaultAlertThresholds()); len(got) != 0 {
		t.Errorf("first Observe() returned %d breaches, want 0", len(got))
	}
	if len(rec.titles) != 0 {
		t.Errorf("notified %d times on first observation", len(rec.titles))
	}
}

func TestObserve_Transitions(t *testing.T) {
	a := usage.DefaultAlertThresholds()

	tests := []struct {
		name      string
		mutate    func(k *usage.KPISet)
		wantCheck string
		wantIn    string
	}{
		{"error rate", func(k *usage.KPISet) { k.ErrRate = 3.01 }, "Error rate", "3.01%"},
		{"p95", func(k *usage.KPISet) { k.LatencyP95 = 1600 }, "p95 latency", "1600 ms"},
		{"spend", func(k *usage.KPISet) { k.Spend = 750 }, "Spend", "$750.00"},
		{"quota", func(k *usage.KPISet) { k.QuotaMaxPct = 85 }, "Quota", "85%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			n := NewWithFunc(true, rec.notify)
			n.Observe(calm, a)

			hot := calm
			tt.mutate(&hot)
			got := n.Observe(hot, a)
			if len(got) != 1 {
				t.Fatalf("Observe() returned %d breaches, want 1", len(got))
			}
			if got[0].Name != tt.wantCheck {
				t.Errorf("breach = %q, want %q", got[0].Name, tt.wantCheck)
			}
			if !strings.Contains(got[0].Detail, tt.wantIn) {
				t.Errorf("detail %q does not contain %q", got[0].Detail, tt.wantIn)
			}
			if len(rec.titles) != 1 || !strings.Contains(rec.titles[0], tt.wantCheck) {
				t.Errorf("notifications = %v", rec.titles)
			}

			// Still breached: no new notification.
			if again := n.Observe(hot, a); len(again) != 0 {
				t.Errorf("repeated breach reported again: %v", again)
			}
			if len(rec.titles) != 1 {
				t.Errorf("notified %d times, want 1", len(rec.titles))
			}
		})
	}
}

func TestObserve_Disabled(t *testing.T) {
	rec := &recorder{}
	n := NewWithFunc(false, rec.notify)
	a := usage.DefaultAlertThresholds()
	n.Observe(calm, a)

	hot := calm
	hot.Spend = 900
	if got := n.Observe(hot, a); len(got) != 1 {
		t.Fatalf("Observe() returned %d breaches, want 1", len(got))
	}
	if len(rec.titles) != 0 {
		t.Error("disabled notifier delivered a notification")
	}
}

func TestObserve_NotifyErrorIgnored(t *testing.T) {
	rec := &recorder{err: errors.New("no dbus")}
	n := NewWithFunc(true, rec.notify)
	a := usage.DefaultAlertThresholds()
	n.Observe(calm, a)

	hot := calm
	hot.ErrRate = 9
	if got := n.Observe(hot, a); len(got) != 1 {
		t.Errorf("Observe() returned %d breaches, want 1", len(got))
	}
}

func TestReset(t *testing.T) {
	rec := &recorder{}
	n := NewWithFunc(true, rec.notify)
	a := usage.DefaultAlertThresholds()
	n.Observe(calm, a)
	n.Reset()

	hot := calm
	hot.ErrRate = 9
	if got := n.Observe(hot, a); len(got) != 0 {
		t.Errorf("Observe() after Reset returned %d breaches, want 0", len(got))
	}
}
