// Package alerts raises desktop notifications when KPI thresholds are
// newly breached.
package alerts

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/j-veylop/aimkt-usage-tui/internal/logger"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// NotifyFunc delivers a notification.
type NotifyFunc func(title, body string) error

func desktopNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Breach is a check that moved from OK to a non-OK status.
type Breach struct {
	usage.Check
	Detail string
}

// Notifier remembers the previous evaluation and notifies on transitions.
type Notifier struct {
	mu      sync.Mutex
	notify  NotifyFunc
	last    usage.Breaches
	seen    bool
	enabled bool
}

// New returns a notifier using desktop notifications when enabled.
func New(enabled bool) *Notifier {
	return NewWithFunc(enabled, desktopNotify)
}

// NewWithFunc returns a notifier that delivers through fn.
func NewWithFunc(enabled bool, fn NotifyFunc) *Notifier {
	return &Notifier{notify: fn, enabled: enabled}
}

// Observe evaluates k against a and returns the checks that became
// breached since the previous call. The first call only records state.
func (n *Notifier) Observe(k usage.KPISet, a usage.AlertThresholds) []Breach {
	current := a.Evaluate(k)

	n.mu.Lock()
	prev, seen := n.last, n.seen
	n.last, n.seen = current, true
	enabled, notify := n.enabled, n.notify
	n.mu.Unlock()

	if !seen {
		return nil
	}

	var out []Breach
	prevChecks := prev.Checks()
	for i, c := range current.Checks() {
		if c.Status == usage.StatusOK || prevChecks[i].Status != usage.StatusOK {
			continue
		}
		out = append(out, Breach{Check: c, Detail: detail(c.Name, k, a)})
	}

	if enabled && notify != nil {
		for _, b := range out {
			title := fmt.Sprintf("Usage alert: %s", b.Name)
			if err := notify(title, b.Detail); err != nil {
				logger.Warn("desktop notification failed", "error", err)
			}
		}
	}
	return out
}

// Reset forgets the previous evaluation.
func (n *Notifier) Reset() {
	n.mu.Lock()
	n.last, n.seen = usage.Breaches{}, false
	n.mu.Unlock()
}

func detail(name string, k usage.KPISet, a usage.AlertThresholds) string {
	switch name {
	case "Error rate":
		return fmt.Sprintf("Error rate %.2f%% is above %.2f%%", k.ErrRate, a.ErrRate)
	case "p95 latency":
		return fmt.Sprintf("p95 latency %d ms is above %.0f ms", k.LatencyP95, a.P95)
	case "Spend":
		return fmt.Sprintf("Spend %s is above %s", usage.FormatMoney(k.Spend), usage.FormatMoney(a.Spend))
	case "Quota":
		return fmt.Sprintf("Quota usage %.0f%% is above %d%%", k.QuotaMaxPct, usage.QuotaWarnPct)
	default:
		return name
	}
}
