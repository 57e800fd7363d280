package usage

// Status is the severity of an alert check.
type Status int

const (
	// StatusOK means the threshold is not breached.
	StatusOK Status = iota
	// StatusWarn means a soft threshold is breached.
	StatusWarn
	// StatusBad means a hard threshold is breached.
	StatusBad
)

func (s Status) String() string {
	switch s {
	case StatusWarn:
		return "warn"
	case StatusBad:
		return "bad"
	default:
		return "ok"
	}
}

// QuotaWarnPct is the quota usage above which a warning is raised.
const QuotaWarnPct = 80

// AlertThresholds are the user-editable alert limits.
type AlertThresholds struct {
	ErrRate float64 `json:"err"`
	P95     float64 `json:"p95"`
	Spend   float64 `json:"spend"`
}

// DefaultAlertThresholds returns the default thresholds.
func DefaultAlertThresholds() AlertThresholds {
	return AlertThresholds{ErrRate: 2, P95: 1500, Spend: 500}
}

// Merge returns a copy of a with every positive field of in applied.
// Zero, negative or missing inputs keep the previous value.
func (a AlertThresholds) Merge(in AlertThresholds) AlertThresholds {
	if in.ErrRate > 0 {
		a.ErrRate = in.ErrRate
	}
	if in.P95 > 0 {
		a.P95 = in.P95
	}
	if in.Spend > 0 {
		a.Spend = in.Spend
	}
	return a
}

// Breaches is the result of evaluating thresholds against a KPI set.
type Breaches struct {
	ErrRate Status
	P95     Status
	Spend   Status
	Quota   Status
}

// Any reports whether any check is not OK.
func (b Breaches) Any() bool {
	return b.ErrRate != StatusOK || b.P95 != StatusOK || b.Spend != StatusOK || b.Quota != StatusOK
}

// Checks returns the named checks in display order.
func (b Breaches) Checks() []Check {
	return []Check{
		{Name: "Error rate", Status: b.ErrRate},
		{Name: "p95 latency", Status: b.P95},
		{Name: "Spend", Status: b.Spend},
		{Name: "Quota", Status: b.Quota},
	}
}

// Check is a single named alert result.
type Check struct {
	Name   string
	Status Status
}

// Evaluate compares k against the thresholds.
func (a AlertThresholds) Evaluate(k KPISet) Breaches {
	var b Breaches
	if k.ErrRate > a.ErrRate {
		b.ErrRate = StatusWarn
	}
	if float64(k.LatencyP95) > a.P95 {
		b.P95 = StatusBad
	}
	if k.Spend > a.Spend {
		b.Spend = StatusWarn
	}
	if k.QuotaMaxPct > QuotaWarnPct {
		b.Quota = StatusWarn
	}
	return b
}
