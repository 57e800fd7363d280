package usage

// KPISet holds the headline numbers. JSON keys match the public export.
type KPISet struct {
	Calls        int     `json:"calls"`
	CallsDelta   float64 `json:"callsDelta"`
	ActiveKeys   int     `json:"activeKeys"`
	LatencyP50   int     `json:"latencyP50"`
	LatencyP95   int     `json:"latencyP95"`
	ErrRate      float64 `json:"errRate"`
	TokensIn     int     `json:"tokensIn"`
	TokensOut    int     `json:"tokensOut"`
	Spend        float64 `json:"spend"`
	QuotaMaxPct  float64 `json:"quotaMaxPct"`
	RPSPeak      float64 `json:"rpsPeak"`
	RAGHit       float64 `json:"ragHit"`
	CiteCoverage float64 `json:"citeCoverage"`
}

// HeatmapGrid is a 7-day × 24-hour matrix of request counts.
type HeatmapGrid [7][24]float64

// Sum returns the total of all cells.
func (h HeatmapGrid) Sum() float64 {
	var total float64
	for _, row := range h {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Max returns the largest cell.
func (h HeatmapGrid) Max() float64 {
	var m float64
	for _, row := range h {
		for _, v := range row {
			m = max(m, v)
		}
	}
	return m
}

// ServiceSeries is the request series of one service.
type ServiceSeries struct {
	Name   string
	Values StepSeries
}

// ErrorClass is one row of the top-error table.
type ErrorClass struct {
	Route  string
	Pct    float64
	Sample string
}

// ErrorSummary aggregates reliability data.
type ErrorSummary struct {
	Top       []ErrorClass
	Timeline  StepSeries
	Retries   int
	Throttles int
}

// SpendRow is one provider/route line of the spend table.
type SpendRow struct {
	Provider  string
	Route     string
	Calls     int
	TokensIn  int
	TokensOut int
	Cost      float64
}

// Label returns "<provider> <route>".
func (r SpendRow) Label() string {
	return r.Provider + " " + r.Route
}

// QuotaRow is one department line of the quota table.
type QuotaRow struct {
	Department string
	Calls      int
	RPS        float64
	Used       int
}

// High reports whether usage is above the warning level.
func (r QuotaRow) High() bool { return r.Used > 80 }

// CategoryCount is a named count (safety signals, prompt buckets).
type CategoryCount struct {
	Label string
	Count int
}

// Snapshot is one generated dataset. It is immutable once built; every
// regeneration produces a new value.
type Snapshot struct {
	Range   TimeRange
	Steps   int
	Seed    int64
	Legends LegendSet

	Requests  []ServiceSeries
	P50       StepSeries
	P95       StepSeries
	TokensIn  StepSeries
	TokensOut StepSeries
	Failures  StepSeries
	Timeouts  StepSeries
	SizeLimit StepSeries
	RPS       StepSeries

	KPIs          KPISet
	Heatmap       HeatmapGrid
	Errors        ErrorSummary
	Spend         []SpendRow
	Quotas        []QuotaRow
	Breakdowns    Breakdowns
	Safety        []CategoryCount
	PromptLengths []CategoryCount
}

// RequestsFor returns the request series of the named service.
func (s *Snapshot) RequestsFor(name string) StepSeries {
	for _, r := range s.Requests {
		if r.Name == name {
			return r.Values
		}
	}
	return nil
}

// ActiveCalls returns the per-step sum of active legends' requests.
func (s *Snapshot) ActiveCalls(legends LegendSet) StepSeries {
	total := make(StepSeries, s.Steps)
	for _, r := range s.Requests {
		if legends.IsActive(r.Name) {
			total = total.Add(r.Values)
		}
	}
	return total
}
