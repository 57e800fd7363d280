package usage

import (
	"math"
)

// Non-service series bases: {24h base, 7d/30d base, wobble}.
var (
	p50Base       = seriesBase{450, 450, 0.18}
	p95Base       = seriesBase{900, 900, 0.22}
	tokInBase     = seriesBase{5000, 50000, 0.3}
	tokOutBase    = seriesBase{4000, 40000, 0.3}
	failBase      = seriesBase{1, 8, 0.7}
	timeoutBase   = seriesBase{0.4, 3, 0.8}
	sizeLimBase   = seriesBase{0.3, 2.5, 0.8}
	rpsBase       = seriesBase{2.2, 1.6, 0.4}
	requestWobble = 0.25
)

const (
	p50Offset = 200
	p95Offset = 600

	// waveCycle is the period constant of the synthetic daily wave.
	waveCycle = 6.28

	retriesPerFailure   = 4.2
	retriesOffset       = 17
	throttlesPerFailure = 3.1
	throttlesOffset     = 12
)

type seriesBase struct {
	hourly, extended, wobble float64
}

func (b seriesBase) pick(r TimeRange) float64 {
	if r == Range24h {
		return b.hourly
	}
	return b.extended
}

// Generator produces snapshots from a seed and a profile.
type Generator struct {
	seed    int64
	profile *Profile
}

// NewGenerator creates a generator. A nil profile uses DefaultProfile.
func NewGenerator(seed int64, profile *Profile) *Generator {
	if profile == nil {
		profile = DefaultProfile()
	}
	return &Generator{seed: seed, profile: profile}
}

// Profile returns the generator's profile.
func (g *Generator) Profile() *Profile { return g.profile }

// Seed returns the generator's seed.
func (g *Generator) Seed() int64 { return g.seed }

// Generate builds a snapshot. The output depends only on the seed, the
// profile and the range; legends are recorded but never change values.
func (g *Generator) Generate(r TimeRange, legends LegendSet) *Snapshot {
	return Generate(r, legends, g.seed, g.profile)
}

type synth struct {
	rng   *RNG
	steps int
}

// series builds one step series, drawing one random value per step.
func (s *synth) series(base, wobble float64) StepSeries {
	out := make(StepSeries, s.steps)
	for i := range out {
		t := float64(i) / float64(s.steps)
		wave := 1 + 0.6*math.Sin(t*waveCycle*2) + 0.3*math.Sin(t*waveCycle*7)
		noise := (s.rng.Next() - 0.5) * wobble
		out[i] = math.Max(0, roundHalfUp(base*wave*(1+noise)))
	}
	return out
}

func (s *synth) from(b seriesBase, r TimeRange) StepSeries {
	return s.series(b.pick(r), b.wobble)
}

// Generate builds a snapshot for range r with the given seed and profile.
func Generate(r TimeRange, legends LegendSet, seed int64, p *Profile) *Snapshot {
	if p == nil {
		p = DefaultProfile()
	}
	steps := r.Steps()
	s := &synth{rng: NewRNG(seed), steps: steps}

	snap := &Snapshot{Range: r, Steps: steps, Seed: seed, Legends: legends.Clone()}

	for _, svc := range p.Services {
		base := svc.ExtendedBase
		if r == Range24h {
			base = svc.HourlyBase
		}
		snap.Requests = append(snap.Requests, ServiceSeries{
			Name:   svc.Name,
			Values: s.series(base, requestWobble),
		})
	}

	snap.P50 = s.from(p50Base, r).Map(func(v float64) float64 { return v + p50Offset })
	snap.P95 = s.from(p95Base, r).Map(func(v float64) float64 { return v + p95Offset })
	snap.TokensIn = s.from(tokInBase, r)
	snap.TokensOut = s.from(tokOutBase, r)
	snap.Failures = s.from(failBase, r)
	snap.Timeouts = s.from(timeoutBase, r)
	snap.SizeLimit = s.from(sizeLimBase, r)
	snap.RPS = s.from(rpsBase, r).Map(func(v float64) float64 { return roundTo(v/10, 2) })
	callsDelta := roundTo((s.rng.Next()-0.5)*12, 1)

	tokInTotal := snap.TokensIn.Sum()
	tokOutTotal := snap.TokensOut.Sum()
	totalFails := snap.Failures.Sum()

	type serviceTotals struct {
		calls, in, out int
		spend          float64
	}
	totals := make([]serviceTotals, len(p.Services))

	var calls, tokensIn, tokensOut int
	var spend float64
	for i, svc := range p.Services {
		t := serviceTotals{
			calls: int(snap.Requests[i].Values.Sum()),
			in:    roundInt(tokInTotal * svc.TokenShare),
			out:   roundInt(tokOutTotal * svc.TokenShare),
		}
		t.spend = float64(t.in)*svc.RateIn + float64(t.out)*svc.RateOut
		totals[i] = t
		calls += t.calls
		tokensIn += t.in
		tokensOut += t.out
		spend += t.spend
	}

	var errRate float64
	if calls > 0 {
		errRate = roundTo(totalFails/float64(calls)*100, 2)
	}

	snap.KPIs = KPISet{
		Calls:        calls,
		CallsDelta:   callsDelta,
		ActiveKeys:   p.Fixed.ActiveKeys,
		LatencyP50:   roundInt(snap.P50.Mean()),
		LatencyP95:   roundInt(snap.P95.Mean()),
		ErrRate:      errRate,
		TokensIn:     tokensIn,
		TokensOut:    tokensOut,
		Spend:        roundTo(spend, 2),
		QuotaMaxPct:  p.Fixed.QuotaMaxPct,
		RPSPeak:      snap.RPS.Max(),
		RAGHit:       p.Fixed.RAGHit,
		CiteCoverage: p.Fixed.CiteCoverage,
	}

	for _, req := range snap.Requests {
		for i, v := range req.Values {
			snap.Heatmap[(i/24)%7][i%24] += v
		}
	}

	snap.Errors = ErrorSummary{
		Timeline:  snap.Failures,
		Retries:   roundInt(totalFails*retriesPerFailure + retriesOffset),
		Throttles: roundInt(totalFails*throttlesPerFailure + throttlesOffset),
	}
	for _, svc := range p.Services {
		snap.Errors.Top = append(snap.Errors.Top, ErrorClass{
			Route:  svc.Route,
			Pct:    roundTo(totalFails*svc.ErrorShare/math.Max(totalFails, 1)*100, 1),
			Sample: svc.ErrorSample,
		})
	}

	for i, svc := range p.Services {
		t := totals[i]
		snap.Spend = append(snap.Spend, SpendRow{
			Provider:  svc.Name,
			Route:     svc.Route,
			Calls:     t.calls,
			TokensIn:  t.in,
			TokensOut: t.out,
			Cost:      t.spend,
		})
		snap.Breakdowns.Service = append(snap.Breakdowns.Service, ServiceRow{
			Service:     svc.Label(),
			Calls:       t.calls,
			P95:         svc.P95,
			ErrPct:      svc.ErrPct,
			TokensIn:    t.in,
			TokensOut:   t.out,
			Sensitivity: svc.Sensitivity,
		})
		snap.Breakdowns.Route = append(snap.Breakdowns.Route, RouteRow{
			Route:     svc.Route,
			Calls:     t.calls,
			P95:       svc.P95,
			Throttles: svc.Throttles,
			Breaches:  svc.Breaches,
		})
	}

	for _, d := range p.Departments {
		deptCalls := roundInt(float64(calls) * d.CallShare)
		snap.Quotas = append(snap.Quotas, QuotaRow{
			Department: d.Name,
			Calls:      deptCalls,
			RPS:        roundTo(snap.KPIs.RPSPeak*d.RPSFactor, 2),
			Used:       d.QuotaUsed,
		})
		snap.Breakdowns.Dept = append(snap.Breakdowns.Dept, DeptRow{
			Department: d.Name,
			Calls:      deptCalls,
			P95:        d.P95,
			ErrPct:     d.ErrPct,
			Tokens:     d.Tokens,
			Cost:       snap.KPIs.Spend * d.CostShare,
			QuotaUsed:  d.QuotaUsed,
		})
	}

	for _, k := range p.Keys {
		var svcCalls int
		for i, svc := range p.Services {
			if svc.Name == k.Service {
				svcCalls = totals[i].calls
			}
		}
		snap.Breakdowns.Key = append(snap.Breakdowns.Key, KeyRow{
			Key:        k.Label,
			Department: k.Department,
			Scope:      k.Scope,
			Calls:      roundInt(float64(svcCalls) * k.CallShare),
			LastUsed:   k.LastUsed,
		})
	}

	for _, c := range p.Safety {
		snap.Safety = append(snap.Safety, CategoryCount{
			Label: c.Category,
			Count: roundInt(totalFails*c.PerFailure + c.Offset),
		})
	}
	for _, b := range p.PromptBuckets {
		snap.PromptLengths = append(snap.PromptLengths, CategoryCount{
			Label: b.Label,
			Count: roundInt(float64(calls) * b.Share),
		})
	}

	return snap
}
