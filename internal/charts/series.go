package charts

import (
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// ActiveRequests returns the request series of active legends in the
// snapshot's service order.
func ActiveRequests(snap *usage.Snapshot, legends usage.LegendSet) []usage.ServiceSeries {
	var out []usage.ServiceSeries
	for _, r := range snap.Requests {
		if legends.IsActive(r.Name) {
			out = append(out, r)
		}
	}
	return out
}

// Stack returns cumulative band tops: element k is the per-step sum of
// series 0..k.
func Stack(series []usage.ServiceSeries, steps int) []usage.StepSeries {
	bottom := make(usage.StepSeries, steps)
	bands := make([]usage.StepSeries, 0, len(series))
	for _, s := range series {
		top := bottom.Add(s.Values)
		bands = append(bands, top)
		bottom = top
	}
	return bands
}

// CallsPerStep returns the active legends' calls per step with zero
// steps replaced by one.
func CallsPerStep(snap *usage.Snapshot, legends usage.LegendSet) usage.StepSeries {
	return snap.ActiveCalls(legends).Map(func(v float64) float64 {
		if v == 0 {
			return 1
		}
		return v
	})
}

// TokenSeries returns the token in/out series, divided by calls per step
// when avg is set.
func TokenSeries(snap *usage.Snapshot, filters usage.Filters) (in, out usage.StepSeries) {
	if !filters.Tokens.Avg {
		return snap.TokensIn, snap.TokensOut
	}
	calls := CallsPerStep(snap, filters.Legends)
	div := func(s usage.StepSeries) usage.StepSeries {
		res := make(usage.StepSeries, len(s))
		for i, v := range s {
			c := 1.0
			if i < len(calls) {
				c = max(1, calls[i])
			}
			res[i] = v / c
		}
		return res
	}
	return div(snap.TokensIn), div(snap.TokensOut)
}

// TokenLabel returns the token chart caption.
func TokenLabel(t usage.TokenToggles) string {
	if t.Avg {
		return "avg tokens/req"
	}
	return "tokens"
}

// TimeoutsVsSize returns the total timeouts and size-limit hits.
func TimeoutsVsSize(snap *usage.Snapshot) []float64 {
	return []float64{snap.Timeouts.Sum(), snap.SizeLimit.Sum()}
}

// PromptCounts returns the prompt-length histogram values.
func PromptCounts(snap *usage.Snapshot) []float64 {
	out := make([]float64, len(snap.PromptLengths))
	for i, b := range snap.PromptLengths {
		out[i] = float64(b.Count)
	}
	return out
}
