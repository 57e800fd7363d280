// Package usage generates the synthetic telemetry snapshot shown by the
// dashboard: step series, KPIs, heatmap, tables and breakdowns.
package usage

// DefaultSeed is the seed used when none is configured.
const DefaultSeed int64 = 42

const (
	rngMul = 9301
	rngInc = 49297
	rngMod = 233280
)

// RNG is a small linear congruential generator. Two RNGs created with the
// same seed produce the same sequence.
type RNG struct {
	state int64
}

// NewRNG creates a generator from seed.
func NewRNG(seed int64) *RNG {
	s := seed % rngMod
	if s < 0 {
		s += rngMod
	}
	return &RNG{state: s}
}

// Next advances the generator and returns a value in [0, 1).
func (r *RNG) Next() float64 {
	r.state = (r.state*rngMul + rngInc) % rngMod
	return float64(r.state) / rngMod
}
