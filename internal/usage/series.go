package usage

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// StepSeries is one value per time step.
type StepSeries []float64

// Sum returns the total of all steps.
func (s StepSeries) Sum() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, or 0 for an empty series.
func (s StepSeries) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return s.Sum() / float64(len(s))
}

// Max returns the largest value, or 0 for an empty series.
func (s StepSeries) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	m := s[0]
	for _, v := range s[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// Add returns the element-wise sum of s and o. The result has the length
// of the longer series.
func (s StepSeries) Add(o StepSeries) StepSeries {
	n := max(len(s), len(o))
	out := make(StepSeries, n)
	for i := range out {
		if i < len(s) {
			out[i] += s[i]
		}
		if i < len(o) {
			out[i] += o[i]
		}
	}
	return out
}

// Map returns a new series with fn applied to every step.
func (s StepSeries) Map(fn func(float64) float64) StepSeries {
	out := make(StepSeries, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// roundHalfUp rounds half toward positive infinity.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// roundTo rounds x to places decimals with toFixed semantics.
func roundTo(x float64, places int) float64 {
	v, err := strconv.ParseFloat(toFixed(x, places), 64)
	if err != nil {
		return x
	}
	return v
}

// toFixed formats x with places decimals by rounding its exact binary
// value. Exact ties round away from zero, where strconv rounds to even.
func toFixed(x float64, places int) string {
	s := strconv.FormatFloat(x, 'f', places, 64)
	if math.IsNaN(x) || math.IsInf(x, 0) || places < 0 {
		return s
	}
	r := new(big.Rat).SetFloat64(math.Abs(x))
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(places)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if r.Denom().Cmp(big.NewInt(2)) != 0 {
		return s
	}

	n := new(big.Int).Rsh(r.Num(), 1)
	n.Add(n, big.NewInt(1))
	digits := n.String()
	if places > 0 {
		if len(digits) <= places {
			digits = strings.Repeat("0", places-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-places] + "." + digits[len(digits)-places:]
	}
	if x < 0 {
		digits = "-" + digits
	}
	return digits
}

func roundInt(x float64) int {
	return int(roundHalfUp(x))
}
