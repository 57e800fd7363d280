package usage

import (
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// FormatCount renders a count with thousands separators ("12,345").
// Fractional values keep up to three decimals.
func FormatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	if v == math.Trunc(v) {
		return humanize.Comma(int64(v))
	}
	return humanize.CommafWithDigits(v, 3)
}

// FormatPct renders v with the given number of decimals and a "%" suffix.
func FormatPct(v float64, places int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	return toFixed(v, places) + "%"
}

// FormatMoney renders a dollar amount with two decimals.
func FormatMoney(v float64) string {
	return "$" + toFixed(v, 2)
}

// FormatTokenPair renders "in / out" with separators.
func FormatTokenPair(in, out int) string {
	return FormatCount(float64(in)) + " / " + FormatCount(float64(out))
}

// FormatNumber renders a plain decimal without trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
