package charts

import (
	"fmt"

	"github.com/j-veylop/aimkt-usage-tui/internal/canvas"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// Chart colours.
const (
	ColorLabel     = "#6b85a6"
	ColorBandFirst = "#e2efff"
	ColorBandRest  = "#cfe0ff"
	ColorP50       = "#5f7fa4"
	ColorP95       = "#335075"
	ColorRPS       = "#4a6a90"
	ColorTokensIn  = "#4a6a90"
	ColorTokensOut = "#26374a"
	ColorFailures  = "#ffd0d0"
	ColorTimeouts  = "#ffe7bf"
	ColorPrompt    = "#e2efff"
)

const (
	heatmapPad = 34

	latencyHead = 1.1
	rpsHead     = 1.2
	tokenHead   = 1.2
)

// DayLabels are the heatmap row labels.
var DayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

func linePoints(r canvas.Rect, values usage.StepSeries, top float64) []canvas.Point {
	pts := make([]canvas.Point, len(values))
	for i, v := range values {
		pts[i] = canvas.Point{
			X: canvas.XAt(r, i, len(values)),
			Y: canvas.ScaleY(v, 0, top, r.Y0, r.Y1),
		}
	}
	return pts
}

func drawRequests(f canvas.Frame, snap *usage.Snapshot, filters usage.Filters) {
	r := f.Axes(canvas.DefaultPad)
	n := snap.Steps
	bands := Stack(ActiveRequests(snap, filters.Legends), n)

	top := 1.0
	if len(bands) > 0 {
		top = max(top, bands[len(bands)-1].Max())
	}

	bottom := make(usage.StepSeries, n)
	for idx, band := range bands {
		pts := make([]canvas.BandPoint, n)
		for i := range pts {
			pts[i] = canvas.BandPoint{
				X:       canvas.XAt(r, i, n),
				YTop:    canvas.ScaleY(band[i], 0, top, r.Y0, r.Y1),
				YBottom: canvas.ScaleY(bottom[i], 0, top, r.Y0, r.Y1),
			}
		}
		color := ColorBandRest
		if idx == 0 {
			color = ColorBandFirst
		}
		canvas.DrawAreaStack(f, pts, color)
		bottom = band
	}
	f.Label(r, "Requests", ColorLabel)
}

func drawLatency(f canvas.Frame, snap *usage.Snapshot, _ usage.Filters) {
	r := f.Axes(canvas.DefaultPad)
	top := snap.P95.Max() * latencyHead
	canvas.DrawLine(f, linePoints(r, snap.P50, top), ColorP50)
	canvas.DrawLine(f, linePoints(r, snap.P95, top), ColorP95)
	f.Label(r, "ms", ColorLabel)
}

func drawRPS(f canvas.Frame, snap *usage.Snapshot, _ usage.Filters) {
	r := f.Axes(canvas.DefaultPad)
	top := snap.RPS.Max() * rpsHead
	canvas.DrawLine(f, linePoints(r, snap.RPS, top), ColorRPS)
	f.Label(r, "RPS", ColorLabel)
}

func drawTokens(f canvas.Frame, snap *usage.Snapshot, filters usage.Filters) {
	r := f.Axes(canvas.DefaultPad)
	in, out := TokenSeries(snap, filters)
	top := max(in.Max(), out.Max()) * tokenHead
	if filters.Tokens.In {
		canvas.DrawLine(f, linePoints(r, in, top), ColorTokensIn)
	}
	if filters.Tokens.Out {
		canvas.DrawLine(f, linePoints(r, out, top), ColorTokensOut)
	}
	f.Label(r, TokenLabel(filters.Tokens), ColorLabel)
}

func drawHeatmap(f canvas.Frame, snap *usage.Snapshot, _ usage.Filters) {
	r := f.Axes(heatmapPad)
	grid := make([][]float64, len(snap.Heatmap))
	for d := range snap.Heatmap {
		grid[d] = snap.Heatmap[d][:]
	}
	canvas.DrawHeatmap(f, grid, r)

	f.SetFillColor(canvas.Hex(ColorLabel))
	for i, day := range DayLabels {
		f.FillText(day, 6, r.Y1+14+float64(i)*(r.Height()/7))
	}
	for h := 0; h < 24; h += 4 {
		f.FillText(fmt.Sprintf("%02d", h), r.X0+float64(h)*(r.Width()/24)+2, r.Y0+14)
	}
}

func drawFailures(f canvas.Frame, snap *usage.Snapshot, _ usage.Filters) {
	r := f.Axes(canvas.DefaultPad)
	canvas.DrawBars(f, snap.Errors.Timeline, r, ColorFailures)
}

func drawTimeoutsVsSize(f canvas.Frame, snap *usage.Snapshot, _ usage.Filters) {
	r := f.Axes(canvas.DefaultPad)
	canvas.DrawBars(f, TimeoutsVsSize(snap), r, ColorTimeouts)
}

func drawPromptLength(f canvas.Frame, snap *usage.Snapshot, _ usage.Filters) {
	r := f.Axes(canvas.DefaultPad)
	canvas.DrawBars(f, PromptCounts(snap), r, ColorPrompt)
}
