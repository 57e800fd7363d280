// Package canvas provides a small 2D drawing surface abstraction and the
// chart primitives drawn on it: axes, linear scaling, lines, stacked
// areas, bars and heatmaps.
package canvas

import (
	"image/color"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DefaultPad is the axis inset in logical pixels.
const DefaultPad = 24

// AxisColor is the stroke colour of axis lines and heatmap outlines.
const AxisColor = "#e6edf3"

// Surface is a drawing context in logical coordinates. Backends apply the
// device pixel ratio themselves.
type Surface interface {
	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Close()
	Stroke()
	Fill()
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h float64)
	FillText(text string, x, y float64)
}

// Target is a drawable widget with a fixed logical size.
type Target interface {
	// Size returns the logical width and height.
	Size() (w, h float64)
	// Prepare allocates a backing store of w·dpr × h·dpr pixels, installs
	// the dpr scale transform, clears it and returns the surface.
	Prepare(dpr float64) Surface
}

// Frame is a prepared target ready for drawing.
type Frame struct {
	Surface
	W, H float64
	DPR  float64
}

// MaxDPR is the largest pixel ratio Setup accepts.
const MaxDPR = 4

// Setup prepares t for drawing. Ratios below 1 or not finite become 1;
// ratios above MaxDPR are clamped to MaxDPR.
func Setup(t Target, dpr float64) Frame {
	dpr = ClampDPR(dpr)
	w, h := t.Size()
	return Frame{Surface: t.Prepare(dpr), W: w, H: h, DPR: dpr}
}

// ClampDPR maps dpr into [1, MaxDPR], treating NaN and infinities as 1.
func ClampDPR(dpr float64) float64 {
	if math.IsNaN(dpr) || math.IsInf(dpr, 0) || dpr < 1 {
		return 1
	}
	return min(dpr, MaxDPR)
}

// Rect is the usable plot box. Y0 is the bottom edge and Y1 the top edge,
// matching screen coordinates where y grows downward.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Width returns X1-X0.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns Y0-Y1.
func (r Rect) Height() float64 { return r.Y0 - r.Y1 }

// Axes draws the x and y axis lines inset by pad and returns the plot box.
func (f Frame) Axes(pad float64) Rect {
	f.SetStrokeColor(Hex(AxisColor))
	f.SetLineWidth(1)

	f.BeginPath()
	f.MoveTo(pad, f.H-pad)
	f.LineTo(f.W-pad, f.H-pad)
	f.Stroke()

	f.BeginPath()
	f.MoveTo(pad, pad)
	f.LineTo(pad, f.H-pad)
	f.Stroke()

	return Rect{X0: pad, Y0: f.H - pad, X1: f.W - pad, Y1: pad}
}

// Label draws a caption in the top-left corner of r.
func (f Frame) Label(r Rect, text, hex string) {
	f.SetFillColor(Hex(hex))
	f.FillText(text, r.X0+4, r.Y1+12)
}

// ScaleY maps v from [lo, hi] onto [y0, y1]. A degenerate range with
// hi <= lo is widened to [lo, lo+1].
func ScaleY(v, lo, hi, y0, y1 float64) float64 {
	if hi <= lo {
		hi = lo + 1
	}
	t := (v - lo) / (hi - lo)
	return y0 - (y0-y1)*t
}

// XAt returns the x position of step i of n spread across r. A single
// step sits on the left edge.
func XAt(r Rect, i, n int) float64 {
	if n <= 1 {
		return r.X0
	}
	return r.X0 + float64(i)/float64(n-1)*r.Width()
}

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// BandPoint is one step of a stacked band.
type BandPoint struct {
	X, YTop, YBottom float64
}

// Hex parses "#rrggbb" into a colour.
func Hex(s string) color.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
