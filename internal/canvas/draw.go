package canvas

import (
	"image/color"
	"math"
)

// Default colours of the renderers.
const (
	LineColor = "#335075"
	AreaColor = "#dfe8f5"
	BarColor  = "#cfe0ff"
)

const (
	lineWidth = 2
	barFill   = 0.6
	barOffset = 0.2
	barHead   = 1.1

	heatRange = 140
)

// DrawLine strokes a polyline through pts.
func DrawLine(s Surface, pts []Point, hex string) {
	if len(pts) == 0 {
		return
	}
	if hex == "" {
		hex = LineColor
	}
	s.SetStrokeColor(Hex(hex))
	s.SetLineWidth(lineWidth)
	s.BeginPath()
	for i, p := range pts {
		if i == 0 {
			s.MoveTo(p.X, p.Y)
			continue
		}
		s.LineTo(p.X, p.Y)
	}
	s.Stroke()
}

// DrawAreaStack fills the band between YTop and YBottom. The top edge is
// traced forward and the bottom edge backward.
func DrawAreaStack(s Surface, band []BandPoint, hex string) {
	if len(band) == 0 {
		return
	}
	if hex == "" {
		hex = AreaColor
	}
	s.SetFillColor(Hex(hex))
	s.BeginPath()
	for i, p := range band {
		if i == 0 {
			s.MoveTo(p.X, p.YTop)
			continue
		}
		s.LineTo(p.X, p.YTop)
	}
	for i := len(band) - 1; i >= 0; i-- {
		s.LineTo(band[i].X, band[i].YBottom)
	}
	s.Close()
	s.Fill()
}

// DrawBars draws one bar per value, scaled to the largest value with
// headroom.
func DrawBars(s Surface, values []float64, r Rect, hex string) {
	n := len(values)
	if n == 0 {
		return
	}
	if hex == "" {
		hex = BarColor
	}
	span := r.Width() / float64(n)
	bw := math.Max(1, span*barFill)

	top := values[0]
	for _, v := range values[1:] {
		top = math.Max(top, v)
	}

	s.SetFillColor(Hex(hex))
	for i, v := range values {
		x := r.X0 + (float64(i)+barOffset)*span
		y := ScaleY(v, 0, top*barHead, r.Y0, r.Y1)
		s.FillRect(x, y, bw, r.Y0-y)
	}
}

// HeatColor returns the fill colour for intensity in [0, 1].
func HeatColor(intensity float64) color.RGBA {
	shade := math.Floor(255 - intensity*heatRange + 0.5)
	shade = math.Min(255, math.Max(0, shade))
	return color.RGBA{
		R: uint8(shade),
		G: uint8(math.Min(255, shade+8)),
		B: 255,
		A: 255,
	}
}

// DrawHeatmap fills one cell per grid value. Intensity is value / max;
// an all-zero grid renders at intensity 0.
func DrawHeatmap(s Surface, grid [][]float64, r Rect) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return
	}
	rows, cols := len(grid), len(grid[0])
	cw := r.Width() / float64(cols)
	ch := r.Height() / float64(rows)

	var peak float64
	for _, row := range grid {
		for _, v := range row {
			peak = math.Max(peak, v)
		}
	}
	if peak == 0 {
		peak = 1
	}

	for ri, row := range grid {
		for ci := 0; ci < cols; ci++ {
			var v float64
			if ci < len(row) {
				v = row[ci]
			}
			s.SetFillColor(HeatColor(v / peak))
			s.FillRect(r.X0+float64(ci)*cw, r.Y1+float64(ri)*ch, cw-1, ch-1)
		}
	}
	s.SetStrokeColor(Hex(AxisColor))
	s.StrokeRect(r.X0, r.Y1, r.Width(), r.Height())
}
