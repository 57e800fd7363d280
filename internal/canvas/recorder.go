package canvas

import (
	"fmt"
	"image/color"
	"math"
)

// Op is one recorded drawing call.
type Op struct {
	Name  string
	Args  []float64
	Color string
	Text  string
}

// Recorder is a Target that records every call instead of drawing. It is
// used by tests and by callers that only need to know what would be drawn.
type Recorder struct {
	W, H float64

	// Backing store size of the last Prepare.
	PixelW, PixelH int
	DPR            float64
	Prepared       int

	Ops []Op

	stroke string
	fill   string
}

// NewRecorder creates a recorder with the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

// Size implements Target.
func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// Prepare implements Target. Previously recorded ops are discarded.
func (r *Recorder) Prepare(dpr float64) Surface {
	r.DPR = dpr
	r.PixelW = int(math.Ceil(r.W * dpr))
	r.PixelH = int(math.Ceil(r.H * dpr))
	r.Prepared++
	r.Ops = nil
	r.stroke, r.fill = "", ""
	return r
}

// Count returns the number of recorded ops named name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Filter returns the recorded ops named name.
func (r *Recorder) Filter(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns every string passed to FillText.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Filter("fillText") {
		out = append(out, op.Text)
	}
	return out
}

func (r *Recorder) add(op Op) { r.Ops = append(r.Ops, op) }

func (r *Recorder) SetStrokeColor(c color.Color) { r.stroke = hexOf(c) }
func (r *Recorder) SetFillColor(c color.Color) { r.fill = hexOf(c) }
func (r *Recorder) SetLineWidth(w float64) {
	r.add(Op{Name: "lineWidth", Args: []float64{w}})
}
func (r *Recorder) BeginPath() { r.add(Op{Name: "beginPath"}) }
func (r *Recorder) MoveTo(x, y float64) { r.add(Op{Name: "moveTo", Args: []float64{x, y}}) }
func (r *Recorder) LineTo(x, y float64) { r.add(Op{Name: "lineTo", Args: []float64{x, y}}) }
func (r *Recorder) Close() { r.add(Op{Name: "closePath"}) }
func (r *Recorder) Stroke() { r.add(Op{Name: "stroke", Color: r.stroke}) }
func (r *Recorder) Fill() { r.add(Op{Name: "fill", Color: r.fill}) }

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.add(Op{Name: "fillRect", Args: []float64{x, y, w, h}, Color: r.fill})
}

func (r *Recorder) StrokeRect(x, y, w, h float64) {
	r.add(Op{Name: "strokeRect", Args: []float64{x, y, w, h}, Color: r.stroke})
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.add(Op{Name: "fillText", Args: []float64{x, y}, Color: r.fill, Text: text})
}

func hexOf(c color.Color) string {
	cr, cg, cb, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", cr>>8, cg>>8, cb>>8)
}
