package canvas

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster is a Target backed by an in-memory RGBA image.
type Raster struct {
	w, h float64
	img  *image.RGBA
}

// NewRaster creates a raster target with the given logical size.
func NewRaster(w, h float64) *Raster {
	return &Raster{w: w, h: h}
}

// Size implements Target.
func (r *Raster) Size() (float64, float64) { return r.w, r.h }

// Prepare implements Target. The backing image is reallocated at
// w·dpr × h·dpr and cleared to white.
func (r *Raster) Prepare(dpr float64) Surface {
	pw := int(math.Ceil(r.w * dpr))
	ph := int(math.Ceil(r.h * dpr))
	r.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(r.img, r.img.Bounds(), image.White, image.Point{}, draw.Src)

	gc, err := drawing.NewRasterGraphicContext(r.img)
	if err != nil {
		// Only returned for non-RGBA images.
		return nopSurface{}
	}
	gc.Scale(dpr, dpr)
	return &rasterSurface{gc: gc, img: r.img, dpr: dpr, fill: color.Black}
}

// Image returns the last prepared image, or nil.
func (r *Raster) Image() *image.RGBA { return r.img }

// WritePNG encodes the image as PNG.
func (r *Raster) WritePNG(w io.Writer) error {
	if r.img == nil {
		return fmt.Errorf("raster not prepared")
	}
	return png.Encode(w, r.img)
}

// SavePNG writes the image to path, creating parent directories.
func (r *Raster) SavePNG(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return r.WritePNG(f)
}

type rasterSurface struct {
	gc   *drawing.RasterGraphicContext
	img  *image.RGBA
	dpr  float64
	fill color.Color
}

func (s *rasterSurface) SetStrokeColor(c color.Color) { s.gc.SetStrokeColor(c) }

func (s *rasterSurface) SetFillColor(c color.Color) {
	s.fill = c
	s.gc.SetFillColor(c)
}

func (s *rasterSurface) SetLineWidth(w float64) { s.gc.SetLineWidth(w) }
func (s *rasterSurface) BeginPath() { s.gc.BeginPath() }
func (s *rasterSurface) MoveTo(x, y float64) { s.gc.MoveTo(x, y) }
func (s *rasterSurface) LineTo(x, y float64) { s.gc.LineTo(x, y) }
func (s *rasterSurface) Close() { s.gc.Close() }
func (s *rasterSurface) Stroke() { s.gc.Stroke() }
func (s *rasterSurface) Fill() { s.gc.Fill() }

func (s *rasterSurface) rect(x, y, w, h float64) {
	s.gc.BeginPath()
	s.gc.MoveTo(x, y)
	s.gc.LineTo(x+w, y)
	s.gc.LineTo(x+w, y+h)
	s.gc.LineTo(x, y+h)
	s.gc.Close()
}

func (s *rasterSurface) FillRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.rect(x, y, w, h)
	s.gc.Fill()
}

func (s *rasterSurface) StrokeRect(x, y, w, h float64) {
	s.rect(x, y, w, h)
	s.gc.Stroke()
}

// FillText draws with the fixed 7x13 face. Glyphs are placed at device
// coordinates and are not scaled by dpr.
func (s *rasterSurface) FillText(text string, x, y float64) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(s.fill),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(int(x * s.dpr)), Y: fixed.I(int(y * s.dpr))},
	}
	d.DrawString(text)
}

type nopSurface struct{}

func (nopSurface) SetStrokeColor(color.Color) {}
func (nopSurface) SetFillColor(color.Color) {}
func (nopSurface) SetLineWidth(float64) {}
func (nopSurface) BeginPath() {}
func (nopSurface) MoveTo(float64, float64) {}
func (nopSurface) LineTo(float64, float64) {}
func (nopSurface) Close() {}
func (nopSurface) Stroke() {}
func (nopSurface) Fill() {}
func (nopSurface) FillRect(float64, float64, float64, float64) {}
func (nopSurface) StrokeRect(float64, float64, float64, float64) {}
func (nopSurface) FillText(string, float64, float64) {}
