// Package charts draws the dashboard's charts from a usage snapshot onto
// canvas targets.
package charts

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/j-veylop/aimkt-usage-tui/internal/canvas"
	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

// WidgetID names a chart widget.
type WidgetID string

const (
	WidgetRequests       WidgetID = "requests"
	WidgetLatency        WidgetID = "latency"
	WidgetRPS            WidgetID = "rps"
	WidgetTokens         WidgetID = "tokens"
	WidgetHeatmap        WidgetID = "heatmap"
	WidgetFailures       WidgetID = "failures"
	WidgetTimeoutsVsSize WidgetID = "timeouts_vs_size"
	WidgetPromptLength   WidgetID = "prompt_length"
)

// Widgets lists every widget in render order.
var Widgets = []WidgetID{
	WidgetRequests,
	WidgetLatency,
	WidgetRPS,
	WidgetTokens,
	WidgetHeatmap,
	WidgetFailures,
	WidgetTimeoutsVsSize,
	WidgetPromptLength,
}

// DefaultSize returns the logical size used when rendering id to a file.
func DefaultSize(id WidgetID) (w, h float64) {
	switch id {
	case WidgetHeatmap:
		return 520, 220
	case WidgetTimeoutsVsSize, WidgetPromptLength:
		return 320, 160
	default:
		return 520, 180
	}
}

type drawFunc func(f canvas.Frame, snap *usage.Snapshot, filters usage.Filters)

var drawers = map[WidgetID]drawFunc{
	WidgetRequests:       drawRequests,
	WidgetLatency:        drawLatency,
	WidgetRPS:            drawRPS,
	WidgetTokens:         drawTokens,
	WidgetHeatmap:        drawHeatmap,
	WidgetFailures:       drawFailures,
	WidgetTimeoutsVsSize: drawTimeoutsVsSize,
	WidgetPromptLength:   drawPromptLength,
}

// Rendered reports which widgets were drawn.
type Rendered struct {
	Drawn   []WidgetID
	Skipped []WidgetID
}

// Render draws every widget that has a target. Widgets without a target,
// or every widget when snap is nil, are skipped without affecting the rest.
func Render(snap *usage.Snapshot, filters usage.Filters, targets map[WidgetID]canvas.Target, dpr float64) Rendered {
	var out Rendered
	for _, id := range Widgets {
		t, ok := targets[id]
		if !ok || t == nil || snap == nil {
			out.Skipped = append(out.Skipped, id)
			continue
		}
		RenderWidget(id, snap, filters, t, dpr)
		out.Drawn = append(out.Drawn, id)
	}
	return out
}

// RenderWidget prepares t and draws a single widget on it.
func RenderWidget(id WidgetID, snap *usage.Snapshot, filters usage.Filters, t canvas.Target, dpr float64) {
	draw, ok := drawers[id]
	if !ok || snap == nil || t == nil {
		return
	}
	draw(canvas.Setup(t, dpr), snap, filters)
}

// RenderPNGs draws every widget to "<dir>/<widget>.png" and returns the
// written paths.
func RenderPNGs(dir string, snap *usage.Snapshot, filters usage.Filters, dpr float64) ([]string, error) {
	if snap == nil {
		return nil, errors.New("no snapshot to render")
	}
	var paths []string
	var errs []error
	for _, id := range Widgets {
		r := canvas.NewRaster(DefaultSize(id))
		RenderWidget(id, snap, filters, r, dpr)
		path := filepath.Join(dir, string(id)+".png")
		if err := r.SavePNG(path); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}
