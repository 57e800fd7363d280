package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/aimkt-usage-tui/internal/usage"
)

func TestActivity_Lifecycle(t *testing.T) {
	a := NewActivity()
	if a.Active() || a.View() != "" {
		t.Fatal("new activity should be idle and render nothing")
	}
	if _, cmd := a.Update(spinner.TickMsg{}); cmd != nil {
		t.Error("idle activity should drop ticks")
	}

	a, tick := a.Start("Saving thresholds...")
	if !a.Active() || tick == nil {
		t.Fatal("Start should activate and return a tick")
	}
	if !strings.Contains(a.View(), "Saving thresholds...") {
		t.Errorf("View = %q, want label", a.View())
	}
	if _, cmd := a.Update(tick()); cmd == nil {
		t.Error("running activity should schedule the next tick")
	}
	if _, cmd := a.Update(spinner.TickMsg{ID: 1 << 30}); cmd != nil {
		t.Error("ticks for other spinners should be ignored")
	}
	if _, cmd := a.Update(tea.KeyMsg{}); cmd != nil {
		t.Error("non-tick messages should be ignored")
	}

	a = a.Stop()
	if a.Active() || a.View() != "" {
		t.Error("Stop should return to idle")
	}
	if a.Label() != "Saving thresholds..." {
		t.Errorf("Label = %q, want last label", a.Label())
	}
}

func TestRenderLineChart(t *testing.T) {
	if s := RenderLineChart([]float64{1, 2, 3, 4}, 20, 5, "Test"); !strings.Contains(s, "Test") {
		t.Error("RenderLineChart should include the caption")
	}
	if s := RenderLineChart(nil, 20, 5, "Test"); !strings.Contains(s, "No data") {
		t.Error("empty data should render a placeholder")
	}
}

func TestRenderMultiLineChart(t *testing.T) {
	s := RenderMultiLineChart([][]float64{{1, 2, 3}, {3, 2}}, []int{0, 1}, 20, 5, "p50 / p95")
	if !strings.Contains(s, "p50 / p95") {
		t.Error("RenderMultiLineChart should include the caption")
	}
	if s := RenderMultiLineChart([][]float64{nil, {}}, nil, 20, 5, ""); !strings.Contains(s, "No data") {
		t.Error("all-empty series should render a placeholder")
	}
}

func TestRenderBarChart(t *testing.T) {
	s := RenderBarChart([]float64{10, 20}, []string{"A", "Bee"}, 40)
	lines := strings.Split(ansi.Strip(s), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if strings.Count(lines[1], "█") <= strings.Count(lines[0], "█") {
		t.Error("larger value should have a longer bar")
	}
	if !strings.HasPrefix(lines[0], "  A │") {
		t.Errorf("labels should be right aligned, got %q", lines[0])
	}
	if RenderBarChart(nil, nil, 20) != "" {
		t.Error("no values should render nothing")
	}
}

func TestRenderHeatmap(t *testing.T) {
	var grid usage.HeatmapGrid
	grid[2][14] = 10
	grid[0][0] = 1

	lines := strings.Split(ansi.Strip(RenderHeatmap(grid)), "\n")
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want header plus 7 days", len(lines))
	}
	wed := []rune(lines[3])
	if !strings.HasPrefix(lines[3], "Wed ") || wed[4+14] != '█' {
		t.Errorf("busiest cell should be a full block, got %q", lines[3])
	}
	if []rune(lines[1])[4] != ' ' {
		t.Error("low cells should round to blank")
	}
}

func TestRenderSparkline(t *testing.T) {
	s := RenderSparkline([]float64{0, 5, 10}, 10)
	if s != "▁▄█" {
		t.Errorf("RenderSparkline = %q", s)
	}
	if got := []rune(RenderSparkline(make([]float64, 100), 10)); len(got) != 10 {
		t.Errorf("sparkline should be sampled to width, got %d", len(got))
	}
	if ansi.Strip(RenderColoredSparkline([]float64{0, 5, 10}, 10)) != "▁▄█" {
		t.Error("colored sparkline should match the plain one")
	}
}

func TestLegend(t *testing.T) {
	legends := usage.NewLegendSet("CANChat", "Cohere").Toggle("Cohere")
	items := LegendItems(legends)
	if len(items) != 2 || !items[0].Active || items[1].Active {
		t.Fatalf("items = %+v", items)
	}
	s := ansi.Strip(RenderLegend(items))
	if s != "■ CANChat  □ Cohere" {
		t.Errorf("RenderLegend = %q", s)
	}
}

func TestKPICards(t *testing.T) {
	k := usage.KPISet{Calls: 830, ActiveKeys: 28, LatencyP50: 700, LatencyP95: 1494, ErrRate: 3.01, Spend: 12.5}
	cards := KPICards(k, usage.Breaches{ErrRate: usage.StatusWarn})

	var errCard KPI
	for _, c := range cards {
		if c.Label == "Error rate" {
			errCard = c
		}
	}
	if errCard.Status != usage.StatusWarn || !errCard.Alerted {
		t.Fatalf("error card = %+v", errCard)
	}

	strip := ansi.Strip(RenderKPIStrip(cards, 120))
	for _, want := range []string{"Calls", "WARN", "700 / 1494 ms"} {
		if !strings.Contains(strip, want) {
			t.Errorf("strip missing %q", want)
		}
	}
}

func TestStatusPill(t *testing.T) {
	tests := map[usage.Status]string{
		usage.StatusOK:   "OK",
		usage.StatusWarn: "WARN",
		usage.StatusBad:  "BAD",
	}
	for s, want := range tests {
		if got := strings.TrimSpace(ansi.Strip(StatusPill(s))); got != want {
			t.Errorf("StatusPill(%v) = %q, want %q", s, got, want)
		}
	}
}

func TestRenderTable(t *testing.T) {
	s := ansi.Strip(RenderTable([]string{"Dept", "Calls"}, [][]string{{"IRCC", "282"}, {"ESDC", "216"}}, 0, nil))
	for _, want := range []string{"Dept", "IRCC", "216"} {
		if !strings.Contains(s, want) {
			t.Errorf("table missing %q", want)
		}
	}
	if !strings.Contains(RenderTable([]string{"A"}, nil, 0, nil), "No data") {
		t.Error("empty table should render a placeholder")
	}
}

func TestRenderQuotaRows(t *testing.T) {
	rows := []usage.QuotaRow{
		{Department: "IRCC", Used: 85},
		{Department: "ESDC", Used: 40},
	}
	lines := strings.Split(ansi.Strip(RenderQuotaRows(rows, 60)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "85%") || !strings.Contains(lines[0], "HIGH") {
		t.Errorf("high row = %q", lines[0])
	}
	if strings.Contains(lines[1], "HIGH") {
		t.Errorf("normal row flagged: %q", lines[1])
	}
}
