package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xau-dashboard/internal/format"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

// Default PNG dimensions.
const (
	ChartWidth  = 1024
	ChartHeight = 512
)

// ChartRenderer draws view renderings as PNG images.
type ChartRenderer struct {
	logger *zap.Logger
	theme  style.Theme
	width  int
	height int
}

// NewChartRenderer creates a renderer using theme colors.
func NewChartRenderer(logger *zap.Logger, theme style.Theme) *ChartRenderer {
	return &ChartRenderer{
		logger: logger.Named("charts"),
		theme:  theme,
		width:  ChartWidth,
		height: ChartHeight,
	}
}

// WithSize overrides the image dimensions.
func (c *ChartRenderer) WithSize(width, height int) *ChartRenderer {
	c.width = width
	c.height = height
	return c
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func (c *ChartRenderer) roleColor(role view.ColorRole) drawing.Color {
	switch role {
	case view.RoleGold:
		return hexColor(c.theme.Gold)
	case view.RoleOutperformance:
		return hexColor(c.theme.Outperformance)
	default:
		return hexColor(c.theme.Strategy)
	}
}

// Render writes one PNG for the rendering. Placeholders have nothing to draw
// and return an error.
func (c *ChartRenderer) Render(r view.Rendering, w io.Writer) error {
	if r.Chart == nil {
		return fmt.Errorf("view %q has no chart", r.ID)
	}

	if r.Chart.Kind == view.ChartRadar {
		return c.renderSpokes(r, w)
	}
	return c.renderSeries(r, w)
}

func finite(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[i] = v
	}
	return out
}

func (c *ChartRenderer) valueFormatter(unit string) chart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return fmt.Sprintf("%v", v)
		}
		switch unit {
		case "usd":
			return "$" + format.Thousands(f)
		case "percent":
			return fmt.Sprintf("%.0f%%", f)
		default:
			return fmt.Sprintf("%.1f", f)
		}
	}
}

func (c *ChartRenderer) renderSeries(r view.Rendering, w io.Writer) error {
	ch := r.Chart
	n := len(ch.Labels)
	if n < 2 {
		return fmt.Errorf("view %q needs at least two points, got %d", r.ID, n)
	}

	xs := make([]float64, n)
	xTicks := make([]chart.Tick, n)
	for i, label := range ch.Labels {
		xs[i] = float64(i)
		xTicks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	var series []chart.Series
	for _, s := range ch.Series {
		color := c.roleColor(s.Role)
		inner := chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: finite(s.Values),
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 2,
			},
		}
		switch s.Style {
		case view.StyleArea:
			inner.Style.FillColor = color.WithAlpha(64)
			series = append(series, inner)
		case view.StyleBar:
			inner.Style.FillColor = color
			series = append(series, chart.HistogramSeries{
				Name:        s.Name,
				Style:       inner.Style,
				InnerSeries: inner,
			})
		default:
			inner.Style.DotWidth = 3
			inner.Style.DotColor = color
			series = append(series, inner)
		}
	}

	lo, hi := ch.Bounds()
	if math.IsNaN(lo) || math.IsInf(lo, 0) {
		lo = 0
	}
	if math.IsNaN(hi) || math.IsInf(hi, 0) || hi <= lo {
		hi = lo + 1
	}

	yAxis := chart.YAxis{
		Name:           ch.YAxis.Label,
		Range:          &chart.ContinuousRange{Min: lo, Max: hi},
		ValueFormatter: c.valueFormatter(ch.YAxis.Unit),
	}
	if len(ch.YAxis.Ticks) > 0 {
		for _, t := range ch.YAxis.Ticks {
			yAxis.Ticks = append(yAxis.Ticks, chart.Tick{Value: t, Label: yAxis.ValueFormatter(t)})
		}
	}

	graph := chart.Chart{
		Title:      r.Title,
		Width:      c.width,
		Height:     c.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
			Ticks: xTicks,
		},
		YAxis:  yAxis,
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", r.ID, err)
	}
	return nil
}

// renderSpokes draws a radar view as bars of value over scale maximum,
// since go-chart has no polar chart.
func (c *ChartRenderer) renderSpokes(r view.Rendering, w io.Writer) error {
	spokes := r.Chart.Spokes
	if len(spokes) == 0 {
		return fmt.Errorf("view %q has no spokes", r.ID)
	}

	color := c.roleColor(view.RoleStrategy)
	bars := make([]chart.Value, len(spokes))
	for i, s := range spokes {
		ratio := 0.0
		if s.Max > 0 {
			ratio = s.Value / s.Max * 100
		}
		bars[i] = chart.Value{
			Label: s.Name,
			Value: ratio,
			Style: chart.Style{FillColor: color, StrokeColor: color, StrokeWidth: 1},
		}
	}

	graph := chart.BarChart{
		Title:      r.Title,
		Width:      c.width,
		Height:     c.height,
		BarWidth:   c.width / (len(spokes) * 2),
		BarSpacing: c.width / (len(spokes) * 3),
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: c.valueFormatter("percent"),
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", r.ID, err)
	}
	return nil
}

// ExportCharts writes <view>.png for every view into dir.
func (c *ChartRenderer) ExportCharts(renderer *view.Renderer, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var paths []string
	for _, r := range renderer.RenderAll() {
		var buf bytes.Buffer
		if err := c.Render(r, &buf); err != nil {
			return paths, err
		}

		path := filepath.Join(dir, string(r.ID)+".png")
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
		c.logger.Debug("Chart written", zap.String("view", string(r.ID)), zap.String("file", path))
	}

	c.logger.Info("Charts exported", zap.String("dir", dir), zap.Int("count", len(paths)))
	return paths, nil
}
