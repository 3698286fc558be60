package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/xau-dashboard/internal/format"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

// Glyphs used on the chart canvas.
const (
	glyphPoint = '●'
	glyphLine  = '·'
	glyphArea  = '░'
	glyphBar   = '█'
	glyphZero  = '─'
)

type cell struct {
	r     rune
	color lipgloss.Color
}

// Chart draws line, area and composed bar+line charts with block characters.
type Chart struct {
	chart  *view.Chart
	width  int
	height int
	styles style.Styles
}

// NewChart creates a new chart component
func NewChart(styles style.Styles) *Chart {
	return &Chart{width: 80, height: 16, styles: styles}
}

// SetChart sets the chart description to draw
func (c *Chart) SetChart(ch *view.Chart) *Chart {
	c.chart = ch
	return c
}

// SetSize sets the outer size, axis labels and legend included
func (c *Chart) SetSize(width, height int) *Chart {
	c.width = width
	c.height = height
	return c
}

// SetStyles recolors the chart after a theme change
func (c *Chart) SetStyles(styles style.Styles) *Chart {
	c.styles = styles
	return c
}

func (c *Chart) roleColor(role view.ColorRole) lipgloss.Color {
	switch role {
	case view.RoleGold:
		return c.styles.Palette.Gold
	case view.RoleOutperformance:
		return c.styles.Palette.Outperformance
	default:
		return c.styles.Palette.Strategy
	}
}

// AxisValue formats a y-axis value for the given unit.
func AxisValue(unit string, v float64) string {
	switch unit {
	case "usd":
		return "$" + format.Thousands(v)
	case "percent":
		return fmt.Sprintf("%.0f%%", v)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

// ShortMonth turns "Jan 2024" into "Jan'24".
func ShortMonth(label string) string {
	parts := strings.Fields(label)
	if len(parts) == 2 && len(parts[0]) >= 3 && len(parts[1]) == 4 {
		return parts[0][:3] + "'" + parts[1][2:]
	}
	return label
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// View renders the chart
func (c *Chart) View() string {
	if c.chart == nil || len(c.chart.Labels) == 0 {
		return c.styles.Muted.Render("no data")
	}

	lo, hi := c.chart.Bounds()
	if !usable(lo) {
		lo = 0
	}
	if !usable(hi) || hi <= lo {
		hi = lo + 1
	}

	yLabels := []string{AxisValue(c.chart.YAxis.Unit, hi), AxisValue(c.chart.YAxis.Unit, (hi+lo)/2), AxisValue(c.chart.YAxis.Unit, lo)}
	labelWidth := 0
	for _, l := range yLabels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}

	plotWidth := max(c.width-labelWidth-2, 10)
	plotHeight := max(c.height-3, 4) // x labels, legend, spacing

	canvas := newCanvas(plotWidth, plotHeight)
	p := plotter{canvas: canvas, lo: lo, hi: hi, n: len(c.chart.Labels)}

	if lo < 0 && hi > 0 {
		p.hline(p.row(0), glyphZero, c.styles.Palette.Grid)
	}

	for _, pass := range []view.SeriesStyle{view.StyleBar, view.StyleArea, view.StyleLine} {
		for _, s := range c.chart.Series {
			if s.Style != pass {
				continue
			}
			color := c.roleColor(s.Role)
			switch s.Style {
			case view.StyleBar:
				p.bars(s.Values, color)
			case view.StyleArea:
				p.area(s.Values, color)
			default:
				p.line(s.Values, color)
			}
		}
	}

	var b strings.Builder
	for r, line := range canvas.lines() {
		label := ""
		switch r {
		case 0:
			label = yLabels[0]
		case plotHeight / 2:
			label = yLabels[1]
		case plotHeight - 1:
			label = yLabels[2]
		}
		b.WriteString(c.styles.AxisLabel.Render(fmt.Sprintf("%*s", labelWidth, label)))
		b.WriteString(c.styles.AxisLabel.Render(" │"))
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", labelWidth+2))
	b.WriteString(c.styles.AxisLabel.Render(p.xLabels(c.chart.Labels)))
	b.WriteString("\n")
	b.WriteString(c.legend())
	return b.String()
}

func (c *Chart) legend() string {
	items := make([]string, 0, len(c.chart.Series))
	for _, s := range c.chart.Series {
		swatch := lipgloss.NewStyle().Foreground(c.roleColor(s.Role)).Render("■")
		items = append(items, swatch+" "+c.styles.Legend.Render(s.Name))
	}
	return strings.Join(items, "   ")
}

type canvas struct {
	width, height int
	cells         [][]cell
}

func newCanvas(width, height int) *canvas {
	cells := make([][]cell, height)
	for r := range cells {
		cells[r] = make([]cell, width)
		for col := range cells[r] {
			cells[r][col] = cell{r: ' '}
		}
	}
	return &canvas{width: width, height: height, cells: cells}
}

func (cv *canvas) set(row, col int, r rune, color lipgloss.Color) {
	if row < 0 || row >= cv.height || col < 0 || col >= cv.width {
		return
	}
	cv.cells[row][col] = cell{r: r, color: color}
}

// lines renders each row, styling runs of equal color together.
func (cv *canvas) lines() []string {
	out := make([]string, cv.height)
	for r, row := range cv.cells {
		var b strings.Builder
		start := 0
		for col := 1; col <= len(row); col++ {
			if col < len(row) && row[col].color == row[start].color {
				continue
			}
			var run strings.Builder
			for _, ce := range row[start:col] {
				run.WriteRune(ce.r)
			}
			if row[start].color == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(row[start].color).Render(run.String()))
			}
			start = col
		}
		out[r] = b.String()
	}
	return out
}

type plotter struct {
	canvas *canvas
	lo, hi float64
	n      int
}

func (p plotter) row(v float64) int {
	h := p.canvas.height
	r := int(math.Round((p.hi - v) / (p.hi - p.lo) * float64(h-1)))
	return min(max(r, 0), h-1)
}

func (p plotter) col(i int) int {
	if p.n <= 1 {
		return p.canvas.width / 2
	}
	return i * (p.canvas.width - 1) / (p.n - 1)
}

func (p plotter) hline(row int, r rune, color lipgloss.Color) {
	for col := 0; col < p.canvas.width; col++ {
		p.canvas.set(row, col, r, color)
	}
}

// interpolate walks every canvas column between consecutive points.
func (p plotter) interpolate(values []float64, fn func(col int, v float64, onPoint bool)) {
	for i, v := range values {
		if !usable(v) {
			continue
		}
		fn(p.col(i), v, true)
		if i+1 >= len(values) || !usable(values[i+1]) {
			continue
		}
		from, to := p.col(i), p.col(i+1)
		for col := from + 1; col < to; col++ {
			t := float64(col-from) / float64(to-from)
			fn(col, v+(values[i+1]-v)*t, false)
		}
	}
}

func (p plotter) line(values []float64, color lipgloss.Color) {
	p.interpolate(values, func(col int, v float64, onPoint bool) {
		glyph := glyphLine
		if onPoint {
			glyph = glyphPoint
		}
		p.canvas.set(p.row(v), col, glyph, color)
	})
}

func (p plotter) area(values []float64, color lipgloss.Color) {
	base := p.row(math.Max(p.lo, 0))
	p.interpolate(values, func(col int, v float64, _ bool) {
		top := p.row(v)
		from, to := min(top, base), max(top, base)
		for r := from; r <= to; r++ {
			p.canvas.set(r, col, glyphArea, color)
		}
		p.canvas.set(top, col, glyphPoint, color)
	})
}

func (p plotter) bars(values []float64, color lipgloss.Color) {
	base := p.row(math.Max(p.lo, 0))
	half := max(p.canvas.width/max(p.n, 1)/4, 0)
	for i, v := range values {
		if !usable(v) {
			continue
		}
		top := p.row(v)
		from, to := min(top, base), max(top, base)
		center := p.col(i)
		for col := center - half; col <= center+half; col++ {
			for r := from; r <= to; r++ {
				p.canvas.set(r, col, glyphBar, color)
			}
		}
	}
}

// xLabels places shortened labels under their columns, skipping any that
// would overlap the previous one.
func (p plotter) xLabels(labels []string) string {
	line := []rune(strings.Repeat(" ", p.canvas.width))
	next := 0
	for i, l := range labels {
		short := []rune(ShortMonth(l))
		start := p.col(i) - len(short)/2
		start = max(start, 0)
		if start+len(short) > len(line) {
			start = len(line) - len(short)
		}
		if start < next || start < 0 {
			continue
		}
		copy(line[start:], short)
		next = start + len(short) + 1
	}
	return string(line)
}
