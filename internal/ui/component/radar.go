package component

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

// Radar shows radar spokes as one gauge per metric, filled to value over the
// metric's own scale maximum.
type Radar struct {
	spokes []view.Spoke
	width  int
	styles style.Styles
}

// NewRadar creates a new radar component
func NewRadar(styles style.Styles) *Radar {
	return &Radar{width: 60, styles: styles}
}

// SetSpokes sets the metrics to draw
func (r *Radar) SetSpokes(spokes []view.Spoke) *Radar {
	r.spokes = spokes
	return r
}

// SetWidth sets the total width
func (r *Radar) SetWidth(width int) *Radar {
	r.width = width
	return r
}

// SetStyles recolors the radar after a theme change
func (r *Radar) SetStyles(styles style.Styles) *Radar {
	r.styles = styles
	return r
}

// Fill returns the share of the gauge to fill, clamped to [0, 1].
func Fill(s view.Spoke) float64 {
	if s.Max <= 0 || math.IsNaN(s.Value) {
		return 0
	}
	return math.Min(math.Max(s.Value/s.Max, 0), 1)
}

// View renders the radar
func (r *Radar) View() string {
	if len(r.spokes) == 0 {
		return r.styles.Muted.Render("no metrics")
	}

	nameWidth := 0
	for _, s := range r.spokes {
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}
	valueWidth := len("00.00 / 00")
	gaugeWidth := max(r.width-nameWidth-valueWidth-4, 5)

	fill := lipgloss.NewStyle().Foreground(r.styles.Palette.Strategy)
	empty := lipgloss.NewStyle().Foreground(r.styles.Palette.Grid)

	lines := make([]string, len(r.spokes))
	for i, s := range r.spokes {
		filled := int(math.Round(Fill(s) * float64(gaugeWidth)))
		gauge := fill.Render(strings.Repeat("█", filled)) + empty.Render(strings.Repeat("░", gaugeWidth-filled))
		value := fmt.Sprintf("%5.2f / %-2.0f", s.Value, s.Max)
		lines[i] = fmt.Sprintf("%s  %s  %s",
			r.styles.TableLabel.Render(fmt.Sprintf("%-*s", nameWidth, s.Name)),
			gauge,
			r.styles.TableValue.Render(value))
	}
	return strings.Join(lines, "\n")
}
