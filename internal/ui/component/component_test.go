package component

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

func testStyles() style.Styles {
	return style.ForTheme(style.GoldTheme)
}

func TestShortMonth(t *testing.T) {
	assert.Equal(t, "Jan'24", ShortMonth("Jan 2024"))
	assert.Equal(t, "Feb'25", ShortMonth("Feb 2025"))
	assert.Equal(t, "Q1", ShortMonth("Q1"))
}

func TestAxisValue(t *testing.T) {
	assert.Equal(t, "$260,000", AxisValue("usd", 260000))
	assert.Equal(t, "160%", AxisValue("percent", 160))
	assert.Equal(t, "1.5", AxisValue("", 1.5))
}

func TestChartViewShowsLegend(t *testing.T) {
	r := view.NewRenderer(dataset.Default(), performance.FixedFactor(0.5))

	for _, id := range []view.ID{view.Balances, view.Cumulative, view.Monthly, view.Comparison} {
		rendering := r.Render(id)
		out := NewChart(testStyles()).SetChart(rendering.Chart).SetSize(100, 18).View()
		for _, s := range rendering.Chart.Series {
			assert.Contains(t, out, s.Name, "view %s", id)
		}
		assert.Contains(t, out, "Jan'24", "view %s", id)
	}
}

func TestChartViewSmallAndDegenerate(t *testing.T) {
	ch := &view.Chart{
		Kind:   view.ChartLine,
		Labels: []string{"Jan 2024"},
		Series: []view.Series{{Name: "only", Style: view.StyleLine, Values: []float64{math.Inf(1)}}},
		YAxis:  view.Axis{Auto: true},
	}

	assert.NotPanics(t, func() {
		NewChart(testStyles()).SetChart(ch).SetSize(1, 1).View()
	})
	assert.Contains(t, NewChart(testStyles()).View(), "no data")
}

func TestChartHeight(t *testing.T) {
	r := view.NewRenderer(dataset.Default(), performance.FixedFactor(0.5))
	out := NewChart(testStyles()).SetChart(r.Render(view.Balances).Chart).SetSize(80, 12).View()

	// plot rows, x labels and legend
	assert.Equal(t, 12-3+2, len(strings.Split(out, "\n")))
}

func TestRadarFill(t *testing.T) {
	assert.InDelta(t, 0.5, Fill(view.Spoke{Value: 5, Max: 10}), 1e-9)
	assert.Equal(t, 1.0, Fill(view.Spoke{Value: 15, Max: 10}))
	assert.Equal(t, 0.0, Fill(view.Spoke{Value: -1, Max: 10}))
	assert.Equal(t, 0.0, Fill(view.Spoke{Value: 1, Max: 0}))
}

func TestRadarView(t *testing.T) {
	spokes := view.NewRenderer(dataset.Default(), performance.FixedFactor(0.5)).Render(view.Risk).Chart.Spokes
	require.NotEmpty(t, spokes)

	out := NewRadar(testStyles()).SetSpokes(spokes).SetWidth(70).View()
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, len(spokes))
	for _, s := range spokes {
		assert.Contains(t, out, s.Name)
	}

	assert.Contains(t, NewRadar(testStyles()).View(), "no metrics")
}

func TestButtonBarWraps(t *testing.T) {
	bar := NewButtonBar(testStyles()).SetSelected(view.Monthly)

	wide := bar.SetWidth(200).View()
	for i, o := range view.Options() {
		assert.Contains(t, wide, o.Label)
		assert.Contains(t, wide, string(rune('1'+i)))
	}
	assert.Equal(t, 1, lipgloss.Height(wide))

	narrow := bar.SetWidth(30).View()
	assert.Greater(t, lipgloss.Height(narrow), 1)
}

func TestCardsAndTables(t *testing.T) {
	cards := []view.Card{{Label: "Initial Balance", Value: "$100,000.00"}, {Label: "Total Return", Value: "152.53%"}}
	out := Cards(testStyles(), 120, cards)
	assert.Contains(t, out, "Initial Balance")
	assert.Contains(t, out, "152.53%")

	tables := dataset.Default().KeyStats
	out = StatTables(testStyles(), 200, "Key Performance Statistics", tables)
	assert.Contains(t, out, "Key Performance Statistics")
	for _, tb := range tables {
		assert.Contains(t, out, tb.Title)
	}
}

func TestHelpBarWraps(t *testing.T) {
	bar := NewHelpBar(testStyles()).SetKeyBindings(ui.DefaultKeyMap().ContextualHelp(ui.RouteDashboard))

	out := bar.SetWidth(200).View()
	assert.Contains(t, out, "quit")

	narrow := bar.SetWidth(30).View()
	assert.Greater(t, lipgloss.Height(narrow), lipgloss.Height(out))
}
