package screen

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/logger"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestDashboard(t *testing.T, src performance.FactorSource) *Dashboard {
	t.Helper()
	d := NewDashboard(DashboardOptions{
		Dataset: dataset.Default(),
		Factors: src,
		Theme:   style.GoldTheme,
		Export:  export.Options{Format: export.FormatJSON, OutputDir: t.TempDir()},
		Logger:  zap.NewNop(),
	})
	d.SetSize(120, 40)
	return d
}

func TestDashboardStartsOnBalances(t *testing.T) {
	d := newTestDashboard(t, performance.FixedFactor(0.5))

	assert.Equal(t, view.Balances, d.Selected())
	assert.Equal(t, view.ChartLine, d.Current().Chart.Kind)

	out := d.View()
	assert.Contains(t, out, "XAU Trading Strategy Performance Dashboard")
	assert.Contains(t, out, "Monthly Account Balances")
	assert.Contains(t, out, "$252,534.13")
}

func TestDashboardKeySelection(t *testing.T) {
	d := newTestDashboard(t, performance.FixedFactor(0.5))

	d.Update(runes("3"))
	assert.Equal(t, view.Monthly, d.Selected())
	assert.Equal(t, view.ChartComposed, d.Current().Chart.Kind)

	d.Update(runes("5"))
	assert.Equal(t, view.Risk, d.Selected())
	assert.Contains(t, d.View(), "Key Performance Statistics")

	d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, view.Balances, d.Selected(), "next wraps around")

	d.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, view.Risk, d.Selected())

	d.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, view.Comparison, d.Selected())
}

func TestDashboardEveryViewRenders(t *testing.T) {
	d := newTestDashboard(t, performance.FixedFactor(0.5))
	for _, o := range view.Options() {
		d.Select(o.ID)
		assert.NotPanics(t, func() { d.View() }, "view %s", o.ID)
	}
}

func TestDashboardUnknownViewShowsPlaceholder(t *testing.T) {
	d := newTestDashboard(t, performance.FixedFactor(0.5))
	d.Select(view.ID("volatility"))

	assert.True(t, d.Current().IsPlaceholder())
	assert.Contains(t, d.View(), view.Placeholder)

	d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, view.Balances, d.Selected())
}

func TestDashboardRerenderRedrawsBenchmark(t *testing.T) {
	d := newTestDashboard(t, performance.NewRandomFactors())
	d.Update(runes("3"))
	before := d.Current().Chart.Series

	d.Update(runes("r"))
	after := d.Current().Chart.Series

	assert.Equal(t, before[0].Values, after[0].Values, "strategy bars are fixed")
	assert.NotEqual(t, before[1].Values, after[1].Values, "gold line is redrawn")
	assert.Contains(t, d.Status(), "Re-rendered")
}

func TestDashboardThemeToggle(t *testing.T) {
	d := newTestDashboard(t, performance.FixedFactor(0.5))

	_, cmd := d.Update(runes("t"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, ui.ThemeChangedMsg{}, msg)

	d.Update(msg)
	assert.Equal(t, style.ThemeNavyName, d.Theme().Name)
}

func TestDashboardExport(t *testing.T) {
	d := newTestDashboard(t, performance.FixedFactor(0.5))

	_, cmd := d.Update(runes("e"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ui.ExportedMsg)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	_, err := os.Stat(msg.Path)
	require.NoError(t, err)

	d.Update(msg)
	assert.Contains(t, d.Status(), msg.Path)
}

func TestDashboardExportFailure(t *testing.T) {
	d := NewDashboard(DashboardOptions{
		Dataset: dataset.Default(),
		Factors: performance.FixedFactor(0.5),
		Export:  export.Options{Format: export.Format("pdf"), OutputDir: t.TempDir()},
	})

	_, cmd := d.Update(runes("e"))
	msg := cmd().(ui.ExportedMsg)
	require.ErrorIs(t, msg.Err, export.ErrUnsupportedFormat)

	d.Update(msg)
	assert.Contains(t, d.Status(), "Export failed")
}

func TestDashboardNavigatesToLogs(t *testing.T) {
	d := newTestDashboard(t, performance.FixedFactor(0.5))

	_, cmd := d.Update(tea.KeyMsg{Type: tea.KeyF12})
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteLogs}, cmd())
}

func TestLogsScreenFilters(t *testing.T) {
	buf, err := logger.NewLogBuffer(100, "", zap.NewNop())
	require.NoError(t, err)
	log, err := logger.CreateTUILoggerWithBuffer(true, buf)
	require.NoError(t, err)

	log.Info("Report exported", zap.String("file", "a.json"))
	log.Warn("Non-finite values replaced with zero")
	log.Error("Chart failed")

	s := NewLogsScreen(buf, style.NavyTheme)
	s.SetSize(100, 30)
	assert.Len(t, s.Visible(), 3)

	s.Update(tea.KeyMsg{Type: tea.KeyF2})
	assert.Equal(t, FilterWarn, s.Filter())
	require.Len(t, s.Visible(), 1)
	assert.Equal(t, "Non-finite values replaced with zero", s.Visible()[0].Message)

	s.Update(tea.KeyMsg{Type: tea.KeyF3})
	require.Len(t, s.Visible(), 1)
	assert.Contains(t, s.View(), "Chart failed")

	s.Update(tea.KeyMsg{Type: tea.KeyF4})
	assert.Len(t, s.Visible(), 3)
}

func TestLogsScreenPicksUpNewEntries(t *testing.T) {
	buf, err := logger.NewLogBuffer(100, "", zap.NewNop())
	require.NoError(t, err)

	s := NewLogsScreen(buf, style.GoldTheme)
	s.SetSize(100, 30)
	assert.Empty(t, s.Visible())
	assert.Contains(t, s.View(), "No log entries")

	require.NoError(t, buf.Add("info", "Server listening", nil))
	_, cmd := s.Update(logsTickMsg{})
	assert.NotNil(t, cmd, "tick is rescheduled")
	assert.Len(t, s.Visible(), 1)
}
