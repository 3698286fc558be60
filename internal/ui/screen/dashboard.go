package screen

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/export"
	"github.com/rovshanmuradov/xau-dashboard/internal/performance"
	"github.com/rovshanmuradov/xau-dashboard/internal/report"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/component"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/router"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

// DashboardOptions configures the dashboard screen.
type DashboardOptions struct {
	Dataset dataset.Dataset
	Factors performance.FactorSource
	Theme   style.Theme
	Export  export.Options
	Logger  *zap.Logger
}

// Dashboard is the main screen: button bar, the selected view and its
// summary cards or tables.
type Dashboard struct {
	width  int
	height int
	keyMap ui.KeyMap
	logger *zap.Logger

	data       dataset.Dataset
	factors    performance.FactorSource
	selector   *view.Selector
	renderer   *view.Renderer
	rendering  view.Rendering
	exporter   *export.Exporter
	exportOpts export.Options

	theme  style.Theme
	styles style.Styles

	buttons *component.ButtonBar
	chart   *component.Chart
	radar   *component.Radar
	helpBar *component.HelpBar

	status    string
	statusErr bool
}

// NewDashboard creates the dashboard on the default view.
func NewDashboard(opts DashboardOptions) *Dashboard {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	factors := opts.Factors
	if factors == nil {
		factors = performance.NewRandomFactors()
	}
	theme := opts.Theme
	if theme.Name == "" {
		theme = style.GoldTheme
	}

	styles := style.ForTheme(theme)
	keyMap := ui.DefaultKeyMap()
	d := &Dashboard{
		width:      100,
		height:     40,
		keyMap:     keyMap,
		logger:     log.Named("dashboard"),
		data:       opts.Dataset,
		factors:    factors,
		selector:   view.NewSelector(),
		renderer:   view.NewRenderer(opts.Dataset, factors),
		exporter:   export.NewExporter(log),
		exportOpts: opts.Export,
		theme:      theme,
		styles:     styles,
		buttons:    component.NewButtonBar(styles),
		chart:      component.NewChart(styles),
		radar:      component.NewRadar(styles),
		helpBar:    component.NewHelpBar(styles).SetKeyBindings(keyMap.ContextualHelp(ui.RouteDashboard)),
	}
	d.rerender()
	return d
}

// Init initializes the dashboard
func (d *Dashboard) Init() tea.Cmd {
	return nil
}

// Update handles key presses and command results
func (d *Dashboard) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ExportedMsg:
		if msg.Err != nil {
			d.setStatus("Export failed: "+msg.Err.Error(), true)
		} else {
			d.setStatus("Exported to "+msg.Path, false)
		}
		return d, nil

	case ui.ThemeChangedMsg:
		d.SetTheme(msg.Theme)
		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) (router.Screen, tea.Cmd) {
	for i, binding := range d.keyMap.ViewKeys() {
		if key.Matches(msg, binding) {
			d.selector.SelectIndex(i)
			d.rerender()
			return d, nil
		}
	}

	switch {
	case key.Matches(msg, d.keyMap.Quit):
		return d, tea.Quit
	case key.Matches(msg, d.keyMap.Next):
		d.selector.Next()
		d.rerender()
	case key.Matches(msg, d.keyMap.Prev):
		d.selector.Prev()
		d.rerender()
	case key.Matches(msg, d.keyMap.Rerender):
		d.rerender()
		d.setStatus("Re-rendered "+view.Label(d.selector.Selected()), false)
	case key.Matches(msg, d.keyMap.Export):
		d.setStatus("Exporting...", false)
		return d, d.exportCmd()
	case key.Matches(msg, d.keyMap.Theme):
		next := style.NextTheme(d.theme)
		return d, func() tea.Msg { return ui.ThemeChangedMsg{Theme: next} }
	case key.Matches(msg, d.keyMap.Logs):
		return d, router.Navigate(ui.RouteLogs)
	}
	return d, nil
}

// Select switches to id. Ids outside the option list show the placeholder.
func (d *Dashboard) Select(id view.ID) {
	d.selector.Select(id)
	d.rerender()
}

// Selected returns the selected view id
func (d *Dashboard) Selected() view.ID {
	return d.selector.Selected()
}

// Current returns the rendering on screen
func (d *Dashboard) Current() view.Rendering {
	return d.rendering
}

// Theme returns the active theme
func (d *Dashboard) Theme() style.Theme {
	return d.theme
}

// Status returns the last status line
func (d *Dashboard) Status() string {
	return d.status
}

// SetTheme restyles every component
func (d *Dashboard) SetTheme(theme style.Theme) {
	d.theme = theme
	d.styles = style.ForTheme(theme)
	d.buttons.SetStyles(d.styles)
	d.chart.SetStyles(d.styles)
	d.radar.SetStyles(d.styles)
	d.helpBar.SetStyles(d.styles)
	d.logger.Debug("Theme changed", zap.String("theme", theme.Name))
}

func (d *Dashboard) rerender() {
	d.rendering = d.renderer.Render(d.selector.Selected())
	d.buttons.SetSelected(d.rendering.ID)
	if d.rendering.Chart != nil {
		d.chart.SetChart(d.rendering.Chart)
		d.radar.SetSpokes(d.rendering.Chart.Spokes)
	}
}

func (d *Dashboard) setStatus(s string, isErr bool) {
	d.status = s
	d.statusErr = isErr
}

// exportCmd builds a fresh report and writes it off the update loop.
func (d *Dashboard) exportCmd() tea.Cmd {
	r := report.Build(d.data, d.factors, time.Now())
	exporter, opts := d.exporter, d.exportOpts
	return func() tea.Msg {
		path, err := exporter.Export(r, opts)
		return ui.ExportedMsg{Path: path, Err: err}
	}
}

// View renders the dashboard
func (d *Dashboard) View() string {
	var b strings.Builder

	b.WriteString(d.styles.Title.Render(d.data.Meta.Title))
	b.WriteString("\n")
	b.WriteString(d.styles.Subtitle.Render(d.data.Meta.Subtitle))
	b.WriteString("\n\n")
	b.WriteString(d.buttons.SetWidth(d.width).View())
	b.WriteString("\n\n")
	b.WriteString(d.renderContent())
	b.WriteString("\n")
	b.WriteString(d.styles.Footer.Render(d.data.Meta.Footer))

	if d.status != "" {
		b.WriteString("\n")
		if d.statusErr {
			b.WriteString(d.styles.Error.Render(d.status))
		} else {
			b.WriteString(d.styles.Success.Render(d.status))
		}
	}

	b.WriteString("\n")
	b.WriteString(d.helpBar.SetWidth(d.width).View())
	return b.String()
}

func (d *Dashboard) renderContent() string {
	r := d.rendering
	if r.IsPlaceholder() || r.Chart == nil {
		return d.styles.Panel.Render(d.styles.Muted.Render(view.Placeholder))
	}

	title := d.styles.ChartTitle.Render(r.Title)
	inner := max(d.width-4, 20)

	if r.Chart.Kind == view.ChartRadar {
		radarWidth := style.AdaptiveWidth(d.width, 45)
		radar := d.styles.Panel.Render(d.radar.SetWidth(radarWidth - 4).View())
		tables := component.StatTables(d.styles, inner-lipgloss.Width(radar), r.TablesTitle, r.Tables)
		return title + "\n" + style.AdaptiveJoinHorizontal(d.width, radar, tables)
	}

	chartHeight := max(d.height-18, 8)
	chart := d.styles.Panel.Render(d.chart.SetSize(inner-2, chartHeight).View())
	if axis := r.Chart.YAxis.Label; axis != "" {
		title = d.styles.ChartTitle.Render(fmt.Sprintf("%s  (%s)", r.Title, axis))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, chart, component.Cards(d.styles, d.width, r.Cards))
}

// SetSize sets the screen dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
}
