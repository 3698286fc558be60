package screen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/xau-dashboard/internal/logger"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/component"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/router"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
)

// Level filters accepted by SetFilter. An empty filter shows everything.
const (
	FilterAll   = ""
	FilterInfo  = "info"
	FilterWarn  = "warn"
	FilterError = "error"
)

// logsRefreshInterval is how often the screen re-reads the buffer.
const logsRefreshInterval = time.Second

type logsTickMsg time.Time

// LogsScreen shows the in-memory log buffer with level filters.
type LogsScreen struct {
	width  int
	height int
	keyMap ui.KeyMap
	styles style.Styles

	buffer   *logger.LogBuffer
	viewport viewport.Model
	helpBar  *component.HelpBar

	entries []logger.LogEntry
	filter  string
	follow  bool
}

// NewLogsScreen creates a logs screen over buffer.
func NewLogsScreen(buffer *logger.LogBuffer, theme style.Theme) *LogsScreen {
	styles := style.ForTheme(theme)
	keyMap := ui.DefaultKeyMap()

	s := &LogsScreen{
		keyMap:   keyMap,
		styles:   styles,
		buffer:   buffer,
		viewport: viewport.New(80, 20),
		helpBar:  component.NewHelpBar(styles).SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs)),
		follow:   true,
	}
	s.reload()
	return s
}

// Init starts the refresh ticker
func (s *LogsScreen) Init() tea.Cmd {
	return s.tick()
}

func (s *LogsScreen) tick() tea.Cmd {
	return tea.Tick(logsRefreshInterval, func(t time.Time) tea.Msg {
		return logsTickMsg(t)
	})
}

// Update handles screen updates
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case logsTickMsg:
		s.reload()
		return s, s.tick()

	case ui.ThemeChangedMsg:
		s.SetTheme(msg.Theme)
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit
		case key.Matches(msg, s.keyMap.FilterInfo):
			s.SetFilter(FilterInfo)
			return s, nil
		case key.Matches(msg, s.keyMap.FilterWarn):
			s.SetFilter(FilterWarn)
			return s, nil
		case key.Matches(msg, s.keyMap.FilterError):
			s.SetFilter(FilterError)
			return s, nil
		case key.Matches(msg, s.keyMap.FilterAll):
			s.SetFilter(FilterAll)
			return s, nil
		case key.Matches(msg, s.keyMap.Up):
			s.follow = false
			s.viewport.LineUp(1)
			return s, nil
		case key.Matches(msg, s.keyMap.Down):
			s.viewport.LineDown(1)
			s.follow = s.viewport.AtBottom()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return s, cmd
}

// SetFilter restricts the list to one level; FilterAll clears it.
func (s *LogsScreen) SetFilter(level string) {
	s.filter = level
	s.refreshContent()
}

// Filter returns the active level filter.
func (s *LogsScreen) Filter() string {
	return s.filter
}

// SetTheme recolors the screen
func (s *LogsScreen) SetTheme(theme style.Theme) {
	s.styles = style.ForTheme(theme)
	s.helpBar.SetStyles(s.styles)
	s.refreshContent()
}

// Visible returns the entries passing the current filter, oldest first.
func (s *LogsScreen) Visible() []logger.LogEntry {
	if s.filter == FilterAll {
		return s.entries
	}
	out := make([]logger.LogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if strings.EqualFold(e.Level, s.filter) {
			out = append(out, e)
		}
	}
	return out
}

func (s *LogsScreen) reload() {
	if s.buffer == nil {
		return
	}
	s.entries = s.buffer.GetRecentLogs(0)
	s.refreshContent()
}

func (s *LogsScreen) refreshContent() {
	visible := s.Visible()
	lines := make([]string, len(visible))
	for i, e := range visible {
		lines[i] = s.formatEntry(e)
	}
	if len(lines) == 0 {
		lines = []string{s.styles.Muted.Render("No log entries match the current filter.")}
	}
	s.viewport.SetContent(strings.Join(lines, "\n"))
	if s.follow {
		s.viewport.GotoBottom()
	}
}

func (s *LogsScreen) levelStyle(level string) lipgloss.Style {
	switch strings.ToLower(level) {
	case "error", "fatal", "panic", "dpanic":
		return s.styles.Error
	case "warn":
		return lipgloss.NewStyle().Foreground(s.styles.Palette.Secondary).Bold(true)
	case "debug":
		return s.styles.Muted
	default:
		return lipgloss.NewStyle().Foreground(s.styles.Palette.Text)
	}
}

func (s *LogsScreen) formatEntry(e logger.LogEntry) string {
	var b strings.Builder
	b.WriteString(s.styles.Muted.Render(e.Timestamp.Format("15:04:05")))
	b.WriteString(" ")
	b.WriteString(s.levelStyle(e.Level).Render(fmt.Sprintf("%-5s", strings.ToUpper(e.Level))))
	b.WriteString(" ")
	if e.Logger != "" {
		b.WriteString(s.styles.TableTitle.Render("[" + e.Logger + "]"))
		b.WriteString(" ")
	}
	b.WriteString(e.Message)

	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(s.styles.Muted.Render(fmt.Sprintf(" %s=%v", k, e.Fields[k])))
		}
	}
	return b.String()
}

// View renders the logs screen
func (s *LogsScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	title := s.styles.Title.Render("Application Logs")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		s.renderStatusBar(),
		s.styles.Panel.Width(s.width-2).Render(s.viewport.View()),
		s.helpBar.View(),
	)
}

func (s *LogsScreen) renderStatusBar() string {
	filter := "all"
	if s.filter != FilterAll {
		filter = s.filter
	}
	parts := []string{
		fmt.Sprintf("Entries: %d/%d", len(s.Visible()), len(s.entries)),
		"Filter: " + filter,
	}
	if s.buffer != nil {
		total, spilled := s.buffer.GetStats()
		parts = append(parts, fmt.Sprintf("Total: %d", total), fmt.Sprintf("Spilled: %d", spilled))
	}
	if s.follow {
		parts = append(parts, "Following")
	}
	return s.styles.Subtitle.Render(strings.Join(parts, " • "))
}

// SetSize sets the screen dimensions
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
	s.viewport.Width = max(width-6, 10)
	s.viewport.Height = max(height-9, 3)
	s.refreshContent()
}
