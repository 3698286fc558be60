package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds every lipgloss style the screens use. It is rebuilt when the
// theme changes.
type Styles struct {
	Palette Palette

	// Header
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Footer   lipgloss.Style

	// Buttons
	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	// Panels
	Panel      lipgloss.Style
	ChartTitle lipgloss.Style
	AxisLabel  lipgloss.Style
	Legend     lipgloss.Style

	// Cards
	Card      lipgloss.Style
	CardLabel lipgloss.Style
	CardValue lipgloss.Style

	// Tables
	TableTitle lipgloss.Style
	TableLabel lipgloss.Style
	TableValue lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Help    lipgloss.Style
}

// NewStyles creates the styles for a palette
func NewStyles(palette Palette) Styles {
	return Styles{
		Palette: palette,

		Title: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true).
			Padding(0, 1),

		Subtitle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Italic(true).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(palette.Text).
			Background(palette.BackgroundAlt).
			Padding(0, 1).
			MarginRight(1),

		ButtonActive: lipgloss.NewStyle().
			Foreground(palette.Background).
			Background(palette.Accent).
			Bold(true).
			Padding(0, 1).
			MarginRight(1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Grid).
			Padding(0, 1),

		ChartTitle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true).
			MarginBottom(1),

		AxisLabel: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		Legend: lipgloss.NewStyle().
			Foreground(palette.Text),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Secondary).
			Padding(0, 1).
			MarginRight(1),

		CardLabel: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		CardValue: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),

		TableTitle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true),

		TableLabel: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		TableValue: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		Help: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Italic(true),
	}
}

// ForTheme is NewStyles(NewPalette(t)).
func ForTheme(t Theme) Styles {
	return NewStyles(NewPalette(t))
}

// AdaptiveJoinHorizontal stacks blocks vertically on narrow screens
func AdaptiveJoinHorizontal(width int, blocks ...string) string {
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

// AdaptiveWidth returns percentage of width, or nearly all of it on narrow screens
func AdaptiveWidth(width, percentage int) int {
	if width < 80 {
		return width - 4
	}
	return (width * percentage) / 100
}
