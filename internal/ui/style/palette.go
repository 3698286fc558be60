package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of hex colors. The PNG renderer reads the hex values
// directly; the terminal UI turns them into a Palette.
type Theme struct {
	Name           string
	Strategy       string // strategy series
	Gold           string // gold benchmark series
	Outperformance string // outperformance bars
	Background     string
	Surface        string // cards and panels
	Grid           string
	Text           string
	TextMuted      string
	Accent         string // selected button
	Positive       string
	Negative       string
}

// Theme names accepted by ThemeByName.
const (
	ThemeGoldName = "gold"
	ThemeNavyName = "navy"
)

// GoldTheme is the light gold-on-gray look.
var GoldTheme = Theme{
	Name:           ThemeGoldName,
	Strategy:       "#FFD700",
	Gold:           "#B8860B",
	Outperformance: "#8884d8",
	Background:     "#F9FAFB",
	Surface:        "#F3F4F6",
	Grid:           "#D1D5DB",
	Text:           "#1F2937",
	TextMuted:      "#4B5563",
	Accent:         "#2563EB",
	Positive:       "#16A34A",
	Negative:       "#DC2626",
}

// NavyTheme is the neon-on-navy look.
var NavyTheme = Theme{
	Name:           ThemeNavyName,
	Strategy:       "#46feff",
	Gold:           "#32C7F0",
	Outperformance: "#4A90E2",
	Background:     "#0D1B2A",
	Surface:        "#1E3A5F",
	Grid:           "#1E3A5F",
	Text:           "#FFFFFF",
	TextMuted:      "#8FA3BF",
	Accent:         "#46feff",
	Positive:       "#2AFFAA",
	Negative:       "#FF5555",
}

// Themes lists the available themes in toggle order.
func Themes() []Theme {
	return []Theme{GoldTheme, NavyTheme}
}

// ThemeByName looks a theme up case-insensitively.
func ThemeByName(name string) (Theme, error) {
	for _, t := range Themes() {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("unknown theme %q", name)
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	themes := Themes()
	for i, th := range themes {
		if th.Name == t.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// Palette provides a centralized color management
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color

	Background    lipgloss.Color
	BackgroundAlt lipgloss.Color
	Grid          lipgloss.Color
	Text          lipgloss.Color
	TextMuted     lipgloss.Color

	Strategy       lipgloss.Color
	Gold           lipgloss.Color
	Outperformance lipgloss.Color
}

// NewPalette converts a theme into terminal colors.
func NewPalette(t Theme) Palette {
	return Palette{
		Primary:   lipgloss.Color(t.Strategy),
		Secondary: lipgloss.Color(t.Gold),
		Accent:    lipgloss.Color(t.Accent),
		Success:   lipgloss.Color(t.Positive),
		Error:     lipgloss.Color(t.Negative),

		Background:    lipgloss.Color(t.Background),
		BackgroundAlt: lipgloss.Color(t.Surface),
		Grid:          lipgloss.Color(t.Grid),
		Text:          lipgloss.Color(t.Text),
		TextMuted:     lipgloss.Color(t.TextMuted),

		Strategy:       lipgloss.Color(t.Strategy),
		Gold:           lipgloss.Color(t.Gold),
		Outperformance: lipgloss.Color(t.Outperformance),
	}
}

// DefaultPalette returns the palette of the gold theme
func DefaultPalette() Palette {
	return NewPalette(GoldTheme)
}
