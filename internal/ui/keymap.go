package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding
	Logs key.Binding

	// View selection
	View1    key.Binding
	View2    key.Binding
	View3    key.Binding
	View4    key.Binding
	View5    key.Binding
	Next     key.Binding
	Prev     key.Binding
	Rerender key.Binding
	Export   key.Binding
	Theme    key.Binding

	// Logs
	Up          key.Binding
	Down        key.Binding
	FilterInfo  key.Binding
	FilterWarn  key.Binding
	FilterError key.Binding
	FilterAll   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Logs: key.NewBinding(
			key.WithKeys("f12", "L"),
			key.WithHelp("F12/L", "logs"),
		),

		View1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "balances")),
		View2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "cumulative")),
		View3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "monthly")),
		View4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "vs gold")),
		View5: key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "risk")),
		Next: key.NewBinding(
			key.WithKeys("tab", "right"),
			key.WithHelp("tab/→", "next view"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("shift+tab/←", "prev view"),
		),
		Rerender: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "re-render"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		FilterInfo: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "info"),
		),
		FilterWarn: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("F2", "warn"),
		),
		FilterError: key.NewBinding(
			key.WithKeys("f3"),
			key.WithHelp("F3", "error"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("f4"),
			key.WithHelp("F4", "all"),
		),
	}
}

// ViewKeys returns the direct selection bindings in view order.
func (k KeyMap) ViewKeys() []key.Binding {
	return []key.Binding{k.View1, k.View2, k.View3, k.View4, k.View5}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Quit}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteDashboard:
		return []key.Binding{k.Next, k.Prev, k.Rerender, k.Export, k.Theme, k.Logs, k.Quit}
	case RouteLogs:
		return []key.Binding{k.Up, k.Down, k.FilterInfo, k.FilterWarn, k.FilterError, k.FilterAll, k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}
