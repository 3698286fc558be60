package ui

import "github.com/rovshanmuradov/xau-dashboard/internal/ui/style"

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// ExportedMsg reports the outcome of an export started from the dashboard.
type ExportedMsg struct {
	Path string
	Err  error
}

// ThemeChangedMsg is sent after the theme has been toggled.
type ThemeChangedMsg struct {
	Theme style.Theme
}

// Route represents different screens in the application
type Route int

const (
	RouteDashboard Route = iota
	RouteLogs
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
