package router

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/rovshanmuradov/xau-dashboard/internal/ui"
)

type fakeScreen struct {
	name          string
	inits         int
	width, height int
	lastMsg       tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	f.lastMsg = msg
	return f, nil
}

func (f *fakeScreen) View() string { return f.name }

func (f *fakeScreen) SetSize(width, height int) {
	f.width, f.height = width, height
}

func TestRouterNavigation(t *testing.T) {
	root := &fakeScreen{name: "dashboard"}
	logs := &fakeScreen{name: "logs"}
	r := New(root, func(route ui.Route) (Screen, bool) {
		if route == ui.RouteLogs {
			return logs, true
		}
		return nil, false
	})

	r.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, root.width)

	r.Update(ui.RouterMsg{To: ui.RouteLogs})
	assert.Equal(t, 2, r.Depth())
	assert.Equal(t, "logs", r.View())
	assert.Equal(t, 40, logs.height)
	assert.True(t, r.CanGoBack())

	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, r.Depth())
	assert.Equal(t, "dashboard", r.View())
	assert.Equal(t, 1, root.inits)

	// esc on the root screen is forwarded
	r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, r.Depth())
	assert.IsType(t, tea.KeyMsg{}, root.lastMsg)
}

func TestRouterUnknownRoute(t *testing.T) {
	r := New(&fakeScreen{name: "dashboard"}, func(ui.Route) (Screen, bool) { return nil, false })
	r.Update(ui.RouterMsg{To: ui.Route(99)})
	assert.Equal(t, 1, r.Depth())
}

func TestNavigate(t *testing.T) {
	msg := Navigate(ui.RouteLogs)()
	assert.Equal(t, ui.RouterMsg{To: ui.RouteLogs}, msg)
}
