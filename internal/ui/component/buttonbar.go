package component

import (
	"fmt"

	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

// ButtonBar renders the view options with the selected one highlighted.
type ButtonBar struct {
	options  []view.Option
	selected view.ID
	width    int
	styles   style.Styles
}

// NewButtonBar creates a bar over view.Options
func NewButtonBar(styles style.Styles) *ButtonBar {
	return &ButtonBar{options: view.Options(), width: 80, styles: styles}
}

// SetSelected marks the selected option
func (b *ButtonBar) SetSelected(id view.ID) *ButtonBar {
	b.selected = id
	return b
}

// SetWidth sets the available width
func (b *ButtonBar) SetWidth(width int) *ButtonBar {
	b.width = width
	return b
}

// SetStyles recolors the bar after a theme change
func (b *ButtonBar) SetStyles(styles style.Styles) *ButtonBar {
	b.styles = styles
	return b
}

// View renders the bar, wrapping onto more lines when narrow
func (b *ButtonBar) View() string {
	buttons := make([]string, len(b.options))
	for i, o := range b.options {
		label := fmt.Sprintf("%d %s", i+1, o.Label)
		if o.ID == b.selected {
			buttons[i] = b.styles.ButtonActive.Render(label)
		} else {
			buttons[i] = b.styles.Button.Render(label)
		}
	}
	return flow(b.width, buttons)
}
