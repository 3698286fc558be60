package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/xau-dashboard/internal/dataset"
	"github.com/rovshanmuradov/xau-dashboard/internal/ui/style"
	"github.com/rovshanmuradov/xau-dashboard/internal/view"
)

// Cards renders summary cards in as many rows as the width needs.
func Cards(styles style.Styles, width int, cards []view.Card) string {
	boxes := make([]string, len(cards))
	for i, c := range cards {
		boxes[i] = styles.Card.Render(
			styles.CardLabel.Render(c.Label) + "\n" + styles.CardValue.Render(c.Value))
	}
	return flow(width, boxes)
}

// StatTables renders key statistics tables side by side where they fit.
func StatTables(styles style.Styles, width int, title string, tables []dataset.StatTable) string {
	blocks := make([]string, len(tables))
	for i, t := range tables {
		labelWidth := 0
		for _, r := range t.Rows {
			labelWidth = max(labelWidth, lipgloss.Width(r.Label))
		}

		lines := []string{styles.TableTitle.Render(t.Title)}
		for _, r := range t.Rows {
			lines = append(lines,
				styles.TableLabel.Render(r.Label+strings.Repeat(" ", labelWidth-lipgloss.Width(r.Label)))+"  "+
					styles.TableValue.Render(r.Value))
		}
		blocks[i] = styles.Panel.Render(strings.Join(lines, "\n"))
	}

	out := flow(width, blocks)
	if title != "" {
		out = styles.ChartTitle.Render(title) + "\n" + out
	}
	return out
}

// flow joins blocks horizontally, starting a new row when width runs out.
func flow(width int, blocks []string) string {
	var rows []string
	var row []string
	used := 0
	for _, b := range blocks {
		w := lipgloss.Width(b)
		if used+w > width && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, b)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
