package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/ui/theme"
)

// Checkbox renders a labelled on/off field. focused highlights the row.
func Checkbox(label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	prefix := "  "
	style := theme.Unselected
	if focused {
		prefix = "▸ "
		style = theme.Selected
	}
	mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render(box)
	if checked {
		mark = lipgloss.NewStyle().Foreground(theme.Success).Render(box)
	}
	return style.Render(prefix) + mark + " " + style.Render(label)
}
