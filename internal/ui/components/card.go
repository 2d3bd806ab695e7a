package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for screen sections so
// stacked boxes line up.
func ContentWidth(frameWidth int) int {
	// Leave room for the border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 76 {
		w = 76
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(title, content string, cw int) string {
	body := content
	if title != "" {
		heading := lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Render(title)
		body = heading + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(body)
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
