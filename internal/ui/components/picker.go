package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/ui/theme"
)

// Picker is a horizontal single-choice selector. Selected is -1 until the
// user picks an option.
type Picker struct {
	Label    string
	Options  []string
	Selected int
}

// NewPicker creates a picker with nothing selected.
func NewPicker(label string, options []string) Picker {
	return Picker{Label: label, Options: options, Selected: -1}
}

// Update cycles the selection with left/right.
func (p Picker) Update(msg tea.Msg) (Picker, bool) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(p.Options) == 0 {
		return p, false
	}

	switch kmsg.String() {
	case "left", "h":
		if p.Selected <= 0 {
			p.Selected = len(p.Options) - 1
		} else {
			p.Selected--
		}
		return p, true
	case "right", "l", "space":
		p.Selected = (p.Selected + 1) % len(p.Options)
		return p, true
	case "backspace", "delete":
		if p.Selected != -1 {
			p.Selected = -1
			return p, true
		}
	}
	return p, false
}

// View renders the options with the chosen one highlighted.
func (p Picker) View(focused bool) string {
	prefix := "  "
	style := theme.Unselected
	if focused {
		prefix = "▸ "
		style = theme.Selected
	}

	parts := make([]string, len(p.Options))
	for i, opt := range p.Options {
		if i == p.Selected {
			parts[i] = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("(•) " + opt)
		} else {
			parts[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("( ) " + opt)
		}
	}
	return style.Render(prefix+p.Label+": ") + strings.Join(parts, "  ")
}
