package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/ui/theme"
)

// ResitGauge shows how many of a component's allowed resits are used.
type ResitGauge struct {
	Label string
	Used  int
	Cap   int
	Width int
}

// View renders the gauge as a bar followed by "used/cap". Slots beyond the
// cap render in the error color.
func (g ResitGauge) View() string {
	result := lipgloss.NewStyle().Foreground(theme.Text).Render(g.Label) + "  "

	slots := g.Cap
	if g.Used > slots {
		slots = g.Used
	}
	if slots == 0 {
		return result + lipgloss.NewStyle().Foreground(theme.TextDim).Render("no resits allowed")
	}

	cell := g.Width / slots
	if cell < 2 {
		cell = 2
	}

	ok := lipgloss.NewStyle().Background(theme.Secondary)
	over := lipgloss.NewStyle().Background(theme.Error)
	empty := lipgloss.NewStyle().Background(theme.Border)

	for i := 0; i < slots; i++ {
		block := strings.Repeat(" ", cell-1)
		switch {
		case i >= g.Cap:
			result += over.Render(block)
		case i < g.Used:
			result += ok.Render(block)
		default:
			result += empty.Render(block)
		}
		result += " "
	}

	countStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	if g.Used > g.Cap {
		countStyle = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	}
	return result + countStyle.Render(fmt.Sprintf("%d/%d", g.Used, g.Cap))
}
