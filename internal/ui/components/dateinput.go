package components

import (
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/ui/theme"
)

// DateLayout is the accepted date format.
const DateLayout = "2006-01-02"

// DateInput wraps bubbles/textinput for YYYY-MM-DD entry.
type DateInput struct {
	Model textinput.Model
	Label string
}

// NewDateInput creates an unfocused date input.
func NewDateInput(label string) DateInput {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.CharLimit = len(DateLayout)
	return DateInput{Model: ti, Label: label}
}

// Focus focuses the input and returns the cursor blink command.
func (d *DateInput) Focus() tea.Cmd {
	return d.Model.Focus()
}

// Blur removes focus.
func (d *DateInput) Blur() {
	d.Model.Blur()
}

// Update forwards messages to the text input, dropping any printable key
// that cannot appear in a date.
func (d DateInput) Update(msg tea.Msg) (DateInput, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()
		if key == "space" || (len(key) == 1 && key != "-" && (key[0] < '0' || key[0] > '9')) {
			return d, nil
		}
	}

	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	return d, cmd
}

// Value returns the raw text.
func (d DateInput) Value() string {
	return d.Model.Value()
}

// SetValue replaces the text.
func (d *DateInput) SetValue(s string) {
	d.Model.SetValue(s)
}

// Date parses the input. ok is false when the text is empty or not a
// valid calendar date.
func (d DateInput) Date() (time.Time, bool) {
	t, err := time.Parse(DateLayout, d.Model.Value())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// View renders the label, the input and a validity marker.
func (d DateInput) View(focused bool) string {
	prefix := "  "
	style := theme.Unselected
	if focused {
		prefix = "▸ "
		style = theme.Selected
	}

	view := style.Render(prefix+d.Label+": ") + d.Model.View()
	if d.Model.Value() != "" {
		if _, ok := d.Date(); ok {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}
