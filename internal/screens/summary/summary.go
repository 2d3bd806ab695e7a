package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/router"
	"github.com/abhisek/certcheck/internal/screen"
	"github.com/abhisek/certcheck/internal/ui/components"
	"github.com/abhisek/certcheck/internal/ui/layout"
	"github.com/abhisek/certcheck/internal/ui/theme"
)

// Report is everything the summary screen shows about one evaluation.
type Report struct {
	Policy   string
	Current  string // label of the current series, empty when not set
	Attempts []string
	Verdict  eligibility.Verdict
}

// SummaryScreen displays a read-only eligibility report.
type SummaryScreen struct {
	report Report
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(report Report) *SummaryScreen {
	return &SummaryScreen{report: report}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.report
	cw := components.ContentWidth(width)

	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(dim.Render(fmt.Sprintf("Policy: %s", r.Policy)))
	b.WriteString("\n")
	current := r.Current
	if current == "" {
		current = "not set"
	}
	b.WriteString(dim.Render(fmt.Sprintf("Current series: %s", current)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(cw-4, 60)))
	b.WriteString(dim.Render("Attempts"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")

	if len(r.Attempts) == 0 {
		b.WriteString(theme.Hint.Render("  nothing recorded"))
		b.WriteString("\n")
	}
	for i, a := range r.Attempts {
		b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, a)))
		b.WriteString("\n")
	}

	sections := []string{
		components.Card("Eligibility Summary", b.String(), cw),
		components.VerdictBanner(r.Verdict, cw),
	}
	return components.Center(strings.Join(sections, "\n"), width, height)
}
