package matrix

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/router"
	"github.com/abhisek/certcheck/internal/screen"
	"github.com/abhisek/certcheck/internal/screens/summary"
	"github.com/abhisek/certcheck/internal/ui/components"
	"github.com/abhisek/certcheck/internal/ui/layout"
	"github.com/abhisek/certcheck/internal/ui/theme"
)

// cell is what the learner recorded for one component in one session.
type cell struct {
	initial bool
	resits  int
}

func (c cell) empty() bool {
	return !c.initial && c.resits == 0
}

func (c cell) label() string {
	switch {
	case c.empty():
		return "·"
	case c.initial && c.resits > 0:
		return fmt.Sprintf("I+R%d", c.resits)
	case c.initial:
		return "I"
	default:
		return fmt.Sprintf("R%d", c.resits)
	}
}

// MatrixScreen lets the user record attempts on a session × component grid
// and re-evaluates eligibility after every edit.
type MatrixScreen struct {
	evaluator  *eligibility.Evaluator
	policy     string
	timeline   eligibility.Timeline
	components []eligibility.ComponentKind

	cells    [][]cell // [session][component]
	row, col int
	current  *eligibility.Session
	verdict  eligibility.Verdict
}

var _ screen.Screen = (*MatrixScreen)(nil)
var _ screen.KeyHintProvider = (*MatrixScreen)(nil)

// New creates an empty MatrixScreen bound to the evaluator's timeline.
// policy is the display name of the evaluator's policy.
func New(e *eligibility.Evaluator, policy string) *MatrixScreen {
	tl := e.Config().Timeline
	comps := eligibility.AllComponents()
	cells := make([][]cell, tl.Len())
	for i := range cells {
		cells[i] = make([]cell, len(comps))
	}
	m := &MatrixScreen{
		evaluator:  e,
		policy:     policy,
		timeline:   tl,
		components: comps,
		cells:      cells,
	}
	m.reevaluate()
	return m
}

func (m *MatrixScreen) Init() tea.Cmd {
	return nil
}

func (m *MatrixScreen) Title() string {
	return "Session Matrix"
}

// Selection builds the SelectionSet currently shown in the grid.
func (m *MatrixScreen) Selection() eligibility.SelectionSet {
	set := eligibility.NewSelectionSet()
	if m.current != nil {
		cur := *m.current
		set.Current = &cur
	}
	for si, row := range m.cells {
		for ci, c := range row {
			comp := m.components[ci]
			if c.initial {
				set.Add(eligibility.Session(si), eligibility.InitialAttempt(comp))
			}
			for n := 0; n < c.resits; n++ {
				set.Add(eligibility.Session(si), eligibility.ResitAttempt(comp))
			}
		}
	}
	return set
}

// Verdict returns the verdict for the current grid.
func (m *MatrixScreen) Verdict() eligibility.Verdict {
	return m.verdict
}

func (m *MatrixScreen) report() summary.Report {
	sel := m.Selection()
	r := summary.Report{
		Policy:   m.policy,
		Attempts: m.evaluator.Chronology(sel),
		Verdict:  m.verdict,
	}
	if m.current != nil {
		r.Current = m.timeline.Label(*m.current)
	}
	return r
}

func (m *MatrixScreen) reevaluate() {
	m.verdict = m.evaluator.Evaluate(m.Selection())
}

func (m *MatrixScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	focused := &m.cells[m.row][m.col]
	switch kmsg.String() {
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
		return m, nil
	case "down", "j":
		if m.row < len(m.cells)-1 {
			m.row++
		}
		return m, nil
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
		return m, nil
	case "right", "l":
		if m.col < len(m.components)-1 {
			m.col++
		}
		return m, nil
	case "space", " ", "i":
		focused.initial = !focused.initial
	case "r", "+":
		focused.resits++
	case "-":
		if focused.resits > 0 {
			focused.resits--
		}
	case "x":
		*focused = cell{}
	case "c":
		s := eligibility.Session(m.row)
		if m.current != nil && *m.current == s {
			m.current = nil
		} else {
			m.current = &s
		}
	case "enter":
		report := m.report()
		return m, func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(report)}
		}
	case "C", "shift+c":
		for si := range m.cells {
			for ci := range m.cells[si] {
				m.cells[si][ci] = cell{}
			}
		}
		m.current = nil
	default:
		return m, nil
	}

	m.reevaluate()
	return m, nil
}

func (m *MatrixScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "Space", Description: "Initial"},
		{Key: "r/-", Description: "Resit ±"},
		{Key: "x", Description: "Clear cell"},
		{Key: "c", Description: "Current"},
		{Key: "Enter", Description: "Summary"},
		{Key: "Esc", Description: "Back"},
	}
}

func (m *MatrixScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		components.Card("Attempts", m.renderGrid(), cw),
		components.Card("Resits", m.renderGauges(cw), cw),
		components.VerdictBanner(m.verdict, cw),
	}
	return components.Center(strings.Join(sections, "\n"), width, height)
}

const (
	labelWidth = 20
	cellWidth  = 8
)

func (m *MatrixScreen) renderGrid() string {
	head := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	var b strings.Builder

	b.WriteString(head.Width(labelWidth).Render("Series"))
	for _, c := range m.components {
		b.WriteString(head.Width(cellWidth).Align(lipgloss.Center).Render(c.ShortName()))
	}
	b.WriteString("\n")

	for si, row := range m.cells {
		label := m.timeline.Label(eligibility.Session(si))
		if m.current != nil && int(*m.current) == si {
			label += " ◆"
		}
		labelStyle := theme.Unselected
		if si == m.row {
			labelStyle = theme.Selected
		}
		b.WriteString(labelStyle.Width(labelWidth).Render(label))

		for ci, c := range row {
			style := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center).Foreground(theme.Text)
			if c.empty() {
				style = style.Foreground(theme.Muted)
			}
			if si == m.row && ci == m.col {
				style = style.Background(theme.Primary).Foreground(theme.BgDark).Bold(true)
			}
			b.WriteString(style.Render(c.label()))
		}
		if si < len(m.cells)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("I = initial attempt, R = resits, ◆ = current series"))
	return b.String()
}

func (m *MatrixScreen) renderGauges(cw int) string {
	limit := m.evaluator.Config().MaxResitsPerComponent
	lines := make([]string, len(m.components))
	for ci, comp := range m.components {
		used := 0
		for si := range m.cells {
			used += m.cells[si][ci].resits
		}
		lines[ci] = components.ResitGauge{
			Label: comp.ShortName(),
			Used:  used,
			Cap:   limit,
			Width: cw / 2,
		}.View()
	}
	return strings.Join(lines, "\n")
}
