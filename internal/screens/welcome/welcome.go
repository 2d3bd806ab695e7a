package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/router"
	"github.com/abhisek/certcheck/internal/screen"
	"github.com/abhisek/certcheck/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	// revealStep is how long each component waits before it is ticked off.
	revealStep = 300 * time.Millisecond
	settleDur  = 1500 * time.Millisecond
)

type tickMsg time.Time

// WelcomeScreen ticks off the qualification's components one by one, then
// shows the active policy's rules until a key is pressed.
type WelcomeScreen struct {
	policy      string
	cfg         eligibility.Config
	components  []eligibility.ComponentKind
	homeFactory func() screen.Screen

	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen for the named policy. Any key replaces it with
// the screen produced by homeFactory.
func New(policy string, cfg eligibility.Config, homeFactory func() screen.Screen) *WelcomeScreen {
	if policy == "" {
		policy = "custom"
	}
	return &WelcomeScreen{
		policy:      policy,
		cfg:         cfg,
		components:  eligibility.AllComponents(),
		homeFactory: homeFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// revealed is the number of components ticked off so far.
func (w *WelcomeScreen) revealed() int {
	n := int(w.elapsed / revealStep)
	if n > len(w.components) {
		return len(w.components)
	}
	return n
}

func (w *WelcomeScreen) settled() bool {
	return w.elapsed >= settleDur
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.settled() {
			return w, nil
		}
		w.elapsed += tickInterval
		if w.settled() {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// PolicyLines describes the policy in the words shown on the splash.
func (w *WelcomeScreen) PolicyLines() []string {
	lines := []string{
		"policy: " + w.policy,
		resitAllowance(w.cfg.MaxResitsPerComponent),
	}
	if w.cfg.RequireAllComponents {
		lines = append(lines, fmt.Sprintf("all %d components required", len(w.components)))
	} else {
		lines = append(lines, "external assessment required")
	}
	if w.cfg.DateBased {
		lines = append(lines, "attempts entered by date")
	} else {
		lines = append(lines, "attempts entered by series")
	}
	if w.cfg.RequireCurrentSession {
		lines = append(lines, "current series required")
	}
	return lines
}

func resitAllowance(n int) string {
	switch n {
	case 0:
		return "no resits allowed"
	case 1:
		return "up to 1 resit per component"
	default:
		return fmt.Sprintf("up to %d resits per component", n)
	}
}

func (w *WelcomeScreen) renderChecklist() string {
	done := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	pending := lipgloss.NewStyle().Foreground(theme.Muted)

	n := w.revealed()
	rows := make([]string, len(w.components))
	for i, c := range w.components {
		if i < n {
			rows[i] = done.Render("✓ " + c.DisplayName())
		} else {
			rows[i] = pending.Render("· " + c.DisplayName())
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 2).
		Render(strings.Join(rows, "\n"))
}

func (w *WelcomeScreen) renderPolicy() string {
	lines := w.PolicyLines()
	head := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(lines[0])
	rest := make([]string, len(lines)-1)
	for i, l := range lines[1:] {
		rest[i] = theme.Body.Render(l)
	}
	return head + "\n" + strings.Join(rest, "\n")
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderChecklist()}

	if w.revealed() == len(w.components) {
		sections = append(sections, "", RenderBanner(width), "",
			theme.Subtitle.Render("Check your qualification eligibility"))
	}

	if w.settled() {
		hint := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue")
		sections = append(sections, "", w.renderPolicy(), "", hint)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
