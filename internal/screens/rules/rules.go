package rules

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/screen"
	"github.com/abhisek/certcheck/internal/ui/components"
	"github.com/abhisek/certcheck/internal/ui/theme"
)

// RulesScreen lists the key rules of the active policy.
type RulesScreen struct {
	policy string
	rules  []string
}

var _ screen.Screen = (*RulesScreen)(nil)

// New creates a RulesScreen for cfg.
func New(cfg eligibility.Config, policy string) *RulesScreen {
	return &RulesScreen{policy: policy, rules: eligibility.KeyRules(cfg)}
}

func (r *RulesScreen) Init() tea.Cmd {
	return nil
}

func (r *RulesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return r, nil
}

func (r *RulesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Policy: " + r.policy))
	b.WriteString("\n\n")
	bullet := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 4)
	for i, rule := range r.rules {
		b.WriteString(bullet.Render(fmt.Sprintf("%d. %s", i+1, rule)))
		b.WriteString("\n")
	}

	return components.Center(components.Card("Key Rules", b.String(), cw), width, height)
}

func (r *RulesScreen) Title() string {
	return "Key Rules"
}
