package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/router"
	"github.com/abhisek/certcheck/internal/screen"
	"github.com/abhisek/certcheck/internal/screens/dated"
	"github.com/abhisek/certcheck/internal/screens/matrix"
	"github.com/abhisek/certcheck/internal/screens/rules"
	"github.com/abhisek/certcheck/internal/ui/components"
)

// Menu labels, in display order.
const (
	LabelMatrix = "SESSION MATRIX"
	LabelDated  = "DATE ENTRY"
	LabelRules  = "KEY RULES"
	LabelQuit   = "QUIT"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	policy     string
	cfg        eligibility.Config
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. The entry screen matching the policy's
// input modality is preselected.
func New(e *eligibility.Evaluator, policy string) *HomeScreen {
	cfg := e.Config()
	menuLabels := []string{LabelMatrix, LabelDated, LabelRules, LabelQuit}

	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: factory()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: push(func() screen.Screen { return matrix.New(e, policy) })},
		{Label: menuLabels[1], Action: push(func() screen.Screen { return dated.New(e, policy) })},
		{Label: menuLabels[2], Action: push(func() screen.Screen { return rules.New(cfg, policy) })},
		{Label: menuLabels[3], Action: func() tea.Cmd { return tea.Quit }},
	}

	menu := components.NewMenu(items)
	if cfg.DateBased {
		menu.Selected = 1
	}

	return &HomeScreen{
		menu:       menu,
		menuLabels: menuLabels,
		policy:     policy,
		cfg:        cfg,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 80

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw))
	sections = append(sections, renderPolicyBar(h.policy, h.cfg, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")
	return renderCabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
