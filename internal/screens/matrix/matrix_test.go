package matrix

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/router"
	"github.com/abhisek/certcheck/internal/screens/summary"
)

func newTestScreen(t *testing.T, p eligibility.Policy) *MatrixScreen {
	t.Helper()
	cfg, err := eligibility.PolicyConfig(p)
	if err != nil {
		t.Fatalf("PolicyConfig: %v", err)
	}
	e, err := eligibility.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return New(e, string(p))
}

func press(m *MatrixScreen, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "up":
			msg = tea.KeyPressMsg{Code: tea.KeyUp}
		case "down":
			msg = tea.KeyPressMsg{Code: tea.KeyDown}
		case "left":
			msg = tea.KeyPressMsg{Code: tea.KeyLeft}
		case "right":
			msg = tea.KeyPressMsg{Code: tea.KeyRight}
		case "space":
			msg = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		m.Update(msg)
	}
}

func TestMatrix_StartsEmpty(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	v := m.Verdict()
	if v.IsEligible || v.Message != eligibility.MsgNoSelection {
		t.Errorf("empty grid verdict = %+v", v)
	}
}

func TestMatrix_EligibleSameSeries(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	// All three components in Dec/Jan Year 1.
	press(m, "space", "right", "space", "right", "space")

	if !m.Verdict().IsEligible {
		t.Fatalf("expected eligible, got %+v", m.Verdict())
	}
	if got := m.Selection().Count(); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
}

func TestMatrix_LateInternalResitNeedsExternalResit(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	press(m, "space", "right", "space", "right", "space") // all initial in series 0
	press(m, "left", "left", "down", "r")                 // C1 resit in series 1

	v := m.Verdict()
	if v.IsEligible {
		t.Fatal("internal resit after the external should not be eligible")
	}

	press(m, "right", "right", "r") // C3 resit in series 1
	if !m.Verdict().IsEligible {
		t.Errorf("external resit in the same series should fix it, got %+v", m.Verdict())
	}
}

func TestMatrix_ResitCountAndClear(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	press(m, "r", "+", "-")
	if m.cells[0][0].resits != 1 {
		t.Errorf("resits = %d, want 1", m.cells[0][0].resits)
	}
	press(m, "-", "-")
	if m.cells[0][0].resits != 0 {
		t.Errorf("resits should not go negative, got %d", m.cells[0][0].resits)
	}
	press(m, "space", "r", "x")
	if !m.cells[0][0].empty() {
		t.Errorf("x should clear the cell, got %+v", m.cells[0][0])
	}
}

func TestMatrix_CursorStaysInBounds(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	press(m, "up", "left")
	if m.row != 0 || m.col != 0 {
		t.Errorf("cursor moved out of bounds: %d,%d", m.row, m.col)
	}
	press(m, "down", "down", "down", "down", "down", "right", "right", "right")
	if m.row != 3 || m.col != 2 {
		t.Errorf("cursor = %d,%d, want 3,2", m.row, m.col)
	}
}

func TestMatrix_CurrentSession(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	press(m, "down", "c")
	sel := m.Selection()
	if sel.Current == nil || *sel.Current != 1 {
		t.Fatalf("Current = %v, want 1", sel.Current)
	}
	press(m, "c")
	if m.Selection().Current != nil {
		t.Error("pressing c again should clear the current series")
	}
}

func TestMatrix_ClearAll(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	press(m, "space", "c", "down", "r")
	press(m, "C")
	if m.Selection().Count() != 0 || m.current != nil {
		t.Error("C should clear every cell and the current series")
	}
}

func TestMatrix_ResitCapPerPolicy(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicySingleResit)
	press(m, "space", "right", "space", "right", "space")
	press(m, "left", "left", "down", "r", "down", "r")
	if m.Verdict().IsEligible {
		t.Fatal("two resits should exceed the single-resit cap")
	}
	found := false
	for _, d := range m.Verdict().Details {
		if strings.Contains(d, "at most 1 allowed") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected cap detail, got %q", m.Verdict().Details)
	}
}

func TestMatrix_EnterPushesSummary(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	press(m, "space")
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", push.Screen)
	}
}

func TestMatrix_View(t *testing.T) {
	m := newTestScreen(t, eligibility.PolicyStandard)
	press(m, "space", "c")
	view := m.View(100, 40)
	for _, want := range []string{"Dec/Jan Year 1 ◆", "May/June Year 2", "C3", "Not Eligible"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}
