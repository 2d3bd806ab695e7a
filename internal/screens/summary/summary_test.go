package summary

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/router"
)

func testReport() Report {
	return Report{
		Policy:  "standard",
		Current: "May/June Year 2",
		Attempts: []string{
			"Component 1 (Internal) initial in Dec/Jan Year 1",
			"Component 2 (Internal) initial in Dec/Jan Year 1",
			"Component 3 (External) initial in May/June Year 1",
		},
		Verdict: eligibility.Verdict{IsEligible: true, Message: eligibility.MsgEligible, Details: []string{}},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testReport())
	if s.Title() != "Summary" {
		t.Errorf("Title = %q, want %q", s.Title(), "Summary")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testReport()).View(80, 30)
	for _, want := range []string{"standard", "May/June Year 2", "3. Component 3 (External)", "All requirements have been met"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}

func TestSummaryScreen_EmptyReport(t *testing.T) {
	view := New(Report{Policy: "dated", Verdict: eligibility.Verdict{Message: eligibility.MsgNoSelection}}).View(80, 30)
	if !strings.Contains(view, "not set") || !strings.Contains(view, "nothing recorded") {
		t.Errorf("empty report should say so, got %q", view)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testReport())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("Enter should pop the screen")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testReport())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testReport())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
