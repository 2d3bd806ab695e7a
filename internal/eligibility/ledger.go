package eligibility

import (
	"fmt"
	"sort"
	"time"
)

// mark is one attempt placed on the ordering axis shared by both input
// modalities: a session index, or a day number for dated input.
type mark struct {
	component ComponentKind
	kind      AttemptKind
	at        int64
	where     string // "in Dec/Jan Year 1" or "on 2024-06-03"
}

func (m mark) describe() string {
	return fmt.Sprintf("%s %s %s", m.component.DisplayName(), m.kind, m.where)
}

// ledger is the normalized, ordered view of a selection used by the rules.
type ledger struct {
	marks []mark
}

func newLedger(marks []mark) *ledger {
	order := map[ComponentKind]int{Internal1: 0, Internal2: 1, External: 2}
	sort.SliceStable(marks, func(i, j int) bool {
		a, b := marks[i], marks[j]
		if a.at != b.at {
			return a.at < b.at
		}
		if a.component != b.component {
			return order[a.component] < order[b.component]
		}
		return a.kind == Initial && b.kind == Resit
	})
	return &ledger{marks: marks}
}

func (l *ledger) empty() bool {
	return len(l.marks) == 0
}

func (l *ledger) has(c ComponentKind) bool {
	for _, m := range l.marks {
		if m.component == c {
			return true
		}
	}
	return false
}

// terminalExternal returns the latest External attempt, initial or resit.
func (l *ledger) terminalExternal() (mark, bool) {
	for i := len(l.marks) - 1; i >= 0; i-- {
		if l.marks[i].component == External {
			return l.marks[i], true
		}
	}
	return mark{}, false
}

// initialExternal returns the earliest initial External attempt.
func (l *ledger) initialExternal() (mark, bool) {
	for _, m := range l.marks {
		if m.component == External && m.kind == Initial {
			return m, true
		}
	}
	return mark{}, false
}

// externalResitAtOrAfter reports whether an External resit exists at or
// after position at.
func (l *ledger) externalResitAtOrAfter(at int64) bool {
	for _, m := range l.marks {
		if m.component == External && m.kind == Resit && m.at >= at {
			return true
		}
	}
	return false
}

func (l *ledger) internals() []mark {
	var out []mark
	for _, m := range l.marks {
		if m.component.IsInternal() {
			out = append(out, m)
		}
	}
	return out
}

func (l *ledger) resitCount(c ComponentKind) int {
	n := 0
	for _, m := range l.marks {
		if m.component == c && m.kind == Resit {
			n++
		}
	}
	return n
}

// ledgerFromSelection normalizes a SelectionSet. ok is false when a session
// index falls outside the timeline.
func ledgerFromSelection(s SelectionSet, tl Timeline) (*ledger, bool) {
	var marks []mark
	for _, session := range s.sortedSessions() {
		attempts := s.Sessions[session]
		if len(attempts) == 0 {
			continue
		}
		if !tl.Contains(session) {
			return nil, false
		}
		where := "in " + tl.Label(session)
		for _, a := range attempts {
			if !a.Component.Valid() || !a.Kind.Valid() {
				continue
			}
			marks = append(marks, mark{
				component: a.Component,
				kind:      a.Kind,
				at:        int64(session),
				where:     where,
			})
		}
	}
	return newLedger(marks), true
}

const dateLayout = "2006-01-02"

// dayNumber maps a calendar date to a day count so dates order by day,
// ignoring time of day and location offsets.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func dateMark(c ComponentKind, kind AttemptKind, t time.Time) mark {
	return mark{
		component: c,
		kind:      kind,
		at:        dayNumber(t),
		where:     "on " + t.Format(dateLayout),
	}
}

func (l *ledger) describeAll() []string {
	out := make([]string, len(l.marks))
	for i, m := range l.marks {
		out[i] = m.describe()
	}
	return out
}
