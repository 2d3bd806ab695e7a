package eligibility

import (
	"fmt"
	"time"
)

// Evaluator applies a Config's rule chain to learner selections.
// An Evaluator is immutable after New and safe for concurrent use.
type Evaluator struct {
	cfg   Config
	rules []rule
}

// New creates an Evaluator for cfg.
func New(cfg Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Evaluator{cfg: cfg, rules: defaultRules()}, nil
}

var defaultEvaluator = &Evaluator{cfg: DefaultConfig(), rules: defaultRules()}

// Evaluate checks s against the default (standard) policy.
func Evaluate(s SelectionSet) Verdict {
	return defaultEvaluator.Evaluate(s)
}

// Config returns the configuration the Evaluator was built with.
func (e *Evaluator) Config() Config {
	return e.cfg
}

// Evaluate returns the eligibility verdict for a session-indexed selection.
// It never panics on well-typed input; out-of-range sessions produce the
// invalid-input verdict.
func (e *Evaluator) Evaluate(s SelectionSet) Verdict {
	tl := e.cfg.Timeline
	if s.Current != nil && !tl.Contains(*s.Current) {
		return InvalidInput()
	}
	l, ok := ledgerFromSelection(s, tl)
	if !ok {
		return InvalidInput()
	}
	if e.cfg.RequireCurrentSession && s.Current == nil {
		return notEligible(MsgCurrentSession)
	}
	return e.run(l)
}

// ComponentRecord is one component's entry in the date-based modality.
// A zero time.Time means the date was not provided.
type ComponentRecord struct {
	Completed bool
	Date      time.Time
	Resit     bool
	ResitDate time.Time
}

// DatedSelection is the date-based input: one record per component.
type DatedSelection struct {
	Current    *Session
	Components map[ComponentKind]ComponentRecord
}

// EvaluateDated returns the eligibility verdict for date-based input.
// Ordering compares calendar days.
func (e *Evaluator) EvaluateDated(d DatedSelection) Verdict {
	if d.Current != nil && !e.cfg.Timeline.Contains(*d.Current) {
		return InvalidInput()
	}
	if e.cfg.RequireCurrentSession && d.Current == nil {
		return notEligible(MsgCurrentSession)
	}

	var completed []ComponentKind
	for _, c := range AllComponents() {
		if d.Components[c].Completed {
			completed = append(completed, c)
		}
	}
	if len(completed) == 0 {
		return notEligible(MsgNoSelection)
	}

	var missing []string
	for _, c := range completed {
		rec := d.Components[c]
		if rec.Date.IsZero() {
			missing = append(missing, c.DisplayName()+": completion date required")
		}
		if rec.Resit && rec.ResitDate.IsZero() {
			missing = append(missing, c.DisplayName()+": resit date required")
		}
	}
	if len(missing) > 0 {
		return notEligible(MsgMissingDates, missing...)
	}

	marks := make([]mark, 0, 2*len(completed))
	for _, c := range completed {
		rec := d.Components[c]
		marks = append(marks, dateMark(c, Initial, rec.Date))
		if rec.Resit {
			marks = append(marks, dateMark(c, Resit, rec.ResitDate))
		}
	}
	return e.run(newLedger(marks))
}

// Chronology lists the attempts in s in the order the rules see them.
// It returns nil when a session falls outside the timeline.
func (e *Evaluator) Chronology(s SelectionSet) []string {
	l, ok := ledgerFromSelection(s, e.cfg.Timeline)
	if !ok {
		return nil
	}
	return l.describeAll()
}

// ChronologyDated is Chronology for date-based input. Records without a
// usable date are left out.
func (e *Evaluator) ChronologyDated(d DatedSelection) []string {
	var marks []mark
	for _, c := range AllComponents() {
		rec := d.Components[c]
		if !rec.Completed || rec.Date.IsZero() {
			continue
		}
		marks = append(marks, dateMark(c, Initial, rec.Date))
		if rec.Resit && !rec.ResitDate.IsZero() {
			marks = append(marks, dateMark(c, Resit, rec.ResitDate))
		}
	}
	return newLedger(marks).describeAll()
}

func (e *Evaluator) run(l *ledger) Verdict {
	if l.empty() {
		return notEligible(MsgNoSelection)
	}

	var details []string
	for _, r := range e.rules {
		details = append(details, r.Check(l, e.cfg)...)
	}
	if len(details) > 0 {
		return notEligible(MsgNotEligible, details...)
	}
	return Verdict{IsEligible: true, Message: MsgEligible, Details: []string{}}
}
