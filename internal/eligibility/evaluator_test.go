package eligibility

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

const (
	s0 Session = iota
	s1
	s2
	s3
)

func selection(entries ...any) SelectionSet {
	set := NewSelectionSet()
	for i := 0; i+1 < len(entries); i += 2 {
		set.Add(entries[i].(Session), entries[i+1].(Attempt))
	}
	return set
}

func newEvaluator(t *testing.T, p Policy) *Evaluator {
	t.Helper()
	cfg, err := PolicyConfig(p)
	if err != nil {
		t.Fatalf("PolicyConfig(%q): %v", p, err)
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func hasDetail(v Verdict, substr string) bool {
	for _, d := range v.Details {
		if strings.Contains(strings.ToLower(d), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

func TestEvaluate_EmptySelection(t *testing.T) {
	for _, set := range []SelectionSet{{}, NewSelectionSet()} {
		v := Evaluate(set)
		if v.IsEligible {
			t.Fatal("empty selection should not be eligible")
		}
		if v.Message != MsgNoSelection {
			t.Errorf("message = %q, want %q", v.Message, MsgNoSelection)
		}
		if len(v.Details) != 0 {
			t.Errorf("expected no details, got %v", v.Details)
		}
	}
}

func TestEvaluate_UnknownValuesAreNotAttempts(t *testing.T) {
	set := selection(
		s0, Attempt{Kind: Initial, Component: ""},
		s1, Attempt{Kind: "retake", Component: External},
		s1, Attempt{Kind: Initial, Component: "component9"},
	)
	v := Evaluate(set)
	if v.Message != MsgNoSelection {
		t.Errorf("message = %q, want %q", v.Message, MsgNoSelection)
	}
	if set.Count() != 0 {
		t.Errorf("Count() = %d, want 0", set.Count())
	}
}

func TestEvaluate_SuccessPath(t *testing.T) {
	set := selection(
		s0, InitialAttempt(Internal1),
		s0, InitialAttempt(Internal2),
		s1, InitialAttempt(External),
	)
	for _, p := range []Policy{PolicyStandard, PolicySingleResit} {
		v := newEvaluator(t, p).Evaluate(set)
		if !v.IsEligible {
			t.Errorf("%s: expected eligible, got %+v", p, v)
		}
		if v.Message != MsgEligible {
			t.Errorf("%s: message = %q, want %q", p, v.Message, MsgEligible)
		}
		if v.Details == nil || len(v.Details) != 0 {
			t.Errorf("%s: expected empty non-nil details, got %#v", p, v.Details)
		}
	}
}

func TestEvaluate_SameSeriesIsAllowed(t *testing.T) {
	set := selection(
		s2, InitialAttempt(Internal1),
		s2, InitialAttempt(Internal2),
		s2, InitialAttempt(External),
	)
	if v := Evaluate(set); !v.IsEligible {
		t.Errorf("expected eligible, got %+v", v)
	}
}

func TestEvaluate_MissingExternal(t *testing.T) {
	set := selection(
		s0, InitialAttempt(Internal1),
		s1, InitialAttempt(Internal2),
	)
	tests := []struct {
		policy Policy
		want   []string
	}{
		{PolicyStandard, []string{DetailMissingComponents + ": Component 3 (External)", MsgExternalRequired}},
		{PolicySingleResit, []string{MsgExternalRequired}},
	}
	for _, tt := range tests {
		v := newEvaluator(t, tt.policy).Evaluate(set)
		if v.IsEligible || v.Message != MsgNotEligible {
			t.Fatalf("%s: expected not eligible, got %+v", tt.policy, v)
		}
		if !reflect.DeepEqual(v.Details, tt.want) {
			t.Errorf("%s: details = %q, want %q", tt.policy, v.Details, tt.want)
		}
	}
}

func TestEvaluate_OnlyInternalsNamesExternalRequired(t *testing.T) {
	set := selection(
		s0, InitialAttempt(Internal1),
		s0, InitialAttempt(Internal2),
	)
	v := Evaluate(set)
	found := false
	for _, d := range v.Details {
		if d == MsgExternalRequired {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q among details, got %q", MsgExternalRequired, v.Details)
	}
}

func TestEvaluate_MissingInternalOnlyWhenRequired(t *testing.T) {
	set := selection(
		s0, InitialAttempt(Internal1),
		s1, InitialAttempt(External),
	)
	std := Evaluate(set)
	if std.IsEligible {
		t.Fatal("standard policy should require all components")
	}
	if !hasDetail(std, "Component 2 (Internal)") {
		t.Errorf("expected Component 2 named, got %v", std.Details)
	}
	if hasDetail(std, "Component 1") {
		t.Errorf("Component 1 is present and should not be named: %v", std.Details)
	}

	single := newEvaluator(t, PolicySingleResit).Evaluate(set)
	if !single.IsEligible {
		t.Errorf("single-resit policy should accept, got %+v", single)
	}
}

func TestEvaluate_TerminalRule(t *testing.T) {
	tests := []struct {
		name     string
		set      SelectionSet
		eligible bool
	}{
		{
			name: "internal after external",
			set: selection(
				s0, InitialAttempt(Internal1),
				s3, InitialAttempt(Internal2),
				s1, InitialAttempt(External),
			),
		},
		{
			name: "internal resit after external",
			set: selection(
				s0, InitialAttempt(Internal1),
				s0, InitialAttempt(Internal2),
				s2, ResitAttempt(Internal2),
				s1, InitialAttempt(External),
			),
		},
		{
			name: "external resit moves the terminal session",
			set: selection(
				s0, InitialAttempt(Internal1),
				s0, InitialAttempt(Internal2),
				s2, ResitAttempt(Internal2),
				s1, InitialAttempt(External),
				s3, ResitAttempt(External),
			),
			eligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Evaluate(tt.set)
			if v.IsEligible != tt.eligible {
				t.Fatalf("IsEligible = %v, want %v (details %v)", v.IsEligible, tt.eligible, v.Details)
			}
			if !tt.eligible && !hasDetail(v, DetailTerminalRule) {
				t.Errorf("expected terminal rule detail, got %v", v.Details)
			}
		})
	}
}

func TestEvaluate_TerminalRuleNamesOffendingSessions(t *testing.T) {
	set := selection(
		s0, InitialAttempt(Internal1),
		s3, InitialAttempt(Internal2),
		s1, InitialAttempt(External),
	)
	v := Evaluate(set)
	if !hasDetail(v, "Component 2 (Internal) initial in May/June Year 2") {
		t.Errorf("expected offending attempt named, got %v", v.Details)
	}
	if !hasDetail(v, "in May/June Year 1") {
		t.Errorf("expected terminal session named, got %v", v.Details)
	}
}

func TestEvaluate_TerminalAmongMultipleExternals(t *testing.T) {
	set := selection(
		s0, InitialAttempt(External),
		s2, ResitAttempt(External),
		s1, InitialAttempt(Internal1),
		s0, InitialAttempt(Internal2),
	)
	v := Evaluate(set)
	if !v.IsEligible {
		t.Errorf("internal at session 1 is before the terminal resit, got %+v", v)
	}
}

func TestEvaluate_LateInternalResitNeedsExternalResit(t *testing.T) {
	set := selection(
		s2, ResitAttempt(Internal1),
		s1, InitialAttempt(External),
	)
	for _, p := range []Policy{PolicyStandard, PolicySingleResit} {
		v := newEvaluator(t, p).Evaluate(set)
		if v.IsEligible {
			t.Fatalf("%s: expected not eligible", p)
		}
		if !hasDetail(v, "require an external resit") {
			t.Errorf("%s: expected external resit detail, got %v", p, v.Details)
		}
	}
}

func TestEvaluate_LateResitRule(t *testing.T) {
	base := func() SelectionSet {
		return selection(
			s0, InitialAttempt(Internal1),
			s0, InitialAttempt(Internal2),
			s1, InitialAttempt(External),
		)
	}

	tests := []struct {
		name    string
		extra   []any
		flagged bool
	}{
		{"resit in same series as initial external", []any{s1, ResitAttempt(Internal1)}, false},
		{"resit after external, no external resit", []any{s2, ResitAttempt(Internal1)}, true},
		{"resit after external, external resit same series", []any{s2, ResitAttempt(Internal1), s2, ResitAttempt(External)}, false},
		{"resit after external, external resit later", []any{s2, ResitAttempt(Internal1), s3, ResitAttempt(External)}, false},
		{"resit after external resit", []any{s2, ResitAttempt(External), s3, ResitAttempt(Internal1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := base()
			for i := 0; i < len(tt.extra); i += 2 {
				set.Add(tt.extra[i].(Session), tt.extra[i+1].(Attempt))
			}
			v := Evaluate(set)
			if got := hasDetail(v, DetailLateInternalResit); got != tt.flagged {
				t.Errorf("late resit flagged = %v, want %v (details %v)", got, tt.flagged, v.Details)
			}
		})
	}
}

func TestEvaluate_LateResitRuleWithoutInitialExternal(t *testing.T) {
	set := selection(
		s0, InitialAttempt(Internal1),
		s0, InitialAttempt(Internal2),
		s1, ResitAttempt(Internal1),
		s2, ResitAttempt(External),
	)
	v := Evaluate(set)
	if hasDetail(v, DetailLateInternalResit) {
		t.Errorf("rule needs an initial external attempt, got %v", v.Details)
	}
	if !v.IsEligible {
		t.Errorf("expected eligible, got %+v", v)
	}
}

func TestEvaluate_ResitCap(t *testing.T) {
	tests := []struct {
		policy   Policy
		resits   int
		eligible bool
	}{
		{PolicySingleResit, 1, true},
		{PolicySingleResit, 2, false},
		{PolicyStandard, 3, true},
		{PolicyStandard, 4, false},
	}

	for _, tt := range tests {
		set := selection(
			s0, InitialAttempt(Internal1),
			s0, InitialAttempt(Internal2),
			s0, InitialAttempt(External),
		)
		for i := 0; i < tt.resits; i++ {
			set.Add(s3, ResitAttempt(External))
		}
		v := newEvaluator(t, tt.policy).Evaluate(set)
		if v.IsEligible != tt.eligible {
			t.Errorf("%s with %d resits: IsEligible = %v, want %v (details %v)",
				tt.policy, tt.resits, v.IsEligible, tt.eligible, v.Details)
		}
		if !tt.eligible && !hasDetail(v, "Component 3 (External) has") {
			t.Errorf("%s: expected cap detail naming the component, got %v", tt.policy, v.Details)
		}
	}
}

func TestEvaluate_ResitCapZero(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxResitsPerComponent = 0
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	set := selection(
		s0, InitialAttempt(Internal1),
		s0, InitialAttempt(Internal2),
		s0, InitialAttempt(External),
		s0, ResitAttempt(Internal1),
	)
	v := e.Evaluate(set)
	if v.IsEligible {
		t.Fatal("resits should be rejected when the cap is zero")
	}
	if !hasDetail(v, "at most 0 allowed") {
		t.Errorf("unexpected details %v", v.Details)
	}
}

func TestEvaluate_AccumulatesAllViolations(t *testing.T) {
	set := selection(
		s3, InitialAttempt(Internal1),
		s3, ResitAttempt(Internal1),
		s3, ResitAttempt(Internal1),
		s1, InitialAttempt(External),
	)
	v := newEvaluator(t, PolicySingleResit).Evaluate(set)
	if v.Message != MsgNotEligible {
		t.Errorf("message = %q", v.Message)
	}
	want := []string{DetailTerminalRule, DetailLateInternalResit, "Component 1 (Internal) has 2 resits"}
	if len(v.Details) != len(want) {
		t.Fatalf("expected %d details, got %v", len(want), v.Details)
	}
	for i, prefix := range want {
		if !strings.HasPrefix(v.Details[i], prefix) {
			t.Errorf("detail %d = %q, want prefix %q", i, v.Details[i], prefix)
		}
	}
}

func TestEvaluate_InvalidSession(t *testing.T) {
	set := selection(
		s0, InitialAttempt(Internal1),
		Session(7), InitialAttempt(External),
	)
	v := Evaluate(set)
	if !reflect.DeepEqual(v, InvalidInput()) {
		t.Errorf("got %+v, want invalid input verdict", v)
	}

	neg := selection(Session(-1), InitialAttempt(External))
	if v := Evaluate(neg); v.Message != MsgInvalidInput {
		t.Errorf("negative session: message = %q", v.Message)
	}

	bad := Session(9)
	cur := selection(s0, InitialAttempt(External))
	cur.Current = &bad
	if v := Evaluate(cur); v.Message != MsgInvalidInput {
		t.Errorf("invalid current session: message = %q", v.Message)
	}
}

func TestEvaluate_EmptySessionOutOfRangeIsIgnored(t *testing.T) {
	set := selection(
		s0, InitialAttempt(Internal1),
		s0, InitialAttempt(Internal2),
		s1, InitialAttempt(External),
	)
	set.Sessions[Session(12)] = nil
	if v := Evaluate(set); !v.IsEligible {
		t.Errorf("empty out-of-range entry should be ignored, got %+v", v)
	}
}

func TestEvaluate_CurrentSessionRequired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RequireCurrentSession = true
	e, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	set := selection(
		s0, InitialAttempt(Internal1),
		s0, InitialAttempt(Internal2),
		s1, InitialAttempt(External),
	)
	v := e.Evaluate(set)
	if v.Message != MsgCurrentSession {
		t.Errorf("message = %q, want %q", v.Message, MsgCurrentSession)
	}

	cur := s1
	set.Current = &cur
	if v := e.Evaluate(set); !v.IsEligible {
		t.Errorf("expected eligible once current session is set, got %+v", v)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	sets := []SelectionSet{
		{},
		selection(s0, InitialAttempt(Internal1), s1, InitialAttempt(External)),
		selection(s3, ResitAttempt(Internal1), s1, InitialAttempt(External), s0, InitialAttempt(Internal2)),
	}
	e := newEvaluator(t, PolicyStandard)
	for i, set := range sets {
		first := e.Evaluate(set)
		for n := 0; n < 5; n++ {
			if got := e.Evaluate(set); !reflect.DeepEqual(got, first) {
				t.Errorf("set %d: evaluation %d = %+v, want %+v", i, n, got, first)
			}
		}
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	set := selection(
		s1, InitialAttempt(External),
		s0, InitialAttempt(Internal2),
		s0, InitialAttempt(Internal1),
	)
	before := append([]Attempt(nil), set.Sessions[s0]...)
	Evaluate(set)
	if !reflect.DeepEqual(set.Sessions[s0], before) {
		t.Errorf("attempts reordered: %v, was %v", set.Sessions[s0], before)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative resits", func(c *Config) { c.MaxResitsPerComponent = -1 }},
		{"empty timeline", func(c *Config) { c.Timeline = Timeline{} }},
		{"duplicate key", func(c *Config) { c.Timeline.Sessions[1].Key = c.Timeline.Sessions[0].Key }},
		{"blank key", func(c *Config) { c.Timeline.Sessions[2].Key = "" }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if _, err := New(cfg); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func date(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEvaluateDated(t *testing.T) {
	cur := s2
	tests := []struct {
		name       string
		components map[ComponentKind]ComponentRecord
		current    *Session
		eligible   bool
		message    string
		detail     string
	}{
		{
			name:    "current session missing",
			message: MsgCurrentSession,
			components: map[ComponentKind]ComponentRecord{
				External: {Completed: true, Date: date("2024-06-01")},
			},
		},
		{
			name:    "nothing completed",
			current: &cur,
			message: MsgNoSelection,
			components: map[ComponentKind]ComponentRecord{
				Internal1: {Completed: false, Date: date("2024-01-10")},
			},
		},
		{
			name:    "completion date missing",
			current: &cur,
			message: MsgMissingDates,
			detail:  "Component 1 (Internal): completion date required",
			components: map[ComponentKind]ComponentRecord{
				Internal1: {Completed: true},
				External:  {Completed: true, Date: date("2024-06-01")},
			},
		},
		{
			name:    "resit date missing",
			current: &cur,
			message: MsgMissingDates,
			detail:  "Component 3 (External): resit date required",
			components: map[ComponentKind]ComponentRecord{
				External: {Completed: true, Date: date("2024-06-01"), Resit: true},
			},
		},
		{
			name:     "internal before external",
			current:  &cur,
			eligible: true,
			message:  MsgEligible,
			components: map[ComponentKind]ComponentRecord{
				Internal1: {Completed: true, Date: date("2024-01-10")},
				Internal2: {Completed: true, Date: date("2024-06-01")},
				External:  {Completed: true, Date: date("2024-06-01")},
			},
		},
		{
			name:    "internal after external",
			current: &cur,
			message: MsgNotEligible,
			detail:  DetailTerminalRule,
			components: map[ComponentKind]ComponentRecord{
				Internal1: {Completed: true, Date: date("2024-06-02")},
				External:  {Completed: true, Date: date("2024-06-01")},
			},
		},
		{
			name:    "internal resit after external without external resit",
			current: &cur,
			message: MsgNotEligible,
			detail:  DetailLateInternalResit,
			components: map[ComponentKind]ComponentRecord{
				Internal1: {Completed: true, Date: date("2024-01-10"), Resit: true, ResitDate: date("2024-05-20")},
				External:  {Completed: true, Date: date("2024-01-12")},
			},
		},
		{
			name:     "external resit covers late internal resit",
			current:  &cur,
			eligible: true,
			message:  MsgEligible,
			components: map[ComponentKind]ComponentRecord{
				Internal1: {Completed: true, Date: date("2024-01-10"), Resit: true, ResitDate: date("2024-05-20")},
				External:  {Completed: true, Date: date("2024-01-12"), Resit: true, ResitDate: date("2024-06-05")},
			},
		},
		{
			name:     "resit flag on incomplete component is ignored",
			current:  &cur,
			eligible: true,
			message:  MsgEligible,
			components: map[ComponentKind]ComponentRecord{
				Internal2: {Completed: false, Resit: true},
				External:  {Completed: true, Date: date("2024-06-01")},
			},
		},
	}

	e := newEvaluator(t, PolicyDated)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := e.EvaluateDated(DatedSelection{Current: tt.current, Components: tt.components})
			if v.IsEligible != tt.eligible {
				t.Errorf("IsEligible = %v, want %v (%+v)", v.IsEligible, tt.eligible, v)
			}
			if v.Message != tt.message {
				t.Errorf("message = %q, want %q", v.Message, tt.message)
			}
			if tt.detail != "" && !hasDetail(v, tt.detail) {
				t.Errorf("expected detail %q, got %v", tt.detail, v.Details)
			}
		})
	}
}

func TestEvaluateDated_IgnoresTimeOfDay(t *testing.T) {
	cur := s1
	loc := time.FixedZone("UTC+10", 10*60*60)
	d := DatedSelection{
		Current: &cur,
		Components: map[ComponentKind]ComponentRecord{
			Internal1: {Completed: true, Date: time.Date(2024, 6, 1, 23, 0, 0, 0, loc)},
			External:  {Completed: true, Date: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)},
		},
	}
	if v := newEvaluator(t, PolicyDated).EvaluateDated(d); !v.IsEligible {
		t.Errorf("same calendar day should be allowed, got %+v", v)
	}
}

func TestEvaluateDated_InvalidCurrent(t *testing.T) {
	bad := Session(4)
	v := newEvaluator(t, PolicyDated).EvaluateDated(DatedSelection{Current: &bad})
	if v.Message != MsgInvalidInput {
		t.Errorf("message = %q, want %q", v.Message, MsgInvalidInput)
	}
}

func TestChronology(t *testing.T) {
	e := newEvaluator(t, PolicyStandard)
	s := selection(
		s2, InitialAttempt(External),
		s0, InitialAttempt(Internal2),
		s0, InitialAttempt(Internal1),
		s2, ResitAttempt(Internal1),
	)
	want := []string{
		"Component 1 (Internal) initial in Dec/Jan Year 1",
		"Component 2 (Internal) initial in Dec/Jan Year 1",
		"Component 1 (Internal) resit in Dec/Jan Year 2",
		"Component 3 (External) initial in Dec/Jan Year 2",
	}
	if got := e.Chronology(s); !reflect.DeepEqual(got, want) {
		t.Errorf("Chronology = %q, want %q", got, want)
	}

	if got := e.Chronology(selection(Session(9), InitialAttempt(External))); got != nil {
		t.Errorf("out-of-range session should give nil, got %q", got)
	}
}

func TestChronologyDated(t *testing.T) {
	e := newEvaluator(t, PolicyDated)
	d := DatedSelection{Components: map[ComponentKind]ComponentRecord{
		External:  {Completed: true, Date: date("2024-06-03"), Resit: true},
		Internal1: {Completed: true, Date: date("2024-05-01")},
		Internal2: {Completed: true},
	}}
	want := []string{
		"Component 1 (Internal) initial on 2024-05-01",
		"Component 3 (External) initial on 2024-06-03",
	}
	if got := e.ChronologyDated(d); !reflect.DeepEqual(got, want) {
		t.Errorf("ChronologyDated = %q, want %q", got, want)
	}
}
