package eligibility

import (
	"fmt"
	"strings"
)

// Detail prefixes reported by the rule chain.
const (
	DetailMissingComponents = "missing required components"
	DetailTerminalRule      = "internal components must be completed before or in the same series as the external assessment"
	DetailLateInternalResit = "internal resits after the external assessment require an external resit"
)

// rule is one step of the evaluation chain. Rules are stateless; each
// returns zero or more detail strings describing violations.
type rule interface {
	// Name returns a short identifier, e.g. "terminal".
	Name() string

	Check(l *ledger, cfg Config) []string
}

// defaultRules returns the chain in evaluation order.
func defaultRules() []rule {
	return []rule{
		presenceRule{},
		terminalRule{},
		lateResitRule{},
		resitCapRule{},
	}
}

// presenceRule requires an attempt for every component.
type presenceRule struct{}

func (presenceRule) Name() string { return "presence" }

func (presenceRule) Check(l *ledger, cfg Config) []string {
	if !cfg.RequireAllComponents {
		return nil
	}
	var missing []string
	for _, c := range AllComponents() {
		if !l.has(c) {
			missing = append(missing, c.DisplayName())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%s: %s", DetailMissingComponents, strings.Join(missing, ", "))}
}

// terminalRule requires every internal attempt to fall at or before the
// latest External attempt.
type terminalRule struct{}

func (terminalRule) Name() string { return "terminal" }

func (terminalRule) Check(l *ledger, cfg Config) []string {
	terminal, ok := l.terminalExternal()
	if !ok {
		return []string{MsgExternalRequired}
	}

	var late []string
	for _, m := range l.internals() {
		if m.at > terminal.at {
			late = append(late, m.describe())
		}
	}
	if len(late) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%s: %s is later than the final external assessment %s",
		DetailTerminalRule, strings.Join(late, "; "), terminal.where)}
}

// lateResitRule requires an External resit at or after any internal resit
// taken after the initial External attempt.
type lateResitRule struct{}

func (lateResitRule) Name() string { return "late-resit" }

func (lateResitRule) Check(l *ledger, _ Config) []string {
	e0, ok := l.initialExternal()
	if !ok {
		return nil
	}

	var uncovered []string
	for _, m := range l.internals() {
		if m.kind != Resit || m.at <= e0.at {
			continue
		}
		if !l.externalResitAtOrAfter(m.at) {
			uncovered = append(uncovered, m.describe())
		}
	}
	if len(uncovered) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%s: %s has no external resit at or after it",
		DetailLateInternalResit, strings.Join(uncovered, "; "))}
}

// resitCapRule limits resit attempts per component.
type resitCapRule struct{}

func (resitCapRule) Name() string { return "resit-cap" }

func (resitCapRule) Check(l *ledger, cfg Config) []string {
	var out []string
	for _, c := range AllComponents() {
		n := l.resitCount(c)
		if n > cfg.MaxResitsPerComponent {
			out = append(out, fmt.Sprintf("%s has %d %s recorded; at most %d allowed",
				c.DisplayName(), n, plural(n, "resit", "resits"), cfg.MaxResitsPerComponent))
		}
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// KeyRules summarizes the rules a Config enforces, for display.
func KeyRules(cfg Config) []string {
	var out []string
	if cfg.RequireCurrentSession {
		out = append(out, "The current series and year must be selected")
	}
	if cfg.RequireAllComponents {
		out = append(out, "All three components must be attempted")
	} else {
		out = append(out, "The external assessment must be attempted")
	}
	out = append(out,
		"Internal components must be completed before or in the same series as the external assessment",
		"Internal resits after the external assessment require an external resit",
	)
	switch cfg.MaxResitsPerComponent {
	case 0:
		out = append(out, "No resits are allowed")
	case 1:
		out = append(out, "One resit allowed per component")
	default:
		out = append(out, fmt.Sprintf("Up to %d resits allowed per component", cfg.MaxResitsPerComponent))
	}
	if cfg.DateBased {
		out = append(out, "Every completed component needs a completion date, and every resit a resit date")
	}
	return out
}
