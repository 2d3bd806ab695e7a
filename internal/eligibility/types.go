package eligibility

import "sort"

// ComponentKind identifies one of the three qualification components.
type ComponentKind string

const (
	Internal1 ComponentKind = "internal1"
	Internal2 ComponentKind = "internal2"
	External  ComponentKind = "external"
)

// AllComponents returns the components in display order.
func AllComponents() []ComponentKind {
	return []ComponentKind{Internal1, Internal2, External}
}

// Valid reports whether c is one of the known components.
func (c ComponentKind) Valid() bool {
	switch c {
	case Internal1, Internal2, External:
		return true
	}
	return false
}

// IsInternal reports whether c is internally assessed.
// Internal1 and Internal2 are interchangeable for rule purposes.
func (c ComponentKind) IsInternal() bool {
	return c == Internal1 || c == Internal2
}

// DisplayName returns a human-readable label for the component.
func (c ComponentKind) DisplayName() string {
	switch c {
	case Internal1:
		return "Component 1 (Internal)"
	case Internal2:
		return "Component 2 (Internal)"
	case External:
		return "Component 3 (External)"
	default:
		return string(c)
	}
}

// ShortName returns a compact label for tables.
func (c ComponentKind) ShortName() string {
	switch c {
	case Internal1:
		return "C1"
	case Internal2:
		return "C2"
	case External:
		return "C3"
	default:
		return string(c)
	}
}

// AttemptKind distinguishes an initial attempt from a resit.
type AttemptKind string

const (
	Initial AttemptKind = "initial"
	Resit   AttemptKind = "resit"
)

// Valid reports whether k is a known attempt kind.
func (k AttemptKind) Valid() bool {
	return k == Initial || k == Resit
}

// Attempt is a single completion record for one component within a session.
type Attempt struct {
	Kind      AttemptKind   `json:"kind"`
	Component ComponentKind `json:"component"`
}

// InitialAttempt is shorthand for an initial attempt at c.
func InitialAttempt(c ComponentKind) Attempt {
	return Attempt{Kind: Initial, Component: c}
}

// ResitAttempt is shorthand for a resit attempt at c.
func ResitAttempt(c ComponentKind) Attempt {
	return Attempt{Kind: Resit, Component: c}
}

// SelectionSet maps each session to the attempts recorded in it.
// The zero value is an empty, usable set.
type SelectionSet struct {
	// Current is the learner's current series, if known.
	Current *Session

	Sessions map[Session][]Attempt
}

// NewSelectionSet returns an empty SelectionSet.
func NewSelectionSet() SelectionSet {
	return SelectionSet{Sessions: make(map[Session][]Attempt)}
}

// Add records an attempt in the given session.
func (s *SelectionSet) Add(session Session, a Attempt) {
	if s.Sessions == nil {
		s.Sessions = make(map[Session][]Attempt)
	}
	s.Sessions[session] = append(s.Sessions[session], a)
}

// Count returns the number of recognizable attempts in the set.
// Attempts with unknown component or kind values are not counted.
func (s SelectionSet) Count() int {
	n := 0
	for _, attempts := range s.Sessions {
		for _, a := range attempts {
			if a.Component.Valid() && a.Kind.Valid() {
				n++
			}
		}
	}
	return n
}

// sortedSessions returns the session keys in timeline order.
func (s SelectionSet) sortedSessions() []Session {
	keys := make([]Session, 0, len(s.Sessions))
	for k := range s.Sessions {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Verdict is the outcome of an eligibility evaluation.
type Verdict struct {
	IsEligible bool     `json:"is_eligible"`
	Message    string   `json:"message"`
	Details    []string `json:"details"`
}

// Verdict messages.
const (
	MsgEligible         = "all requirements have been met"
	MsgNotEligible      = "eligibility requirements have not been met"
	MsgNoSelection      = "no components selected"
	MsgMissingDates     = "missing required dates"
	MsgInvalidInput     = "invalid input"
	MsgCurrentSession   = "current series and year required"
	MsgExternalRequired = "external assessment required"
)

// InvalidInput returns the verdict reported for malformed input.
func InvalidInput() Verdict {
	return Verdict{
		IsEligible: false,
		Message:    MsgInvalidInput,
		Details:    []string{MsgInvalidInput},
	}
}

func notEligible(message string, details ...string) Verdict {
	if details == nil {
		details = []string{}
	}
	return Verdict{IsEligible: false, Message: message, Details: details}
}
