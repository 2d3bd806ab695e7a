package eligibility

import (
	"fmt"
	"strings"
)

// Series is the assessment window within a year.
type Series string

const (
	SeriesDecJan Series = "decjan"
	SeriesMayJun Series = "mayjun"
)

// DisplayName returns a human-readable label for the series.
func (s Series) DisplayName() string {
	switch s {
	case SeriesDecJan:
		return "Dec/Jan"
	case SeriesMayJun:
		return "May/June"
	default:
		return string(s)
	}
}

// Session is a position in the qualification timeline. Ordering is by index.
type Session int

// Before reports whether s comes strictly before other.
func (s Session) Before(other Session) bool { return s < other }

// After reports whether s comes strictly after other.
func (s Session) After(other Session) bool { return s > other }

// SessionInfo describes one slot of a Timeline.
type SessionInfo struct {
	Key    string
	Series Series
	Year   int
}

// Label returns the display label, e.g. "Dec/Jan Year 1".
func (si SessionInfo) Label() string {
	return fmt.Sprintf("%s Year %d", si.Series.DisplayName(), si.Year)
}

// Timeline is the fixed, totally ordered list of sessions.
type Timeline struct {
	Sessions []SessionInfo
}

// DefaultTimeline returns the four-session qualification timeline.
func DefaultTimeline() Timeline {
	return Timeline{Sessions: []SessionInfo{
		{Key: "decjan-y1", Series: SeriesDecJan, Year: 1},
		{Key: "mayjun-y1", Series: SeriesMayJun, Year: 1},
		{Key: "decjan-y2", Series: SeriesDecJan, Year: 2},
		{Key: "mayjun-y2", Series: SeriesMayJun, Year: 2},
	}}
}

// Len returns the number of sessions.
func (t Timeline) Len() int {
	return len(t.Sessions)
}

// All returns every session in order.
func (t Timeline) All() []Session {
	out := make([]Session, len(t.Sessions))
	for i := range t.Sessions {
		out[i] = Session(i)
	}
	return out
}

// Contains reports whether s is a valid index into the timeline.
func (t Timeline) Contains(s Session) bool {
	return s >= 0 && int(s) < len(t.Sessions)
}

// Info returns the descriptor for s. ok is false when s is out of range.
func (t Timeline) Info(s Session) (SessionInfo, bool) {
	if !t.Contains(s) {
		return SessionInfo{}, false
	}
	return t.Sessions[s], true
}

// Label returns the display label for s, or a placeholder when unknown.
func (t Timeline) Label(s Session) string {
	info, ok := t.Info(s)
	if !ok {
		return fmt.Sprintf("session %d", int(s))
	}
	return info.Label()
}

// Key returns the stable key for s, or "" when unknown.
func (t Timeline) Key(s Session) string {
	info, ok := t.Info(s)
	if !ok {
		return ""
	}
	return info.Key
}

// Parse resolves a session key (case-insensitive).
func (t Timeline) Parse(key string) (Session, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, info := range t.Sessions {
		if info.Key == key {
			return Session(i), true
		}
	}
	return 0, false
}

// FromSeriesYear resolves a series and year pair to a session.
func (t Timeline) FromSeriesYear(series Series, year int) (Session, bool) {
	for i, info := range t.Sessions {
		if info.Series == series && info.Year == year {
			return Session(i), true
		}
	}
	return 0, false
}
