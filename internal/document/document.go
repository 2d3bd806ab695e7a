package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/certcheck/internal/eligibility"
)

// SupportedMajor is the document format major version this build reads.
const SupportedMajor = "v1"

// ErrUnsupportedVersion indicates a document written for another format major.
var ErrUnsupportedVersion = errors.New("unsupported document version")

// ValidationError describes why a document was rejected.
type ValidationError struct {
	Field   string // Offending field path, empty for whole-document failures
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("invalid document: %s: %v", msg, e.Err)
	}
	return "invalid document: " + msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Mode selects the input modality a document describes.
type Mode string

const (
	ModeMatrix Mode = "matrix"
	ModeDated  Mode = "dated"
)

// AttemptEntry is one attempt inside a session.
type AttemptEntry struct {
	Component string `json:"component"`
	Kind      string `json:"kind"`
}

// ComponentEntry is one component record in the dated modality.
type ComponentEntry struct {
	Completed bool   `json:"completed"`
	Date      string `json:"date,omitempty"`
	Resit     bool   `json:"resit"`
	ResitDate string `json:"resit_date,omitempty"`
}

// Document is a learner's selections as read from YAML or JSON.
type Document struct {
	Version    string                    `json:"version"`
	Policy     string                    `json:"policy,omitempty"`
	Current    string                    `json:"current,omitempty"`
	Mode       Mode                      `json:"mode,omitempty"`
	Sessions   map[string][]AttemptEntry `json:"sessions,omitempty"`
	Components map[string]ComponentEntry `json:"components,omitempty"`
}

// Load reads and decodes the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Decode(data)
}

// Decode parses a YAML or JSON document, validates it against Schema and
// checks its version.
func Decode(data []byte) (*Document, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, &ValidationError{Message: "malformed YAML/JSON", Err: err}
	}
	if tree == nil {
		return nil, &ValidationError{Message: "document is empty"}
	}

	raw, err := json.Marshal(normalize(tree))
	if err != nil {
		return nil, &ValidationError{Message: "unsupported value", Err: err}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("re-parse document: %w", err)
	}
	if err := validateSchema(parsed); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ValidationError{Message: "decode document", Err: err}
	}
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return &doc, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return &ValidationError{Field: "version", Message: fmt.Sprintf("%q is not a semantic version (want %s)", v, SupportedMajor)}
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedVersion, v, SupportedMajor)
	}
	return nil
}

// normalize converts a decoded YAML tree into JSON-compatible values.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	case time.Time:
		return t.Format(dateLayout)
	default:
		return v
	}
}

const dateLayout = "2006-01-02"

// ModeFor returns the document's modality, falling back to the config.
func (d *Document) ModeFor(cfg eligibility.Config) Mode {
	if d.Mode != "" {
		return d.Mode
	}
	if cfg.DateBased {
		return ModeDated
	}
	return ModeMatrix
}

// Validate checks fields whose validity depends on the timeline and mode.
func (d *Document) Validate(cfg eligibility.Config) error {
	if _, err := d.current(cfg.Timeline); err != nil {
		return err
	}
	switch d.ModeFor(cfg) {
	case ModeMatrix:
		if len(d.Components) > 0 {
			return &ValidationError{Field: "components", Message: "not allowed in matrix mode"}
		}
		for _, key := range sortedKeys(d.Sessions) {
			if _, ok := cfg.Timeline.Parse(key); !ok {
				return &ValidationError{Field: "sessions." + key, Message: "unknown session"}
			}
		}
	case ModeDated:
		if len(d.Sessions) > 0 {
			return &ValidationError{Field: "sessions", Message: "not allowed in dated mode"}
		}
		for _, c := range eligibility.AllComponents() {
			entry := d.Components[string(c)]
			if _, err := parseDate("components."+string(c)+".date", entry.Date); err != nil {
				return err
			}
			if _, err := parseDate("components."+string(c)+".resit_date", entry.ResitDate); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Document) current(tl eligibility.Timeline) (*eligibility.Session, error) {
	if d.Current == "" {
		return nil, nil
	}
	s, ok := tl.Parse(d.Current)
	if !ok {
		return nil, &ValidationError{Field: "current", Message: fmt.Sprintf("unknown session %q", d.Current)}
	}
	return &s, nil
}

// SelectionSet converts a matrix-mode document into evaluator input.
func (d *Document) SelectionSet(tl eligibility.Timeline) (eligibility.SelectionSet, error) {
	set := eligibility.NewSelectionSet()
	cur, err := d.current(tl)
	if err != nil {
		return set, err
	}
	set.Current = cur

	for _, key := range sortedKeys(d.Sessions) {
		s, ok := tl.Parse(key)
		if !ok {
			return set, &ValidationError{Field: "sessions." + key, Message: "unknown session"}
		}
		for _, a := range d.Sessions[key] {
			set.Add(s, eligibility.Attempt{
				Kind:      eligibility.AttemptKind(a.Kind),
				Component: eligibility.ComponentKind(a.Component),
			})
		}
	}
	return set, nil
}

// DatedSelection converts a dated-mode document into evaluator input.
// Empty dates stay zero so the evaluator reports them as missing.
func (d *Document) DatedSelection(tl eligibility.Timeline) (eligibility.DatedSelection, error) {
	out := eligibility.DatedSelection{Components: make(map[eligibility.ComponentKind]eligibility.ComponentRecord)}
	cur, err := d.current(tl)
	if err != nil {
		return out, err
	}
	out.Current = cur

	for key, entry := range d.Components {
		c := eligibility.ComponentKind(key)
		date, err := parseDate("components."+key+".date", entry.Date)
		if err != nil {
			return out, err
		}
		resitDate, err := parseDate("components."+key+".resit_date", entry.ResitDate)
		if err != nil {
			return out, err
		}
		out.Components[c] = eligibility.ComponentRecord{
			Completed: entry.Completed,
			Date:      date,
			Resit:     entry.Resit,
			ResitDate: resitDate,
		}
	}
	return out, nil
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Message: "invalid date", Err: err}
	}
	return t, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Evaluate validates the document against e's config and runs the matching
// evaluator entry point.
func (d *Document) Evaluate(e *eligibility.Evaluator) (eligibility.Verdict, error) {
	cfg := e.Config()
	if err := d.Validate(cfg); err != nil {
		return eligibility.InvalidInput(), err
	}
	if d.ModeFor(cfg) == ModeDated {
		sel, err := d.DatedSelection(cfg.Timeline)
		if err != nil {
			return eligibility.InvalidInput(), err
		}
		return e.EvaluateDated(sel), nil
	}
	set, err := d.SelectionSet(cfg.Timeline)
	if err != nil {
		return eligibility.InvalidInput(), err
	}
	return e.Evaluate(set), nil
}
