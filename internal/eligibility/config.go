package eligibility

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPolicy is returned when a policy name is not registered.
var ErrUnknownPolicy = errors.New("unknown policy")

// Config controls which rules the Evaluator applies and their limits.
type Config struct {
	// Timeline is the ordered set of sessions attempts may be recorded in.
	Timeline Timeline

	// MaxResitsPerComponent caps resit attempts per component across all
	// sessions. Zero means no resits are allowed.
	MaxResitsPerComponent int

	// RequireAllComponents fails evaluation when any of the three
	// components has no attempt at all. When false, only the External
	// component is required (via the terminal rule).
	RequireAllComponents bool

	// DateBased selects the date-entry modality for collaborators that
	// support both. EvaluateDated is available regardless.
	DateBased bool

	// RequireCurrentSession fails evaluation up front when the learner's
	// current series is not provided.
	RequireCurrentSession bool
}

// Validate checks the config for values the Evaluator cannot work with.
func (c Config) Validate() error {
	if c.Timeline.Len() == 0 {
		return errors.New("timeline has no sessions")
	}
	seen := make(map[string]bool, c.Timeline.Len())
	for i, info := range c.Timeline.Sessions {
		if info.Key == "" {
			return fmt.Errorf("timeline session %d has no key", i)
		}
		if seen[info.Key] {
			return fmt.Errorf("timeline session key %q is duplicated", info.Key)
		}
		seen[info.Key] = true
	}
	if c.MaxResitsPerComponent < 0 {
		return fmt.Errorf("max resits per component must be >= 0, got %d", c.MaxResitsPerComponent)
	}
	return nil
}

// Policy names a Config preset.
type Policy string

const (
	// PolicyStandard allows three resits per component and requires all
	// three components.
	PolicyStandard Policy = "standard"

	// PolicySingleResit allows one resit per component and only requires
	// the external assessment explicitly.
	PolicySingleResit Policy = "single-resit"

	// PolicyDated is the date-entry checker: one resit per component and
	// the current series must be supplied.
	PolicyDated Policy = "dated"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = PolicyStandard

var policies = map[Policy]func() Config{
	PolicyStandard: func() Config {
		return Config{
			Timeline:              DefaultTimeline(),
			MaxResitsPerComponent: 3,
			RequireAllComponents:  true,
		}
	},
	PolicySingleResit: func() Config {
		return Config{
			Timeline:              DefaultTimeline(),
			MaxResitsPerComponent: 1,
		}
	},
	PolicyDated: func() Config {
		return Config{
			Timeline:              DefaultTimeline(),
			MaxResitsPerComponent: 1,
			DateBased:             true,
			RequireCurrentSession: true,
		}
	},
}

// Policies returns the registered policy names in sorted order.
func Policies() []Policy {
	out := make([]Policy, 0, len(policies))
	for p := range policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// PolicyConfig returns the Config for a named policy.
func PolicyConfig(p Policy) (Config, error) {
	build, ok := policies[p]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, p)
	}
	return build(), nil
}

// DefaultConfig returns the standard policy's Config.
func DefaultConfig() Config {
	return policies[DefaultPolicy]()
}
