package settings

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/certcheck/internal/eligibility"
)

// Settings holds environment-derived configuration. Command-line flags
// are applied on top by the caller.
type Settings struct {
	Policy   string `env:"CERTCHECK_POLICY" envDefault:"standard"`
	LogLevel string `env:"CERTCHECK_LOG_LEVEL" envDefault:"warn"`

	// MaxResits overrides the policy's resit cap. Negative means "use the
	// policy default".
	MaxResits int `env:"CERTCHECK_MAX_RESITS" envDefault:"-1"`

	// RequireAllComponents overrides the policy when set. Nil keeps the
	// policy's own presence rule.
	RequireAllComponents *bool `env:"CERTCHECK_REQUIRE_ALL_COMPONENTS"`
}

// Load parses Settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Config resolves the settings into an evaluator configuration.
func (s Settings) Config() (eligibility.Config, error) {
	policy := eligibility.Policy(strings.TrimSpace(s.Policy))
	if policy == "" {
		policy = eligibility.DefaultPolicy
	}
	cfg, err := eligibility.PolicyConfig(policy)
	if err != nil {
		return eligibility.Config{}, err
	}

	if s.MaxResits >= 0 {
		cfg.MaxResitsPerComponent = s.MaxResits
	}
	if s.RequireAllComponents != nil {
		cfg.RequireAllComponents = *s.RequireAllComponents
	}

	if err := cfg.Validate(); err != nil {
		return eligibility.Config{}, err
	}
	return cfg, nil
}

// Level maps the configured log level name to a slog.Level.
func (s Settings) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s.LogLevel))); err != nil {
		return slog.LevelWarn, fmt.Errorf("log level %q: %w", s.LogLevel, err)
	}
	return lvl, nil
}

// NewLogger builds the text logger used by the CLI.
func (s Settings) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := s.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
