package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"charm.land/lipgloss/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/certcheck/internal/document"
	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/settings"
	"github.com/abhisek/certcheck/internal/ui/components"
)

// ErrNotEligible is returned by check --strict for an ineligible verdict.
var ErrNotEligible = errors.New("not eligible")

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Evaluate a selection document",
	Long: "Evaluate a YAML or JSON selection document and print the verdict.\n" +
		"A document that cannot be read as valid input yields the invalid-input verdict.",
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "text", "Output format: text or json")
	checkCmd.Flags().Bool("strict", false, "Exit non-zero when the verdict is not eligible")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", format)
	}

	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(s, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = logger.With("id", uuid.NewString(), "file", path)

	verdict, err := evaluateFile(cmd, &s, path)
	switch {
	case err == nil:
	case isIOError(err):
		return err
	case isInputError(err):
		logger.Warn("invalid document", "err", err)
	default:
		return err
	}

	logger.Debug("evaluated",
		"policy", s.Policy,
		"eligible", verdict.IsEligible,
		"details", len(verdict.Details))

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(verdict); err != nil {
			return fmt.Errorf("encode verdict: %w", err)
		}
	default:
		if _, err := lipgloss.Fprintln(out, components.VerdictBanner(verdict, 0)); err != nil {
			return fmt.Errorf("write verdict: %w", err)
		}
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict && !verdict.IsEligible {
		return ErrNotEligible
	}
	return nil
}

// evaluateFile loads and evaluates the document at path. A policy named in
// the document replaces s.Policy unless --policy was given. On input errors
// the returned verdict is the invalid-input verdict.
func evaluateFile(cmd *cobra.Command, s *settings.Settings, path string) (eligibility.Verdict, error) {
	doc, err := document.Load(path)
	if err != nil {
		return eligibility.InvalidInput(), err
	}

	fromDoc := false
	if p, _ := cmd.Flags().GetString("policy"); p == "" && doc.Policy != "" {
		s.Policy = doc.Policy
		fromDoc = true
	}
	e, err := newEvaluator(*s)
	if err != nil {
		if fromDoc && errors.Is(err, eligibility.ErrUnknownPolicy) {
			return eligibility.InvalidInput(), &document.ValidationError{Field: "policy", Message: "unknown policy", Err: err}
		}
		return eligibility.Verdict{}, err
	}
	return doc.Evaluate(e)
}

// isInputError reports whether err describes a bad document rather than a
// failure to run.
func isInputError(err error) bool {
	var verr *document.ValidationError
	return errors.As(err, &verr) || errors.Is(err, document.ErrUnsupportedVersion)
}

func isIOError(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}
