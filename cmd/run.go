package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/certcheck/internal/app"
)

// runApp resolves settings, builds the evaluator, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	s, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(s, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	e, err := newEvaluator(s)
	if err != nil {
		return err
	}

	skip, _ := cmd.Flags().GetBool("no-welcome")
	return app.Run(app.Options{
		Evaluator:   e,
		Policy:      s.Policy,
		Logger:      logger,
		SkipWelcome: skip,
	})
}
