package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/settings"
)

var rootCmd = &cobra.Command{
	Use:   "certcheck",
	Short: "Qualification eligibility checker",
	Long: "Certcheck checks whether a learner's recorded assessment attempts make them\n" +
		"eligible for certification under a tiered qualification policy.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("policy", "", "Eligibility policy (overrides CERTCHECK_POLICY env var)")
	rootCmd.PersistentFlags().Int("max-resits", -1, "Resit cap per component (overrides the policy; -1 keeps it)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides CERTCHECK_LOG_LEVEL)")
	rootCmd.Flags().Bool("no-welcome", false, "Skip the welcome animation")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveSettings reads the environment and applies flag overrides on top.
func resolveSettings(cmd *cobra.Command) (settings.Settings, error) {
	s, err := settings.Load()
	if err != nil {
		return settings.Settings{}, err
	}
	if p, _ := cmd.Flags().GetString("policy"); p != "" {
		s.Policy = p
	}
	if cmd.Flags().Changed("max-resits") {
		n, _ := cmd.Flags().GetInt("max-resits")
		s.MaxResits = n
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		s.LogLevel = lvl
	}
	return s, nil
}

// newLogger builds the logger for s, writing to w.
func newLogger(s settings.Settings, w io.Writer) (*slog.Logger, error) {
	logger, err := s.NewLogger(w)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	return logger, nil
}

// newEvaluator resolves s into an Evaluator.
func newEvaluator(s settings.Settings) (*eligibility.Evaluator, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, fmt.Errorf("resolve policy: %w", err)
	}
	return eligibility.New(cfg)
}
