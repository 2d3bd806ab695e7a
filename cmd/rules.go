package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/certcheck/internal/eligibility"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the key rules of the active policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		e, err := newEvaluator(s)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Policy: %s\n\n", s.Policy)
		for i, r := range eligibility.KeyRules(e.Config()) {
			fmt.Fprintf(out, "%d. %s\n", i+1, r)
		}

		names := make([]string, 0, len(eligibility.Policies()))
		for _, p := range eligibility.Policies() {
			names = append(names, string(p))
		}
		fmt.Fprintf(out, "\nAvailable policies: %s\n", strings.Join(names, ", "))
		return nil
	},
}
