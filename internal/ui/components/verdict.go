package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/certcheck/internal/eligibility"
	"github.com/abhisek/certcheck/internal/ui/theme"
)

// Verdict headings shown above the message.
const (
	HeadingEligible    = "Eligible for Certification"
	HeadingNotEligible = "Not Eligible"
)

// VerdictBanner renders an eligibility verdict as a status alert: heading,
// message and one bullet per detail.
func VerdictBanner(v eligibility.Verdict, width int) string {
	heading := theme.NotEligible.Render(HeadingNotEligible)
	banner := theme.ErrorBanner
	if v.IsEligible {
		heading = theme.Eligible.Render(HeadingEligible)
		banner = theme.SuccessBanner
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(capitalize(v.Message)))

	bullet := lipgloss.NewStyle().Foreground(theme.Text)
	for _, d := range v.Details {
		b.WriteString("\n")
		b.WriteString(bullet.Render("• " + capitalize(d)))
	}

	if width > 4 {
		banner = banner.Width(width)
	}
	return banner.Render(b.String())
}

// capitalize upper-cases the first letter of s.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
