package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — qualification-board blues with status accents
var (
	Primary   = lipgloss.Color("#12B2A6") // Marine Turquoise
	Secondary = lipgloss.Color("#94E7EA") // Sky Blue
	Accent    = lipgloss.Color("#FFBB1C") // Bright Orange
	Success   = lipgloss.Color("#84BD00") // Fresh Green
	Error     = lipgloss.Color("#FF757A") // Coral Pink
	Text      = lipgloss.Color("#FFFFFF") // White
	TextDim   = lipgloss.Color("#DFE1E1") // Mist
	Muted     = lipgloss.Color("#505759") // Graphite
	BgDark    = lipgloss.Color("#001B33") // Deep Midnight
	BgCard    = lipgloss.Color("#003057") // Midnight Blue
	Border    = lipgloss.Color("#505759") // Graphite
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Eligible = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	NotEligible = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Verdict banners, bordered on the left like the original status alert.
var (
	SuccessBanner = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Success).
			Padding(0, 2)

	ErrorBanner = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(Error).
			Padding(0, 2)
)
