package ui

import "github.com/charmbracelet/lipgloss"

// lexi's color palette: terracotta, olive, sea and chalk.
var (
	// Primary colors
	Terracotta = lipgloss.Color("#E2725B")
	Saffron    = lipgloss.Color("#F4C430")
	Olive      = lipgloss.Color("#808000")
	Sea        = lipgloss.Color("#2E86AB")
	Rust       = lipgloss.Color("#B7410E")
	Ink        = lipgloss.Color("#2D2D2D")
	Dim        = lipgloss.Color("#666666")
	Bright     = lipgloss.Color("#FFFFFF")
	Subtle     = lipgloss.Color("#AAAAAA")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Terracotta)

	Subtitle = lipgloss.NewStyle().
			Foreground(Saffron)

	Success = lipgloss.NewStyle().
		Foreground(Olive)

	Error = lipgloss.NewStyle().
		Foreground(Rust)

	Warning = lipgloss.NewStyle().
		Foreground(Saffron)

	Info = lipgloss.NewStyle().
		Foreground(Sea)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Terracotta).
		Bold(true)

	// Component styles
	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Terracotta).
		Padding(0, 1)

	// Letter is the heading of a group in the alphabetical listing.
	Letter = lipgloss.NewStyle().
		Foreground(Bright).
		Background(Terracotta).
		Padding(0, 1).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Saffron).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)

	// Secondary renders the translated side of an entry.
	Secondary = lipgloss.NewStyle().
			Foreground(Sea)
)

// Icon constants.
const (
	IconLexi    = "📖 "
	IconSpeak   = "🔊 "
	IconSuggest = "💡"
	IconLock    = "🔒"
	IconWarn    = "⚠️ "
	IconError   = "✗ "
	IconOk      = "✓ "
	IconArrow   = "→"
	IconDot     = "·"
)
