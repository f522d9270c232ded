package style

import "github.com/charmbracelet/lipgloss"

// Palette defines the application's color scheme.
var (
	Base    = lipgloss.Color("#12122b")
	Text    = lipgloss.Color("#e4e4f0")
	Subtext = lipgloss.Color("#a6adc8")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#212140")

	Purple = lipgloss.Color("#7c3aed")
	Indigo = lipgloss.Color("#6366f1")
	Pink   = lipgloss.Color("#ec4899")
	Red    = lipgloss.Color("#f38ba8")
	Yellow = lipgloss.Color("#f9e2af")
	Green  = lipgloss.Color("#a6e3a1")
	Blue   = lipgloss.Color("#89b4fa")

	AccentColor  = Purple
	SuccessColor = Green
	InfoColor    = Blue
	ErrorColor   = Red
	HiRed        = Red
	FaintColor   = Overlay
)
