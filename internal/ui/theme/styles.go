package theme

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#D4A574") // warm amber
	ColorSecondary = lipgloss.Color("#A0A0A0") // muted gray
	ColorAccent    = lipgloss.Color("#7AA2F7") // blue accent
	ColorSuccess   = lipgloss.Color("#9ECE6A") // green
	ColorError     = lipgloss.Color("#F7768E") // red/pink
	ColorWarning   = lipgloss.Color("#E0AF68") // yellow/amber
	ColorDim       = lipgloss.Color("#565656") // dim gray
	ColorBg        = lipgloss.Color("#1A1B26") // dark background
	ColorBgAlt     = lipgloss.Color("#24283B") // slightly lighter bg
	ColorText      = lipgloss.Color("#C0CAF5") // main text
)

// Styles used throughout the app
var (
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			PaddingLeft(1)

	StylePrompt = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			PaddingLeft(1)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			PaddingLeft(1)

	StyleNotice = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			PaddingLeft(1)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorDim).
			PaddingLeft(1)

	StyleBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim)
)
