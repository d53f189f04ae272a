package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#6B7280")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")

	// Status bar
	statusBarStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	// Entries
	selectedNameStyle = lipgloss.NewStyle().
				Foreground(primaryColor).
				Bold(true)

	nameStyle = lipgloss.NewStyle()

	descriptionStyle = lipgloss.NewStyle().
				Foreground(secondaryColor)

	// Status line
	statusOKStyle = lipgloss.NewStyle().
			Foreground(successColor)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	// Input area
	inputPromptStyle = lipgloss.NewStyle().
				Foreground(primaryColor)
)
