package ui

import "github.com/charmbracelet/lipgloss"

// Color palette for console output and the preview
var (
	// Primary colors
	ColorPrimary   = lipgloss.Color("212") // Pink/magenta for titles and theme names
	ColorSecondary = lipgloss.Color("62")  // Blue for selection and borders

	// Text colors
	ColorText      = lipgloss.Color("252") // Light gray for normal text
	ColorTextLight = lipgloss.Color("230") // Very light for selected items

	// Border and muted colors
	ColorBorder = lipgloss.Color("240") // Gray for rules, paths and footers
	ColorMuted  = lipgloss.Color("241") // Slightly different gray for hints

	// Semantic colors
	ColorSuccess = lipgloss.Color("46")  // Green for generated files
	ColorError   = lipgloss.Color("196") // Red for validation and write errors
	ColorWarning = lipgloss.Color("214") // Orange for stale files and confirmations
)
