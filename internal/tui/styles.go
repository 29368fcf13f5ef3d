package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/soft-focus/themegen/internal/ui"
)

// Styles defines all visual styles for the TUI
type Styles struct {
	// Layout
	ListPanel   lipgloss.Style
	DetailPanel lipgloss.Style

	// Header/Footer
	Header    lipgloss.Style
	Footer    lipgloss.Style
	StatusBar lipgloss.Style

	// List items
	SelectedItem lipgloss.Style
	NormalItem   lipgloss.Style

	// Detail
	DetailTitle lipgloss.Style
	Rule        lipgloss.Style
	ErrorText   lipgloss.Style

	// Popup
	PopupBorder lipgloss.Style
	PopupTitle  lipgloss.Style

	// Filter
	FilterPrompt lipgloss.Style
}

// DefaultStyles returns the default style configuration
func DefaultStyles() Styles {
	return Styles{
		ListPanel: lipgloss.NewStyle().
			Padding(0, 1),

		DetailPanel: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ui.ColorBorder).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorPrimary).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(ui.ColorBorder).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(ui.ColorWarning).
			Padding(0, 1),

		SelectedItem: lipgloss.NewStyle().
			Background(ui.ColorSecondary).
			Foreground(ui.ColorTextLight),

		NormalItem: lipgloss.NewStyle().
			Foreground(ui.ColorText),

		DetailTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorPrimary),

		Rule: lipgloss.NewStyle().
			Foreground(ui.ColorMuted),

		ErrorText: lipgloss.NewStyle().
			Foreground(ui.ColorError),

		PopupBorder: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ui.ColorSecondary).
			Padding(1, 2),

		PopupTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.ColorPrimary),

		FilterPrompt: lipgloss.NewStyle().
			Foreground(ui.ColorPrimary),
	}
}

// StatusIcons maps verify outcomes to list markers
var StatusIcons = map[string]string{
	"ok":      ui.IconSuccess,
	"missing": ui.IconMissing,
	"stale":   ui.IconStale,
	"invalid": ui.IconError,
}
