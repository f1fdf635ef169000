// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

const (
	colorTitle   = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorPath    = lipgloss.Color("#3B82F6")

	checkMark = "✓"
)

var (
	// TitleStyle renders the tool name in help output.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	// MutedStyle renders labels and secondary text.
	MutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	// SuccessStyle renders completed stages.
	SuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	// ErrorStyle renders the "Error:" prefix.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	// WarningStyle renders the "Warning:" prefix.
	WarningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	// PathStyle renders file paths and configuration keys.
	PathStyle = lipgloss.NewStyle().Foreground(colorPath)
)

// done renders a "✓ <what>" status line.
func done(what string) string {
	return SuccessStyle.Render(checkMark) + " " + what
}
