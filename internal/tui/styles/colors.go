// Package styles provides the color palette and style definitions for the
// zoe TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text
	White   = lipgloss.Color("#E8E6E3")
	Gray    = lipgloss.Color("#8A8A8A")
	Muted   = lipgloss.Color("#5C5C5C")
	DimGray = lipgloss.Color("#444444")

	// Accent (solar)
	Sun = lipgloss.Color("#FFB547")
	Sky = lipgloss.Color("#5FAFFF")

	// Status
	Green  = lipgloss.Color("#5FD787")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")
)
