// Package components provides render-only building blocks (not tea.Model)
// that the zoe TUI models compose into views.
package components

import (
	"strings"

	"zoesolar/zoe/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────┐
//	│  ☀ zoe > cache watch          max 1000   │
//	└──────────────────────────────────────────┘
func Header(width int, breadcrumb string, right string) string {
	if width < 10 {
		return ""
	}

	left := styles.Title.Foreground(styles.Sun).Render("☀ zoe")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}

	if right != "" {
		right = styles.Subtitle.Render(right)
	}

	innerWidth := width - 4
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(left + strings.Repeat(" ", gap) + right)
}
