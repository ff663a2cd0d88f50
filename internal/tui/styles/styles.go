package styles

import "github.com/charmbracelet/lipgloss"

// --- Typography ---

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(White)

	Subtitle = lipgloss.NewStyle().
			Foreground(Gray)

	// Label is used for field names in detail views.
	Label = lipgloss.NewStyle().
		Foreground(Gray).
		Bold(true)

	Value = lipgloss.NewStyle().
		Foreground(White)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	AccentText = lipgloss.NewStyle().
			Foreground(Sun)

	ErrorText = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	SuccessText = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)
)

// HitRateStyle colors a cache hit rate: green from 80%, yellow from 50%,
// red below.
func HitRateStyle(rate float64) lipgloss.Style {
	switch {
	case rate >= 0.8:
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case rate >= 0.5:
		return lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	}
}

// FillStyle colors cache occupancy against its capacity.
func FillStyle(size, maxSize int) lipgloss.Style {
	if maxSize <= 0 {
		return Value
	}
	switch ratio := float64(size) / float64(maxSize); {
	case ratio >= 1:
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	case ratio >= 0.9:
		return lipgloss.NewStyle().Foreground(Yellow)
	default:
		return Value
	}
}

// --- Layout components ---

var (
	Border = lipgloss.RoundedBorder()

	// Card is a rounded-border panel for content sections.
	Card = lipgloss.NewStyle().
		Border(Border).
		BorderForeground(DimGray).
		Padding(1, 2)
)

// --- Key binding hint styles ---

var (
	KeyStyle = lipgloss.NewStyle().
			Foreground(Sun).
			Bold(true)

	KeyDescStyle = lipgloss.NewStyle().
			Foreground(Muted)

	KeySepStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// FormatKeyBinding formats a single key binding for the footer.
func FormatKeyBinding(key, desc string) string {
	return KeyStyle.Render(key) + " " + KeyDescStyle.Render(desc)
}
