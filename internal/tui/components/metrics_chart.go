package components

import (
	"fmt"

	"zoesolar/zoe/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// chartHeight is the fixed height for history charts and sparklines.
const chartHeight = 5

// HistoryChart renders a line chart of data with a label header and a
// cur/min/max summary line.
func HistoryChart(label string, data []float64, width int, suffix string) string {
	if len(data) == 0 {
		return styles.MutedText.Render(label + ": no data")
	}

	// Reserve space for Y-axis labels (number + " ┤").
	plotWidth := max(width-9, 10)

	chart := asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Goldenrod),
		asciigraph.LabelColor(asciigraph.Default),
	)

	return lipgloss.JoinVertical(lipgloss.Left, styles.Label.Render(label), chart, summaryLine(data, suffix))
}

// Sparkline renders a compact bar sparkline of data with a label header.
// Only the most recent width samples are shown.
func Sparkline(label string, data []float64, width int, suffix string) string {
	if len(data) == 0 {
		return styles.MutedText.Render(label + ": no data")
	}

	width = max(width, 10)
	sl := sparkline.New(width, chartHeight,
		sparkline.WithStyle(lipgloss.NewStyle().Foreground(styles.Sky)),
	)
	if len(data) > width {
		data = data[len(data)-width:]
	}
	sl.PushAll(data)
	sl.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, styles.Label.Render(label), sl.View(), summaryLine(data, suffix))
}

func summaryLine(data []float64, suffix string) string {
	lo, hi := minMax(data)
	return styles.MutedText.Render(fmt.Sprintf("  cur: %s  min: %s  max: %s",
		FormatValue(data[len(data)-1], suffix),
		FormatValue(lo, suffix),
		FormatValue(hi, suffix),
	))
}

func minMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	lo, hi := data[0], data[0]
	for _, v := range data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// FormatValue renders v with an optional suffix, abbreviating thousands and
// millions.
func FormatValue(v float64, suffix string) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM%s", v/1_000_000, suffix)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK%s", v/1_000, suffix)
	default:
		return fmt.Sprintf("%.0f%s", v, suffix)
	}
}
