package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zoesolar/zoe/internal/cache"
	"zoesolar/zoe/internal/tui/components"
	"zoesolar/zoe/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	watchHistoryLen = 120
	watchMaxKeys    = 8
)

// WatchSource is the cache being watched.
type WatchSource interface {
	Stats() cache.Stats
	Keys() []string
	Clear()
}

// WatchOptions configures RunCacheWatch.
type WatchOptions struct {
	// Interval between samples. Defaults to one second.
	Interval time.Duration

	// Duration stops the view after it elapses. Zero runs until quit.
	Duration time.Duration

	// Ops returns the running total of operations issued against the
	// cache, used for the throughput sparkline. Optional.
	Ops func() uint64
}

// --- Messages ---

type watchTickMsg time.Time

// --- Cache watch model ---

type cacheWatchModel struct {
	src  WatchSource
	opts WatchOptions

	spinner spinner.Model

	stats    cache.Stats
	keys     []string
	sizes    []float64
	rates    []float64
	lastOps  uint64
	elapsed  time.Duration
	paused   bool
	status   string
	quitting bool

	width  int
	height int
}

func newCacheWatchModel(src WatchSource, opts WatchOptions) cacheWatchModel {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.AccentText

	m := cacheWatchModel{src: src, opts: opts, spinner: s}
	if opts.Ops != nil {
		m.lastOps = opts.Ops()
	}
	m.stats = src.Stats()
	m.keys = src.Keys()
	return m
}

// RunCacheWatch starts the full-window cache watch TUI. It returns when the
// user quits, the duration elapses, or ctx is canceled.
func RunCacheWatch(ctx context.Context, src WatchSource, opts WatchOptions) error {
	p := tea.NewProgram(newCacheWatchModel(src, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run cache watch: %w", err)
	}
	return nil
}

func (m cacheWatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.tick())
}

func (m cacheWatchModel) tick() tea.Cmd {
	return tea.Tick(m.opts.Interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

func (m cacheWatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case watchTickMsg:
		m = m.sample()
		if m.opts.Duration > 0 && m.elapsed >= m.opts.Duration {
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m cacheWatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "p", " ":
		m.paused = !m.paused
		if m.paused {
			m.status = "Paused"
		} else {
			m.status = ""
		}
	case "c":
		m.src.Clear()
		m.stats = m.src.Stats()
		m.keys = m.src.Keys()
		m.status = "Cache cleared"
	}
	return m, nil
}

// sample records one tick. While paused, time advances but nothing is read.
func (m cacheWatchModel) sample() cacheWatchModel {
	m.elapsed += m.opts.Interval
	if m.paused {
		return m
	}

	m.stats = m.src.Stats()
	m.keys = m.src.Keys()
	m.sizes = appendBounded(m.sizes, float64(m.stats.Size))

	if m.opts.Ops != nil {
		total := m.opts.Ops()
		rate := float64(total-m.lastOps) / m.opts.Interval.Seconds()
		m.lastOps = total
		m.rates = appendBounded(m.rates, rate)
	}
	return m
}

func appendBounded(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > watchHistoryLen {
		s = s[len(s)-watchHistoryLen:]
	}
	return s
}

func (m cacheWatchModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "cache watch", fmt.Sprintf("max %d", m.stats.MaxSize))
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "p", Desc: "pause"},
		{Key: "c", Desc: "clear"},
		{Key: "q", Desc: "quit"},
	})
	statusBar := components.StatusBar(m.width, m.status, false)

	contentH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if statusBar != "" {
		contentH -= lipgloss.Height(statusBar)
	}
	contentH = max(contentH, 1)

	sections := []string{header, m.renderContent(contentH)}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m cacheWatchModel) renderContent(height int) string {
	title := styles.Title.Render("Cache")
	if !m.paused {
		title = m.spinner.View() + " " + title
	}

	chartWidth := max(m.width/2-6, 20)
	charts := lipgloss.JoinVertical(lipgloss.Left,
		components.HistoryChart("Entries", m.sizes, chartWidth, ""),
		"",
		components.Sparkline("Operations", m.rates, chartWidth, "/s"),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Card.Render(m.renderStats()),
		"  ",
		charts,
	)

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, title, "", body),
	)
}

func (m cacheWatchModel) renderStats() string {
	labelWidth := 10
	row := func(label, value string) string {
		return styles.Label.Width(labelWidth).Render(label) + value
	}

	s := m.stats
	rows := []string{
		row("size", styles.FillStyle(s.Size, s.MaxSize).Render(fmt.Sprintf("%d / %d", s.Size, s.MaxSize))),
		row("hit rate", styles.HitRateStyle(s.HitRate()).Render(fmt.Sprintf("%.1f%%", s.HitRate()*100))),
		row("hits", styles.Value.Render(fmt.Sprint(s.Hits))),
		row("misses", styles.Value.Render(fmt.Sprint(s.Misses))),
		row("expired", styles.Value.Render(fmt.Sprint(s.Expired))),
		row("swept", styles.Value.Render(fmt.Sprint(s.Swept))),
		row("evicted", styles.Value.Render(fmt.Sprint(s.Evicted))),
		row("elapsed", styles.MutedText.Render(m.elapsed.Truncate(time.Second).String())),
		"",
		styles.Label.Render("oldest keys"),
	}

	keys := m.keys
	if len(keys) > watchMaxKeys {
		keys = keys[:watchMaxKeys]
	}
	if len(keys) == 0 {
		rows = append(rows, styles.MutedText.Render("  (empty)"))
	}
	for _, k := range keys {
		rows = append(rows, "  "+styles.MutedText.Render(ansi.Truncate(k, 24, "…")))
	}
	if extra := len(m.keys) - len(keys); extra > 0 {
		rows = append(rows, styles.MutedText.Render(fmt.Sprintf("  … %d more", extra)))
	}

	return strings.Join(rows, "\n")
}

// WatchLine renders one plain-text sample for non-interactive output.
func WatchLine(elapsed time.Duration, s cache.Stats) string {
	return fmt.Sprintf("t=%s size=%d/%d hits=%d misses=%d hit_rate=%.1f%% expired=%d swept=%d evicted=%d",
		elapsed.Truncate(time.Millisecond), s.Size, s.MaxSize, s.Hits, s.Misses, s.HitRate()*100, s.Expired, s.Swept, s.Evicted)
}
