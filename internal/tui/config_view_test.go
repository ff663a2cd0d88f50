package tui

import (
	"errors"
	"strings"
	"testing"

	"zoesolar/zoe/internal/config"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(t *testing.T, m configViewModel, s string) configViewModel {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(configViewModel)
	}
	return m
}

func press(t *testing.T, m configViewModel, key tea.KeyType) (configViewModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return next.(configViewModel), cmd
}

func TestConfigView_EditAndSave(t *testing.T) {
	cfg := &config.Config{}
	var saved *config.Config
	m := newConfigViewModel(cfg, func(c *config.Config) error { saved = c; return nil })

	m, _ = press(t, m, tea.KeyEnter)
	if !m.editing {
		t.Fatal("expected edit mode")
	}
	m = typeInto(t, m, "10m")
	m, cmd := press(t, m, tea.KeyEnter)
	if cmd == nil {
		t.Fatal("expected save command")
	}

	next, _ := m.Update(cmd())
	m = next.(configViewModel)

	if saved == nil || saved.DefaultTTL != "10m" {
		t.Fatalf("expected DefaultTTL saved as 10m, got %+v", saved)
	}
	if m.editing || m.status != "Saved default-ttl" {
		t.Fatalf("editing=%v status=%q", m.editing, m.status)
	}
}

func TestConfigView_RejectsInvalidValue(t *testing.T) {
	cfg := &config.Config{}
	m := newConfigViewModel(cfg, func(*config.Config) error {
		t.Fatal("save must not be called for invalid input")
		return nil
	})

	m, _ = press(t, m, tea.KeyDown) // max-size
	m, _ = press(t, m, tea.KeyEnter)
	m = typeInto(t, m, "lots")
	m, cmd := press(t, m, tea.KeyEnter)

	if cmd != nil {
		t.Fatal("expected no command for invalid value")
	}
	if !m.isError || !strings.Contains(m.status, "invalid size") {
		t.Fatalf("status = %q, isError = %v", m.status, m.isError)
	}
	if cfg.MaxSize != "" {
		t.Fatalf("expected config unchanged, got MaxSize %q", cfg.MaxSize)
	}
}

func TestConfigView_SaveError(t *testing.T) {
	m := newConfigViewModel(&config.Config{}, func(*config.Config) error { return errors.New("read-only") })

	m, _ = press(t, m, tea.KeyEnter)
	m = typeInto(t, m, "1h")
	m, cmd := press(t, m, tea.KeyEnter)
	next, _ := m.Update(cmd())
	m = next.(configViewModel)

	if !m.isError || m.status != "Error: read-only" {
		t.Fatalf("status = %q, isError = %v", m.status, m.isError)
	}
}

func TestConfigView_ShowsDefaults(t *testing.T) {
	m := newConfigViewModel(&config.Config{}, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := next.(configViewModel).View()

	if !strings.Contains(view, "(default 5m0s)") {
		t.Errorf("view missing default ttl: %q", view)
	}
	if !strings.Contains(view, "(not set)") {
		t.Errorf("view missing unset responder-url")
	}
}
