package tui

import (
	"errors"
	"fmt"
	"strings"

	"zoesolar/zoe/internal/services/auth"
	"zoesolar/zoe/internal/tui/components"
	"zoesolar/zoe/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Messages ---

type tokenSavedMsg struct{}

type tokenSaveErrorMsg struct {
	err error
}

// --- Auth login model ---

type authLoginModel struct {
	service string
	store   auth.Store

	tokenInput textinput.Model

	width  int
	height int

	err      error
	saved    bool
	quitting bool
}

// RunAuthLogin prompts for a token in a full-window TUI and stores it for
// service. It reports whether a token was saved.
func RunAuthLogin(service string, store auth.Store) (bool, error) {
	p := tea.NewProgram(newAuthLoginModel(service, store), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("failed to run auth login: %w", err)
	}
	return result.(authLoginModel).saved, nil
}

func newAuthLoginModel(service string, store auth.Store) authLoginModel {
	ti := textinput.New()
	ti.Placeholder = "paste your token here"
	ti.Focus()
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.Width = 50

	return authLoginModel{service: service, store: store, tokenInput: ti}
}

func (m authLoginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m authLoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tokenSavedMsg:
		m.saved = true
		return m, tea.Quit

	case tokenSaveErrorMsg:
		m.err = msg.err
		return m, nil
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	return m, cmd
}

func (m authLoginModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		token := strings.TrimSpace(m.tokenInput.Value())
		if token == "" {
			m.err = errors.New("token cannot be empty")
			return m, nil
		}
		m.err = nil
		return m, m.saveToken(token)
	}

	var cmd tea.Cmd
	m.tokenInput, cmd = m.tokenInput.Update(msg)
	m.err = nil
	return m, cmd
}

func (m authLoginModel) saveToken(token string) tea.Cmd {
	return func() tea.Msg {
		if err := m.store.SetToken(m.service, token); err != nil {
			return tokenSaveErrorMsg{err: err}
		}
		return tokenSavedMsg{}
	}
}

func (m authLoginModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth login", m.service)
	footer := components.Footer(m.width, []components.KeyBinding{
		{Key: "enter", Desc: "save"},
		{Key: "esc", Desc: "cancel"},
	})

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.renderContent(contentH), footer)
}

func (m authLoginModel) renderContent(height int) string {
	lines := []string{
		styles.Title.Render("Token"),
		styles.MutedText.Render("Enter the bearer token for the " + m.service + " service"),
		"",
		m.tokenInput.View(),
	}
	if m.err != nil {
		lines = append(lines, "", styles.ErrorText.Render(m.err.Error()))
	}

	return lipgloss.Place(
		m.width, height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
