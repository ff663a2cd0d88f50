package tui

import (
	"errors"
	"fmt"
	"strings"

	"zoesolar/zoe/internal/services/auth"
	"zoesolar/zoe/internal/tui/components"
	"zoesolar/zoe/internal/tui/styles"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ServiceStatus is the credential state of one service.
type ServiceStatus struct {
	Name   string
	OK     bool
	Detail string
}

// CollectServiceStatus reads the stored token state of every known service.
func CollectServiceStatus(store auth.Store) []ServiceStatus {
	statuses := make([]ServiceStatus, 0, len(auth.KnownServices))
	for _, name := range auth.KnownServices {
		token, err := store.GetToken(name)
		switch {
		case err == nil:
			statuses = append(statuses, ServiceStatus{Name: name, OK: true, Detail: "token " + maskToken(token)})
		case errors.Is(err, auth.ErrTokenNotFound):
			statuses = append(statuses, ServiceStatus{Name: name, Detail: "not logged in"})
		default:
			statuses = append(statuses, ServiceStatus{Name: name, Detail: fmt.Sprintf("error: %v", err)})
		}
	}
	return statuses
}

// maskToken keeps the last four characters of tokens longer than eight.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("•", 4)
	}
	return strings.Repeat("•", 4) + token[len(token)-4:]
}

// --- Auth status model ---

type authStatusModel struct {
	statuses []ServiceStatus

	width  int
	height int
}

// RunAuthStatus starts the full-window auth status TUI.
func RunAuthStatus(store auth.Store) error {
	p := tea.NewProgram(authStatusModel{statuses: CollectServiceStatus(store)}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m authStatusModel) Init() tea.Cmd {
	return nil
}

func (m authStatusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m authStatusModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "auth status", "")
	footer := components.Footer(m.width, []components.KeyBinding{{Key: "q", Desc: "quit"}})
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 1)

	rows := make([]string, 0, len(m.statuses))
	for _, s := range m.statuses {
		detail := styles.MutedText.Render(s.Detail)
		if s.OK {
			detail = styles.SuccessText.Render(s.Detail)
		}
		rows = append(rows, styles.Label.Width(14).Render(s.Name)+detail)
	}

	card := lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render("Service Credentials"),
		"",
		styles.Card.Width(48).Render(strings.Join(rows, "\n")),
	)
	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, card)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}
