package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("aborted")

func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// PromptMessage asks the user for one chat message. An empty submission
// ends the conversation and is returned as "".
func PromptMessage(accessible bool) (string, error) {
	var message string
	input := huh.NewInput().
		Title("Ihre Frage").
		Description("Leere Eingabe beendet den Chat").
		Placeholder("Was kostet eine PV-Anlage?").
		CharLimit(500).
		Value(&message)

	if err := runForm(accessible, huh.NewGroup(input)); err != nil {
		return "", err
	}
	return strings.TrimSpace(message), nil
}

// ConfirmPrune asks before deleting interactions older than olderThan.
func ConfirmPrune(accessible bool, olderThan time.Duration) (bool, error) {
	confirmed := false
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf("Delete interactions older than %s?", olderThan)).
		Affirmative("Delete").
		Negative("Keep").
		Value(&confirmed)

	if err := runForm(accessible, huh.NewGroup(confirm)); err != nil {
		return false, err
	}
	return confirmed, nil
}
