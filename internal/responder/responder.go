// Package responder produces replies to customer chat messages.
//
// A Responder is either the built-in FAQ matcher or a remote HTTP assistant.
// Implementations are looked up by name through the registry in this
// package so the CLI can select one with a flag.
package responder

import (
	"context"
	"errors"
	"fmt"
)

// Responder answers a single chat message.
type Responder interface {
	Name() string
	Respond(ctx context.Context, message string) (string, error)
}

// Sentinel errors for classifying responder failures.
//
//	return fmt.Errorf("responder: %w", responder.ErrRateLimited)
var (
	// ErrUnauthorized indicates the remote assistant rejected the token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the remote assistant throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnavailable indicates a server-side failure worth retrying.
	ErrUnavailable = errors.New("responder unavailable")

	// ErrEmptyResponse indicates the assistant answered with no text.
	ErrEmptyResponse = errors.New("empty response")
)

// StatusError carries an unexpected HTTP status from the remote assistant.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}
