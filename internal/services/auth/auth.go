// Package auth stores credentials for the external services zoe talks to.
package auth

import (
	"errors"
	"slices"

	"zoesolar/zoe/internal/util"
)

const ServiceName = "zoe"

// ResponderService names the credential sent to the HTTP responder.
const ResponderService = "responder"

// KnownServices lists the services that accept a stored token.
var KnownServices = []string{ResponderService}

var (
	ErrTokenNotFound  = errors.New("auth token not found")
	ErrUnknownService = errors.New("unknown service")
)

type Store interface {
	SetToken(service string, token string) error
	GetToken(service string) (string, error)
	DeleteToken(service string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeService normalizes a service name for consistent key lookup.
func NormalizeService(service string) string {
	return util.NormalizeKey(service)
}

// ValidateService reports ErrUnknownService for names outside KnownServices.
func ValidateService(service string) error {
	if slices.Contains(KnownServices, NormalizeService(service)) {
		return nil
	}
	return ErrUnknownService
}

// TokenOrEmpty returns the stored token for service, or "" when none is
// stored. Other store errors are returned.
func TokenOrEmpty(store Store, service string) (string, error) {
	token, err := store.GetToken(service)
	if errors.Is(err, ErrTokenNotFound) {
		return "", nil
	}
	return token, err
}
