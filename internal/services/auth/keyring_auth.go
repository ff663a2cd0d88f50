package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringStore keeps tokens in the OS keychain, one entry per service under
// a shared keychain service name.
type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetToken(service string, token string) error {
	if err := keyring.Set(k.serviceName, NormalizeService(service), token); err != nil {
		return fmt.Errorf("auth: failed to store token: %w", err)
	}
	return nil
}

func (k *KeyringStore) GetToken(service string) (string, error) {
	token, err := keyring.Get(k.serviceName, NormalizeService(service))
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	return "", fmt.Errorf("auth: failed to read token: %w", err)
}

func (k *KeyringStore) DeleteToken(service string) error {
	err := keyring.Delete(k.serviceName, NormalizeService(service))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}
