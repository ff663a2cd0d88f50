package util

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateHTTPURL checks that s is an absolute http or https URL with a host.
// An empty string is accepted and means "unset".
func ValidateHTTPURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://, got %q", s)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", s)
	}
	return nil
}
