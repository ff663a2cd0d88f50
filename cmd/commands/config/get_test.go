package config

import (
	"encoding/json"
	"strings"
	"testing"

	"zoesolar/zoe/internal/config"
)

func TestGet_NotSetShowsDefault(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "max-size")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if strings.TrimSpace(stdout) != "not set (default 1000)" {
		t.Errorf("expected default hint, got: %s", stdout)
	}
}

func TestGet_Set(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{DefaultTTL: "10m"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "DEFAULT-TTL")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if strings.TrimSpace(stdout) != "10m" {
		t.Errorf("expected '10m', got: %s", stdout)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestGet_ListAllNonInteractive(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{LogLevel: "debug"}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _ := execConfig(t, "get")

	for _, want := range []string{"log-level: debug", "default-ttl: not set (default 5m0s)", "responder-url: not set"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("listing missing %q:\n%s", want, stdout)
		}
	}
}

func TestGet_ListJSON(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{MaxSize: "42"}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _ := execConfig(t, "get", "-o", "json")

	var values map[string]string
	if err := json.Unmarshal([]byte(stdout), &values); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, stdout)
	}
	if values["max-size"] != "42" || values["default-ttl"] != "" {
		t.Errorf("unexpected values: %v", values)
	}
}
