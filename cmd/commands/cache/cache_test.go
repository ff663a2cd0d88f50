package cache

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"zoesolar/zoe/internal/config"
	"zoesolar/zoe/internal/services/aicache"
)

// setupTestConfig points the config package at a temp file.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// execCache runs the cache command with args and returns stdout and stderr.
func execCache(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	_ = cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestHash_Plain(t *testing.T) {
	stdout, stderr := execCache(t, "hash", "Hallo")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if strings.TrimSpace(stdout) != "184b7yf" {
		t.Errorf("expected 184b7yf, got %q", stdout)
	}
}

func TestHash_JoinsArgs(t *testing.T) {
	joined, _ := execCache(t, "hash", "Was", "kostet")
	quoted, _ := execCache(t, "hash", "Was kostet")

	if joined != quoted {
		t.Errorf("expected joined args to hash like one argument: %q vs %q", joined, quoted)
	}
}

func TestHash_Purpose(t *testing.T) {
	stdout, _ := execCache(t, "hash", "--purpose", "message", "Hallo")
	if strings.TrimSpace(stdout) != "message:184b7yf" {
		t.Errorf("expected message:184b7yf, got %q", stdout)
	}

	_, stderr := execCache(t, "hash", "--purpose", "weather", "Hallo")
	if !strings.Contains(stderr, "unknown purpose") {
		t.Errorf("expected unknown purpose error, got: %s", stderr)
	}
}

func TestHash_ComparisonPurpose(t *testing.T) {
	stdout, stderr := execCache(t, "hash", "--purpose", "comparison", "panel-400", "panel-430")
	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	want := aicache.ComparisonKey([]string{"panel-400", "panel-430"})
	if strings.TrimSpace(stdout) != want {
		t.Errorf("expected %s, got %q", want, stdout)
	}

	reversed, _ := execCache(t, "hash", "--purpose", "comparison", "panel-430", "panel-400")
	if reversed == stdout {
		t.Errorf("expected product order to change the key, both gave %q", stdout)
	}
}

func TestHash_RequiresArg(t *testing.T) {
	_, stderr := execCache(t, "hash")
	if !strings.Contains(stderr, "requires at least 1 arg") {
		t.Errorf("expected arg error, got: %s", stderr)
	}
}

func TestDemo(t *testing.T) {
	stdout, stderr := execCache(t, "demo")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{
		"after set a, b, c  size=2 keys=[b c]",
		`Hallo   key=message:184b7yf    "Hi!"`,
		"hallo   key=message:1x5yz53    (miss)",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("demo output missing %q:\n%s", want, stdout)
		}
	}
}

func TestWatch_Plain(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execCache(t, "watch", "--plain", "--duration", "300ms", "--interval", "100ms", "--workers", "2", "--keys", "20")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 stat lines, got %d:\n%s", len(lines), stdout)
	}
	if !strings.Contains(lines[0], "size=") || !strings.Contains(lines[0], "/1000") {
		t.Errorf("unexpected stat line: %q", lines[0])
	}
}

func TestWatch_InvalidFlags(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execCache(t, "watch", "--plain", "--set-ratio", "2")
	if !strings.Contains(stderr, "--set-ratio must be between 0 and 1") {
		t.Errorf("expected set-ratio error, got: %s", stderr)
	}

	_, stderr = execCache(t, "watch", "--plain", "--interval", "0s")
	if !strings.Contains(stderr, "--interval must be positive") {
		t.Errorf("expected interval error, got: %s", stderr)
	}
}

func TestWatch_BadConfig(t *testing.T) {
	path := setupTestConfig(t)
	if err := (&config.Config{MaxSize: "zero"}).SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	_, stderr := execCache(t, "watch", "--plain", "--duration", "100ms")
	if !strings.Contains(stderr, "max-size") {
		t.Errorf("expected max-size error, got: %s", stderr)
	}
}
