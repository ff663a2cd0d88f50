package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"zoesolar/zoe/internal/analytics"
	"zoesolar/zoe/internal/config"
	"zoesolar/zoe/internal/database"
	"zoesolar/zoe/internal/services/auth"
)

// setupTestEnv points config and database at temp files and swaps in an
// in-memory credential store.
func setupTestEnv(t *testing.T) (configPath string, store *auth.MockStore) {
	t.Helper()
	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.json")
	config.SetPath(configPath)
	database.SetPath(filepath.Join(dir, "zoe.db"))

	store = auth.NewMockStore()
	prev := storeFactory
	storeFactory = func() auth.Store { return store }

	t.Cleanup(func() {
		config.ResetPath()
		database.ResetPath()
		storeFactory = prev
	})
	return configPath, store
}

func execChat(t *testing.T, stdin string, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	_ = cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestChat_FAQWithCacheMarker(t *testing.T) {
	setupTestEnv(t)

	stdout, stderr := execChat(t, "Hallo\n\nHallo\nWas kostet eine Anlage?\n")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 replies, got %d:\n%s", len(lines), stdout)
	}
	if strings.HasSuffix(lines[0], "(cached)") {
		t.Errorf("first reply should not be cached: %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "(cached)") {
		t.Errorf("second reply should be cached: %q", lines[1])
	}
	if !strings.Contains(lines[2], "12.000") {
		t.Errorf("expected price answer, got %q", lines[2])
	}

	repo, err := analytics.Open()
	if err != nil {
		t.Fatalf("open analytics: %v", err)
	}
	defer repo.Close()

	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("list analytics: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 recorded interactions, got %d", len(entries))
	}
}

func TestChat_NoRecord(t *testing.T) {
	setupTestEnv(t)

	execChat(t, "Hallo\n", "--no-record")

	repo, err := analytics.Open()
	if err != nil {
		t.Fatalf("open analytics: %v", err)
	}
	defer repo.Close()

	entries, _ := repo.List(10)
	if len(entries) != 0 {
		t.Fatalf("expected no interactions, got %d", len(entries))
	}
}

func TestChat_HTTPResponder(t *testing.T) {
	configPath, store := setupTestEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q", got)
		}
		var body struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "echo: " + body.Message})
	}))
	defer srv.Close()

	if err := (&config.Config{ResponderURL: srv.URL}).SaveTo(configPath); err != nil {
		t.Fatalf("save config: %v", err)
	}
	_ = store.SetToken(auth.ResponderService, "secret")

	stdout, stderr := execChat(t, "Moin\n", "--responder", "http")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if strings.TrimSpace(stdout) != "echo: Moin" {
		t.Errorf("expected echo reply, got %q", stdout)
	}
}

func TestChat_HTTPResponderNeedsURL(t *testing.T) {
	setupTestEnv(t)

	_, stderr := execChat(t, "Hallo\n", "--responder", "http")
	if !strings.Contains(stderr, "needs a URL") {
		t.Errorf("expected missing URL error, got: %s", stderr)
	}
}

func TestChat_UnknownResponder(t *testing.T) {
	setupTestEnv(t)

	_, stderr := execChat(t, "Hallo\n", "--responder", "oracle")
	if !strings.Contains(stderr, "unknown responder") {
		t.Errorf("expected unknown responder error, got: %s", stderr)
	}
}

func TestChat_FailedAnswersReported(t *testing.T) {
	configPath, _ := setupTestEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()
	if err := (&config.Config{ResponderURL: srv.URL}).SaveTo(configPath); err != nil {
		t.Fatalf("save config: %v", err)
	}

	stdout, stderr := execChat(t, "Hallo\n", "--responder", "http")

	if !strings.Contains(stdout, "unauthorized") {
		t.Errorf("expected per-message error line, got %q", stdout)
	}
	if !strings.Contains(stderr, "1 message(s) could not be answered") {
		t.Errorf("expected summary error, got: %s", stderr)
	}
}
