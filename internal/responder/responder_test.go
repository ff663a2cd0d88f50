package responder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"zoesolar/zoe/internal/retry"
	"zoesolar/zoe/internal/services/auth"
)

// newTestHTTPResponder creates an HTTPResponder pointed at the given test
// server that retries without sleeping.
func newTestHTTPResponder(t *testing.T, serverURL string) *HTTPResponder {
	t.Helper()
	h := NewHTTPResponder(serverURL, "test-token", nil)
	h.retry = retry.Config{MaxAttempts: 3}
	return h
}

func TestFAQResponder_MatchesKeyword(t *testing.T) {
	f := NewFAQResponder()

	tests := []struct {
		message string
		want    string
	}{
		{"Was kostet eine Anlage?", "12.000"},
		{"Lohnt sich ein SPEICHER?", "Batteriespeicher"},
		{"Gibt es Förderung?", "Mehrwertsteuersatz"},
		{"Hallo", "Zoe-Solar-Assistent"},
		{"hi", "Zoe-Solar-Assistent"},
	}
	for _, tt := range tests {
		got, err := f.Respond(context.Background(), tt.message)
		if err != nil {
			t.Fatalf("Respond(%q) error: %v", tt.message, err)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("Respond(%q) = %q, want it to contain %q", tt.message, got, tt.want)
		}
	}
}

func TestFAQResponder_MatchesWordStarts(t *testing.T) {
	f := NewFAQResponder()

	tests := []struct {
		message string
		want    string
	}{
		{"Sushi ist lecker", faqFallback},
		{"Ich brauche Hilfe", faqFallback},
		{"Das Dach ist steuerlich relevant", faqFallback},
		{"Hi, wie geht's?", "Zoe-Solar-Assistent"},
		{"Guten Tag!", "Zoe-Solar-Assistent"},
		{"Lädt mein E-Auto mit Solarstrom?", "Wallbox"},
	}
	for _, tt := range tests {
		got, err := f.Respond(context.Background(), tt.message)
		if err != nil {
			t.Fatalf("Respond(%q) error: %v", tt.message, err)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("Respond(%q) = %q, want it to contain %q", tt.message, got, tt.want)
		}
	}
}

func TestFAQResponder_Fallback(t *testing.T) {
	got, err := NewFAQResponder().Respond(context.Background(), "Wie ist das Wetter?")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if got != faqFallback {
		t.Errorf("Respond = %q, want fallback", got)
	}
}

func TestFAQResponder_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewFAQResponder().Respond(ctx, "Hallo"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHTTPResponder_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		var body replyRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Message != "Hallo" {
			t.Errorf("message = %q, want %q", body.Message, "Hallo")
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": " Hi! "})
	}))
	defer srv.Close()

	got, err := newTestHTTPResponder(t, srv.URL).Respond(context.Background(), "Hallo")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if got != "Hi!" {
		t.Errorf("Respond = %q, want %q", got, "Hi!")
	}
}

func TestHTTPResponder_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	got, err := newTestHTTPResponder(t, srv.URL).Respond(context.Background(), "q")
	if err != nil {
		t.Fatalf("Respond error: %v", err)
	}
	if got != "ok" || calls.Load() != 3 {
		t.Fatalf("Respond = %q after %d calls; want %q after 3", got, calls.Load(), "ok")
	}
}

func TestHTTPResponder_RateLimitedExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestHTTPResponder(t, srv.URL).Respond(context.Background(), "q")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusTooManyRequests {
		t.Fatalf("expected StatusError 429, got %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestHTTPResponder_UnauthorizedNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestHTTPResponder(t, srv.URL).Respond(context.Background(), "q")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected 1 call, got %d", calls.Load())
	}
}

func TestHTTPResponder_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "  "})
	}))
	defer srv.Close()

	_, err := newTestHTTPResponder(t, srv.URL).Respond(context.Background(), "q")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestHTTPResponder_NoTokenNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "ok"})
	}))
	defer srv.Close()

	h := NewHTTPResponder(srv.URL, "", nil)
	if _, err := h.Respond(context.Background(), "q"); err != nil {
		t.Fatalf("Respond error: %v", err)
	}
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	RegisterFAQ()
	RegisterHTTP()

	if got := List(); !slices.Equal(got, []string{"faq", "http"}) {
		t.Fatalf("List = %v, want [faq http]", got)
	}

	r, err := Get(" FAQ ", Settings{})
	if err != nil || r.Name() != "faq" {
		t.Fatalf("Get(faq) = %v, %v", r, err)
	}

	if _, err := Get("http", Settings{}); err == nil {
		t.Fatal("expected error for http responder without URL")
	}

	store := auth.NewMockStore()
	_ = store.SetToken(auth.ResponderService, "stored")
	r, err = Get("http", Settings{URL: "http://localhost:9/reply", Store: store})
	if err != nil {
		t.Fatalf("Get(http) error: %v", err)
	}
	if h, ok := r.(*HTTPResponder); !ok || h.token != "stored" {
		t.Fatalf("expected HTTPResponder with stored token, got %#v", r)
	}

	if _, err := Get("gpt", Settings{}); err == nil {
		t.Fatal("expected error for unknown responder")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	RegisterFAQ()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	RegisterFAQ()
}
