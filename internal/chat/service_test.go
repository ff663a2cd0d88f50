package chat

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"zoesolar/zoe/internal/analytics"
	"zoesolar/zoe/internal/cache"
	"zoesolar/zoe/internal/services/aicache"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubResponder struct {
	calls int
	reply string
	err   error
	delay time.Duration
	clock *clock.Mock
}

func (s *stubResponder) Name() string { return "stub" }

func (s *stubResponder) Respond(ctx context.Context, message string) (string, error) {
	s.calls++
	if s.clock != nil && s.delay > 0 {
		s.clock.Add(s.delay)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type memRecorder struct {
	mu    sync.Mutex
	saved []analytics.Interaction
	err   error
}

func (m *memRecorder) Save(i *analytics.Interaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, *i)
	return nil
}

func newTestService(t *testing.T, r *stubResponder, rec analytics.Recorder) (*Service, *clock.Mock) {
	t.Helper()
	mock := clock.NewMock()
	r.clock = mock
	c := aicache.New(cache.Options{Clock: mock, CleanupInterval: time.Hour})
	t.Cleanup(c.Close)
	return NewService(c, r, WithRecorder(rec), WithClock(mock)), mock
}

func TestAnswer_CachesRepeatedMessage(t *testing.T) {
	r := &stubResponder{reply: "Hi!"}
	rec := &memRecorder{}
	svc, _ := newTestService(t, r, rec)
	ctx := context.Background()

	first, err := svc.Answer(ctx, "Hallo")
	if err != nil {
		t.Fatalf("Answer error: %v", err)
	}
	if first.Cached || first.Text != "Hi!" || first.Responder != "stub" {
		t.Fatalf("first reply = %+v", first)
	}

	second, err := svc.Answer(ctx, "  Hallo ")
	if err != nil {
		t.Fatalf("Answer error: %v", err)
	}
	if !second.Cached || second.Text != "Hi!" {
		t.Fatalf("second reply = %+v, want cached", second)
	}
	if r.calls != 1 {
		t.Fatalf("responder called %d times, want 1", r.calls)
	}

	if len(rec.saved) != 2 {
		t.Fatalf("expected 2 recorded interactions, got %d", len(rec.saved))
	}
	if rec.saved[0].CacheHit || !rec.saved[1].CacheHit {
		t.Errorf("cache hit flags = %v, %v; want false, true", rec.saved[0].CacheHit, rec.saved[1].CacheHit)
	}
	if rec.saved[0].Kind != analytics.KindChat || rec.saved[0].Detail != "Hallo" {
		t.Errorf("unexpected interaction %+v", rec.saved[0])
	}
}

func TestAnswer_CaseSensitiveKeys(t *testing.T) {
	r := &stubResponder{reply: "Hi!"}
	svc, _ := newTestService(t, r, nil)

	_, _ = svc.Answer(context.Background(), "Hallo")
	reply, _ := svc.Answer(context.Background(), "hallo")
	if reply.Cached {
		t.Fatal("expected differently cased message to miss the cache")
	}
	if r.calls != 2 {
		t.Fatalf("responder called %d times, want 2", r.calls)
	}
}

func TestAnswer_ExpiresAfterMessageTTL(t *testing.T) {
	r := &stubResponder{reply: "Hi!"}
	svc, mock := newTestService(t, r, nil)

	_, _ = svc.Answer(context.Background(), "Hallo")
	mock.Add(aicache.MessageTTL + time.Second)

	reply, _ := svc.Answer(context.Background(), "Hallo")
	if reply.Cached {
		t.Fatal("expected cache miss after message TTL")
	}
}

func TestAnswer_EmptyMessage(t *testing.T) {
	r := &stubResponder{reply: "x"}
	rec := &memRecorder{}
	svc, _ := newTestService(t, r, rec)

	if _, err := svc.Answer(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if r.calls != 0 || len(rec.saved) != 0 {
		t.Fatalf("expected no responder call and no record, got %d calls, %d records", r.calls, len(rec.saved))
	}
}

func TestAnswer_ResponderErrorRecorded(t *testing.T) {
	boom := errors.New("upstream down")
	r := &stubResponder{err: boom}
	rec := &memRecorder{}
	svc, _ := newTestService(t, r, rec)

	_, err := svc.Answer(context.Background(), "Hallo")
	if !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if len(rec.saved) != 1 || rec.saved[0].Outcome != analytics.OutcomeError {
		t.Fatalf("expected one error interaction, got %+v", rec.saved)
	}

	// Errors are not cached.
	r.err = nil
	r.reply = "recovered"
	reply, err := svc.Answer(context.Background(), "Hallo")
	if err != nil || reply.Cached || reply.Text != "recovered" {
		t.Fatalf("reply = %+v, %v; want fresh %q", reply, err, "recovered")
	}
}

func TestAnswer_RecordsDuration(t *testing.T) {
	r := &stubResponder{reply: "ok", delay: 250 * time.Millisecond}
	rec := &memRecorder{}
	svc, _ := newTestService(t, r, rec)

	if _, err := svc.Answer(context.Background(), "Was kostet das?"); err != nil {
		t.Fatalf("Answer error: %v", err)
	}
	if got := rec.saved[0].DurationMs; got != 250 {
		t.Fatalf("DurationMs = %d, want 250", got)
	}
}

func TestAnswer_RecorderFailureIgnored(t *testing.T) {
	r := &stubResponder{reply: "ok"}
	svc, _ := newTestService(t, r, &memRecorder{err: errors.New("disk full")})
	core, logs := observer.New(zap.WarnLevel)
	svc.logger = zap.New(core)

	reply, err := svc.Answer(context.Background(), "Hallo")
	if err != nil {
		t.Fatalf("expected recorder failure to be swallowed, got %v", err)
	}
	if reply.Text != "ok" {
		t.Fatalf("reply = %+v", reply)
	}

	entries := logs.FilterMessage("failed to record interaction").All()
	if len(entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["error"]; got != "disk full" {
		t.Errorf("logged error = %v, want %q", got, "disk full")
	}
}
