// Package chat answers customer messages, serving repeats from the AI cache
// and recording every answer for analytics.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"zoesolar/zoe/internal/analytics"
	"zoesolar/zoe/internal/responder"
	"zoesolar/zoe/internal/services/aicache"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

var ErrEmptyMessage = errors.New("chat: message is empty")

// Reply is the answer to one message.
type Reply struct {
	Text      string
	Cached    bool
	Responder string
}

// Service answers chat messages.
type Service struct {
	cache     *aicache.Service
	responder responder.Responder
	recorder  analytics.Recorder
	clock     clock.Clock
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records every answer to r.
func WithRecorder(r analytics.Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock sets the clock used to time answers.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// NewService returns a chat service answering through r and caching in c.
func NewService(c *aicache.Service, r responder.Responder, opts ...Option) *Service {
	s := &Service{
		cache:     c,
		responder: r,
		clock:     clock.New(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer replies to message. Identical messages (after trimming) within the
// message TTL are served from the cache.
func (s *Service) Answer(ctx context.Context, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	start := s.clock.Now()
	text, cached, err := aicache.Remember(ctx, s.cache, aicache.MessageKey(message), aicache.MessageTTL,
		func(ctx context.Context) (string, error) {
			return s.responder.Respond(ctx, message)
		})
	elapsed := s.clock.Since(start)

	s.record(message, cached, elapsed.Milliseconds(), err)

	if err != nil {
		return Reply{}, fmt.Errorf("chat: %s responder: %w", s.responder.Name(), err)
	}

	s.logger.Debug("answered message",
		zap.Bool("cached", cached),
		zap.Duration("elapsed", elapsed),
	)
	return Reply{Text: text, Cached: cached, Responder: s.responder.Name()}, nil
}

func (s *Service) record(message string, cached bool, durationMs int64, answerErr error) {
	if s.recorder == nil {
		return
	}

	outcome := analytics.OutcomeSuccess
	detail := analytics.SummarizeDetail(message)
	if answerErr != nil {
		outcome = analytics.OutcomeError
		detail = analytics.SummarizeDetail(answerErr.Error())
	}

	interaction := &analytics.Interaction{
		Timestamp:  s.clock.Now(),
		Kind:       analytics.KindChat,
		CacheHit:   cached,
		DurationMs: durationMs,
		Outcome:    outcome,
		Detail:     detail,
	}
	if err := s.recorder.Save(interaction); err != nil {
		s.logger.Warn("failed to record interaction", zap.Error(err))
	}
}
