package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"zoesolar/zoe/internal/retry"
	"zoesolar/zoe/internal/services/auth"

	"go.uber.org/zap"
)

const (
	httpTimeout      = 30 * time.Second
	maxErrorBodySize = 512
)

// Compile-time check that HTTPResponder satisfies Responder.
var _ Responder = (*HTTPResponder)(nil)

// HTTPResponder forwards messages to a remote assistant over JSON/HTTP.
type HTTPResponder struct {
	url    string
	token  string
	client *http.Client
	retry  retry.Config
	logger *zap.Logger
}

// NewHTTPResponder returns a responder posting to url. An empty token sends
// no Authorization header.
func NewHTTPResponder(url, token string, logger *zap.Logger) *HTTPResponder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPResponder{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: httpTimeout},
		retry:  retry.DefaultConfig(),
		logger: logger,
	}
}

// RegisterHTTP registers the HTTP responder under "http". The token is read
// from the auth store under auth.ResponderService.
func RegisterHTTP() {
	Register("http", func(s Settings) (Responder, error) {
		if strings.TrimSpace(s.URL) == "" {
			return nil, errors.New("responder: http responder needs a URL (run 'zoe config set responder-url <url>')")
		}
		var token string
		if s.Store != nil {
			var err error
			token, err = auth.TokenOrEmpty(s.Store, auth.ResponderService)
			if err != nil {
				return nil, fmt.Errorf("responder: %w", err)
			}
		}
		return NewHTTPResponder(s.URL, token, s.Logger), nil
	})
}

func (h *HTTPResponder) Name() string { return "http" }

type replyRequest struct {
	Message string `json:"message"`
}

type replyResponse struct {
	Response string `json:"response"`
}

// Respond posts message and returns the assistant's reply. Timeouts,
// rate limiting, and 5xx responses are retried with backoff.
func (h *HTTPResponder) Respond(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(replyRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("responder: failed to encode request: %w", err)
	}

	cfg := h.retry
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		h.logger.Warn("responder request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}

	var reply string
	err = retry.Do(ctx, cfg, isRetryable, func(int) error {
		var err error
		reply, err = h.post(ctx, body)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("responder: %w", err)
	}
	return reply, nil
}

func (h *HTTPResponder) post(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return "", err
	}

	var out replyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	reply := strings.TrimSpace(out.Response)
	if reply == "" {
		return "", ErrEmptyResponse
	}
	return reply, nil
}

// statusError maps non-2xx responses to sentinel errors wrapped around a
// StatusError.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	se := &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(data))}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, se)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, se)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %w", ErrUnavailable, se)
	}
	return se
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable) {
		return true
	}
	return retry.IsRetryable(err)
}
