package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNotConfigured is returned when no endpoint URL is set.
var ErrNotConfigured = errors.New("export endpoint not configured")

// StatusError is returned for a non-success HTTP response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("export endpoint returned %s", e.Status)
}

// Temporary reports whether the status is worth retrying.
func (e *StatusError) Temporary() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= 500:
		return true
	default:
		return false
	}
}

// Sender delivers export records.
type Sender interface {
	Send(ctx context.Context, rec Record) error
	Configured() bool
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultRetryConfig returns three attempts waiting about 1s then 2s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Second,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}
}

// AppsScriptSender posts records to a spreadsheet web app. The web app
// answers a successful write with a redirect, so 302 counts as success and
// is never followed.
type AppsScriptSender struct {
	url    string
	client *http.Client
	retry  RetryConfig
	logger *log.Logger
}

// SenderOption configures an AppsScriptSender.
type SenderOption func(*AppsScriptSender)

// WithHTTPClient sets the HTTP client. Its redirect policy is replaced.
func WithHTTPClient(c *http.Client) SenderOption {
	return func(s *AppsScriptSender) {
		cp := *c
		s.client = &cp
	}
}

// WithRetry sets the backoff policy.
func WithRetry(cfg RetryConfig) SenderOption {
	return func(s *AppsScriptSender) { s.retry = cfg }
}

// WithLogger sets the logger used for attempt diagnostics.
func WithLogger(l *log.Logger) SenderOption {
	return func(s *AppsScriptSender) { s.logger = l }
}

// NewAppsScriptSender creates a sender for url. An empty url yields a
// sender whose Send always returns ErrNotConfigured.
func NewAppsScriptSender(url string, opts ...SenderOption) *AppsScriptSender {
	s := &AppsScriptSender{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		retry:  DefaultRetryConfig(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	if s.retry.MaxAttempts < 1 {
		s.retry.MaxAttempts = 1
	}
	return s
}

// Configured reports whether an endpoint URL is set.
func (s *AppsScriptSender) Configured() bool {
	return s.url != ""
}

// Send posts the flat record as JSON, retrying transient failures.
func (s *AppsScriptSender) Send(ctx context.Context, rec Record) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	var lastErr error
	for attempt := range s.retry.MaxAttempts {
		err := s.post(ctx, body)
		if err == nil {
			return nil
		}
		lastErr = err

		if !shouldRetry(err) {
			return err
		}

		// Last attempt, don't sleep.
		if attempt == s.retry.MaxAttempts-1 {
			break
		}

		wait := s.backoff(attempt)
		s.logger.Debug("export attempt failed", "attempt", attempt+1, "wait", wait, "err", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("export failed after %d attempts: %w", s.retry.MaxAttempts, lastErr)
}

func (s *AppsScriptSender) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode == http.StatusFound || (resp.StatusCode >= 200 && resp.StatusCode < 300) {
		return nil
	}
	return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
}

// shouldRetry reports whether err is transient.
func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	// Network errors are treated as transient.
	return true
}

// backoff computes the wait duration for the given attempt.
func (s *AppsScriptSender) backoff(attempt int) time.Duration {
	wait := float64(s.retry.InitialWait) * math.Pow(s.retry.Multiplier, float64(attempt))
	if wait > float64(s.retry.MaxWait) {
		wait = float64(s.retry.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
