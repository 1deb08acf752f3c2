// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// ErrRetriesExhausted is returned when every attempt failed with a retryable error.
var ErrRetriesExhausted = errors.New("retries exhausted")

// DefaultMaxBodyBytes bounds buffered response bodies.
const DefaultMaxBodyBytes = 8 << 20

// Policy describes how requests are retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; it doubles each retry.
	BaseDelay time.Duration
	// MaxDelay caps both computed backoff and server-supplied Retry-After.
	MaxDelay time.Duration
	// AttemptTimeout bounds each attempt, including reading the body.
	AttemptTimeout time.Duration
	// RetryStatuses lists response codes that trigger a retry.
	RetryStatuses []int
}

// DefaultPolicy returns the policy used for TMDB calls:
// 3 attempts, 0.5s/1s backoff, 8s per attempt, retry on 429 and 5xx gateway errors.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		BaseDelay:      500 * time.Millisecond,
		MaxDelay:       8 * time.Second,
		AttemptTimeout: 8 * time.Second,
		RetryStatuses: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		},
	}
}

// Retryable reports whether status is in the retry set.
func (p Policy) Retryable(status int) bool {
	for _, s := range p.RetryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Backoff returns the wait after the given failed attempt (1-based).
func (p Policy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// Client wraps *http.Client with a retry policy.
type Client struct {
	name         string
	http         *http.Client
	policy       Policy
	userAgent    string
	maxBodyBytes int64
	sleep        func(ctx context.Context, d time.Duration) error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithMaxBodyBytes bounds buffered responses read by Get and GetJSON.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) { c.maxBodyBytes = n }
}

// New creates a Client. name labels retry metrics and logs.
func New(name string, policy Policy, opts ...Option) *Client {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.MaxDelay < policy.BaseDelay {
		policy.MaxDelay = policy.BaseDelay
	}

	c := &Client{
		name:         name,
		http:         &http.Client{},
		policy:       policy,
		maxBodyBytes: DefaultMaxBodyBytes,
		sleep:        sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the client's retry policy.
func (c *Client) Policy() Policy {
	return c.policy
}

// Response is a fully buffered HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get performs a GET with retries and returns the buffered response.
// Non-retryable statuses (including 404) are returned without error.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	var out *Response
	err := c.Fetch(ctx, rawURL, func(resp *http.Response) error {
		body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		out = &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetJSON performs a GET and decodes a 2xx body into v.
// It returns the final status code; v is untouched for non-2xx responses.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) (int, error) {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	if !resp.OK() {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, nil
}

// Fetch performs a GET with retries. handle is called at most once, with the
// first response whose status is not retryable, inside that attempt's timeout.
// Errors from handle are returned as-is and are not retried.
func (c *Client) Fetch(ctx context.Context, rawURL string, handle func(*http.Response) error) error {
	var lastErr error

	for attempt := 1; attempt <= c.policy.MaxAttempts; attempt++ {
		retry, delay, err := c.attempt(ctx, rawURL, handle)
		if !retry {
			return err
		}
		lastErr = err

		if attempt == c.policy.MaxAttempts {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if delay <= 0 {
			delay = c.policy.Backoff(attempt)
		}

		logging.Warn().
			Str("client", c.name).
			Str("url", redactURL(rawURL)).
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", c.policy.MaxAttempts).
			Dur("retry_delay", delay).
			Msg("Outbound request failed, retrying")

		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, c.policy.MaxAttempts, lastErr)
}

// attempt runs one request. It reports whether the failure is retryable and
// any server-requested delay.
func (c *Client) attempt(ctx context.Context, rawURL string, handle func(*http.Response) error) (bool, time.Duration, error) {
	attemptCtx := ctx
	if c.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.policy.AttemptTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return false, 0, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// The caller's context ending is final; a per-attempt timeout is not.
		if ctx.Err() != nil {
			return false, 0, ctx.Err()
		}
		metrics.RecordRetry(c.name, "transport")
		return true, 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if c.policy.Retryable(resp.StatusCode) {
		// Drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		metrics.RecordRetry(c.name, "status")
		return true, c.retryAfter(resp.Header.Get("Retry-After")), fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if err := handle(resp); err != nil {
		if ctx.Err() != nil {
			return false, 0, ctx.Err()
		}
		return false, 0, err
	}
	return false, 0, nil
}

// retryAfter parses a Retry-After value given in seconds (RFC 9110 delta-seconds),
// capped at the policy's MaxDelay. HTTP-date values are ignored.
func (c *Client) retryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	d := time.Duration(seconds) * time.Second
	if d > c.policy.MaxDelay {
		d = c.policy.MaxDelay
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// redactURL strips the query string so API keys never reach the logs.
func redactURL(rawURL string) string {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		return rawURL[:i]
	}
	return rawURL
}
