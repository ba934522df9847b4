// Package calqhttp is the integration runtime in front of the Calq HTTP API.
// It owns the endpoint, the retry budget, request execution and the
// normalization of destination answers into errors.
package calqhttp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"calq-destination-service/internal/events/core/domain"
	"calq-destination-service/internal/events/core/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/jpillora/backoff"
)

const (
	DefaultEndpoint   = "https://api.calq.io"
	DefaultRetries    = 3
	DefaultTimeout    = 10 * time.Second
	defaultMinBackoff = 100 * time.Millisecond
	defaultMaxBackoff = 2 * time.Second
	userAgent         = "calq-destination-service"
)

type Config struct {
	Endpoint string
	// Retries is the total number of attempts per call, not the number of re-tries.
	Retries    int
	Timeout    time.Duration
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

func (c Config) withDefaults() Config {
	c.Endpoint = strings.TrimRight(strings.TrimSpace(c.Endpoint), "/")
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Retries <= 0 {
		c.Retries = DefaultRetries
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MinBackoff <= 0 {
		c.MinBackoff = defaultMinBackoff
	}
	if c.MaxBackoff < c.MinBackoff {
		c.MaxBackoff = defaultMaxBackoff
		if c.MaxBackoff < c.MinBackoff {
			c.MaxBackoff = c.MinBackoff
		}
	}
	return c
}

var ErrUnsupportedMethod = errors.New("unsupported method")

// StatusError is returned when the destination answers with a non-2xx status.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cannot %s %s (%d)", e.Method, e.Path, e.StatusCode)
}

// RejectedError is returned when the destination answers 200 but refuses the
// call in the body, e.g. for an unknown write key.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

type Client struct {
	cfg     Config
	http    *fiber.Client
	metrics *Metrics
	logger  *slog.Logger
}

var _ ports.SubmitterPort = (*Client)(nil)

type Option func(*Client)

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func NewClient(cfg Config, opts ...Option) *Client {
	c := &Client{
		cfg:    cfg.withDefaults(),
		http:   &fiber.Client{UserAgent: userAgent},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.cfg.Endpoint
}

// Submit sends body as JSON and retries network failures, 429 and 5xx answers
// until the attempt budget is spent. Other refusals are returned at once.
func (c *Client) Submit(ctx context.Context, method, path string, body domain.Payload) (*ports.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", path, err)
	}

	b := &backoff.Backoff{
		Min:    c.cfg.MinBackoff,
		Max:    c.cfg.MaxBackoff,
		Factor: 2,
		Jitter: true,
	}

	for attempt := 1; ; attempt++ {
		start := time.Now()
		resp, err := c.do(ctx, method, path, payload)
		c.metrics.observe(path, outcomeOf(resp, err), time.Since(start))

		if !retryable(resp, err) || attempt >= c.cfg.Retries {
			return resp, err
		}

		wait := b.Duration()
		c.logger.Debug("retrying destination call",
			slog.String("path", path),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", wait),
			slog.String("error", err.Error()),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return resp, err
		case <-timer.C:
		}
	}
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*ports.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url := c.cfg.Endpoint + path
	var a *fiber.Agent
	switch method {
	case http.MethodPost:
		a = c.http.Post(url)
	case http.MethodPut:
		a = c.http.Put(url)
	default:
		return nil, fmt.Errorf("%w %s", ErrUnsupportedMethod, method)
	}

	code, respBody, errs := a.
		Timeout(c.timeout(ctx)).
		ContentType(fiber.MIMEApplicationJSON).
		Body(payload).
		Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s %s: %w", method, url, errors.Join(errs...))
	}

	resp := &ports.Response{StatusCode: code, Body: respBody}
	if code < 200 || code >= 300 {
		return resp, &StatusError{Method: method, Path: path, StatusCode: code, Body: respBody}
	}
	if msg, ok := rejection(respBody); ok {
		return resp, &RejectedError{Message: msg}
	}
	return resp, nil
}

// timeout caps the per-attempt timeout by the context deadline; the agent
// has no context support of its own.
func (c *Client) timeout(ctx context.Context) time.Duration {
	timeout := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = max(left, time.Millisecond)
		}
	}
	return timeout
}

type apiStatus struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func rejection(body []byte) (string, bool) {
	var st apiStatus
	if len(body) == 0 || json.Unmarshal(body, &st) != nil {
		return "", false
	}
	if st.Status != "rejected" {
		return "", false
	}
	if st.Error == "" {
		return "rejected by destination", true
	}
	return st.Error, true
}

func retryable(resp *ports.Response, err error) bool {
	if err == nil {
		return false
	}
	if resp == nil {
		return !errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded) &&
			!errors.Is(err, ErrUnsupportedMethod)
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
}
