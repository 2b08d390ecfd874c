// Package backend is the typed boundary to the Sangam REST backend.
// Every response is decoded into an explicit DTO and validated before it leaves the package.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"github.com/sony/gobreaker"
	"golang.org/x/oauth2"

	apperrors "github.com/Esangam/Esangam-UI/internal/errors"
	"github.com/Esangam/Esangam-UI/internal/observability/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	// errorMessageExpr picks the human readable message out of a backend error body.
	errorMessageExpr = "error || message"
	maxErrorBody     = 64 << 10
)

// ErrNoCredentials is returned when an authenticated call is made without a token.
var ErrNoCredentials = errors.New("no bearer token available")

var errEmptyBody = errors.New("empty body")

// BreakerConfig tunes the circuit breaker guarding backend calls.
type BreakerConfig struct {
	// MaxRequests is the number of trial requests allowed while half-open.
	MaxRequests uint32
	// Interval is the cyclic period of the closed state for clearing counts.
	Interval time.Duration
	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
	// HTTPClient is used for request/response calls. Defaults to one with Timeout.
	HTTPClient *http.Client
	// StreamClient is used for long-lived notification streams and must not set a Timeout.
	StreamClient *http.Client
	Logger       *slog.Logger
}

// Client talks to the Sangam backend.
// Authenticated calls take an oauth2.TokenSource and attach the bearer header when the request is built.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	stream  *http.Client
	breaker *gobreaker.CircuitBreaker
	expr    string
	logger  *slog.Logger
}

// New builds a backend client. Callers should pass a sanitized config.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("backend base url is required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend base url must be http or https, got %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	sc := cfg.StreamClient
	if sc == nil {
		sc = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := jmespath.Compile(errorMessageExpr); err != nil {
		return nil, fmt.Errorf("compile error expression: %w", err)
	}

	c := &Client{
		baseURL: base,
		http:    hc,
		stream:  sc,
		expr:    errorMessageExpr,
		logger:  logger.With("component", "backend"),
	}
	c.breaker = gobreaker.NewCircuitBreaker(c.breakerSettings(cfg.Breaker))
	metrics.CircuitBreakerState.WithLabelValues("backend").Set(0)
	return c, nil
}

func (c *Client) breakerSettings(bc BreakerConfig) gobreaker.Settings {
	maxReq := bc.MaxRequests
	if maxReq == 0 {
		maxReq = 1
	}
	threshold := bc.ConsecutiveFailures
	if threshold == 0 {
		threshold = 5
	}
	openFor := bc.Timeout
	if openFor <= 0 {
		openFor = 30 * time.Second
	}
	return gobreaker.Settings{
		Name:        "backend",
		MaxRequests: maxReq,
		Interval:    bc.Interval,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// Only transport failures and 5xx answers count against the backend.
		IsSuccessful: func(err error) bool {
			return err == nil || !countsAgainstBreaker(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	}
}

func countsAgainstBreaker(err error) bool {
	if apperrors.IsUnavailable(err) || apperrors.IsTimeout(err) {
		return true
	}
	return apperrors.IsUpstream(err) && apperrors.GetStatus(err) >= http.StatusInternalServerError
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// BreakerState reports the current breaker state for health output.
func (c *Client) BreakerState() string { return c.breaker.State().String() }

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// newRequest builds a request and, when ts is non-nil, attaches the current bearer token.
// The token is read from ts at build time so each request sees the session's current credential.
func (c *Client) newRequest(
	ctx context.Context,
	ts oauth2.TokenSource,
	method, path string,
	query url.Values,
	body any,
) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", path, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), rdr)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if ts != nil {
		tok, tokErr := ts.Token()
		if tokErr != nil {
			return nil, apperrors.Wrap(tokErr, apperrors.ErrCodeUnauthorized, "no session credential")
		}
		if tok == nil || tok.AccessToken == "" {
			return nil, apperrors.Wrap(ErrNoCredentials, apperrors.ErrCodeUnauthorized, "no session credential")
		}
		tok.SetAuthHeader(req)
	}
	return req, nil
}

// do executes req through the circuit breaker and decodes a 2xx JSON body into out.
// out may be nil when the response body is irrelevant.
func (c *Client) do(req *http.Request, name string, out any) error {
	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.roundTrip(req, out)
	})
	err = breakerError(err)
	metrics.ObserveBackendCall(name, time.Since(start), err)
	if err != nil {
		c.logger.Debug("backend call failed", "endpoint", name, "error", err)
	}
	return err
}

// breakerError maps a rejection by an open breaker to an unavailable error.
func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperrors.Unavailable(err, "backend temporarily unavailable")
	}
	return err
}

func (c *Client) roundTrip(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(req.Context(), err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			e := apperrors.Wrap(errEmptyBody, apperrors.ErrCodeUpstream, "empty response from backend")
			e.Status = resp.StatusCode
			return e
		}
		return apperrors.Wrap(err, apperrors.ErrCodeUpstream, "decode backend response")
	}
	return nil
}

func transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "backend request canceled")
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "backend request timed out")
	default:
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "backend request timed out")
		}
		return apperrors.Unavailable(err, "backend unreachable")
	}
}

// errorFromResponse maps a non-2xx answer to an AppError.
// The message is `error || message` from a JSON body, falling back to the status text.
func (c *Client) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := c.extractMessage(body)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e := apperrors.Unauthorized(msg)
		e.Status = resp.StatusCode
		return e
	case http.StatusForbidden:
		e := apperrors.Forbidden(msg)
		e.Status = resp.StatusCode
		return e
	case http.StatusNotFound:
		e := apperrors.NotFound(msg)
		e.Status = resp.StatusCode
		return e
	default:
		return apperrors.Upstream(resp.StatusCode, msg)
	}
}

func (c *Client) extractMessage(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ""
	}
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return ""
	}
	v, err := jmespath.Search(c.expr, data)
	if err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
