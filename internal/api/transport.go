// Package api provides low-level HTTP transport for BoardGameGeek XML API
// calls, including the queued-response retry loop.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// The service answers 202 Accepted while it builds large responses
	// (collections in particular) in the background. Only that status is
	// ever retried.
	defaultRetryBaseDelay = 5 * time.Second
	defaultMaxRetries     = 4
)

// Transport handles HTTP communication with the XML API.
type Transport struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
	UserAgent  string
	Logger     zerolog.Logger

	// RetryBaseDelay is the delay before the first retry after a 202.
	// Each further retry doubles it.
	RetryBaseDelay time.Duration
	// MaxRetries bounds retries after the initial attempt.
	MaxRetries int
}

// NewTransport creates a Transport with the given configuration.
func NewTransport(baseURL string, httpClient *http.Client) (*Transport, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}

	return &Transport{
		BaseURL:        u,
		HTTPClient:     httpClient,
		UserAgent:      "go-bgg/1.0",
		Logger:         zerolog.Nop(),
		RetryBaseDelay: defaultRetryBaseDelay,
		MaxRetries:     defaultMaxRetries,
	}, nil
}

// Response represents the final response of a query, after any retries.
type Response struct {
	StatusCode int
	Body       []byte
	// Attempts is the total number of HTTP requests made, including the
	// first one.
	Attempts int
}

// Get executes a GET against path with the given query and returns the
// final response. A 202 Accepted is retried with exponential backoff
// until MaxRetries is exhausted; the last 202 response is then returned
// as-is for the caller to classify. Transport failures and every other
// status are returned immediately.
func (t *Transport) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	u := t.BaseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	for attempt := 1; ; attempt++ {
		resp, err := t.once(ctx, u.String())
		if err != nil {
			return nil, err
		}
		resp.Attempts = attempt

		if resp.StatusCode != http.StatusAccepted || attempt > t.MaxRetries {
			return resp, nil
		}

		delay := t.RetryBaseDelay << (attempt - 1)
		t.Logger.Debug().
			Str("url", u.String()).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("response queued, retrying")

		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

func (t *Transport) once(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", t.UserAgent)

	t.Logger.Debug().Str("url", url).Msg("querying")

	httpResp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	// Limit response body size to prevent memory exhaustion
	limitedReader := io.LimitReader(httpResp.Body, defaultMaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if int64(len(body)) > defaultMaxBodySize {
		return nil, fmt.Errorf("response too large: exceeds %d bytes", defaultMaxBodySize)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
	}, nil
}

// sleep waits for d or until ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
