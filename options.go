package bgg

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	logger     zerolog.Logger
	loggerSet  bool
	retryBase  time.Duration
	maxRetries *int
}

// WithBaseURL overrides the API base URL. Useful for tests and proxies.
func WithBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the default request timeout.
// Note: This option is ignored when WithHTTPClient is used;
// set the timeout directly on the provided client instead.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets a structured logger for request and retry tracing.
// Logging is off by default.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
		c.loggerSet = true
	}
}

// WithRetry tunes the queued-response retry policy: maxRetries bounds
// retries after the initial attempt, and baseDelay is the wait before
// the first retry, doubling on each further one. The service answers
// 202 Accepted while it prepares large responses; nothing else is
// retried.
func WithRetry(maxRetries int, baseDelay time.Duration) ClientOption {
	return func(c *clientConfig) {
		retries := maxRetries
		c.maxRetries = &retries
		c.retryBase = baseDelay
	}
}
