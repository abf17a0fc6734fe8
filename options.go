package flagpost

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/maps"
)

type Option func(c *Client)

var _ = []Option{
	WithBaseURL(""),
	WithRequestTimeout(0),
	WithRetries(1, 0),
	WithCustomHeaders(nil),
	WithCacheTTL(0),
	WithDebug(),
	WithLogger(nil),
	WithRestyClient(nil),
	WithAnalytics(context.TODO()),
}

// WithBaseURL points the client at a different evaluation service. The URL
// is validated by NewClient.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.config.baseURL = url
	}
}

// WithRequestTimeout bounds each network attempt. Zero disables the bound.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.config.timeout = timeout
	}
}

// WithRetries sets the total attempt count and the fixed delay between
// attempts. attempts must be at least 1; NewClient rejects lower values.
func WithRetries(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.config.retry = RetryPolicy{Attempts: attempts, Delay: delay}
	}
}

// WithCustomHeaders adds headers to every evaluation request. They win
// over the SDK's own headers on collision.
func WithCustomHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.config.customHeaders = maps.Clone(headers)
	}
}

// WithCacheTTL bounds the lifetime of cached evaluations. Zero keeps
// entries until ClearCache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.config.cacheTTL = ttl
	}
}

// WithDebug enables debug logging of the evaluation pipeline.
func WithDebug() Option {
	return func(c *Client) {
		c.config.debug = true
	}
}

// WithLogger sets the logger used for debug and warning output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.log = logger
		}
	}
}

// WithRestyClient injects a preconfigured resty client, mainly for tests
// and custom transports.
func WithRestyClient(client *resty.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithAnalytics enables background reporting of evaluation counts to the
// service. The processor stops when ctx is cancelled.
func WithAnalytics(ctx context.Context) Option {
	return func(c *Client) {
		c.analyticsCtx = ctx
	}
}
