package http

import (
	"context"
	"net/http"
	"time"
)

// Client wraps a shared http.Client configured for burst dispatch: the
// connection pool is sized to at least the number of concurrent requests so
// the transport never queues requests behind each other and distorts
// latency measurements. The pool exists to cap socket/fd usage, not to
// throttle the burst.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// ClientOption is a function that configures a Client
type ClientOption func(*Client)

// NewClient creates a new HTTP client with the given options
func NewClient(options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		timeout: 30 * time.Second,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithTimeout sets the per-request timeout, covering the full
// request/response cycle including body read.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
		c.httpClient.Timeout = timeout
	}
}

// WithConcurrency sizes the transport's connection pool for n simultaneous
// in-flight requests. A small slack is added on top so connection churn at
// the edge of the pool doesn't cause queuing.
func WithConcurrency(n int) ClientOption {
	return func(c *Client) {
		limit := n + 10
		c.httpClient.Transport = &http.Transport{
			MaxIdleConns:        limit,
			MaxIdleConnsPerHost: limit,
			MaxConnsPerHost:     limit,
			IdleConnTimeout:     90 * time.Second,
			ForceAttemptHTTP2:   true,
		}
	}
}

// Do executes the given request with the client's timeout applied.
// The context allows the whole run to be abandoned on interrupt; in-flight
// requests are cancelled with it.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req.WithContext(ctx))
}

// Timeout returns the configured per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// CloseIdleConnections releases the transport's pooled connections. Called
// once after the run completes (or is interrupted) so the pool's lifetime
// is scoped to the run.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}
