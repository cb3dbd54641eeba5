// Package httpclient provides the outbound HTTP client shared by all
// source adapters: browser-like identity headers plus a politeness
// limiter so back-to-back fetches don't hammer a single upstream.
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"finwire/internal/config"
)

// Client wraps http.Client with identity headers and request pacing.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	acceptLang string
}

// New builds a client from the configured identity and timeout.
func New(cfg config.HTTPConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		// One request per second sustained, small burst for feed+page pairs.
		limiter:    rate.NewLimiter(rate.Limit(1), 3),
		userAgent:  cfg.UserAgent,
		acceptLang: cfg.AcceptLanguage,
	}
}

// Get performs a GET with the configured identity headers. It waits on
// the politeness limiter before sending.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.acceptLang != "" {
		req.Header.Set("Accept-Language", c.acceptLang)
	}
	return c.httpClient.Do(req)
}

// HTTPClient exposes the underlying client for collaborators that
// manage their own requests (feed parser, transcript fetcher).
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}
