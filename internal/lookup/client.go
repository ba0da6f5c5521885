package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cabloomi/inventory/internal/metrics"
	"github.com/cabloomi/inventory/pkg/extract"
)

// Client implements Provider against an HTTP lookup service that returns
// a JSON object of device attributes per identifier.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *RateLimiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithClientHTTPClient overrides the default HTTP client.
func WithClientHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClientRateLimiter injects a rate limiter that controls per-second and
// daily call limits. When set, every Lookup() call goes through Wait() first.
func WithClientRateLimiter(r *RateLimiter) ClientOption {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// NewClient creates a lookup client for the service at baseURL.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup implements Provider by querying the lookup service. The response
// payload preserves the provider's field order.
func (c *Client) Lookup(ctx context.Context, imei string) (extract.Payload, error) {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.LookupDailyLimitHits.Inc()
			}
			return nil, fmt.Errorf("rate limit: %w", err)
		}
		metrics.LookupCallsTotal.Inc()
		metrics.LookupDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	u := fmt.Sprintf("%s/v1/devices/%s", c.baseURL, url.PathEscape(imei))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.LookupErrorsTotal.Inc()
		return nil, fmt.Errorf("executing lookup request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.LookupErrorsTotal.Inc()
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.LookupErrorsTotal.Inc()
		return nil, fmt.Errorf(
			"lookup API error (status %d): %s",
			resp.StatusCode,
			string(body),
		)
	}

	payload, err := extract.ParsePayload(body)
	if err != nil {
		metrics.LookupErrorsTotal.Inc()
		return nil, fmt.Errorf("parsing lookup response: %w", err)
	}

	return payload, nil
}
