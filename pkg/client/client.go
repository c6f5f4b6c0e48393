// Package client provides the catalog HTTP fetcher with timeouts, bounded
// retry, and optional page caching.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/redpulseofficialscripter-dev/SHUT/pkg/cache"
	"github.com/redpulseofficialscripter-dev/SHUT/pkg/catalog"
)

// Prometheus metrics for catalog requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_requests_total",
		Help: "Total catalog requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Catalog request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_errors_total",
		Help: "Total catalog fetch errors by class",
	}, []string{"class"})
)

// DefaultTimeout is the per-request timeout.
const DefaultTimeout = 30 * time.Second

// Config holds the client configuration.
type Config struct {
	// UserAgent sent with every request.
	UserAgent string

	// Timeout applied to each HTTP request.
	Timeout time.Duration

	// Retry controls the bounded retry loop around each page fetch.
	Retry RetryConfig

	// Cache is an optional page-response cache. Nil disables caching.
	Cache *cache.Manager
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		UserAgent: userAgent,
		Timeout:   DefaultTimeout,
		Retry:     DefaultRetryConfig(),
	}
}

// Client fetches catalog pages.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// New creates a catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cfg.Cache,
		config: cfg,
		logger: log.With().Str("component", "catalog-client").Logger(),
	}, nil
}

// FetchPage fetches one page of a catalog endpoint. cursor is empty for the
// first page. The page fetch is wrapped in the client's retry loop; after
// exhausting retries the last failure is returned wrapped in
// ErrRetryExhausted.
func (c *Client) FetchPage(ctx context.Context, rawURL, cursor string) (*catalog.Page, error) {
	requestURL := rawURL
	if cursor != "" {
		requestURL += "&Cursor=" + url.QueryEscape(cursor)
	}
	endpoint := endpointLabel(rawURL)

	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	// Serve from cache when a fresh copy of this exact page exists.
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, requestURL); err == nil {
			var page catalog.Page
			if jsonErr := json.Unmarshal(data, &page); jsonErr == nil {
				c.logger.Debug().
					Str("endpoint", endpoint).
					Str("cursor", cursor).
					Msg("Serving page from cache")
				requestsTotal.WithLabelValues(endpoint, "cache").Inc()
				return &page, nil
			}
		} else if err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	var page *catalog.Page

	retryErr := retryWithDelay(ctx, c.config.Retry, func() error {
		p, body, err := c.fetchOnce(ctx, requestURL, endpoint)
		if err != nil {
			errorsTotal.WithLabelValues(string(classify(err))).Inc()
			return err
		}
		page = p

		if c.cache != nil {
			if err := c.cache.Set(ctx, requestURL, body); err != nil {
				c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache page")
			}
		}
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	return page, nil
}

// fetchOnce performs a single HTTP round trip and decodes the body. It returns
// the raw body alongside the decoded page so the caller can cache it.
func (c *Client) fetchOnce(ctx context.Context, requestURL, endpoint string) (*catalog.Page, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		requestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, nil, err
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Msg("Catalog request error")
		return nil, nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      ErrorClassHTTP,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      ErrorClassNetwork,
			Message:    "read response body",
			Err:        err,
		}
	}

	var page catalog.Page
	if err := json.Unmarshal(body, &page); err != nil {
		c.logger.Warn().
			Err(err).
			Str("endpoint", endpoint).
			Msg("Catalog response is not valid JSON")
		return nil, nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      ErrorClassParse,
			Message:    "decode response body",
			Err:        err,
		}
	}

	return &page, body, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// endpointLabel reduces a request URL to its path for metric labels, keeping
// label cardinality independent of query parameters and cursors.
func endpointLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "invalid"
	}
	return u.Path
}
