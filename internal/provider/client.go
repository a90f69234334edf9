// Package provider implements the REST client for the historical
// market-data provider that serves per-day futures trade records.
package provider

import (
	"log/slog"
	"net/http"
	"time"
)

// Client provides access to the provider's historical timeseries API.
type Client struct {
	baseURL    string
	apiKey     string
	dataset    string
	httpClient *http.Client
	logger     *slog.Logger

	maxRetries   int
	retryBackoff time.Duration

	windowStartUTC string // "HH:MM:SS", per-day pull window
	windowEndUTC   string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new provider client.
func NewClient(baseURL, apiKey, dataset string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		dataset: dataset,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:         slog.Default(),
		maxRetries:     3,
		retryBackoff:   time.Second,
		windowStartUTC: "08:30:00",
		windowEndUTC:   "22:00:00",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetries sets the retry configuration.
func WithRetries(max int, backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = max
		c.retryBackoff = backoff
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPullWindow sets the per-day UTC pull window ("HH:MM:SS" bounds).
func WithPullWindow(startUTC, endUTC string) ClientOption {
	return func(c *Client) {
		c.windowStartUTC = startUTC
		c.windowEndUTC = endUTC
	}
}
