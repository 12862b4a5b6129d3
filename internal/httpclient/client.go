package httpclient

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/justchokingaround/aniseek/internal/config"
)

// Client wraps resty.Client with retry logic and timeout handling
type Client struct {
	resty      *resty.Client
	maxRetries int
	timeout    time.Duration
	logger     *slog.Logger
}

// ClientConfig holds configuration for the HTTP client
type ClientConfig struct {
	Timeout    time.Duration
	MaxRetries int // zero selects the default, negative disables retries
	RetryWait  time.Duration
	UserAgent  string
	Debug      bool
	Logger     *slog.Logger
}

// DefaultClientConfig returns sensible defaults for HTTP client
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryWait:  time.Second,
		UserAgent:  "aniseek/1.0",
	}
}

// FromNetworkConfig builds a ClientConfig from the network section of the config file
func FromNetworkConfig(cfg config.NetworkConfig, logger *slog.Logger) ClientConfig {
	return ClientConfig{
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		UserAgent:  cfg.UserAgent,
		Debug:      cfg.Debug,
		Logger:     logger,
	}
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(cfg ClientConfig) *Client {
	defaults := DefaultClientConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryWait == 0 {
		cfg.RetryWait = defaults.RetryWait
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}

	restyClient := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(5*cfg.RetryWait).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json, */*").
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	// Retry on network errors, 5xx and 429
	restyClient.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		return r.StatusCode() >= 500 || r.StatusCode() == 429
	})

	client := &Client{
		resty:      restyClient,
		maxRetries: cfg.MaxRetries,
		timeout:    cfg.Timeout,
		logger:     cfg.Logger,
	}

	if cfg.Debug && cfg.Logger != nil {
		restyClient.OnBeforeRequest(func(c *resty.Client, r *resty.Request) error {
			client.logRequest(r)
			return nil
		})
		restyClient.OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
			client.logResponse(r)
			return nil
		})
	}

	return client
}

// Get performs a GET request with query parameters and extra headers
func (c *Client) Get(ctx context.Context, url string, params, headers map[string]string) (*resty.Response, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetHeaders(headers)

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("GET request failed for %s: %w", url, err)
	}

	if resp.StatusCode() >= 400 {
		return resp, fmt.Errorf("HTTP error %d for %s: %s", resp.StatusCode(), url, truncate(resp.String(), 200))
	}

	return resp, nil
}

// SetHeader sets a default header for all requests
func (c *Client) SetHeader(key, value string) {
	c.resty.SetHeader(key, value)
}

// GetTimeout returns the configured timeout
func (c *Client) GetTimeout() time.Duration {
	return c.timeout
}

// GetMaxRetries returns the configured max retries
func (c *Client) GetMaxRetries() int {
	return c.maxRetries
}

func (c *Client) logRequest(r *resty.Request) {
	c.logger.Debug("HTTP Request",
		"method", r.Method,
		"url", r.URL,
		"query", r.QueryParam.Encode(),
	)
}

func (c *Client) logResponse(r *resty.Response) {
	c.logger.Debug("HTTP Response",
		"status", r.StatusCode(),
		"url", r.Request.URL,
		"time", r.Time(),
		"body", truncate(r.String(), 1000),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "... (truncated)"
}
