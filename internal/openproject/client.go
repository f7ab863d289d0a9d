// Package openproject provides the outbound HTTP client for the OpenProject
// v3 REST API, along with the HAL response models and filter expressions the
// tool layer needs.
package openproject

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/openproject-tools/openproject-mcp/internal/common"
	"github.com/openproject-tools/openproject-mcp/internal/config"
)

// maxIdleConns bounds the keep-alive pool shared by all in-flight tool calls.
const maxIdleConns = 10

// Client is the shared HTTP client for the remote OpenProject API.
// One instance is created at startup and reused by every tool; no network
// I/O happens at construction time.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a client bound to the configured OpenProject instance.
// Every request carries bearer-token auth and JSON/HAL content negotiation.
func NewClient(cfg config.OpenProjectConfig, logger *common.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
			Transport: &http.Transport{
				MaxIdleConns:        maxIdleConns,
				MaxIdleConnsPerHost: maxIdleConns,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// BaseURL returns the normalized base URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// applyHeaders sets the fixed headers on an outgoing request.
func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/hal+json,application/json")
}

// Get performs a GET request against the API and returns the response body.
// Non-2xx responses become errors carrying the HAL error message when the
// body is parseable.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	c.logger.Debug().
		Str("method", "GET").
		Str("url", endpoint).
		Msg("OpenProject Request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.applyHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Dur("duration", duration).Msg("OpenProject Request Failed")
		return nil, fmt.Errorf("openproject request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("OpenProject Response")

	if resp.StatusCode >= 400 {
		return nil, apiError(resp.StatusCode, body)
	}

	return body, nil
}

// Do sends an arbitrary request against the API. Used by translated tools,
// which carry their own method and body.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, int, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", endpoint).
		Msg("OpenProject Request")

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, err
	}
	c.applyHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error().Err(err).Str("url", endpoint).Dur("duration", duration).Msg("OpenProject Request Failed")
		return nil, 0, fmt.Errorf("openproject request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug().
		Str("status", resp.Status).
		Int("status_code", resp.StatusCode).
		Dur("duration", duration).
		Msg("OpenProject Response")

	return respBody, resp.StatusCode, nil
}

// apiError converts a non-2xx response into an error. OpenProject returns
// HAL error documents with a message field; fall back to the raw body.
func apiError(statusCode int, body []byte) error {
	var halErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &halErr) == nil && halErr.Message != "" {
		return fmt.Errorf("openproject returned %d: %s", statusCode, halErr.Message)
	}
	return fmt.Errorf("openproject returned %d: %s", statusCode, string(body))
}
