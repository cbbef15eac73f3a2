// Package monobank is a client for the monobank open API.
//
// Two endpoints are used: the personal client-info endpoint, authenticated
// with a per-user X-Token header, and the public currency endpoint.
package monobank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vasylcode/monobar/internal/model"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production API
const DefaultBaseURL = "https://api.monobank.ua"

var (
	// ErrMissingToken is returned by personal endpoints when no token is set
	ErrMissingToken = errors.New("monobank token is not configured")
	// ErrRateLimited matches APIError values with status 429
	ErrRateLimited = errors.New("monobank rate limit exceeded")
)

// APIError is a non-2xx response
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("monobank API error: status %d, body: %s", e.StatusCode, e.Body)
}

// Is lets errors.Is(err, ErrRateLimited) match throttled responses
func (e *APIError) Is(target error) bool {
	return target == ErrRateLimited && e.StatusCode == http.StatusTooManyRequests
}

// Client is a client for the monobank API
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new monobank API client
func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ClientInfo fetches the user's accounts and jars
func (c *Client) ClientInfo(ctx context.Context) (*model.ClientInfo, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}

	var resp model.ClientInfo
	if err := c.do(ctx, "/personal/client-info", true, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Rates fetches the public currency-pair rates
func (c *Client) Rates(ctx context.Context) ([]model.RateResponse, error) {
	var resp []model.RateResponse
	if err := c.do(ctx, "/bank/currency", false, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, path string, personal bool, target interface{}) error {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if personal {
		req.Header.Set("X-Token", c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("monobank API request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}
	return nil
}
