package cursetools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the default curse.tools CurseForge proxy base URL.
	DefaultBaseURL = "https://api.curse.tools/v1/cf"

	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerMinute is the default client-side request budget.
	DefaultRequestsPerMinute = 120

	// UserAgent is the user agent string sent with API requests.
	UserAgent = "cfdl/dev (https://github.com/steviee/cfdl)"

	// MinecraftGameID is the CurseForge game identifier for Minecraft.
	MinecraftGameID = 432
)

// Client is a curse.tools API client.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	rateLimiter *RateLimiter
}

// Config holds client configuration.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	UserAgent         string
	RequestsPerMinute int
}

// NewClient creates a new curse.tools API client.
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	if config.UserAgent == "" {
		config.UserAgent = UserAgent
	}

	if config.RequestsPerMinute <= 0 {
		config.RequestsPerMinute = DefaultRequestsPerMinute
	}

	slog.Debug("creating curse.tools API client",
		"base_url", config.BaseURL,
		"timeout", config.Timeout,
		"requests_per_minute", config.RequestsPerMinute)

	return &Client{
		baseURL:     config.BaseURL,
		httpClient:  &http.Client{Timeout: config.Timeout},
		userAgent:   config.UserAgent,
		rateLimiter: NewRateLimiter(config.RequestsPerMinute, time.Minute),
	}
}

// getData performs a GET request against path and returns the decoded data envelope.
func getData[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var env envelope[T]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrInvalidResponse, err)
	}

	return env.Data, nil
}

// doRequest performs an HTTP request with rate limiting.
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	slog.Debug("curse.tools API request",
		"method", method,
		"url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	c.rateLimiter.UpdateFromHeaders(resp.Header)

	return resp, nil
}

// checkResponse checks if the response is successful.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return parseErrorResponse(resp)
}

// parseErrorResponse turns a non-2xx response into an error.
func parseErrorResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return ErrRateLimitExceeded
	case http.StatusNotFound:
		return ErrNotFound
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.ErrorMsg == "" {
		return NewAPIError(resp.StatusCode, "API error", resp.Status)
	}

	apiErr.StatusCode = resp.StatusCode
	return &apiErr
}
