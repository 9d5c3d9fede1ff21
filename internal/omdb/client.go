// Package omdb provides a client for the OMDb API, the secondary ratings provider.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/ratelimit"
)

const (
	providerName         = "omdb"
	defaultBaseURL       = "https://www.omdbapi.com"
	defaultRatePerSecond = 1 // OMDb free tier allows 1000 requests/day
	defaultTimeout       = 10 * time.Second
	requestLimitMessage  = "Request limit reached!"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an OMDb API client.
type Client struct {
	apiKey       string
	baseURL      string
	httpClient   HTTPDoer
	rateLimiter  *ratelimit.Limiter
	limitReached atomic.Bool
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// NewClient creates a new OMDb API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.New("OMDB", defaultRatePerSecond),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithTimeout replaces the HTTP client with one bounded by the given timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithBaseURL sets a custom base URL for the OMDb API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// RequestsAllowed returns false once OMDb has reported its daily limit as reached.
func (c *Client) RequestsAllowed() bool {
	return !c.limitReached.Load()
}

func (c *Client) markRateLimitReached() {
	if c.limitReached.CompareAndSwap(false, true) {
		slog.Warn("OMDB API rate limit reached; skipping further OMDB requests for this process")
	}
}

// LookupByIMDbID retrieves the OMDb entry for an IMDb ID.
// It returns (nil, nil) when OMDb does not know the ID.
func (c *Client) LookupByIMDbID(ctx context.Context, imdbID string) (*Response, error) {
	if imdbID == "" {
		return nil, fmt.Errorf("IMDb ID is required")
	}
	if !c.RequestsAllowed() {
		return nil, apperrors.NewRateLimitError("OMDB API request limit reached")
	}

	op := "lookup " + imdbID
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, apperrors.NewProviderUnavailableError(providerName, op, 0, err)
	}

	slog.Debug("Fetching OMDB data by IMDb ID", "imdb_id", imdbID)

	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("apikey", c.apiKey)
	endpoint := fmt.Sprintf("%s/?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderUnavailableError(providerName, op, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.NewProviderUnavailableError(providerName, op, resp.StatusCode, err)
	}

	var omdbResp Response
	decodeErr := json.Unmarshal(body, &omdbResp)

	// OMDb reports the daily cap with 401 and a JSON body
	if omdbResp.Error == requestLimitMessage {
		c.markRateLimitReached()
		return nil, apperrors.NewRateLimitError("OMDB API request limit reached")
	}

	if resp.StatusCode != http.StatusOK {
		if omdbResp.Error != "" {
			slog.Warn("OMDB API error", "error", omdbResp.Error)
		}
		return nil, apperrors.NewProviderUnavailableError(providerName, op, resp.StatusCode,
			fmt.Errorf("OMDB API returned non-200 status code: %d for ID: %s", resp.StatusCode, imdbID))
	}

	if decodeErr != nil {
		return nil, apperrors.NewProviderUnavailableError(providerName, op, 0,
			fmt.Errorf("failed to decode response: %w", decodeErr))
	}

	if omdbResp.Response == "False" {
		if isNotFoundMessage(omdbResp.Error) {
			slog.Debug("Title not found in OMDB", "imdb_id", imdbID, "reason", omdbResp.Error)
			return nil, nil
		}
		return nil, fmt.Errorf("OMDB API error: %s", omdbResp.Error)
	}

	if omdbResp.ImdbID == "" {
		return nil, apperrors.NewProviderUnavailableError(providerName, op, 0,
			fmt.Errorf("invalid or empty response from OMDB API for ID: %s", imdbID))
	}

	return &omdbResp, nil
}

func isNotFoundMessage(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "not found") ||
		strings.Contains(lower, "incorrect imdb id") ||
		strings.Contains(lower, "invalid imdb id")
}
