// Package tmdb provides a client for TheMovieDB API, the primary catalog provider.
package tmdb

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/marquee/internal/ratelimit"
)

const (
	providerName         = "tmdb"
	defaultBaseURL       = "https://api.themoviedb.org/3"
	defaultImageBaseURL  = "https://image.tmdb.org/t/p"
	defaultLanguage      = "en-US"
	defaultMaxAttempts   = 3
	defaultMaxWidth      = 1000
	defaultRatePerSecond = 4 // TMDB allows ~40 requests per 10 seconds
	defaultTimeout       = 10 * time.Second

	// MaxPage is the highest page TMDB serves for list endpoints.
	MaxPage = 500
)

const (
	// MediaMovie is the TMDB path segment for movies.
	MediaMovie = "movie"
	// MediaTV is the TMDB path segment for TV shows.
	MediaTV = "tv"
)

var (
	// ErrInvalidMediaType is returned when an unsupported media type is provided.
	ErrInvalidMediaType = errors.New("invalid media type")
	// ErrNoPoster is returned when no poster is available for the media.
	ErrNoPoster = errors.New("poster not available")
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TMDB API client.
type Client struct {
	apiKey        string
	baseURL       string
	imageBaseURL  string
	language      string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	retryDelay    time.Duration
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		imageBaseURL:  defaultImageBaseURL,
		language:      defaultLanguage,
		httpClient:    &http.Client{Timeout: defaultTimeout},
		rateLimiter:   ratelimit.New("TMDB", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
		retryDelay:    time.Second,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

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

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithLanguage sets the language requested for localized fields.
func WithLanguage(language string) Option {
	return func(client *Client) {
		if language != "" {
			client.language = language
		}
	}
}

// WithRetryAttempts sets the number of attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRetryDelay sets the base delay of the exponential backoff between attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(client *Client) {
		if delay > 0 {
			client.retryDelay = delay
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

func mediaPath(mediaType string) (string, error) {
	switch mediaType {
	case MediaMovie, MediaTV:
		return mediaType, nil
	default:
		return "", ErrInvalidMediaType
	}
}
