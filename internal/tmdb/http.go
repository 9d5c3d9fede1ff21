package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
)

// getJSON performs a GET against endpoint and decodes the body into target.
// op names the call in errors and logs. Transient failures are retried with
// exponential backoff; everything that is not a NotFoundError comes back as a
// ProviderUnavailableError.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, target any) error {
	err := retry.Do(
		func() error {
			return c.doJSONRequest(ctx, op, endpoint, target)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.retryAttempts)),
		retry.RetryIf(isRetryable),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return c.backoffDelay(int(n) + 1)
		}),
		retry.LastErrorOnly(true),
	)
	if err == nil {
		return nil
	}
	if apperrors.IsNotFound(err) || apperrors.IsProviderUnavailable(err) {
		return err
	}
	return apperrors.NewProviderUnavailableError(providerName, op, 0, err)
}

func (c *Client) doJSONRequest(ctx context.Context, op, endpoint string, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return apperrors.NewProviderUnavailableError(providerName, op, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperrors.NewProviderUnavailableError(providerName, op, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewProviderUnavailableError(providerName, op, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		cause := fmt.Errorf("tmdb: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))

		switch resp.StatusCode {
		case http.StatusNotFound:
			return apperrors.NewNotFoundError(providerName, op)
		case http.StatusTooManyRequests:
			cause = apperrors.NewRateLimitErrorWithRetry("tmdb: too many requests", retryAfter(resp.Header))
		}
		return apperrors.NewProviderUnavailableError(providerName, op, resp.StatusCode, cause)
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return apperrors.NewProviderUnavailableError(providerName, op, 0, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func isRetryable(err error) bool {
	var unavailable *apperrors.ProviderUnavailableError
	if errors.As(err, &unavailable) {
		switch unavailable.StatusCode {
		case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return true
		}
		// Network errors (connection resets etc.)
		if strings.Contains(urlErr.Error(), "connection") {
			return true
		}
	}
	return false
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	return backoffDelay(c.retryDelay, attempt)
}

// backoffDelay doubles base for every attempt, capped at 10 seconds.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := base * time.Duration(1<<uint(attempt-1))
	if delay > 10*time.Second || delay <= 0 {
		return 10 * time.Second
	}
	return delay
}

func retryAfter(header http.Header) time.Duration {
	value := strings.TrimSpace(header.Get("Retry-After"))
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// endpoint builds an API URL for path with the client's credentials and language.
func (c *Client) endpoint(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" && params.Get("language") == "" {
		params.Set("language", c.language)
	}
	return fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimPrefix(path, "/"), params.Encode())
}
