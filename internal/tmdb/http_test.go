package tmdb

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type testHTTPDoer struct {
	calls int
}

func (t *testHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	t.calls++
	if t.calls == 1 {
		return nil, &url.Error{Op: "Get", URL: req.URL.String(), Err: timeoutError{}}
	}

	body := io.NopCloser(strings.NewReader(`{"status":"ok"}`))
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       body,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}, nil
}

type alwaysTimeoutDoer struct {
	calls int
}

func (t *alwaysTimeoutDoer) Do(req *http.Request) (*http.Response, error) {
	t.calls++
	return nil, &url.Error{Op: "Get", URL: req.URL.String(), Err: timeoutError{}}
}

func TestGetJSONRetriesOnTimeout(t *testing.T) {
	doer := &testHTTPDoer{}
	client := NewClient("key", WithHTTPClient(doer), WithRetryAttempts(2), WithRetryDelay(time.Millisecond))

	var payload map[string]string
	err := client.getJSON(context.Background(), "probe", "http://example.test/", &payload)
	require.NoError(t, err)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, 2, doer.calls)
}

func TestGetJSONTimeoutBecomesProviderUnavailable(t *testing.T) {
	doer := &alwaysTimeoutDoer{}
	client := NewClient("key", WithHTTPClient(doer), WithRetryAttempts(3), WithRetryDelay(time.Millisecond))

	var payload map[string]string
	err := client.getJSON(context.Background(), "probe", "http://example.test/", &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsProviderUnavailable(err))
	assert.Equal(t, 3, doer.calls)
}

func TestGetJSONDoesNotRetryNotFound(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithRetryAttempts(3), WithRetryDelay(time.Millisecond))

	var payload map[string]any
	err := client.getJSON(context.Background(), "movie 1 details", server.URL, &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, apperrors.IsProviderUnavailable(err))
	assert.Equal(t, 1, calls)
}

func TestGetJSONRetriesServiceUnavailable(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithRetryAttempts(3), WithRetryDelay(time.Millisecond))

	var payload map[string]string
	require.NoError(t, client.getJSON(context.Background(), "probe", server.URL, &payload))
	assert.Equal(t, 3, calls)
}

func TestIsRetryable(t *testing.T) {
	retryErr := &url.Error{Err: timeoutError{}}
	assert.True(t, isRetryable(retryErr))

	connErr := &url.Error{Err: errors.New("connection reset by peer")}
	assert.True(t, isRetryable(connErr))

	nonRetryErr := &url.Error{Err: errors.New("bad request")}
	assert.False(t, isRetryable(nonRetryErr))

	assert.True(t, isRetryable(apperrors.NewProviderUnavailableError("tmdb", "probe", http.StatusTooManyRequests, nil)))
	assert.False(t, isRetryable(apperrors.NewProviderUnavailableError("tmdb", "probe", http.StatusUnauthorized, nil)))
	assert.False(t, isRetryable(apperrors.NewNotFoundError("tmdb", "movie 1")))
}

func TestBackoffDelayCaps(t *testing.T) {
	assert.Equal(t, 1*time.Second, backoffDelay(time.Second, 1))
	assert.Equal(t, 2*time.Second, backoffDelay(time.Second, 2))
	assert.Equal(t, 10*time.Second, backoffDelay(time.Second, 5))
	assert.Equal(t, 4*time.Millisecond, backoffDelay(time.Millisecond, 3))
}

func TestDoJSONRequestStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("oops"))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL), WithHTTPClient(server.Client()))

	var payload map[string]any
	err := client.doJSONRequest(context.Background(), "probe", server.URL, &payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
	assert.True(t, apperrors.IsProviderUnavailable(err))
}

func TestDoJSONRequestRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))

	var payload map[string]any
	err := client.doJSONRequest(context.Background(), "probe", server.URL, &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsProviderUnavailable(err))
	assert.True(t, apperrors.IsRateLimitError(err))
	assert.Contains(t, err.Error(), "retry after 7s")
}

func TestDoJSONRequestMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))

	var payload map[string]any
	err := client.doJSONRequest(context.Background(), "probe", server.URL, &payload)
	require.Error(t, err)
	assert.True(t, apperrors.IsProviderUnavailable(err))
	assert.Contains(t, err.Error(), "decode response")
}

func TestEndpointAddsCredentialsAndLanguage(t *testing.T) {
	client := NewClient("secret", WithBaseURL("https://example.test/3/"), WithLanguage("fi-FI"))

	endpoint, err := url.Parse(client.endpoint("/movie/603", url.Values{"page": []string{"2"}}))
	require.NoError(t, err)
	assert.Equal(t, "/3/movie/603", endpoint.Path)
	assert.Equal(t, "secret", endpoint.Query().Get("api_key"))
	assert.Equal(t, "fi-FI", endpoint.Query().Get("language"))
	assert.Equal(t, "2", endpoint.Query().Get("page"))
}
