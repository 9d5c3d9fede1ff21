package omdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/ratelimit"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("omdb-key",
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithRateLimiter(ratelimit.New("OMDB", 0)),
	)
}

func TestLookupByIMDbID_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tt0133093", r.URL.Query().Get("i"))
		require.Equal(t, "omdb-key", r.URL.Query().Get("apikey"))
		_, _ = w.Write([]byte(`{
			"Title": "The Matrix",
			"Year": "1999",
			"Ratings": [
				{"Source": "Internet Movie Database", "Value": "8.7/10"},
				{"Source": "Rotten Tomatoes", "Value": "83%"}
			],
			"imdbRating": "8.7",
			"imdbID": "tt0133093",
			"Response": "True"
		}`))
	})

	resp, err := client.LookupByIMDbID(context.Background(), "tt0133093")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "The Matrix", resp.Title)
	assert.Equal(t, []Rating{
		{Source: "Internet Movie Database", Value: "8.7/10"},
		{Source: "Rotten Tomatoes", Value: "83%"},
	}, resp.Ratings)
	assert.True(t, resp.HasRatings())
}

func TestLookupByIMDbID_NotFound(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"movie not found", `{"Response":"False","Error":"Movie not found!"}`},
		{"incorrect id", `{"Response":"False","Error":"Incorrect IMDb ID."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			resp, err := client.LookupByIMDbID(context.Background(), "tt0000000")
			require.NoError(t, err)
			assert.Nil(t, resp)
		})
	}
}

func TestLookupByIMDbID_RequestLimitStopsFurtherCalls(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Response":"False","Error":"Request limit reached!"}`))
	})

	_, err := client.LookupByIMDbID(context.Background(), "tt0133093")
	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimitError(err))
	assert.False(t, client.RequestsAllowed())

	_, err = client.LookupByIMDbID(context.Background(), "tt0234215")
	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimitError(err))
	assert.Equal(t, 1, calls)
}

func TestLookupByIMDbID_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	resp, err := client.LookupByIMDbID(context.Background(), "tt0133093")
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, apperrors.IsProviderUnavailable(err))
}

func TestLookupByIMDbID_Malformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	})

	_, err := client.LookupByIMDbID(context.Background(), "tt0133093")
	require.Error(t, err)
	assert.True(t, apperrors.IsProviderUnavailable(err))
}

func TestLookupByIMDbID_EmptyID(t *testing.T) {
	client := NewClient("key")

	_, err := client.LookupByIMDbID(context.Background(), "")
	assert.Error(t, err)
}

func TestHasRatings(t *testing.T) {
	var missing *Response
	assert.False(t, missing.HasRatings())
	assert.False(t, (&Response{ImdbRating: "N/A"}).HasRatings())
	assert.True(t, (&Response{ImdbRating: "7.1"}).HasRatings())
}
