package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/marquee/internal/omdb"
)

func TestParseRatings(t *testing.T) {
	tests := []struct {
		name string
		resp *omdb.Response
		want map[string]string
	}{
		{
			name: "nil response",
			want: map[string]string{},
		},
		{
			name: "all three sources",
			resp: &omdb.Response{Ratings: []omdb.Rating{
				{Source: "Internet Movie Database", Value: "7.4/10"},
				{Source: "Rotten Tomatoes", Value: "88%"},
				{Source: "Metacritic", Value: "73/100"},
			}},
			want: map[string]string{"IMDb": "7.4/10", "Rotten Tomatoes": "88%", "Metacritic": "73/100"},
		},
		{
			name: "imdb rating fallback",
			resp: &omdb.Response{ImdbRating: "6.1", Ratings: []omdb.Rating{{Source: "Metacritic", Value: "55/100"}}},
			want: map[string]string{"IMDb": "6.1/10", "Metacritic": "55/100"},
		},
		{
			name: "ratings array wins over fallback",
			resp: &omdb.Response{ImdbRating: "6.1", Ratings: []omdb.Rating{{Source: "Internet Movie Database", Value: "6.2/10"}}},
			want: map[string]string{"IMDb": "6.2/10"},
		},
		{
			name: "unavailable values skipped",
			resp: &omdb.Response{ImdbRating: "N/A", Ratings: []omdb.Rating{{Source: "Rotten Tomatoes", Value: "N/A"}}},
			want: map[string]string{},
		},
		{
			name: "unknown source kept",
			resp: &omdb.Response{Ratings: []omdb.Rating{{Source: "Letterboxd", Value: "4.1/5"}}},
			want: map[string]string{"Letterboxd": "4.1/5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRatings(tt.resp)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMediaKind(t *testing.T) {
	tests := []struct {
		in   string
		want MediaKind
	}{
		{"movie", KindMovie},
		{"Film", KindMovie},
		{"show", KindShow},
		{"TV", KindShow},
		{" series ", KindShow},
	}
	for _, tt := range tests {
		got, err := ParseMediaKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMediaKind("episode")
	assert.ErrorIs(t, err, ErrInvalidMediaKind)
}

func TestParseVideoType(t *testing.T) {
	assert.Equal(t, VideoTrailer, parseVideoType("Trailer"))
	assert.Equal(t, VideoTeaser, parseVideoType("Teaser"))
	assert.Equal(t, VideoClip, parseVideoType("Clip"))
	assert.Equal(t, VideoOther, parseVideoType("Featurette"))
	assert.Equal(t, VideoOther, parseVideoType("Behind the Scenes"))
}
