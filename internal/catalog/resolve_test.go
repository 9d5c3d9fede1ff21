package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

func TestResolve_MergesSecondaryRatings(t *testing.T) {
	svc := NewService(matrixPrimary(), matrixSecondary())

	record, err := svc.Resolve(context.Background(), "603", KindMovie)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "603", record.ID)
	assert.Equal(t, KindMovie, record.Kind)
	assert.Equal(t, "The Matrix", record.Title)
	assert.Equal(t, []string{"Action", "Science Fiction"}, record.Genres)
	assert.InDelta(t, 8.2, record.Rating, 0.001)
	require.NotNil(t, record.ReleaseDate)
	assert.Equal(t, "1999-03-30", *record.ReleaseDate)
	assert.Equal(t, "1999", record.Year())
	require.NotNil(t, record.Runtime)
	assert.Equal(t, 136, *record.Runtime)
	require.NotNil(t, record.ExternalID)
	assert.Equal(t, "tt0133093", *record.ExternalID)
	assert.Equal(t, map[string]string{
		"IMDb":            "8.7/10",
		"Rotten Tomatoes": "83%",
	}, record.SecondaryRatings)
}

func TestResolve_SecondaryNotFoundLeavesEmptyRatings(t *testing.T) {
	primary := matrixPrimary()
	primary.externalIDs[603] = &tmdb.ExternalIDs{IMDbID: "tt9999999"}
	secondary := matrixSecondary()

	record, err := NewService(primary, secondary).Resolve(context.Background(), "603", KindMovie)
	require.NoError(t, err)
	require.NotNil(t, record.SecondaryRatings)
	assert.Empty(t, record.SecondaryRatings)
	assert.Equal(t, int32(1), secondary.calls.Load())
}

func TestResolve_SecondaryFailuresAreAbsorbed(t *testing.T) {
	tests := []struct {
		name      string
		primary   func(*fakePrimary)
		secondary SecondaryProvider
	}{
		{
			name:      "secondary network failure",
			secondary: &fakeSecondary{err: apperrors.NewProviderUnavailableError("omdb", "lookup", 0, errors.New("connection refused"))},
		},
		{
			name:      "secondary rate limited",
			secondary: &fakeSecondary{err: apperrors.NewRateLimitError("OMDB API request limit reached")},
		},
		{
			name: "found but empty",
			secondary: &fakeSecondary{responses: map[string]*omdb.Response{
				"tt0133093": {ImdbID: "tt0133093", ImdbRating: "N/A", Response: "True"},
			}},
		},
		{
			name:      "external ids failure",
			primary:   func(f *fakePrimary) { f.externalErr = errors.New("timeout") },
			secondary: matrixSecondary(),
		},
		{
			name:      "no external id",
			primary:   func(f *fakePrimary) { f.externalIDs = nil },
			secondary: matrixSecondary(),
		},
		{
			name:      "no secondary provider",
			secondary: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := matrixPrimary()
			if tt.primary != nil {
				tt.primary(primary)
			}

			record, err := NewService(primary, tt.secondary).Resolve(context.Background(), "603", KindMovie)
			require.NoError(t, err)
			require.NotNil(t, record)
			assert.Equal(t, "The Matrix", record.Title)
			require.NotNil(t, record.SecondaryRatings)
			assert.Empty(t, record.SecondaryRatings)
		})
	}
}

func TestResolve_PrimaryFailure(t *testing.T) {
	primary := matrixPrimary()
	primary.titleErr = apperrors.NewProviderUnavailableError("tmdb", "movie 603 details", 503, nil)

	record, err := NewService(primary, matrixSecondary()).Resolve(context.Background(), "603", KindMovie)
	require.Error(t, err)
	assert.Nil(t, record)
	assert.True(t, apperrors.IsProviderUnavailable(err))
}

func TestResolve_PrimaryNotFound(t *testing.T) {
	record, err := NewService(matrixPrimary(), nil).Resolve(context.Background(), "42", KindMovie)
	require.Error(t, err)
	assert.Nil(t, record)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestResolve_ValidationMakesNoCalls(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		kind    MediaKind
		wantErr error
	}{
		{"empty id", "", KindMovie, ErrInvalidTitleID},
		{"non numeric id", "tt0133093", KindMovie, ErrInvalidTitleID},
		{"negative id", "-5", KindMovie, ErrInvalidTitleID},
		{"bad kind", "603", MediaKind("episode"), ErrInvalidMediaKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := matrixPrimary()
			secondary := matrixSecondary()

			_, err := NewService(primary, secondary).Resolve(context.Background(), tt.id, tt.kind)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, primary.calls.Load())
			assert.Zero(t, secondary.calls.Load())
		})
	}
}

func TestResolve_Idempotent(t *testing.T) {
	svc := NewService(matrixPrimary(), matrixSecondary())

	first, err := svc.Resolve(context.Background(), "603", KindMovie)
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), "603", KindMovie)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_Show(t *testing.T) {
	primary := &fakePrimary{
		titles: map[int]*tmdb.TitleDetails{
			1396: {
				ID:             1396,
				Name:           "Breaking Bad",
				FirstAirDate:   "2008-01-20",
				EpisodeRunTime: []int{45, 47},
				VoteAverage:    8.9,
			},
		},
	}

	record, err := NewService(primary, nil).Resolve(context.Background(), "1396", KindShow)
	require.NoError(t, err)
	assert.Equal(t, KindShow, record.Kind)
	assert.Equal(t, "Breaking Bad", record.Title)
	require.NotNil(t, record.ReleaseDate)
	assert.Equal(t, "2008-01-20", *record.ReleaseDate)
	require.NotNil(t, record.Runtime)
	assert.Equal(t, 45, *record.Runtime)
	assert.Nil(t, record.PosterPath)
	assert.Nil(t, record.Tagline)
	assert.Nil(t, record.ExternalID)
	assert.Empty(t, record.Genres)
}

func TestResolve_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := matrixPrimary()
	primary.titleErr = apperrors.NewProviderUnavailableError("tmdb", "movie 603 details", 0, context.Canceled)

	record, err := NewService(primary, matrixSecondary()).Resolve(ctx, "603", KindMovie)
	require.Error(t, err)
	assert.Nil(t, record)
	assert.ErrorIs(t, err, context.Canceled)
}
