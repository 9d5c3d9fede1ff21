package catalog

import (
	"context"
	"sync/atomic"

	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// fakePrimary serves canned responses keyed by id. Unset maps behave as 404.
type fakePrimary struct {
	titles      map[int]*tmdb.TitleDetails
	externalIDs map[int]*tmdb.ExternalIDs
	videos      map[int][]tmdb.Video
	credits     map[int][]tmdb.CastEntry
	similar     map[int][]tmdb.ListItem
	providers   map[int]*tmdb.RegionProviders
	results     []tmdb.ListItem
	genres      []tmdb.Genre

	titleErr    error
	externalErr error
	genresErr   error
	listErr     error

	calls        atomic.Int32
	lastDiscover tmdb.DiscoverParams
	lastRegion   string
	lastPage     int
}

func (f *fakePrimary) GetTitle(_ context.Context, id int, mediaType string) (*tmdb.TitleDetails, error) {
	f.calls.Add(1)
	if f.titleErr != nil {
		return nil, f.titleErr
	}
	if d, ok := f.titles[id]; ok {
		return d, nil
	}
	return nil, apperrors.NewNotFoundError("tmdb", mediaType)
}

func (f *fakePrimary) GetExternalIDs(_ context.Context, id int, mediaType string) (*tmdb.ExternalIDs, error) {
	f.calls.Add(1)
	if f.externalErr != nil {
		return nil, f.externalErr
	}
	if ids, ok := f.externalIDs[id]; ok {
		return ids, nil
	}
	return &tmdb.ExternalIDs{}, nil
}

func (f *fakePrimary) GetVideos(_ context.Context, id int, _ string) ([]tmdb.Video, error) {
	f.calls.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.videos[id], nil
}

func (f *fakePrimary) GetCredits(_ context.Context, id int, _ string) ([]tmdb.CastEntry, error) {
	f.calls.Add(1)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.credits[id], nil
}

func (f *fakePrimary) GetSimilar(_ context.Context, id int, _ string, page int) (*tmdb.Page, error) {
	f.calls.Add(1)
	f.lastPage = page
	if f.listErr != nil {
		return nil, f.listErr
	}
	if page > 1 {
		return &tmdb.Page{Page: page, Results: []tmdb.ListItem{}}, nil
	}
	return &tmdb.Page{Page: page, TotalPages: 1, Results: f.similar[id]}, nil
}

func (f *fakePrimary) GetWatchProviders(_ context.Context, id int, _ string, region string) (*tmdb.RegionProviders, error) {
	f.calls.Add(1)
	f.lastRegion = region
	if f.listErr != nil {
		return nil, f.listErr
	}
	if p, ok := f.providers[id]; ok {
		return p, nil
	}
	return &tmdb.RegionProviders{}, nil
}

func (f *fakePrimary) Search(_ context.Context, _ string, _ string, page int) (*tmdb.Page, error) {
	f.calls.Add(1)
	f.lastPage = page
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &tmdb.Page{Page: page, Results: f.results}, nil
}

func (f *fakePrimary) Discover(_ context.Context, _ string, params tmdb.DiscoverParams) (*tmdb.Page, error) {
	f.calls.Add(1)
	f.lastDiscover = params
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &tmdb.Page{Page: params.Page, Results: f.results}, nil
}

func (f *fakePrimary) Genres(_ context.Context, _ string) ([]tmdb.Genre, error) {
	f.calls.Add(1)
	if f.genresErr != nil {
		return nil, f.genresErr
	}
	return f.genres, nil
}

// fakeSecondary answers ratings lookups from a map; unknown ids are not found.
type fakeSecondary struct {
	responses map[string]*omdb.Response
	err       error
	calls     atomic.Int32
}

func (f *fakeSecondary) LookupByIMDbID(_ context.Context, imdbID string) (*omdb.Response, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.responses[imdbID], nil
}

func matrixPrimary() *fakePrimary {
	return &fakePrimary{
		titles: map[int]*tmdb.TitleDetails{
			603: {
				ID:          603,
				Title:       "The Matrix",
				Tagline:     "Welcome to the Real World.",
				Overview:    "Set in the 22nd century...",
				ReleaseDate: "1999-03-30",
				Runtime:     136,
				Genres:      []tmdb.Genre{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
				PosterPath:  "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
				VoteAverage: 8.2,
			},
		},
		externalIDs: map[int]*tmdb.ExternalIDs{
			603: {IMDbID: "tt0133093"},
		},
	}
}

func matrixSecondary() *fakeSecondary {
	return &fakeSecondary{
		responses: map[string]*omdb.Response{
			"tt0133093": {
				Title:  "The Matrix",
				ImdbID: "tt0133093",
				Ratings: []omdb.Rating{
					{Source: "Internet Movie Database", Value: "8.7/10"},
					{Source: "Rotten Tomatoes", Value: "83%"},
				},
				Response: "True",
			},
		},
	}
}
