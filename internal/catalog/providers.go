package catalog

import (
	"context"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

// PrimaryProvider is the metadata catalog. *tmdb.Client implements it.
type PrimaryProvider interface {
	GetTitle(ctx context.Context, id int, mediaType string) (*tmdb.TitleDetails, error)
	GetExternalIDs(ctx context.Context, id int, mediaType string) (*tmdb.ExternalIDs, error)
	GetVideos(ctx context.Context, id int, mediaType string) ([]tmdb.Video, error)
	GetCredits(ctx context.Context, id int, mediaType string) ([]tmdb.CastEntry, error)
	GetSimilar(ctx context.Context, id int, mediaType string, page int) (*tmdb.Page, error)
	GetWatchProviders(ctx context.Context, id int, mediaType, region string) (*tmdb.RegionProviders, error)
	Search(ctx context.Context, query, mediaType string, page int) (*tmdb.Page, error)
	Discover(ctx context.Context, mediaType string, params tmdb.DiscoverParams) (*tmdb.Page, error)
	Genres(ctx context.Context, mediaType string) ([]tmdb.Genre, error)
}

// SecondaryProvider supplies third-party ratings keyed by IMDb id.
// LookupByIMDbID returns (nil, nil) when the id is unknown. *omdb.Client implements it.
type SecondaryProvider interface {
	LookupByIMDbID(ctx context.Context, imdbID string) (*omdb.Response, error)
}

var (
	_ PrimaryProvider   = (*tmdb.Client)(nil)
	_ SecondaryProvider = (*omdb.Client)(nil)
)
