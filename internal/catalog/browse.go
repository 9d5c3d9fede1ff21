package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

// defaultMinVoteCount keeps rating filters from being dominated by titles with a handful of votes.
const defaultMinVoteCount = 20

// DiscoverOptions narrows a discover query. The zero value means "most popular first, no filters".
type DiscoverOptions struct {
	SortBy         string
	MinVoteAverage float64
	MinVoteCount   int
	YearFrom       int
	YearTo         int
	Language       string
}

// params converts the options into provider parameters.
func (o DiscoverOptions) params(genreID, page int) tmdb.DiscoverParams {
	p := tmdb.DiscoverParams{
		GenreID:          genreID,
		Page:             page,
		SortBy:           o.SortBy,
		MinVoteAverage:   o.MinVoteAverage,
		MinVoteCount:     o.MinVoteCount,
		YearFrom:         o.YearFrom,
		YearTo:           o.YearTo,
		OriginalLanguage: o.Language,
	}
	if p.SortBy == "" {
		p.SortBy = tmdb.DefaultSortBy
	}
	if p.MinVoteAverage > 0 && p.MinVoteCount == 0 {
		p.MinVoteCount = defaultMinVoteCount
	}
	return p
}

// Search finds titles matching query. Records carry no secondary ratings.
func (s *Service) Search(ctx context.Context, query string, kind MediaKind, page int) ([]TitleRecord, error) {
	if !kind.Valid() {
		return nil, ErrInvalidMediaKind
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	result, err := s.primary.Search(ctx, query, kind.ProviderType(), page)
	if err != nil {
		return nil, fmt.Errorf("search %s %q: %w", kind, query, err)
	}
	return s.listRecords(ctx, result, kind), nil
}

// DiscoverByGenre lists titles in a genre. genreID 0 means every genre.
func (s *Service) DiscoverByGenre(ctx context.Context, genreID int, kind MediaKind, page int, opts DiscoverOptions) ([]TitleRecord, error) {
	if !kind.Valid() {
		return nil, ErrInvalidMediaKind
	}
	if genreID < 0 {
		return nil, fmt.Errorf("invalid genre id %d", genreID)
	}

	result, err := s.primary.Discover(ctx, kind.ProviderType(), opts.params(genreID, page))
	if err != nil {
		return nil, fmt.Errorf("discover %s genre %d: %w", kind, genreID, err)
	}
	return s.listRecords(ctx, result, kind), nil
}

// Genres lists the provider genres for kind.
func (s *Service) Genres(ctx context.Context, kind MediaKind) ([]Genre, error) {
	if !kind.Valid() {
		return nil, ErrInvalidMediaKind
	}
	genres, err := s.primary.Genres(ctx, kind.ProviderType())
	if err != nil {
		return nil, fmt.Errorf("genres for %s: %w", kind, err)
	}
	out := make([]Genre, 0, len(genres))
	for _, g := range genres {
		out = append(out, Genre{ID: g.ID, Name: g.Name})
	}
	return out, nil
}

// WatchProviders lists streaming, rental and purchase offers for a title.
// An empty region uses the service default.
func (s *Service) WatchProviders(ctx context.Context, titleID string, kind MediaKind, region string) (*WatchProviders, error) {
	id, err := validate(titleID, kind)
	if err != nil {
		return nil, err
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = s.region
	}

	offers, err := s.primary.GetWatchProviders(ctx, id, kind.ProviderType(), region)
	if err != nil {
		return nil, fmt.Errorf("watch providers for %s %s: %w", kind, titleID, err)
	}
	wp := parseWatchProviders(offers, region)
	return &wp, nil
}

// listRecords converts a result page. A failed genre list only drops genre names.
func (s *Service) listRecords(ctx context.Context, page *tmdb.Page, kind MediaKind) []TitleRecord {
	records := make([]TitleRecord, 0)
	if page == nil || len(page.Results) == 0 {
		return records
	}

	names := map[int]string{}
	genres, err := s.primary.Genres(ctx, kind.ProviderType())
	if err != nil {
		logger(ctx).Warn("Genre list unavailable, records will have no genre names", "kind", kind, "error", err)
	}
	for _, g := range genres {
		names[g.ID] = g.Name
	}

	for _, item := range page.Results {
		records = append(records, parseListItem(item, kind, names))
	}
	return records
}
