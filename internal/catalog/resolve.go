package catalog

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/lepinkainen/marquee/internal/tmdb"
)

// Resolve builds the merged record for a title. Primary metadata and the
// external id to secondary ratings chain are fetched concurrently. Only a
// primary failure fails the call; secondary problems leave SecondaryRatings empty.
func (s *Service) Resolve(ctx context.Context, titleID string, kind MediaKind) (*TitleRecord, error) {
	id, err := validate(titleID, kind)
	if err != nil {
		return nil, err
	}

	var (
		details *tmdb.TitleDetails
		imdbID  string
		ratings map[string]string
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		d, err := s.primary.GetTitle(ctx, id, kind.ProviderType())
		if err != nil {
			return err
		}
		details = d
		return nil
	})
	p.Go(func(ctx context.Context) error {
		imdbID, ratings = s.secondaryRatings(ctx, id, kind)
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("resolve %s %s: %w", kind, titleID, err)
	}
	if details == nil {
		return nil, fmt.Errorf("resolve %s %s: empty response", kind, titleID)
	}

	record := parseTitleDetails(details, kind)
	record.SecondaryRatings = ratings
	if imdbID != "" {
		record.ExternalID = &imdbID
	}
	return &record, nil
}

// secondaryRatings follows external ids to the secondary provider. It never fails;
// every error path yields an empty map.
func (s *Service) secondaryRatings(ctx context.Context, id int, kind MediaKind) (string, map[string]string) {
	ratings := map[string]string{}
	log := logger(ctx).With("tmdb_id", id, "kind", kind)

	ids, err := s.primary.GetExternalIDs(ctx, id, kind.ProviderType())
	if err != nil {
		log.Debug("External ids unavailable, skipping secondary ratings", "error", err)
		return "", ratings
	}
	if ids == nil || ids.IMDbID == "" {
		log.Debug("No IMDb id for title")
		return "", ratings
	}

	if s.secondary == nil {
		return ids.IMDbID, ratings
	}

	resp, err := s.secondary.LookupByIMDbID(ctx, ids.IMDbID)
	if err != nil {
		log.Warn("Secondary ratings lookup failed", "imdb_id", ids.IMDbID, "error", err)
		return ids.IMDbID, ratings
	}
	if resp == nil {
		log.Debug("Title not known to secondary provider", "imdb_id", ids.IMDbID)
		return ids.IMDbID, ratings
	}

	ratings = parseRatings(resp)
	if len(ratings) == 0 {
		log.Debug("Secondary provider returned no ratings", "imdb_id", ids.IMDbID)
	}
	return ids.IMDbID, ratings
}
