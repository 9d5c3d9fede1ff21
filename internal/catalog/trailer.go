package catalog

import (
	"context"
	"fmt"
)

type trailerTier func(VideoCandidate) bool

// trailerTiers are tried in order; the first tier with a match wins.
// Anything below the last tier is never selected.
var trailerTiers = []trailerTier{
	func(v VideoCandidate) bool { return v.Type == VideoTrailer && v.Official },
	func(v VideoCandidate) bool { return v.Type == VideoTrailer && !v.Official },
	func(v VideoCandidate) bool { return v.Type == VideoTeaser },
}

// SelectTrailer picks the best YouTube trailer from candidates, preserving input
// order within a tier. It returns nil when nothing qualifies.
func SelectTrailer(candidates []VideoCandidate) *VideoCandidate {
	for _, tier := range trailerTiers {
		for i := range candidates {
			if candidates[i].Site != SiteYouTube {
				continue
			}
			if tier(candidates[i]) {
				selected := candidates[i]
				return &selected
			}
		}
	}
	return nil
}

// TrailerFor fetches the videos of a title and selects its trailer.
func (s *Service) TrailerFor(ctx context.Context, titleID string, kind MediaKind) (*VideoCandidate, error) {
	id, err := validate(titleID, kind)
	if err != nil {
		return nil, err
	}

	videos, err := s.primary.GetVideos(ctx, id, kind.ProviderType())
	if err != nil {
		return nil, fmt.Errorf("videos for %s %s: %w", kind, titleID, err)
	}

	trailer := SelectTrailer(parseVideos(videos))
	if trailer == nil {
		logger(ctx).Debug("No trailer found", "tmdb_id", id, "videos", len(videos))
	}
	return trailer, nil
}
