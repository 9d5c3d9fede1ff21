package catalog

import (
	"context"
	"fmt"
)

// SimilarTitles returns one page of titles the primary provider considers similar,
// in provider order. Pages below 1 are treated as 1; pages past the end are empty.
func (s *Service) SimilarTitles(ctx context.Context, titleID string, kind MediaKind, page int) ([]SimilarTitleRef, error) {
	id, err := validate(titleID, kind)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	result, err := s.primary.GetSimilar(ctx, id, kind.ProviderType(), page)
	if err != nil {
		return nil, fmt.Errorf("similar titles for %s %s: %w", kind, titleID, err)
	}

	refs := make([]SimilarTitleRef, 0)
	if result == nil {
		return refs, nil
	}
	for _, item := range result.Results {
		refs = append(refs, parseSimilar(item))
	}
	return refs, nil
}

// Cast returns the billed cast of a title, truncated to the configured limit.
func (s *Service) Cast(ctx context.Context, titleID string, kind MediaKind) ([]CastMember, error) {
	id, err := validate(titleID, kind)
	if err != nil {
		return nil, err
	}

	credits, err := s.primary.GetCredits(ctx, id, kind.ProviderType())
	if err != nil {
		return nil, fmt.Errorf("cast for %s %s: %w", kind, titleID, err)
	}

	if s.castLimit > 0 && len(credits) > s.castLimit {
		credits = credits[:s.castLimit]
	}
	members := make([]CastMember, 0, len(credits))
	for _, c := range credits {
		members = append(members, parseCast(c))
	}
	return members, nil
}
