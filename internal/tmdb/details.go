package tmdb

import (
	"context"
	"fmt"
)

// GetTitle fetches details for a movie or TV show by ID.
func (c *Client) GetTitle(ctx context.Context, id int, mediaType string) (*TitleDetails, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	var details TitleDetails
	op := fmt.Sprintf("%s %d details", mediaType, id)
	if err := c.getJSON(ctx, op, c.endpoint(fmt.Sprintf("%s/%d", path, id), nil), &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// GetExternalIDs fetches the cross-reference identifiers (IMDb, TVDB) for a title.
func (c *Client) GetExternalIDs(ctx context.Context, id int, mediaType string) (*ExternalIDs, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	var ids ExternalIDs
	op := fmt.Sprintf("%s %d external ids", mediaType, id)
	if err := c.getJSON(ctx, op, c.endpoint(fmt.Sprintf("%s/%d/external_ids", path, id), nil), &ids); err != nil {
		return nil, err
	}
	return &ids, nil
}

// GetVideos fetches the videos (trailers, teasers, clips...) attached to a title,
// in the order TMDB returns them.
func (c *Client) GetVideos(ctx context.Context, id int, mediaType string) ([]Video, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	var response struct {
		Results []Video `json:"results"`
	}
	op := fmt.Sprintf("%s %d videos", mediaType, id)
	if err := c.getJSON(ctx, op, c.endpoint(fmt.Sprintf("%s/%d/videos", path, id), nil), &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// GetCredits fetches the cast of a title in billing order.
func (c *Client) GetCredits(ctx context.Context, id int, mediaType string) ([]CastEntry, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	var response struct {
		Cast []CastEntry `json:"cast"`
	}
	op := fmt.Sprintf("%s %d credits", mediaType, id)
	if err := c.getJSON(ctx, op, c.endpoint(fmt.Sprintf("%s/%d/credits", path, id), nil), &response); err != nil {
		return nil, err
	}
	return response.Cast, nil
}

// GetWatchProviders fetches where a title can be streamed, rented or bought in region.
// A region without offers yields an empty RegionProviders, not an error.
func (c *Client) GetWatchProviders(ctx context.Context, id int, mediaType, region string) (*RegionProviders, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	var response struct {
		Results map[string]RegionProviders `json:"results"`
	}
	op := fmt.Sprintf("%s %d watch providers", mediaType, id)
	if err := c.getJSON(ctx, op, c.endpoint(fmt.Sprintf("%s/%d/watch/providers", path, id), nil), &response); err != nil {
		return nil, err
	}

	providers := response.Results[region]
	return &providers, nil
}
