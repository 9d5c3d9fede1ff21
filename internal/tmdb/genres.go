package tmdb

import (
	"context"
	"fmt"
)

// Genres fetches the genre list for a media type in API order.
func (c *Client) Genres(ctx context.Context, mediaType string) ([]Genre, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}

	var response struct {
		Genres []Genre `json:"genres"`
	}

	op := fmt.Sprintf("%s genres", mediaType)
	if err := c.getJSON(ctx, op, c.endpoint(fmt.Sprintf("genre/%s/list", path), nil), &response); err != nil {
		return nil, err
	}
	return response.Genres, nil
}
