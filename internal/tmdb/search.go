package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// DefaultSortBy is the discover ordering used when none is requested.
const DefaultSortBy = "popularity.desc"

// DiscoverParams filters a /discover query. Zero values mean "no filter".
type DiscoverParams struct {
	GenreID          int
	Page             int
	SortBy           string
	MinVoteAverage   float64
	MinVoteCount     int
	YearFrom         int
	YearTo           int
	OriginalLanguage string
}

// Search performs a title search restricted to one media type.
// Results are left in API order.
func (c *Client) Search(ctx context.Context, query, mediaType string, page int) (*Page, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}
	page = normalizePage(page)
	if page > MaxPage {
		return emptyPage(page), nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(page))

	op := fmt.Sprintf("search %s %q", mediaType, query)
	return c.getPage(ctx, op, c.endpoint("search/"+path, params))
}

// GetSimilar fetches titles TMDB considers similar to the given one.
// Pages past the last one come back empty.
func (c *Client) GetSimilar(ctx context.Context, id int, mediaType string, page int) (*Page, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}
	page = normalizePage(page)
	if page > MaxPage {
		return emptyPage(page), nil
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	op := fmt.Sprintf("%s %d similar", mediaType, id)
	return c.getPage(ctx, op, c.endpoint(fmt.Sprintf("%s/%d/similar", path, id), params))
}

// Discover lists titles of a media type, optionally filtered by genre and the
// other DiscoverParams filters.
func (c *Client) Discover(ctx context.Context, mediaType string, p DiscoverParams) (*Page, error) {
	path, err := mediaPath(mediaType)
	if err != nil {
		return nil, err
	}
	page := normalizePage(p.Page)
	if page > MaxPage {
		return emptyPage(page), nil
	}

	params := url.Values{}
	params.Set("include_adult", "false")
	params.Set("page", strconv.Itoa(page))
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	params.Set("sort_by", sortBy)
	if p.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(p.GenreID))
	}
	if p.MinVoteAverage > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(p.MinVoteAverage, 'f', -1, 64))
	}
	if p.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(p.MinVoteCount))
	}

	dateField := "primary_release_date"
	if path == MediaTV {
		dateField = "first_air_date"
	}
	if p.YearFrom > 0 {
		params.Set(dateField+".gte", fmt.Sprintf("%04d-01-01", p.YearFrom))
	}
	if p.YearTo > 0 {
		params.Set(dateField+".lte", fmt.Sprintf("%04d-12-31", p.YearTo))
	}
	if p.OriginalLanguage != "" {
		params.Set("with_original_language", p.OriginalLanguage)
	}

	op := fmt.Sprintf("discover %s genre %d", mediaType, p.GenreID)
	return c.getPage(ctx, op, c.endpoint("discover/"+path, params))
}

func (c *Client) getPage(ctx context.Context, op, endpoint string) (*Page, error) {
	var page Page
	if err := c.getJSON(ctx, op, endpoint, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		page.Results = []ListItem{}
	}
	return &page, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func emptyPage(page int) *Page {
	return &Page{Page: page, Results: []ListItem{}}
}
