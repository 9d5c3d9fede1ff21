package catalog

import (
	"strconv"

	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

const (
	sourceIMDb           = "IMDb"
	sourceOMDbIMDb       = "Internet Movie Database"
	sourceRottenTomatoes = "Rotten Tomatoes"
	sourceMetacritic     = "Metacritic"
)

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}

func parseTitleDetails(d *tmdb.TitleDetails, kind MediaKind) TitleRecord {
	record := TitleRecord{
		ID:               strconv.Itoa(d.ID),
		Kind:             kind,
		Title:            d.DisplayTitle(),
		Tagline:          optionalString(d.Tagline),
		Overview:         d.Overview,
		PosterPath:       optionalString(d.PosterPath),
		Rating:           d.VoteAverage,
		Genres:           make([]string, 0, len(d.Genres)),
		SecondaryRatings: map[string]string{},
	}

	if kind == KindShow {
		record.ReleaseDate = optionalString(d.FirstAirDate)
		if len(d.EpisodeRunTime) > 0 {
			record.Runtime = optionalInt(d.EpisodeRunTime[0])
		}
	} else {
		record.ReleaseDate = optionalString(d.ReleaseDate)
		record.Runtime = optionalInt(d.Runtime)
	}

	for _, g := range d.Genres {
		record.Genres = append(record.Genres, g.Name)
	}
	return record
}

func parseListItem(item tmdb.ListItem, kind MediaKind, genreNames map[int]string) TitleRecord {
	record := TitleRecord{
		ID:               strconv.Itoa(item.ID),
		Kind:             kind,
		Title:            item.DisplayTitle(),
		Overview:         item.Overview,
		PosterPath:       optionalString(item.PosterPath),
		Rating:           item.VoteAverage,
		Genres:           make([]string, 0, len(item.GenreIDs)),
		SecondaryRatings: map[string]string{},
	}
	if kind == KindShow {
		record.ReleaseDate = optionalString(item.FirstAirDate)
	} else {
		record.ReleaseDate = optionalString(item.ReleaseDate)
	}
	for _, id := range item.GenreIDs {
		if name, ok := genreNames[id]; ok {
			record.Genres = append(record.Genres, name)
		}
	}
	return record
}

// parseRatings flattens the secondary provider's ratings into source name to score.
func parseRatings(resp *omdb.Response) map[string]string {
	ratings := map[string]string{}
	if resp == nil {
		return ratings
	}
	for _, r := range resp.Ratings {
		if r.Source == "" || r.Value == "" || r.Value == "N/A" {
			continue
		}
		source := r.Source
		if source == sourceOMDbIMDb {
			source = sourceIMDb
		}
		ratings[source] = r.Value
	}
	if _, ok := ratings[sourceIMDb]; !ok && resp.ImdbRating != "" && resp.ImdbRating != "N/A" {
		ratings[sourceIMDb] = resp.ImdbRating + "/10"
	}
	return ratings
}

func parseVideos(videos []tmdb.Video) []VideoCandidate {
	out := make([]VideoCandidate, 0, len(videos))
	for _, v := range videos {
		out = append(out, VideoCandidate{
			ID:       v.ID,
			Name:     v.Name,
			Site:     v.Site,
			Type:     parseVideoType(v.Type),
			Official: v.Official,
			Key:      v.Key,
		})
	}
	return out
}

func parseCast(c tmdb.CastEntry) CastMember {
	return CastMember{
		ID:          strconv.Itoa(c.ID),
		Name:        c.Name,
		Character:   c.Character,
		ProfilePath: optionalString(c.ProfilePath),
	}
}

func parseSimilar(item tmdb.ListItem) SimilarTitleRef {
	return SimilarTitleRef{
		ID:         strconv.Itoa(item.ID),
		Title:      item.DisplayTitle(),
		PosterPath: optionalString(item.PosterPath),
		Rating:     item.VoteAverage,
	}
}

func parseWatchProviders(offers *tmdb.RegionProviders, region string) WatchProviders {
	wp := WatchProviders{
		Region: region,
		Stream: []WatchProvider{},
		Rent:   []WatchProvider{},
		Buy:    []WatchProvider{},
	}
	if offers == nil {
		return wp
	}
	wp.Link = offers.Link
	wp.Stream = convertProviders(offers.Flatrate)
	wp.Rent = convertProviders(offers.Rent)
	wp.Buy = convertProviders(offers.Buy)
	return wp
}

func convertProviders(in []tmdb.WatchProvider) []WatchProvider {
	out := make([]WatchProvider, 0, len(in))
	for _, p := range in {
		out = append(out, WatchProvider{
			ID:       p.ProviderID,
			Name:     p.ProviderName,
			LogoPath: optionalString(p.LogoPath),
		})
	}
	return out
}
