package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lepinkainen/marquee/internal/catalog"
)

func (r *Renderer) buildHeader(record catalog.TitleRecord) string {
	var builder strings.Builder
	builder.WriteString("# ")
	builder.WriteString(record.Title)
	if year := record.Year(); year != "" {
		builder.WriteString(fmt.Sprintf(" (%s)", year))
	}
	if poster := r.imageURL("w500", record.PosterPath); poster != "" {
		builder.WriteString(fmt.Sprintf("\n\n![%s](%s)", record.Title, poster))
	}
	return builder.String()
}

func buildOverview(record catalog.TitleRecord) string {
	overview := strings.TrimSpace(record.Overview)
	if overview == "" {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("## Overview\n\n")
	builder.WriteString(overview)

	if record.Tagline != nil {
		if tagline := strings.TrimSpace(*record.Tagline); tagline != "" {
			builder.WriteString("\n\n> _\"")
			builder.WriteString(tagline)
			builder.WriteString("\"_")
		}
	}
	return builder.String()
}

func buildInfo(record catalog.TitleRecord) string {
	var builder strings.Builder
	builder.WriteString("## ")
	if record.Kind == catalog.KindShow {
		builder.WriteString("Series Info\n\n")
	} else {
		builder.WriteString("Movie Info\n\n")
	}

	builder.WriteString("| | |\n")
	builder.WriteString("|---|---|\n")

	if record.ReleaseDate != nil {
		label := "Released"
		if record.Kind == catalog.KindShow {
			label = "First Aired"
		}
		builder.WriteString(fmt.Sprintf("| **%s** | %s |\n", label, *record.ReleaseDate))
	}
	if record.Runtime != nil {
		builder.WriteString(fmt.Sprintf("| **Runtime** | %s |\n", formatRuntime(*record.Runtime)))
	}
	if len(record.Genres) > 0 {
		builder.WriteString(fmt.Sprintf("| **Genres** | %s |\n", strings.Join(record.Genres, ", ")))
	}
	if record.Rating > 0 {
		builder.WriteString(fmt.Sprintf("| **TMDB Rating** | ⭐ %.1f/10 |\n", record.Rating))
	}
	if record.ExternalID != nil {
		imdb := *record.ExternalID
		builder.WriteString(fmt.Sprintf("| **IMDB** | [imdb.com/title/%s](https://www.imdb.com/title/%s/) |\n", imdb, imdb))
	}
	builder.WriteString(fmt.Sprintf("| **TMDB** | [themoviedb.org/%s/%s](%s) |\n",
		tmdbPath(record.Kind), record.ID, tmdbURL(record)))

	return strings.TrimRight(builder.String(), "\n")
}

// ratingOrder lists the well-known sources first; anything else follows alphabetically.
var ratingOrder = []string{"IMDb", "Rotten Tomatoes", "Metacritic"}

func buildRatings(record catalog.TitleRecord) string {
	if len(record.SecondaryRatings) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("## Ratings\n\n")
	for _, source := range orderedSources(record.SecondaryRatings) {
		builder.WriteString(fmt.Sprintf("- **%s:** %s\n", source, record.SecondaryRatings[source]))
	}
	return strings.TrimRight(builder.String(), "\n")
}

func orderedSources(ratings map[string]string) []string {
	sources := make([]string, 0, len(ratings))
	seen := make(map[string]bool, len(ratingOrder))
	for _, source := range ratingOrder {
		if _, ok := ratings[source]; ok {
			sources = append(sources, source)
			seen[source] = true
		}
	}
	var rest []string
	for source := range ratings {
		if !seen[source] {
			rest = append(rest, source)
		}
	}
	sort.Strings(rest)
	return append(sources, rest...)
}

func buildTrailer(trailer *catalog.VideoCandidate) string {
	if trailer == nil {
		return ""
	}
	name := trailer.Name
	if name == "" {
		name = string(trailer.Type)
	}
	return fmt.Sprintf("## Trailer\n\n[▶ %s](%s)", name, trailer.WatchURL())
}

func (r *Renderer) buildCast(cast []catalog.CastMember) string {
	if len(cast) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("## Cast\n\n")
	builder.WriteString("| | Actor | Character |\n")
	builder.WriteString("|---|---|---|\n")
	for _, member := range cast {
		photo := ""
		if url := r.imageURL("w185", member.ProfilePath); url != "" {
			photo = fmt.Sprintf("![%s](%s)", member.Name, url)
		}
		builder.WriteString(fmt.Sprintf("| %s | %s | %s |\n", photo, escapeCell(member.Name), escapeCell(member.Character)))
	}
	return strings.TrimRight(builder.String(), "\n")
}

func buildSimilar(similar []catalog.SimilarTitleRef) string {
	if len(similar) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString("## Similar Titles\n\n")
	for _, ref := range similar {
		builder.WriteString(fmt.Sprintf("- %s", ref.Title))
		if ref.Rating > 0 {
			builder.WriteString(fmt.Sprintf(" • ⭐ %.1f/10", ref.Rating))
		}
		builder.WriteString("\n")
	}
	return strings.TrimRight(builder.String(), "\n")
}

func buildProviders(providers *catalog.WatchProviders) string {
	if providers == nil || providers.Empty() {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("## Where to Watch %s %s\n\n", countryFlag(providers.Region), providers.Region))
	writeProviderLine(&builder, "Stream", providers.Stream)
	writeProviderLine(&builder, "Rent", providers.Rent)
	writeProviderLine(&builder, "Buy", providers.Buy)
	if providers.Link != "" {
		builder.WriteString(fmt.Sprintf("\n[All options on TMDB](%s)\n", providers.Link))
	}
	return strings.TrimRight(builder.String(), "\n")
}

func writeProviderLine(builder *strings.Builder, label string, providers []catalog.WatchProvider) {
	if len(providers) == 0 {
		return
	}
	names := make([]string, 0, len(providers))
	for _, p := range providers {
		names = append(names, p.Name)
	}
	builder.WriteString(fmt.Sprintf("- **%s:** %s\n", label, strings.Join(names, ", ")))
}
