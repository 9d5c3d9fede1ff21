package content

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/marquee/internal/catalog"
)

// BuildList renders search or discover results as a markdown table.
func BuildList(heading string, records []catalog.TitleRecord) string {
	var builder strings.Builder
	if heading != "" {
		builder.WriteString("## ")
		builder.WriteString(heading)
		builder.WriteString("\n\n")
	}
	if len(records) == 0 {
		builder.WriteString("_No results._\n")
		return builder.String()
	}

	builder.WriteString("| ID | Title | Year | Rating | Genres |\n")
	builder.WriteString("|---|---|---|---|---|\n")
	for _, r := range records {
		year := r.Year()
		if year == "" {
			year = "TBA"
		}
		builder.WriteString(fmt.Sprintf("| %s | [%s](%s) | %s | %.1f | %s |\n",
			r.ID, escapeCell(r.Title), tmdbURL(r), year, r.Rating, escapeCell(strings.Join(r.Genres, ", "))))
	}
	return builder.String()
}

// BuildCast renders a standalone cast table.
func (r *Renderer) BuildCast(cast []catalog.CastMember) string {
	if block := r.buildCast(cast); block != "" {
		return block + "\n"
	}
	return "_No cast information._\n"
}

// BuildSimilar renders a standalone similar titles list.
func BuildSimilar(similar []catalog.SimilarTitleRef) string {
	if block := buildSimilar(similar); block != "" {
		return block + "\n"
	}
	return "_No similar titles._\n"
}

// BuildProviders renders a standalone watch provider block.
func BuildProviders(providers *catalog.WatchProviders) string {
	if block := buildProviders(providers); block != "" {
		return block + "\n"
	}
	region := catalog.DefaultRegion
	if providers != nil {
		region = providers.Region
	}
	return fmt.Sprintf("_Not available to stream, rent or buy in %s._\n", region)
}

// BuildTrailer renders the trailer link, or a note when there is none.
func BuildTrailer(trailer *catalog.VideoCandidate) string {
	if block := buildTrailer(trailer); block != "" {
		return block + "\n"
	}
	return "_No trailer available._\n"
}

// BuildGenres renders a genre list.
func BuildGenres(genres []catalog.Genre) string {
	var builder strings.Builder
	builder.WriteString("| ID | Genre |\n")
	builder.WriteString("|---|---|\n")
	for _, g := range genres {
		builder.WriteString(fmt.Sprintf("| %d | %s |\n", g.ID, escapeCell(g.Name)))
	}
	return builder.String()
}
