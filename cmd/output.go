package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/marquee/internal/catalog"
	"github.com/lepinkainen/marquee/internal/content"
)

// emit writes v in the selected format. markdown and text render lazily.
func (a *App) emit(v any, markdown func() string, text func() string) error {
	switch a.Format {
	case "json":
		enc := json.NewEncoder(a.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(a.Out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "markdown":
		_, err := io.WriteString(a.Out, markdown())
		return err
	default:
		_, err := io.WriteString(a.Out, text())
		return err
	}
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110"))
	ratingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))
	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s %s\n", labelStyle.Render(label+":"), value)
}

func heading(record catalog.TitleRecord) string {
	if year := record.Year(); year != "" {
		return fmt.Sprintf("%s (%s)", record.Title, year)
	}
	return record.Title
}

func textRecord(b *strings.Builder, record catalog.TitleRecord) {
	b.WriteString(titleStyle.Render(heading(record)))
	b.WriteString("\n")
	if record.Tagline != nil {
		b.WriteString(faintStyle.Render(*record.Tagline))
		b.WriteString("\n")
	}
	field(b, "Kind", string(record.Kind))
	field(b, "TMDB id", record.ID)
	if record.ExternalID != nil {
		field(b, "IMDb id", *record.ExternalID)
	}
	if record.ReleaseDate != nil {
		field(b, "Released", *record.ReleaseDate)
	}
	if record.Runtime != nil {
		field(b, "Runtime", fmt.Sprintf("%d min", *record.Runtime))
	}
	field(b, "Genres", strings.Join(record.Genres, ", "))
	field(b, "TMDB rating", ratingStyle.Render(fmt.Sprintf("%.1f/10", record.Rating)))

	sources := make([]string, 0, len(record.SecondaryRatings))
	for source := range record.SecondaryRatings {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	for _, source := range sources {
		field(b, source, ratingStyle.Render(record.SecondaryRatings[source]))
	}
	if overview := strings.TrimSpace(record.Overview); overview != "" {
		b.WriteString("\n")
		b.WriteString(overview)
		b.WriteString("\n")
	}
}

func textPage(page content.Page) string {
	var b strings.Builder
	textRecord(&b, page.Record)
	if page.Trailer != nil {
		b.WriteString("\n")
		b.WriteString(textTrailer(page.Trailer))
	}
	if len(page.Cast) > 0 {
		b.WriteString("\n")
		b.WriteString(textCast(page.Cast))
	}
	if len(page.Similar) > 0 {
		b.WriteString("\n")
		b.WriteString(textSimilar(page.Similar))
	}
	if page.Providers != nil && !page.Providers.Empty() {
		b.WriteString("\n")
		b.WriteString(textProviders(page.Providers))
	}
	return b.String()
}

func textTrailer(trailer *catalog.VideoCandidate) string {
	if trailer == nil {
		return faintStyle.Render("No trailer available.") + "\n"
	}
	var b strings.Builder
	name := trailer.Name
	if name == "" {
		name = string(trailer.Type)
	}
	field(&b, "Trailer", name)
	field(&b, "Watch", trailer.WatchURL())
	return b.String()
}

func textCast(cast []catalog.CastMember) string {
	if len(cast) == 0 {
		return faintStyle.Render("No cast information.") + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("Cast:"))
	b.WriteString("\n")
	for _, member := range cast {
		if member.Character != "" {
			fmt.Fprintf(&b, "  %s as %s\n", member.Name, member.Character)
		} else {
			fmt.Fprintf(&b, "  %s\n", member.Name)
		}
	}
	return b.String()
}

func textSimilar(refs []catalog.SimilarTitleRef) string {
	if len(refs) == 0 {
		return faintStyle.Render("No similar titles.") + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("Similar:"))
	b.WriteString("\n")
	for _, ref := range refs {
		fmt.Fprintf(&b, "  [%s] %s %s\n", ref.ID, ref.Title, ratingStyle.Render(fmt.Sprintf("%.1f", ref.Rating)))
	}
	return b.String()
}

func textRecords(title string, records []catalog.TitleRecord) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(records) == 0 {
		b.WriteString(faintStyle.Render("No results."))
		b.WriteString("\n")
		return b.String()
	}
	for _, r := range records {
		fmt.Fprintf(&b, "  [%s] %s %s %s\n", r.ID, heading(r),
			ratingStyle.Render(fmt.Sprintf("%.1f", r.Rating)),
			faintStyle.Render(strings.Join(r.Genres, ", ")))
	}
	return b.String()
}

func textGenres(genres []catalog.Genre) string {
	var b strings.Builder
	for _, g := range genres {
		fmt.Fprintf(&b, "%6d  %s\n", g.ID, g.Name)
	}
	return b.String()
}

func textProviders(providers *catalog.WatchProviders) string {
	if providers == nil || providers.Empty() {
		region := catalog.DefaultRegion
		if providers != nil {
			region = providers.Region
		}
		return faintStyle.Render(fmt.Sprintf("Not available to stream, rent or buy in %s.", region)) + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Where to watch (%s):", providers.Region)))
	b.WriteString("\n")
	line := func(label string, list []catalog.WatchProvider) {
		if len(list) == 0 {
			return
		}
		names := make([]string, 0, len(list))
		for _, p := range list {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&b, "  %s: %s\n", label, strings.Join(names, ", "))
	}
	line("Stream", providers.Stream)
	line("Rent", providers.Rent)
	line("Buy", providers.Buy)
	if providers.Link != "" {
		fmt.Fprintf(&b, "  %s\n", faintStyle.Render(providers.Link))
	}
	return b.String()
}
