// Package content renders catalog data as markdown.
package content

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/marquee/internal/catalog"
)

// DefaultImageBaseURL is the public TMDB image CDN.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

// Section names accepted by BuildPage.
const (
	SectionOverview  = "overview"
	SectionInfo      = "info"
	SectionRatings   = "ratings"
	SectionTrailer   = "trailer"
	SectionCast      = "cast"
	SectionSimilar   = "similar"
	SectionProviders = "providers"
)

// DefaultSections is the full page in display order.
var DefaultSections = []string{
	SectionOverview,
	SectionInfo,
	SectionRatings,
	SectionTrailer,
	SectionCast,
	SectionSimilar,
	SectionProviders,
}

// Page is everything known about a title. Only Record is required.
type Page struct {
	Record    catalog.TitleRecord       `json:"record" yaml:"record"`
	Trailer   *catalog.VideoCandidate   `json:"trailer,omitempty" yaml:"trailer,omitempty"`
	Cast      []catalog.CastMember      `json:"cast,omitempty" yaml:"cast,omitempty"`
	Similar   []catalog.SimilarTitleRef `json:"similar,omitempty" yaml:"similar,omitempty"`
	Providers *catalog.WatchProviders   `json:"providers,omitempty" yaml:"providers,omitempty"`
}

// Renderer builds markdown documents.
type Renderer struct {
	imageBaseURL string
}

// NewRenderer creates a Renderer. An empty base URL uses DefaultImageBaseURL.
func NewRenderer(imageBaseURL string) *Renderer {
	if imageBaseURL == "" {
		imageBaseURL = DefaultImageBaseURL
	}
	return &Renderer{imageBaseURL: strings.TrimSuffix(imageBaseURL, "/")}
}

func (r *Renderer) imageURL(size string, path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return fmt.Sprintf("%s/%s/%s", r.imageBaseURL, size, strings.TrimPrefix(*path, "/"))
}

// BuildPage renders a title page. Empty sections means DefaultSections.
// Sections with nothing to show are omitted.
func (r *Renderer) BuildPage(page Page, sections []string) string {
	if len(sections) == 0 {
		sections = DefaultSections
	}

	blocks := []string{r.buildHeader(page.Record)}
	for _, section := range sections {
		var block string
		switch section {
		case SectionOverview:
			block = buildOverview(page.Record)
		case SectionInfo:
			block = buildInfo(page.Record)
		case SectionRatings:
			block = buildRatings(page.Record)
		case SectionTrailer:
			block = buildTrailer(page.Trailer)
		case SectionCast:
			block = r.buildCast(page.Cast)
		case SectionSimilar:
			block = buildSimilar(page.Similar)
		case SectionProviders:
			block = buildProviders(page.Providers)
		}
		if block != "" {
			blocks = append(blocks, block)
		}
	}

	return strings.Join(blocks, "\n\n") + "\n"
}
