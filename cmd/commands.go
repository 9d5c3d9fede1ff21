package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lepinkainen/marquee/internal/api"
	"github.com/lepinkainen/marquee/internal/catalog"
	"github.com/lepinkainen/marquee/internal/content"
	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/logging"
	"github.com/lepinkainen/marquee/internal/tui"
)

var selectTitle = tui.Select

// TitleCmd represents the title command
type TitleCmd struct {
	TitleArgs
	Full     bool     `help:"Include trailer, cast, similar titles and watch providers"`
	Sections []string `help:"Markdown sections to render (empty = all)"`
}

func (c *TitleCmd) Run(app *App) error {
	kind, err := c.kind()
	if err != nil {
		return err
	}
	page, err := loadPage(app, c.ID, kind, c.Full)
	if err != nil {
		return err
	}
	return app.emit(page, func() string {
		return app.Renderer.BuildPage(*page, c.Sections)
	}, func() string {
		return textPage(*page)
	})
}

// loadPage resolves a title. With full set it also gathers the extras, which
// are best effort: a failing extra is logged and left out.
func loadPage(app *App, id string, kind catalog.MediaKind, full bool) (*content.Page, error) {
	record, err := app.Catalog.Resolve(app.Ctx, id, kind)
	if err != nil {
		return nil, err
	}
	page := &content.Page{Record: *record}
	if !full {
		return page, nil
	}

	log := logging.FromContext(app.Ctx).With("tmdb_id", id, "kind", kind)
	if page.Trailer, err = app.Catalog.TrailerFor(app.Ctx, id, kind); err != nil {
		log.Warn("Trailer unavailable", "error", err)
	}
	if page.Cast, err = app.Catalog.Cast(app.Ctx, id, kind); err != nil {
		log.Warn("Cast unavailable", "error", err)
	}
	if page.Similar, err = app.Catalog.SimilarTitles(app.Ctx, id, kind, 1); err != nil {
		log.Warn("Similar titles unavailable", "error", err)
	}
	if page.Providers, err = app.Catalog.WatchProviders(app.Ctx, id, kind, ""); err != nil {
		log.Warn("Watch providers unavailable", "error", err)
	}
	return page, nil
}

// TrailerCmd represents the trailer command
type TrailerCmd struct {
	TitleArgs
}

func (c *TrailerCmd) Run(app *App) error {
	kind, err := c.kind()
	if err != nil {
		return err
	}
	trailer, err := app.Catalog.TrailerFor(app.Ctx, c.ID, kind)
	if err != nil {
		return err
	}
	return app.emit(api.TrailerResponse{Trailer: trailer, WatchURL: watchURL(trailer), EmbedURL: embedURL(trailer)},
		func() string { return content.BuildTrailer(trailer) },
		func() string { return textTrailer(trailer) })
}

func watchURL(v *catalog.VideoCandidate) string {
	if v == nil {
		return ""
	}
	return v.WatchURL()
}

func embedURL(v *catalog.VideoCandidate) string {
	if v == nil {
		return ""
	}
	return v.EmbedURL()
}

// SimilarCmd represents the similar command
type SimilarCmd struct {
	TitleArgs
	Page int `help:"Result page" default:"1"`
}

func (c *SimilarCmd) Run(app *App) error {
	kind, err := c.kind()
	if err != nil {
		return err
	}
	refs, err := app.Catalog.SimilarTitles(app.Ctx, c.ID, kind, c.Page)
	if err != nil {
		return err
	}
	return app.emit(refs,
		func() string { return content.BuildSimilar(refs) },
		func() string { return textSimilar(refs) })
}

// CastCmd represents the cast command
type CastCmd struct {
	TitleArgs
}

func (c *CastCmd) Run(app *App) error {
	kind, err := c.kind()
	if err != nil {
		return err
	}
	cast, err := app.Catalog.Cast(app.Ctx, c.ID, kind)
	if err != nil {
		return err
	}
	return app.emit(cast,
		func() string { return app.Renderer.BuildCast(cast) },
		func() string { return textCast(cast) })
}

// SearchCmd represents the search command
type SearchCmd struct {
	Query string `arg:"" help:"Title to search for"`
	Kind  string `short:"k" help:"Media kind: movie or show" default:"movie"`
	Page  int    `help:"Result page" default:"1"`
}

func (c *SearchCmd) Run(app *App) error {
	kind, err := catalog.ParseMediaKind(c.Kind)
	if err != nil {
		return err
	}
	records, err := app.Catalog.Search(app.Ctx, c.Query, kind, c.Page)
	if err != nil {
		return err
	}
	heading := fmt.Sprintf("Search: %s", c.Query)
	return app.emit(records,
		func() string { return content.BuildList(heading, records) },
		func() string { return textRecords(heading, records) })
}

// DiscoverCmd represents the discover command
type DiscoverCmd struct {
	Genre     int     `help:"Genre id (see the genres command); 0 lists every genre" default:"0"`
	Kind      string  `short:"k" help:"Media kind: movie or show" default:"movie"`
	Page      int     `help:"Result page" default:"1"`
	Sort      string  `help:"Sort order, e.g. popularity.desc or vote_average.desc"`
	MinRating float64 `help:"Minimum TMDB vote average"`
	MinVotes  int     `help:"Minimum vote count (defaults to 20 with --min-rating)"`
	YearFrom  int     `help:"Earliest release year"`
	YearTo    int     `help:"Latest release year"`
	Language  string  `help:"Original language (ISO 639-1)"`
}

func (c *DiscoverCmd) options() catalog.DiscoverOptions {
	return catalog.DiscoverOptions{
		SortBy:         c.Sort,
		MinVoteAverage: c.MinRating,
		MinVoteCount:   c.MinVotes,
		YearFrom:       c.YearFrom,
		YearTo:         c.YearTo,
		Language:       c.Language,
	}
}

func (c *DiscoverCmd) Run(app *App) error {
	kind, err := catalog.ParseMediaKind(c.Kind)
	if err != nil {
		return err
	}
	records, err := app.Catalog.DiscoverByGenre(app.Ctx, c.Genre, kind, c.Page, c.options())
	if err != nil {
		return err
	}
	heading := fmt.Sprintf("Discover: genre %d, page %d", c.Genre, max(c.Page, 1))
	return app.emit(records,
		func() string { return content.BuildList(heading, records) },
		func() string { return textRecords(heading, records) })
}

// GenresCmd represents the genres command
type GenresCmd struct {
	Kind string `short:"k" help:"Media kind: movie or show" default:"movie"`
}

func (c *GenresCmd) Run(app *App) error {
	kind, err := catalog.ParseMediaKind(c.Kind)
	if err != nil {
		return err
	}
	genres, err := app.Catalog.Genres(app.Ctx, kind)
	if err != nil {
		return err
	}
	return app.emit(genres,
		func() string { return content.BuildGenres(genres) },
		func() string { return textGenres(genres) })
}

// ProvidersCmd represents the providers command
type ProvidersCmd struct {
	TitleArgs
	Region string `help:"ISO 3166-1 region code (defaults to tmdb.region)"`
}

func (c *ProvidersCmd) Run(app *App) error {
	kind, err := c.kind()
	if err != nil {
		return err
	}
	providers, err := app.Catalog.WatchProviders(app.Ctx, c.ID, kind, c.Region)
	if err != nil {
		return err
	}
	return app.emit(providers,
		func() string { return content.BuildProviders(providers) },
		func() string { return textProviders(providers) })
}

// PosterCmd represents the poster command
type PosterCmd struct {
	TitleArgs
	Output string `short:"o" help:"Destination file (defaults to <kind>-<id>.jpg)" type:"path"`
	Width  int    `help:"Maximum width in pixels" default:"500"`
}

func (c *PosterCmd) Run(app *App) error {
	kind, err := c.kind()
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(strings.TrimSpace(c.ID))
	if err != nil || id <= 0 {
		return catalog.ErrInvalidTitleID
	}

	output := c.Output
	if output == "" {
		output = fmt.Sprintf("%s-%d.jpg", kind, id)
	}
	if err := app.TMDB.DownloadPoster(app.Ctx, id, kind.ProviderType(), output, c.Width); err != nil {
		return err
	}

	logging.FromContext(app.Ctx).Info("Poster saved", "path", filepath.Clean(output))
	_, err = fmt.Fprintln(app.Out, output)
	return err
}

// BrowseCmd represents the browse command
type BrowseCmd struct {
	Query    string   `arg:"" optional:"" help:"Search query; omit to discover by genre"`
	Genre    int      `help:"Genre id used when no query is given" default:"0"`
	Kind     string   `short:"k" help:"Media kind: movie or show" default:"movie"`
	Sections []string `help:"Markdown sections to render for the chosen title (empty = all)"`
}

func (c *BrowseCmd) Run(app *App) error {
	kind, err := catalog.ParseMediaKind(c.Kind)
	if err != nil {
		return err
	}

	for page := 1; ; page++ {
		var (
			records []catalog.TitleRecord
			heading string
		)
		if c.Query != "" {
			records, err = app.Catalog.Search(app.Ctx, c.Query, kind, page)
			heading = fmt.Sprintf("Results for %q (page %d)", c.Query, page)
		} else {
			records, err = app.Catalog.DiscoverByGenre(app.Ctx, c.Genre, kind, page, catalog.DiscoverOptions{})
			heading = fmt.Sprintf("Discover genre %d (page %d)", c.Genre, page)
		}
		if err != nil {
			return err
		}

		result, err := selectTitle(heading, records)
		if err != nil {
			return fmt.Errorf("browse: %w", err)
		}

		switch result.Action {
		case tui.ActionSelected:
			detail, err := loadPage(app, result.Selection.ID, kind, true)
			if err != nil {
				return err
			}
			return app.emit(detail, func() string {
				return app.Renderer.BuildPage(*detail, c.Sections)
			}, func() string {
				return textPage(*detail)
			})
		case tui.ActionNextPage:
			continue
		case tui.ActionStopped:
			return apperrors.NewStopProcessingError("browsing stopped by user")
		default:
			return nil
		}
	}
}

// ServeCmd represents the serve command
type ServeCmd struct {
	Addr string `help:"Listen address (defaults to server.addr)"`
}

func (c *ServeCmd) Run(app *App) error {
	addr := c.Addr
	if addr == "" {
		addr = app.Config.Server.Addr
	}
	// Leave room for the upstream retries of a single request
	writeTimeout := app.Config.HTTP.Timeout * 3
	return api.Serve(app.Ctx, addr, api.NewHandler(app.Catalog), writeTimeout)
}
