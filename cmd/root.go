package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"

	"github.com/lepinkainen/marquee/internal/catalog"
	"github.com/lepinkainen/marquee/internal/config"
	"github.com/lepinkainen/marquee/internal/content"
	apperrors "github.com/lepinkainen/marquee/internal/errors"
	"github.com/lepinkainen/marquee/internal/logging"
	"github.com/lepinkainen/marquee/internal/omdb"
	"github.com/lepinkainen/marquee/internal/ratelimit"
	"github.com/lepinkainen/marquee/internal/tmdb"
)

var stdout io.Writer = os.Stdout

// CLI represents the complete command structure for the marquee application
type CLI struct {
	// Global flags
	Config   string `help:"Path to config file (defaults to ./config.yaml)" type:"path"`
	LogLevel string `help:"Log level: debug, info, warn or error"`
	LogFile  string `help:"Mirror logs to a rotating file"`
	Format   string `short:"F" help:"Output format" enum:"text,json,yaml,markdown" default:"text"`

	Title     TitleCmd     `cmd:"" help:"Show merged details for a movie or show"`
	Trailer   TrailerCmd   `cmd:"" help:"Show the best trailer for a title"`
	Similar   SimilarCmd   `cmd:"" help:"List titles similar to a title"`
	Cast      CastCmd      `cmd:"" help:"List the cast of a title"`
	Search    SearchCmd    `cmd:"" help:"Search titles by name"`
	Discover  DiscoverCmd  `cmd:"" help:"Discover titles by genre"`
	Genres    GenresCmd    `cmd:"" help:"List genres"`
	Providers ProvidersCmd `cmd:"" help:"Show where a title can be streamed, rented or bought"`
	Poster    PosterCmd    `cmd:"" help:"Download a title's poster"`
	Browse    BrowseCmd    `cmd:"" help:"Interactively browse search or discover results"`
	Serve     ServeCmd     `cmd:"" help:"Serve the catalog as a JSON HTTP API"`
}

// App carries the per-invocation dependencies handed to every command.
type App struct {
	Ctx      context.Context
	Config   *config.Config
	Catalog  *catalog.Service
	TMDB     *tmdb.Client
	Renderer *content.Renderer
	Out      io.Writer
	Format   string
}

func kongOptions() []kong.Option {
	return []kong.Option{
		kong.Name("marquee"),
		kong.Description("Movie and TV details merged from TMDB and OMDb."),
		kong.UsageOnError(),
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	kctx := kong.Parse(&cli, kongOptions()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, &cli, kctx); err != nil {
		if apperrors.IsStopProcessingError(err) {
			return
		}
		slog.Error("Command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cli *CLI, kctx *kong.Context) error {
	v := viper.New()
	if err := initConfig(v, cli); err != nil {
		return err
	}

	closer, err := logging.Setup(logging.Options{
		Level: v.GetString(config.KeyLogLevel),
		File:  v.GetString(config.KeyLogFile),
	})
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	ctx, requestID := logging.WithRequestID(ctx)
	logging.FromContext(ctx).Debug("Starting command", "command", kctx.Command(), "request_id", requestID)

	return kctx.Run(newApp(ctx, cfg, stdout, cli.Format))
}

func initConfig(v *viper.Viper, cli *CLI) error {
	if err := config.SetDefaults(v); err != nil {
		return err
	}
	if err := config.ReadFile(v, cli.Config); err != nil {
		return err
	}

	// Flags win over file and environment
	if cli.LogLevel != "" {
		v.Set(config.KeyLogLevel, cli.LogLevel)
	}
	if cli.LogFile != "" {
		v.Set(config.KeyLogFile, cli.LogFile)
	}
	return nil
}

func newApp(ctx context.Context, cfg *config.Config, out io.Writer, format string) *App {
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey,
		tmdb.WithTimeout(cfg.HTTP.Timeout),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithRetryAttempts(cfg.HTTP.RetryAttempts),
		tmdb.WithRateLimiter(ratelimit.New("TMDB", cfg.TMDB.RatePerSecond)),
		tmdb.WithBaseURL(cfg.TMDB.BaseURL),
		tmdb.WithImageBaseURL(cfg.TMDB.ImageBaseURL),
	)

	// A nil interface, not a typed nil pointer, disables secondary ratings
	var secondary catalog.SecondaryProvider
	if cfg.OMDB.Enabled() {
		secondary = omdb.NewClient(cfg.OMDB.APIKey,
			omdb.WithTimeout(cfg.HTTP.Timeout),
			omdb.WithRateLimiter(ratelimit.New("OMDB", cfg.OMDB.RatePerSecond)),
			omdb.WithBaseURL(cfg.OMDB.BaseURL),
		)
	}

	return &App{
		Ctx:    ctx,
		Config: cfg,
		Catalog: catalog.NewService(tmdbClient, secondary,
			catalog.WithCastLimit(cfg.CastLimit),
			catalog.WithRegion(cfg.TMDB.Region),
		),
		TMDB:     tmdbClient,
		Renderer: content.NewRenderer(cfg.TMDB.ImageBaseURL),
		Out:      out,
		Format:   format,
	}
}

// TitleArgs identifies a single title.
type TitleArgs struct {
	ID   string `arg:"" help:"TMDB id of the title"`
	Kind string `short:"k" help:"Media kind: movie or show" default:"movie"`
}

func (a TitleArgs) kind() (catalog.MediaKind, error) {
	kind, err := catalog.ParseMediaKind(a.Kind)
	if err != nil {
		return "", fmt.Errorf("--kind: %w", err)
	}
	return kind, nil
}
