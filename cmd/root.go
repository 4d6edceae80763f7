// Package cmd wires the CLI: flag parsing, configuration, logging and the
// per-source build pipelines.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/rauko/anibridge/cmd/anime"
	"github.com/rauko/anibridge/cmd/imdb"
	"github.com/rauko/anibridge/internal/cache"
	"github.com/rauko/anibridge/internal/config"
	"github.com/rauko/anibridge/internal/datastore"
	"github.com/rauko/anibridge/internal/tmdb"
)

// CLI represents the complete command structure for the anibridge application
type CLI struct {
	// Global flags
	Overwrite      bool `help:"Overwrite existing artifact files"`
	DownloadCovers bool `help:"Download poster images locally"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 720h for 30 days)" default:"720h"`

	// Datastore flags
	DatastoreDB string `help:"Path to SQLite mirror database (empty disables mirroring)"`

	Build BuildCmd `cmd:"" help:"Build JSON artifacts from source catalogs"`
	Cache CacheCmd `cmd:"" help:"Manage cached API responses"`
}

// BuildCmd groups the per-source build pipelines
type BuildCmd struct {
	Anime AnimeCmd `cmd:"" help:"Build the anime artifact from the wiki listing page"`
	IMDB  IMDBCmd  `cmd:"" name:"imdb" help:"Build the movies artifact from an IMDb list export"`
}

// AnimeCmd represents the anime build command
type AnimeCmd struct {
	URL         string `help:"Wiki listing page URL (defaults to ListingURL in config)"`
	Output      string `short:"o" help:"Output JSON file path" default:"json/anime.json"`
	Category    string `help:"Artifact category key" default:"anime"`
	Concurrency int    `help:"Listings matched concurrently" default:"2"`
}

// IMDBCmd represents the imdb build command
type IMDBCmd struct {
	Input    string `short:"f" help:"Path to IMDb export CSV file"`
	Output   string `short:"o" help:"Output JSON file path" default:"json/movies.json"`
	Category string `help:"Artifact category key" default:"movies"`
}

// CacheCmd groups cache maintenance commands
type CacheCmd struct {
	Clear CacheClearCmd `cmd:"" help:"Clear cached API responses"`
}

// CacheClearCmd represents the cache clear command
type CacheClearCmd struct {
	Table string `help:"Only clear one cache table" enum:"all,tmdb_cache,listing_cache" default:"all"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("anibridge"),
		kong.Description("Cross-references media catalogs and emits denormalized JSON artifacts."),
		kong.UsageOnError(),
	)

	config.SetOverwriteFiles(cli.Overwrite)

	// A failed build exits non-zero with no artifact written, so a
	// last-known-good output is never replaced by a partial one.
	if err := ctx.Run(&cli); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("TMDBAPIKey", "TMDB_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("No config file found, using defaults and environment")
		} else {
			slog.Error("Fatal error reading config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}

// runtime holds the shared collaborators a build command needs.
type runtime struct {
	client *tmdb.Client
	store  *cache.Store
	mirror datastore.Store
}

func newRuntime(cli *CLI) (*runtime, error) {
	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB API key is required (set TMDB_API_KEY or TMDBAPIKey in config.yaml)")
	}

	ttl, err := time.ParseDuration(cli.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache TTL %q: %w", cli.CacheTTL, err)
	}

	store, err := cache.Open(cli.CacheDBFile, ttl)
	if err != nil {
		return nil, err
	}

	client := tmdb.NewClient(config.TMDBAPIKey,
		tmdb.WithLanguage(config.TMDBLanguage),
		tmdb.WithCache(store),
	)

	rt := &runtime{client: client, store: store}

	mirrorPath := cli.DatastoreDB
	if mirrorPath == "" {
		mirrorPath = config.DatastorePath
	}
	if mirrorPath != "" {
		mirror := datastore.NewSQLiteStore(mirrorPath)
		if err := mirror.Connect(); err != nil {
			_ = store.Close()
			return nil, err
		}
		rt.mirror = mirror
	}

	return rt, nil
}

func (r *runtime) Close() {
	if r.mirror != nil {
		_ = r.mirror.Close()
	}
	_ = r.store.Close()
}

// Run methods for each command

func (a *AnimeCmd) Run(cli *CLI) error {
	listingURL := a.URL
	if listingURL == "" {
		listingURL = config.ListingURL
	}
	if listingURL == "" {
		return fmt.Errorf("listing URL is required (provide via --url flag or ListingURL in config)")
	}

	rt, err := newRuntime(cli)
	if err != nil {
		return err
	}
	defer rt.Close()

	return anime.Run(context.Background(), anime.Options{
		ListingURL:     listingURL,
		Category:       a.Category,
		OutputFile:     a.Output,
		Overwrite:      cli.Overwrite,
		Client:         rt.client,
		CacheStore:     rt.store,
		Mirror:         rt.mirror,
		DownloadCovers: cli.DownloadCovers || config.DownloadCovers,
		CoverDir:       config.CoverOutputDir,
		Concurrency:    a.Concurrency,
	})
}

func (i *IMDBCmd) Run(cli *CLI) error {
	input := i.Input
	if input == "" {
		input = viper.GetString("imdb.csvfile")
	}
	if input == "" {
		return fmt.Errorf("input CSV file is required (provide via --input flag or imdb.csvfile in config)")
	}

	rt, err := newRuntime(cli)
	if err != nil {
		return err
	}
	defer rt.Close()

	return imdb.Run(context.Background(), imdb.Options{
		InputFile:  input,
		Category:   i.Category,
		OutputFile: i.Output,
		Overwrite:  cli.Overwrite,
		Client:     rt.client,
		Mirror:     rt.mirror,
	})
}

func (c *CacheClearCmd) Run(cli *CLI) error {
	ttl, err := time.ParseDuration(cli.CacheTTL)
	if err != nil {
		return fmt.Errorf("invalid cache TTL %q: %w", cli.CacheTTL, err)
	}

	store, err := cache.Open(cli.CacheDBFile, ttl)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	tables := []string{"tmdb_cache", "listing_cache"}
	if c.Table != "all" {
		tables = []string{c.Table}
	}

	for _, table := range tables {
		removed, err := store.Clear(table)
		if err != nil {
			return err
		}
		slog.Info("Cleared cache table", "table", table, "entries", removed)
	}

	return nil
}
