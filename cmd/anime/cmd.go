// Package anime builds the anime artifact: wiki listing rows matched against
// the external catalog and merged into display-ready records.
package anime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rauko/anibridge/internal/artifact"
	"github.com/rauko/anibridge/internal/cache"
	"github.com/rauko/anibridge/internal/datastore"
	apperrors "github.com/rauko/anibridge/internal/errors"
	"github.com/rauko/anibridge/internal/fileutil"
	"github.com/rauko/anibridge/internal/match"
	"github.com/rauko/anibridge/internal/tmdb"
)

const defaultConcurrency = 2

// Options configures one anime build run.
type Options struct {
	ListingURL string
	Category   string
	OutputFile string
	Overwrite  bool

	Client     *tmdb.Client
	CacheStore *cache.Store
	Mirror     datastore.Store
	HTTPClient *http.Client

	DownloadCovers bool
	CoverDir       string

	// Concurrency bounds how many listings are matched at once.
	Concurrency int
	MatchConfig match.Config

	// SearchClient overrides the TMDB-backed search collaborator.
	SearchClient match.SearchClient

	now func() time.Time
}

// Run executes the anime pipeline: scrape, match, merge, write. Per-listing
// failures are logged and the listing is kept as a bare link; an
// authorization failure aborts the whole build before anything is written.
func Run(ctx context.Context, opts Options) error {
	if opts.ListingURL == "" {
		return fmt.Errorf("listing URL is required")
	}

	searchClient := opts.SearchClient
	if searchClient == nil {
		if opts.Client == nil {
			return fmt.Errorf("TMDB client is required")
		}
		searchClient = tmdb.NewMatcher(opts.Client)
	}

	category := opts.Category
	if category == "" {
		category = "anime"
	}
	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = "json/anime.json"
	}
	now := opts.now
	if now == nil {
		now = time.Now
	}

	html, fromCache, err := getCachedListingPage(ctx, opts.CacheStore, opts.HTTPClient, opts.ListingURL)
	if err != nil {
		return fmt.Errorf("failed to load listing page: %w", err)
	}
	slog.Info("Loaded listing page", "url", opts.ListingURL, "cached", fromCache)

	listings, err := ParseListings(html, opts.ListingURL)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		return fmt.Errorf("no listings found at %s", opts.ListingURL)
	}
	slog.Info("Parsed listings", "count", len(listings))

	records, err := matchListings(ctx, searchClient, listings, opts)
	if err != nil {
		return err
	}

	if opts.DownloadCovers {
		downloadCovers(ctx, records, opts)
	}

	doc := artifact.Build(now(), map[string][]match.Record{category: records}, artifact.ByYearMonth, 0)
	if err := writeArtifact(doc, outputFile, opts.Overwrite); err != nil {
		return err
	}

	if opts.Mirror != nil {
		if err := datastore.MirrorRecords(opts.Mirror, category, records); err != nil {
			return fmt.Errorf("failed to mirror records: %w", err)
		}
	}

	slog.Info("Anime build complete", "records", len(records), "output", outputFile)
	return nil
}

// matchListings enriches listings in bounded batches, preserving input
// order. Only fatal errors propagate; soft failures leave the listing as a
// link record.
func matchListings(ctx context.Context, client match.SearchClient, listings []Listing, opts Options) ([]match.Record, error) {
	cfg := opts.MatchConfig
	if cfg == (match.Config{}) {
		cfg = match.DefaultConfig()
	}
	searcher := match.NewSearcher(client, cfg)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	records := make([]match.Record, len(listings))
	var mu sync.Mutex
	matched := 0

	for start := 0; start < len(listings); start += concurrency {
		end := min(start+concurrency, len(listings))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				rec, ok, err := matchOne(gctx, searcher, listings[i])
				if err != nil {
					return err
				}
				mu.Lock()
				records[i] = rec
				if ok {
					matched++
				}
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	slog.Info("Matching finished", "total", len(listings), "matched", matched)
	return records, nil
}

func matchOne(ctx context.Context, searcher *match.Searcher, l Listing) (match.Record, bool, error) {
	year, kind := ParseInfo(l.RawInfoText)

	rec := match.Record{
		ID:    l.ID,
		Type:  match.TypeLink,
		Title: l.TitleFromList,
		Link:  l.Link,
	}

	best, err := searcher.Search(ctx, match.Input{
		Native:    l.TitleNative,
		Localized: l.TitleLocalized,
		List:      l.TitleFromList,
		Kind:      kind,
		Year:      year,
	})
	if err != nil {
		if apperrors.IsAuthError(err) {
			return match.Record{}, false, err
		}
		slog.Warn("Listing match failed, keeping link record", "title", l.TitleFromList, "error", err)
		return rec, false, nil
	}
	if best == nil {
		slog.Debug("No trustworthy match", "title", l.TitleFromList)
		return rec, false, nil
	}

	match.MergeRecord(&rec, best.Candidate, kind, best.Score)
	return rec, true, nil
}

// downloadCovers is best-effort: a failed poster download never fails the
// build.
func downloadCovers(ctx context.Context, records []match.Record, opts Options) {
	for _, rec := range records {
		if rec.Type != match.TypeTMDB || rec.Poster == "" {
			continue
		}
		_, err := fileutil.DownloadCover(ctx, fileutil.CoverDownloadOptions{
			URL:       rec.Poster,
			OutputDir: opts.CoverDir,
			Filename:  fileutil.BuildCoverFilename(rec.Title),
			Overwrite: opts.Overwrite,
			Client:    opts.HTTPClient,
		})
		if err != nil {
			slog.Warn("Cover download failed", "title", rec.Title, "error", err)
		}
	}
}
