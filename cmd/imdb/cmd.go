// Package imdb builds the movies artifact: IMDb list exports resolved to
// catalog records, enriched with details and semantic tags.
package imdb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rauko/anibridge/internal/artifact"
	"github.com/rauko/anibridge/internal/datastore"
	apperrors "github.com/rauko/anibridge/internal/errors"
	"github.com/rauko/anibridge/internal/match"
	"github.com/rauko/anibridge/internal/tmdb"
)

// Options configures one imdb build run.
type Options struct {
	InputFile  string
	Category   string
	OutputFile string
	Overwrite  bool

	Client *tmdb.Client
	Mirror datastore.Store

	now func() time.Time
}

// Run executes the imdb pipeline: resolve each exported row by its IMDb ID,
// fetch details with keywords, derive tags and write the decade-bucketed
// artifact. Rows that cannot be resolved stay as link records; an
// authorization failure aborts the whole build before anything is written.
func Run(ctx context.Context, opts Options) error {
	if opts.InputFile == "" {
		return fmt.Errorf("input CSV file is required")
	}
	if opts.Client == nil {
		return fmt.Errorf("TMDB client is required")
	}

	category := opts.Category
	if category == "" {
		category = "movies"
	}
	outputFile := opts.OutputFile
	if outputFile == "" {
		outputFile = "json/movies.json"
	}
	now := opts.now
	if now == nil {
		now = time.Now
	}

	rows, err := ReadRows(opts.InputFile)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no rows found in %s", opts.InputFile)
	}
	slog.Info("Loaded export", "file", opts.InputFile, "rows", len(rows))

	records := make([]match.Record, 0, len(rows))
	enriched := 0
	for _, row := range rows {
		rec, ok, err := enrichRow(ctx, opts.Client, row)
		if err != nil {
			return err
		}
		if ok {
			enriched++
		}
		records = append(records, rec)
	}
	slog.Info("Enrichment finished", "total", len(rows), "enriched", enriched)

	doc := artifact.Build(now(), map[string][]match.Record{category: records}, artifact.ByDecade, 0)
	if err := writeArtifact(doc, outputFile, opts.Overwrite); err != nil {
		return err
	}

	if opts.Mirror != nil {
		if err := datastore.MirrorRecords(opts.Mirror, category, records); err != nil {
			return fmt.Errorf("failed to mirror records: %w", err)
		}
	}

	slog.Info("Movie build complete", "records", len(records), "output", outputFile)
	return nil
}

func enrichRow(ctx context.Context, client *tmdb.Client, row Row) (match.Record, bool, error) {
	tmdbID, mediaType, _, err := client.CachedFindByIMDBID(ctx, row.ImdbID)
	if err != nil {
		if apperrors.IsAuthError(err) {
			return match.Record{}, false, err
		}
		slog.Warn("Lookup failed, keeping link record", "imdb_id", row.ImdbID, "error", err)
		return linkRecord(row), false, nil
	}
	if tmdbID == 0 {
		slog.Debug("No catalog entry for export row", "imdb_id", row.ImdbID, "title", row.Title)
		return linkRecord(row), false, nil
	}

	var details map[string]any
	switch mediaType {
	case "tv":
		details, _, err = client.CachedGetTVDetails(ctx, tmdbID, "keywords")
	default:
		details, _, err = client.CachedGetMovieDetails(ctx, tmdbID, "keywords")
	}
	if err != nil {
		if apperrors.IsAuthError(err) {
			return match.Record{}, false, err
		}
		slog.Warn("Details fetch failed, keeping link record", "imdb_id", row.ImdbID, "error", err)
		return linkRecord(row), false, nil
	}

	return buildRecord(row, tmdbID, mediaType, details, client.ImageURL), true, nil
}
