package match

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/rauko/anibridge/internal/errors"
)

// genreAnimation is the external catalog's fixed genre id for animated
// content. TV searches discard candidates without it before scoring.
const genreAnimation = 16

// Searcher selects the best external-catalog match for a source listing.
type Searcher struct {
	client SearchClient
	cfg    Config
}

// NewSearcher creates a Searcher over the given search collaborator.
func NewSearcher(client SearchClient, cfg Config) *Searcher {
	if cfg.MaxQueries <= 0 {
		cfg.MaxQueries = DefaultMaxQueries
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	return &Searcher{client: client, cfg: cfg}
}

type searchRequest struct {
	query string
	year  int
}

// Search runs the two-stage match protocol and returns the single best
// candidate, or nil when no candidate reaches the acceptance threshold.
//
// Stage 1: when a target year is known, one year-filtered search on the
// normalized primary title; every stage-1 score carries the year-filter
// boost, and a best score at or above the early-exit threshold returns
// immediately. Stage 2: the bounded generated query set, each query searched
// unfiltered plus (when the year is known) year-filtered, fanned out in
// sequential batches of bounded concurrency.
//
// Individual query failures are logged and contribute zero candidates.
// Authorization failures abort the whole search.
func (s *Searcher) Search(ctx context.Context, in Input) (*Scored, error) {
	if in.PrimaryTitle() == "" {
		return nil, nil
	}

	var best *Scored
	consider := func(c Candidate, score float64) {
		// strict > keeps the first-seen candidate on ties
		if best == nil || score > best.Score {
			best = &Scored{Candidate: c, Score: score}
		}
	}

	baseCtx := ScoreContext{
		Year:      in.Year,
		Kind:      in.Kind,
		Native:    in.Native,
		Localized: in.Localized,
		List:      in.List,
	}

	// Stage 1: precise, year-boosted.
	if in.Year > 0 {
		query := Normalize(in.PrimaryTitle())
		results, err := s.client.Search(ctx, in.Kind, query, in.Year)
		switch {
		case apperrors.IsAuthError(err):
			return nil, err
		case err != nil:
			slog.Warn("Stage-1 search failed, continuing with broad queries",
				"query", query, "error", err)
		default:
			sc := baseCtx
			sc.Query = query
			for _, c := range s.eligible(results, in.Kind) {
				consider(c, Score(c, sc)+s.cfg.Stage1Boost)
			}
			if best != nil && best.Score >= s.cfg.Stage1Exit {
				return best, nil
			}
		}
	}

	// Stage 2: broad fan-out over the generated query set.
	requests := s.buildRequests(in)
	for start := 0; start < len(requests); start += s.cfg.MaxConcurrent {
		end := min(start+s.cfg.MaxConcurrent, len(requests))
		batch := requests[start:end]

		type outcome struct {
			results []Candidate
			err     error
		}
		outcomes := make([]outcome, len(batch))

		g := new(errgroup.Group)
		for i, req := range batch {
			g.Go(func() error {
				results, err := s.client.Search(ctx, in.Kind, req.query, req.year)
				outcomes[i] = outcome{results: results, err: err}
				if apperrors.IsAuthError(err) {
					return err
				}
				return nil
			})
		}
		// Wait lets every request in the batch settle; only auth errors
		// surface here and abort the remaining batches.
		if err := g.Wait(); err != nil {
			return nil, err
		}

		// Reduce strictly after the batch has settled.
		for i, o := range outcomes {
			if o.err != nil {
				slog.Warn("Search query failed, treating as empty",
					"query", batch[i].query, "year", batch[i].year, "error", o.err)
				continue
			}
			sc := baseCtx
			sc.Query = batch[i].query
			for _, c := range s.eligible(o.results, in.Kind) {
				consider(c, Score(c, sc))
			}
		}
	}

	if best != nil && best.Score >= s.cfg.AcceptThreshold {
		return best, nil
	}
	return nil, nil
}

// buildRequests expands the generated query set into concrete search
// requests: one unfiltered per query, plus one year-filtered when the
// listing's year is known.
func (s *Searcher) buildRequests(in Input) []searchRequest {
	queries := GenerateQueries(in.Native, in.Localized, in.List, s.cfg.MaxQueries)

	requests := make([]searchRequest, 0, len(queries)*2)
	for _, q := range queries {
		requests = append(requests, searchRequest{query: q})
		if in.Year > 0 {
			requests = append(requests, searchRequest{query: q, year: in.Year})
		}
	}
	return requests
}

// eligible filters candidates before scoring: TV searches keep only animated
// results.
func (s *Searcher) eligible(candidates []Candidate, kind Kind) []Candidate {
	if kind != KindTV {
		return candidates
	}
	kept := candidates[:0:0]
	for _, c := range candidates {
		if c.HasGenre(genreAnimation) {
			kept = append(kept, c)
		}
	}
	return kept
}
