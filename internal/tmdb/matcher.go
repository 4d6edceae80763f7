package tmdb

import (
	"context"
	"fmt"

	"github.com/rauko/anibridge/internal/match"
)

// Matcher adapts the TMDB client to the matching engine's search
// collaborator contract, dispatching on media kind and translating results
// into candidates with fully-qualified image URLs.
type Matcher struct {
	Client *Client
}

// NewMatcher wraps a client for use by the match engine.
func NewMatcher(client *Client) *Matcher {
	return &Matcher{Client: client}
}

// Search implements match.SearchClient.
func (m *Matcher) Search(ctx context.Context, kind match.Kind, query string, year int) ([]match.Candidate, error) {
	var (
		results []SearchResult
		err     error
	)
	switch kind {
	case match.KindMovie:
		results, _, err = m.Client.CachedSearchMovies(ctx, query, year)
	case match.KindTV:
		results, _, err = m.Client.CachedSearchTV(ctx, query, year)
	default:
		return nil, fmt.Errorf("tmdb: unsupported media kind %q", kind)
	}
	if err != nil {
		return nil, err
	}

	candidates := make([]match.Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, match.Candidate{
			ID:               r.ID,
			Title:            r.DisplayTitle(),
			OriginalTitle:    r.OriginalDisplayTitle(),
			ReleaseDate:      r.Date(),
			Popularity:       r.Popularity,
			VoteCount:        r.VoteCount,
			VoteAverage:      r.VoteAverage,
			GenreIDs:         r.GenreIDs,
			OriginalLanguage: r.OriginalLanguage,
			Adult:            r.Adult,
			Poster:           m.Client.ImageURL(r.PosterPath),
			Backdrop:         m.Client.ImageURL(r.BackdropPath),
			Overview:         r.Overview,
		})
	}
	return candidates, nil
}
