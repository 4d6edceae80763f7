package tmdb

import (
	"context"

	"github.com/rauko/anibridge/internal/cache"
)

const cacheTable = "tmdb_cache"

// CachedSearchResults wraps a SearchResult slice for caching.
type CachedSearchResults struct {
	Results []SearchResult `json:"results"`
}

// CachedDetails wraps a details map for caching.
type CachedDetails struct {
	Details map[string]any `json:"details"`
}

// CachedFindResult wraps the result of a find-by-external-ID operation.
type CachedFindResult struct {
	TMDBID    int    `json:"tmdb_id"`
	MediaType string `json:"media_type"`
	Found     bool   `json:"found"`
}

// CachedSearchMovies is SearchMovies backed by the client's cache store.
// Empty result sets are not cached so new releases show up on the next run.
func (c *Client) CachedSearchMovies(ctx context.Context, query string, year int) ([]SearchResult, bool, error) {
	key := SearchKey{Kind: "movie", Query: query, Year: year}

	result, fromCache, err := cache.GetOrFetchWithPolicy(c.store, cacheTable, key.String(), func() (*CachedSearchResults, error) {
		results, searchErr := c.SearchMovies(ctx, query, year)
		if searchErr != nil {
			return nil, searchErr
		}
		return &CachedSearchResults{Results: results}, nil
	}, func(result *CachedSearchResults) bool {
		return result != nil && len(result.Results) > 0
	})
	if err != nil {
		return nil, false, err
	}

	return result.Results, fromCache, nil
}

// CachedSearchTV is SearchTV backed by the client's cache store.
func (c *Client) CachedSearchTV(ctx context.Context, query string, year int) ([]SearchResult, bool, error) {
	key := SearchKey{Kind: "tv", Query: query, Year: year}

	result, fromCache, err := cache.GetOrFetchWithPolicy(c.store, cacheTable, key.String(), func() (*CachedSearchResults, error) {
		results, searchErr := c.SearchTV(ctx, query, year)
		if searchErr != nil {
			return nil, searchErr
		}
		return &CachedSearchResults{Results: results}, nil
	}, func(result *CachedSearchResults) bool {
		return result != nil && len(result.Results) > 0
	})
	if err != nil {
		return nil, false, err
	}

	return result.Results, fromCache, nil
}

// CachedGetMovieDetails fetches movie details with caching.
func (c *Client) CachedGetMovieDetails(ctx context.Context, movieID int, appendToResponse string) (map[string]any, bool, error) {
	key := DetailsKey{Kind: "movie", ID: movieID, Append: appendToResponse}

	result, fromCache, err := cache.GetOrFetch(c.store, cacheTable, key.String(), func() (*CachedDetails, error) {
		details, fetchErr := c.GetMovieDetails(ctx, movieID, appendToResponse)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return &CachedDetails{Details: details}, nil
	})
	if err != nil {
		return nil, false, err
	}

	return result.Details, fromCache, nil
}

// CachedGetTVDetails fetches TV details with caching.
func (c *Client) CachedGetTVDetails(ctx context.Context, tvID int, appendToResponse string) (map[string]any, bool, error) {
	key := DetailsKey{Kind: "tv", ID: tvID, Append: appendToResponse}

	result, fromCache, err := cache.GetOrFetch(c.store, cacheTable, key.String(), func() (*CachedDetails, error) {
		details, fetchErr := c.GetTVDetails(ctx, tvID, appendToResponse)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return &CachedDetails{Details: details}, nil
	})
	if err != nil {
		return nil, false, err
	}

	return result.Details, fromCache, nil
}

// CachedFindByIMDBID finds a TMDB entry by IMDb ID with caching. Negative
// results are cached too; a stale "not found" ages out with the store TTL.
func (c *Client) CachedFindByIMDBID(ctx context.Context, imdbID string) (int, string, bool, error) {
	key := FindKey{IMDBID: imdbID}

	result, fromCache, err := cache.GetOrFetch(c.store, cacheTable, key.String(), func() (*CachedFindResult, error) {
		id, mediaType, findErr := c.FindByIMDBID(ctx, imdbID)
		if findErr != nil {
			return nil, findErr
		}
		return &CachedFindResult{TMDBID: id, MediaType: mediaType, Found: id != 0}, nil
	})
	if err != nil {
		return 0, "", false, err
	}

	return result.TMDBID, result.MediaType, fromCache, nil
}
