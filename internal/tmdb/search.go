package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// SearchMovies performs a movie search on TMDB. A year > 0 is applied as a
// server-side "year" filter.
func (c *Client) SearchMovies(ctx context.Context, query string, year int) ([]SearchResult, error) {
	params := c.baseParams()
	params.Set("query", query)
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}

	endpoint := fmt.Sprintf("%s/search/movie?%s", c.baseURL, params.Encode())

	var response struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	results := response.Results
	for i := range results {
		results[i].MediaType = "movie"
	}
	return results, nil
}

// SearchTV performs a TV search on TMDB. A year > 0 is applied as a
// server-side "first_air_date_year" filter. The parameter name differs from
// the movie endpoint's; callers must not mix them up.
func (c *Client) SearchTV(ctx context.Context, query string, year int) ([]SearchResult, error) {
	params := c.baseParams()
	params.Set("query", query)
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}

	endpoint := fmt.Sprintf("%s/search/tv?%s", c.baseURL, params.Encode())

	var response struct {
		Results []SearchResult `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	results := response.Results
	for i := range results {
		results[i].MediaType = "tv"
	}
	return results, nil
}

// FindByIMDBID finds a TMDB entry by its IMDb ID using the /find endpoint.
// Returns the TMDB ID and media type ("movie" or "tv"), or (0, "", nil) when
// nothing matches.
func (c *Client) FindByIMDBID(ctx context.Context, imdbID string) (int, string, error) {
	if imdbID == "" {
		return 0, "", nil
	}

	params := c.baseParams()
	params.Set("external_source", "imdb_id")

	endpoint := fmt.Sprintf("%s/find/%s?%s", c.baseURL, url.PathEscape(imdbID), params.Encode())

	var response struct {
		MovieResults []struct {
			ID int `json:"id"`
		} `json:"movie_results"`
		TVResults []struct {
			ID int `json:"id"`
		} `json:"tv_results"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return 0, "", err
	}

	// Prefer movie results over TV results
	if len(response.MovieResults) > 0 {
		return response.MovieResults[0].ID, "movie", nil
	}
	if len(response.TVResults) > 0 {
		return response.TVResults[0].ID, "tv", nil
	}
	return 0, "", nil
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("include_adult", strconv.FormatBool(c.includeAdult))
	return params
}
