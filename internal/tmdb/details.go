package tmdb

import (
	"context"
	"fmt"
)

// GetMovieDetails fetches movie details. appendToResponse names extra
// sub-resources to inline (e.g. "keywords").
func (c *Client) GetMovieDetails(ctx context.Context, movieID int, appendToResponse string) (map[string]any, error) {
	params := c.baseParams()
	if appendToResponse != "" {
		params.Set("append_to_response", appendToResponse)
	}

	endpoint := fmt.Sprintf("%s/movie/%d?%s", c.baseURL, movieID, params.Encode())

	var details map[string]any
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// GetTVDetails fetches TV show details, optionally appending sub-resources.
func (c *Client) GetTVDetails(ctx context.Context, tvID int, appendToResponse string) (map[string]any, error) {
	params := c.baseParams()
	if appendToResponse != "" {
		params.Set("append_to_response", appendToResponse)
	}

	endpoint := fmt.Sprintf("%s/tv/%d?%s", c.baseURL, tvID, params.Encode())

	var details map[string]any
	if err := c.getJSON(ctx, endpoint, &details); err != nil {
		return nil, err
	}
	return details, nil
}
