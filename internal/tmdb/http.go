package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/rauko/anibridge/internal/errors"
)

// getJSON performs a rate-limited GET with retries per the client's policy.
// Auth failures are classified so callers can abort instead of retrying.
func (c *Client) getJSON(ctx context.Context, endpoint string, target any) error {
	return c.retryPolicy.Do(ctx, func() error {
		return c.doJSONRequest(ctx, endpoint, target)
	})
}

func (c *Client) doJSONRequest(ctx context.Context, endpoint string, target any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		msg := strings.TrimSpace(string(body))
		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return apperrors.NewAuthError(resp.StatusCode, msg)
		case resp.StatusCode == http.StatusTooManyRequests:
			return apperrors.NewRateLimitError(fmt.Sprintf("tmdb rate limited: %s", msg))
		case resp.StatusCode >= 500:
			return apperrors.NewTransientError(resp.StatusCode, msg)
		default:
			return fmt.Errorf("tmdb: unexpected status %d: %s", resp.StatusCode, msg)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("tmdb: decoding response: %w", err)
	}
	return nil
}
