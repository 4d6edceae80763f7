// Package tmdb provides a client for TheMovieDB API.
package tmdb

import (
	"net/http"
	"strings"
	"time"

	"github.com/rauko/anibridge/internal/cache"
	apperrors "github.com/rauko/anibridge/internal/errors"
	"github.com/rauko/anibridge/internal/ratelimit"
	"github.com/rauko/anibridge/internal/retry"
)

const (
	defaultBaseURL       = "https://api.themoviedb.org/3"
	defaultImageBaseURL  = "https://image.tmdb.org/t/p/original"
	defaultLanguage      = "zh-CN"
	defaultMaxAttempts   = 3
	defaultRetryDelay    = 500 * time.Millisecond
	defaultRatePerSecond = 4 // TMDB allows ~40 requests per 10 seconds
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TMDB API client. Responses are cached in the injected store
// when one is configured; a nil store disables caching.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	includeAdult bool
	httpClient   HTTPDoer
	rateLimiter  *ratelimit.Limiter
	retryPolicy  retry.Policy
	store        *cache.Store
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		language:     defaultLanguage,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		rateLimiter:  ratelimit.New("TMDB", defaultRatePerSecond),
		retryPolicy:  retry.New(defaultMaxAttempts, defaultRetryDelay, apperrors.IsRetryable),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithLanguage sets the language parameter sent on every request.
func WithLanguage(lang string) Option {
	return func(client *Client) {
		if lang != "" {
			client.language = lang
		}
	}
}

// WithIncludeAdult controls whether adult results are requested.
func WithIncludeAdult(include bool) Option {
	return func(client *Client) {
		client.includeAdult = include
	}
}

// WithRetryPolicy sets the retry policy for failed requests.
func WithRetryPolicy(p retry.Policy) Option {
	return func(client *Client) {
		client.retryPolicy = p
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithCache sets the response cache store.
func WithCache(store *cache.Store) Option {
	return func(client *Client) {
		client.store = store
	}
}

// ImageURL builds a full image URL from a TMDB image path. Empty paths yield
// the empty string.
func (c *Client) ImageURL(path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.imageBaseURL + path
}
