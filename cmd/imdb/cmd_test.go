package imdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rauko/anibridge/internal/artifact"
	apperrors "github.com/rauko/anibridge/internal/errors"
	"github.com/rauko/anibridge/internal/match"
	"github.com/rauko/anibridge/internal/ratelimit"
	"github.com/rauko/anibridge/internal/retry"
	"github.com/rauko/anibridge/internal/tmdb"
)

func newAPIServer(t *testing.T, handler http.HandlerFunc) *tmdb.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return tmdb.NewClient("test-key",
		tmdb.WithBaseURL(server.URL),
		tmdb.WithImageBaseURL("https://img.example.com"),
		tmdb.WithRateLimiter(ratelimit.New("test", 1000)),
		tmdb.WithRetryPolicy(retry.New(1, time.Millisecond, apperrors.IsRetryable)),
	)
}

func TestRunBuildsArtifact(t *testing.T) {
	client := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/find/tt0137523"):
			_, _ = w.Write([]byte(`{"movie_results":[{"id":550}],"tv_results":[]}`))
		case strings.HasPrefix(r.URL.Path, "/find/"):
			_, _ = w.Write([]byte(`{"movie_results":[],"tv_results":[]}`))
		case r.URL.Path == "/movie/550":
			assert.Equal(t, "keywords", r.URL.Query().Get("append_to_response"))
			_, _ = w.Write([]byte(`{
				"id": 550,
				"title": "搏击俱乐部",
				"release_date": "1999-10-15",
				"vote_average": 8.4,
				"poster_path": "/fc.jpg",
				"genres": [{"id": 18, "name": "Drama"}],
				"production_countries": [{"iso_3166_1": "US"}],
				"keywords": {"keywords": [{"id": 1, "name": "fight"}]}
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	outputFile := filepath.Join(t.TempDir(), "movies.json")
	err := Run(context.Background(), Options{
		InputFile:  writeExport(t, exportCSV),
		OutputFile: outputFile,
		Client:     client,
		now:        func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var doc artifact.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "2024-03-01T00:00:00Z", doc.BuiltAt)

	cat := doc.Categories["movies"]
	require.Equal(t, 2, cat.Total)

	nineties, ok := cat.Groups["1990s"]
	require.True(t, ok)
	rec := nineties.Pages[0][0]
	assert.Equal(t, "550", rec.ID)
	assert.Equal(t, match.TypeTMDB, rec.Type)
	assert.Equal(t, "搏击俱乐部", rec.Title)
	assert.Equal(t, "https://img.example.com/fc.jpg", rec.Poster)
	assert.Contains(t, rec.Tags, "type:movie")
	assert.Contains(t, rec.Tags, "region:us-eu")

	// The unresolved row stays a link record in its own decade.
	noughties, ok := cat.Groups["2000s"]
	require.True(t, ok)
	assert.Equal(t, match.TypeLink, noughties.Pages[0][0].Type)
}

func TestRunAbortsOnAuthErrorWithoutWriting(t *testing.T) {
	client := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key"}`))
	})

	outputFile := filepath.Join(t.TempDir(), "movies.json")
	err := Run(context.Background(), Options{
		InputFile:  writeExport(t, exportCSV),
		OutputFile: outputFile,
		Client:     client,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthError(err))
	assert.NoFileExists(t, outputFile)
}

func TestRunTransientLookupDegradesToLinks(t *testing.T) {
	client := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	outputFile := filepath.Join(t.TempDir(), "movies.json")
	err := Run(context.Background(), Options{
		InputFile:  writeExport(t, exportCSV),
		OutputFile: outputFile,
		Client:     client,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var doc artifact.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, group := range doc.Categories["movies"].Groups {
		for _, page := range group.Pages {
			for _, r := range page {
				assert.Equal(t, match.TypeLink, r.Type)
			}
		}
	}
}

func TestRunRequiresInput(t *testing.T) {
	err := Run(context.Background(), Options{Client: newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input CSV")
}
