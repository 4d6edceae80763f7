package match

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/rauko/anibridge/internal/errors"
)

// fakeSearchClient records issued requests and serves canned results.
type fakeSearchClient struct {
	mu       sync.Mutex
	requests []searchRequest
	// results keyed by query; year-filtered requests fall back to the same
	// entry unless yearResults has one.
	results     map[string][]Candidate
	yearResults map[string][]Candidate
	errs        map[string]error
}

func (f *fakeSearchClient) Search(_ context.Context, _ Kind, query string, year int) ([]Candidate, error) {
	f.mu.Lock()
	f.requests = append(f.requests, searchRequest{query: query, year: year})
	f.mu.Unlock()

	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	if year > 0 {
		if res, ok := f.yearResults[query]; ok {
			return res, nil
		}
	}
	return f.results[query], nil
}

func (f *fakeSearchClient) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func newSearcher(client SearchClient) *Searcher {
	return NewSearcher(client, DefaultConfig())
}

func TestSearchStageOneEarlyAccept(t *testing.T) {
	// Scenario: a seasonal listing with an exact-title, exact-year candidate
	// must be accepted by the precise stage without any broad queries.
	frieren := Candidate{
		ID:               209867,
		Title:            "葬送のフリーレン",
		OriginalTitle:    "葬送のフリーレン",
		ReleaseDate:      "2023-09-29",
		GenreIDs:         []int{16},
		Popularity:       500,
		VoteCount:        2000,
		OriginalLanguage: "ja",
	}
	client := &fakeSearchClient{
		results: map[string][]Candidate{"葬送のフリーレン": {frieren}},
	}

	best, err := newSearcher(client).Search(context.Background(), Input{
		List: "葬送のフリーレン",
		Kind: KindTV,
		Year: 2023,
	})

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 209867, best.Candidate.ID)
	assert.GreaterOrEqual(t, best.Score, 23.0)
	assert.Equal(t, 1, client.requestCount(), "early exit must skip the broad stage")
}

func TestSearchWeakOverlapStaysUnmatched(t *testing.T) {
	// No year, and only 1 of 3 query tokens overlaps any candidate.
	client := &fakeSearchClient{
		results: map[string][]Candidate{
			"galactic pirates saga": {{ID: 1, Title: "galactic empire chronicles", GenreIDs: []int{16}}},
		},
	}

	best, err := newSearcher(client).Search(context.Background(), Input{
		List: "Galactic Pirates Saga",
		Kind: KindTV,
	})

	require.NoError(t, err)
	assert.Nil(t, best, "weak token overlap must stay below the acceptance gate")
}

func TestSearchAdultPenaltyDoesNotRejectAlone(t *testing.T) {
	adult := Candidate{
		ID:          9,
		Title:       "perfect match",
		ReleaseDate: "2020-01-01",
		Adult:       true,
	}
	client := &fakeSearchClient{
		results: map[string][]Candidate{"perfect match": {adult}},
	}

	best, err := newSearcher(client).Search(context.Background(), Input{
		List: "Perfect Match",
		Kind: KindMovie,
	})

	require.NoError(t, err)
	require.NotNil(t, best, "adult flag reduces the score but is not a gate by itself")
	assert.Equal(t, 9, best.Candidate.ID)
	// exact(15) + primary(5) + no-target-year(1) + adult(−10)
	assert.InDelta(t, 11, best.Score, 0.001)
}

func TestSearchNoTitlesShortCircuits(t *testing.T) {
	client := &fakeSearchClient{}

	best, err := newSearcher(client).Search(context.Background(), Input{Kind: KindTV, Year: 2023})

	require.NoError(t, err)
	assert.Nil(t, best)
	assert.Zero(t, client.requestCount(), "no titles means no search at all")
}

func TestSearchTVFiltersNonAnimationBeforeScoring(t *testing.T) {
	liveAction := Candidate{ID: 1, Title: "frieren", GenreIDs: []int{18}, Popularity: 900, VoteCount: 9000}
	animated := Candidate{ID: 2, Title: "frieren", GenreIDs: []int{16, 18}}
	client := &fakeSearchClient{
		results: map[string][]Candidate{"frieren": {liveAction, animated}},
	}

	best, err := newSearcher(client).Search(context.Background(), Input{
		List: "Frieren",
		Kind: KindTV,
	})

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 2, best.Candidate.ID, "non-animated TV candidates are discarded before scoring")
}

func TestSearchMovieKindKeepsAllGenres(t *testing.T) {
	liveAction := Candidate{ID: 1, Title: "your name", GenreIDs: []int{18}}
	client := &fakeSearchClient{
		results: map[string][]Candidate{"your name": {liveAction}},
	}

	best, err := newSearcher(client).Search(context.Background(), Input{
		List: "Your Name",
		Kind: KindMovie,
	})

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 1, best.Candidate.ID)
}

func TestSearchQueryFailureIsSoft(t *testing.T) {
	client := &fakeSearchClient{
		results: map[string][]Candidate{
			"overlord": {{ID: 3, Title: "overlord", OriginalTitle: "オーバーロード", GenreIDs: []int{16}, OriginalLanguage: "ja"}},
		},
		errs: map[string]error{
			"overlord s2": errors.New("connection reset"),
		},
	}

	best, err := newSearcher(client).Search(context.Background(), Input{
		Native: "Overlord S2",
		List:   "Overlord",
		Kind:   KindTV,
	})

	require.NoError(t, err, "a single failed query must not abort the search")
	require.NotNil(t, best)
	assert.Equal(t, 3, best.Candidate.ID)
}

func TestSearchAuthErrorAborts(t *testing.T) {
	client := &fakeSearchClient{
		errs: map[string]error{
			"frieren": apperrors.NewAuthError(401, "invalid api key"),
		},
	}

	best, err := newSearcher(client).Search(context.Background(), Input{
		List: "Frieren",
		Kind: KindTV,
		Year: 2023,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsAuthError(err))
	assert.Nil(t, best)
}

func TestSearchAcceptThresholdIsInclusive(t *testing.T) {
	// substring(7) + primary-substring(3) + no-target-year(1) = exactly 11
	cfg := DefaultConfig()
	cfg.AcceptThreshold = 11

	client := &fakeSearchClient{
		results: map[string][]Candidate{
			"gundam": {{ID: 5, Title: "mobile suit gundam"}},
		},
	}

	best, err := NewSearcher(client, cfg).Search(context.Background(), Input{
		List: "Gundam",
		Kind: KindMovie,
	})
	require.NoError(t, err)
	require.NotNil(t, best, "a score exactly at threshold is accepted")
	assert.InDelta(t, 11, best.Score, 0.001)

	cfg.AcceptThreshold = 11.01
	best, err = NewSearcher(client, cfg).Search(context.Background(), Input{
		List: "Gundam",
		Kind: KindMovie,
	})
	require.NoError(t, err)
	assert.Nil(t, best, "a score below threshold is rejected")
}

func TestSearchIssuesYearFilteredVariants(t *testing.T) {
	client := &fakeSearchClient{results: map[string][]Candidate{}}

	_, err := newSearcher(client).Search(context.Background(), Input{
		List: "Some Show",
		Kind: KindTV,
		Year: 2021,
	})
	require.NoError(t, err)

	var unfiltered, filtered int
	client.mu.Lock()
	defer client.mu.Unlock()
	for _, r := range client.requests[1:] { // skip the stage-1 request
		if r.year == 2021 {
			filtered++
		} else {
			unfiltered++
		}
	}
	assert.Equal(t, unfiltered, filtered, "each broad query gets an unfiltered and a year-filtered search")
	assert.Greater(t, unfiltered, 0)
}

func TestSearchTieKeepsFirstSeen(t *testing.T) {
	twin := Candidate{Title: "twin stars", GenreIDs: []int{16}}
	first, second := twin, twin
	first.ID = 100
	second.ID = 200
	client := &fakeSearchClient{
		results: map[string][]Candidate{
			"twin stars": {first, second},
		},
	}

	best, err := newSearcher(client).Search(context.Background(), Input{
		List: "Twin Stars",
		Kind: KindTV,
	})

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 100, best.Candidate.ID, "ties keep the first-seen highest")
}
