package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rauko/anibridge/internal/testutil"
)

type testPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	env := testutil.NewTestEnv(t)
	store, err := Open(filepath.Join(env.RootDir(), "cache.db"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestSetAndGet(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Set("tmdb_cache", "key1", `{"id":1}`))

	data, hit, err := store.Get("tmdb_cache", "key1", 0)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, `{"id":1}`, data)
}

func TestGetMissingKey(t *testing.T) {
	store := setupTestStore(t)

	_, hit, err := store.Get("tmdb_cache", "nope", 0)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestExpiryUsesInjectedClock(t *testing.T) {
	store := setupTestStore(t)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	store.SetClock(func() time.Time { return now })

	require.NoError(t, store.Set("tmdb_cache", "key1", "data"))

	// Inside TTL
	now = base.Add(30 * time.Minute)
	_, hit, err := store.Get("tmdb_cache", "key1", 0)
	require.NoError(t, err)
	assert.True(t, hit)

	// Past TTL
	now = base.Add(2 * time.Hour)
	_, hit, err = store.Get("tmdb_cache", "key1", 0)
	require.NoError(t, err)
	assert.False(t, hit, "expired entry must be a miss")
}

func TestInvalidTableNameRejected(t *testing.T) {
	store := setupTestStore(t)

	err := store.Set("bobby_tables; DROP TABLE tmdb_cache", "k", "v")
	require.Error(t, err)

	_, _, err = store.Get("not_a_table", "k", 0)
	require.Error(t, err)
}

func TestClear(t *testing.T) {
	store := setupTestStore(t)

	require.NoError(t, store.Set("listing_cache", "a", "1"))
	require.NoError(t, store.Set("listing_cache", "b", "2"))

	deleted, err := store.Clear("listing_cache")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, hit, err := store.Get("listing_cache", "a", 0)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestGetOrFetchCachesResult(t *testing.T) {
	store := setupTestStore(t)

	calls := 0
	fetch := func() (testPayload, error) {
		calls++
		return testPayload{ID: 7, Name: "frieren"}, nil
	}

	got, fromCache, err := GetOrFetch(store, "tmdb_cache", "p7", fetch)
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 7, got.ID)

	got, fromCache, err = GetOrFetch(store, "tmdb_cache", "p7", fetch)
	require.NoError(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, "frieren", got.Name)
	assert.Equal(t, 1, calls, "second lookup must come from cache")
}

func TestGetOrFetchWithPolicySkipsEmptyResults(t *testing.T) {
	store := setupTestStore(t)

	calls := 0
	fetch := func() (testPayload, error) {
		calls++
		return testPayload{}, nil
	}

	_, _, err := GetOrFetchWithPolicy(store, "tmdb_cache", "empty", fetch, func(p testPayload) bool {
		return p.ID != 0
	})
	require.NoError(t, err)

	_, fromCache, err := GetOrFetchWithPolicy(store, "tmdb_cache", "empty", fetch, func(p testPayload) bool {
		return p.ID != 0
	})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 2, calls, "uncached results must be refetched")
}

func TestGetOrFetchNilStoreFetchesDirectly(t *testing.T) {
	calls := 0
	got, fromCache, err := GetOrFetch(nil, "tmdb_cache", "k", func() (int, error) {
		calls++
		return 42, nil
	})
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}
