package tmdb

import (
	"fmt"
	"strings"
)

// Cache keys are typed records with a deterministic String rendering, so
// equality never depends on incidental serialization order.

// SearchKey identifies one search request in the cache.
type SearchKey struct {
	Kind  string
	Query string
	Year  int
}

func (k SearchKey) String() string {
	return fmt.Sprintf("search_%s_%s_%d", k.Kind, normalizeKeyPart(k.Query), k.Year)
}

// DetailsKey identifies one details request in the cache.
type DetailsKey struct {
	Kind   string
	ID     int
	Append string
}

func (k DetailsKey) String() string {
	if k.Append == "" {
		return fmt.Sprintf("%s_%d", k.Kind, k.ID)
	}
	return fmt.Sprintf("%s_%d_%s", k.Kind, k.ID, normalizeKeyPart(k.Append))
}

// FindKey identifies one find-by-external-id request in the cache.
type FindKey struct {
	IMDBID string
}

func (k FindKey) String() string {
	return fmt.Sprintf("find_%s", normalizeKeyPart(k.IMDBID))
}

func normalizeKeyPart(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "_")
}
