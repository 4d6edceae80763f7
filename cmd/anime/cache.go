package anime

import (
	"context"
	"net/http"
	"strings"

	"github.com/rauko/anibridge/internal/cache"
)

const listingTable = "listing_cache"

type cachedPage struct {
	HTML string `json:"html"`
}

// getCachedListingPage fetches the listing page HTML through the cache so
// repeated builds inside the TTL window skip the network entirely.
func getCachedListingPage(ctx context.Context, store *cache.Store, client *http.Client, pageURL string) ([]byte, bool, error) {
	key := listingKey(pageURL)

	page, fromCache, err := cache.GetOrFetch(store, listingTable, key, func() (*cachedPage, error) {
		html, fetchErr := FetchListingPage(ctx, client, pageURL)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return &cachedPage{HTML: string(html)}, nil
	})
	if err != nil {
		return nil, false, err
	}

	return []byte(page.HTML), fromCache, nil
}

func listingKey(pageURL string) string {
	return "page_" + strings.Join(strings.Fields(strings.ToLower(pageURL)), "_")
}
