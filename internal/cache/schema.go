package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// TMDBSchema defines the schema for TMDB search/details cache
const TMDBSchema = `
CREATE TABLE IF NOT EXISTS tmdb_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tmdb_cached_at ON tmdb_cache(cached_at);
`

// ListingSchema defines the schema for scraped seasonal listing cache
const ListingSchema = `
CREATE TABLE IF NOT EXISTS listing_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_listing_cached_at ON listing_cache(cached_at);
`

// AllSchemas contains all cache table schemas for easy initialization
var AllSchemas = []string{
	TMDBSchema,
	ListingSchema,
}

// ValidTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidTableNames = map[string]bool{
	"tmdb_cache":    true,
	"listing_cache": true,
}
