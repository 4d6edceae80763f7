// Package artifact builds the denormalized JSON documents consumed by the
// display client: enriched records grouped by category, bucketed by a time
// key and split into fixed-size pages.
package artifact

import (
	"sort"
	"time"

	"github.com/rauko/anibridge/internal/match"
)

// DefaultPageSize is the number of records per page in a group.
const DefaultPageSize = 20

// UnknownGroup is the bucket for records whose date cannot be parsed.
const UnknownGroup = "unknown"

// Document is the top-level artifact written to disk.
type Document struct {
	BuiltAt    string              `json:"built_at"`
	Categories map[string]Category `json:"categories"`
}

// Category groups a listing category's records by a time bucket.
type Category struct {
	Total  int              `json:"total"`
	Groups map[string]Group `json:"groups"`
}

// Group is one time bucket, paginated.
type Group struct {
	Total int              `json:"total"`
	Pages [][]match.Record `json:"pages"`
}

// GroupFunc maps a record to its bucket key within a category.
type GroupFunc func(match.Record) string

// ByYearMonth buckets records by "YYYY-MM" of their release date.
func ByYearMonth(r match.Record) string {
	if len(r.Date) >= 7 {
		return r.Date[:7]
	}
	return UnknownGroup
}

// ByDecade buckets records by decade, e.g. "1990s".
func ByDecade(r match.Record) string {
	if t, err := time.Parse("2006-01-02", r.Date); err == nil {
		return decadeLabel(t.Year())
	}
	if len(r.Date) >= 4 {
		if t, err := time.Parse("2006", r.Date[:4]); err == nil {
			return decadeLabel(t.Year())
		}
	}
	return UnknownGroup
}

func decadeLabel(year int) string {
	return time.Date(year-year%10, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006") + "s"
}

// Build assembles a Document from per-category record lists. Records within
// a group are ordered newest first, title ascending on equal dates, and split
// into pages of pageSize (0 means DefaultPageSize). Input slices are not
// modified.
func Build(builtAt time.Time, categories map[string][]match.Record, groupKey GroupFunc, pageSize int) *Document {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	doc := &Document{
		BuiltAt:    builtAt.UTC().Format(time.RFC3339),
		Categories: make(map[string]Category, len(categories)),
	}

	for name, records := range categories {
		buckets := make(map[string][]match.Record)
		for _, r := range records {
			key := groupKey(r)
			buckets[key] = append(buckets[key], r)
		}

		groups := make(map[string]Group, len(buckets))
		for key, bucket := range buckets {
			sorted := make([]match.Record, len(bucket))
			copy(sorted, bucket)
			sort.SliceStable(sorted, func(i, j int) bool {
				if sorted[i].Date != sorted[j].Date {
					return sorted[i].Date > sorted[j].Date
				}
				return sorted[i].Title < sorted[j].Title
			})
			groups[key] = Group{
				Total: len(sorted),
				Pages: paginate(sorted, pageSize),
			}
		}

		doc.Categories[name] = Category{
			Total:  len(records),
			Groups: groups,
		}
	}

	return doc
}

func paginate(records []match.Record, pageSize int) [][]match.Record {
	pages := make([][]match.Record, 0, (len(records)+pageSize-1)/pageSize)
	for start := 0; start < len(records); start += pageSize {
		end := min(start+pageSize, len(records))
		pages = append(pages, records[start:end])
	}
	return pages
}
