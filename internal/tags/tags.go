// Package tags derives flat classification tag sets from a catalog record's
// structured metadata: media type, localized genres, decade, countries,
// regions and keyword themes. Tags feed the downstream filter layer.
package tags

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is the structured metadata the tagger reads. Fields map directly
// onto the external catalog's detail payload.
type Record struct {
	// MediaType is "movie" or "tv"; when empty, a record with Seasons > 0 is
	// inferred to be a TV show.
	MediaType string
	// Seasons is the season count for TV records.
	Seasons int
	// Genres holds the catalog's English genre names.
	Genres []string
	// ReleaseDate is the first release/air date, YYYY-MM-DD.
	ReleaseDate string
	// Countries holds origin/production country ISO codes.
	Countries []string
	// Languages holds spoken/original language ISO codes.
	Languages []string
	// Keywords holds the catalog's free-form keyword list.
	Keywords []string
}

// Derive computes the record's tag set. Deterministic, pure; the result is
// deduplicated and insertion order carries no meaning.
func Derive(r Record) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}

	switch {
	case r.MediaType == "movie":
		add("type:movie")
	case r.MediaType == "tv" || r.Seasons > 0:
		add("type:tv")
	}

	for _, genre := range r.Genres {
		if genre == animationGenre {
			add("type:animation")
		}
		if localized, ok := genreNames[genre]; ok {
			add("genre:" + localized)
		}
	}

	if decade := decadeOf(r.ReleaseDate); decade != "" {
		add("decade:" + decade)
	}

	codes := make(map[string]bool)
	for _, c := range r.Countries {
		code := strings.ToLower(strings.TrimSpace(c))
		if code != "" {
			add("country:" + code)
			codes[code] = true
		}
	}
	for _, l := range r.Languages {
		if code := strings.ToLower(strings.TrimSpace(l)); code != "" {
			codes[code] = true
		}
	}
	for _, region := range regionOrder {
		if intersects(codes, regionSets[region]) {
			add("region:" + region)
		}
	}

	for _, keyword := range r.Keywords {
		lowered := strings.ToLower(keyword)
		for _, substr := range keywordOrder {
			if strings.Contains(lowered, substr) {
				add(keywordThemes[substr])
			}
		}
	}

	return out
}

// decadeOf floors a release year to its decade label, e.g. "1990s".
func decadeOf(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil || year < 1000 {
		return ""
	}
	return fmt.Sprintf("%ds", year/10*10)
}

func intersects(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}
