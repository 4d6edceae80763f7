package imdb

import (
	"fmt"
	"strconv"

	"github.com/rauko/anibridge/internal/match"
	"github.com/rauko/anibridge/internal/tags"
)

// detailsTagRecord maps a TMDB details payload onto the tagger's input.
func detailsTagRecord(mediaType string, details map[string]any) tags.Record {
	rec := tags.Record{
		MediaType:   mediaType,
		Seasons:     int(getFloat(details, "number_of_seasons")),
		ReleaseDate: releaseDate(details),
		Genres:      namesOf(details, "genres", "name"),
		Countries:   namesOf(details, "production_countries", "iso_3166_1"),
		Languages:   namesOf(details, "spoken_languages", "iso_639_1"),
	}

	if lang := getString(details, "original_language"); lang != "" {
		rec.Languages = append(rec.Languages, lang)
	}
	if origins, ok := details["origin_country"].([]any); ok {
		for _, o := range origins {
			if s, ok := o.(string); ok {
				rec.Countries = append(rec.Countries, s)
			}
		}
	}

	// Movie payloads nest keywords under "keywords", TV under "results".
	if kw, ok := details["keywords"].(map[string]any); ok {
		for _, listKey := range []string{"keywords", "results"} {
			rec.Keywords = append(rec.Keywords, namesOf(kw, listKey, "name")...)
		}
	}

	return rec
}

// buildRecord assembles the display record for one matched row.
func buildRecord(row Row, tmdbID int, mediaType string, details map[string]any, imageURL func(string) string) match.Record {
	rec := match.Record{
		ID:       strconv.Itoa(tmdbID),
		Type:     match.TypeTMDB,
		Kind:     mediaType,
		Title:    row.Title,
		Date:     row.ReleaseDate,
		SourceID: row.ImdbID,
	}

	if title := firstString(details, "title", "name"); title != "" {
		rec.Title = title
	}
	if date := releaseDate(details); date != "" {
		rec.Date = date
	}
	if avg := getFloat(details, "vote_average"); avg > 0 {
		rec.Rating = fmt.Sprintf("%.1f", avg)
	} else if row.IMDbRating > 0 {
		rec.Rating = fmt.Sprintf("%.1f", row.IMDbRating)
	}
	if overview := getString(details, "overview"); overview != "" {
		rec.Overview = overview
	}
	if poster := getString(details, "poster_path"); poster != "" {
		rec.Poster = imageURL(poster)
	}
	if backdrop := getString(details, "backdrop_path"); backdrop != "" {
		rec.Backdrop = imageURL(backdrop)
	}

	rec.Tags = tags.Derive(detailsTagRecord(mediaType, details))
	return rec
}

// linkRecord keeps an unmatched row pointing at its IMDb page.
func linkRecord(row Row) match.Record {
	rec := match.Record{
		ID:    row.ImdbID,
		Type:  match.TypeLink,
		Title: row.Title,
		Link:  row.URL,
		Date:  row.ReleaseDate,
	}
	if rec.Date == "" && row.Year > 0 {
		rec.Date = strconv.Itoa(row.Year)
	}
	if row.IMDbRating > 0 {
		rec.Rating = fmt.Sprintf("%.1f", row.IMDbRating)
	}
	return rec
}

func releaseDate(details map[string]any) string {
	return firstString(details, "release_date", "first_air_date")
}

func getString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := getString(m, key); s != "" {
			return s
		}
	}
	return ""
}

func getFloat(m map[string]any, key string) float64 {
	f, _ := m[key].(float64)
	return f
}

// namesOf extracts field values from a list of objects, e.g. genre names.
func namesOf(m map[string]any, listKey, field string) []string {
	list, ok := m[listKey].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			if s := getString(obj, field); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
