package match

import (
	"fmt"
	"strconv"
	"time"
)

// Record provenance values.
const (
	// TypeLink marks an un-enriched record that still points at the source
	// catalog's detail page.
	TypeLink = "link"
	// TypeTMDB marks a record enriched from the external catalog.
	TypeTMDB = "tmdb"
)

// Record is a denormalized, display-ready catalog record. It starts life
// carrying the scraped source fields with Type "link" and, when a match is
// accepted, is overwritten in place by the candidate's richer metadata.
type Record struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Kind     string   `json:"kind,omitempty"`
	Title    string   `json:"title"`
	Poster   string   `json:"poster,omitempty"`
	Backdrop string   `json:"backdrop,omitempty"`
	Date     string   `json:"date,omitempty"`
	Rating   string   `json:"rating,omitempty"`
	Overview string   `json:"overview,omitempty"`
	Link     string   `json:"link,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	// SourceID and MatchScore preserve the original catalog's identity and
	// the accepted match confidence after enrichment.
	SourceID   string  `json:"source_id,omitempty"`
	MatchScore float64 `json:"match_score,omitempty"`
}

// MergeRecord overwrites a source record's display fields with a winning
// candidate's data. Candidate fields that are absent leave the source values
// untouched; the provenance link is cleared since the enriched record no
// longer needs to point back at the source catalog.
func MergeRecord(rec *Record, c Candidate, kind Kind, score float64) {
	rec.SourceID = rec.ID
	rec.ID = strconv.Itoa(c.ID)
	rec.Type = TypeTMDB
	rec.Kind = string(kind)
	rec.MatchScore = score

	if c.Title != "" {
		rec.Title = c.Title
	}
	if c.Poster != "" {
		rec.Poster = c.Poster
	}
	if c.Backdrop != "" {
		rec.Backdrop = c.Backdrop
	}
	if date := canonicalDate(c.ReleaseDate); date != "" {
		rec.Date = date
	}
	if c.VoteAverage > 0 {
		rec.Rating = fmt.Sprintf("%.1f", c.VoteAverage)
	}
	if c.Overview != "" {
		rec.Overview = c.Overview
	}

	rec.Link = ""
}

// canonicalDate parses a candidate release date into YYYY-MM-DD, returning
// "" when the input is unparseable so the source date survives.
func canonicalDate(raw string) string {
	if raw == "" {
		return ""
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.Format("2006-01-02")
	}
	if len(raw) > 10 {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
