package datastore

import (
	"strings"

	"github.com/rauko/anibridge/internal/match"
)

// RecordsSchema is the table layout for mirrored catalog records.
const RecordsSchema = `CREATE TABLE IF NOT EXISTS records (
	id TEXT,
	category TEXT,
	type TEXT,
	kind TEXT,
	title TEXT,
	date TEXT,
	rating TEXT,
	tags TEXT,
	source_id TEXT,
	match_score REAL,
	PRIMARY KEY (id, category)
)`

// MirrorRecords writes enriched records into the records table, replacing
// rows with the same id and category.
func MirrorRecords(store Store, category string, records []match.Record) error {
	if err := store.CreateTable(RecordsSchema); err != nil {
		return err
	}

	rows := make([]map[string]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, map[string]any{
			"id":          r.ID,
			"category":    category,
			"type":        r.Type,
			"kind":        r.Kind,
			"title":       r.Title,
			"date":        r.Date,
			"rating":      r.Rating,
			"tags":        strings.Join(r.Tags, ","),
			"source_id":   r.SourceID,
			"match_score": r.MatchScore,
		})
	}

	return store.BatchInsert("records", rows)
}
