package imdb

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// ReadRows loads an IMDb export CSV. Columns are located by header name so
// the exact export variant (ratings, watchlist, custom list) doesn't matter;
// only a missing ID column is fatal. Rows without an ID are skipped.
func ReadRows(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["const"]; !ok {
		return nil, fmt.Errorf("CSV is missing the Const column")
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Warn("Skipping malformed CSV record", "error", err)
			continue
		}

		id := field(record, "const")
		if id == "" {
			continue
		}

		year, _ := strconv.Atoi(field(record, "year"))
		rating, _ := strconv.ParseFloat(field(record, "imdb rating"), 64)

		var genres []string
		for _, g := range strings.Split(field(record, "genres"), ",") {
			if g = strings.TrimSpace(g); g != "" {
				genres = append(genres, g)
			}
		}

		rows = append(rows, Row{
			ImdbID:        id,
			Title:         field(record, "title"),
			OriginalTitle: field(record, "original title"),
			TitleType:     field(record, "title type"),
			URL:           field(record, "url"),
			Year:          year,
			IMDbRating:    rating,
			ReleaseDate:   field(record, "release date"),
			Genres:        genres,
			YourRating:    field(record, "your rating"),
		})
	}

	return rows, nil
}
