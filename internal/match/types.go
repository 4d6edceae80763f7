// Package match implements cross-catalog title matching: query generation
// from noisy source titles, candidate scoring, and best-match selection
// against an external search collaborator.
package match

import "context"

// Kind identifies the target media kind for a search.
type Kind string

// Media kinds.
const (
	KindTV    Kind = "tv"
	KindMovie Kind = "movie"
)

// Candidate is one result from the external catalog's search endpoint.
// Candidates are ephemeral: they exist only while being scored.
type Candidate struct {
	ID               int
	Title            string
	OriginalTitle    string
	ReleaseDate      string
	Popularity       float64
	VoteCount        int
	VoteAverage      float64
	GenreIDs         []int
	OriginalLanguage string
	Adult            bool
	Poster           string
	Backdrop         string
	Overview         string
}

// Year returns the candidate's release year, or 0 when unknown.
func (c Candidate) Year() int {
	if len(c.ReleaseDate) < 4 {
		return 0
	}
	year := 0
	for _, r := range c.ReleaseDate[:4] {
		if r < '0' || r > '9' {
			return 0
		}
		year = year*10 + int(r-'0')
	}
	return year
}

// HasGenre reports whether the candidate carries the given genre id.
func (c Candidate) HasGenre(id int) bool {
	for _, g := range c.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Scored pairs a candidate with its confidence score.
type Scored struct {
	Candidate Candidate
	Score     float64
}

// Input is the title context for one listing's search.
type Input struct {
	// Native is the title in the source's original language.
	Native string
	// Localized is the translated title, when the source provides one.
	Localized string
	// List is the title as displayed on the browse page.
	List string
	Kind Kind
	// Year is the target release year; 0 means unknown.
	Year int
}

// PrimaryTitle returns the first non-empty title, preferring native over
// localized over list-display.
func (in Input) PrimaryTitle() string {
	for _, t := range []string{in.Native, in.Localized, in.List} {
		if t != "" {
			return t
		}
	}
	return ""
}

// SearchClient is the external search collaborator. A year of 0 means no
// server-side year filter.
type SearchClient interface {
	Search(ctx context.Context, kind Kind, query string, year int) ([]Candidate, error)
}

// Config holds the matching engine's tunables.
type Config struct {
	// MaxQueries bounds the generated candidate-query set per listing.
	MaxQueries int
	// MaxConcurrent bounds the number of in-flight search requests per batch.
	MaxConcurrent int
	// AcceptThreshold is the minimum score for a candidate to be accepted.
	// The gate is inclusive: a score exactly at threshold is accepted.
	AcceptThreshold float64
	// Stage1Boost is added to every stage-1 score for passing the
	// server-side year filter.
	Stage1Boost float64
	// Stage1Exit is the high-confidence score at which stage 1 returns
	// immediately without running the broad query fan-out.
	Stage1Exit float64
}

// DefaultConfig returns the standard matching configuration.
func DefaultConfig() Config {
	return Config{
		MaxQueries:      4,
		MaxConcurrent:   3,
		AcceptThreshold: 6,
		Stage1Boost:     12,
		Stage1Exit:      23,
	}
}
