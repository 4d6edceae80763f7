package match

import (
	"math"
	"strings"
)

// Scoring constants. The values are load-bearing: changing any of them shifts
// the balance between title, year and popularity signals, so they are kept in
// one place.
const (
	scoreExactTitle       = 15
	scoreExactPrimary     = 5
	scoreSubstringTitle   = 7
	scoreSubstringPrimary = 3
	scoreTokenOverlapMax  = 6
	scoreNoUsableTokens   = -2

	scoreYearExact      = 6
	scoreYearOffOne     = 3
	scoreYearOffTwo     = 1
	scoreYearFarPerYear = -1.5
	scoreYearUnknown    = -2
	scoreNoTargetYear   = 1

	scoreJapaneseOrigin = 2.5

	popularityWeight = 2.2
	voteCountWeight  = 1.2

	scoreAdultPenalty = -10
)

// ScoreContext carries the query-side information a score is computed against.
type ScoreContext struct {
	// Query is the candidate search string the result came from.
	Query string
	// Year is the target release year; 0 means unknown.
	Year int
	Kind Kind
	// Native, Localized and List are the listing's raw titles.
	Native    string
	Localized string
	List      string
}

// primaryTitle returns the normalized primary title: native when present,
// then localized, then the list-display title.
func (sc ScoreContext) primaryTitle() string {
	for _, t := range []string{sc.Native, sc.Localized, sc.List} {
		if t != "" {
			return Normalize(t)
		}
	}
	return ""
}

// Score computes the additive confidence score for one candidate against the
// query context. Deterministic and side-effect free.
func Score(c Candidate, sc ScoreContext) float64 {
	query := Normalize(sc.Query)
	title := Normalize(c.Title)
	original := Normalize(c.OriginalTitle)
	primary := sc.primaryTitle()

	var score float64

	switch {
	case query != "" && (title == query || original == query):
		score += scoreExactTitle
		if primary != "" && (title == primary || original == primary) {
			score += scoreExactPrimary
		}
	case substringMatch(title, query) || substringMatch(original, query):
		score += scoreSubstringTitle
		if substringMatch(title, primary) || substringMatch(original, primary) {
			score += scoreSubstringPrimary
		}
	default:
		score += tokenOverlapScore(query, title, original)
	}

	score += yearScore(c, sc.Year)

	if c.OriginalLanguage == "ja" && (sc.Kind == KindTV || sc.Kind == KindMovie) {
		score += scoreJapaneseOrigin
	}

	score += math.Log10(c.Popularity+1)*popularityWeight +
		math.Log10(float64(c.VoteCount)+1)*voteCountWeight

	if c.Adult {
		score += scoreAdultPenalty
	}

	return score
}

// substringMatch reports whether either normalized string contains the other.
// Empty strings never match.
func substringMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// tokenOverlapScore scales scoreTokenOverlapMax by the fraction of the
// query's usable tokens found among the candidate's title tokens.
func tokenOverlapScore(query, title, original string) float64 {
	queryTokens := Tokens(query)
	if len(queryTokens) == 0 {
		return scoreNoUsableTokens
	}

	candidateTokens := make(map[string]bool)
	for _, t := range Tokens(title) {
		candidateTokens[t] = true
	}
	for _, t := range Tokens(original) {
		candidateTokens[t] = true
	}

	matched := 0
	for _, t := range queryTokens {
		if candidateTokens[t] {
			matched++
		}
	}

	return scoreTokenOverlapMax * float64(matched) / float64(len(queryTokens))
}

func yearScore(c Candidate, targetYear int) float64 {
	if targetYear <= 0 {
		return scoreNoTargetYear
	}

	candidateYear := c.Year()
	if candidateYear == 0 {
		return scoreYearUnknown
	}

	diff := candidateYear - targetYear
	if diff < 0 {
		diff = -diff
	}
	switch diff {
	case 0:
		return scoreYearExact
	case 1:
		return scoreYearOffOne
	case 2:
		return scoreYearOffTwo
	default:
		return scoreYearFarPerYear * float64(diff)
	}
}
