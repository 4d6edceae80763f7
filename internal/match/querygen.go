package match

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

// DefaultMaxQueries bounds the generated query set when no limit is given.
const DefaultMaxQueries = 4

var (
	// Trailing season or year annotation in parenthesized, bracketed or
	// full-width-bracketed form: "(2024)", "(S2)", "(Season 2)", "【第二季】".
	annotationRe = regexp.MustCompile(`(?i)\s*[（(\[【]\s*(?:\d{4}|s\d{1,2}|season\s*\d{1,2}|第\s*[0-9一二三四五六七八九十]{1,3}\s*[季期部])\s*[）)\]】]\s*$`)

	// Trailing bare season suffix: "第二季", "第3期", "第一部".
	seasonSuffixRe = regexp.MustCompile(`第\s*[0-9一二三四五六七八九十]{1,3}\s*[季期部篇章]\s*$`)
)

// GenerateQueries produces an ordered, de-duplicated set of candidate search
// strings from up to three raw title variants, truncated to max entries
// (stable order = order of first insertion). Titles that are empty after
// normalization contribute nothing; if every input is empty the result is
// empty and the caller must not search at all.
func GenerateQueries(native, localized, list string, max int) []string {
	if max <= 0 {
		max = DefaultMaxQueries
	}

	seen := make(map[string]bool)
	var queries []string
	add := func(q string) {
		if q == "" || seen[q] {
			return
		}
		seen[q] = true
		queries = append(queries, q)
	}

	for _, title := range []string{native, localized, list} {
		trimmed := strings.TrimSpace(title)
		if trimmed == "" {
			continue
		}

		// Width folding turns full-width digits and Latin into their
		// half-width forms so the annotation patterns match both.
		folded := width.Fold.String(trimmed)

		add(Normalize(annotationRe.ReplaceAllString(folded, "")))
		add(Normalize(trimmed))
		add(Normalize(firstSegment(trimmed)))
		add(Normalize(seasonSuffixRe.ReplaceAllString(folded, "")))
	}

	if len(queries) > max {
		queries = queries[:max]
	}
	return queries
}

// firstSegment returns the leading segment of a title, cut at the first
// colon, dash, space or opening bracket.
func firstSegment(s string) string {
	idx := strings.IndexFunc(s, func(r rune) bool {
		switch r {
		case ':', '：', '-', '－', '―', '—', ' ', '　', '(', '（', '[', '【', '「', '『':
			return true
		}
		return false
	})
	if idx < 0 {
		return s
	}
	return s[:idx]
}
