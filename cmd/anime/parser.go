package anime

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rauko/anibridge/internal/match"
)

var yearRe = regexp.MustCompile(`(\d{4})\s*年`)

// movieMarkers are info-cell phrases indicating a theatrical release rather
// than a TV series.
var movieMarkers = []string{"剧场版", "劇場版", "剧场", "映画", "电影", "電影"}

// ParseInfo extracts the premiere year and media kind from a listing's raw
// info text, e.g. "2023年10月 / TV" or "2024年 剧场版". The year is 0 when
// the text carries none; the kind defaults to TV.
func ParseInfo(raw string) (int, match.Kind) {
	year := 0
	if m := yearRe.FindStringSubmatch(raw); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			year = y
		}
	}

	kind := match.KindTV
	for _, marker := range movieMarkers {
		if strings.Contains(raw, marker) {
			kind = match.KindMovie
			break
		}
	}

	return year, kind
}
