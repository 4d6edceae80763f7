package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateQueriesStripsYearAnnotation(t *testing.T) {
	queries := GenerateQueries("", "", "Frieren (2023)", 4)

	assert.NotEmpty(t, queries)
	assert.Equal(t, "frieren", queries[0], "refined variant comes first")
	assert.Contains(t, queries, "frieren 2023")
}

func TestGenerateQueriesStripsSeasonAnnotations(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"latin season marker", "Overlord (S2)", "overlord"},
		{"spelled out season", "Overlord (Season 2)", "overlord"},
		{"full-width cjk season", "无职转生（第二季）", "无职转生"},
		{"bare season suffix", "魔法科高校の劣等生第2期", "魔法科高校の劣等生"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queries := GenerateQueries(tt.title, "", "", 4)
			assert.Contains(t, queries, tt.want)
		})
	}
}

func TestGenerateQueriesFirstSegment(t *testing.T) {
	queries := GenerateQueries("Re:ゼロから始める異世界生活", "", "", 4)
	assert.Contains(t, queries, "re", "leading segment before the colon")
}

func TestGenerateQueriesBoundAndDedupe(t *testing.T) {
	// Three titles producing many overlapping variants.
	queries := GenerateQueries(
		"ソードアート・オンライン (2012)",
		"Sword Art Online (2012)",
		"Sword Art Online",
		4,
	)

	assert.LessOrEqual(t, len(queries), 4)
	seen := make(map[string]bool)
	for _, q := range queries {
		assert.False(t, seen[q], "duplicate query %q", q)
		assert.Equal(t, Normalize(q), q, "query %q must already be normalized", q)
		seen[q] = true
	}
}

func TestGenerateQueriesCustomBound(t *testing.T) {
	queries := GenerateQueries("A Title: Subtitle (2020)", "Another Name", "Third One Here", 2)
	assert.Len(t, queries, 2)
}

func TestGenerateQueriesAllEmpty(t *testing.T) {
	assert.Empty(t, GenerateQueries("", "", "", 4))
	assert.Empty(t, GenerateQueries("   ", "", "", 4))
}

func TestGenerateQueriesStableOrder(t *testing.T) {
	a := GenerateQueries("Frieren (2023)", "葬送のフリーレン", "", 4)
	b := GenerateQueries("Frieren (2023)", "葬送のフリーレン", "", 4)
	assert.Equal(t, a, b)
}

func TestGenerateQueriesFullWidthDigits(t *testing.T) {
	// Full-width year digits are folded before annotation matching.
	queries := GenerateQueries("かぐや様は告らせたい（２０１９）", "", "", 4)
	assert.Contains(t, queries, "かぐや様は告らせたい")
}
