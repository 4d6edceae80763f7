package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"simple lowercase", "Frieren", "frieren"},
		{"trims and collapses whitespace", "  A   B  ", "a b"},
		{"half-width brackets", "Mobile Suit Gundam (Origin)", "mobile suit gundam origin"},
		{"full-width brackets", "【推しの子】", "推しの子"},
		{"colon and dash", "Re:Zero - Starting Life", "re zero starting life"},
		{"full-width punctuation", "ソードアート・オンライン：プログレッシブ", "ソードアート オンライン プログレッシブ"},
		{"underscores and commas", "a_b,c", "a b c"},
		{"periods", "D.Gray-man", "d gray man"},
		{"corner brackets", "「進撃の巨人」", "進撃の巨人"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  A   B  ",
		"Re:Zero - Starting Life in Another World (2016)",
		"【葬送のフリーレン】",
		"Steins;Gate: Load Region of Déjà Vu",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", input)
	}
}

func TestNormalizeCommutesWithWhitespaceCollapsing(t *testing.T) {
	assert.Equal(t, Normalize("A B"), Normalize("  A   B  "))
	assert.Equal(t, Normalize("a　b"), Normalize("a b"))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"mobile", "suit", "gundam"}, Tokens("mobile suit gundam"))
	// single-rune tokens are not usable
	assert.Equal(t, []string{"gray", "man"}, Tokens("d gray man"))
	assert.Nil(t, Tokens(""))
	assert.Nil(t, Tokens("a b c"))
}
