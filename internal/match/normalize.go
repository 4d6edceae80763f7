package match

import "strings"

// strippable is the fixed set of bracket and punctuation runes removed during
// normalization, covering both half-width and full-width forms.
var strippable = map[rune]bool{
	'(': true, ')': true, '（': true, '）': true,
	'[': true, ']': true, '【': true, '】': true,
	'「': true, '」': true, '『': true, '』': true,
	'〈': true, '〉': true, '《': true, '》': true,
	':': true, '：': true,
	'-': true, '－': true, '―': true, '—': true, '～': true, '~': true,
	'_': true, '＿': true,
	',': true, '，': true,
	'.': true, '。': true,
	'・': true, '·': true,
	'!': true, '！': true, '?': true, '？': true,
}

// Normalize canonicalizes a raw title into a comparable token form:
// lower-cased, bracket/punctuation-stripped, internal whitespace collapsed to
// single spaces. Empty input yields the empty string. Idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if strippable[r] {
			return ' '
		}
		if r == '　' { // full-width space
			return ' '
		}
		return r
	}, lowered)

	return strings.Join(strings.Fields(cleaned), " ")
}

// Tokens splits a normalized string into its usable comparison tokens:
// whitespace-delimited segments longer than one rune.
func Tokens(normalized string) []string {
	var tokens []string
	for _, t := range strings.Fields(normalized) {
		if len([]rune(t)) > 1 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
