package tags

import "sort"

// genreNames maps the external catalog's English genre names to the localized
// display names used in genre: tags. Covers both the movie and TV genre sets.
var genreNames = map[string]string{
	"Action":             "动作",
	"Adventure":          "冒险",
	"Animation":          "动画",
	"Comedy":             "喜剧",
	"Crime":              "犯罪",
	"Documentary":        "纪录",
	"Drama":              "剧情",
	"Family":             "家庭",
	"Fantasy":            "奇幻",
	"History":            "历史",
	"Horror":             "恐怖",
	"Music":              "音乐",
	"Mystery":            "悬疑",
	"Romance":            "爱情",
	"Science Fiction":    "科幻",
	"TV Movie":           "电视电影",
	"Thriller":           "惊悚",
	"War":                "战争",
	"Western":            "西部",
	"Action & Adventure": "动作冒险",
	"Kids":               "儿童",
	"News":               "新闻",
	"Reality":            "真人秀",
	"Sci-Fi & Fantasy":   "科幻奇幻",
	"Soap":               "肥皂剧",
	"Talk":               "脱口秀",
	"War & Politics":     "战争政治",
}

// animationGenre is the genre whose presence yields the type:animation tag.
const animationGenre = "Animation"

// Region reference sets: union of country codes and language codes. A record
// belongs to a region when any of its countries or languages intersects the
// set. Codes are lowercase.
var regionSets = map[string]map[string]bool{
	"us-eu": setOf(
		"us", "gb", "fr", "de", "it", "es", "pt", "nl", "be", "at", "ch",
		"ie", "se", "no", "dk", "fi", "pl", "cz", "ca", "au", "nz",
		"en", "sv", "da",
	),
	"east-asia": setOf("jp", "kr", "ja", "ko"),
	"chinese":   setOf("cn", "tw", "hk", "mo", "sg", "zh"),
}

// regionOrder fixes emission order so output is deterministic for tests even
// though the tag set itself is order-insignificant.
var regionOrder = []string{"us-eu", "east-asia", "chinese"}

// keywordThemes maps keyword substrings (lowercase) to theme:/award: tags.
// Matching is case-insensitive substring, not exact, so "giant robot" and
// "mecha pilot" both land on theme:mecha.
var keywordThemes = map[string]string{
	"mecha":                   "theme:mecha",
	"giant robot":             "theme:mecha",
	"space opera":             "theme:space",
	"space":                   "theme:space",
	"time travel":             "theme:time-travel",
	"time loop":               "theme:time-loop",
	"cyberpunk":               "theme:cyberpunk",
	"steampunk":               "theme:steampunk",
	"post-apocalyptic":        "theme:post-apocalypse",
	"dystopia":                "theme:dystopia",
	"zombie":                  "theme:zombie",
	"vampire":                 "theme:vampire",
	"werewolf":                "theme:werewolf",
	"ghost":                   "theme:supernatural",
	"supernatural":            "theme:supernatural",
	"demon":                   "theme:demon",
	"superhero":               "theme:superhero",
	"martial arts":            "theme:martial-arts",
	"kung fu":                 "theme:martial-arts",
	"samurai":                 "theme:samurai",
	"ninja":                   "theme:ninja",
	"high school":             "theme:school",
	"school":                  "theme:school",
	"isekai":                  "theme:isekai",
	"parallel world":          "theme:isekai",
	"magic":                   "theme:magic",
	"wizard":                  "theme:magic",
	"dragon":                  "theme:dragon",
	"based on manga":          "theme:manga-adaptation",
	"based on anime":          "theme:anime-adaptation",
	"based on novel":          "theme:novel-adaptation",
	"based on light novel":    "theme:novel-adaptation",
	"based on video game":     "theme:game-adaptation",
	"based on comic":          "theme:comic-adaptation",
	"sports":                  "theme:sports",
	"baseball":                "theme:sports",
	"basketball":              "theme:sports",
	"idol":                    "theme:idol",
	"band":                    "theme:music",
	"detective":               "theme:detective",
	"serial killer":           "theme:crime",
	"murder":                  "theme:crime",
	"heist":                   "theme:heist",
	"yakuza":                  "theme:crime",
	"world war":               "theme:war",
	"war":                     "theme:war",
	"alien":                   "theme:alien",
	"monster":                 "theme:monster",
	"kaiju":                   "theme:kaiju",
	"coming of age":           "theme:coming-of-age",
	"slice of life":           "theme:slice-of-life",
	"love triangle":           "theme:romance",
	"romance":                 "theme:romance",
	"friendship":              "theme:friendship",
	"revenge":                 "theme:revenge",
	"survival":                "theme:survival",
	"death game":              "theme:death-game",
	"virtual reality":         "theme:virtual-reality",
	"artificial intelligence": "theme:ai",
	"android":                 "theme:ai",
	"spy":                     "theme:espionage",
	"espionage":               "theme:espionage",
	"pirate":                  "theme:pirate",
	"noir":                    "theme:noir",
	"psychological":           "theme:psychological",
	"parody":                  "theme:parody",
	"oscar":                   "award:oscar",
	"academy award":           "award:oscar",
	"palme d'or":              "award:palme-dor",
	"golden globe":            "award:golden-globe",
	"emmy":                    "award:emmy",
	"best picture":            "award:oscar",
}

// keywordOrder is the sorted list of keyword substrings, fixing match order
// so tag derivation is deterministic.
var keywordOrder = sortedKeys(keywordThemes)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func setOf(codes ...string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}
