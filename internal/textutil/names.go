package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// displayOverrides maps lowercase words to their conventional casing where
// plain title casing gets it wrong.
var displayOverrides = map[string]string{
	"sql":        "SQL",
	"javascript": "JavaScript",
}

// DisplayName converts a subject slug like "system_design" into a
// human-readable name like "System Design". Separators become spaces,
// words are title-cased, and known initialisms keep their conventional
// casing.
func DisplayName(slug string) string {
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return "Unknown"
	}
	titler := cases.Title(language.Und)
	for i, word := range words {
		if fixed, ok := displayOverrides[strings.ToLower(word)]; ok {
			words[i] = fixed
			continue
		}
		words[i] = titler.String(word)
	}
	return strings.Join(words, " ")
}
