package normalize

import (
	"strings"
	"unicode"
)

// Surname extracts the family name used in citation keys.
// "Doe, Jane" and "Jane Doe" both yield "Doe". Only Latin or CJK letters and
// digits survive; an empty result falls back to "Anon".
func Surname(name string) string {
	name = strings.TrimSpace(name)
	var s string
	if i := strings.Index(name, ","); i >= 0 {
		s = name[:i]
	} else if fields := strings.Fields(name); len(fields) > 0 {
		s = fields[len(fields)-1]
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || isKeyLetter(r) {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "Anon"
	}
	return s
}

func isKeyLetter(r rune) bool {
	return unicode.In(r, unicode.Latin, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul)
}

// Alnum drops every rune that is not a letter or digit.
func Alnum(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
