package export

import (
	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
)

// KeyGenerator hands out citation keys that are unique within one export
// batch. Use a fresh generator per batch so the same item always gets the
// same base key across exports.
type KeyGenerator struct {
	seen map[string]bool
}

// NewKeyGenerator creates a generator with no keys registered.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{seen: make(map[string]bool)}
}

// Reserve marks keys as taken, e.g. keys already present in a target .bib.
func (g *KeyGenerator) Reserve(keys ...string) {
	for _, k := range keys {
		g.seen[k] = true
	}
}

// BaseKey returns surname+year+venue for an item, folded to ASCII where
// possible and stripped of non-alphanumerics. E.g. "Doe2024PRL".
func BaseKey(it reference.Item) string {
	year := it.Year
	if year == "" {
		year = normalize.YearOf(it.Date)
	}
	venue := normalize.JournalAbbrev(it.Journal, it.JournalKey, it.ArXiv)
	return normalize.Alnum(normalize.Fold(normalize.Surname(it.FirstAuthor()) + year + venue))
}

// Key returns the base key of it, suffixed with a, b, ... z, aa, ab, ...
// until unused, and registers the result.
func (g *KeyGenerator) Key(it reference.Item) string {
	base := BaseKey(it)
	key := base
	for n := 1; g.seen[key]; n++ {
		key = base + letterSuffix(n)
	}
	g.seen[key] = true
	return key
}

// letterSuffix is the bijective base-26 spelling of n >= 1:
// 1 -> "a", 26 -> "z", 27 -> "aa".
func letterSuffix(n int) string {
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}
