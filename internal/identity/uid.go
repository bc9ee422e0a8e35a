// Package identity derives the stable UID used to deduplicate items across
// re-imports and to key per-item user state.
package identity

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
)

// Prefixes of the three UID forms.
const (
	DOIPrefix   = "doi:"
	ArXivPrefix = "arxiv:"
	HashPrefix  = "u"
)

// MakeUID computes the identity of an item: its DOI, else its arXiv id,
// else a content hash of title, authors, journal and year (or date).
// The hash is for deduplication only, not a security boundary.
func MakeUID(it reference.Item) string {
	if doi := strings.TrimSpace(it.DOI); doi != "" {
		return DOIPrefix + strings.ToLower(doi)
	}
	if arxiv := strings.TrimSpace(it.ArXiv); arxiv != "" {
		return ArXivPrefix + strings.ToLower(arxiv)
	}
	return HashPrefix + strconv.FormatUint(xxhash.Sum64String(contentKey(it)), 36)
}

// contentKey is the case-insensitive, whitespace-collapsed tuple hashed
// when no external identifier exists.
func contentKey(it reference.Item) string {
	when := it.Year
	if strings.TrimSpace(when) == "" {
		when = it.Date
	}
	parts := []string{
		it.Title,
		strings.Join(it.Authors, ", "),
		it.Journal,
		when,
	}
	for i, p := range parts {
		parts[i] = normalize.Key(p)
	}
	return strings.Join(parts, "|")
}

// Kind reports which rule produced a UID: "doi", "arxiv" or "hash".
func Kind(uid string) string {
	switch {
	case strings.HasPrefix(uid, DOIPrefix):
		return "doi"
	case strings.HasPrefix(uid, ArXivPrefix):
		return "arxiv"
	default:
		return "hash"
	}
}
