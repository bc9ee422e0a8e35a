package query

import (
	"sort"
	"strings"

	"github.com/matsen/paperfeed/internal/reference"
)

// NormalizeKeywords trims keywords and drops empty ones, keeping order.
func NormalizeKeywords(list []string) []string {
	out := make([]string, 0, len(list))
	for _, k := range list {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// matchText is the lower-cased text keywords are matched against.
func matchText(it reference.Item) string {
	return strings.ToLower(strings.Join([]string{
		it.Title,
		strings.Join(it.Authors, " "),
		it.Abstract,
		it.DOI,
	}, "\n"))
}

// Hits returns the keywords occurring in the item, in keyword order.
func Hits(it reference.Item, keywords []string) []string {
	text := matchText(it)
	var hits []string
	for _, kw := range NormalizeKeywords(keywords) {
		if strings.Contains(text, strings.ToLower(kw)) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// Count is a keyword (or keyword pair) and how many items it hit.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Stats summarizes keyword hits over a set of items.
type Stats struct {
	Keywords []Count `json:"keywords"`
	Pairs    []Count `json:"pairs"` // keys are "a ∩ b" with a < b
}

// PairSeparator joins the two keywords of a pair key.
const PairSeparator = " ∩ "

// KeywordStats counts keyword hits and pairwise co-occurrences, most
// frequent first (ties alphabetical), keeping at most topKeywords and
// topPairs entries. A limit <= 0 keeps everything.
func KeywordStats(items []reference.Item, keywords []string, topKeywords, topPairs int) Stats {
	kwCount := make(map[string]int)
	pairCount := make(map[string]int)
	for _, it := range items {
		hits := Hits(it, keywords)
		for _, h := range hits {
			kwCount[h]++
		}
		for i := 0; i < len(hits); i++ {
			for j := i + 1; j < len(hits); j++ {
				a, b := hits[i], hits[j]
				if b < a {
					a, b = b, a
				}
				pairCount[a+PairSeparator+b]++
			}
		}
	}
	return Stats{
		Keywords: topCounts(kwCount, topKeywords),
		Pairs:    topCounts(pairCount, topPairs),
	}
}

func topCounts(m map[string]int, limit int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
