package query

import (
	"sort"
	"strings"
	"unicode"
)

// Span is a half-open range of rune offsets into a text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Spans finds every case-insensitive occurrence of the keywords in text and
// merges overlapping or touching ranges. Offsets count runes, not bytes.
func Spans(text string, keywords []string) []Span {
	runes := []rune(text)
	lower := lowerRunes(runes)

	var spans []Span
	for _, kw := range NormalizeKeywords(keywords) {
		k := lowerRunes([]rune(kw))
		for i := 0; i+len(k) <= len(lower); {
			if runesEqual(lower[i:i+len(k)], k) {
				spans = append(spans, Span{Start: i, End: i + len(k)})
				i += len(k)
				continue
			}
			i++
		}
	}
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(a, b int) bool {
		if spans[a].Start != spans[b].Start {
			return spans[a].Start < spans[b].Start
		}
		return spans[a].End < spans[b].End
	})
	merged := []Span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.Start <= last.End {
			if sp.End > last.End {
				last.End = sp.End
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// Highlight wraps every keyword span of text in open/close markers.
// The text is returned unchanged when nothing matches.
func Highlight(text string, keywords []string, open, close string) string {
	spans := Spans(text, keywords)
	if len(spans) == 0 {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	cur := 0
	for _, sp := range spans {
		b.WriteString(string(runes[cur:sp.Start]))
		b.WriteString(open)
		b.WriteString(string(runes[sp.Start:sp.End]))
		b.WriteString(close)
		cur = sp.End
	}
	b.WriteString(string(runes[cur:]))
	return b.String()
}

// lowerRunes lower-cases rune by rune so offsets stay aligned with the input.
func lowerRunes(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
