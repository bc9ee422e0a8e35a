// Package author parses author search strings and matches them against the
// display names stored on items.
package author

import (
	"strings"

	"github.com/matsen/paperfeed/internal/normalize"
)

// Name is a display name split into given and family parts.
type Name struct {
	First string
	Last  string
}

// Query represents a parsed author search query.
type Query struct {
	First string // may be empty for last-name-only queries
	Last  string
}

// split reads "Last, First" or "First ... Last".
func split(s string) (first, last string) {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, ","); idx > 0 {
		return strings.TrimSpace(s[idx+1:]), strings.TrimSpace(s[:idx])
	}
	parts := strings.Fields(s)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return "", parts[0]
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// SplitName splits a stored display name. Names are never rewritten on
// storage, so both "Doe, Jane" and "Jane Doe" occur.
func SplitName(display string) Name {
	first, last := split(display)
	return Name{First: first, Last: last}
}

// ParseQuery parses an author search string into a structured Query.
//
// Supported formats:
//   - "Yu"           → last="Yu"
//   - "Timothy Yu"   → first="Timothy", last="Yu"
//   - "Yu, Timothy"  → first="Timothy", last="Yu"
func ParseQuery(input string) Query {
	first, last := split(input)
	return Query{First: first, Last: last}
}

// IsZero reports whether the query is empty.
func (q Query) IsZero() bool {
	return q.Last == ""
}

// fold compares names case- and accent-insensitively.
func fold(s string) string {
	return strings.ToLower(normalize.Fold(s))
}

// Matches checks if the query matches a display name.
//
// Matching rules:
//   - Last name: exact match ignoring case and accents (required)
//   - First name: prefix match ignoring case and accents (if present)
//
// "Tim Yu" matches "Timothy C Yu" while "Yu" does not match "Yujia Chen".
func (q Query) Matches(display string) bool {
	if q.IsZero() {
		return false
	}
	n := SplitName(display)
	if fold(q.Last) != fold(n.Last) {
		return false
	}
	if q.First == "" {
		return true
	}
	return strings.HasPrefix(fold(n.First), fold(q.First))
}

// MatchesAny checks if the query matches any author in the list.
func (q Query) MatchesAny(authors []string) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch checks if all queries match at least one author each.
func AllMatch(queries []Query, authors []string) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}
