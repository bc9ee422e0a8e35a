// Package normalize canonicalizes the heterogeneous author, venue, date and
// abstract representations found in feeds and BibTeX files.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var braceStripper = strings.NewReplacer("{", "", "}", "")

// StripBraces removes every curly brace from s.
func StripBraces(s string) string {
	return braceStripper.Replace(s)
}

// CollapseSpace replaces runs of whitespace with a single space and trims.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Sanitize makes s safe to embed in a braced BibTeX value.
func Sanitize(s string) string {
	return CollapseSpace(StripBraces(s))
}

// stripMarks returns a fresh chain per call; a transform.Chain keeps state
// and must not be shared between goroutines.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Fold strips combining accents ("Müller" -> "Muller"), leaving other
// scripts untouched. Safe for concurrent use.
func Fold(s string) string {
	out, _, err := transform.String(stripMarks(), s)
	if err != nil {
		return s
	}
	return out
}

// Key lower-cases and whitespace-collapses s for case-insensitive comparison.
func Key(s string) string {
	return strings.ToLower(CollapseSpace(s))
}
