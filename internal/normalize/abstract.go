package normalize

import (
	"html"
	"regexp"
	"strings"
)

var (
	arxivHeader   = regexp.MustCompile(`(?i)^\s*arXiv:\d{4}\.\d{4,5}(?:v\d+)?(?:\s+\[[^\]]+\])?(?:\s+Announce Type:\s*\w+)?(?:\s*New)?\s*(?:Abstract:)?\s*`)
	htmlTag       = regexp.MustCompile(`<[^>]+>`)
	latexFormat   = regexp.MustCompile(`\\(?:emph|textit|textbf|textrm|textsc|texttt|mathrm|mathbf|it|bf|em|rm)\b\s*`)
	apsStamp      = regexp.MustCompile(`(?i)\[([^\]]+)\]\s*(?:Published|Accepted|Updated)\b.*$`)
	authorsPrefix = regexp.MustCompile(`(?i)^(?:authors?|author\(s\))\s*:`)
	afterAuthors  = regexp.MustCompile(`(?i)^[\s,.;:–—-]*(?:and\s+)?`)
	sentenceBreak = regexp.MustCompile(`\.\s+| {2,}`)
	leadingDOI    = regexp.MustCompile(`(?i)^\s*DOI:\s*\S+\s*`)
	trailingCite  = regexp.MustCompile(`\s*\[[^\]]+\]\s*$`)
)

// CleanAbstract strips markup and provenance noise from an abstract:
// arXiv announcement headers, HTML tags and entities, simple LaTeX formatting,
// APS citation stamps, an "Author(s):" prefix, a leading DOI and a trailing
// bracketed citation. Whitespace is collapsed.
func CleanAbstract(text string, authors []string) string {
	s := arxivHeader.ReplaceAllString(text, "")
	s = htmlTag.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = latexFormat.ReplaceAllString(s, "")
	s = CollapseSpace(StripBraces(s))

	s = strings.TrimSpace(apsStamp.ReplaceAllString(s, ""))
	s = stripAuthorsPrefix(s, authors)
	s = leadingDOI.ReplaceAllString(s, "")
	s = trailingCite.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func stripAuthorsPrefix(s string, authors []string) string {
	s = strings.TrimLeft(s, " ")
	if !authorsPrefix.MatchString(s) {
		return s
	}

	lower := strings.ToLower(s)
	lastEnd := -1
	for _, name := range authors {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if pos := strings.Index(lower, name); pos >= 0 && pos < 300 {
			if end := pos + len(name); end > lastEnd {
				lastEnd = end
			}
		}
	}
	if lastEnd > 0 && lastEnd <= len(s) {
		return afterAuthors.ReplaceAllString(s[lastEnd:], "")
	}
	if loc := sentenceBreak.FindStringIndex(s); loc != nil {
		return s[loc[1]:]
	}
	return s
}
