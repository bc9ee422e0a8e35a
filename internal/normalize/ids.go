package normalize

import (
	"regexp"
	"strings"
)

var (
	doiPattern     = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:a-z0-9]+`)
	arxivNewStyle  = regexp.MustCompile(`(\d{4}\.\d{4,5})(?:v\d+)?`)
	arxivOldStyle  = regexp.MustCompile(`(?i)([a-z][a-z\-]+(?:\.[a-z]{2})?/\d{7})(?:v\d+)?`)
	arxivAbsPrefix = regexp.MustCompile(`(?i)arxiv\.org/(?:abs|pdf)/`)
)

var doiPrefixes = []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi.org/", "doi:"}

// DOI normalizes the value of an explicit DOI field: resolver URLs and
// "doi:" prefixes are dropped. Values not starting with "10." are searched
// for an embedded DOI instead.
func DOI(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range doiPrefixes {
		if len(s) >= len(p) && strings.EqualFold(s[:len(p)], p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}
	if strings.HasPrefix(s, "10.") && strings.Contains(s, "/") && !strings.ContainsAny(s, " \t\n") {
		return strings.TrimRight(s, ".,;")
	}
	return FindDOI(s)
}

// FindDOI extracts the first registrant-style DOI from free text.
// Returns "" when no DOI is present.
func FindDOI(s string) string {
	m := doiPattern.FindString(s)
	return strings.TrimRight(m, ".,;")
}

// ArxivID extracts a bare arXiv identifier (version suffix dropped) from an
// abs/pdf URL, an "arXiv:" reference or a bare id.
func ArxivID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if m := arxivNewStyle.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := arxivOldStyle.FindStringSubmatch(s); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// ArxivFromURL extracts an arXiv id only from arxiv.org abs/pdf links.
func ArxivFromURL(u string) string {
	loc := arxivAbsPrefix.FindStringIndex(u)
	if loc == nil {
		return ""
	}
	return ArxivID(u[loc[1]:])
}

// EnsureHTTPS upgrades protocol-relative and plain http links.
func EnsureHTTPS(u string) string {
	u = strings.TrimSpace(u)
	switch {
	case strings.HasPrefix(u, "//"):
		return "https:" + u
	case strings.HasPrefix(u, "http://"):
		return "https://" + u[len("http://"):]
	}
	return u
}
