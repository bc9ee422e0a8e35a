package normalize

import (
	"regexp"
	"strings"
)

var andSeparator = regexp.MustCompile(`(?i)\s+and\s+`)

// nameParticles may precede a family name in "Family, Given" form.
var nameParticles = map[string]bool{
	"van": true, "von": true, "der": true, "den": true, "de": true,
	"del": true, "della": true, "di": true, "da": true, "du": true,
	"le": true, "la": true, "dos": true, "das": true, "ter": true, "ten": true,
}

// Authors splits a raw author string into display names.
// BibTeX-style " and " separators win; otherwise commas are treated as name
// boundaries unless the string reads as a single "Family, Given" name.
// Empty input yields an empty, non-nil slice.
func Authors(raw string) []string {
	raw = Sanitize(raw)
	out := []string{}
	if raw == "" {
		return out
	}

	pieces := []string{raw}
	if andSeparator.MatchString(raw) {
		pieces = andSeparator.Split(raw, -1)
	}

	for _, p := range pieces {
		for _, name := range splitCommaList(p) {
			if name = cleanName(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

// AuthorList accepts the shapes feeds use for authors: a single string, a
// list of strings, or a list of {name} / {given, family} objects.
func AuthorList(v any) []string {
	out := []string{}
	switch val := v.(type) {
	case nil:
		return out
	case string:
		return Authors(val)
	case []string:
		for _, s := range val {
			if s = cleanName(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, a := range val {
			var name string
			switch av := a.(type) {
			case string:
				name = av
			case map[string]any:
				name = nameFromObject(av)
			}
			if name = cleanName(name); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

func nameFromObject(m map[string]any) string {
	str := func(k string) string {
		s, _ := m[k].(string)
		return strings.TrimSpace(s)
	}
	if name := str("name"); name != "" {
		return name
	}
	given := str("given")
	if given == "" {
		given = str("first")
	}
	family := str("family")
	if family == "" {
		family = str("last")
	}
	return strings.TrimSpace(given + " " + family)
}

func splitCommaList(p string) []string {
	p = strings.Trim(strings.TrimSpace(p), ",;")
	if !strings.Contains(p, ",") {
		return []string{p}
	}

	var parts []string
	for _, s := range strings.Split(p, ",") {
		s = strings.TrimSpace(s)
		s = strings.TrimSpace(strings.TrimPrefix(s, "and "))
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 2 && looksLikeFamily(parts[0]) {
		return []string{parts[0] + ", " + parts[1]}
	}
	return parts
}

// looksLikeFamily reports whether s is a bare family name, optionally with
// lowercase particles ("van der Berg").
func looksLikeFamily(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens[:len(tokens)-1] {
		if !nameParticles[t] {
			return false
		}
	}
	last := tokens[len(tokens)-1]
	return !strings.HasSuffix(last, ".")
}

func cleanName(s string) string {
	return strings.Trim(Sanitize(s), " ,;")
}
