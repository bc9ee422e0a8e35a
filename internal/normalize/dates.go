package normalize

import (
	"strconv"
	"strings"
	"time"
)

var monthAbbr = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// parseMonth accepts 1-12 or an English month name/abbreviation.
func parseMonth(s string) (time.Month, bool) {
	s = strings.ToLower(strings.Trim(strings.TrimSpace(s), "{}."))
	if s == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return time.Month(n), true
		}
		return 0, false
	}
	if len(s) >= 3 {
		for i, m := range monthAbbr {
			if s[:3] == m {
				return time.Month(i + 1), true
			}
		}
	}
	return 0, false
}

// ToDateISO builds a UTC instant from BibTeX-style year/month/day parts.
// A missing or invalid month or day falls back to 1; a missing year means
// there is no date and the result is empty.
func ToDateISO(year, month, day string) string {
	y, err := strconv.Atoi(strings.Trim(strings.TrimSpace(year), "{}"))
	if err != nil || y <= 0 {
		return ""
	}

	m, ok := parseMonth(month)
	if !ok {
		m = time.January
	}

	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil || d < 1 || d > daysIn(y, m) {
		d = 1
	}

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01",
}

// ParseDate parses the date formats seen in feeds and returns the instant.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Date re-formats any accepted date string as RFC 3339 UTC, or "" when the
// input does not parse.
func Date(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}

// YearOf returns the four-digit year of a date string, or "".
func YearOf(date string) string {
	t, ok := ParseDate(date)
	if !ok {
		return ""
	}
	return strconv.Itoa(t.Year())
}

// MonthAbbrOf returns the capitalized English month abbreviation of a date.
func MonthAbbrOf(date string) string {
	t, ok := ParseDate(date)
	if !ok {
		return ""
	}
	m := monthAbbr[t.Month()-1]
	return strings.ToUpper(m[:1]) + m[1:]
}
