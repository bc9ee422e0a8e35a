package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/matsen/paperfeed/internal/query"
	"github.com/matsen/paperfeed/internal/reference"
)

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// ParseTheme validates a theme name; "" means auto.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ThemeAuto, nil
	case ThemeLight, ThemeDark, ThemeAuto:
		return t, nil
	}
	return "", fmt.Errorf("invalid theme %q: want light, dark or auto", s)
}

// Prefs returns the keyword-highlighting preferences.
func (s *Store) Prefs() reference.Prefs {
	p := s.prefs
	p.Keywords = append([]string{}, s.prefs.Keywords...)
	return p
}

// SetPrefs replaces the preferences. Keywords are trimmed and blank ones
// dropped.
func (s *Store) SetPrefs(p reference.Prefs) error {
	p.Keywords = query.NormalizeKeywords(p.Keywords)
	s.prefs = p
	return s.saveAll(KeyPrefs)
}

// LastVisit returns the previous visit time, zero if never recorded.
func (s *Store) LastVisit() time.Time {
	if s.lastVisit == 0 {
		return time.Time{}
	}
	return time.UnixMilli(s.lastVisit).UTC()
}

// SetLastVisit records a visit; the zero time means now.
func (s *Store) SetLastVisit(t time.Time) error {
	if t.IsZero() {
		t = s.now()
	}
	s.lastVisit = t.UnixMilli()
	return s.saveAll(KeyLastVisit)
}

// Theme returns the display theme.
func (s *Store) Theme() Theme {
	return s.theme
}

// SetTheme stores the display theme.
func (s *Store) SetTheme(t Theme) error {
	t, err := ParseTheme(string(t))
	if err != nil {
		return err
	}
	s.theme = t
	return s.saveAll(KeyTheme)
}
