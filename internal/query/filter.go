// Package query provides pure filtering, sorting and keyword functions over
// item collections.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
)

// WindowAll disables date-window filtering.
const WindowAll = "all"

// windowEpsilon absorbs fractional-day rounding at the window boundary.
const windowEpsilon = 0.01

// MatchQuery reports whether q occurs, case-insensitively, in the title,
// journal, DOI, abstract or joined authors of it. An empty query matches.
func MatchQuery(it reference.Item, q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, field := range []string{it.Title, it.Journal, it.DOI, it.Abstract, strings.Join(it.Authors, " ")} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FilterQuery keeps the items matching q.
func FilterQuery(items []reference.Item, q string) []reference.Item {
	if strings.TrimSpace(q) == "" {
		return items
	}
	var out []reference.Item
	for _, it := range items {
		if MatchQuery(it, q) {
			out = append(out, it)
		}
	}
	return out
}

// Window is a parsed date window. The zero Window admits every date.
type Window struct {
	Bounded bool
	Days    float64
}

// ParseWindow accepts "all" (or "") and non-negative day counts.
func ParseWindow(s string) (Window, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == WindowAll {
		return Window{}, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 {
		return Window{}, fmt.Errorf("invalid window %q: want a day count or %q", s, WindowAll)
	}
	return Window{Bounded: true, Days: n}, nil
}

// String renders the window the way ParseWindow reads it.
func (w Window) String() string {
	if !w.Bounded {
		return WindowAll
	}
	return strconv.FormatFloat(w.Days, 'f', -1, 64)
}

// Contains reports whether date falls within the window ending at now.
// Undated items only pass the "all" window.
func (w Window) Contains(date string, now time.Time) bool {
	if !w.Bounded {
		return true
	}
	t, ok := normalize.ParseDate(date)
	if !ok {
		return false
	}
	return now.Sub(t).Hours()/24 <= w.Days+windowEpsilon
}

// WithinDays reports whether date is within window days of now. An
// unparseable window does not filter.
func WithinDays(date, window string, now time.Time) bool {
	w, err := ParseWindow(window)
	if err != nil {
		return true
	}
	return w.Contains(date, now)
}

// View selects a subset of the collection.
type View string

const (
	ViewAll      View = "all"
	ViewNew      View = "new" // dated after the last visit
	ViewKeywords View = "kw"  // at least one keyword hit
	ViewFavorite View = "fav"
)

// ParseView validates a view name; "" means ViewAll.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewAll, nil
	case ViewAll, ViewNew, ViewKeywords, ViewFavorite:
		return v, nil
	}
	return "", fmt.Errorf("invalid view %q: want all, new, kw or fav", s)
}

// Filter combines every predicate the list views support. Zero fields do
// not filter.
type Filter struct {
	Query      string
	Window     Window
	Category   string // category id
	Type       reference.Type
	JournalKey reference.JournalKey
	View       View

	Now        time.Time
	LastVisit  time.Time
	Keywords   []string
	CategoryOf func(uid string) string
	IsFavorite func(uid string) bool
}

// Apply returns the items passing every predicate of f, in input order.
func Apply(items []reference.Item, f Filter) []reference.Item {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	keywords := NormalizeKeywords(f.Keywords)

	out := make([]reference.Item, 0, len(items))
	for _, it := range items {
		if !MatchQuery(it, f.Query) {
			continue
		}
		if !f.Window.Contains(it.Date, now) {
			continue
		}
		if f.Category != "" && categoryOf(f, it.UID) != f.Category {
			continue
		}
		if f.Type != "" && it.Type != f.Type {
			continue
		}
		if f.JournalKey != "" && it.JournalKey != f.JournalKey {
			continue
		}
		if !inView(it, f, keywords) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func categoryOf(f Filter, uid string) string {
	if f.CategoryOf == nil {
		return reference.UnsortedID
	}
	return f.CategoryOf(uid)
}

func inView(it reference.Item, f Filter, keywords []string) bool {
	switch f.View {
	case ViewNew:
		if f.LastVisit.IsZero() {
			return false
		}
		t, ok := normalize.ParseDate(it.Date)
		return ok && t.After(f.LastVisit)
	case ViewKeywords:
		return len(Hits(it, keywords)) > 0
	case ViewFavorite:
		return f.IsFavorite != nil && f.IsFavorite(it.UID)
	}
	return true
}
