package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
)

// DigestWindow is how far back the weekly digest looks.
const DigestWindow = 7 * 24 * time.Hour

const digestNoteLimit = 280

// DigestEntry is an item the user touched, with its reading state and note.
type DigestEntry struct {
	Item  reference.Item
	State reference.UserState
	Note  string
}

type digestSection struct {
	title  string
	status reference.Status
}

var digestSections = []digestSection{
	{"Done", reference.StatusDone},
	{"Reading", reference.StatusReading},
	{"To read", reference.StatusTodo},
	{"Other", reference.StatusNone},
}

// Digest renders the weekly markdown digest of entries, grouped by reading
// status, with keyword hit counts and intersections.
func Digest(entries []DigestEntry, keywords []string, now time.Time) string {
	keywords = NormalizeKeywords(keywords)
	now = now.UTC()

	groups := make(map[reference.Status][]DigestEntry)
	items := make([]reference.Item, 0, len(entries))
	for _, e := range entries {
		st := e.State.Status
		if _, ok := reference.ParseStatus(string(st)); !ok {
			st = reference.StatusNone
		}
		groups[st] = append(groups[st], e)
		items = append(items, e.Item)
	}
	for _, g := range groups {
		sort.SliceStable(g, func(i, j int) bool { return g[i].State.UpdatedAt > g[j].State.UpdatedAt })
	}

	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("# Weekly Digest (%s)", now.Format("2006-01-02"))
	add("Generated: %s", now.Format(time.RFC3339))
	add("")
	add("## Summary")
	add("- Updated items: %d", len(entries))
	add("- Done: %d · Reading: %d · To read: %d · Other: %d",
		len(groups[reference.StatusDone]), len(groups[reference.StatusReading]),
		len(groups[reference.StatusTodo]), len(groups[reference.StatusNone]))
	if len(keywords) > 0 {
		add("- Keywords tracked: %s", strings.Join(keywords, ", "))
		stats := KeywordStats(items, keywords, 12, 10)
		if len(stats.Keywords) > 0 {
			add("- Keyword hits (top): %s", formatCounts(stats.Keywords))
		}
		if len(stats.Pairs) > 0 {
			add("- Keyword intersections (top): %s", formatCounts(stats.Pairs))
		}
	}
	add("")

	for _, sec := range digestSections {
		group := groups[sec.status]
		add("## %s (%d)", sec.title, len(group))
		if len(group) == 0 {
			add("- (none)")
		}
		for _, e := range group {
			lines = append(lines, digestLine(e, keywords))
			if note := strings.TrimSpace(e.Note); note != "" {
				add("  - Note: %s", truncateRunes(normalize.CollapseSpace(note), digestNoteLimit))
			}
		}
		add("")
	}
	return strings.Join(lines, "\n")
}

func digestLine(e DigestEntry, keywords []string) string {
	it := e.Item
	venue := it.JournalShort
	if venue == "" {
		venue = string(it.JournalKey)
	}
	line := fmt.Sprintf("- [%s](%s) · %s · %s", it.Title, it.BestLink(), venue, dayOf(it.Date))
	if hits := Hits(it, keywords); len(hits) > 0 {
		line += " · Keywords: " + strings.Join(hits, ", ")
	}
	return line
}

func dayOf(date string) string {
	t, ok := normalize.ParseDate(date)
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatCounts(cs []Count) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = fmt.Sprintf("%s(%d)", c.Key, c.Count)
	}
	return strings.Join(parts, " · ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
