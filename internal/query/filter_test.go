package query

import (
	"testing"
	"time"

	"github.com/matsen/paperfeed/internal/reference"
)

var now = time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)

func daysAgo(d float64) string {
	return now.Add(-time.Duration(d * 24 * float64(time.Hour))).Format(time.RFC3339)
}

func sampleItems() []reference.Item {
	return []reference.Item{
		{UID: "a", Title: "Quantum spin liquids", Authors: []string{"Jane Doe"}, Journal: "Physical Review B", JournalKey: "PRB", Type: reference.TypeArticle, Date: daysAgo(1), DOI: "10.1103/aaa"},
		{UID: "b", Title: "Majorana modes", Authors: []string{"Ann Lee"}, JournalKey: reference.JournalArXiv, Type: reference.TypePreprint, Date: daysAgo(3), Abstract: "Topological qubits."},
		{UID: "c", Title: "Old news", Authors: []string{"Bo Kim"}, Journal: "Nature", JournalKey: "Nature", Type: reference.TypeArticle, Date: daysAgo(30)},
		{UID: "d", Title: "Undated", Authors: []string{"Cy Young"}, JournalKey: reference.JournalElse, Type: reference.TypeMisc},
	}
}

func TestMatchQuery(t *testing.T) {
	it := sampleItems()[0]
	tests := []struct {
		q    string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"SPIN", true},
		{"review b", true},
		{"10.1103/AAA", true},
		{"jane", true},
		{"majorana", false},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			if got := MatchQuery(it, tt.q); got != tt.want {
				t.Errorf("MatchQuery(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}

	if got := FilterQuery(sampleItems(), "topological"); len(got) != 1 || got[0].UID != "b" {
		t.Errorf("FilterQuery() should search abstracts, got %v", got)
	}
	if got := FilterQuery(sampleItems(), ""); len(got) != 4 {
		t.Errorf("FilterQuery(\"\") should be the identity, got %d items", len(got))
	}
}

func TestWithinDays_Boundary(t *testing.T) {
	tests := []struct {
		name   string
		date   string
		window string
		want   bool
	}{
		{"exactly N days", daysAgo(7), "7", true},
		{"inside epsilon", daysAgo(7.005), "7", true},
		{"N+1 days", daysAgo(8), "7", false},
		{"just past epsilon", daysAgo(7.02), "7", false},
		{"future date", now.Add(time.Hour).Format(time.RFC3339), "7", true},
		{"all", daysAgo(1000), "all", true},
		{"empty date with all", "", "all", true},
		{"empty date with window", "", "7", false},
		{"zero window today", daysAgo(0), "0", true},
		{"bad window does not filter", daysAgo(1000), "soon", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinDays(tt.date, tt.window, now); got != tt.want {
				t.Errorf("WithinDays(%q, %q) = %v, want %v", tt.date, tt.window, got, tt.want)
			}
		})
	}
}

func TestParseWindow(t *testing.T) {
	for _, s := range []string{"", "all", "ALL"} {
		w, err := ParseWindow(s)
		if err != nil || w.Bounded {
			t.Errorf("ParseWindow(%q) = %+v, %v; want unbounded", s, w, err)
		}
	}
	w, err := ParseWindow("14")
	if err != nil || !w.Bounded || w.Days != 14 || w.String() != "14" {
		t.Errorf("ParseWindow(14) = %+v, %v", w, err)
	}
	for _, s := range []string{"-1", "week"} {
		if _, err := ParseWindow(s); err == nil {
			t.Errorf("ParseWindow(%q) should fail", s)
		}
	}
}

func uids(items []reference.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.UID
	}
	return out
}

func sameUIDs(got []reference.Item, want ...string) bool {
	g := uids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestApply(t *testing.T) {
	items := sampleItems()
	cats := map[string]string{"a": "cat1", "c": "cat1"}
	favs := map[string]bool{"b": true}
	base := Filter{
		Now:        now,
		CategoryOf: func(uid string) string { return orUnsorted(cats[uid]) },
		IsFavorite: func(uid string) bool { return favs[uid] },
	}

	tests := []struct {
		name   string
		modify func(f *Filter)
		want   []string
	}{
		{"zero filter", func(f *Filter) {}, []string{"a", "b", "c", "d"}},
		{"window", func(f *Filter) { f.Window = Window{Bounded: true, Days: 7} }, []string{"a", "b"}},
		{"category", func(f *Filter) { f.Category = "cat1" }, []string{"a", "c"}},
		{"unsorted", func(f *Filter) { f.Category = reference.UnsortedID }, []string{"b", "d"}},
		{"type", func(f *Filter) { f.Type = reference.TypePreprint }, []string{"b"}},
		{"journal key", func(f *Filter) { f.JournalKey = "Nature" }, []string{"c"}},
		{"favorites", func(f *Filter) { f.View = ViewFavorite }, []string{"b"}},
		{"keywords", func(f *Filter) { f.View = ViewKeywords; f.Keywords = []string{"qubit", " "} }, []string{"b"}},
		{"new since visit", func(f *Filter) { f.View = ViewNew; f.LastVisit = now.Add(-48 * time.Hour) }, []string{"a"}},
		{"new without visit", func(f *Filter) { f.View = ViewNew }, []string{}},
		{"combined", func(f *Filter) { f.Query = "o"; f.Category = "cat1"; f.Window = Window{Bounded: true, Days: 7} }, []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base
			tt.modify(&f)
			got := Apply(items, f)
			if !sameUIDs(got, tt.want...) {
				t.Errorf("Apply() = %v, want %v", uids(got), tt.want)
			}
		})
	}
}

func orUnsorted(id string) string {
	if id == "" {
		return reference.UnsortedID
	}
	return id
}

func TestParseView(t *testing.T) {
	if v, err := ParseView(""); err != nil || v != ViewAll {
		t.Errorf("ParseView(\"\") = %q, %v", v, err)
	}
	if v, err := ParseView("FAV"); err != nil || v != ViewFavorite {
		t.Errorf("ParseView(FAV) = %q, %v", v, err)
	}
	if _, err := ParseView("starred"); err == nil {
		t.Error("ParseView(starred) should fail")
	}
}
