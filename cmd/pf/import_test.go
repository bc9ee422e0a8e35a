package main

import (
	"testing"

	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/storage"
	"github.com/matsen/paperfeed/internal/store"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
		want string
	}{
		{"bib extension", "refs.bib", "", FormatBibTeX},
		{"bibtex extension uppercase", "REFS.BIBTEX", "", FormatBibTeX},
		{"xml extension", "prl.xml", "", FormatRSS},
		{"atom extension", "feed.atom", "", FormatRSS},
		{"jsonl extension", "items.jsonl", "", FormatJSONL},
		{"bibtex content", "export.txt", "\n  @article{x, title={T}}", FormatBibTeX},
		{"rss content", "feed", `<?xml version="1.0"?><rss></rss>`, FormatRSS},
		{"snapshot content", "backup.json", `{"items":[],"categories":[],"assign":{}}`, FormatSnapshot},
		{"feed object", "articles.json", `{"items":[{"title":"T"}]}`, FormatFeed},
		{"feed array", "articles.json", `[{"title":"T"}]`, FormatFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectFormat(tt.path, []byte(tt.data)); got != tt.want {
				t.Errorf("detectFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestClassifyImport(t *testing.T) {
	s := newTestStore(t,
		reference.Item{UID: "doi:10.1234/abc", DOI: "10.1234/abc", Title: "Paper One"},
	)

	tests := []struct {
		name string
		item reference.Item
		want string
	}{
		{"stored uid is an update", reference.Item{UID: "doi:10.1234/abc", Title: "Paper One v2"}, "update"},
		{"unknown uid is new", reference.Item{UID: "doi:10.9999/new", Title: "Brand New"}, "import"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyImport(s, tt.item); got != tt.want {
				t.Errorf("classifyImport() = %q, want %q", got, tt.want)
			}
		})
	}
}

// newTestStore returns an in-memory store holding items.
func newTestStore(t *testing.T, items ...reference.Item) *store.Store {
	t.Helper()
	s, err := store.Open(storage.NewMemKV())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	if _, err := s.Import(items); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	return s
}
