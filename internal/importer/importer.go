// Package importer turns external records (parsed BibTeX entries, feed JSON,
// RSS/Atom documents) into canonical items.
package importer

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/matsen/paperfeed/internal/export"
	"github.com/matsen/paperfeed/internal/identity"
	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
)

// ErrNoEntries is returned when an import source yields no usable records.
var ErrNoEntries = errors.New("no entries found")

// Importer normalizes records from every supported source.
type Importer struct {
	Logger *zap.Logger
}

// New creates an importer. A nil logger discards log output.
func New(logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{Logger: logger}
}

// BibTeX decodes and parses a .bib file and normalizes its entries.
func (im *Importer) BibTeX(data []byte) ([]reference.Item, error) {
	text, enc := DecodeText(data)
	if enc != "utf-8" {
		im.Logger.Debug("decoded bib file with fallback encoding", zap.String("encoding", enc))
	}

	entries := export.Parse(text)
	items := make([]reference.Item, 0, len(entries))
	for _, e := range entries {
		it := FromFields(e.Type, e.Fields)
		if it.Title == "" && it.DOI == "" && it.ArXiv == "" {
			im.Logger.Warn("skipping bib entry without title or identifier", zap.String("key", e.Key))
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, ErrNoEntries
	}
	return items, nil
}

// FromBibTeX normalizes parsed BibTeX entries.
func FromBibTeX(entries []export.Entry) []reference.Item {
	items := make([]reference.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, FromFields(e.Type, e.Fields))
	}
	return items
}

// FromFields builds an item from a BibTeX-style field map with lower-cased
// names. entryType is the @type of the entry; an explicit "type" field wins
// over it.
func FromFields(entryType string, fields map[string]string) reference.Item {
	get := func(names ...string) string {
		for _, n := range names {
			if v := normalize.Sanitize(fields[n]); v != "" {
				return v
			}
		}
		return ""
	}

	authors := normalize.Authors(fields["author"])
	journal := get("journal", "journaltitle", "booktitle")
	doi := normalize.DOI(get("doi"))
	url := normalize.EnsureHTTPS(get("url"))
	arxiv := arxivOf(get("archiveprefix"), get("eprint"), url)

	date := normalize.Date(get("date"))
	if date == "" {
		date = normalize.ToDateISO(get("year"), get("month"), get("day"))
	}
	year := get("year")
	if year == "" {
		year = normalize.YearOf(date)
	}

	it := reference.Item{
		Title:     get("title"),
		Authors:   authors,
		Abstract:  normalize.CleanAbstract(fields["abstract"], authors),
		Journal:   journal,
		Date:      date,
		Year:      year,
		DOI:       doi,
		ArXiv:     arxiv,
		URL:       url,
		Volume:    get("volume"),
		Issue:     get("number", "issue"),
		Pages:     get("pages"),
		Publisher: get("publisher"),
	}
	it.Type = inferType(declaredType(get("type"), entryType), arxiv, journal)
	finish(&it)
	return it
}

// declaredType returns an explicit type, treating the BibTeX entry types
// that carry publication state as declarations.
func declaredType(field, entryType string) string {
	if field != "" {
		return field
	}
	switch strings.ToLower(entryType) {
	case "unpublished", "preprint":
		return entryType
	}
	return ""
}

// inferType maps a declared type onto the closed set, otherwise guesses
// preprint for arXiv-only records and article for everything else.
func inferType(declared, arxiv, journal string) reference.Type {
	if declared != "" {
		return reference.ParseType(declared)
	}
	if arxiv != "" && (journal == "" || normalize.JournalKeyOf(journal) == reference.JournalArXiv) {
		return reference.TypePreprint
	}
	return reference.TypeArticle
}

// arxivOf prefers an explicit eprint with archivePrefix arXiv, then an
// arXiv link.
func arxivOf(archivePrefix, eprint, url string) string {
	if strings.EqualFold(archivePrefix, "arxiv") && eprint != "" {
		if id := normalize.ArxivID(eprint); id != "" {
			return id
		}
		return eprint
	}
	if id := normalize.ArxivFromURL(eprint); id != "" {
		return id
	}
	return normalize.ArxivFromURL(url)
}

// finish fills the derived venue fields and the UID.
func finish(it *reference.Item) {
	if it.JournalKey == "" || it.JournalKey == reference.JournalElse {
		it.JournalKey = normalize.JournalKeyOf(it.Journal)
	}
	if it.Journal == "" && it.ArXiv != "" && it.JournalKey == reference.JournalElse {
		it.JournalKey = reference.JournalArXiv
	}
	if it.JournalShort == "" && it.JournalKey.Known() {
		it.JournalShort = normalize.JournalShort(it.JournalKey)
	}
	if it.Year == "" {
		it.Year = normalize.YearOf(it.Date)
	}
	if it.Authors == nil {
		it.Authors = []string{}
	}
	it.UID = identity.MakeUID(*it)
}

// recordError annotates a per-record failure with its position.
func recordError(i int, title string, err error) error {
	if title == "" {
		return fmt.Errorf("record %d: %w", i+1, err)
	}
	return fmt.Errorf("record %d (%s): %w", i+1, title, err)
}
