package importer

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
)

// Source describes the venue an RSS/Atom document was published by.
// Zero fields are inferred from the document where possible.
type Source struct {
	JournalKey reference.JournalKey
	Journal    string
	Short      string
	Type       string // declared type of every entry, e.g. "published" or "accepted"
	Publisher  string
}

const apsPublisher = "American Physical Society"

var (
	bracketed   = regexp.MustCompile(`\[([^\]]+)\]`)
	apsCitation = regexp.MustCompile(`^(.*?)(\d+)\s*,\s*([A-Za-z0-9]+)\s*$`)
)

// ParseRSS reads an RSS or Atom document and normalizes its entries.
// Entries resolving to the same UID are kept once, first occurrence wins.
func ParseRSS(r io.Reader, src Source) ([]reference.Item, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	src = resolveSource(src, feed.Title)
	seen := make(map[string]bool)
	items := make([]reference.Item, 0, len(feed.Items))
	for _, fi := range feed.Items {
		it, ok := fromFeedItem(fi, src)
		if !ok || seen[it.UID] {
			continue
		}
		seen[it.UID] = true
		items = append(items, it)
	}
	return items, nil
}

// RSS parses an RSS/Atom document, logging what was kept.
func (im *Importer) RSS(r io.Reader, src Source) ([]reference.Item, error) {
	items, err := ParseRSS(r, src)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoEntries
	}
	im.Logger.Debug("parsed feed document",
		zap.String("journal_key", string(src.JournalKey)),
		zap.Int("items", len(items)))
	return items, nil
}

func resolveSource(src Source, feedTitle string) Source {
	if src.JournalKey == "" {
		if src.Journal != "" {
			src.JournalKey = normalize.JournalKeyOf(src.Journal)
		} else {
			src.JournalKey = normalize.JournalKeyOf(feedTitle)
		}
	}
	if src.Journal == "" && src.JournalKey != reference.JournalArXiv {
		src.Journal = normalize.JournalName(src.JournalKey)
	}
	if src.Short == "" && src.JournalKey.Known() {
		src.Short = normalize.JournalShort(src.JournalKey)
	}
	if src.Publisher == "" && isAPS(src.JournalKey) {
		src.Publisher = apsPublisher
	}
	return src
}

func isAPS(key reference.JournalKey) bool {
	k := string(key)
	return strings.HasPrefix(k, "PR") || key == "RMP"
}

func fromFeedItem(fi *gofeed.Item, src Source) (reference.Item, bool) {
	title := normalize.CollapseSpace(html.UnescapeString(fi.Title))
	if title == "" {
		return reference.Item{}, false
	}

	raw := fi.Description
	if raw == "" {
		raw = fi.Content
	}

	doi := itemDOI(fi, raw)
	link := normalize.EnsureHTTPS(fi.Link)
	if link == "" && len(fi.Links) > 0 {
		link = normalize.EnsureHTTPS(fi.Links[0])
	}
	if link == "" && doi != "" {
		link = "https://doi.org/" + doi
	}
	arxiv := normalize.ArxivFromURL(link)
	if arxiv == "" && strings.Contains(strings.ToLower(fi.GUID), "arxiv") {
		arxiv = normalize.ArxivID(fi.GUID)
	}

	authors := itemAuthors(fi)
	citJournal, volume, pages := parseAPSCitation(raw)
	journal := src.Journal
	if journal == "" {
		journal = citJournal
	}

	typ := src.Type
	if typ == "" && src.JournalKey == reference.JournalArXiv {
		typ = string(reference.TypePreprint)
	}

	it := reference.Item{
		Title:        title,
		Authors:      authors,
		Abstract:     normalize.CleanAbstract(raw, authors),
		Journal:      journal,
		JournalKey:   src.JournalKey,
		JournalShort: src.Short,
		Date:         itemDate(fi),
		DOI:          doi,
		ArXiv:        arxiv,
		URL:          link,
		Volume:       volume,
		Pages:        pages,
		Publisher:    src.Publisher,
	}
	it.Type = inferType(typ, arxiv, journal)
	finish(&it)
	return it, true
}

// itemDOI looks in the PRISM and Dublin Core extensions, the GUID, the
// description and finally the links.
func itemDOI(fi *gofeed.Item, raw string) string {
	for _, e := range fi.Extensions["prism"]["doi"] {
		if doi := normalize.DOI(e.Value); doi != "" {
			return doi
		}
	}

	var candidates []string
	if fi.DublinCoreExt != nil {
		candidates = append(candidates, fi.DublinCoreExt.Identifier...)
	}
	candidates = append(candidates, fi.GUID, raw)
	candidates = append(candidates, fi.Links...)
	candidates = append(candidates, fi.Link)

	for _, c := range candidates {
		if doi := normalize.FindDOI(c); doi != "" {
			return doi
		}
	}
	return ""
}

func itemAuthors(fi *gofeed.Item) []string {
	var names []string
	for _, p := range fi.Authors {
		if p != nil && strings.TrimSpace(p.Name) != "" {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 && fi.DublinCoreExt != nil {
		names = fi.DublinCoreExt.Creator
	}
	// Some publishers pack every author into one "A, B, and C" string.
	if len(names) == 1 {
		return normalize.Authors(names[0])
	}
	return normalize.AuthorList(names)
}

func itemDate(fi *gofeed.Item) string {
	for _, t := range []*time.Time{fi.PublishedParsed, fi.UpdatedParsed} {
		if t != nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	if fi.DublinCoreExt != nil {
		for _, d := range fi.DublinCoreExt.Date {
			if date := normalize.Date(d); date != "" {
				return date
			}
		}
	}
	for _, e := range fi.Extensions["prism"]["publicationDate"] {
		if date := normalize.Date(e.Value); date != "" {
			return date
		}
	}
	return ""
}

// parseAPSCitation reads the "[Phys. Rev. Lett. 136, 031001]" stamp APS
// appends to descriptions.
func parseAPSCitation(raw string) (journal, volume, pages string) {
	m := bracketed.FindStringSubmatch(raw)
	if m == nil {
		return "", "", ""
	}
	parts := apsCitation.FindStringSubmatch(strings.TrimSpace(m[1]))
	if parts == nil {
		return "", "", ""
	}
	return strings.TrimSpace(parts[1]), parts[2], parts[3]
}
