package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
)

// FlexibleString can unmarshal from either string or number JSON values.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	// Handle null
	if string(data) == "null" {
		*f = ""
		return nil
	}

	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	// Try number
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	// Try bool, seen in hand-edited feeds
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexibleString(strconv.FormatBool(b))
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// FeedRecord is one item of a generated feed file. Field names vary between
// generators, so several aliases are accepted.
type FeedRecord struct {
	Title         string         `json:"title"`
	Authors       any            `json:"authors"` // []string, []{name|given,family}, or a string
	Author        FlexibleString `json:"author"`
	Journal       string         `json:"journal"`
	JournalKey    string         `json:"journalKey"`
	JournalShort  string         `json:"journalShort"`
	Type          string         `json:"type"`
	Date          string         `json:"date"`
	Year          FlexibleString `json:"year"`
	Month         FlexibleString `json:"month"`
	Day           FlexibleString `json:"day"`
	DOI           string         `json:"doi"`
	ArXiv         string         `json:"arxiv"`
	Eprint        string         `json:"eprint"`
	ArchivePrefix string         `json:"archivePrefix"`
	Link          string         `json:"link"`
	URL           string         `json:"url"`
	Summary       string         `json:"summary"`
	Abstract      string         `json:"abstract"`
	Volume        FlexibleString `json:"volume"`
	Issue         FlexibleString `json:"issue"`
	Number        FlexibleString `json:"number"`
	Pages         FlexibleString `json:"pages"`
	Publisher     string         `json:"publisher"`
}

// feedDocument is the object layout of a generated articles.json.
type feedDocument struct {
	Items []json.RawMessage `json:"items"`
}

// ErrMissingTitle marks feed records that cannot become items.
var ErrMissingTitle = errors.New("missing required field 'title'")

// ParseFeed decodes a feed file holding either a bare array of records or an
// object with an "items" array. Records that fail to decode or normalize are
// reported individually and skipped.
func ParseFeed(data []byte) ([]reference.Item, []error) {
	raws, err := feedRecords(data)
	if err != nil {
		return nil, []error{fmt.Errorf("parsing feed JSON: %w", err)}
	}

	var items []reference.Item
	var errs []error
	for i, raw := range raws {
		var rec FeedRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			errs = append(errs, recordError(i, "", err))
			continue
		}
		it, err := FromFeedRecord(rec)
		if err != nil {
			errs = append(errs, recordError(i, rec.Title, err))
			continue
		}
		items = append(items, it)
	}
	return items, errs
}

// Feed parses a feed file, logging skipped records.
func (im *Importer) Feed(data []byte) ([]reference.Item, error) {
	items, errs := ParseFeed(data)
	if len(items) == 0 && len(errs) == 1 {
		return nil, errs[0]
	}
	for _, err := range errs {
		im.Logger.Warn("skipping feed record", zap.Error(err))
	}
	if len(items) == 0 {
		return nil, ErrNoEntries
	}
	return items, nil
}

func feedRecords(data []byte) ([]json.RawMessage, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, err
		}
		return raws, nil
	}
	var doc feedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Items, nil
}

// FromFeedRecord normalizes a single feed record.
func FromFeedRecord(r FeedRecord) (reference.Item, error) {
	title := normalize.CollapseSpace(r.Title)
	if title == "" {
		return reference.Item{}, ErrMissingTitle
	}

	authors := normalize.AuthorList(r.Authors)
	if len(authors) == 0 {
		authors = normalize.Authors(r.Author.String())
	}

	url := normalize.EnsureHTTPS(first(r.Link, r.URL))
	arxiv := arxivOf(r.ArchivePrefix, r.Eprint, "")
	if arxiv == "" {
		arxiv = normalize.ArxivID(r.ArXiv)
	}
	if arxiv == "" {
		arxiv = normalize.ArxivFromURL(url)
	}

	date := normalize.Date(r.Date)
	if date == "" {
		date = normalize.ToDateISO(r.Year.String(), r.Month.String(), r.Day.String())
	}

	journalKey := reference.JournalKey(r.JournalKey)
	if _, known := normalize.JournalInfo(journalKey); !known {
		journalKey = ""
	}
	journal := normalize.CollapseSpace(r.Journal)
	if journal == "" && journalKey.Known() && journalKey != reference.JournalArXiv {
		journal = normalize.JournalName(journalKey)
	}

	it := reference.Item{
		Title:        title,
		Authors:      authors,
		Abstract:     normalize.CleanAbstract(first(r.Summary, r.Abstract), authors),
		Journal:      journal,
		JournalKey:   journalKey,
		JournalShort: normalize.CollapseSpace(r.JournalShort),
		Date:         date,
		Year:         normalize.CollapseSpace(r.Year.String()),
		DOI:          normalize.DOI(r.DOI),
		ArXiv:        arxiv,
		URL:          url,
		Volume:       r.Volume.String(),
		Issue:        first(r.Issue.String(), r.Number.String()),
		Pages:        r.Pages.String(),
		Publisher:    normalize.CollapseSpace(r.Publisher),
	}
	it.Type = inferType(r.Type, arxiv, journal)
	finish(&it)
	return it, nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v = normalize.CollapseSpace(v); v != "" {
			return v
		}
	}
	return ""
}
