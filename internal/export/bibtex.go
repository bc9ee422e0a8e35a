// Package export renders items as BibTeX and reads .bib files back.
package export

import (
	"fmt"
	"strings"

	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/reference"
)

// ToBibTeX converts an item to a BibTeX entry keyed by keys.
// note is embedded verbatim (after sanitizing) when non-empty.
func ToBibTeX(it reference.Item, keys *KeyGenerator, note string) string {
	if keys == nil {
		keys = NewKeyGenerator()
	}
	return ToBibTeXWithKey(it, keys.Key(it), note)
}

// ToBibTeXWithKey renders an entry under an explicit citation key.
func ToBibTeXWithKey(it reference.Item, key, note string) string {
	var fields []string
	add := func(name, value string) {
		value = normalize.Sanitize(value)
		if value != "" {
			fields = append(fields, fmt.Sprintf("  %s = {%s}", name, value))
		}
	}

	add("title", it.Title)

	// Authors
	var authors []string
	for _, a := range it.Authors {
		if a = normalize.Sanitize(a); a != "" {
			authors = append(authors, a)
		}
	}
	add("author", strings.Join(authors, " and "))

	// Venue
	journal := it.Journal
	if journal == "" && it.JournalKey != reference.JournalArXiv {
		journal = normalize.JournalName(it.JournalKey)
	}
	add("journal", journal)

	// Date
	year := it.Year
	if year == "" {
		year = normalize.YearOf(it.Date)
	}
	add("year", year)
	add("month", strings.ToLower(normalize.MonthAbbrOf(it.Date)))

	// Citation details
	add("volume", it.Volume)
	add("number", it.Issue)
	add("pages", it.Pages)
	add("publisher", it.Publisher)

	// Links
	add("doi", it.DOI)
	url := it.URL
	if url == "" && it.DOI != "" {
		url = "https://doi.org/" + it.DOI
	}
	add("url", url)
	if arxiv := normalize.Sanitize(it.ArXiv); arxiv != "" {
		add("eprint", arxiv)
		add("archivePrefix", "arXiv")
	}

	add("abstract", it.Abstract)
	add("note", note)

	return fmt.Sprintf("@%s{%s,\n%s\n}", entryType(journal, it.DOI), key, strings.Join(fields, ",\n"))
}

// ToBibTeXList converts items to BibTeX entries separated by a blank line,
// sharing one key generator so keys never collide within the batch.
// annotate may be nil; otherwise it supplies the note of each item.
func ToBibTeXList(items []reference.Item, annotate func(reference.Item) string) string {
	return ToBibTeXListWith(items, NewKeyGenerator(), annotate)
}

// ToBibTeXListWith is ToBibTeXList with a caller-supplied key generator.
func ToBibTeXListWith(items []reference.Item, keys *KeyGenerator, annotate func(reference.Item) string) string {
	entries := make([]string, 0, len(items))
	for _, it := range items {
		var note string
		if annotate != nil {
			note = annotate(it)
		}
		entries = append(entries, ToBibTeX(it, keys, note))
	}
	return strings.Join(entries, "\n\n")
}

// ComposeNote joins reading status, keyword hits and the free-text note
// into a single BibTeX note, e.g. "Status: todo ; Keywords: qubit ; Note: read".
func ComposeNote(status reference.Status, hits []string, note string) string {
	var parts []string
	if status != reference.StatusNone {
		parts = append(parts, "Status: "+string(status))
	}
	if len(hits) > 0 {
		parts = append(parts, "Keywords: "+strings.Join(hits, ", "))
	}
	if note = strings.TrimSpace(note); note != "" {
		parts = append(parts, "Note: "+note)
	}
	return strings.Join(parts, " ; ")
}

// entryType returns article for anything with a venue or DOI.
func entryType(journal, doi string) string {
	if strings.TrimSpace(journal) != "" || strings.TrimSpace(doi) != "" {
		return "article"
	}
	return "misc"
}
