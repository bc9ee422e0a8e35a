// Package reference defines the core domain types for triaged articles.
package reference

// Item is the canonical bibliographic record every ingest path produces.
type Item struct {
	// Identity
	UID string `json:"uid"` // Stable identifier, computed once at normalization time

	// Metadata
	Title    string   `json:"title"`
	Authors  []string `json:"authors"` // Display-ready names, never split into given/family
	Abstract string   `json:"abstract,omitempty"`

	// Venue
	Journal      string     `json:"journal,omitempty"`
	JournalKey   JournalKey `json:"journalKey"`
	JournalShort string     `json:"journalShort,omitempty"`
	Type         Type       `json:"type"`

	// Publication date
	Date string `json:"date,omitempty"` // RFC 3339 in UTC, or empty
	Year string `json:"year,omitempty"`

	// External identifiers and links
	DOI   string `json:"doi,omitempty"`
	ArXiv string `json:"arxiv,omitempty"` // Bare id without URL prefix
	URL   string `json:"url,omitempty"`

	// Citation details
	Volume    string `json:"volume,omitempty"`
	Issue     string `json:"issue,omitempty"`
	Pages     string `json:"pages,omitempty"`
	Publisher string `json:"publisher,omitempty"`
}

// FirstAuthor returns the first author or an empty string.
func (it Item) FirstAuthor() string {
	if len(it.Authors) == 0 {
		return ""
	}
	return it.Authors[0]
}

// BestLink returns the link a reader should open: the arXiv abstract page,
// the explicit URL, or the DOI resolver.
func (it Item) BestLink() string {
	switch {
	case it.ArXiv != "":
		return "https://arxiv.org/abs/" + it.ArXiv
	case it.URL != "":
		return it.URL
	case it.DOI != "":
		return "https://doi.org/" + it.DOI
	}
	return ""
}
