package reference

// UnsortedID is the id of the distinguished default category.
const UnsortedID = "unsorted"

// Category groups items on the triage board.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Unsorted returns the default category new items are assigned to.
func Unsorted() Category {
	return Category{ID: UnsortedID, Name: "Unsorted", Color: "#94a3b8"}
}

// Rating holds the manual and note-derived scores of an item.
// Both range over 0..5 in steps of 0.5.
type Rating struct {
	Manual float64 `json:"manual"`
	Auto   float64 `json:"auto"`
}

// UserState tracks reading status and the last time the user touched an item.
type UserState struct {
	Status    Status `json:"status"`
	UpdatedAt int64  `json:"updatedAt"` // Unix milliseconds
}

// Favorite is a minimized item snapshot that outlives the item itself.
type Favorite struct {
	UID          string     `json:"uid"`
	Title        string     `json:"title"`
	Authors      []string   `json:"authors"`
	Date         string     `json:"date"`
	Journal      string     `json:"journal"`
	JournalKey   JournalKey `json:"journalKey"`
	JournalShort string     `json:"journalShort"`
	Type         Type       `json:"type"`
	URL          string     `json:"link"`
	ArXiv        string     `json:"arxiv"`
	DOI          string     `json:"doi"`
	Summary      string     `json:"summary"`
	Volume       string     `json:"volume"`
	Issue        string     `json:"issue"`
	Pages        string     `json:"pages"`
	Publisher    string     `json:"publisher"`
}

// Minify builds the favorite snapshot of an item.
func Minify(it Item) Favorite {
	authors := make([]string, len(it.Authors))
	copy(authors, it.Authors)
	short := it.JournalShort
	if short == "" {
		short = string(it.JournalKey)
	}
	return Favorite{
		UID:          it.UID,
		Title:        it.Title,
		Authors:      authors,
		Date:         it.Date,
		Journal:      it.Journal,
		JournalKey:   it.JournalKey,
		JournalShort: short,
		Type:         it.Type,
		URL:          it.URL,
		ArXiv:        it.ArXiv,
		DOI:          it.DOI,
		Summary:      it.Abstract,
		Volume:       it.Volume,
		Issue:        it.Issue,
		Pages:        it.Pages,
		Publisher:    it.Publisher,
	}
}

// Item expands a favorite back into an item so it can be exported
// after the source feed dropped it.
func (f Favorite) Item() Item {
	return Item{
		UID:          f.UID,
		Title:        f.Title,
		Authors:      f.Authors,
		Abstract:     f.Summary,
		Journal:      f.Journal,
		JournalKey:   f.JournalKey,
		JournalShort: f.JournalShort,
		Type:         f.Type,
		Date:         f.Date,
		DOI:          f.DOI,
		ArXiv:        f.ArXiv,
		URL:          f.URL,
		Volume:       f.Volume,
		Issue:        f.Issue,
		Pages:        f.Pages,
		Publisher:    f.Publisher,
	}
}

// Prefs are the user's keyword-highlighting preferences.
type Prefs struct {
	Keywords         []string `json:"keywords"`
	Highlight        bool     `json:"highlight"`
	HighlightSummary bool     `json:"highlightSummary"`
}

// DefaultPrefs returns the preferences used before the user saved any.
func DefaultPrefs() Prefs {
	return Prefs{Keywords: []string{}, Highlight: true, HighlightSummary: true}
}
