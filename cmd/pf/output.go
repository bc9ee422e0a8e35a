package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/matsen/paperfeed/internal/config"
	"github.com/matsen/paperfeed/internal/query"
	"github.com/matsen/paperfeed/internal/reference"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search/list commands

	ListTitleMaxLen   = 70 // Used in list and search output
	ImportTitleMaxLen = 60 // Used in import dry-run output

	DetailTextWrapWidth = 72 // Abstract and note wrapping in get
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
func outputError(code int, format string, args ...interface{}) int {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	return code
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Count  *int   `json:"count,omitempty"`
}

// UpdateResponse is the response for commands that set one value.
type UpdateResponse struct {
	Status string      `json:"status"`
	UID    string      `json:"uid,omitempty"`
	Key    string      `json:"key"`
	Value  interface{} `json:"value"`
}

// ItemView is an item with the side state commands report alongside it.
type ItemView struct {
	reference.Item
	Category string           `json:"category"`
	Note     string           `json:"note,omitempty"`
	Rating   reference.Rating `json:"rating"`
	Status   reference.Status `json:"status,omitempty"`
	Favorite bool             `json:"favorite"`
	Hits     []string         `json:"keywordHits,omitempty"`
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if utf8.RuneCountInString(text) <= width {
		return text
	}

	var lines []string
	var current strings.Builder
	n := 0

	for _, word := range strings.Fields(text) {
		w := utf8.RuneCountInString(word)
		switch {
		case n == 0:
			current.WriteString(word)
			n = w
		case n+1+w <= width:
			current.WriteString(" ")
			current.WriteString(word)
			n += 1 + w
		default:
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			n = w
		}
	}
	if n > 0 {
		lines = append(lines, current.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// formatAuthorsShort joins up to maxCount authors and adds "et al.".
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}
	if len(authors) <= maxCount {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:maxCount], ", ") + ", et al."
}

// venueLine renders "Journal · date" for human output.
func venueLine(it reference.Item) string {
	venue := it.JournalShort
	if venue == "" {
		venue = it.Journal
	}
	if venue == "" {
		venue = string(it.JournalKey)
	}
	day := it.Year
	if len(it.Date) >= 10 {
		day = it.Date[:10]
	}
	if day == "" {
		return venue
	}
	return venue + " · " + day
}

// highlight wraps keyword hits with the configured markers.
func highlight(text string, keywords []string) string {
	open, close := config.HighlightMarkers()
	return query.Highlight(text, keywords, open, close)
}

// printItemSummary prints a numbered one-item summary for list and search.
func printItemSummary(num int, it reference.Item, keywords []string) {
	title := truncateString(it.Title, ListTitleMaxLen)
	fmt.Printf("%3d. %s\n", num, highlight(title, keywords))
	fmt.Printf("     %s\n", formatAuthorsShort(it.Authors, 3))
	fmt.Printf("     %s  [%s]\n", venueLine(it), it.UID)
}

func intPtr(n int) *int {
	return &n
}
