package main

import (
	"strings"
	"testing"

	"github.com/matsen/paperfeed/internal/reference"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"Über-große Fläche", 8, "Über-..."},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five", 9, "  ")
	want := "one two\n  three\n  four five"
	if got != want {
		t.Errorf("wrapText() = %q, want %q", got, want)
	}

	if got := wrapText("fits", 10, "  "); got != "fits" {
		t.Errorf("wrapText() short = %q", got)
	}

	long := strings.Repeat("word ", 40)
	for _, line := range strings.Split(wrapText(long, 20, ""), "\n") {
		if len(line) > 20 {
			t.Errorf("line %q exceeds width", line)
		}
	}
}

func TestFormatAuthorsShort(t *testing.T) {
	tests := []struct {
		authors []string
		want    string
	}{
		{nil, ""},
		{[]string{"Jane Doe"}, "Jane Doe"},
		{[]string{"A", "B", "C"}, "A, B, C"},
		{[]string{"A", "B", "C", "D"}, "A, B, C, et al."},
	}
	for _, tt := range tests {
		if got := formatAuthorsShort(tt.authors, 3); got != tt.want {
			t.Errorf("formatAuthorsShort(%v) = %q, want %q", tt.authors, got, tt.want)
		}
	}
}

func TestVenueLine(t *testing.T) {
	tests := []struct {
		name string
		it   reference.Item
		want string
	}{
		{
			name: "short name and date",
			it:   reference.Item{JournalShort: "PRL", Journal: "Physical Review Letters", Date: "2024-03-01T00:00:00Z"},
			want: "PRL · 2024-03-01",
		},
		{
			name: "journal and year",
			it:   reference.Item{Journal: "Nature", Year: "2023"},
			want: "Nature · 2023",
		},
		{
			name: "key only",
			it:   reference.Item{JournalKey: reference.JournalArXiv},
			want: "arXiv",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := venueLine(tt.it); got != tt.want {
				t.Errorf("venueLine() = %q, want %q", got, tt.want)
			}
		})
	}
}
