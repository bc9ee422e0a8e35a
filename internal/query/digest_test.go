package query

import (
	"strings"
	"testing"
	"time"

	"github.com/matsen/paperfeed/internal/reference"
)

func TestDigest(t *testing.T) {
	at := time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC)
	entries := []DigestEntry{
		{
			Item:  reference.Item{Title: "Spin qubit", JournalShort: "PRL", DOI: "10.1/a", Date: "2026-01-15T00:00:00Z"},
			State: reference.UserState{Status: reference.StatusDone, UpdatedAt: 2},
			Note:  "great\n\nresult",
		},
		{
			Item:  reference.Item{Title: "Liquid", JournalKey: reference.JournalArXiv, ArXiv: "2601.00001"},
			State: reference.UserState{Status: reference.StatusTodo, UpdatedAt: 1},
		},
	}

	md := Digest(entries, []string{"qubit", "spin"}, at)

	wants := []string{
		"# Weekly Digest (2026-01-20)",
		"Generated: 2026-01-20T09:30:00Z",
		"- Updated items: 2",
		"- Done: 1 · Reading: 0 · To read: 1 · Other: 0",
		"- Keywords tracked: qubit, spin",
		"- Keyword hits (top): qubit(1) · spin(1)",
		"- Keyword intersections (top): qubit ∩ spin(1)",
		"## Done (1)\n- [Spin qubit](https://doi.org/10.1/a) · PRL · 2026-01-15 · Keywords: qubit, spin\n  - Note: great result",
		"## Reading (0)\n- (none)",
		"## To read (1)\n- [Liquid](https://arxiv.org/abs/2601.00001) · arXiv · ",
	}
	for _, w := range wants {
		if !strings.Contains(md, w) {
			t.Errorf("Digest() missing %q in:\n%s", w, md)
		}
	}
}

func TestDigest_NoteTruncated(t *testing.T) {
	long := strings.Repeat("x", 300)
	md := Digest([]DigestEntry{{Item: reference.Item{Title: "T"}, Note: long}}, nil, time.Now())
	if !strings.Contains(md, "  - Note: "+strings.Repeat("x", 280)+"…") {
		t.Errorf("note should be truncated to 280 runes:\n%s", md)
	}
	if strings.Contains(md, "Keywords tracked") {
		t.Error("no keyword lines expected without keywords")
	}
	if !strings.Contains(md, "## Other (1)") {
		t.Error("entries without status belong to Other")
	}
}
