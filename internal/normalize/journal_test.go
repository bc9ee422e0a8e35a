package normalize

import (
	"testing"

	"github.com/matsen/paperfeed/internal/reference"
)

func TestJournalKeyOf(t *testing.T) {
	tests := []struct {
		name string
		want reference.JournalKey
	}{
		{"Phys. Rev. Lett.", "PRL"},
		{"  PHYSICAL REVIEW LETTERS ", "PRL"},
		{"Physical Review B", "PRB"},
		{"Physical Review Applied", "PRApplied"},
		{"Phys. Rev. B 109, 045123", "PRB"},
		{"Nature Physics", "NatPhys"},
		{"Nature", "Nature"},
		{"Science Advances", "SciAdv"},
		{"arXiv: cond-mat", reference.JournalArXiv},
		{"Some arXiv mirror", reference.JournalArXiv},
		{"Journal of Chemical Physics", reference.JournalElse},
		{"", reference.JournalElse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JournalKeyOf(tt.name); got != tt.want {
				t.Errorf("JournalKeyOf(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestJournalAbbrev(t *testing.T) {
	tests := []struct {
		name    string
		journal string
		key     reference.JournalKey
		arxiv   string
		want    string
	}{
		{"known key", "Phys. Rev. Lett.", "PRL", "", "PRL"},
		{"derives key", "Physical Review B", "", "", "PRB"},
		{"initials", "Journal of Chemical Physics", reference.JournalElse, "", "JCP"},
		{"arxiv only", "", "", "2401.00001", "arXiv"},
		{"nothing", "", reference.JournalElse, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JournalAbbrev(tt.journal, tt.key, tt.arxiv); got != tt.want {
				t.Errorf("JournalAbbrev() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJournalName(t *testing.T) {
	if got := JournalName("PRL"); got != "Physical Review Letters" {
		t.Errorf("JournalName(PRL) = %q", got)
	}
	if got := JournalName(reference.JournalElse); got != "" {
		t.Errorf("JournalName(Else) = %q, want empty", got)
	}
}
