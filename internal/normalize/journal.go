package normalize

import (
	"sort"
	"strings"
	"unicode"

	"github.com/matsen/paperfeed/internal/reference"
)

// Journal is one row of the venue lookup table.
type Journal struct {
	Key     reference.JournalKey
	Name    string
	Short   string
	Aliases []string
}

// Journals is the static venue table. Names, short forms and aliases are
// matched case-insensitively.
var Journals = []Journal{
	{"PRL", "Physical Review Letters", "PRL", []string{"phys. rev. lett.", "phys rev lett", "physical review letter"}},
	{"PRA", "Physical Review A", "PRA", []string{"phys. rev. a", "phys rev a"}},
	{"PRB", "Physical Review B", "PRB", []string{"phys. rev. b", "phys rev b"}},
	{"PRC", "Physical Review C", "PRC", []string{"phys. rev. c", "phys rev c"}},
	{"PRD", "Physical Review D", "PRD", []string{"phys. rev. d", "phys rev d"}},
	{"PRE", "Physical Review E", "PRE", []string{"phys. rev. e", "phys rev e"}},
	{"PRX", "Physical Review X", "PRX", []string{"phys. rev. x", "phys rev x"}},
	{"PRXQuantum", "PRX Quantum", "PRX Quantum", nil},
	{"PRResearch", "Physical Review Research", "PR Research", []string{"phys. rev. research", "phys rev research", "phys. rev. res."}},
	{"PRApplied", "Physical Review Applied", "PR Applied", []string{"phys. rev. applied", "phys rev applied", "phys. rev. appl."}},
	{"PRMaterials", "Physical Review Materials", "PR Materials", []string{"phys. rev. materials", "phys rev materials", "phys. rev. mater."}},
	{"PRFluids", "Physical Review Fluids", "PR Fluids", []string{"phys. rev. fluids"}},
	{"RMP", "Reviews of Modern Physics", "RMP", []string{"rev. mod. phys.", "rev mod phys"}},
	{"Nature", "Nature", "Nature", nil},
	{"NatPhys", "Nature Physics", "Nat. Phys.", []string{"nat. phys.", "nat phys"}},
	{"NatMater", "Nature Materials", "Nat. Mater.", []string{"nat. mater.", "nat mater"}},
	{"NatNano", "Nature Nanotechnology", "Nat. Nano.", []string{"nat. nanotechnol.", "nat. nano."}},
	{"NatCommun", "Nature Communications", "Nat. Commun.", []string{"nat. commun.", "nat commun"}},
	{"NatRevPhys", "Nature Reviews Physics", "Nat. Rev. Phys.", []string{"nat. rev. phys."}},
	{"Science", "Science", "Science", nil},
	{"SciAdv", "Science Advances", "Sci. Adv.", []string{"sci. adv.", "sci adv"}},
	{"NanoLett", "Nano Letters", "Nano Lett.", []string{"nano lett.", "nano lett"}},
	{"JACS", "Journal of the American Chemical Society", "JACS", []string{"j. am. chem. soc.", "j am chem soc"}},
	{"npjQM", "npj Quantum Materials", "npj QM", []string{"npj quantum mater."}},
	{"CPL", "Chinese Physics Letters", "CPL", []string{"chin. phys. lett.", "chin phys lett"}},
	{"CPB", "Chinese Physics B", "CPB", []string{"chin. phys. b", "chin phys b"}},
	{"JPCM", "Journal of Physics: Condensed Matter", "JPCM", []string{"j. phys.: condens. matter", "j. phys. condens. matter"}},
	{"NJP", "New Journal of Physics", "NJP", []string{"new j. phys.", "new j phys"}},
	{reference.JournalArXiv, "arXiv", "arXiv", []string{"arxiv preprint", "arxiv e-prints"}},
}

// minContainmentLen keeps short codes like "prl" out of substring matching.
const minContainmentLen = 5

var (
	journalExact    map[string]reference.JournalKey
	journalContains []string // lookup names ordered longest first
	journalByKey    map[reference.JournalKey]Journal
)

func init() {
	journalExact = make(map[string]reference.JournalKey)
	journalByKey = make(map[reference.JournalKey]Journal)
	for _, j := range Journals {
		journalByKey[j.Key] = j
		names := append([]string{j.Name, j.Short, string(j.Key)}, j.Aliases...)
		for _, n := range names {
			n = Key(n)
			if n == "" {
				continue
			}
			if _, dup := journalExact[n]; !dup {
				journalExact[n] = j.Key
				if len(n) >= minContainmentLen {
					journalContains = append(journalContains, n)
				}
			}
		}
	}
	sort.SliceStable(journalContains, func(a, b int) bool {
		return len(journalContains[a]) > len(journalContains[b])
	})
}

// JournalKeyOf maps a venue name to its canonical key: exact table match,
// then the longest table name contained in the text, then arXiv when the
// text mentions it, else JournalElse.
func JournalKeyOf(name string) reference.JournalKey {
	n := Key(StripBraces(name))
	if n == "" {
		return reference.JournalElse
	}
	if k, ok := journalExact[n]; ok {
		return k
	}
	for _, cand := range journalContains {
		if strings.Contains(n, cand) {
			return journalExact[cand]
		}
	}
	if strings.Contains(n, "arxiv") {
		return reference.JournalArXiv
	}
	return reference.JournalElse
}

// JournalInfo returns the table row for a key.
func JournalInfo(key reference.JournalKey) (Journal, bool) {
	j, ok := journalByKey[key]
	return j, ok
}

// JournalName returns the full venue name for a known key.
func JournalName(key reference.JournalKey) string {
	if j, ok := journalByKey[key]; ok && key.Known() {
		return j.Name
	}
	return ""
}

// JournalShort returns the display short form for a key.
func JournalShort(key reference.JournalKey) string {
	if j, ok := journalByKey[key]; ok {
		return j.Short
	}
	return string(key)
}

var abbrevStopWords = map[string]bool{"of": true, "the": true, "and": true, "for": true, "in": true, "on": true}

// JournalAbbrev returns the venue tag used in citation keys: the key code of
// a known venue, "arXiv" for arXiv-only records, otherwise the initials of
// the venue name ("Journal of Chemical Physics" -> "JCP").
func JournalAbbrev(journal string, key reference.JournalKey, arxiv string) string {
	if key == "" {
		key = JournalKeyOf(journal)
	}
	if key.Known() {
		return string(key)
	}
	journal = CollapseSpace(StripBraces(journal))
	if journal == "" {
		if arxiv != "" {
			return string(reference.JournalArXiv)
		}
		return ""
	}

	var b strings.Builder
	for _, w := range strings.FieldsFunc(journal, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == ':' || r == '.' || r == ','
	}) {
		if abbrevStopWords[strings.ToLower(w)] {
			continue
		}
		r := []rune(w)
		if unicode.IsLetter(r[0]) || unicode.IsDigit(r[0]) {
			b.WriteRune(unicode.ToUpper(r[0]))
		}
	}
	return b.String()
}
