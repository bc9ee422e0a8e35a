package export

import (
	"os"
	"strings"

	"github.com/matsen/paperfeed/internal/normalize"
)

// Entry is one parsed BibTeX entry.
type Entry struct {
	Type   string            // Lower-cased entry type, e.g. "article"
	Key    string            // Citation key as written
	Fields map[string]string // Lower-cased field names; values brace-stripped
}

// Field returns a field value by case-insensitive name.
func (e Entry) Field(name string) string {
	return e.Fields[strings.ToLower(name)]
}

var monthMacros = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

// Parse reads every entry in a .bib text. It understands braced and quoted
// values, @string macros and # concatenation, and skips @comment and
// @preamble blocks. Malformed entries are recovered from as far as possible
// rather than failing the whole file.
func Parse(text string) []Entry {
	p := &bibParser{src: text, macros: make(map[string]string, len(monthMacros))}
	for k, v := range monthMacros {
		p.macros[k] = v
	}

	var entries []Entry
	for {
		at := strings.IndexByte(p.src[p.pos:], '@')
		if at < 0 {
			break
		}
		p.pos += at + 1
		typ := strings.ToLower(p.ident())
		p.skipSpace()

		open := p.peek()
		if typ == "" || (open != '{' && open != '(') {
			continue
		}
		closer := byte('}')
		if open == '(' {
			closer = ')'
		}

		switch typ {
		case "comment", "preamble":
			p.skipBalanced()
			continue
		case "string":
			p.pos++
			p.fields(closer, func(name, value string) {
				p.macros[name] = value
			})
			continue
		}

		p.pos++
		e := Entry{Type: typ, Key: p.key(closer), Fields: make(map[string]string)}
		if p.peek() == ',' {
			p.pos++
			p.fields(closer, func(name, value string) {
				e.Fields[name] = value
			})
		} else if p.peek() == closer {
			p.pos++
		}
		entries = append(entries, e)
	}
	return entries
}

type bibParser struct {
	src    string
	pos    int
	macros map[string]string
}

func (p *bibParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *bibParser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func isIdentByte(c byte) bool {
	return strings.IndexByte(" \t\r\n\"#%'(),={}@", c) < 0
}

func (p *bibParser) ident() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

// key reads the citation key up to the first comma or the closing delimiter.
func (p *bibParser) key(closer byte) string {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ',' && p.src[p.pos] != closer {
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

// fields reads name = value pairs until the closing delimiter.
func (p *bibParser) fields(closer byte, set func(name, value string)) {
	for {
		p.skipSpace()
		c := p.peek()
		switch {
		case c == 0 || c == '@':
			return
		case c == closer:
			p.pos++
			return
		case c == ',':
			p.pos++
			continue
		}

		name := strings.ToLower(p.ident())
		if name == "" {
			p.pos++
			continue
		}
		p.skipSpace()
		if p.peek() != '=' {
			continue
		}
		p.pos++
		set(name, normalize.Sanitize(p.value()))
	}
}

// value reads a possibly #-concatenated value.
func (p *bibParser) value() string {
	var b strings.Builder
	for {
		p.skipSpace()
		switch p.peek() {
		case 0:
			return b.String()
		case '{':
			b.WriteString(p.delimited('{', '}'))
		case '"':
			b.WriteString(p.delimited('"', '"'))
		default:
			tok := p.ident()
			if tok == "" {
				return b.String()
			}
			if v, ok := p.macros[strings.ToLower(tok)]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(tok)
			}
		}
		p.skipSpace()
		if p.peek() != '#' {
			return b.String()
		}
		p.pos++
	}
}

// delimited returns the text between open and its matching close. Braces
// nest inside both forms, so a quote inside {...} does not end a quoted value.
// A backslash escapes nothing: "{C:\}" ends at the brace, as in BibTeX.
func (p *bibParser) delimited(open, closer byte) string {
	p.pos++ // opening delimiter
	start := p.pos
	depth := 0
	for ; p.pos < len(p.src); p.pos++ {
		switch c := p.src[p.pos]; {
		case c == closer && depth <= 0:
			s := p.src[start:p.pos]
			p.pos++
			return s
		case c == '{':
			depth++
		case c == '}':
			depth--
		}
	}
	return p.src[start:p.pos]
}

// skipBalanced skips a {...} or (...) block starting at the current position.
func (p *bibParser) skipBalanced() {
	open := p.peek()
	closer := byte('}')
	if open == '(' {
		closer = ')'
	}
	depth := 0
	for ; p.pos < len(p.src); p.pos++ {
		switch p.src[p.pos] {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				p.pos++
				return
			}
		}
	}
}

// BibTeXIndex indexes existing BibTeX entries for deduplication.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps DOI values to citation keys
	DOIs map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

// Add records an entry in the index.
func (idx *BibTeXIndex) Add(key, doi string) {
	if key != "" {
		idx.Keys[key] = true
	}
	if doi = normalizeDOI(doi); doi != "" {
		idx.DOIs[doi] = key
	}
}

// HasEntry returns true if the entry already exists (by DOI or key).
// DOI is the primary match; citation key is the fallback if no DOI.
func (idx *BibTeXIndex) HasEntry(key, doi string) bool {
	if doi != "" {
		if _, exists := idx.DOIs[normalizeDOI(doi)]; exists {
			return true
		}
	}
	return idx.Keys[key]
}

// KeyList returns every indexed citation key.
func (idx *BibTeXIndex) KeyList() []string {
	keys := make([]string, 0, len(idx.Keys))
	for k := range idx.Keys {
		keys = append(keys, k)
	}
	return keys
}

// ParseBibTeXFile builds an index from an existing .bib file.
// Returns an empty index if the file doesn't exist or is empty.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}

	for _, e := range Parse(string(data)) {
		idx.Add(e.Key, e.Field("doi"))
	}
	return idx, nil
}

// normalizeDOI normalizes a DOI for comparison.
// Removes common prefixes like "https://doi.org/" and lowercases.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}

// AppendToBibFile appends BibTeX content to a file.
func AppendToBibFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	// Ensure we start on a new line
	_, err = file.WriteString("\n" + content + "\n")
	return err
}
