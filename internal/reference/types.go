package reference

import "strings"

// Type classifies the publication state of an item.
type Type string

const (
	TypeArticle  Type = "article"
	TypePreprint Type = "preprint"
	TypeAccepted Type = "accepted"
	TypeMisc     Type = "misc"
)

// ParseType maps a declared entry type onto the closed Type set.
// Unrecognized declarations become TypeMisc.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "article", "published":
		return TypeArticle
	case "preprint", "unpublished":
		return TypePreprint
	case "accepted":
		return TypeAccepted
	default:
		return TypeMisc
	}
}

// Valid reports whether t is one of the known types.
func (t Type) Valid() bool {
	switch t {
	case TypeArticle, TypePreprint, TypeAccepted, TypeMisc:
		return true
	}
	return false
}

// Label is the human-facing name of the type.
func (t Type) Label() string {
	switch t {
	case TypeAccepted:
		return "Accepted"
	case TypePreprint:
		return "Preprint"
	case TypeMisc:
		return "Misc"
	default:
		return "Published"
	}
}

// JournalKey is the short canonical code of a publication venue.
type JournalKey string

const (
	// JournalArXiv marks records that only exist as arXiv preprints.
	JournalArXiv JournalKey = "arXiv"
	// JournalElse is the catch-all for venues missing from the lookup table.
	JournalElse JournalKey = "Else"
)

// Known reports whether k names a venue from the lookup table.
func (k JournalKey) Known() bool {
	return k != "" && k != JournalElse
}

// Status is the user's reading status of an item.
type Status string

const (
	StatusNone    Status = ""
	StatusTodo    Status = "todo"
	StatusReading Status = "reading"
	StatusDone    Status = "done"
)

// ParseStatus validates a reading status string.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusNone:
		return StatusNone, true
	case StatusTodo:
		return StatusTodo, true
	case StatusReading:
		return StatusReading, true
	case StatusDone:
		return StatusDone, true
	}
	return StatusNone, false
}
