package store

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/matsen/paperfeed/internal/reference"
)

// ErrInvalidRating is returned for ratings outside 0..5 or off the 0.5 grid.
var ErrInvalidRating = errors.New("rating must be between 0 and 5 in steps of 0.5")

// Auto rating earns half a star per runesPerHalfStar runes of note.
const (
	runesPerHalfStar = 40
	maxRating        = 5.0
)

// AutoRating derives the note-length score.
func AutoRating(note string) float64 {
	n := utf8.RuneCountInString(strings.TrimSpace(note))
	return math.Min(float64(n/runesPerHalfStar)*0.5, maxRating)
}

// ValidRating reports whether v lies on the 0..5 half-step grid.
func ValidRating(v float64) bool {
	return v >= 0 && v <= maxRating && math.Mod(v*2, 1) == 0
}

// Note returns the note on an item, or "".
func (s *Store) Note(uid string) string {
	return s.notes[uid]
}

// SetNote stores a note, recomputes the auto rating and touches the
// item's reading state. A blank note removes it.
func (s *Store) SetNote(uid, text string) error {
	if err := s.requireItem(uid); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		delete(s.notes, uid)
	} else {
		s.notes[uid] = text
	}

	r := s.ratings[uid]
	r.Auto = AutoRating(text)
	s.ratings[uid] = r

	st := s.user[uid]
	st.UpdatedAt = s.nowMillis()
	s.user[uid] = st

	return s.saveAll(KeyNotes, KeyRatings, KeyUser)
}

// Rating returns the item's rating; unrated items score zero.
func (s *Store) Rating(uid string) reference.Rating {
	return s.ratings[uid]
}

// SetManualRating sets the user's own score.
func (s *Store) SetManualRating(uid string, v float64) error {
	if err := s.requireItem(uid); err != nil {
		return err
	}
	if !ValidRating(v) {
		return fmt.Errorf("%w: %v", ErrInvalidRating, v)
	}
	r := s.ratings[uid]
	r.Manual = v
	s.ratings[uid] = r
	return s.saveAll(KeyRatings)
}

// Status returns the reading state of an item.
func (s *Store) Status(uid string) reference.UserState {
	return s.user[uid]
}

// SetStatus records a reading status and stamps the update time.
func (s *Store) SetStatus(uid string, status reference.Status) error {
	if err := s.requireItem(uid); err != nil {
		return err
	}
	if _, ok := reference.ParseStatus(string(status)); !ok {
		return fmt.Errorf("invalid status %q: want todo, reading, done or empty", status)
	}
	s.user[uid] = reference.UserState{Status: status, UpdatedAt: s.nowMillis()}
	return s.saveAll(KeyUser)
}

// Touched is a uid with its reading state.
type Touched struct {
	UID string `json:"uid"`
	reference.UserState
}

// UpdatedSince lists items touched at or after since, most recent first.
func (s *Store) UpdatedSince(since time.Time) []Touched {
	ts := since.UnixMilli()
	var out []Touched
	for uid, st := range s.user {
		if st.UpdatedAt >= ts {
			out = append(out, Touched{UID: uid, UserState: st})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].UID < out[j].UID
	})
	return out
}
