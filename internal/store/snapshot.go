package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/matsen/paperfeed/internal/reference"
)

// Snapshot is the full JSON dump of the collection and its side state.
type Snapshot struct {
	Items      []reference.Item               `json:"items"`
	Categories []reference.Category           `json:"categories"`
	Assign     map[string]string              `json:"assign"`
	Notes      map[string]string              `json:"notes"`
	Ratings    map[string]reference.Rating    `json:"ratings"`
	Favorites  []reference.Favorite           `json:"favorites,omitempty"`
	User       map[string]reference.UserState `json:"user,omitempty"`
	ExportedAt string                         `json:"exportedAt"`
}

// requiredSnapshotKeys must be present (and non-null) for a restore.
var requiredSnapshotKeys = []string{"items", "categories", "assign"}

// Snapshot captures the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Items:      s.Items(),
		Categories: s.Categories(),
		Assign:     copyMap(s.assign),
		Notes:      copyMap(s.notes),
		Ratings:    copyMap(s.ratings),
		Favorites:  s.Favorites(),
		User:       copyMap(s.user),
		ExportedAt: s.now().UTC().Format(time.RFC3339),
	}
}

// MarshalSnapshot renders the snapshot as indented JSON.
func (s *Store) MarshalSnapshot() ([]byte, error) {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// RestoreSnapshot replaces the state with a snapshot. Input without items,
// categories and assign, or with items lacking a uid, fails with
// ErrInvalidSnapshot and leaves the state untouched. Favorites and reading
// state are only replaced when the snapshot carries them.
func (s *Store) RestoreSnapshot(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	for _, key := range requiredSnapshotKeys {
		raw, ok := top[key]
		if !ok || string(raw) == "null" {
			return fmt.Errorf("%w: missing %q", ErrInvalidSnapshot, key)
		}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	seen := make(map[string]bool, len(snap.Items))
	for i, it := range snap.Items {
		if it.UID == "" {
			return fmt.Errorf("%w: item %d has no uid", ErrInvalidSnapshot, i)
		}
		if seen[it.UID] {
			return fmt.Errorf("%w: duplicate uid %s", ErrInvalidSnapshot, it.UID)
		}
		seen[it.UID] = true
	}

	prev := s.capture()
	s.items = snap.Items
	for i := range s.items {
		if s.items[i].JournalKey == "" {
			s.items[i].JournalKey = reference.JournalElse
		}
		if s.items[i].Authors == nil {
			s.items[i].Authors = []string{}
		}
	}
	s.reindex()
	s.categories = withUnsorted(snap.Categories)
	s.assign = orEmpty(snap.Assign)
	s.notes = orEmpty(snap.Notes)
	s.ratings = orEmpty(snap.Ratings)
	keys := []string{KeyItems, KeyCategories, KeyAssign, KeyNotes, KeyRatings}
	if _, ok := top["favorites"]; ok {
		s.favorites = snap.Favorites
		keys = append(keys, KeyFavorites)
	}
	if _, ok := top["user"]; ok {
		s.user = orEmpty(snap.User)
		keys = append(keys, KeyUser)
	}

	if err := s.saveAll(keys...); err != nil {
		s.rollback(prev, keys)
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	s.log.Info("restored snapshot")
	return nil
}

// stateCopy holds the parts of a Store a restore replaces.
type stateCopy struct {
	items      []reference.Item
	categories []reference.Category
	assign     map[string]string
	notes      map[string]string
	ratings    map[string]reference.Rating
	user       map[string]reference.UserState
	favorites  []reference.Favorite
}

func (s *Store) capture() stateCopy {
	return stateCopy{
		items:      s.items,
		categories: s.categories,
		assign:     s.assign,
		notes:      s.notes,
		ratings:    s.ratings,
		user:       s.user,
		favorites:  s.favorites,
	}
}

// rollback puts prev back in memory and rewrites keys so the backend
// matches it again. A failing rewrite is logged; memory is still restored.
func (s *Store) rollback(prev stateCopy, keys []string) {
	s.items = prev.items
	s.reindex()
	s.categories = prev.categories
	s.assign = prev.assign
	s.notes = prev.notes
	s.ratings = prev.ratings
	s.user = prev.user
	s.favorites = prev.favorites
	if err := s.saveAll(keys...); err != nil {
		s.log.Warn("rolling back snapshot restore", zap.Error(err))
	}
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func orEmpty[V any](m map[string]V) map[string]V {
	if m == nil {
		return map[string]V{}
	}
	return m
}
