// Package store holds the item collection and its per-item side state,
// writing every mutation through to a storage.KV.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/matsen/paperfeed/internal/identity"
	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/storage"
)

// Persisted keys. Each holds one JSON document.
const (
	KeyItems      = "pf_items_v1"
	KeyCategories = "pf_categories_v1"
	KeyAssign     = "pf_assign_v1"
	KeyNotes      = "pf_notes_v1"
	KeyRatings    = "pf_ratings_v1"
	KeyFavorites  = "pf_favs_v2"
	KeyPrefs      = "pf_prefs_v1"
	KeyUser       = "pf_user_v1"
	KeyLastVisit  = "pf_last_visit_ts"
	KeyTheme      = "pf_theme"
)

// AllKeys lists every persisted key, for moving state between backends.
var AllKeys = []string{
	KeyItems, KeyCategories, KeyAssign, KeyNotes, KeyRatings,
	KeyFavorites, KeyPrefs, KeyUser, KeyLastVisit, KeyTheme,
}

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Store is the explicit state object behind every command. It is not safe
// for concurrent use.
type Store struct {
	kv  storage.KV
	log *zap.Logger
	now func() time.Time

	items []reference.Item
	pos   map[string]int

	categories []reference.Category
	assign     map[string]string
	notes      map[string]string
	ratings    map[string]reference.Rating
	user       map[string]reference.UserState
	favorites  []reference.Favorite
	prefs      reference.Prefs
	lastVisit  int64
	theme      Theme
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for recoverable conditions.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.log = logger
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads every persisted key from kv. Corrupt values fall back to
// their defaults; only backend read failures are returned.
func Open(kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:  kv,
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.items = nil
	if err := s.loadJSON(KeyItems, &s.items); err != nil {
		return err
	}
	s.reindex()

	s.categories = nil
	if err := s.loadJSON(KeyCategories, &s.categories); err != nil {
		return err
	}
	s.categories = withUnsorted(s.categories)

	s.assign = map[string]string{}
	if err := s.loadJSON(KeyAssign, &s.assign); err != nil {
		return err
	}
	s.notes = map[string]string{}
	if err := s.loadJSON(KeyNotes, &s.notes); err != nil {
		return err
	}
	s.ratings = map[string]reference.Rating{}
	if err := s.loadJSON(KeyRatings, &s.ratings); err != nil {
		return err
	}
	s.user = map[string]reference.UserState{}
	if err := s.loadJSON(KeyUser, &s.user); err != nil {
		return err
	}
	s.favorites = nil
	if err := s.loadJSON(KeyFavorites, &s.favorites); err != nil {
		return err
	}

	// A persisted "null" decodes to a nil map.
	if s.assign == nil {
		s.assign = map[string]string{}
	}
	if s.notes == nil {
		s.notes = map[string]string{}
	}
	if s.ratings == nil {
		s.ratings = map[string]reference.Rating{}
	}
	if s.user == nil {
		s.user = map[string]reference.UserState{}
	}

	s.prefs = reference.DefaultPrefs()
	if err := s.loadJSON(KeyPrefs, &s.prefs); err != nil {
		return err
	}
	if s.prefs.Keywords == nil {
		s.prefs.Keywords = []string{}
	}

	s.lastVisit = 0
	if err := s.loadJSON(KeyLastVisit, &s.lastVisit); err != nil {
		return err
	}

	s.theme = ThemeAuto
	var theme string
	if err := s.loadJSON(KeyTheme, &theme); err != nil {
		return err
	}
	if t, err := ParseTheme(theme); err == nil && theme != "" {
		s.theme = t
	}
	return nil
}

// loadJSON decodes key into dst. A missing key leaves dst untouched; a
// corrupt value is logged and dst is reset to its zero value, which callers
// replace with the default.
func (s *Store) loadJSON(key string, dst any) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok || raw == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn("corrupt persisted state, using default",
			zap.String("key", key),
			zap.Error(err))
		resetJSON(dst)
	}
	return nil
}

func resetJSON(dst any) {
	switch v := dst.(type) {
	case *[]reference.Item:
		*v = nil
	case *[]reference.Category:
		*v = nil
	case *[]reference.Favorite:
		*v = nil
	case *map[string]string:
		*v = map[string]string{}
	case *map[string]reference.Rating:
		*v = map[string]reference.Rating{}
	case *map[string]reference.UserState:
		*v = map[string]reference.UserState{}
	case *reference.Prefs:
		*v = reference.DefaultPrefs()
	case *int64:
		*v = 0
	case *string:
		*v = ""
	}
}

func (s *Store) save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}

func (s *Store) saveAll(keys ...string) error {
	for _, key := range keys {
		var err error
		switch key {
		case KeyItems:
			err = s.save(key, s.itemList())
		case KeyCategories:
			err = s.save(key, s.categories)
		case KeyAssign:
			err = s.save(key, s.assign)
		case KeyNotes:
			err = s.save(key, s.notes)
		case KeyRatings:
			err = s.save(key, s.ratings)
		case KeyUser:
			err = s.save(key, s.user)
		case KeyFavorites:
			err = s.save(key, s.favoriteList())
		case KeyPrefs:
			err = s.save(key, s.prefs)
		case KeyLastVisit:
			err = s.save(key, s.lastVisit)
		case KeyTheme:
			err = s.save(key, string(s.theme))
		default:
			err = fmt.Errorf("unknown key %s", key)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) itemList() []reference.Item {
	if s.items == nil {
		return []reference.Item{}
	}
	return s.items
}

func (s *Store) reindex() {
	s.pos = make(map[string]int, len(s.items))
	for i, it := range s.items {
		s.pos[it.UID] = i
	}
}

func (s *Store) nowMillis() int64 {
	return s.now().UnixMilli()
}

// Items returns a copy of the collection in insertion order.
func (s *Store) Items() []reference.Item {
	out := make([]reference.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Item looks up an item by uid.
func (s *Store) Item(uid string) (reference.Item, bool) {
	i, ok := s.pos[uid]
	if !ok {
		return reference.Item{}, false
	}
	return s.items[i], true
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// ImportResult counts what an import did.
type ImportResult struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
}

// Upsert inserts or overwrites one item and persists.
// It reports whether the item was new.
func (s *Store) Upsert(it reference.Item) (bool, error) {
	added := s.merge(it)
	if err := s.saveAll(KeyItems, KeyAssign, KeyRatings); err != nil {
		return added, err
	}
	return added, nil
}

// Import merges a batch under the last-import-wins policy: a matching uid
// overwrites the stored fields in place and keeps all side state, a new uid
// is appended to Unsorted with a zero rating. The batch persists once.
func (s *Store) Import(items []reference.Item) (ImportResult, error) {
	var res ImportResult
	for _, it := range items {
		if s.merge(it) {
			res.Added++
		} else {
			res.Updated++
		}
	}
	if len(items) == 0 {
		return res, nil
	}
	if err := s.saveAll(KeyItems, KeyAssign, KeyRatings); err != nil {
		return res, err
	}
	s.log.Debug("imported items",
		zap.Int("added", res.Added),
		zap.Int("updated", res.Updated))
	return res, nil
}

func (s *Store) merge(it reference.Item) bool {
	if it.UID == "" {
		it.UID = identity.MakeUID(it)
	}
	if it.JournalKey == "" {
		it.JournalKey = reference.JournalElse
	}
	if it.Authors == nil {
		it.Authors = []string{}
	}

	if i, ok := s.pos[it.UID]; ok {
		s.items[i] = it
		return false
	}

	s.pos[it.UID] = len(s.items)
	s.items = append(s.items, it)
	if _, ok := s.category(s.assign[it.UID]); !ok {
		s.assign[it.UID] = reference.UnsortedID
	}
	if _, ok := s.ratings[it.UID]; !ok {
		s.ratings[it.UID] = reference.Rating{}
	}
	return true
}

// Clear removes every item and its category assignment. Notes, ratings,
// reading state and favorites are kept.
func (s *Store) Clear() error {
	s.items = nil
	s.reindex()
	s.assign = map[string]string{}
	return s.saveAll(KeyItems, KeyAssign)
}

// Reidentify recomputes every uid from the current fields and moves side
// state to the new uids. Items that now share a uid collapse into the first
// position with the later fields. It returns how many uids changed.
func (s *Store) Reidentify() (int, error) {
	var renames []uidRename
	rename := make(map[string]string)
	old := s.items
	s.items = nil
	s.pos = make(map[string]int, len(old))

	for _, it := range old {
		uid := identity.MakeUID(it)
		if uid != it.UID {
			renames = append(renames, uidRename{from: it.UID, to: uid})
			rename[it.UID] = uid
			it.UID = uid
		}
		if i, ok := s.pos[uid]; ok {
			s.items[i] = it
			continue
		}
		s.pos[uid] = len(s.items)
		s.items = append(s.items, it)
	}

	changed := len(renames)
	if changed == 0 {
		return 0, nil
	}

	moveKeys(s.assign, renames)
	moveKeys(s.notes, renames)
	moveKeys(s.ratings, renames)
	moveKeys(s.user, renames)
	seen := make(map[string]bool, len(s.favorites))
	favs := s.favorites[:0]
	for _, f := range s.favorites {
		if to, ok := rename[f.UID]; ok {
			f.UID = to
		}
		if seen[f.UID] {
			continue
		}
		seen[f.UID] = true
		favs = append(favs, f)
	}
	s.favorites = favs

	s.log.Info("reidentified items", zap.Int("changed", changed))
	if err := s.saveAll(KeyItems, KeyAssign, KeyNotes, KeyRatings, KeyUser, KeyFavorites); err != nil {
		return changed, err
	}
	return changed, nil
}

type uidRename struct {
	from, to string
}

// moveKeys applies renames to m in two passes: every source value is taken
// out first, then written to its target. A uid can therefore be both a
// source and a target. A target that kept its own uid keeps its value;
// otherwise the first rename in item order wins.
func moveKeys[V any](m map[string]V, renames []uidRename) {
	type pending struct {
		to string
		v  V
	}
	moved := make([]pending, 0, len(renames))
	for _, r := range renames {
		if v, ok := m[r.from]; ok {
			moved = append(moved, pending{to: r.to, v: v})
			delete(m, r.from)
		}
	}
	for _, p := range moved {
		if _, exists := m[p.to]; !exists {
			m[p.to] = p.v
		}
	}
}

func (s *Store) requireItem(uid string) error {
	if _, ok := s.pos[uid]; ok {
		return nil
	}
	if s.IsFavorite(uid) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownItem, uid)
}
