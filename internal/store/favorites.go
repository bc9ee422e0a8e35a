package store

import (
	"fmt"

	"github.com/matsen/paperfeed/internal/reference"
)

func (s *Store) favoriteList() []reference.Favorite {
	if s.favorites == nil {
		return []reference.Favorite{}
	}
	return s.favorites
}

// Favorites returns the favorite snapshots in the order they were added.
func (s *Store) Favorites() []reference.Favorite {
	out := make([]reference.Favorite, len(s.favorites))
	copy(out, s.favorites)
	return out
}

// IsFavorite reports whether uid is a favorite.
func (s *Store) IsFavorite(uid string) bool {
	return s.favoriteIndex(uid) >= 0
}

func (s *Store) favoriteIndex(uid string) int {
	for i, f := range s.favorites {
		if f.UID == uid {
			return i
		}
	}
	return -1
}

// AddFavorite snapshots an item into the favorites. Adding an existing
// favorite is a no-op reported as false.
func (s *Store) AddFavorite(uid string) (bool, error) {
	if s.IsFavorite(uid) {
		return false, nil
	}
	it, ok := s.Item(uid)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownItem, uid)
	}
	s.favorites = append(s.favorites, reference.Minify(it))
	if err := s.saveAll(KeyFavorites); err != nil {
		return true, err
	}
	return true, nil
}

// RemoveFavorite drops a favorite, reporting whether it existed.
func (s *Store) RemoveFavorite(uid string) (bool, error) {
	i := s.favoriteIndex(uid)
	if i < 0 {
		return false, nil
	}
	s.favorites = append(s.favorites[:i], s.favorites[i+1:]...)
	if err := s.saveAll(KeyFavorites); err != nil {
		return true, err
	}
	return true, nil
}

// ToggleFavorite flips the favorite state and returns the new state.
func (s *Store) ToggleFavorite(uid string) (bool, error) {
	if s.IsFavorite(uid) {
		_, err := s.RemoveFavorite(uid)
		return false, err
	}
	_, err := s.AddFavorite(uid)
	return err == nil, err
}

// ClearFavorites removes every favorite.
func (s *Store) ClearFavorites() error {
	s.favorites = nil
	return s.saveAll(KeyFavorites)
}
