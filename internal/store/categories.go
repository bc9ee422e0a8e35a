package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/matsen/paperfeed/internal/reference"
)

// ErrUnsortedCategory is returned when deleting the Unsorted category.
var ErrUnsortedCategory = errors.New("the Unsorted category cannot be deleted")

// withUnsorted guarantees the Unsorted category exists, first in the list,
// and drops entries without an id.
func withUnsorted(cats []reference.Category) []reference.Category {
	out := []reference.Category{reference.Unsorted()}
	for _, c := range cats {
		switch c.ID {
		case "":
			continue
		case reference.UnsortedID:
			if c.Name != "" {
				out[0].Name = c.Name
			}
			if c.Color != "" {
				out[0].Color = c.Color
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) category(id string) (int, bool) {
	if id == "" {
		return -1, false
	}
	for i, c := range s.categories {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Categories returns every category, Unsorted first.
func (s *Store) Categories() []reference.Category {
	out := make([]reference.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// FindCategory resolves a category by id or, failing that, by
// case-insensitive name.
func (s *Store) FindCategory(idOrName string) (reference.Category, bool) {
	if i, ok := s.category(idOrName); ok {
		return s.categories[i], true
	}
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(idOrName)) {
			return c, true
		}
	}
	return reference.Category{}, false
}

// AddCategory creates a category with a fresh uuid.
func (s *Store) AddCategory(name, color string) (reference.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return reference.Category{}, fmt.Errorf("category name is required")
	}
	c := reference.Category{ID: uuid.NewString(), Name: name, Color: strings.TrimSpace(color)}
	s.categories = append(s.categories, c)
	if err := s.saveAll(KeyCategories); err != nil {
		return c, err
	}
	return c, nil
}

// RenameCategory changes a category's display name.
func (s *Store) RenameCategory(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	i, ok := s.category(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, id)
	}
	s.categories[i].Name = name
	return s.saveAll(KeyCategories)
}

// DeleteCategory removes a category; its items fall back to Unsorted.
// It returns how many assignments were removed.
func (s *Store) DeleteCategory(id string) (int, error) {
	if id == reference.UnsortedID {
		return 0, ErrUnsortedCategory
	}
	i, ok := s.category(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownCategory, id)
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)

	removed := 0
	for uid, cid := range s.assign {
		if cid == id {
			delete(s.assign, uid)
			removed++
		}
	}
	if err := s.saveAll(KeyCategories, KeyAssign); err != nil {
		return removed, err
	}
	return removed, nil
}

// Assign moves an item into a category.
func (s *Store) Assign(uid, categoryID string) error {
	if _, ok := s.pos[uid]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, uid)
	}
	if _, ok := s.category(categoryID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, categoryID)
	}
	s.assign[uid] = categoryID
	return s.saveAll(KeyAssign)
}

// CategoryOf returns the category id of an item, Unsorted when the item has
// no assignment or points at a deleted category.
func (s *Store) CategoryOf(uid string) string {
	id := s.assign[uid]
	if _, ok := s.category(id); !ok {
		return reference.UnsortedID
	}
	return id
}
