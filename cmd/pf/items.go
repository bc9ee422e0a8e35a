package main

import (
	"strings"

	"github.com/matsen/paperfeed/internal/config"
	"github.com/matsen/paperfeed/internal/identity"
	"github.com/matsen/paperfeed/internal/normalize"
	"github.com/matsen/paperfeed/internal/query"
	"github.com/matsen/paperfeed/internal/reference"
	"github.com/matsen/paperfeed/internal/store"
)

// resolveUID maps a uid, DOI, DOI URL, arXiv id or arXiv URL to the uid
// stored in s. Unknown input is returned unchanged with ok false.
func resolveUID(s *store.Store, arg string) (string, bool) {
	arg = strings.TrimSpace(arg)
	known := func(uid string) bool {
		if _, ok := s.Item(uid); ok {
			return true
		}
		return s.IsFavorite(uid)
	}

	if known(arg) {
		return arg, true
	}
	if doi := normalize.DOI(arg); doi != "" {
		if uid := identity.DOIPrefix + strings.ToLower(doi); known(uid) {
			return uid, true
		}
	}
	if id := normalize.ArxivID(arg); id != "" {
		if uid := identity.ArXivPrefix + strings.ToLower(id); known(uid) {
			return uid, true
		}
	}
	return arg, false
}

// mustResolveUID resolves arg or exits with a data error.
func mustResolveUID(s *store.Store, arg string) string {
	uid, ok := resolveUID(s, arg)
	if !ok {
		exitWithError(ExitDataError, "%v: %s", store.ErrUnknownItem, arg)
	}
	return uid
}

// activeKeywords returns the stored keyword list, else the global seed list.
func activeKeywords(s *store.Store) []string {
	if kw := s.Prefs().Keywords; len(kw) > 0 {
		return kw
	}
	return query.NormalizeKeywords(config.GetKeywords())
}

// highlightKeywords returns the keywords to highlight in titles, or nil
// when highlighting is switched off.
func highlightKeywords(s *store.Store) []string {
	if !s.Prefs().Highlight {
		return nil
	}
	return activeKeywords(s)
}

// viewOf joins an item with its side state.
func viewOf(s *store.Store, it reference.Item, keywords []string) ItemView {
	return ItemView{
		Item:     it,
		Category: s.CategoryOf(it.UID),
		Note:     s.Note(it.UID),
		Rating:   s.Rating(it.UID),
		Status:   s.Status(it.UID).Status,
		Favorite: s.IsFavorite(it.UID),
		Hits:     query.Hits(it, keywords),
	}
}

func viewsOf(s *store.Store, items []reference.Item, keywords []string) []ItemView {
	views := make([]ItemView, len(items))
	for i, it := range items {
		views[i] = viewOf(s, it, keywords)
	}
	return views
}

// lookupItem returns a stored item or, for a favorite whose item is gone,
// the favorite's snapshot.
func lookupItem(s *store.Store, uid string) (reference.Item, bool) {
	if it, ok := s.Item(uid); ok {
		return it, true
	}
	for _, f := range s.Favorites() {
		if f.UID == uid {
			return f.Item(), true
		}
	}
	return reference.Item{}, false
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
