// Package store persists translation exclusions: the per (collection,
// document, locale) lists of field paths that auto-translation must never
// overwrite. Each locale keeps its own independent list. At most one record
// exists per triple; writes go through a find-before-write upsert.
package store

import "context"

// ExclusionStore persists excluded field paths per document and locale.
type ExclusionStore interface {
	// ExcludedPaths returns the ordered path list for the triple, or an
	// empty list when no record exists.
	ExcludedPaths(ctx context.Context, collection, documentID, locale string) ([]string, error)

	// SetExcludedPaths upserts the full path list for the triple.
	SetExcludedPaths(ctx context.Context, collection, documentID, locale string, paths []string) error

	// DeleteForDocument removes the records for every locale of a document.
	// Intended as a cascade hook on document deletion; nothing in the sync
	// pipeline calls it.
	DeleteForDocument(ctx context.Context, collection, documentID string) error
}

// Toggle adds or removes a single path in the triple's list using
// read-modify-write, and returns the resulting list. Concurrent toggles on
// the same triple from different requests can race; the persistence layer's
// per-record write serialization is the only protection.
func Toggle(ctx context.Context, s ExclusionStore, collection, documentID, locale, path string, excluded bool) ([]string, error) {
	paths, err := s.ExcludedPaths(ctx, collection, documentID, locale)
	if err != nil {
		return nil, err
	}

	if excluded {
		if !containsPath(paths, path) {
			paths = append(paths, path)
		}
	} else {
		filtered := paths[:0]
		for _, p := range paths {
			if p != path {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	if err := s.SetExcludedPaths(ctx, collection, documentID, locale, paths); err != nil {
		return nil, err
	}
	return paths, nil
}

// Status reports whether path is excluded for the triple, along with the full
// current list.
func Status(ctx context.Context, s ExclusionStore, collection, documentID, locale, path string) (bool, []string, error) {
	paths, err := s.ExcludedPaths(ctx, collection, documentID, locale)
	if err != nil {
		return false, nil, err
	}
	return containsPath(paths, path), paths, nil
}

func containsPath(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
