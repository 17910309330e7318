// Package cache provides translation caching implementations. Keys are built
// by the root package from the source-text hash and the locale pair, so a
// string repeated across documents is translated once per locale pair.
package cache

// TranslationCache is the interface for translation caching.
type TranslationCache interface {
	// Get retrieves a cached translation. Returns false if not found or
	// expired.
	Get(key string) (string, bool)

	// Set stores a translation in the cache.
	Set(key string, value string) error
}
