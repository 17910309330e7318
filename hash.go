package autotranslate

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashText computes the SHA-256 hash of the trimmed text.
func HashText(text string) string {
	trimmed := strings.TrimSpace(text)
	hash := sha256.Sum256([]byte(trimmed))
	return hex.EncodeToString(hash[:])
}

// CacheKey generates a translation cache key from a text hash and a locale
// pair. Identical source strings translated between the same locales share
// one cache entry regardless of which document they came from.
func CacheKey(hash, fromLocale, toLocale string) string {
	return hash + ":" + fromLocale + ":" + toLocale
}

// CacheKeyForModel generates an extended cache key that also differentiates
// translations by model identifier.
func CacheKeyForModel(hash, fromLocale, toLocale, model string) string {
	return hash + ":" + fromLocale + ":" + toLocale + ":" + model
}
