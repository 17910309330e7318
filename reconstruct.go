package autotranslate

import (
	"regexp"
	"strings"
)

var placeholderTokenPattern = regexp.MustCompile(`__TRANSLATE_(.+?)__`)

// Reconstruct rebuilds a full document from the metadata skeleton, the
// provider's path -> translated-string map, and the deduplication index.
// Translations keyed by a canonical path fan out to every path that shared
// the same source value; placeholder tokens with no translation are left as
// the literal token, a detectable failure signal rather than a guess.
func Reconstruct(metadata any, translations map[string]string, index map[string][]string) any {
	full := expandTranslations(translations, index)
	return rebuild(metadata, full)
}

// expandTranslations covers every deduplicated path: if path P was the one
// sent for translation and P2, P3 shared its original value, all three map to
// the same translated string. Direct entries win over expansion so disabling
// deduplication keeps per-path translations intact.
func expandTranslations(translations map[string]string, index map[string][]string) map[string]string {
	full := make(map[string]string, len(translations))
	for canonical, translated := range translations {
		for _, paths := range index {
			if !containsPath(paths, canonical) {
				continue
			}
			for _, p := range paths {
				full[p] = translated
			}
			break
		}
	}
	for path, translated := range translations {
		full[path] = translated
	}
	return full
}

func rebuild(node any, translations map[string]string) any {
	switch n := node.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(n))
		for i, item := range n {
			out[i] = rebuild(item, translations)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(n))
		for key, value := range n {
			out[key] = rebuild(value, translations)
		}
		return out
	case string:
		return replacePlaceholders(n, translations)
	default:
		return node
	}
}

// replacePlaceholders resolves placeholder tokens in s. A string that is
// exactly one token takes the fast path; strings with embedded tokens (HTML
// skeletons) are scanned. Unresolved tokens stay literal.
func replacePlaceholders(s string, translations map[string]string) string {
	if path, ok := placeholderPath(s); ok {
		if translated, found := translations[path]; found {
			return translated
		}
		return s
	}
	if !strings.Contains(s, placeholderPrefix) {
		return s
	}
	return placeholderTokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		path := token[len(placeholderPrefix) : len(token)-len(placeholderSuffix)]
		if translated, found := translations[path]; found {
			return translated
		}
		return token
	})
}

func containsPath(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
