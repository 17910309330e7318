package autotranslate

import (
	"strconv"
	"strings"
)

// internalFields are bookkeeping keys the merge never copies between locales.
var internalFields = map[string]bool{
	"id":              true,
	"_id":             true,
	"createdAt":       true,
	"updatedAt":       true,
	"translationSync": true,
	"__v":             true,
}

// IsPathExcluded reports whether path matches any entry in excludedPaths:
// an exact match, a child of an excluded path, or a segment-wise match where
// differing numeric segments on both sides count as equal. The index-agnostic
// rule means excluding "content.0.title" also covers "content.3.title".
func IsPathExcluded(path string, excludedPaths []string) bool {
	for _, excluded := range excludedPaths {
		if pathMatchesExclusion(path, excluded) {
			return true
		}
	}
	return false
}

func pathMatchesExclusion(path, excluded string) bool {
	if path == excluded {
		return true
	}
	if strings.HasPrefix(path, excluded+".") {
		return true
	}

	pathParts := SplitPath(path)
	excludedParts := SplitPath(excluded)
	if len(excludedParts) > len(pathParts) {
		return false
	}
	for i := range excludedParts {
		if excludedParts[i] == pathParts[i] {
			continue
		}
		if isNumeric(excludedParts[i]) && isNumeric(pathParts[i]) {
			continue
		}
		return false
	}
	return true
}

func isNumeric(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// FilterExcludedPaths returns a deep copy of data with every subtree rooted
// at an excluded path removed. The translation pipeline only ever sees the
// filtered copy, so excluded values can never leak into a provider prompt.
func FilterExcludedPaths(data map[string]any, excludedPaths []string) map[string]any {
	if data == nil || len(excludedPaths) == 0 {
		return data
	}
	filtered, _ := DeepCopy(data).(map[string]any)
	if filtered == nil {
		return data
	}
	for _, excluded := range excludedPaths {
		deleteMatching(filtered, excluded, "")
	}
	return filtered
}

// deleteMatching removes every node whose path matches excluded, applying the
// same index-agnostic rule as IsPathExcluded so numeric segments in the
// exclusion fan out over all sibling indices.
func deleteMatching(node any, excluded, prefix string) {
	switch n := node.(type) {
	case map[string]any:
		for key := range n {
			p := ChildPath(prefix, key)
			if pathMatchesExclusionExactly(p, excluded) {
				delete(n, key)
				continue
			}
			deleteMatching(n[key], excluded, p)
		}
	case []any:
		for i := range n {
			p := ChildPath(prefix, strconv.Itoa(i))
			if pathMatchesExclusionExactly(p, excluded) {
				n[i] = nil
				continue
			}
			deleteMatching(n[i], excluded, p)
		}
	}
}

// pathMatchesExclusionExactly matches whole paths segment-for-segment with
// numeric wildcarding, without the child-prefix rule (children are removed
// with their root).
func pathMatchesExclusionExactly(path, excluded string) bool {
	pathParts := SplitPath(path)
	excludedParts := SplitPath(excluded)
	if len(pathParts) != len(excludedParts) {
		return false
	}
	for i := range excludedParts {
		if excludedParts[i] == pathParts[i] {
			continue
		}
		if isNumeric(excludedParts[i]) && isNumeric(pathParts[i]) {
			continue
		}
		return false
	}
	return true
}

// MergeTranslatedData overlays translated onto a deep copy of original,
// leaving excluded paths and internal fields at their original values.
// original is the existing target-locale document; when it has no value for a
// non-excluded field the translated value is written as-is. Arrays are
// assigned wholesale: a translated array replaces the original one.
func MergeTranslatedData(original, translated map[string]any, excludedPaths []string) map[string]any {
	if translated == nil {
		return original
	}
	merged, _ := DeepCopy(original).(map[string]any)
	if merged == nil {
		merged = make(map[string]any)
	}
	mergeInto(merged, translated, "", excludedPaths)
	return merged
}

func mergeInto(target, source map[string]any, prefix string, excludedPaths []string) {
	for key, value := range source {
		fullPath := ChildPath(prefix, key)
		if IsPathExcluded(fullPath, excludedPaths) {
			continue
		}
		if internalFields[key] {
			continue
		}
		if child, ok := value.(map[string]any); ok {
			targetChild, ok := target[key].(map[string]any)
			if !ok {
				targetChild = make(map[string]any)
				target[key] = targetChild
			}
			mergeInto(targetChild, child, fullPath, excludedPaths)
			continue
		}
		target[key] = DeepCopy(value)
	}
}

// DeepCopy clones a decoded JSON value. Scalars are returned as-is.
func DeepCopy(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, val := range n {
			out[k] = DeepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, val := range n {
			out[i] = DeepCopy(val)
		}
		return out
	default:
		return v
	}
}
