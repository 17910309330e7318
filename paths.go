package autotranslate

import (
	"strconv"
	"strings"
)

// Paths address one leaf in a nested document. Object keys join with "." and
// array indices append in bracket notation, e.g.
// "content[0].description.children[2].text". Dot-separated numeric segments
// ("content.0.title", the form stored in exclusion records) parse to the same
// address: SplitPath treats "." and "[i]" segments uniformly.

// ChildPath extends a path with an object key.
func ChildPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// IndexPath extends a path with an array index.
func IndexPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

// SplitPath breaks a path into its segments, accepting both bracket and dot
// notation for indices. Empty segments are dropped.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	segs := strings.FieldsFunc(path, func(r rune) bool {
		return r == '.' || r == '[' || r == ']'
	})
	return segs
}

// GetValue returns the value addressed by path, or (nil, false) when any
// segment is missing or of the wrong shape.
func GetValue(doc any, path string) (any, bool) {
	current := doc
	for _, seg := range SplitPath(path) {
		switch n := current.(type) {
		case map[string]any:
			v, ok := n[seg]
			if !ok {
				return nil, false
			}
			current = v
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return nil, false
			}
			current = n[i]
		default:
			return nil, false
		}
	}
	return current, true
}

// GetString returns the string at path, or "" when the path does not resolve
// to a string.
func GetString(doc any, path string) string {
	v, ok := GetValue(doc, path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// SetValue writes value at path, creating intermediate objects for missing
// map segments. Array segments must already exist; writing past the end of a
// sequence is a no-op rather than a grow.
func SetValue(doc map[string]any, path string, value any) {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return
	}
	var current any = doc
	for _, seg := range segs[:len(segs)-1] {
		switch n := current.(type) {
		case map[string]any:
			next, ok := n[seg]
			if !ok || next == nil {
				child := map[string]any{}
				n[seg] = child
				current = child
				continue
			}
			current = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return
			}
			current = n[i]
		default:
			return
		}
	}
	last := segs[len(segs)-1]
	switch n := current.(type) {
	case map[string]any:
		n[last] = value
	case []any:
		if i, err := strconv.Atoi(last); err == nil && i >= 0 && i < len(n) {
			n[i] = value
		}
	}
}

// DeleteValue removes the value at path. Deleting from a sequence nils the
// element out rather than shifting siblings, so sibling paths stay stable.
func DeleteValue(doc map[string]any, path string) {
	segs := SplitPath(path)
	if len(segs) == 0 {
		return
	}
	var current any = doc
	for _, seg := range segs[:len(segs)-1] {
		switch n := current.(type) {
		case map[string]any:
			next, ok := n[seg]
			if !ok {
				return
			}
			current = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(n) {
				return
			}
			current = n[i]
		default:
			return
		}
	}
	last := segs[len(segs)-1]
	switch n := current.(type) {
	case map[string]any:
		delete(n, last)
	case []any:
		if i, err := strconv.Atoi(last); err == nil && i >= 0 && i < len(n) {
			n[i] = nil
		}
	}
}
