package autotranslate

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/pigmentab/auto-translate/htmltext"
)

const (
	placeholderPrefix = "__TRANSLATE_"
	placeholderSuffix = "__"
)

// PlaceholderFor returns the placeholder token standing in for the extracted
// leaf at path during the translate round-trip.
func PlaceholderFor(path string) string {
	return placeholderPrefix + path + placeholderSuffix
}

// placeholderPath parses a full-string placeholder token back into its path.
func placeholderPath(s string) (string, bool) {
	if !strings.HasPrefix(s, placeholderPrefix) || !strings.HasSuffix(s, placeholderSuffix) {
		return "", false
	}
	return s[len(placeholderPrefix) : len(s)-len(placeholderSuffix)], true
}

// StringMap is an insertion-ordered path -> source-string map. Order follows
// the depth-first pre-order traversal of the document, and JSON marshaling
// preserves it so the provider payload is deterministic.
type StringMap struct {
	paths  []string
	values map[string]string
}

// NewStringMap returns an empty StringMap.
func NewStringMap() *StringMap {
	return &StringMap{values: make(map[string]string)}
}

// Set records value under path. First write wins the position; re-setting an
// existing path only updates the value.
func (m *StringMap) Set(path, value string) {
	if _, ok := m.values[path]; !ok {
		m.paths = append(m.paths, path)
	}
	m.values[path] = value
}

// Get returns the value stored under path.
func (m *StringMap) Get(path string) (string, bool) {
	v, ok := m.values[path]
	return v, ok
}

// Len returns the number of entries.
func (m *StringMap) Len() int {
	return len(m.paths)
}

// Paths returns the paths in insertion order.
func (m *StringMap) Paths() []string {
	return m.paths
}

// Each calls fn for every entry in insertion order.
func (m *StringMap) Each(fn func(path, value string)) {
	for _, p := range m.paths {
		fn(p, m.values[p])
	}
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m *StringMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m.paths {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[p])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Extraction is the result of walking a document: the placeholder-substituted
// skeleton, the unique strings needing translation, and the index linking
// each distinct (trimmed) value back to every path that produced it.
type Extraction struct {
	// Metadata is the structural copy of the document with every extracted
	// leaf replaced by its placeholder token.
	Metadata any

	// Strings maps the first-seen path of each unique value to the original
	// string, in traversal order.
	Strings *StringMap

	// Index maps each trimmed value to the ordered list of all paths that
	// produced it.
	Index map[string][]string
}

// Extractor walks a document and pulls out its translatable leaf strings.
type Extractor struct {
	// Skip decides which leaf strings are structural data.
	Skip SkipPolicy

	// Deduplicate collapses repeated values to one provider payload entry.
	// Defaults to on via NewExtractor.
	Deduplicate bool

	// DetectRichText overrides the rich-text node heuristic. Nil means
	// IsRichTextNode.
	DetectRichText RichTextDetector

	// HTMLPaths lists leaf paths whose string values are HTML fragments;
	// only their text nodes are extracted, markup is preserved. Matching is
	// index-agnostic, same as exclusion paths.
	HTMLPaths []string
}

// NewExtractor returns an Extractor with deduplication enabled.
func NewExtractor() *Extractor {
	return &Extractor{Deduplicate: true}
}

// Extract walks data depth-first in pre-order and returns the skeleton, the
// unique-string map, and the deduplication index. prefix seeds the path of
// the root node and is normally "".
func (e *Extractor) Extract(data any, prefix string) *Extraction {
	ex := &Extraction{
		Strings: NewStringMap(),
		Index:   make(map[string][]string),
	}
	ex.Metadata = e.walk(data, prefix, ex)
	return ex
}

func (e *Extractor) walk(node any, path string, ex *Extraction) any {
	switch classify(node, e.DetectRichText) {
	case KindNull:
		return node

	case KindRichText:
		return e.walkRichText(node.(map[string]any), path, ex)

	case KindSequence:
		seq := node.([]any)
		out := make([]any, len(seq))
		for i, item := range seq {
			out[i] = e.walk(item, IndexPath(path, i), ex)
		}
		return out

	case KindMapping:
		obj := node.(map[string]any)
		out := make(map[string]any, len(obj))
		for _, key := range sortedKeys(obj) {
			out[key] = e.walk(obj[key], ChildPath(path, key), ex)
		}
		return out

	case KindString:
		return e.walkString(node.(string), path, ex)

	default:
		// Numbers, bools and anything opaque pass through unchanged.
		return node
	}
}

// walkRichText transforms a rich-text node, descending into children in
// order and extracting only text-bearing leaves. Node metadata (type,
// version, formatting attributes) is copied through untouched.
func (e *Extractor) walkRichText(node map[string]any, path string, ex *Extraction) any {
	if text, ok := richTextLeaf(node); ok {
		textPath := ChildPath(path, "text")
		if strings.TrimSpace(text) == "" || e.Skip.ShouldSkip(text, textPath) {
			return node
		}
		out := make(map[string]any, len(node))
		for k, v := range node {
			out[k] = v
		}
		out["text"] = e.register(text, textPath, ex)
		return out
	}

	children, ok := node["children"].([]any)
	if !ok {
		return node
	}
	out := make(map[string]any, len(node))
	for k, v := range node {
		out[k] = v
	}
	walked := make([]any, len(children))
	childBase := ChildPath(path, "children")
	for i, child := range children {
		walked[i] = e.walk(child, IndexPath(childBase, i), ex)
	}
	out["children"] = walked
	return out
}

func (e *Extractor) walkString(s, path string, ex *Extraction) any {
	if strings.TrimSpace(s) == "" || e.Skip.ShouldSkip(s, path) {
		return s
	}
	if e.isHTMLPath(path) {
		if skeleton, ok := e.extractHTML(s, path, ex); ok {
			return skeleton
		}
	}
	return e.register(s, path, ex)
}

// register records a translatable string and returns its placeholder token.
// With deduplication on, a value seen before only links its new path into the
// index; the string itself is payloaded once under its first-seen path.
func (e *Extractor) register(value, path string, ex *Extraction) string {
	trimmed := strings.TrimSpace(value)
	if e.Deduplicate {
		if paths, seen := ex.Index[trimmed]; seen {
			ex.Index[trimmed] = append(paths, path)
			return PlaceholderFor(path)
		}
		ex.Strings.Set(path, value)
		ex.Index[trimmed] = []string{path}
		return PlaceholderFor(path)
	}
	ex.Strings.Set(path, value)
	ex.Index[trimmed] = append(ex.Index[trimmed], path)
	return PlaceholderFor(path)
}

func (e *Extractor) isHTMLPath(path string) bool {
	return len(e.HTMLPaths) > 0 && IsPathExcluded(path, e.HTMLPaths)
}

// sortedKeys gives the walk a stable key order; Go maps do not preserve
// insertion order, so lexical order stands in for it.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// extractHTML pulls the text nodes out of an HTML-valued leaf, registering
// each as its own translatable string under path._html[i] and returning the
// markup skeleton with embedded placeholder tokens.
func (e *Extractor) extractHTML(fragment, path string, ex *Extraction) (string, bool) {
	if !strings.Contains(fragment, "<") {
		return "", false
	}
	i := 0
	skeleton, err := htmltext.Extract(fragment, func(text string) (string, bool) {
		textPath := IndexPath(ChildPath(path, "_html"), i)
		if e.Skip.ShouldSkip(text, textPath) {
			return "", false
		}
		i++
		return e.register(text, textPath, ex), true
	})
	if err != nil || i == 0 {
		return "", false
	}
	return skeleton, true
}
