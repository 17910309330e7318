package autotranslate

// NodeKind is the closed set of shapes a document node can take. Every walker
// in the pipeline (extractor, exclusion filter, reconstructor) dispatches on
// the same classification so a node can never be treated as rich text by one
// walker and as a plain object by another.
type NodeKind int

const (
	// KindNull is a nil value (JSON null or absent).
	KindNull NodeKind = iota
	// KindScalar is a non-string leaf: number, bool, or any other opaque value.
	KindScalar
	// KindString is a string leaf.
	KindString
	// KindSequence is an ordered list of nodes.
	KindSequence
	// KindMapping is a plain key/value object.
	KindMapping
	// KindRichText is a rich-text tree node (see RichTextDetector).
	KindRichText
)

// RichTextDetector reports whether an object node is a rich-text node.
// The default heuristic matches the editor format this engine was built for;
// callers whose content can contain unrelated objects with the same keys
// should supply a stricter detector via Config.RichTextDetector.
type RichTextDetector func(node map[string]any) bool

// IsRichTextNode is the default RichTextDetector: a node is rich text iff it
// has both a "type" and a "version" key and either a "children" or a "text"
// key. Leaf rule: type == "text" with a non-empty "text" string is a
// translatable leaf; everything else is a container walked through
// "children" in order.
func IsRichTextNode(node map[string]any) bool {
	if node == nil {
		return false
	}
	if _, ok := node["type"]; !ok {
		return false
	}
	if _, ok := node["version"]; !ok {
		return false
	}
	if _, ok := node["children"]; ok {
		return true
	}
	_, ok := node["text"]
	return ok
}

// Classify returns the kind of v using the default rich-text detector.
func Classify(v any) NodeKind {
	return classify(v, IsRichTextNode)
}

func classify(v any, detect RichTextDetector) NodeKind {
	if detect == nil {
		detect = IsRichTextNode
	}
	switch n := v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case []any:
		return KindSequence
	case map[string]any:
		if detect(n) {
			return KindRichText
		}
		return KindMapping
	default:
		return KindScalar
	}
}

// richTextLeaf reports whether a rich-text node is a text leaf and returns
// its text when it is.
func richTextLeaf(node map[string]any) (string, bool) {
	if t, _ := node["type"].(string); t != "text" {
		return "", false
	}
	text, ok := node["text"].(string)
	if !ok || text == "" {
		return "", false
	}
	return text, true
}
