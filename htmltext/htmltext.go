// Package htmltext extracts the translatable text nodes from HTML fragments
// stored in string fields, leaving the markup itself untouched. Each text
// node is handed to a caller-supplied register function which decides whether
// it is translatable and returns the placeholder token to substitute.
package htmltext

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// IgnoredTags contains HTML tags whose text content is never translatable.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}

// RegisterFunc receives a trimmed text-node value and returns the token to
// substitute for it. Returning ok=false leaves the text node unchanged.
type RegisterFunc func(text string) (token string, ok bool)

// Extract parses fragment, substitutes tokens for its translatable text
// nodes in document order, and renders the resulting skeleton. Elements in
// IgnoredTags and elements carrying a data-no-translate attribute are
// skipped whole. The output is the parser's normalized serialization of the
// fragment, so callers should treat round-trips as markup-equivalent rather
// than byte-identical.
func Extract(fragment string, register RegisterFunc) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	body := doc.Find("body")
	if body.Length() == 0 {
		return fragment, nil
	}

	for _, node := range body.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c, register)
		}
	}

	var buf bytes.Buffer
	for _, node := range body.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&buf, c); err != nil {
				return "", err
			}
		}
	}
	return buf.String(), nil
}

func walk(n *html.Node, register RegisterFunc) {
	if n.Type == html.ElementNode {
		if IgnoredTags[strings.ToLower(n.Data)] {
			return
		}
		for _, attr := range n.Attr {
			if attr.Key == "data-no-translate" {
				return
			}
		}
	}

	if n.Type == html.TextNode {
		trimmed := strings.TrimSpace(n.Data)
		if trimmed != "" {
			if token, ok := register(trimmed); ok {
				n.Data = strings.Replace(n.Data, trimmed, token, 1)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, register)
	}
}
