// browser/dom/xpath.go
package dom

import (
	"fmt"
	"slices"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// GenerateUniqueXPath builds an XPath that selects exactly node. The path is
// anchored at the nearest ancestor-or-self carrying an id, otherwise at the
// document root, with 1-based same-tag sibling indices for every other step.
// Text nodes are addressed through their parent as text()[k].
func GenerateUniqueXPath(node *html.Node) string {
	if node == nil {
		return ""
	}

	var steps []string
	n := node
	if n.Type == html.TextNode {
		steps = append(steps, fmt.Sprintf("text()[%d]", siblingIndex(n)))
		n = n.Parent
	}

	anchored := false
	for ; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if id := htmlquery.SelectAttr(n, "id"); id != "" {
			steps = append(steps, fmt.Sprintf("//*[@id=%s]", xpathLiteral(id)))
			anchored = true
			break
		}
		steps = append(steps, fmt.Sprintf("%s[%d]", strings.ToLower(n.Data), siblingIndex(n)))
	}

	if len(steps) == 0 {
		return "/"
	}
	slices.Reverse(steps)
	path := strings.Join(steps, "/")
	if !anchored {
		path = "/" + path
	}
	return path
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escapes,
// so a value holding both quote kinds is split into a concat() call.
func xpathLiteral(s string) string {
	switch {
	case !strings.Contains(s, "'"):
		return "'" + s + "'"
	case !strings.Contains(s, `"`):
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	args := make([]string, 0, 2*len(parts)-1)
	for i, part := range parts {
		if i > 0 {
			args = append(args, `"'"`)
		}
		if part != "" {
			args = append(args, "'"+part+"'")
		}
	}
	return "concat(" + strings.Join(args, ", ") + ")"
}

// siblingIndex counts n and the preceding siblings of the same kind (same tag
// for elements, any text for text nodes).
func siblingIndex(n *html.Node) int {
	index := 1
	for prev := n.PrevSibling; prev != nil; prev = prev.PrevSibling {
		if prev.Type != n.Type {
			continue
		}
		if n.Type == html.TextNode || strings.EqualFold(prev.Data, n.Data) {
			index++
		}
	}
	return index
}
