// browser/dom/document.go
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/xkilldash9x/boxmodel/internal/browser/rendererr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed document: the render root plus the parser tree it came
// from, so XPath and CSS queries can be answered in terms of Nodes.
type Document struct {
	Root *Node

	// top is the parser document node that queries run against.
	top   *html.Node
	index map[*html.Node]*Node
}

// NewDocument wraps a tree built by hand. Queries on it return nothing since
// there is no parser tree behind it.
func NewDocument(root *Node) *Document {
	return &Document{Root: root, index: map[*html.Node]*Node{}}
}

// ParseHTML parses a complete document and returns its <html> element as the root.
// Missing <html>, <head> and <body> elements are synthesized by the parser.
func ParseHTML(r io.Reader) (*Document, error) {
	top, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}
	d := &Document{top: top, index: map[*html.Node]*Node{}}
	for c := top.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			d.Root = d.convert(c)
			break
		}
	}
	if d.Root == nil {
		return nil, rendererr.ErrEmptyDocument
	}
	return d, nil
}

// ParseHTMLString is ParseHTML over a string.
func ParseHTMLString(s string) (*Document, error) {
	return ParseHTML(strings.NewReader(s))
}

// ParseFragment parses markup in a <body> context without synthesizing a
// document around it. A single top-level node becomes the root; several are
// wrapped in a synthetic html element.
func ParseFragment(r io.Reader) (*Document, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("parsing html fragment: %w", err)
	}

	var kept []*html.Node
	for _, n := range nodes {
		if renderable(n) {
			kept = append(kept, n)
		}
	}
	if len(kept) == 0 {
		return nil, rendererr.ErrEmptyDocument
	}

	top := &html.Node{Type: html.DocumentNode}
	parent := top
	if len(kept) > 1 {
		parent = &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
		top.AppendChild(parent)
	}
	for _, n := range nodes {
		parent.AppendChild(n)
	}

	d := &Document{top: top, index: map[*html.Node]*Node{}}
	if parent == top {
		d.Root = d.convert(kept[0])
	} else {
		d.Root = d.convert(parent)
	}
	return d, nil
}

// ParseFragmentString is ParseFragment over a string.
func ParseFragmentString(s string) (*Document, error) {
	return ParseFragment(strings.NewReader(s))
}

// renderable reports whether a parser node maps onto a Node. Comments, doctypes
// and whitespace-only text are dropped.
func renderable(n *html.Node) bool {
	switch n.Type {
	case html.ElementNode:
		return true
	case html.TextNode:
		return strings.TrimSpace(n.Data) != ""
	default:
		return false
	}
}

func (d *Document) convert(h *html.Node) *Node {
	var n *Node
	if h.Type == html.TextNode {
		n = Text(h.Data)
	} else {
		attrs := make(map[string]string, len(h.Attr))
		for _, a := range h.Attr {
			attrs[a.Key] = a.Val
		}
		n = Elem(h.Data, attrs)
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			if renderable(c) {
				n.Children = append(n.Children, d.convert(c))
			}
		}
	}
	n.source = h
	d.index[h] = n
	return n
}

// Lookup maps a parser node back to the Node built for it.
func (d *Document) Lookup(h *html.Node) (*Node, bool) {
	n, ok := d.index[h]
	return n, ok
}

// Query selects nodes with an XPath expression (anything starting with "/" or "(")
// or a CSS selector. Results are in document order; matches that were dropped
// during conversion, such as whitespace text, are skipped.
func (d *Document) Query(expr string) ([]*Node, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty query expression")
	}
	if d.top == nil {
		return nil, nil
	}

	var matches []*html.Node
	if strings.HasPrefix(expr, "/") || strings.HasPrefix(expr, "(") {
		found, err := htmlquery.QueryAll(d.top, expr)
		if err != nil {
			return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
		}
		matches = found
	} else {
		sel, err := cascadia.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid css selector %q: %w", expr, err)
		}
		matches = sel.MatchAll(d.top)
	}

	out := make([]*Node, 0, len(matches))
	for _, m := range matches {
		if n, ok := d.index[m]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// XPath returns a unique XPath for n, or "" when n was not produced by a parser.
func (d *Document) XPath(n *Node) string {
	if n == nil || n.source == nil {
		return ""
	}
	return GenerateUniqueXPath(n.source)
}

// Render serializes the parser tree behind the document, mainly for debugging.
func (d *Document) Render() (string, error) {
	if d.top == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, d.top); err != nil {
		return "", err
	}
	return buf.String(), nil
}
