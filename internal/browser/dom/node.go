// browser/dom/node.go
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// NodeType discriminates the two node variants.
type NodeType int

const (
	TextNode NodeType = iota
	ElementNode
)

func (t NodeType) String() string {
	switch t {
	case TextNode:
		return "text"
	case ElementNode:
		return "element"
	default:
		return "unknown"
	}
}

// Node is one node of the document tree. Text nodes only use Text; element nodes
// use Tag, Attributes and Children. A node owns its children and is not modified
// after the tree is built.
type Node struct {
	Type       NodeType
	Text       string
	Tag        string
	Attributes map[string]string
	Children   []*Node

	// source is the parser node this one was converted from, nil for trees built by hand.
	source *html.Node
}

// Text builds a text node.
func Text(data string) *Node {
	return &Node{Type: TextNode, Text: data}
}

// Elem builds an element node. A nil attrs map is replaced by an empty one.
func Elem(tag string, attrs map[string]string, children ...*Node) *Node {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return &Node{Type: ElementNode, Tag: tag, Attributes: attrs, Children: children}
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool { return n != nil && n.Type == ElementNode }

// Attr returns the named attribute of an element.
func (n *Node) Attr(name string) (string, bool) {
	if !n.IsElement() {
		return "", false
	}
	v, ok := n.Attributes[name]
	return v, ok
}

// ID returns the element's id attribute.
func (n *Node) ID() (string, bool) {
	return n.Attr("id")
}

// Classes returns the whitespace-separated tokens of the class attribute.
// The set is empty when the attribute is absent.
func (n *Node) Classes() map[string]struct{} {
	set := map[string]struct{}{}
	if class, ok := n.Attr("class"); ok {
		for _, c := range strings.Fields(class) {
			set[c] = struct{}{}
		}
	}
	return set
}

// Source returns the parser node n was converted from, or nil.
func (n *Node) Source() *html.Node { return n.source }

// Walk visits n and its descendants in document order. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
