package style

import (
	"github.com/xkilldash9x/boxmodel/internal/browser/dom"
	"github.com/xkilldash9x/boxmodel/internal/browser/parser"
)

// StyledNode pairs a document node with its specified values. The tree mirrors
// the document one to one, text nodes included. It refers to the document
// without owning it, so the document must outlive it.
type StyledNode struct {
	Node      *dom.Node
	Specified map[string]parser.Value
	Children  []*StyledNode
}

// Value returns the specified value of a property.
func (sn *StyledNode) Value(name string) (parser.Value, bool) {
	v, ok := sn.Specified[name]
	return v, ok
}

// Lookup returns the value of name, else the value of fallback, else def.
// It stands in for shorthand expansion, e.g. margin-left falling back to margin.
func (sn *StyledNode) Lookup(name, fallback string, def parser.Value) parser.Value {
	if v, ok := sn.Value(name); ok {
		return v
	}
	if v, ok := sn.Value(fallback); ok {
		return v
	}
	return def
}

// Display classifies how a node takes part in layout.
type Display int

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayNone
)

func (d Display) String() string {
	switch d {
	case DisplayInline:
		return "inline"
	case DisplayBlock:
		return "block"
	case DisplayNone:
		return "none"
	default:
		return "unknown"
	}
}

// Display reads the display property. Only the keywords "block" and "none" are
// recognized; everything else, an absent property included, is inline.
func (sn *StyledNode) Display() Display {
	v, ok := sn.Value("display")
	if !ok {
		return DisplayInline
	}
	switch {
	case parser.IsKeyword(v, "block"):
		return DisplayBlock
	case parser.IsKeyword(v, "none"):
		return DisplayNone
	default:
		return DisplayInline
	}
}

// Walk visits sn and its descendants in document order.
func (sn *StyledNode) Walk(fn func(*StyledNode)) {
	fn(sn)
	for _, c := range sn.Children {
		c.Walk(fn)
	}
}
