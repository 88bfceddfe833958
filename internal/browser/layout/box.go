// internal/browser/layout/box.go
package layout

import (
	"fmt"

	"github.com/xkilldash9x/boxmodel/internal/browser/rendererr"
	"github.com/xkilldash9x/boxmodel/internal/browser/style"
)

// -- Core Structures: Box Model and Dimensions --

// Rect is an axis-aligned rectangle in CSS pixels.
type Rect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// ExpandedBy returns a new rectangle grown outward by the edge sizes.
func (r Rect) ExpandedBy(e Edges) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// Edges holds the four sizes of a padding, border or margin.
type Edges struct {
	Left   float32 `json:"left"`
	Right  float32 `json:"right"`
	Top    float32 `json:"top"`
	Bottom float32 `json:"bottom"`
}

// Dimensions defines the geometry of a layout box. Content is positioned in
// absolute coordinates; the edges are widths around it.
type Dimensions struct {
	Content Rect
	Padding Edges
	Border  Edges
	Margin  Edges
}

// PaddingBox returns the content area expanded by padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the padding box expanded by the border.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the border box expanded by the margin.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// Viewport returns the initial containing block for a viewport: its width,
// positioned at the origin, with zero height so the first block starts at the top.
func Viewport(width float32) Dimensions {
	return Dimensions{Content: Rect{Width: width}}
}

// -- Layout Tree (Box Tree) --

// BoxType defines the kind of box generated for a node.
type BoxType int

const (
	BlockNode BoxType = iota
	InlineNode
	// AnonymousBlock wraps a run of inline boxes under a block parent. It has no style.
	AnonymousBlock
)

func (t BoxType) String() string {
	switch t {
	case BlockNode:
		return "block"
	case InlineNode:
		return "inline"
	case AnonymousBlock:
		return "anonymous"
	default:
		return "unknown"
	}
}

// LayoutBox is a node in the layout tree. It refers to the styled tree without
// owning it. Dimensions are zero until Layout runs.
type LayoutBox struct {
	Dimensions Dimensions
	BoxType    BoxType
	StyledNode *style.StyledNode
	Children   []*LayoutBox
}

// NewLayoutBox creates a box. Anonymous boxes take a nil styled node.
func NewLayoutBox(boxType BoxType, styledNode *style.StyledNode) *LayoutBox {
	return &LayoutBox{BoxType: boxType, StyledNode: styledNode}
}

// Style returns the styled node behind a block or inline box. Asking an
// anonymous box is an invariant violation.
func (b *LayoutBox) Style() (*style.StyledNode, error) {
	switch b.BoxType {
	case BlockNode, InlineNode:
		if b.StyledNode == nil {
			return nil, &rendererr.InvariantViolation{Op: "LayoutBox.Style", Detail: fmt.Sprintf("%s box without a styled node", b.BoxType)}
		}
		return b.StyledNode, nil
	case AnonymousBlock:
		return nil, &rendererr.InvariantViolation{Op: "LayoutBox.Style", Detail: "anonymous block has no style"}
	default:
		return nil, &rendererr.InvariantViolation{Op: "LayoutBox.Style", Detail: fmt.Sprintf("unknown box type %d", int(b.BoxType))}
	}
}

// GetInlineContainer returns the box that a new inline child of b should be
// added to. Inline and anonymous boxes take inline children directly. A block
// reuses its trailing anonymous child, or appends a fresh one.
func (b *LayoutBox) GetInlineContainer() *LayoutBox {
	switch b.BoxType {
	case InlineNode, AnonymousBlock:
		return b
	default:
		if n := len(b.Children); n > 0 && b.Children[n-1].BoxType == AnonymousBlock {
			return b.Children[n-1]
		}
		anon := NewLayoutBox(AnonymousBlock, nil)
		b.Children = append(b.Children, anon)
		return anon
	}
}

// Walk visits b and its descendants in tree order with their depth.
func (b *LayoutBox) Walk(fn func(box *LayoutBox, depth int)) {
	b.walk(fn, 0)
}

func (b *LayoutBox) walk(fn func(*LayoutBox, int), depth int) {
	fn(b, depth)
	for _, c := range b.Children {
		c.walk(fn, depth+1)
	}
}
