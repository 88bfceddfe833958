// internal/browser/layout/block.go
package layout

import (
	"github.com/xkilldash9x/boxmodel/internal/browser/parser"
)

var (
	auto = parser.Keyword("auto")
	zero = parser.PxLength(0)
)

func isAuto(v parser.Value) bool { return parser.IsKeyword(v, "auto") }

// Layout computes the geometry of b and its descendants inside containingBlock.
// Only block boxes are laid out; inline and anonymous boxes keep zero
// dimensions and their subtrees are left untouched.
func (b *LayoutBox) Layout(containingBlock Dimensions) error {
	switch b.BoxType {
	case BlockNode:
		return b.layoutBlock(containingBlock)
	case InlineNode, AnonymousBlock:
		// No inline formatting context.
		return nil
	default:
		_, err := b.Style()
		return err
	}
}

// layoutBlock resolves width top-down, then position, then children, then
// height bottom-up.
func (b *LayoutBox) layoutBlock(containingBlock Dimensions) error {
	// Height is accumulated from the children, so start from nothing on every pass.
	b.Dimensions.Content.Height = 0

	if err := b.calculateBlockWidth(containingBlock); err != nil {
		return err
	}
	if err := b.calculateBlockPosition(containingBlock); err != nil {
		return err
	}
	if err := b.layoutBlockChildren(); err != nil {
		return err
	}
	return b.calculateBlockHeight()
}

// calculateBlockWidth resolves width and the horizontal margin, border and
// padding so that they add up to the containing block's width.
func (b *LayoutBox) calculateBlockWidth(containingBlock Dimensions) error {
	sn, err := b.Style()
	if err != nil {
		return err
	}

	width := sn.Lookup("width", "width", auto)
	marginLeft := sn.Lookup("margin-left", "margin", zero)
	marginRight := sn.Lookup("margin-right", "margin", zero)
	borderLeft := sn.Lookup("border-left-width", "border-width", zero)
	borderRight := sn.Lookup("border-right-width", "border-width", zero)
	paddingLeft := sn.Lookup("padding-left", "padding", zero)
	paddingRight := sn.Lookup("padding-right", "padding", zero)

	var total float32
	for _, v := range []parser.Value{marginLeft, marginRight, borderLeft, borderRight, paddingLeft, paddingRight, width} {
		total += parser.ToPx(v)
	}

	// An explicit width that already overflows leaves nothing for auto margins.
	if !isAuto(width) && total > containingBlock.Content.Width {
		if isAuto(marginLeft) {
			marginLeft = zero
		}
		if isAuto(marginRight) {
			marginRight = zero
		}
	}

	underflow := containingBlock.Content.Width - total
	widthAuto, leftAuto, rightAuto := isAuto(width), isAuto(marginLeft), isAuto(marginRight)

	switch {
	case !widthAuto && !leftAuto && !rightAuto:
		// Over-constrained: margin-right absorbs the difference, possibly going negative.
		marginRight = parser.PxLength(parser.ToPx(marginRight) + underflow)
	case !widthAuto && !leftAuto && rightAuto:
		marginRight = parser.PxLength(underflow)
	case !widthAuto && leftAuto && !rightAuto:
		marginLeft = parser.PxLength(underflow)
	case widthAuto:
		if leftAuto {
			marginLeft = zero
		}
		if rightAuto {
			marginRight = zero
		}
		if underflow >= 0 {
			width = parser.PxLength(underflow)
		} else {
			width = zero
			marginRight = parser.PxLength(parser.ToPx(marginRight) + underflow)
		}
	case !widthAuto && leftAuto && rightAuto:
		marginLeft = parser.PxLength(underflow / 2)
		marginRight = parser.PxLength(underflow / 2)
	}

	d := &b.Dimensions
	d.Content.Width = parser.ToPx(width)
	d.Padding.Left = parser.ToPx(paddingLeft)
	d.Padding.Right = parser.ToPx(paddingRight)
	d.Border.Left = parser.ToPx(borderLeft)
	d.Border.Right = parser.ToPx(borderRight)
	d.Margin.Left = parser.ToPx(marginLeft)
	d.Margin.Right = parser.ToPx(marginRight)
	return nil
}

// calculateBlockPosition places the box below everything already stacked in
// the containing block. Vertical edges get no auto arithmetic.
func (b *LayoutBox) calculateBlockPosition(containingBlock Dimensions) error {
	sn, err := b.Style()
	if err != nil {
		return err
	}
	d := &b.Dimensions

	d.Margin.Top = parser.ToPx(sn.Lookup("margin-top", "margin", zero))
	d.Margin.Bottom = parser.ToPx(sn.Lookup("margin-bottom", "margin", zero))
	d.Border.Top = parser.ToPx(sn.Lookup("border-top-width", "border-width", zero))
	d.Border.Bottom = parser.ToPx(sn.Lookup("border-bottom-width", "border-width", zero))
	d.Padding.Top = parser.ToPx(sn.Lookup("padding-top", "padding", zero))
	d.Padding.Bottom = parser.ToPx(sn.Lookup("padding-bottom", "padding", zero))

	d.Content.X = containingBlock.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containingBlock.Content.Height + containingBlock.Content.Y + d.Margin.Top + d.Border.Top + d.Padding.Top
	return nil
}

// layoutBlockChildren lays the children out in order, growing the content
// height by each child's margin box so the next one stacks beneath it.
func (b *LayoutBox) layoutBlockChildren() error {
	for _, child := range b.Children {
		if err := child.Layout(b.Dimensions); err != nil {
			return err
		}
		b.Dimensions.Content.Height += child.Dimensions.MarginBox().Height
	}
	return nil
}

// calculateBlockHeight lets an explicit pixel height override the height
// accumulated from the children.
func (b *LayoutBox) calculateBlockHeight() error {
	sn, err := b.Style()
	if err != nil {
		return err
	}
	if h, ok := sn.Specified["height"].(parser.Length); ok && h.Unit == parser.Px {
		b.Dimensions.Content.Height = h.Value
	}
	return nil
}
