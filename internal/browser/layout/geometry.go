// internal/browser/layout/geometry.go
package layout

import (
	"fmt"

	"github.com/xkilldash9x/boxmodel/internal/browser/dom"
)

// -- Public Interface for Geometry Retrieval --

// ElementGeometry reports the resolved boxes of one laid-out element.
type ElementGeometry struct {
	XPath   string `json:"xpath,omitempty"`
	Tag     string `json:"tag,omitempty"`
	BoxType string `json:"box_type"`
	Content Rect   `json:"content"`
	Padding Rect   `json:"padding_box"`
	Border  Rect   `json:"border_box"`
	Margin  Rect   `json:"margin_box"`
}

// ToElementGeometry snapshots the box's rectangles.
func (b *LayoutBox) ToElementGeometry() *ElementGeometry {
	g := &ElementGeometry{
		BoxType: b.BoxType.String(),
		Content: b.Dimensions.Content,
		Padding: b.Dimensions.PaddingBox(),
		Border:  b.Dimensions.BorderBox(),
		Margin:  b.Dimensions.MarginBox(),
	}
	if b.StyledNode != nil && b.StyledNode.Node != nil {
		n := b.StyledNode.Node
		if n.IsElement() {
			g.Tag = n.Tag
		} else {
			g.Tag = "#text"
		}
	}
	return g
}

// FindBox returns the box generated for target, or nil if it has none
// (display: none, or inside a pruned subtree).
func FindBox(root *LayoutBox, target *dom.Node) *LayoutBox {
	if root == nil || target == nil {
		return nil
	}
	if root.StyledNode != nil && root.StyledNode.Node == target {
		return root
	}
	for _, child := range root.Children {
		if found := FindBox(child, target); found != nil {
			return found
		}
	}
	return nil
}

// GetElementGeometry looks up the box for target and reports its geometry.
func GetElementGeometry(root *LayoutBox, target *dom.Node) (*ElementGeometry, error) {
	if root == nil {
		return nil, fmt.Errorf("layout tree is nil")
	}
	box := FindBox(root, target)
	if box == nil {
		return nil, fmt.Errorf("element is not rendered (display: none)")
	}
	return box.ToElementGeometry(), nil
}
