// internal/browser/painting/display.go
package painting

import (
	"fmt"

	"github.com/xkilldash9x/boxmodel/internal/browser/layout"
	"github.com/xkilldash9x/boxmodel/internal/browser/parser"
)

// DisplayCommand is one drawing instruction. FillRect is the only kind.
type DisplayCommand interface {
	isDisplayCommand()
}

// FillRect paints a solid rectangle.
type FillRect struct {
	Color parser.Color
	Rect  layout.Rect
}

func (FillRect) isDisplayCommand() {}

func (f FillRect) String() string {
	return fmt.Sprintf("fill %s (%g,%g %gx%g)", f.Color, f.Rect.X, f.Rect.Y, f.Rect.Width, f.Rect.Height)
}

// DisplayList is a flat list of commands in painter's order: later commands
// cover earlier ones.
type DisplayList []DisplayCommand

// BuildDisplayList walks the laid-out tree in pre-order. Each box paints its
// background, then its borders, before any of its descendants.
func BuildDisplayList(root *layout.LayoutBox) (DisplayList, error) {
	var list DisplayList
	if err := renderLayoutBox(&list, root); err != nil {
		return nil, err
	}
	return list, nil
}

func renderLayoutBox(list *DisplayList, box *layout.LayoutBox) error {
	if box.BoxType != layout.AnonymousBlock {
		if err := renderBackground(list, box); err != nil {
			return err
		}
		if err := renderBorders(list, box); err != nil {
			return err
		}
	}
	for _, child := range box.Children {
		if err := renderLayoutBox(list, child); err != nil {
			return err
		}
	}
	return nil
}

func renderBackground(list *DisplayList, box *layout.LayoutBox) error {
	c, ok, err := getColor(box, "background")
	if err != nil || !ok {
		return err
	}
	*list = append(*list, FillRect{Color: c, Rect: box.Dimensions.BorderBox()})
	return nil
}

func renderBorders(list *DisplayList, box *layout.LayoutBox) error {
	c, ok, err := getColor(box, "border-color")
	if err != nil || !ok {
		return err
	}

	d := box.Dimensions
	bb := d.BorderBox()
	*list = append(*list,
		// left
		FillRect{Color: c, Rect: layout.Rect{X: bb.X, Y: bb.Y, Width: d.Border.Left, Height: bb.Height}},
		// right
		FillRect{Color: c, Rect: layout.Rect{X: bb.X + bb.Width - d.Border.Right, Y: bb.Y, Width: d.Border.Right, Height: bb.Height}},
		// top
		FillRect{Color: c, Rect: layout.Rect{X: bb.X, Y: bb.Y, Width: bb.Width, Height: d.Border.Top}},
		// bottom
		FillRect{Color: c, Rect: layout.Rect{X: bb.X, Y: bb.Y + bb.Height - d.Border.Bottom, Width: bb.Width, Height: d.Border.Bottom}},
	)
	return nil
}

// getColor returns the specified color of a property. Values that are not
// colors paint nothing.
func getColor(box *layout.LayoutBox, name string) (parser.Color, bool, error) {
	sn, err := box.Style()
	if err != nil {
		return parser.Color{}, false, err
	}
	c, ok := sn.Specified[name].(parser.Color)
	return c, ok, nil
}
