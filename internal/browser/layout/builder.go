// internal/browser/layout/builder.go
package layout

import (
	"fmt"

	"github.com/xkilldash9x/boxmodel/internal/browser/rendererr"
	"github.com/xkilldash9x/boxmodel/internal/browser/style"
	"go.uber.org/zap"
)

// Engine builds and lays out box trees.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine. A nil logger discards everything.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger.Named("layout")}
}

// BuildLayoutTree builds the box tree for root with a silent Engine.
func BuildLayoutTree(root *style.StyledNode) (*LayoutBox, error) {
	return NewEngine(nil).BuildLayoutTree(root)
}

// BuildLayoutTree turns a styled tree into an unlaid box tree. Subtrees with
// display: none produce no boxes; a root with display: none is an error.
func (e *Engine) BuildLayoutTree(root *style.StyledNode) (*LayoutBox, error) {
	if root == nil {
		return nil, &rendererr.InvariantViolation{Op: "BuildLayoutTree", Detail: "nil styled root"}
	}
	if root.Display() == style.DisplayNone {
		return nil, rendererr.ErrNoRenderableRoot
	}
	box := e.buildBox(root)
	boxes := 0
	box.Walk(func(*LayoutBox, int) { boxes++ })
	e.logger.Debug("Layout tree built", zap.Int("boxes", boxes))
	return box, nil
}

func (e *Engine) buildBox(sn *style.StyledNode) *LayoutBox {
	var box *LayoutBox
	switch sn.Display() {
	case style.DisplayBlock:
		box = NewLayoutBox(BlockNode, sn)
	default:
		box = NewLayoutBox(InlineNode, sn)
	}

	for _, child := range sn.Children {
		switch child.Display() {
		case style.DisplayBlock:
			box.Children = append(box.Children, e.buildBox(child))
		case style.DisplayInline:
			container := box.GetInlineContainer()
			container.Children = append(container.Children, e.buildBox(child))
		case style.DisplayNone:
			// Pruned with its whole subtree.
		}
	}
	return box
}

// BuildAndLayoutTree builds the box tree for root and lays it out in a viewport
// of the given width.
func (e *Engine) BuildAndLayoutTree(root *style.StyledNode, viewportWidth float32) (*LayoutBox, error) {
	box, err := e.BuildLayoutTree(root)
	if err != nil {
		return nil, err
	}
	if err := box.Layout(Viewport(viewportWidth)); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	mb := box.Dimensions.MarginBox()
	e.logger.Debug("Layout complete",
		zap.Float32("viewport_width", viewportWidth),
		zap.Float32("document_height", mb.Height))
	return box, nil
}
