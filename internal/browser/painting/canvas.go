// internal/browser/painting/canvas.go
package painting

import (
	"fmt"
	"image"
	"image/color"

	"github.com/xkilldash9x/boxmodel/internal/browser/layout"
	"github.com/xkilldash9x/boxmodel/internal/browser/parser"
	"golang.org/x/image/draw"
)

// Canvas is a raster target. Pixels are replaced, never blended.
type Canvas struct {
	Width  int
	Height int
	img    *image.RGBA
}

// NewCanvas returns a canvas filled with opaque white. Negative sizes are
// treated as zero.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return &Canvas{Width: width, Height: height, img: img}
}

// Paint builds the display list for root and rasterizes it onto a canvas the
// size of viewport.
func Paint(root *layout.LayoutBox, viewport layout.Rect) (*Canvas, error) {
	list, err := BuildDisplayList(root)
	if err != nil {
		return nil, fmt.Errorf("building display list: %w", err)
	}
	return Rasterize(list, int(viewport.Width), int(viewport.Height)), nil
}

// Rasterize runs list against a fresh white canvas of the given size.
func Rasterize(list DisplayList, width, height int) *Canvas {
	canvas := NewCanvas(width, height)
	canvas.ExecuteAll(list)
	return canvas
}

// ExecuteAll runs every command in order.
func (c *Canvas) ExecuteAll(list DisplayList) {
	for _, cmd := range list {
		c.Execute(cmd)
	}
}

// Execute rasterizes one command. The rectangle is clipped to the canvas with
// its edges truncated to whole pixels.
func (c *Canvas) Execute(cmd DisplayCommand) {
	switch cmd := cmd.(type) {
	case FillRect:
		x0 := clampPixel(cmd.Rect.X, c.Width)
		y0 := clampPixel(cmd.Rect.Y, c.Height)
		x1 := clampPixel(cmd.Rect.X+cmd.Rect.Width, c.Width)
		y1 := clampPixel(cmd.Rect.Y+cmd.Rect.Height, c.Height)
		r := image.Rect(x0, y0, x1, y1)
		if r.Empty() {
			return
		}
		src := image.NewUniform(color.NRGBA{R: cmd.Color.R, G: cmd.Color.G, B: cmd.Color.B, A: cmd.Color.A})
		draw.Draw(c.img, r, src, image.Point{}, draw.Src)
	}
}

func clampPixel(v float32, limit int) int {
	return int(min(max(v, 0), float32(limit)))
}

// Image exposes the backing image. It is shared with the canvas.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// At returns the color of a pixel, or false outside the canvas.
func (c *Canvas) At(x, y int) (parser.Color, bool) {
	if !(image.Point{X: x, Y: y}).In(c.img.Bounds()) {
		return parser.Color{}, false
	}
	p := color.NRGBAModel.Convert(c.img.At(x, y)).(color.NRGBA)
	return parser.Color{R: p.R, G: p.G, B: p.B, A: p.A}, true
}
