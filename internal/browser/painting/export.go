// internal/browser/painting/export.go
package painting

import (
	"fmt"
	"image/png"
	"io"
	"strconv"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	json "github.com/json-iterator/go"
	"github.com/xkilldash9x/boxmodel/internal/browser/layout"
	"github.com/xkilldash9x/boxmodel/internal/browser/parser"
)

// Output formats understood by Encode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// EncodeOptions tunes the lossy encoders.
type EncodeOptions struct {
	JPEGQuality int
}

// Extension returns the file extension, dot included, for a format.
func Extension(format string) string {
	switch format {
	case FormatJPEG:
		return ".jpg"
	case FormatPNG, FormatSVG, FormatJSON:
		return "." + format
	default:
		return ""
	}
}

// Encode writes a painted page. Raster formats encode the canvas; svg and json
// serialize the display list directly.
func Encode(w io.Writer, format string, canvas *Canvas, list DisplayList, opts EncodeOptions) error {
	switch format {
	case FormatPNG:
		if err := imaging.Encode(w, canvas.Image(), imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
			return fmt.Errorf("unable to encode PNG: %w", err)
		}
		return nil
	case FormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 {
			quality = 90
		}
		if err := imaging.Encode(w, canvas.Image(), imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return fmt.Errorf("unable to encode JPEG: %w", err)
		}
		return nil
	case FormatSVG:
		return EncodeSVG(w, canvas.Width, canvas.Height, list)
	case FormatJSON:
		return EncodeJSON(w, list)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// EncodeSVG renders the display list as an SVG document over a white page.
func EncodeSVG(w io.Writer, width, height int, list DisplayList) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(width))
	svg.CreateAttr("height", strconv.Itoa(height))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))

	page := layout.Rect{Width: float32(width), Height: float32(height)}
	appendRect(svg, page, parser.Color{R: 255, G: 255, B: 255, A: 255})
	for _, cmd := range list {
		if f, ok := cmd.(FillRect); ok {
			appendRect(svg, f.Rect, f.Color)
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write SVG: %w", err)
	}
	return nil
}

func appendRect(parent *etree.Element, r layout.Rect, c parser.Color) {
	rect := parent.CreateElement("rect")
	rect.CreateAttr("x", formatFloat(r.X))
	rect.CreateAttr("y", formatFloat(r.Y))
	rect.CreateAttr("width", formatFloat(r.Width))
	rect.CreateAttr("height", formatFloat(r.Height))
	rect.CreateAttr("fill", fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	if c.A != 255 {
		rect.CreateAttr("fill-opacity", strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64))
	}
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}

type commandJSON struct {
	Type  string      `json:"type"`
	Color string      `json:"color"`
	Rect  layout.Rect `json:"rect"`
}

// EncodeJSON writes the display list as a JSON array.
func EncodeJSON(w io.Writer, list DisplayList) error {
	out := make([]commandJSON, 0, len(list))
	for _, cmd := range list {
		if f, ok := cmd.(FillRect); ok {
			out = append(out, commandJSON{Type: "fill_rect", Color: f.Color.String(), Rect: f.Rect})
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("unable to encode display list: %w", err)
	}
	return nil
}
