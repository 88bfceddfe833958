// internal/browser/painting/export_test.go
package painting

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/disintegration/imaging"
	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/boxmodel/internal/browser/layout"
	"github.com/xkilldash9x/boxmodel/internal/browser/parser"
)

func sampleList() DisplayList {
	return DisplayList{
		FillRect{Color: red, Rect: layout.Rect{X: 1, Y: 1, Width: 4, Height: 2}},
		FillRect{Color: parser.Color{B: 255, A: 51}, Rect: layout.Rect{X: 0.5, Y: 0, Width: 2.25, Height: 1}},
	}
}

func TestEncodePNG(t *testing.T) {
	c := NewCanvas(8, 4)
	c.ExecuteAll(sampleList()[:1])

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatPNG, c, nil, EncodeOptions{}))

	img, err := imaging.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
	r, g, b, a := img.At(2, 2).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}

func TestEncodeJPEG(t *testing.T) {
	c := NewCanvas(16, 8)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJPEG, c, nil, EncodeOptions{JPEGQuality: 75}))

	img, err := imaging.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestEncodeSVG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatSVG, NewCanvas(8, 4), sampleList(), EncodeOptions{}))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	svg := doc.SelectElement("svg")
	require.NotNil(t, svg)
	assert.Equal(t, "8", svg.SelectAttrValue("width", ""))
	assert.Equal(t, "0 0 8 4", svg.SelectAttrValue("viewBox", ""))

	rects := svg.SelectElements("rect")
	require.Len(t, rects, 3)
	assert.Equal(t, "#ffffff", rects[0].SelectAttrValue("fill", ""))
	assert.Equal(t, "#ff0000", rects[1].SelectAttrValue("fill", ""))
	assert.Equal(t, "", rects[1].SelectAttrValue("fill-opacity", ""))
	assert.Equal(t, "0.5", rects[2].SelectAttrValue("x", ""))
	assert.Equal(t, "2.25", rects[2].SelectAttrValue("width", ""))
	assert.Equal(t, "0.200", rects[2].SelectAttrValue("fill-opacity", ""))
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, nil, sampleList(), EncodeOptions{}))

	var got []struct {
		Type  string      `json:"type"`
		Color string      `json:"color"`
		Rect  layout.Rect `json:"rect"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "fill_rect", got[0].Type)
	assert.Equal(t, "#ff0000ff", got[0].Color)
	assert.Equal(t, layout.Rect{X: 1, Y: 1, Width: 4, Height: 2}, got[0].Rect)
	assert.Equal(t, "#0000ff33", got[1].Color)

	buf.Reset()
	require.NoError(t, EncodeJSON(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestEncodeUnknownFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, "bmp", NewCanvas(1, 1), nil, EncodeOptions{})
	assert.ErrorContains(t, err, `unsupported output format "bmp"`)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".png", Extension(FormatPNG))
	assert.Equal(t, ".jpg", Extension(FormatJPEG))
	assert.Equal(t, ".svg", Extension(FormatSVG))
	assert.Equal(t, ".json", Extension(FormatJSON))
	assert.Equal(t, "", Extension("gif"))
}
