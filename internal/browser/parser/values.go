// browser/parser/values.go
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a declared property value: a Keyword, a Length or a Color.
// All variants are comparable, so two Values are equal exactly when == says so.
type Value interface {
	fmt.Stringer
	isValue()
}

// Keyword is an identifier such as "auto" or "block". Values the parser does not
// understand are also kept as a Keyword of their source text.
type Keyword string

// Unit is a length unit. Only pixels are supported.
type Unit int

const (
	Px Unit = iota
)

func (u Unit) String() string {
	switch u {
	case Px:
		return "px"
	default:
		return "unknown"
	}
}

// Length is a number with a unit.
type Length struct {
	Value float32
	Unit  Unit
}

// Color is an RGBA color with 8 bits per channel.
type Color struct {
	R, G, B, A uint8
}

func (Keyword) isValue() {}
func (Length) isValue()  {}
func (Color) isValue()   {}

func (k Keyword) String() string { return string(k) }

func (l Length) String() string {
	return strconv.FormatFloat(float64(l.Value), 'f', -1, 32) + l.Unit.String()
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// PxLength builds a pixel Length.
func PxLength(v float32) Length { return Length{Value: v, Unit: Px} }

// ToPx returns the pixel size of v. Anything that is not a pixel Length, "auto"
// included, counts as zero.
func ToPx(v Value) float32 {
	if l, ok := v.(Length); ok && l.Unit == Px {
		return l.Value
	}
	return 0
}

// IsKeyword reports whether v is the given keyword.
func IsKeyword(v Value, kw string) bool {
	k, ok := v.(Keyword)
	return ok && string(k) == kw
}

var namedColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"silver":      {192, 192, 192, 255},
	"orange":      {255, 165, 0, 255},
	"purple":      {128, 0, 128, 255},
	"transparent": {0, 0, 0, 0},
}

// ParseColor parses a named color, a hex color or an rgb()/rgba() function.
func ParseColor(value string) (Color, bool) {
	value = strings.TrimSpace(strings.ToLower(value))

	if color, ok := namedColors[value]; ok {
		return color, true
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value)
	}
	if strings.HasPrefix(value, "rgb(") || strings.HasPrefix(value, "rgba(") {
		return parseRGBColor(value)
	}
	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	for i := 0; i < len(hex); i++ {
		if _, ok := hexDigit(hex[i]); !ok {
			return Color{}, false
		}
	}

	d := func(i int) uint8 {
		v, _ := hexDigit(hex[i])
		return v
	}
	c := Color{A: 255}
	switch len(hex) {
	case 3, 4:
		c.R, c.G, c.B = d(0)*17, d(1)*17, d(2)*17
		if len(hex) == 4 {
			c.A = d(3) * 17
		}
	case 6, 8:
		c.R, c.G, c.B = d(0)<<4|d(1), d(2)<<4|d(3), d(4)<<4|d(5)
		if len(hex) == 8 {
			c.A = d(6)<<4 | d(7)
		}
	default:
		return Color{}, false
	}
	return c, true
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func parseRGBColor(value string) (Color, bool) {
	open := strings.IndexByte(value, '(')
	if open < 0 || !strings.HasSuffix(value, ")") {
		return Color{}, false
	}
	parts := strings.FieldsFunc(value[open+1:len(value)-1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/' || r == '\t'
	})
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, false
	}

	c := Color{A: 255}
	channels := []*uint8{&c.R, &c.G, &c.B, &c.A}
	for i, p := range parts {
		v, ok := parseColorComponent(p, i == 3)
		if !ok {
			return Color{}, false
		}
		*channels[i] = v
	}
	return c, true
}

// parseColorComponent reads a 0-255 channel, a percentage, or for alpha a 0-1 fraction.
func parseColorComponent(value string, isAlpha bool) (uint8, bool) {
	scale := 1.0
	if strings.HasSuffix(value, "%") {
		value = strings.TrimSuffix(value, "%")
		scale = 255.0 / 100.0
	} else if isAlpha {
		scale = 255.0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return uint8(clamp(f*scale+0.5, 0, 255)), true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
