// browser/parser/css_test.go
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/boxmodel/internal/browser/rendererr"
)

// Helper functions to build expected structures concisely
func d(name string, v Value) Declaration {
	return Declaration{Name: name, Value: v}
}

func s(tag, id string, classes ...string) SimpleSelector {
	return SimpleSelector{Tag: tag, ID: id, Classes: classes}
}

func mustParse(t *testing.T, text string) *StyleSheet {
	t.Helper()
	sheet, err := Parse(text)
	require.NoError(t, err)
	require.NotNil(t, sheet)
	return sheet
}

func TestParseSimpleSelectors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected SimpleSelector
	}{
		{"Tag", "div", s("div", "")},
		{"ID", "#main", s("", "main")},
		{"Class", ".button", s("", "", "button")},
		{"Multiple Classes", ".btn.primary", s("", "", "btn", "primary")},
		{"Combined", "input#username.required", s("input", "username", "required")},
		{"Universal", "*", s("", "")},
		{"Universal with class", "*.note", s("", "", "note")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := mustParse(t, tt.input+" { }")
			require.Len(t, sheet.Rules, 1)
			require.Len(t, sheet.Rules[0].Selectors, 1)
			got, ok := sheet.Rules[0].Selectors[0].(SimpleSelector)
			require.True(t, ok)
			if len(tt.expected.Classes) == 0 {
				tt.expected.Classes = nil
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCalculateSpecificity(t *testing.T) {
	tests := []struct {
		input   string
		a, b, c int
	}{
		{"*", 0, 0, 0},
		{"li", 0, 0, 1},
		{".class", 0, 1, 0},
		{".a.b.c", 0, 3, 0},
		{"#id", 1, 0, 0},
		{"div#id.class", 1, 1, 1},
		{"li.active.first", 0, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sheet := mustParse(t, tt.input+" {}")
			assert.Equal(t, Specificity{tt.a, tt.b, tt.c}, sheet.Rules[0].Selectors[0].Specificity())
		})
	}
}

func TestSpecificityOrdering(t *testing.T) {
	assert.True(t, Specificity{0, 0, 9}.Less(Specificity{0, 1, 0}))
	assert.True(t, Specificity{0, 9, 9}.Less(Specificity{1, 0, 0}))
	assert.False(t, Specificity{0, 1, 0}.Less(Specificity{0, 1, 0}))
	assert.Equal(t, 0, Specificity{1, 2, 3}.Compare(Specificity{1, 2, 3}))
	assert.Equal(t, 1, Specificity{0, 2, 0}.Compare(Specificity{0, 1, 5}))
}

func TestSelectorsSortedBySpecificity(t *testing.T) {
	sheet := mustParse(t, "a, b.x, #y, c, d.x { color: red; }")
	require.Len(t, sheet.Rules, 1)

	var got []string
	for _, sel := range sheet.Rules[0].Selectors {
		got = append(got, sel.String())
	}
	// Equal specificities keep their source order.
	assert.Equal(t, []string{"#y", "b.x", "d.x", "a", "c"}, got)

	first := sheet.Rules[0].Selectors[0].Specificity()
	for _, sel := range sheet.Rules[0].Selectors {
		assert.False(t, first.Less(sel.Specificity()), "first selector must be the most specific")
	}
}

func TestParseDeclarations(t *testing.T) {
	sheet := mustParse(t, `
	div {
		display: block;
		width: 100px;
		margin: auto;
		padding-left: 12.5px;
		height: 0;
		background: #cc0000;
		border-color: #abc;
		color: rgb(10, 20, 30);
		outline-color: rgba(0, 0, 0, 0.5);
		fill: red;
		font-size: 16px !important;
		/* Comment between declarations */
		margin-top: 50%;
		line-height: 1.5em;
	}
	`)
	require.Len(t, sheet.Rules, 1)

	expected := []Declaration{
		d("display", Keyword("block")),
		d("width", PxLength(100)),
		d("margin", Keyword("auto")),
		d("padding-left", PxLength(12.5)),
		d("height", PxLength(0)),
		d("background", Color{204, 0, 0, 255}),
		d("border-color", Color{170, 187, 204, 255}),
		d("color", Color{10, 20, 30, 255}),
		d("outline-color", Color{0, 0, 0, 128}),
		d("fill", Color{255, 0, 0, 255}),
		d("font-size", PxLength(16)),
		d("margin-top", Keyword("50%")),
		d("line-height", Keyword("1.5em")),
	}
	assert.Equal(t, expected, sheet.Rules[0].Declarations)
}

func TestDimensionValues(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"10px", PxLength(10)},
		{"-4.5px", PxLength(-4.5)},
		{"1e2px", PxLength(100)},
		{"2.5E1PX", PxLength(25)},
		{"1e2em", Keyword("1e2em")},
		{"3pt", Keyword("3pt")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sheet := mustParse(t, "p { width: "+tt.input+" }")
			require.Len(t, sheet.Rules, 1)
			assert.Equal(t, []Declaration{d("width", tt.expected)}, sheet.Rules[0].Declarations)
		})
	}
}

func TestRepeatedPropertiesKeepSourceOrder(t *testing.T) {
	sheet := mustParse(t, "p { width: 10px; width: 20px }")
	assert.Equal(t, []Declaration{d("width", PxLength(10)), d("width", PxLength(20))}, sheet.Rules[0].Declarations)
}

func TestSelectorSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"Descendant combinator", "div p { color: red }", "combinators are not supported"},
		{"Child combinator", "div>p { color: red }", `combinator ">" is not supported`},
		{"Sibling combinator", "h1+h2 { color: red }", `combinator "+" is not supported`},
		{"Pseudo-class", "a:hover { color: red }", "pseudo-classes are not supported"},
		{"Attribute selector", "input[type] { color: red }", "attribute selectors are not supported"},
		{"Dangling dot", "p. { color: red }", "expected a class name after '.'"},
		{"Second rule", "p { color: red } q, r s { color: blue }", "combinators are not supported"},
	}

	unterminated := []struct {
		name  string
		input string
		rule  int
	}{
		{"Stray closing brace", "a, b } p { color: red }", 0},
		{"Trailing selector without block", "p { } q", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, sheet, "no partial stylesheet on a selector error")

			var syntaxErr *rendererr.SelectorSyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.reason, syntaxErr.Reason)
		})
	}

	for _, tt := range unterminated {
		t.Run(tt.name, func(t *testing.T) {
			sheet, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, sheet)
			assert.True(t, rendererr.IsSelectorSyntax(err))

			var syntaxErr *rendererr.SelectorSyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.rule, syntaxErr.Rule)
			assert.NotEmpty(t, syntaxErr.Reason)
		})
	}

	t.Run("Rule index", func(t *testing.T) {
		_, err := Parse("p { color: red } q { color: blue } a b { }")
		var syntaxErr *rendererr.SelectorSyntaxError
		require.ErrorAs(t, err, &syntaxErr)
		assert.Equal(t, 2, syntaxErr.Rule)
		assert.Equal(t, "a b", syntaxErr.Selector)
	})
}

func TestEdgeCasesAndSkipping(t *testing.T) {
	t.Run("Skip Comments", func(t *testing.T) {
		sheet := mustParse(t, `/* Start */ body { margin: 0; } /* End */`)
		require.Len(t, sheet.Rules, 1)
		assert.Equal(t, "margin", sheet.Rules[0].Declarations[0].Name)
	})

	t.Run("Skip At-Rules", func(t *testing.T) {
		sheet := mustParse(t, `@media screen and (min-width: 900px) { div { display: none; } } p { color: blue; } @import "style.css";`)
		require.Len(t, sheet.Rules, 1)
		assert.Equal(t, "p", sheet.Rules[0].Selectors[0].String())
	})

	t.Run("Empty stylesheet", func(t *testing.T) {
		sheet := mustParse(t, "   ")
		assert.Empty(t, sheet.Rules)
	})

	t.Run("Empty rule", func(t *testing.T) {
		sheet := mustParse(t, "p {}")
		require.Len(t, sheet.Rules, 1)
		assert.Empty(t, sheet.Rules[0].Declarations)
	})
}

func TestParseInlineDeclarations(t *testing.T) {
	decls := NewParser(nil).ParseInlineDeclarations("display: block; width: 40px; background: white")
	assert.Equal(t, []Declaration{
		d("display", Keyword("block")),
		d("width", PxLength(40)),
		d("background", Color{255, 255, 255, 255}),
	}, decls)
}
