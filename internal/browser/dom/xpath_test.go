package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/boxmodel/internal/browser/dom"
)

const pageHTML = `<!DOCTYPE html>
<html>
<head><title>Boxes</title></head>
<body>
	<section id="hero"><span>Big</span> <span>title</span></section>
	<section>
		<div class="card">one</div>
		<div class="card">two<em>!</em></div>
		<div class="card" id="third">three</div>
	</section>
	<section><div>tail</div></section>
</body>
</html>`

func TestXPathRoundTrip(t *testing.T) {
	doc, err := dom.ParseHTMLString(pageHTML)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"document element", "html", "/html[1]"},
		{"id anchors the path", "#hero", `//*[@id='hero']`},
		{"steps below an id", "#hero > span:nth-of-type(2)", `//*[@id='hero']/span[2]`},
		{"same-tag siblings are counted", "section:nth-of-type(2) > div:nth-of-type(2)", "/html[1]/body[1]/section[2]/div[2]"},
		{"nested element", "em", "/html[1]/body[1]/section[2]/div[2]/em[1]"},
		{"own id wins over position", ".card#third", `//*[@id='third']`},
		{"last section", "section:last-of-type > div", "/html[1]/body[1]/section[3]/div[1]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := doc.Query(tt.query)
			require.NoError(t, err)
			require.Len(t, nodes, 1)

			path := doc.XPath(nodes[0])
			assert.Equal(t, tt.want, path)

			back, err := doc.Query(path)
			require.NoError(t, err)
			require.Len(t, back, 1, "generated path %s must select exactly one node", path)
			assert.Same(t, nodes[0], back[0])
		})
	}
}

func TestXPathQuotedIDs(t *testing.T) {
	doc, err := dom.ParseHTMLString(`<html><body>
		<p class="q" id="plain">a</p>
		<p class="q" id="it's">b</p>
		<p class="q" id='say "hi"'>c</p>
		<p class="q" id="it's &quot;x&quot;">d</p>
	</body></html>`)
	require.NoError(t, err)

	nodes, err := doc.Query("p.q")
	require.NoError(t, err)
	require.Len(t, nodes, 4)

	want := []string{
		`//*[@id='plain']`,
		`//*[@id="it's"]`,
		`//*[@id='say "hi"']`,
		`//*[@id=concat('it', "'", 's "x"')]`,
	}
	for i, node := range nodes {
		path := doc.XPath(node)
		assert.Equal(t, want[i], path)

		back, err := doc.Query(path)
		require.NoError(t, err, "generated path %s must compile", path)
		require.Len(t, back, 1)
		assert.Same(t, node, back[0])
	}
}

func TestXPathTextNodes(t *testing.T) {
	doc, err := dom.ParseHTMLString(pageHTML)
	require.NoError(t, err)

	cards, err := doc.Query("//div[@class='card']")
	require.NoError(t, err)
	require.Len(t, cards, 3)

	text := cards[1].Children[0]
	require.Equal(t, dom.TextNode, text.Type)
	assert.Equal(t, "/html[1]/body[1]/section[2]/div[2]/text()[1]", doc.XPath(text))
}

func TestXPathWithoutSource(t *testing.T) {
	built := dom.Elem("div", nil)
	doc := dom.NewDocument(built)
	assert.Equal(t, "", doc.XPath(built))
	assert.Equal(t, "", doc.XPath(nil))
	assert.Equal(t, "", dom.GenerateUniqueXPath(nil))

	nodes, err := doc.Query("div")
	assert.NoError(t, err)
	assert.Empty(t, nodes)
}
