package xmltree

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusXML = `<?xml version="1.0"?>
<response>
  <status>
    <indexingqueue>
      <Size>12</Size>
      <max>100</max>
    </indexingqueue>
    <ppm>37</ppm>
    <empty></empty>
    <nested><inner>x</inner></nested>
  </status>
</response>`

func mustParse(t *testing.T, data string) *etree.Document {
	t.Helper()
	doc, err := Parse([]byte(data))
	require.NoError(t, err)
	return doc
}

func TestTextValue(t *testing.T) {
	doc := mustParse(t, statusXML)
	status := Path(doc, "response", "status")
	require.NotNil(t, status)

	assert.Equal(t, "", TextValue(nil))
	assert.Equal(t, "", TextValue((*etree.Element)(nil)))
	assert.Equal(t, "", TextValue(FirstChild(status, "empty")))
	assert.Equal(t, "37", TextValue(FirstChild(status, "ppm")))
	// first child of <nested> is an element, not text
	assert.Equal(t, "", TextValue(FirstChild(status, "nested")))

	text := &etree.CharData{Data: "raw"}
	assert.Equal(t, "raw", TextValue(text))
}

func TestFirstChild_CaseInsensitiveAndSkipsText(t *testing.T) {
	doc := mustParse(t, statusXML)
	queue := Path(doc, "response", "status", "indexingqueue")
	require.NotNil(t, queue)

	// the first child of <indexingqueue> is a whitespace text node
	_, isText := queue.Child[0].(*etree.CharData)
	require.True(t, isText)

	size := FirstChild(queue, "size")
	require.NotNil(t, size)
	assert.Equal(t, "Size", size.Tag)

	size = FirstChild(queue, "SIZE")
	require.NotNil(t, size)
	assert.Equal(t, "12", TextValue(size))

	assert.Equal(t, "Size", FirstChild(queue, "").Tag)
}

func TestFirstChild_Missing(t *testing.T) {
	doc := mustParse(t, statusXML)

	assert.Nil(t, FirstChild(nil, "response"))
	assert.Nil(t, FirstChild((*etree.Element)(nil), ""))
	assert.Nil(t, FirstChild(doc, "status"))
	assert.Nil(t, Path(doc, "response", "status", "missing", "size"))
	assert.Nil(t, FirstChild(&etree.CharData{Data: "x"}, ""))
}

func TestFirstChild_DocumentRoot(t *testing.T) {
	doc := mustParse(t, statusXML)

	root := FirstChild(doc, "")
	require.NotNil(t, root)
	assert.Equal(t, "response", root.Tag)
}

func TestNextMatchingSibling(t *testing.T) {
	doc := mustParse(t, `<t><tr>h</tr> <td>x</td> <TR>a</TR><tr>b</tr></t>`)
	header := Path(doc, "t", "tr")
	require.NotNil(t, header)

	next := NextMatchingSibling(header, "tr")
	require.NotNil(t, next)
	assert.Equal(t, "a", TextValue(next))

	anyEl := NextMatchingSibling(header, "")
	require.NotNil(t, anyEl)
	assert.Equal(t, "td", anyEl.Tag)

	last := NextMatchingSibling(next, "tr")
	require.NotNil(t, last)
	assert.Nil(t, NextMatchingSibling(last, "tr"))
	assert.Nil(t, NextMatchingSibling(nil, "tr"))
	assert.Nil(t, NextMatchingSibling(doc.Root(), ""))
}

func TestChildren_DocumentOrder(t *testing.T) {
	doc := mustParse(t, `<q><entry>1</entry><other/><entry>2</entry>
<entry>3</entry></q>`)

	var got []string
	for _, el := range Children(doc.Root(), "entry") {
		got = append(got, TextValue(el))
	}
	assert.Equal(t, []string{"1", "2", "3"}, got)
	assert.Empty(t, Children(nil, "entry"))
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("<response><status>"))
	assert.Error(t, err)
}
