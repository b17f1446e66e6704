package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, fragment string) *html.Node {
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)

	// html -> body
	body := doc.FirstChild.FirstChild.NextSibling
	require.NotNil(t, body)
	return body.FirstChild
}

func TestChildNodeCountsTextNodes(t *testing.T) {
	cell := parseFragment(t, `<div>Algebra II<br><a title="x">y</a></div>`)

	require.Equal(t, "Algebra II", NodeText(ChildNode(cell, 0)))
	require.Equal(t, "br", ChildNode(cell, 1).Data)
	require.Equal(t, "a", ChildNode(cell, 2).Data)
	require.Nil(t, ChildNode(cell, 3))
	require.Nil(t, ChildNode(nil, 0))
}

func TestChildElementSkipsTextNodes(t *testing.T) {
	cell := parseFragment(t, `<div>text<a>first</a>more<a>second</a></div>`)

	require.Equal(t, "first", GetText(ChildElement(cell, 0)))
	require.Equal(t, "second", GetText(ChildElement(cell, 1)))
	require.Nil(t, ChildElement(cell, 2))
	require.Len(t, ChildElements(cell), 2)
}

func TestAttr(t *testing.T) {
	cell := parseFragment(t, `<div><a href="scores.html">x</a></div>`)
	link := ChildElement(cell, 0)

	require.Equal(t, "scores.html", Attr(link, "href"))
	require.Equal(t, "", Attr(link, "title"))
	require.Equal(t, "", Attr(nil, "href"))
}

func TestStripPadding(t *testing.T) {
	require.Equal(t, "Algebra II", StripPadding("  Algebra II \n"))
	require.Equal(t, "", StripPadding("  "))
}
