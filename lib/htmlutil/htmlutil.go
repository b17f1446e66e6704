package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// GetText returns the concatenated text of a node and all of its
// descendants.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// ChildNode returns the i-th child of a node, counting every node type
// including text nodes. Returns nil when the index is out of range.
func ChildNode(node *html.Node, i int) *html.Node {
	if node == nil {
		return nil
	}
	n := 0
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if n == i {
			return child
		}
		n++
	}
	return nil
}

// ChildElement returns the i-th element child of a node, skipping text
// and comment nodes. Returns nil when the index is out of range.
func ChildElement(node *html.Node, i int) *html.Node {
	if node == nil {
		return nil
	}
	n := 0
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if n == i {
			return child
		}
		n++
	}
	return nil
}

// ChildElements returns every element child of a node in order.
func ChildElements(node *html.Node) []*html.Node {
	if node == nil {
		return nil
	}
	var out []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode {
			out = append(out, child)
		}
	}
	return out
}

// Attr returns the value of an attribute on a node, or "" when the node
// is nil or the attribute is absent.
func Attr(node *html.Node, key string) string {
	if node == nil {
		return ""
	}
	for _, a := range node.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// NodeText returns the text of a single text node, or "" for any other
// node type.
func NodeText(node *html.Node) string {
	if node == nil || node.Type != html.TextNode {
		return ""
	}
	return node.Data
}

// StripPadding removes non-breaking spaces and trims surrounding
// whitespace. The portal pads most table cells with &nbsp; runs.
func StripPadding(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimFunc(s, unicode.IsSpace)
}
