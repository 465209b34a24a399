// Package markup builds golang.org/x/net/html node trees for generated pages.
//
// Raw nodes are written verbatim by html.Render. They are the trust boundary
// of the renderer: whatever string is passed to Raw ends up in the output
// byte for byte, so callers own any sanitization.
package markup

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single attribute key/value pair. Attributes render in the order given.
type Attr struct {
	Key string
	Val string
}

// Element creates an element node with the given attributes and children.
func Element(tag string, attrs []Attr, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	appendChildren(n, children)
	return n
}

// Text creates an escaped text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Raw creates a node whose content is emitted without escaping.
func Raw(s string) *html.Node {
	return &html.Node{Type: html.RawNode, Data: s}
}

// Fragment groups nodes without a wrapping element. An empty fragment renders
// as nothing.
func Fragment(children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.DocumentNode}
	appendChildren(n, children)
	return n
}

// IsEmpty reports whether n renders to nothing.
func IsEmpty(n *html.Node) bool {
	if n == nil {
		return true
	}
	if n.Type != html.DocumentNode {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !IsEmpty(c) {
			return false
		}
	}
	return true
}

// Render serializes n. A nil node renders as the empty string.
func Render(n *html.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDocument serializes a complete page with a leading doctype.
func RenderDocument(root *html.Node) ([]byte, error) {
	doc := Fragment(&html.Node{Type: html.DoctypeNode, Data: "html"}, root)
	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// ParseFragment parses an HTML snippet in the context of a body-level element.
func ParseFragment(s string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "main", DataAtom: atom.Main}
	return html.ParseFragment(strings.NewReader(s), context)
}

// GetAttr returns the value of key on n, or "".
func GetAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets key on n to val, adding the attribute when it is missing.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Walk visits n and its descendants depth-first.
func Walk(n *html.Node, fn func(*html.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

func appendChildren(parent *html.Node, children []*html.Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		parent.AppendChild(c)
	}
}
