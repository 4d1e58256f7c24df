package patent

import (
	"strings"

	"golang.org/x/net/html"
)

// element is a read-only view of one markup element. The walker and section
// parsers go through this surface instead of the html package's node type.
type element struct {
	n *html.Node
}

func (e element) name() string {
	return e.n.Data
}

func (e element) attr(key string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (e element) hasAttr(key string) bool {
	_, ok := e.attr(key)
	return ok
}

// attrs returns the element's attributes in source order.
func (e element) attrs() []html.Attribute {
	return e.n.Attr
}

func (e element) children() []element {
	var kids []element
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			kids = append(kids, element{c})
		}
	}
	return kids
}

// nextSiblings returns the element siblings after e, in document order.
func (e element) nextSiblings() []element {
	var sibs []element
	for s := e.n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			sibs = append(sibs, element{s})
		}
	}
	return sibs
}

func (e element) parent() (element, bool) {
	p := e.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return element{}, false
	}
	return element{p}, true
}

// directText is the text contained immediately in e, excluding descendant
// elements. ok is false when e has no text children at all.
func (e element) directText() (string, bool) {
	var b strings.Builder
	found := false
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			found = true
		}
	}
	return b.String(), found
}

// flatText flattens all descendant text into one string, trimming each
// fragment and concatenating the non-empty ones.
func (e element) flatText() string {
	var b strings.Builder
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(e.n)
	return b.String()
}

// hasClass reports whether the class attribute contains the given token.
func (e element) hasClass(name string) bool {
	class, _ := e.attr("class")
	for _, c := range strings.Fields(class) {
		if c == name {
			return true
		}
	}
	return false
}
