// Package xmltree provides defensive, read-only navigation over parsed XML
// documents. Every accessor tolerates missing structure: a nil node or an
// absent child yields nil or "" instead of an error, so record builders on
// top of it are total functions even for partial or version-skewed
// documents.
package xmltree

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// Parse reads an XML document. Whitespace between elements is kept as text
// nodes, so callers see the same node sequence a browser DOM would.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}

// Accessors take node as any so that a *etree.Document, an *etree.Element
// and an *etree.CharData can all be passed where the DOM would accept a node.

// FirstChild returns the first element child of node whose tag equals name,
// ignoring case. An empty name matches any element. Text nodes are skipped.
// A *etree.Document is accepted as node; its first element child is the
// document root.
func FirstChild(node any, name string) *etree.Element {
	parent := asElement(node)
	if parent == nil {
		return nil
	}
	for _, child := range parent.Child {
		if el, ok := child.(*etree.Element); ok && matches(el, name) {
			return el
		}
	}
	return nil
}

// NextMatchingSibling scans the siblings after el and returns the first
// element matching name (any element when name is empty).
func NextMatchingSibling(el *etree.Element, name string) *etree.Element {
	if el == nil {
		return nil
	}
	parent := el.Parent()
	if parent == nil {
		return nil
	}
	for i := el.Index() + 1; i < len(parent.Child); i++ {
		if sib, ok := parent.Child[i].(*etree.Element); ok && matches(sib, name) {
			return sib
		}
	}
	return nil
}

// Children returns all element children of node matching name, in document
// order.
func Children(node any, name string) []*etree.Element {
	var out []*etree.Element
	for el := FirstChild(node, name); el != nil; el = NextMatchingSibling(el, name) {
		out = append(out, el)
	}
	return out
}

// TextValue returns the text of node: the data of a text node, or the data
// of an element's first child when that child is text. Anything else,
// including nil, yields "".
func TextValue(node any) string {
	switch n := node.(type) {
	case *etree.CharData:
		if n == nil {
			return ""
		}
		return n.Data
	case *etree.Element:
		if n == nil || len(n.Child) == 0 {
			return ""
		}
		if text, ok := n.Child[0].(*etree.CharData); ok {
			return text.Data
		}
	}
	return ""
}

// Path follows a chain of FirstChild lookups from node.
func Path(node any, names ...string) *etree.Element {
	el := asElement(node)
	for _, name := range names {
		el = FirstChild(el, name)
		if el == nil {
			return nil
		}
	}
	return el
}

func asElement(node any) *etree.Element {
	switch n := node.(type) {
	case *etree.Document:
		if n == nil {
			return nil
		}
		return &n.Element
	case *etree.Element:
		return n
	}
	return nil
}

func matches(el *etree.Element, name string) bool {
	return name == "" || strings.EqualFold(el.Tag, name)
}
