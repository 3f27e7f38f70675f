// pkg/dom/element.go
package dom

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/dragsense/pkg/drag"
	"github.com/xkilldash9x/dragsense/pkg/geometry"
)

// Element wraps one HTML element node. A Document hands out exactly one
// wrapper per node, so two Elements are the same element exactly when their
// pointers are equal; that is what makes them usable as drag.Element.
type Element struct {
	doc  *Document
	node *html.Node
	rect geometry.Rect
}

var _ drag.Element = (*Element)(nil)

// Bounds returns the element's current bounding rectangle in page
// coordinates. Parsed documents carry no geometry; it stays zero until
// SetBounds is called.
func (e *Element) Bounds() geometry.Rect { return e.rect }

// SetBounds assigns the element's bounding rectangle. A zero-size rectangle
// makes the element invisible to hit testing.
func (e *Element) SetBounds(r geometry.Rect) { e.rect = r }

// Parent returns the nearest ancestor element, skipping non-element nodes.
func (e *Element) Parent() (drag.Element, bool) {
	for n := e.node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			return e.doc.wrap(n), true
		}
	}
	return nil, false
}

// Tag returns the element's lowercase tag name.
func (e *Element) Tag() string { return e.node.Data }

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// ID returns the element's id attribute, empty when unset.
func (e *Element) ID() string {
	id, _ := e.Attr("id")
	return id
}

// Classes returns the element's class list.
func (e *Element) Classes() []string {
	class, ok := e.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(class)
}

// HasClass reports whether the element carries the named class.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

func (e *Element) parentElement() *Element {
	for n := e.node.Parent; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			return e.doc.wrap(n)
		}
	}
	return nil
}

func (e *Element) prevElement() *Element {
	for n := e.node.PrevSibling; n != nil; n = n.PrevSibling {
		if n.Type == html.ElementNode {
			return e.doc.wrap(n)
		}
	}
	return nil
}
