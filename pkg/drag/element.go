// pkg/drag/element.go
package drag

import "github.com/xkilldash9x/dragsense/pkg/geometry"

// Element is a visual node able to participate in a drag interaction. The
// engine needs nothing beyond bounding-box geometry and ancestry; pkg/dom
// provides the HTML-backed implementation. Implementations must be comparable
// (use pointer receivers): sessions establish identity with ==.
type Element interface {
	// Bounds returns the element's current bounding rectangle in page
	// coordinates.
	Bounds() geometry.Rect
	// Parent returns the element's parent, if it has one.
	Parent() (Element, bool)
}

// Filter reports whether an element satisfies a match condition. dom.CompileFilter
// builds one from a CSS-style selector; any func of this shape works.
type Filter func(Element) bool

// SelectorFunc resolves the item or target element for a pointer event.
// Returning ok=false means nothing resolved, which is a valid outcome, not an
// error.
type SelectorFunc func(PointerEvent) (Element, bool)

// SelectParent walks from el up through its ancestors, inclusive of el itself,
// and returns the first element satisfying the filter.
func SelectParent(el Element, filter Filter) (Element, bool) {
	for el != nil {
		if filter(el) {
			return el, true
		}
		parent, ok := el.Parent()
		if !ok {
			break
		}
		el = parent
	}
	return nil, false
}

// MakeParentSelector builds a SelectorFunc that resolves via an ancestor walk
// from the event's raw target. Usable as both SelectItem and SelectTarget.
func MakeParentSelector(filter Filter) SelectorFunc {
	return func(ev PointerEvent) (Element, bool) {
		if ev.Target == nil {
			return nil, false
		}
		return SelectParent(ev.Target, filter)
	}
}

// sameElement reports whether a and b are the same element. Nil never equals
// anything, including itself.
func sameElement(a, b Element) bool {
	if a == nil || b == nil {
		return false
	}
	return a == b
}
