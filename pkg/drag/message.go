// pkg/drag/message.go
package drag

import "github.com/xkilldash9x/dragsense/pkg/geometry"

// Message is the immutable payload delivered to hooks. A fresh value is
// derived for every signal; hooks must not expect two messages to share
// anything but the session's item and its captured rectangle.
type Message struct {
	// Item is the element being dragged, resolved once at session start.
	Item Element
	// ItemRect is the item's bounding rectangle captured at session start. It
	// does not track later item movement.
	ItemRect geometry.Rect
	// Event is the pointer event this message was derived from.
	Event PointerEvent
	// DX and DY are the pointer's displacement from the session's initial
	// position. Leftward and upward movement is negative.
	DX, DY float64

	target    Element
	hasTarget bool
}

// Target returns the resolved drop candidate. It is absent when nothing
// matched, or when the candidate resolved to the item itself: a target cannot
// be itself.
func (m Message) Target() (Element, bool) {
	if !m.hasTarget {
		return nil, false
	}
	return m.target, true
}

// Delta returns the displacement as a vector.
func (m Message) Delta() geometry.Vector {
	return geometry.Vector{DX: m.DX, DY: m.DY}
}

// withTarget returns a copy carrying the given target. The item-collision
// rule is applied here so it holds at every point a target enters a message,
// including modifier overwrites.
func (m Message) withTarget(el Element, ok bool) Message {
	if el == nil {
		ok = false
	}
	if ok && sameElement(el, m.Item) {
		el, ok = nil, false
	}
	if !ok {
		el = nil
	}
	m.target = el
	m.hasTarget = ok
	return m
}
