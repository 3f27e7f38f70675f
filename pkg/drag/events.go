// pkg/drag/events.go
package drag

import (
	"time"

	"github.com/xkilldash9x/dragsense/pkg/geometry"
)

// EventType identifies a pointer event phase.
type EventType string

const (
	EventPointerDown EventType = "pointerdown"
	EventPointerMove EventType = "pointermove"
	EventPointerUp   EventType = "pointerup"
)

// Button identifies which pointer button an event concerns.
type Button string

const (
	ButtonNone   Button = ""
	ButtonLeft   Button = "left"
	ButtonMiddle Button = "middle"
	ButtonRight  Button = "right"
)

// PointerEvent is one pointer occurrence as delivered by the host. Target is
// the element under the pointer, nil when the pointer is over nothing the
// host tracks.
type PointerEvent struct {
	Type         EventType
	PageX, PageY float64
	Button       Button
	Time         time.Time
	Target       Element
}

// Position returns the event's page coordinates as a point.
func (ev PointerEvent) Position() geometry.Point {
	return geometry.Point{X: ev.PageX, Y: ev.PageY}
}

// PointerHandler consumes pointer events.
type PointerHandler func(PointerEvent)

// ListenerID identifies a registered handler so it can be removed again
// (function values are not comparable).
type ListenerID uint64

// EventTarget is the document-like surface a session attaches its temporary
// move/up listeners to. dom.Document implements it; hosts with their own
// event plumbing can substitute anything that dispatches synchronously on a
// single goroutine.
type EventTarget interface {
	AddListener(t EventType, h PointerHandler) ListenerID
	RemoveListener(t EventType, id ListenerID)
}
