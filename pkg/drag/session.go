// pkg/drag/session.go
package drag

import (
	"go.uber.org/zap"

	"github.com/xkilldash9x/dragsense/pkg/geometry"
)

// session tracks one pointer-down-to-pointer-up cycle. All fields are fixed
// at creation except the listener IDs, which are set right after the start
// hook runs and cleared at release.
type session struct {
	id       string
	doc      EventTarget
	opts     Options
	item     Element
	itemRect geometry.Rect
	origin   geometry.Point
	log      *zap.Logger

	moveID ListenerID
	upID   ListenerID
}

// messageFor derives a fresh message for ev: target resolution via the
// composed SelectTarget (raw event target by default), displacement relative
// to the session origin.
func (s *session) messageFor(ev PointerEvent) Message {
	d := s.origin.To(ev.Position())
	m := Message{
		Item:     s.item,
		ItemRect: s.itemRect,
		Event:    ev,
		DX:       d.DX,
		DY:       d.DY,
	}
	return m.withTarget(s.resolveTarget(ev))
}

func (s *session) resolveTarget(ev PointerEvent) (Element, bool) {
	if sel := s.opts.SelectTarget; sel != nil {
		return sel(ev)
	}
	return ev.Target, ev.Target != nil
}

// attach registers the temporary document-level move/up listeners.
func (s *session) attach(onMove, onUp PointerHandler) {
	s.moveID = s.doc.AddListener(EventPointerMove, onMove)
	s.upID = s.doc.AddListener(EventPointerUp, onUp)
}

// detach removes both temporary listeners. Callers must detach before
// invoking the drop hook so a synchronous re-entrant drag cannot leak
// listeners.
func (s *session) detach() {
	s.doc.RemoveListener(EventPointerMove, s.moveID)
	s.doc.RemoveListener(EventPointerUp, s.upID)
}
