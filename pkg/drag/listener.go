// pkg/drag/listener.go
package drag

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// listener is the state behind one NewListener call: the composed options and
// at most one live session.
type listener struct {
	doc    EventTarget
	opts   Options
	log    *zap.Logger
	active *session
}

// NewListener produces the pointer-down handler for one drag configuration.
// The host attaches the returned handler wherever pointer-down events
// originate; each invocation starts an independent session that tracks
// movement through temporary document-level listeners until release.
//
// Configured tuning fields are folded in here: move throttle first, then the
// drag threshold, then deferred targeting, so the threshold and debounce
// observe the raw event stream while the caller's OnDrag sees the throttled
// one. Hooks and the session lifecycle assume events arrive on a single
// goroutine; when deferred targeting is active its confirmation signal
// arrives on the timer goroutine instead (see WithDeferredTargeting).
func NewListener(doc EventTarget, opts Options) PointerHandler {
	var mods []Modifier
	if opts.MoveThrottle != 0 {
		mods = append(mods, WithMoveThrottle(opts.MoveThrottle))
	}
	if opts.DragThreshold != 0 {
		mods = append(mods, WithDragThreshold(opts.DragThreshold))
	}
	if opts.DeferTargeting != 0 {
		mods = append(mods, WithDeferredTargeting(opts.DeferTargeting))
	}

	l := &listener{
		doc:  doc,
		opts: Wrap(opts, mods...),
		log:  opts.logger().Named("drag_listener"),
	}
	return l.pointerDown
}

// pointerDown runs the session-start sequence: capture origin, resolve the
// item, capture its rectangle once, signal start, then attach move/up
// listeners.
func (l *listener) pointerDown(ev PointerEvent) {
	if l.active != nil {
		l.log.Debug("pointer down ignored, session already active",
			zap.String("session_id", l.active.id))
		return
	}

	item, ok := l.resolveItem(ev)
	if !ok || item == nil {
		l.log.Debug("drag not started, no item resolved",
			zap.Float64("page_x", ev.PageX),
			zap.Float64("page_y", ev.PageY))
		return
	}

	id := uuid.New().String()
	s := &session{
		id:       id,
		doc:      l.doc,
		opts:     l.opts,
		item:     item,
		itemRect: item.Bounds(),
		origin:   ev.Position(),
		log:      l.log.With(zap.String("session_id", id)),
	}
	l.active = s

	s.log.Debug("drag session started",
		zap.Float64("page_x", ev.PageX),
		zap.Float64("page_y", ev.PageY))

	if h := l.opts.OnStart; h != nil {
		h(s.messageFor(ev))
	}

	s.attach(
		func(ev PointerEvent) { l.pointerMove(s, ev) },
		func(ev PointerEvent) { l.pointerUp(s, ev) },
	)
}

func (l *listener) resolveItem(ev PointerEvent) (Element, bool) {
	if sel := l.opts.SelectItem; sel != nil {
		return sel(ev)
	}
	return ev.Target, ev.Target != nil
}

func (l *listener) pointerMove(s *session, ev PointerEvent) {
	m := s.messageFor(ev)
	if h := l.opts.OnDrag; h != nil {
		h(m)
	}
}

// pointerUp tears the session down. Listener detachment and clearing the
// active slot happen before the drop hook runs, so a drop hook that
// synchronously starts another drag gets a clean listener.
func (l *listener) pointerUp(s *session, ev PointerEvent) {
	s.detach()
	l.active = nil

	s.log.Debug("drag session finished",
		zap.Float64("page_x", ev.PageX),
		zap.Float64("page_y", ev.PageY))

	m := s.messageFor(ev)
	if h := l.opts.OnDrop; h != nil {
		h(m)
	}
}
