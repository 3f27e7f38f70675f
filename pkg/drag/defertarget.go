// pkg/drag/defertarget.go
package drag

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// targetDebounce stabilizes the reported drop target: a new candidate becomes
// the confirmed target only after the pointer has dwelt on it for the
// configured duration. The pending candidate changes synchronously on every
// resolution; the confirmed target changes only inside the timer callback.
//
// The generation counter is the timer's cancellation scope: scheduling,
// retargeting, a drop and a new session each bump it, and a firing callback
// that observes a stale generation does nothing. That guarantees no stray
// asynchronous drag signal escapes a completed or retargeted wait, even when
// time.Timer.Stop loses the race with an in-flight callback.
type targetDebounce struct {
	duration time.Duration
	next     Options
	log      *zap.Logger

	mu          sync.Mutex
	timer       *time.Timer
	gen         uint64
	pending     Element
	pendingOK   bool
	confirmed   Element
	confirmedOK bool
	lastSeen    Message
	hasLast     bool
}

// WithDeferredTargeting wraps an option set's target selector and hooks
// behind a dwell-time debounce of duration d. Target resolutions return the
// currently confirmed target; a candidate that stays pending for d
// uninterrupted is promoted, at which point the wrapped OnDrag is re-invoked
// with the last seen message carrying the new target, a drag signal without
// pointer movement. That confirmation runs on the timer goroutine, the one
// asynchronous boundary in the engine.
func WithDeferredTargeting(d time.Duration) Modifier {
	return func(base Options) Options {
		t := &targetDebounce{
			duration: d,
			next:     base,
			log:      base.logger().Named("target_debounce"),
		}

		derived := base
		derived.DeferTargeting = 0
		derived.SelectTarget = t.selectTarget
		derived.OnStart = t.start
		derived.OnDrag = t.drag
		derived.OnDrop = t.drop
		return derived
	}
}

func (t *targetDebounce) resolve(ev PointerEvent) (Element, bool) {
	if sel := t.next.SelectTarget; sel != nil {
		el, ok := sel(ev)
		if !ok || el == nil {
			return nil, false
		}
		return el, true
	}
	return ev.Target, ev.Target != nil
}

// selectTarget resolves the candidate through the wrapped selector, restarts
// the dwell timer only when the candidate actually changed (debounce, not
// delay), and synchronously returns the confirmed target, so messages built
// during the dwell period still report the old one.
func (t *targetDebounce) selectTarget(ev PointerEvent) (Element, bool) {
	candidate, ok := t.resolve(ev)

	t.mu.Lock()
	defer t.mu.Unlock()

	if ok != t.pendingOK || candidate != t.pending {
		t.cancelLocked()
		t.pending = candidate
		t.pendingOK = ok
		t.scheduleLocked()
	}
	return t.confirmed, t.confirmedOK
}

// start resets the debounce for a new session: any timer scheduled by the
// pointer-down's own target resolution is cancelled, both pending and
// confirmed go absent, and the start message becomes the last seen. A
// press-and-hold therefore confirms nothing until the pointer first moves.
func (t *targetDebounce) start(m Message) {
	t.mu.Lock()
	t.cancelLocked()
	t.pending = nil
	t.pendingOK = false
	t.confirmed = nil
	t.confirmedOK = false
	t.lastSeen = m
	t.hasLast = true
	h := t.next.OnStart
	t.mu.Unlock()

	if h != nil {
		h(m)
	}
}

// drag records the message as last seen and forwards it with the target
// overwritten to the confirmed one, never the pending one.
func (t *targetDebounce) drag(m Message) {
	t.mu.Lock()
	t.lastSeen = m
	t.hasLast = true
	confirmed, ok := t.confirmed, t.confirmedOK
	h := t.next.OnDrag
	t.mu.Unlock()

	if h != nil {
		h(m.withTarget(confirmed, ok))
	}
}

// drop cancels any outstanding dwell timer and forwards with the most
// recently confirmed target. A pending candidate that never finished its
// dwell is not reported.
func (t *targetDebounce) drop(m Message) {
	t.mu.Lock()
	t.cancelLocked()
	confirmed, ok := t.confirmed, t.confirmedOK
	h := t.next.OnDrop
	t.mu.Unlock()

	if h != nil {
		h(m.withTarget(confirmed, ok))
	}
}

// scheduleLocked arms the dwell timer for the current pending candidate.
// Caller holds mu.
func (t *targetDebounce) scheduleLocked() {
	t.gen++
	gen := t.gen
	t.timer = time.AfterFunc(t.duration, func() {
		t.fire(gen)
	})
}

// cancelLocked invalidates any armed timer and any in-flight callback.
// Caller holds mu.
func (t *targetDebounce) cancelLocked() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// fire promotes the pending candidate to confirmed and re-emits the last seen
// drag message with the new target. This is the only place the confirmed
// target changes during a session.
func (t *targetDebounce) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.confirmed = t.pending
	t.confirmedOK = t.pendingOK

	var (
		m Message
		h Hook
	)
	if t.hasLast {
		if next := t.next.OnDrag; next != nil {
			m = t.lastSeen.withTarget(t.confirmed, t.confirmedOK)
			h = next
		}
	}
	present := t.confirmedOK
	t.mu.Unlock()

	t.log.Debug("drop target confirmed", zap.Bool("present", present))
	if h != nil {
		h(m)
	}
}
