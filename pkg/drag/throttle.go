// pkg/drag/throttle.go
package drag

import (
	"time"

	"golang.org/x/time/rate"
)

// moveThrottle drops drag signals that arrive faster than the configured
// interval. Hosts deliver move events at display rate or higher; callers
// whose OnDrag does real work (layout reads, list reordering previews) rarely
// want every one.
type moveThrottle struct {
	limiter *rate.Limiter
	next    Options
}

// WithMoveThrottle wraps an option set's OnDrag so it fires at most once per
// min interval; intermediate moves are discarded, not queued. Start and drop
// signaling is untouched, so the release position always comes through
// exactly. Combine with the other modifiers via NewListener or Wrap; applied
// first it pares only what the caller sees while threshold and deferred
// targeting still observe the full stream.
func WithMoveThrottle(min time.Duration) Modifier {
	return func(base Options) Options {
		t := &moveThrottle{
			limiter: rate.NewLimiter(rate.Every(min), 1),
			next:    base,
		}

		derived := base
		derived.MoveThrottle = 0
		derived.OnDrag = t.drag
		return derived
	}
}

func (t *moveThrottle) drag(m Message) {
	h := t.next.OnDrag
	if h == nil {
		return
	}
	if !t.limiter.Allow() {
		return
	}
	h(m)
}
