// pkg/drag/threshold.go
package drag

import (
	"sync"

	"go.uber.org/zap"
)

// thresholdGate suppresses start/drag/drop signaling until the pointer has
// moved far enough from its origin. States are idle and active; the gate
// resets to idle on every synthesized start, so one gate instance serves
// consecutive sessions.
type thresholdGate struct {
	limitSq float64
	next    Options
	log     *zap.Logger

	mu     sync.Mutex
	active bool
}

// WithDragThreshold wraps the three hooks of an option set behind a
// displacement gate of px pixels. Selectors pass through untouched. The
// caller's OnStart first fires once squared displacement strictly exceeds
// px², with the crossing message rather than the initial zero-displacement
// one; a session that never crosses produces no signals at all. Values are
// not validated: zero gates until the first movement, negative values behave
// like their magnitude.
func WithDragThreshold(px float64) Modifier {
	return func(base Options) Options {
		g := &thresholdGate{
			limitSq: px * px,
			next:    base,
			log:     base.logger().Named("drag_threshold"),
		}

		derived := base
		derived.DragThreshold = 0
		derived.OnStart = g.start
		derived.OnDrag = g.drag
		derived.OnDrop = g.drop
		return derived
	}
}

// start swallows the synthesized start signal; the wrapped OnStart is held
// back until the threshold is crossed.
func (g *thresholdGate) start(Message) {
	g.mu.Lock()
	g.active = false
	g.mu.Unlock()
}

func (g *thresholdGate) drag(m Message) {
	g.mu.Lock()
	if !g.active {
		distSq := m.Delta().MagSq()
		if distSq > g.limitSq {
			g.active = true
			h := g.next.OnStart
			g.mu.Unlock()

			g.log.Debug("drag threshold crossed", zap.Float64("distance_sq", distSq))
			if h != nil {
				h(m)
			}
			return
		}
		g.mu.Unlock()
		return
	}
	h := g.next.OnDrag
	g.mu.Unlock()

	if h != nil {
		h(m)
	}
}

func (g *thresholdGate) drop(m Message) {
	g.mu.Lock()
	if !g.active {
		g.mu.Unlock()
		g.log.Debug("drop suppressed, drag threshold never crossed")
		return
	}
	h := g.next.OnDrop
	g.mu.Unlock()

	if h != nil {
		h(m)
	}
}
