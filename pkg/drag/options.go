// pkg/drag/options.go

// Package drag is a drag-and-drop interaction engine. It senses pointer
// down/move/up sequences and derives normalized drag messages for caller
// supplied hooks; it renders nothing and mutates nothing. The engine is
// configured through a single Options value, optionally reshaped by modifiers
// (drag threshold, deferred targeting, move throttle) that wrap hooks and
// selectors while passing everything else through unchanged.
package drag

import (
	"time"

	"go.uber.org/zap"
)

// Hook reacts to one phase of a drag interaction.
type Hook func(Message)

// Options is the engine's whole configuration surface. The zero value is
// usable: hooks and selectors are optional, zero tuning values leave the
// corresponding modifier disabled, and a nil Logger means no logging.
type Options struct {
	// OnStart fires when a session starts, OnDrag on every tracked pointer
	// move, OnDrop at release. Each is optional.
	OnStart Hook
	OnDrag  Hook
	OnDrop  Hook

	// SelectItem resolves the dragged item at pointer-down; SelectTarget
	// resolves the drop candidate for every message. Both default to the raw
	// event target.
	SelectItem   SelectorFunc
	SelectTarget SelectorFunc

	// DragThreshold is the pixel displacement a pointer must exceed before
	// start/drag/drop signals fire. Zero disables the gate. Values are not
	// validated.
	DragThreshold float64

	// DeferTargeting is how long the pointer must dwell over a new candidate
	// before it becomes the reported target. Zero disables the debounce.
	DeferTargeting time.Duration

	// MoveThrottle caps how often OnDrag fires during continuous movement.
	// Zero disables the throttle.
	MoveThrottle time.Duration

	Logger *zap.Logger
}

// Modifier derives a new option set from an existing one, overriding the
// hooks/selectors it cares about and passing the rest through unchanged. The
// input is never mutated.
type Modifier func(Options) Options

// Wrap applies modifiers left to right, each wrapping the previous
// derivative. The base value is never mutated, only shadowed.
func Wrap(base Options, mods ...Modifier) Options {
	opts := base
	for _, mod := range mods {
		opts = mod(opts)
	}
	return opts
}

var nopLogger = zap.NewNop()

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return nopLogger
}
