// pkg/trace/synth.go

package trace

import (
	"math"
	"math/rand"
	"time"

	"github.com/xkilldash9x/dragsense/pkg/drag"
	"github.com/xkilldash9x/dragsense/pkg/geometry"
)

// Fitts's law constants for movement time, tuned for a small on-page target.
const (
	fittsBase   = 180.0 // intercept, in milliseconds
	fittsPerBit = 120.0 // milliseconds per bit of difficulty
	fittsWidth  = 30.0  // assumed target width, in pixels

	defaultStepInterval = 16 * time.Millisecond
)

// Synthesizer generates pointer streams that resemble a human drag: movement
// time follows Fitts's law, position follows an eased cubic Bezier curve, and
// a seeded noise source can rough up the intermediate samples.
//
// The zero value produces a straight, noise-free drag sampled at roughly
// 60Hz. Equal Synthesizer values produce equal streams.
type Synthesizer struct {
	// StepInterval is the spacing between move frames. Zero means 16ms.
	StepInterval time.Duration
	// Curvature bows the path sideways by this fraction of its length.
	Curvature float64
	// Jitter is the standard deviation, in pixels, of noise added to each
	// intermediate sample. The endpoints stay exact.
	Jitter float64
	// Seed fixes the noise source.
	Seed int64
}

// Drag synthesizes a stream that presses at from, moves to to along an eased
// curve, and releases.
func (s Synthesizer) Drag(name string, from, to geometry.Point) *Stream {
	step := s.StepInterval
	if step <= 0 {
		step = defaultStepInterval
	}

	dist := from.To(to).Mag()
	steps := int(moveDuration(dist) / step)
	if steps < 2 {
		steps = 2
	}
	if dist < 1 {
		// Sub-pixel travel collapses to a single settling move.
		steps = 1
	}

	rng := rand.New(rand.NewSource(s.Seed))
	p1, p2 := s.controlPoints(from, to, dist)

	frames := make([]Frame, 0, steps+2)
	frames = append(frames, Frame{
		Type:   FrameDown,
		X:      from.X,
		Y:      from.Y,
		Button: string(drag.ButtonLeft),
	})
	for i := 1; i <= steps; i++ {
		t := easeInOutCubic(float64(i) / float64(steps))
		x, y := bezierAt(from, p1, p2, to, t)
		if i < steps && s.Jitter > 0 {
			x += rng.NormFloat64() * s.Jitter
			y += rng.NormFloat64() * s.Jitter
		}
		frames = append(frames, Frame{
			AtMs: int64(i) * step.Milliseconds(),
			Type: FrameMove,
			X:    x,
			Y:    y,
		})
	}
	frames = append(frames, Frame{
		AtMs:   int64(steps+1) * step.Milliseconds(),
		Type:   FrameUp,
		X:      to.X,
		Y:      to.Y,
		Button: string(drag.ButtonLeft),
	})

	return &Stream{Name: name, Frames: frames}
}

// moveDuration models how long a human takes to cover dist pixels.
func moveDuration(dist float64) time.Duration {
	difficulty := math.Log2(1.0 + dist/fittsWidth)
	return time.Duration(fittsBase+fittsPerBit*difficulty) * time.Millisecond
}

// easeInOutCubic accelerates through the first half of the motion and brakes
// through the second.
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// controlPoints places the two Bezier control points a third and two thirds
// of the way along the straight path, pushed sideways by Curvature. In page
// coordinates the perpendicular points right of the travel direction, so
// positive Curvature bows a left-to-right drag downward.
func (s Synthesizer) controlPoints(from, to geometry.Point, dist float64) (geometry.Point, geometry.Point) {
	if dist == 0 {
		return from, to
	}

	dir := from.To(to)
	perpX := -dir.DY / dist
	perpY := dir.DX / dist
	bow := dist * s.Curvature

	p1 := geometry.Point{
		X: from.X + dir.DX/3 + perpX*bow,
		Y: from.Y + dir.DY/3 + perpY*bow,
	}
	p2 := geometry.Point{
		X: from.X + dir.DX*2/3 + perpX*bow,
		Y: from.Y + dir.DY*2/3 + perpY*bow,
	}
	return p1, p2
}

// bezierAt evaluates the cubic Bezier p0..p3 at parameter t.
func bezierAt(p0, p1, p2, p3 geometry.Point, t float64) (float64, float64) {
	omt := 1 - t
	omt2 := omt * omt
	omt3 := omt2 * omt
	t2 := t * t
	t3 := t2 * t

	x := omt3*p0.X + 3*omt2*t*p1.X + 3*omt*t2*p2.X + t3*p3.X
	y := omt3*p0.Y + 3*omt2*t*p1.Y + 3*omt*t2*p2.Y + t3*p3.Y
	return x, y
}
