// pkg/drag/coords.go
package drag

import "github.com/xkilldash9x/dragsense/pkg/geometry"

// TargetCoords describes the pointer's position relative to the target's
// bounding box: signed pixel offsets measured inward from each edge, plus the
// position as fractions of the target's width and height. Offsets are
// negative outside the box; fractions leave [0,1] there.
type TargetCoords struct {
	Edges        geometry.Edges
	UnitX, UnitY float64
}

// TargetCoordsFrom derives target-relative coordinates from a message. The
// result is absent exactly when the message's target is absent. A zero-size
// target yields non-finite fractions; callers that feed degenerate geometry
// get it back.
func TargetCoordsFrom(m Message) (TargetCoords, bool) {
	target, ok := m.Target()
	if !ok {
		return TargetCoords{}, false
	}

	r := target.Bounds()
	x, y := m.Event.PageX, m.Event.PageY
	edges := geometry.Edges{
		Top:    y - r.Top(),
		Right:  r.Right() - x,
		Bottom: r.Bottom() - y,
		Left:   x - r.Left(),
	}
	return TargetCoords{
		Edges: edges,
		UnitX: edges.Left / r.Width,
		UnitY: edges.Top / r.Height,
	}, true
}

// ItemPositionFrom computes where the item's top-left corner sits after
// applying the message's displacement to its captured rectangle, e.g. for
// positioning a drag ghost. Pure: repeated calls with the same message yield
// the same point.
func ItemPositionFrom(m Message) geometry.Point {
	return m.ItemRect.TopLeft().Add(m.Delta())
}
