// pkg/dom/document_test.go
package dom_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/dragsense/pkg/dom"
	"github.com/xkilldash9x/dragsense/pkg/drag"
	"github.com/xkilldash9x/dragsense/pkg/geometry"
)

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestParseDocumentReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("connection reset")
	_, err := dom.ParseDocument(failingReader{err: readErr}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.Contains(t, err.Error(), "parse document")
}

func TestFindFirstDocumentOrder(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)

	el, ok := doc.FindFirst(dom.MustCompileFilter("li.card"))
	require.True(t, ok)
	assert.Equal(t, "card-1", el.ID())

	_, ok = doc.FindFirst(dom.MustCompileFilter(".missing"))
	assert.False(t, ok)
}

func TestElementAccessors(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)

	card, ok := doc.FindFirst(dom.MustCompileFilter("#card-2"))
	require.True(t, ok)

	assert.Equal(t, "li", card.Tag())
	assert.Equal(t, "card-2", card.ID())
	assert.Equal(t, []string{"card"}, card.Classes())
	assert.True(t, card.HasClass("card"))
	assert.False(t, card.HasClass("urgent"))

	state, ok := card.Attr("data-state")
	require.True(t, ok)
	assert.Equal(t, "open archived", state)
	_, ok = card.Attr("data-missing")
	assert.False(t, ok)

	parent, ok := card.Parent()
	require.True(t, ok)
	assert.Equal(t, "list-a", parent.(*dom.Element).ID())
}

// boardGeometry lays the fixture out: two lists side by side inside the
// board, cards stacked inside the first.
func boardGeometry(t *testing.T, doc *dom.Document) {
	t.Helper()
	set := func(selector string, r geometry.Rect) {
		el, ok := doc.FindFirst(dom.MustCompileFilter(selector))
		require.True(t, ok, "fixture element %s", selector)
		el.SetBounds(r)
	}
	set("#board", geometry.Rect{X: 10, Y: 10, Width: 380, Height: 280})
	set("#list-a", geometry.Rect{X: 20, Y: 20, Width: 170, Height: 260})
	set("#card-1", geometry.Rect{X: 30, Y: 30, Width: 150, Height: 40})
	set("#card-2", geometry.Rect{X: 30, Y: 80, Width: 150, Height: 40})
	set("#card-3", geometry.Rect{X: 30, Y: 130, Width: 150, Height: 40})
	set("#list-b", geometry.Rect{X: 210, Y: 20, Width: 170, Height: 260})
	set("#card-4", geometry.Rect{X: 220, Y: 30, Width: 150, Height: 40})
}

func TestHitTest(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)
	boardGeometry(t, doc)

	testCases := []struct {
		name   string
		x, y   float64
		wantID string
		wantOK bool
	}{
		{name: "deepest element wins", x: 40, y: 40, wantID: "card-1", wantOK: true},
		{name: "list below its cards", x: 40, y: 250, wantID: "list-a", wantOK: true},
		{name: "board outside both lists", x: 200, y: 150, wantID: "board", wantOK: true},
		{name: "second list", x: 250, y: 150, wantID: "list-b", wantOK: true},
		{name: "outside everything", x: 500, y: 500, wantOK: false},
		{name: "just past an inclusive edge", x: 30, y: 30, wantID: "card-1", wantOK: true},
		{name: "exclusive right edge falls through", x: 180, y: 40, wantID: "list-a", wantOK: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			el, ok := doc.HitTest(tc.x, tc.y)
			require.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantID, el.ID())
			}
		})
	}
}

func TestHitTestLaterSiblingWins(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)
	listA, ok := doc.FindFirst(dom.MustCompileFilter("#list-a"))
	require.True(t, ok)
	listB, ok := doc.FindFirst(dom.MustCompileFilter("#list-b"))
	require.True(t, ok)

	// Overlapping siblings: the later one sits on top.
	listA.SetBounds(geometry.Rect{X: 0, Y: 0, Width: 100, Height: 100})
	listB.SetBounds(geometry.Rect{X: 50, Y: 0, Width: 100, Height: 100})

	el, ok := doc.HitTest(75, 50)
	require.True(t, ok)
	assert.Equal(t, "list-b", el.ID())

	el, ok = doc.HitTest(25, 50)
	require.True(t, ok)
	assert.Equal(t, "list-a", el.ID())
}

// -- Event Plumbing --

func TestListenerRegistrationOrder(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)

	var order []string
	doc.AddListener(drag.EventPointerMove, func(drag.PointerEvent) { order = append(order, "first") })
	id := doc.AddListener(drag.EventPointerMove, func(drag.PointerEvent) { order = append(order, "second") })
	doc.AddListener(drag.EventPointerUp, func(drag.PointerEvent) { order = append(order, "up") })

	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove})
	assert.Equal(t, []string{"first", "second"}, order, "only same-type listeners run, in registration order")

	doc.RemoveListener(drag.EventPointerMove, id)
	doc.RemoveListener(drag.EventPointerMove, 9999)
	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove})
	assert.Equal(t, []string{"first", "second", "first"}, order)
}

func TestDispatchSnapshotsListeners(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)

	var calls int
	var id drag.ListenerID
	id = doc.AddListener(drag.EventPointerMove, func(drag.PointerEvent) {
		calls++
		// Self-removal and late registration take effect next dispatch.
		doc.RemoveListener(drag.EventPointerMove, id)
		doc.AddListener(drag.EventPointerMove, func(drag.PointerEvent) { calls += 10 })
	})

	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove})
	assert.Equal(t, 1, calls, "listeners added during dispatch must not see the triggering event")

	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove})
	assert.Equal(t, 11, calls, "the original listener removed itself; the new one remains")
}

func TestDispatchFillsTargetByHitTest(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)
	boardGeometry(t, doc)

	var seen []drag.Element
	doc.AddListener(drag.EventPointerMove, func(ev drag.PointerEvent) { seen = append(seen, ev.Target) })

	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove, PageX: 40, PageY: 40})
	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove, PageX: 500, PageY: 500})

	require.Len(t, seen, 2)
	card, ok := seen[0].(*dom.Element)
	require.True(t, ok)
	assert.Equal(t, "card-1", card.ID())
	assert.Nil(t, seen[1], "an event over empty space keeps its nil target")
}

func TestListenerTableIsConcurrencySafe(t *testing.T) {
	defer goleak.VerifyNone(t)

	doc := parseBoard(t)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				id := doc.AddListener(drag.EventPointerMove, func(drag.PointerEvent) {})
				doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove})
				doc.RemoveListener(drag.EventPointerMove, id)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Every registration was matched by a removal.
	var calls int
	doc.AddListener(drag.EventPointerMove, func(drag.PointerEvent) { calls++ })
	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove})
	assert.Equal(t, 1, calls)
}

// -- Drag Over a Document --

func TestDragAcrossLists(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)
	boardGeometry(t, doc)

	var rec struct {
		starts, drags, drops []drag.Message
	}

	opts := drag.Options{
		OnStart:      func(m drag.Message) { rec.starts = append(rec.starts, m) },
		OnDrag:       func(m drag.Message) { rec.drags = append(rec.drags, m) },
		OnDrop:       func(m drag.Message) { rec.drops = append(rec.drops, m) },
		SelectItem:   drag.MakeParentSelector(dom.MustCompileFilter("li.card")),
		SelectTarget: drag.MakeParentSelector(dom.MustCompileFilter("ul.drop-zone")),
		Logger:       zaptest.NewLogger(t),
	}
	doc.AddListener(drag.EventPointerDown, drag.NewListener(doc, opts))

	// Grab card 1, cross to the second list, release.
	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerDown, PageX: 40, PageY: 40, Button: drag.ButtonLeft})
	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove, PageX: 120, PageY: 60, Button: drag.ButtonLeft})
	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerMove, PageX: 250, PageY: 150, Button: drag.ButtonLeft})
	doc.Dispatch(drag.PointerEvent{Type: drag.EventPointerUp, PageX: 250, PageY: 150, Button: drag.ButtonLeft})

	require.Len(t, rec.starts, 1)
	item, ok := rec.starts[0].Item.(*dom.Element)
	require.True(t, ok)
	assert.Equal(t, "card-1", item.ID())
	assert.Equal(t, geometry.Rect{X: 30, Y: 30, Width: 150, Height: 40}, rec.starts[0].ItemRect)

	require.Len(t, rec.drags, 2)
	_, ok = rec.drags[0].Target()
	assert.False(t, ok, "the first list is not a drop zone")

	target, ok := rec.drags[1].Target()
	require.True(t, ok)
	assert.Equal(t, "list-b", target.(*dom.Element).ID())
	assert.Equal(t, 210.0, rec.drags[1].DX)
	assert.Equal(t, 110.0, rec.drags[1].DY)

	require.Len(t, rec.drops, 1)
	target, ok = rec.drops[0].Target()
	require.True(t, ok)
	assert.Equal(t, "list-b", target.(*dom.Element).ID())

	coords, ok := drag.TargetCoordsFrom(rec.drops[0])
	require.True(t, ok)
	assert.Equal(t, geometry.Edges{Top: 130, Right: 130, Bottom: 130, Left: 40}, coords.Edges)
	assert.InDelta(t, 40.0/170.0, coords.UnitX, 1e-12)
	assert.InDelta(t, 0.5, coords.UnitY, 1e-12)

	// The dragged card still reports its displaced corner.
	assert.Equal(t, geometry.Point{X: 240, Y: 140}, drag.ItemPositionFrom(rec.drops[0]))
}
