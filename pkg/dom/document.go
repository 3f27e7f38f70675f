// pkg/dom/document.go

// Package dom hosts drag interactions over parsed HTML. A Document wraps an
// x/net/html tree, assigns page-coordinate geometry to its elements, answers
// hit tests and selector queries, and implements drag.EventTarget so
// listeners built with drag.NewListener attach to it directly.
//
// Tree structure and geometry are not synchronized; mutate and dispatch from
// one goroutine. The listener table is the exception: registration is safe
// from any goroutine.
package dom

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/dragsense/pkg/drag"
	"github.com/xkilldash9x/dragsense/pkg/geometry"
)

// Document is a parsed HTML page with element geometry and pointer event
// plumbing.
type Document struct {
	root  *html.Node
	elems map[*html.Node]*Element
	log   *zap.Logger

	mu        sync.Mutex
	nextID    drag.ListenerID
	listeners map[drag.EventType][]registration
}

type registration struct {
	id drag.ListenerID
	h  drag.PointerHandler
}

var _ drag.EventTarget = (*Document)(nil)

// ParseDocument reads HTML from r and builds a Document over it. A nil
// logger disables logging.
func ParseDocument(r io.Reader, logger *zap.Logger) (*Document, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	d := &Document{
		root:      root,
		elems:     make(map[*html.Node]*Element),
		log:       logger.Named("dom"),
		listeners: make(map[drag.EventType][]registration),
	}
	walkNodes(root, func(n *html.Node) {
		if n.Type == html.ElementNode {
			d.elems[n] = &Element{doc: d, node: n}
		}
	})

	d.log.Debug("document parsed", zap.Int("elements", len(d.elems)))
	return d, nil
}

func walkNodes(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walkNodes(c, visit)
	}
}

// wrap returns the canonical Element for a node, nil when the node is not an
// element of this document.
func (d *Document) wrap(n *html.Node) *Element {
	return d.elems[n]
}

// -- Queries --

// FindFirst returns the first element in document order satisfying the
// filter.
func (d *Document) FindFirst(f drag.Filter) (*Element, bool) {
	var found *Element
	walkNodes(d.root, func(n *html.Node) {
		if found != nil || n.Type != html.ElementNode {
			return
		}
		if el := d.wrap(n); f(el) {
			found = el
		}
	})
	return found, found != nil
}

// FindAll returns every element satisfying the filter, in document order.
func (d *Document) FindAll(f drag.Filter) []*Element {
	var out []*Element
	walkNodes(d.root, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if el := d.wrap(n); f(el) {
			out = append(out, el)
		}
	})
	return out
}

// HitTest returns the element under the given page coordinates: the deepest
// element whose bounds contain the point, later siblings winning ties the way
// paint order would. Elements without assigned bounds never match.
func (d *Document) HitTest(x, y float64) (*Element, bool) {
	p := geometry.Point{X: x, Y: y}
	var best *Element
	bestDepth := -1

	var visit func(n *html.Node, depth int)
	visit = func(n *html.Node, depth int) {
		if n.Type == html.ElementNode {
			if el := d.wrap(n); el.Bounds().Contains(p) && depth >= bestDepth {
				best = el
				bestDepth = depth
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c, depth+1)
		}
	}
	visit(d.root, 0)

	return best, best != nil
}

// -- Event Plumbing --

// AddListener registers a handler for an event type and returns its removal
// handle.
func (d *Document) AddListener(t drag.EventType, h drag.PointerHandler) drag.ListenerID {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	d.listeners[t] = append(d.listeners[t], registration{id: d.nextID, h: h})
	return d.nextID
}

// RemoveListener unregisters a handler. Unknown IDs are ignored.
func (d *Document) RemoveListener(t drag.EventType, id drag.ListenerID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	regs := d.listeners[t]
	for i, reg := range regs {
		if reg.id == id {
			d.listeners[t] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Dispatch delivers a pointer event to every listener registered for its
// type, in registration order. When the event carries no target the document
// fills it in by hit testing the event position. The listener set is
// snapshotted first: handlers adding or removing listeners affect the next
// dispatch, not this one.
func (d *Document) Dispatch(ev drag.PointerEvent) {
	if ev.Target == nil {
		if el, ok := d.HitTest(ev.PageX, ev.PageY); ok {
			ev.Target = el
		}
	}

	d.mu.Lock()
	snapshot := append([]registration(nil), d.listeners[ev.Type]...)
	d.mu.Unlock()

	for _, reg := range snapshot {
		reg.h(ev)
	}
}
