// pkg/dom/match_test.go
package dom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/dragsense/pkg/dom"
	"github.com/xkilldash9x/dragsense/pkg/drag"
	"github.com/xkilldash9x/dragsense/pkg/geometry"
)

const boardHTML = `<html><body>
<div id="board" class="board dark">
	<ul id="list-a" class="list" data-role="source">
		<li id="card-1" class="card urgent" data-state="open">One</li>
		<li id="card-2" class="card" data-state="open archived">Two</li>
		<li id="card-3" class="card done" data-state="closed">Three</li>
	</ul>
	<ul id="list-b" class="list drop-zone" data-role="target" lang="en-US">
		<li id="card-4" class="card">Four</li>
	</ul>
</div>
</body></html>`

func parseBoard(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseDocument(strings.NewReader(boardHTML), nil)
	require.NoError(t, err)
	return doc
}

func idsOf(els []*dom.Element) []string {
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, el.ID())
	}
	return out
}

// -- Selector Matching --

func TestCompileFilterMatching(t *testing.T) {
	t.Parallel()

	doc := parseBoard(t)

	testCases := []struct {
		selector string
		wantIDs  []string
	}{
		{selector: "li", wantIDs: []string{"card-1", "card-2", "card-3", "card-4"}},
		{selector: ".card.urgent", wantIDs: []string{"card-1"}},
		{selector: "#list-b", wantIDs: []string{"list-b"}},
		{selector: "div li", wantIDs: []string{"card-1", "card-2", "card-3", "card-4"}},
		{selector: "ul.list > li.done", wantIDs: []string{"card-3"}},
		{selector: "body > div", wantIDs: []string{"board"}},
		{selector: "#card-1 + li", wantIDs: []string{"card-2"}},
		{selector: "#card-1 ~ li", wantIDs: []string{"card-2", "card-3"}},
		{selector: "[data-role=target]", wantIDs: []string{"list-b"}},
		{selector: "[data-state~=archived]", wantIDs: []string{"card-2"}},
		{selector: "[lang|=en]", wantIDs: []string{"list-b"}},
		{selector: "[id^=card]", wantIDs: []string{"card-1", "card-2", "card-3", "card-4"}},
		{selector: `[id$="3"]`, wantIDs: []string{"card-3"}},
		{selector: "[data-state*=ose]", wantIDs: []string{"card-3"}},
		{selector: "li.card, ul.list", wantIDs: []string{"list-a", "card-1", "card-2", "card-3", "list-b", "card-4"}},
		{selector: ".board *", wantIDs: []string{"list-a", "card-1", "card-2", "card-3", "list-b", "card-4"}},
		{selector: ".missing", wantIDs: []string{}},
		{selector: "li > ul", wantIDs: []string{}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.selector, func(t *testing.T) {
			t.Parallel()

			f, err := dom.CompileFilter(tc.selector)
			require.NoError(t, err)
			assert.Equal(t, tc.wantIDs, idsOf(doc.FindAll(f)))
		})
	}
}

func TestCompileFilterRejectsInvalid(t *testing.T) {
	t.Parallel()

	for _, selector := range []string{"", "##", "li >", "[data-role", "a,,b"} {
		selector := selector
		t.Run(selector, func(t *testing.T) {
			t.Parallel()

			_, err := dom.CompileFilter(selector)
			assert.Error(t, err)
		})
	}
}

func TestMustCompileFilter(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { dom.MustCompileFilter("li.card") })
	assert.Panics(t, func() { dom.MustCompileFilter("##") })
}

// foreignElement is a drag.Element that does not come from a Document.
type foreignElement struct{}

func (foreignElement) Bounds() geometry.Rect { return geometry.Rect{} }

func (foreignElement) Parent() (drag.Element, bool) { return nil, false }

func TestCompiledFilterRejectsForeignElements(t *testing.T) {
	t.Parallel()

	f, err := dom.CompileFilter("*")
	require.NoError(t, err)
	assert.False(t, f(foreignElement{}), "elements outside a document never match")
}
