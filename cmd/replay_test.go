// cmd/replay_test.go
package cmd

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boxesPage = `<html><body><div id="item"></div><div id="zone" class="drop-zone"></div></body></html>`

const boxesLayout = `[
  {"selector": "#item", "x": 0, "y": 0, "width": 50, "height": 50},
  {"selector": "#zone", "x": 100, "y": 0, "width": 100, "height": 100}
]`

// decodeSignals parses replay's JSON-lines output.
func decodeSignals(t *testing.T, output string) []signalRecord {
	t.Helper()
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return nil
	}
	var records []signalRecord
	for _, line := range strings.Split(trimmed, "\n") {
		var rec signalRecord
		require.NoError(t, json.Unmarshal([]byte(line), &rec), "line %q", line)
		records = append(records, rec)
	}
	return records
}

func TestReplayEndToEnd(t *testing.T) {
	page := writeTempFile(t, "page.html", boxesPage)
	layout := writeTempFile(t, "layout.json", boxesLayout)
	traceFile := writeTempFile(t, "trace.json", `{"name":"hop","frames":[
  {"at_ms":0,"type":"down","x":25,"y":25,"button":"left"},
  {"at_ms":16,"type":"move","x":150,"y":50,"button":"left"},
  {"at_ms":32,"type":"up","x":150,"y":50,"button":"left"}]}`)

	output, err := executeCommand(t,
		"replay", traceFile,
		"--page", page,
		"--layout", layout,
		"--drag-threshold", "0",
		"--defer-targeting", "0",
	)
	require.NoError(t, err)

	records := decodeSignals(t, output)
	require.Len(t, records, 3)

	assert.Equal(t, signalRecord{Signal: "start", X: 25, Y: 25, Item: "div#item"}, records[0])
	assert.Equal(t, signalRecord{Signal: "drag", X: 150, Y: 50, DX: 125, DY: 25, Item: "div#item", Target: "div#zone"}, records[1])
	assert.Equal(t, signalRecord{Signal: "drop", X: 150, Y: 50, DX: 125, DY: 25, Item: "div#item", Target: "div#zone"}, records[2])
}

func TestReplayItemSelectorLimitsDraggables(t *testing.T) {
	page := writeTempFile(t, "page.html",
		`<html><body><ul id="list"><li id="card-1" class="card"></li></ul></body></html>`)
	layout := writeTempFile(t, "layout.json", `[
  {"selector": "#list", "x": 0, "y": 0, "width": 200, "height": 300},
  {"selector": "#card-1", "x": 10, "y": 10, "width": 180, "height": 40}
]`)

	// Pressing the list background resolves no draggable card: no signals.
	missTrace := writeTempFile(t, "miss.json", `{"name":"miss","frames":[
  {"at_ms":0,"type":"down","x":5,"y":150,"button":"left"},
  {"at_ms":16,"type":"move","x":5,"y":200,"button":"left"},
  {"at_ms":32,"type":"up","x":5,"y":200,"button":"left"}]}`)

	output, err := executeCommand(t,
		"replay", missTrace,
		"--page", page, "--layout", layout,
		"--item", ".card",
		"--drag-threshold", "0", "--defer-targeting", "0",
	)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(output), "a press outside any card starts nothing")

	// Pressing the card drags it, and the drop reports the list under the
	// pointer as the target.
	hitTrace := writeTempFile(t, "hit.json", `{"name":"hit","frames":[
  {"at_ms":0,"type":"down","x":20,"y":20,"button":"left"},
  {"at_ms":16,"type":"move","x":20,"y":200,"button":"left"},
  {"at_ms":32,"type":"up","x":20,"y":200,"button":"left"}]}`)

	output, err = executeCommand(t,
		"replay", hitTrace,
		"--page", page, "--layout", layout,
		"--item", ".card",
		"--drag-threshold", "0", "--defer-targeting", "0",
	)
	require.NoError(t, err)

	records := decodeSignals(t, output)
	require.Len(t, records, 3)
	assert.Equal(t, "li#card-1", records[0].Item)
	assert.Empty(t, records[0].Target, "the press target is the item itself")
	assert.Equal(t, signalRecord{Signal: "drop", X: 20, Y: 200, DY: 180, Item: "li#card-1", Target: "ul#list"}, records[2])
}

func TestReplayMissingPageFile(t *testing.T) {
	traceFile := writeTempFile(t, "trace.json", `{"name":"x","frames":[]}`)

	_, err := executeCommand(t, "replay", traceFile, "--page", filepath.Join(t.TempDir(), "missing.html"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open page")
}

func TestReplayRejectsBadItemSelector(t *testing.T) {
	page := writeTempFile(t, "page.html", boxesPage)
	traceFile := writeTempFile(t, "trace.json", `{"name":"x","frames":[]}`)

	_, err := executeCommand(t, "replay", traceFile, "--page", page, "--item", "##")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item selector")
}

func TestDescribeElement(t *testing.T) {
	page := writeTempFile(t, "page.html",
		`<html><body><div id="named"></div><span class="a b"></span><p></p></body></html>`)
	layout := writeTempFile(t, "layout.json", `[
  {"selector": "div", "x": 0, "y": 0, "width": 10, "height": 10},
  {"selector": "span", "x": 10, "y": 0, "width": 10, "height": 10},
  {"selector": "p", "x": 20, "y": 0, "width": 10, "height": 10}
]`)

	// One click per element; with no threshold each press-release pair
	// produces start and drop lines naming the element.
	for _, tc := range []struct {
		x    string
		want string
	}{
		{"5", "div#named"},
		{"15", "span.a.b"},
		{"25", "p"},
	} {
		traceFile := writeTempFile(t, "click.json",
			`{"name":"click","frames":[{"at_ms":0,"type":"down","x":`+tc.x+`,"y":5,"button":"left"},{"at_ms":16,"type":"up","x":`+tc.x+`,"y":5,"button":"left"}]}`)

		output, err := executeCommand(t, "replay", traceFile,
			"--page", page, "--layout", layout,
			"--drag-threshold", "0", "--defer-targeting", "0")
		require.NoError(t, err)

		records := decodeSignals(t, output)
		require.Len(t, records, 2)
		assert.Equal(t, tc.want, records[0].Item)
	}
}
