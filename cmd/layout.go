// cmd/layout.go
package cmd

import (
	"fmt"
	"os"

	json "github.com/json-iterator/go"

	"github.com/xkilldash9x/dragsense/pkg/dom"
	"github.com/xkilldash9x/dragsense/pkg/geometry"
)

// layoutEntry assigns bounds to every element matching a selector. The
// engine never computes layout, so replay and query take geometry from a
// sidecar file. Entries apply in file order; later entries win overlaps.
type layoutEntry struct {
	Selector string  `json:"selector"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// loadLayout reads a layout sidecar file.
func loadLayout(path string) ([]layoutEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()

	var entries []layoutEntry
	if err := json.NewDecoder(f).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode layout %s: %w", path, err)
	}
	return entries, nil
}

// applyLayout feeds the sidecar geometry into the document.
func applyLayout(doc *dom.Document, entries []layoutEntry) error {
	for _, e := range entries {
		filter, err := dom.CompileFilter(e.Selector)
		if err != nil {
			return fmt.Errorf("layout selector %q: %w", e.Selector, err)
		}
		for _, el := range doc.FindAll(filter) {
			el.SetBounds(geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height})
		}
	}
	return nil
}
