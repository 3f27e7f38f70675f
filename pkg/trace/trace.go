// pkg/trace/trace.go

// Package trace records and replays pointer event streams. A Stream is a
// named sequence of timestamped frames; the Player feeds one through any
// dispatcher, typically a dom.Document with drag listeners attached, either
// as fast as possible or on the original timeline.
package trace

import (
	"fmt"
	"io"

	json "github.com/json-iterator/go"

	"github.com/xkilldash9x/dragsense/pkg/drag"
)

// Frame type values as they appear on the wire.
const (
	FrameDown = "down"
	FrameMove = "move"
	FrameUp   = "up"
)

// Frame is one pointer occurrence within a stream. AtMs is milliseconds
// since the stream's start.
type Frame struct {
	AtMs   int64   `json:"at_ms"`
	Type   string  `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button string  `json:"button,omitempty"`
}

// event converts the frame to a pointer event. ok is false for frame types
// the engine does not know.
func (f Frame) event() (drag.PointerEvent, bool) {
	var t drag.EventType
	switch f.Type {
	case FrameDown:
		t = drag.EventPointerDown
	case FrameMove:
		t = drag.EventPointerMove
	case FrameUp:
		t = drag.EventPointerUp
	default:
		return drag.PointerEvent{}, false
	}
	return drag.PointerEvent{
		Type:   t,
		PageX:  f.X,
		PageY:  f.Y,
		Button: drag.Button(f.Button),
	}, true
}

// Stream is a recorded pointer interaction.
type Stream struct {
	Name   string  `json:"name"`
	Frames []Frame `json:"frames"`
}

// Duration returns the timestamp of the last frame. An empty stream has
// duration zero.
func (s *Stream) Duration() int64 {
	if len(s.Frames) == 0 {
		return 0
	}
	return s.Frames[len(s.Frames)-1].AtMs
}

// Decode reads one JSON-encoded stream from r.
func Decode(r io.Reader) (*Stream, error) {
	var s Stream
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	return &s, nil
}

// Encode writes the stream to w as JSON.
func Encode(w io.Writer, s *Stream) error {
	if err := json.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	return nil
}
