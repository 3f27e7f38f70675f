// pkg/trace/player.go
package trace

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/dragsense/pkg/drag"
)

// Dispatcher consumes replayed pointer events. dom.Document satisfies it.
type Dispatcher interface {
	Dispatch(ev drag.PointerEvent)
}

// Player replays a stream through a dispatcher. With Realtime set, frames are
// paced by their timestamps; otherwise the stream plays as fast as the
// dispatcher accepts it.
type Player struct {
	Doc      Dispatcher
	Realtime bool
	Logger   *zap.Logger
}

// Run plays the whole stream. It stops early only when the context is done,
// returning its error; frames with unknown types are logged and skipped.
func (p *Player) Run(ctx context.Context, s *Stream) error {
	if p.Doc == nil {
		return errors.New("trace player: no dispatcher")
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("trace_player").With(zap.String("stream", s.Name))

	log.Debug("replay started", zap.Int("frames", len(s.Frames)))
	start := time.Now()

	for i, f := range s.Frames {
		if p.Realtime {
			if err := waitUntil(ctx, start, f.AtMs); err != nil {
				return err
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		ev, ok := f.event()
		if !ok {
			log.Warn("unknown frame type skipped",
				zap.Int("frame", i),
				zap.String("type", f.Type))
			continue
		}
		ev.Time = start.Add(time.Duration(f.AtMs) * time.Millisecond)
		p.Doc.Dispatch(ev)
	}

	log.Debug("replay finished", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// waitUntil sleeps until atMs on the playback clock, honoring cancellation.
func waitUntil(ctx context.Context, start time.Time, atMs int64) error {
	wait := time.Duration(atMs)*time.Millisecond - time.Since(start)
	if wait <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
