// cmd/replay.go
package cmd

import (
	"fmt"
	"os"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dragsense/internal/config"
	"github.com/xkilldash9x/dragsense/internal/observability"
	"github.com/xkilldash9x/dragsense/pkg/dom"
	"github.com/xkilldash9x/dragsense/pkg/drag"
	"github.com/xkilldash9x/dragsense/pkg/trace"
)

// signalRecord is one hook invocation on replay's stdout, one JSON line per
// signal.
type signalRecord struct {
	Signal string  `json:"signal"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Item   string  `json:"item"`
	Target string  `json:"target,omitempty"`
}

// newReplayCmd creates and configures the `replay` command.
func newReplayCmd(cfg *config.Config) *cobra.Command {
	replayCmd := &cobra.Command{
		Use:   "replay <trace.json>",
		Short: "Replays a recorded pointer trace against a page",
		Long: `Replay parses the page, applies the layout sidecar, attaches a drag
listener built from the engine configuration, and feeds the trace through it.
Every start/drag/drop signal is written to stdout as one JSON line.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to their viper keys so command-line flags override
			// values from the config file and environment.
			bindings := map[string]string{
				"engine.drag_threshold":  "drag-threshold",
				"engine.defer_targeting": "defer-targeting",
				"engine.move_throttle":   "move-throttle",
				"replay.item_selector":   "item",
				"replay.target_selector": "target",
				"replay.realtime":        "realtime",
			}
			for key, flag := range bindings {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// The context passed from main is signal-aware.
			ctx := cmd.Context()
			logger := observability.GetLogger()

			// Re-unmarshal so the flag bindings from PreRunE take effect with
			// the right precedence.
			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("apply flag overrides: %w", err)
			}

			pagePath, _ := cmd.Flags().GetString("page")
			layoutPath, _ := cmd.Flags().GetString("layout")

			doc, err := parsePage(pagePath, logger)
			if err != nil {
				return err
			}
			if layoutPath != "" {
				entries, err := loadLayout(layoutPath)
				if err != nil {
					return err
				}
				if err := applyLayout(doc, entries); err != nil {
					return err
				}
			}

			opts := drag.Options{
				DragThreshold:  cfg.Engine.DragThreshold,
				DeferTargeting: cfg.Engine.DeferTargeting,
				MoveThrottle:   cfg.Engine.MoveThrottle,
				Logger:         logger.Named("replay"),
			}
			if sel := cfg.Replay.ItemSelector; sel != "" {
				filter, err := dom.CompileFilter(sel)
				if err != nil {
					return fmt.Errorf("item selector: %w", err)
				}
				opts.SelectItem = drag.MakeParentSelector(filter)
			}
			if sel := cfg.Replay.TargetSelector; sel != "" {
				filter, err := dom.CompileFilter(sel)
				if err != nil {
					return fmt.Errorf("target selector: %w", err)
				}
				opts.SelectTarget = drag.MakeParentSelector(filter)
			}

			out := json.NewEncoder(cmd.OutOrStdout())
			emit := func(signal string, m drag.Message) {
				rec := signalRecord{
					Signal: signal,
					X:      m.Event.PageX,
					Y:      m.Event.PageY,
					DX:     m.DX,
					DY:     m.DY,
					Item:   describeElement(m.Item),
				}
				if target, ok := m.Target(); ok {
					rec.Target = describeElement(target)
				}
				if err := out.Encode(rec); err != nil {
					logger.Warn("encode signal", zap.Error(err))
				}
			}
			var starts, drags, drops int
			opts.OnStart = func(m drag.Message) { starts++; emit("start", m) }
			opts.OnDrag = func(m drag.Message) { drags++; emit("drag", m) }
			opts.OnDrop = func(m drag.Message) { drops++; emit("drop", m) }

			doc.AddListener(drag.EventPointerDown, drag.NewListener(doc, opts))

			stream, err := loadStream(args[0])
			if err != nil {
				return err
			}

			logger.Info("replaying trace",
				zap.String("stream", stream.Name),
				zap.Int("frames", len(stream.Frames)),
				zap.Bool("realtime", cfg.Replay.Realtime),
			)

			player := &trace.Player{Doc: doc, Realtime: cfg.Replay.Realtime, Logger: logger}
			if err := player.Run(ctx, stream); err != nil {
				return fmt.Errorf("replay %q: %w", stream.Name, err)
			}

			logger.Info("replay finished",
				zap.Int("starts", starts),
				zap.Int("drags", drags),
				zap.Int("drops", drops),
			)
			return nil
		},
	}

	replayCmd.Flags().String("page", "", "HTML page the trace runs against (required)")
	replayCmd.Flags().String("layout", "", "JSON layout sidecar assigning element bounds")
	replayCmd.Flags().String("item", "", "selector restricting what can be dragged")
	replayCmd.Flags().String("target", "", "selector restricting what counts as a drop target")
	replayCmd.Flags().Float64("drag-threshold", 0, "pixels of movement before a drag starts")
	replayCmd.Flags().Duration("defer-targeting", 0, "dwell time before a target change is reported")
	replayCmd.Flags().Duration("move-throttle", 0, "minimum interval between drag signals")
	replayCmd.Flags().Bool("realtime", false, "replay on the trace's original timeline")
	_ = replayCmd.MarkFlagRequired("page")

	return replayCmd
}

// parsePage reads and parses the HTML page a command runs against.
func parsePage(path string, logger *zap.Logger) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()
	return dom.ParseDocument(f, logger)
}

// loadStream decodes a recorded trace file.
func loadStream(path string) (*trace.Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return trace.Decode(f)
}

// describeElement renders an element as tag#id, or tag.class when it has no
// id, so signal lines stay readable.
func describeElement(el drag.Element) string {
	domEl, ok := el.(*dom.Element)
	if !ok {
		return fmt.Sprintf("%T", el)
	}
	if id := domEl.ID(); id != "" {
		return domEl.Tag() + "#" + id
	}
	if classes := domEl.Classes(); len(classes) > 0 {
		return domEl.Tag() + "." + strings.Join(classes, ".")
	}
	return domEl.Tag()
}
