// cmd/synth.go
package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/dragsense/internal/observability"
	"github.com/xkilldash9x/dragsense/pkg/geometry"
	"github.com/xkilldash9x/dragsense/pkg/trace"
)

// newSynthCmd creates and configures the `synth` command.
func newSynthCmd() *cobra.Command {
	synthCmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesizes a human-like drag trace",
		Long: `Synth generates a pointer trace that presses at --from, moves along an
eased, optionally curved and jittered path, and releases at --to. The stream
is deterministic for a given seed and can be fed back into replay.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			fromSpec, _ := cmd.Flags().GetString("from")
			toSpec, _ := cmd.Flags().GetString("to")
			name, _ := cmd.Flags().GetString("name")
			step, _ := cmd.Flags().GetDuration("step")
			curvature, _ := cmd.Flags().GetFloat64("curvature")
			jitter, _ := cmd.Flags().GetFloat64("jitter")
			seed, _ := cmd.Flags().GetInt64("seed")
			outPath, _ := cmd.Flags().GetString("out")

			from, err := parsePoint(fromSpec)
			if err != nil {
				return err
			}
			to, err := parsePoint(toSpec)
			if err != nil {
				return err
			}

			s := trace.Synthesizer{
				StepInterval: step,
				Curvature:    curvature,
				Jitter:       jitter,
				Seed:         seed,
			}
			stream := s.Drag(name, from, to)

			out := cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			if err := trace.Encode(out, stream); err != nil {
				return err
			}

			logger.Debug("trace synthesized",
				zap.String("stream", stream.Name),
				zap.Int("frames", len(stream.Frames)),
				zap.Int64("duration_ms", stream.Duration()),
			)
			return nil
		},
	}

	synthCmd.Flags().String("from", "", "press position as x,y (required)")
	synthCmd.Flags().String("to", "", "release position as x,y (required)")
	synthCmd.Flags().String("name", "synthesized", "stream name")
	synthCmd.Flags().Duration("step", 0, "sampling interval (0 means 16ms)")
	synthCmd.Flags().Float64("curvature", 0.1, "sideways bow as a fraction of path length")
	synthCmd.Flags().Float64("jitter", 0.5, "per-sample noise in pixels")
	synthCmd.Flags().Int64("seed", 0, "noise seed; equal seeds reproduce the stream")
	synthCmd.Flags().String("out", "", "output file (default stdout)")
	_ = synthCmd.MarkFlagRequired("from")
	_ = synthCmd.MarkFlagRequired("to")

	return synthCmd
}

// parsePoint parses an "x,y" coordinate pair.
func parsePoint(spec string) (geometry.Point, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("parse point %q: want x,y", spec)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("parse point %q: %w", spec, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("parse point %q: %w", spec, err)
	}
	return geometry.Point{X: x, Y: y}, nil
}
