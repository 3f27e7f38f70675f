// cmd/synth_test.go
package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/dragsense/pkg/geometry"
	"github.com/xkilldash9x/dragsense/pkg/trace"
)

func TestSynthOutputRoundTrips(t *testing.T) {
	output, err := executeCommand(t, "synth", "--from", "10,20", "--to", "200,120", "--name", "hop", "--seed", "5")
	require.NoError(t, err)

	stream, err := trace.Decode(strings.NewReader(output))
	require.NoError(t, err)
	assert.Equal(t, "hop", stream.Name)
	require.NotEmpty(t, stream.Frames)

	first := stream.Frames[0]
	assert.Equal(t, trace.FrameDown, first.Type)
	assert.Equal(t, 10.0, first.X)
	assert.Equal(t, 20.0, first.Y)

	last := stream.Frames[len(stream.Frames)-1]
	assert.Equal(t, trace.FrameUp, last.Type)
	assert.Equal(t, 200.0, last.X)
	assert.Equal(t, 120.0, last.Y)
}

func TestSynthWritesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "drag.json")

	output, err := executeCommand(t, "synth", "--from", "0,0", "--to", "100,0", "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, output, "file output leaves stdout clean")

	stream, err := loadStream(outPath)
	require.NoError(t, err)
	assert.Equal(t, "synthesized", stream.Name)
	assert.NotEmpty(t, stream.Frames)
}

func TestSynthRejectsMalformedPoint(t *testing.T) {
	_, err := executeCommand(t, "synth", "--from", "10", "--to", "1,2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse point")
}

func TestParsePoint(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		spec    string
		want    geometry.Point
		wantErr bool
	}{
		{name: "plain pair", spec: "3,4", want: geometry.Point{X: 3, Y: 4}},
		{name: "spaces and fractions", spec: " 3 , 4.5 ", want: geometry.Point{X: 3, Y: 4.5}},
		{name: "negative coordinates", spec: "-10,-0.5", want: geometry.Point{X: -10, Y: -0.5}},
		{name: "missing y", spec: "3", wantErr: true},
		{name: "not a number", spec: "a,4", wantErr: true},
		{name: "too many parts", spec: "3,4,5", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parsePoint(tc.spec)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
