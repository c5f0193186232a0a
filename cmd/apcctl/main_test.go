package main

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/Southclaws/fault/ftag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-control/config"
	"apc-control/midi"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apc", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path, "--variant", "apcmini-dual")
	require.NoError(t, err)
	assert.Contains(t, out, "2 controller(s)")

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cfg.Controllers, 2)
	assert.Equal(t, "APC MINI #2", cfg.Controllers[1].PortName)

	_, err = execute(t, "config", "init", "--config", path, "--variant", "apcmini")
	require.Error(t, err)
	assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))

	_, err = execute(t, "config", "init", "--config", path, "--variant", "apcmini", "--force")
	require.NoError(t, err)
	cfg, err = config.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Controllers, 1)
}

func TestTestPatternCoversSurface(t *testing.T) {
	events := testPattern()
	require.Len(t, events, midi.GridPads+2*midi.GridSize)

	seen := make(map[uint8]bool)
	for _, ev := range events {
		assert.Equal(t, midi.NoteOn, ev.Status)
		assert.NotEqual(t, uint8(midi.Off), ev.Data2)
		seen[ev.Data1] = true
	}
	assert.Len(t, seen, len(events))
	assert.True(t, seen[midi.ButtonStopAll])
	assert.True(t, seen[uint8(midi.BottomPad(7))])
}
