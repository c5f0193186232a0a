package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-control/host"
	"apc-control/midi"
	"apc-control/session"
)

func newLauncher(t *testing.T, s *session.Session) (*Launcher, host.TrackBank, *recorder) {
	t.Helper()
	rec := newRecorder()
	bank := s.CreateTrackBank(8, 3, 8)
	l := NewLauncher(rec, bank)
	l.Activate()
	require.NoError(t, l.Flush())
	return l, bank, rec
}

func TestLauncherInitialColors(t *testing.T) {
	_, _, rec := newLauncher(t, demoSession())

	assert.Equal(t, midi.Red, rec.led(midi.Pad(0, 0)))         // Drums: group with clip
	assert.Equal(t, midi.OrangeBlink, rec.led(midi.Pad(0, 2))) // Drums: group, empty
	assert.Equal(t, midi.Orange, rec.led(midi.Pad(1, 0)))      // Kick
	assert.Equal(t, midi.Off, rec.led(midi.Pad(6, 0)))         // Lead: empty
	assert.Equal(t, midi.OrangeBlink, rec.led(midi.Pad(7, 5))) // FX: empty group
	for c := 0; c < 8; c++ {
		assert.Equal(t, midi.Off, rec.led(midi.BottomPad(c)))
	}
}

func TestLauncherPlayingColors(t *testing.T) {
	s := demoSession()
	l, _, rec := newLauncher(t, s)

	l.HandleMIDI(press(midi.Pad(4, 0)))
	l.HandleMIDI(press(midi.Pad(0, 0)))
	require.NoError(t, l.Flush())
	assert.Equal(t, midi.GreenBlink, rec.led(midi.Pad(4, 0)))
	assert.Equal(t, midi.GreenBlink, rec.led(midi.Pad(0, 0)))
	assert.Equal(t, midi.Green, rec.led(midi.BottomPad(4)))

	s.Advance()
	require.NoError(t, l.Flush())
	assert.Equal(t, midi.Green, rec.led(midi.Pad(4, 0)))
	assert.Equal(t, midi.RedBlink, rec.led(midi.Pad(0, 0)))
}

func TestLauncherLaunchAtColumnRow(t *testing.T) {
	p := session.NewProject("grid", 8, 8)
	p.Tracks[2].Clips = []session.Clip{{}, {}, {}, {Name: "Bridge"}}
	s := session.New(p, nil)
	l, bank, rec := newLauncher(t, s)

	assert.Equal(t, 34, midi.Pad(2, 3))
	assert.Equal(t, midi.Orange, rec.led(34))

	l.HandleMIDI(press(34))
	assert.True(t, bank.Track(2).ClipSlots().Slot(3).IsPlaybackQueued().Get())
	require.NoError(t, l.Flush())
	assert.Equal(t, midi.GreenBlink, rec.led(34))

	// releases do nothing
	l.HandleMIDI(release(34))
	require.NoError(t, l.Flush())
	assert.Equal(t, midi.GreenBlink, rec.led(34))
}

func TestLauncherBottomStopsTrack(t *testing.T) {
	s := demoSession()
	l, bank, rec := newLauncher(t, s)

	l.HandleMIDI(press(midi.Pad(4, 0)))
	s.Advance()
	require.False(t, bank.Track(4).IsStopped().Get())

	l.HandleMIDI(press(midi.BottomPad(4)))
	require.NoError(t, l.Flush())
	assert.True(t, bank.Track(4).IsStopped().Get())
	assert.Equal(t, midi.Off, rec.led(midi.BottomPad(4)))
	assert.Equal(t, midi.Orange, rec.led(midi.Pad(4, 0)))
}

func TestLauncherShiftShowsGroups(t *testing.T) {
	s := demoSession()
	l, bank, rec := newLauncher(t, s)

	l.SetShift(true)
	require.NoError(t, l.Flush())
	assert.Equal(t, midi.Green, rec.led(midi.BottomPad(0)))
	assert.Equal(t, midi.Off, rec.led(midi.BottomPad(4)))
	assert.Equal(t, midi.Green, rec.led(midi.BottomPad(7)))

	// non-group columns ignore shifted presses
	l.HandleMIDI(press(midi.Pad(4, 0)))
	l.HandleMIDI(press(midi.BottomPad(4)))
	assert.True(t, bank.Track(4).IsStopped().Get())
	require.NoError(t, l.Flush())
	assert.Equal(t, midi.Orange, rec.led(midi.Pad(4, 0)))

	// collapsing Drums pulls Bass into column 1
	l.HandleMIDI(press(midi.Pad(0, 3)))
	assert.False(t, s.Project().Tracks[0].Expanded)
	require.NoError(t, l.Flush())
	assert.Equal(t, midi.Orange, rec.led(midi.Pad(1, 2)))
	assert.Equal(t, midi.Off, rec.led(midi.Pad(7, 0)))
	assert.Equal(t, midi.Off, rec.led(midi.BottomPad(7)))

	l.HandleMIDI(press(midi.BottomPad(0)))
	assert.True(t, s.Project().Tracks[0].Expanded)
}
