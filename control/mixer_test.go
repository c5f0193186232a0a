package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-control/host"
	"apc-control/midi"
)

// holeyBank hides one track to exercise per-column binding failures
type holeyBank struct {
	host.TrackBank
	hole int
}

func (b holeyBank) Track(i int) host.Track {
	if i == b.hole {
		return nil
	}
	return b.TrackBank.Track(i)
}

func TestMixerButtonsAndFeedback(t *testing.T) {
	s := demoSession()
	rec := newRecorder()
	m := NewMixer("mix", rec, s.CreateTrackBank(8, 3, 1))
	assert.Len(t, m.Pending(), 8*3+2)
	require.NoError(t, m.Flush())
	assert.Equal(t, midi.Color(1), rec.led(mixerForwardNote))
	assert.Equal(t, midi.Color(0), rec.led(mixerBackwardNote))
	rec.reset()

	m.HandleMIDI(press(mixerSoloNote(0)))
	m.HandleMIDI(press(mixerMuteNote(2)))
	m.HandleMIDI(press(mixerArmNote(7)))
	m.HandleMIDI(release(mixerSoloNote(0)))
	require.NoError(t, m.Flush())

	tracks := s.Project().Tracks
	assert.True(t, tracks[0].Soloed)
	assert.True(t, tracks[2].Muted)
	assert.True(t, tracks[7].Armed)
	assert.Equal(t, []midi.Event{
		midi.NoteOnEvent(1, 1),
		midi.NoteOnEvent(8, 1),
		midi.NoteOnEvent(24, 1),
	}, rec.events)
}

func TestMixerKnobs(t *testing.T) {
	s := demoSession()
	m := NewMixer("mix", newRecorder(), s.CreateTrackBank(8, 3, 1))

	m.HandleMIDI(midi.CCEvent(uint8(mixerVolumeCC(1)), 127))
	m.HandleMIDI(midi.CCEvent(uint8(mixerSendCC(1, 2)), 0))
	m.HandleMIDI(midi.CCEvent(uint8(mixerSendCC(0, 0)), 127))

	tracks := s.Project().Tracks
	assert.Equal(t, 1.0, tracks[1].Volume)
	assert.Equal(t, 0.0, tracks[1].Sends[2])
	assert.Equal(t, 1.0, tracks[0].Sends[0])
}

func TestMixerPaging(t *testing.T) {
	s := demoSession()
	rec := newRecorder()
	bank := s.CreateTrackBank(8, 3, 1)
	m := NewMixer("mix", rec, bank)
	require.NoError(t, m.Flush())

	m.HandleMIDI(press(mixerForwardNote))
	require.NoError(t, m.Flush())
	assert.Equal(t, 8, bank.ScrollPosition().Get())
	assert.Equal(t, midi.Color(0), rec.led(mixerForwardNote))
	assert.Equal(t, midi.Color(1), rec.led(mixerBackwardNote))

	// column 0 now drives Vox
	m.HandleMIDI(press(mixerMuteNote(0)))
	assert.True(t, s.Project().Tracks[10].Muted)

	m.HandleMIDI(press(mixerBackwardNote))
	assert.Equal(t, 0, bank.ScrollPosition().Get())
}

func TestMixerSkipsColumnsThatFailToBind(t *testing.T) {
	s := demoSession()
	m := NewMixer("mix", newRecorder(), holeyBank{TrackBank: s.CreateTrackBank(8, 3, 1), hole: 3})

	for c := 0; c < 8; c++ {
		assert.Equal(t, c != 3, m.Bound(c), "column %d", c)
	}
	assert.Len(t, m.Pending(), 7*3+2)

	m.HandleMIDI(press(mixerSoloNote(3)))
	m.HandleMIDI(press(mixerSoloNote(4)))
	assert.True(t, s.Project().Tracks[4].Soloed)
}

func TestMixerSendsFollowBankSize(t *testing.T) {
	s := demoSession()
	m := NewMixer("mix", newRecorder(), s.CreateTrackBank(8, 1, 1))

	m.HandleMIDI(midi.CCEvent(uint8(mixerSendCC(0, 0)), 127))
	m.HandleMIDI(midi.CCEvent(uint8(mixerSendCC(0, 1)), 127))
	tracks := s.Project().Tracks
	assert.Equal(t, 1.0, tracks[0].Sends[0])
	assert.Equal(t, 0.0, tracks[0].Sends[1])
	assert.True(t, m.Bound(0))
	require.NoError(t, m.Close())
	assert.Empty(t, m.Pending())
}

func TestMixerRefresh(t *testing.T) {
	s := demoSession()
	s.Project().Tracks[0].Soloed = true
	m := NewMixer("mix", newRecorder(), s.CreateTrackBank(8, 3, 1))
	require.NoError(t, m.Flush())

	m.Refresh()
	pending := m.Pending()
	require.Len(t, pending, 8*3+2)
	assert.Equal(t, midi.NoteOnEvent(1, 1), pending[0])
	assert.Equal(t, midi.NoteOnEvent(2, 0), pending[1])
	assert.Equal(t, midi.NoteOnEvent(mixerForwardNote, 1), pending[len(pending)-1])
}
