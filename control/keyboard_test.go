package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-control/midi"
	"apc-control/scale"
	"apc-control/session"
)

func newKeyboard(t *testing.T, s *session.Session) (*Keyboard, *recorder, *session.NoteInput) {
	t.Helper()
	rec := newRecorder()
	bank := s.CreateTrackBank(8, 3, 8)
	notes := s.CreateNoteInput("keys").(*session.NoteInput)
	k := NewKeyboard(0, rec, bank, notes, s.Preferences(), s.DocumentState())
	return k, rec, notes
}

func TestKeyboardSilentUntilActive(t *testing.T) {
	k, rec, notes := newKeyboard(t, demoSession())

	require.NoError(t, k.Flush())
	assert.Empty(t, rec.events)
	for p := 0; p < midi.PadCount; p++ {
		assert.Equal(t, scale.NoNote, notes.Note(p))
	}
}

func TestKeyboardActivateRendersLayout(t *testing.T) {
	k, rec, notes := newKeyboard(t, demoSession())
	k.Activate()
	require.NoError(t, k.Flush())

	assert.Equal(t, midi.Red, rec.led(0))
	assert.Equal(t, midi.Orange, rec.led(1))
	assert.Equal(t, midi.Red, rec.led(7))
	assert.Equal(t, midi.Off, rec.led(midi.BottomPad(0)))

	assert.Equal(t, 0, notes.Note(0))
	assert.Equal(t, 12, notes.Note(7))
	assert.Equal(t, 5, notes.Note(8))
	assert.Equal(t, scale.NoNote, notes.Note(64))

	k.Deactivate()
	assert.Equal(t, scale.NoNote, notes.Note(7))
	require.NoError(t, k.Flush())
}

func TestKeyboardPressLightsMatchingNotes(t *testing.T) {
	k, rec, _ := newKeyboard(t, demoSession())
	k.Activate()
	require.NoError(t, k.Flush())
	rec.reset()

	// pads 7, 12 and 17 all play note 12
	k.HandleMIDI(press(12))
	require.NoError(t, k.Flush())
	assert.Equal(t, []midi.Event{
		midi.NoteOnEvent(7, uint8(midi.Green)),
		midi.NoteOnEvent(12, uint8(midi.Green)),
		midi.NoteOnEvent(17, uint8(midi.Green)),
	}, rec.events)

	rec.reset()
	k.HandleMIDI(midi.NoteOnEvent(12, 0))
	require.NoError(t, k.Flush())
	assert.Len(t, rec.events, 3)
	assert.Equal(t, midi.Red, rec.led(17))
}

func TestKeyboardBottomRowTogglesArm(t *testing.T) {
	s := demoSession()
	k, rec, _ := newKeyboard(t, s)
	k.Activate()

	k.HandleMIDI(press(midi.BottomPad(1)))
	require.NoError(t, k.Flush())
	assert.True(t, s.Project().Tracks[1].Armed)
	assert.Equal(t, midi.Green, rec.led(midi.BottomPad(1)))

	k.HandleMIDI(release(midi.BottomPad(1)))
	assert.True(t, s.Project().Tracks[1].Armed)

	k.SetShift(true)
	k.HandleMIDI(press(midi.BottomPad(1)))
	assert.True(t, s.Project().Tracks[1].Armed)
}

func TestKeyboardShiftShowsSettings(t *testing.T) {
	s := demoSession()
	k, rec, notes := newKeyboard(t, s)
	k.Activate()
	k.SetShift(true)
	require.NoError(t, k.Flush())

	assert.Equal(t, midi.Red, rec.led(0))     // C
	assert.Equal(t, midi.Orange, rec.led(8))  // C#
	assert.Equal(t, midi.Red, rec.led(24))    // octave 0
	assert.Equal(t, midi.Orange, rec.led(30)) // octave 6
	assert.Equal(t, midi.Red, rec.led(40))    // MAJOR
	assert.Equal(t, midi.Orange, rec.led(57)) // BHAIRAV
	assert.Equal(t, midi.Off, rec.led(7))
	assert.Equal(t, scale.NoNote, notes.Note(0))

	k.HandleMIDI(press(2))  // E
	k.HandleMIDI(press(41)) // MINOR
	k.HandleMIDI(press(26)) // octave 2
	require.NoError(t, k.Flush())
	assert.Equal(t, "E", k.Root())
	assert.Equal(t, scale.Minor, k.Scale())
	assert.Equal(t, "2", k.Octave())
	assert.Equal(t, midi.Red, rec.led(2))
	assert.Equal(t, midi.Orange, rec.led(0))

	prefs := s.PreferenceStore().Values()
	assert.Equal(t, "E", prefs["Scales - 0/ROOT Note"])
	assert.Equal(t, scale.Minor, prefs["Scales - 0/Scale"])
	assert.Equal(t, "E", s.DocumentState().EnumSetting("ROOT Note", "Scales - 0", scale.Roots(), "C").Get())

	k.SetShift(false)
	assert.Equal(t, 4+24, notes.Note(0))
}

func TestKeyboardStoredValueWinsAtLoad(t *testing.T) {
	p := session.Demo()
	p.Settings["Scales - 0/ROOT Note"] = "F"
	prefs := session.NewStore(map[string]string{"Scales - 0/ROOT Note": "D"})
	s := session.New(p, prefs)

	k, _, _ := newKeyboard(t, s)
	assert.Equal(t, "F", k.Root())
	assert.Equal(t, "F", prefs.Values()["Scales - 0/ROOT Note"])
}

func TestKeyboardPreferenceWinsOverDefaultDocument(t *testing.T) {
	// a document holding the default reads the same as an unset one
	p := session.Demo()
	p.Settings["Scales - 0/ROOT Note"] = "C"
	prefs := session.NewStore(map[string]string{"Scales - 0/ROOT Note": "D"})
	s := session.New(p, prefs)

	k, _, _ := newKeyboard(t, s)
	assert.Equal(t, "D", k.Root())
	assert.Equal(t, "D", s.DocumentState().EnumSetting("ROOT Note", "Scales - 0", scale.Roots(), "C").Get())
}

func TestKeyboardFollowsExternalChange(t *testing.T) {
	s := demoSession()
	k, rec, notes := newKeyboard(t, s)
	k.Activate()
	require.NoError(t, k.Flush())

	s.Preferences().EnumSetting("ROOT Note", "Scales - 0", scale.Roots(), "C").Set("G")
	assert.Equal(t, "G", k.Root())
	assert.Equal(t, 7, notes.Note(0))
	assert.Equal(t, "G", s.DocumentState().EnumSetting("ROOT Note", "Scales - 0", scale.Roots(), "C").Get())

	// not shifted, so only the table changes
	rec.reset()
	require.NoError(t, k.Flush())
	assert.Empty(t, rec.events)
}
