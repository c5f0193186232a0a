package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-control/host"
	"apc-control/midi"
	"apc-control/session"
)

type sidebarFixture struct {
	s      *session.Session
	bank   host.TrackBank
	scenes *session.SceneBank
	pref   host.SettableEnum
	side   *Sidebar
	rec    *recorder
}

func newSidebar(t *testing.T, modes ...ModeID) *sidebarFixture {
	t.Helper()
	f := &sidebarFixture{s: demoSession(), rec: newRecorder()}
	f.bank = f.s.CreateTrackBank(8, 3, 8)
	f.scenes = f.s.CreateSceneBank(8).(*session.SceneBank)

	var options []string
	for _, m := range modes {
		options = append(options, m.String())
	}
	f.pref = f.s.Preferences().EnumSetting(ModePreference(0), ModeCategory, options, options[0])
	f.side = NewSidebar(f.rec, f.bank, f.scenes, f.pref, modes)
	f.side.SetMode(modes[0])
	require.NoError(t, f.side.Flush())
	return f
}

func TestSidebarNavigationView(t *testing.T) {
	f := newSidebar(t, AllModes...)

	assert.Equal(t, midi.Off, f.rec.led(midi.ButtonUp))
	assert.Equal(t, midi.Green, f.rec.led(midi.ButtonDown))
	assert.Equal(t, midi.Green, f.rec.led(midi.ButtonRight))
	assert.Equal(t, midi.Off, f.rec.led(midi.ButtonLeft))
	assert.Equal(t, midi.Green, f.rec.led(midi.ButtonSwitchToDevices))
	assert.Equal(t, midi.Green, f.rec.led(midi.ButtonSwitchToLauncher))
	assert.Equal(t, midi.Off, f.rec.led(midi.ButtonSwitchToKeyboard))
	assert.Equal(t, midi.Green, f.rec.led(midi.ButtonStopAll))

	// the sidebar never touches the grid
	for _, ev := range f.rec.events {
		assert.True(t, midi.IsSidePad(int(ev.Data1)), "%s", ev)
	}
}

func TestSidebarScrolling(t *testing.T) {
	f := newSidebar(t, AllModes...)

	f.side.HandleMIDI(press(midi.ButtonDown))
	require.NoError(t, f.side.Flush())
	assert.Equal(t, 8, f.scenes.Position())
	assert.Equal(t, 8, f.bank.SceneBank().(*session.SceneBank).Position())
	assert.Equal(t, midi.Green, f.rec.led(midi.ButtonUp))
	assert.Equal(t, midi.Off, f.rec.led(midi.ButtonDown))

	f.side.HandleMIDI(press(midi.ButtonRight))
	require.NoError(t, f.side.Flush())
	assert.Equal(t, 8, f.bank.ScrollPosition().Get())
	assert.Equal(t, midi.Off, f.rec.led(midi.ButtonRight))
	assert.Equal(t, midi.Green, f.rec.led(midi.ButtonLeft))

	f.side.HandleMIDI(press(midi.ButtonUp))
	f.side.HandleMIDI(press(midi.ButtonLeft))
	assert.Equal(t, 0, f.scenes.Position())
	assert.Equal(t, 0, f.bank.ScrollPosition().Get())
}

func TestSidebarModeSwitchWritesPreference(t *testing.T) {
	f := newSidebar(t, ModeKeyboard, ModeLauncher)

	f.side.HandleMIDI(press(midi.ButtonSwitchToDevices))
	assert.Equal(t, "KEYBOARD", f.pref.Get())

	f.side.HandleMIDI(press(midi.ButtonSwitchToLauncher))
	assert.Equal(t, "LAUNCHER", f.pref.Get())
	assert.Equal(t, "LAUNCHER", f.s.PreferenceStore().Values()["Global/Mode - 0"])

	f.side.SetMode(ModeLauncher)
	require.NoError(t, f.side.Flush())
	assert.Equal(t, midi.Off, f.rec.led(midi.ButtonSwitchToDevices))
	assert.Equal(t, midi.Off, f.rec.led(midi.ButtonSwitchToLauncher))
	assert.Equal(t, midi.Green, f.rec.led(midi.ButtonSwitchToKeyboard))
}

func TestSidebarShiftLaunchesScenes(t *testing.T) {
	f := newSidebar(t, AllModes...)

	f.side.SetShift(true)
	require.NoError(t, f.side.Flush())
	for addr := midi.SideStart; addr < midi.SideStart+8; addr++ {
		assert.Equal(t, midi.Green, f.rec.led(addr))
		assert.True(t, f.side.Lit(addr))
	}

	f.side.HandleMIDI(press(midi.SideStart + 1))
	drums := f.bank.Track(0)
	assert.True(t, drums.ClipSlots().Slot(1).IsPlaybackQueued().Get())
	assert.Equal(t, 0, f.scenes.Position())

	f.side.SetShift(false)
	require.NoError(t, f.side.Flush())
	assert.Equal(t, midi.Off, f.rec.led(midi.ButtonUp))

	f.side.HandleMIDI(press(midi.ButtonStopAll))
	assert.True(t, drums.IsStopped().Get())
}
