package control

import (
	"apc-control/host"
	"apc-control/midi"
	"apc-control/surface"
)

// modeButtons are the side pads that switch grid modes
var modeButtons = map[ModeID]int{
	ModeDevices:  midi.ButtonSwitchToDevices,
	ModeLauncher: midi.ButtonSwitchToLauncher,
	ModeKeyboard: midi.ButtonSwitchToKeyboard,
}

// Sidebar owns the scene-button column in every mode: bank navigation,
// mode switching and stop-all, or scene launch while shift is held.
type Sidebar struct {
	pads     *surface.Pads
	bank     host.TrackBank
	scenes   host.SceneBank
	modePref host.SettableEnum
	enabled  map[ModeID]bool

	nav [midi.GridSize]bool
}

var _ ModeIndicator = (*Sidebar)(nil)

// NewSidebar binds the sidebar and activates it. modes lists the grid
// modes this controller offers.
func NewSidebar(out midi.Sender, bank host.TrackBank, scenes host.SceneBank, modePref host.SettableEnum, modes []ModeID) *Sidebar {
	s := &Sidebar{
		pads:     surface.New(out, midi.SideRange()),
		bank:     bank,
		scenes:   scenes,
		modePref: modePref,
		enabled:  make(map[ModeID]bool),
	}
	for _, m := range modes {
		s.enabled[m] = true
	}
	s.pads.Activate()
	s.setNav(midi.ButtonStopAll, true)

	bankScenes := bank.SceneBank()
	bankScenes.CanScrollBackwards().Observe(func(v bool) { s.setNav(midi.ButtonUp, v) })
	bankScenes.CanScrollForwards().Observe(func(v bool) { s.setNav(midi.ButtonDown, v) })
	bank.CanScrollForwards().Observe(func(v bool) { s.setNav(midi.ButtonRight, v) })
	bank.CanScrollBackwards().Observe(func(v bool) { s.setNav(midi.ButtonLeft, v) })
	return s
}

// Lit reports whether a side pad is lit in the current view
func (s *Sidebar) Lit(addr int) bool {
	if !midi.IsSidePad(addr) {
		return false
	}
	if s.pads.Shift() {
		return true
	}
	return s.nav[addr-midi.SideStart]
}

// Activate re-blanks and repaints the column
func (s *Sidebar) Activate() {
	s.pads.Activate()
	s.render()
}

// Deactivate is a no-op: the sidebar stays live while modes change
func (s *Sidebar) Deactivate() {}

func (s *Sidebar) SetShift(shift bool) {
	s.pads.SetShift(shift)
	s.render()
}

// SetMode lights the switch pads of the other offered modes. The whole
// column is repainted since the incoming mode has just blanked it.
func (s *Sidebar) SetMode(id ModeID) {
	for _, m := range AllModes {
		s.nav[modeButtons[m]-midi.SideStart] = s.enabled[m] && m != id
	}
	s.render()
}

func (s *Sidebar) Flush() error {
	return s.pads.Flush()
}

func (s *Sidebar) HandleMIDI(ev midi.Event) {
	if !ev.IsPress() {
		return
	}
	addr := int(ev.Data1)
	if !midi.IsSidePad(addr) {
		return
	}

	if s.pads.Shift() {
		if scene := s.scenes.Scene(addr - midi.SideStart); scene != nil {
			scene.Launch()
		}
		return
	}

	switch addr {
	case midi.ButtonStopAll:
		s.scenes.Stop()
	case midi.ButtonSwitchToDevices:
		s.switchTo(ModeDevices)
	case midi.ButtonSwitchToLauncher:
		s.switchTo(ModeLauncher)
	case midi.ButtonSwitchToKeyboard:
		s.switchTo(ModeKeyboard)
	case midi.ButtonDown:
		s.bank.SceneBank().ScrollPageForwards()
		s.scenes.ScrollPageForwards()
	case midi.ButtonUp:
		s.bank.SceneBank().ScrollPageBackwards()
		s.scenes.ScrollPageBackwards()
	case midi.ButtonRight:
		s.bank.ScrollPageForwards()
	case midi.ButtonLeft:
		s.bank.ScrollPageBackwards()
	}
}

// switchTo writes the mode preference; the coordinator reacts to it
func (s *Sidebar) switchTo(id ModeID) {
	if s.enabled[id] {
		s.modePref.Set(id.String())
	}
}

func (s *Sidebar) setNav(addr int, on bool) {
	s.nav[addr-midi.SideStart] = on
	if !s.pads.Shift() {
		s.pads.RenderOnOff(addr, on)
	}
}

func (s *Sidebar) render() {
	for i := 0; i < midi.GridSize; i++ {
		addr := midi.SideStart + i
		s.pads.RenderOnOff(addr, s.Lit(addr))
	}
}
