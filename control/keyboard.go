package control

import (
	"fmt"

	"apc-control/debug"
	"apc-control/host"
	"apc-control/midi"
	"apc-control/scale"
	"apc-control/surface"
)

// settingsPad places one selectable value on the grid
type settingsPad struct {
	pad   int
	value string
}

// Root picker is laid out like a piano octave over the two bottom rows
var rootLayout = []settingsPad{
	{0, "C"}, {8, "C#/Db"}, {1, "D"}, {9, "D#/Eb"}, {2, "E"}, {3, "F"},
	{11, "F#/Gb"}, {4, "G"}, {12, "G#/Ab"}, {5, "A"}, {13, "A#/Bb"}, {6, "B"},
}

const (
	octaveLayoutStart = 24
	scaleLayoutStart  = 40
)

func rowLayout(start int, values []string) []settingsPad {
	out := make([]settingsPad, len(values))
	for i, v := range values {
		out[i] = settingsPad{pad: start + i, value: v}
	}
	return out
}

var (
	octaveLayout = rowLayout(octaveLayoutStart, scale.Octaves())
	scaleLayout  = rowLayout(scaleLayoutStart, scale.Scales())
)

// Keyboard plays the grid as an in-key isometric keyboard. Shift swaps
// the grid for root, octave and scale pickers; the bottom row arms tracks.
type Keyboard struct {
	pads  *surface.Pads
	bank  host.TrackBank
	notes host.NoteInput

	root   *SettingsPort
	octave *SettingsPort
	scale  *SettingsPort

	keys  [midi.GridPads]scale.Key
	armed []bool
}

var _ Mode = (*Keyboard)(nil)

// NewKeyboard binds the keyboard for controller index. Root, scale and
// octave are kept in both the document and the preferences scope. At load
// the first scope, document then preferences, holding a non-default value
// wins and is copied to the other; a document storing the default counts
// as unset.
func NewKeyboard(index int, out midi.Sender, bank host.TrackBank, notes host.NoteInput, prefs, doc host.Settings) *Keyboard {
	k := &Keyboard{
		pads:  surface.New(out, surface.ModeRanges(bank.Size())...),
		bank:  bank,
		notes: notes,
		armed: make([]bool, bank.Size()),
	}

	for i := 0; i < bank.Size(); i++ {
		bank.Track(i).Arm().Observe(func(v bool) { k.setArmed(i, v) })
	}

	category := fmt.Sprintf("Scales - %d", index)
	bind := func(label string, options []string, initial string, render func()) *SettingsPort {
		return NewSettingsPort(initial, func(v string) {
			debug.Log("keyboard", "%s %s -> %s", category, label, v)
			k.rebuild()
			render()
		},
			doc.EnumSetting(label, category, options, initial),
			prefs.EnumSetting(label, category, options, initial),
		)
	}
	k.root = bind("ROOT Note", scale.Roots(), "C", k.renderRootSettings)
	k.scale = bind("Scale", scale.Scales(), scale.Major, k.renderScaleSettings)
	k.octave = bind("Octave", scale.Octaves(), scale.Octaves()[0], k.renderOctaveSettings)

	k.rebuild()
	return k
}

func (k *Keyboard) Root() string   { return k.root.Get() }
func (k *Keyboard) Scale() string  { return k.scale.Get() }
func (k *Keyboard) Octave() string { return k.octave.Get() }

// Key returns the resolved state of a grid pad
func (k *Keyboard) Key(pad int) scale.Key {
	if !midi.IsGridPad(pad) {
		return scale.Key{Note: scale.NoNote}
	}
	return k.keys[pad]
}

func (k *Keyboard) Activate() {
	k.pads.Activate()
	k.rebuild()
	for i := range k.armed {
		k.renderArm(i)
	}
	k.renderLayout()
}

func (k *Keyboard) Deactivate() {
	k.pads.Deactivate()
	k.rebuild()
}

func (k *Keyboard) SetShift(shift bool) {
	k.pads.SetShift(shift)
	k.pads.Clear(midi.GridRange())
	k.rebuild()
	k.renderLayout()
}

func (k *Keyboard) Flush() error {
	return k.pads.Flush()
}

// SetRoot, SetScale and SetOctave apply a local change and write it through
func (k *Keyboard) SetRoot(v string) {
	if k.root.Set(v) {
		k.rebuild()
		k.renderRootSettings()
	}
}

func (k *Keyboard) SetScale(v string) {
	if k.scale.Set(v) {
		k.rebuild()
		k.renderScaleSettings()
	}
}

func (k *Keyboard) SetOctave(v string) {
	if k.octave.Set(v) {
		k.rebuild()
		k.renderOctaveSettings()
	}
}

func (k *Keyboard) HandleMIDI(ev midi.Event) {
	if !ev.IsNote() {
		return
	}
	addr := int(ev.Data1)

	if midi.BottomRange(len(k.armed)).Contains(addr) {
		if ev.IsPress() && !k.pads.Shift() {
			// the arm observer renders the pad
			k.bank.Track(addr - midi.BottomRowStart).Arm().Toggle()
		}
		return
	}

	if !midi.IsGridPad(addr) {
		return
	}

	if k.pads.Shift() {
		if ev.IsPress() {
			k.pickSetting(addr)
		}
		return
	}

	if k.pads.Active() {
		k.renderMatching(addr, ev.IsPress())
	}
}

func (k *Keyboard) pickSetting(addr int) {
	for _, p := range rootLayout {
		if p.pad == addr {
			k.SetRoot(p.value)
			return
		}
	}
	for _, p := range octaveLayout {
		if p.pad == addr {
			k.SetOctave(p.value)
			return
		}
	}
	for _, p := range scaleLayout {
		if p.pad == addr {
			k.SetScale(p.value)
			return
		}
	}
}

// rebuild recomputes every key and pushes the translation table
func (k *Keyboard) rebuild() {
	root, oct, sc := k.root.Get(), k.octave.Get(), k.scale.Get()
	active, shift := k.pads.Active(), k.pads.Shift()
	for p := range k.keys {
		k.keys[p] = scale.Map(p, root, oct, sc, active, shift)
	}
	k.notes.SetKeyTranslationTable(scale.Table(root, oct, sc, active, shift))
}

func (k *Keyboard) setArmed(i int, v bool) {
	k.armed[i] = v
	k.renderArm(i)
}

func (k *Keyboard) renderArm(i int) {
	k.pads.RenderOnOff(midi.BottomPad(i), k.armed[i])
}

func (k *Keyboard) renderLayout() {
	if k.pads.Shift() {
		k.renderRootSettings()
		k.renderOctaveSettings()
		k.renderScaleSettings()
		return
	}
	for p := range k.keys {
		k.renderKey(p, false)
	}
}

func (k *Keyboard) renderKey(p int, pressed bool) {
	key := k.keys[p]
	switch {
	case key.Note == scale.NoNote:
		k.pads.Render(p, midi.Off)
	case pressed:
		k.pads.Render(p, midi.Green)
	case key.Root:
		k.pads.Render(p, midi.Red)
	default:
		k.pads.Render(p, midi.Orange)
	}
}

// renderMatching lights every pad that plays the same note as addr
func (k *Keyboard) renderMatching(addr int, pressed bool) {
	note := k.keys[addr].Note
	if note == scale.NoNote {
		return
	}
	for p, key := range k.keys {
		if key.Note == note {
			k.renderKey(p, pressed)
		}
	}
}

func (k *Keyboard) renderSettings(layout []settingsPad, current string) {
	if !k.pads.Active() || !k.pads.Shift() {
		return
	}
	for _, p := range layout {
		if p.value == current {
			k.pads.Render(p.pad, midi.Red)
		} else {
			k.pads.Render(p.pad, midi.Orange)
		}
	}
}

func (k *Keyboard) renderRootSettings()   { k.renderSettings(rootLayout, k.root.Get()) }
func (k *Keyboard) renderOctaveSettings() { k.renderSettings(octaveLayout, k.octave.Get()) }
func (k *Keyboard) renderScaleSettings()  { k.renderSettings(scaleLayout, k.scale.Get()) }
