package control

import (
	"fmt"
	"maps"
	"slices"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"

	"apc-control/debug"
	"apc-control/host"
	"apc-control/midi"
)

// MIDI Mix layout
const (
	mixerMaxSends     = 3
	mixerForwardNote  = 26
	mixerBackwardNote = 25
)

func mixerSoloNote(c int) int { return 1 + c*3 }
func mixerMuteNote(c int) int { return 2 + c*3 }
func mixerArmNote(c int) int  { return 3 + c*3 }
func mixerVolumeCC(c int) int { return 19 + c*4 }

func mixerSendCC(c, s int) int { return 16 + s + c*4 }

// Mixer drives a fader box: per-column solo/mute/arm buttons, a volume
// fader and up to three send knobs, plus bank paging. Button LEDs follow
// the host and are queued until Flush.
type Mixer struct {
	name  string
	out   midi.Sender
	bank  host.TrackBank
	queue []midi.Event

	notes map[int]host.SettableBool
	ccs   map[int]host.SettableFloat
	bound []bool
}

var _ Instance = (*Mixer)(nil)

// NewMixer binds every column it can. A column that fails to bind is
// logged and skipped; the others still work.
func NewMixer(name string, out midi.Sender, bank host.TrackBank) *Mixer {
	m := &Mixer{
		name:  name,
		out:   out,
		bank:  bank,
		notes: make(map[int]host.SettableBool),
		ccs:   make(map[int]host.SettableFloat),
		bound: make([]bool, bank.Size()),
	}
	for c := 0; c < bank.Size(); c++ {
		if err := m.bindColumn(c); err != nil {
			debug.Error("mixer", err, "%s column %d", name, c)
			continue
		}
		m.bound[c] = true
	}

	bank.CanScrollBackwards().Observe(func(v bool) { m.feedback(mixerBackwardNote, v) })
	bank.CanScrollForwards().Observe(func(v bool) { m.feedback(mixerForwardNote, v) })
	return m
}

// bindColumn collects every binding first so a failure leaves nothing
// half-registered
func (m *Mixer) bindColumn(c int) error {
	track := m.bank.Track(c)
	if track == nil {
		return fault.New(fmt.Sprintf("no track at column %d", c))
	}

	buttons := map[int]host.SettableBool{
		mixerSoloNote(c): track.Solo(),
		mixerMuteNote(c): track.Mute(),
		mixerArmNote(c):  track.Arm(),
	}
	knobs := map[int]host.SettableFloat{
		mixerVolumeCC(c): track.Volume(),
	}

	sends := track.Sends()
	for s := 0; s < min(mixerMaxSends, sends.Size()); s++ {
		send := sends.Send(s)
		if send == nil {
			return fault.Wrap(fmt.Errorf("send %d beyond bank of %d", s, sends.Size()),
				fmsg.With("bind sends"))
		}
		knobs[mixerSendCC(c, s)] = send
	}

	for note, v := range buttons {
		m.notes[note] = v
	}
	for cc, v := range knobs {
		m.ccs[cc] = v
	}

	// observers last so the first feedback only covers bound columns
	for _, note := range []int{mixerSoloNote(c), mixerMuteNote(c), mixerArmNote(c)} {
		buttons[note].Observe(func(v bool) { m.feedback(note, v) })
	}
	return nil
}

func (m *Mixer) Name() string {
	return m.name
}

// Bound reports whether column c bound successfully
func (m *Mixer) Bound(c int) bool {
	return c >= 0 && c < len(m.bound) && m.bound[c]
}

func (m *Mixer) Status() Status {
	return Status{Name: m.name, Mode: "MIXER"}
}

func (m *Mixer) HandleMIDI(ev midi.Event) {
	switch {
	case ev.Kind() == midi.CC:
		if v, ok := m.ccs[int(ev.Data1)]; ok {
			v.Set(float64(ev.Data2) / 127)
		}
	case ev.IsPress():
		switch int(ev.Data1) {
		case mixerForwardNote:
			m.bank.ScrollPageForwards()
		case mixerBackwardNote:
			m.bank.ScrollPageBackwards()
		default:
			if v, ok := m.notes[int(ev.Data1)]; ok {
				v.Toggle()
			}
		}
	}
}

func (m *Mixer) feedback(note int, on bool) {
	var v uint8
	if on {
		v = 1
	}
	m.queue = append(m.queue, midi.NoteOnEvent(uint8(note), v))
}

// Refresh queues the current state of every bound button
func (m *Mixer) Refresh() {
	for _, note := range slices.Sorted(maps.Keys(m.notes)) {
		m.feedback(note, m.notes[note].Get())
	}
	m.feedback(mixerBackwardNote, m.bank.CanScrollBackwards().Get())
	m.feedback(mixerForwardNote, m.bank.CanScrollForwards().Get())
}

// Pending returns a copy of the queued feedback
func (m *Mixer) Pending() []midi.Event {
	out := make([]midi.Event, len(m.queue))
	copy(out, m.queue)
	return out
}

func (m *Mixer) Flush() error {
	queue := m.queue
	m.queue = nil
	for _, ev := range queue {
		if err := m.out.Send(ev); err != nil {
			return err
		}
	}
	return nil
}

// Close drops any feedback not yet flushed
func (m *Mixer) Close() error {
	m.queue = nil
	return nil
}
