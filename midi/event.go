package midi

import "fmt"

// MIDI status bytes (channel 0)
const (
	NoteOff uint8 = 0x80
	NoteOn  uint8 = 0x90
	CC      uint8 = 0xB0
)

// Event is a raw (status, data1, data2) triple as it travels to and from
// the hardware. For LED writes data1 is the pad address and data2 the color.
type Event struct {
	Status uint8
	Data1  uint8
	Data2  uint8
}

// NoteOnEvent builds a note-on, which is also how APC LEDs are set
func NoteOnEvent(note, velocity uint8) Event {
	return Event{Status: NoteOn, Data1: note, Data2: velocity}
}

// NoteOffEvent builds a note-off
func NoteOffEvent(note uint8) Event {
	return Event{Status: NoteOff, Data1: note}
}

// CCEvent builds a control change
func CCEvent(cc, value uint8) Event {
	return Event{Status: CC, Data1: cc, Data2: value}
}

// Kind returns the status with the channel nibble stripped
func (e Event) Kind() uint8 {
	return e.Status & 0xF0
}

// Channel returns the channel nibble
func (e Event) Channel() uint8 {
	return e.Status & 0x0F
}

// IsPress reports a note-on with non-zero velocity
func (e Event) IsPress() bool {
	return e.Kind() == NoteOn && e.Data2 > 0
}

// IsRelease reports a note-off, or a note-on with zero velocity
func (e Event) IsRelease() bool {
	return e.Kind() == NoteOff || (e.Kind() == NoteOn && e.Data2 == 0)
}

// IsNote reports either a press or a release
func (e Event) IsNote() bool {
	return e.Kind() == NoteOn || e.Kind() == NoteOff
}

func (e Event) String() string {
	return fmt.Sprintf("%d/%d/%d", e.Status, e.Data1, e.Data2)
}

// Sender accepts outgoing events
type Sender interface {
	Send(ev Event) error
}

// SenderFunc adapts a function to Sender
type SenderFunc func(ev Event) error

func (f SenderFunc) Send(ev Event) error {
	return f(ev)
}
