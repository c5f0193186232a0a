package control

import (
	"apc-control/midi"
	"apc-control/session"
)

// recorder captures flushed events and the resulting LED state
type recorder struct {
	events []midi.Event
	leds   map[int]midi.Color
	err    error
}

func newRecorder() *recorder {
	return &recorder{leds: make(map[int]midi.Color)}
}

func (r *recorder) Send(ev midi.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, ev)
	if ev.Kind() == midi.NoteOn {
		r.leds[int(ev.Data1)] = midi.Color(ev.Data2)
	}
	return nil
}

func (r *recorder) led(addr int) midi.Color {
	return r.leds[addr]
}

func (r *recorder) reset() {
	r.events = nil
}

func press(addr int) midi.Event {
	return midi.NoteOnEvent(uint8(addr), 127)
}

func release(addr int) midi.Event {
	return midi.NoteOffEvent(uint8(addr))
}

func demoSession() *session.Session {
	return session.New(session.Demo(), nil)
}
