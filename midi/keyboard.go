package midi

import (
	"sync"

	"apc-control/debug"
)

// NoNote marks a pad that should not produce a note
const NoNote = -1

// KeyboardFilter accepts grid note-on/off on channel 0, the only events
// the note-input layer translates.
func KeyboardFilter(ev Event) bool {
	return ev.Channel() == 0 && ev.IsNote() && IsGridPad(int(ev.Data1))
}

// NoteForwarder rewrites grid pad presses into scale notes and forwards
// them to a synth/DAW output. The table is swapped from the engine
// goroutine while Process runs on the MIDI listener goroutine. A release
// goes to the note its press sent, whatever the table says by then.
type NoteForwarder struct {
	name  string
	out   Sender
	mu    sync.RWMutex
	table [PadCount]int
	held  [GridPads]int
}

// NewNoteForwarder creates a forwarder with every key silenced
func NewNoteForwarder(name string, out Sender) *NoteForwarder {
	f := &NoteForwarder{name: name, out: out}
	for i := range f.table {
		f.table[i] = NoNote
	}
	for i := range f.held {
		f.held[i] = NoNote
	}
	return f
}

// SetKeyTranslationTable replaces the pad -> note table
func (f *NoteForwarder) SetKeyTranslationTable(table [PadCount]int) {
	f.mu.Lock()
	f.table = table
	f.mu.Unlock()
}

// Translate returns the note for a pad, or NoNote
func (f *NoteForwarder) Translate(pad uint8) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.table[pad&0x7F]
}

// Process forwards ev when it passes the keyboard filter and maps to a note.
// It reports whether anything was sent.
func (f *NoteForwarder) Process(ev Event) bool {
	if f.out == nil || !KeyboardFilter(ev) {
		return false
	}
	pad := int(ev.Data1)

	f.mu.Lock()
	var note int
	if ev.IsPress() {
		note = f.table[pad]
		if note < 0 || note >= PadCount {
			note = NoNote
		}
		f.held[pad] = note
	} else {
		note = f.held[pad]
		f.held[pad] = NoNote
	}
	f.mu.Unlock()

	if note == NoNote {
		return false
	}
	out := ev
	out.Data1 = uint8(note)
	if err := f.out.Send(out); err != nil {
		debug.Error("notes", err, "%s forward %s", f.name, out)
		return false
	}
	return true
}
