package session

import "apc-control/midi"

// NoteInput records the translation table a controller installs and
// resolves pad presses the way the DAW note path would
type NoteInput struct {
	name  string
	table [midi.PadCount]int
}

func newNoteInput(name string) *NoteInput {
	n := &NoteInput{name: name}
	for i := range n.table {
		n.table[i] = midi.NoNote
	}
	return n
}

func (n *NoteInput) Name() string {
	return n.name
}

func (n *NoteInput) SetKeyTranslationTable(table [midi.PadCount]int) {
	n.table = table
}

// Table returns the installed table
func (n *NoteInput) Table() [midi.PadCount]int {
	return n.table
}

// Note returns the note a raw pad plays, or midi.NoNote
func (n *NoteInput) Note(pad int) int {
	if pad < 0 || pad >= midi.PadCount {
		return midi.NoNote
	}
	return n.table[pad]
}
