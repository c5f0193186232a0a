// Package surface holds the pad-surface capability shared by every mode:
// the active and shift flags, the outgoing LED queue, and color writes.
package surface

import (
	"apc-control/midi"
)

// Pads queues LED writes for one mode and drains them on Flush
type Pads struct {
	out    midi.Sender
	ranges []midi.Range
	active bool
	shift  bool
	queue  []midi.Event
}

// New creates an inactive surface that owns the given address ranges
func New(out midi.Sender, ranges ...midi.Range) *Pads {
	return &Pads{out: out, ranges: ranges}
}

// ModeRanges are the sections a grid mode paints: main grid, bottom row
// for the bank size, and side column
func ModeRanges(gridSize int) []midi.Range {
	return []midi.Range{midi.GridRange(), midi.BottomRange(gridSize), midi.SideRange()}
}

// Activate marks the surface active and blanks every owned address
func (p *Pads) Activate() {
	p.active = true
	for _, r := range p.ranges {
		p.Clear(r)
	}
}

// Deactivate marks the surface inactive and drops anything not yet flushed
func (p *Pads) Deactivate() {
	p.active = false
	p.queue = nil
}

func (p *Pads) Active() bool {
	return p.active
}

func (p *Pads) Shift() bool {
	return p.shift
}

func (p *Pads) SetShift(v bool) {
	p.shift = v
}

// Render queues a color for addr; inactive surfaces drop the write
func (p *Pads) Render(addr int, c midi.Color) {
	if !p.active || addr < 0 || addr >= midi.PadCount {
		return
	}
	p.queue = append(p.queue, midi.NoteOnEvent(uint8(addr), uint8(c)))
}

// RenderOnOff renders Green for on, Off otherwise
func (p *Pads) RenderOnOff(addr int, on bool) {
	if on {
		p.Render(addr, midi.Green)
		return
	}
	p.Render(addr, midi.Off)
}

// Clear renders Off for every address in r
func (p *Pads) Clear(r midi.Range) {
	for addr := r.Start; addr < r.Start+r.Len; addr++ {
		p.Render(addr, midi.Off)
	}
}

// Flush sends the queue in order and empties it. The first send error
// stops the drain; the rest of the batch is dropped with the queue.
func (p *Pads) Flush() error {
	if len(p.queue) == 0 {
		return nil
	}
	queue := p.queue
	p.queue = nil
	for _, ev := range queue {
		if err := p.out.Send(ev); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns a copy of the queued events
func (p *Pads) Pending() []midi.Event {
	out := make([]midi.Event, len(p.queue))
	copy(out, p.queue)
	return out
}
