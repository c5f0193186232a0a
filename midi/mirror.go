package midi

import "sync"

// Mirror records the last color written to each pad and passes events on.
// The TUI reads it from its own goroutine.
type Mirror struct {
	next Sender
	mu   sync.RWMutex
	leds [PadCount]Color
	sent int
}

// NewMirror wraps next, which may be nil for simulation
func NewMirror(next Sender) *Mirror {
	return &Mirror{next: next}
}

// SetNext swaps the downstream sender; nil keeps mirroring only
func (m *Mirror) SetNext(next Sender) {
	m.mu.Lock()
	m.next = next
	m.mu.Unlock()
}

func (m *Mirror) Send(ev Event) error {
	m.mu.Lock()
	if ev.Kind() == NoteOn {
		m.leds[ev.Data1&0x7F] = Color(ev.Data2)
		m.sent++
	}
	next := m.next
	m.mu.Unlock()
	if next == nil {
		return nil
	}
	return next.Send(ev)
}

// LED returns the last color sent to addr
func (m *Mirror) LED(addr int) Color {
	if addr < 0 || addr >= PadCount {
		return Off
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.leds[addr]
}

// Snapshot copies the full LED state
func (m *Mirror) Snapshot() [PadCount]Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.leds
}

// Sent returns how many LED writes passed through
func (m *Mirror) Sent() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sent
}
