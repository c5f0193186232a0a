package control

import (
	"errors"

	"apc-control/debug"
	"apc-control/host"
	"apc-control/midi"
)

// Coordinator multiplexes the grid between modes. The mode preference is
// the only way to change mode: pressing a switch pad writes the preference
// and the coordinator follows it.
type Coordinator struct {
	name    string
	modes   map[ModeID]Mode
	sidebar ModeIndicator
	current ModeID
	active  Mode
	shift   bool
}

// NewCoordinator observes pref and activates the mode it names. Values
// that name no offered mode are ignored.
func NewCoordinator(name string, pref host.EnumValue, modes map[ModeID]Mode, sidebar ModeIndicator) *Coordinator {
	c := &Coordinator{
		name:    name,
		modes:   modes,
		sidebar: sidebar,
	}
	pref.Observe(c.preferenceChanged)
	return c
}

func (c *Coordinator) Name() string {
	return c.name
}

// Mode returns the current mode
func (c *Coordinator) Mode() ModeID {
	return c.current
}

// Active returns the active mode, nil before the first preference value
func (c *Coordinator) Active() Mode {
	return c.active
}

func (c *Coordinator) Shift() bool {
	return c.shift
}

func (c *Coordinator) Status() Status {
	s := Status{Name: c.name, Shift: c.shift}
	if c.active != nil {
		s.Mode = c.current.String()
	}
	return s
}

func (c *Coordinator) preferenceChanged(v string) {
	id, ok := ParseMode(v)
	if !ok {
		debug.Log("mode", "%s: unknown mode %q", c.name, v)
		return
	}
	next, ok := c.modes[id]
	if !ok {
		debug.Log("mode", "%s: mode %s not offered", c.name, id)
		return
	}
	if next == c.active {
		return
	}
	if c.active != nil {
		c.active.Deactivate()
	}
	c.current = id
	c.active = next
	next.Activate()
	next.SetShift(c.shift)
	c.sidebar.SetMode(id)
	debug.Log("mode", "%s: %s", c.name, id)
}

// SetShift forwards the shift state to the active mode and the sidebar
func (c *Coordinator) SetShift(shift bool) {
	c.shift = shift
	if c.active != nil {
		c.active.SetShift(shift)
	}
	c.sidebar.SetShift(shift)
}

// HandleMIDI tracks the shift button, then hands every event to the
// active mode and the sidebar
func (c *Coordinator) HandleMIDI(ev midi.Event) {
	if ev.IsNote() && ev.Data1 == midi.ButtonShift {
		if on := ev.IsPress(); on != c.shift {
			c.SetShift(on)
		}
	}
	if c.active != nil {
		c.active.HandleMIDI(ev)
	}
	c.sidebar.HandleMIDI(ev)
}

// Flush drains the active mode, then the sidebar
func (c *Coordinator) Flush() error {
	var errs []error
	if c.active != nil {
		errs = append(errs, c.active.Flush())
	}
	errs = append(errs, c.sidebar.Flush())
	return errors.Join(errs...)
}

// Refresh replays the current mode's activation. A reconnected device
// comes back with shift released.
func (c *Coordinator) Refresh() {
	c.shift = false
	if c.active != nil {
		c.active.Activate()
		c.active.SetShift(false)
	}
	c.sidebar.SetShift(false)
	c.sidebar.Activate()
}

// Close deactivates every surface. The keyboard releases its note table
// on the way out.
func (c *Coordinator) Close() error {
	if c.active != nil {
		c.active.Deactivate()
		c.active = nil
	}
	c.sidebar.Deactivate()
	return nil
}
