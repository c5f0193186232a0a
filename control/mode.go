// Package control is the controller engine: grid modes that mirror host
// state onto APC pads, the sidebar, and the coordinator that multiplexes
// them over one physical surface.
package control

import (
	"strings"

	"apc-control/midi"
)

// ModeID names a grid mode
type ModeID int

const (
	ModeKeyboard ModeID = iota
	ModeLauncher
	ModeDevices
)

// AllModes lists the modes in preference order
var AllModes = []ModeID{ModeKeyboard, ModeLauncher, ModeDevices}

func (m ModeID) String() string {
	switch m {
	case ModeKeyboard:
		return "KEYBOARD"
	case ModeLauncher:
		return "LAUNCHER"
	case ModeDevices:
		return "DEVICES"
	}
	return "UNKNOWN"
}

// ParseMode accepts the preference value (case-insensitive)
func ParseMode(s string) (ModeID, bool) {
	for _, m := range AllModes {
		if strings.EqualFold(s, m.String()) {
			return m, true
		}
	}
	return 0, false
}

// Mode is one way of using the grid. Only one mode per controller is
// active at a time; inactive modes keep mirroring host state but render
// nothing.
type Mode interface {
	Activate()
	Deactivate()
	SetShift(shift bool)
	HandleMIDI(ev midi.Event)
	Flush() error
}

// ModeIndicator is a mode that also reflects which grid mode is current
type ModeIndicator interface {
	Mode
	SetMode(id ModeID)
}

// Instance is one bound controller as the engine sees it
type Instance interface {
	Name() string
	HandleMIDI(ev midi.Event)
	Flush() error
	// Refresh repaints the whole surface, e.g. after the hardware reconnects
	Refresh()
	Close() error
}

// Status is a snapshot for display
type Status struct {
	Name  string
	Mode  string
	Shift bool
}

// statusReporter is implemented by instances that can describe themselves
type statusReporter interface {
	Status() Status
}
