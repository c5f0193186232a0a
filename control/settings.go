package control

import (
	"apc-control/host"
)

// SettingsPort keeps one setting consistent across several persisted
// scopes. A change from any scope, or a local Set, becomes the value and is
// written to every other scope that differs. Writes are equality-gated so
// the echo of a write-through never loops back as a new change.
type SettingsPort struct {
	value    string
	scopes   []host.SettableEnum
	onChange func(string)
}

// NewSettingsPort subscribes to each scope in order. The first scope whose
// stored value differs from initial wins and is pushed to the rest.
func NewSettingsPort(initial string, onChange func(string), scopes ...host.SettableEnum) *SettingsPort {
	p := &SettingsPort{value: initial, scopes: scopes}
	for _, scope := range scopes {
		scope.Observe(p.external)
	}
	// onChange is attached after the initial fan-in so construction does
	// not call back into a half-built owner
	p.onChange = onChange
	return p
}

// Get returns the current value
func (p *SettingsPort) Get() string {
	return p.value
}

// Set applies a local change. It reports whether the value changed.
func (p *SettingsPort) Set(v string) bool {
	if v == p.value {
		return false
	}
	p.value = v
	p.writeThrough()
	return true
}

func (p *SettingsPort) external(v string) {
	if v == p.value {
		return
	}
	p.value = v
	p.writeThrough()
	if p.onChange != nil {
		p.onChange(v)
	}
}

func (p *SettingsPort) writeThrough() {
	for _, scope := range p.scopes {
		if scope.Get() != p.value {
			scope.Set(p.value)
		}
	}
}
