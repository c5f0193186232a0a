package host

import "slices"

// Observable values follow the DAW convention: Observe registers a
// callback and immediately delivers the current value; afterwards the
// callback fires on every change, never on a write of the same value.

// BoolValue is a read-only observable boolean
type BoolValue interface {
	Get() bool
	Observe(fn func(bool))
}

// SettableBool is a boolean the controller may write
type SettableBool interface {
	BoolValue
	Set(v bool)
	Toggle()
}

// IntValue is a read-only observable integer
type IntValue interface {
	Get() int
	Observe(fn func(int))
}

// SettableInt is an integer the controller may write
type SettableInt interface {
	IntValue
	Set(v int)
}

// FloatValue is a read-only observable normalized value (0..1)
type FloatValue interface {
	Get() float64
	Observe(fn func(float64))
}

// SettableFloat is a normalized value the controller may write
type SettableFloat interface {
	FloatValue
	Set(v float64)
}

// EnumValue is a read-only observable choice
type EnumValue interface {
	Get() string
	Options() []string
	Observe(fn func(string))
}

// SettableEnum is a choice the controller may write
type SettableEnum interface {
	EnumValue
	Set(v string)
}

// Bool is the in-memory SettableBool
type Bool struct {
	v         bool
	observers []func(bool)
}

func NewBool(v bool) *Bool {
	return &Bool{v: v}
}

func (b *Bool) Get() bool {
	return b.v
}

func (b *Bool) Set(v bool) {
	if b.v == v {
		return
	}
	b.v = v
	for _, fn := range b.observers {
		fn(v)
	}
}

func (b *Bool) Toggle() {
	b.Set(!b.v)
}

func (b *Bool) Observe(fn func(bool)) {
	b.observers = append(b.observers, fn)
	fn(b.v)
}

// Int is the in-memory SettableInt
type Int struct {
	v         int
	observers []func(int)
}

func NewInt(v int) *Int {
	return &Int{v: v}
}

func (i *Int) Get() int {
	return i.v
}

func (i *Int) Set(v int) {
	if i.v == v {
		return
	}
	i.v = v
	for _, fn := range i.observers {
		fn(v)
	}
}

func (i *Int) Observe(fn func(int)) {
	i.observers = append(i.observers, fn)
	fn(i.v)
}

// Float is the in-memory SettableFloat, clamped to 0..1
type Float struct {
	v         float64
	observers []func(float64)
}

func NewFloat(v float64) *Float {
	return &Float{v: clamp01(v)}
}

func (f *Float) Get() float64 {
	return f.v
}

func (f *Float) Set(v float64) {
	v = clamp01(v)
	if f.v == v {
		return
	}
	f.v = v
	for _, fn := range f.observers {
		fn(v)
	}
}

func (f *Float) Observe(fn func(float64)) {
	f.observers = append(f.observers, fn)
	fn(f.v)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// Enum is the in-memory SettableEnum. Writes outside Options are ignored.
type Enum struct {
	v         string
	options   []string
	observers []func(string)
}

// NewEnum creates an enum; an initial value outside options falls back to
// the first option
func NewEnum(options []string, initial string) *Enum {
	e := &Enum{options: slices.Clone(options), v: initial}
	if !slices.Contains(e.options, initial) && len(e.options) > 0 {
		e.v = e.options[0]
	}
	return e
}

func (e *Enum) Get() string {
	return e.v
}

func (e *Enum) Options() []string {
	return slices.Clone(e.options)
}

func (e *Enum) Set(v string) {
	if e.v == v || !slices.Contains(e.options, v) {
		return
	}
	e.v = v
	for _, fn := range e.observers {
		fn(v)
	}
}

func (e *Enum) Observe(fn func(string)) {
	e.observers = append(e.observers, fn)
	fn(e.v)
}
