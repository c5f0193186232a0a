package session

import "apc-control/host"

// Slot values mirror whatever model object a bank slot currently points at.
// The embedded value carries observers; writes go to the model first and
// come back through the next sync.

type slotBool struct {
	*host.Bool
	write func(bool)
}

func newSlotBool(write func(bool)) *slotBool {
	return &slotBool{Bool: host.NewBool(false), write: write}
}

func (b *slotBool) Set(v bool) {
	b.write(v)
}

func (b *slotBool) Toggle() {
	b.write(!b.Get())
}

type slotInt struct {
	*host.Int
	write func(int)
}

func newSlotInt(initial int, write func(int)) *slotInt {
	return &slotInt{Int: host.NewInt(initial), write: write}
}

func (i *slotInt) Set(v int) {
	i.write(v)
}

type slotFloat struct {
	*host.Float
	write func(float64)
}

func newSlotFloat(write func(float64)) *slotFloat {
	return &slotFloat{Float: host.NewFloat(0), write: write}
}

func (f *slotFloat) Set(v float64) {
	f.write(v)
}
