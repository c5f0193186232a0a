package control

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-control/midi"
)

type fakeInstance struct {
	name     string
	flushes  int
	closed   bool
	events   []midi.Event
	flushErr error
}

func (f *fakeInstance) Name() string             { return f.name }
func (f *fakeInstance) HandleMIDI(ev midi.Event) { f.events = append(f.events, ev) }
func (f *fakeInstance) Flush() error             { f.flushes++; return f.flushErr }
func (f *fakeInstance) Refresh()                 {}
func (f *fakeInstance) Close() error             { f.closed = true; return nil }
func (f *fakeInstance) Status() Status           { return Status{Name: f.name, Mode: "TEST"} }

func TestEngineFlushUpdatesSnapshot(t *testing.T) {
	e := NewEngine()
	a := &fakeInstance{name: "a"}
	b := &fakeInstance{name: "b", flushErr: errors.New("unplugged")}
	e.Attach("a", a)
	e.Attach("b", b)

	e.Flush()
	assert.Equal(t, 1, a.flushes)
	assert.Equal(t, 1, b.flushes)
	assert.Equal(t, []Status{{Name: "a", Mode: "TEST"}, {Name: "b", Mode: "TEST"}}, e.Snapshot())

	select {
	case <-e.Updates():
	default:
		t.Fatal("expected an update after attach")
	}

	// nothing changed
	e.Flush()
	select {
	case <-e.Updates():
		t.Fatal("unexpected update")
	default:
	}
}

func TestEngineAttachReplacesAndDetachCloses(t *testing.T) {
	e := NewEngine()
	old := &fakeInstance{name: "old"}
	e.Attach("x", old)
	next := &fakeInstance{name: "new"}
	e.Attach("x", next)
	assert.True(t, old.closed)

	inst, ok := e.Instance("x")
	require.True(t, ok)
	assert.Same(t, next, inst)

	e.Detach("x")
	assert.True(t, next.closed)
	_, ok = e.Instance("x")
	assert.False(t, ok)

	e.Flush()
	assert.Empty(t, e.Snapshot())
}

func TestEngineRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := NewEngine()
	ticks := 0
	e.Every(5*time.Millisecond, func() { ticks++ })

	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	inst := &fakeInstance{name: "apc"}
	require.NoError(t, e.Call(ctx, func() { e.Attach("apc", inst) }))
	e.Post(func() { inst.HandleMIDI(press(12)) })

	require.Eventually(t, func() bool {
		return len(e.Snapshot()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	require.Eventually(t, func() bool {
		var n, flushes int
		_ = e.Call(ctx, func() { n, flushes = ticks, inst.flushes })
		return n > 0 && flushes > 0
	}, 2*time.Second, 5*time.Millisecond)

	var events int
	require.NoError(t, e.Call(ctx, func() { events = len(inst.events) }))
	assert.Equal(t, 1, events)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
	}
	assert.True(t, inst.closed)
}
