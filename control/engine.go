package control

import (
	"context"
	"slices"
	"sync"
	"time"

	"apc-control/debug"
)

const flushFPS = 30

type periodic struct {
	every time.Duration
	fn    func()
}

// Engine owns every controller instance and the host. All instance and
// host calls happen on the Run goroutine; other goroutines hand work over
// with Post. Outgoing LEDs are flushed at a fixed rate.
type Engine struct {
	tasks   chan func()
	updates chan struct{}

	instances map[string]Instance
	order     []string
	periodic  []periodic
	dirty     bool

	mu     sync.Mutex
	status []Status
}

func NewEngine() *Engine {
	return &Engine{
		tasks:     make(chan func(), 256),
		updates:   make(chan struct{}, 1),
		instances: make(map[string]Instance),
	}
}

// Post queues fn for the engine goroutine. It blocks only when the queue
// is full.
func (e *Engine) Post(fn func()) {
	e.tasks <- fn
}

// Call runs fn on the engine goroutine and waits for it
func (e *Engine) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case e.tasks <- func() { fn(); close(done) }:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Every runs fn on the engine goroutine at the given interval. Register
// before Run.
func (e *Engine) Every(d time.Duration, fn func()) {
	e.periodic = append(e.periodic, periodic{every: d, fn: fn})
}

// Attach adds an instance under id, replacing (and closing) any previous
// one. Call from the engine goroutine.
func (e *Engine) Attach(id string, inst Instance) {
	if old, ok := e.instances[id]; ok {
		e.closeInstance(id, old)
	} else {
		e.order = append(e.order, id)
	}
	e.instances[id] = inst
	e.dirty = true
	debug.Log("engine", "attached %s (%s)", id, inst.Name())
}

// Detach closes and removes the instance under id
func (e *Engine) Detach(id string) {
	inst, ok := e.instances[id]
	if !ok {
		return
	}
	e.closeInstance(id, inst)
	delete(e.instances, id)
	e.order = slices.DeleteFunc(e.order, func(s string) bool { return s == id })
	e.dirty = true
	debug.Log("engine", "detached %s", id)
}

func (e *Engine) closeInstance(id string, inst Instance) {
	if err := inst.Close(); err != nil {
		debug.Error("engine", err, "close %s", id)
	}
}

// Instance returns the instance attached under id
func (e *Engine) Instance(id string) (Instance, bool) {
	inst, ok := e.instances[id]
	return inst, ok
}

// Updates pings after a tick in which something changed
func (e *Engine) Updates() <-chan struct{} {
	return e.updates
}

// Snapshot returns the status of every attached instance, in attach
// order. Safe from any goroutine.
func (e *Engine) Snapshot() []Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.status)
}

// Run processes posted work until ctx is done. Instances still attached
// are closed on the way out.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / flushFPS)
	defer ticker.Stop()

	var wg sync.WaitGroup
	for _, p := range e.periodic {
		wg.Add(1)
		go func() {
			defer wg.Done()
			t := time.NewTicker(p.every)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					select {
					case e.tasks <- p.fn:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			for _, id := range slices.Clone(e.order) {
				e.Detach(id)
			}
			e.Flush()
			return
		case fn := <-e.tasks:
			fn()
			e.dirty = true
		case <-ticker.C:
			e.Flush()
		}
	}
}

// Flush sends the pending LEDs of every instance and refreshes the
// snapshot. Run calls it on every tick.
func (e *Engine) Flush() {
	for _, id := range e.order {
		if err := e.instances[id].Flush(); err != nil {
			debug.Error("engine", err, "flush %s", id)
		}
	}
	if !e.dirty {
		return
	}
	e.dirty = false

	status := make([]Status, 0, len(e.order))
	for _, id := range e.order {
		inst := e.instances[id]
		if r, ok := inst.(statusReporter); ok {
			status = append(status, r.Status())
		} else {
			status = append(status, Status{Name: inst.Name()})
		}
	}
	e.mu.Lock()
	e.status = status
	e.mu.Unlock()

	select {
	case e.updates <- struct{}{}:
	default:
	}
}
