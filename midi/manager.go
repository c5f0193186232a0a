package midi

import (
	"context"
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"

	"apc-control/debug"

	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// DeviceEvent is emitted when controllers connect/disconnect
type DeviceEvent struct {
	Type  DeviceEventType
	Port  *Port
	ID    string // hardware port name
	Index int    // index of the configured name that matched
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of the configured controllers
type DeviceManager struct {
	names    []string
	ports    map[string]*Port // by hardware port name
	held     map[int]string   // configured index -> hardware port name
	mu       sync.RWMutex
	events   chan DeviceEvent
	pollRate time.Duration
}

// NewDeviceManager watches for ports matching the given names, one
// controller instance per name
func NewDeviceManager(names []string) *DeviceManager {
	return &DeviceManager{
		names:    names,
		ports:    make(map[string]*Port),
		held:     make(map[int]string),
		events:   make(chan DeviceEvent, 16),
		pollRate: time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Connected returns the number of open ports
func (dm *DeviceManager) Connected() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.ports)
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	inPorts, outPorts, err := scanPorts()
	if err != nil {
		// skip this scan, the next tick retries
		debug.Log("devices", "scan: %v", err)
		return
	}

	ids := make([]string, len(inPorts))
	byID := make(map[string]drivers.In, len(inPorts))
	for i, in := range inPorts {
		ids[i] = in.String()
		byID[ids[i]] = in
	}

	dm.mu.RLock()
	held := maps.Clone(dm.held)
	dm.mu.RUnlock()

	want := assignPorts(dm.names, ids, held)

	// release first so a port moving between names is never open twice
	for idx := range dm.names {
		if id, ok := held[idx]; ok && want[idx] != id {
			dm.release(idx, id)
		}
	}
	for idx := range dm.names {
		if id, ok := want[idx]; ok && held[idx] != id {
			dm.open(idx, id, byID[id], outPorts)
		}
	}
}

func (dm *DeviceManager) open(idx int, id string, in drivers.In, outs []drivers.Out) {
	name := dm.names[idx]
	port, err := NewPort(name, in, pickOut(outs, id, name))
	if err != nil {
		debug.Error("devices", err, "open %s", id)
		return
	}

	dm.mu.Lock()
	dm.ports[id] = port
	dm.held[idx] = id
	dm.mu.Unlock()

	debug.Log("devices", "connected %s as %q", id, name)
	dm.events <- DeviceEvent{Type: DeviceConnected, Port: port, ID: id, Index: idx}
}

func (dm *DeviceManager) release(idx int, id string) {
	dm.mu.Lock()
	p := dm.ports[id]
	delete(dm.ports, id)
	delete(dm.held, idx)
	dm.mu.Unlock()

	if p == nil {
		return
	}
	p.Close()
	debug.Log("devices", "disconnected %s", id)
	dm.events <- DeviceEvent{Type: DeviceDisconnected, Port: p, ID: id, Index: idx}
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, p := range dm.ports {
		p.Close()
	}
	dm.ports = make(map[string]*Port)
	dm.held = make(map[int]string)
}

// assignPorts decides which input port each configured name drives. A port
// stays with the index holding it while it is present; free ports go to
// the first name that matches them, so two names never share a device.
// A name with an instance suffix such as "APC MINI #2" falls back to its
// base name when no port carries the suffix, which is how ALSA lists a
// second identical device ("APC MINI:APC MINI MIDI 1 24:0").
func assignPorts(names, ports []string, held map[int]string) map[int]string {
	present := make(map[string]bool, len(ports))
	for _, p := range ports {
		present[p] = true
	}

	out := make(map[int]string)
	taken := make(map[string]bool)
	for idx, id := range held {
		if idx < len(names) && present[id] {
			out[idx] = id
			taken[id] = true
		}
	}
	for idx, name := range names {
		if _, ok := out[idx]; ok {
			continue
		}
		if id := pickPort(ports, name, taken); id != "" {
			out[idx] = id
			taken[id] = true
		}
	}
	return out
}

func pickPort(ports []string, name string, taken map[string]bool) string {
	first := func(match func(string) bool) string {
		for _, p := range ports {
			if !taken[p] && match(p) {
				return p
			}
		}
		return ""
	}
	if id := first(func(p string) bool { return strings.EqualFold(p, name) }); id != "" {
		return id
	}
	if id := first(func(p string) bool { return matchesName(p, name) }); id != "" {
		return id
	}
	if base, ok := instanceBase(name); ok {
		return first(func(p string) bool { return matchesName(p, base) })
	}
	return ""
}

// pickOut prefers the output named exactly like the chosen input, which
// is how every backend lists the two halves of one device
func pickOut(outs []drivers.Out, inID, name string) drivers.Out {
	for _, out := range outs {
		if out.String() == inID {
			return out
		}
	}
	return matchOut(outs, name)
}

// instanceBase strips a " #N" instance suffix
func instanceBase(name string) (string, bool) {
	i := strings.LastIndex(name, "#")
	if i <= 0 {
		return "", false
	}
	if _, err := strconv.Atoi(strings.TrimSpace(name[i+1:])); err != nil {
		return "", false
	}
	return strings.TrimSpace(name[:i]), true
}
