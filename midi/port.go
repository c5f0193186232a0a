package midi

import (
	"strings"
	"time"

	"apc-control/debug"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// portScanTimeout bounds port enumeration (CoreMIDI can hang)
const portScanTimeout = 3 * time.Second

// Port is an opened hardware in/out pair
type Port struct {
	name     string
	inPort   drivers.In
	outPort  drivers.Out
	send     func(msg gomidi.Message) error
	stopFunc func()
}

// NewPort opens the output side of a port pair. Input is opened by Listen.
func NewPort(name string, inPort drivers.In, outPort drivers.Out) (*Port, error) {
	p := &Port{
		name:    name,
		inPort:  inPort,
		outPort: outPort,
	}

	if outPort != nil {
		send, err := gomidi.SendTo(outPort)
		if err != nil {
			return nil, fault.Wrap(err, fmsg.With("open output "+name))
		}
		p.send = send
	}

	return p, nil
}

// OpenPort finds the input and output ports whose names match and opens them
func OpenPort(name string) (*Port, error) {
	ins, outs, err := scanPorts()
	if err != nil {
		return nil, err
	}
	in := matchIn(ins, name)
	out := matchOut(outs, name)
	if in == nil && out == nil {
		return nil, fault.Wrap(fault.New("no MIDI port matching "+name), ftag.With(ftag.NotFound))
	}
	return NewPort(name, in, out)
}

func (p *Port) Name() string {
	return p.name
}

// Send writes one event to the output. Ports without an output drop it.
func (p *Port) Send(ev Event) error {
	if p.send == nil {
		return nil
	}
	var msg gomidi.Message
	ch := ev.Channel()
	switch ev.Kind() {
	case NoteOn:
		msg = gomidi.NoteOn(ch, ev.Data1, ev.Data2)
	case NoteOff:
		msg = gomidi.NoteOffVelocity(ch, ev.Data1, ev.Data2)
	case CC:
		msg = gomidi.ControlChange(ch, ev.Data1, ev.Data2)
	default:
		msg = gomidi.Message{ev.Status, ev.Data1, ev.Data2}
	}
	debug.LogEvery(500, "midi-send", "%s", p.name)
	return p.send(msg)
}

// Listen delivers every three-byte channel message from the input to fn.
// fn runs on the driver goroutine.
func (p *Port) Listen(fn func(Event)) error {
	if p.inPort == nil {
		return fault.Wrap(fault.New("port "+p.name+" has no input"), ftag.With(ftag.NotFound))
	}
	if p.stopFunc != nil {
		p.stopFunc()
	}
	stop, err := gomidi.ListenTo(p.inPort, func(msg gomidi.Message, timestampms int32) {
		raw := msg.Bytes()
		if len(raw) != 3 {
			return
		}
		fn(Event{Status: raw[0], Data1: raw[1], Data2: raw[2]})
	})
	if err != nil {
		return fault.Wrap(err, fmsg.With("open input "+p.name))
	}
	p.stopFunc = stop
	return nil
}

// Close blanks every LED and stops listening. The first failed write is
// logged and returned; blanking carries on regardless.
func (p *Port) Close() error {
	var first error
	if p.send != nil {
		for addr := 0; addr <= ButtonShift; addr++ {
			if err := p.send(gomidi.NoteOn(0, uint8(addr), uint8(Off))); err != nil && first == nil {
				first = err
			}
		}
	}
	if first != nil {
		debug.Error("midi", first, "%s: blank LEDs", p.name)
	}
	if p.stopFunc != nil {
		p.stopFunc()
		p.stopFunc = nil
	}
	return first
}

// PortNames is the result of a port scan
type PortNames struct {
	Inputs  []string
	Outputs []string
}

// ListPorts enumerates the available MIDI ports
func ListPorts() (PortNames, error) {
	ins, outs, err := scanPorts()
	if err != nil {
		return PortNames{}, err
	}
	var names PortNames
	for _, in := range ins {
		names.Inputs = append(names.Inputs, in.String())
	}
	for _, out := range outs {
		names.Outputs = append(names.Outputs, out.String())
	}
	return names, nil
}

func scanPorts() ([]drivers.In, []drivers.Out, error) {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r.ins, r.outs, nil
	case <-time.After(portScanTimeout):
		// User needs to run: sudo killall coreaudiod midiserver
		return nil, nil, fault.Wrap(fault.New("MIDI port scan timed out"), ftag.With(ftag.Internal))
	}
}

// matchesName prefers an exact name, then a case-insensitive prefix that
// is not followed by an instance suffix such as " #2"
func matchesName(portName, want string) bool {
	p := strings.ToLower(strings.TrimSpace(portName))
	w := strings.ToLower(strings.TrimSpace(want))
	if p == w {
		return true
	}
	if !strings.Contains(p, w) {
		return false
	}
	rest := p[strings.Index(p, w)+len(w):]
	return !strings.HasPrefix(strings.TrimSpace(rest), "#")
}

func matchIn(ins []drivers.In, name string) drivers.In {
	for _, in := range ins {
		if strings.EqualFold(in.String(), name) {
			return in
		}
	}
	for _, in := range ins {
		if matchesName(in.String(), name) {
			return in
		}
	}
	return nil
}

func matchOut(outs []drivers.Out, name string) drivers.Out {
	for _, out := range outs {
		if strings.EqualFold(out.String(), name) {
			return out
		}
	}
	for _, out := range outs {
		if matchesName(out.String(), name) {
			return out
		}
	}
	return nil
}
