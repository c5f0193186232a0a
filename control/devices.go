package control

import (
	"apc-control/host"
	"apc-control/midi"
	"apc-control/surface"
)

// noDevice marks a column that shows its device chain rather than the
// layers of one device
const noDevice = -1

type devicePad struct {
	empty  bool
	active bool
	layers bool
}

type layerPad struct {
	empty bool
	muted bool
	chain bool
}

// Devices shows each track's device chain down its column. Pressing a
// device with shift, or while holding the column's bottom button, drills
// into that device's layers; the bottom pad is lit while drilled in.
type Devices struct {
	pads *surface.Pads
	bank host.TrackBank

	rows      int
	layerRows int

	devices [][]devicePad
	layers  [][][]layerPad
	chain   [][]int

	// drill remembers, per bank scroll position, which device each column
	// is drilled into. Rows are allocated on first visit.
	drill map[int][]int
	pos   int
	held  []bool
}

var _ Mode = (*Devices)(nil)

func NewDevices(out midi.Sender, bank host.TrackBank) *Devices {
	cols := bank.Size()
	d := &Devices{
		pads:    surface.New(out, surface.ModeRanges(cols)...),
		bank:    bank,
		devices: make([][]devicePad, cols),
		layers:  make([][][]layerPad, cols),
		chain:   make([][]int, cols),
		drill:   make(map[int][]int),
		held:    make([]bool, cols),
	}
	if cols > 0 {
		first := bank.Track(0).Devices()
		d.rows = min(first.Size(), midi.GridSize)
		if d.rows > 0 {
			d.layerRows = min(first.Device(0).Layers().Size(), midi.GridSize)
		}
	}

	for c := 0; c < cols; c++ {
		d.bindColumn(c)
	}

	bank.ScrollPosition().Observe(func(p int) {
		d.pos = p
		if _, ok := d.drill[p]; !ok {
			row := make([]int, cols)
			for i := range row {
				row[i] = noDevice
			}
			d.drill[p] = row
		}
		for c := 0; c < cols; c++ {
			d.renderBottom(c)
			d.renderColumn(c)
		}
	})
	return d
}

func (d *Devices) bindColumn(c int) {
	d.devices[c] = make([]devicePad, d.rows)
	d.layers[c] = make([][]layerPad, d.rows)
	d.chain[c] = make([]int, d.rows)
	chain := d.bank.Track(c).Devices()

	for r := 0; r < d.rows; r++ {
		d.devices[c][r].empty = true
		d.layers[c][r] = make([]layerPad, d.layerRows)
		d.chain[c][r] = noDevice
		dev := chain.Device(r)

		dev.Exists().Observe(func(v bool) {
			d.devices[c][r].empty = !v
			d.renderDevice(c, r)
		})
		dev.IsEnabled().Observe(func(v bool) {
			d.devices[c][r].active = v
			d.renderDevice(c, r)
		})
		dev.HasLayers().Observe(func(v bool) {
			d.devices[c][r].layers = v
			d.renderDevice(c, r)
		})

		for l := 0; l < d.layerRows; l++ {
			d.layers[c][r][l].empty = true
			layer := dev.Layers().Layer(l)
			layer.Exists().Observe(func(v bool) {
				d.layers[c][r][l].empty = !v
				d.renderLayer(c, r, l)
			})
			layer.Mute().Observe(func(v bool) {
				d.layers[c][r][l].muted = v
				d.renderLayer(c, r, l)
			})
		}

		sel := dev.ChainSelector()
		sel.Exists().Observe(func(v bool) {
			for l := range d.layers[c][r] {
				d.layers[c][r][l].chain = v
			}
			d.renderLayers(c, r)
		})
		sel.ActiveChainIndex().Observe(func(idx int) {
			d.chain[c][r] = idx
			d.renderLayers(c, r)
		})
	}
}

// Drilled returns the device column col is drilled into at the current
// scroll position, or -1
func (d *Devices) Drilled(col int) int {
	row, ok := d.drill[d.pos]
	if !ok || col < 0 || col >= len(row) {
		return noDevice
	}
	return row[col]
}

func (d *Devices) setDrilled(col, dev int) {
	d.drill[d.pos][col] = dev
}

func (d *Devices) Activate() {
	d.pads.Activate()
	for c := range d.devices {
		d.renderBottom(c)
		d.renderColumn(c)
	}
}

func (d *Devices) Deactivate() {
	d.pads.Deactivate()
	for c := range d.held {
		d.held[c] = false
	}
}

func (d *Devices) SetShift(shift bool) {
	d.pads.SetShift(shift)
}

func (d *Devices) Flush() error {
	return d.pads.Flush()
}

func (d *Devices) padAt(addr int) (col, row int, ok bool) {
	if !midi.IsGridPad(addr) {
		return 0, 0, false
	}
	col = addr % midi.GridSize
	row = (midi.GridPads - midi.GridSize - (addr - col)) / midi.GridSize
	if col >= len(d.devices) || row >= d.rows {
		return 0, 0, false
	}
	return col, row, true
}

func (d *Devices) HandleMIDI(ev midi.Event) {
	if !ev.IsNote() {
		return
	}
	addr := int(ev.Data1)

	if midi.BottomRange(len(d.held)).Contains(addr) {
		col := addr - midi.BottomRowStart
		if ev.IsRelease() {
			d.held[col] = false
			return
		}
		d.held[col] = true
		if !d.pads.Shift() {
			d.showDevices(col)
		}
		return
	}

	if !ev.IsPress() {
		return
	}
	col, row, ok := d.padAt(addr)
	if !ok {
		return
	}

	if d.pads.Shift() || d.held[col] {
		d.showLayers(col, row)
		return
	}
	if dev := d.Drilled(col); dev != noDevice {
		d.pressLayer(col, dev, row)
		return
	}
	if d.devices[col][row].empty {
		return
	}
	d.bank.Track(col).Devices().Device(row).IsEnabled().Toggle()
}

func (d *Devices) pressLayer(col, dev, l int) {
	if l >= d.layerRows || d.layers[col][dev][l].empty {
		return
	}
	device := d.bank.Track(col).Devices().Device(dev)
	if d.layers[col][dev][l].chain {
		device.ChainSelector().ActiveChainIndex().Set(l)
		return
	}
	device.Layers().Layer(l).Mute().Toggle()
}

// showLayers drills col into dev; devices without layers are ignored
func (d *Devices) showLayers(col, dev int) {
	p := d.devices[col][dev]
	if p.empty || !p.layers {
		return
	}
	d.setDrilled(col, dev)
	d.renderBottom(col)
	d.renderColumn(col)
}

// showDevices returns col to the device chain; no-op when not drilled in
func (d *Devices) showDevices(col int) {
	if d.Drilled(col) == noDevice {
		return
	}
	d.setDrilled(col, noDevice)
	d.renderBottom(col)
	d.renderColumn(col)
}

func (d *Devices) renderBottom(c int) {
	d.pads.RenderOnOff(midi.BottomPad(c), d.Drilled(c) != noDevice)
}

func (d *Devices) renderColumn(c int) {
	dev := d.Drilled(c)
	if dev == noDevice {
		for r := 0; r < d.rows; r++ {
			d.renderDevice(c, r)
		}
		return
	}
	d.renderLayers(c, dev)
	for l := d.layerRows; l < d.rows; l++ {
		d.pads.Render(midi.Pad(c, l), midi.Off)
	}
}

func (d *Devices) renderDevice(c, r int) {
	if d.Drilled(c) != noDevice {
		return
	}
	p := d.devices[c][r]
	var color midi.Color
	switch {
	case p.empty:
		color = midi.Off
	case p.active && p.layers:
		color = midi.GreenBlink
	case p.active:
		color = midi.Green
	case p.layers:
		color = midi.OrangeBlink
	default:
		color = midi.Orange
	}
	d.pads.Render(midi.Pad(c, r), color)
}

func (d *Devices) renderLayers(c, dev int) {
	for l := 0; l < d.layerRows; l++ {
		d.renderLayer(c, dev, l)
	}
}

// renderLayer draws a layer of the drilled device. Chain-bound layers are
// muted unless they are the active chain.
func (d *Devices) renderLayer(c, dev, l int) {
	if d.Drilled(c) != dev {
		return
	}
	p := d.layers[c][dev][l]
	muted := p.muted
	if p.chain {
		muted = d.chain[c][dev] != l
	}
	switch {
	case p.empty:
		d.pads.Render(midi.Pad(c, l), midi.Off)
	case muted:
		d.pads.Render(midi.Pad(c, l), midi.Red)
	default:
		d.pads.Render(midi.Pad(c, l), midi.Green)
	}
}
