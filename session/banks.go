package session

import (
	"apc-control/host"
)

// Device banks show this many devices per track, layer banks this many
// layers per device
const (
	DeviceBankSize = 8
	LayerBankSize  = 8
)

// TrackBank pages over the visible tracks
type TrackBank struct {
	s      *Session
	pos    *host.Int
	fwd    *host.Bool
	back   *host.Bool
	tracks []*trackSlot
	scenes *SceneBank
}

var _ host.TrackBank = (*TrackBank)(nil)

func newTrackBank(s *Session, size, sends, scenes int) *TrackBank {
	b := &TrackBank{
		s:    s,
		pos:  host.NewInt(0),
		fwd:  host.NewBool(false),
		back: host.NewBool(false),
	}
	b.scenes = newSceneBank(s, scenes, b)
	for i := 0; i < size; i++ {
		b.tracks = append(b.tracks, newTrackSlot(b, i, sends, scenes))
	}
	return b
}

func (b *TrackBank) Size() int {
	return len(b.tracks)
}

func (b *TrackBank) Track(i int) host.Track {
	if i < 0 || i >= len(b.tracks) {
		return nil
	}
	return b.tracks[i]
}

func (b *TrackBank) SceneBank() host.SceneBank {
	return b.scenes
}

func (b *TrackBank) ScrollPosition() host.IntValue {
	return b.pos
}

func (b *TrackBank) CanScrollForwards() host.BoolValue {
	return b.fwd
}

func (b *TrackBank) CanScrollBackwards() host.BoolValue {
	return b.back
}

func (b *TrackBank) ScrollPageForwards() {
	n := len(b.s.visible())
	if b.pos.Get()+b.Size() < n {
		b.pos.Set(b.pos.Get() + b.Size())
		b.s.changed()
	}
}

func (b *TrackBank) ScrollPageBackwards() {
	if b.pos.Get() > 0 {
		b.pos.Set(max(0, b.pos.Get()-b.Size()))
		b.s.changed()
	}
}

// target returns the track behind slot i, or nil past the end
func (b *TrackBank) target(i int) *Track {
	visible := b.s.visible()
	idx := b.pos.Get() + i
	if idx < 0 || idx >= len(visible) {
		return nil
	}
	return visible[idx]
}

func (b *TrackBank) sync() {
	n := len(b.s.visible())
	// collapsing a group can leave the window past the end
	if pos := b.pos.Get(); pos > 0 && pos >= n {
		b.pos.Set(max(0, (n-1)/b.Size()*b.Size()))
	}
	b.fwd.Set(b.pos.Get()+b.Size() < n)
	b.back.Set(b.pos.Get() > 0)
	b.scenes.sync()
	for _, t := range b.tracks {
		t.sync()
	}
}

type trackSlot struct {
	bank *TrackBank
	idx  int

	arm      *slotBool
	mute     *slotBool
	solo     *slotBool
	volume   *slotFloat
	group    *host.Bool
	expanded *slotBool
	stopped  *host.Bool

	clips   *clipSlotBank
	sends   *sendBank
	devices *deviceBank
}

func newTrackSlot(b *TrackBank, idx, sends, scenes int) *trackSlot {
	t := &trackSlot{
		bank:    b,
		idx:     idx,
		group:   host.NewBool(false),
		stopped: host.NewBool(true),
	}
	t.arm = newSlotBool(t.edit(func(tr *Track, v bool) { tr.Armed = v }))
	t.mute = newSlotBool(t.edit(func(tr *Track, v bool) { tr.Muted = v }))
	t.solo = newSlotBool(t.edit(func(tr *Track, v bool) { tr.Soloed = v }))
	t.expanded = newSlotBool(t.edit(func(tr *Track, v bool) {
		if tr.Group {
			tr.Expanded = v
		}
	}))
	t.volume = newSlotFloat(func(v float64) {
		if tr := t.target(); tr != nil {
			b.s.update(func() { tr.Volume = min(max(v, 0), 1) })
		}
	})

	t.clips = &clipSlotBank{}
	for j := 0; j < scenes; j++ {
		t.clips.slots = append(t.clips.slots, &clipSlot{
			track:   t,
			row:     j,
			content: host.NewBool(false),
			playing: host.NewBool(false),
			queued:  host.NewBool(false),
		})
	}

	t.sends = &sendBank{}
	for k := 0; k < sends; k++ {
		t.sends.sends = append(t.sends.sends, newSlotFloat(func(v float64) {
			tr := t.target()
			if tr == nil || k >= len(tr.Sends) {
				return
			}
			b.s.update(func() { tr.Sends[k] = min(max(v, 0), 1) })
		}))
	}

	t.devices = &deviceBank{}
	for d := 0; d < DeviceBankSize; d++ {
		t.devices.devices = append(t.devices.devices, newDeviceSlot(t, d))
	}
	return t
}

// edit adapts a field setter into a slot write
func (t *trackSlot) edit(set func(*Track, bool)) func(bool) {
	return func(v bool) {
		tr := t.target()
		if tr == nil {
			return
		}
		t.bank.s.update(func() { set(tr, v) })
	}
}

func (t *trackSlot) target() *Track {
	return t.bank.target(t.idx)
}

func (t *trackSlot) ClipSlots() host.ClipSlotBank       { return t.clips }
func (t *trackSlot) Sends() host.SendBank               { return t.sends }
func (t *trackSlot) Devices() host.DeviceBank           { return t.devices }
func (t *trackSlot) Arm() host.SettableBool             { return t.arm }
func (t *trackSlot) Mute() host.SettableBool            { return t.mute }
func (t *trackSlot) Solo() host.SettableBool            { return t.solo }
func (t *trackSlot) Volume() host.SettableFloat         { return t.volume }
func (t *trackSlot) IsGroup() host.BoolValue            { return t.group }
func (t *trackSlot) IsGroupExpanded() host.SettableBool { return t.expanded }
func (t *trackSlot) IsStopped() host.BoolValue          { return t.stopped }

func (t *trackSlot) Stop() {
	if tr := t.target(); tr != nil {
		t.bank.s.stopTrack(tr)
	}
}

func (t *trackSlot) sync() {
	tr := t.target()
	if tr == nil {
		tr = &Track{playing: -1, queued: -1}
	}
	t.arm.Bool.Set(tr.Armed)
	t.mute.Bool.Set(tr.Muted)
	t.solo.Bool.Set(tr.Soloed)
	t.volume.Float.Set(tr.Volume)
	t.group.Set(tr.Group)
	t.expanded.Bool.Set(tr.Group && tr.Expanded)
	t.stopped.Set(tr.stopped())

	offset := t.bank.scenes.pos
	for _, c := range t.clips.slots {
		scene := offset + c.row
		c.content.Set(tr.hasClip(scene))
		c.playing.Set(tr.playing == scene)
		c.queued.Set(tr.queued == scene)
	}
	for k, send := range t.sends.sends {
		v := 0.0
		if k < len(tr.Sends) {
			v = tr.Sends[k]
		}
		send.Float.Set(v)
	}
	for d, dev := range t.devices.devices {
		var model *Device
		if d < len(tr.Devices) {
			model = tr.Devices[d]
		}
		dev.sync(model)
	}
}

type clipSlotBank struct {
	slots []*clipSlot
}

func (c *clipSlotBank) Size() int {
	return len(c.slots)
}

func (c *clipSlotBank) Slot(i int) host.ClipSlot {
	if i < 0 || i >= len(c.slots) {
		return nil
	}
	return c.slots[i]
}

type clipSlot struct {
	track   *trackSlot
	row     int
	content *host.Bool
	playing *host.Bool
	queued  *host.Bool
}

func (c *clipSlot) HasContent() host.BoolValue       { return c.content }
func (c *clipSlot) IsPlaying() host.BoolValue        { return c.playing }
func (c *clipSlot) IsPlaybackQueued() host.BoolValue { return c.queued }

func (c *clipSlot) Launch() {
	tr := c.track.target()
	if tr == nil {
		return
	}
	c.track.bank.s.launchClip(tr, c.track.bank.scenes.pos+c.row)
}

type sendBank struct {
	sends []*slotFloat
}

func (s *sendBank) Size() int {
	return len(s.sends)
}

func (s *sendBank) Send(i int) host.SettableFloat {
	if i < 0 || i >= len(s.sends) {
		return nil
	}
	return s.sends[i]
}

type deviceBank struct {
	devices []*deviceSlot
}

func (d *deviceBank) Size() int {
	return len(d.devices)
}

func (d *deviceBank) Device(i int) host.Device {
	if i < 0 || i >= len(d.devices) {
		return nil
	}
	return d.devices[i]
}

type deviceSlot struct {
	track   *trackSlot
	idx     int
	exists  *host.Bool
	enabled *slotBool
	layered *host.Bool
	layers  []*layerSlot
	chain   *chainSelector
}

func newDeviceSlot(t *trackSlot, idx int) *deviceSlot {
	d := &deviceSlot{
		track:   t,
		idx:     idx,
		exists:  host.NewBool(false),
		layered: host.NewBool(false),
	}
	d.enabled = newSlotBool(func(v bool) {
		if dev := d.target(); dev != nil {
			t.bank.s.update(func() { dev.Enabled = v })
		}
	})
	for l := 0; l < LayerBankSize; l++ {
		d.layers = append(d.layers, newLayerSlot(d, l))
	}
	d.chain = &chainSelector{exists: host.NewBool(false)}
	d.chain.active = newSlotInt(-1, func(v int) {
		dev := d.target()
		if dev == nil || !dev.Chain || v < -1 || v >= len(dev.Layers) {
			return
		}
		t.bank.s.update(func() { dev.ActiveChain = v })
	})
	return d
}

func (d *deviceSlot) target() *Device {
	tr := d.track.target()
	if tr == nil || d.idx >= len(tr.Devices) {
		return nil
	}
	return tr.Devices[d.idx]
}

func (d *deviceSlot) Exists() host.BoolValue            { return d.exists }
func (d *deviceSlot) IsEnabled() host.SettableBool      { return d.enabled }
func (d *deviceSlot) HasLayers() host.BoolValue         { return d.layered }
func (d *deviceSlot) Layers() host.LayerBank            { return d }
func (d *deviceSlot) ChainSelector() host.ChainSelector { return d.chain }
func (d *deviceSlot) Size() int                         { return len(d.layers) }

// Layer makes the device slot its own layer bank
func (d *deviceSlot) Layer(i int) host.Layer {
	if i < 0 || i >= len(d.layers) {
		return nil
	}
	return d.layers[i]
}

func (d *deviceSlot) sync(dev *Device) {
	if dev == nil {
		dev = &Device{ActiveChain: -1}
	}
	d.exists.Set(dev.Name != "")
	d.enabled.Bool.Set(dev.Enabled)
	d.layered.Set(len(dev.Layers) > 0)
	for l, layer := range d.layers {
		var model *Layer
		if l < len(dev.Layers) {
			model = dev.Layers[l]
		}
		layer.sync(model)
	}
	d.chain.exists.Set(dev.Chain)
	active := -1
	if dev.Chain {
		active = dev.ActiveChain
	}
	d.chain.active.Int.Set(active)
}

type layerSlot struct {
	device *deviceSlot
	idx    int
	exists *host.Bool
	muted  *slotBool
}

func newLayerSlot(d *deviceSlot, idx int) *layerSlot {
	l := &layerSlot{device: d, idx: idx, exists: host.NewBool(false)}
	l.muted = newSlotBool(func(v bool) {
		dev := d.target()
		if dev == nil || idx >= len(dev.Layers) {
			return
		}
		d.track.bank.s.update(func() { dev.Layers[idx].Muted = v })
	})
	return l
}

func (l *layerSlot) Exists() host.BoolValue  { return l.exists }
func (l *layerSlot) Mute() host.SettableBool { return l.muted }

func (l *layerSlot) sync(layer *Layer) {
	if layer == nil {
		l.exists.Set(false)
		l.muted.Bool.Set(false)
		return
	}
	l.exists.Set(true)
	l.muted.Bool.Set(layer.Muted)
}

type chainSelector struct {
	exists *host.Bool
	active *slotInt
}

func (c *chainSelector) Exists() host.BoolValue             { return c.exists }
func (c *chainSelector) ActiveChainIndex() host.SettableInt { return c.active }
