package control

import (
	"apc-control/host"
	"apc-control/midi"
	"apc-control/surface"
)

// clipState mirrors one clip slot
type clipState struct {
	empty   bool
	playing bool
	queued  bool
}

// trackState mirrors the per-track flags the launcher shows
type trackState struct {
	group   bool
	playing bool
}

// Launcher shows the track x scene clip matrix. The bottom row shows
// which tracks are playing, or with shift which tracks are groups.
type Launcher struct {
	pads   *surface.Pads
	bank   host.TrackBank
	rows   int
	clips  [][]clipState
	tracks []trackState
}

var _ Mode = (*Launcher)(nil)

func NewLauncher(out midi.Sender, bank host.TrackBank) *Launcher {
	cols := bank.Size()
	rows := min(bank.SceneBank().Size(), midi.GridSize)
	l := &Launcher{
		pads:   surface.New(out, surface.ModeRanges(cols)...),
		bank:   bank,
		rows:   rows,
		clips:  make([][]clipState, cols),
		tracks: make([]trackState, cols),
	}

	for c := 0; c < cols; c++ {
		l.clips[c] = make([]clipState, rows)
		for r := range l.clips[c] {
			l.clips[c][r].empty = true
		}
		track := bank.Track(c)
		slots := track.ClipSlots()
		for r := 0; r < rows && r < slots.Size(); r++ {
			slot := slots.Slot(r)
			slot.HasContent().Observe(func(v bool) {
				l.clips[c][r].empty = !v
				l.renderClip(c, r)
			})
			slot.IsPlaying().Observe(func(v bool) {
				l.clips[c][r].playing = v
				l.renderClip(c, r)
			})
			slot.IsPlaybackQueued().Observe(func(v bool) {
				l.clips[c][r].queued = v
				l.renderClip(c, r)
			})
		}

		track.IsGroup().Observe(func(v bool) {
			l.tracks[c].group = v
			l.renderColumn(c)
			l.renderBottom(c)
		})
		track.IsStopped().Observe(func(v bool) {
			l.tracks[c].playing = !v
			l.renderBottom(c)
		})
	}
	return l
}

func (l *Launcher) Activate() {
	l.pads.Activate()
	for c := range l.clips {
		l.renderColumn(c)
		l.renderBottom(c)
	}
}

func (l *Launcher) Deactivate() {
	l.pads.Deactivate()
}

func (l *Launcher) SetShift(shift bool) {
	l.pads.SetShift(shift)
	for c := range l.tracks {
		l.renderBottom(c)
	}
}

func (l *Launcher) Flush() error {
	return l.pads.Flush()
}

// padAt maps a grid address to (col, row) within the launcher's window
func (l *Launcher) padAt(addr int) (col, row int, ok bool) {
	if !midi.IsGridPad(addr) {
		return 0, 0, false
	}
	col = addr % midi.GridSize
	row = (midi.GridPads - midi.GridSize - (addr - col)) / midi.GridSize
	if col >= len(l.clips) || row >= l.rows {
		return 0, 0, false
	}
	return col, row, true
}

func (l *Launcher) HandleMIDI(ev midi.Event) {
	if !ev.IsPress() {
		return
	}
	addr := int(ev.Data1)

	col, row, onGrid := l.padAt(addr)
	onBottom := midi.BottomRange(len(l.tracks)).Contains(addr)
	if onBottom {
		col = addr - midi.BottomRowStart
	}
	if !onGrid && !onBottom {
		return
	}

	if l.pads.Shift() {
		l.toggleExpand(col)
		return
	}
	if onGrid {
		if slot := l.bank.Track(col).ClipSlots().Slot(row); slot != nil {
			slot.Launch()
		}
		return
	}
	l.bank.Track(col).Stop()
}

// toggleExpand folds or unfolds a group column; other columns ignore it
func (l *Launcher) toggleExpand(col int) {
	if !l.tracks[col].group {
		return
	}
	l.bank.Track(col).IsGroupExpanded().Toggle()
}

func (l *Launcher) renderColumn(c int) {
	for r := range l.clips[c] {
		l.renderClip(c, r)
	}
}

func (l *Launcher) renderClip(c, r int) {
	l.pads.Render(midi.Pad(c, r), l.clipColor(c, r))
}

func (l *Launcher) clipColor(c, r int) midi.Color {
	s := l.clips[c][r]
	group := l.tracks[c].group
	switch {
	case s.empty && group:
		return midi.OrangeBlink
	case s.empty:
		return midi.Off
	case s.queued:
		return midi.GreenBlink
	case s.playing && group:
		return midi.RedBlink
	case s.playing:
		return midi.Green
	case group:
		return midi.Red
	}
	return midi.Orange
}

// renderBottom draws the bottom pad for the state set the shift selects
func (l *Launcher) renderBottom(c int) {
	t := l.tracks[c]
	on := t.playing
	if l.pads.Shift() {
		on = t.group
	}
	l.pads.RenderOnOff(midi.BottomPad(c), on)
}
