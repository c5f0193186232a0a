package session

import "apc-control/host"

// SceneBank pages over scenes. A track bank's own scene bank also decides
// which clip rows that bank shows.
type SceneBank struct {
	s      *Session
	owner  *TrackBank
	size   int
	pos    int
	fwd    *host.Bool
	back   *host.Bool
	scenes []*sceneSlot
}

var _ host.SceneBank = (*SceneBank)(nil)

func newSceneBank(s *Session, size int, owner *TrackBank) *SceneBank {
	b := &SceneBank{
		s:     s,
		owner: owner,
		size:  size,
		fwd:   host.NewBool(false),
		back:  host.NewBool(false),
	}
	for i := 0; i < size; i++ {
		b.scenes = append(b.scenes, &sceneSlot{bank: b, idx: i})
	}
	return b
}

func (b *SceneBank) Size() int {
	return b.size
}

func (b *SceneBank) Scene(i int) host.Scene {
	if i < 0 || i >= len(b.scenes) {
		return nil
	}
	return b.scenes[i]
}

// Position returns the index of the first visible scene
func (b *SceneBank) Position() int {
	return b.pos
}

func (b *SceneBank) Stop() {
	b.s.StopAll()
}

func (b *SceneBank) CanScrollForwards() host.BoolValue {
	return b.fwd
}

func (b *SceneBank) CanScrollBackwards() host.BoolValue {
	return b.back
}

func (b *SceneBank) ScrollPageForwards() {
	if b.pos+b.size < b.s.project.Scenes {
		b.pos += b.size
		b.s.changed()
	}
}

func (b *SceneBank) ScrollPageBackwards() {
	if b.pos > 0 {
		b.pos = max(0, b.pos-b.size)
		b.s.changed()
	}
}

func (b *SceneBank) sync() {
	b.fwd.Set(b.pos+b.size < b.s.project.Scenes)
	b.back.Set(b.pos > 0)
}

type sceneSlot struct {
	bank *SceneBank
	idx  int
}

func (sc *sceneSlot) Launch() {
	sc.bank.s.launchScene(sc.bank.pos + sc.idx)
}
