// Package session is an in-memory DAW: a project of tracks, clips and
// device chains exposed through the host interfaces, with paged banks
// whose slot values follow scrolling and edits.
package session

import (
	"apc-control/debug"
	"apc-control/host"
)

// Session implements host.Host over a Project
type Session struct {
	project *Project
	prefs   *Store
	doc     *Store

	trackBanks []*TrackBank
	sceneBanks []*SceneBank
	notes      []*NoteInput

	syncing bool
	dirty   bool
}

var _ host.Host = (*Session)(nil)

// New wraps a project. prefs may be nil for a throwaway preferences scope.
func New(p *Project, prefs *Store) *Session {
	if p == nil {
		p = NewProject("untitled", 8, 8)
	}
	p.normalize()
	if prefs == nil {
		prefs = NewStore(nil)
	}
	return &Session{
		project: p,
		prefs:   prefs,
		doc:     NewStore(p.Settings),
	}
}

// Project returns the live project
func (s *Session) Project() *Project {
	return s.project
}

func (s *Session) Preferences() host.Settings {
	return s.prefs
}

func (s *Session) DocumentState() host.Settings {
	return s.doc
}

// PreferenceStore exposes the preferences scope for saving
func (s *Session) PreferenceStore() *Store {
	return s.prefs
}

func (s *Session) CreateNoteInput(name string) host.NoteInput {
	n := newNoteInput(name)
	s.notes = append(s.notes, n)
	return n
}

// NoteInputs returns the note inputs created so far
func (s *Session) NoteInputs() []*NoteInput {
	return s.notes
}

func (s *Session) CreateTrackBank(tracks, sends, scenes int) host.TrackBank {
	b := newTrackBank(s, tracks, sends, scenes)
	s.trackBanks = append(s.trackBanks, b)
	b.sync()
	return b
}

func (s *Session) CreateSceneBank(scenes int) host.SceneBank {
	b := newSceneBank(s, scenes, nil)
	s.sceneBanks = append(s.sceneBanks, b)
	b.sync()
	return b
}

// Save writes the project (document settings included) to path
func (s *Session) Save(path string) error {
	s.project.Settings = s.doc.Values()
	return SaveProject(path, s.project)
}

// visible returns the tracks the banks page over: every top-level track
// plus the children of expanded groups
func (s *Session) visible() []*Track {
	byName := make(map[string]*Track, len(s.project.Tracks))
	for _, t := range s.project.Tracks {
		byName[t.Name] = t
	}
	var out []*Track
	for _, t := range s.project.Tracks {
		shown := true
		for depth, parent := 0, t.Parent; parent != "" && depth <= len(byName); depth++ {
			g, ok := byName[parent]
			if !ok || !g.Expanded {
				shown = false
				break
			}
			parent = g.Parent
		}
		if shown {
			out = append(out, t)
		}
	}
	return out
}

// changed pushes model state into every bank. Observers may issue
// commands while it runs; those are folded into another pass.
func (s *Session) changed() {
	if s.syncing {
		s.dirty = true
		return
	}
	s.syncing = true
	defer func() { s.syncing = false }()
	for pass := 0; pass < 8; pass++ {
		s.dirty = false
		for _, b := range s.trackBanks {
			b.sync()
		}
		for _, b := range s.sceneBanks {
			b.sync()
		}
		if !s.dirty {
			return
		}
	}
	debug.Log("session", "sync did not settle")
}

// Advance starts every queued clip, as the transport does on the next beat
func (s *Session) Advance() {
	started := 0
	for _, t := range s.project.Tracks {
		if t.queued >= 0 {
			t.playing, t.queued = t.queued, -1
			started++
		}
	}
	if started > 0 {
		debug.Log("session", "advance: started %d clips", started)
		s.changed()
	}
}

func (s *Session) launchClip(t *Track, scene int) {
	if !t.hasClip(scene) {
		s.stopTrack(t)
		return
	}
	t.queued = scene
	debug.Log("session", "queue %s scene %d", t.Name, scene)
	s.changed()
}

func (s *Session) stopTrack(t *Track) {
	if t.stopped() {
		return
	}
	t.playing, t.queued = -1, -1
	s.changed()
}

func (s *Session) launchScene(scene int) {
	if scene < 0 || scene >= s.project.Scenes {
		return
	}
	for _, t := range s.project.Tracks {
		if t.hasClip(scene) {
			t.queued = scene
		} else {
			t.playing, t.queued = -1, -1
		}
	}
	debug.Log("session", "launch scene %d", scene)
	s.changed()
}

// StopAll stops every track
func (s *Session) StopAll() {
	for _, t := range s.project.Tracks {
		t.playing, t.queued = -1, -1
	}
	s.changed()
}

// update applies an edit to the model and resyncs
func (s *Session) update(fn func()) {
	fn()
	s.changed()
}
