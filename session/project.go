package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// Project is the persisted document: tracks, clips, device chains and the
// per-project settings scope
type Project struct {
	Name     string            `json:"name"`
	Scenes   int               `json:"scenes"`
	Tracks   []*Track          `json:"tracks"`
	Settings map[string]string `json:"settings,omitempty"`
}

// Track holds one channel. Tracks with Parent set belong to the group
// track of that name and are hidden while it is collapsed.
type Track struct {
	Name     string    `json:"name"`
	Parent   string    `json:"parent,omitempty"`
	Group    bool      `json:"group,omitempty"`
	Expanded bool      `json:"expanded,omitempty"`
	Armed    bool      `json:"armed,omitempty"`
	Muted    bool      `json:"muted,omitempty"`
	Soloed   bool      `json:"soloed,omitempty"`
	Volume   float64   `json:"volume"`
	Sends    []float64 `json:"sends,omitempty"`
	Clips    []Clip    `json:"clips,omitempty"`
	Devices  []*Device `json:"devices,omitempty"`

	playing int // runtime only, scene index or -1
	queued  int // runtime only
}

// Clip is one clip slot; an empty name is an empty slot
type Clip struct {
	Name string `json:"name,omitempty"`
}

// Device is an instrument or effect. Chain devices play one layer at a
// time, selected by ActiveChain.
type Device struct {
	Name        string   `json:"name"`
	Enabled     bool     `json:"enabled"`
	Layers      []*Layer `json:"layers,omitempty"`
	Chain       bool     `json:"chain,omitempty"`
	ActiveChain int      `json:"activeChain"`
}

// Layer is one parallel chain of a device
type Layer struct {
	Name  string `json:"name"`
	Muted bool   `json:"muted,omitempty"`
}

func (t *Track) hasClip(scene int) bool {
	return scene >= 0 && scene < len(t.Clips) && t.Clips[scene].Name != ""
}

func (t *Track) stopped() bool {
	return t.playing < 0 && t.queued < 0
}

// ProjectsDir returns the projects directory path
func ProjectsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "apc-control", "projects"), nil
}

// ProjectPath returns the file for a named project
func ProjectPath(name string) (string, error) {
	dir, err := ProjectsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+".json"), nil
}

// ListProjects returns saved project names, sorted
func ListProjects() ([]string, error) {
	dir, err := ProjectsDir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var projects []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			projects = append(projects, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}

	sort.Strings(projects)
	return projects, nil
}

// LoadProject reads a project file
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fault.Wrap(err, fmsg.With("project "+path), ftag.With(ftag.NotFound))
		}
		return nil, fault.Wrap(err, fmsg.With("read project"))
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fault.Wrap(err, fmsg.With("parse project "+path), ftag.With(ftag.InvalidArgument))
	}
	if err := p.normalize(); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProject writes a project file, creating its directory
func SaveProject(path string, p *Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create project dir"))
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fault.Wrap(err, fmsg.With("encode project"))
	}

	return os.WriteFile(path, data, 0644)
}

// normalize fills runtime fields and checks group references
func (p *Project) normalize() error {
	if p.Settings == nil {
		p.Settings = make(map[string]string)
	}
	groups := make(map[string]bool)
	for _, t := range p.Tracks {
		t.playing, t.queued = -1, -1
		if t.Group {
			groups[t.Name] = true
		}
		for _, d := range t.Devices {
			if d.ActiveChain < -1 || d.ActiveChain >= len(d.Layers) {
				d.ActiveChain = -1
			}
		}
		if len(t.Clips) > p.Scenes {
			p.Scenes = len(t.Clips)
		}
	}
	for _, t := range p.Tracks {
		if t.Parent != "" && !groups[t.Parent] {
			return fault.Wrap(fault.New(fmt.Sprintf("track %q: unknown group %q", t.Name, t.Parent)), ftag.With(ftag.InvalidArgument))
		}
	}
	return nil
}

// NewProject returns an empty project with the given track and scene counts
func NewProject(name string, tracks, scenes int) *Project {
	p := &Project{Name: name, Scenes: scenes}
	for i := 0; i < tracks; i++ {
		p.Tracks = append(p.Tracks, &Track{Name: fmt.Sprintf("Track %d", i+1), Volume: 0.8})
	}
	p.normalize()
	return p
}

// Demo builds a small arrangement with groups, clips and layered devices
func Demo() *Project {
	clips := func(names ...string) []Clip {
		out := make([]Clip, len(names))
		for i, n := range names {
			out[i] = Clip{Name: n}
		}
		return out
	}
	layers := func(names ...string) []*Layer {
		out := make([]*Layer, len(names))
		for i, n := range names {
			out[i] = &Layer{Name: n}
		}
		return out
	}

	p := &Project{
		Name:   "demo",
		Scenes: 12,
		Tracks: []*Track{
			{Name: "Drums", Group: true, Expanded: true, Volume: 0.8, Clips: clips("Beat A", "Beat B", "", "Fill")},
			{Name: "Kick", Parent: "Drums", Volume: 0.8, Clips: clips("Kick", "Kick", "", "Kick Fill"),
				Devices: []*Device{{Name: "Drum Machine", Enabled: true, Layers: layers("Kick", "Snare", "Hat", "Clap")}}},
			{Name: "Snare", Parent: "Drums", Volume: 0.7, Clips: clips("Snare", "", "Snare Roll")},
			{Name: "Hats", Parent: "Drums", Volume: 0.6, Clips: clips("", "Hats", "Hats")},
			{Name: "Bass", Volume: 0.8, Clips: clips("Bass A", "Bass B", "Bass A"),
				Devices: []*Device{{Name: "Poly Synth", Enabled: true}, {Name: "Filter", Enabled: false}}},
			{Name: "Keys", Volume: 0.7, Clips: clips("", "Chords", "Chords"),
				Devices: []*Device{
					{Name: "Instrument Selector", Enabled: true, Chain: true, ActiveChain: 0,
						Layers: layers("Piano", "Organ", "Rhodes", "Strings")},
					{Name: "Reverb", Enabled: true},
				}},
			{Name: "Lead", Volume: 0.6, Clips: clips("", "", "Hook", "Hook")},
			{Name: "FX", Group: true, Volume: 0.5},
			{Name: "Riser", Parent: "FX", Volume: 0.5, Clips: clips("", "", "", "Riser")},
			{Name: "Impact", Parent: "FX", Volume: 0.5, Clips: clips("Hit")},
			{Name: "Vox", Volume: 0.7, Clips: clips("Verse", "Chorus")},
			{Name: "Pad", Volume: 0.5, Clips: clips("Pad", "Pad", "Pad", "Pad", "Pad")},
		},
	}
	for _, t := range p.Tracks {
		t.Sends = []float64{0, 0, 0}
	}
	p.normalize()
	return p
}
