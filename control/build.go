package control

import (
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"apc-control/config"
	"apc-control/host"
	"apc-control/midi"
)

// Options tweaks how a controller binds to the host
type Options struct {
	// Notes replaces the host's note input, e.g. with a midi.NoteForwarder
	Notes host.NoteInput
}

// ModePreference is the label of the mode preference for controller index
func ModePreference(index int) string {
	return fmt.Sprintf("Mode - %d", index)
}

// ModeCategory groups the mode preferences
const ModeCategory = "Global"

// Build binds one configured controller to the host. index keeps the
// preferences of several identical controllers apart.
func Build(cfg config.ControllerConfig, index int, h host.Host, out midi.Sender, opts Options) (Instance, error) {
	switch cfg.Type {
	case config.ControllerMidiMix:
		bank := h.CreateTrackBank(midi.GridSize, cfg.Sends, 1)
		return NewMixer(cfg.Name, out, bank), nil
	case config.ControllerAPCMini:
		return buildGrid(cfg, index, h, out, opts)
	}
	return nil, fault.Wrap(fault.New(fmt.Sprintf("unknown controller type %q", cfg.Type)), ftag.With(ftag.InvalidArgument))
}

func buildGrid(cfg config.ControllerConfig, index int, h host.Host, out midi.Sender, opts Options) (Instance, error) {
	grid := cfg.GridSize
	if grid < 1 || grid > midi.GridSize {
		return nil, fault.Wrap(fault.New(fmt.Sprintf("grid size %d", grid)), ftag.With(ftag.InvalidArgument))
	}

	var enabled []ModeID
	var options []string
	for _, name := range cfg.Modes {
		id, ok := ParseMode(name)
		if !ok {
			return nil, fault.Wrap(fault.New("unknown mode "+name), ftag.With(ftag.InvalidArgument))
		}
		enabled = append(enabled, id)
		options = append(options, id.String())
	}
	if len(enabled) == 0 {
		return nil, fault.Wrap(fault.New("no modes enabled"), ftag.With(ftag.InvalidArgument))
	}
	initial := options[0]
	if id, ok := ParseMode(cfg.DefaultMode); ok {
		initial = id.String()
	}

	bank := h.CreateTrackBank(grid, cfg.Sends, grid)
	scenes := h.CreateSceneBank(grid)
	pref := h.Preferences().EnumSetting(ModePreference(index), ModeCategory, options, initial)

	notes := opts.Notes
	if notes == nil {
		notes = h.CreateNoteInput(cfg.Name)
	}

	modes := make(map[ModeID]Mode, len(enabled))
	for _, id := range enabled {
		switch id {
		case ModeKeyboard:
			modes[id] = NewKeyboard(index, out, bank, notes, h.Preferences(), h.DocumentState())
		case ModeLauncher:
			modes[id] = NewLauncher(out, bank)
		case ModeDevices:
			modes[id] = NewDevices(out, bank)
		}
	}

	sidebar := NewSidebar(out, bank, scenes, pref, enabled)
	c := NewCoordinator(cfg.Name, pref, modes, sidebar)
	if c.Active() == nil {
		return nil, fault.Wrap(fmt.Errorf("preference %q names no mode", pref.Get()),
			fmsg.With("activate "+cfg.Name))
	}
	return c, nil
}
