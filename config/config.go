// Package config holds the controller definitions and file locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// ControllerType identifies the hardware family
type ControllerType string

const (
	ControllerAPCMini ControllerType = "apcmini"
	ControllerMidiMix ControllerType = "midimix"
)

// Mode names as stored in the config and the mode preference
const (
	ModeKeyboard = "KEYBOARD"
	ModeLauncher = "LAUNCHER"
	ModeDevices  = "DEVICES"
)

const (
	MaxGridSize = 8
	MaxSends    = 3
)

// ControllerConfig defines one controller instance
type ControllerConfig struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Type        ControllerType `yaml:"type"`
	PortName    string         `yaml:"port"`
	GridSize    int            `yaml:"gridSize,omitempty"`
	Sends       int            `yaml:"sends,omitempty"`
	Modes       []string       `yaml:"modes,omitempty"`
	DefaultMode string         `yaml:"defaultMode,omitempty"`
	NoteOutput  string         `yaml:"noteOutput,omitempty"` // port for translated keyboard notes
}

// Config is the main configuration structure
type Config struct {
	Controllers     []ControllerConfig `yaml:"controllers"`
	Project         string             `yaml:"project,omitempty"`
	PreferencesPath string             `yaml:"preferences,omitempty"`
	Debug           bool               `yaml:"debug,omitempty"`
}

// DefaultConfig is a single APC mini
func DefaultConfig() *Config {
	cfg, _ := Variant("apcmini")
	return cfg
}

func apcMini(name, port string) ControllerConfig {
	return ControllerConfig{
		ID:          uuid.New().String(),
		Name:        name,
		Type:        ControllerAPCMini,
		PortName:    port,
		GridSize:    MaxGridSize,
		Sends:       MaxSends,
		Modes:       []string{ModeKeyboard, ModeLauncher, ModeDevices},
		DefaultMode: ModeKeyboard,
	}
}

// Variants lists the preset names accepted by Variant
func Variants() []string {
	return []string{"apcmini", "apcmini-dual", "apcmini-keyboard", "apcmini-two", "midimix"}
}

// Variant returns a preset configuration with fresh controller ids
func Variant(name string) (*Config, error) {
	var ctrls []ControllerConfig
	switch name {
	case "apcmini":
		ctrls = []ControllerConfig{apcMini("APC mini", "APC MINI")}
	case "apcmini-dual":
		ctrls = []ControllerConfig{
			apcMini("APC mini", "APC MINI"),
			apcMini("APC mini #2", "APC MINI #2"),
		}
	case "apcmini-keyboard":
		c := apcMini("APC mini keyboard", "APC MINI")
		c.Modes = []string{ModeKeyboard}
		ctrls = []ControllerConfig{c}
	case "apcmini-two":
		c := apcMini("APC mini (6x6)", "APC MINI")
		c.GridSize = 6
		c.Modes = []string{ModeKeyboard, ModeLauncher}
		ctrls = []ControllerConfig{c}
	case "midimix":
		ctrls = []ControllerConfig{{
			ID:       uuid.New().String(),
			Name:     "MIDI Mix",
			Type:     ControllerMidiMix,
			PortName: "MIDI Mix",
			GridSize: MaxGridSize,
			Sends:    MaxSends,
		}}
	default:
		return nil, fault.Wrap(fmt.Errorf("unknown variant %q", name),
			ftag.With(ftag.InvalidArgument),
			fmsg.WithDesc("variant", fmt.Sprintf("Known variants: %v", Variants())))
	}
	return &Config{Controllers: ctrls}, nil
}

// Validate checks every controller entry and fills in defaults
func (c *Config) Validate() error {
	if len(c.Controllers) == 0 {
		return fault.Wrap(fault.New("no controllers configured"), ftag.With(ftag.InvalidArgument))
	}
	seen := make(map[string]bool)
	for i := range c.Controllers {
		ctrl := &c.Controllers[i]
		if err := ctrl.validate(); err != nil {
			return fault.Wrap(err, fmsg.With(fmt.Sprintf("controller %d", i)))
		}
		if seen[ctrl.ID] {
			return fault.Wrap(fault.New("duplicate controller id "+ctrl.ID), ftag.With(ftag.InvalidArgument))
		}
		seen[ctrl.ID] = true
	}
	return nil
}

func (ctrl *ControllerConfig) validate() error {
	if ctrl.ID == "" {
		ctrl.ID = uuid.New().String()
	} else if _, err := uuid.Parse(ctrl.ID); err != nil {
		return fault.Wrap(err, fmsg.With("bad id"), ftag.With(ftag.InvalidArgument))
	}
	if ctrl.PortName == "" {
		return fault.Wrap(fault.New("missing port"), ftag.With(ftag.InvalidArgument))
	}
	if ctrl.Name == "" {
		ctrl.Name = ctrl.PortName
	}
	if ctrl.GridSize == 0 {
		ctrl.GridSize = MaxGridSize
	}
	if ctrl.GridSize < 1 || ctrl.GridSize > MaxGridSize {
		return fault.Wrap(fault.New(fmt.Sprintf("grid size %d out of range 1..%d", ctrl.GridSize, MaxGridSize)),
			ftag.With(ftag.InvalidArgument))
	}
	if ctrl.Sends < 0 || ctrl.Sends > MaxSends {
		return fault.Wrap(fault.New(fmt.Sprintf("sends %d out of range 0..%d", ctrl.Sends, MaxSends)),
			ftag.With(ftag.InvalidArgument))
	}

	switch ctrl.Type {
	case ControllerMidiMix:
		return nil
	case ControllerAPCMini:
	default:
		return fault.Wrap(fault.New(fmt.Sprintf("unknown controller type %q", ctrl.Type)), ftag.With(ftag.InvalidArgument))
	}

	if len(ctrl.Modes) == 0 {
		ctrl.Modes = []string{ModeKeyboard, ModeLauncher, ModeDevices}
	}
	for _, m := range ctrl.Modes {
		if !knownMode(m) {
			return fault.Wrap(fault.New(fmt.Sprintf("unknown mode %q", m)), ftag.With(ftag.InvalidArgument))
		}
	}
	if ctrl.DefaultMode == "" {
		ctrl.DefaultMode = ctrl.Modes[0]
	}
	if !ctrl.Offers(ctrl.DefaultMode) {
		return fault.Wrap(fault.New(fmt.Sprintf("default mode %q not enabled", ctrl.DefaultMode)), ftag.With(ftag.InvalidArgument))
	}
	return nil
}

func knownMode(m string) bool {
	return m == ModeKeyboard || m == ModeLauncher || m == ModeDevices
}

// Offers reports whether the controller enables mode m
func (ctrl *ControllerConfig) Offers(m string) bool {
	for _, have := range ctrl.Modes {
		if have == m {
			return true
		}
	}
	return false
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fault.Wrap(err, fmsg.With("home directory"))
	}
	return filepath.Join(home, ".config", "apc-control"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, or returns defaults if
// not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates a config file. A missing file yields the
// defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fault.Wrap(err, fmsg.With("read config"))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fault.Wrap(err, fmsg.With("parse "+path), ftag.With(ftag.InvalidArgument))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fault.Wrap(err, fmsg.With(path))
	}
	return &cfg, nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config, creating the directory if needed
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create config dir"))
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fault.Wrap(err, fmsg.With("encode config"))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fault.Wrap(err, fmsg.With("write config"))
	}
	return nil
}

// FindController finds a controller config by id
func (c *Config) FindController(id string) *ControllerConfig {
	for i := range c.Controllers {
		if c.Controllers[i].ID == id {
			return &c.Controllers[i]
		}
	}
	return nil
}

// PortNames lists the configured port names in controller order
func (c *Config) PortNames() []string {
	names := make([]string, len(c.Controllers))
	for i, ctrl := range c.Controllers {
		names[i] = ctrl.PortName
	}
	return names
}
