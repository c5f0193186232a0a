package session

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"

	"apc-control/host"
)

// Store is one settings scope. Values are keyed "category/label" and
// survive as plain strings so a file written by one build loads in another.
type Store struct {
	values map[string]string
	enums  map[string]*host.Enum
}

var _ host.Settings = (*Store)(nil)

// NewStore wraps existing values (nil starts empty)
func NewStore(values map[string]string) *Store {
	if values == nil {
		values = make(map[string]string)
	}
	return &Store{values: values, enums: make(map[string]*host.Enum)}
}

// EnumSetting returns the setting for (label, category), creating it on
// first use. A stored value that is still a valid option wins over initial.
func (st *Store) EnumSetting(label, category string, options []string, initial string) host.SettableEnum {
	key := category + "/" + label
	if e, ok := st.enums[key]; ok {
		return e
	}
	if v, ok := st.values[key]; ok {
		initial = v
	}
	e := host.NewEnum(options, initial)
	st.values[key] = e.Get()
	e.Observe(func(v string) { st.values[key] = v })
	st.enums[key] = e
	return e
}

// Values returns a copy of every stored value
func (st *Store) Values() map[string]string {
	return maps.Clone(st.values)
}

// PreferencesPath returns ~/.config/apc-control/preferences.json
func PreferencesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "apc-control", "preferences.json"), nil
}

// LoadStore reads a preferences file; a missing file is an empty store
func LoadStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewStore(nil), nil
		}
		return nil, fault.Wrap(err, fmsg.With("read preferences"))
	}
	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fault.Wrap(err, fmsg.With("parse preferences "+path))
	}
	return NewStore(values), nil
}

// Save writes the store as JSON
func (st *Store) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create preferences dir"))
	}
	data, err := json.MarshalIndent(st.values, "", "  ")
	if err != nil {
		return fault.Wrap(err, fmsg.With("encode preferences"))
	}
	return os.WriteFile(path, data, 0644)
}
