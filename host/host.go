// Package host describes the DAW as the controller sees it: paged banks of
// observable values plus fire-and-forget commands.
package host

// ClipSlot is one track x scene cell
type ClipSlot interface {
	HasContent() BoolValue
	IsPlaying() BoolValue
	IsPlaybackQueued() BoolValue
	Launch()
}

// ClipSlotBank is the visible window of a track's clip slots
type ClipSlotBank interface {
	Size() int
	Slot(i int) ClipSlot
}

// SendBank is the visible window of a track's sends
type SendBank interface {
	Size() int
	Send(i int) SettableFloat
}

// Track is one channel in a track bank
type Track interface {
	ClipSlots() ClipSlotBank
	Sends() SendBank
	Devices() DeviceBank

	Arm() SettableBool
	Mute() SettableBool
	Solo() SettableBool
	Volume() SettableFloat

	IsGroup() BoolValue
	IsGroupExpanded() SettableBool
	IsStopped() BoolValue
	Stop()
}

// TrackBank is a fixed-size paged window over the project's tracks
type TrackBank interface {
	Size() int
	Track(i int) Track
	SceneBank() SceneBank

	ScrollPosition() IntValue
	CanScrollForwards() BoolValue
	CanScrollBackwards() BoolValue
	ScrollPageForwards()
	ScrollPageBackwards()
}

// Scene is one row across all tracks
type Scene interface {
	Launch()
}

// SceneBank is a fixed-size paged window over scenes
type SceneBank interface {
	Size() int
	Scene(i int) Scene
	Stop()

	CanScrollForwards() BoolValue
	CanScrollBackwards() BoolValue
	ScrollPageForwards()
	ScrollPageBackwards()
}

// DeviceBank is the visible window of a track's device chain
type DeviceBank interface {
	Size() int
	Device(i int) Device
}

// Device is one instrument/effect in a chain
type Device interface {
	Exists() BoolValue
	IsEnabled() SettableBool
	HasLayers() BoolValue
	Layers() LayerBank
	ChainSelector() ChainSelector
}

// LayerBank is the visible window of a device's layers
type LayerBank interface {
	Size() int
	Layer(i int) Layer
}

// Layer is one parallel chain inside a device
type Layer interface {
	Exists() BoolValue
	Mute() SettableBool
}

// ChainSelector is a device-level "one active layer" selector
type ChainSelector interface {
	Exists() BoolValue
	ActiveChainIndex() SettableInt
}

// Settings is one persisted settings scope (global preferences or the
// per-project document state)
type Settings interface {
	EnumSetting(label, category string, options []string, initial string) SettableEnum
}

// NoteInput is the note path from the hardware to instruments. The table
// maps every raw pad address to a note, or -1 to silence it.
type NoteInput interface {
	SetKeyTranslationTable(table [128]int)
}

// Host is the DAW runtime a controller instance binds to
type Host interface {
	CreateTrackBank(tracks, sends, scenes int) TrackBank
	CreateSceneBank(scenes int) SceneBank
	Preferences() Settings
	DocumentState() Settings
	CreateNoteInput(name string) NoteInput
}
