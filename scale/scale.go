// Package scale maps grid pads onto an isometric in-key note layout.
//
// Each row is shifted three scale degrees from the one below it, so
// moving up a row is a "fourth" like a guitar string. Every pad is in key;
// degree 0 of each octave is the root.
package scale

import (
	"slices"

	"apc-control/midi"
)

// NoNote is returned for pads that are not playable
const NoNote = midi.NoNote

// rowShift is the number of scale degrees between rows
const rowShift = 3

// Scale names in display order
const (
	Major            = "MAJOR"
	Minor            = "MINOR"
	Dorian           = "DORIAN"
	Mixolydian       = "MIXOLYDIAN"
	Lydian           = "LYDIAN"
	Phrygian         = "PHRYGIAN"
	Locrian          = "LOCRIAN"
	HarmonicMinor    = "HARMONIC_MINOR"
	HarmonicMajor    = "HARMONIC_MAJOR"
	DorianNr4        = "DORIAN_NR_4"
	PhrygianDominant = "PHRYGIAN_DOMINANT"
	MelodicMinor     = "MELODIC_MINOR"
	LydianAugmented  = "LYDIAN_AUGMENTED"
	LydianDominant   = "LYDIAN_DOMINANT"
	HungarianMinor   = "HUNGARIAN_MINOR"
	SuperLocrian     = "SUPER_LOCRIAN"
	Spanish          = "SPANISH"
	Bhairav          = "BHAIRAV"
)

var scaleNames = []string{
	Major, Minor, Dorian, Mixolydian, Lydian, Phrygian, Locrian,
	HarmonicMinor, HarmonicMajor, DorianNr4, PhrygianDominant, MelodicMinor,
	LydianAugmented, LydianDominant, HungarianMinor, SuperLocrian, Spanish, Bhairav,
}

var intervals = map[string][7]int{
	Major:            {0, 2, 4, 5, 7, 9, 11},
	Minor:            {0, 2, 3, 5, 7, 8, 10},
	Dorian:           {0, 2, 3, 5, 7, 9, 10},
	Mixolydian:       {0, 2, 4, 5, 7, 9, 10},
	Lydian:           {0, 2, 4, 6, 7, 9, 11},
	Phrygian:         {0, 1, 3, 5, 7, 8, 10},
	Locrian:          {0, 1, 3, 5, 6, 8, 10},
	HarmonicMinor:    {0, 2, 3, 5, 7, 8, 11},
	HarmonicMajor:    {0, 2, 4, 5, 7, 8, 11},
	DorianNr4:        {0, 2, 3, 6, 7, 9, 10},
	PhrygianDominant: {0, 1, 4, 5, 7, 8, 10},
	MelodicMinor:     {0, 2, 3, 5, 7, 9, 11},
	LydianAugmented:  {0, 2, 4, 6, 8, 9, 11},
	LydianDominant:   {0, 2, 4, 6, 7, 9, 10},
	HungarianMinor:   {0, 2, 3, 6, 7, 8, 11},
	SuperLocrian:     {0, 1, 3, 4, 6, 8, 10},
	Spanish:          {0, 1, 4, 5, 7, 9, 10},
	Bhairav:          {0, 1, 4, 5, 7, 8, 11},
}

var rootNames = []string{
	"C", "C#/Db", "D", "D#/Eb", "E", "F", "F#/Gb", "G", "G#/Ab", "A", "A#/Bb", "B",
}

var octaveNames = []string{"0", "1", "2", "3", "4", "5", "6"}

// Scales returns the scale names in display order
func Scales() []string { return slices.Clone(scaleNames) }

// Roots returns the root note names, C first
func Roots() []string { return slices.Clone(rootNames) }

// Octaves returns the selectable base octaves
func Octaves() []string { return slices.Clone(octaveNames) }

// Intervals returns the seven semitone offsets of a scale
func Intervals(name string) ([7]int, bool) {
	iv, ok := intervals[name]
	return iv, ok
}

// Key is a resolved pad
type Key struct {
	Note int
	Root bool
}

// Map resolves a grid pad. Unknown names count as offset 0 / MAJOR.
// Inactive or shifted layouts resolve to NoNote; the root flag is
// positional and is reported either way.
func Map(pad int, root, octave, scaleName string, active, shift bool) Key {
	c := pad % midi.GridSize
	r := pad / midi.GridSize
	n := r*rowShift + c
	degree := n % 7
	key := Key{Note: NoNote, Root: degree == 0}
	if !active || shift {
		return key
	}

	iv, ok := intervals[scaleName]
	if !ok {
		iv = intervals[Major]
	}
	note := iv[degree] + 12*index(octaveNames, octave) + index(rootNames, root) + 12*(n/7)
	// fold the top of the grid back into MIDI range
	for note > 127 {
		note -= 12
	}
	key.Note = note
	return key
}

// Table builds the 128-entry key translation table: grid pads map to
// their notes, every other address is silenced
func Table(root, octave, scaleName string, active, shift bool) [midi.PadCount]int {
	var table [midi.PadCount]int
	for i := range table {
		if midi.IsGridPad(i) {
			table[i] = Map(i, root, octave, scaleName, active, shift).Note
		} else {
			table[i] = NoNote
		}
	}
	return table
}

func index(list []string, v string) int {
	if i := slices.Index(list, v); i >= 0 {
		return i
	}
	return 0
}
