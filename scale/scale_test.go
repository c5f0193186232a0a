package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleTables(t *testing.T) {
	require.Len(t, Scales(), 18)
	require.Len(t, Roots(), 12)
	require.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6"}, Octaves())

	for _, name := range Scales() {
		iv, ok := Intervals(name)
		require.True(t, ok, name)
		assert.Equal(t, 0, iv[0], name)
		for i := 1; i < 7; i++ {
			assert.Greater(t, iv[i], iv[i-1], name)
			assert.Less(t, iv[i], 12, name)
		}
	}
}

func TestMapStaysInRange(t *testing.T) {
	for _, sc := range Scales() {
		for _, root := range Roots() {
			for _, oct := range Octaves() {
				for pad := 0; pad < 64; pad++ {
					k := Map(pad, root, oct, sc, true, false)
					if k.Note < 0 || k.Note > 127 {
						t.Fatalf("pad %d %s %s %s: note %d out of range", pad, root, oct, sc, k.Note)
					}
					again := Map(pad, root, oct, sc, true, false)
					if again != k {
						t.Fatalf("pad %d: not deterministic", pad)
					}
				}
			}
		}
	}
}

func TestMapSentinel(t *testing.T) {
	for pad := 0; pad < 64; pad++ {
		assert.Equal(t, NoNote, Map(pad, "C", "3", Major, false, false).Note)
		assert.Equal(t, NoNote, Map(pad, "C", "3", Major, true, true).Note)
		assert.Equal(t, NoNote, Map(pad, "D", "0", Minor, false, true).Note)
	}
}

func TestMapLayout(t *testing.T) {
	tests := []struct {
		pad    int
		root   string
		octave string
		scale  string
		note   int
		isRoot bool
	}{
		{pad: 0, root: "C", octave: "0", scale: Major, note: 0, isRoot: true},
		{pad: 1, root: "C", octave: "0", scale: Major, note: 2},
		{pad: 6, root: "C", octave: "0", scale: Major, note: 11},
		// n=7 wraps to the next octave root
		{pad: 7, root: "C", octave: "0", scale: Major, note: 12, isRoot: true},
		// row 1 starts three degrees up
		{pad: 8, root: "C", octave: "0", scale: Major, note: 5},
		{pad: 12, root: "C", octave: "0", scale: Major, note: 12, isRoot: true},
		{pad: 0, root: "D", octave: "2", scale: Minor, note: 26, isRoot: true},
		{pad: 2, root: "A", octave: "4", scale: Minor, note: 3 + 48 + 9},
		{pad: 9, root: "C#/Db", octave: "1", scale: Phrygian, note: 7 + 12 + 1},
	}
	for _, tt := range tests {
		k := Map(tt.pad, tt.root, tt.octave, tt.scale, true, false)
		assert.Equal(t, tt.note, k.Note, "pad %d", tt.pad)
		assert.Equal(t, tt.isRoot, k.Root, "pad %d", tt.pad)
	}
}

func TestMapFoldsHighNotes(t *testing.T) {
	// pad 63: n=28, four layout octaves above the base
	k := Map(63, "B", "6", Major, true, false)
	assert.Equal(t, 131-12, k.Note)
	assert.True(t, k.Root)
}

func TestTable(t *testing.T) {
	table := Table("C", "3", Major, true, false)
	for i := 0; i < 64; i++ {
		assert.Equal(t, Map(i, "C", "3", Major, true, false).Note, table[i])
	}
	for i := 64; i < 128; i++ {
		assert.Equal(t, NoNote, table[i])
	}

	silent := Table("C", "3", Major, true, true)
	for i := range silent {
		assert.Equal(t, NoNote, silent[i])
	}
}
