package theme

import (
	"strings"
	"testing"

	"github.com/Southclaws/fault/ftag"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apc-control/midi"
)

const gpl = `GIMP Palette
Name: Two Tone
Columns: 2
# comment
  0   0   0	black
255 255 255	white
300 0 0 out of range
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(gpl))
	require.NoError(t, err)
	assert.Equal(t, "Two Tone", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {255, 255, 255}}, p.Colors)

	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{255, 255, 255}, p.Lookup(2))
	assert.Equal(t, RGB{127, 127, 127}, p.Lookup(0.5))

	_, err = ParseGPL(strings.NewReader("GIMP Palette\n"))
	require.Error(t, err)
	assert.Equal(t, ftag.InvalidArgument, ftag.Get(err))
}

func TestLEDColors(t *testing.T) {
	th := New(nil)
	assert.Equal(t, lipgloss.Color("#dc2828"), th.LED(midi.Red))
	assert.Equal(t, th.LED(midi.Off), th.LED(midi.Color(42)))
	assert.Equal(t, '◆', th.Symbol(midi.GreenBlink))
	assert.Equal(t, '□', th.Symbol(midi.Off))
	assert.Equal(t, '■', th.Symbol(midi.Orange))
}
