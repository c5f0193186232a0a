package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"apc-control/midi"
	"apc-control/theme"
)

func TestCursorAddr(t *testing.T) {
	c := Cursor{}
	assert.Equal(t, 56, c.Addr())

	c.Move(2, 3)
	assert.Equal(t, 34, c.Addr())

	c.Move(10, 0)
	assert.Equal(t, midi.GridSize, c.Col)
	assert.Equal(t, midi.SideStart+3, c.Addr())

	c.Move(-10, 10)
	assert.Equal(t, midi.BottomPad(0), c.Addr())

	c.Move(20, 0)
	assert.Equal(t, midi.ButtonShift, c.Addr())

	c.Move(-20, -20)
	assert.Equal(t, Cursor{}, c)
}

func TestRenderSurfaceLayout(t *testing.T) {
	th := theme.New(nil)
	out := RenderSurface(th, [midi.PadCount]midi.Color{}, NoCursor)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, midi.GridSize+2)
	assert.Empty(t, lines[midi.GridSize])
}
