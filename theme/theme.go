package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"apc-control/midi"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Pad    rune // ■ steady LED
	Blink  rune // ◆ blinking LED
	Off    rune // □ unlit pad
	Cursor rune // ▣ simulation cursor
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Plasma
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Pad:    '■',
			Blink:  '◆',
			Off:    '□',
			Cursor: '▣',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleMuted   = 0.2
	RoleFG      = 0.4
	RoleAccent  = 0.5
	RoleCursor  = 0.6
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

// APC mini LEDs are green, red and amber
var ledColors = map[midi.Color]RGB{
	midi.Off:         {60, 60, 60},
	midi.Green:       {40, 200, 70},
	midi.GreenBlink:  {40, 200, 70},
	midi.Red:         {220, 40, 40},
	midi.RedBlink:    {220, 40, 40},
	midi.Orange:      {240, 150, 20},
	midi.OrangeBlink: {240, 150, 20},
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// LED returns the display color of an APC LED value
func (t *Theme) LED(c midi.Color) lipgloss.Color {
	rgb, ok := ledColors[c]
	if !ok {
		rgb = ledColors[midi.Off]
	}
	return rgbToLipgloss(rgb)
}

// Symbol returns the glyph for an LED value
func (t *Theme) Symbol(c midi.Color) rune {
	switch c {
	case midi.Off:
		return t.Symbols.Off
	case midi.GreenBlink, midi.RedBlink, midi.OrangeBlink:
		return t.Symbols.Blink
	}
	return t.Symbols.Pad
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
