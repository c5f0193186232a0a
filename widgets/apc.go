package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"apc-control/midi"
	"apc-control/theme"
)

// NoCursor hides the simulation cursor
const NoCursor = -1

// RenderPad renders one LED
func RenderPad(th *theme.Theme, c midi.Color) string {
	style := lipgloss.NewStyle().Foreground(th.LED(c))
	return style.Render(string(th.Symbol(c)))
}

func renderCell(th *theme.Theme, leds *[midi.PadCount]midi.Color, addr, cursor int) string {
	if addr == cursor {
		return lipgloss.NewStyle().Foreground(th.Cursor()).Render(string(th.Symbols.Cursor))
	}
	return RenderPad(th, leds[addr])
}

// RenderSurface renders an APC mini as it looks on the desk: the 8x8 grid
// with the scene column on the right, the track buttons underneath.
// cursor is a pad address or NoCursor.
func RenderSurface(th *theme.Theme, leds [midi.PadCount]midi.Color, cursor int) string {
	var lines []string
	for row := 0; row < midi.GridSize; row++ {
		var line strings.Builder
		for col := 0; col < midi.GridSize; col++ {
			line.WriteString(renderCell(th, &leds, midi.Pad(col, row), cursor))
			line.WriteString(" ")
		}
		line.WriteString(" ")
		line.WriteString(renderCell(th, &leds, midi.SideStart+row, cursor))
		lines = append(lines, line.String())
	}

	var bottom strings.Builder
	for col := 0; col < midi.GridSize; col++ {
		bottom.WriteString(renderCell(th, &leds, midi.BottomPad(col), cursor))
		bottom.WriteString(" ")
	}
	bottom.WriteString(" ")
	bottom.WriteString(renderCell(th, &leds, midi.ButtonShift, cursor))
	lines = append(lines, "", bottom.String())
	return strings.Join(lines, "\n")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(th *theme.Theme, c midi.Color, desc string) string {
	return fmt.Sprintf("  %s %-12s %s", RenderPad(th, c), c, desc)
}

// RenderLegend lists every LED value
func RenderLegend(th *theme.Theme) string {
	items := []struct {
		c    midi.Color
		desc string
	}{
		{midi.Green, "playing / enabled / on"},
		{midi.GreenBlink, "queued / layered device"},
		{midi.Red, "root / group / muted"},
		{midi.RedBlink, "group playing"},
		{midi.Orange, "clip / note / option"},
		{midi.OrangeBlink, "empty group slot"},
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = RenderLegendItem(th, it.c, it.desc)
	}
	return strings.Join(lines, "\n")
}

// Cursor moves a pad cursor over the surface layout: 9 columns (grid plus
// scene column) by 9 rows (grid plus track buttons and shift)
type Cursor struct {
	Col, Row int
}

func (c *Cursor) Move(dcol, drow int) {
	c.Col = min(max(c.Col+dcol, 0), midi.GridSize)
	c.Row = min(max(c.Row+drow, 0), midi.GridSize)
}

// Addr returns the pad under the cursor. The bottom-right corner is the
// shift button.
func (c Cursor) Addr() int {
	switch {
	case c.Row < midi.GridSize && c.Col < midi.GridSize:
		return midi.Pad(c.Col, c.Row)
	case c.Row < midi.GridSize:
		return midi.SideStart + c.Row
	case c.Col < midi.GridSize:
		return midi.BottomPad(c.Col)
	}
	return midi.ButtonShift
}
