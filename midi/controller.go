package midi

// Color is an APC mini LED value (sent as note-on velocity)
type Color uint8

// APC mini LED palette
const (
	Off         Color = 0
	Green       Color = 1
	GreenBlink  Color = 2
	Red         Color = 3
	RedBlink    Color = 4
	Orange      Color = 5
	OrangeBlink Color = 6
)

func (c Color) String() string {
	switch c {
	case Off:
		return "OFF"
	case Green:
		return "GREEN"
	case GreenBlink:
		return "GREEN_BLINK"
	case Red:
		return "RED"
	case RedBlink:
		return "RED_BLINK"
	case Orange:
		return "ORANGE"
	case OrangeBlink:
		return "ORANGE_BLINK"
	}
	return "UNKNOWN"
}

// APC mini address map
//
//	Main grid:  notes 0-63, note 0 bottom-left, note 63 top-right
//	Bottom row: notes 64-71 (track buttons under the grid)
//	Side col:   notes 82-89 (scene buttons, top to bottom)
//	Shift:      note 98
const (
	GridSize       = 8
	GridPads       = GridSize * GridSize
	BottomRowStart = 64
	SideStart      = 82
	PadCount       = 128

	// top-left pad, row 0 in launcher/device addressing
	gridBase  = GridPads - GridSize
	rowStride = GridSize
)

// Side column buttons
const (
	ButtonUp               = 82
	ButtonDown             = 83
	ButtonRight            = 84
	ButtonLeft             = 85
	ButtonSwitchToDevices  = 86
	ButtonSwitchToLauncher = 87
	ButtonSwitchToKeyboard = 88
	ButtonStopAll          = 89
	ButtonShift            = 98
)

// Pad returns the grid address of (col, row) with row 0 at the top
func Pad(col, row int) int {
	return gridBase + col - row*rowStride
}

// BottomPad returns the bottom-row address for a column
func BottomPad(col int) int {
	return BottomRowStart + col
}

// IsGridPad reports whether addr is on the main 8x8 grid
func IsGridPad(addr int) bool {
	return addr >= 0 && addr < GridPads
}

// IsSidePad reports whether addr is one of the scene buttons
func IsSidePad(addr int) bool {
	return addr >= SideStart && addr < SideStart+GridSize
}

// Range is a half-open span of pad addresses [Start, Start+Len)
type Range struct {
	Start, Len int
}

// Contains reports whether addr falls inside the range
func (r Range) Contains(addr int) bool {
	return addr >= r.Start && addr < r.Start+r.Len
}

// GridRange is the main 8x8 grid
func GridRange() Range {
	return Range{Start: 0, Len: GridPads}
}

// BottomRange is the bottom row for a logical grid of the given size
func BottomRange(size int) Range {
	return Range{Start: BottomRowStart, Len: size}
}

// SideRange is the scene button column
func SideRange() Range {
	return Range{Start: SideStart, Len: GridSize}
}
