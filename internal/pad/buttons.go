package pad

import "strings"

// Buttons is a set of controller buttons, active-high.
type Buttons uint16

// Button bits, in report order.
const (
	Select   Buttons = 1 << 0
	L3       Buttons = 1 << 1
	R3       Buttons = 1 << 2
	Start    Buttons = 1 << 3
	Up       Buttons = 1 << 4
	Right    Buttons = 1 << 5
	Down     Buttons = 1 << 6
	Left     Buttons = 1 << 7
	L2       Buttons = 1 << 8
	R2       Buttons = 1 << 9
	L1       Buttons = 1 << 10
	R1       Buttons = 1 << 11
	Triangle Buttons = 1 << 12
	Circle   Buttons = 1 << 13
	Cross    Buttons = 1 << 14
	Square   Buttons = 1 << 15
)

// DPad is the union of the four directions.
const DPad = Up | Right | Down | Left

var buttonNames = []struct {
	b    Buttons
	name string
}{
	{Select, "select"},
	{L3, "l3"},
	{R3, "r3"},
	{Start, "start"},
	{Up, "up"},
	{Right, "right"},
	{Down, "down"},
	{Left, "left"},
	{L2, "l2"},
	{R2, "r2"},
	{L1, "l1"},
	{R1, "r1"},
	{Triangle, "triangle"},
	{Circle, "circle"},
	{Cross, "cross"},
	{Square, "square"},
}

// Has reports whether every button in b is in the set.
func (s Buttons) Has(b Buttons) bool {
	return b != 0 && s&b == b
}

func (s Buttons) String() string {
	if s == 0 {
		return "none"
	}
	parts := make([]string, 0, 4)
	for _, entry := range buttonNames {
		if s&entry.b != 0 {
			parts = append(parts, entry.name)
		}
	}
	return strings.Join(parts, "+")
}

// ButtonName returns the lower-case name of a single button.
func ButtonName(b Buttons) string {
	for _, entry := range buttonNames {
		if entry.b == b {
			return entry.name
		}
	}
	return "?"
}

// PressureCount is the number of pressure-sensitive buttons in an extended
// report.
const PressureCount = 12

// pressureOrder lists the buttons whose pressure bytes follow the sticks.
var pressureOrder = [PressureCount]Buttons{
	Right, Left, Up, Down,
	Triangle, Circle, Cross, Square,
	L1, R1, L2, R2,
}

// PressureButtons returns the pressure-sensitive buttons in report order.
func PressureButtons() []Buttons {
	out := make([]Buttons, PressureCount)
	copy(out, pressureOrder[:])
	return out
}

func pressureIndex(b Buttons) int {
	for i, candidate := range pressureOrder {
		if candidate == b {
			return i
		}
	}
	return -1
}

// normalize inverts an active-low button word.
func normalize(raw uint16) Buttons {
	return Buttons(^raw)
}

// Denormalize converts an active-high set back to the active-low wire form.
func Denormalize(b Buttons) uint16 {
	return ^uint16(b)
}
