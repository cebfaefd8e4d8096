package ui

import (
	"github.com/atomicstack/padnav/internal/pad"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// menuButton raises the menu edge that opens the section picker.
const menuButton = pad.Triangle

// selectButton activates the highlighted row of the section list.
const selectButton = pad.Cross

type keyMap struct {
	Quit  key.Binding
	Cable key.Binding

	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Cross    key.Binding
	Circle   key.Binding
	Triangle key.Binding
	Square   key.Binding
	Start    key.Binding
	Select   key.Binding
	L1       key.Binding
	R1       key.Binding
	L2       key.Binding
	R2       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cable: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "plug/unplug"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑↓←→", "d-pad"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
		),
		Cross: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "✕ select"),
		),
		Circle: key.NewBinding(
			key.WithKeys("o", "esc"),
		),
		Triangle: key.NewBinding(
			key.WithKeys("t", "tab"),
			key.WithHelp("t", "△ change section"),
		),
		Square: key.NewBinding(
			key.WithKeys("s"),
		),
		Start: key.NewBinding(
			key.WithKeys(" "),
		),
		Select: key.NewBinding(
			key.WithKeys("v", "backspace"),
		),
		L1: key.NewBinding(key.WithKeys("1")),
		R1: key.NewBinding(key.WithKeys("2")),
		L2: key.NewBinding(key.WithKeys("3")),
		R2: key.NewBinding(key.WithKeys("4")),
	}
}

// buttonFor maps a key press onto the virtual pad button it drives.
func (k keyMap) buttonFor(msg tea.KeyMsg) (pad.Buttons, bool) {
	pairs := []struct {
		binding key.Binding
		button  pad.Buttons
	}{
		{k.Up, pad.Up},
		{k.Down, pad.Down},
		{k.Left, pad.Left},
		{k.Right, pad.Right},
		{k.Cross, pad.Cross},
		{k.Circle, pad.Circle},
		{k.Triangle, pad.Triangle},
		{k.Square, pad.Square},
		{k.Start, pad.Start},
		{k.Select, pad.Select},
		{k.L1, pad.L1},
		{k.R1, pad.R1},
		{k.L2, pad.L2},
		{k.R2, pad.R2},
	}
	for _, p := range pairs {
		if key.Matches(msg, p.binding) {
			return p.button, true
		}
	}
	return 0, false
}

// simHelp is shown when the keyboard drives a simulated pad.
type simHelp struct{ keys keyMap }

func (h simHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Triangle, h.keys.Cross, h.keys.Up, h.keys.Cable, h.keys.Quit}
}

func (h simHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// padHelp is shown when a physical pad drives the UI; the bindings only carry
// help text.
type padHelp struct{ keys keyMap }

var (
	padMenuHint   = key.NewBinding(key.WithKeys("pad:triangle"), key.WithHelp("△", "change section"))
	padSelectHint = key.NewBinding(key.WithKeys("pad:cross"), key.WithHelp("✕", "select"))
	padDPadHint   = key.NewBinding(key.WithKeys("pad:dpad"), key.WithHelp("✚", "navigate / modify"))
)

func (h padHelp) ShortHelp() []key.Binding {
	return []key.Binding{padMenuHint, padSelectHint, padDPadHint, h.keys.Quit}
}

func (h padHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
