package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/padnav/internal/format/table"
	"github.com/atomicstack/padnav/internal/pad"
	"github.com/atomicstack/padnav/internal/theme"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
)

// gamepadPane draws the live state of the controller.
type gamepadPane struct {
	styles *theme.Styles
	result pad.Result
	snap   pad.Snapshot
}

func newGamepadPane(styles *theme.Styles, result pad.Result) *gamepadPane {
	return &gamepadPane{styles: styles, result: result}
}

func (p *gamepadPane) Section() uistate.Section { return uistate.Gamepad }

func (p *gamepadPane) Update(snap pad.Snapshot, _ bool) {
	p.snap = snap
}

var buttonGlyphs = map[pad.Buttons]string{
	pad.Select:   "SEL",
	pad.Start:    "STA",
	pad.L3:       "L3",
	pad.R3:       "R3",
	pad.Up:       "↑",
	pad.Down:     "↓",
	pad.Left:     "←",
	pad.Right:    "→",
	pad.L1:       "L1",
	pad.L2:       "L2",
	pad.R1:       "R1",
	pad.R2:       "R2",
	pad.Triangle: "△",
	pad.Circle:   "○",
	pad.Cross:    "✕",
	pad.Square:   "□",
}

// layout rows; zero entries are gaps.
var gamepadRows = [][]pad.Buttons{
	{pad.L2, pad.L1, 0, 0, 0, pad.R1, pad.R2},
	{0, pad.Up, 0, 0, 0, pad.Triangle, 0},
	{pad.Left, 0, pad.Right, pad.Select, pad.Start, pad.Square, 0, pad.Circle},
	{0, pad.Down, 0, 0, 0, pad.Cross, 0},
	{0, pad.L3, 0, 0, 0, pad.R3, 0},
}

func (p *gamepadPane) View(width, height int) string {
	s := p.styles
	lines := []styledLine{
		{text: "Custom drawn widget!", style: s.Title},
		{text: p.classification(), style: s.Muted},
	}
	if !p.snap.Connected {
		lines = append(lines,
			styledLine{},
			styledLine{text: "controller disconnected, waiting for the link", style: s.Warning},
		)
		return renderLines(limitHeight(applyWidth(lines, width), height, width))
	}

	lines = append(lines, styledLine{})
	for _, row := range gamepadRows {
		lines = append(lines, styledLine{text: p.buttonRow(row), raw: true})
	}
	lines = append(lines, styledLine{})
	gauge := s.Palette.GaugeWidth
	lines = append(lines,
		styledLine{text: p.stickLine("LX", p.snap.LeftX, gauge), raw: true},
		styledLine{text: p.stickLine("LY", p.snap.LeftY, gauge), raw: true},
		styledLine{text: p.stickLine("RX", p.snap.RightX, gauge), raw: true},
		styledLine{text: p.stickLine("RY", p.snap.RightY, gauge), raw: true},
	)
	if p.snap.Extended {
		lines = append(lines, styledLine{})
		for _, b := range pad.PressureButtons() {
			v, _ := p.snap.Pressure(b)
			if v == 0 {
				continue
			}
			lines = append(lines, styledLine{text: p.stickLine(buttonGlyphs[b], v, gauge), raw: true})
		}
	}
	lines = append(lines, styledLine{}, styledLine{text: "held: " + p.snap.Down.String(), style: s.Text})
	if len(p.result.Modes) > 0 {
		lines = append(lines, styledLine{})
		for _, row := range p.modeTable() {
			lines = append(lines, styledLine{text: row, style: s.Muted})
		}
	}
	return renderLines(limitHeight(applyWidth(lines, width), height, width))
}

func (p *gamepadPane) classification() string {
	parts := []string{fmt.Sprintf("mode 0x%02X", p.snap.Mode)}
	if p.snap.Connected {
		parts = append(parts, pad.TypeName(int(p.snap.Mode>>4)))
	}
	if p.result.Extended() {
		parts = append(parts, "extended (pressure)")
	} else {
		parts = append(parts, "basic (digital)")
	}
	if len(p.result.Modes) > 0 {
		parts = append(parts, "modes ("+joinInts(p.result.Modes)+")")
	}
	if p.result.ExID != 0 {
		parts = append(parts, fmt.Sprintf("exid 0x%X", p.result.ExID))
	}
	return strings.Join(parts, " · ")
}

func (p *gamepadPane) buttonRow(row []pad.Buttons) string {
	cells := make([]string, len(row))
	for i, b := range row {
		if b == 0 {
			cells[i] = "     "
			continue
		}
		style := p.styles.ButtonUp
		if p.snap.IsDown(b) {
			style = p.styles.ButtonDown
		}
		cells[i] = style.Render(lipgloss.PlaceHorizontal(5, lipgloss.Center, buttonGlyphs[b]))
	}
	return strings.Join(cells, "")
}

func (p *gamepadPane) stickLine(label string, value uint8, width int) string {
	filled := int(value) * width / 0xFF
	bar := p.styles.GaugeFill.Render(strings.Repeat("█", filled)) +
		p.styles.GaugeEmpty.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%-3s %s %3d", label, bar, value)
}

// modeTable lists the modes found during negotiation.
func (p *gamepadPane) modeTable() []string {
	rows := [][]string{{"id", "type", ""}}
	for _, id := range p.result.Modes {
		var notes []string
		if id == p.result.CurrentMode {
			notes = append(notes, "startup")
		}
		if id == pad.TypeDualShock && p.result.Extended() {
			notes = append(notes, "active, locked")
		}
		rows = append(rows, []string{strconv.Itoa(id), pad.TypeName(id), strings.Join(notes, ", ")})
	}
	return table.Format(rows, []table.Alignment{table.AlignRight})
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
