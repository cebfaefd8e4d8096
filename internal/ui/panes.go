package ui

import (
	"strings"

	"github.com/atomicstack/padnav/internal/pad"
	"github.com/atomicstack/padnav/internal/theme"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
)

// Pane is the content drawn for one section.
type Pane interface {
	Section() uistate.Section
	// Update is called once per frame with that frame's snapshot. focused
	// is set only when the pane owns input this frame.
	Update(snap pad.Snapshot, focused bool)
	View(width, height int) string
}

type introPane struct {
	styles *theme.Styles
}

func newIntroPane(styles *theme.Styles) *introPane {
	return &introPane{styles: styles}
}

func (p *introPane) Section() uistate.Section { return uistate.Introduction }

func (p *introPane) Update(pad.Snapshot, bool) {}

var introControls = []struct {
	indent int
	text   string
}{
	{0, "D-Pad: Navigate / Modify values"},
	{0, "Left Joystick: Scroll current window"},
	{0, "Right Joystick: Move virtual cursor"},
	{0, "R2: Click with virtual cursor"},
	{-1, ""},
	{0, "Triangle:"},
	{1, "Hold + D-Pad: Resize window"},
	{1, "Hold + Left Joystick: Move window"},
	{1, "Hold + L1/R1: Focus windows"},
}

func (p *introPane) View(width, height int) string {
	lines := make([]styledLine, 0, len(introControls))
	for _, entry := range introControls {
		if entry.indent < 0 {
			lines = append(lines, styledLine{text: strings.Repeat("─", max(width, 1)), style: p.styles.Muted})
			continue
		}
		prefix := strings.Repeat("  ", entry.indent) + "• "
		lines = append(lines, styledLine{
			text:          prefix + entry.text,
			style:         p.styles.Text,
			prefixStyle:   p.styles.Bullet,
			highlightFrom: len([]rune(prefix)),
		})
	}
	return renderLines(limitHeight(applyWidth(lines, width), height, width))
}
