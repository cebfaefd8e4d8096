package ui

import (
	"github.com/atomicstack/padnav/internal/logging/events"
	"github.com/atomicstack/padnav/internal/pad"
	"github.com/atomicstack/padnav/internal/theme"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
)

// stylePane edits the palette in place: up/down picks a field, left/right
// changes its value. Every pane shares the same *theme.Styles, so edits show
// up on the next frame.
type stylePane struct {
	styles *theme.Styles
	field  int
}

func newStylePane(styles *theme.Styles) *stylePane {
	return &stylePane{styles: styles}
}

func (p *stylePane) Section() uistate.Section { return uistate.StyleEditor }

func (p *stylePane) Update(snap pad.Snapshot, focused bool) {
	if !focused {
		return
	}
	fields := theme.Fields()
	switch {
	case snap.Pressed(pad.Up) && p.field > 0:
		p.field--
		events.Style.Field(fields[p.field].String())
	case snap.Pressed(pad.Down) && p.field < len(fields)-1:
		p.field++
		events.Style.Field(fields[p.field].String())
	}
	delta := 0
	if snap.Pressed(pad.Left) {
		delta--
	}
	if snap.Pressed(pad.Right) {
		delta++
	}
	if delta == 0 {
		return
	}
	f := fields[p.field]
	*p.styles = *theme.New(p.styles.Palette.Adjust(f, delta))
	events.Style.Change(f.String(), p.styles.Palette.Value(f))
}

// Field returns the highlighted field.
func (p *stylePane) Field() theme.Field {
	return theme.Fields()[p.field]
}

func (p *stylePane) View(width, height int) string {
	s := p.styles
	lines := []styledLine{
		{text: "Style Editor", style: s.Title},
		{text: "D-Pad ↑↓ picks a field, ←→ changes it", style: s.Muted},
		{},
	}
	for i, f := range theme.Fields() {
		label := s.FieldLabel.Render(f.String())
		value := s.FieldValue.Render(s.Palette.Value(f))
		text := label + value
		if i == p.field {
			text = s.SelectedField.Render("▸ ") + text
		} else {
			text = "  " + text
		}
		lines = append(lines, styledLine{text: text, raw: true})
	}
	lines = append(lines, styledLine{}, styledLine{text: "sample  " + s.ButtonDown.Render(" pressed ") + " " + s.ButtonUp.Render("released"), raw: true})
	return renderLines(limitHeight(applyWidth(lines, width), height, width))
}
