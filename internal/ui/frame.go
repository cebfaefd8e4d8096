package ui

import (
	"github.com/atomicstack/padnav/internal/logging/events"
	"github.com/atomicstack/padnav/internal/pad"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// handleFrameMsg runs one frame: sample, list input, navigation, content
// input. The view is rendered by Bubble Tea after Update returns, before the
// next frame is scheduled to arrive.
func (m *Model) handleFrameMsg(tea.Msg) tea.Cmd {
	m.runFrame()
	return m.nextTick()
}

func (m *Model) runFrame() {
	m.frame++
	snap := m.sample()
	if m.feeder != nil {
		m.feeder.Tick()
	}

	focus := m.nav.Focus()
	var in uistate.FrameInput
	if focus == uistate.FocusList {
		in = m.listInput(snap)
	}
	in.MenuEdge = snap.Pressed(menuButton)

	switch m.nav.Advance(in) {
	case uistate.TransitionSelected:
		events.UI.SectionSelected(m.frame, m.nav.Selected().ID())
	case uistate.TransitionPickerOpened:
		m.cursor.Reset(m.nav.Selected())
		events.UI.PickerOpened(m.frame, m.nav.Selected().ID())
	}

	// content only reacts on frames where it held focus throughout
	contentFocused := focus == uistate.FocusContent && m.nav.Focus() == uistate.FocusContent && !in.MenuEdge
	for _, pane := range m.panes {
		pane.Update(snap, contentFocused && pane.Section() == m.nav.Selected())
	}
}

func (m *Model) sample() pad.Snapshot {
	if m.sampler == nil {
		m.last.Frame = m.frame
		return m.last
	}
	m.last = m.sampler.Sample(m.frame)
	return m.last
}

// listInput moves the list cursor and turns a confirm press into a selection
// event.
func (m *Model) listInput(snap pad.Snapshot) uistate.FrameInput {
	moved := false
	if snap.Pressed(pad.Up) {
		moved = m.cursor.MoveUp()
	}
	if snap.Pressed(pad.Down) {
		moved = m.cursor.MoveDown() || moved
	}
	if moved {
		events.UI.ListCursor(m.cursor.Cursor)
	}
	if snap.Pressed(selectButton) {
		return uistate.Select(m.cursor.Current())
	}
	return uistate.FrameInput{}
}
