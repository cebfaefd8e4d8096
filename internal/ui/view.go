package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/padnav/internal/theme"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	appTitle      = "padnav"
	minContentW   = 10
	frameBorder   = 2
	framePaddingH = 2
)

// waitSpinner animates the disconnected banner off the frame counter.
var waitSpinner = spinner.Line

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View draws the header, the section list beside the selected pane, and the
// footer.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.styles
	parts := []string{m.header()}

	bodyHeight := m.height - 1
	if m.showFooter {
		bodyHeight--
	}
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	listOuter := s.Palette.ListWidth
	if listOuter > m.width/2 {
		listOuter = m.width / 2
	}
	contentOuter := m.width - listOuter
	innerHeight := bodyHeight - frameBorder

	list := m.listView(listOuter-frameBorder-framePaddingH, innerHeight)
	content := m.contentView(max(contentOuter-frameBorder-framePaddingH, minContentW), innerHeight)
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, list, content))

	if m.showFooter {
		parts = append(parts, m.footer())
	}
	return strings.Join(parts, "\n")
}

func (m *Model) header() string {
	s := m.styles
	title := appTitle
	if m.handle != nil {
		title = fmt.Sprintf("%s · %s", appTitle, m.handle)
	}
	text := s.Title.Render(title)
	if m.last.Connected {
		text += " " + s.Muted.Render(m.last.Down.String())
	} else {
		frames := waitSpinner.Frames
		glyph := frames[int(m.frame/8)%len(frames)]
		text += " " + s.SpinnerIndicator.Render(glyph) + " " + s.Warning.Render("waiting for controller")
	}
	return truncate.StringWithTail(text, uint(max(m.width-1, 1)), "…")
}

func (m *Model) listView(width, height int) string {
	s := m.styles
	picking := m.nav.Picking()
	lines := make([]styledLine, 0, len(uistate.Sections()))
	for _, section := range uistate.Sections() {
		line := styledLine{text: "  " + section.String(), style: s.Item}
		switch {
		case picking && section == m.cursor.Current():
			line = styledLine{text: "▸ " + section.String(), style: s.CursorItem}
		case !picking && section == m.nav.Selected():
			line = styledLine{text: "  " + section.String(), style: s.SelectedItem}
		}
		lines = append(lines, line)
	}
	body := renderLines(limitHeight(applyWidth(lines, width), height, width))
	frame := s.ListPane
	if m.nav.Focus() == uistate.FocusList {
		frame = s.ListPaneFocused
	}
	return frame.Width(width + framePaddingH).Height(height).Render(body)
}

func (m *Model) contentView(width, height int) string {
	s := m.styles
	body := m.panes[m.nav.Selected()].View(width, height)
	frame := s.ContentFocused
	if m.nav.Overlay() {
		body = dim(body, s.Overlay)
		frame = s.ContentPane
	}
	return frame.Width(width + framePaddingH).Height(height).Render(body)
}

// dim redraws rendered content in a single faded style.
func dim(body string, style *lipgloss.Style) string {
	lines := strings.Split(ansi.Strip(body), "\n")
	for i, line := range lines {
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) footer() string {
	var view string
	if m.feeder != nil {
		view = m.help.View(simHelp{keys: m.keys})
	} else {
		view = m.help.View(padHelp{keys: m.keys})
	}
	return m.styles.Footer.Render(view)
}

// Styles exposes the live style set.
func (m *Model) Styles() *theme.Styles {
	return m.styles
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		line.text = text
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
