package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Palette Palette

	Title            *lipgloss.Style
	Item             *lipgloss.Style
	ItemIndicator    *lipgloss.Style
	SelectedItem     *lipgloss.Style
	CursorItem       *lipgloss.Style
	ListPane         *lipgloss.Style
	ListPaneFocused  *lipgloss.Style
	ContentPane      *lipgloss.Style
	ContentFocused   *lipgloss.Style
	Overlay          *lipgloss.Style
	Bullet           *lipgloss.Style
	Text             *lipgloss.Style
	Muted            *lipgloss.Style
	Error            *lipgloss.Style
	Warning          *lipgloss.Style
	Footer           *lipgloss.Style
	ButtonUp         *lipgloss.Style
	ButtonDown       *lipgloss.Style
	GaugeFill        *lipgloss.Style
	GaugeEmpty       *lipgloss.Style
	FieldLabel       *lipgloss.Style
	FieldValue       *lipgloss.Style
	SelectedField    *lipgloss.Style
	SpinnerIndicator *lipgloss.Style
}

// New derives the full style set from a palette.
func New(p Palette) *Styles {
	p = p.clamped()
	accent := color(p.Accent)
	text := color(p.Text)
	muted := color(p.Muted)
	highlight := color(p.Highlight)
	border := p.Border.lipgloss()

	return &Styles{
		Palette: p,
		Title: ptr(
			lipgloss.NewStyle().Foreground(accent).Bold(true),
		),
		Item: ptr(
			lipgloss.NewStyle().Foreground(text),
		),
		ItemIndicator: ptr(
			lipgloss.NewStyle().Foreground(muted),
		),
		SelectedItem: ptr(
			lipgloss.NewStyle().Foreground(accent).Bold(true),
		),
		CursorItem: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(highlight).Bold(true),
		),
		ListPane: ptr(
			lipgloss.NewStyle().Border(border).BorderForeground(muted).Padding(0, 1),
		),
		ListPaneFocused: ptr(
			lipgloss.NewStyle().Border(border).BorderForeground(accent).Padding(0, 1),
		),
		ContentPane: ptr(
			lipgloss.NewStyle().Border(border).BorderForeground(muted).Padding(0, 1),
		),
		ContentFocused: ptr(
			lipgloss.NewStyle().Border(border).BorderForeground(accent).Padding(0, 1),
		),
		Overlay: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Faint(true),
		),
		Bullet: ptr(
			lipgloss.NewStyle().Foreground(accent),
		),
		Text: ptr(
			lipgloss.NewStyle().Foreground(text),
		),
		Muted: ptr(
			lipgloss.NewStyle().Foreground(muted),
		),
		Error: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		),
		Warning: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		),
		Footer: ptr(
			lipgloss.NewStyle().Foreground(muted),
		),
		ButtonUp: ptr(
			lipgloss.NewStyle().Foreground(muted),
		),
		ButtonDown: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(accent).Bold(true),
		),
		GaugeFill: ptr(
			lipgloss.NewStyle().Foreground(accent),
		),
		GaugeEmpty: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		),
		FieldLabel: ptr(
			lipgloss.NewStyle().Foreground(text).Width(14),
		),
		FieldValue: ptr(
			lipgloss.NewStyle().Foreground(accent),
		),
		SelectedField: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(highlight),
		),
		SpinnerIndicator: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		),
	}
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return New(DefaultPalette())
}

func color(code int) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(code))
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
