package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// BorderKind selects the frame drawn around panes.
type BorderKind int

const (
	BorderRounded BorderKind = iota
	BorderNormal
	BorderThick
	BorderDouble

	borderKinds
)

func (b BorderKind) String() string {
	switch b {
	case BorderNormal:
		return "normal"
	case BorderThick:
		return "thick"
	case BorderDouble:
		return "double"
	default:
		return "rounded"
	}
}

func (b BorderKind) lipgloss() lipgloss.Border {
	switch b {
	case BorderNormal:
		return lipgloss.NormalBorder()
	case BorderThick:
		return lipgloss.ThickBorder()
	case BorderDouble:
		return lipgloss.DoubleBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// Palette holds the user-editable values the style set is derived from.
// Colours are ANSI 256 codes.
type Palette struct {
	Accent     int
	Text       int
	Muted      int
	Highlight  int
	Border     BorderKind
	ListWidth  int
	GaugeWidth int
}

// DefaultPalette returns the palette used at startup.
func DefaultPalette() Palette {
	return Palette{
		Accent:     33,
		Text:       249,
		Muted:      241,
		Highlight:  238,
		Border:     BorderRounded,
		ListWidth:  18,
		GaugeWidth: 16,
	}
}

// Field is one editable palette entry.
type Field int

const (
	FieldAccent Field = iota
	FieldText
	FieldMuted
	FieldHighlight
	FieldBorder
	FieldListWidth
	FieldGaugeWidth

	fieldCount
)

var fieldNames = [fieldCount]string{
	"Accent", "Text", "Muted", "Highlight", "Border", "List width", "Gauge width",
}

// Fields returns the editable fields in display order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Limits for the numeric fields.
const (
	MinListWidth  = 14
	MaxListWidth  = 32
	MinGaugeWidth = 4
	MaxGaugeWidth = 40
)

// Value renders the current value of f.
func (p Palette) Value(f Field) string {
	switch f {
	case FieldAccent:
		return fmt.Sprintf("%d", p.Accent)
	case FieldText:
		return fmt.Sprintf("%d", p.Text)
	case FieldMuted:
		return fmt.Sprintf("%d", p.Muted)
	case FieldHighlight:
		return fmt.Sprintf("%d", p.Highlight)
	case FieldBorder:
		return p.Border.String()
	case FieldListWidth:
		return fmt.Sprintf("%d", p.ListWidth)
	case FieldGaugeWidth:
		return fmt.Sprintf("%d", p.GaugeWidth)
	}
	return ""
}

// Adjust returns a copy of p with f stepped by delta. Colours and the border
// kind wrap around; widths are clamped.
func (p Palette) Adjust(f Field, delta int) Palette {
	switch f {
	case FieldAccent:
		p.Accent = wrap(p.Accent+delta, 256)
	case FieldText:
		p.Text = wrap(p.Text+delta, 256)
	case FieldMuted:
		p.Muted = wrap(p.Muted+delta, 256)
	case FieldHighlight:
		p.Highlight = wrap(p.Highlight+delta, 256)
	case FieldBorder:
		p.Border = BorderKind(wrap(int(p.Border)+delta, int(borderKinds)))
	case FieldListWidth:
		p.ListWidth += delta
	case FieldGaugeWidth:
		p.GaugeWidth += delta
	}
	return p.clamped()
}

func (p Palette) clamped() Palette {
	p.Accent = wrap(p.Accent, 256)
	p.Text = wrap(p.Text, 256)
	p.Muted = wrap(p.Muted, 256)
	p.Highlight = wrap(p.Highlight, 256)
	p.Border = BorderKind(wrap(int(p.Border), int(borderKinds)))
	p.ListWidth = clamp(p.ListWidth, MinListWidth, MaxListWidth)
	p.GaugeWidth = clamp(p.GaugeWidth, MinGaugeWidth, MaxGaugeWidth)
	return p
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
