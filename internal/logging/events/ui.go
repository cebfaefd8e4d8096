package events

import "github.com/atomicstack/padnav/internal/logging"

type UITracer struct{}

type StyleTracer struct{}

var (
	UI    = UITracer{}
	Style = StyleTracer{}
)

func (UITracer) SectionSelected(frame uint64, section string) {
	logging.Trace("ui.section", map[string]interface{}{"frame": frame, "section": section})
}

func (UITracer) PickerOpened(frame uint64, section string) {
	logging.Trace("ui.picker", map[string]interface{}{"frame": frame, "section": section})
}

func (UITracer) ListCursor(cursor int) {
	logging.Trace("ui.list-cursor", map[string]interface{}{"cursor": cursor})
}

func (StyleTracer) Field(field string) {
	logging.Trace("style.field", map[string]interface{}{"field": field})
}

func (StyleTracer) Change(field, value string) {
	logging.Trace("style.change", map[string]interface{}{"field": field, "value": value})
}
