package events

import "github.com/atomicstack/padnav/internal/logging"

type PadTracer struct{}

var Pad = PadTracer{}

func (PadTracer) Transition(port, slot int, from, to string) {
	logging.Trace("pad.transition", map[string]interface{}{
		"port": port,
		"slot": slot,
		"from": from,
		"to":   to,
	})
}

func (PadTracer) LinkState(port, slot int, state string) {
	logging.Trace("pad.link-state", map[string]interface{}{"port": port, "slot": slot, "state": state})
}

func (PadTracer) Modes(port, slot int, modes []int, current int) {
	logging.Trace("pad.modes", map[string]interface{}{
		"port":    port,
		"slot":    slot,
		"modes":   modes,
		"current": current,
	})
}

func (PadTracer) Outcome(port, slot int, outcome, reason string) {
	payload := map[string]interface{}{"port": port, "slot": slot, "outcome": outcome}
	if reason != "" {
		payload["reason"] = reason
	}
	logging.Trace("pad.outcome", payload)
}

func (PadTracer) Disconnected(port, slot int, state string) {
	logging.Trace("pad.disconnected", map[string]interface{}{"port": port, "slot": slot, "state": state})
}
