package pad

import (
	"github.com/atomicstack/padnav/internal/logging"
	"github.com/atomicstack/padnav/internal/logging/events"
)

// StickCenter is the resting value of an analog axis.
const StickCenter = 0x80

// Snapshot is the input state of one frame. It is a plain value; consumers
// receive copies and never see it change.
type Snapshot struct {
	Frame     uint64
	Connected bool
	Extended  bool
	Mode      byte

	Down    Buttons
	Changed Buttons

	RightX, RightY uint8
	LeftX, LeftY   uint8

	pressure [PressureCount]uint8
}

// IsDown reports whether b is held this frame.
func (s Snapshot) IsDown(b Buttons) bool {
	return s.Down.Has(b)
}

// Pressed reports whether b went down this frame.
func (s Snapshot) Pressed(b Buttons) bool {
	return s.Down&b != 0 && s.Changed&b != 0
}

// Released reports whether b went up this frame.
func (s Snapshot) Released(b Buttons) bool {
	return s.Down&b == 0 && s.Changed&b != 0
}

// PressedAny returns the buttons that went down this frame.
func (s Snapshot) PressedAny() Buttons {
	return s.Down & s.Changed
}

// Pressure returns the analog pressure of b. The second result is false when
// the device is not in extended mode or b has no pressure sensor.
func (s Snapshot) Pressure(b Buttons) (uint8, bool) {
	if !s.Extended {
		return 0, false
	}
	idx := pressureIndex(b)
	if idx < 0 {
		return 0, false
	}
	return s.pressure[idx], true
}

// Sampler reads the handle once per frame and hands out snapshots.
type Sampler struct {
	link     Link
	handle   *Handle
	extended bool

	sampled  bool
	frame    uint64
	current  Snapshot
	prevDown Buttons
	wasUp    bool
}

// NewSampler builds a sampler for a negotiated handle. extended must be the
// negotiation result's Extended flag; pressure fields are never decoded
// otherwise.
func NewSampler(link Link, handle *Handle, extended bool) *Sampler {
	return &Sampler{link: link, handle: handle, extended: extended, wasUp: true}
}

// Extended reports whether snapshots carry pressure data.
func (s *Sampler) Extended() bool {
	return s.extended
}

// Sample returns the snapshot for frame. The first call for a frame polls
// the link; later calls for the same frame return the same value.
func (s *Sampler) Sample(frame uint64) Snapshot {
	if s.sampled && frame == s.frame {
		return s.current
	}
	s.sampled = true
	s.frame = frame
	s.current = s.poll(frame)
	return s.current
}

// Last returns the most recent snapshot without polling.
func (s *Sampler) Last() Snapshot {
	return s.current
}

func (s *Sampler) poll(frame uint64) Snapshot {
	port, slot := s.handle.Port, s.handle.Slot
	state, err := s.link.State(port, slot)
	if err == nil && state.Ready() {
		err = s.link.Read(port, slot, s.handle.Buffer())
	}
	if err != nil || !state.Ready() {
		if s.wasUp {
			if err != nil {
				logging.Error(err)
			}
			events.Pad.Disconnected(port, slot, state.String())
		}
		s.wasUp = false
		s.prevDown = 0
		return Snapshot{
			Frame:  frame,
			RightX: StickCenter, RightY: StickCenter,
			LeftX: StickCenter, LeftY: StickCenter,
		}
	}

	report := decodeReport(s.handle.Buffer(), s.extended)
	down := normalize(report.Buttons)
	changed := down ^ s.prevDown
	if !s.wasUp {
		// a button held through a reconnect must not raise an edge
		changed = 0
	}
	s.prevDown = down
	s.wasUp = true

	snap := Snapshot{
		Frame:     frame,
		Connected: true,
		Extended:  s.extended,
		Mode:      report.Mode,
		Down:      down,
		Changed:   changed,
		RightX:    report.RightX,
		RightY:    report.RightY,
		LeftX:     report.LeftX,
		LeftY:     report.LeftY,
	}
	if s.extended {
		snap.pressure = report.Pressure
	}
	return snap
}
