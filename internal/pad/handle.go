package pad

import "fmt"

// BufferSize is the size of the state buffer a link fills on every poll.
const BufferSize = 256

// ReportSize is the number of leading buffer bytes that carry the status
// report; the rest of the buffer is scratch space reserved for the link.
const ReportSize = 20

// Raw report offsets.
const (
	offOK       = 0
	offMode     = 1
	offButtons  = 2
	offRightX   = 4
	offRightY   = 5
	offLeftX    = 6
	offLeftY    = 7
	offPressure = 8
)

// Handle identifies one controller (port, slot) and owns the buffer its link
// writes into. A handle is created once and lives for the process; the
// buffer is never reallocated.
type Handle struct {
	Port int
	Slot int

	buf [BufferSize]byte
}

// NewHandle allocates the handle for a controller slot.
func NewHandle(port, slot int) *Handle {
	return &Handle{Port: port, Slot: slot}
}

// Buffer returns the state buffer. The slice always aliases the same array.
func (h *Handle) Buffer() []byte {
	return h.buf[:]
}

func (h *Handle) String() string {
	return fmt.Sprintf("pad(%d,%d)", h.Port, h.Slot)
}

// Report is a decoded view of the raw status report. It never outlives the
// frame it was decoded in.
type Report struct {
	OK       bool
	Mode     byte
	Buttons  uint16 // active-low, as reported
	RightX   uint8
	RightY   uint8
	LeftX    uint8
	LeftY    uint8
	Pressure [PressureCount]uint8
}

// DeviceType returns the device type carried in the high nibble of the mode
// byte.
func (r Report) DeviceType() int {
	return int(r.Mode >> 4)
}

// decodeReport decodes the buffer. Pressure bytes are only read when
// extended is set; basic-mode devices leave them undefined.
func decodeReport(buf []byte, extended bool) Report {
	if len(buf) < ReportSize {
		return Report{}
	}
	r := Report{
		OK:      buf[offOK] == 0,
		Mode:    buf[offMode],
		Buttons: uint16(buf[offButtons]) | uint16(buf[offButtons+1])<<8,
		RightX:  buf[offRightX],
		RightY:  buf[offRightY],
		LeftX:   buf[offLeftX],
		LeftY:   buf[offLeftY],
	}
	if extended {
		copy(r.Pressure[:], buf[offPressure:offPressure+PressureCount])
	}
	return r
}

// EncodeReport writes r into buf using the raw report layout. Links that
// synthesise reports (simulators, bridges that forward decoded data) use it
// to fill the handle buffer.
func EncodeReport(buf []byte, r Report) {
	if len(buf) < ReportSize {
		return
	}
	if r.OK {
		buf[offOK] = 0
	} else {
		buf[offOK] = 0xFF
	}
	buf[offMode] = r.Mode
	buf[offButtons] = byte(r.Buttons)
	buf[offButtons+1] = byte(r.Buttons >> 8)
	buf[offRightX] = r.RightX
	buf[offRightY] = r.RightY
	buf[offLeftX] = r.LeftX
	buf[offLeftY] = r.LeftY
	copy(buf[offPressure:offPressure+PressureCount], r.Pressure[:])
}

// SetPressure stores the pressure of b. Buttons without a sensor are ignored.
func (r *Report) SetPressure(b Buttons, v uint8) {
	if idx := pressureIndex(b); idx >= 0 {
		r.Pressure[idx] = v
	}
}
