// Package serial implements the controller link over a serial bridge: a
// microcontroller wired to the pad bus that answers fixed-size request frames.
package serial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/atomicstack/padnav/internal/pad"
	bugst "go.bug.st/serial"
)

// Frame markers.
const (
	requestMagic  = 0xA5
	responseMagic = 0x5A
	requestSize   = 6
	headerSize    = 4
)

// Op identifies a bridge request.
type Op byte

const (
	OpOpen           Op = 1
	OpState          Op = 2
	OpInfoMode       Op = 3
	OpSetMainMode    Op = 4
	OpInfoPressMode  Op = 5
	OpEnterPressMode Op = 6
	OpRead           Op = 7
)

func (o Op) String() string {
	switch o {
	case OpOpen:
		return "open"
	case OpState:
		return "state"
	case OpInfoMode:
		return "info-mode"
	case OpSetMainMode:
		return "set-main-mode"
	case OpInfoPressMode:
		return "info-press-mode"
	case OpEnterPressMode:
		return "enter-press-mode"
	case OpRead:
		return "read"
	default:
		return fmt.Sprintf("op(%d)", byte(o))
	}
}

var (
	// ErrProtocol reports a malformed or mismatched bridge response.
	ErrProtocol = errors.New("serial: protocol error")
	// ErrTimeout reports a bridge that stopped answering.
	ErrTimeout = errors.New("serial: read timeout")
)

// StatusError is a non-zero status returned by the bridge.
type StatusError struct {
	Op     Op
	Status byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bridge rejected %s with status %d", e.Op, e.Status)
}

// Link is a pad.Link speaking the bridge protocol over rw.
type Link struct {
	mu     sync.Mutex
	rw     io.ReadWriter
	closer io.Closer

	req     [requestSize]byte
	header  [headerSize]byte
	payload [pad.BufferSize]byte
}

var _ pad.Link = (*Link)(nil)

// New wraps an established byte stream.
func New(rw io.ReadWriter) *Link {
	l := &Link{rw: rw}
	if c, ok := rw.(io.Closer); ok {
		l.closer = c
	}
	return l
}

// Open opens device at baud. Every response must start arriving within
// timeout.
func Open(device string, baud int, timeout time.Duration) (*Link, error) {
	port, err := bugst.Open(device, &bugst.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", device, err)
	}
	if timeout > 0 {
		if err := port.SetReadTimeout(timeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("set read timeout on %s: %w", device, err)
		}
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, fmt.Errorf("reset %s: %w", device, err)
	}
	return &Link{rw: portStream{port}, closer: port}, nil
}

// Close releases the underlying stream when it can be closed.
func (l *Link) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *Link) Open(port, slot int) error {
	_, err := l.call(OpOpen, port, slot, 0, 0)
	return err
}

func (l *Link) State(port, slot int) (pad.LinkState, error) {
	v, err := l.callInt(OpState, port, slot, 0, 0)
	if err != nil {
		return pad.LinkError, err
	}
	return pad.LinkState(v), nil
}

func (l *Link) InfoMode(port, slot int, query pad.ModeQuery, index int) (int, error) {
	return l.callInt(OpInfoMode, port, slot, byte(query), byte(int8(index)))
}

func (l *Link) SetMainMode(port, slot int, mode pad.MainMode, lock pad.LockOption) error {
	_, err := l.call(OpSetMainMode, port, slot, byte(mode), byte(lock))
	return err
}

func (l *Link) InfoPressMode(port, slot int) (int, error) {
	return l.callInt(OpInfoPressMode, port, slot, 0, 0)
}

func (l *Link) EnterPressMode(port, slot int) (int, error) {
	return l.callInt(OpEnterPressMode, port, slot, 0, 0)
}

// Read copies the raw status report into buf.
func (l *Link) Read(port, slot int, buf []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	payload, err := l.exchange(OpRead, port, slot, 0, 0)
	if err != nil {
		return err
	}
	if len(payload) < pad.ReportSize || len(payload) > len(buf) {
		return fmt.Errorf("%s: report of %d bytes: %w", OpRead, len(payload), ErrProtocol)
	}
	copy(buf, payload)
	return nil
}

func (l *Link) call(op Op, port, slot int, a, b byte) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	payload, err := l.exchange(op, port, slot, a, b)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), payload...), nil
}

func (l *Link) callInt(op Op, port, slot int, a, b byte) (int, error) {
	payload, err := l.call(op, port, slot, a, b)
	if err != nil {
		return 0, err
	}
	if len(payload) != 4 {
		return 0, fmt.Errorf("%s: %d byte result: %w", op, len(payload), ErrProtocol)
	}
	return int(int32(binary.LittleEndian.Uint32(payload))), nil
}

// exchange sends one request and reads its response. The returned payload
// aliases the link's scratch buffer and is valid until the next exchange.
func (l *Link) exchange(op Op, port, slot int, a, b byte) ([]byte, error) {
	l.req = [requestSize]byte{requestMagic, byte(op), byte(port), byte(slot), a, b}
	if _, err := l.rw.Write(l.req[:]); err != nil {
		return nil, fmt.Errorf("%s: write: %w", op, err)
	}
	if _, err := io.ReadFull(l.rw, l.header[:]); err != nil {
		return nil, fmt.Errorf("%s: read header: %w", op, err)
	}
	if l.header[0] != responseMagic || Op(l.header[1]) != op {
		return nil, fmt.Errorf("%s: unexpected header % x: %w", op, l.header[:2], ErrProtocol)
	}
	n := int(l.header[3])
	payload := l.payload[:n]
	if _, err := io.ReadFull(l.rw, payload); err != nil {
		return nil, fmt.Errorf("%s: read payload: %w", op, err)
	}
	if status := l.header[2]; status != 0 {
		return nil, fmt.Errorf("%s: %w", op, &StatusError{Op: op, Status: status})
	}
	return payload, nil
}

// portStream turns the zero-byte reads a serial port returns on timeout
// into ErrTimeout so io.ReadFull does not spin.
type portStream struct {
	port bugst.Port
}

func (s portStream) Read(p []byte) (int, error) {
	n, err := s.port.Read(p)
	if n == 0 && err == nil && len(p) > 0 {
		return 0, ErrTimeout
	}
	return n, err
}

func (s portStream) Write(p []byte) (int, error) {
	return s.port.Write(p)
}
