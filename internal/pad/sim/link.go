package sim

import (
	"errors"
	"sync"

	"github.com/atomicstack/padnav/internal/pad"
)

// ErrUnplugged is returned by Read while the simulated cable is out.
var ErrUnplugged = errors.New("sim: controller unplugged")

const (
	modeByteExtended = 0x79
	fullDeflection   = 0xFF
	pressureBase     = 0x40
	pressureStep     = 0x30
)

// Link is a pad.Link backed by a profile and a set of held buttons. The
// terminal only reports key presses, so a press holds its button for a fixed
// number of frames and repeated presses of a held button extend the hold.
type Link struct {
	mu sync.Mutex

	profile   Profile
	queue     []pad.LinkState
	connected bool
	extended  bool
	pressure  bool
	switches  int

	hold map[pad.Buttons]int
	age  map[pad.Buttons]int
}

var _ pad.Link = (*Link)(nil)

// NewLink builds a connected simulated device.
func NewLink(p Profile) *Link {
	if p.HoldFrames <= 0 {
		p.HoldFrames = DefaultHoldFrames
	}
	return &Link{
		profile:   p,
		connected: true,
		hold:      make(map[pad.Buttons]int),
		age:       make(map[pad.Buttons]int),
	}
}

// Profile returns the profile the link was built from.
func (l *Link) Profile() Profile {
	return l.profile
}

func (l *Link) Open(port, slot int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	states, err := l.profile.startupStates()
	if err != nil {
		return err
	}
	l.queue = states
	return nil
}

func (l *Link) State(port, slot int) (pad.LinkState, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.connected {
		return pad.LinkDisconnected, nil
	}
	if len(l.queue) > 0 {
		s := l.queue[0]
		l.queue = l.queue[1:]
		return s, nil
	}
	return pad.LinkStable, nil
}

func (l *Link) InfoMode(port, slot int, query pad.ModeQuery, index int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch query {
	case pad.ModeTable:
		if index == pad.TableSize {
			return len(l.profile.Modes), nil
		}
		if index < 0 || index >= len(l.profile.Modes) {
			return 0, nil
		}
		return l.profile.Modes[index], nil
	case pad.ModeCurrentID:
		if l.extended {
			return pad.TypeDualShock, nil
		}
		return l.profile.CurrentMode, nil
	case pad.ModeCurrentExID:
		return l.profile.ExID, nil
	case pad.ModeCurrentOffset:
		if l.extended {
			return 1, nil
		}
		return 0, nil
	}
	return 0, nil
}

// SetMainMode switches into extended mode when the profile lists it. The
// link then reports EXECCMD for the profile's settle polls.
func (l *Link) SetMainMode(port, slot int, mode pad.MainMode, lock pad.LockOption) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.switches++
	if mode == pad.MainModeDualShock && l.profile.HasExtended() {
		l.extended = true
	}
	for i := 0; i < l.profile.SettlePolls; i++ {
		l.queue = append(l.queue, pad.LinkExecCmd)
	}
	return nil
}

func (l *Link) InfoPressMode(port, slot int) (int, error) {
	return l.profile.PressInfo, nil
}

func (l *Link) EnterPressMode(port, slot int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.extended {
		l.pressure = true
	}
	return l.profile.PressEnter, nil
}

func (l *Link) Read(port, slot int, buf []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.connected {
		return ErrUnplugged
	}
	pad.EncodeReport(buf, l.report())
	return nil
}

func (l *Link) report() pad.Report {
	var down pad.Buttons
	for b := range l.hold {
		down |= b
	}
	r := pad.Report{
		OK:      true,
		Mode:    byte(l.profile.CurrentMode<<4 | 1),
		Buttons: pad.Denormalize(down),
		RightX:  pad.StickCenter,
		RightY:  pad.StickCenter,
		LeftX:   pad.StickCenter,
		LeftY:   pad.StickCenter,
	}
	if !l.extended {
		return r
	}
	r.Mode = modeByteExtended
	r.LeftX = axis(down, pad.Left, pad.Right)
	r.LeftY = axis(down, pad.Up, pad.Down)
	r.RightX = axis(down, pad.Square, pad.Circle)
	r.RightY = axis(down, pad.Triangle, pad.Cross)
	if l.pressure {
		for _, b := range pad.PressureButtons() {
			if down.Has(b) {
				r.SetPressure(b, pressureFor(l.age[b]))
			}
		}
	}
	return r
}

func axis(down, low, high pad.Buttons) uint8 {
	switch {
	case down.Has(low) && !down.Has(high):
		return 0
	case down.Has(high) && !down.Has(low):
		return fullDeflection
	default:
		return pad.StickCenter
	}
}

// pressureFor ramps pressure up the longer a button stays held.
func pressureFor(age int) uint8 {
	v := pressureBase + pressureStep*age
	if v > fullDeflection {
		v = fullDeflection
	}
	return uint8(v)
}

// Press holds b for the profile's hold time. Each bit of b is tracked
// separately.
func (l *Link) Press(b pad.Buttons) {
	l.Hold(b, l.profile.HoldFrames)
}

// Hold keeps b down for at least frames frames.
func (l *Link) Hold(b pad.Buttons, frames int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for bit := pad.Buttons(1); bit != 0; bit <<= 1 {
		if !b.Has(bit) {
			continue
		}
		if l.hold[bit] < frames {
			l.hold[bit] = frames
		}
	}
}

// Tick advances simulated time by one frame, releasing expired holds.
func (l *Link) Tick() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for b, left := range l.hold {
		left--
		if left <= 0 {
			delete(l.hold, b)
			delete(l.age, b)
			continue
		}
		l.hold[b] = left
		l.age[b]++
	}
}

// SetConnected plugs or unplugs the simulated cable. Reconnecting replays
// the profile's startup states; the device keeps the mode it was in.
func (l *Link) SetConnected(connected bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if connected == l.connected {
		return
	}
	l.connected = connected
	if !connected {
		l.hold = make(map[pad.Buttons]int)
		l.age = make(map[pad.Buttons]int)
		l.queue = nil
		return
	}
	if states, err := l.profile.startupStates(); err == nil {
		l.queue = states
	}
}

// Connected reports whether the simulated cable is in.
func (l *Link) Connected() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

// ModeSwitches counts SetMainMode calls.
func (l *Link) ModeSwitches() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.switches
}
