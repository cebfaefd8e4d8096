package pad_test

import (
	"errors"
	"os"
	"testing"

	"github.com/atomicstack/padnav/internal/logging"
	"github.com/atomicstack/padnav/internal/pad"
)

func TestMain(m *testing.M) {
	logging.Configure("-")
	os.Exit(m.Run())
}

type switchCall struct {
	mode pad.MainMode
	lock pad.LockOption
}

// scriptedLink replays a queue of link states and answers mode queries from
// fixed tables. Once the queue is drained it reports the fallback state.
type scriptedLink struct {
	states      []pad.LinkState
	afterSwitch []pad.LinkState
	fallback    pad.LinkState
	stateErr    error

	openErr error
	modeErr error
	modes   []int
	current int
	exid    int

	infoPress  int
	enterPress int

	report  pad.Report
	readErr error

	opens      int
	stateCalls int
	reads      int
	switches   []switchCall
	queries    []pad.ModeQuery
}

func newScriptedLink(modes ...int) *scriptedLink {
	return &scriptedLink{
		fallback: pad.LinkStable,
		modes:    modes,
		report: pad.Report{
			OK:      true,
			Mode:    0x73,
			Buttons: pad.Denormalize(0),
			RightX:  pad.StickCenter, RightY: pad.StickCenter,
			LeftX: pad.StickCenter, LeftY: pad.StickCenter,
		},
	}
}

func (l *scriptedLink) Open(port, slot int) error {
	l.opens++
	return l.openErr
}

func (l *scriptedLink) State(port, slot int) (pad.LinkState, error) {
	l.stateCalls++
	if l.stateErr != nil {
		return pad.LinkError, l.stateErr
	}
	if len(l.states) > 0 {
		s := l.states[0]
		l.states = l.states[1:]
		return s, nil
	}
	return l.fallback, nil
}

func (l *scriptedLink) InfoMode(port, slot int, query pad.ModeQuery, index int) (int, error) {
	l.queries = append(l.queries, query)
	if l.modeErr != nil {
		return 0, l.modeErr
	}
	switch query {
	case pad.ModeTable:
		if index == pad.TableSize {
			return len(l.modes), nil
		}
		if index < 0 || index >= len(l.modes) {
			return 0, errors.New("index out of range")
		}
		return l.modes[index], nil
	case pad.ModeCurrentID:
		return l.current, nil
	case pad.ModeCurrentExID:
		return l.exid, nil
	}
	return 0, nil
}

func (l *scriptedLink) SetMainMode(port, slot int, mode pad.MainMode, lock pad.LockOption) error {
	l.switches = append(l.switches, switchCall{mode: mode, lock: lock})
	l.states = append(l.states, l.afterSwitch...)
	return nil
}

func (l *scriptedLink) InfoPressMode(port, slot int) (int, error) {
	return l.infoPress, nil
}

func (l *scriptedLink) EnterPressMode(port, slot int) (int, error) {
	return l.enterPress, nil
}

func (l *scriptedLink) Read(port, slot int, buf []byte) error {
	l.reads++
	if l.readErr != nil {
		return l.readErr
	}
	pad.EncodeReport(buf, l.report)
	return nil
}

func (l *scriptedLink) press(b pad.Buttons) {
	l.report.Buttons = pad.Denormalize(b)
}
