package pad

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/padnav/internal/logging"
	"github.com/atomicstack/padnav/internal/logging/events"
)

// State is a step of the negotiation state machine.
type State int

const (
	StateClosed State = iota
	StateOpening
	StateWaitingStable
	StateEnumeratingModes
	StateVerifyingExtended
	StateRequestingExtendedMode
	StateWaitingStableAfterSwitch
	StateExtendedReady
	StateBasicOnly
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpening:
		return "opening"
	case StateWaitingStable:
		return "waiting-stable"
	case StateEnumeratingModes:
		return "enumerating-modes"
	case StateVerifyingExtended:
		return "verifying-extended"
	case StateRequestingExtendedMode:
		return "requesting-extended-mode"
	case StateWaitingStableAfterSwitch:
		return "waiting-stable-after-switch"
	case StateExtendedReady:
		return "extended-ready"
	case StateBasicOnly:
		return "basic-only"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Outcome classifies a finished negotiation.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeExtendedReady
	OutcomeBasicOnly
	OutcomeTimedOut
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExtendedReady:
		return "extended"
	case OutcomeBasicOnly:
		return "basic"
	case OutcomeTimedOut:
		return "timed out"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// WaitResult is the outcome of a bounded wait for a ready link.
type WaitResult int

const (
	WaitReady WaitResult = iota
	WaitTimedOut
	WaitCancelled
)

func (w WaitResult) String() string {
	switch w {
	case WaitReady:
		return "ready"
	case WaitTimedOut:
		return "timed out"
	default:
		return "cancelled"
	}
}

// Result summarises one negotiation run.
type Result struct {
	Outcome Outcome
	State   State
	Reason  string

	Modes       []int
	CurrentMode int
	ExID        int
	PressInfo   int
	PressEnter  int

	ModeSwitches int
	Path         []State
}

// Extended reports whether the device is guaranteed to populate extended
// fields on every poll.
func (r Result) Extended() bool {
	return r.Outcome == OutcomeExtendedReady
}

// DefaultPollInterval spaces link state polls during a wait.
const DefaultPollInterval = 2 * time.Millisecond

// Option configures a Negotiator.
type Option func(*Negotiator)

// WithTranscript sends the human-readable negotiation transcript to w.
func WithTranscript(w io.Writer) Option {
	return func(n *Negotiator) { n.out = w }
}

// WithWaitTimeout bounds every wait for a ready link. Zero waits forever.
func WithWaitTimeout(d time.Duration) Option {
	return func(n *Negotiator) { n.timeout = d }
}

// WithPollInterval sets the spacing between link state polls.
func WithPollInterval(d time.Duration) Option {
	return func(n *Negotiator) { n.interval = d }
}

// Negotiator discovers the controller on a handle and locks it into its
// extended mode when the device supports it.
type Negotiator struct {
	link     Link
	handle   *Handle
	out      io.Writer
	timeout  time.Duration
	interval time.Duration

	state  State
	result Result
}

// NewNegotiator prepares a negotiator in the Closed state.
func NewNegotiator(link Link, handle *Handle, opts ...Option) *Negotiator {
	n := &Negotiator{
		link:     link,
		handle:   handle,
		out:      io.Discard,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// State returns the current step.
func (n *Negotiator) State() State {
	return n.state
}

// Run drives the negotiation from Closed to a terminal state. It blocks only
// while waiting for the link, and those waits honour ctx and the configured
// timeout.
func (n *Negotiator) Run(ctx context.Context) Result {
	n.state = StateClosed
	n.result = Result{Path: []State{StateClosed}}

	n.transition(StateOpening)
	n.open()

	n.transition(StateWaitingStable)
	if wait := n.waitUntilStable(ctx); wait != WaitReady {
		return n.abandon(wait)
	}

	n.transition(StateEnumeratingModes)
	modes, err := n.enumerateModes()
	if err != nil {
		return n.basic(err.Error())
	}
	if len(modes) == 0 {
		n.logf("empty mode table, treating device as a digital controller")
		return n.basic("empty mode table")
	}

	n.transition(StateVerifyingExtended)
	if ok, reason := n.verifyExtended(modes); !ok {
		return n.basic(reason)
	}

	n.transition(StateRequestingExtendedMode)
	if wait := n.requestExtendedMode(ctx); wait != WaitReady {
		return n.abandon(wait)
	}

	n.transition(StateExtendedReady)
	return n.finish(OutcomeExtendedReady, "")
}

func (n *Negotiator) open() {
	if err := n.link.Open(n.handle.Port, n.handle.Slot); err != nil {
		n.logf("open failed: %v (continuing)", err)
		logging.Error(fmt.Errorf("open %s: %w", n.handle, err))
	}
}

// waitUntilStable polls the link until it reports a ready state, the
// timeout elapses or ctx is cancelled. It only writes to the transcript when
// the reported state changes.
func (n *Negotiator) waitUntilStable(ctx context.Context) WaitResult {
	waitCtx := ctx
	if n.timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	port, slot := n.handle.Port, n.handle.Slot
	pace := newThrottle(n.interval)
	last := LinkState(-1)
	waited := false
	for {
		state, err := n.link.State(port, slot)
		if err != nil {
			if last != LinkError {
				logging.Error(fmt.Errorf("link state %s: %w", n.handle, err))
			}
			state = LinkError
		}
		if state.Ready() {
			if waited {
				n.logf("link ok")
			}
			return WaitReady
		}
		if state != last {
			n.logf("waiting, link is in state %s", state)
			events.Pad.LinkState(port, slot, state.String())
		}
		last = state
		waited = true
		if !pace.wait(waitCtx) {
			if ctx.Err() != nil {
				return WaitCancelled
			}
			return WaitTimedOut
		}
	}
}

func (n *Negotiator) enumerateModes() ([]int, error) {
	port, slot := n.handle.Port, n.handle.Slot
	count, err := n.link.InfoMode(port, slot, ModeTable, TableSize)
	if err != nil {
		return nil, fmt.Errorf("mode table size: %w", err)
	}
	if count < 0 {
		count = 0
	}
	n.logf("device reports %d modes", count)

	modes := make([]int, 0, count)
	for i := 0; i < count; i++ {
		id, err := n.link.InfoMode(port, slot, ModeTable, i)
		if err != nil {
			return nil, fmt.Errorf("mode table entry %d: %w", i, err)
		}
		modes = append(modes, id)
	}
	n.result.Modes = modes
	if len(modes) > 0 {
		n.logf("mode table ( %s )", joinInts(modes))
	}

	current, err := n.link.InfoMode(port, slot, ModeCurrentID, 0)
	if err != nil {
		logging.Error(fmt.Errorf("current mode %s: %w", n.handle, err))
	} else {
		n.result.CurrentMode = current
		n.logf("current mode id %d", current)
	}
	events.Pad.Modes(port, slot, modes, current)
	return modes, nil
}

// verifyExtended requires both the DualShock entry in the table and a
// non-zero extended id. When the two disagree the device is classified as
// basic.
func (n *Negotiator) verifyExtended(modes []int) (bool, string) {
	found := false
	for _, id := range modes {
		if id == TypeDualShock {
			found = true
			break
		}
	}
	if !found {
		n.logf("no %s mode in table, staying in basic mode", TypeName(TypeDualShock))
		return false, "extended mode not listed"
	}
	exid, err := n.link.InfoMode(n.handle.Port, n.handle.Slot, ModeCurrentExID, 0)
	if err != nil {
		n.logf("extended id query failed: %v", err)
		return false, fmt.Sprintf("extended id query: %v", err)
	}
	n.result.ExID = exid
	if exid == 0 {
		n.logf("%s mode listed but extended id is 0, staying in basic mode", TypeName(TypeDualShock))
		return false, "extended id is zero"
	}
	return true, ""
}

func (n *Negotiator) requestExtendedMode(ctx context.Context) WaitResult {
	port, slot := n.handle.Port, n.handle.Slot
	n.logf("enabling %s mode (%s)", TypeName(TypeDualShock), Locked)
	n.result.ModeSwitches++
	if err := n.link.SetMainMode(port, slot, MainModeDualShock, Locked); err != nil {
		n.logf("mode switch request failed: %v", err)
		logging.Error(fmt.Errorf("set main mode %s: %w", n.handle, err))
	}

	n.transition(StateWaitingStableAfterSwitch)
	if wait := n.waitUntilStable(ctx); wait != WaitReady {
		return wait
	}
	if v, err := n.link.InfoPressMode(port, slot); err != nil {
		n.logf("press mode info failed: %v", err)
	} else {
		n.result.PressInfo = v
		n.logf("press mode info %d", v)
	}

	if wait := n.waitUntilStable(ctx); wait != WaitReady {
		return wait
	}
	if v, err := n.link.EnterPressMode(port, slot); err != nil {
		n.logf("press mode enter failed: %v", err)
	} else {
		n.result.PressEnter = v
		n.logf("press mode enter %d", v)
	}
	return WaitReady
}

func (n *Negotiator) basic(reason string) Result {
	n.transition(StateBasicOnly)
	return n.finish(OutcomeBasicOnly, reason)
}

func (n *Negotiator) abandon(wait WaitResult) Result {
	outcome := OutcomeCancelled
	if wait == WaitTimedOut {
		outcome = OutcomeTimedOut
	}
	n.logf("gave up waiting for the link in state %s: %s", n.state, wait)
	return n.finish(outcome, "link wait "+wait.String())
}

func (n *Negotiator) finish(outcome Outcome, reason string) Result {
	n.result.Outcome = outcome
	n.result.State = n.state
	n.result.Reason = reason
	n.logf("negotiation finished: %s", outcome)
	events.Pad.Outcome(n.handle.Port, n.handle.Slot, outcome.String(), reason)
	res := n.result
	res.Modes = append([]int(nil), n.result.Modes...)
	res.Path = append([]State(nil), n.result.Path...)
	return res
}

func (n *Negotiator) transition(next State) {
	prev := n.state
	n.state = next
	n.result.Path = append(n.result.Path, next)
	events.Pad.Transition(n.handle.Port, n.handle.Slot, prev.String(), next.String())
}

func (n *Negotiator) logf(format string, args ...interface{}) {
	line := fmt.Sprintf("%s: %s", n.handle, fmt.Sprintf(format, args...))
	fmt.Fprintln(n.out, line)
	logging.Printf("%s", line)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
