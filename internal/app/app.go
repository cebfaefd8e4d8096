package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/padnav/internal/logging"
	"github.com/atomicstack/padnav/internal/pad"
	"github.com/atomicstack/padnav/internal/pad/serial"
	"github.com/atomicstack/padnav/internal/pad/sim"
	"github.com/atomicstack/padnav/internal/ui"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// Link kinds.
const (
	LinkSim    = "sim"
	LinkSerial = "serial"
)

var (
	// ErrLinkTimeout is returned when the controller link never settles
	// within the configured wait timeout.
	ErrLinkTimeout = errors.New("controller link did not become ready")
	// ErrCancelled is returned when negotiation is interrupted.
	ErrCancelled = errors.New("negotiation cancelled")
)

// Exit codes.
const (
	ExitOK          = 0
	ExitError       = 1
	ExitConfig      = 2
	ExitLinkTimeout = 3
	ExitCancelled   = 130
)

// Config describes user-provided application options.
type Config struct {
	Link        string
	Device      string
	Baud        int
	ReadTimeout time.Duration
	Profile     string
	Port        int
	Slot        int
	WaitTimeout time.Duration
	FPS         int
	Section     string
	Width       int
	Height      int
	ShowFooter  bool

	// Transcript receives the negotiation transcript; nil means stderr.
	Transcript io.Writer `json:"-"`
}

// Session is a negotiated controller ready for the frame loop.
type Session struct {
	Link   pad.Link
	Feeder ui.Feeder
	Handle *pad.Handle
	Result pad.Result

	closer io.Closer
}

// Close releases the link.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Negotiate opens the configured link and runs the startup negotiation.
// A timed out or cancelled wait closes the link and returns ErrLinkTimeout
// or ErrCancelled.
func Negotiate(ctx context.Context, cfg Config) (*Session, error) {
	session, err := openLink(cfg)
	if err != nil {
		return nil, err
	}
	out := cfg.Transcript
	if out == nil {
		out = os.Stderr
	}
	session.Handle = pad.NewHandle(cfg.Port, cfg.Slot)
	negotiator := pad.NewNegotiator(session.Link, session.Handle,
		pad.WithTranscript(out),
		pad.WithWaitTimeout(cfg.WaitTimeout),
	)
	session.Result = negotiator.Run(ctx)
	switch session.Result.Outcome {
	case pad.OutcomeTimedOut:
		session.Close()
		return nil, fmt.Errorf("%w: %s after %s", ErrLinkTimeout, session.Result.State, cfg.WaitTimeout)
	case pad.OutcomeCancelled:
		session.Close()
		return nil, ErrCancelled
	}
	return session, nil
}

func openLink(cfg Config) (*Session, error) {
	switch cfg.Link {
	case LinkSerial:
		link, err := serial.Open(cfg.Device, cfg.Baud, cfg.ReadTimeout)
		if err != nil {
			return nil, err
		}
		return &Session{Link: link, closer: link}, nil
	case LinkSim, "":
		profile, err := sim.LoadProfile(cfg.Profile)
		if err != nil {
			return nil, err
		}
		link := sim.NewLink(profile)
		return &Session{Link: link, Feeder: link}, nil
	default:
		return nil, fmt.Errorf("unknown link %q", cfg.Link)
	}
}

// NewModel builds the frame loop for a negotiated session.
func NewModel(cfg Config, session *Session) (*ui.Model, error) {
	section, err := uistate.ParseSection(cfg.Section)
	if err != nil {
		return nil, err
	}
	return ui.NewModel(ui.Options{
		Sampler:    pad.NewSampler(session.Link, session.Handle, session.Result.Extended()),
		Feeder:     session.Feeder,
		Result:     session.Result,
		Handle:     session.Handle,
		FPS:        cfg.FPS,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Section:    section,
	}), nil
}

// Run negotiates the controller and then executes the Bubble Tea program
// until the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	session, err := Negotiate(ctx, cfg)
	if err != nil {
		return err
	}
	defer session.Close()
	logging.Printf("starting frame loop at %d fps (%s)", cfg.FPS, session.Result.Outcome)

	model, err := NewModel(cfg, session)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// ExitCode maps the result of Run onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrLinkTimeout):
		return ExitLinkTimeout
	case errors.Is(err, ErrCancelled), errors.Is(err, context.Canceled):
		return ExitCancelled
	default:
		return ExitError
	}
}
