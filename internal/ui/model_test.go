package ui

import (
	"context"
	"os"
	"testing"

	"github.com/atomicstack/padnav/internal/logging"
	"github.com/atomicstack/padnav/internal/pad"
	"github.com/atomicstack/padnav/internal/pad/sim"
	"github.com/atomicstack/padnav/internal/theme"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const testHold = 2

func TestMain(m *testing.M) {
	logging.Configure("-")
	os.Exit(m.Run())
}

// newSimHarness negotiates a simulated pad and wraps a model around it.
func newSimHarness(t *testing.T, profile string, opts Options) (*Harness, *sim.Link) {
	t.Helper()
	p, err := sim.LoadProfile(profile)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	p.HoldFrames = testHold
	link := sim.NewLink(p)
	handle := pad.NewHandle(0, 0)
	res := pad.NewNegotiator(link, handle, pad.WithPollInterval(0)).Run(context.Background())
	opts.Sampler = pad.NewSampler(link, handle, res.Extended())
	opts.Feeder = link
	opts.Result = res
	opts.Handle = handle
	return NewHarness(NewModel(opts)), link
}

// tap presses a key, runs the frame that sees the edge, and lets the hold
// expire.
func tap(h *Harness, name string) {
	h.Press(name)
	h.Frame(1 + testHold)
}

func TestModelStartsOnIntroduction(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{})
	h.Frame(3)
	nav := h.Model().Navigation()
	if nav.Selected() != uistate.Introduction || nav.Picking() {
		t.Fatalf("expected introduction without picker, got %v picking=%v", nav.Selected(), nav.Picking())
	}
	if h.Model().Frame() != 3 {
		t.Fatalf("expected three frames, got %d", h.Model().Frame())
	}
}

func TestTriangleOpensPickerOnce(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{})
	h.Frame(2)

	h.Press("t")
	h.Frame(1)
	if !h.Model().Navigation().Picking() {
		t.Fatalf("expected picker after triangle edge")
	}
	if h.Model().Navigation().Focus() != uistate.FocusList {
		t.Fatalf("expected list focus")
	}
	h.Press("t")
	h.Frame(testHold)
	if !h.Model().Navigation().Picking() {
		t.Fatalf("expected picker to stay open while triangle is held")
	}
}

func TestPickerSelectsGamepad(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{})
	tap(h, "t")
	tap(h, "down")
	if h.Model().cursor.Current() != uistate.Gamepad {
		t.Fatalf("expected cursor on gamepad, got %v", h.Model().cursor.Current())
	}
	tap(h, "x")

	nav := h.Model().Navigation()
	if nav.Selected() != uistate.Gamepad || nav.Picking() {
		t.Fatalf("expected gamepad selected and picker closed, got %v picking=%v", nav.Selected(), nav.Picking())
	}
}

func TestCursorResetsToSelectionWhenPickerOpens(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{Section: uistate.StyleEditor})
	tap(h, "t")
	if h.Model().cursor.Current() != uistate.StyleEditor {
		t.Fatalf("expected cursor on style editor, got %v", h.Model().cursor.Current())
	}
}

func TestListIgnoresInputWhileContentFocused(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{})
	tap(h, "down")
	tap(h, "x")
	nav := h.Model().Navigation()
	if nav.Selected() != uistate.Introduction {
		t.Fatalf("expected selection untouched, got %v", nav.Selected())
	}
	if h.Model().cursor.Current() != uistate.Introduction {
		t.Fatalf("expected cursor untouched, got %v", h.Model().cursor.Current())
	}
}

func TestStyleEditorAdjustsPalette(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{Section: uistate.StyleEditor})
	before := h.Model().Styles().Palette.Accent

	tap(h, "right")
	if got := h.Model().Styles().Palette.Accent; got != before+1 {
		t.Fatalf("expected accent %d, got %d", before+1, got)
	}

	tap(h, "down")
	tap(h, "left")
	if got := h.Model().Styles().Palette.Text; got != theme.DefaultPalette().Text-1 {
		t.Fatalf("expected text colour to step down, got %d", got)
	}
}

func TestStyleEditorIgnoresInputWhilePicking(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{Section: uistate.StyleEditor})
	tap(h, "t")
	tap(h, "right")
	if got := h.Model().Styles().Palette; got != theme.DefaultPalette() {
		t.Fatalf("expected palette untouched while picking, got %+v", got)
	}
}

func TestCableToggleDisconnects(t *testing.T) {
	h, link := newSimHarness(t, "dualshock2", Options{})
	h.Frame(1)
	if !h.Model().Snapshot().Connected {
		t.Fatalf("expected connected snapshot")
	}
	h.Press("d")
	h.Frame(1)
	if link.Connected() || h.Model().Snapshot().Connected {
		t.Fatalf("expected disconnected after toggling the cable")
	}
	h.Press("d")
	h.Frame(10)
	if !h.Model().Snapshot().Connected {
		t.Fatalf("expected reconnect once startup states drain")
	}
}

func TestQuitKey(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{})
	h.Press("q")
	if !h.Model().Quitting() {
		t.Fatalf("expected quitting")
	}
	if h.View() != "" {
		t.Fatalf("expected empty view after quit")
	}
}

func TestKeysIgnoredWithoutFeeder(t *testing.T) {
	m := NewModel(Options{})
	h := NewHarness(m)
	h.Press("t")
	h.Frame(2)
	if m.Navigation().Picking() {
		t.Fatalf("expected keyboard to have no effect without a simulated pad")
	}
	h.Press("ctrl+c")
	if !m.Quitting() {
		t.Fatalf("expected ctrl+c to quit")
	}
}

func TestWindowSizeRespectsFixedDimensions(t *testing.T) {
	m := NewModel(Options{Width: 60})
	h := NewHarness(m)
	h.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 60 || m.height != 40 {
		t.Fatalf("expected 60x40, got %dx%d", m.width, m.height)
	}
}

func TestInitSchedulesFrame(t *testing.T) {
	m := NewModel(Options{FPS: 30})
	if m.Init() == nil {
		t.Fatalf("expected a frame tick")
	}
	if m.interval.Milliseconds() != 33 {
		t.Fatalf("expected 33ms frames, got %v", m.interval)
	}
}
