package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/padnav/internal/pad"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
	"github.com/charmbracelet/x/ansi"
)

func plainView(h *Harness) string {
	return ansi.Strip(h.View())
}

func TestViewShowsIntroductionControls(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{Width: 100, Height: 24, ShowFooter: true})
	h.Frame(1)
	view := plainView(h)
	for _, want := range []string{"Introduction", "Gamepad", "Style Editor", "D-Pad: Navigate / Modify values", "Hold + L1/R1: Focus windows", "change section", "pad(0,0)"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestViewMarksCursorWhilePicking(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{Width: 100, Height: 24})
	h.Frame(1)
	if strings.Contains(plainView(h), "▸ Introduction") {
		t.Fatalf("expected no cursor marker before picking")
	}
	tap(h, "t")
	view := plainView(h)
	if !strings.Contains(view, "▸ Introduction") {
		t.Fatalf("expected cursor marker while picking:\n%s", view)
	}
	if !strings.Contains(view, "D-Pad: Navigate") {
		t.Fatalf("expected dimmed content to remain visible:\n%s", view)
	}
}

func TestGamepadViewShowsExtendedState(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{Width: 100, Height: 40, Section: uistate.Gamepad})
	h.Press("x")
	h.Frame(1)
	view := plainView(h)
	for _, want := range []string{"Custom drawn widget!", "extended (pressure)", "modes (2 4 7)", "exid 0x12", "held: cross", "LX", "DualShock  active, locked", "digital    startup"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestGamepadViewShowsBasicClassification(t *testing.T) {
	h, _ := newSimHarness(t, "inconsistent", Options{Width: 100, Height: 40, Section: uistate.Gamepad})
	h.Frame(1)
	view := plainView(h)
	if !strings.Contains(view, "basic (digital)") {
		t.Fatalf("expected basic classification:\n%s", view)
	}
}

func TestDisconnectedBanner(t *testing.T) {
	h, link := newSimHarness(t, "dualshock2", Options{Width: 100, Height: 24, Section: uistate.Gamepad})
	link.SetConnected(false)
	h.Frame(1)
	view := plainView(h)
	if !strings.Contains(view, "waiting for controller") {
		t.Fatalf("expected header banner:\n%s", view)
	}
	if !strings.Contains(view, "controller disconnected") {
		t.Fatalf("expected pane banner:\n%s", view)
	}
}

func TestStyleEditorViewHighlightsField(t *testing.T) {
	h, _ := newSimHarness(t, "dualshock2", Options{Width: 100, Height: 24, Section: uistate.StyleEditor})
	h.Frame(1)
	view := plainView(h)
	if !strings.Contains(view, "▸ Accent") {
		t.Fatalf("expected accent highlighted:\n%s", view)
	}
}

func TestGamepadPaneWithoutPressure(t *testing.T) {
	styles := NewModel(Options{}).Styles()
	p := newGamepadPane(styles, pad.Result{Outcome: pad.OutcomeBasicOnly})
	p.Update(pad.Snapshot{Connected: true, Mode: 0x41, Down: pad.Start}, false)
	view := ansi.Strip(p.View(80, 30))
	if !strings.Contains(view, "digital") || !strings.Contains(view, "held: start") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("gamepad", 4); got != "gam…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateText("pad", 8); got != "pad" {
		t.Fatalf("unexpected truncation %q", got)
	}
}

func TestLimitHeight(t *testing.T) {
	lines := []styledLine{{text: "a"}, {text: "b"}, {text: "c"}}
	got := limitHeight(lines, 2, 10)
	if len(got) != 2 || got[1].text != "…" {
		t.Fatalf("unexpected lines %#v", got)
	}
}
