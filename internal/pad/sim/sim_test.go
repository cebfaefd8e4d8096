package sim_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/padnav/internal/logging"
	"github.com/atomicstack/padnav/internal/pad"
	"github.com/atomicstack/padnav/internal/pad/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logging.Configure("-")
	os.Exit(m.Run())
}

func negotiate(t *testing.T, link pad.Link) pad.Result {
	t.Helper()
	n := pad.NewNegotiator(link, pad.NewHandle(0, 0), pad.WithPollInterval(0))
	return n.Run(context.Background())
}

func TestBuiltinsAreListed(t *testing.T) {
	assert.Equal(t, []string{"digital", "dualshock2", "inconsistent"}, sim.Builtins())
}

func TestLoadBuiltinProfile(t *testing.T) {
	p, err := sim.LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, sim.DefaultProfile, p.Name)
	assert.Equal(t, []int{2, 4, 7}, p.Modes)
	assert.Equal(t, 0x12, p.ExID)
	assert.True(t, p.HasExtended())
}

func TestLoadTOMLProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guncon.toml")
	body := "modes = [3, 6]\ncurrent_mode = 6\nex_id = 0\nstartup = [\"findpad\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	p, err := sim.LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "guncon", p.Name)
	assert.Equal(t, []int{3, 6}, p.Modes)
	assert.Equal(t, sim.DefaultHoldFrames, p.HoldFrames)
	assert.False(t, p.HasExtended())
}

func TestLoadYAMLProfileRejectsUnknownState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modes: [7]\nstartup: [WOBBLY]\n"), 0o644))

	_, err := sim.LoadProfile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WOBBLY")
}

func TestLoadMissingProfile(t *testing.T) {
	_, err := sim.LoadProfile("no-such-profile")
	assert.ErrorIs(t, err, sim.ErrUnknownProfile)
}

func TestBuiltinNegotiationOutcomes(t *testing.T) {
	cases := []struct {
		name     string
		outcome  pad.Outcome
		switches int
	}{
		{"dualshock2", pad.OutcomeExtendedReady, 1},
		{"digital", pad.OutcomeBasicOnly, 0},
		{"inconsistent", pad.OutcomeBasicOnly, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := sim.LoadProfile(tc.name)
			require.NoError(t, err)
			link := sim.NewLink(p)

			res := negotiate(t, link)

			assert.Equal(t, tc.outcome, res.Outcome)
			assert.Equal(t, tc.switches, link.ModeSwitches())
			assert.Equal(t, tc.switches, res.ModeSwitches)
		})
	}
}

func TestStartupStatesAreReplayed(t *testing.T) {
	link := sim.NewLink(sim.Profile{Startup: []string{"FINDPAD", "EXECCMD"}})
	require.NoError(t, link.Open(0, 0))

	for _, want := range []pad.LinkState{pad.LinkFindPad, pad.LinkExecCmd, pad.LinkStable, pad.LinkStable} {
		got, err := link.State(0, 0)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestModeSwitchSettles(t *testing.T) {
	link := sim.NewLink(sim.Profile{Modes: []int{7}, ExID: 1, SettlePolls: 2})
	require.NoError(t, link.SetMainMode(0, 0, pad.MainModeDualShock, pad.Locked))

	var seen []pad.LinkState
	for i := 0; i < 3; i++ {
		s, _ := link.State(0, 0)
		seen = append(seen, s)
	}
	assert.Equal(t, []pad.LinkState{pad.LinkExecCmd, pad.LinkExecCmd, pad.LinkStable}, seen)
	id, _ := link.InfoMode(0, 0, pad.ModeCurrentID, 0)
	assert.Equal(t, pad.TypeDualShock, id)
}

func TestPressHoldsForProfileFrames(t *testing.T) {
	link := sim.NewLink(sim.Profile{HoldFrames: 3})
	s := pad.NewSampler(link, pad.NewHandle(0, 0), false)

	link.Press(pad.Cross)
	var down []bool
	var edges int
	for frame := uint64(0); frame < 5; frame++ {
		snap := s.Sample(frame)
		down = append(down, snap.IsDown(pad.Cross))
		if snap.Pressed(pad.Cross) {
			edges++
		}
		link.Tick()
	}
	assert.Equal(t, []bool{true, true, true, false, false}, down)
	assert.Equal(t, 1, edges)
}

func TestRepeatedPressExtendsHold(t *testing.T) {
	link := sim.NewLink(sim.Profile{HoldFrames: 2})
	s := pad.NewSampler(link, pad.NewHandle(0, 0), false)

	link.Press(pad.Start)
	edges := 0
	for frame := uint64(0); frame < 6; frame++ {
		if frame == 1 || frame == 2 {
			link.Press(pad.Start)
		}
		snap := s.Sample(frame)
		if snap.Pressed(pad.Start) {
			edges++
		}
		link.Tick()
	}
	assert.Equal(t, 1, edges)
}

func TestExtendedReportCarriesSticksAndPressure(t *testing.T) {
	p, err := sim.LoadProfile("dualshock2")
	require.NoError(t, err)
	link := sim.NewLink(p)
	res := negotiate(t, link)
	require.True(t, res.Extended())
	s := pad.NewSampler(link, pad.NewHandle(0, 0), res.Extended())

	link.Press(pad.Right | pad.Triangle)
	first := s.Sample(0)
	link.Tick()
	second := s.Sample(1)

	assert.Equal(t, byte(0x79), first.Mode)
	assert.Equal(t, uint8(0xFF), first.LeftX)
	assert.Equal(t, uint8(pad.StickCenter), first.LeftY)
	assert.Equal(t, uint8(0), first.RightY)
	p1, ok := first.Pressure(pad.Triangle)
	require.True(t, ok)
	p2, _ := second.Pressure(pad.Triangle)
	assert.Greater(t, p2, p1)
}

func TestUnplugIsSeenAsDisconnect(t *testing.T) {
	link := sim.NewLink(sim.Profile{Startup: []string{"FINDPAD"}})
	s := pad.NewSampler(link, pad.NewHandle(0, 0), false)
	link.Press(pad.Select)
	require.True(t, s.Sample(0).Connected)

	link.SetConnected(false)
	assert.False(t, link.Connected())
	assert.False(t, s.Sample(1).Connected)
	err := link.Read(0, 0, make([]byte, pad.BufferSize))
	assert.ErrorIs(t, err, sim.ErrUnplugged)

	link.SetConnected(true)
	assert.False(t, s.Sample(2).Connected, "replays FINDPAD first")
	back := s.Sample(3)
	assert.True(t, back.Connected)
	assert.Zero(t, back.Down, "holds are dropped on unplug")
}
