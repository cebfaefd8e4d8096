// Package sim provides a simulated controller link driven from the keyboard.
// Device behaviour during negotiation comes from a Profile, either one of the
// built-in profiles or a YAML/TOML file.
package sim

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/atomicstack/padnav/internal/pad"
	toml "github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

//go:embed profiles/*.yaml
var builtinFS embed.FS

// DefaultProfile is used when no profile is configured.
const DefaultProfile = "dualshock2"

// DefaultHoldFrames is how long a key press keeps its button down when the
// profile does not say.
const DefaultHoldFrames = 8

// ErrUnknownProfile is returned when a profile name is neither built in nor
// a readable file.
var ErrUnknownProfile = errors.New("unknown profile")

// Profile describes how the simulated device answers the link queries.
type Profile struct {
	Name        string   `yaml:"name" toml:"name"`
	Modes       []int    `yaml:"modes" toml:"modes"`
	CurrentMode int      `yaml:"current_mode" toml:"current_mode"`
	ExID        int      `yaml:"ex_id" toml:"ex_id"`
	PressInfo   int      `yaml:"press_info" toml:"press_info"`
	PressEnter  int      `yaml:"press_enter" toml:"press_enter"`
	Startup     []string `yaml:"startup" toml:"startup"`
	SettlePolls int      `yaml:"settle_polls" toml:"settle_polls"`
	HoldFrames  int      `yaml:"hold_frames" toml:"hold_frames"`
}

// Builtins lists the names of the embedded profiles.
func Builtins() []string {
	entries, err := builtinFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// LoadProfile resolves name as a built-in profile first and as a file path
// otherwise. Files ending in .toml are decoded as TOML, everything else as
// YAML.
func LoadProfile(name string) (Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultProfile
	}
	if data, err := builtinFS.ReadFile("profiles/" + name + ".yaml"); err == nil {
		return decodeProfile(name, data, false)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Profile{}, fmt.Errorf("%w: %s (built-in: %s)", ErrUnknownProfile, name, strings.Join(Builtins(), ", "))
		}
		return Profile{}, fmt.Errorf("read profile %s: %w", name, err)
	}
	return decodeProfile(name, data, strings.EqualFold(filepath.Ext(name), ".toml"))
}

func decodeProfile(source string, data []byte, isTOML bool) (Profile, error) {
	var p Profile
	var err error
	if isTOML {
		err = toml.Unmarshal(data, &p)
	} else {
		err = yaml.Unmarshal(data, &p)
	}
	if err != nil {
		return Profile{}, fmt.Errorf("decode profile %s: %w", source, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if p.HoldFrames <= 0 {
		p.HoldFrames = DefaultHoldFrames
	}
	if p.SettlePolls < 0 {
		p.SettlePolls = 0
	}
	if _, err := p.startupStates(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", source, err)
	}
	return p, nil
}

// startupStates converts the startup sequence into link states.
func (p Profile) startupStates() ([]pad.LinkState, error) {
	states := make([]pad.LinkState, 0, len(p.Startup))
	for _, name := range p.Startup {
		s, ok := parseLinkState(name)
		if !ok {
			return nil, fmt.Errorf("unknown link state %q", name)
		}
		states = append(states, s)
	}
	return states, nil
}

// HasExtended reports whether the profile lists the DualShock mode.
func (p Profile) HasExtended() bool {
	for _, id := range p.Modes {
		if id == pad.TypeDualShock {
			return true
		}
	}
	return false
}

var knownStates = []pad.LinkState{
	pad.LinkDisconnected,
	pad.LinkFindPad,
	pad.LinkFindCTP1,
	pad.LinkExecCmd,
	pad.LinkStable,
	pad.LinkError,
}

func parseLinkState(name string) (pad.LinkState, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, s := range knownStates {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
