package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/padnav/internal/pad"
	"github.com/atomicstack/padnav/internal/theme"
	uistate "github.com/atomicstack/padnav/internal/ui/state"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 60

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type msgHandler func(tea.Msg) tea.Cmd

// frameMsg marks a frame boundary.
type frameMsg struct {
	at time.Time
}

// Feeder drives a simulated pad from the keyboard.
type Feeder interface {
	Press(b pad.Buttons)
	Tick()
	SetConnected(connected bool)
	Connected() bool
}

// Options configures a Model.
type Options struct {
	Sampler *pad.Sampler
	// Feeder is set when the link is simulated.
	Feeder Feeder
	// Result is the negotiation outcome shown by the gamepad pane.
	Result     pad.Result
	Handle     *pad.Handle
	FPS        int
	Width      int
	Height     int
	ShowFooter bool
	Section    uistate.Section
	Palette    *theme.Palette
}

// Model is the frame loop. It owns the sampler, the navigation state, the
// list cursor and the panes; nothing else mutates them.
type Model struct {
	sampler *pad.Sampler
	feeder  Feeder
	result  pad.Result
	handle  *pad.Handle

	nav    *uistate.Navigation
	cursor uistate.ListCursor
	panes  [3]Pane
	styles *theme.Styles

	frame    uint64
	last     pad.Snapshot
	interval time.Duration
	nextTick func() tea.Cmd

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	quitting    bool

	keys keyMap
	help help.Model

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the frame loop model.
func NewModel(opts Options) *Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	palette := theme.DefaultPalette()
	if opts.Palette != nil {
		palette = *opts.Palette
	}
	m := &Model{
		sampler:    opts.Sampler,
		feeder:     opts.Feeder,
		result:     opts.Result,
		handle:     opts.Handle,
		nav:        uistate.NewNavigation(),
		styles:     theme.New(palette),
		interval:   time.Second / time.Duration(fps),
		width:      defaultWidth,
		height:     defaultHeight,
		showFooter: opts.ShowFooter,
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.last = pad.Snapshot{
		RightX: pad.StickCenter, RightY: pad.StickCenter,
		LeftX: pad.StickCenter, LeftY: pad.StickCenter,
	}
	m.panes = [3]Pane{
		uistate.Introduction: newIntroPane(m.styles),
		uistate.Gamepad:      newGamepadPane(m.styles, opts.Result),
		uistate.StyleEditor:  newStylePane(m.styles),
	}
	if opts.Section.Valid() && opts.Section != uistate.Introduction {
		m.nav.Advance(uistate.Select(opts.Section))
	}
	m.cursor.Reset(m.nav.Selected())
	m.nextTick = m.frameTick
	m.registerHandlers()
	return m
}

// Init schedules the first frame.
func (m *Model) Init() tea.Cmd {
	return m.nextTick()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) frameTick() tea.Cmd {
	return tea.Tick(m.interval, func(at time.Time) tea.Msg {
		return frameMsg{at: at}
	})
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg := msg.(tea.KeyMsg)
	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return tea.Quit
	}
	if m.feeder == nil {
		return nil
	}
	if key.Matches(keyMsg, m.keys.Cable) {
		m.feeder.SetConnected(!m.feeder.Connected())
		return nil
	}
	if b, ok := m.keys.buttonFor(keyMsg); ok {
		m.feeder.Press(b)
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	if !m.fixedWidth {
		m.width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	m.help.Width = m.width
	return nil
}

// Navigation exposes the navigation state for read-only inspection.
func (m *Model) Navigation() *uistate.Navigation {
	return m.nav
}

// Frame returns the number of frames run so far.
func (m *Model) Frame() uint64 {
	return m.frame
}

// Snapshot returns the snapshot of the last frame.
func (m *Model) Snapshot() pad.Snapshot {
	return m.last
}

// Quitting reports whether the user asked to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}
