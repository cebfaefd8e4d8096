package state

// Focus names the pane that owns input this frame.
type Focus int

const (
	FocusContent Focus = iota
	FocusList
)

func (f Focus) String() string {
	if f == FocusList {
		return "list"
	}
	return "content"
}

// FrameInput carries the navigation events raised during one frame.
type FrameInput struct {
	// Selection is the section chosen from the list this frame, if any.
	Selection    Section
	HasSelection bool
	// MenuEdge is set on the single frame the menu button goes down.
	MenuEdge bool
}

// Select builds the input for a selection event.
func Select(s Section) FrameInput {
	return FrameInput{Selection: s, HasSelection: true}
}

// MenuPressed builds the input for a menu edge.
func MenuPressed() FrameInput {
	return FrameInput{MenuEdge: true}
}

// Transition reports what Advance changed.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionSelected
	TransitionPickerOpened
)

func (t Transition) String() string {
	switch t {
	case TransitionSelected:
		return "selected"
	case TransitionPickerOpened:
		return "picker-opened"
	default:
		return "none"
	}
}

// Navigation is the selected section and the picker flag. The zero value is
// the initial state.
type Navigation struct {
	selected Section
	picking  bool
}

// NewNavigation returns the initial state: Introduction selected, not
// picking.
func NewNavigation() *Navigation {
	return &Navigation{selected: Introduction}
}

// Advance applies one frame of input. A valid selection always wins and
// leaves picking mode; otherwise a menu edge enters picking mode. Selections
// of sections outside the enumeration are ignored.
func (n *Navigation) Advance(in FrameInput) Transition {
	if in.HasSelection && in.Selection.Valid() {
		n.selected = in.Selection
		n.picking = false
		return TransitionSelected
	}
	if in.MenuEdge && !n.picking {
		n.picking = true
		return TransitionPickerOpened
	}
	return TransitionNone
}

// Selected returns the section whose content pane is drawn.
func (n *Navigation) Selected() Section {
	return n.selected
}

// Picking reports whether the picker overlay is active.
func (n *Navigation) Picking() bool {
	return n.picking
}

// Focus returns the pane that receives input this frame.
func (n *Navigation) Focus() Focus {
	if n.picking {
		return FocusList
	}
	return FocusContent
}

// Overlay reports whether the content pane is drawn behind the overlay.
func (n *Navigation) Overlay() bool {
	return n.picking
}
