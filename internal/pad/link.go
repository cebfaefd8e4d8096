// Package pad owns the controller side of padnav: the link contract a
// controller transport implements, the fixed state buffer a link fills each
// poll, the startup negotiator that locks a pad into its extended mode, and
// the per-frame sampler that turns raw reports into snapshots.
package pad

import "fmt"

// LinkState is the connection health reported by a link. The numeric values
// match the ones controller bridges put on the wire.
type LinkState int

const (
	LinkDisconnected LinkState = 0
	LinkFindPad      LinkState = 1
	LinkFindCTP1     LinkState = 2
	LinkExecCmd      LinkState = 5
	LinkStable       LinkState = 6
	LinkError        LinkState = 7
)

// Ready reports whether the link can be queried and polled.
func (s LinkState) Ready() bool {
	return s == LinkStable || s == LinkFindCTP1
}

func (s LinkState) String() string {
	switch s {
	case LinkDisconnected:
		return "DISCONNECT"
	case LinkFindPad:
		return "FINDPAD"
	case LinkFindCTP1:
		return "FINDCTP1"
	case LinkExecCmd:
		return "EXECCMD"
	case LinkStable:
		return "STABLE"
	case LinkError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ModeQuery selects which mode information InfoMode returns.
type ModeQuery int

const (
	ModeCurrentID     ModeQuery = 1
	ModeCurrentExID   ModeQuery = 2
	ModeCurrentOffset ModeQuery = 3
	ModeTable         ModeQuery = 4
)

func (q ModeQuery) String() string {
	switch q {
	case ModeCurrentID:
		return "current-id"
	case ModeCurrentExID:
		return "current-exid"
	case ModeCurrentOffset:
		return "current-offset"
	case ModeTable:
		return "table"
	default:
		return fmt.Sprintf("query(%d)", int(q))
	}
}

// TableSize is the index passed with ModeTable to ask for the entry count.
const TableSize = -1

// Device type identifiers found in a mode table.
const (
	TypeNeGcon    = 2
	TypeKonamiGun = 3
	TypeDigital   = 4
	TypeAnalog    = 5
	TypeNamcoGun  = 6
	TypeDualShock = 7
)

// TypeName returns a display name for a mode table entry.
func TypeName(id int) string {
	switch id {
	case TypeNeGcon:
		return "neGcon"
	case TypeKonamiGun:
		return "Konami gun"
	case TypeDigital:
		return "digital"
	case TypeAnalog:
		return "analog"
	case TypeNamcoGun:
		return "Namco gun"
	case TypeDualShock:
		return "DualShock"
	default:
		return fmt.Sprintf("type %d", id)
	}
}

// MainMode is the operating mode requested with SetMainMode.
type MainMode int

const (
	MainModeDigital   MainMode = 0
	MainModeDualShock MainMode = 1
)

// LockOption controls whether the user may flip modes with the pad's own
// mode button after a switch.
type LockOption int

const (
	Unlocked LockOption = 2
	Locked   LockOption = 3
)

func (l LockOption) String() string {
	if l == Locked {
		return "locked"
	}
	return "unlocked"
}

// Link is the controller transport. Implementations must not block for
// longer than their own I/O timeout on any call; Read is called once per
// frame and fills buf in place with the raw status report.
type Link interface {
	Open(port, slot int) error
	State(port, slot int) (LinkState, error)
	InfoMode(port, slot int, query ModeQuery, index int) (int, error)
	SetMainMode(port, slot int, mode MainMode, lock LockOption) error
	InfoPressMode(port, slot int) (int, error)
	EnterPressMode(port, slot int) (int, error)
	Read(port, slot int, buf []byte) error
}
