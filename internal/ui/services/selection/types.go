package selection

import "errors"

// ErrNotSelecting is returned when a selecting-only operation is used while idle
var ErrNotSelecting = errors.New("selection: not in selecting mode")

// Mode is the state of the action-mode machine
type Mode int

const (
	// ModeIdle has nothing selected and no action UI
	ModeIdle Mode = iota
	// ModeSelecting has at least one item selected and shows the action UI
	ModeSelecting
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSelecting:
		return "selecting"
	default:
		return "unknown"
	}
}

// Transition tells the view whether the action UI appeared or went away
type Transition int

const (
	TransitionNone Transition = iota
	TransitionEntering
	TransitionLeaving
)

// TapOutcome says what a tap on an item did
type TapOutcome int

const (
	// TapOpen means the controller was idle and the tap belongs to the item itself
	TapOpen TapOutcome = iota
	// TapToggled means the item was toggled and the selection is still non-empty
	TapToggled
	// TapCleared means the last selected item was toggled off and the controller is idle again
	TapCleared
)
