package core

// Action represents a semantic host action, abstracted from physical key presses.
// Pointer movement and clicks reach the game directly; actions cover the
// keyboard fallbacks and platform controls.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // Left arrow, A - nudge the pointer left
	ActionRight        // Right arrow, D - nudge the pointer right
	ActionUp           // Up arrow, W - nudge the pointer up
	ActionDown         // Down arrow, S - nudge the pointer down
	ActionClick        // Space, Enter - click at the pointer
	ActionBoxes        // B - toggle bounding box overlay
	ActionHelp         // ? - toggle full help
	ActionQuit         // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionClick:
		return "Click"
	case ActionBoxes:
		return "Boxes"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
