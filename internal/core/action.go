package core

// Action represents a semantic game action, abstracted from physical key presses.
// The platform maps keys to actions; the run controller maps actions to intents.
type Action int

const (
	ActionNone       Action = iota
	ActionUp                // W, Up arrow - move cursor up
	ActionDown              // S, Down arrow - move cursor down
	ActionLeft              // A, Left arrow - move cursor left
	ActionRight             // D, Right arrow - move cursor right
	ActionPick              // Space, Enter - pick the cell under the cursor
	ActionHint              // I - use a hint
	ActionSlowMotion        // M - use slow motion
	ActionNextLevel         // ] - jump one level forward
	ActionPrevLevel         // [ - jump one level back
	ActionRetry             // R - retry after time out
	ActionBack              // B, Escape - back to menu
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPick:
		return "Pick"
	case ActionHint:
		return "Hint"
	case ActionSlowMotion:
		return "SlowMotion"
	case ActionNextLevel:
		return "NextLevel"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionRetry:
		return "Retry"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
