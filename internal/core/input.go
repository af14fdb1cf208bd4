package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone              Action = iota
	ActionLeft                     // Left arrow, A - paddle left (held)
	ActionRight                    // Right arrow, D - paddle right (held)
	ActionReset                    // N, R - start a new game
	ActionToggleLeaderboard        // L - show/hide the leaderboard
	ActionConfirm                  // Enter - confirm a prompt
	ActionBack                     // Esc - cancel a prompt
	ActionQuit                     // Q, Ctrl+C - exit game/session
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
	case ActionReset:
		return "Reset"
	case ActionToggleLeaderboard:
		return "ToggleLeaderboard"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// PointerX is the last pointer position in logical coordinates,
	// valid only when HasPointer is set.
	PointerX   float64
	HasPointer bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Point records a pointer move to logical x.
func (f *InputFrame) Point(x float64) {
	f.PointerX = x
	f.HasPointer = true
}

// Clear resets all actions and the pointer for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.PointerX = 0
	f.HasPointer = false
}

// HeldKeys tracks directional keys on terminals that only report presses.
// A press holds the direction for holdTicks ticks; pressing the opposite
// direction releases the first one immediately.
type HeldKeys struct {
	holdTicks int
	left      int
	right     int
}

// NewHeldKeys creates a tracker that treats a press as held for holdTicks ticks.
func NewHeldKeys(holdTicks int) *HeldKeys {
	if holdTicks < 1 {
		holdTicks = 1
	}
	return &HeldKeys{holdTicks: holdTicks}
}

// Press records a key-down for ActionLeft or ActionRight.
func (h *HeldKeys) Press(a Action) {
	switch a {
	case ActionLeft:
		h.left = h.holdTicks
		h.right = 0
	case ActionRight:
		h.right = h.holdTicks
		h.left = 0
	}
}

// Apply writes the held directions into the frame and ages them by one tick.
func (h *HeldKeys) Apply(f *InputFrame) {
	if h.left > 0 {
		f.Set(ActionLeft)
		h.left--
	}
	if h.right > 0 {
		f.Set(ActionRight)
		h.right--
	}
}

// Reset releases every held key.
func (h *HeldKeys) Reset() {
	h.left, h.right = 0, 0
}
