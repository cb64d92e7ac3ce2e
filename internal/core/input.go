package core

// Action is a semantic sandbox action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // A, Left arrow - walk left
	ActionRight             // D, Right arrow - walk right
	ActionJump              // Space, W, Up - jump
	ActionUp                // menu cursor up
	ActionDown              // menu cursor down
	ActionConfirm           // Enter - confirm selection in menu
	ActionBack              // Escape - go back to menu
	ActionRestart           // R - respawn the walker
	ActionQuit              // Q, Ctrl+C - exit
	ActionPause             // P - pause/unpause the simulation
	ActionDebug             // Tab - toggle the ray overlay
	ActionRegenerate        // N - rebuild the level with a new seed
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
	case ActionJump:
		return "Jump"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionDebug:
		return "Debug"
	case ActionRegenerate:
		return "Regenerate"
	default:
		return "Unknown"
	}
}

// InputFrame is the set of actions active during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
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

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Axis folds Left and Right into a horizontal move value in [-1, 1].
func (f InputFrame) Axis() float64 {
	move := 0.0
	if f.Has(ActionLeft) {
		move--
	}
	if f.Has(ActionRight) {
		move++
	}
	return move
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// HeldInput turns discrete key presses into held actions.
// Terminals report key repeats but never key releases, so a press keeps
// its action active for a number of ticks and a repeat refreshes it.
type HeldInput struct {
	hold  int
	ticks map[Action]int
}

// NewHeldInput creates a latch that keeps each press alive for hold ticks.
func NewHeldInput(hold int) *HeldInput {
	return &HeldInput{
		hold:  Max(hold, 1),
		ticks: make(map[Action]int),
	}
}

// Press activates a for the latch's hold period.
func (h *HeldInput) Press(a Action) {
	h.ticks[a] = h.hold
}

// Tap activates a for the next frame only.
func (h *HeldInput) Tap(a Action) {
	h.ticks[a] = 1
}

// Release drops a immediately.
func (h *HeldInput) Release(a Action) {
	delete(h.ticks, a)
}

// Frame returns the actions active this tick and ages every latch by one tick.
func (h *HeldInput) Frame() InputFrame {
	frame := NewInputFrame()
	for a, n := range h.ticks {
		frame.Set(a)
		if n <= 1 {
			delete(h.ticks, a)
		} else {
			h.ticks[a] = n - 1
		}
	}
	return frame
}
