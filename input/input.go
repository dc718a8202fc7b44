// Package input defines the decision-ready input surface the core
// consumes. The core never reads raw device state; a collaborator
// (terminal backend, window library, test stub) implements Source and
// systems query it during the fixed update.
package input

// Action is a game-defined digital input (jump, fire, pause).
type Action int

// Axis is a game-defined analog input in [-1, 1] (horizontal movement).
type Axis int

// Common bindings used by the built-in demos; games define their own
// constants past ActionUser/AxisUser.
const (
	ActionJump Action = iota
	ActionQuit
	ActionUser
)

const (
	AxisHorizontal Axis = iota
	AxisVertical
	AxisUser
)

// Source supplies decision-ready input values for the current tick.
type Source interface {
	// Pressed reports whether the action is active this tick
	Pressed(a Action) bool

	// Value returns the axis position in [-1, 1]
	Value(a Axis) float64
}

// Stub is a settable Source for tests and headless runs.
type Stub struct {
	Actions map[Action]bool
	Axes    map[Axis]float64
}

// NewStub creates an inert input source.
func NewStub() *Stub {
	return &Stub{
		Actions: make(map[Action]bool),
		Axes:    make(map[Axis]float64),
	}
}

func (s *Stub) Pressed(a Action) bool { return s.Actions[a] }

func (s *Stub) Value(a Axis) float64 { return s.Axes[a] }
