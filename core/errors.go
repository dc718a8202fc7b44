package core

import "errors"

// Error taxonomy for engine API misuse and corrupted simulation state.
// Callers match with errors.Is after call sites wrap with context.
var (
	// ErrUnknownEntity is returned for operations on a destroyed or
	// never-created entity handle.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrDuplicateComponent is returned when adding a component type an
	// entity already owns. One instance per type per entity.
	ErrDuplicateComponent = errors.New("duplicate component")

	// ErrInvalidConfig is returned for malformed configuration values,
	// e.g. a non-positive fixed time step.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNonFinite is returned when a physics step detects NaN or Inf
	// position/velocity. The step aborts rather than corrupt the grid.
	ErrNonFinite = errors.New("non-finite state")
)
