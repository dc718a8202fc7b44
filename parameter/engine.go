package parameter

// Engine timing defaults
const (
	// DefaultFPS is the target render frame rate
	DefaultFPS = 60

	// DefaultFixedTimeStep is the simulation tick interval in seconds
	DefaultFixedTimeStep = 1.0 / 60.0

	// DefaultMaxFrameTime caps measured frame time to bound catch-up
	// work after a stall (spiral of death guard)
	DefaultMaxFrameTime = 0.25

	// DefaultFPSSampleSize is the rolling window length for FPS metrics
	DefaultFPSSampleSize = 60
)

// Event queue sizing
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo (EventQueueSize - 1)
	EventBufferMask = EventQueueSize - 1
)

// Physics defaults
const (
	// DefaultGravity is the downward acceleration in world units/sec²
	// (positive Y is down, screen convention)
	DefaultGravity = 800.0

	// DefaultCellSize is the spatial grid cell edge in world units,
	// sized so a typical body spans 1-4 cells
	DefaultCellSize = 32.0

	// DefaultMaxVelocity caps velocity magnitude in world units/sec
	DefaultMaxVelocity = 2000.0

	// DefaultFriction is the per-second horizontal damping applied to
	// grounded bodies
	DefaultFriction = 6.0
)
