package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/parameter"
	"github.com/hollowpine/strata/status"
)

// GameLoopConfig holds loop timing parameters.
type GameLoopConfig struct {
	// FPS is the target render frame rate
	FPS int

	// FixedTimeStep is the simulation tick interval in seconds
	FixedTimeStep float64

	// MaxFrameTime clamps measured frame time, bounding the number of
	// catch-up fixed updates after a stall
	MaxFrameTime float64

	// FPSSampleSize is the rolling window length for FPS metrics
	FPSSampleSize int
}

// DefaultGameLoopConfig returns the standard 60 Hz configuration.
func DefaultGameLoopConfig() GameLoopConfig {
	return GameLoopConfig{
		FPS:           parameter.DefaultFPS,
		FixedTimeStep: parameter.DefaultFixedTimeStep,
		MaxFrameTime:  parameter.DefaultMaxFrameTime,
		FPSSampleSize: parameter.DefaultFPSSampleSize,
	}
}

// Validate checks the configuration for usable values.
func (c GameLoopConfig) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps %d: %w", c.FPS, core.ErrInvalidConfig)
	}
	if c.FixedTimeStep <= 0 {
		return fmt.Errorf("fixed time step %v: %w", c.FixedTimeStep, core.ErrInvalidConfig)
	}
	if c.MaxFrameTime < c.FixedTimeStep {
		return fmt.Errorf("max frame time %v below fixed step: %w", c.MaxFrameTime, core.ErrInvalidConfig)
	}
	if c.FPSSampleSize <= 0 {
		return fmt.Errorf("fps sample size %d: %w", c.FPSSampleSize, core.ErrInvalidConfig)
	}
	return nil
}

// stepEpsilon absorbs accumulated floating-point error in the fixed
// update loop condition.
const stepEpsilon = 1e-9

// UpdateFunc advances simulation state by dt seconds.
type UpdateFunc func(dt float64) error

// RenderFunc draws the current state. Runs once per frame.
type RenderFunc func() error

// GameLoop drives the simulation at a fixed timestep decoupled from the
// variable render rate. Elapsed real time is accumulated and consumed in
// FixedTimeStep slices; the frame-time clamp keeps a slow frame from
// snowballing into unbounded catch-up work.
//
// The loop never swallows callback errors: the first error aborts the
// run and is returned to the caller.
type GameLoop struct {
	config   GameLoopConfig
	fixedFn  UpdateFunc
	updateFn UpdateFunc // optional variable-rate update
	renderFn RenderFunc

	clock   TimeSource
	running atomic.Bool

	// Frame state, owned by the loop goroutine
	started     bool
	lastTime    time.Time
	accumulator float64

	mu      sync.RWMutex
	window  *frameWindow
	metrics PerformanceMetrics

	// Cached metric pointers (nil when no registry wired)
	statFrames *atomic.Int64
	statTicks  *atomic.Int64
}

// GameLoopOption customizes loop construction.
type GameLoopOption func(*GameLoop)

// WithTimeSource injects a clock, e.g. MockTimeProvider in tests.
func WithTimeSource(ts TimeSource) GameLoopOption {
	return func(gl *GameLoop) { gl.clock = ts }
}

// WithVariableUpdate sets an optional update callback that runs once per
// frame after fixed updates, for logic that tolerates variable dt.
func WithVariableUpdate(fn UpdateFunc) GameLoopOption {
	return func(gl *GameLoop) { gl.updateFn = fn }
}

// WithStatus publishes loop counters into the registry.
func WithStatus(reg *status.Registry) GameLoopOption {
	return func(gl *GameLoop) {
		gl.statFrames = reg.Ints.Get("loop.frames")
		gl.statTicks = reg.Ints.Get("loop.fixed_ticks")
	}
}

// NewGameLoop creates a loop around the given callbacks. updateFn runs
// zero or more times per frame at FixedTimeStep cadence; renderFn runs
// exactly once per frame.
func NewGameLoop(config GameLoopConfig, updateFn UpdateFunc, renderFn RenderFunc, opts ...GameLoopOption) (*GameLoop, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	gl := &GameLoop{
		config:   config,
		fixedFn:  updateFn,
		renderFn: renderFn,
		clock:    NewMonotonicTimeProvider(),
		window:   newFrameWindow(config.FPSSampleSize),
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl, nil
}

// Running reports whether the loop is between Run and Stop.
func (gl *GameLoop) Running() bool {
	return gl.running.Load()
}

// Stop requests the loop to exit. Level-triggered: checked once per
// frame boundary, so the in-flight frame's callbacks complete first.
func (gl *GameLoop) Stop() {
	gl.running.Store(false)
}

// Accumulator returns the pending fixed-update debt in seconds.
func (gl *GameLoop) Accumulator() float64 {
	return gl.accumulator
}

// Metrics returns a copy of the current performance metrics.
func (gl *GameLoop) Metrics() PerformanceMetrics {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	return gl.metrics
}

// Run blocks, executing frames until Stop is called or a callback
// returns an error. The error propagates unwrapped; the loop does not
// try to keep running past it.
func (gl *GameLoop) Run() error {
	gl.running.Store(true)
	gl.started = false
	gl.accumulator = 0

	for gl.running.Load() {
		if err := gl.RunFrame(); err != nil {
			gl.running.Store(false)
			return err
		}

		// Hold target frame rate; idle time was computed by RunFrame
		gl.mu.RLock()
		idle := gl.metrics.IdleTime
		gl.mu.RUnlock()
		if idle > 0 {
			time.Sleep(time.Duration(idle * float64(time.Second)))
		}
	}
	return nil
}

// RunFrame executes a single frame: measure elapsed time, clamp it, run
// pending fixed updates, the variable update, then one render. The very
// first frame only establishes the time baseline and measures zero
// elapsed time.
func (gl *GameLoop) RunFrame() error {
	frameStart := gl.clock.Now()

	var frameDT float64
	if gl.started {
		frameDT = frameStart.Sub(gl.lastTime).Seconds()
	} else {
		gl.started = true
	}
	gl.lastTime = frameStart

	// Clamp to bound the catch-up loop below
	if frameDT > gl.config.MaxFrameTime {
		frameDT = gl.config.MaxFrameTime
	}
	gl.accumulator += frameDT
	if gl.accumulator > gl.config.MaxFrameTime {
		gl.accumulator = gl.config.MaxFrameTime
	}

	// Fixed updates: consume the accumulator in whole steps. The epsilon
	// absorbs float error so a frame of exactly N steps runs N updates.
	fixedStart := gl.clock.Now()
	for gl.accumulator+stepEpsilon >= gl.config.FixedTimeStep {
		if err := gl.fixedFn(gl.config.FixedTimeStep); err != nil {
			return err
		}
		gl.accumulator -= gl.config.FixedTimeStep
		if gl.statTicks != nil {
			gl.statTicks.Add(1)
		}
	}
	fixedEnd := gl.clock.Now()

	// Variable update
	if gl.updateFn != nil {
		if err := gl.updateFn(frameDT); err != nil {
			return err
		}
	}
	updateEnd := gl.clock.Now()

	// Render, exactly once regardless of fixed update count
	if err := gl.renderFn(); err != nil {
		return err
	}
	renderEnd := gl.clock.Now()

	targetFrameTime := 1.0 / float64(gl.config.FPS)
	idle := targetFrameTime - renderEnd.Sub(frameStart).Seconds()
	if idle < 0 {
		idle = 0
	}

	gl.mu.Lock()
	gl.window.push(frameDT)
	gl.window.recompute(&gl.metrics)
	gl.metrics.FixedUpdateTime = fixedEnd.Sub(fixedStart).Seconds()
	gl.metrics.UpdateTime = updateEnd.Sub(fixedEnd).Seconds()
	gl.metrics.RenderTime = renderEnd.Sub(updateEnd).Seconds()
	gl.metrics.IdleTime = idle
	gl.mu.Unlock()

	if gl.statFrames != nil {
		gl.statFrames.Add(1)
	}
	return nil
}
