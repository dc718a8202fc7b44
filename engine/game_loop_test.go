package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/status"
)

func newTestLoop(t *testing.T, cfg GameLoopConfig, clock *MockTimeProvider, fixed UpdateFunc, render RenderFunc, opts ...GameLoopOption) *GameLoop {
	t.Helper()
	if fixed == nil {
		fixed = func(dt float64) error { return nil }
	}
	if render == nil {
		render = func() error { return nil }
	}
	opts = append([]GameLoopOption{WithTimeSource(clock)}, opts...)
	gl, err := NewGameLoop(cfg, fixed, render, opts...)
	if err != nil {
		t.Fatalf("NewGameLoop failed: %v", err)
	}
	return gl
}

func TestGameLoopConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  GameLoopConfig
		ok   bool
	}{
		{"default", DefaultGameLoopConfig(), true},
		{"zero fps", GameLoopConfig{FPS: 0, FixedTimeStep: 1.0 / 60.0, MaxFrameTime: 0.25, FPSSampleSize: 60}, false},
		{"negative step", GameLoopConfig{FPS: 60, FixedTimeStep: -1, MaxFrameTime: 0.25, FPSSampleSize: 60}, false},
		{"max below step", GameLoopConfig{FPS: 60, FixedTimeStep: 0.5, MaxFrameTime: 0.25, FPSSampleSize: 60}, false},
		{"zero sample size", GameLoopConfig{FPS: 60, FixedTimeStep: 1.0 / 60.0, MaxFrameTime: 0.25, FPSSampleSize: 0}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tc.ok {
				if !errors.Is(err, core.ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				if _, nerr := NewGameLoop(tc.cfg, func(float64) error { return nil }, func() error { return nil }); nerr == nil {
					t.Error("NewGameLoop accepted invalid config")
				}
			}
		})
	}
}

func TestRunFrameFixedUpdateCount(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	cfg := DefaultGameLoopConfig()

	fixedCalls := 0
	renderCalls := 0
	var dts []float64
	gl := newTestLoop(t, cfg, clock,
		func(dt float64) error {
			fixedCalls++
			dts = append(dts, dt)
			return nil
		},
		func() error {
			renderCalls++
			return nil
		})

	// First frame only establishes the baseline
	if err := gl.RunFrame(); err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}
	if fixedCalls != 0 {
		t.Errorf("Baseline frame ran %d fixed updates", fixedCalls)
	}
	if renderCalls != 1 {
		t.Errorf("Expected 1 render on baseline frame, got %d", renderCalls)
	}

	// Exactly three fixed steps of elapsed time run exactly three updates
	clock.Advance(3 * time.Second / 60)
	if err := gl.RunFrame(); err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}
	if fixedCalls != 3 {
		t.Errorf("Expected 3 fixed updates, got %d", fixedCalls)
	}
	if renderCalls != 2 {
		t.Errorf("Expected 1 render per frame, got %d total", renderCalls)
	}
	for _, dt := range dts {
		if dt != cfg.FixedTimeStep {
			t.Errorf("Fixed update received dt %v, want %v", dt, cfg.FixedTimeStep)
		}
	}

	// A fraction of a step accumulates without running an update
	fixedCalls = 0
	clock.Advance(time.Second / 120)
	if err := gl.RunFrame(); err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}
	if fixedCalls != 0 {
		t.Errorf("Half a step ran %d fixed updates", fixedCalls)
	}
	if gl.Accumulator() <= 0 {
		t.Error("Expected leftover time in the accumulator")
	}
}

func TestRunFrameAccumulatorCarriesRemainder(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	cfg := DefaultGameLoopConfig()

	fixedCalls := 0
	gl := newTestLoop(t, cfg, clock, func(dt float64) error {
		fixedCalls++
		return nil
	}, nil)

	_ = gl.RunFrame()

	// 1.5 steps: one update now, the remainder joins the next frame
	clock.Advance(3 * time.Second / 120)
	_ = gl.RunFrame()
	if fixedCalls != 1 {
		t.Fatalf("Expected 1 fixed update, got %d", fixedCalls)
	}

	// Another half step completes the second update
	clock.Advance(time.Second / 120)
	_ = gl.RunFrame()
	if fixedCalls != 2 {
		t.Errorf("Expected 2 fixed updates total, got %d", fixedCalls)
	}
}

func TestRunFrameClampsStall(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	cfg := DefaultGameLoopConfig()

	fixedCalls := 0
	gl := newTestLoop(t, cfg, clock, func(dt float64) error {
		fixedCalls++
		return nil
	}, nil)

	_ = gl.RunFrame()

	// A ten second stall is clamped to MaxFrameTime worth of updates
	clock.Advance(10 * time.Second)
	if err := gl.RunFrame(); err != nil {
		t.Fatalf("RunFrame failed: %v", err)
	}

	maxUpdates := int(cfg.MaxFrameTime/cfg.FixedTimeStep) + 1
	if fixedCalls > maxUpdates {
		t.Errorf("Stall ran %d fixed updates, want at most %d", fixedCalls, maxUpdates)
	}
	if acc := gl.Accumulator(); acc > cfg.MaxFrameTime {
		t.Errorf("Accumulator %v exceeds max frame time %v", acc, cfg.MaxFrameTime)
	}
}

func TestRunFrameCallbackErrors(t *testing.T) {
	fixedErr := errors.New("fixed failed")
	renderErr := errors.New("render failed")
	variableErr := errors.New("variable failed")

	t.Run("fixed", func(t *testing.T) {
		clock := NewMockTimeProvider(time.Unix(0, 0))
		renders := 0
		gl := newTestLoop(t, DefaultGameLoopConfig(), clock,
			func(dt float64) error { return fixedErr },
			func() error { renders++; return nil })

		_ = gl.RunFrame()
		renders = 0
		clock.Advance(time.Second / 60)
		if err := gl.RunFrame(); !errors.Is(err, fixedErr) {
			t.Errorf("Expected fixed error, got %v", err)
		}
		if renders != 0 {
			t.Error("Render ran after fixed update error")
		}
	})

	t.Run("variable", func(t *testing.T) {
		clock := NewMockTimeProvider(time.Unix(0, 0))
		gl := newTestLoop(t, DefaultGameLoopConfig(), clock, nil, nil,
			WithVariableUpdate(func(dt float64) error { return variableErr }))

		if err := gl.RunFrame(); !errors.Is(err, variableErr) {
			t.Errorf("Expected variable update error, got %v", err)
		}
	})

	t.Run("render", func(t *testing.T) {
		clock := NewMockTimeProvider(time.Unix(0, 0))
		gl := newTestLoop(t, DefaultGameLoopConfig(), clock, nil,
			func() error { return renderErr })

		if err := gl.RunFrame(); !errors.Is(err, renderErr) {
			t.Errorf("Expected render error, got %v", err)
		}
	})
}

func TestRunStopsOnError(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	sentinel := errors.New("boom")
	frames := 0
	gl := newTestLoop(t, DefaultGameLoopConfig(), clock, nil, func() error {
		frames++
		if frames >= 3 {
			return sentinel
		}
		clock.Advance(time.Second / 60)
		return nil
	})

	if err := gl.Run(); !errors.Is(err, sentinel) {
		t.Errorf("Expected sentinel error from Run, got %v", err)
	}
	if gl.Running() {
		t.Error("Loop still reports running after error")
	}
	if frames != 3 {
		t.Errorf("Expected 3 frames, got %d", frames)
	}
}

func TestRunStop(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	frames := 0
	var gl *GameLoop
	gl = newTestLoop(t, DefaultGameLoopConfig(), clock, nil, func() error {
		frames++
		if frames >= 5 {
			gl.Stop()
		}
		clock.Advance(time.Second / 60)
		return nil
	})

	if err := gl.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	// Stop is level-triggered: the frame that called it still completed
	if frames != 5 {
		t.Errorf("Expected 5 frames, got %d", frames)
	}
}

func TestVariableUpdateRunsOncePerFrame(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	fixedCalls := 0
	variableCalls := 0
	var variableDT float64
	gl := newTestLoop(t, DefaultGameLoopConfig(), clock,
		func(dt float64) error { fixedCalls++; return nil }, nil,
		WithVariableUpdate(func(dt float64) error {
			variableCalls++
			variableDT = dt
			return nil
		}))

	_ = gl.RunFrame()
	clock.Advance(3 * time.Second / 60)
	_ = gl.RunFrame()

	if fixedCalls != 3 {
		t.Fatalf("Expected 3 fixed updates, got %d", fixedCalls)
	}
	if variableCalls != 2 {
		t.Errorf("Expected 1 variable update per frame, got %d over 2 frames", variableCalls)
	}
	if want := 3.0 / 60.0; variableDT < want-1e-9 || variableDT > want+1e-9 {
		t.Errorf("Variable update dt %v, want %v", variableDT, want)
	}
}

func TestMetricsWindow(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	cfg := DefaultGameLoopConfig()
	cfg.FPSSampleSize = 4
	gl := newTestLoop(t, cfg, clock, nil, nil)

	_ = gl.RunFrame()
	for i := 0; i < 4; i++ {
		clock.Advance(time.Second / 60)
		_ = gl.RunFrame()
	}

	m := gl.Metrics()
	want := 1.0 / 60.0
	if m.FrameTime < want-1e-6 || m.FrameTime > want+1e-6 {
		t.Errorf("FrameTime %v, want ~%v", m.FrameTime, want)
	}
	if m.FPS < 59 || m.FPS > 61 {
		t.Errorf("FPS %v, want ~60", m.FPS)
	}
	if m.MinFrameTime > m.AvgFrameTime || m.AvgFrameTime > m.MaxFrameTime {
		t.Errorf("Metric ordering violated: min %v avg %v max %v",
			m.MinFrameTime, m.AvgFrameTime, m.MaxFrameTime)
	}
}

func TestLoopStatusCounters(t *testing.T) {
	clock := NewMockTimeProvider(time.Unix(0, 0))
	reg := status.NewRegistry()
	gl := newTestLoop(t, DefaultGameLoopConfig(), clock, nil, nil, WithStatus(reg))

	_ = gl.RunFrame()
	clock.Advance(2 * time.Second / 60)
	_ = gl.RunFrame()

	if got := reg.Ints.Get("loop.frames").Load(); got != 2 {
		t.Errorf("loop.frames = %d, want 2", got)
	}
	if got := reg.Ints.Get("loop.fixed_ticks").Load(); got != 2 {
		t.Errorf("loop.fixed_ticks = %d, want 2", got)
	}
}
