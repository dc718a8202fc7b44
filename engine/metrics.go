package engine

// PerformanceMetrics reports loop health derived from a rolling window
// of recent frame times. Derived fields are recomputed from the window
// every frame, never accumulated incrementally.
type PerformanceMetrics struct {
	FPS          float64
	FrameTime    float64 // most recent frame, seconds
	MinFrameTime float64
	MaxFrameTime float64
	AvgFrameTime float64

	// Per-phase timings for the most recent frame, seconds
	FixedUpdateTime float64
	UpdateTime      float64
	RenderTime      float64
	IdleTime        float64
}

// frameWindow is a fixed-capacity rolling sample buffer.
type frameWindow struct {
	samples  []float64
	capacity int
}

func newFrameWindow(capacity int) *frameWindow {
	return &frameWindow{
		samples:  make([]float64, 0, capacity),
		capacity: capacity,
	}
}

func (fw *frameWindow) push(sample float64) {
	if len(fw.samples) == fw.capacity {
		copy(fw.samples, fw.samples[1:])
		fw.samples = fw.samples[:len(fw.samples)-1]
	}
	fw.samples = append(fw.samples, sample)
}

// recompute fills frame-time statistics into m from the current window.
func (fw *frameWindow) recompute(m *PerformanceMetrics) {
	if len(fw.samples) == 0 {
		return
	}

	minT := fw.samples[0]
	maxT := fw.samples[0]
	sum := 0.0
	for _, s := range fw.samples {
		if s < minT {
			minT = s
		}
		if s > maxT {
			maxT = s
		}
		sum += s
	}

	m.FrameTime = fw.samples[len(fw.samples)-1]
	m.MinFrameTime = minT
	m.MaxFrameTime = maxT
	m.AvgFrameTime = sum / float64(len(fw.samples))
	if m.AvgFrameTime > 0 {
		m.FPS = 1.0 / m.AvgFrameTime
	}
}
