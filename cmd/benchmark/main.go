// Headless physics benchmark: a box of bouncing bodies stepped at the
// fixed timestep for a wall-clock duration, with optional CPU/memory
// profiling.
//
// Profiling:
//
//	go build ./cmd/benchmark
//	./benchmark -bodies 2000 -profile cpu
//	go tool pprof -http=":8000" ./benchmark cpu.pprof
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/pkg/profile"

	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/physics"
	"github.com/hollowpine/strata/status"
	"github.com/hollowpine/strata/vmath"
)

var (
	duration    = flag.Duration("duration", 10*time.Second, "Benchmark duration")
	bodyCount   = flag.Int("bodies", 1000, "Number of dynamic bodies")
	arenaSize   = flag.Float64("arena", 2000, "Arena edge length in world units")
	rayCount    = flag.Int("rays", 0, "Raycasts per step")
	seed        = flag.Int64("seed", 1, "Spawn RNG seed")
	profileMode = flag.String("profile", "", "Profile: cpu|mem")
)

func main() {
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q\n", *profileMode)
		os.Exit(1)
	}

	reg := status.NewRegistry()
	world, err := buildWorld(reg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}

	const step = 1.0 / 60.0
	rng := rand.New(rand.NewSource(*seed))

	var steps int64
	var rayHits int64
	var stepTotal time.Duration
	start := time.Now()

	for time.Since(start) < *duration {
		t0 := time.Now()
		if err := world.Step(step); err != nil {
			fmt.Fprintf(os.Stderr, "step %d: %v\n", steps, err)
			os.Exit(1)
		}
		stepTotal += time.Since(t0)

		for i := 0; i < *rayCount; i++ {
			origin := vmath.V(rng.Float64()**arenaSize, rng.Float64()**arenaSize)
			dir := vmath.V(rng.Float64()*2-1, rng.Float64()*2-1)
			if _, ok := world.Raycast(origin, dir, *arenaSize, ^uint32(0)); ok {
				rayHits++
			}
		}
		steps++
	}
	elapsed := time.Since(start)

	fmt.Printf("Benchmark Results:\n")
	fmt.Printf("  Bodies:       %d dynamic in %gx%g arena\n", *bodyCount, *arenaSize, *arenaSize)
	fmt.Printf("  Total Steps:  %d\n", steps)
	fmt.Printf("  Total Time:   %v\n", elapsed)
	fmt.Printf("  Avg Step:     %v\n", stepTotal/time.Duration(steps))
	fmt.Printf("  Steps/sec:    %.2f\n", float64(steps)/elapsed.Seconds())
	if *rayCount > 0 {
		fmt.Printf("  Ray Hits:     %d of %d\n", rayHits, steps*int64(*rayCount))
	}
	fmt.Printf("  Grid Cells:   %d\n", world.Grid().CellCount())

	fmt.Printf("Status:\n")
	snap := reg.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("  %-20s %g\n", key, snap[key])
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("Memory:\n")
	fmt.Printf("  Total Alloc:  %d bytes\n", m.TotalAlloc)
	fmt.Printf("  Mallocs:      %d\n", m.Mallocs)
}

// buildWorld fills the arena with walls and randomly placed bouncing
// bodies, half rects and half circles.
func buildWorld(reg *status.Registry) (*physics.World, error) {
	cfg := physics.DefaultConfig()
	world, err := physics.NewWorld(cfg, physics.WithStatus(reg))
	if err != nil {
		return nil, err
	}

	a := *arenaSize
	var idx uint32

	spawn := func(b *physics.Body) {
		idx++
		b.Entity = core.Entity{Index: idx, Generation: 1}
		world.AddBody(b)
	}

	// Arena walls
	walls := []vmath.Rect{
		{X: -64, Y: -64, W: a + 128, H: 64},
		{X: -64, Y: a, W: a + 128, H: 64},
		{X: -64, Y: 0, W: 64, H: a},
		{X: a, Y: 0, W: 64, H: a},
	}
	for _, r := range walls {
		spawn(&physics.Body{
			Shape:    physics.ShapeRect,
			Position: vmath.V(r.X, r.Y),
			Size:     vmath.V(r.W, r.H),
			Static:   true,
			Group:    1,
			Mask:     ^uint32(0),
		})
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *bodyCount; i++ {
		b := &physics.Body{
			Position:     vmath.V(rng.Float64()*(a-32)+16, rng.Float64()*(a-32)+16),
			Velocity:     vmath.V(rng.Float64()*400-200, rng.Float64()*400-200),
			GravityScale: 1,
			Restitution:  0.8,
			Group:        1,
			Mask:         ^uint32(0),
		}
		if i%2 == 0 {
			b.Shape = physics.ShapeRect
			b.Size = vmath.V(8+rng.Float64()*16, 8+rng.Float64()*16)
		} else {
			b.Shape = physics.ShapeCircle
			b.Radius = 4 + rng.Float64()*8
		}
		spawn(b)
	}
	return world, nil
}
