// Interactive platformer sandbox: drive a box with vi keys through a
// small level rendered in the terminal. Exercises the fixed-timestep
// loop, the ECS physics bridge, contact events, and audio feedback.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/hollowpine/strata/component"
	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/engine"
	"github.com/hollowpine/strata/event"
	"github.com/hollowpine/strata/input"
	"github.com/hollowpine/strata/physics"
	"github.com/hollowpine/strata/status"
	"github.com/hollowpine/strata/system"
	"github.com/hollowpine/strata/vmath"
)

const (
	// World units are terminal cells
	gravity    = 60.0
	cellSize   = 8.0
	moveSpeed  = 18.0
	jumpSpeed  = 28.0
	blipMinGap = 120 * time.Millisecond

	// Terminal key events have no release; a key counts as held for
	// this long after its last press
	keyHold = 150 * time.Millisecond
)

// keyboard adapts tcell key events to the engine's input.Source.
// Terminals only report presses, so held state is a decaying timestamp.
type keyboard struct {
	mu       sync.Mutex
	lastSeen map[input.Action]time.Time
	axis     map[input.Axis]axisState
}

type axisState struct {
	value float64
	at    time.Time
}

func newKeyboard() *keyboard {
	return &keyboard{
		lastSeen: make(map[input.Action]time.Time),
		axis:     make(map[input.Axis]axisState),
	}
}

func (k *keyboard) press(a input.Action) {
	k.mu.Lock()
	k.lastSeen[a] = time.Now()
	k.mu.Unlock()
}

func (k *keyboard) push(ax input.Axis, v float64) {
	k.mu.Lock()
	k.axis[ax] = axisState{value: v, at: time.Now()}
	k.mu.Unlock()
}

func (k *keyboard) Pressed(a input.Action) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return time.Since(k.lastSeen[a]) < keyHold
}

func (k *keyboard) Value(ax input.Axis) float64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	s := k.axis[ax]
	if time.Since(s.at) >= keyHold {
		return 0
	}
	return s.value
}

type sandbox struct {
	screen tcell.Screen
	keys   *keyboard

	world  *engine.World
	phys   *system.PhysicsSystem
	events *event.Queue
	reg    *status.Registry
	loop   *engine.GameLoop

	player core.Entity

	transforms *engine.Store[component.Transform]
	velocities *engine.Store[component.Velocity]
	colliders  *engine.Store[component.Collider]
	bodies     *engine.Store[component.Body]
	sprites    *engine.Store[component.SpriteRef]

	audioInit bool
	lastBlip  time.Time
}

func newSandbox(screen tcell.Screen) (*sandbox, error) {
	s := &sandbox{
		screen: screen,
		keys:   newKeyboard(),
		events: event.NewQueue(),
		reg:    status.NewRegistry(),
	}

	s.world = engine.NewWorld()
	engine.AddResource[input.Source](s.world.Resources, s.keys)

	cfg := physics.Config{Gravity: gravity, CellSize: cellSize, MaxVelocity: 100}
	pw, err := physics.NewWorld(cfg, physics.WithEventQueue(s.events), physics.WithStatus(s.reg))
	if err != nil {
		return nil, err
	}
	s.phys = system.NewPhysicsSystem(s.world, pw)
	s.world.AddSystem(s.phys)

	s.transforms = engine.StoreFor[component.Transform](s.world)
	s.velocities = engine.StoreFor[component.Velocity](s.world)
	s.colliders = engine.StoreFor[component.Collider](s.world)
	s.bodies = engine.StoreFor[component.Body](s.world)
	s.sprites = engine.StoreFor[component.SpriteRef](s.world)

	if err := s.buildLevel(); err != nil {
		return nil, err
	}

	loopCfg := engine.DefaultGameLoopConfig()
	loop, err := engine.NewGameLoop(loopCfg, s.fixedUpdate, s.render, engine.WithStatus(s.reg))
	if err != nil {
		return nil, err
	}
	s.loop = loop

	if err := s.initAudio(); err != nil {
		// Non-fatal, the sandbox runs silent
		log.Printf("audio init failed: %v", err)
	}
	return s, nil
}

func (s *sandbox) spawnBox(x, y, w, h float64, body component.Body, group uint32) (core.Entity, error) {
	e := s.world.CreateEntity()
	if err := s.transforms.Add(e, component.Transform{Position: vmath.V(x, y)}); err != nil {
		return core.NilEntity, err
	}
	col := component.Collider{
		Kind:  component.ShapeRect,
		Size:  vmath.V(w, h),
		Group: group,
		Mask:  component.GroupAll,
	}
	if err := s.colliders.Add(e, col); err != nil {
		return core.NilEntity, err
	}
	if err := s.bodies.Add(e, body); err != nil {
		return core.NilEntity, err
	}
	return e, nil
}

func (s *sandbox) buildLevel() error {
	w, h := s.screen.Size()
	fw, fh := float64(w), float64(h)

	// Floor and walls, drawn beneath everything else
	statics := []vmath.Rect{
		{X: 0, Y: fh - 2, W: fw, H: 2},
		{X: 0, Y: 0, W: 1, H: fh},
		{X: fw - 1, Y: 0, W: 1, H: fh},
		// Floating platforms
		{X: fw * 0.15, Y: fh - 8, W: fw * 0.2, H: 1},
		{X: fw * 0.55, Y: fh - 13, W: fw * 0.2, H: 1},
		{X: fw * 0.3, Y: fh - 18, W: fw * 0.15, H: 1},
	}
	for _, r := range statics {
		e, err := s.spawnBox(r.X, r.Y, r.W, r.H, component.Body{Static: true}, component.GroupTerrain)
		if err != nil {
			return err
		}
		if err := s.sprites.Add(e, component.SpriteRef{ID: spriteTerrain, Layer: 0}); err != nil {
			return err
		}
	}

	// A bouncy crate to knock around
	crate, err := s.spawnBox(fw*0.6, 2, 3, 2,
		component.Body{GravityScale: 1, Restitution: 0.6}, component.GroupDefault)
	if err != nil {
		return err
	}
	if err := s.velocities.Add(crate, component.Velocity{}); err != nil {
		return err
	}
	if err := s.sprites.Add(crate, component.SpriteRef{ID: spriteCrate, Layer: 1}); err != nil {
		return err
	}

	player, err := s.spawnBox(fw*0.1, fh-6, 2, 2,
		component.Body{GravityScale: 1, Friction: 8}, component.GroupPlayer)
	if err != nil {
		return err
	}
	if err := s.velocities.Add(player, component.Velocity{}); err != nil {
		return err
	}
	if err := s.sprites.Add(player, component.SpriteRef{ID: spritePlayer, Layer: 2}); err != nil {
		return err
	}
	s.player = player
	return nil
}

func (s *sandbox) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

// playBlip chirps on landings. Rate-limited so resting contacts stay
// quiet.
func (s *sandbox) playBlip(freq float64) {
	if !s.audioInit || time.Since(s.lastBlip) < blipMinGap {
		return
	}
	s.lastBlip = time.Now()

	sampleRate := beep.SampleRate(44100)
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(40*time.Millisecond), sine))
}

func (s *sandbox) fixedUpdate(dt float64) error {
	src := engine.MustGetResource[input.Source](s.world.Resources)

	vel, _ := s.velocities.Get(s.player)
	bd, _ := s.bodies.Get(s.player)

	vel.Linear.X = src.Value(input.AxisHorizontal) * moveSpeed
	if src.Pressed(input.ActionJump) && bd.OnGround {
		vel.Linear.Y = -jumpSpeed
	}
	if err := s.velocities.Set(s.player, vel); err != nil {
		return err
	}

	if err := s.world.Update(dt); err != nil {
		return err
	}

	for _, ev := range s.events.Consume() {
		if ev.Type != event.TypeContact {
			continue
		}
		p := ev.Payload.(event.ContactPayload)
		// Only audible impacts: something moving fast hit the ground
		if p.Penetration > 0.05 {
			if p.A == s.player || p.B == s.player {
				s.playBlip(660)
			} else {
				s.playBlip(220)
			}
		}
	}
	return nil
}

// glyph maps a sprite id to its terminal appearance. The renderer owns
// this table; the core only carries the opaque ids.
type glyph struct {
	ch    rune
	style tcell.Style
}

const (
	spriteTerrain uint32 = iota + 1
	spriteCrate
	spritePlayer
)

var glyphs = map[uint32]glyph{
	spriteTerrain: {'█', tcell.StyleDefault.Foreground(tcell.ColorGray)},
	spriteCrate:   {'▒', tcell.StyleDefault.Foreground(tcell.ColorYellow)},
	spritePlayer:  {'█', tcell.StyleDefault.Foreground(tcell.ColorGreen)},
}

func (s *sandbox) render() error {
	s.screen.Clear()

	entities := s.world.Query().With(s.transforms).With(s.colliders).With(s.sprites).Execute()
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := s.sprites.Get(entities[i])
		sj, _ := s.sprites.Get(entities[j])
		return si.Layer < sj.Layer
	})

	for _, e := range entities {
		tf, _ := s.transforms.Get(e)
		col, _ := s.colliders.Get(e)
		sp, _ := s.sprites.Get(e)

		g, ok := glyphs[sp.ID]
		if !ok {
			continue
		}

		b := col.Bounds(tf.Position)
		for y := int(b.Y); y < int(b.Y+b.H); y++ {
			for x := int(b.X); x < int(b.X+b.W); x++ {
				s.screen.SetContent(x, y, g.ch, nil, g.style)
			}
		}
	}

	m := s.loop.Metrics()
	hud := fmt.Sprintf(" fps %5.1f  frame %5.2fms  fixed %5.2fms  bodies %d ",
		m.FPS, m.FrameTime*1000, m.FixedUpdateTime*1000,
		s.phys.PhysicsWorld().BodyCount())
	drawText(s.screen, 1, 0, hud, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	drawText(s.screen, 1, 1, " h/l move  space jump  q quit ",
		tcell.StyleDefault.Foreground(tcell.ColorGray))

	s.screen.Show()
	return nil
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// pollInput routes tcell events into the keyboard until quit.
func (s *sandbox) pollInput() {
	for {
		switch ev := s.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				s.loop.Stop()
				return
			}
			if ev.Key() == tcell.KeyRune {
				switch ev.Rune() {
				case 'q', 'Q':
					s.loop.Stop()
					return
				case 'h', 'a':
					s.keys.push(input.AxisHorizontal, -1)
				case 'l', 'd':
					s.keys.push(input.AxisHorizontal, 1)
				case ' ', 'k', 'w':
					s.keys.press(input.ActionJump)
				}
			}
			switch ev.Key() {
			case tcell.KeyLeft:
				s.keys.push(input.AxisHorizontal, -1)
			case tcell.KeyRight:
				s.keys.push(input.AxisHorizontal, 1)
			case tcell.KeyUp:
				s.keys.press(input.ActionJump)
			}
		case *tcell.EventResize:
			s.screen.Sync()
		case nil:
			return // screen finalized
		}
	}
}

func main() {
	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	s, err := newSandbox(screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "sandbox: %v\n", err)
		os.Exit(1)
	}

	go s.pollInput()

	if err := s.loop.Run(); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "loop: %v\n", err)
		os.Exit(1)
	}
}
