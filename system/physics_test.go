package system

import (
	"math"
	"testing"

	"github.com/hollowpine/strata/component"
	"github.com/hollowpine/strata/core"
	"github.com/hollowpine/strata/engine"
	"github.com/hollowpine/strata/physics"
	"github.com/hollowpine/strata/vmath"
)

const step = 1.0 / 60.0

type fixture struct {
	world      *engine.World
	sys        *PhysicsSystem
	transforms *engine.Store[component.Transform]
	velocities *engine.Store[component.Velocity]
	colliders  *engine.Store[component.Collider]
	bodies     *engine.Store[component.Body]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ecs := engine.NewWorld()
	pw, err := physics.NewWorld(physics.DefaultConfig())
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}
	sys := NewPhysicsSystem(ecs, pw)
	ecs.AddSystem(sys)
	return &fixture{
		world:      ecs,
		sys:        sys,
		transforms: engine.StoreFor[component.Transform](ecs),
		velocities: engine.StoreFor[component.Velocity](ecs),
		colliders:  engine.StoreFor[component.Collider](ecs),
		bodies:     engine.StoreFor[component.Body](ecs),
	}
}

func (f *fixture) spawnBox(t *testing.T, x, y, w, h float64, body component.Body) core.Entity {
	t.Helper()
	e := f.world.CreateEntity()
	if err := f.transforms.Add(e, component.Transform{Position: vmath.V(x, y)}); err != nil {
		t.Fatalf("Add transform: %v", err)
	}
	col := component.Collider{
		Kind:  component.ShapeRect,
		Size:  vmath.V(w, h),
		Group: component.GroupDefault,
		Mask:  component.GroupAll,
	}
	if err := f.colliders.Add(e, col); err != nil {
		t.Fatalf("Add collider: %v", err)
	}
	if err := f.bodies.Add(e, body); err != nil {
		t.Fatalf("Add body: %v", err)
	}
	return e
}

func TestFallingBoxLandsOnPlatform(t *testing.T) {
	f := newFixture(t)

	faller := f.spawnBox(t, 45, 50, 10, 10, component.Body{GravityScale: 1})
	if err := f.velocities.Add(faller, component.Velocity{}); err != nil {
		t.Fatalf("Add velocity: %v", err)
	}
	f.spawnBox(t, 0, 100, 100, 20, component.Body{Static: true})

	for i := 0; i < 180; i++ {
		if err := f.world.Update(step); err != nil {
			t.Fatalf("Update %d failed: %v", i, err)
		}
	}

	tf, _ := f.transforms.Get(faller)
	if math.Abs((tf.Position.Y+10)-100) > 1e-6 {
		t.Errorf("Faller rests at y=%v, want bottom edge on the platform", tf.Position.Y)
	}

	bd, _ := f.bodies.Get(faller)
	if !bd.OnGround {
		t.Error("Landed body not marked OnGround")
	}

	vel, _ := f.velocities.Get(faller)
	if math.Abs(vel.Linear.Y) > 1e-6 {
		t.Errorf("Landed body keeps vertical velocity %v", vel.Linear.Y)
	}
}

func TestTransformWritesBack(t *testing.T) {
	f := newFixture(t)

	mover := f.spawnBox(t, 0, 0, 10, 10, component.Body{})
	if err := f.velocities.Add(mover, component.Velocity{Linear: vmath.V(60, 0)}); err != nil {
		t.Fatalf("Add velocity: %v", err)
	}

	if err := f.world.Update(step); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	tf, _ := f.transforms.Get(mover)
	if math.Abs(tf.Position.X-1) > 1e-9 {
		t.Errorf("Position.X = %v, want 1", tf.Position.X)
	}
}

func TestEntityWithoutBodyIgnored(t *testing.T) {
	f := newFixture(t)

	// Transform+Collider but no Body component: not simulated
	e := f.world.CreateEntity()
	_ = f.transforms.Add(e, component.Transform{Position: vmath.V(0, 0)})
	_ = f.colliders.Add(e, component.Collider{Kind: component.ShapeRect, Size: vmath.V(10, 10),
		Group: component.GroupDefault, Mask: component.GroupAll})

	if err := f.world.Update(step); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if f.sys.PhysicsWorld().BodyCount() != 0 {
		t.Errorf("Untracked entity got a physics body")
	}
	tf, _ := f.transforms.Get(e)
	if tf.Position != vmath.V(0, 0) {
		t.Errorf("Unsimulated entity moved to %v", tf.Position)
	}
}

func TestDestroyedEntityLeavesSimulation(t *testing.T) {
	f := newFixture(t)

	e := f.spawnBox(t, 0, 0, 10, 10, component.Body{GravityScale: 1})
	if err := f.world.Update(step); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if f.sys.PhysicsWorld().BodyCount() != 1 {
		t.Fatalf("Expected 1 physics body, got %d", f.sys.PhysicsWorld().BodyCount())
	}

	f.world.DestroyEntity(e)
	if err := f.world.Update(step); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if f.sys.PhysicsWorld().BodyCount() != 0 {
		t.Errorf("Destroyed entity's body survived: %d", f.sys.PhysicsWorld().BodyCount())
	}
}

func TestBodyWithoutVelocityComponent(t *testing.T) {
	f := newFixture(t)

	// No Velocity component: the body never accelerates, but collision
	// pushout still moves it
	box := f.spawnBox(t, 0, 0, 10, 10, component.Body{})
	f.spawnBox(t, 8, 0, 10, 10, component.Body{Static: true})

	if err := f.world.Update(step); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	tf, _ := f.transforms.Get(box)
	if math.Abs(tf.Position.X-(-2)) > 1e-9 {
		t.Errorf("Expected pushout to x=-2, got %v", tf.Position)
	}
}
