package systems

import (
	"testing"

	"github.com/EngoEngine/ecs"
	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skirmish/internal/core/entity"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/physics"
)

type fixedClock struct{ now float64 }

func (c *fixedClock) Now() float64 { return c.now }

func TestSystems_RunInPriorityOrder(t *testing.T) {
	clock := &fixedClock{}
	w := &ecs.World{}
	w.AddSystem(NewDebugSystem(clock, 1))
	w.AddSystem(NewProjectileSystem(clock, func(ecs.BasicEntity) {}))
	w.AddSystem(NewPhysicsSystem(physics.NewSpace(), nil))
	w.AddSystem(NewControlSystem(clock))

	var order []int
	for _, s := range w.Systems() {
		order = append(order, s.(ecs.Prioritizer).Priority())
	}
	require.Equal(t, []int{
		int(PriorityControl),
		int(PriorityPhysics),
		int(PriorityProjectile),
		int(PriorityDebug),
	}, order)
}

func TestControlSystem(t *testing.T) {
	clock := &fixedClock{now: 2}
	sys := NewControlSystem(clock)
	ship := entity.NewShip(entity.ShipOptions{})
	ship.Thrust.Linear = []models.LinearThrust{{Magnitude: cp.Vector{Y: 10}}}

	var sampled []float64
	sys.Add(ship, PilotFunc(func(s *entity.Ship, now float64) {
		sampled = append(sampled, now)
		s.Thrust.SetLeft(true)
	}))

	sys.Update(0.5)
	require.Equal(t, []float64{2}, sampled)
	require.InDelta(t, entity.DefaultTurnThrust*0.5, ship.AngularVelocity(), 1e-9)

	sys.Remove(ship.BasicEntity)
	sys.Update(0.5)
	require.Len(t, sampled, 1)
	require.Equal(t, uint64(2), sys.GetMetrics().ExecutionCount)
}

func TestPhysicsSystem(t *testing.T) {
	var elapsed float64
	space := physics.NewSpace()
	sys := NewPhysicsSystem(space, func(dt float64) { elapsed += dt })

	p := entity.NewPhysicalEntity(entity.PhysicalOptions{Velocity: cp.Vector{X: 10}})
	p.LinearDamping = 0.5
	sys.Add(p)
	require.True(t, space.Contains(p.Body))
	require.Equal(t, 1, sys.Len())

	sys.Update(1)
	require.Equal(t, 1.0, elapsed)
	require.InDelta(t, 5, p.Velocity().X, 1e-9, "damping applies before the step")
	require.InDelta(t, 5, p.Position().X, 1e-9)

	sys.Remove(p.BasicEntity)
	require.False(t, space.Contains(p.Body))
	require.Zero(t, sys.Len())
	sys.Remove(p.BasicEntity)
}

func TestProjectileSystem(t *testing.T) {
	clock := &fixedClock{}
	var removed []uint64
	var sys *ProjectileSystem
	sys = NewProjectileSystem(clock, func(basic ecs.BasicEntity) {
		removed = append(removed, basic.ID())
		sys.Remove(basic)
	})

	short := entity.NewBullet(models.Launch{Radius: 2, Lifetime: 1}, 0, nil)
	long := entity.NewBullet(models.Launch{Radius: 2, Lifetime: 3}, 0, nil)
	sys.Add(short)
	sys.Add(long)

	clock.now = 0.5
	sys.Update(0)
	require.Empty(t, removed)

	clock.now = 1
	sys.Update(0)
	require.Equal(t, []uint64{short.ID()}, removed)
	require.Equal(t, 1, sys.Live())

	clock.now = 10
	sys.Update(0)
	require.Equal(t, []uint64{short.ID(), long.ID()}, removed)
	require.Equal(t, uint64(2), sys.Expired())
	require.Zero(t, sys.Live())
}

func TestDebugSystem_Interval(t *testing.T) {
	clock := &fixedClock{}
	sys := NewDebugSystem(clock, 1)
	p := entity.NewPhysicalEntity(entity.PhysicalOptions{})
	d := entity.NewDebug(p)
	d.Enabled = true
	sys.Add(p.ID(), d)

	sys.Update(0)
	require.True(t, sys.started)
	require.Zero(t, sys.last)

	clock.now = 0.5
	sys.Update(0)
	require.Zero(t, sys.last, "inside the interval")

	clock.now = 1.2
	sys.Update(0)
	require.Equal(t, 1.2, sys.last)

	sys.Remove(p.BasicEntity)
	require.Empty(t, sys.entries)
}
