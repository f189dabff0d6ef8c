package world

import (
	"errors"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/zeusync/skirmish/internal/core/entity"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/physics"
	"github.com/zeusync/skirmish/internal/core/systems"
)

var ErrUnexpectedPayload = errors.New("unexpected event payload")

type Options struct {
	// Seed names the deterministic random stream for generated content.
	Seed   string
	Debris DebrisOptions
	// TraceInterval is the minimum time between debug traces, in seconds.
	TraceInterval float64
}

// World owns the physics space, the ecs systems and every live entity. All
// methods must be called from the tick goroutine.
type World struct {
	opts Options
	time float64

	ecsWorld    *ecs.World
	control     *systems.ControlSystem
	physics     *systems.PhysicsSystem
	projectiles *systems.ProjectileSystem
	debug       *systems.DebugSystem

	entities []entity.Physical
	index    map[uint64]entity.Physical

	materials *materials.Registry
	events    bus.EventBus
	launches  bus.Subscription
	logger    log.Log
}

// New builds a world. The material registry is sealed: materials are fixed
// once the world exists.
func New(opts Options, reg *materials.Registry, events bus.EventBus, logger log.Log) (*World, error) {
	if reg == nil {
		reg = materials.NewRegistry()
	}
	if events == nil {
		events = bus.New()
	}
	if logger == nil {
		logger = log.Nop()
	}
	if opts.TraceInterval <= 0 {
		opts.TraceInterval = 1
	}
	reg.Seal()

	w := &World{
		opts:      opts,
		ecsWorld:  &ecs.World{},
		index:     make(map[uint64]entity.Physical),
		materials: reg,
		events:    events,
		logger:    logger.Named("world"),
	}
	w.control = systems.NewControlSystem(w)
	w.physics = systems.NewPhysicsSystem(physics.NewSpace(), func(dt float64) { w.time += dt })
	w.projectiles = systems.NewProjectileSystem(w, w.removeBasic)
	w.debug = systems.NewDebugSystem(w, opts.TraceInterval)
	w.ecsWorld.AddSystem(w.control)
	w.ecsWorld.AddSystem(w.physics)
	w.ecsWorld.AddSystem(w.projectiles)
	w.ecsWorld.AddSystem(w.debug)

	sub, err := events.Subscribe(bus.ProjectileLaunched, w.onLaunch)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", bus.ProjectileLaunched, err)
	}
	w.launches = sub
	return w, nil
}

// Now is the simulated time in seconds.
func (w *World) Now() float64 { return w.time }

// Clock returns the world clock in the form entities consume.
func (w *World) Clock() entity.Clock { return entity.ClockFunc(w.Now) }

func (w *World) Materials() *materials.Registry { return w.materials }

func (w *World) Events() bus.EventBus { return w.events }

// Update advances the world by dt seconds: pilots and thrust, physics, then
// projectile expiry and tracing.
func (w *World) Update(dt float64) {
	w.ecsWorld.Update(float32(dt))
}

// Add places e in the physics space. Adding the same entity twice is a no-op.
func (w *World) Add(e entity.Physical) {
	p := e.Physical()
	if _, ok := w.index[p.ID()]; ok {
		return
	}
	w.index[p.ID()] = e
	w.entities = append(w.entities, e)
	w.physics.Add(e)
	if b, ok := e.(*entity.Bullet); ok {
		w.projectiles.Add(b)
	}
}

// AddShip places s in the world under control of pilot, which may be nil.
func (w *World) AddShip(s *entity.Ship, pilot systems.Pilot) {
	if _, ok := w.index[s.ID()]; ok {
		return
	}
	w.Add(s)
	w.control.Add(s, pilot)
	w.debug.Add(s.ID(), s.Debug)
}

// Trace registers d for periodic tracing.
func (w *World) Trace(id uint64, d *entity.Debug) {
	w.debug.Add(id, d)
}

// Remove takes e out of every system and publishes entity.removed.
func (w *World) Remove(e entity.Physical) {
	w.removeBasic(e.Physical().BasicEntity)
}

func (w *World) removeBasic(basic ecs.BasicEntity) {
	e, ok := w.index[basic.ID()]
	if !ok {
		return
	}
	delete(w.index, basic.ID())
	for i, other := range w.entities {
		if other == e {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	w.ecsWorld.RemoveEntity(basic)

	if err := w.events.Publish(bus.NewEvent(bus.EntityRemoved, basic.ID(), w.time, e.Physical().Name)); err != nil {
		w.logger.Warn("event handler failed", log.String("event", bus.EntityRemoved), log.Error(err))
	}
}

// Get looks an entity up by id.
func (w *World) Get(id uint64) (entity.Physical, bool) {
	e, ok := w.index[id]
	return e, ok
}

// Len is the number of live entities.
func (w *World) Len() int { return len(w.entities) }

// Bullets is the number of projectiles in flight.
func (w *World) Bullets() int { return w.projectiles.Live() }

// Metrics reports per system execution statistics keyed by system name.
func (w *World) Metrics() map[string]systems.Metrics {
	return map[string]systems.Metrics{
		"control":    w.control.GetMetrics(),
		"physics":    w.physics.GetMetrics(),
		"projectile": w.projectiles.GetMetrics(),
	}
}

// Close detaches the world from the event bus.
func (w *World) Close() error {
	return w.events.Unsubscribe(w.launches)
}

func (w *World) onLaunch(ev bus.Event) error {
	launch, ok := ev.Data().(models.Launch)
	if !ok {
		return fmt.Errorf("%w: %s carries %T", ErrUnexpectedPayload, ev.Type(), ev.Data())
	}
	b := entity.NewBullet(launch, w.time, w.logger)
	w.Add(b)
	w.logger.Debug("projectile spawned",
		log.Entity(b.ID()),
		log.Uint64("owner", launch.Owner),
		log.Vec("position", launch.Position.X, launch.Position.Y),
	)
	return nil
}
