package entity

import (
	"iter"

	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/observability/log"
)

const (
	DefaultShipName = "_defaultShip"

	ShipLinearDamping  = 0.05
	ShipAngularDamping = 0.01
)

type ShipOptions struct {
	Name     string
	Position cp.Vector
	Angle    float64
	Mass     float64
	Clock    Clock
	Events   bus.EventBus
	Logger   log.Log
}

// Ship is a PhysicalEntity with weapon, thrust and debug capabilities and a
// hardpoint table. The body's shape list always equals the shapes of the
// mounted components, and Thrust.Linear always reflects the mounted thrusters.
type Ship struct {
	*PhysicalEntity

	Weapon *Attack
	Thrust *Thrust
	Debug  *Debug

	hardpoints *models.Hardpoints
	events     bus.EventBus
	logger     log.Log
}

var _ Armory = (*Ship)(nil)

// Mount pairs a hardpoint id with the component to place there.
type Mount struct {
	Hardpoint string
	Component models.Component
}

func NewShip(opts ShipOptions) *Ship {
	if opts.Name == "" {
		opts.Name = DefaultShipName
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}
	if opts.Clock == nil {
		opts.Clock = ClockFunc(func() float64 { return 0 })
	}
	logger := opts.Logger.Named("ship")

	base := NewPhysicalEntity(PhysicalOptions{
		Name:     opts.Name,
		Position: opts.Position,
		Angle:    opts.Angle,
		Mass:     opts.Mass,
		Logger:   logger,
	})
	base.LinearDamping = ShipLinearDamping
	base.AngularDamping = ShipAngularDamping

	s := &Ship{
		PhysicalEntity: base,
		hardpoints:     models.NewHardpoints(),
		events:         opts.Events,
		logger:         base.Logger().With(log.String("ship", opts.Name)),
	}
	s.Weapon = NewAttack(s, opts.Clock, opts.Events, s.logger)
	s.Thrust = NewThrust(base.Body)
	s.Debug = NewDebug(base)
	return s
}

// AddHardpoint registers hp. Ids must be unique within the ship.
func (s *Ship) AddHardpoint(hp *models.Hardpoint) error {
	if err := s.hardpoints.Add(hp); err != nil {
		id := ""
		if hp != nil {
			id = hp.ID()
		}
		return s.fail("add hardpoint", id, err)
	}
	return nil
}

func (s *Ship) Hardpoint(id string) (*models.Hardpoint, bool) {
	return s.hardpoints.Get(id)
}

// Hardpoints iterates the table in registration order.
func (s *Ship) Hardpoints() iter.Seq[*models.Hardpoint] {
	return s.hardpoints.All()
}

// Mounted iterates mounted components of typ in hardpoint order.
func (s *Ship) Mounted(typ models.ComponentType) iter.Seq2[*models.Hardpoint, models.Component] {
	return s.hardpoints.Mounted(typ)
}

// MountHardpoint places c on the hardpoint id, registers its shape at the
// hardpoint placement and refreshes derived thrust.
func (s *Ship) MountHardpoint(id string, c models.Component) error {
	if id == "" || c == nil {
		return s.fail("mount", id, models.ErrInvalidArgument)
	}
	hp, ok := s.hardpoints.Get(id)
	if !ok {
		return s.fail("mount", id, models.ErrUnknownHardpoint)
	}
	if _, attached := c.Parent(); attached {
		return s.fail("mount", id, models.ErrComponentAttached)
	}
	if err := hp.Mount(c); err != nil {
		return s.fail("mount", id, err)
	}

	c.Attach(s.ID())
	if shape := c.Shape(); shape != nil {
		s.AddShape(shape, hp.Offset(), hp.Angle())
	}
	if c.Type() == models.Thruster {
		s.CalcLinearThrust()
	}

	s.logger.Debug("component mounted",
		log.String("hardpoint", id),
		log.String("component", c.ID()),
		log.String("type", c.Type().String()),
	)
	s.publish(bus.HardpointMounted, MountEvent{Hardpoint: id, Component: c})
	return nil
}

// UnmountHardpoint clears the hardpoint id and returns what was mounted. An
// empty hardpoint yields (nil, nil) and changes nothing.
func (s *Ship) UnmountHardpoint(id string) (models.Component, error) {
	if id == "" {
		return nil, s.fail("unmount", id, models.ErrInvalidArgument)
	}
	hp, ok := s.hardpoints.Get(id)
	if !ok {
		return nil, s.fail("unmount", id, models.ErrUnknownHardpoint)
	}
	c := hp.Unmount()
	if c == nil {
		return nil, nil
	}

	if shape := c.Shape(); shape != nil {
		s.RemoveShape(shape)
	}
	c.Detach()
	if c.Type() == models.Thruster {
		s.CalcLinearThrust()
	}

	s.logger.Debug("component unmounted",
		log.String("hardpoint", id),
		log.String("component", c.ID()),
	)
	s.publish(bus.HardpointUnmounted, MountEvent{Hardpoint: id, Component: c})
	return c, nil
}

// Equip mounts each pair in order and stops at the first failure.
func (s *Ship) Equip(mounts ...Mount) error {
	for _, m := range mounts {
		if err := s.MountHardpoint(m.Hardpoint, m.Component); err != nil {
			return err
		}
	}
	return nil
}

// CalcLinearThrust rebuilds the linear thrust aggregate from the mounted
// thrusters, in hardpoint order.
func (s *Ship) CalcLinearThrust() {
	linear := make([]models.LinearThrust, 0, len(s.Thrust.Linear))
	for hp, c := range s.hardpoints.Mounted(models.Thruster) {
		src, ok := c.(models.ThrustSource)
		if !ok {
			s.logger.Warn("thruster without thrust parameters",
				log.String("hardpoint", hp.ID()),
				log.String("component", c.ID()),
			)
			continue
		}
		linear = append(linear, models.LinearThrust{Offset: src.Offset(), Magnitude: src.Magnitude()})
	}
	s.Thrust.Linear = linear
}

// LinearThrust returns a copy of the current aggregate.
func (s *Ship) LinearThrust() []models.LinearThrust {
	return append([]models.LinearThrust(nil), s.Thrust.Linear...)
}

// Muzzle is the world placement of hp: the body transform applied to the
// hardpoint offset and angle.
func (s *Ship) Muzzle(hp *models.Hardpoint) models.Muzzle {
	return models.Muzzle{
		Position: s.LocalToWorld(hp.Offset()),
		Angle:    s.Angle() + hp.Angle(),
		Velocity: s.Velocity(),
	}
}

func (s *Ship) fail(op, hardpoint string, err error) error {
	return &models.HardpointError{Op: op, Entity: s.Name, Hardpoint: hardpoint, Err: err}
}

func (s *Ship) publish(typ string, data any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(bus.NewEvent(typ, s.ID(), s.Weapon.clock.Now(), data)); err != nil {
		s.logger.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}
